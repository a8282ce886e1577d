package model

// Question is one segmented exam question: a statement (possibly carrying
// inline table markup) and its ordered answer alternatives. Questions have
// no identity beyond their position in the list; reordering them is the
// shuffle step's defining operation.
type Question struct {
	// Statement text, including any inline table markup appended by
	// segmentation.
	Statement string

	// Alternatives with their leading letter markers, in source order.
	Alternatives []string

	// BlockID of the statement's source block, for relinking style and
	// table records at render time. Zero-value -1 means unknown.
	BlockID int

	// Correct is the index into Alternatives of the correct answer, or -1
	// when unknown. Shuffling keeps it pointing at the same alternative.
	Correct int
}

// NewQuestion creates a question with no known correct alternative.
func NewQuestion(statement string) Question {
	return Question{Statement: statement, BlockID: -1, Correct: -1}
}

// Clone returns a deep copy the caller may mutate freely.
func (q Question) Clone() Question {
	alts := make([]string, len(q.Alternatives))
	copy(alts, q.Alternatives)
	q.Alternatives = alts
	return q
}
