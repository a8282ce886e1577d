package shuffle

import (
	"math/rand"

	"github.com/rangel3l/sem-colar-system/model"
)

// Questions returns the questions in a random order. The input slice and
// its questions are left untouched.
func Questions(rng *rand.Rand, questions []model.Question) []model.Question {
	out := cloneAll(questions)
	if len(out) <= 1 {
		return out
	}
	rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

// Alternatives returns a copy of the question with its alternatives in a
// random order. A question with zero or one alternative comes back as a
// plain copy.
func Alternatives(rng *rand.Rand, q model.Question) model.Question {
	out := q.Clone()
	if len(out.Alternatives) <= 1 {
		return out
	}
	rng.Shuffle(len(out.Alternatives), func(i, j int) {
		out.Alternatives[i], out.Alternatives[j] = out.Alternatives[j], out.Alternatives[i]
		if out.Correct == i {
			out.Correct = j
		} else if out.Correct == j {
			out.Correct = i
		}
	})
	return out
}

// All shuffles each question's alternatives and then the question order,
// which is the arrangement used for one exam variant.
func All(rng *rand.Rand, questions []model.Question) []model.Question {
	out := make([]model.Question, len(questions))
	for i := range questions {
		out[i] = Alternatives(rng, questions[i])
	}
	return Questions(rng, out)
}

func cloneAll(questions []model.Question) []model.Question {
	out := make([]model.Question, len(questions))
	for i := range questions {
		out[i] = questions[i].Clone()
	}
	return out
}
