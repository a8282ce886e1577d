package segment

import (
	"strconv"
	"strings"
)

// Question numbering is scanned over a bounded range; documents with more
// than 99 questions are out of scope.
const maxQuestionNumber = 99

const questionWord = "Questão"

const alternativeLetters = "ABCDEabcde"

// isQuestionStart reports whether the text opens a new question, i.e.
// begins with "<n>.", "<n>)" or "Questão <n>" for n in 1..99.
func isQuestionStart(text string) bool {
	return hasNumberMarker(text) || hasQuestionWord(text)
}

// hasNumberMarker reports a leading "<n>." or "<n>)" marker.
func hasNumberMarker(text string) bool {
	i := 0
	for i < len(text) && text[i] >= '0' && text[i] <= '9' {
		i++
	}
	if i == 0 || i > 2 {
		return false
	}
	if i >= len(text) || (text[i] != '.' && text[i] != ')') {
		return false
	}
	n, err := strconv.Atoi(text[:i])
	return err == nil && n >= 1 && n <= maxQuestionNumber
}

// hasQuestionWord reports a leading "Questão <n>" marker.
func hasQuestionWord(text string) bool {
	if !strings.HasPrefix(text, questionWord+" ") {
		return false
	}
	rest := text[len(questionWord)+1:]
	i := 0
	for i < len(rest) && rest[i] >= '0' && rest[i] <= '9' {
		i++
	}
	if i == 0 || i > 2 {
		return false
	}
	n, err := strconv.Atoi(rest[:i])
	return err == nil && n >= 1 && n <= maxQuestionNumber
}

// alternativeMarker returns the leading alternative marker ("(A)" or
// "A)") when the text is an alternative, or "" otherwise.
func alternativeMarker(text string) string {
	for _, letter := range alternativeLetters {
		parenthesized := "(" + string(letter) + ")"
		if strings.HasPrefix(text, parenthesized) {
			return parenthesized
		}
		bare := string(letter) + ")"
		if strings.HasPrefix(text, bare) {
			return bare
		}
	}
	return ""
}

// normalizeAlternative rebuilds the alternative text as marker plus the
// remainder after removing one occurrence of the marker, collapsing the
// duplicated-marker artifact some source formats produce ("(A)(A) x").
func normalizeAlternative(text, marker string) string {
	rest := strings.TrimSpace(strings.Replace(text, marker, "", 1))
	// The duplicate, when present, survives the first removal.
	rest = strings.TrimSpace(strings.TrimPrefix(rest, marker))
	return marker + " " + rest
}
