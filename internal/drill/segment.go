package drill

import (
	"strings"
	"unicode/utf8"
)

// Question is one displayed chunk of the word pool.
type Question struct {
	Text string
	// Start and End bound the consumed pool span, End exclusive.
	Start int
	End   int
}

// Len returns the number of characters to type.
func (q Question) Len() int {
	return utf8.RuneCountInString(q.Text)
}

// NextQuestion accumulates words from pool[start:], each followed by a single
// space, until the text reaches threshold characters or the pool runs out.
// The trailing space after the last word is part of the question.
func NextQuestion(pool []string, start, threshold int) Question {
	var b strings.Builder
	length := 0
	end := start
	for end < len(pool) {
		word := pool[end]
		b.WriteString(word)
		b.WriteByte(' ')
		length += utf8.RuneCountInString(word) + 1
		end++
		if length >= threshold {
			break
		}
	}
	return Question{Text: b.String(), Start: start, End: end}
}
