package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

type styledRune struct {
	s       string
	width   int
	isSpace bool
}

// rows holds the three aligned display rows: the question, the typed answer
// and the caret. Column i of every row belongs to question rune i.
type rows struct {
	question []styledRune
	answer   []styledRune
	caret    []styledRune
}

func buildRows(question, confirmed []rune, wrong rune, hasWrong bool, caret string) rows {
	cursorIndex := len(confirmed)
	return rows{
		question: buildQuestionRow(question, cursorIndex, hasWrong),
		answer:   buildAnswerRow(question, confirmed, wrong, hasWrong),
		caret:    buildCaretRow(question, caret),
	}
}

func buildQuestionRow(question []rune, cursorIndex int, hasWrong bool) []styledRune {
	words := findWords(question)
	currentWord := wordForCursor(words, cursorIndex)

	out := make([]styledRune, 0, len(question))
	for i, target := range question {
		style := pendingStyle
		switch {
		case i < cursorIndex:
			style = correctStyle
		case i == cursorIndex && hasWrong:
			style = incorrectStyle.Underline(true)
		case i == cursorIndex:
			style = cursorStyle
		case target != ' ' && currentWord != nil && i >= currentWord.start && i < currentWord.end:
			style = currentWordStyle
		}
		out = append(out, styledRune{
			s:       style.Render(string(target)),
			width:   runewidth.RuneWidth(target),
			isSpace: target == ' ',
		})
	}
	return out
}

func buildAnswerRow(question, confirmed []rune, wrong rune, hasWrong bool) []styledRune {
	out := make([]styledRune, 0, len(confirmed)+1)
	for i, r := range confirmed {
		out = append(out, styledRune{
			s:       correctStyle.Render(string(r)),
			width:   columnWidth(question, i),
			isSpace: r == ' ',
		})
	}
	if hasWrong {
		displayed := wrong
		if wrong == ' ' {
			displayed = '•'
		}
		out = append(out, styledRune{
			s:     incorrectStyle.Render(string(displayed)),
			width: runewidth.RuneWidth(displayed),
		})
	}
	return out
}

// buildCaretRow widens every caret cell to the question column beneath it so
// the marker stays aligned with wide characters.
func buildCaretRow(question []rune, caret string) []styledRune {
	runes := []rune(caret)
	out := make([]styledRune, 0, len(runes))
	for i, r := range runes {
		width := columnWidth(question, i)
		cell := string(r)
		if r == ' ' {
			cell = strings.Repeat(" ", width)
		} else {
			cell = caretStyle.Render(cell)
		}
		out = append(out, styledRune{s: cell, width: width, isSpace: r == ' '})
	}
	return out
}

func columnWidth(question []rune, i int) int {
	if i < len(question) {
		if w := runewidth.RuneWidth(question[i]); w > 0 {
			return w
		}
	}
	return 1
}

type wordRange struct {
	start int
	end   int
}

func findWords(targetRunes []rune) []wordRange {
	words := []wordRange{}
	start := -1
	for i, r := range targetRunes {
		if r == ' ' {
			if start != -1 {
				words = append(words, wordRange{start: start, end: i})
				start = -1
			}
			continue
		}
		if start == -1 {
			start = i
		}
	}
	if start != -1 {
		words = append(words, wordRange{start: start, end: len(targetRunes)})
	}
	return words
}

func wordForCursor(words []wordRange, cursorIndex int) *wordRange {
	if len(words) == 0 {
		return nil
	}
	if cursorIndex < 0 {
		return &words[0]
	}
	for i, w := range words {
		if cursorIndex < w.end {
			return &words[i]
		}
	}
	return nil
}

func renderStyledRunes(runes []styledRune) string {
	var b strings.Builder
	for _, item := range runes {
		b.WriteString(item.s)
	}
	return b.String()
}

type span struct {
	start int
	end   int
}

// lineSpans breaks the question row into lines no wider than width, cutting
// after the last space that fits. Spaces are kept as visible columns so the
// cursor never lands on a dropped one.
func lineSpans(runes []styledRune, width int) []span {
	if width <= 0 || len(runes) == 0 {
		return []span{{start: 0, end: len(runes)}}
	}
	var spans []span
	start := 0
	lineWidth := 0
	lastSpace := -1
	for i := 0; i < len(runes); {
		item := runes[i]
		if lineWidth+item.width > width && i > start {
			end := i
			if lastSpace >= start {
				end = lastSpace + 1
			}
			spans = append(spans, span{start: start, end: end})
			start = end
			lineWidth = 0
			lastSpace = -1
			i = start
			continue
		}
		lineWidth += item.width
		if item.isSpace {
			lastSpace = i
		}
		i++
	}
	return append(spans, span{start: start, end: len(runes)})
}

func clip(row []styledRune, sp span) []styledRune {
	start, end := sp.start, sp.end
	if start > len(row) {
		start = len(row)
	}
	if end > len(row) {
		end = len(row)
	}
	return row[start:end]
}

func (r rows) render(width int) string {
	var lines []string
	for _, sp := range lineSpans(r.question, width) {
		lines = append(lines,
			renderStyledRunes(clip(r.question, sp)),
			renderStyledRunes(clip(r.answer, sp)),
			renderStyledRunes(clip(r.caret, sp)),
		)
	}
	return strings.Join(lines, "\n")
}
