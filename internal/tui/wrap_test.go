package tui

import (
	"strings"
	"testing"
)

func plainRunes(s string) []styledRune {
	out := make([]styledRune, 0, len(s))
	for _, r := range s {
		out = append(out, styledRune{s: string(r), width: 1, isSpace: r == ' '})
	}
	return out
}

func TestQuestionRowStyles(t *testing.T) {
	row := buildQuestionRow([]rune("one two"), 1, false)
	if len(row) != 7 {
		t.Fatalf("expected 7 runes, got %d", len(row))
	}
	if row[0].s != correctStyle.Render("o") {
		t.Fatalf("expected correct style for confirmed rune")
	}
	if row[1].s != cursorStyle.Render("n") {
		t.Fatalf("expected cursor style at cursor")
	}
	if row[2].s != currentWordStyle.Render("e") {
		t.Fatalf("expected current word style for rest of current word")
	}
	if row[4].s != pendingStyle.Render("t") {
		t.Fatalf("expected pending style for next word")
	}
}

func TestQuestionRowMarksWrongCursor(t *testing.T) {
	row := buildQuestionRow([]rune("ab"), 1, true)
	if row[1].s != incorrectStyle.Underline(true).Render("b") {
		t.Fatalf("expected incorrect cursor style after a wrong key")
	}
}

func TestAnswerRowShowsWrongKey(t *testing.T) {
	row := buildAnswerRow([]rune("cat "), []rune("c"), 'x', true)
	if len(row) != 2 {
		t.Fatalf("expected 2 runes, got %d", len(row))
	}
	if row[0].s != correctStyle.Render("c") {
		t.Fatalf("expected confirmed rune in correct style")
	}
	if row[1].s != incorrectStyle.Render("x") {
		t.Fatalf("expected wrong rune in incorrect style")
	}
}

func TestAnswerRowWrongSpaceDot(t *testing.T) {
	row := buildAnswerRow([]rune("ab"), []rune("a"), ' ', true)
	if row[1].s != incorrectStyle.Render("•") {
		t.Fatalf("expected red dot for wrong space")
	}
}

func TestCaretRowFollowsWideColumns(t *testing.T) {
	row := buildCaretRow([]rune("日b"), " ^")
	if len(row) != 2 {
		t.Fatalf("expected 2 cells, got %d", len(row))
	}
	if row[0].s != "  " || row[0].width != 2 {
		t.Fatalf("expected a double-width blank, got %q (%d)", row[0].s, row[0].width)
	}
	if row[1].s != caretStyle.Render("^") {
		t.Fatalf("expected caret marker")
	}
}

func TestLineSpansBreakAfterSpace(t *testing.T) {
	spans := lineSpans(plainRunes("hello world again"), 12)
	want := []span{{0, 12}, {12, 17}}
	if len(spans) != len(want) {
		t.Fatalf("expected %v, got %v", want, spans)
	}
	for i := range want {
		if spans[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, spans)
		}
	}
}

func TestLineSpansHardBreakLongWord(t *testing.T) {
	spans := lineSpans(plainRunes("abcdefgh"), 3)
	want := []span{{0, 3}, {3, 6}, {6, 8}}
	if len(spans) != len(want) {
		t.Fatalf("expected %v, got %v", want, spans)
	}
	for i := range want {
		if spans[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, spans)
		}
	}
}

func TestLineSpansNoWidth(t *testing.T) {
	spans := lineSpans(plainRunes("abc"), 0)
	if len(spans) != 1 || spans[0] != (span{0, 3}) {
		t.Fatalf("expected single span, got %v", spans)
	}
}

func TestRowsRenderAlignsRowsPerLine(t *testing.T) {
	r := rows{
		question: plainRunes("ab cd "),
		answer:   plainRunes("ab c"),
		caret:    plainRunes("    ^"),
	}
	out := r.render(3)
	want := strings.Join([]string{
		"ab ", "ab ", "   ",
		"cd ", "c", " ^",
	}, "\n")
	if out != want {
		t.Fatalf("unexpected render:\n%q\nwant:\n%q", out, want)
	}
}
