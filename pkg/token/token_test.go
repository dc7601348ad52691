package token

import (
	"testing"
)

func TestTokenize(t *testing.T) {
	ts := Tokenize("5.2) Пункт  первый\n(б)")

	want := []struct {
		text   string
		kind   Kind
		spaces int
		line   int
	}{
		{"5", KindNumber, 0, 0},
		{".", KindText, 0, 0},
		{"2", KindNumber, 0, 0},
		{")", KindBracket, 0, 0},
		{"Пункт", KindText, 1, 0},
		{"первый", KindNumber, 2, 0},
		{"(", KindBracket, 1, 1},
		{"б", KindText, 0, 1},
		{")", KindBracket, 0, 1},
	}

	if len(ts) != len(want) {
		t.Fatalf("Tokenize() returned %d tokens, want %d", len(ts), len(want))
	}
	for i, w := range want {
		tok := ts[i]
		if tok.Text != w.text || tok.Kind != w.kind {
			t.Errorf("token %d = %q (%v), want %q (%v)", i, tok.Text, tok.Kind, w.text, w.kind)
		}
		if tok.WhitespacesBefore != w.spaces {
			t.Errorf("token %d WhitespacesBefore = %d, want %d", i, tok.WhitespacesBefore, w.spaces)
		}
		if tok.Line != w.line {
			t.Errorf("token %d Line = %d, want %d", i, tok.Line, w.line)
		}
	}

	if ts[0].Value != 5 || ts[0].Spelling != SpellingDigits {
		t.Errorf("digit token = %+v", ts[0])
	}
	if ts[5].Value != 1 || ts[5].Spelling != SpellingWords {
		t.Errorf("numeral word token = %+v", ts[5])
	}
	if !ts[5].NewlineAfter || !ts[6].NewlineBefore {
		t.Errorf("newline flags not set around the line break")
	}
	if ts[4].Begin != 5 || ts[4].End != 10 {
		t.Errorf("Пункт offsets = %d..%d, want 5..10", ts[4].Begin, ts[4].End)
	}
}

func TestTokenizeEmpty(t *testing.T) {
	if ts := Tokenize(" \n\t "); len(ts) != 0 {
		t.Errorf("Tokenize(whitespace) = %v, want empty", ts)
	}
}

func TestTokenizeSaturatesLongDigitRuns(t *testing.T) {
	ts := Tokenize("123456789012345678901234567890")
	if len(ts) != 1 {
		t.Fatalf("Tokenize() returned %d tokens, want 1", len(ts))
	}
	if ts[0].Value < maxDigitValue {
		t.Errorf("Value = %d, want at least %d", ts[0].Value, maxDigitValue)
	}
}

func TestTokenizeNormalizesCombiningMarks(t *testing.T) {
	// "й" written as и + combining breve
	ts := Tokenize("пункти\u0306")
	if len(ts) != 1 {
		t.Fatalf("Tokenize() returned %d tokens, want 1", len(ts))
	}
	if ts[0].Text != "пункт\u0439" {
		t.Errorf("Text = %q, want NFC form", ts[0].Text)
	}
}

func TestNumeralWord(t *testing.T) {
	tests := []struct {
		word string
		want int
		ok   bool
	}{
		{"первый", 1, true},
		{"Первая", 1, true},
		{"третьего", 3, true},
		{"третій", 3, true},
		{"восьмой", 8, true},
		{"перший", 1, true},
		{"сьома", 7, true},
		{"пять", 5, true},
		{"дві", 2, true},
		{"другий", 2, true},
		{"другої", 2, true},
		{"другого", 0, false},
		{"друга", 0, false},
		{"десятого", 10, true},
		{"первенство", 0, false},
		{"сто", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			got, ok := NumeralWord(tt.word)
			if ok != tt.ok || got != tt.want {
				t.Errorf("NumeralWord(%q) = %d, %v; want %d, %v", tt.word, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestTokenPredicates(t *testing.T) {
	ts := Tokenize("а) Б 12")

	if !ts[0].IsLetters() || !ts[0].IsLowerStart() {
		t.Errorf("а: IsLetters/IsLowerStart = false")
	}
	if ts[2].IsLowerStart() {
		t.Errorf("Б: IsLowerStart = true")
	}
	if !ts[1].IsChar(')') || !ts[1].IsCharOf(".)") || ts[1].IsCharOf(".(") {
		t.Errorf(") char predicates are wrong")
	}
	if ts[3].IsChar('1') || !ts[3].IsNumber() || ts[3].IsLetters() {
		t.Errorf("12 predicates are wrong")
	}
	if ts[0].Rune() != 'а' {
		t.Errorf("Rune() = %q, want а", ts[0].Rune())
	}
	if !ts[2].IsWhitespaceBefore() || ts[1].IsWhitespaceBefore() {
		t.Errorf("IsWhitespaceBefore is wrong")
	}
}

func TestStream(t *testing.T) {
	ts := Tokenize("1.  Общие\nположения")

	if _, ok := ts.At(-1); ok {
		t.Errorf("At(-1) ok")
	}
	if _, ok := ts.At(len(ts)); ok {
		t.Errorf("At(len) ok")
	}
	if !ts.IsLineStart(0) || ts.IsLineStart(2) || !ts.IsLineStart(3) {
		t.Errorf("IsLineStart is wrong")
	}
	if !ts.IsLineEnd(2) || ts.IsLineEnd(1) || !ts.IsLineEnd(3) {
		t.Errorf("IsLineEnd is wrong")
	}
	if got := ts.Text(0, 2); got != "1.  Общие" {
		t.Errorf("Text(0, 2) = %q", got)
	}
	if got := ts.Text(2, 10); got != "Общие положения" {
		t.Errorf("Text(2, 10) = %q", got)
	}
}

func TestKindString(t *testing.T) {
	tests := map[Kind]string{
		KindText:     "text",
		KindNumber:   "number",
		KindBracket:  "bracket",
		KindReferent: "referent",
	}
	for k, want := range tests {
		if got := k.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", int(k), got, want)
		}
	}
}
