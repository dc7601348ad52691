// Package token provides the lexical-unit stream consumed by the numbering recognizer.
package token

import (
	"unicode"
	"unicode/utf8"
)

// Kind represents the inferred kind of a lexical unit.
type Kind int

const (
	KindText Kind = iota
	KindNumber
	KindBracket
	KindReferent
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindBracket:
		return "bracket"
	case KindReferent:
		return "referent"
	default:
		return "text"
	}
}

// Spelling represents how a numeric literal was written.
type Spelling int

const (
	SpellingDigits Spelling = iota
	SpellingWords
)

// Token is one lexical unit of the stream.
type Token struct {
	// Begin and End are rune offsets into the source text, End exclusive.
	Begin int `json:"begin"`
	End   int `json:"end"`

	Kind Kind   `json:"kind"`
	Text string `json:"text"`

	// WhitespacesBefore counts whitespace runes between this token and the previous one.
	WhitespacesBefore int  `json:"whitespaces_before,omitempty"`
	NewlineBefore     bool `json:"newline_before,omitempty"`
	NewlineAfter      bool `json:"newline_after,omitempty"`
	Line              int  `json:"line"`

	// Value and Spelling are set for KindNumber only.
	Value    int      `json:"value,omitempty"`
	Spelling Spelling `json:"spelling,omitempty"`
}

// IsWhitespaceBefore reports whether any whitespace precedes the token.
func (t Token) IsWhitespaceBefore() bool {
	return t.WhitespacesBefore > 0 || t.NewlineBefore
}

// IsChar reports whether the token is exactly the given rune.
func (t Token) IsChar(r rune) bool {
	if t.Kind == KindNumber || len(t.Text) == 0 {
		return false
	}
	first, size := utf8.DecodeRuneInString(t.Text)
	return size == len(t.Text) && first == r
}

// IsCharOf reports whether the token is a single rune contained in chars.
func (t Token) IsCharOf(chars string) bool {
	for _, r := range chars {
		if t.IsChar(r) {
			return true
		}
	}
	return false
}

// Rune returns the only rune of a single-rune token, or utf8.RuneError.
func (t Token) Rune() rune {
	if utf8.RuneCountInString(t.Text) != 1 {
		return utf8.RuneError
	}
	r, _ := utf8.DecodeRuneInString(t.Text)
	return r
}

// IsLetters reports whether the token is a text run consisting of letters only.
func (t Token) IsLetters() bool {
	if t.Kind != KindText || t.Text == "" {
		return false
	}
	for _, r := range t.Text {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// IsLowerStart reports whether the token is a letter run starting with a lowercase letter.
func (t Token) IsLowerStart() bool {
	if !t.IsLetters() {
		return false
	}
	r, _ := utf8.DecodeRuneInString(t.Text)
	return unicode.IsLower(r)
}

// IsNumber reports whether the token is a numeric literal.
func (t Token) IsNumber() bool {
	return t.Kind == KindNumber
}

// Stream is an ordered sequence of tokens addressed by index.
type Stream []Token

// At returns the token at index i and whether it exists.
func (s Stream) At(i int) (Token, bool) {
	if i < 0 || i >= len(s) {
		return Token{}, false
	}
	return s[i], true
}

// IsLineStart reports whether the token at index i begins a line.
func (s Stream) IsLineStart(i int) bool {
	if i == 0 {
		return true
	}
	t, ok := s.At(i)
	return ok && t.NewlineBefore
}

// IsLineEnd reports whether the token at index i ends a line or the stream.
func (s Stream) IsLineEnd(i int) bool {
	t, ok := s.At(i)
	if !ok {
		return false
	}
	return t.NewlineAfter || i == len(s)-1
}

// Text returns the source text covered by tokens from..to inclusive, rebuilt
// from token text and the recorded whitespace.
func (s Stream) Text(from, to int) string {
	var b []byte
	for i := from; i <= to && i < len(s); i++ {
		if i > from {
			for n := 0; n < s[i].WhitespacesBefore; n++ {
				b = append(b, ' ')
			}
		}
		b = append(b, s[i].Text...)
	}
	return string(b)
}
