// Package numbering recognizes and compares structural numbers in legal and
// postal text: clause, item and paragraph numbers such as "5.2.1-a", "IV.3"
// or "(б)".
//
// A single glyph can be read several ways at once ("I" is a Roman one, a
// Latin letter and a Ukrainian Cyrillic letter), so every level of a number
// carries all of its plausible readings as candidates. Comparisons pick the
// best-ranked pair of readings, and Disambiguate prunes the candidates of a
// run of numbers using the order in which they appear in the document.
//
// Recognition never fails with an error: a position that does not hold a
// number yields nil, and numbers with no common reading compare as
// Uncomparable.
package numbering

import (
	"encoding/json"
	"fmt"
	"strconv"
	"unicode"
)

// CandidateKind identifies the active variant of a Candidate.
type CandidateKind int

const (
	KindDigit CandidateKind = iota
	KindRoman
	KindLetter
)

// String returns the kind name.
func (k CandidateKind) String() string {
	switch k {
	case KindDigit:
		return "digit"
	case KindRoman:
		return "roman"
	case KindLetter:
		return "letter"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k CandidateKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Candidate is one possible reading of a number glyph. Exactly one variant is
// active, selected by Kind: Digit and Roman use Value, Letter uses Letter and
// Upper.
type Candidate struct {
	Kind   CandidateKind
	Value  int
	Letter rune
	Upper  bool
}

// DigitCandidate returns an arabic-digit reading.
func DigitCandidate(value int) Candidate {
	return Candidate{Kind: KindDigit, Value: value}
}

// RomanCandidate returns a Roman-numeral reading.
func RomanCandidate(value int) Candidate {
	return Candidate{Kind: KindRoman, Value: value}
}

// LetterCandidate returns an ordinal-letter reading.
func LetterCandidate(r rune) Candidate {
	return Candidate{Kind: KindLetter, Letter: r, Upper: unicode.IsUpper(r)}
}

// IsOne reports whether the reading means "first": digit 1 or the letter a
// in either script and either case.
func (c Candidate) IsOne() bool {
	switch c.Kind {
	case KindDigit:
		return c.Value == 1
	case KindLetter:
		switch c.Letter {
		case 'a', 'A', 'а', 'А':
			return true
		}
	}
	return false
}

// Script returns the script of a letter reading, ScriptNone otherwise.
func (c Candidate) Script() Script {
	if c.Kind != KindLetter {
		return ScriptNone
	}
	return ScriptOf(c.Letter)
}

// String renders the reading: digits in arabic, Roman numerals in upper case,
// letters as written.
func (c Candidate) String() string {
	switch c.Kind {
	case KindDigit:
		return strconv.Itoa(c.Value)
	case KindRoman:
		return FormatRoman(c.Value)
	case KindLetter:
		return string(c.Letter)
	}
	return ""
}

type candidateJSON struct {
	Kind   CandidateKind `json:"kind"`
	Value  int           `json:"value,omitempty"`
	Letter string        `json:"letter,omitempty"`
	Script Script        `json:"script,omitempty"`
	Upper  bool          `json:"upper,omitempty"`
	Text   string        `json:"text"`
}

// MarshalJSON implements json.Marshaler.
func (c Candidate) MarshalJSON() ([]byte, error) {
	out := candidateJSON{Kind: c.Kind, Text: c.String()}
	switch c.Kind {
	case KindLetter:
		out.Letter = string(c.Letter)
		out.Script = c.Script()
		out.Upper = c.Upper
	default:
		out.Value = c.Value
	}
	return json.Marshal(out)
}
