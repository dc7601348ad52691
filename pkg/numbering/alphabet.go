package numbering

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
)

// Script is the writing system of a letter.
type Script int

const (
	ScriptNone Script = iota
	ScriptLatin
	ScriptCyrillic
)

// String returns the script name.
func (s Script) String() string {
	switch s {
	case ScriptLatin:
		return "latin"
	case ScriptCyrillic:
		return "cyrillic"
	default:
		return "none"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Script) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ScriptOf returns the script of r.
func ScriptOf(r rune) Script {
	switch {
	case unicode.Is(unicode.Latin, r):
		return ScriptLatin
	case unicode.Is(unicode.Cyrillic, r):
		return ScriptCyrillic
	default:
		return ScriptNone
	}
}

// Upper-case Latin letters and their Cyrillic look-alikes.
var latinTwins = map[rune]rune{
	'A': 'А',
	'B': 'В',
	'C': 'С',
	'E': 'Е',
	'H': 'Н',
	'I': 'І',
	'K': 'К',
	'M': 'М',
	'O': 'О',
	'P': 'Р',
	'T': 'Т',
	'X': 'Х',
	'Y': 'У',
}

var cyrillicTwins = invertTwins(latinTwins)

func invertTwins(m map[rune]rune) map[rune]rune {
	out := make(map[rune]rune, len(m))
	for k, v := range m {
		out[v] = k
	}
	return out
}

// Twin returns the visually identical letter of the other script, keeping
// the case of r.
func Twin(r rune) (rune, bool) {
	upper := unicode.ToUpper(r)
	twin, ok := latinTwins[upper]
	if !ok {
		twin, ok = cyrillicTwins[upper]
	}
	if !ok {
		return 0, false
	}
	if unicode.IsLower(r) {
		twin = unicode.ToLower(twin)
	}
	return twin, true
}

// romanLetterValue returns the Roman digit value of a single letter, mapping
// Cyrillic look-alikes to their Latin counterpart.
func romanLetterValue(r rune) (int, bool) {
	upper := unicode.ToUpper(r)
	if latin, ok := cyrillicTwins[upper]; ok {
		upper = latin
	}
	v, ok := romanDigits[upper]
	return v, ok
}

// foldLetter case-folds a single letter.
func foldLetter(r rune) rune {
	folded := cases.Fold().String(string(r))
	f, size := utf8.DecodeRuneInString(folded)
	if size != len(folded) {
		return unicode.ToLower(r)
	}
	return f
}

// Adjacency overrides the distance between two letters of the ordinal
// alphabet whose code points are not consecutive.
type Adjacency struct {
	First    string `yaml:"first" json:"first"`
	Second   string `yaml:"second" json:"second"`
	Distance int    `yaml:"distance" json:"distance"`
}

type letterPair [2]rune

func compileAdjacency(list []Adjacency) (map[letterPair]int, error) {
	out := make(map[letterPair]int, len(list))
	for _, a := range list {
		first, ok := singleRune(a.First)
		if !ok {
			return nil, fmt.Errorf("adjacency first %q: must be a single letter", a.First)
		}
		second, ok := singleRune(a.Second)
		if !ok {
			return nil, fmt.Errorf("adjacency second %q: must be a single letter", a.Second)
		}
		if a.Distance <= 0 {
			return nil, fmt.Errorf("adjacency %s-%s: distance must be positive", a.First, a.Second)
		}
		out[letterPair{foldLetter(first), foldLetter(second)}] = a.Distance
	}
	return out, nil
}

func singleRune(s string) (rune, bool) {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || size != len(s) || !unicode.IsLetter(r) {
		return 0, false
	}
	return r, true
}
