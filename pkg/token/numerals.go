package token

import "strings"

// Cardinal numerals, Russian and Ukrainian.
var cardinalWords = map[string]int{
	"один":   1,
	"одна":   1,
	"одно":   1,
	"одне":   1,
	"два":    2,
	"две":    2,
	"дві":    2,
	"три":    3,
	"четыре": 4,
	"чотири": 4,
	"пять":   5,
	"шесть":  6,
	"шість":  6,
	"семь":   7,
	"сім":    7,
	"восемь": 8,
	"вісім":  8,
	"девять": 9,
	"десять": 10,
}

type ordinalStem struct {
	stem    string
	value   int
	endings []string
}

var (
	ruAdjEndings    = []string{"ый", "ий", "ой", "ая", "ое", "ого", "ому", "ым", "ом", "ую", "ые", "ых", "ыми"}
	ruThirdEndings  = []string{"ий", "ья", "ье", "ьего", "ьему", "ьим", "ьем", "ью", "ьей", "ьи", "ьих"}
	ukAdjEndings    = []string{"ий", "а", "е", "ого", "ому", "ій", "ої", "у", "і", "им"}
	ukThirdEndings  = []string{"ій", "я", "є", "ього", "ьому", "ю", "ьої"}
	ordinalStemList = []ordinalStem{
		{"перв", 1, ruAdjEndings},
		{"втор", 2, ruAdjEndings},
		{"трет", 3, ruThirdEndings},
		{"четверт", 4, ruAdjEndings},
		{"пят", 5, ruAdjEndings},
		{"шест", 6, ruAdjEndings},
		{"седьм", 7, ruAdjEndings},
		{"восьм", 8, ruAdjEndings},
		{"девят", 9, ruAdjEndings},
		{"десят", 10, ruAdjEndings},
		{"перш", 1, ukAdjEndings},
		{"трет", 3, ukThirdEndings},
		{"четверт", 4, ukAdjEndings},
		{"шост", 6, ukAdjEndings},
		{"сьом", 7, ukAdjEndings},
		{"восьм", 8, ukAdjEndings},
		{"десят", 10, ukAdjEndings},
	}
)

// Ukrainian forms of "second" listed one by one. The rest of the paradigm
// (другого, другому, друга) spells Russian "other" and "friend".
var ukSecondForms = []string{"другий", "друге", "другій", "другої"}

var ordinalWords = buildOrdinalWords()

func buildOrdinalWords() map[string]int {
	words := make(map[string]int)
	for _, w := range ukSecondForms {
		words[w] = 2
	}
	for _, s := range ordinalStemList {
		for _, e := range s.endings {
			words[s.stem+e] = s.value
		}
	}
	return words
}

// NumeralWord returns the value of a spelled-out cardinal or ordinal numeral
// in the range 1..10.
func NumeralWord(word string) (int, bool) {
	w := strings.ToLower(word)
	if v, ok := cardinalWords[w]; ok {
		return v, true
	}
	v, ok := ordinalWords[w]
	return v, ok
}
