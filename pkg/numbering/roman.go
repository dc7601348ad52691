package numbering

import (
	"strings"
	"unicode"
)

var romanDigits = map[rune]int{
	'I': 1, 'V': 5, 'X': 10, 'L': 50,
	'C': 100, 'D': 500, 'M': 1000,
}

var romanTable = []struct {
	value  int
	symbol string
}{
	{1000, "M"}, {900, "CM"}, {500, "D"}, {400, "CD"},
	{100, "C"}, {90, "XC"}, {50, "L"}, {40, "XL"},
	{10, "X"}, {9, "IX"}, {5, "V"}, {4, "IV"}, {1, "I"},
}

// ParseRoman converts a Roman numeral to its value. Cyrillic look-alikes of
// Roman digits are accepted, letters must share one case, and only the
// canonical spelling of a value is accepted ("IIII" and "VX" are rejected).
func ParseRoman(s string) (int, bool) {
	if s == "" {
		return 0, false
	}

	var latin strings.Builder
	hasUpper, hasLower := false, false
	for _, r := range s {
		if unicode.IsUpper(r) {
			hasUpper = true
		} else if unicode.IsLower(r) {
			hasLower = true
		}
		upper := unicode.ToUpper(r)
		if l, ok := cyrillicTwins[upper]; ok {
			upper = l
		}
		if _, ok := romanDigits[upper]; !ok {
			return 0, false
		}
		latin.WriteRune(upper)
	}
	if hasUpper && hasLower {
		return 0, false
	}

	roman := []rune(latin.String())
	total := 0
	for i, r := range roman {
		current := romanDigits[r]
		if i+1 < len(roman) && current < romanDigits[roman[i+1]] {
			total -= current
			continue
		}
		total += current
	}
	if total <= 0 || FormatRoman(total) != string(roman) {
		return 0, false
	}
	return total, true
}

// FormatRoman renders n (1..3999) as an upper-case Roman numeral. Other
// values are rendered as an empty string.
func FormatRoman(n int) string {
	if n <= 0 || n >= 4000 {
		return ""
	}
	var b strings.Builder
	for _, entry := range romanTable {
		for n >= entry.value {
			b.WriteString(entry.symbol)
			n -= entry.value
		}
	}
	return b.String()
}
