package token

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// maxDigitValue saturates digit runs so that long runs cannot overflow.
const maxDigitValue = 1_000_000

const bracketChars = "()<>[]"

// Tokenize splits text into a token stream.
//
// Digit runs become KindNumber tokens, letter runs become KindText tokens
// (or KindNumber with SpellingWords when the run is a known numeral word),
// and every other non-space rune is a token of its own. The text is
// NFC-normalized first; offsets refer to the normalized text.
func Tokenize(text string) Stream {
	runes := []rune(norm.NFC.String(text))
	stream := make(Stream, 0, len(runes)/3+1)

	spaces := 0
	newline := false
	line := 0

	emit := func(tok Token) {
		tok.WhitespacesBefore = spaces
		tok.NewlineBefore = newline
		tok.Line = line
		if newline && len(stream) > 0 {
			stream[len(stream)-1].NewlineAfter = true
		}
		stream = append(stream, tok)
		spaces = 0
		newline = false
	}

	for i := 0; i < len(runes); {
		r := runes[i]
		switch {
		case r == '\n':
			spaces++
			newline = true
			line++
			i++

		case unicode.IsSpace(r):
			spaces++
			i++

		case isASCIIDigit(r):
			start := i
			value := 0
			for i < len(runes) && isASCIIDigit(runes[i]) {
				if value < maxDigitValue {
					value = value*10 + int(runes[i]-'0')
				}
				i++
			}
			emit(Token{
				Begin:    start,
				End:      i,
				Kind:     KindNumber,
				Text:     string(runes[start:i]),
				Value:    value,
				Spelling: SpellingDigits,
			})

		case unicode.IsLetter(r):
			start := i
			for i < len(runes) && (unicode.IsLetter(runes[i]) || unicode.Is(unicode.Mn, runes[i])) {
				i++
			}
			word := string(runes[start:i])
			tok := Token{Begin: start, End: i, Kind: KindText, Text: word}
			if v, ok := NumeralWord(word); ok {
				tok.Kind = KindNumber
				tok.Value = v
				tok.Spelling = SpellingWords
			}
			emit(tok)

		default:
			kind := KindText
			if strings.ContainsRune(bracketChars, r) {
				kind = KindBracket
			}
			emit(Token{Begin: i, End: i + 1, Kind: kind, Text: string(r)})
			i++
		}
	}

	if len(stream) > 0 && newline {
		stream[len(stream)-1].NewlineAfter = true
	}
	return stream
}

func isASCIIDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
