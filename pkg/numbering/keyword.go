package numbering

import (
	"strings"
	"unicode/utf8"

	"github.com/kljensen/snowball"
)

// minStemRunes is the shortest keyword that is matched by stem. Shorter
// keywords are abbreviations ("п", "ст") and only match literally.
const minStemRunes = 4

// keywordSet matches structural keywords in any inflected form.
type keywordSet struct {
	exact map[string]bool
	stems map[string]bool
}

func newKeywordSet(words []string) keywordSet {
	k := keywordSet{
		exact: make(map[string]bool, len(words)),
		stems: make(map[string]bool, len(words)),
	}
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		k.exact[w] = true
		if utf8.RuneCountInString(w) >= minStemRunes {
			k.stems[stemWord(w)] = true
		}
	}
	return k
}

func (k keywordSet) match(word string) bool {
	w := strings.ToLower(word)
	if k.exact[w] {
		return true
	}
	if utf8.RuneCountInString(w) < minStemRunes {
		return false
	}
	return k.stems[stemWord(w)]
}

// stemWord stems with the Snowball stemmer of the word's script.
func stemWord(w string) string {
	language := "russian"
	if r, _ := utf8.DecodeRuneInString(w); ScriptOf(r) == ScriptLatin {
		language = "english"
	}
	stemmed, err := snowball.Stem(w, language, true)
	if err != nil || stemmed == "" {
		return w
	}
	return stemmed
}
