package numbering

import (
	"unicode"
	"unicode/utf8"

	"github.com/coolbeans/numbering/pkg/token"
)

const (
	openBrackets = "(<"
	stopChars    = ".)>"
	suffixChars  = ".)>]\\"
)

var closingBracket = map[string]string{"(": ")", "<": ">"}

// Level is one dot-separated segment of a structural number with all of its
// readings. Candidates are kept in discovery order; the first one is the
// preferred reading.
type Level struct {
	// BeginToken and EndToken are inclusive token indexes, prefix and suffix included.
	BeginToken int         `json:"begin_token"`
	EndToken   int         `json:"end_token"`
	Candidates []Candidate `json:"candidates"`
	RawText    string      `json:"raw_text"`
	Prefix     string      `json:"prefix,omitempty"`
	Suffix     string      `json:"suffix,omitempty"`
}

// Preferred returns the first candidate.
func (l *Level) Preferred() Candidate {
	if len(l.Candidates) == 0 {
		return Candidate{}
	}
	return l.Candidates[0]
}

// IsOne reports whether any reading of the level means "first".
func (l *Level) IsOne() bool {
	for _, c := range l.Candidates {
		if c.IsOne() {
			return true
		}
	}
	return false
}

// HasKind reports whether the level has a reading of the given kind.
func (l *Level) HasKind(kind CandidateKind) bool {
	for _, c := range l.Candidates {
		if c.Kind == kind {
			return true
		}
	}
	return false
}

// Clone returns a deep copy.
func (l Level) Clone() Level {
	l.Candidates = append([]Candidate(nil), l.Candidates...)
	return l
}

func (l *Level) add(c Candidate) {
	for _, existing := range l.Candidates {
		if existing == c {
			return
		}
	}
	l.Candidates = append(l.Candidates, c)
}

// collapse keeps only the candidate at idx and returns how many were removed.
func (l *Level) collapse(idx int) int {
	if idx < 0 || idx >= len(l.Candidates) || len(l.Candidates) == 1 {
		return 0
	}
	removed := len(l.Candidates) - 1
	l.Candidates = []Candidate{l.Candidates[idx]}
	return removed
}

// keepOnes drops the readings that do not mean "first", unless none does.
func (l *Level) keepOnes() int {
	kept := l.Candidates[:0:0]
	for _, c := range l.Candidates {
		if c.IsOne() {
			kept = append(kept, c)
		}
	}
	if len(kept) == 0 || len(kept) == len(l.Candidates) {
		return 0
	}
	removed := len(l.Candidates) - len(kept)
	l.Candidates = kept
	return removed
}

// ParseLevel recognizes one numbering level starting at token pos. isFirst
// marks the first level of a composite; force accepts readings that would
// otherwise need context (single letters, spelled-out numerals). It returns
// nil when pos does not hold a number.
func (r *Recognizer) ParseLevel(ts token.Stream, pos int, isFirst, force bool) *Level {
	t, ok := ts.At(pos)
	if !ok {
		return nil
	}

	lvl := &Level{BeginToken: pos}
	if t.IsCharOf(openBrackets) {
		if !isFirst && !force && t.IsWhitespaceBefore() {
			return nil
		}
		next, ok := ts.At(pos + 1)
		if !ok || next.IsWhitespaceBefore() {
			return nil
		}
		lvl.Prefix = t.Text
		pos++
		t = next
	}
	lvl.EndToken = pos

	switch {
	case t.IsNumber():
		if !r.acceptNumber(ts, pos, force) {
			return nil
		}
		lvl.add(DigitCandidate(t.Value))
	case t.IsLetters():
		if !r.acceptLetters(ts, lvl, pos, force) {
			return nil
		}
	default:
		return nil
	}

	if next, ok := ts.At(lvl.EndToken + 1); ok && !next.IsWhitespaceBefore() && next.IsCharOf(suffixChars) {
		lvl.Suffix = next.Text
		lvl.EndToken++
	}
	lvl.RawText = ts.Text(lvl.BeginToken, lvl.EndToken)
	return lvl
}

func (r *Recognizer) acceptNumber(ts token.Stream, pos int, force bool) bool {
	t := ts[pos]
	if t.Value >= r.cfg.MaxValue {
		return false
	}
	if t.Spelling == token.SpellingWords {
		return force || r.keywordBefore(ts, pos) || r.keywordAfter(ts, pos)
	}
	// "10:30" is a time or a ratio.
	colon, ok := ts.At(pos + 1)
	if ok && colon.IsChar(':') && !colon.IsWhitespaceBefore() {
		if n, ok := ts.At(pos + 2); ok && n.IsNumber() && !n.IsWhitespaceBefore() {
			return false
		}
	}
	return true
}

func (r *Recognizer) acceptLetters(ts token.Stream, lvl *Level, pos int, force bool) bool {
	t := ts[pos]
	if utf8.RuneCountInString(t.Text) > 1 {
		return r.acceptRomanRun(ts, lvl, pos)
	}

	ch := t.Rune()
	if force || r.letterContext(ts, lvl, pos) {
		lvl.add(LetterCandidate(ch))
		if twin, ok := Twin(ch); ok {
			lvl.add(LetterCandidate(twin))
		}
		if v, ok := romanLetterValue(ch); ok && v <= 10 {
			lvl.add(RomanCandidate(v))
		}
		return true
	}

	// A lone capital can still be a Roman numeral. X and C are left to the
	// letter readings above; L, D and M are ordinary letters far more often.
	v, ok := romanLetterValue(ch)
	if !ok || v > 5 || !unicode.IsUpper(ch) {
		return false
	}
	if next, ok := ts.At(pos + 1); ok && !ts.IsLineEnd(pos) && next.IsLowerStart() {
		return false
	}
	lvl.add(RomanCandidate(v))
	return true
}

func (r *Recognizer) acceptRomanRun(ts token.Stream, lvl *Level, pos int) bool {
	t := ts[pos]
	v, ok := ParseRoman(t.Text)
	if !ok || v >= r.cfg.MaxValue {
		return false
	}
	first, _ := utf8.DecodeRuneInString(t.Text)
	if unicode.IsLower(first) && lvl.Prefix == "" && !r.stopAfter(ts, pos) {
		return false
	}
	lvl.add(RomanCandidate(v))
	return true
}

// letterContext reports whether a single letter at pos stands in a numbering
// position: bracketed, followed by a stop, after a structural keyword, or
// alone at the end of a line.
func (r *Recognizer) letterContext(ts token.Stream, lvl *Level, pos int) bool {
	if lvl.Prefix != "" {
		if next, ok := ts.At(pos + 1); ok && !next.IsWhitespaceBefore() && next.IsChar([]rune(closingBracket[lvl.Prefix])[0]) {
			return true
		}
	}
	if r.stopAfter(ts, pos) {
		return true
	}
	if r.keywordBefore(ts, lvl.BeginToken) {
		return true
	}
	if ts.IsLineEnd(pos) {
		next, ok := ts.At(pos + 1)
		return !ok || !next.IsLowerStart()
	}
	return false
}

func (r *Recognizer) stopAfter(ts token.Stream, pos int) bool {
	next, ok := ts.At(pos + 1)
	return ok && !next.IsWhitespaceBefore() && next.IsCharOf(stopChars)
}

// keywordBefore reports whether a structural keyword, optionally abbreviated
// with a dot, precedes pos.
func (r *Recognizer) keywordBefore(ts token.Stream, pos int) bool {
	i := pos - 1
	if t, ok := ts.At(i); ok && t.IsChar('.') {
		i--
	}
	t, ok := ts.At(i)
	return ok && t.IsLetters() && r.keywords.match(t.Text)
}

func (r *Recognizer) keywordAfter(ts token.Stream, pos int) bool {
	t, ok := ts.At(pos + 1)
	return ok && t.IsLetters() && r.keywords.match(t.Text)
}
