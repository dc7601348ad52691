// Package outline extracts the structural numbering of a document and checks
// that it runs in order.
//
// Every line that starts with a structural number becomes an Item. The run of
// numbers is disambiguated as a whole, then each item is classified against
// the nearest earlier item it can be ordered with.
package outline

import (
	"errors"
	"fmt"
	"strings"

	"github.com/coolbeans/numbering/pkg/numbering"
	"github.com/coolbeans/numbering/pkg/token"
)

// ErrNotNumber is returned by ParseNumber when the text is not a single
// structural number.
var ErrNotNumber = errors.New("not a structural number")

// Kind classifies an item relative to its predecessor.
type Kind string

const (
	// KindFirst starts a list: the first item of the document, or a "one"
	// that cannot be ordered with anything before it.
	KindFirst Kind = "first"
	// KindNext is the next sibling ("5.1" after "5", "б)" after "а)").
	KindNext Kind = "next"
	// KindChild is the first sub-item of the predecessor ("5.1" after "5").
	KindChild Kind = "child"
	// KindUp closes one or more nested levels ("6" after "5.3").
	KindUp Kind = "up"
	// KindGap follows its predecessor but skips values ("7" after "5").
	KindGap Kind = "gap"
	// KindOutOfOrder repeats or precedes its predecessor.
	KindOutOfOrder Kind = "out_of_order"
	// KindUnrelated cannot be ordered with any earlier item.
	KindUnrelated Kind = "unrelated"
)

// IsIssue reports whether the kind breaks the expected order.
func (k Kind) IsIssue() bool {
	switch k {
	case KindGap, KindOutOfOrder, KindUnrelated:
		return true
	}
	return false
}

// Item is one numbered line.
type Item struct {
	// Line is 1-based.
	Line       int      `json:"line"`
	Raw        string   `json:"raw"`
	Normalized string   `json:"normalized"`
	Depth      int      `json:"depth"`
	Readings   []string `json:"readings"`
	Kind       Kind     `json:"kind"`
	// Predecessor indexes the item this one was compared with, -1 if none.
	Predecessor int     `json:"predecessor"`
	Rank        float64 `json:"rank"`
	Delta       int     `json:"delta"`

	Number *numbering.Composite `json:"-"`
}

// Outline is the numbering structure of a document.
type Outline struct {
	Items []Item `json:"items"`
	// Pruned counts the readings removed by disambiguation.
	Pruned int `json:"pruned"`
}

// Issues returns the items that break the expected order.
func (o *Outline) Issues() []Item {
	var issues []Item
	for _, it := range o.Items {
		if it.Kind.IsIssue() {
			issues = append(issues, it)
		}
	}
	return issues
}

// Extract scans text for line-start numbers using rec, or the default
// recognizer when rec is nil.
func Extract(text string, rec *numbering.Recognizer) *Outline {
	if rec == nil {
		rec = numbering.NewDefaultRecognizer()
	}
	return ExtractTokens(token.Tokenize(text), rec)
}

// ExtractTokens scans an already tokenized document.
func ExtractTokens(ts token.Stream, rec *numbering.Recognizer) *Outline {
	numbers := scan(ts, rec)
	out := &Outline{Pruned: rec.Disambiguate(numbers)}

	out.Items = make([]Item, len(numbers))
	for i, c := range numbers {
		out.Items[i] = newItem(ts, c)
	}
	for i := range out.Items {
		classify(rec, out.Items, i)
	}
	return out
}

// Scan returns the numbers that open the lines of ts, each parsed with the
// previous one as context. With force set, bare letters and spelled numerals
// are accepted without further context.
func Scan(ts token.Stream, rec *numbering.Recognizer, force bool) []*numbering.Composite {
	var numbers []*numbering.Composite
	var prev *numbering.Composite
	for i := range ts {
		if !ts.IsLineStart(i) {
			continue
		}
		if c := rec.ParseComposite(ts, i, prev, force, false); c != nil {
			numbers = append(numbers, c)
			prev = c
		}
	}
	return numbers
}

// ParseNumber parses text that consists of exactly one structural number.
// The number is parsed as forced, so a bare "б" or "IV" is accepted.
func ParseNumber(text string, rec *numbering.Recognizer) (*numbering.Composite, error) {
	ts := token.Tokenize(strings.TrimSpace(text))
	if len(ts) == 0 {
		return nil, fmt.Errorf("empty input: %w", ErrNotNumber)
	}
	c := rec.ParseComposite(ts, 0, nil, true, false)
	if c == nil || c.EndToken() != len(ts)-1 {
		return nil, fmt.Errorf("%q: %w", text, ErrNotNumber)
	}
	return c, nil
}

// scan is Scan for document outlines: a number must stand apart from the
// text after it, and a bare letter must continue the previous item.
func scan(ts token.Stream, rec *numbering.Recognizer) []*numbering.Composite {
	var numbers []*numbering.Composite
	var prev *numbering.Composite
	for i := range ts {
		if !ts.IsLineStart(i) {
			continue
		}
		c := rec.ParseComposite(ts, i, prev, false, false)
		if c == nil || !standsAlone(ts, c) {
			continue
		}
		if prev != nil && isBareLetter(c) && !continuesLetter(rec, prev, c) {
			// A one-letter word opening the line.
			continue
		}
		numbers = append(numbers, c)
		prev = c
	}
	return numbers
}

// continuesLetter reports whether c is the next letter after prev in the
// same script. Look-alike letters of the other script do not count, so "в"
// after "а)" is not read as Latin b after a.
func continuesLetter(rec *numbering.Recognizer, prev, c *numbering.Composite) bool {
	o := rec.CompareComposites(prev, c)
	if o.Relation != numbering.Less || o.Delta != 1 {
		return false
	}
	left := prev.Levels[o.LeftLevel].Candidates[o.LeftCandidate]
	right := c.Levels[o.RightLevel].Candidates[o.RightCandidate]
	return left.Script() == right.Script()
}

// standsAlone reports whether the number is followed by whitespace or ends
// the document.
func standsAlone(ts token.Stream, c *numbering.Composite) bool {
	next, ok := ts.At(c.EndToken() + 1)
	return !ok || next.IsWhitespaceBefore()
}

func isBareLetter(c *numbering.Composite) bool {
	return c.Depth() == 1 && c.Prefix() == "" && c.Suffix() == "" &&
		c.Last().HasKind(numbering.KindLetter) && !c.Last().HasKind(numbering.KindDigit)
}

func newItem(ts token.Stream, c *numbering.Composite) Item {
	readings := make([]string, c.Depth())
	for i := range c.Levels {
		readings[i] = c.Levels[i].Preferred().Kind.String()
	}
	return Item{
		Line:        ts[c.BeginToken()].Line + 1,
		Raw:         c.String(),
		Normalized:  c.NormalizedText(),
		Depth:       c.Depth(),
		Readings:    readings,
		Predecessor: -1,
		Number:      c,
	}
}

// classify compares item i with the nearest earlier item it can be ordered
// with and sets its kind.
func classify(rec *numbering.Recognizer, items []Item, i int) {
	it := &items[i]
	for j := i - 1; j >= 0; j-- {
		o := rec.CompareComposites(items[j].Number, it.Number)
		if o.Relation == numbering.Uncomparable {
			continue
		}
		if o.Relation != numbering.Less && j < i-1 && it.Number.IsOne() {
			// A nested list restarting under a new parent.
			break
		}
		it.Predecessor = j
		it.Rank = o.Rank
		it.Delta = o.Delta
		it.Kind = kindOf(o, items[j].Depth, it.Depth)
		return
	}

	it.Rank = 1
	if i == 0 || it.Number.IsOne() {
		it.Kind = KindFirst
		return
	}
	it.Kind = KindUnrelated
}

func kindOf(o numbering.Outcome, prevDepth, depth int) Kind {
	if o.Relation != numbering.Less {
		return KindOutOfOrder
	}
	switch {
	case o.CanFollow:
		return KindChild
	case o.Delta > 1 || depth > prevDepth:
		return KindGap
	case depth < prevDepth:
		return KindUp
	default:
		return KindNext
	}
}
