package numbering

import (
	"strings"

	"github.com/coolbeans/numbering/pkg/token"
)

// Composite is a multi-level structural number such as "5.2.1-a". Levels are
// stored in document order and there is always at least one.
type Composite struct {
	Levels []Level `json:"levels"`
}

// Depth returns the number of levels.
func (c *Composite) Depth() int {
	return len(c.Levels)
}

// First returns the first level.
func (c *Composite) First() *Level {
	return &c.Levels[0]
}

// Last returns the last level.
func (c *Composite) Last() *Level {
	return &c.Levels[len(c.Levels)-1]
}

// Prefix returns the opening bracket of the first level.
func (c *Composite) Prefix() string {
	return c.First().Prefix
}

// Suffix returns the closing punctuation of the last level.
func (c *Composite) Suffix() string {
	return c.Last().Suffix
}

// BeginToken returns the index of the first consumed token.
func (c *Composite) BeginToken() int {
	return c.First().BeginToken
}

// EndToken returns the index of the last consumed token.
func (c *Composite) EndToken() int {
	return c.Last().EndToken
}

// IsOne reports whether the last level can mean "first".
func (c *Composite) IsOne() bool {
	return c.Last().IsOne()
}

// NormalizedText joins the preferred readings of all levels with dots.
func (c *Composite) NormalizedText() string {
	parts := make([]string, len(c.Levels))
	for i := range c.Levels {
		parts[i] = c.Levels[i].Preferred().String()
	}
	return strings.Join(parts, ".")
}

// String returns the raw text of the number.
func (c *Composite) String() string {
	return c.ToStringEx(false)
}

// ToStringEx concatenates the raw text of all levels. With ignoreSuffix a
// one-character trailing suffix is dropped, together with the matching
// opening bracket of the first level.
func (c *Composite) ToStringEx(ignoreSuffix bool) string {
	var b strings.Builder
	for i := range c.Levels {
		b.WriteString(c.Levels[i].RawText)
	}
	s := b.String()
	if !ignoreSuffix {
		return s
	}
	suffix := c.Suffix()
	if len([]rune(suffix)) != 1 || !strings.HasSuffix(s, suffix) {
		return s
	}
	s = strings.TrimSuffix(s, suffix)
	if prefix := c.Prefix(); prefix != "" && closingBracket[prefix] == suffix {
		s = strings.TrimPrefix(s, prefix)
	}
	return s
}

// Clone returns a deep copy.
func (c *Composite) Clone() *Composite {
	out := &Composite{Levels: make([]Level, len(c.Levels))}
	for i := range c.Levels {
		out.Levels[i] = c.Levels[i].Clone()
	}
	return out
}

// ParseComposite recognizes a composite number starting at token pos.
//
// Levels are chained while each one ends with a dot separator and the next
// starts within the configured whitespace gap on the same line; with force
// an opening bracket also continues the number ("9(2)"). A hyphen directly
// followed by a level continues it as well ("12-3", "1-a").
//
// prev is the number found before this one, if any: after a lettered item a
// lone letter is accepted without further context, and after a bracketed
// item bracket continuation is allowed. With ignoreLastSuffix a trailing dot
// is left unconsumed. A lone "<n>" is a cross-reference marker and is only
// accepted with force.
func (r *Recognizer) ParseComposite(ts token.Stream, pos int, prev *Composite, force, ignoreLastSuffix bool) *Composite {
	letterContext := prev != nil && prev.Depth() > 0 && prev.Last().HasKind(KindLetter)
	first := r.ParseLevel(ts, pos, true, force || letterContext)
	if first == nil {
		return nil
	}

	bracketContinuation := force || (prev != nil && prev.Depth() > 0 && prev.Prefix() != "")
	c := &Composite{Levels: []Level{*first}}
	for {
		last := c.Last()
		next := last.EndToken + 1
		var lvl *Level

		switch {
		case last.Suffix == ".":
			if r.withinGap(ts, next) {
				lvl = r.ParseLevel(ts, next, false, force)
			}
		case bracketContinuation:
			if t, ok := ts.At(next); ok && t.IsCharOf(openBrackets) && r.withinGap(ts, next) {
				lvl = r.ParseLevel(ts, next, false, true)
			}
		}

		if lvl == nil && last.Suffix == "" {
			lvl = r.parseHyphenLevel(ts, next)
			if lvl != nil {
				last.Suffix = "-"
				last.EndToken = next
				last.RawText = ts.Text(last.BeginToken, last.EndToken)
			}
		}
		if lvl == nil {
			break
		}
		if last.Suffix == "." {
			// The dot separated two levels; it is not punctuation of either.
			last.Suffix = ""
		}
		c.Levels = append(c.Levels, *lvl)
	}

	if c.Depth() == 1 && c.Prefix() == "<" && c.Suffix() == ">" && !force {
		return nil
	}

	if ignoreLastSuffix {
		last := c.Last()
		if last.Suffix == "." && last.EndToken > last.BeginToken {
			last.Suffix = ""
			last.EndToken--
			last.RawText = ts.Text(last.BeginToken, last.EndToken)
		}
	}
	return c
}

// parseHyphenLevel parses "-3" or "-a" glued to the previous level.
func (r *Recognizer) parseHyphenLevel(ts token.Stream, pos int) *Level {
	hyphen, ok := ts.At(pos)
	if !ok || hyphen.IsWhitespaceBefore() || !hyphen.IsChar('-') {
		return nil
	}
	t, ok := ts.At(pos + 1)
	if !ok || t.IsWhitespaceBefore() || !(t.IsNumber() || t.IsLetters()) {
		return nil
	}
	return r.ParseLevel(ts, pos+1, false, false)
}

func (r *Recognizer) withinGap(ts token.Stream, pos int) bool {
	t, ok := ts.At(pos)
	return ok && !t.NewlineBefore && t.WhitespacesBefore <= r.cfg.MaxGap
}
