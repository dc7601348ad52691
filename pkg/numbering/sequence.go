package numbering

// Disambiguate prunes the readings of a run of composite numbers, given in
// document order, and returns how many candidates were removed.
//
// Each number is compared with its predecessor: when it is the next one in
// sequence, both decisive levels keep only the winning pair of readings, and
// a number that starts a run (the first one, or the first sub-item of its
// predecessor) keeps only its "first" readings. Then the letter script used
// by most surviving readings wins over the other wherever a level keeps an
// alternative. Both passes repeat until nothing changes, so a second call
// removes nothing.
//
// Elements are mutated in place and must not be shared with other goroutines
// during the call.
func (r *Recognizer) Disambiguate(seq []*Composite) int {
	total := 0
	for {
		removed := r.correct(seq)
		removed += r.correctScripts(seq)
		if removed == 0 {
			return total
		}
		total += removed
	}
}

// correct runs the pairwise pass in document order, so every element is
// compared with its already pruned predecessor.
func (r *Recognizer) correct(seq []*Composite) int {
	removed := 0
	for i, c := range seq {
		if c == nil || c.Depth() == 0 {
			continue
		}
		var prev *Composite
		if i > 0 {
			prev = seq[i-1]
		}
		if prev == nil || prev.Depth() == 0 {
			if c.IsOne() {
				removed += c.Last().keepOnes()
			}
			continue
		}

		o := r.CompareComposites(prev, c)
		if o.Relation != Less {
			continue
		}
		if o.CanFollow {
			removed += c.Last().keepOnes()
			continue
		}
		removed += prev.Levels[o.LeftLevel].collapse(o.LeftCandidate)
		removed += c.Levels[o.RightLevel].collapse(o.RightCandidate)
	}
	return removed
}

// correctScripts drops letter readings of the minority script.
func (r *Recognizer) correctScripts(seq []*Composite) int {
	latin, cyrillic := 0, 0
	for _, c := range seq {
		if c == nil {
			continue
		}
		for i := range c.Levels {
			for _, cand := range c.Levels[i].Candidates {
				switch cand.Script() {
				case ScriptLatin:
					latin++
				case ScriptCyrillic:
					cyrillic++
				}
			}
		}
	}

	var minority Script
	switch {
	case latin > cyrillic:
		minority = ScriptCyrillic
	case cyrillic > latin:
		minority = ScriptLatin
	default:
		return 0
	}

	removed := 0
	for _, c := range seq {
		if c == nil {
			continue
		}
		for i := range c.Levels {
			removed += c.Levels[i].dropScript(minority)
		}
	}
	return removed
}

// dropScript removes letter readings of the given script while at least one
// other reading remains.
func (l *Level) dropScript(s Script) int {
	removed := 0
	kept := make([]Candidate, 0, len(l.Candidates))
	for i, c := range l.Candidates {
		remaining := len(kept) + len(l.Candidates) - i - 1
		if c.Script() == s && remaining > 0 {
			removed++
			continue
		}
		kept = append(kept, c)
	}
	l.Candidates = kept
	return removed
}

// CanBePseudoSubsequence reports whether sub is structurally the first
// sub-item of c: one level deeper, the same brackets and trailing
// punctuation, equal leading levels and a last level that means "first".
func (r *Recognizer) CanBePseudoSubsequence(c, sub *Composite) bool {
	if c == nil || sub == nil || c.Depth() == 0 || sub.Depth() != c.Depth()+1 {
		return false
	}
	if c.Prefix() != sub.Prefix() || c.Suffix() != sub.Suffix() {
		return false
	}
	if !sub.IsOne() {
		return false
	}
	for i := range c.Levels {
		if r.compareLevels(&c.Levels[i], &sub.Levels[i], false).Relation != Equal {
			return false
		}
	}
	return true
}
