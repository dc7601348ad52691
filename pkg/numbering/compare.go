package numbering

import "fmt"

// Relation classifies the order of two numbers.
type Relation int

const (
	Uncomparable Relation = iota
	Equal
	Less
	Greater
)

// String returns the relation name.
func (r Relation) String() string {
	switch r {
	case Equal:
		return "equal"
	case Less:
		return "less"
	case Greater:
		return "greater"
	case Uncomparable:
		return "uncomparable"
	default:
		return fmt.Sprintf("relation(%d)", int(r))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (r Relation) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// Outcome is the result of a comparison.
type Outcome struct {
	Relation Relation `json:"relation"`
	// Rank is the confidence of the chosen interpretation, in [0, 1].
	Rank float64 `json:"rank"`
	// Delta is the distance between the compared values.
	Delta int `json:"delta"`
	// CanFollow is set when the second number is the first sub-item of the
	// first one ("5" followed by "5.1").
	CanFollow bool `json:"can_follow"`

	// LeftLevel and RightLevel index the levels whose comparison decided the
	// outcome; LeftCandidate and RightCandidate index the winning readings
	// within them. All are -1 when the outcome is Uncomparable.
	LeftLevel      int `json:"-"`
	RightLevel     int `json:"-"`
	LeftCandidate  int `json:"-"`
	RightCandidate int `json:"-"`
}

func uncomparable() Outcome {
	return Outcome{Relation: Uncomparable, LeftLevel: -1, RightLevel: -1, LeftCandidate: -1, RightCandidate: -1}
}

// CompareLevels compares two single levels over every pair of same-kind
// readings and returns the best-ranked interpretation. Differing suffixes
// lower the rank.
func (r *Recognizer) CompareLevels(a, b *Level) Outcome {
	return r.compareLevels(a, b, true)
}

func (r *Recognizer) compareLevels(a, b *Level, withSuffix bool) Outcome {
	if a == nil || b == nil {
		return uncomparable()
	}
	best := uncomparable()
	for i, ca := range a.Candidates {
		for j, cb := range b.Candidates {
			if ca.Kind != cb.Kind {
				continue
			}
			rel, delta, ok := r.compareCandidates(ca, cb)
			if !ok {
				continue
			}
			rank := 1.0
			if rel == Greater {
				rank *= r.cfg.GreaterFactor
			}
			if delta > 1 {
				rank *= r.cfg.JumpFactor
			}
			if best.Relation == Uncomparable || rank > best.Rank {
				best = Outcome{
					Relation:       rel,
					Rank:           rank,
					Delta:          delta,
					LeftLevel:      0,
					RightLevel:     0,
					LeftCandidate:  i,
					RightCandidate: j,
				}
			}
		}
	}
	if best.Relation == Uncomparable {
		return best
	}
	if withSuffix {
		best.Rank *= r.suffixFactor(a.Suffix, b.Suffix)
	}
	return best
}

func (r *Recognizer) suffixFactor(a, b string) float64 {
	switch {
	case a == b:
		return 1
	case a != "" && b != "":
		return r.cfg.SuffixMismatchBoth
	default:
		return r.cfg.SuffixMismatchOne
	}
}

// compareCandidates orders two readings of the same kind. It reports false
// when the readings cannot be ordered (letters of unrelated scripts).
func (r *Recognizer) compareCandidates(a, b Candidate) (Relation, int, bool) {
	switch a.Kind {
	case KindDigit, KindRoman:
		return relationOf(b.Value - a.Value), abs(b.Value - a.Value), true

	case KindLetter:
		la, lb := foldLetter(a.Letter), foldLetter(b.Letter)
		if ScriptOf(la) != ScriptOf(lb) {
			if twin, ok := Twin(lb); ok {
				lb = twin
			} else if twin, ok := Twin(la); ok {
				la = twin
			} else {
				return Uncomparable, 0, false
			}
		}
		if la == lb {
			return Equal, 0, true
		}
		if d, ok := r.adjacency[letterPair{la, lb}]; ok {
			return Less, d, true
		}
		if d, ok := r.adjacency[letterPair{lb, la}]; ok {
			return Greater, d, true
		}
		diff := int(lb) - int(la)
		return relationOf(diff), abs(diff), true
	}
	return Uncomparable, 0, false
}

func relationOf(diff int) Relation {
	switch {
	case diff > 0:
		return Less
	case diff < 0:
		return Greater
	default:
		return Equal
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// CompareComposites compares two composite numbers level by level.
//
// Equal-depth numbers take the relation of their first differing level; a
// difference above the last level is only ordered when every following
// level of b means "first" ("5.1.3" then "5.2.1"). Numbers of different
// depth are ordered when they agree down to the last common level but one:
// a shorter number equal to the head of a longer one is its parent, and
// CanFollow is set when the longer number's next level means "first". A
// differing level with further levels on both sides is Uncomparable.
func (r *Recognizer) CompareComposites(a, b *Composite) Outcome {
	if a == nil || b == nil || a.Depth() == 0 || b.Depth() == 0 {
		return uncomparable()
	}

	rank := r.punctuationFactor(a, b)
	n := min(a.Depth(), b.Depth())
	last := uncomparable()
	for i := 0; i < n; i++ {
		o := r.compareLevels(&a.Levels[i], &b.Levels[i], false)
		if o.Relation == Uncomparable {
			return uncomparable()
		}
		o.LeftLevel, o.RightLevel = i, i
		rank *= o.Rank
		last = o
		if o.Relation == Equal {
			continue
		}

		if a.Depth() == b.Depth() {
			if i < n-1 && !(o.Relation == Less && allOnes(b.Levels[i+1:])) {
				return uncomparable()
			}
			o.Rank = rank
			if o.Relation == Greater && o.Delta != 1 {
				o.Rank *= r.cfg.GreaterFactor
			}
			return o
		}

		if i < n-1 {
			return uncomparable()
		}
		o.Rank = rank * r.cfg.DepthFactor
		return o
	}

	last.Rank = rank
	switch {
	case a.Depth() == b.Depth():
		return last
	case a.Depth() < b.Depth():
		last.Relation = Less
		if b.Levels[n].IsOne() {
			last.CanFollow = true
			last.Delta = 1
		}
	default:
		last.Relation = Greater
	}
	last.Rank *= r.cfg.DepthFactor
	return last
}

func allOnes(levels []Level) bool {
	for i := range levels {
		if !levels[i].IsOne() {
			return false
		}
	}
	return true
}

// punctuationFactor penalizes differing brackets or trailing punctuation.
func (r *Recognizer) punctuationFactor(a, b *Composite) float64 {
	if a.Prefix() == b.Prefix() && a.Suffix() == b.Suffix() {
		return 1
	}
	if a.Prefix() == b.Prefix() && dotOnly(a.Suffix(), b.Suffix()) {
		return r.cfg.PunctuationDotOnly
	}
	return r.cfg.PunctuationMismatch
}

func dotOnly(a, b string) bool {
	return (a == "." && b == "") || (a == "" && b == ".")
}
