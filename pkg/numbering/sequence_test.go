package numbering

import (
	"reflect"
	"testing"
)

func parseRun(t *testing.T, texts ...string) []*Composite {
	t.Helper()
	run := make([]*Composite, len(texts))
	for i, text := range texts {
		run[i] = parseText(t, text)
	}
	return run
}

func singleLevel(candidates ...Candidate) *Composite {
	return &Composite{Levels: []Level{{Candidates: candidates}}}
}

func TestDisambiguate(t *testing.T) {
	tests := []struct {
		name    string
		run     []string
		want    [][]Candidate
		removed int
	}{
		{
			name:    "digits",
			run:     []string{"1", "2", "3"},
			want:    [][]Candidate{{DigitCandidate(1)}, {DigitCandidate(2)}, {DigitCandidate(3)}},
			removed: 0,
		},
		{
			name: "cyrillic letters",
			run:  []string{"а)", "б)", "в)"},
			want: [][]Candidate{
				{LetterCandidate('а')},
				{LetterCandidate('б')},
				{LetterCandidate('в')},
			},
			removed: 2,
		},
		{
			name: "latin letters",
			run:  []string{"a)", "b)", "c)"},
			want: [][]Candidate{
				{LetterCandidate('a')},
				{LetterCandidate('b')},
				{LetterCandidate('c')},
			},
			removed: 3,
		},
		{
			name:    "roman chapters",
			run:     []string{"I.", "II.", "III."},
			want:    [][]Candidate{{RomanCandidate(1)}, {RomanCandidate(2)}, {RomanCandidate(3)}},
			removed: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			run := parseRun(t, tt.run...)
			removed := Disambiguate(run)
			if removed != tt.removed {
				t.Errorf("Disambiguate() removed %d, want %d", removed, tt.removed)
			}
			for i, c := range run {
				if !reflect.DeepEqual(c.Last().Candidates, tt.want[i]) {
					t.Errorf("run[%d] candidates = %v, want %v", i, c.Last().Candidates, tt.want[i])
				}
			}
		})
	}
}

func TestDisambiguateIsIdempotent(t *testing.T) {
	runs := [][]string{
		{"1", "2", "3"},
		{"а)", "б)", "в)", "г)"},
		{"I.", "II.", "X."},
		{"5", "5.1", "5.2", "6"},
		{"я)", "Х)", "б)"},
	}
	for _, texts := range runs {
		run := parseRun(t, texts...)
		Disambiguate(run)
		if removed := Disambiguate(run); removed != 0 {
			t.Errorf("second Disambiguate(%v) removed %d, want 0", texts, removed)
		}
	}
}

func TestDisambiguateAscendingRunIsLess(t *testing.T) {
	runs := [][]string{
		{"1.", "2.", "3.", "4."},
		{"а)", "б)", "в)", "г)", "д)", "е)", "ж)", "з)", "и)", "к)"},
		{"a)", "b)", "c)", "d)"},
		{"I.", "II.", "III.", "IV.", "V."},
		{"1.1", "1.2", "1.3"},
	}
	for _, texts := range runs {
		run := parseRun(t, texts...)
		Disambiguate(run)
		for i := 0; i+1 < len(run); i++ {
			if got := CompareComposites(run[i], run[i+1]); got.Relation != Less {
				t.Errorf("%v: CompareComposites(%s, %s) = %v, want less", texts, run[i], run[i+1], got.Relation)
			}
		}
	}
}

func TestDisambiguateSubItemStartsRun(t *testing.T) {
	run := []*Composite{
		parseText(t, "5"),
		{Levels: []Level{
			{Candidates: []Candidate{DigitCandidate(5)}},
			{Candidates: []Candidate{LetterCandidate('a'), RomanCandidate(5)}},
		}},
	}
	Disambiguate(run)
	want := []Candidate{LetterCandidate('a')}
	if got := run[1].Last().Candidates; !reflect.DeepEqual(got, want) {
		t.Errorf("sub-item candidates = %v, want %v", got, want)
	}
}

func TestDisambiguateFirstElementMeansOne(t *testing.T) {
	run := []*Composite{singleLevel(LetterCandidate('a'), RomanCandidate(5))}
	if removed := Disambiguate(run); removed != 1 {
		t.Errorf("Disambiguate() removed %d, want 1", removed)
	}
	want := []Candidate{LetterCandidate('a')}
	if got := run[0].Last().Candidates; !reflect.DeepEqual(got, want) {
		t.Errorf("candidates = %v, want %v", got, want)
	}
}

func TestDisambiguateMajorityScript(t *testing.T) {
	run := []*Composite{
		singleLevel(LetterCandidate('я')),
		singleLevel(LetterCandidate('Х'), LetterCandidate('X')),
	}
	if removed := Disambiguate(run); removed != 1 {
		t.Errorf("Disambiguate() removed %d, want 1", removed)
	}
	want := []Candidate{LetterCandidate('Х')}
	if got := run[1].Last().Candidates; !reflect.DeepEqual(got, want) {
		t.Errorf("candidates = %v, want %v", got, want)
	}
}

func TestDisambiguateKeepsSoleCandidate(t *testing.T) {
	run := []*Composite{
		singleLevel(LetterCandidate('я')),
		singleLevel(LetterCandidate('ю')),
		singleLevel(LetterCandidate('Z')),
	}
	Disambiguate(run)
	if got := run[2].Last().Candidates; len(got) != 1 || got[0] != LetterCandidate('Z') {
		t.Errorf("sole candidate removed: %v", got)
	}
}

func TestDisambiguateSkipsNil(t *testing.T) {
	run := []*Composite{parseText(t, "1"), nil, parseText(t, "а)")}
	Disambiguate(run)
	if got := len(run[2].Last().Candidates); got != 2 {
		t.Errorf("element after nil has %d candidates, want 2", got)
	}
}

func TestCanBePseudoSubsequence(t *testing.T) {
	tests := []struct {
		c, sub string
		want   bool
	}{
		{"5", "5.1", true},
		{"5", "5.2", false},
		{"IV", "IV.1", true},
		{"5.2", "5.2.1", true},
		{"5.", "5.1.", true},
		{"5", "5.1.", false},
		{"5", "5.1.1", false},
		{"5", "6.1", false},
		{"5.1", "5", false},
	}

	for _, tt := range tests {
		t.Run(tt.c+" "+tt.sub, func(t *testing.T) {
			got := CanBePseudoSubsequence(parseText(t, tt.c), parseText(t, tt.sub))
			if got != tt.want {
				t.Errorf("CanBePseudoSubsequence(%q, %q) = %v, want %v", tt.c, tt.sub, got, tt.want)
			}
		})
	}
}
