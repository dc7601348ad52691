package numbering

import (
	"errors"
	"fmt"
)

// Rank factors. They are empirically tuned and kept configurable so that a
// profile can recalibrate them against a labeled corpus.
const (
	// DefaultGreaterFactor penalizes descending comparisons, which are less
	// likely than ascending ones when scanning a document forward.
	DefaultGreaterFactor = 0.5
	// DefaultJumpFactor penalizes non-adjacent values (delta > 1).
	DefaultJumpFactor = 0.98
	// DefaultSuffixMismatchBoth applies when both levels carry different suffixes.
	DefaultSuffixMismatchBoth = 0.8
	// DefaultSuffixMismatchOne applies when only one level carries a suffix.
	DefaultSuffixMismatchOne = 0.9
	// DefaultPunctuationDotOnly applies when two composites differ only by a trailing dot.
	DefaultPunctuationDotOnly = 0.98
	// DefaultPunctuationMismatch applies to any other prefix or suffix mismatch.
	DefaultPunctuationMismatch = 0.8
	// DefaultDepthFactor applies when composites of different depth are ordered.
	DefaultDepthFactor = 0.5

	// DefaultMaxValue bounds plausible structural ordinals.
	DefaultMaxValue = 3000
	// DefaultMaxGap is the whitespace allowed between two levels of a composite.
	DefaultMaxGap = 2
)

// ErrInvalidConfig is returned when a Config fails validation.
var ErrInvalidConfig = errors.New("invalid numbering config")

// Config holds the tunable parameters of a Recognizer.
type Config struct {
	GreaterFactor       float64 `yaml:"greater_factor" json:"greater_factor"`
	JumpFactor          float64 `yaml:"jump_factor" json:"jump_factor"`
	SuffixMismatchBoth  float64 `yaml:"suffix_mismatch_both" json:"suffix_mismatch_both"`
	SuffixMismatchOne   float64 `yaml:"suffix_mismatch_one" json:"suffix_mismatch_one"`
	PunctuationDotOnly  float64 `yaml:"punctuation_dot_only" json:"punctuation_dot_only"`
	PunctuationMismatch float64 `yaml:"punctuation_mismatch" json:"punctuation_mismatch"`
	DepthFactor         float64 `yaml:"depth_factor" json:"depth_factor"`

	MaxValue int `yaml:"max_value" json:"max_value"`
	MaxGap   int `yaml:"max_gap" json:"max_gap"`

	// Keywords are structural words ("пункт", "глава", "clause") after which a
	// single letter or a spelled-out numeral is read as a number.
	Keywords []string `yaml:"keywords" json:"keywords"`

	// Adjacency lists letter pairs that are neighbours in the ordinal alphabet.
	Adjacency []Adjacency `yaml:"adjacency" json:"adjacency"`
}

// DefaultKeywords are the structural keywords of Russian, Ukrainian and English
// legal and postal text.
var DefaultKeywords = []string{
	// Russian
	"пункт", "п", "подпункт", "пп", "статья", "ст", "глава", "гл",
	"раздел", "разд", "подраздел", "часть", "ч", "параграф", "абзац",
	"приложение", "прил", "дом", "д", "корпус", "корп", "строение", "стр",
	"квартира", "кв", "литера", "лит",
	// Ukrainian
	"стаття", "розділ", "частина", "підпункт", "додаток", "будинок", "буд",
	// English
	"clause", "chapter", "section", "article", "item", "paragraph", "part",
	"appendix", "annex", "schedule",
}

// DefaultAdjacency holds the letters that are adjacent in the ordinal alphabet
// although other letters (Й, Ё) sit between them in code-point order.
var DefaultAdjacency = []Adjacency{
	{First: "И", Second: "К", Distance: 1},
	{First: "Е", Second: "Ж", Distance: 1},
}

// DefaultConfig returns the calibrated defaults.
func DefaultConfig() Config {
	return Config{
		GreaterFactor:       DefaultGreaterFactor,
		JumpFactor:          DefaultJumpFactor,
		SuffixMismatchBoth:  DefaultSuffixMismatchBoth,
		SuffixMismatchOne:   DefaultSuffixMismatchOne,
		PunctuationDotOnly:  DefaultPunctuationDotOnly,
		PunctuationMismatch: DefaultPunctuationMismatch,
		DepthFactor:         DefaultDepthFactor,
		MaxValue:            DefaultMaxValue,
		MaxGap:              DefaultMaxGap,
		Keywords:            append([]string(nil), DefaultKeywords...),
		Adjacency:           append([]Adjacency(nil), DefaultAdjacency...),
	}
}

// WithDefaults fills zero-valued fields from DefaultConfig.
func (c Config) WithDefaults() Config {
	d := DefaultConfig()
	fill := func(v *float64, def float64) {
		if *v == 0 {
			*v = def
		}
	}
	fill(&c.GreaterFactor, d.GreaterFactor)
	fill(&c.JumpFactor, d.JumpFactor)
	fill(&c.SuffixMismatchBoth, d.SuffixMismatchBoth)
	fill(&c.SuffixMismatchOne, d.SuffixMismatchOne)
	fill(&c.PunctuationDotOnly, d.PunctuationDotOnly)
	fill(&c.PunctuationMismatch, d.PunctuationMismatch)
	fill(&c.DepthFactor, d.DepthFactor)
	if c.MaxValue == 0 {
		c.MaxValue = d.MaxValue
	}
	if c.MaxGap == 0 {
		c.MaxGap = d.MaxGap
	}
	if c.Keywords == nil {
		c.Keywords = d.Keywords
	}
	if c.Adjacency == nil {
		c.Adjacency = d.Adjacency
	}
	return c
}

// Validate checks that every factor lies in (0, 1] and that the limits and
// adjacency overrides are well formed.
func (c Config) Validate() error {
	factors := []struct {
		name  string
		value float64
	}{
		{"greater_factor", c.GreaterFactor},
		{"jump_factor", c.JumpFactor},
		{"suffix_mismatch_both", c.SuffixMismatchBoth},
		{"suffix_mismatch_one", c.SuffixMismatchOne},
		{"punctuation_dot_only", c.PunctuationDotOnly},
		{"punctuation_mismatch", c.PunctuationMismatch},
		{"depth_factor", c.DepthFactor},
	}
	for _, f := range factors {
		if f.value <= 0 || f.value > 1 {
			return fmt.Errorf("%w: %s must be in (0, 1], got %v", ErrInvalidConfig, f.name, f.value)
		}
	}
	if c.MaxValue <= 0 {
		return fmt.Errorf("%w: max_value must be positive", ErrInvalidConfig)
	}
	if c.MaxGap < 0 {
		return fmt.Errorf("%w: max_gap must not be negative", ErrInvalidConfig)
	}
	if _, err := compileAdjacency(c.Adjacency); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}
