package numbering

import (
	"fmt"

	"github.com/coolbeans/numbering/pkg/token"
)

// Recognizer parses and compares structural numbers with one calibration.
// It holds no mutable state and is safe for concurrent use.
type Recognizer struct {
	cfg       Config
	keywords  keywordSet
	adjacency map[letterPair]int
}

// NewRecognizer creates a Recognizer from cfg. Zero-valued fields take their
// defaults.
func NewRecognizer(cfg Config) (*Recognizer, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	adjacency, err := compileAdjacency(cfg.Adjacency)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return &Recognizer{
		cfg:       cfg,
		keywords:  newKeywordSet(cfg.Keywords),
		adjacency: adjacency,
	}, nil
}

// NewDefaultRecognizer creates a Recognizer with DefaultConfig.
func NewDefaultRecognizer() *Recognizer {
	r, err := NewRecognizer(DefaultConfig())
	if err != nil {
		panic(fmt.Sprintf("numbering: default config: %v", err))
	}
	return r
}

// Config returns the recognizer's configuration.
func (r *Recognizer) Config() Config {
	return r.cfg
}

var defaultRecognizer = NewDefaultRecognizer()

// ParseLevel parses one numbering level at pos with the default recognizer.
func ParseLevel(ts token.Stream, pos int, isFirst, force bool) *Level {
	return defaultRecognizer.ParseLevel(ts, pos, isFirst, force)
}

// ParseComposite parses a composite number at pos with the default recognizer.
func ParseComposite(ts token.Stream, pos int, prev *Composite, force, ignoreLastSuffix bool) *Composite {
	return defaultRecognizer.ParseComposite(ts, pos, prev, force, ignoreLastSuffix)
}

// CompareLevels compares two single levels with the default recognizer.
func CompareLevels(a, b *Level) Outcome {
	return defaultRecognizer.CompareLevels(a, b)
}

// CompareComposites compares two composite numbers with the default recognizer.
func CompareComposites(a, b *Composite) Outcome {
	return defaultRecognizer.CompareComposites(a, b)
}

// Disambiguate prunes the candidates of a run with the default recognizer.
func Disambiguate(seq []*Composite) int {
	return defaultRecognizer.Disambiguate(seq)
}

// CanBePseudoSubsequence reports whether sub is the first sub-item of c,
// using the default recognizer.
func CanBePseudoSubsequence(c, sub *Composite) bool {
	return defaultRecognizer.CanBePseudoSubsequence(c, sub)
}
