// Package profile manages named calibration profiles for the numbering
// recognizer. Profiles are YAML documents that override the rank factors,
// limits, keywords and letter adjacency of numbering.Config.
package profile

import (
	"errors"
	"fmt"
	"strings"

	"github.com/coolbeans/numbering/pkg/numbering"
)

// DefaultName is the name of the built-in profile.
const DefaultName = "default"

// ErrNotFound is returned when a profile is not registered.
var ErrNotFound = errors.New("profile not found")

// Profile is a named numbering calibration.
//
// Example YAML:
//
//	name: ua-legislation
//	version: "1.0.0"
//	description: Ukrainian codes and laws
//	numbering:
//	  max_value: 5000
//	  keywords: [стаття, частина, пункт, розділ]
type Profile struct {
	Name        string           `yaml:"name" json:"name"`
	Version     string           `yaml:"version" json:"version"`
	Description string           `yaml:"description,omitempty" json:"description,omitempty"`
	Numbering   numbering.Config `yaml:"numbering" json:"numbering"`

	// source is the file the profile was loaded from, empty for built-ins.
	source     string
	recognizer *numbering.Recognizer
}

// Default returns the built-in profile with the calibrated defaults.
func Default() *Profile {
	p := &Profile{
		Name:        DefaultName,
		Version:     "1.0.0",
		Description: "Built-in calibration for Russian, Ukrainian and English documents",
		Numbering:   numbering.DefaultConfig(),
	}
	if err := p.Compile(); err != nil {
		panic(fmt.Sprintf("profile: default: %v", err))
	}
	return p
}

// Validate checks required fields and the numbering configuration.
func (p *Profile) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if strings.ContainsAny(p.Name, " \t/\\") {
		return fmt.Errorf("name %q must not contain whitespace or slashes", p.Name)
	}
	if p.Version == "" {
		return fmt.Errorf("version is required")
	}
	if err := p.Numbering.WithDefaults().Validate(); err != nil {
		return fmt.Errorf("numbering: %w", err)
	}
	return nil
}

// Compile builds the profile's recognizer. Zero-valued numbering fields take
// their defaults.
func (p *Profile) Compile() error {
	r, err := numbering.NewRecognizer(p.Numbering)
	if err != nil {
		return fmt.Errorf("building recognizer: %w", err)
	}
	p.recognizer = r
	return nil
}

// IsCompiled reports whether Compile has succeeded.
func (p *Profile) IsCompiled() bool {
	return p.recognizer != nil
}

// Recognizer returns the compiled recognizer, or nil before Compile.
func (p *Profile) Recognizer() *numbering.Recognizer {
	return p.recognizer
}

// Source returns the file the profile was loaded from.
func (p *Profile) Source() string {
	return p.source
}
