// Package style holds the import layout style that controls folding and
// unfolding of wildcard imports.
package style

import (
	"fmt"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

// ImportLayoutStyle configures when wildcard imports are folded or unfolded
// and how whitespace is carried across removed imports.
type ImportLayoutStyle struct {
	// ClassCountToUseStarImport is the number of distinct types imported
	// from one package at which explicit imports fold into a wildcard.
	// A wildcard with fewer used types than this is unfolded.
	ClassCountToUseStarImport int `yaml:"classCountToUseStarImport"`

	// NameCountToUseStarImport is the equivalent threshold for static
	// member imports.
	NameCountToUseStarImport int `yaml:"nameCountToUseStarImport"`

	// AlwaysFoldPackages lists dotted patterns, e.g. "java.awt.*" or
	// "org.example.**", of imports that stay folded as wildcards
	// regardless of how few names are used through them. Patterns use
	// doublestar matching with "." as the separator.
	AlwaysFoldPackages []string `yaml:"alwaysFoldPackages"`

	// CarriedPrefixNewlineLimit bounds the whitespace carry-over rule of
	// the import list rewrite: when imports are removed, the whitespace
	// that preceded the removed run is moved onto the next kept import
	// only if that import's own trailing whitespace contains at most this
	// many line breaks. This is a formatting convention, not a law; other
	// formatters may want a different value.
	CarriedPrefixNewlineLimit int `yaml:"carriedPrefixNewlineLimit"`
}

// Default returns the built-in style, matching the common IDE defaults.
func Default() *ImportLayoutStyle {
	return &ImportLayoutStyle{
		ClassCountToUseStarImport: 5,
		NameCountToUseStarImport:  3,
		CarriedPrefixNewlineLimit: 1,
	}
}

// Parse reads an ImportLayoutStyle from YAML. Fields left unset fall back
// to the defaults.
func Parse(data []byte) (*ImportLayoutStyle, error) {
	s := Default()
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parsing import layout style: %w", err)
	}
	if s.ClassCountToUseStarImport <= 0 {
		s.ClassCountToUseStarImport = Default().ClassCountToUseStarImport
	}
	if s.NameCountToUseStarImport <= 0 {
		s.NameCountToUseStarImport = Default().NameCountToUseStarImport
	}
	if s.CarriedPrefixNewlineLimit < 0 {
		s.CarriedPrefixNewlineLimit = Default().CarriedPrefixNewlineLimit
	}
	return s, nil
}

// Load reads an ImportLayoutStyle from a YAML file.
func Load(path string) (*ImportLayoutStyle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading import layout style %s: %w", path, err)
	}
	return Parse(data)
}

// AlwaysFolded reports whether the given dotted import path (the full
// qualified form of the import, e.g. "java.awt.*" for a wildcard) matches
// one of the AlwaysFoldPackages patterns.
func (s *ImportLayoutStyle) AlwaysFolded(qualid string) bool {
	name := strings.ReplaceAll(qualid, ".", "/")
	for _, pattern := range s.AlwaysFoldPackages {
		ok, err := doublestar.Match(strings.ReplaceAll(pattern, ".", "/"), name)
		if err == nil && ok {
			return true
		}
	}
	return false
}
