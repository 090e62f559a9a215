package style

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefault(t *testing.T) {
	s := Default()
	if s.ClassCountToUseStarImport != 5 {
		t.Errorf("ClassCountToUseStarImport got %d, want 5", s.ClassCountToUseStarImport)
	}
	if s.NameCountToUseStarImport != 3 {
		t.Errorf("NameCountToUseStarImport got %d, want 3", s.NameCountToUseStarImport)
	}
	if s.CarriedPrefixNewlineLimit != 1 {
		t.Errorf("CarriedPrefixNewlineLimit got %d, want 1", s.CarriedPrefixNewlineLimit)
	}
}

func TestParse(t *testing.T) {
	s, err := Parse([]byte(`
classCountToUseStarImport: 99
alwaysFoldPackages:
  - java.awt.*
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if s.ClassCountToUseStarImport != 99 {
		t.Errorf("ClassCountToUseStarImport got %d, want 99", s.ClassCountToUseStarImport)
	}
	// unset fields keep their defaults
	if s.NameCountToUseStarImport != 3 {
		t.Errorf("NameCountToUseStarImport got %d, want default 3", s.NameCountToUseStarImport)
	}
	if diff := cmp.Diff([]string{"java.awt.*"}, s.AlwaysFoldPackages); diff != "" {
		t.Errorf("AlwaysFoldPackages (-want, +got):\n%s", diff)
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	if _, err := Parse([]byte("classCountToUseStarImport: [nope")); err == nil {
		t.Errorf("expected an error for malformed YAML")
	}
}

func TestAlwaysFolded(t *testing.T) {
	s := Default()
	s.AlwaysFoldPackages = []string{"java.awt.*", "org.example.**"}

	testCases := []struct {
		qualid string
		want   bool
	}{
		{"java.awt.*", true},
		{"java.awt.Color", true},
		{"java.awt.event.*", false}, // one level only
		{"org.example.deep.nested.*", true},
		{"java.util.*", false},
	}

	for _, tc := range testCases {
		t.Run(tc.qualid, func(t *testing.T) {
			if got := s.AlwaysFolded(tc.qualid); got != tc.want {
				t.Errorf("AlwaysFolded(%q) got %v, want %v", tc.qualid, got, tc.want)
			}
		})
	}
}
