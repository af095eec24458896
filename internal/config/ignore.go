package config

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"
)

// IgnoreMatcher reports whether a command should be left out of the log.
type IgnoreMatcher struct {
	patterns []glob.Glob
}

// NewIgnoreMatcher compiles the ignore_commands patterns. Each pattern is a
// glob matched against the whole trimmed command line.
func NewIgnoreMatcher(patterns []string) (*IgnoreMatcher, error) {
	m := &IgnoreMatcher{}
	for _, p := range patterns {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid ignore pattern %q: %w", p, err)
		}
		m.patterns = append(m.patterns, g)
	}
	return m, nil
}

// Match reports whether cmd matches any pattern.
func (m *IgnoreMatcher) Match(cmd string) bool {
	if m == nil {
		return false
	}
	cmd = strings.TrimSpace(cmd)
	for _, g := range m.patterns {
		if g.Match(cmd) {
			return true
		}
	}
	return false
}
