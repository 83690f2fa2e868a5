package zsshconf

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"
)

// DefaultHostPattern matches every host.
const DefaultHostPattern = "*"

// HostPattern is a compiled ssh_config style pattern list, such as
// "*.example.com !bastion.example.com".
type HostPattern struct {
	raw      string
	allow    []glob.Glob
	negative []glob.Glob
}

// ParseHostPattern compiles a whitespace or comma separated list of patterns.
// Entries prefixed with '!' are negated.
func ParseHostPattern(pattern string) (*HostPattern, error) {
	fields := strings.FieldsFunc(pattern, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: empty pattern", ErrInvalidHostPattern)
	}
	hp := &HostPattern{raw: strings.Join(fields, " ")}
	for _, field := range fields {
		negated := strings.HasPrefix(field, "!")
		if negated {
			field = field[1:]
		}
		if field == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidHostPattern, pattern)
		}
		g, err := glob.Compile(strings.ToLower(field))
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidHostPattern, field, err)
		}
		if negated {
			hp.negative = append(hp.negative, g)
		} else {
			hp.allow = append(hp.allow, g)
		}
	}
	return hp, nil
}

// Match reports whether host matches at least one pattern and none of the
// negated ones. Matching is case-insensitive.
func (hp *HostPattern) Match(host string) bool {
	host = strings.ToLower(host)
	for _, g := range hp.negative {
		if g.Match(host) {
			return false
		}
	}
	for _, g := range hp.allow {
		if g.Match(host) {
			return true
		}
	}
	return false
}

// String returns the pattern list as written in a Host line.
func (hp *HostPattern) String() string {
	return hp.raw
}
