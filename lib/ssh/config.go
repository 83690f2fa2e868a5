package ssh

import (
	"errors"
	"fmt"
	"strings"

	xssh "golang.org/x/crypto/ssh"
)

// ErrUnknownSuite is returned for a suite name other than Ciphers, MACs or
// KexAlgorithms.
var ErrUnknownSuite = errors.New("unknown algorithm suite")

// ParseSuite parses a comma-separated algorithm list for the named suite,
// rejecting algorithms outside of that suite's vocabulary.
func ParseSuite(name string, value string) (Suite, error) {
	var supported []string
	switch name {
	case SuiteCiphers:
		supported = append(append(supported, safeCiphers...), legacyCiphers...)
	case SuiteMACs:
		supported = append(append(supported, safeMACs...), weakMACs...)
	case SuiteKexAlgorithms:
		supported = append(append(supported, safeKexAlgos...), weakKexAlgos...)
	default:
		return Suite{}, fmt.Errorf("%w: %q", ErrUnknownSuite, name)
	}
	algs, err := validateAlgorithms(value, supported)
	if err != nil {
		return Suite{}, fmt.Errorf("%s: %w", name, err)
	}
	return Suite{Name: name, Algorithms: algs}, nil
}

// ApplyTo sets the field of c corresponding to the suite. The slice is copied
// so later changes to c do not alias the suite.
func (s Suite) ApplyTo(c *xssh.Config) error {
	algs := append([]string(nil), s.Algorithms...)
	switch s.Name {
	case SuiteCiphers:
		c.Ciphers = algs
	case SuiteMACs:
		c.MACs = algs
	case SuiteKexAlgorithms:
		c.KeyExchanges = algs
	default:
		return fmt.Errorf("%w: %q", ErrUnknownSuite, s.Name)
	}
	return nil
}

func validateAlgorithms(value string, supported []string) ([]string, error) {
	if strings.TrimSpace(value) == "" {
		return nil, errors.New("empty algorithm list")
	}
	var algs []string
	for _, alg := range strings.Split(value, ",") {
		alg = strings.TrimSpace(alg)
		if !contains(supported, alg) {
			return nil, fmt.Errorf(`algorithm not supported: "%s"`, alg)
		}
		algs = append(algs, alg)
	}
	return algs, nil
}
