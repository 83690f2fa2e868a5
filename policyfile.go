package zsshconf

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v2"
)

// ParsePolicy decodes a YAML policy document. Keys that are absent keep
// the values of DefaultPolicyInput; unknown keys are an error.
//
//	allow_weak_mac: true
//	ports: [22, 2222]
//	ipv6_enabled: true
func ParsePolicy(data []byte) (PolicyInput, error) {
	input := DefaultPolicyInput()
	if err := yaml.UnmarshalStrict(data, &input); err != nil {
		return PolicyInput{}, fmt.Errorf("%w: could not decode policy: %v", ErrInvalidArguments, err)
	}
	return input, nil
}

// ReadPolicy reads a YAML policy document from r.
func ReadPolicy(r io.Reader) (PolicyInput, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return PolicyInput{}, fmt.Errorf("could not read policy: %w", err)
	}
	return ParsePolicy(data)
}

// LoadPolicyFile reads a YAML policy document from the named file.
func LoadPolicyFile(fileName string) (PolicyInput, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return PolicyInput{}, fmt.Errorf("%w: could not open policy file: %v", ErrInvalidArguments, err)
	}
	defer f.Close()
	input, err := ReadPolicy(f)
	if err != nil {
		return PolicyInput{}, fmt.Errorf("%s: %w", fileName, err)
	}
	return input, nil
}
