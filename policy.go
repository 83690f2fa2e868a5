package zsshconf

import (
	"strconv"

	"github.com/zmap/zsshconf/lib/ssh"
)

// AddressFamily is the value of the AddressFamily directive.
type AddressFamily string

const (
	// AddressFamilyInet restricts connections to IPv4.
	AddressFamilyInet = AddressFamily("inet")
	// AddressFamilyAny lets the client use IPv4 or IPv6.
	AddressFamilyAny = AddressFamily("any")
)

// DefaultPort is the port used when none is configured.
const DefaultPort = 22

// PolicyInput is the set of trade-offs a DirectiveTable is resolved from.
type PolicyInput struct {
	AllowLegacyCiphers bool  `yaml:"allow_legacy_ciphers" json:"allow_legacy_ciphers" jsonschema:"description=Append CBC mode ciphers after the CTR mode ones"`
	AllowWeakMAC       bool  `yaml:"allow_weak_mac" json:"allow_weak_mac" jsonschema:"description=Append hmac-sha1 to the MAC list"`
	AllowWeakKEX       bool  `yaml:"allow_weak_kex" json:"allow_weak_kex" jsonschema:"description=Append SHA-1 based Diffie-Hellman key exchanges"`
	Ports              []int `yaml:"ports" json:"ports" jsonschema:"description=Ports to connect to; the first one is primary,minItems=1"`
	IPv6Enabled        bool  `yaml:"ipv6_enabled" json:"ipv6_enabled" jsonschema:"description=Allow IPv6 as well as IPv4"`
}

// DefaultPolicyInput returns the most restrictive policy on the default port.
func DefaultPolicyInput() PolicyInput {
	return PolicyInput{Ports: []int{DefaultPort}}
}

// addressFamily derives the AddressFamily directive value.
func (p PolicyInput) addressFamily() AddressFamily {
	if p.IPv6Enabled {
		return AddressFamilyAny
	}
	return AddressFamilyInet
}

// fixedDirectives are the hardening defaults that do not depend on the input.
var fixedDirectives = map[string]string{
	DirectiveProtocol:                  "2",
	DirectiveBatchMode:                 "no",
	DirectiveCheckHostIP:               "yes",
	DirectiveStrictHostKeyChecking:     "ask",
	DirectiveForwardAgent:              "no",
	DirectiveForwardX11:                "no",
	DirectiveHostbasedAuthentication:   "no",
	DirectiveRhostsRSAAuthentication:   "no",
	DirectiveRSAAuthentication:         "yes",
	DirectivePasswordAuthentication:    "no",
	DirectiveGSSAPIAuthentication:      "no",
	DirectiveGSSAPIDelegateCredentials: "no",
	DirectiveTunnel:                    "no",
	DirectivePermitLocalCommand:        "no",
	DirectiveCompression:               "yes",
}

// FixedValue returns the value of a directive that never depends on the
// input, and false for the derived ones.
func FixedValue(name string) (string, bool) {
	v, ok := fixedDirectives[name]
	return v, ok
}

// Resolve validates the input and builds the full directive table. It has no
// side effects and either returns a complete table or an error wrapping
// ErrInvalidPort.
func Resolve(input PolicyInput) (*DirectiveTable, error) {
	if err := validatePorts(input.Ports); err != nil {
		return nil, err
	}

	ports := make([]string, len(input.Ports))
	for i, port := range input.Ports {
		ports[i] = strconv.Itoa(port)
	}
	suites := map[string]ssh.Suite{
		DirectiveCiphers:       ssh.Ciphers(input.AllowLegacyCiphers),
		DirectiveMACs:          ssh.MACs(input.AllowWeakMAC),
		DirectiveKexAlgorithms: ssh.KexAlgorithms(input.AllowWeakKEX),
	}

	directives := make([]Directive, 0, len(catalog))
	for _, name := range catalog {
		d := Directive{Name: name}
		switch name {
		case DirectiveAddressFamily:
			d.Values = []string{string(input.addressFamily())}
		case DirectivePort:
			d.Values, d.Style = ports, Repeated
		case DirectiveCiphers, DirectiveMACs, DirectiveKexAlgorithms:
			d.Values, d.Style = suites[name].Algorithms, CommaSeparated
		default:
			d.Values = []string{fixedDirectives[name]}
		}
		directives = append(directives, d)
	}
	return &DirectiveTable{directives: directives}, nil
}

func validatePorts(ports []int) error {
	if len(ports) == 0 {
		return &PortError{Index: -1, Empty: true}
	}
	for i, port := range ports {
		if port < 1 || port > 65535 {
			return &PortError{Index: i, Port: port}
		}
	}
	return nil
}
