package zsshconf

import (
	"bytes"
	"encoding/json"
	"strings"

	"gopkg.in/yaml.v2"
)

// Directive names, spelled as ssh_config(5) spells them.
const (
	DirectiveAddressFamily             = "AddressFamily"
	DirectiveProtocol                  = "Protocol"
	DirectivePort                      = "Port"
	DirectiveBatchMode                 = "BatchMode"
	DirectiveCheckHostIP               = "CheckHostIP"
	DirectiveStrictHostKeyChecking     = "StrictHostKeyChecking"
	DirectiveCiphers                   = "Ciphers"
	DirectiveMACs                      = "MACs"
	DirectiveKexAlgorithms             = "KexAlgorithms"
	DirectiveForwardAgent              = "ForwardAgent"
	DirectiveForwardX11                = "ForwardX11"
	DirectiveHostbasedAuthentication   = "HostbasedAuthentication"
	DirectiveRhostsRSAAuthentication   = "RhostsRSAAuthentication"
	DirectiveRSAAuthentication         = "RSAAuthentication"
	DirectivePasswordAuthentication    = "PasswordAuthentication"
	DirectiveGSSAPIAuthentication      = "GSSAPIAuthentication"
	DirectiveGSSAPIDelegateCredentials = "GSSAPIDelegateCredentials"
	DirectiveTunnel                    = "Tunnel"
	DirectivePermitLocalCommand        = "PermitLocalCommand"
	DirectiveCompression               = "Compression"
)

// catalog is the closed set of directives in every DirectiveTable, in output
// order: address family and protocol, connection, algorithms,
// authentication and forwarding, then the rest.
var catalog = []string{
	DirectiveAddressFamily,
	DirectiveProtocol,
	DirectivePort,
	DirectiveBatchMode,
	DirectiveCheckHostIP,
	DirectiveStrictHostKeyChecking,
	DirectiveCiphers,
	DirectiveMACs,
	DirectiveKexAlgorithms,
	DirectiveForwardAgent,
	DirectiveForwardX11,
	DirectiveHostbasedAuthentication,
	DirectiveRhostsRSAAuthentication,
	DirectiveRSAAuthentication,
	DirectivePasswordAuthentication,
	DirectiveGSSAPIAuthentication,
	DirectiveGSSAPIDelegateCredentials,
	DirectiveTunnel,
	DirectivePermitLocalCommand,
	DirectiveCompression,
}

// Catalog returns the directive names every table contains, in order.
func Catalog() []string {
	return append([]string(nil), catalog...)
}

// ValueStyle says how a directive's values are laid out by a renderer.
type ValueStyle int

const (
	// Scalar directives carry exactly one value.
	Scalar ValueStyle = iota
	// CommaSeparated directives are lists written as one comma-joined value.
	CommaSeparated
	// Repeated directives are lists written as one line per value, where
	// the format allows it. The first value takes precedence.
	Repeated
)

// Directive is a single named setting with its value(s).
type Directive struct {
	Name   string
	Values []string
	Style  ValueStyle
}

// IsList reports whether the directive holds an ordered list rather than a
// single scalar.
func (d Directive) IsList() bool {
	return d.Style != Scalar
}

// Value returns the directive as a single string; lists are comma-joined.
func (d Directive) Value() string {
	return strings.Join(d.Values, ",")
}

func (d Directive) clone() Directive {
	d.Values = append([]string(nil), d.Values...)
	return d
}

// DirectiveTable is the ordered, immutable result of a resolution.
type DirectiveTable struct {
	directives []Directive
}

// Len returns the number of directives in the table.
func (t *DirectiveTable) Len() int {
	return len(t.directives)
}

// Get returns the directive with the given name.
func (t *DirectiveTable) Get(name string) (Directive, bool) {
	for _, d := range t.directives {
		if d.Name == name {
			return d.clone(), true
		}
	}
	return Directive{}, false
}

// Names returns the directive names in table order.
func (t *DirectiveTable) Names() []string {
	names := make([]string, len(t.directives))
	for i, d := range t.directives {
		names[i] = d.Name
	}
	return names
}

// Directives returns a copy of the table's directives in order.
func (t *DirectiveTable) Directives() []Directive {
	ret := make([]Directive, len(t.directives))
	for i, d := range t.directives {
		ret[i] = d.clone()
	}
	return ret
}

// MarshalJSON encodes the table as a JSON object whose keys keep table
// order. Scalars are strings and lists are arrays of strings.
func (t *DirectiveTable) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, d := range t.directives {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(d.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		var value []byte
		if d.IsList() {
			value, err = json.Marshal(d.Values)
		} else {
			value, err = json.Marshal(d.Value())
		}
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML encodes the table as an ordered YAML mapping.
func (t *DirectiveTable) MarshalYAML() (interface{}, error) {
	ms := make(yaml.MapSlice, 0, len(t.directives))
	for _, d := range t.directives {
		item := yaml.MapItem{Key: d.Name}
		if d.IsList() {
			item.Value = append([]string(nil), d.Values...)
		} else {
			item.Value = d.Value()
		}
		ms = append(ms, item)
	}
	return ms, nil
}
