package zsshconf

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

var (
	safeCiphers = []string{"aes128-ctr", "aes256-ctr", "aes192-ctr"}
	safeMACs    = []string{"hmac-sha2-256", "hmac-sha2-512", "hmac-ripemd160"}
	safeKex     = []string{"ecdh-sha2-nistp256", "ecdh-sha2-nistp384", "ecdh-sha2-nistp521", "diffie-hellman-group-exchange-sha256"}
)

// allInputs returns every combination of the three algorithm flags and the
// IPv6 flag on the default port.
func allInputs() []PolicyInput {
	var inputs []PolicyInput
	for i := 0; i < 16; i++ {
		inputs = append(inputs, PolicyInput{
			AllowLegacyCiphers: i&1 != 0,
			AllowWeakMAC:       i&2 != 0,
			AllowWeakKEX:       i&4 != 0,
			IPv6Enabled:        i&8 != 0,
			Ports:              []int{22},
		})
	}
	return inputs
}

func values(t *testing.T, table *DirectiveTable, name string) []string {
	t.Helper()
	d, ok := table.Get(name)
	require.True(t, ok, name)
	return d.Values
}

func TestResolveDefault(t *testing.T) {
	table, err := Resolve(DefaultPolicyInput())
	require.NoError(t, err)
	require.Equal(t, Catalog(), table.Names())
	require.Equal(t, []string{"inet"}, values(t, table, DirectiveAddressFamily))
	require.Equal(t, []string{"22"}, values(t, table, DirectivePort))
	require.Equal(t, safeCiphers, values(t, table, DirectiveCiphers))
	require.Equal(t, safeMACs, values(t, table, DirectiveMACs))
	require.Equal(t, safeKex, values(t, table, DirectiveKexAlgorithms))
	require.Equal(t, []string{"ask"}, values(t, table, DirectiveStrictHostKeyChecking))
	require.Equal(t, []string{"2"}, values(t, table, DirectiveProtocol))
}

func TestResolveAllWeak(t *testing.T) {
	table, err := Resolve(PolicyInput{
		AllowLegacyCiphers: true,
		AllowWeakMAC:       true,
		AllowWeakKEX:       true,
		Ports:              []int{22, 2222},
		IPv6Enabled:        true,
	})
	require.NoError(t, err)
	require.Equal(t, []string{"any"}, values(t, table, DirectiveAddressFamily))
	require.Equal(t, []string{"22", "2222"}, values(t, table, DirectivePort))
	require.Equal(t, append(append([]string{}, safeCiphers...), "aes128-cbc", "aes256-cbc", "aes192-cbc"), values(t, table, DirectiveCiphers))
	require.Equal(t, append(append([]string{}, safeMACs...), "hmac-sha1"), values(t, table, DirectiveMACs))
	require.Equal(t, append(append([]string{}, safeKex...),
		"diffie-hellman-group-exchange-sha1", "diffie-hellman-group14-sha1", "diffie-hellman-group1-sha1"),
		values(t, table, DirectiveKexAlgorithms))
}

func TestResolveDeterministic(t *testing.T) {
	for _, input := range allInputs() {
		first, err := Resolve(input)
		require.NoError(t, err)
		second, err := Resolve(input)
		require.NoError(t, err)
		require.Equal(t, first.Directives(), second.Directives())
	}
}

func TestResolveSafePrefix(t *testing.T) {
	for _, input := range allInputs() {
		table, err := Resolve(input)
		require.NoError(t, err)
		require.Equal(t, safeCiphers, values(t, table, DirectiveCiphers)[:len(safeCiphers)])
		require.Equal(t, safeMACs, values(t, table, DirectiveMACs)[:len(safeMACs)])
		require.Equal(t, safeKex, values(t, table, DirectiveKexAlgorithms)[:len(safeKex)])
	}
}

func TestResolveFlagsAreIndependent(t *testing.T) {
	base, err := Resolve(DefaultPolicyInput())
	require.NoError(t, err)
	cases := []struct {
		input   PolicyInput
		changed string
	}{
		{PolicyInput{AllowLegacyCiphers: true, Ports: []int{22}}, DirectiveCiphers},
		{PolicyInput{AllowWeakMAC: true, Ports: []int{22}}, DirectiveMACs},
		{PolicyInput{AllowWeakKEX: true, Ports: []int{22}}, DirectiveKexAlgorithms},
		{PolicyInput{IPv6Enabled: true, Ports: []int{22}}, DirectiveAddressFamily},
	}
	for _, tc := range cases {
		table, err := Resolve(tc.input)
		require.NoError(t, err)
		for _, name := range Catalog() {
			if name == tc.changed {
				require.NotEqual(t, values(t, base, name), values(t, table, name), name)
				continue
			}
			require.Equal(t, values(t, base, name), values(t, table, name), "%s changed by %s", name, tc.changed)
		}
	}
}

func TestResolveFixedDirectives(t *testing.T) {
	for _, input := range allInputs() {
		table, err := Resolve(input)
		require.NoError(t, err)
		for _, name := range Catalog() {
			fixed, ok := FixedValue(name)
			if !ok {
				continue
			}
			require.Equal(t, []string{fixed}, values(t, table, name), name)
		}
	}
	_, ok := FixedValue(DirectivePort)
	require.False(t, ok)
	_, ok = FixedValue(DirectiveCiphers)
	require.False(t, ok)
}

func TestResolveInvalidPorts(t *testing.T) {
	tests := []struct {
		name  string
		ports []int
		index int
	}{
		{"empty", nil, -1},
		{"zero", []int{0}, 0},
		{"negative", []int{22, -5}, 1},
		{"too large", []int{22, 2222, 65536}, 2},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			table, err := Resolve(PolicyInput{Ports: tc.ports})
			require.Nil(t, table)
			require.ErrorIs(t, err, ErrInvalidPort)
			var portErr *PortError
			require.True(t, errors.As(err, &portErr))
			require.Equal(t, tc.index, portErr.Index)
			require.Equal(t, StatusInvalidPort, TryGetStatus(err))
		})
	}
}

func TestResolvePortBounds(t *testing.T) {
	table, err := Resolve(PolicyInput{Ports: []int{1, 65535, 1}})
	require.NoError(t, err)
	require.Equal(t, []string{"1", "65535", "1"}, values(t, table, DirectivePort))
}

func TestDirectiveTableIsImmutable(t *testing.T) {
	table, err := Resolve(DefaultPolicyInput())
	require.NoError(t, err)
	d, _ := table.Get(DirectiveCiphers)
	d.Values[0] = "none"
	ds := table.Directives()
	ds[0].Values[0] = "inet6"
	require.Equal(t, safeCiphers, values(t, table, DirectiveCiphers))
	require.Equal(t, []string{"inet"}, values(t, table, DirectiveAddressFamily))

	names := Catalog()
	names[0] = "Bogus"
	require.Equal(t, DirectiveAddressFamily, Catalog()[0])
}

func TestDirectiveTableJSON(t *testing.T) {
	table, err := Resolve(PolicyInput{Ports: []int{22, 443}})
	require.NoError(t, err)
	b, err := table.MarshalJSON()
	require.NoError(t, err)
	require.Contains(t, string(b), `{"AddressFamily":"inet","Protocol":"2","Port":["22","443"],"BatchMode":"no",`)
	require.Contains(t, string(b), `"Compression":"yes"}`)
}

func ExampleResolve() {
	table, err := Resolve(PolicyInput{AllowWeakMAC: true, Ports: []int{2222}})
	if err != nil {
		panic(err)
	}
	for _, d := range table.Directives()[:9] {
		fmt.Printf("%s %s\n", d.Name, d.Value())
	}
	// Output:
	// AddressFamily inet
	// Protocol 2
	// Port 2222
	// BatchMode no
	// CheckHostIP yes
	// StrictHostKeyChecking ask
	// Ciphers aes128-ctr,aes256-ctr,aes192-ctr
	// MACs hmac-sha2-256,hmac-sha2-512,hmac-ripemd160,hmac-sha1
	// KexAlgorithms ecdh-sha2-nistp256,ecdh-sha2-nistp384,ecdh-sha2-nistp521,diffie-hellman-group-exchange-sha256
}
