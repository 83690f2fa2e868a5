package zsshconf

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParsePolicyDefaults(t *testing.T) {
	input, err := ParsePolicy([]byte("allow_weak_mac: true\n"))
	require.NoError(t, err)
	require.Equal(t, PolicyInput{AllowWeakMAC: true, Ports: []int{DefaultPort}}, input)

	input, err = ParsePolicy(nil)
	require.NoError(t, err)
	require.Equal(t, DefaultPolicyInput(), input)
}

func TestParsePolicyFull(t *testing.T) {
	doc := strings.Join([]string{
		"allow_legacy_ciphers: true",
		"allow_weak_mac: false",
		"allow_weak_kex: true",
		"ports: [2222, 22]",
		"ipv6_enabled: true",
	}, "\n")
	input, err := ParsePolicy([]byte(doc))
	require.NoError(t, err)
	require.Equal(t, PolicyInput{
		AllowLegacyCiphers: true,
		AllowWeakKEX:       true,
		Ports:              []int{2222, 22},
		IPv6Enabled:        true,
	}, input)
}

func TestParsePolicyUnknownKey(t *testing.T) {
	_, err := ParsePolicy([]byte("allow_weak_macs: true\n"))
	require.ErrorIs(t, err, ErrInvalidArguments)
	require.Equal(t, StatusInvalidArguments, TryGetStatus(err))
}

func TestParsePolicyEmptyPortsFailsResolve(t *testing.T) {
	input, err := ParsePolicy([]byte("ports: []\n"))
	require.NoError(t, err)
	_, err = Resolve(input)
	require.ErrorIs(t, err, ErrInvalidPort)
}

func TestLoadPolicyFile(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "policy.yaml")
	require.NoError(t, os.WriteFile(name, []byte("ports: [22, 8022]\n"), 0o600))
	input, err := LoadPolicyFile(name)
	require.NoError(t, err)
	require.Equal(t, []int{22, 8022}, input.Ports)

	_, err = LoadPolicyFile(filepath.Join(dir, "missing.yaml"))
	require.ErrorIs(t, err, ErrInvalidArguments)
}

func TestBaseFlagsPolicyInput(t *testing.T) {
	flags := BaseFlags{Ports: "22,2200-2201", AllowWeakKEX: true, IPv6: true}
	input, err := flags.PolicyInput()
	require.NoError(t, err)
	require.Equal(t, PolicyInput{AllowWeakKEX: true, Ports: []int{22, 2200, 2201}, IPv6Enabled: true}, input)

	dir := t.TempDir()
	name := filepath.Join(dir, "policy.yaml")
	require.NoError(t, os.WriteFile(name, []byte("allow_legacy_ciphers: true\n"), 0o600))
	flags.PolicyFile = name
	input, err = flags.PolicyInput()
	require.NoError(t, err)
	require.Equal(t, PolicyInput{AllowLegacyCiphers: true, Ports: []int{DefaultPort}}, input)
}
