package ssh

import (
	"strings"
)

// Cipher names, as negotiated in SSH_MSG_KEXINIT.
const (
	cipherAES128CTR = "aes128-ctr"
	cipherAES192CTR = "aes192-ctr"
	cipherAES256CTR = "aes256-ctr"
	cipherAES128CBC = "aes128-cbc"
	cipherAES192CBC = "aes192-cbc"
	cipherAES256CBC = "aes256-cbc"
)

// MAC names.
const (
	macHMACSHA256    = "hmac-sha2-256"
	macHMACSHA512    = "hmac-sha2-512"
	macHMACRIPEMD160 = "hmac-ripemd160"
	macHMACSHA1      = "hmac-sha1"
)

// Key exchange names.
const (
	kexAlgoECDH256     = "ecdh-sha2-nistp256"
	kexAlgoECDH384     = "ecdh-sha2-nistp384"
	kexAlgoECDH521     = "ecdh-sha2-nistp521"
	kexAlgoDHGEXSHA256 = "diffie-hellman-group-exchange-sha256"
	kexAlgoDHGEXSHA1   = "diffie-hellman-group-exchange-sha1"
	kexAlgoDH14SHA1    = "diffie-hellman-group14-sha1"
	kexAlgoDH1SHA1     = "diffie-hellman-group1-sha1"
)

// Suite names, matching the ssh_config directive each suite is written to.
const (
	SuiteCiphers       = "Ciphers"
	SuiteMACs          = "MACs"
	SuiteKexAlgorithms = "KexAlgorithms"
)

// The safe lists are offered first, in preference order. The weak lists are
// only ever appended after them.
var (
	safeCiphers   = []string{cipherAES128CTR, cipherAES256CTR, cipherAES192CTR}
	legacyCiphers = []string{cipherAES128CBC, cipherAES256CBC, cipherAES192CBC}

	safeMACs = []string{macHMACSHA256, macHMACSHA512, macHMACRIPEMD160}
	weakMACs = []string{macHMACSHA1}

	safeKexAlgos = []string{kexAlgoECDH256, kexAlgoECDH384, kexAlgoECDH521, kexAlgoDHGEXSHA256}
	weakKexAlgos = []string{kexAlgoDHGEXSHA1, kexAlgoDH14SHA1, kexAlgoDH1SHA1}
)

// Suite is a named list of algorithm identifiers in client preference order.
type Suite struct {
	Name       string
	Algorithms []string
}

// String returns the comma-separated form used on the wire and in ssh_config.
func (s Suite) String() string {
	return strings.Join(s.Algorithms, ",")
}

// Contains reports whether alg is offered by the suite.
func (s Suite) Contains(alg string) bool {
	return contains(s.Algorithms, alg)
}

func newSuite(name string, safe []string, weak []string, allowWeak bool) Suite {
	n := len(safe)
	if allowWeak {
		n += len(weak)
	}
	algs := make([]string, 0, n)
	algs = append(algs, safe...)
	if allowWeak {
		algs = append(algs, weak...)
	}
	return Suite{Name: name, Algorithms: algs}
}

// Ciphers returns the cipher suite. CBC mode ciphers are appended after the
// CTR mode ones when allowLegacy is set.
func Ciphers(allowLegacy bool) Suite {
	return newSuite(SuiteCiphers, safeCiphers, legacyCiphers, allowLegacy)
}

// MACs returns the MAC suite, with hmac-sha1 appended when allowWeak is set.
func MACs(allowWeak bool) Suite {
	return newSuite(SuiteMACs, safeMACs, weakMACs, allowWeak)
}

// KexAlgorithms returns the key exchange suite, with the SHA-1 based
// Diffie-Hellman groups appended when allowWeak is set.
func KexAlgorithms(allowWeak bool) Suite {
	return newSuite(SuiteKexAlgorithms, safeKexAlgos, weakKexAlgos, allowWeak)
}

// IsWeak reports whether alg is one of the algorithms only offered when a
// weak or legacy flag is set.
func IsWeak(alg string) bool {
	return contains(legacyCiphers, alg) || contains(weakMACs, alg) || contains(weakKexAlgos, alg)
}

// IsKnown reports whether alg belongs to the vocabulary of any suite.
func IsKnown(alg string) bool {
	return IsWeak(alg) || contains(safeCiphers, alg) || contains(safeMACs, alg) || contains(safeKexAlgos, alg)
}

func contains(list []string, alg string) bool {
	for _, v := range list {
		if v == alg {
			return true
		}
	}
	return false
}
