package zsshconf

import (
	xssh "golang.org/x/crypto/ssh"

	"github.com/zmap/zsshconf/lib/ssh"
)

// ApplyClientConfig copies the table's cipher, MAC and key exchange
// preferences onto a golang.org/x/crypto/ssh client configuration. The
// remaining directives have no x/crypto/ssh equivalent and are ignored.
func (t *DirectiveTable) ApplyClientConfig(c *xssh.ClientConfig) error {
	for _, name := range []string{DirectiveCiphers, DirectiveMACs, DirectiveKexAlgorithms} {
		d, ok := t.Get(name)
		if !ok {
			continue
		}
		suite, err := ssh.ParseSuite(name, d.Value())
		if err != nil {
			return err
		}
		if err := suite.ApplyTo(&c.Config); err != nil {
			return err
		}
	}
	return nil
}
