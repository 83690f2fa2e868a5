package modules

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/zmap/zsshconf"
)

// OpenSSHFlags holds the options of the native ssh_config renderer.
type OpenSSHFlags struct {
	zsshconf.BaseFlags
	NoHostBlock bool   `long:"no-host-block" description:"Write bare directives without a Host line, e.g. for an Include file"`
	Indent      int    `long:"indent" default:"2" description:"Number of spaces to indent directives inside the Host block"`
	Comment     string `long:"comment" description:"Comment written above the block, one '#' line per line of text"`
}

// OpenSSHModule implements the zsshconf.RenderModule interface.
type OpenSSHModule struct {
}

// OpenSSHRenderer writes tables in ssh_config(5) syntax.
type OpenSSHRenderer struct {
	config *OpenSSHFlags
}

func init() {
	var module OpenSSHModule
	_, err := zsshconf.AddCommand("openssh", "OpenSSH ssh_config", module.Description(), &module)
	if err != nil {
		log.Fatal(err)
	}
}

func (m *OpenSSHModule) NewFlags() interface{} {
	return new(OpenSSHFlags)
}

func (m *OpenSSHModule) NewRenderer() zsshconf.Renderer {
	return new(OpenSSHRenderer)
}

// Description returns an overview of this module.
func (m *OpenSSHModule) Description() string {
	return "Render a hardened ssh_config block. Port is written once per port; algorithm lists are comma-separated."
}

func (f *OpenSSHFlags) Validate(args []string) error {
	if err := f.BaseFlags.Validate(args); err != nil {
		return err
	}
	if f.Indent < 0 || f.Indent > 16 {
		return fmt.Errorf("%w: indent must be in [0, 16], got %d", zsshconf.ErrInvalidArguments, f.Indent)
	}
	return nil
}

func (f *OpenSSHFlags) Help() string {
	return ""
}

func (r *OpenSSHRenderer) Init(flags zsshconf.RenderFlags) error {
	f, ok := flags.(*OpenSSHFlags)
	if !ok {
		return zsshconf.ErrMismatchedFlags
	}
	r.config = f
	return nil
}

func (r *OpenSSHRenderer) GetName() string {
	return r.config.Name
}

func (r *OpenSSHRenderer) Format() string {
	return "openssh"
}

// Render writes an optional comment, the Host line and one "Key value" line
// per directive value.
func (r *OpenSSHRenderer) Render(w io.Writer, host *zsshconf.HostPattern, table *zsshconf.DirectiveTable) error {
	out := bufio.NewWriter(w)
	if r.config.Comment != "" {
		for _, line := range strings.Split(r.config.Comment, "\n") {
			fmt.Fprintf(out, "# %s\n", strings.TrimRight(line, " \t"))
		}
	}
	indent := ""
	if !r.config.NoHostBlock {
		fmt.Fprintf(out, "Host %s\n", host)
		indent = strings.Repeat(" ", r.config.Indent)
	}
	for _, d := range table.Directives() {
		if d.Style == zsshconf.Repeated {
			for _, v := range d.Values {
				fmt.Fprintf(out, "%s%s %s\n", indent, d.Name, v)
			}
			continue
		}
		fmt.Fprintf(out, "%s%s %s\n", indent, d.Name, d.Value())
	}
	return out.Flush()
}
