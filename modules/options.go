package modules

import (
	"io"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/zmap/zsshconf"
)

// OptionsFlags holds the options of the command line renderer.
type OptionsFlags struct {
	zsshconf.BaseFlags
	Quote bool `long:"quote" description:"Single-quote every -o argument for use in a shell"`
}

// OptionsModule implements the zsshconf.RenderModule interface.
type OptionsModule struct {
}

// OptionsRenderer writes the table as ssh(1) -o arguments. The host pattern
// is not part of the output; the options apply to whatever host ssh is
// invoked with.
type OptionsRenderer struct {
	config *OptionsFlags
}

func init() {
	var module OptionsModule
	_, err := zsshconf.AddCommand("options", "ssh -o arguments", module.Description(), &module)
	if err != nil {
		log.Fatal(err)
	}
}

func (m *OptionsModule) NewFlags() interface{} {
	return new(OptionsFlags)
}

func (m *OptionsModule) NewRenderer() zsshconf.Renderer {
	return new(OptionsRenderer)
}

// Description returns an overview of this module.
func (m *OptionsModule) Description() string {
	return "Render the directive table as a single line of ssh -o Key=Value arguments."
}

func (f *OptionsFlags) Help() string {
	return ""
}

func (r *OptionsRenderer) Init(flags zsshconf.RenderFlags) error {
	f, ok := flags.(*OptionsFlags)
	if !ok {
		return zsshconf.ErrMismatchedFlags
	}
	r.config = f
	return nil
}

func (r *OptionsRenderer) GetName() string {
	return r.config.Name
}

func (r *OptionsRenderer) Format() string {
	return "options"
}

func (r *OptionsRenderer) Render(w io.Writer, host *zsshconf.HostPattern, table *zsshconf.DirectiveTable) error {
	args := make([]string, 0, 2*table.Len())
	add := func(name, value string) {
		opt := name + "=" + value
		if r.config.Quote {
			opt = "'" + opt + "'"
		}
		args = append(args, "-o", opt)
	}
	for _, d := range table.Directives() {
		if d.Style == zsshconf.Repeated {
			for _, v := range d.Values {
				add(d.Name, v)
			}
			continue
		}
		add(d.Name, d.Value())
	}
	_, err := io.WriteString(w, strings.Join(args, " ")+"\n")
	return err
}
