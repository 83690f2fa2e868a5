package modules

import (
	"encoding/json"
	"io"

	log "github.com/sirupsen/logrus"
	"github.com/zmap/zsshconf"
)

// JSONFlags holds the options of the JSON renderer.
type JSONFlags struct {
	zsshconf.BaseFlags
	Pretty bool `long:"pretty" description:"Indent the JSON output instead of writing one object per line"`
}

// JSONModule implements the zsshconf.RenderModule interface.
type JSONModule struct {
}

// JSONRenderer writes one JSON object per job.
type JSONRenderer struct {
	config *JSONFlags
}

// jsonJob is the document written for each job. The directives keep the
// table order.
type jsonJob struct {
	Name       string                   `json:"name"`
	Host       string                   `json:"host"`
	Directives *zsshconf.DirectiveTable `json:"directives"`
}

func init() {
	var module JSONModule
	_, err := zsshconf.AddCommand("json", "JSON directive table", module.Description(), &module)
	if err != nil {
		log.Fatal(err)
	}
}

func (m *JSONModule) NewFlags() interface{} {
	return new(JSONFlags)
}

func (m *JSONModule) NewRenderer() zsshconf.Renderer {
	return new(JSONRenderer)
}

// Description returns an overview of this module.
func (m *JSONModule) Description() string {
	return "Render the directive table as a JSON object. List directives are arrays, scalar directives are strings."
}

func (f *JSONFlags) Help() string {
	return ""
}

func (r *JSONRenderer) Init(flags zsshconf.RenderFlags) error {
	f, ok := flags.(*JSONFlags)
	if !ok {
		return zsshconf.ErrMismatchedFlags
	}
	r.config = f
	return nil
}

func (r *JSONRenderer) GetName() string {
	return r.config.Name
}

func (r *JSONRenderer) Format() string {
	return "json"
}

func (r *JSONRenderer) Render(w io.Writer, host *zsshconf.HostPattern, table *zsshconf.DirectiveTable) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if r.config.Pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(&jsonJob{
		Name:       r.config.Name,
		Host:       host.String(),
		Directives: table,
	})
}
