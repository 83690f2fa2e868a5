package modules

import (
	"io"

	log "github.com/sirupsen/logrus"
	"github.com/zmap/zsshconf"
	"gopkg.in/yaml.v2"
)

// YAMLFlags holds the options of the YAML renderer.
type YAMLFlags struct {
	zsshconf.BaseFlags
	NoDocumentMarker bool `long:"no-document-marker" description:"Do not start the document with ---"`
}

// YAMLModule implements the zsshconf.RenderModule interface.
type YAMLModule struct {
}

// YAMLRenderer writes one YAML document per job.
type YAMLRenderer struct {
	config *YAMLFlags
}

func init() {
	var module YAMLModule
	_, err := zsshconf.AddCommand("yaml", "YAML directive table", module.Description(), &module)
	if err != nil {
		log.Fatal(err)
	}
}

func (m *YAMLModule) NewFlags() interface{} {
	return new(YAMLFlags)
}

func (m *YAMLModule) NewRenderer() zsshconf.Renderer {
	return new(YAMLRenderer)
}

// Description returns an overview of this module.
func (m *YAMLModule) Description() string {
	return "Render the directive table as a YAML document, suitable for configuration management tools."
}

func (f *YAMLFlags) Help() string {
	return ""
}

func (r *YAMLRenderer) Init(flags zsshconf.RenderFlags) error {
	f, ok := flags.(*YAMLFlags)
	if !ok {
		return zsshconf.ErrMismatchedFlags
	}
	r.config = f
	return nil
}

func (r *YAMLRenderer) GetName() string {
	return r.config.Name
}

func (r *YAMLRenderer) Format() string {
	return "yaml"
}

func (r *YAMLRenderer) Render(w io.Writer, host *zsshconf.HostPattern, table *zsshconf.DirectiveTable) error {
	doc := yaml.MapSlice{
		{Key: "name", Value: r.config.Name},
		{Key: "host", Value: host.String()},
		{Key: "directives", Value: table},
	}
	out, err := yaml.Marshal(doc)
	if err != nil {
		return err
	}
	if !r.config.NoDocumentMarker {
		if _, err := io.WriteString(w, "---\n"); err != nil {
			return err
		}
	}
	_, err = w.Write(out)
	return err
}
