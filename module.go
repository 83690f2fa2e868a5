package zsshconf

import (
	"fmt"
	"io"
)

// RenderFlags is an interface that contains all functions necessary to run
// a render job.
type RenderFlags interface {
	// Help optionally returns any additional help text, e.g. specifying what
	// empty defaults are interpreted as.
	Help() string

	// Validate enforces all command-line flags and positional arguments have
	// valid values.
	Validate(args []string) error

	// Base returns the policy and job options shared by every renderer.
	Base() *BaseFlags
}

// Renderer is the collaborator that serializes a resolved DirectiveTable
// into a concrete configuration format.
type Renderer interface {
	// Init runs once for this renderer at library init time.
	Init(flags RenderFlags) error

	// GetName returns the name of the job this renderer was configured for.
	GetName() string

	// Format returns the output format identifier, e.g. "openssh".
	Format() string

	// Render writes table, scoped to the given host pattern, to w. It must
	// produce identical bytes for identical input.
	Render(w io.Writer, host *HostPattern, table *DirectiveTable) error
}

// RenderModule is an interface for a renderer's command-line registration.
type RenderModule interface {
	// NewFlags is called by the framework to pass to the argument parser.
	NewFlags() interface{}

	// NewRenderer is called by the framework for each time an individual
	// job is specified in the config or on the command-line.
	NewRenderer() Renderer

	// Description returns a string suitable for use as an overview of this
	// module within usage text.
	Description() string
}

// BaseFlags contains the options that every renderer accepts: the policy
// trade-offs and the host pattern the output applies to.
type BaseFlags struct {
	Name               string `short:"n" long:"name" description:"Specify name for the job, only necessary if rendering multiple jobs"`
	Host               string `long:"host" default:"*" description:"Host pattern the rendered configuration applies to"`
	Ports              string `short:"p" long:"ports" default:"22" description:"Comma-separated list of ports or inclusive ranges (e.g. 22,2200-2202). The first one is primary."`
	AllowLegacyCiphers bool   `long:"allow-legacy-ciphers" description:"Append CBC mode ciphers after the CTR mode ones"`
	AllowWeakMAC       bool   `long:"allow-weak-mac" description:"Append hmac-sha1 to the MAC list"`
	AllowWeakKEX       bool   `long:"allow-weak-kex" description:"Append SHA-1 based Diffie-Hellman key exchanges"`
	IPv6               bool   `long:"ipv6" description:"Allow IPv6 as well as IPv4 (AddressFamily any)"`
	PolicyFile         string `long:"policy-file" description:"YAML policy file. When set, it replaces the policy flags above."`
}

// Base implements RenderFlags for every flags struct embedding BaseFlags.
func (b *BaseFlags) Base() *BaseFlags {
	return b
}

// GetName returns the job name.
func (b *BaseFlags) GetName() string {
	return b.Name
}

// HostPattern compiles the job's host pattern.
func (b *BaseFlags) HostPattern() (*HostPattern, error) {
	host := b.Host
	if host == "" {
		host = DefaultHostPattern
	}
	return ParseHostPattern(host)
}

// PolicyInput builds the policy for the job, either from the policy file or
// from the individual flags.
func (b *BaseFlags) PolicyInput() (PolicyInput, error) {
	if b.PolicyFile != "" {
		return LoadPolicyFile(b.PolicyFile)
	}
	ports, err := ParsePorts(b.Ports)
	if err != nil {
		return PolicyInput{}, err
	}
	return PolicyInput{
		AllowLegacyCiphers: b.AllowLegacyCiphers,
		AllowWeakMAC:       b.AllowWeakMAC,
		AllowWeakKEX:       b.AllowWeakKEX,
		Ports:              ports,
		IPv6Enabled:        b.IPv6,
	}, nil
}

// Validate checks the options that can be checked without resolving.
// Port errors are left to Resolve so they are reported per job.
func (b *BaseFlags) Validate(args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("%w: unexpected positional arguments %v", ErrInvalidArguments, args)
	}
	if _, err := b.HostPattern(); err != nil {
		return err
	}
	return nil
}

// Help returns no additional help text.
func (b *BaseFlags) Help() string {
	return ""
}

// renderJob is one registered renderer with the flags it was initialized
// from.
type renderJob struct {
	name     string
	renderer Renderer
	flags    RenderFlags
}

var (
	modules     = make(map[string]RenderModule)
	jobs        = make(map[string]*renderJob)
	orderedJobs []string
)

// GetModule returns the registered module that corresponds to the given name
// or nil otherwise
func GetModule(name string) RenderModule {
	return modules[name]
}

// RegisterRenderer registers an initialized renderer, together with its
// flags, as a job to be run by the framework. Jobs are rendered in
// registration order.
func RegisterRenderer(name string, r Renderer, flags RenderFlags) error {
	if jobs[name] != nil {
		return fmt.Errorf("%w: job name %s already used", ErrInvalidArguments, name)
	}
	orderedJobs = append(orderedJobs, name)
	jobs[name] = &renderJob{name: name, renderer: r, flags: flags}
	return nil
}

// resetRenderers forgets every registered job.
func resetRenderers() {
	jobs = make(map[string]*renderJob)
	orderedJobs = nil
}
