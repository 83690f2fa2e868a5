package zsshconf

import (
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	flags "github.com/zmap/zflags"
)

var (
	parser *flags.Parser // parser for main zsshconf command
	// iniParser is a parser just for ini files. The ini parser needs an option
	// group 'Application Options', which cannot live alongside the option
	// groups of the main parser without shadowing them.
	iniParser *flags.Parser
)

func init() {
	parser = flags.NewParser(nil, flags.Default)
	desc := []string{
		"zsshconf compiles a small set of SSH security trade-offs into a hardened, deterministic SSH client " +
			"configuration. Ciphers, MACs and key exchange algorithms default to a modern set; weaker ones are only " +
			"appended, at lower preference, when explicitly allowed. The remaining directives (forwarding, " +
			"authentication, host key checking) are a fixed baseline. Each 'Available command' below is an output " +
			"format. By default output goes to stdout, with logs and the run summary on stderr.",
		"",
		"Example usages:",
		"zsshconf openssh                                   # Hardened ssh_config block for Host *",
		"zsshconf openssh --host '*.corp' -p 22,2222 --ipv6  # Two ports, IPv4 and IPv6",
		"zsshconf multiple -c hosts.ini                      # One job per ini section",
	}
	parser.LongDescription = strings.Join(desc, "\n")
	_, err := parser.AddCommand("multiple", "Render multiple jobs from an ini file", "", &config.Multiple)
	if err != nil {
		log.Fatalf("could not add multiple command: %v", err)
	}
	_, err = parser.AddCommand("schema", "Print the JSON schema of policy files", "", &config.Schema)
	if err != nil {
		log.Fatalf("could not add schema command: %v", err)
	}
	_, err = parser.AddGroup("General Options", "General options for controlling the behavior of zsshconf", &config.GeneralOptions)
	if err != nil {
		log.Fatalf("could not add general options group: %v", err)
	}
	_, err = parser.AddGroup("Input/Output Options", "Options for controlling the input/output behavior of zsshconf", &config.InputOutputOptions)
	if err != nil {
		log.Fatalf("could not add I/O options group: %v", err)
	}
	iniParser = flags.NewParser(nil, flags.Default)
}

// NewIniParser creates and returns a ini parser initialized
// with the default parser
func NewIniParser() *flags.IniParser {
	group, err := iniParser.AddGroup("Application Options", "Hidden group including all global options for ini files", &config)
	if err != nil {
		log.Fatalf("could not add Application Options group: %v", err)
	}
	group.Hidden = true

	return flags.NewIniParser(iniParser)
}

// AddCommand adds a render module to the parser and returns a pointer to
// a flags.command object or an error
func AddCommand(command string, shortDescription string, longDescription string, m RenderModule) (*flags.Command, error) {
	cmd, err := parser.AddCommand(command, shortDescription, longDescription, m)
	if err != nil {
		return nil, fmt.Errorf("could not add command to default parser: %w", err)
	}
	cmd.FindOptionByLongName("name").Default = []string{command}

	// Add the same command to the ini parser
	cmd, err = iniParser.AddCommand(command, shortDescription, longDescription, m)
	if err != nil {
		return nil, fmt.Errorf("could not add command to ini parser: %w", err)
	}
	cmd.FindOptionByLongName("name").Default = []string{command}
	modules[command] = m
	return cmd, nil
}

// ParseCommandLine parses the commands given on the command line
// and validates the framework configuration (global options)
// immediately after parsing
func ParseCommandLine(flags []string) ([]string, string, interface{}, error) {
	posArgs, moduleType, f, err := parser.ParseCommandLine(flags)
	if err == nil {
		validateFrameworkConfiguration()
	}
	return posArgs, moduleType, f, err
}
