package zsshconf

import (
	"fmt"
)

// MultipleCommand renders one job per section of an ini file, e.g.
//
//	[openssh]
//	name = bastion
//	host = bastion.example.com
//	ports = 2222
//
//	[openssh]
//	name = default
//	host = *
//	allow-weak-kex = true
type MultipleCommand struct {
	ConfigFileName  string `short:"c" long:"config-file" default:"-" description:"Config filename, use - for stdin"`
	ContinueOnError bool   `long:"continue-on-error" description:"Skip jobs that fail to resolve or render instead of failing the run"`
	Match           string `long:"match" description:"Only render jobs whose host pattern matches this hostname"`
}

// Validate checks the options sent to MultipleCommand. The config file
// itself is parsed by the ini parser once the command line is done.
func (x *MultipleCommand) Validate(args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("%w: multiple takes no positional arguments", ErrInvalidArguments)
	}
	if x.ConfigFileName == "" {
		return fmt.Errorf("%w: empty config file name", ErrInvalidArguments)
	}
	return nil
}

// continueOnError reports whether failed jobs should be skipped.
func continueOnError() bool {
	return config.Multiple.ContinueOnError
}

// matchHost returns the hostname jobs are filtered on, or the empty string.
func matchHost() string {
	return config.Multiple.Match
}
