package zsshconf

import (
	"fmt"
	"os"
	"runtime"

	"github.com/go-playground/validator/v10"
	log "github.com/sirupsen/logrus"
)

type GeneralOptions struct {
	Senders         int    `short:"s" long:"senders" default:"4" validate:"min=1" description:"Number of goroutines resolving and rendering jobs"`
	GOMAXPROCS      int    `long:"gomaxprocs" default:"0" validate:"min=0" description:"Set GOMAXPROCS"`
	LogLevel        string `long:"log-level" default:"info" validate:"oneof=trace debug info warn warning error fatal panic" description:"Log level (trace, debug, info, warn, error, fatal, panic)"`
	MetricsFileName string `long:"metrics-file" description:"Write Prometheus text-format metrics to this file, e.g. for the node_exporter textfile collector. If empty, metrics are not written."`
}

type InputOutputOptions struct {
	LogFileName    string `short:"l" long:"log-file" default:"-" description:"Log filename, use - for stderr"`
	MetaFileName   string `short:"m" long:"metadata-file" default:"-" description:"Metadata filename, use - for stderr."`
	OutputFileName string `short:"o" long:"output-file" default:"-" description:"Output filename, use - for stdout. The file is only created once every job has rendered."`
	Flush          bool   `long:"flush" description:"Flush after each rendered job."`
}

// Config is the high level framework options that will be parsed
// from the command line
type Config struct {
	GeneralOptions                     // CLI Options related to general framework configuration
	InputOutputOptions                 // CLI Options related to I/O. Just affects organization of --help
	Multiple           MultipleCommand `command:"multiple" description:"Render multiple jobs from an ini file"`
	Schema             SchemaCommand   `command:"schema" description:"Print the JSON schema of policy files"`
	metaFile           *os.File
	logFile            *os.File
	outputResults      OutputResultsFunc
}

// SetOutputFunc sets the result output function to the provided function.
func SetOutputFunc(f OutputResultsFunc) {
	config.outputResults = f
}

var config Config

var validate = validator.New()

func validateFrameworkConfiguration() {
	if err := validateOptions(&config.GeneralOptions); err != nil {
		log.Fatal(err)
	}

	level, err := log.ParseLevel(config.LogLevel)
	if err != nil {
		log.Fatalf("invalid log level %q: %s", config.LogLevel, err)
	}
	log.SetLevel(level)

	if config.LogFileName == "-" {
		config.logFile = os.Stderr
	} else {
		if config.logFile, err = os.Create(config.LogFileName); err != nil {
			log.Fatal(err)
		}
		log.SetOutput(config.logFile)
	}

	// The output file is opened lazily so that a failed run leaves no
	// partial configuration behind.
	SetOutputFunc(OutputResultsFileFunc(config.OutputFileName))

	if config.MetaFileName == "-" {
		config.metaFile = os.Stderr
	} else if len(config.MetaFileName) > 0 {
		if config.metaFile, err = os.Create(config.MetaFileName); err != nil {
			log.Fatal(fmt.Errorf("error creating meta file: %w", err))
		}
	}

	runtime.GOMAXPROCS(config.GOMAXPROCS)
}

// validateOptions checks the struct tags of the general options.
func validateOptions(opts *GeneralOptions) error {
	if err := validate.Struct(opts); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidArguments, err)
	}
	return nil
}

// GetMetaFile returns the file to which metadata should be output
func GetMetaFile() *os.File {
	return config.metaFile
}

// GetMetricsFileName returns the file Prometheus metrics should be written
// to, or the empty string.
func GetMetricsFileName() string {
	return config.MetricsFileName
}
