package bin

import (
	"encoding/json"
	"os"
	"sync"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	flags "github.com/zmap/zflags"
	"github.com/zmap/zsshconf"
)

// parseJobs returns the renderer names and flags of every job: the single
// command given on the command line, or the sections of the ini file for
// the multiple command.
func parseJobs(modType string, flag interface{}) ([]string, []interface{}, error) {
	m, ok := flag.(*zsshconf.MultipleCommand)
	if !ok {
		return []string{modType}, []interface{}{flag}, nil
	}
	iniParser := zsshconf.NewIniParser()
	var (
		modTypes []string
		modFlags []interface{}
		err      error
	)
	if m.ConfigFileName == "-" {
		modTypes, modFlags, err = iniParser.Parse(os.Stdin)
	} else {
		modTypes, modFlags, err = iniParser.ParseFile(m.ConfigFileName)
	}
	if err != nil {
		return nil, nil, errors.Wrap(err, "could not parse multiple")
	}
	if len(modTypes) != len(modFlags) {
		return nil, nil, errors.New("error parsing flags")
	}
	if len(modTypes) == 0 {
		return nil, nil, errors.Wrapf(zsshconf.ErrInvalidArguments, "no jobs in %s", m.ConfigFileName)
	}
	return modTypes, modFlags, nil
}

// registerJobs initializes one renderer per job and registers it with the
// framework.
func registerJobs(modTypes []string, modFlags []interface{}) error {
	for i, modType := range modTypes {
		mod := zsshconf.GetModule(modType)
		if mod == nil {
			return errors.Wrapf(zsshconf.ErrUnknownRenderer, "job %d (%s)", i, modType)
		}
		f, ok := modFlags[i].(zsshconf.RenderFlags)
		if !ok {
			return errors.Wrapf(zsshconf.ErrMismatchedFlags, "job %d (%s)", i, modType)
		}
		r := mod.NewRenderer()
		if err := r.Init(f); err != nil {
			return errors.Wrapf(err, "could not initialize %s renderer", modType)
		}
		if err := zsshconf.RegisterRenderer(r.GetName(), r, f); err != nil {
			return err
		}
	}
	return nil
}

func writeSummary(s *Summary) {
	meta := zsshconf.GetMetaFile()
	if meta == nil {
		return
	}
	enc := json.NewEncoder(meta)
	if err := enc.Encode(s); err != nil {
		log.Fatalf("unable to write summary: %s", err.Error())
	}
}

// ZSSHConfMain should be called by func main() in a binary. The caller is
// responsible for importing any render modules in use, so that custom
// binaries can ship their own set of output formats.
func ZSSHConfMain() {
	_, modType, flag, err := zsshconf.ParseCommandLine(os.Args[1:])

	// Blanked arg is positional arguments
	if err != nil {
		// Outputting help is returned as an error. Exit successfuly on help output.
		flagsErr, ok := err.(*flags.Error)
		if ok && flagsErr.Type == flags.ErrHelp {
			return
		}

		// Didn't output help. Unknown parsing error.
		log.Fatalf("could not parse flags: %s", err)
	}

	if _, ok := flag.(*zsshconf.SchemaCommand); ok {
		if err := zsshconf.OutputSchema(); err != nil {
			log.Fatalf("could not write schema: %s", err)
		}
		return
	}

	modTypes, modFlags, err := parseJobs(modType, flag)
	if err != nil {
		log.Fatal(err)
	}
	if err := registerJobs(modTypes, modFlags); err != nil {
		log.Fatal(err)
	}

	wg := sync.WaitGroup{}
	monitor := zsshconf.MakeMonitor(len(modTypes), &wg)
	monitor.Callback = func(renderer string) {
		log.Debugf("recorded %s job", renderer)
	}
	start := time.Now()
	log.Infof("started rendering %d job(s) at %s", len(modTypes), start.Format(time.RFC3339))
	processErr := zsshconf.Process(monitor)
	end := time.Now()
	log.Infof("finished rendering at %s", end.Format(time.RFC3339))
	monitor.Stop()
	wg.Wait()

	if fileName := zsshconf.GetMetricsFileName(); fileName != "" {
		if err := monitor.WriteMetrics(fileName); err != nil {
			log.Errorf("unable to write metrics: %s", errors.Wrap(err, fileName))
		}
	}
	s := Summary{
		StatusesPerModule: monitor.GetStatuses(),
		Jobs:              len(modTypes),
		StartTime:         start.Format(time.RFC3339),
		EndTime:           end.Format(time.RFC3339),
		Duration:          end.Sub(start).String(),
	}
	if processErr != nil {
		s.Error = processErr.Error()
	}
	writeSummary(&s)
	if processErr != nil {
		log.Fatal(processErr)
	}
}
