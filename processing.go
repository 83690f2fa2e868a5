package zsshconf

import (
	"bytes"
	"sync"

	log "github.com/sirupsen/logrus"
)

// renderResult holds the rendered bytes or the error of a single job.
type renderResult struct {
	name   string
	output []byte
	err    error
}

// renderTable resolves the job's policy and renders it. Only the rendering
// step is tagged StatusRenderError; everything before it is classified from
// the error itself.
func renderTable(j *renderJob) ([]byte, error) {
	base := j.flags.Base()
	host, err := base.HostPattern()
	if err != nil {
		return nil, err
	}
	input, err := base.PolicyInput()
	if err != nil {
		return nil, err
	}
	table, err := Resolve(input)
	if err != nil {
		return nil, err
	}
	log.Debugf("resolved job %s for host %q: ports %s, %d directives", j.name, host, FormatPorts(input.Ports), table.Len())
	var buf bytes.Buffer
	if err := j.renderer.Render(&buf, host, table); err != nil {
		return nil, NewStatusError(StatusRenderError, err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// runJob renders a single job and reports its outcome to the monitor.
func runJob(j *renderJob, mon *Monitor) renderResult {
	defer func() {
		if e := recover(); e != nil {
			log.Errorf("Panic on renderer %s when rendering job %s", j.renderer.Format(), j.name)
			panic(e)
		}
	}()
	output, err := renderTable(j)
	if mon != nil {
		mon.record(j.renderer.Format(), err)
	}
	if err != nil {
		return renderResult{name: j.name, err: &RenderError{Job: j.name, Err: err}}
	}
	return renderResult{name: j.name, output: output}
}

// selectJobs returns the registered jobs in order, keeping only the ones
// matching the --match hostname when it is set. Jobs whose host pattern does
// not compile are kept so that they fail with a proper status.
func selectJobs() []*renderJob {
	host := matchHost()
	selected := make([]*renderJob, 0, len(orderedJobs))
	for _, name := range orderedJobs {
		j := jobs[name]
		if host != "" {
			if hp, err := j.flags.Base().HostPattern(); err == nil && !hp.Match(host) {
				log.Debugf("skipping job %s: host pattern %q does not match %s", name, hp, host)
				continue
			}
		}
		selected = append(selected, j)
	}
	return selected
}

// Process resolves and renders every registered job with the configured
// number of senders, then hands the results to the output function in job
// order. Unless continue-on-error is set, a failing job fails the whole run
// and nothing is written.
func Process(mon *Monitor) error {
	selected := selectJobs()
	results := make([]renderResult, len(selected))

	workers := config.Senders
	if workers > len(selected) {
		workers = len(selected)
	}
	if workers < 1 {
		workers = 1
	}
	processQueue := make(chan int, len(selected))
	var workerDone sync.WaitGroup
	workerDone.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer workerDone.Done()
			for idx := range processQueue {
				results[idx] = runJob(selected[idx], mon)
			}
		}()
	}
	for i := range selected {
		processQueue <- i
	}
	close(processQueue)
	workerDone.Wait()

	var firstErr error
	outputQueue := make(chan []byte, len(results))
	for _, res := range results {
		if res.err != nil {
			log.Errorf("job %s failed: %v", res.name, res.err)
			if firstErr == nil {
				firstErr = res.err
			}
			continue
		}
		outputQueue <- res.output
	}
	close(outputQueue)
	if firstErr != nil && !continueOnError() {
		return firstErr
	}
	if config.outputResults == nil {
		SetOutputFunc(OutputResultsFileFunc(config.OutputFileName))
	}
	return config.outputResults(outputQueue)
}
