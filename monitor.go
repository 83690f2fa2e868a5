package zsshconf

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Monitor is a collection of states per renderer and a channel to
// communicate those render results.
type Monitor struct {
	states       map[string]*State
	statusesChan chan renderStatus
	registry     *prometheus.Registry
	jobsTotal    *prometheus.CounterVec
	// Callback is invoked after each render result is recorded.
	Callback func(string)
}

// State contains the respective number of successes and failures
// for a given renderer.
type State struct {
	Successes uint            `json:"successes"`
	Failures  uint            `json:"failures"`
	Statuses  map[Status]uint `json:"statuses,omitempty"`
}

type renderStatus struct {
	name   string
	status Status
}

// GetStatuses returns a mapping from renderer format to the respective
// number of successes and failures. It must only be read after Stop and the
// monitor's WaitGroup have returned.
func (m *Monitor) GetStatuses() map[string]*State {
	return m.states
}

// Gatherer exposes the monitor's metrics registry.
func (m *Monitor) Gatherer() prometheus.Gatherer {
	return m.registry
}

// WriteMetrics writes the monitor's metrics in the Prometheus text
// exposition format, replacing fileName atomically.
func (m *Monitor) WriteMetrics(fileName string) error {
	return prometheus.WriteToTextfile(fileName, m.registry)
}

// Stop indicates the monitor is done and the internal channel should be
// closed. This function does not block, but will allow a call to Wait() on
// the WaitGroup passed to MakeMonitor to return.
func (m *Monitor) Stop() {
	close(m.statusesChan)
}

// MakeMonitor returns a Monitor object that can be used to collect and send
// the status of a running render run. The WaitGroup is done once Stop has
// been called and every queued status has been recorded.
func MakeMonitor(statusChanSize int, wg *sync.WaitGroup) *Monitor {
	m := new(Monitor)
	m.statusesChan = make(chan renderStatus, statusChanSize)
	m.states = make(map[string]*State, 4)
	m.registry = prometheus.NewRegistry()
	m.jobsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "zsshconf",
		Name:      "render_jobs_total",
		Help:      "Number of render jobs by renderer and final status.",
	}, []string{"renderer", "status"})
	m.registry.MustRegister(m.jobsTotal)
	wg.Add(1)
	go func() {
		defer wg.Done()
		for s := range m.statusesChan {
			if m.states[s.name] == nil {
				m.states[s.name] = &State{Statuses: make(map[Status]uint)}
			}
			st := m.states[s.name]
			if s.status == StatusSuccess {
				st.Successes++
			} else {
				st.Failures++
			}
			st.Statuses[s.status]++
			m.jobsTotal.WithLabelValues(s.name, string(s.status)).Inc()
			if m.Callback != nil {
				m.Callback(s.name)
			}
		}
	}()
	return m
}

// record queues the outcome of a render job.
func (m *Monitor) record(renderer string, err error) {
	m.statusesChan <- renderStatus{name: renderer, status: TryGetStatus(err)}
}
