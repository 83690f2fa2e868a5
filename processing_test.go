package zsshconf

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeRenderer writes the job name, host and port list on one line.
type fakeRenderer struct {
	flags *BaseFlags
	fail  bool
}

func (r *fakeRenderer) Init(flags RenderFlags) error {
	r.flags = flags.Base()
	return nil
}

func (r *fakeRenderer) GetName() string {
	return r.flags.Name
}

func (r *fakeRenderer) Format() string {
	return "fake"
}

func (r *fakeRenderer) Render(w io.Writer, host *HostPattern, table *DirectiveTable) error {
	if r.fail {
		return errors.New("short write")
	}
	port, _ := table.Get(DirectivePort)
	_, err := fmt.Fprintf(w, "%s %s %s\n\n", r.flags.Name, host, port.Value())
	return err
}

// setupJobs registers one fake job per flags value and captures the output.
func setupJobs(t *testing.T, senders int, jobFlags ...*BaseFlags) *bytes.Buffer {
	t.Helper()
	resetRenderers()
	saved := config
	t.Cleanup(func() {
		resetRenderers()
		config = saved
	})
	config.Senders = senders
	config.Multiple = MultipleCommand{}
	var buf bytes.Buffer
	SetOutputFunc(OutputResultsWriterFunc(&buf))
	for _, f := range jobFlags {
		r := &fakeRenderer{fail: f.Name == "broken"}
		require.NoError(t, r.Init(f))
		require.NoError(t, RegisterRenderer(r.GetName(), r, f))
	}
	return &buf
}

func job(name, host, ports string) *BaseFlags {
	return &BaseFlags{Name: name, Host: host, Ports: ports}
}

func TestProcessKeepsJobOrder(t *testing.T) {
	var flags []*BaseFlags
	var expected bytes.Buffer
	for i := 0; i < 20; i++ {
		name := fmt.Sprintf("job%02d", i)
		flags = append(flags, job(name, "*", fmt.Sprintf("%d", 2200+i)))
		fmt.Fprintf(&expected, "%s * %d\n", name, 2200+i)
	}
	buf := setupJobs(t, 8, flags...)
	require.NoError(t, Process(nil))
	require.Equal(t, expected.String(), buf.String())
}

func TestProcessDuplicateJobName(t *testing.T) {
	setupJobs(t, 1, job("a", "*", "22"))
	err := RegisterRenderer("a", &fakeRenderer{}, job("a", "*", "22"))
	require.ErrorIs(t, err, ErrInvalidArguments)
}

func TestProcessFailureWritesNothing(t *testing.T) {
	buf := setupJobs(t, 2, job("a", "*", "22"), job("b", "*", "0"), job("c", "*", "22"))
	err := Process(nil)
	require.ErrorIs(t, err, ErrInvalidPort)
	var renderErr *RenderError
	require.True(t, errors.As(err, &renderErr))
	require.Equal(t, "b", renderErr.Job)
	require.Empty(t, buf.String())
}

func TestProcessContinueOnError(t *testing.T) {
	buf := setupJobs(t, 2, job("a", "*", "22"), job("broken", "*", "22"), job("c", "web", "22,2222"))
	config.Multiple.ContinueOnError = true
	require.NoError(t, Process(nil))
	require.Equal(t, "a * 22\nc web 22,2222\n", buf.String())
}

func TestProcessMatch(t *testing.T) {
	buf := setupJobs(t, 4,
		job("bastion", "bastion.example.com", "2222"),
		job("web", "*.example.com !bastion.example.com", "22"),
		job("default", "*", "22"),
	)
	config.Multiple.Match = "bastion.example.com"
	require.NoError(t, Process(nil))
	require.Equal(t, "bastion bastion.example.com 2222\ndefault * 22\n", buf.String())
}

func TestProcessMonitor(t *testing.T) {
	setupJobs(t, 3, job("a", "*", "22"), job("b", "*", "22"), job("broken", "*", "22"), job("d", "*", ""))
	config.Multiple.ContinueOnError = true

	var wg sync.WaitGroup
	mon := MakeMonitor(4, &wg)
	var calls int
	mon.Callback = func(string) { calls++ }
	require.NoError(t, Process(mon))
	mon.Stop()
	wg.Wait()

	require.Equal(t, 4, calls)
	state := mon.GetStatuses()["fake"]
	require.NotNil(t, state)
	require.Equal(t, uint(2), state.Successes)
	require.Equal(t, uint(2), state.Failures)
	require.Equal(t, map[Status]uint{StatusSuccess: 2, StatusRenderError: 1, StatusInvalidPort: 1}, state.Statuses)

	name := filepath.Join(t.TempDir(), "zsshconf.prom")
	require.NoError(t, mon.WriteMetrics(name))
	b, err := os.ReadFile(name)
	require.NoError(t, err)
	require.Contains(t, string(b), `zsshconf_render_jobs_total{renderer="fake",status="success"} 2`)
	require.Contains(t, string(b), `zsshconf_render_jobs_total{renderer="fake",status="invalid-port"} 1`)
}
