package zsshconf

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// OutputResultsFunc is a function type for result output functions.
//
// A function of this type receives rendered jobs on the provided channel
// and outputs them somehow. It returns nil if there are no further
// results or error.
type OutputResultsFunc func(results <-chan []byte) error

// OutputResultsWriterFunc returns an OutputResultsFunc that wraps an io.Writer
// in a buffered writer, and uses OutputResults.
func OutputResultsWriterFunc(w io.Writer) OutputResultsFunc {
	return func(results <-chan []byte) error {
		buf := bufio.NewWriter(w)
		if err := OutputResults(buf, results); err != nil {
			return err
		}
		return buf.Flush()
	}
}

// OutputResultsFileFunc returns an OutputResultsFunc writing to fileName, or
// to stdout for "-". The file is only created once the first result
// arrives, so a run that produces nothing leaves no file behind.
func OutputResultsFileFunc(fileName string) OutputResultsFunc {
	return func(results <-chan []byte) error {
		first, ok := <-results
		if !ok {
			return nil
		}
		var w io.Writer = os.Stdout
		if fileName != "-" {
			f, err := os.Create(fileName)
			if err != nil {
				return fmt.Errorf("could not create output file: %w", err)
			}
			defer f.Close()
			w = f
		}
		buf := bufio.NewWriter(w)
		if err := writeResult(buf, first); err != nil {
			return err
		}
		if err := OutputResults(buf, results); err != nil {
			return err
		}
		return buf.Flush()
	}
}

// OutputResults writes results to a buffered Writer from a channel, each
// followed by a newline.
func OutputResults(w *bufio.Writer, results <-chan []byte) error {
	for result := range results {
		if err := writeResult(w, result); err != nil {
			return err
		}
	}
	return nil
}

func writeResult(w *bufio.Writer, result []byte) error {
	if _, err := w.Write(result); err != nil {
		return err
	}
	if err := w.WriteByte('\n'); err != nil {
		return err
	}
	if config.Flush {
		return w.Flush()
	}
	return nil
}
