package samsieve_api

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/grailbio/base/log"
	"github.com/pkg/errors"
)

// Filter the pairs of source and write the survivors to w
// Headers are written as they arrive and kept pairs are written verbatim in
// input order. On a fatal error the output accepted so far is flushed and
// nothing read after the broken point is written.
func RunFilter(config *FilterConfig, source LineSource, w io.Writer) (*FilterSummary, error) {
	out := bufio.NewWriter(w)
	assembler := NewPairAssembler(source, config.RemoveSingletons)
	pipeline := NewFilterPipeline(config)
	summary := &FilterSummary{Dropped: map[string]int{}}

	runErr := func() error {
		for {
			event, err := assembler.Next()
			if err == io.EOF {
				return nil
			}
			if err != nil {
				return err
			}

			if event.Kind == HeaderEvent {
				summary.Headers++
				if err := writeLine(out, event.Header.Text); err != nil {
					return err
				}
				continue
			}

			summary.Pairs++
			rejectedBy, err := pipeline.Evaluate(event.Pair)
			if err != nil {
				return err
			}
			if rejectedBy != "" {
				summary.Dropped[rejectedBy]++
				log.Debug.Printf("pair %s dropped by the %s filter", event.Pair.First.Name, rejectedBy)
				continue
			}
			summary.Kept++
			if err := writeLine(out, event.Pair.First.Text); err != nil {
				return err
			}
			if err := writeLine(out, event.Pair.Second.Text); err != nil {
				return err
			}
		}
	}()

	summary.Singletons = assembler.Singletons
	summary.UnpairedTail = assembler.UnpairedTail
	if err := out.Flush(); err != nil && runErr == nil {
		runErr = errors.Wrap(err, "failed to write the output")
	}
	return summary, runErr
}

// Write a line followed by a newline
func writeLine(w *bufio.Writer, line string) error {
	if _, err := w.WriteString(line); err != nil {
		return errors.Wrap(err, "failed to write the output")
	}
	if err := w.WriteByte('\n'); err != nil {
		return errors.Wrap(err, "failed to write the output")
	}
	return nil
}

// Log the counters of a finished run
func (summary *FilterSummary) Log() {
	log.Printf("headers: %d, pairs: %d, kept: %d", summary.Headers, summary.Pairs, summary.Kept)
	names := make([]string, 0, len(summary.Dropped))
	for name := range summary.Dropped {
		names = append(names, name)
	}
	sort.Strings(names)
	dropped := []string{}
	for _, name := range names {
		dropped = append(dropped, fmt.Sprintf("%s=%d", name, summary.Dropped[name]))
	}
	if len(dropped) > 0 {
		log.Printf("dropped pairs: %s", strings.Join(dropped, ", "))
	}
	if summary.Singletons > 0 {
		log.Printf("singletons removed: %d", summary.Singletons)
	}
	if summary.UnpairedTail {
		log.Printf("unpaired record at the end of the input was dropped")
	}
}
