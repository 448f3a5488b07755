package samsieve_api

import (
	"bufio"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Write the base composition and the Nx tables of the three populations
func WriteStatsReport(w io.Writer, result *StatsResult) error {
	out := bufio.NewWriter(w)

	bases := result.Bases
	fmt.Fprintln(out, "#### base statistics ####")
	fmt.Fprintf(out, "A: %d, T: %d, C: %d, G: %d, N: %d\n", bases.A, bases.T, bases.C, bases.G, bases.N)
	if gc, ok := bases.GCFraction(); ok {
		fmt.Fprintf(out, "GC%%: %g\n\n", gc)
	} else {
		fmt.Fprint(out, "GC%: N/A\n\n")
	}

	populations := []struct {
		tag     string
		lengths []int
	}{
		{"contig", result.Populations.Contig},
		{"scaffold", result.Populations.Scaffold},
		{"gapless scaffold", result.Populations.GaplessScaffold},
	}
	for _, population := range populations {
		if err := writeNxTable(out, population.tag, population.lengths); err != nil {
			return err
		}
	}

	if err := out.Flush(); err != nil {
		return errors.Wrap(err, "failed to write the report")
	}
	return nil
}

// Write the Nx table of one population, or a note when it holds no data
func writeNxTable(w io.Writer, tag string, lengths []int) error {
	title := cases.Title(language.English).String(tag)
	fmt.Fprintf(w, "#### %s statistics ####\n", title)

	report, err := ComputeNx(lengths)
	if errors.Is(err, ErrInsufficientData) {
		fmt.Fprint(w, "insufficient data\n\n")
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "Nx\tNumber\tLength")
	for _, breakpoint := range report.Breakpoints {
		fmt.Fprintf(w, "N%d\t%d\t%d\n", breakpoint.Percent, breakpoint.Rank, breakpoint.Length)
	}
	fmt.Fprintf(w, "longest %s: %d, shortest %s: %d\n", tag, report.Longest, tag, report.Shortest)
	fmt.Fprintf(w, "total number: %d, total length: %d\n\n", report.Count, report.Total)
	return nil
}
