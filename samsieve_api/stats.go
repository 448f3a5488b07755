package samsieve_api

import (
	"sort"

	"github.com/pkg/errors"
)

// The symbol separating contigs within a scaffold
const gapSymbol = 'N'

// Thresholds reported for every length population, in percent
var nxPercents = []int{10, 20, 30, 40, 50, 60, 70, 80, 90}

// Count the recognised symbols of seq and return how many were recognised
func (bases *Bases) Add(seq []byte) int {
	classified := 0
	for _, b := range seq {
		switch b {
		case 'A', 'a':
			bases.A++
		case 'T', 't':
			bases.T++
		case 'C', 'c':
			bases.C++
		case 'G', 'g':
			bases.G++
		case 'N', 'n':
			bases.N++
		default:
			continue
		}
		classified++
	}
	return classified
}

// Return the GC fraction over the A, T, C and G counts
// The second value is false when no such base was counted
func (bases *Bases) GCFraction() (float64, bool) {
	total := bases.A + bases.T + bases.C + bases.G
	if total == 0 {
		return 0, false
	}
	return float64(bases.C+bases.G) / float64(total), true
}

// Add one sequence to the three populations
func (populations *LengthPopulations) Add(seq []byte) {
	gaps := 0
	segment := 0
	for _, b := range seq {
		if b == gapSymbol || b == gapSymbol+'a'-'A' {
			gaps++
			if segment > 0 {
				populations.Contig = append(populations.Contig, segment)
			}
			segment = 0
			continue
		}
		segment++
	}
	if segment > 0 {
		populations.Contig = append(populations.Contig, segment)
	}
	populations.Scaffold = append(populations.Scaffold, len(seq))
	populations.GaplessScaffold = append(populations.GaplessScaffold, len(seq)-gaps)
}

// Account one named sequence in the running totals
// It returns false when seq holds a symbol other than A, T, C, G or N; the
// sequence is still counted.
func StatSequence(seq []byte, bases *Bases, populations *LengthPopulations) bool {
	classified := bases.Add(seq)
	populations.Add(seq)
	return classified == len(seq)
}

// Compute the Nx breakpoints of a length population
// The lengths are not modified. ErrInsufficientData is returned when the
// population is empty or its total length is zero.
func ComputeNx(lengths []int) (*NxReport, error) {
	sorted := append([]int(nil), lengths...)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))

	total := 0
	for _, length := range sorted {
		total += length
	}
	if len(sorted) == 0 || total == 0 {
		return nil, errors.Wrapf(ErrInsufficientData, "%d lengths summing to %d", len(sorted), total)
	}

	report := &NxReport{
		Longest:  sorted[0],
		Shortest: sorted[len(sorted)-1],
		Count:    len(sorted),
		Total:    total,
	}

	next := 0
	cumulative := 0
	for i, length := range sorted {
		cumulative += length
		// cumulative/total >= percent/100, kept in integers
		for next < len(nxPercents) && cumulative*100 >= nxPercents[next]*total {
			report.Breakpoints = append(report.Breakpoints, NxBreakpoint{
				Percent: nxPercents[next],
				Rank:    i + 1,
				Length:  length,
			})
			next++
		}
	}
	return report, nil
}
