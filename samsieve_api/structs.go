package samsieve_api

// The kind of a line read from an alignment stream
type LineKind int

const (
	// A metadata line starting with '@', passed through untouched
	HeaderLine LineKind = iota

	// A tab-delimited alignment record
	RecordLine
)

// A struct representing one classified line of the alignment stream
type Line struct {
	// Whether this line is a header or an alignment record
	Kind LineKind

	// The line exactly as it was read, without the trailing newline
	Text string

	// The 1-based position of the line in the input stream
	Number int
}

// A struct representing one parsed alignment record
type AlignmentRecord struct {
	// The record exactly as it was read
	Text string

	// The 1-based position of the record in the input stream
	Number int

	// The read identifier (QNAME, field 0)
	Name string

	// The mapping quality (MAPQ, field 4)
	MapQ int
}

// A struct representing two mates sharing one read identifier
// First and Second keep the order in which they were read
type Pair struct {
	First  *AlignmentRecord
	Second *AlignmentRecord
}

// The struct representing the settings of one filter run
// It is fixed before the first line is read and never changed afterwards
type FilterConfig struct {
	// Mapping quality cutoff, a mate passes when its MAPQ >= MapQ
	MapQ int

	// Keep a pair when either mate passes the MAPQ cutoff instead of both
	SingleEnd bool

	// Edit distance cutoff, only used when HasEditDistance is true
	// A pair is dropped when a mate has NM >= EditDistance
	EditDistance int

	// Whether an edit distance cutoff was configured
	HasEditDistance bool

	// Exclude records flagged as PCR or optical duplicates (flag 1024)
	RemoveDuplicates bool

	// Drop unpaired records instead of aborting the run
	RemoveSingletons bool

	// Decompression concurrency for bgzipped and BAM input
	Threads int
}

// The counters collected during one filter run
type FilterSummary struct {
	// Header lines passed through
	Headers int

	// Confirmed mate pairs handed to the filters
	Pairs int

	// Pairs written to the output
	Kept int

	// Pairs dropped, keyed by the name of the filter that rejected them
	Dropped map[string]int

	// Records discarded because their mate was missing
	Singletons int

	// Whether the stream ended on a record without a mate
	UnpairedTail bool
}

//
// Statistics structs
//

// Running counts of the five recognised nucleotide symbols
type Bases struct {
	A int
	T int
	C int
	G int
	N int
}

// The three length populations collected over a FASTA file
type LengthPopulations struct {
	// Total length of every sequence
	Scaffold []int

	// Length of every sequence without its gap symbols
	GaplessScaffold []int

	// Length of every gap-free segment of every sequence
	Contig []int
}

// One Nx breakpoint of a length population
type NxBreakpoint struct {
	// The x of Nx, one of 10, 20, ..., 90
	Percent int

	// The 1-based rank of the element at which the threshold was reached
	Rank int

	// The length of that element
	Length int
}

// The Nx breakpoints and summary of one length population
type NxReport struct {
	Breakpoints []NxBreakpoint
	Longest     int
	Shortest    int
	Count       int
	Total       int
}

// Everything computed by one statistics pass
type StatsResult struct {
	Bases       Bases
	Populations LengthPopulations

	// Non-fatal problems found in the input, one line per problem
	Warnings []string
}
