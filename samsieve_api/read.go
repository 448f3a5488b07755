package samsieve_api

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"strings"

	"github.com/biogo/hts/bam"
	"github.com/biogo/hts/bgzf"
	"github.com/biogo/hts/sam"
	"github.com/pkg/errors"
)

// A forward-only stream of classified alignment lines
// Next returns io.EOF once the stream is exhausted
type LineSource interface {
	Next() (Line, error)
}

// textSource classifies the lines of a SAM text stream
type textSource struct {
	scanner *bufio.Scanner
	number  int
}

// Create a LineSource over SAM text
func NewTextSource(r io.Reader) LineSource {
	scanner := bufio.NewScanner(r)
	const maxCapacity = 8 * 1000000 // 8 MB
	scanner.Buffer(make([]byte, maxCapacity), maxCapacity)
	return &textSource{scanner: scanner}
}

func (s *textSource) Next() (Line, error) {
	for s.scanner.Scan() {
		s.number++
		text := s.scanner.Text()
		if text == "" {
			continue
		}
		return classify(text, s.number), nil
	}
	if err := s.scanner.Err(); err != nil {
		return Line{}, errors.Wrapf(err, "reading line %d", s.number+1)
	}
	return Line{}, io.EOF
}

func classify(text string, number int) Line {
	kind := RecordLine
	if text[0] == '@' {
		kind = HeaderLine
	}
	return Line{Kind: kind, Text: text, Number: number}
}

// bamSource renders the header and records of a BAM file as SAM text lines
type bamSource struct {
	reader           *bam.Reader
	header           []string
	removeDuplicates bool
	number           int
}

// Create a LineSource over a BAM stream
// Duplicates are skipped before rendering when removeDuplicates is set
func NewBamSource(r io.Reader, threads int, removeDuplicates bool) (LineSource, error) {
	reader, err := bam.NewReader(r, threads)
	if err != nil {
		return nil, errors.Wrap(err, "opening BAM stream")
	}
	text, err := reader.Header().MarshalText()
	if err != nil {
		return nil, errors.Wrap(err, "rendering BAM header")
	}
	header := strings.Split(strings.TrimRight(string(text), "\n"), "\n")
	if len(header) == 1 && header[0] == "" {
		header = nil
	}
	return &bamSource{
		reader:           reader,
		header:           header,
		removeDuplicates: removeDuplicates,
	}, nil
}

func (s *bamSource) Next() (Line, error) {
	if len(s.header) > 0 {
		s.number++
		text := s.header[0]
		s.header = s.header[1:]
		return Line{Kind: HeaderLine, Text: text, Number: s.number}, nil
	}
	for {
		record, err := s.reader.Read()
		if err != nil {
			if err == io.EOF {
				return Line{}, io.EOF
			}
			return Line{}, errors.Wrapf(err, "reading BAM record %d", s.number+1)
		}
		s.number++
		if s.removeDuplicates && record.Flags&sam.Duplicate != 0 {
			continue
		}
		text, err := record.MarshalText()
		if err != nil {
			return Line{}, errors.Wrapf(err, "rendering BAM record %s", record.Name)
		}
		return Line{Kind: RecordLine, Text: string(bytes.TrimRight(text, "\n")), Number: s.number}, nil
	}
}

func (s *bamSource) Close() error {
	return s.reader.Close()
}

// duplicateFilter drops records whose FLAG carries the duplicate bit
type duplicateFilter struct {
	source LineSource
}

// Wrap a LineSource so that duplicate-flagged records are never delivered
func WithoutDuplicates(source LineSource) LineSource {
	return &duplicateFilter{source: source}
}

func (d *duplicateFilter) Next() (Line, error) {
	for {
		line, err := d.source.Next()
		if err != nil || line.Kind == HeaderLine {
			return line, err
		}
		flag, err := parseFlag(line)
		if err != nil {
			return Line{}, err
		}
		if sam.Flags(flag)&sam.Duplicate == 0 {
			return line, nil
		}
	}
}

// Open the alignment input of a filter run
// The format is picked from the file name: .bam is decoded natively, .gz is
// read as bgzipped SAM, anything else (and "-" or "" for stdin) as SAM text.
// The returned close function releases every opened resource.
func OpenAlignments(path string, config *FilterConfig, progress bool) (LineSource, func() error, error) {
	input, err := openInput(path, progress)
	if err != nil {
		return nil, nil, err
	}

	var (
		source  LineSource
		closers = []io.Closer{input}
	)
	switch {
	case strings.HasSuffix(path, ".bam"):
		bamSrc, err := NewBamSource(input, config.Threads, config.RemoveDuplicates)
		if err != nil {
			input.Close()
			return nil, nil, errors.Wrap(err, path)
		}
		source = bamSrc
		closers = append(closers, bamSrc.(*bamSource))
	case strings.HasSuffix(path, ".gz"):
		bgReader, err := bgzf.NewReader(input, config.Threads)
		if err != nil {
			input.Close()
			return nil, nil, errors.Wrap(err, path)
		}
		source = NewTextSource(bgReader)
		closers = append(closers, bgReader)
	default:
		source = NewTextSource(input)
	}

	if config.RemoveDuplicates && !strings.HasSuffix(path, ".bam") {
		source = WithoutDuplicates(source)
	}

	closeAll := func() error {
		var first error
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i].Close(); err != nil && first == nil {
				first = err
			}
		}
		return first
	}
	return source, closeAll, nil
}

// Open a file, or stdin for "" and "-"
func openInput(path string, progress bool) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open the input file")
	}
	if !progress {
		return file, nil
	}
	return withProgress(file)
}
