package samsieve_api

import (
	"fmt"
	"io"
	"strings"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"
	"github.com/grailbio/base/log"
	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
)

// Accumulate base counts and length populations over every sequence of a
// FASTA stream
func ReadFastaStats(r io.Reader) (*StatsResult, error) {
	result := &StatsResult{}

	template := linear.NewSeq("", nil, alphabet.DNA)
	scanner := seqio.NewScanner(fasta.NewReader(r, template))
	for scanner.Next() {
		s, ok := scanner.Seq().(*linear.Seq)
		if !ok {
			return nil, errors.Errorf("unexpected sequence type %T", scanner.Seq())
		}
		name := sequenceName(s)
		seq := alphabet.LettersToBytes(s.Seq)
		if len(seq) == 0 {
			result.warn(fmt.Sprintf("Seq %s is empty and was skipped", name))
			continue
		}
		if !StatSequence(seq, &result.Bases, &result.Populations) {
			result.warn(fmt.Sprintf("Seq %s has base(s) not in A, T, C, G, N", name))
		}
	}
	if err := scanner.Error(); err != nil {
		return nil, errors.Wrap(err, "failed to read the FASTA input")
	}
	return result, nil
}

// Open a FASTA file and compute its statistics
// Files ending in .gz are decompressed on the fly, "" and "-" read stdin.
func FastaStatsFromPath(path string, progress bool) (*StatsResult, error) {
	input, err := openInput(path, progress)
	if err != nil {
		return nil, err
	}
	defer input.Close()

	var r io.Reader = input
	if strings.HasSuffix(path, ".gz") {
		gzReader, err := gzip.NewReader(input)
		if err != nil {
			return nil, errors.Wrap(err, path)
		}
		defer gzReader.Close()
		r = gzReader
	}
	return ReadFastaStats(r)
}

// The full header label of a sequence, ID and description
func sequenceName(s *linear.Seq) string {
	if s.Desc == "" {
		return s.ID
	}
	return s.ID + " " + s.Desc
}

func (result *StatsResult) warn(message string) {
	log.Error.Printf("%s", message)
	result.Warnings = append(result.Warnings, message)
}
