package samsieve_api

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const (
	nameColumn = 0
	flagColumn = 1
	mapqColumn = 4

	editDistanceTag = "NM:i:"
)

// Parse an alignment line into a record
// The identifier and the mapping quality are validated here so that a corrupt
// record fails the run even when it would have been dropped by another filter
func parseRecord(line Line) (*AlignmentRecord, error) {
	fields := strings.SplitN(line.Text, "\t", mapqColumn+2)
	if len(fields) <= mapqColumn {
		return nil, errors.Wrapf(ErrMalformedField, "line %d: expected at least %d tab-separated fields, found %d", line.Number, mapqColumn+1, len(fields))
	}

	name := fields[nameColumn]
	if name == "" {
		return nil, errors.Wrapf(ErrMalformedField, "line %d: empty read identifier", line.Number)
	}

	mapq, err := strconv.ParseUint(fields[mapqColumn], 10, 8)
	if err != nil {
		return nil, errors.Wrapf(ErrMalformedField, "line %d: mapping quality %q of read %s is not an integer in 0-255", line.Number, fields[mapqColumn], name)
	}

	return &AlignmentRecord{
		Text:   line.Text,
		Number: line.Number,
		Name:   name,
		MapQ:   int(mapq),
	}, nil
}

// Return the edit distance of the record and whether the NM tag is present
// Only the first occurrence of the tag is considered
func (record *AlignmentRecord) EditDistance() (int, bool, error) {
	start := strings.Index(record.Text, editDistanceTag)
	if start < 0 {
		return 0, false, nil
	}
	digits := record.Text[start+len(editDistanceTag):]
	end := 0
	for end < len(digits) && digits[end] >= '0' && digits[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false, errors.Wrapf(ErrMalformedField, "line %d: NM tag of read %s has no value", record.Number, record.Name)
	}
	nm, err := strconv.ParseUint(digits[:end], 10, 32)
	if err != nil {
		return 0, false, errors.Wrapf(ErrMalformedField, "line %d: NM tag %q of read %s is out of range", record.Number, digits[:end], record.Name)
	}
	return int(nm), true, nil
}

// Return the FLAG field of an alignment line
func parseFlag(line Line) (uint64, error) {
	fields := strings.SplitN(line.Text, "\t", flagColumn+2)
	if len(fields) <= flagColumn {
		return 0, errors.Wrapf(ErrMalformedField, "line %d: missing FLAG field", line.Number)
	}
	flag, err := strconv.ParseUint(fields[flagColumn], 0, 16)
	if err != nil {
		return 0, errors.Wrapf(ErrMalformedField, "line %d: FLAG %q is not an integer", line.Number, fields[flagColumn])
	}
	return flag, nil
}
