package samsieve_api

import (
	"io"

	"github.com/grailbio/base/log"
	"github.com/pkg/errors"
)

type assemblerState int

const (
	awaitingFirst assemblerState = iota
	haveFirstAwaitingSecond
	done
)

// The kind of an item produced by the PairAssembler
type EventKind int

const (
	// A header line to pass through
	HeaderEvent EventKind = iota

	// A confirmed mate pair
	PairEvent
)

// One item produced by the PairAssembler
type Event struct {
	Kind   EventKind
	Header Line
	Pair   Pair
}

// PairAssembler groups consecutive records of a name-grouped stream into mate
// pairs. It never sorts: two consecutive records with different identifiers
// are a singleton, which is either dropped or reported as ErrUnpaired.
type PairAssembler struct {
	source           LineSource
	removeSingletons bool

	state assemblerState
	first *AlignmentRecord

	// Records dropped because their mate was missing
	Singletons int

	// Set when the stream ended on a record without a mate
	UnpairedTail bool
}

// Create a PairAssembler reading from source
func NewPairAssembler(source LineSource, removeSingletons bool) *PairAssembler {
	return &PairAssembler{source: source, removeSingletons: removeSingletons}
}

// Return the next header or pair, or io.EOF at the end of the stream
// After an error every following call returns io.EOF.
func (a *PairAssembler) Next() (Event, error) {
	for a.state != done {
		line, err := a.source.Next()
		if err == io.EOF {
			if a.state == haveFirstAwaitingSecond {
				a.UnpairedTail = true
				log.Printf("stream ended on read %s (line %d) without its mate, record dropped", a.first.Name, a.first.Number)
			}
			a.finish()
			return Event{}, io.EOF
		}
		if err != nil {
			a.finish()
			return Event{}, err
		}

		if line.Kind == HeaderLine {
			if a.state == haveFirstAwaitingSecond {
				if err := a.singleton(a.first, line.Text); err != nil {
					return Event{}, err
				}
				a.first = nil
				a.state = awaitingFirst
			}
			return Event{Kind: HeaderEvent, Header: line}, nil
		}

		record, err := parseRecord(line)
		if err != nil {
			a.finish()
			return Event{}, err
		}

		switch a.state {
		case awaitingFirst:
			a.first = record
			a.state = haveFirstAwaitingSecond
		case haveFirstAwaitingSecond:
			if record.Name != a.first.Name {
				if err := a.singleton(a.first, record.Name); err != nil {
					return Event{}, err
				}
				// The second record starts the next candidate pair.
				a.first = record
				continue
			}
			pair := Pair{First: a.first, Second: record}
			a.first = nil
			a.state = awaitingFirst
			return Event{Kind: PairEvent, Pair: pair}, nil
		}
	}
	return Event{}, io.EOF
}

// Drop a record without a mate, or fail when singletons are not tolerated
func (a *PairAssembler) singleton(record *AlignmentRecord, next string) error {
	if !a.removeSingletons {
		a.finish()
		return errors.Wrapf(ErrUnpaired,
			"read %s (line %d) is followed by %q: the input may be coordinate-sorted or contain singletons; sort it by read name or use --remove-singletons",
			record.Name, record.Number, next)
	}
	a.Singletons++
	log.Debug.Printf("dropping singleton read %s (line %d)", record.Name, record.Number)
	return nil
}

func (a *PairAssembler) finish() {
	a.first = nil
	a.state = done
}
