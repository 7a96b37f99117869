package ztrhuff

import (
	"fmt"

	"github.com/chronos-tachyon/assert"
)

// TableSet is an ordered collection of one or more DecodeTables.  Decompress
// decodes symbol k with table k mod Len().
//
// A TableSet is immutable once built and may be shared by concurrent
// Decompress calls.  The owner must call Release exactly once, after the last
// Decompress call has returned.  The zero value is not usable; build one with
// NewTableSet, BuildDynamicTableSet or BuildPresetTableSet.
type TableSet struct {
	tables   []*DecodeTable
	tracers  []Tracer
	source   Source
	preset   int
	bitsLeft byte
	released bool
}

// NewTableSet builds a TableSet with one table per literal length array.
// Each array holds up to NumLiteralSymbols lengths.  BitsLeft of the result
// is 0.
func NewTableSet(lengths [][]byte, opts ...Option) (*TableSet, error) {
	o := makeOptions(opts)
	if len(lengths) == 0 {
		return nil, fmt.Errorf("%w: a table set needs at least one table", ErrInvalidHeader)
	}
	if len(lengths) > o.maxTables {
		return nil, fmt.Errorf("%w: %d tables, max %d", ErrOutOfMemory, len(lengths), o.maxTables)
	}

	set := &TableSet{
		tables:  make([]*DecodeTable, 0, len(lengths)),
		tracers: o.tracers,
		source:  SourceLengths,
		preset:  -1,
	}
	for i, list := range lengths {
		if len(list) > NumLiteralSymbols {
			set.discard()
			return nil, fmt.Errorf("%w: table %d has %d symbols, max %d", ErrInvalidHeader, i, len(list), NumLiteralSymbols)
		}
		t, err := BuildDecodeTable(list)
		if err != nil {
			set.discard()
			return nil, fmt.Errorf("table %d: %w", i, err)
		}
		set.tables = append(set.tables, t)
	}
	set.built()
	return set, nil
}

// Len returns the number of tables in the set.
func (set *TableSet) Len() int {
	return len(set.tables)
}

// BitsLeft returns the number of payload bits that share a byte with the end
// of the header.  Decompress takes them from the high bits of the first
// payload byte.
func (set *TableSet) BitsLeft() byte {
	return set.bitsLeft
}

// Table returns the i'th table.  The table still belongs to the set: callers
// must not Insert into it or Release it.
func (set *TableSet) Table(i int) *DecodeTable {
	return set.tables[i]
}

// Released reports whether Release has been called.
func (set *TableSet) Released() bool {
	return set.released
}

// Release frees every table of the set.  Calls after the first are no-ops.
func (set *TableSet) Release() {
	assert.NotNil(&set)
	if set.released {
		return
	}
	nodes := 0
	for _, t := range set.tables {
		nodes += t.Release()
	}
	sendEvent(set.tracers, Event{
		Type:   TableSetReleasedEvent,
		Source: set.source,
		Preset: set.preset,
		Tables: len(set.tables),
		Nodes:  nodes,
	})
	set.tables = nil
	set.released = true
}

// discard frees a partially built set without reporting it.
func (set *TableSet) discard() {
	for _, t := range set.tables {
		t.Release()
	}
	set.tables = nil
	set.released = true
}

func (set *TableSet) built() {
	nodes := 0
	for _, t := range set.tables {
		nodes += t.Nodes()
	}
	sendEvent(set.tracers, Event{
		Type:     TableSetBuiltEvent,
		Source:   set.source,
		Preset:   set.preset,
		Tables:   len(set.tables),
		Nodes:    nodes,
		BitsLeft: set.bitsLeft,
	})
}
