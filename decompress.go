package ztrhuff

import (
	"fmt"
	"math"

	"github.com/chronos-tachyon/assert"
)

// PreambleSize is the number of framing bytes that precede the Huffman-coded
// bits of a chunk payload: the format byte and the code set id.
const PreambleSize = 2

const minOutputCap = 64

// Decompress decodes a Huffman-coded chunk payload with the given TableSet.
//
// data starts with a PreambleSize-byte preamble, which is skipped.  The first
// payload byte carries set.BitsLeft() bits in its high positions (the rest of
// that byte belongs to the header stream); every following byte is consumed
// whole, least significant bit first.  Symbol k of the output is decoded with
// table k mod set.Len().  Decoding stops at EndOfBlock, or when the input runs
// out without completing another code; bits left over after the last input
// byte has been loaded are dropped, never reported as an error.
//
// Decompress never reads beyond len(data), whatever the input holds.
func Decompress(set *TableSet, data []byte, opts ...Option) ([]byte, error) {
	assert.NotNil(&set)
	o := makeOptions(opts)

	if set.released {
		return nil, ErrReleased
	}
	if len(set.tables) == 0 {
		return nil, fmt.Errorf("%w: table set has no tables", ErrInvalidHeader)
	}
	for i, t := range set.tables {
		if t.Released() {
			return nil, fmt.Errorf("%w: table %d", ErrReleased, i)
		}
	}
	if len(data) < PreambleSize {
		return nil, corruptf(ErrTruncatedInput, 0, "need %d preamble bytes, got %d", PreambleSize, len(data))
	}

	src := data[PreambleSize:]
	limit := outputLimit(len(src), o.maxOutput)
	out := make([]byte, 0, initialOutputCap(len(src), limit))

	var (
		window   uint32
		numBits  uint
		pos      int
		tableIdx int
		table    = set.tables[0]
		n        = uint32(rootNode)
		stop     = StopEndOfInput
	)

	if len(src) != 0 {
		window = uint32(src[0]) >> (8 - set.bitsLeft)
		numBits = uint(set.bitsLeft)
		pos = 1
	}

decodeLoop:
	for pos < len(src) || numBits != 0 {
		if numBits < TableBits && pos < len(src) {
			window |= uint32(src[pos]) << numBits
			numBits += 8
			pos++
		}

		e := table.Lookup(n, byte(window))
		switch e.Kind {
		case EntryChild:
			if numBits < TableBits {
				break decodeLoop
			}
			window >>= TableBits
			numBits -= TableBits
			n = e.Next

		case EntrySymbol:
			if uint(e.Size) > numBits {
				break decodeLoop
			}
			window >>= e.Size
			numBits -= uint(e.Size)

			if e.Symbol == EndOfBlock {
				stop = StopEndOfBlock
				break decodeLoop
			}

			if len(out) == cap(out) {
				var ok bool
				out, ok = growOutput(out, limit)
				if !ok {
					return nil, fmt.Errorf("%w: output exceeds %d bytes", ErrOutOfMemory, limit)
				}
			}
			out = append(out, byte(e.Symbol))

			tableIdx++
			if tableIdx == len(set.tables) {
				tableIdx = 0
			}
			table = set.tables[tableIdx]
			n = rootNode

		default:
			if pos == len(src) {
				break decodeLoop
			}
			offset := uint64(PreambleSize+pos)*8 - uint64(numBits)
			return nil, corruptf(ErrCorruptStream, offset, "no code in table %d matches bits %08b", tableIdx, byte(window))
		}
	}

	event := Event{
		Type:        DecompressEvent,
		InputBytes:  len(data),
		OutputBytes: len(out),
		Stop:        stop,
	}
	sendEvent(o.tracers, event)
	return out, nil
}

// outputLimit returns the largest output Decompress may produce.  Every
// symbol consumes at least one input bit, so 8 bytes out per byte in is a
// hard bound.
func outputLimit(srcLen int, maxOutput int) int {
	limit := math.MaxInt
	if srcLen < math.MaxInt/8 {
		limit = srcLen * 8
	}
	if maxOutput > 0 && maxOutput < limit {
		limit = maxOutput
	}
	return limit
}

func initialOutputCap(srcLen int, limit int) int {
	size := math.MaxInt
	if srcLen < math.MaxInt/4 {
		size = srcLen * 4
	}
	if size < minOutputCap {
		size = minOutputCap
	}
	if size > limit {
		size = limit
	}
	return size
}

// growOutput doubles the capacity of out, without exceeding limit.
func growOutput(out []byte, limit int) ([]byte, bool) {
	if len(out) >= limit {
		return out, false
	}
	size := limit
	if c := cap(out); c <= limit/2 {
		size = 2 * c
	}
	if size < minOutputCap {
		size = minOutputCap
	}
	if size > limit {
		size = limit
	}
	grown := make([]byte, len(out), size)
	copy(grown, out)
	return grown, true
}
