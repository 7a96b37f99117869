package ztrhuff

import (
	"fmt"
)

// scramble is the order in which dynamic headers list the bit lengths of the
// code-length alphabet (RFC 1951, Section 3.2.7).
var scramble = [NumMetaSymbols]byte{
	16, 17, 18, 0, 8, 7, 9, 6, 10, 5, 11, 4, 12, 3, 13, 2, 14, 1, 15,
}

// Table set modes, from the 2-bit field that follows the reserved bit.
const (
	modeSingle   = 2
	modeMultiple = 3
)

// BuildDynamicTableSet parses the code set header at the start of data and
// returns the TableSet it describes.
//
// The header starts with a reserved bit and a 2-bit mode.  Mode 2 declares a
// single table; mode 3 is followed by a 4-bit width w and a (w+1)-bit table
// count minus one.  Each table is then described by a DEFLATE-style dynamic
// header (RFC 1951, Section 3.2.7) whose literal/length lengths become the
// table's 257 literal lengths; the distance lengths are read and discarded.
// Mode 2 does not select a preset: its single table still comes from a dynamic
// header.  Presets are built with BuildPresetTableSet.
//
// BitsLeft of the result is the number of unread bits in the header's last
// byte.
func BuildDynamicTableSet(data []byte, opts ...Option) (*TableSet, error) {
	o := makeOptions(opts)
	br := newBitReader(data)

	// reserved
	if _, err := br.readBits(1); err != nil {
		return nil, err
	}

	mode, err := br.readBits(2)
	if err != nil {
		return nil, err
	}

	var count uint32
	switch mode {
	case modeSingle:
		count = 1

	case modeMultiple:
		width, err := br.readBits(4)
		if err != nil {
			return nil, err
		}
		out, err := br.readBits(uint(width) + 1)
		if err != nil {
			return nil, err
		}
		count = out + 1

	default:
		return nil, corruptf(ErrInvalidHeader, 1, "table set mode %d is reserved", mode)
	}

	if uint64(count) > uint64(o.maxTables) {
		return nil, corruptf(ErrOutOfMemory, br.pos, "header declares %d tables, max %d", count, o.maxTables)
	}

	set := &TableSet{
		tables:  make([]*DecodeTable, 0, count),
		tracers: o.tracers,
		source:  SourceDynamic,
		preset:  -1,
	}
	for i := uint32(0); i < count; i++ {
		lengths, err := readDynamicLengths(br)
		if err != nil {
			set.discard()
			return nil, err
		}

		t, err := BuildDecodeTable(lengths)
		if err != nil {
			set.discard()
			return nil, fmt.Errorf("table %d: %w", i, err)
		}
		set.tables = append(set.tables, t)
	}
	set.bitsLeft = br.bitsLeftInByte()
	set.built()
	return set, nil
}

// readDynamicLengths reads one dynamic header and returns the literal
// lengths it describes, NumLiteralSymbols entries long.
func readDynamicLengths(br *bitReader) ([]byte, error) {
	out, err := br.readBits(14)
	if err != nil {
		return nil, err
	}
	numLL := 257 + uint(out&0x1f)
	numD := 1 + uint((out>>5)&0x1f)
	numX := 4 + uint((out>>10)&0x0f)

	var sX [NumMetaSymbols]byte
	for i := uint(0); i < numX; i++ {
		out, err = br.readBits(3)
		if err != nil {
			return nil, err
		}
		sX[scramble[i]] = byte(out)
	}

	hX, err := BuildDecodeTable(sX[:])
	if err != nil {
		return nil, corruptf(ErrInvalidHeader, br.pos, "code-length code: %v", err)
	}
	defer hX.Release()

	total := numLL + numD
	lengths := make([]byte, NumLiteralSymbols)
	var last byte
	i := uint(0)
	for i < total {
		at := br.pos
		sym, err := readSymbol(br, hX)
		if err != nil {
			return nil, err
		}

		var value byte
		var count uint
		switch {
		case sym < 16:
			value = byte(sym)
			count = 1

		case sym == 16:
			// next 3 .. 6 lengths repeat the previous one
			if i == 0 {
				return nil, corruptf(ErrInvalidHeader, at, "attempt to repeat -1'st length")
			}
			out, err = br.readBits(2)
			if err != nil {
				return nil, err
			}
			value = last
			count = 3 + uint(out)

		case sym == 17:
			// next 3 .. 10 lengths are 0
			out, err = br.readBits(3)
			if err != nil {
				return nil, err
			}
			count = 3 + uint(out)

		default:
			// next 11 .. 138 lengths are 0
			out, err = br.readBits(7)
			if err != nil {
				return nil, err
			}
			count = 11 + uint(out)
		}

		if count > total-i {
			return nil, corruptf(ErrInvalidHeader, at, "attempt to repeat %d times but only %d codes remain", count, total-i)
		}

		for ; count != 0; count-- {
			if i < numLL && i < NumLiteralSymbols {
				lengths[i] = value
			}
			i++
		}
		last = value
	}
	return lengths, nil
}

// readSymbol decodes one symbol of the code-length alphabet.
func readSymbol(br *bitReader, t *DecodeTable) (Symbol, error) {
	at := br.pos
	n := uint32(rootNode)
	for {
		window, avail := br.peekBits(TableBits)
		e := t.Lookup(n, byte(window))
		switch e.Kind {
		case EntrySymbol:
			if uint(e.Size) > avail {
				return InvalidSymbol, corruptf(ErrTruncatedInput, at, "code-length code needs %d bits, only %d remain", e.Size, avail)
			}
			br.skipBits(uint(e.Size))
			return e.Symbol, nil

		case EntryChild:
			if avail < TableBits {
				return InvalidSymbol, corruptf(ErrTruncatedInput, at, "code-length code needs more than %d bits", avail)
			}
			br.skipBits(TableBits)
			n = e.Next

		default:
			if avail < TableBits {
				return InvalidSymbol, corruptf(ErrTruncatedInput, at, "code-length code needs more than %d bits", avail)
			}
			return InvalidSymbol, corruptf(ErrInvalidHeader, at, "no code-length code matches bits %08b", byte(window))
		}
	}
}
