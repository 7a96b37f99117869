package ztrhuff

import (
	"fmt"
	mathbits "math/bits"
	"sort"
	"strconv"
)

// MaxCodeSize is the longest code, in bits, that BuildCanonicalCodes accepts.
const MaxCodeSize = 32

// Code represents a sequence of bits.
type Code struct {
	// Size holds the number of valid bits.
	Size byte

	// Bits holds the actual values of the bits.  The most significant of
	// the Size valid bits is the first bit on the wire, as in RFC 1951.
	Bits uint32
}

// MakeCode is a convenience function that constructs a Code.
func MakeCode(size byte, bits uint32) Code {
	return Code{Size: size, Bits: bits}
}

// Wire returns the bits of this Code in stream order: the first bit on the
// wire is the least significant bit of the result.  This is the form that
// decode tables are indexed by.
func (hc Code) Wire() uint32 {
	return reverseBits(hc.Size, hc.Bits)
}

// String returns the string representation of this Code, first bit first.
func (hc Code) String() string {
	if hc.Size == 0 {
		return "\"\""
	}
	format := "%0" + strconv.FormatUint(uint64(hc.Size), 10) + "b"
	return strconv.Quote(fmt.Sprintf(format, hc.Bits))
}

var _ fmt.Stringer = Code{}

func reverseBits(size byte, bits uint32) uint32 {
	if size == 0 {
		return 0
	}
	return mathbits.Reverse32(bits) >> (32 - size)
}

// CanonicalCode pairs a Symbol with its canonical Huffman code.
type CanonicalCode struct {
	Symbol Symbol
	Code   Code
}

// BuildCanonicalCodes assigns canonical Huffman codes to the symbols of an
// alphabet, given one bit length per symbol.  Symbols with a length of 0 are
// omitted.  The result is ordered by (length, symbol), which is also the
// order of increasing left-justified code value.
//
// The code is not required to be complete: an under-subscribed set of
// lengths simply leaves some bit patterns unassigned.  An over-subscribed set
// (one that would need more codes than the bit lengths allow) is rejected,
// as is a set with no symbols at all.
func BuildCanonicalCodes(lengths []byte) ([]CanonicalCode, error) {
	sorted := make(bySize, 0, len(lengths))
	for symbol, size := range lengths {
		if size == 0 {
			continue
		}
		if size > MaxCodeSize {
			return nil, fmt.Errorf("%w: bit length %d for symbol %d, max %d", ErrInvalidHeader, size, symbol, MaxCodeSize)
		}
		sorted = append(sorted, symbolAndSize{Symbol(symbol), size})
	}
	if len(sorted) == 0 {
		return nil, fmt.Errorf("%w: no symbols have a non-zero bit length", ErrInvalidHeader)
	}
	sorted.Sort()

	// next is a MaxCodeSize-bit counter, left-justified so that adding
	// 1<<(MaxCodeSize-size) increments it as a size-bit integer.  The
	// extra high bits of the uint64 catch the carry out of the top.

	const limit = uint64(1) << MaxCodeSize
	var next uint64
	codes := make([]CanonicalCode, len(sorted))
	for i, item := range sorted {
		if next >= limit {
			return nil, fmt.Errorf("%w: over-subscribed code at symbol %d (length %d)", ErrInvalidHeader, item.symbol, item.size)
		}
		shift := MaxCodeSize - uint(item.size)
		codes[i] = CanonicalCode{
			Symbol: item.symbol,
			Code:   MakeCode(item.size, uint32(next>>shift)),
		}
		next += uint64(1) << shift
	}
	return codes, nil
}

// type symbolAndSize + type bySize {{{

type symbolAndSize struct {
	symbol Symbol
	size   byte
}

type bySize []symbolAndSize

func (list bySize) Len() int {
	return len(list)
}

func (list bySize) Swap(i, j int) {
	list[i], list[j] = list[j], list[i]
}

func (list bySize) Less(i, j int) bool {
	a, b := list[i], list[j]
	if a.size != b.size {
		return a.size < b.size
	}
	return a.symbol < b.symbol
}

func (list bySize) Sort() {
	sort.Stable(list)
}

var _ sort.Interface = bySize(nil)

// }}}
