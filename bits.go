package ztrhuff

import (
	"github.com/chronos-tachyon/assert"
)

// MaxBitsPerRead is the widest field GetBits can extract.
const MaxBitsPerRead = 32

// GetBits extracts a width-bit unsigned field from buf, starting at bit
// offset bitPos.  Bits are consumed least-significant first: bit 0 of buf[0]
// is the first bit, bit 7 of buf[0] the eighth, bit 0 of buf[1] the ninth.
// The first bit consumed becomes the least significant bit of value.
//
// GetBits returns the field and the bit offset just past it.  If the field
// would extend past the end of buf, it returns ErrTruncatedInput and bitPos
// unchanged; no byte beyond len(buf) is ever touched.
func GetBits(buf []byte, bitPos uint64, width uint) (value uint32, next uint64, err error) {
	assert.Assertf(width >= 1 && width <= MaxBitsPerRead, "width %d not in 1..%d", width, MaxBitsPerRead)

	total := uint64(len(buf)) << 3
	end := bitPos + uint64(width)
	if end < bitPos || end > total {
		var remain uint64
		if bitPos < total {
			remain = total - bitPos
		}
		return 0, bitPos, corruptf(ErrTruncatedInput, bitPos, "need %d bits, only %d remain", width, remain)
	}

	shift := uint(bitPos & 7)
	index := bitPos >> 3
	var acc uint64
	for n := uint(0); n < shift+width; n += 8 {
		acc |= uint64(buf[index]) << n
		index++
	}

	value = uint32((acc >> shift) & (uint64(1)<<width - 1))
	return value, end, nil
}

// bitReader is a cursor over an in-memory bit stream.
type bitReader struct {
	buf []byte
	pos uint64
}

func newBitReader(buf []byte) *bitReader {
	return &bitReader{buf: buf}
}

// available returns the number of unread bits.
func (br *bitReader) available() uint64 {
	total := uint64(len(br.buf)) << 3
	if br.pos >= total {
		return 0
	}
	return total - br.pos
}

func (br *bitReader) readBits(width uint) (uint32, error) {
	value, next, err := GetBits(br.buf, br.pos, width)
	if err != nil {
		return 0, err
	}
	br.pos = next
	return value, nil
}

// peekBits returns up to width bits without consuming them.  Near the end of
// the stream fewer bits may be available; the missing high bits read as 0
// and n reports how many bits are real.
func (br *bitReader) peekBits(width uint) (value uint32, n uint) {
	n = width
	if avail := br.available(); avail < uint64(n) {
		n = uint(avail)
	}
	if n == 0 {
		return 0, 0
	}
	value, _, _ = GetBits(br.buf, br.pos, n)
	return value, n
}

func (br *bitReader) skipBits(n uint) {
	assert.Assertf(uint64(n) <= br.available(), "skip %d > available %d", n, br.available())
	br.pos += uint64(n)
}

// bitsLeftInByte returns how many bits of the current byte remain unread.
func (br *bitReader) bitsLeftInByte() byte {
	return byte((8 - br.pos&7) & 7)
}
