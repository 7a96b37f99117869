package ztrhuff

import (
	"container/heap"
	"encoding/hex"
	"testing"
)

// bitWriter packs bits least significant first, the way GetBits reads them.
type bitWriter struct {
	buf []byte
	n   uint
}

func (bw *bitWriter) writeBits(value uint32, width uint) {
	for i := uint(0); i < width; i++ {
		if bw.n&7 == 0 {
			bw.buf = append(bw.buf, 0)
		}
		if (value>>i)&1 != 0 {
			bw.buf[bw.n>>3] |= 1 << (bw.n & 7)
		}
		bw.n++
	}
}

func (bw *bitWriter) writeCode(hc Code) {
	bw.writeBits(hc.Wire(), uint(hc.Size))
}

func (bw *bitWriter) Bytes() []byte {
	return bw.buf
}

func mustDecodeHex(t testing.TB, str string) []byte {
	t.Helper()
	raw, err := hex.DecodeString(str)
	if err != nil {
		t.Fatalf("bad hex %q: %v", str, err)
	}
	return raw
}

func codesBySymbol(t testing.TB, lengths []byte) map[Symbol]Code {
	t.Helper()
	codes, err := BuildCanonicalCodes(lengths)
	if err != nil {
		t.Fatalf("BuildCanonicalCodes failed: %v", err)
	}
	out := make(map[Symbol]Code, len(codes))
	for _, cc := range codes {
		out[cc.Symbol] = cc.Code
	}
	return out
}

func literalLengths(pairs ...int) []byte {
	lengths := make([]byte, NumLiteralSymbols)
	for i := 0; i < len(pairs); i += 2 {
		lengths[pairs[i]] = byte(pairs[i+1])
	}
	return lengths
}

// metaCode is the code-length code used by the header writers below: all
// 19 symbols get 5 bits, so symbol s is coded as the 5-bit number s.
func metaCode(sym int) Code {
	return MakeCode(5, uint32(sym))
}

// writeDynamicLengths writes one dynamic header for a literal length array,
// with HLIT = 257 and a single zero-length distance code.
func writeDynamicLengths(bw *bitWriter, lengths []byte) {
	values := make([]byte, NumLiteralSymbols+1)
	copy(values, lengths)

	bw.writeBits(0|0<<5|15<<10, 14)
	for i := 0; i < NumMetaSymbols; i++ {
		bw.writeBits(5, 3)
	}

	i := 0
	for i < len(values) {
		v := values[i]
		run := 1
		for i+run < len(values) && values[i+run] == v {
			run++
		}

		if v == 0 && run >= 3 {
			count := run
			if count > 138 {
				count = 138
			}
			if count >= 11 {
				bw.writeCode(metaCode(18))
				bw.writeBits(uint32(count-11), 7)
			} else {
				bw.writeCode(metaCode(17))
				bw.writeBits(uint32(count-3), 3)
			}
			i += count
			continue
		}

		bw.writeCode(metaCode(int(v)))
		i++
		run--
		for run >= 3 {
			count := run
			if count > 6 {
				count = 6
			}
			bw.writeCode(metaCode(16))
			bw.writeBits(uint32(count-3), 2)
			i += count
			run -= count
		}
	}
}

func writeSingleTableHeader(bw *bitWriter, lengths []byte) {
	bw.writeBits(0, 1)
	bw.writeBits(modeSingle, 2)
	writeDynamicLengths(bw, lengths)
}

func writeMultiTableHeader(bw *bitWriter, width uint, tables ...[]byte) {
	bw.writeBits(0, 1)
	bw.writeBits(modeMultiple, 2)
	bw.writeBits(uint32(width), 4)
	bw.writeBits(uint32(len(tables)-1), width+1)
	for _, lengths := range tables {
		writeDynamicLengths(bw, lengths)
	}
}

// encodePayload returns a chunk payload (preamble included) that encodes
// symbols round-robin over the given tables, followed by EndOfBlock if
// withEOB is true.
func encodePayload(t testing.TB, bitsLeft byte, tables [][]byte, symbols []Symbol, withEOB bool) []byte {
	t.Helper()
	codes := make([]map[Symbol]Code, len(tables))
	for i, lengths := range tables {
		codes[i] = codesBySymbol(t, lengths)
	}

	var bw bitWriter
	bw.writeBits(0, uint(8-bitsLeft))
	for k, sym := range symbols {
		hc, found := codes[k%len(codes)][sym]
		if !found {
			t.Fatalf("symbol %d has no code in table %d", sym, k%len(codes))
		}
		bw.writeCode(hc)
	}
	if withEOB {
		bw.writeCode(codes[len(symbols)%len(codes)][EndOfBlock])
	}
	return append([]byte{0x4d, 0x80}, bw.Bytes()...)
}

// lengthsFromFrequencies assigns Huffman bit lengths to the symbols with a
// non-zero frequency.
func lengthsFromFrequencies(frequencies []uint32) []byte {
	type treeNode struct {
		parent int
		freq   uint32
	}

	nodes := make([]treeNode, 0, 2*len(frequencies))
	leaves := make(map[int]int, len(frequencies))
	h := &freqHeap{}
	for symbol, freq := range frequencies {
		if freq == 0 {
			continue
		}
		leaves[symbol] = len(nodes)
		h.list = append(h.list, nodeAndFreq{len(nodes), freq})
		nodes = append(nodes, treeNode{parent: -1, freq: freq})
	}

	lengths := make([]byte, len(frequencies))
	if len(nodes) == 1 {
		for symbol := range leaves {
			lengths[symbol] = 1
		}
		return lengths
	}

	heap.Init(h)
	for h.Len() > 1 {
		a := heap.Pop(h).(nodeAndFreq)
		b := heap.Pop(h).(nodeAndFreq)
		index := len(nodes)
		nodes = append(nodes, treeNode{parent: -1, freq: a.freq + b.freq})
		nodes[a.index].parent = index
		nodes[b.index].parent = index
		heap.Push(h, nodeAndFreq{index, a.freq + b.freq})
	}

	for symbol, index := range leaves {
		depth := byte(0)
		for p := nodes[index].parent; p >= 0; p = nodes[p].parent {
			depth++
		}
		lengths[symbol] = depth
	}
	return lengths
}

// type nodeAndFreq + type freqHeap {{{

type nodeAndFreq struct {
	index int
	freq  uint32
}

type freqHeap struct {
	list []nodeAndFreq
}

func (h *freqHeap) Len() int {
	return len(h.list)
}

func (h *freqHeap) Swap(i, j int) {
	h.list[i], h.list[j] = h.list[j], h.list[i]
}

func (h *freqHeap) Less(i, j int) bool {
	a, b := h.list[i], h.list[j]
	if a.freq != b.freq {
		return a.freq < b.freq
	}
	return a.index < b.index
}

func (h *freqHeap) Push(x interface{}) {
	h.list = append(h.list, x.(nodeAndFreq))
}

func (h *freqHeap) Pop() interface{} {
	last := len(h.list) - 1
	x := h.list[last]
	h.list = h.list[:last]
	return x
}

var _ heap.Interface = (*freqHeap)(nil)

// }}}
