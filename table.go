package ztrhuff

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/cespare/xxhash/v2"
	"github.com/chronos-tachyon/assert"
)

// TableBits is the number of input bits that index one DecodeTable node.
const TableBits = 8

const (
	tableSize = 1 << TableBits
	rootNode  = 0

	// maxTableNodes bounds the arena of a single DecodeTable.  A complete
	// code over 257 symbols with 15-bit codes needs well under 300 nodes.
	maxTableNodes = 1 << 12
)

// EntryKind says what a DecodeTable slot holds.
type EntryKind uint8

const (
	// EntryEmpty is a slot that no code reaches.  Fixup replaces every
	// EntryEmpty with EntryRoot.
	EntryEmpty EntryKind = iota

	// EntrySymbol is a slot that completes a code.
	EntrySymbol

	// EntryChild is a slot that consumes 8 bits and continues at another
	// node.
	EntryChild

	// EntryRoot is a slot that no code reaches, pointing back at the root.
	EntryRoot
)

var entryKindNames = [...]string{"empty", "symbol", "child", "root"}

// String returns the name of this EntryKind.
func (kind EntryKind) String() string {
	if int(kind) < len(entryKindNames) {
		return entryKindNames[kind]
	}
	return fmt.Sprintf("EntryKind(%d)", uint8(kind))
}

// Entry is one slot of a DecodeTable node.
type Entry struct {
	Kind EntryKind

	// Size is the number of bits consumed by this slot: the remaining code
	// length for EntrySymbol, 8 for EntryChild, 0 otherwise.
	Size byte

	// Symbol is the decoded symbol for EntrySymbol.
	Symbol Symbol

	// Next is the node index for EntryChild and EntryRoot.
	Next uint32
}

type node [tableSize]Entry

// DecodeTable is a chain of 256-slot lookup nodes that decodes one canonical
// Huffman code, 8 input bits at a time.  Nodes live in an arena and refer to
// each other by index; node 0 is the root.
//
// A slot is indexed by the next 8 bits of input, first bit in the least
// significant position.  Codes of up to 8 bits occupy every slot whose low
// bits match; longer codes route through EntryChild slots.
type DecodeTable struct {
	nodes []node
}

// NewDecodeTable returns a DecodeTable with a single, empty root node.
func NewDecodeTable() *DecodeTable {
	return &DecodeTable{nodes: make([]node, 1, 4)}
}

// BuildDecodeTable builds the canonical code for lengths and returns a fixed
// up DecodeTable for it.
func BuildDecodeTable(lengths []byte) (*DecodeTable, error) {
	codes, err := BuildCanonicalCodes(lengths)
	if err != nil {
		return nil, err
	}

	t := NewDecodeTable()
	for _, cc := range codes {
		if err := t.Insert(cc.Code, cc.Symbol); err != nil {
			t.Release()
			return nil, err
		}
	}
	t.Fixup()
	return t, nil
}

// Insert adds a code to the table.  A code that overlaps a slot already
// assigned to another code is rejected.
func (t *DecodeTable) Insert(hc Code, symbol Symbol) error {
	assert.Assertf(hc.Size >= 1 && hc.Size <= MaxCodeSize, "code size %d not in 1..%d", hc.Size, MaxCodeSize)
	assert.Assertf(symbol >= 0, "symbol %d < 0", symbol)
	if t.nodes == nil {
		return ErrReleased
	}

	wire := hc.Wire()
	size := hc.Size
	n := uint32(rootNode)
	for size > TableBits {
		index := byte(wire)
		switch e := t.nodes[n][index]; e.Kind {
		case EntryEmpty:
			if len(t.nodes) >= maxTableNodes {
				return fmt.Errorf("%w: decode table needs more than %d nodes", ErrOutOfMemory, maxTableNodes)
			}
			t.nodes = append(t.nodes, node{})
			t.nodes[n][index] = Entry{Kind: EntryChild, Size: TableBits, Next: uint32(len(t.nodes) - 1)}
		case EntryChild:
			// pass
		default:
			return fmt.Errorf("%w: code %s for symbol %d collides with symbol %d", ErrInvalidHeader, hc, symbol, e.Symbol)
		}
		n = t.nodes[n][index].Next
		wire >>= TableBits
		size -= TableBits
	}

	step := uint32(1) << size
	for i := wire; i < tableSize; i += step {
		e := &t.nodes[n][i]
		if e.Kind != EntryEmpty {
			return fmt.Errorf("%w: code %s for symbol %d collides with an existing %v slot", ErrInvalidHeader, hc, symbol, e.Kind)
		}
		*e = Entry{Kind: EntrySymbol, Size: size, Symbol: symbol}
	}
	return nil
}

// Fixup points every slot that no code reaches back at the root node, so
// that a lookup never lands on an empty slot.
func (t *DecodeTable) Fixup() {
	if t.nodes != nil {
		t.fixup(rootNode)
	}
}

func (t *DecodeTable) fixup(n uint32) {
	for i := range t.nodes[n] {
		e := &t.nodes[n][i]
		switch e.Kind {
		case EntryChild:
			t.fixup(e.Next)
		case EntryEmpty:
			*e = Entry{Kind: EntryRoot, Next: rootNode}
		}
	}
}

// Release frees every node reachable from the root and returns how many
// nodes were freed.  Links back to the root are not followed.  Calling
// Release again is a no-op that returns 0.
func (t *DecodeTable) Release() int {
	if t.nodes == nil {
		return 0
	}
	freed := t.release(rootNode)
	t.nodes = nil
	return freed
}

func (t *DecodeTable) release(n uint32) int {
	freed := 1
	for i := range t.nodes[n] {
		e := &t.nodes[n][i]
		if e.Kind == EntryChild && e.Next != rootNode {
			freed += t.release(e.Next)
		}
	}
	t.nodes[n] = node{}
	return freed
}

// Released reports whether Release has been called.
func (t *DecodeTable) Released() bool {
	return t.nodes == nil
}

// Nodes returns the number of nodes in the arena.
func (t *DecodeTable) Nodes() int {
	return len(t.nodes)
}

// Lookup returns the slot of node n selected by the next 8 input bits.
func (t *DecodeTable) Lookup(n uint32, index byte) Entry {
	return t.nodes[n][index]
}

// Fingerprint returns a hash of the table's contents.  Two tables built from
// the same lengths have the same fingerprint.
func (t *DecodeTable) Fingerprint() uint64 {
	h := xxhash.New()
	var tmp [12]byte
	for n := range t.nodes {
		for _, e := range t.nodes[n] {
			tmp[0] = byte(e.Kind)
			tmp[1] = e.Size
			binary.LittleEndian.PutUint32(tmp[4:8], uint32(e.Symbol))
			binary.LittleEndian.PutUint32(tmp[8:12], e.Next)
			_, _ = h.Write(tmp[:])
		}
	}
	return h.Sum64()
}

// Dump writes a programmer-readable debugging dump of the table to the given
// writer.  Each code is listed once, at its lowest slot.
func (t *DecodeTable) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("DecodeTable{\n")
	fmt.Fprintf(&buf, "\tNodes() = %d\n", len(t.nodes))
	for n := range t.nodes {
		for i, e := range t.nodes[n] {
			switch e.Kind {
			case EntrySymbol:
				if i < 1<<e.Size {
					fmt.Fprintf(&buf, "\tLookup(%d, 0x%02x) = symbol %d, %d bits\n", n, i, e.Symbol, e.Size)
				}
			case EntryChild:
				fmt.Fprintf(&buf, "\tLookup(%d, 0x%02x) = child %d\n", n, i, e.Next)
			}
		}
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}
