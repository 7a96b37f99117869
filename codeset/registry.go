// Package codeset keeps the Huffman code sets of a ZTR stream and dispatches
// Huffman-coded chunk payloads to the right one.
//
// A Huffman-coded payload starts with the format byte FormatHuffman and a
// code set id.  Ids 1, 2 and 3 name the built-in presets 0, 1 and 2; ids
// 128 .. 255 name code sets defined earlier in the stream by HUFF chunks.
package codeset

import (
	"bytes"

	"github.com/cespare/xxhash/v2"
	"github.com/pkg/errors"

	"github.com/chronos-tachyon/ztrhuff"
)

// FormatHuffman is the format byte of a Huffman-coded chunk payload.
const FormatHuffman = 0x4D

// Code set ids.
const (
	// FirstPresetID is the id of preset 0.
	FirstPresetID = 1

	// FirstUserID is the lowest id a HUFF chunk may define.
	FirstUserID = 128

	// NumUserSlots is the number of user-definable code sets.
	NumUserSlots = 256 - FirstUserID
)

// ErrUndefinedCodeSet is returned when a payload names a user code set that
// no HUFF chunk has defined.
var ErrUndefinedCodeSet = errors.New("undefined code set")

// Registry holds the code sets of one ZTR stream.  The zero value is not
// usable; call New.
//
// A Registry is not safe for concurrent use.
type Registry struct {
	opts    []ztrhuff.Option
	user    [NumUserSlots]userSlot
	presets [ztrhuff.NumPresets]*ztrhuff.TableSet
	closed  bool
}

type userSlot struct {
	set         *ztrhuff.TableSet
	header      []byte
	fingerprint uint64
}

// New returns an empty Registry.  The options are passed to every table set
// build and Decompress call.
func New(opts ...ztrhuff.Option) *Registry {
	return &Registry{opts: opts}
}

// Define installs the code set carried by a HUFF chunk payload: one flag
// byte, the code set id, then the code set header.  Defining an id again
// with an identical header keeps the existing tables; a different header
// replaces them.
func (r *Registry) Define(chunk []byte) error {
	if r.closed {
		return errors.WithStack(ztrhuff.ErrReleased)
	}
	if len(chunk) < ztrhuff.PreambleSize {
		return errors.Wrapf(ztrhuff.ErrTruncatedInput, "HUFF chunk of %d bytes", len(chunk))
	}

	id := chunk[1]
	if id < FirstUserID {
		return errors.Wrapf(ztrhuff.ErrInvalidHeader, "code set %d cannot be defined by a HUFF chunk", id)
	}

	header := chunk[ztrhuff.PreambleSize:]
	fingerprint := xxhash.Sum64(header)
	slot := &r.user[id-FirstUserID]
	if slot.set != nil && slot.fingerprint == fingerprint && bytes.Equal(slot.header, header) {
		return nil
	}

	set, err := ztrhuff.BuildDynamicTableSet(header, r.opts...)
	if err != nil {
		return errors.Wrapf(err, "code set %d", id)
	}

	if slot.set != nil {
		slot.set.Release()
	}
	*slot = userSlot{
		set:         set,
		header:      append([]byte(nil), header...),
		fingerprint: fingerprint,
	}
	return nil
}

// Lookup returns the table set for a code set id.  Presets are built on
// first use.  The Registry keeps ownership of the result.
func (r *Registry) Lookup(id byte) (*ztrhuff.TableSet, error) {
	if r.closed {
		return nil, errors.WithStack(ztrhuff.ErrReleased)
	}

	switch {
	case id >= FirstUserID:
		set := r.user[id-FirstUserID].set
		if set == nil {
			return nil, errors.Wrapf(ErrUndefinedCodeSet, "code set %d", id)
		}
		return set, nil

	case id >= FirstPresetID && id < FirstPresetID+ztrhuff.NumPresets:
		index := int(id - FirstPresetID)
		if r.presets[index] == nil {
			set, err := ztrhuff.BuildPresetTableSet(index, r.opts...)
			if err != nil {
				return nil, errors.Wrapf(err, "code set %d", id)
			}
			r.presets[index] = set
		}
		return r.presets[index], nil

	default:
		return nil, errors.Wrapf(ztrhuff.ErrInvalidHeader, "code set %d is reserved", id)
	}
}

// Decompress decodes a Huffman-coded chunk payload, preamble included.
func (r *Registry) Decompress(chunk []byte) ([]byte, error) {
	if len(chunk) < ztrhuff.PreambleSize {
		return nil, errors.Wrapf(ztrhuff.ErrTruncatedInput, "chunk payload of %d bytes", len(chunk))
	}
	if chunk[0] != FormatHuffman {
		return nil, errors.Wrapf(ztrhuff.ErrInvalidHeader, "format byte %#02x is not Huffman", chunk[0])
	}

	set, err := r.Lookup(chunk[1])
	if err != nil {
		return nil, err
	}

	out, err := ztrhuff.Decompress(set, chunk, r.opts...)
	if err != nil {
		return nil, errors.Wrapf(err, "code set %d", chunk[1])
	}
	return out, nil
}

// Close releases every table set of the Registry.  Calls after the first
// are no-ops.
func (r *Registry) Close() error {
	if r.closed {
		return nil
	}
	for i := range r.user {
		if r.user[i].set != nil {
			r.user[i].set.Release()
		}
		r.user[i] = userSlot{}
	}
	for i, set := range r.presets {
		if set != nil {
			set.Release()
		}
		r.presets[i] = nil
	}
	r.closed = true
	return nil
}
