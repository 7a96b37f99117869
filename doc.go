// Package ztrhuff decodes the canonical Huffman payloads found in ZTR trace
// chunks (base calls, quality values, signal samples).
//
// A chunk payload is decoded with a TableSet: one or more decode tables that
// are used round-robin, one per output symbol.  A TableSet comes either from
// a code set header (BuildDynamicTableSet), whose per-table code lengths are
// stored the way DEFLATE stores them, or from one of three built-in presets
// (BuildPresetTableSet).  Decompress then turns the payload into bytes, and
// Release frees the tables once the caller is done with them.
//
// Only decoding is implemented.
//
// References:
//
//	<https://www.rfc-editor.org/rfc/rfc1951.html>, Sections 3.2.2 and 3.2.7
//
//	<https://en.wikipedia.org/wiki/Canonical_Huffman_code>
//
//	<https://staden.sourceforge.net/ztr.html>
package ztrhuff
