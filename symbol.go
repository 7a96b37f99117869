package ztrhuff

// Symbol represents a symbol in an arbitrary alphabet.  Negative symbols are
// not valid.
type Symbol int32

// InvalidSymbol is returned by some functions to clearly indicate that no
// symbol is being returned.
const InvalidSymbol = Symbol(-1)

// EndOfBlock is the sentinel symbol of the literal alphabet.  It has a code
// but no byte value; decoding it ends the stream.
const EndOfBlock = Symbol(256)

// Alphabet sizes.
const (
	// NumLiteralSymbols is the size of the literal alphabet: the 256 byte
	// values plus EndOfBlock.
	NumLiteralSymbols = 257

	// NumMetaSymbols is the size of the code-length alphabet used by
	// dynamic headers.
	NumMetaSymbols = 19
)
