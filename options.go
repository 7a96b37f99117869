package ztrhuff

// DefaultMaxTables is the default limit on the number of tables in one
// TableSet.
const DefaultMaxTables = 1024

// Option configures table set construction and decompression.
type Option func(*options)

type options struct {
	tracers   []Tracer
	maxOutput int
	maxTables int
}

func (o *options) reset() {
	*o = options{maxTables: DefaultMaxTables}
}

func (o *options) apply(opts []Option) {
	for _, opt := range opts {
		opt(o)
	}
}

func makeOptions(opts []Option) options {
	var o options
	o.reset()
	o.apply(opts)
	return o
}

// WithTracer adds a Tracer.  Passed to a table set constructor, it receives
// the TableSetBuiltEvent and, later, the TableSetReleasedEvent of that set.
// Passed to Decompress, it receives the DecompressEvent of that call.
func WithTracer(tr Tracer) Option {
	return func(o *options) {
		if tr != nil {
			o.tracers = append(o.tracers, tr)
		}
	}
}

// WithMaxOutput limits the size of the buffer returned by Decompress.  The
// caller usually derives it from the chunk's declared length.  A value <= 0
// means no limit beyond the one implied by the input size.
func WithMaxOutput(n int) Option {
	return func(o *options) {
		o.maxOutput = n
	}
}

// WithMaxTables limits how many tables a dynamic header may declare.
func WithMaxTables(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxTables = n
		}
	}
}
