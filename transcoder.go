package bsonjson

import (
	"io"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Implementation identifies the transcoding strategy this build uses, for
// parity with the reference engine's ISA-detection output. This package is
// always the scalar, non-SIMD implementation.
const Implementation = "Baseline"

// DefaultMaxDepth bounds document/array nesting when Options.MaxDepth is
// zero. It matches the ceiling the reference engine documents for its own
// recursive descent.
const DefaultMaxDepth = 200

// outSink is the destination a Transcoder writes rendered JSON bytes to.
// growSink backs Transcode's grow-on-demand mode, pauseSink backs
// StreamController's chunked mode, and noopSink backs GetMissingIDs, which
// performs the same walk but discards everything it would otherwise write.
type outSink interface {
	io.Writer
	io.ByteWriter
}

type growSink struct{ buf []byte }

func (s *growSink) Write(p []byte) (int, error) { s.buf = append(s.buf, p...); return len(p), nil }
func (s *growSink) WriteByte(b byte) error      { s.buf = append(s.buf, b); return nil }

type noopSink struct{}

func (noopSink) Write(p []byte) (int, error) { return len(p), nil }
func (noopSink) WriteByte(byte) error        { return nil }

// Options configures a Transcoder.
type Options struct {
	// ChunkSize is the initial capacity Transcode reserves for its output
	// buffer. Zero means 2.5x the input length, the ratio the reference
	// engine's own benchmarks settled on for typical MongoDB documents.
	ChunkSize int

	// PopulateInfo, if non-nil, is consulted for every identifier
	// encountered at a path registered with it, substituting a
	// pre-rendered JSON fragment in place of the raw identifier.
	PopulateInfo *PopulateIndex

	// MaxDepth bounds document/array nesting. Zero means DefaultMaxDepth.
	MaxDepth int
}

// Transcoder renders a single BSON document or array as JSON. A Transcoder
// is not safe for concurrent use, but a fresh one is cheap: New does no
// allocation beyond the struct itself.
type Transcoder struct {
	opts Options

	in  []byte
	pos int

	sink outSink
	path pathBuilder

	depth    int
	maxDepth int

	scanOnly bool

	haveDocID bool
	docID     primitive.ObjectID
}

// New returns a Transcoder configured with opts.
func New(opts Options) *Transcoder {
	maxDepth := opts.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &Transcoder{opts: opts, maxDepth: maxDepth}
}

// reset prepares t to walk a fresh document.
func (t *Transcoder) reset(input []byte, scanOnly bool) {
	t.in = input
	t.pos = 0
	t.path.truncate(0)
	t.depth = 0
	t.scanOnly = scanOnly
	t.haveDocID = false
	t.docID = primitive.ObjectID{}
}

// Transcode renders input, a single complete BSON document (isArray false)
// or array (isArray true), as JSON and returns the result. The returned
// slice is owned by the caller; t may be reused for another call.
func (t *Transcoder) Transcode(input []byte, isArray bool) ([]byte, error) {
	if len(input) < 5 {
		return nil, newError(ErrInputTooShort, "need at least 5 bytes, got %d", len(input))
	}
	t.reset(input, false)

	initialCap := t.opts.ChunkSize
	if initialCap <= 0 {
		initialCap = len(input) * 5 / 2
	}
	gs := &growSink{buf: make([]byte, 0, initialCap)}
	t.sink = gs

	if err := t.transcodeDocument(isArray); err != nil {
		return nil, err
	}
	return gs.buf, nil
}

// GetMissingIDs walks input exactly as Transcode would, without producing
// any output, and records in t.opts.PopulateInfo every identifier found at a
// joined path that has no registered fragment yet. Call PopulateIndex's
// own GetMissingIDs afterward to collect them.
func (t *Transcoder) GetMissingIDs(input []byte, isArray bool) error {
	if len(input) < 5 {
		return newError(ErrInputTooShort, "need at least 5 bytes, got %d", len(input))
	}
	t.reset(input, true)
	t.sink = noopSink{}
	return t.transcodeDocument(isArray)
}

// Transcode renders a single BSON document (isArray false) or array
// (isArray true) as JSON using default options.
func Transcode(input []byte, isArray bool) ([]byte, error) {
	return New(Options{}).Transcode(input, isArray)
}

// TranscodeWithPopulate renders input as JSON, substituting pre-rendered
// fragments from populate at any path registered with it.
func TranscodeWithPopulate(input []byte, isArray bool, populate *PopulateIndex) ([]byte, error) {
	return New(Options{PopulateInfo: populate}).Transcode(input, isArray)
}
