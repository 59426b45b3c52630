package bsonjson

import (
	"context"
	"io"
)

// StreamOptions configures a StreamController.
type StreamOptions struct {
	// ChunkSize is the size of a freshly allocated chunk buffer, used when
	// FixedBuffer is nil. Zero means defaultStreamBufferSize.
	ChunkSize int

	// FixedBuffer, if non-empty, is the fixed-size chunk buffer the
	// controller writes into between pauses, instead of allocating one.
	FixedBuffer []byte
}

const defaultStreamBufferSize = 32 * 1024

// streamMsg is what the producer goroutine hands back to Next: either n
// bytes of fresh output in the shared buffer, or the final result (err is
// io.EOF on a clean finish, or the transcoding failure otherwise).
type streamMsg struct {
	n   int
	err error
}

// pauseSink is the outSink a StreamController's producer goroutine writes
// into. Unlike growSink it never reallocates: once its fixed buffer fills,
// Write blocks until the consumer has drained the chunk via Next.
type pauseSink struct {
	buf    []byte
	pos    int
	msgs   chan streamMsg
	resume chan struct{}
	cancel chan struct{}
}

func (s *pauseSink) Write(p []byte) (int, error) {
	total := len(p)
	for len(p) > 0 {
		room := len(s.buf) - s.pos
		if room == 0 {
			if err := s.flush(); err != nil {
				return total - len(p), err
			}
			room = len(s.buf)
		}
		n := len(p)
		if n > room {
			n = room
		}
		copy(s.buf[s.pos:], p[:n])
		s.pos += n
		p = p[n:]
	}
	return total, nil
}

func (s *pauseSink) WriteByte(b byte) error {
	if s.pos >= len(s.buf) {
		if err := s.flush(); err != nil {
			return err
		}
	}
	s.buf[s.pos] = b
	s.pos++
	return nil
}

// flush hands the currently filled prefix of buf to the consumer and
// blocks until it signals the buffer has been drained and may be reused.
func (s *pauseSink) flush() error {
	select {
	case s.msgs <- streamMsg{n: s.pos}:
	case <-s.cancel:
		return errStreamCancelled
	}
	select {
	case <-s.resume:
		s.pos = 0
		return nil
	case <-s.cancel:
		return errStreamCancelled
	}
}

// finish delivers the producer's terminal result, tolerating a consumer
// that has already cancelled and stopped reading.
func (s *pauseSink) finish(err error) {
	select {
	case s.msgs <- streamMsg{n: s.pos, err: err}:
	case <-s.cancel:
	}
}

var errStreamCancelled = newError(ErrStreamCancelled, "consumer stopped reading")

// StreamController transcodes a document in the background, handing the
// caller one filled chunk at a time instead of materializing the whole
// JSON output at once. It replaces the reference engine's mutex and
// condition-variable handshake with a pair of unbuffered channels, one per
// direction, the idiomatic Go shape for a single producer handing data to
// a single consumer in lockstep.
//
// A StreamController is driven by repeated calls to Next and is not safe
// for concurrent use.
type StreamController struct {
	sink      *pauseSink
	started   bool
	finished  bool
	cancelled bool
}

// NewStreamController starts transcoding input in a background goroutine
// and returns a controller for reading it out in chunks via Next.
func NewStreamController(input []byte, isArray bool, opts StreamOptions) *StreamController {
	buf := opts.FixedBuffer
	if len(buf) == 0 {
		size := opts.ChunkSize
		if size <= 0 {
			size = defaultStreamBufferSize
		}
		buf = make([]byte, size)
	}
	sink := &pauseSink{
		buf:    buf,
		msgs:   make(chan streamMsg),
		resume: make(chan struct{}),
		cancel: make(chan struct{}),
	}
	sc := &StreamController{sink: sink}

	t := New(Options{})
	go func() {
		if len(input) < 5 {
			sink.finish(newError(ErrInputTooShort, "need at least 5 bytes, got %d", len(input)))
			return
		}
		t.reset(input, false)
		t.sink = sink
		err := t.transcodeDocument(isArray)
		if err == nil {
			err = io.EOF
		}
		sink.finish(err)
	}()
	return sc
}

// Next blocks until another chunk of JSON output is ready, the transcode
// finishes, or ctx is done. The returned slice aliases the controller's
// internal buffer and is only valid until the next call to Next.
//
// On successful completion Next returns the final chunk with a nil error
// if it holds any bytes, and the following call returns io.EOF; when no
// bytes remain, that same call returns io.EOF directly.
func (sc *StreamController) Next(ctx context.Context) ([]byte, error) {
	if sc.finished {
		return nil, io.EOF
	}
	if err := ctx.Err(); err != nil {
		sc.cancelOnce()
		return nil, err
	}
	if sc.started {
		select {
		case sc.sink.resume <- struct{}{}:
		case <-ctx.Done():
			sc.cancelOnce()
			return nil, ctx.Err()
		}
	}
	sc.started = true

	select {
	case msg := <-sc.sink.msgs:
		if msg.err != nil {
			sc.finished = true
			if msg.err == io.EOF {
				if msg.n > 0 {
					return sc.sink.buf[:msg.n], nil
				}
				return nil, io.EOF
			}
			return nil, msg.err
		}
		return sc.sink.buf[:msg.n], nil
	case <-ctx.Done():
		sc.cancelOnce()
		return nil, ctx.Err()
	}
}

func (sc *StreamController) cancelOnce() {
	if sc.cancelled {
		return
	}
	sc.cancelled = true
	sc.finished = true
	close(sc.sink.cancel)
}
