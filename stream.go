package wireform

import (
	"context"
	"encoding/binary"
	"io"

	"github.com/wippyai/wireform/errors"
)

const (
	// MaxInline is the largest wire size the stream adapters will stage in a
	// fixed local buffer. Larger values use a heap buffer of exactly the
	// encoded size. Both paths produce byte-identical output.
	MaxInline = 256

	// FrameHeaderLen is the size of the big-endian length prefix used by
	// length-delimited wire values.
	FrameHeaderLen = 4
)

// stage returns a buffer of exactly n bytes, backed by local when the value
// fits under the inline threshold.
func stage(local *[MaxInline]byte, n int) []byte {
	if n <= MaxInline {
		return local[:n]
	}
	debugf("staging %d bytes on the heap", n)
	return make([]byte, n)
}

// Write encodes v and writes its full wire form to w in a single Write call.
// It returns the number of bytes written.
func Write[T any](c Codec[T], v T, w io.Writer) (int, error) {
	var local [MaxInline]byte
	buf := stage(&local, c.EncodedLen(v))
	if _, err := c.Encode(v, buf); err != nil {
		return 0, err
	}
	return w.Write(buf)
}

// WriteContext is Write with cancellation. The single underlying write is
// the only suspension point; cancellation abandons it mid-flight.
func WriteContext[T any](ctx context.Context, c Codec[T], v T, w io.Writer) (int, error) {
	var local [MaxInline]byte
	buf := stage(&local, c.EncodedLen(v))
	if _, err := c.Encode(v, buf); err != nil {
		return 0, err
	}
	return writeContext(ctx, w, buf)
}

// ReadFramed reads a 4-byte big-endian length header from r, then exactly
// that many payload bytes, and decodes the assembled frame with c. It
// returns the number of stream bytes consumed. Decode failures are wrapped
// as invalid_data errors so that the stream layer reports I/O and payload
// problems through one channel; name identifies the wire type in them.
func ReadFramed[T any](name string, c Codec[T], r io.Reader) (int, T, error) {
	var zero T
	var hdr [FrameHeaderLen]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return 0, zero, err
	}
	total := FrameHeaderLen + int(binary.BigEndian.Uint32(hdr[:]))

	var local [MaxInline]byte
	buf := stage(&local, total)
	copy(buf, hdr[:])
	if _, err := io.ReadFull(r, buf[FrameHeaderLen:]); err != nil {
		return 0, zero, err
	}

	_, v, err := c.Decode(buf)
	if err != nil {
		return 0, zero, errors.InvalidData(name, err)
	}
	return total, v, nil
}

// ReadFramedContext is ReadFramed with cancellation.
func ReadFramedContext[T any](ctx context.Context, name string, c Codec[T], r io.Reader) (int, T, error) {
	var zero T
	var hdr [FrameHeaderLen]byte
	if err := ReadFullContext(ctx, r, hdr[:]); err != nil {
		return 0, zero, err
	}
	total := FrameHeaderLen + int(binary.BigEndian.Uint32(hdr[:]))

	var local [MaxInline]byte
	buf := stage(&local, total)
	copy(buf, hdr[:])
	if err := ReadFullContext(ctx, r, buf[FrameHeaderLen:]); err != nil {
		return 0, zero, err
	}

	_, v, err := c.Decode(buf)
	if err != nil {
		return 0, zero, errors.InvalidData(name, err)
	}
	return total, v, nil
}

// ReadFixed reads exactly size bytes from r and decodes them with c. It
// serves codecs whose wire form has a fixed, known length.
func ReadFixed[T any](name string, c Codec[T], size int, r io.Reader) (int, T, error) {
	var zero T
	var local [MaxInline]byte
	buf := stage(&local, size)
	if _, err := io.ReadFull(r, buf); err != nil {
		return 0, zero, err
	}
	_, v, err := c.Decode(buf)
	if err != nil {
		return 0, zero, errors.InvalidData(name, err)
	}
	return size, v, nil
}

// ReadFixedContext is ReadFixed with cancellation.
func ReadFixedContext[T any](ctx context.Context, name string, c Codec[T], size int, r io.Reader) (int, T, error) {
	var zero T
	var local [MaxInline]byte
	buf := stage(&local, size)
	if err := ReadFullContext(ctx, r, buf); err != nil {
		return 0, zero, err
	}
	_, v, err := c.Decode(buf)
	if err != nil {
		return 0, zero, errors.InvalidData(name, err)
	}
	return size, v, nil
}

type ioResult struct {
	err error
	n   int
}

// writeContext issues a single Write on w, abandoning it if ctx is canceled
// first. An abandoned write has an undefined partial outcome; the goroutine
// driving it finishes whenever the underlying writer returns.
func writeContext(ctx context.Context, w io.Writer, buf []byte) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	done := make(chan ioResult, 1)
	go func() {
		n, err := w.Write(buf)
		done <- ioResult{n: n, err: err}
	}()
	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	case res := <-done:
		return res.n, res.err
	}
}

// ReadFullContext fills buf from r, abandoning the read if ctx is canceled
// first. Codecs with multi-step stream decodes build on it.
func ReadFullContext(ctx context.Context, r io.Reader, buf []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(buf) == 0 {
		return nil
	}
	done := make(chan ioResult, 1)
	go func() {
		_, err := io.ReadFull(r, buf)
		done <- ioResult{err: err}
	}()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case res := <-done:
		return res.err
	}
}
