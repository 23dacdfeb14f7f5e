package wireform

import (
	"context"
	"io"
)

// Codec converts values of type T between their in-memory and wire forms.
//
// Implementations are stateless values; all buffers passed in are borrowed
// for the duration of the call and never retained.
type Codec[T any] interface {
	// EncodedLen returns the exact number of bytes Encode will write for v.
	// Encode is guaranteed to succeed given a destination of at least this
	// size.
	EncodedLen(v T) int

	// Encode writes the wire form of v into dst and returns the number of
	// bytes written. If dst is shorter than EncodedLen(v) it fails with a
	// buffer_too_small error and writes nothing.
	Encode(v T, dst []byte) (int, error)

	// Decode reads one value from the head of src and returns the number of
	// bytes consumed along with the value. It fails with a decode-side error
	// when src is truncated or malformed.
	Decode(src []byte) (int, T, error)
}

// StreamCodec extends Codec with stream transports. The stream operations
// are adapters over the slice-based algorithm: they size a buffer, perform
// the slice transform, and issue a single read or write on the underlying
// stream.
type StreamCodec[T any] interface {
	Codec[T]

	// EncodeTo writes the wire form of v to w in a single Write call and
	// returns the number of bytes written.
	EncodeTo(v T, w io.Writer) (int, error)

	// EncodeToContext is EncodeTo with cancellation. The only suspension
	// point is the single underlying write; cancellation abandons the
	// in-flight write with an undefined partial outcome. Callers requiring
	// exactly-once delivery must not cancel mid-write.
	EncodeToContext(ctx context.Context, v T, w io.Writer) (int, error)

	// DecodeFrom reads one value from r and returns the number of stream
	// bytes consumed along with the value.
	DecodeFrom(r io.Reader) (int, T, error)

	// DecodeFromContext is DecodeFrom with cancellation; suspension occurs
	// only at the underlying reads.
	DecodeFromContext(ctx context.Context, r io.Reader) (int, T, error)
}
