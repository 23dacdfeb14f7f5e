// Package wireform provides a binary transform core: a uniform contract for
// converting in-memory values into compact byte representations and back,
// with parallel support for caller-provided buffers, blocking byte streams,
// and context-aware byte streams.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	wireform/        Root package with the Codec contract and stream adapters
//	├── frame/       Length-delimited byte and UTF-8 text framing
//	├── numeric/     Big-endian fixed-width integer codecs (8..128 bit)
//	├── varint/      Unsigned LEB128 variable-length integer codec
//	├── netaddr/     Tagged and fixed-family network address codecs
//	├── clock/       Duration, wall-clock and monotonic-instant codecs
//	└── errors/      Structured error types shared by every codec
//
// # The Contract
//
// Every concrete codec implements Codec[T]: an exact EncodedLen, an atomic
// Encode into a caller-supplied buffer, and a Decode that reports how many
// bytes it consumed. StreamCodec[T] adds the four stream operations, which
// are thin adapters over the same slice-based algorithm: size a buffer
// (a fixed local array for frames up to MaxInline bytes, an exact-size heap
// buffer above that), then issue a single read or write.
//
// # Quick Start
//
// Encode a framed payload into a buffer:
//
//	c := frame.Bytes{}
//	buf := make([]byte, c.EncodedLen(payload))
//	n, err := c.Encode(payload, buf)
//
// Stream the same payload over a connection:
//
//	n, err := c.EncodeTo(payload, conn)
//	m, decoded, err := c.DecodeFrom(conn)
//
// The context variants suspend only at the single underlying read or write;
// cancellation abandons the in-flight call with an undefined partial result:
//
//	n, err := c.EncodeToContext(ctx, payload, conn)
//
// # Error Model
//
// Every failure is one of two classes: encode-side (the destination cannot
// hold the wire form, detected before any byte is written) or decode-side
// (truncated or malformed source). See the errors package. The core never
// retries; callers own that decision.
package wireform
