package numeric

import (
	"context"
	"encoding/binary"
	"io"

	"golang.org/x/exp/constraints"

	"github.com/wippyai/wireform"
	"github.com/wippyai/wireform/errors"
)

// Codec transforms a fixed-width machine integer to and from big-endian
// wire form. The wire length equals the integer's byte width exactly; no
// tag, no padding. Use the package-level instances rather than constructing
// values directly.
type Codec[T constraints.Integer] struct {
	name  string
	width int
}

// The supported widths, signed and unsigned. 8-bit values transform as the
// identity byte, with two's-complement reinterpretation for Int8.
var (
	Uint8  = Codec[uint8]{name: "numeric.Uint8", width: 1}
	Uint16 = Codec[uint16]{name: "numeric.Uint16", width: 2}
	Uint32 = Codec[uint32]{name: "numeric.Uint32", width: 4}
	Uint64 = Codec[uint64]{name: "numeric.Uint64", width: 8}
	Int8   = Codec[int8]{name: "numeric.Int8", width: 1}
	Int16  = Codec[int16]{name: "numeric.Int16", width: 2}
	Int32  = Codec[int32]{name: "numeric.Int32", width: 4}
	Int64  = Codec[int64]{name: "numeric.Int64", width: 8}
)

var _ wireform.StreamCodec[uint64] = Uint64

// Width returns the wire size in bytes.
func (c Codec[T]) Width() int { return c.width }

// EncodedLen returns the wire size, independent of the value.
func (c Codec[T]) EncodedLen(T) int { return c.width }

// Encode writes v into dst as big-endian bytes.
func (c Codec[T]) Encode(v T, dst []byte) (int, error) {
	if len(dst) < c.width {
		return 0, errors.BufferTooSmall(c.name, c.width, len(dst))
	}
	u := uint64(v)
	for i := c.width - 1; i >= 0; i-- {
		dst[i] = byte(u)
		u >>= 8
	}
	return c.width, nil
}

// Decode reads a big-endian value from the head of src. Narrow widths keep
// their sign through the truncating conversion.
func (c Codec[T]) Decode(src []byte) (int, T, error) {
	if len(src) < c.width {
		return 0, 0, errors.NotEnoughBytes(c.name, c.width, len(src))
	}
	var u uint64
	for _, b := range src[:c.width] {
		u = u<<8 | uint64(b)
	}
	return c.width, T(u), nil
}

func (c Codec[T]) EncodeTo(v T, w io.Writer) (int, error) {
	return wireform.Write(c, v, w)
}

func (c Codec[T]) EncodeToContext(ctx context.Context, v T, w io.Writer) (int, error) {
	return wireform.WriteContext(ctx, c, v, w)
}

func (c Codec[T]) DecodeFrom(r io.Reader) (int, T, error) {
	return wireform.ReadFixed(c.name, c, c.width, r)
}

func (c Codec[T]) DecodeFromContext(ctx context.Context, r io.Reader) (int, T, error) {
	return wireform.ReadFixedContext(ctx, c.name, c, c.width, r)
}

// U128 is an unsigned 128-bit integer held as two 64-bit halves.
type U128 struct {
	Hi uint64
	Lo uint64
}

// I128 is a signed two's-complement 128-bit integer; Hi carries the sign.
type I128 struct {
	Hi int64
	Lo uint64
}

const u128Width = 16

// Uint128 transforms U128 values as 16 big-endian bytes.
var Uint128 U128Codec

// Int128 transforms I128 values as 16 big-endian bytes.
var Int128 I128Codec

// U128Codec implements the contract for U128.
type U128Codec struct{}

var _ wireform.StreamCodec[U128] = Uint128

const uint128Type = "numeric.Uint128"

func (U128Codec) EncodedLen(U128) int { return u128Width }

func (U128Codec) Encode(v U128, dst []byte) (int, error) {
	if len(dst) < u128Width {
		return 0, errors.BufferTooSmall(uint128Type, u128Width, len(dst))
	}
	binary.BigEndian.PutUint64(dst, v.Hi)
	binary.BigEndian.PutUint64(dst[8:], v.Lo)
	return u128Width, nil
}

func (U128Codec) Decode(src []byte) (int, U128, error) {
	if len(src) < u128Width {
		return 0, U128{}, errors.NotEnoughBytes(uint128Type, u128Width, len(src))
	}
	return u128Width, U128{
		Hi: binary.BigEndian.Uint64(src),
		Lo: binary.BigEndian.Uint64(src[8:]),
	}, nil
}

func (c U128Codec) EncodeTo(v U128, w io.Writer) (int, error) {
	return wireform.Write(c, v, w)
}

func (c U128Codec) EncodeToContext(ctx context.Context, v U128, w io.Writer) (int, error) {
	return wireform.WriteContext(ctx, c, v, w)
}

func (c U128Codec) DecodeFrom(r io.Reader) (int, U128, error) {
	return wireform.ReadFixed(uint128Type, c, u128Width, r)
}

func (c U128Codec) DecodeFromContext(ctx context.Context, r io.Reader) (int, U128, error) {
	return wireform.ReadFixedContext(ctx, uint128Type, c, u128Width, r)
}

// I128Codec implements the contract for I128.
type I128Codec struct{}

var _ wireform.StreamCodec[I128] = Int128

const int128Type = "numeric.Int128"

func (I128Codec) EncodedLen(I128) int { return u128Width }

func (I128Codec) Encode(v I128, dst []byte) (int, error) {
	if len(dst) < u128Width {
		return 0, errors.BufferTooSmall(int128Type, u128Width, len(dst))
	}
	binary.BigEndian.PutUint64(dst, uint64(v.Hi))
	binary.BigEndian.PutUint64(dst[8:], v.Lo)
	return u128Width, nil
}

func (I128Codec) Decode(src []byte) (int, I128, error) {
	if len(src) < u128Width {
		return 0, I128{}, errors.NotEnoughBytes(int128Type, u128Width, len(src))
	}
	return u128Width, I128{
		Hi: int64(binary.BigEndian.Uint64(src)),
		Lo: binary.BigEndian.Uint64(src[8:]),
	}, nil
}

func (c I128Codec) EncodeTo(v I128, w io.Writer) (int, error) {
	return wireform.Write(c, v, w)
}

func (c I128Codec) EncodeToContext(ctx context.Context, v I128, w io.Writer) (int, error) {
	return wireform.WriteContext(ctx, c, v, w)
}

func (c I128Codec) DecodeFrom(r io.Reader) (int, I128, error) {
	return wireform.ReadFixed(int128Type, c, u128Width, r)
}

func (c I128Codec) DecodeFromContext(ctx context.Context, r io.Reader) (int, I128, error) {
	return wireform.ReadFixedContext(ctx, int128Type, c, u128Width, r)
}
