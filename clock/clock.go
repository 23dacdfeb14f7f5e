package clock

import (
	"context"
	"encoding/binary"
	"io"
	"time"

	"github.com/wippyai/wireform"
	"github.com/wippyai/wireform/errors"
)

// WireLen is the fixed wire size shared by every codec in this package:
// 8 big-endian seconds bytes followed by 4 nanosecond bytes.
const WireLen = 12

// Sentinel values for the closed error set of time codecs.
var (
	ErrBufferTooSmall = &errors.Error{Op: errors.OpEncode, Kind: errors.KindBufferTooSmall}
	ErrNotEnoughBytes = &errors.Error{Op: errors.OpDecode, Kind: errors.KindNotEnoughBytes}
)

const (
	durationType = "clock.Duration"
	timeType     = "clock.Time"
	instantType  = "clock.Instant"
)

// putPair writes a (seconds, nanoseconds) pair in the shared layout.
func putPair(dst []byte, sec uint64, nsec uint32) {
	binary.BigEndian.PutUint64(dst, sec)
	binary.BigEndian.PutUint32(dst[8:], nsec)
}

// pair reads a (seconds, nanoseconds) pair in the shared layout.
func pair(src []byte) (uint64, uint32) {
	return binary.BigEndian.Uint64(src), binary.BigEndian.Uint32(src[8:])
}

// Duration transforms time.Duration values. Negative durations travel as
// two's-complement seconds with a same-sign nanosecond remainder, so every
// representable value round-trips exactly.
type Duration struct{}

var _ wireform.StreamCodec[time.Duration] = Duration{}

func (Duration) EncodedLen(time.Duration) int { return WireLen }

func (Duration) Encode(v time.Duration, dst []byte) (int, error) {
	if len(dst) < WireLen {
		return 0, errors.BufferTooSmall(durationType, WireLen, len(dst))
	}
	putPair(dst, uint64(v/time.Second), uint32(v%time.Second))
	return WireLen, nil
}

func (Duration) Decode(src []byte) (int, time.Duration, error) {
	if len(src) < WireLen {
		return 0, 0, errors.NotEnoughBytes(durationType, WireLen, len(src))
	}
	sec, nsec := pair(src)
	return WireLen, time.Duration(sec)*time.Second + time.Duration(int32(nsec)), nil
}

func (c Duration) EncodeTo(v time.Duration, w io.Writer) (int, error) {
	return wireform.Write(c, v, w)
}

func (c Duration) EncodeToContext(ctx context.Context, v time.Duration, w io.Writer) (int, error) {
	return wireform.WriteContext(ctx, c, v, w)
}

func (c Duration) DecodeFrom(r io.Reader) (int, time.Duration, error) {
	return wireform.ReadFixed(durationType, c, WireLen, r)
}

func (c Duration) DecodeFromContext(ctx context.Context, r io.Reader) (int, time.Duration, error) {
	return wireform.ReadFixedContext(ctx, durationType, c, WireLen, r)
}

// Time transforms wall-clock timestamps as seconds and nanoseconds since
// the Unix epoch. The decoded value carries no location or monotonic
// reading; compare with time.Time.Equal.
type Time struct{}

var _ wireform.StreamCodec[time.Time] = Time{}

func (Time) EncodedLen(time.Time) int { return WireLen }

func (Time) Encode(v time.Time, dst []byte) (int, error) {
	if len(dst) < WireLen {
		return 0, errors.BufferTooSmall(timeType, WireLen, len(dst))
	}
	putPair(dst, uint64(v.Unix()), uint32(v.Nanosecond()))
	return WireLen, nil
}

func (Time) Decode(src []byte) (int, time.Time, error) {
	if len(src) < WireLen {
		return 0, time.Time{}, errors.NotEnoughBytes(timeType, WireLen, len(src))
	}
	sec, nsec := pair(src)
	return WireLen, time.Unix(int64(sec), int64(nsec)), nil
}

func (c Time) EncodeTo(v time.Time, w io.Writer) (int, error) {
	return wireform.Write(c, v, w)
}

func (c Time) EncodeToContext(ctx context.Context, v time.Time, w io.Writer) (int, error) {
	return wireform.WriteContext(ctx, c, v, w)
}

func (c Time) DecodeFrom(r io.Reader) (int, time.Time, error) {
	return wireform.ReadFixed(timeType, c, WireLen, r)
}

func (c Time) DecodeFromContext(ctx context.Context, r io.Reader) (int, time.Time, error) {
	return wireform.ReadFixedContext(ctx, timeType, c, WireLen, r)
}
