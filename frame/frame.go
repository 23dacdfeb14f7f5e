package frame

import (
	"context"
	"encoding/binary"
	"io"
	"math"
	"unicode/utf8"

	"github.com/wippyai/wireform"
	"github.com/wippyai/wireform/errors"
)

// Sentinel values for the closed error set of framed payloads. Match them
// with errors.Is; returned errors carry additional detail.
var (
	ErrBufferTooSmall = &errors.Error{Op: errors.OpEncode, Kind: errors.KindBufferTooSmall}
	ErrNotEnoughBytes = &errors.Error{Op: errors.OpDecode, Kind: errors.KindNotEnoughBytes}
	ErrInvalidUTF8    = &errors.Error{Op: errors.OpDecode, Kind: errors.KindInvalidUTF8}
)

const (
	bytesType = "frame.Bytes"
	textType  = "frame.Text"
)

// Bytes transforms raw byte payloads using the canonical length-delimited
// frame: a 4-byte big-endian length followed by exactly that many payload
// bytes.
type Bytes struct{}

var _ wireform.StreamCodec[[]byte] = Bytes{}

// EncodedLen returns the frame size for v: header plus payload.
func (Bytes) EncodedLen(v []byte) int {
	return wireform.FrameHeaderLen + len(v)
}

// Encode writes the frame into dst.
func (Bytes) Encode(v []byte, dst []byte) (int, error) {
	total, err := checkFrame(bytesType, len(v), len(dst))
	if err != nil {
		return 0, err
	}
	binary.BigEndian.PutUint32(dst, uint32(len(v)))
	copy(dst[wireform.FrameHeaderLen:], v)
	return total, nil
}

// Decode reads one frame from the head of src, returning a copy of the
// payload.
func (Bytes) Decode(src []byte) (int, []byte, error) {
	total, payload, err := splitFrame(bytesType, src)
	if err != nil {
		return 0, nil, err
	}
	out := make([]byte, len(payload))
	copy(out, payload)
	return total, out, nil
}

func (c Bytes) EncodeTo(v []byte, w io.Writer) (int, error) {
	return wireform.Write(c, v, w)
}

func (c Bytes) EncodeToContext(ctx context.Context, v []byte, w io.Writer) (int, error) {
	return wireform.WriteContext(ctx, c, v, w)
}

func (c Bytes) DecodeFrom(r io.Reader) (int, []byte, error) {
	return wireform.ReadFramed(bytesType, c, r)
}

func (c Bytes) DecodeFromContext(ctx context.Context, r io.Reader) (int, []byte, error) {
	return wireform.ReadFramedContext(ctx, bytesType, c, r)
}

// Text transforms UTF-8 strings using the same frame as Bytes, validating
// the payload after the frame is extracted. Invalid content is reported as
// an invalid_utf8 error, distinct from truncation, so callers can tell the
// two failure classes apart.
type Text struct{}

var _ wireform.StreamCodec[string] = Text{}

// EncodedLen returns the frame size for v: header plus payload.
func (Text) EncodedLen(v string) int {
	return wireform.FrameHeaderLen + len(v)
}

// Encode writes the frame into dst.
func (Text) Encode(v string, dst []byte) (int, error) {
	total, err := checkFrame(textType, len(v), len(dst))
	if err != nil {
		return 0, err
	}
	binary.BigEndian.PutUint32(dst, uint32(len(v)))
	copy(dst[wireform.FrameHeaderLen:], v)
	return total, nil
}

// Decode reads one frame from the head of src and validates the payload as
// UTF-8.
func (Text) Decode(src []byte) (int, string, error) {
	total, payload, err := splitFrame(textType, src)
	if err != nil {
		return 0, "", err
	}
	if off := invalidUTF8Offset(payload); off >= 0 {
		return 0, "", errors.InvalidUTF8(textType, off)
	}
	return total, string(payload), nil
}

func (c Text) EncodeTo(v string, w io.Writer) (int, error) {
	return wireform.Write(c, v, w)
}

func (c Text) EncodeToContext(ctx context.Context, v string, w io.Writer) (int, error) {
	return wireform.WriteContext(ctx, c, v, w)
}

func (c Text) DecodeFrom(r io.Reader) (int, string, error) {
	return wireform.ReadFramed(textType, c, r)
}

func (c Text) DecodeFromContext(ctx context.Context, r io.Reader) (int, string, error) {
	return wireform.ReadFramedContext(ctx, textType, c, r)
}

// checkFrame validates encode preconditions and returns the total frame
// size. The length field is bounded by uint32.
func checkFrame(typ string, payloadLen, dstLen int) (int, error) {
	if uint64(payloadLen) > math.MaxUint32 {
		return 0, errors.New(errors.OpEncode, errors.KindOverflow).
			Type(typ).
			Detail("payload of %d bytes exceeds the 32-bit frame length", payloadLen).
			Build()
	}
	total := wireform.FrameHeaderLen + payloadLen
	if dstLen < total {
		return 0, errors.BufferTooSmall(typ, total, dstLen)
	}
	return total, nil
}

// splitFrame reads the length header and returns the payload view within
// src along with the total frame size.
func splitFrame(typ string, src []byte) (int, []byte, error) {
	if len(src) < wireform.FrameHeaderLen {
		return 0, nil, errors.NotEnoughBytes(typ, wireform.FrameHeaderLen, len(src))
	}
	n := int(binary.BigEndian.Uint32(src))
	total := wireform.FrameHeaderLen + n
	if len(src) < total {
		return 0, nil, errors.NotEnoughBytes(typ, total, len(src))
	}
	return total, src[wireform.FrameHeaderLen:total], nil
}

// invalidUTF8Offset returns the byte offset of the first invalid UTF-8
// sequence in b, or -1 when b is valid.
func invalidUTF8Offset(b []byte) int {
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size <= 1 {
			return i
		}
		i += size
	}
	return -1
}
