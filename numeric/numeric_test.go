package numeric_test

import (
	"bytes"
	"errors"
	"math"
	"testing"

	wireerrors "github.com/wippyai/wireform/errors"
	"github.com/wippyai/wireform/numeric"
)

func TestUint16WireLayout(t *testing.T) {
	buf := make([]byte, 2)
	if _, err := numeric.Uint16.Encode(0x1234, buf); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !bytes.Equal(buf, []byte{0x12, 0x34}) {
		t.Errorf("wire form: got %x, want 1234", buf)
	}
}

func TestInt8Identity(t *testing.T) {
	buf := make([]byte, 1)
	if _, err := numeric.Int8.Encode(-1, buf); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if buf[0] != 0xff {
		t.Errorf("two's complement: got %x, want ff", buf[0])
	}
	_, v, err := numeric.Int8.Decode(buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if v != -1 {
		t.Errorf("round trip: got %d, want -1", v)
	}
}

func TestUnsignedRoundTrip(t *testing.T) {
	t.Run("uint8", func(t *testing.T) {
		roundTrip(t, numeric.Uint8, []uint8{0, 1, 0x7f, 0x80, math.MaxUint8})
	})
	t.Run("uint16", func(t *testing.T) {
		roundTrip(t, numeric.Uint16, []uint16{0, 1, 0x1234, math.MaxUint16})
	})
	t.Run("uint32", func(t *testing.T) {
		roundTrip(t, numeric.Uint32, []uint32{0, 1, 0xdeadbeef, math.MaxUint32})
	})
	t.Run("uint64", func(t *testing.T) {
		roundTrip(t, numeric.Uint64, []uint64{0, 1, 1 << 40, math.MaxUint64})
	})
}

func TestSignedRoundTrip(t *testing.T) {
	t.Run("int8", func(t *testing.T) {
		roundTrip(t, numeric.Int8, []int8{math.MinInt8, -1, 0, 1, math.MaxInt8})
	})
	t.Run("int16", func(t *testing.T) {
		roundTrip(t, numeric.Int16, []int16{math.MinInt16, -1, 0, 1, math.MaxInt16})
	})
	t.Run("int32", func(t *testing.T) {
		roundTrip(t, numeric.Int32, []int32{math.MinInt32, -1, 0, 1, math.MaxInt32})
	})
	t.Run("int64", func(t *testing.T) {
		roundTrip(t, numeric.Int64, []int64{math.MinInt64, -1, 0, 1, math.MaxInt64})
	})
}

func roundTrip[T comparable](t *testing.T, c interface {
	EncodedLen(T) int
	Encode(T, []byte) (int, error)
	Decode([]byte) (int, T, error)
}, values []T,
) {
	t.Helper()
	for _, v := range values {
		buf := make([]byte, c.EncodedLen(v))
		n, err := c.Encode(v, buf)
		if err != nil {
			t.Fatalf("Encode(%v): %v", v, err)
		}
		if n != len(buf) {
			t.Errorf("Encode(%v) wrote %d bytes, want %d", v, n, len(buf))
		}
		m, got, err := c.Decode(buf)
		if err != nil {
			t.Fatalf("Decode(%v): %v", v, err)
		}
		if got != v || m != n {
			t.Errorf("round trip %v: got %v (%d bytes)", v, got, m)
		}
	}
}

func TestEncodeBufferTooSmall(t *testing.T) {
	dst := make([]byte, 3)
	_, err := numeric.Uint32.Encode(1, dst)
	if err == nil {
		t.Fatal("expected error")
	}
	var werr *wireerrors.Error
	if !errors.As(err, &werr) || werr.Kind != wireerrors.KindBufferTooSmall {
		t.Errorf("expected buffer_too_small, got %v", err)
	}
	if !bytes.Equal(dst, []byte{0, 0, 0}) {
		t.Error("failed encode wrote into the destination")
	}
}

func TestDecodeNotEnoughBytes(t *testing.T) {
	_, _, err := numeric.Uint64.Decode([]byte{1, 2, 3})
	var werr *wireerrors.Error
	if !errors.As(err, &werr) || werr.Kind != wireerrors.KindNotEnoughBytes {
		t.Errorf("expected not_enough_bytes, got %v", err)
	}
}

func TestU128RoundTrip(t *testing.T) {
	values := []numeric.U128{
		{},
		{Hi: 0, Lo: 1},
		{Hi: 1, Lo: 0},
		{Hi: math.MaxUint64, Lo: math.MaxUint64},
		{Hi: 0x0102030405060708, Lo: 0x090a0b0c0d0e0f10},
	}

	c := numeric.Uint128
	for _, v := range values {
		buf := make([]byte, 16)
		if _, err := c.Encode(v, buf); err != nil {
			t.Fatalf("Encode(%v): %v", v, err)
		}
		_, got, err := c.Decode(buf)
		if err != nil {
			t.Fatalf("Decode(%v): %v", v, err)
		}
		if got != v {
			t.Errorf("round trip: got %v, want %v", got, v)
		}
	}
}

func TestU128WireLayout(t *testing.T) {
	v := numeric.U128{Hi: 0x0102030405060708, Lo: 0x090a0b0c0d0e0f10}
	buf := make([]byte, 16)
	if _, err := numeric.Uint128.Encode(v, buf); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	want := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}
	if !bytes.Equal(buf, want) {
		t.Errorf("wire form: got %x, want %x", buf, want)
	}
}

func TestI128RoundTrip(t *testing.T) {
	values := []numeric.I128{
		{},
		{Hi: -1, Lo: math.MaxUint64}, // -1
		{Hi: math.MinInt64, Lo: 0},
		{Hi: math.MaxInt64, Lo: math.MaxUint64},
	}

	c := numeric.Int128
	for _, v := range values {
		buf := make([]byte, 16)
		if _, err := c.Encode(v, buf); err != nil {
			t.Fatalf("Encode(%v): %v", v, err)
		}
		_, got, err := c.Decode(buf)
		if err != nil {
			t.Fatalf("Decode(%v): %v", v, err)
		}
		if got != v {
			t.Errorf("round trip: got %v, want %v", got, v)
		}
	}
}

func TestStreamRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if _, err := numeric.Uint32.EncodeTo(0xcafebabe, &buf); err != nil {
		t.Fatalf("EncodeTo: %v", err)
	}
	if buf.Len() != 4 {
		t.Errorf("stream holds %d bytes, want 4", buf.Len())
	}
	n, v, err := numeric.Uint32.DecodeFrom(&buf)
	if err != nil {
		t.Fatalf("DecodeFrom: %v", err)
	}
	if v != 0xcafebabe || n != 4 {
		t.Errorf("round trip: got %#x (%d bytes)", v, n)
	}
}

func TestWidth(t *testing.T) {
	if numeric.Uint8.Width() != 1 || numeric.Uint64.Width() != 8 {
		t.Error("unexpected widths")
	}
	if numeric.Int16.Width() != 2 || numeric.Int32.Width() != 4 {
		t.Error("unexpected signed widths")
	}
}
