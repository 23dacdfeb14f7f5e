package varint_test

import (
	"bytes"
	"errors"
	"math"
	"testing"

	multivarint "github.com/multiformats/go-varint"

	wireerrors "github.com/wippyai/wireform/errors"
	"github.com/wippyai/wireform/varint"
)

func TestEncodedLen(t *testing.T) {
	tests := []struct {
		v    uint64
		want int
	}{
		{0, 1},
		{1, 1},
		{127, 1},
		{128, 2},
		{300, 2},
		{1 << 14, 3},
		{1<<21 - 1, 3},
		{1 << 21, 4},
		{1 << 28, 5},
		{1 << 35, 6},
		{1 << 42, 7},
		{1 << 49, 8},
		{1 << 56, 9},
		{1<<63 - 1, 9},
		{1 << 63, 10},
		{math.MaxUint64, 10},
	}

	for _, tt := range tests {
		if got := varint.EncodedLen(tt.v); got != tt.want {
			t.Errorf("EncodedLen(%d) = %d, want %d", tt.v, got, tt.want)
		}
	}
}

func TestEncodeWireForm(t *testing.T) {
	tests := []struct {
		v    uint64
		want []byte
	}{
		{0, []byte{0x00}},
		{1, []byte{0x01}},
		{127, []byte{0x7f}},
		{128, []byte{0x80, 0x01}},
		{300, []byte{0xac, 0x02}},
		{16384, []byte{0x80, 0x80, 0x01}},
	}

	for _, tt := range tests {
		buf := make([]byte, varint.MaxLen)
		n, err := varint.Encode(tt.v, buf)
		if err != nil {
			t.Fatalf("Encode(%d): %v", tt.v, err)
		}
		if !bytes.Equal(buf[:n], tt.want) {
			t.Errorf("Encode(%d) = %x, want %x", tt.v, buf[:n], tt.want)
		}
	}
}

func TestMaxUint64WireForm(t *testing.T) {
	buf := make([]byte, varint.MaxLen)
	n, err := varint.Encode(math.MaxUint64, buf)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if n != varint.MaxLen {
		t.Fatalf("Encode wrote %d bytes, want %d", n, varint.MaxLen)
	}
	// Nine continuation bytes, then the 64th bit alone in the tail.
	for i := 0; i < 9; i++ {
		if buf[i] != 0xff {
			t.Errorf("byte %d: got %x, want ff", i, buf[i])
		}
	}
	if buf[9] != 0x01 {
		t.Errorf("tail byte: got %x, want 01", buf[9])
	}
}

func TestRoundTrip(t *testing.T) {
	values := []uint64{
		0, 1, 127, 128, 300, 16383, 16384,
		1<<32 - 1, 1 << 32, 1<<63 - 1, 1 << 63, math.MaxUint64,
	}

	for _, v := range values {
		buf := make([]byte, varint.EncodedLen(v))
		n, err := varint.Encode(v, buf)
		if err != nil {
			t.Fatalf("Encode(%d): %v", v, err)
		}
		if n != len(buf) {
			t.Errorf("Encode(%d) wrote %d bytes, EncodedLen says %d", v, n, len(buf))
		}
		m, got, err := varint.Decode(buf)
		if err != nil {
			t.Fatalf("Decode(%d): %v", v, err)
		}
		if got != v || m != n {
			t.Errorf("round trip %d: got %d (%d bytes)", v, got, m)
		}
	}
}

// The multiformats encoding is the same LEB128 for values below 1<<63, so it
// serves as an independent oracle there.
func TestAgainstMultiformats(t *testing.T) {
	values := []uint64{0, 1, 127, 128, 300, 16384, 1<<32 + 17, 1<<63 - 1}

	for _, v := range values {
		want := multivarint.ToUvarint(v)

		buf := make([]byte, varint.EncodedLen(v))
		if _, err := varint.Encode(v, buf); err != nil {
			t.Fatalf("Encode(%d): %v", v, err)
		}
		if !bytes.Equal(buf, want) {
			t.Errorf("Encode(%d) = %x, multiformats says %x", v, buf, want)
		}
		if got := varint.EncodedLen(v); got != multivarint.UvarintSize(v) {
			t.Errorf("EncodedLen(%d) = %d, multiformats says %d", v, got, multivarint.UvarintSize(v))
		}

		got, n, err := multivarint.FromUvarint(buf)
		if err != nil {
			t.Fatalf("multiformats rejects our encoding of %d: %v", v, err)
		}
		if got != v || n != len(buf) {
			t.Errorf("multiformats decodes %x to %d (%d bytes), want %d", buf, got, n, v)
		}
	}
}

func TestAppend(t *testing.T) {
	got := varint.Append([]byte{0xee}, 300)
	want := []byte{0xee, 0xac, 0x02}
	if !bytes.Equal(got, want) {
		t.Errorf("Append = %x, want %x", got, want)
	}
}

func TestEncodeBufferTooSmall(t *testing.T) {
	dst := []byte{0xaa}
	_, err := varint.Encode(300, dst)
	if !errors.Is(err, varint.ErrBufferTooSmall) {
		t.Fatalf("expected ErrBufferTooSmall, got %v", err)
	}
	if dst[0] != 0xaa {
		t.Error("failed encode wrote into the destination")
	}
}

func TestDecodeNotEnoughBytes(t *testing.T) {
	tests := []struct {
		name string
		src  []byte
	}{
		{"empty", nil},
		{"dangling continuation", []byte{0x80}},
		{"two dangling continuations", []byte{0xff, 0x80}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := varint.Decode(tt.src)
			if !errors.Is(err, varint.ErrNotEnoughBytes) {
				t.Errorf("expected ErrNotEnoughBytes, got %v", err)
			}
		})
	}
}

func TestDecodeOverflow(t *testing.T) {
	tests := []struct {
		name string
		src  []byte
	}{
		{
			// 10th byte would contribute bits past the 64th.
			"tail byte too large",
			[]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x02},
		},
		{
			// No terminator within the 10-byte maximum.
			"eleven continuation bytes",
			bytes.Repeat([]byte{0x80}, 11),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := varint.Decode(tt.src)
			if !errors.Is(err, varint.ErrOverflow) {
				t.Fatalf("expected ErrOverflow, got %v", err)
			}
			var werr *wireerrors.Error
			if !errors.As(err, &werr) || werr.Kind != wireerrors.KindOverflow {
				t.Errorf("expected kind overflow, got %v", err)
			}
		})
	}
}

func TestDecodeIgnoresTrailingBytes(t *testing.T) {
	n, v, err := varint.Decode([]byte{0xac, 0x02, 0xde, 0xad})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if v != 300 || n != 2 {
		t.Errorf("got %d (%d bytes), want 300 (2 bytes)", v, n)
	}
}
