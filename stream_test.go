package wireform_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/wippyai/wireform"
	wireerrors "github.com/wippyai/wireform/errors"
	"github.com/wippyai/wireform/frame"
)

func TestWriteInlineHeapBoundary(t *testing.T) {
	c := frame.Bytes{}

	// Payload sizes chosen so the total frame lands exactly on, and just
	// past, the inline threshold.
	tests := []struct {
		name       string
		payloadLen int
	}{
		{"inline max", wireform.MaxInline - wireform.FrameHeaderLen},
		{"heap min", wireform.MaxInline - wireform.FrameHeaderLen + 1},
		{"small", 5},
		{"large", 4096},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := make([]byte, tt.payloadLen)
			for i := range payload {
				payload[i] = byte(i)
			}

			want := make([]byte, c.EncodedLen(payload))
			if _, err := c.Encode(payload, want); err != nil {
				t.Fatalf("Encode: %v", err)
			}

			var buf bytes.Buffer
			n, err := c.EncodeTo(payload, &buf)
			if err != nil {
				t.Fatalf("EncodeTo: %v", err)
			}
			if n != len(want) {
				t.Errorf("EncodeTo wrote %d bytes, want %d", n, len(want))
			}
			if !bytes.Equal(buf.Bytes(), want) {
				t.Error("stream output differs from buffer output")
			}

			m, decoded, err := c.DecodeFrom(&buf)
			if err != nil {
				t.Fatalf("DecodeFrom: %v", err)
			}
			if m != len(want) {
				t.Errorf("DecodeFrom consumed %d bytes, want %d", m, len(want))
			}
			if !bytes.Equal(decoded, payload) {
				t.Error("round trip mismatch")
			}
		})
	}
}

func TestWriteContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	_, err := wireform.WriteContext(ctx, frame.Bytes{}, []byte("abc"), &buf)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if buf.Len() != 0 {
		t.Error("canceled write should not have reached the writer")
	}
}

// blockingWriter blocks every Write until released.
type blockingWriter struct {
	release chan struct{}
}

func (w *blockingWriter) Write(p []byte) (int, error) {
	<-w.release
	return len(p), nil
}

func TestWriteContextAbandonsBlockedWrite(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	w := &blockingWriter{release: make(chan struct{})}
	defer close(w.release)

	_, err := wireform.WriteContext(ctx, frame.Bytes{}, []byte("abc"), w)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected context.DeadlineExceeded, got %v", err)
	}
}

func TestReadFramedWrapsDecodeError(t *testing.T) {
	// A complete frame whose payload is not UTF-8: the stream layer must
	// report it as invalid_data wrapping the codec's error.
	var buf bytes.Buffer
	if _, err := (frame.Bytes{}).EncodeTo([]byte{0xff, 0xfe}, &buf); err != nil {
		t.Fatalf("EncodeTo: %v", err)
	}

	_, _, err := (frame.Text{}).DecodeFrom(&buf)
	if err == nil {
		t.Fatal("expected error")
	}
	var werr *wireerrors.Error
	if !errors.As(err, &werr) {
		t.Fatalf("expected *errors.Error, got %T", err)
	}
	if werr.Kind != wireerrors.KindInvalidData {
		t.Errorf("outer kind: got %s, want %s", werr.Kind, wireerrors.KindInvalidData)
	}
	if !errors.Is(err, frame.ErrInvalidUTF8) {
		t.Error("wrapped cause should still match ErrInvalidUTF8")
	}
}

func TestReadFramedShortStream(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"partial header", []byte{0x00, 0x00}},
		{"partial payload", []byte{0x00, 0x00, 0x00, 0x0a, 0x01, 0x02}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := (frame.Bytes{}).DecodeFrom(bytes.NewReader(tt.data))
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
				t.Errorf("expected an EOF-class error, got %v", err)
			}
		})
	}
}

func TestReadFullContextPreCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	buf := make([]byte, 4)
	err := wireform.ReadFullContext(ctx, bytes.NewReader([]byte{1, 2, 3, 4}), buf)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestDecodeFromContextRoundTrip(t *testing.T) {
	c := frame.Text{}
	var buf bytes.Buffer
	if _, err := c.EncodeToContext(context.Background(), "hello, wire", &buf); err != nil {
		t.Fatalf("EncodeToContext: %v", err)
	}

	n, got, err := c.DecodeFromContext(context.Background(), &buf)
	if err != nil {
		t.Fatalf("DecodeFromContext: %v", err)
	}
	if got != "hello, wire" {
		t.Errorf("round trip: got %q", got)
	}
	if n != wireform.FrameHeaderLen+len("hello, wire") {
		t.Errorf("consumed %d bytes", n)
	}
}
