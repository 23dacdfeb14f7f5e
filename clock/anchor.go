package clock

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/wippyai/wireform"
	"github.com/wippyai/wireform/errors"
)

// Instant is a reading of the process-local monotonic clock. Readings have
// no portable absolute meaning; a decoded Instant is only meaningful inside
// the process that decoded it.
type Instant struct {
	t time.Time
}

// Now returns the current monotonic reading.
func Now() Instant {
	return Instant{t: time.Now()}
}

// Sub returns the duration i - o, measured on the monotonic clock when both
// readings carry one.
func (i Instant) Sub(o Instant) time.Duration {
	return i.t.Sub(o.t)
}

// Add returns the reading shifted by d.
func (i Instant) Add(d time.Duration) Instant {
	return Instant{t: i.t.Add(d)}
}

// Anchor is an immutable (wall-clock, monotonic-clock) snapshot pair taken
// at a single moment. It expresses the relationship between the two clock
// domains and lets a monotonic reading travel as an absolute timestamp.
type Anchor struct {
	wall time.Time // the snapshot with its monotonic reading stripped
	mono time.Time // the same snapshot carrying its monotonic reading
}

var (
	systemAnchor *Anchor
	anchorOnce   sync.Once
)

// SystemAnchor returns the process-wide anchor, captured lazily on first
// use. The first caller's snapshot wins; every later caller, concurrent or
// not, observes the same pair for the life of the process.
func SystemAnchor() *Anchor {
	anchorOnce.Do(func() {
		now := time.Now()
		systemAnchor = &Anchor{wall: now.Round(0), mono: now}
	})
	return systemAnchor
}

// FixedAnchor returns a deterministic anchor pinned to t, for tests and for
// callers that prefer explicit anchor injection over process state.
func FixedAnchor(t time.Time) *Anchor {
	return &Anchor{wall: t.Round(0), mono: t}
}

// InstantCodec transforms monotonic readings by anchoring them to the wall
// clock: encode adds the reading's signed offset from the anchor's
// monotonic snapshot to the anchor's wall time, producing a portable
// absolute timestamp in the shared 12-byte layout; decode reverses the
// mapping against the same anchor.
//
// This is an intentional approximation. Round-tripping within one process
// recovers the original reading to nanosecond resolution; across processes
// the value is only as accurate as the wall clocks involved.
//
// The zero codec uses SystemAnchor. Set Anchor to inject a fixed one.
type InstantCodec struct {
	Anchor *Anchor
}

var _ wireform.StreamCodec[Instant] = InstantCodec{}

func (c InstantCodec) anchor() *Anchor {
	if c.Anchor != nil {
		return c.Anchor
	}
	return SystemAnchor()
}

func (InstantCodec) EncodedLen(Instant) int { return WireLen }

func (c InstantCodec) Encode(v Instant, dst []byte) (int, error) {
	if len(dst) < WireLen {
		return 0, errors.BufferTooSmall(instantType, WireLen, len(dst))
	}
	a := c.anchor()
	abs := a.wall.Add(v.t.Sub(a.mono))
	putPair(dst, uint64(abs.Unix()), uint32(abs.Nanosecond()))
	return WireLen, nil
}

func (c InstantCodec) Decode(src []byte) (int, Instant, error) {
	if len(src) < WireLen {
		return 0, Instant{}, errors.NotEnoughBytes(instantType, WireLen, len(src))
	}
	sec, nsec := pair(src)
	abs := time.Unix(int64(sec), int64(nsec))
	a := c.anchor()
	return WireLen, Instant{t: a.mono.Add(abs.Sub(a.wall))}, nil
}

func (c InstantCodec) EncodeTo(v Instant, w io.Writer) (int, error) {
	return wireform.Write[Instant](c, v, w)
}

func (c InstantCodec) EncodeToContext(ctx context.Context, v Instant, w io.Writer) (int, error) {
	return wireform.WriteContext[Instant](ctx, c, v, w)
}

func (c InstantCodec) DecodeFrom(r io.Reader) (int, Instant, error) {
	return wireform.ReadFixed[Instant](instantType, c, WireLen, r)
}

func (c InstantCodec) DecodeFromContext(ctx context.Context, r io.Reader) (int, Instant, error) {
	return wireform.ReadFixedContext[Instant](ctx, instantType, c, WireLen, r)
}
