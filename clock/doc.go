// Package clock implements wire codecs for durations and timestamps.
//
// Everything here shares one 12-byte layout: 8 big-endian seconds bytes
// followed by 4 nanosecond bytes. Duration carries elapsed time, Time
// carries a wall-clock moment since the Unix epoch, and InstantCodec
// carries a monotonic clock reading by anchoring it to the wall clock.
//
// # Anchoring
//
// A monotonic reading means nothing outside its process, but the wire only
// carries absolute timestamps. An Anchor — a (wall, monotonic) snapshot
// pair taken at one moment — bridges the domains: the signed offset between
// a reading and the anchor's monotonic snapshot, applied to the anchor's
// wall time, yields a portable timestamp, and the inverse mapping restores
// a local reading on decode.
//
// The process-wide SystemAnchor is captured exactly once, lazily, on first
// use. Prefer injecting an explicit anchor into InstantCodec when
// determinism matters:
//
//	a := clock.FixedAnchor(time.Unix(1700000000, 0))
//	c := clock.InstantCodec{Anchor: a}
package clock
