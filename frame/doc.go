// Package frame implements the length-delimited framing codec: a 4-byte
// big-endian length followed by exactly that many payload bytes.
//
// Two codecs share the layout. Bytes carries opaque payloads; Text carries
// UTF-8 strings and validates the payload after the frame is extracted, so
// a truncated frame (not_enough_bytes) and a complete frame holding invalid
// text (invalid_utf8) surface as distinct errors.
//
//	┌──────────────┬─────────────────┐
//	│ length (u32) │ payload (N)     │
//	└──────────────┴─────────────────┘
//
// The stream operations stage frames up to wireform.MaxInline bytes in a
// fixed local buffer and larger frames in an exact-size heap buffer; both
// paths emit identical bytes.
package frame
