// Package errors provides structured error types for the wireform library.
//
// Errors are categorized by Op (which side of the transform failed) and Kind
// (error category). Exactly two classes exist: encode-side errors report a
// destination buffer that cannot hold the wire form, and are raised before
// any byte is written; decode-side errors report a truncated or malformed
// source.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.OpDecode, errors.KindCorrupted).
//		Type("netaddr.Addr").
//		Detail("truncated IPv6 octets").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.BufferTooSmall("frame.Bytes", need, len(dst))
//	err := errors.UnknownTag("netaddr.Addr", tag)
//
// All errors implement the standard error interface and support errors.Is/As.
// Two *Error values match under errors.Is when their Op and Kind agree, so
// packages can export sentinel values for their closed error sets.
package errors
