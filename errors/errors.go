package errors

import (
	"fmt"
	"strings"
)

// Op indicates which side of the transform the error occurred on
type Op string

const (
	OpEncode Op = "encode" // value to wire bytes
	OpDecode Op = "decode" // wire bytes to value
)

// Kind categorizes the error
type Kind string

const (
	KindBufferTooSmall Kind = "buffer_too_small"
	KindNotEnoughBytes Kind = "not_enough_bytes"
	KindCorrupted      Kind = "corrupted"
	KindUnknownTag     Kind = "unknown_tag"
	KindOverflow       Kind = "overflow"
	KindInvalidUTF8    Kind = "invalid_utf8"
	KindInvalidData    Kind = "invalid_data"
)

// Error is the structured error type used throughout the library
type Error struct {
	Value  any
	Cause  error
	Op     Op
	Kind   Kind
	Type   string
	Detail string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Op))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Type != "" {
		b.WriteString(": ")
		b.WriteString(e.Type)
	}

	if e.Detail != "" {
		if e.Type != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Op == t.Op && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(op Op, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Op:   op,
			Kind: kind,
		},
	}
}

// Type sets the wire type name
func (b *Builder) Type(t string) *Builder {
	b.err.Type = t
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// BufferTooSmall creates an encode-side destination capacity error
func BufferTooSmall(typ string, need, have int) *Error {
	return &Error{
		Op:     OpEncode,
		Kind:   KindBufferTooSmall,
		Type:   typ,
		Detail: fmt.Sprintf("need %d bytes, destination has %d; size the buffer with EncodedLen", need, have),
	}
}

// NotEnoughBytes creates a truncated source error
func NotEnoughBytes(typ string, need, have int) *Error {
	return &Error{
		Op:     OpDecode,
		Kind:   KindNotEnoughBytes,
		Type:   typ,
		Detail: fmt.Sprintf("need %d bytes, source has %d", need, have),
	}
}

// Corrupted creates a malformed source error
func Corrupted(typ, detail string) *Error {
	return &Error{
		Op:     OpDecode,
		Kind:   KindCorrupted,
		Type:   typ,
		Detail: detail,
	}
}

// UnknownTag creates an unrecognized discriminant error carrying the tag byte
func UnknownTag(typ string, tag byte) *Error {
	return &Error{
		Op:     OpDecode,
		Kind:   KindUnknownTag,
		Type:   typ,
		Detail: fmt.Sprintf("unknown tag %d", tag),
		Value:  tag,
	}
}

// Overflow creates an error for values exceeding their wire representation
func Overflow(typ, detail string) *Error {
	return &Error{
		Op:     OpDecode,
		Kind:   KindOverflow,
		Type:   typ,
		Detail: detail,
	}
}

// InvalidUTF8 creates an invalid UTF-8 error reporting the first bad offset
func InvalidUTF8(typ string, offset int) *Error {
	return &Error{
		Op:     OpDecode,
		Kind:   KindInvalidUTF8,
		Type:   typ,
		Detail: fmt.Sprintf("invalid UTF-8 sequence at byte %d", offset),
		Value:  offset,
	}
}

// InvalidData wraps an in-memory decode error for reporting at the stream layer
func InvalidData(typ string, cause error) *Error {
	return &Error{
		Op:    OpDecode,
		Kind:  KindInvalidData,
		Type:  typ,
		Cause: cause,
	}
}
