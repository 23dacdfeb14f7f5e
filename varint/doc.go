// Package varint implements the unsigned LEB128 variable-length integer
// encoding.
//
// Each byte carries 7 value bits plus a continuation flag in the high bit,
// emitted from the least-significant group upward; the first group with no
// higher bits remaining terminates the sequence. A uint64 therefore spans
// 1 to 10 bytes:
//
//	300 = 0b10_0101100  →  [0xAC, 0x02]
//
// EncodedLen is closed-form (no iteration), and Decode rejects sequences
// that cannot fit 64 bits. The package is standalone: it is plain functions
// over byte slices, independent of the codec contract.
package varint
