package varint

import (
	"math/bits"

	"github.com/wippyai/wireform/errors"
)

// MaxLen is the largest wire size of an encoded 64-bit value.
const MaxLen = 10

const varintType = "varint"

// Sentinel values for the closed error set. Match with errors.Is.
var (
	ErrBufferTooSmall = &errors.Error{Op: errors.OpEncode, Kind: errors.KindBufferTooSmall}
	ErrNotEnoughBytes = &errors.Error{Op: errors.OpDecode, Kind: errors.KindNotEnoughBytes}

	// ErrOverflow reports a sequence that does not terminate within MaxLen
	// bytes, or whose final byte carries bits beyond the 64th.
	ErrOverflow = &errors.Error{
		Op:     errors.OpDecode,
		Kind:   errors.KindOverflow,
		Type:   varintType,
		Detail: "value does not fit in 64 bits",
	}
)

// EncodedLen returns the number of bytes Encode emits for v, between 1 and
// MaxLen. Computed in closed form from the bit length of v|1, which folds
// the zero case into length 1.
func EncodedLen(v uint64) int {
	return (bits.Len64(v|1)*9 + 64) / 64
}

// Append appends the wire form of v to dst and returns the extended slice.
func Append(dst []byte, v uint64) []byte {
	for v >= 0x80 {
		dst = append(dst, byte(v)|0x80)
		v >>= 7
	}
	return append(dst, byte(v))
}

// Encode writes the wire form of v into dst and returns the number of bytes
// written. It fails before writing anything when dst cannot hold the full
// encoding.
func Encode(v uint64, dst []byte) (int, error) {
	n := EncodedLen(v)
	if len(dst) < n {
		return 0, errors.BufferTooSmall(varintType, n, len(dst))
	}
	i := 0
	for v >= 0x80 {
		dst[i] = byte(v) | 0x80
		v >>= 7
		i++
	}
	dst[i] = byte(v)
	return i + 1, nil
}

// Decode reads one value from the head of src and returns the number of
// bytes consumed along with the value. Each byte contributes 7 value bits,
// least-significant group first; the high bit flags continuation. A 10th
// byte may only carry the 64-bit value's final bit, so anything above 1
// there, or a continuation flag on it, is an overflow.
func Decode(src []byte) (int, uint64, error) {
	var x uint64
	var s uint
	for i := 0; i < MaxLen; i++ {
		if i >= len(src) {
			return 0, 0, errors.NotEnoughBytes(varintType, i+1, len(src))
		}
		b := src[i]
		if b < 0x80 {
			if i == MaxLen-1 && b > 1 {
				return 0, 0, ErrOverflow
			}
			return i + 1, x | uint64(b)<<s, nil
		}
		x |= uint64(b&0x7f) << s
		s += 7
	}
	return 0, 0, ErrOverflow
}
