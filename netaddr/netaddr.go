package netaddr

import (
	"context"
	"encoding/binary"
	"io"
	"net/netip"

	"github.com/wippyai/wireform"
	"github.com/wippyai/wireform/errors"
)

// Address family tags used by the self-describing forms.
const (
	TagV4 = 4
	TagV6 = 6
)

const (
	tagLen   = 1
	v4Octets = 4
	v6Octets = 16
	portLen  = 2
)

// Sentinel values for the closed error set of address codecs.
var (
	ErrBufferTooSmall = &errors.Error{Op: errors.OpEncode, Kind: errors.KindBufferTooSmall}
	ErrCorrupted      = &errors.Error{Op: errors.OpDecode, Kind: errors.KindCorrupted}
	ErrUnknownTag     = &errors.Error{Op: errors.OpDecode, Kind: errors.KindUnknownTag}
)

const (
	addrType      = "netaddr.Addr"
	addrPortType  = "netaddr.AddrPort"
	addrPort4Type = "netaddr.AddrPort4"
	addrPort6Type = "netaddr.AddrPort6"
)

// Addr transforms netip.Addr values in the tagged, self-describing form:
// one family tag byte (4 or 6) followed by the address octets, 5 or 17
// bytes in total. IPv4-mapped IPv6 addresses encode as family 4, so the
// wire never carries two spellings of the same address.
type Addr struct{}

var _ wireform.StreamCodec[netip.Addr] = Addr{}

func (Addr) EncodedLen(v netip.Addr) int {
	if v.Unmap().Is4() {
		return tagLen + v4Octets
	}
	return tagLen + v6Octets
}

func (c Addr) Encode(v netip.Addr, dst []byte) (int, error) {
	v = v.Unmap()
	n := c.EncodedLen(v)
	if len(dst) < n {
		return 0, errors.BufferTooSmall(addrType, n, len(dst))
	}
	if v.Is4() {
		dst[0] = TagV4
		octets := v.As4()
		copy(dst[tagLen:], octets[:])
	} else {
		dst[0] = TagV6
		octets := v.As16()
		copy(dst[tagLen:], octets[:])
	}
	return n, nil
}

func (Addr) Decode(src []byte) (int, netip.Addr, error) {
	if len(src) < tagLen {
		return 0, netip.Addr{}, errors.NotEnoughBytes(addrType, tagLen, len(src))
	}
	switch src[0] {
	case TagV4:
		if len(src) < tagLen+v4Octets {
			return 0, netip.Addr{}, errors.Corrupted(addrType, "truncated IPv4 octets")
		}
		return tagLen + v4Octets, netip.AddrFrom4([v4Octets]byte(src[tagLen : tagLen+v4Octets])), nil
	case TagV6:
		if len(src) < tagLen+v6Octets {
			return 0, netip.Addr{}, errors.Corrupted(addrType, "truncated IPv6 octets")
		}
		return tagLen + v6Octets, netip.AddrFrom16([v6Octets]byte(src[tagLen : tagLen+v6Octets])), nil
	default:
		return 0, netip.Addr{}, errors.UnknownTag(addrType, src[0])
	}
}

func (c Addr) EncodeTo(v netip.Addr, w io.Writer) (int, error) {
	return wireform.Write(c, v, w)
}

func (c Addr) EncodeToContext(ctx context.Context, v netip.Addr, w io.Writer) (int, error) {
	return wireform.WriteContext(ctx, c, v, w)
}

// DecodeFrom reads the minimum (IPv4-sized) frame first and asks for the
// remaining octets only when the tag says IPv6. A v4 peer sends exactly 5
// bytes, so reading the IPv6 size up front would block forever.
func (c Addr) DecodeFrom(r io.Reader) (int, netip.Addr, error) {
	var buf [tagLen + v6Octets]byte
	if _, err := io.ReadFull(r, buf[:tagLen+v4Octets]); err != nil {
		return 0, netip.Addr{}, err
	}
	size := tagLen + v4Octets
	if buf[0] == TagV6 {
		if _, err := io.ReadFull(r, buf[tagLen+v4Octets:]); err != nil {
			return 0, netip.Addr{}, err
		}
		size = tagLen + v6Octets
	}
	_, v, err := c.Decode(buf[:size])
	if err != nil {
		return 0, netip.Addr{}, errors.InvalidData(addrType, err)
	}
	return size, v, nil
}

// DecodeFromContext is DecodeFrom with cancellation; it keeps the same
// minimum-first read discipline.
func (c Addr) DecodeFromContext(ctx context.Context, r io.Reader) (int, netip.Addr, error) {
	var buf [tagLen + v6Octets]byte
	if err := wireform.ReadFullContext(ctx, r, buf[:tagLen+v4Octets]); err != nil {
		return 0, netip.Addr{}, err
	}
	size := tagLen + v4Octets
	if buf[0] == TagV6 {
		if err := wireform.ReadFullContext(ctx, r, buf[tagLen+v4Octets:]); err != nil {
			return 0, netip.Addr{}, err
		}
		size = tagLen + v6Octets
	}
	_, v, err := c.Decode(buf[:size])
	if err != nil {
		return 0, netip.Addr{}, errors.InvalidData(addrType, err)
	}
	return size, v, nil
}

// AddrPort transforms netip.AddrPort values in the tagged form: family tag,
// octets, then the 2-byte big-endian port; 7 or 19 bytes in total.
type AddrPort struct{}

var _ wireform.StreamCodec[netip.AddrPort] = AddrPort{}

func (AddrPort) EncodedLen(v netip.AddrPort) int {
	if v.Addr().Unmap().Is4() {
		return tagLen + v4Octets + portLen
	}
	return tagLen + v6Octets + portLen
}

func (c AddrPort) Encode(v netip.AddrPort, dst []byte) (int, error) {
	n := c.EncodedLen(v)
	if len(dst) < n {
		return 0, errors.BufferTooSmall(addrPortType, n, len(dst))
	}
	written, err := Addr{}.Encode(v.Addr(), dst)
	if err != nil {
		return 0, err
	}
	binary.BigEndian.PutUint16(dst[written:], v.Port())
	return n, nil
}

func (AddrPort) Decode(src []byte) (int, netip.AddrPort, error) {
	if len(src) < tagLen {
		return 0, netip.AddrPort{}, errors.NotEnoughBytes(addrPortType, tagLen, len(src))
	}
	var need int
	switch src[0] {
	case TagV4:
		need = tagLen + v4Octets + portLen
	case TagV6:
		need = tagLen + v6Octets + portLen
	default:
		return 0, netip.AddrPort{}, errors.UnknownTag(addrPortType, src[0])
	}
	if len(src) < need {
		return 0, netip.AddrPort{}, errors.Corrupted(addrPortType, "truncated socket address")
	}
	used, addr, err := (Addr{}).Decode(src[:need-portLen])
	if err != nil {
		return 0, netip.AddrPort{}, err
	}
	port := binary.BigEndian.Uint16(src[used:])
	return need, netip.AddrPortFrom(addr, port), nil
}

func (c AddrPort) EncodeTo(v netip.AddrPort, w io.Writer) (int, error) {
	return wireform.Write(c, v, w)
}

func (c AddrPort) EncodeToContext(ctx context.Context, v netip.AddrPort, w io.Writer) (int, error) {
	return wireform.WriteContext(ctx, c, v, w)
}

// DecodeFrom reads the minimum (IPv4-sized) frame first, as Addr does.
func (c AddrPort) DecodeFrom(r io.Reader) (int, netip.AddrPort, error) {
	var buf [tagLen + v6Octets + portLen]byte
	minSize := tagLen + v4Octets + portLen
	if _, err := io.ReadFull(r, buf[:minSize]); err != nil {
		return 0, netip.AddrPort{}, err
	}
	size := minSize
	if buf[0] == TagV6 {
		if _, err := io.ReadFull(r, buf[minSize:]); err != nil {
			return 0, netip.AddrPort{}, err
		}
		size = len(buf)
	}
	_, v, err := c.Decode(buf[:size])
	if err != nil {
		return 0, netip.AddrPort{}, errors.InvalidData(addrPortType, err)
	}
	return size, v, nil
}

// DecodeFromContext is DecodeFrom with cancellation.
func (c AddrPort) DecodeFromContext(ctx context.Context, r io.Reader) (int, netip.AddrPort, error) {
	var buf [tagLen + v6Octets + portLen]byte
	minSize := tagLen + v4Octets + portLen
	if err := wireform.ReadFullContext(ctx, r, buf[:minSize]); err != nil {
		return 0, netip.AddrPort{}, err
	}
	size := minSize
	if buf[0] == TagV6 {
		if err := wireform.ReadFullContext(ctx, r, buf[minSize:]); err != nil {
			return 0, netip.AddrPort{}, err
		}
		size = len(buf)
	}
	_, v, err := c.Decode(buf[:size])
	if err != nil {
		return 0, netip.AddrPort{}, errors.InvalidData(addrPortType, err)
	}
	return size, v, nil
}
