package netaddr

import (
	"context"
	"encoding/binary"
	"io"
	"net/netip"

	"github.com/wippyai/wireform"
	"github.com/wippyai/wireform/errors"
)

// The untagged forms carry no family tag; they are used only when the
// family is already known from context, and their wire size is fixed.

// AddrPort4 transforms IPv4 socket addresses as 4 octets followed by the
// 2-byte big-endian port, 6 bytes in total.
type AddrPort4 struct{}

var _ wireform.StreamCodec[netip.AddrPort] = AddrPort4{}

func (AddrPort4) EncodedLen(netip.AddrPort) int { return v4Octets + portLen }

func (AddrPort4) Encode(v netip.AddrPort, dst []byte) (int, error) {
	addr := v.Addr().Unmap()
	if !addr.Is4() {
		return 0, familyMismatch(addrPort4Type, "IPv4", v.Addr())
	}
	if len(dst) < v4Octets+portLen {
		return 0, errors.BufferTooSmall(addrPort4Type, v4Octets+portLen, len(dst))
	}
	octets := addr.As4()
	copy(dst, octets[:])
	binary.BigEndian.PutUint16(dst[v4Octets:], v.Port())
	return v4Octets + portLen, nil
}

func (AddrPort4) Decode(src []byte) (int, netip.AddrPort, error) {
	if len(src) < v4Octets+portLen {
		return 0, netip.AddrPort{}, errors.Corrupted(addrPort4Type, "truncated IPv4 socket address")
	}
	addr := netip.AddrFrom4([v4Octets]byte(src[:v4Octets]))
	port := binary.BigEndian.Uint16(src[v4Octets:])
	return v4Octets + portLen, netip.AddrPortFrom(addr, port), nil
}

func (c AddrPort4) EncodeTo(v netip.AddrPort, w io.Writer) (int, error) {
	return wireform.Write(c, v, w)
}

func (c AddrPort4) EncodeToContext(ctx context.Context, v netip.AddrPort, w io.Writer) (int, error) {
	return wireform.WriteContext(ctx, c, v, w)
}

func (c AddrPort4) DecodeFrom(r io.Reader) (int, netip.AddrPort, error) {
	return wireform.ReadFixed(addrPort4Type, c, v4Octets+portLen, r)
}

func (c AddrPort4) DecodeFromContext(ctx context.Context, r io.Reader) (int, netip.AddrPort, error) {
	return wireform.ReadFixedContext(ctx, addrPort4Type, c, v4Octets+portLen, r)
}

// AddrPort6 transforms IPv6 socket addresses as 16 octets followed by the
// 2-byte big-endian port, 18 bytes in total.
type AddrPort6 struct{}

var _ wireform.StreamCodec[netip.AddrPort] = AddrPort6{}

func (AddrPort6) EncodedLen(netip.AddrPort) int { return v6Octets + portLen }

func (AddrPort6) Encode(v netip.AddrPort, dst []byte) (int, error) {
	addr := v.Addr()
	if addr.Is4() {
		return 0, familyMismatch(addrPort6Type, "IPv6", addr)
	}
	if len(dst) < v6Octets+portLen {
		return 0, errors.BufferTooSmall(addrPort6Type, v6Octets+portLen, len(dst))
	}
	octets := addr.As16()
	copy(dst, octets[:])
	binary.BigEndian.PutUint16(dst[v6Octets:], v.Port())
	return v6Octets + portLen, nil
}

func (AddrPort6) Decode(src []byte) (int, netip.AddrPort, error) {
	if len(src) < v6Octets+portLen {
		return 0, netip.AddrPort{}, errors.Corrupted(addrPort6Type, "truncated IPv6 socket address")
	}
	addr := netip.AddrFrom16([v6Octets]byte(src[:v6Octets]))
	port := binary.BigEndian.Uint16(src[v6Octets:])
	return v6Octets + portLen, netip.AddrPortFrom(addr, port), nil
}

func (c AddrPort6) EncodeTo(v netip.AddrPort, w io.Writer) (int, error) {
	return wireform.Write(c, v, w)
}

func (c AddrPort6) EncodeToContext(ctx context.Context, v netip.AddrPort, w io.Writer) (int, error) {
	return wireform.WriteContext(ctx, c, v, w)
}

func (c AddrPort6) DecodeFrom(r io.Reader) (int, netip.AddrPort, error) {
	return wireform.ReadFixed(addrPort6Type, c, v6Octets+portLen, r)
}

func (c AddrPort6) DecodeFromContext(ctx context.Context, r io.Reader) (int, netip.AddrPort, error) {
	return wireform.ReadFixedContext(ctx, addrPort6Type, c, v6Octets+portLen, r)
}

// familyMismatch reports an encode-side attempt to transform an address of
// the wrong family through a fixed-family codec.
func familyMismatch(typ, want string, addr netip.Addr) *errors.Error {
	return errors.New(errors.OpEncode, errors.KindInvalidData).
		Type(typ).
		Value(addr).
		Detail("address %s is not %s", addr, want).
		Build()
}
