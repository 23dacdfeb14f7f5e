// Package netaddr implements wire codecs for network addresses.
//
// Two families exist on the wire, identified by the tags 4 and 6. The
// self-describing forms lead with a tag byte; the untagged forms omit it
// and may only be used when the family is already known from context:
//
//	Addr       tag + octets               5 or 17 bytes
//	AddrPort   tag + octets + port        7 or 19 bytes
//	AddrPort4  4 octets + port            6 bytes
//	AddrPort6  16 octets + port           18 bytes
//
// Ports are 2-byte big-endian. The octet count is fully determined by the
// tag, so decoding a tagged form from a stream reads the IPv4-sized minimum
// first and fetches the remaining bytes only when the tag says 6; a peer
// sending an IPv4 address never produces those bytes, and waiting for them
// would stall the stream.
package netaddr
