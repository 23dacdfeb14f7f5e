// Package numeric implements big-endian fixed-width integer codecs.
//
// One generic codec covers every machine width from 8 to 64 bits, signed
// and unsigned, through the package-level instances (Uint8 .. Uint64,
// Int8 .. Int64). 128-bit values travel as the U128 and I128 pair types.
//
// The wire form is the integer's bytes in big-endian order, nothing else:
// width/8 bytes per value. These codecs also define the layout of every
// multi-byte field elsewhere in the library, such as frame length prefixes
// and address ports.
package numeric
