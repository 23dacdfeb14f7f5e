package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"net/netip"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/wippyai/wireform/clock"
	"github.com/wippyai/wireform/frame"
	"github.com/wippyai/wireform/netaddr"
	"github.com/wippyai/wireform/numeric"
	"github.com/wippyai/wireform/varint"
)

func main() {
	var (
		hexStr      = flag.String("hex", "", "Wire bytes as a hex string")
		file        = flag.String("file", "", "Read wire bytes from a file (- for stdin)")
		typeName    = flag.String("type", "", "Wire type to decode as (see -list)")
		all         = flag.Bool("all", false, "Decode values back to back until the input is exhausted")
		list        = flag.Bool("list", false, "List wire types and exit")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	if *list {
		listTypes()
		return
	}

	if *interactive {
		if err := runInteractive(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if *typeName == "" || (*hexStr == "" && *file == "") {
		fmt.Fprintln(os.Stderr, "Usage: wiredump -type <name> -hex <bytes> [-all]")
		fmt.Fprintln(os.Stderr, "       wiredump -type <name> -file <path> [-all]")
		fmt.Fprintln(os.Stderr, "       wiredump -list")
		fmt.Fprintln(os.Stderr, "       wiredump -i  (interactive mode)")
		os.Exit(1)
	}

	if err := run(*typeName, *hexStr, *file, *all); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(typeName, hexStr, file string, all bool) error {
	wt, ok := lookupType(typeName)
	if !ok {
		return fmt.Errorf("unknown wire type %q (see -list)", typeName)
	}

	data, err := readInput(hexStr, file)
	if err != nil {
		return err
	}

	fmt.Printf("Input: %d bytes\n", len(data))
	fmt.Print(hexDump(data, 16))
	fmt.Println()

	off := 0
	for {
		n, rendered, err := wt.decode(data[off:])
		if err != nil {
			return fmt.Errorf("decode %s at offset %d: %w", wt.name, off, err)
		}
		fmt.Printf("%s @%d (%d bytes): %s\n", wt.name, off, n, rendered)
		off += n
		if !all || off >= len(data) {
			break
		}
	}

	if off < len(data) {
		fmt.Printf("\n%d trailing bytes not consumed\n", len(data)-off)
	}
	return nil
}

func readInput(hexStr, file string) ([]byte, error) {
	if hexStr != "" {
		cleaned := strings.Map(func(r rune) rune {
			if r == ' ' || r == '\n' || r == '\t' {
				return -1
			}
			return r
		}, hexStr)
		data, err := hex.DecodeString(cleaned)
		if err != nil {
			return nil, fmt.Errorf("parse hex: %w", err)
		}
		return data, nil
	}
	if file == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return data, nil
}

func listTypes() {
	fmt.Println("Wire types:")
	for _, wt := range wireTypes {
		fmt.Printf("  %-10s %s\n", wt.name, wt.desc)
	}
}

// wireType pairs a decoder with a rendered, human-readable result.
type wireType struct {
	name   string
	desc   string
	decode func([]byte) (int, string, error)
}

var wireTypes = buildWireTypes()

func lookupType(name string) (wireType, bool) {
	for _, wt := range wireTypes {
		if wt.name == name {
			return wt, true
		}
	}
	return wireType{}, false
}

func buildWireTypes() []wireType {
	types := []wireType{
		{"varint", "LEB128 unsigned integer, 1-10 bytes", func(src []byte) (int, string, error) {
			n, v, err := varint.Decode(src)
			return n, fmt.Sprintf("%d (%#x)", v, v), err
		}},
		{"bytes", "length-delimited byte string", decodeWith[[]byte](frame.Bytes{}, func(v []byte) string {
			return fmt.Sprintf("%d payload bytes: %x", len(v), v)
		})},
		{"text", "length-delimited UTF-8 string", decodeWith[string](frame.Text{}, func(v string) string {
			return fmt.Sprintf("%q", v)
		})},
		{"addr", "tagged IP address, 5 or 17 bytes", decodeWith[netip.Addr](netaddr.Addr{}, renderStringer[netip.Addr])},
		{"addrport", "tagged socket address, 7 or 19 bytes", decodeWith[netip.AddrPort](netaddr.AddrPort{}, renderStringer[netip.AddrPort])},
		{"addrport4", "untagged IPv4 socket address, 6 bytes", decodeWith[netip.AddrPort](netaddr.AddrPort4{}, renderStringer[netip.AddrPort])},
		{"addrport6", "untagged IPv6 socket address, 18 bytes", decodeWith[netip.AddrPort](netaddr.AddrPort6{}, renderStringer[netip.AddrPort])},
		{"duration", "seconds + nanoseconds, 12 bytes", decodeWith[time.Duration](clock.Duration{}, func(v time.Duration) string {
			return v.String()
		})},
		{"time", "Unix timestamp, 12 bytes", decodeWith[time.Time](clock.Time{}, func(v time.Time) string {
			return v.UTC().Format(time.RFC3339Nano)
		})},
		{"u8", "big-endian unsigned, 1 byte", decodeWith[uint8](numeric.Uint8, renderInt[uint8])},
		{"u16", "big-endian unsigned, 2 bytes", decodeWith[uint16](numeric.Uint16, renderInt[uint16])},
		{"u32", "big-endian unsigned, 4 bytes", decodeWith[uint32](numeric.Uint32, renderInt[uint32])},
		{"u64", "big-endian unsigned, 8 bytes", decodeWith[uint64](numeric.Uint64, renderInt[uint64])},
		{"i8", "big-endian signed, 1 byte", decodeWith[int8](numeric.Int8, renderInt[int8])},
		{"i16", "big-endian signed, 2 bytes", decodeWith[int16](numeric.Int16, renderInt[int16])},
		{"i32", "big-endian signed, 4 bytes", decodeWith[int32](numeric.Int32, renderInt[int32])},
		{"i64", "big-endian signed, 8 bytes", decodeWith[int64](numeric.Int64, renderInt[int64])},
		{"u128", "big-endian unsigned, 16 bytes", decodeWith[numeric.U128](numeric.Uint128, func(v numeric.U128) string {
			return fmt.Sprintf("hi=%#x lo=%#x", v.Hi, v.Lo)
		})},
		{"i128", "big-endian signed, 16 bytes", decodeWith[numeric.I128](numeric.Int128, func(v numeric.I128) string {
			return fmt.Sprintf("hi=%d lo=%#x", v.Hi, v.Lo)
		})},
	}
	sort.Slice(types, func(i, j int) bool { return types[i].name < types[j].name })
	return types
}

type decoder[T any] interface {
	Decode([]byte) (int, T, error)
}

func decodeWith[T any](c decoder[T], render func(T) string) func([]byte) (int, string, error) {
	return func(src []byte) (int, string, error) {
		n, v, err := c.Decode(src)
		if err != nil {
			return 0, "", err
		}
		return n, render(v), nil
	}
}

func renderStringer[T fmt.Stringer](v T) string { return v.String() }

func renderInt[T int8 | int16 | int32 | int64 | uint8 | uint16 | uint32 | uint64](v T) string {
	return fmt.Sprintf("%d", v)
}

// hexDump renders data in rows of width bytes with offsets.
func hexDump(data []byte, width int) string {
	var b strings.Builder
	for off := 0; off < len(data); off += width {
		end := off + width
		if end > len(data) {
			end = len(data)
		}
		fmt.Fprintf(&b, "  %04x  % x\n", off, data[off:end])
	}
	return b.String()
}
