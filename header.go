package dds

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

const (
	// Magic is the byte string prefix of every DDS file.
	Magic = "DDS "
	// HeaderSize is the size of the fixed DDS_HEADER that follows the magic.
	HeaderSize = 124
	// PixelFormatSize is the size of the nested DDS_PIXELFORMAT record.
	PixelFormatSize = 32
	// ExtendedHeaderSize is the size of the DDS_HEADER_DXT10 extension.
	ExtendedHeaderSize = 20
)

// FourCC is a four-character code stored as a little-endian uint32.
type FourCC uint32

// Known four-character codes.
var (
	FourCCDXT1 = MakeFourCC('D', 'X', 'T', '1')
	FourCCDXT2 = MakeFourCC('D', 'X', 'T', '2')
	FourCCDXT3 = MakeFourCC('D', 'X', 'T', '3')
	FourCCDXT4 = MakeFourCC('D', 'X', 'T', '4')
	FourCCDXT5 = MakeFourCC('D', 'X', 'T', '5')
	FourCCDX10 = MakeFourCC('D', 'X', '1', '0')
)

// MakeFourCC packs four ASCII bytes into a FourCC.
func MakeFourCC(a, b, c, d byte) FourCC {
	return FourCC(uint32(a) | uint32(b)<<8 | uint32(c)<<16 | uint32(d)<<24)
}

// String returns the four characters of the code.
func (c FourCC) String() string {
	return string([]byte{
		byte(c & 0xff),
		byte((c >> 8) & 0xff),
		byte((c >> 16) & 0xff),
		byte((c >> 24) & 0xff),
	})
}

// PixelFormat is the DDS_PIXELFORMAT descriptor.
type PixelFormat struct {
	Size        uint32
	Flags       PixelFormatFlags
	FourCC      FourCC
	RGBBitCount uint32
	RBitMask    uint32
	GBitMask    uint32
	BBitMask    uint32
	ABitMask    uint32
}

// Header is the fixed 124-byte DDS_HEADER.
type Header struct {
	Size              uint32
	Flags             HeaderFlags
	Height            uint32
	Width             uint32
	PitchOrLinearSize uint32
	Depth             uint32
	MipMapCount       uint32
	Reserved1         [11]uint32
	PixelFormat       PixelFormat
	Caps              uint32
	Caps2             uint32
	Caps3             uint32
	Caps4             uint32
	Reserved2         uint32
}

// ExtendedHeader is the DDS_HEADER_DXT10 extension.
type ExtendedHeader struct {
	DXGIFormat        uint32
	ResourceDimension uint32
	MiscFlag          uint32
	ArraySize         uint32
	MiscFlags2        uint32
}

// HasExtendedHeader reports whether a DX10 extension follows the header.
func (h *Header) HasExtendedHeader() bool {
	return h.PixelFormat.Flags.IsFourCC() && h.PixelFormat.FourCC == FourCCDX10
}

// cursor reads little-endian words from a buffer strictly forward.
type cursor struct {
	buf []byte
	off int
}

func (c *cursor) remaining() int { return len(c.buf) - c.off }

func (c *cursor) u32() uint32 {
	v := binary.LittleEndian.Uint32(c.buf[c.off:])
	c.off += 4
	return v
}

// ParseHeader parses the magic, the fixed header and, when the pixel format
// names "DX10", the extended header. The returned payload is everything after
// the header(s); dwPitchOrLinearSize is not consulted.
func ParseHeader(data []byte) (*Header, *ExtendedHeader, []byte, error) {
	if len(data) < 4 || string(data[:4]) != Magic {
		return nil, nil, nil, ErrFormat
	}

	c := &cursor{buf: data, off: 4}
	if c.remaining() < HeaderSize {
		return nil, nil, nil, fmt.Errorf("%w: have %d bytes", ErrHeaderTruncated, c.remaining())
	}
	header, err := parseFixedHeader(c)
	if err != nil {
		return nil, nil, nil, err
	}

	if !header.HasExtendedHeader() {
		return header, nil, data[c.off:], nil
	}

	if c.remaining() < ExtendedHeaderSize {
		return nil, nil, nil, fmt.Errorf("%w: have %d bytes", ErrExtendedTruncated, c.remaining())
	}
	ext := &ExtendedHeader{
		DXGIFormat:        c.u32(),
		ResourceDimension: c.u32(),
		MiscFlag:          c.u32(),
		ArraySize:         c.u32(),
		MiscFlags2:        c.u32(),
	}

	return header, ext, data[c.off:], nil
}

// ReadHeader reads the magic and header(s) from r without touching the payload.
func ReadHeader(r io.Reader) (*Header, *ExtendedHeader, error) {
	var buf [4 + HeaderSize + ExtendedHeaderSize]byte
	if _, err := io.ReadFull(r, buf[:4]); err != nil {
		return nil, nil, streamError(err, ErrFormat)
	}
	if string(buf[:4]) != Magic {
		return nil, nil, ErrFormat
	}
	if _, err := io.ReadFull(r, buf[4:4+HeaderSize]); err != nil {
		return nil, nil, streamError(err, ErrHeaderTruncated)
	}

	end := 4 + HeaderSize
	// pixel format flags and fourCC sit at file offsets 80 and 84
	pf := PixelFormatFlags(binary.LittleEndian.Uint32(buf[80:]))
	if pf.IsFourCC() && FourCC(binary.LittleEndian.Uint32(buf[84:])) == FourCCDX10 {
		if _, err := io.ReadFull(r, buf[end:]); err != nil {
			return nil, nil, streamError(err, ErrExtendedTruncated)
		}
		end = len(buf)
	}

	header, ext, _, err := ParseHeader(buf[:end])
	return header, ext, err
}

// streamError maps a failed io.ReadFull to short when the stream ended early
// and to ErrReadFile, keeping the cause, for any other read failure.
func streamError(err, short error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: %v", short, err)
	}

	return fmt.Errorf("%w: %w", ErrReadFile, err)
}

// parseFixedHeader reads DDS_HEADER in wire order. The caller guarantees
// HeaderSize bytes are available.
func parseFixedHeader(c *cursor) (*Header, error) {
	h := Header{
		Size:              c.u32(),
		Flags:             HeaderFlags(c.u32()),
		Height:            c.u32(),
		Width:             c.u32(),
		PitchOrLinearSize: c.u32(),
		Depth:             c.u32(),
		MipMapCount:       c.u32(),
	}
	for i := range h.Reserved1 {
		h.Reserved1[i] = c.u32()
	}
	if h.Size < HeaderSize {
		return nil, fmt.Errorf("%w: header size %d", ErrHeaderSize, h.Size)
	}

	h.PixelFormat = PixelFormat{
		Size:        c.u32(),
		Flags:       PixelFormatFlags(c.u32()),
		FourCC:      FourCC(c.u32()),
		RGBBitCount: c.u32(),
		RBitMask:    c.u32(),
		GBitMask:    c.u32(),
		BBitMask:    c.u32(),
		ABitMask:    c.u32(),
	}
	if h.PixelFormat.Size < PixelFormatSize {
		return nil, fmt.Errorf("%w: pixel format size %d", ErrHeaderSize, h.PixelFormat.Size)
	}

	h.Caps = c.u32()
	h.Caps2 = c.u32()
	h.Caps3 = c.u32()
	h.Caps4 = c.u32()
	h.Reserved2 = c.u32()

	return &h, nil
}
