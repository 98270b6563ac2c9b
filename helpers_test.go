package dds

import (
	"bytes"
	"encoding/binary"
	"io"
	"log/slog"
	"testing"

	"github.com/pierrec/lz4/v4"
)

// quietOptions returns options whose logger discards output.
func quietOptions() *Options {
	return &Options{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func newHeader(width, height uint32, pf PixelFormat) *Header {
	pf.Size = PixelFormatSize
	return &Header{
		Size:        HeaderSize,
		Flags:       FlagCaps | FlagHeight | FlagWidth | FlagPixelFormat,
		Height:      height,
		Width:       width,
		Depth:       1,
		MipMapCount: 1,
		PixelFormat: pf,
		Caps:        CapsTexture,
	}
}

func fourCCFormat(code FourCC) PixelFormat {
	return PixelFormat{Flags: PFFourCC, FourCC: code}
}

func bgraFormat() PixelFormat {
	return PixelFormat{
		Flags:       PFRGB | PFAlphaPixels,
		RGBBitCount: 32,
		RBitMask:    0x00ff0000,
		GBitMask:    0x0000ff00,
		BBitMask:    0x000000ff,
		ABitMask:    0xff000000,
	}
}

func bgrFormat() PixelFormat {
	return PixelFormat{
		Flags:       PFRGB,
		RGBBitCount: 24,
		RBitMask:    0x00ff0000,
		GBitMask:    0x0000ff00,
		BBitMask:    0x000000ff,
	}
}

// encodeHeader lays out magic, header and optional DX10 header at their
// documented byte offsets.
func encodeHeader(h *Header, ext *ExtendedHeader) []byte {
	buf := make([]byte, 4+HeaderSize)
	copy(buf, Magic)
	put := func(off int, v uint32) { binary.LittleEndian.PutUint32(buf[off:], v) }

	put(4, h.Size)
	put(8, uint32(h.Flags))
	put(12, h.Height)
	put(16, h.Width)
	put(20, h.PitchOrLinearSize)
	put(24, h.Depth)
	put(28, h.MipMapCount)
	for i, v := range h.Reserved1 {
		put(32+4*i, v)
	}

	pf := h.PixelFormat
	put(76, pf.Size)
	put(80, uint32(pf.Flags))
	put(84, uint32(pf.FourCC))
	put(88, pf.RGBBitCount)
	put(92, pf.RBitMask)
	put(96, pf.GBitMask)
	put(100, pf.BBitMask)
	put(104, pf.ABitMask)

	put(108, h.Caps)
	put(112, h.Caps2)
	put(116, h.Caps3)
	put(120, h.Caps4)
	put(124, h.Reserved2)

	if ext == nil {
		return buf
	}

	var tail [ExtendedHeaderSize]byte
	binary.LittleEndian.PutUint32(tail[0:], ext.DXGIFormat)
	binary.LittleEndian.PutUint32(tail[4:], ext.ResourceDimension)
	binary.LittleEndian.PutUint32(tail[8:], ext.MiscFlag)
	binary.LittleEndian.PutUint32(tail[12:], ext.ArraySize)
	binary.LittleEndian.PutUint32(tail[16:], ext.MiscFlags2)

	return append(buf, tail[:]...)
}

func buildFile(h *Header, payload []byte) []byte {
	return append(encodeHeader(h, nil), payload...)
}

// dxt1Block packs a BC1 color block.
func dxt1Block(c0, c1 uint16, indices uint32) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint16(b[0:], c0)
	binary.LittleEndian.PutUint16(b[2:], c1)
	binary.LittleEndian.PutUint32(b[4:], indices)
	return b
}

// dxt3Block packs 16 explicit 4-bit alphas followed by a color block.
func dxt3Block(alphaBits uint64, color []byte) []byte {
	b := make([]byte, 8, 16)
	binary.LittleEndian.PutUint64(b, alphaBits)
	return append(b, color...)
}

// dxt5Block packs alpha endpoints, 48 bits of alpha indices and a color block.
func dxt5Block(a0, a1 uint8, alphaBits uint64, color []byte) []byte {
	b := make([]byte, 8, 16)
	b[0] = a0
	b[1] = a1
	for i := 0; i < 6; i++ {
		b[2+i] = byte(alphaBits >> (8 * i))
	}
	return append(b, color...)
}

// fillIndex2 selects palette entry k for all 16 pixels.
func fillIndex2(k uint32) uint32 { return k * 0x55555555 }

// fillIndex3 selects alpha entry k for all 16 pixels.
func fillIndex3(k uint64) uint64 {
	var bits uint64
	for i := 0; i < 16; i++ {
		bits |= k << (3 * i)
	}
	return bits
}

// patternBytes returns deterministic, compressible test data.
func patternBytes(n int) []byte {
	data := make([]byte, n)
	for i := range data {
		data[i] = byte((i % 4096) / 16)
	}
	return data
}

// lz4Body writes data as an LZ4 level body: int32 size, then 64 KiB chunks.
func lz4Body(tb testing.TB, data []byte) []byte {
	tb.Helper()

	var out bytes.Buffer
	_ = binary.Write(&out, binary.LittleEndian, int32(len(data)))
	scratch := make([]byte, lz4.CompressBlockBound(ChunkSize))

	for start := 0; start < len(data); start += ChunkSize {
		end := min(start+ChunkSize, len(data))
		n, err := lz4.CompressBlockHC(data[start:end], scratch, 0, nil, nil)
		if err != nil || n == 0 {
			tb.Fatalf("lz4 compress chunk at %d: n=%d err=%v", start, n, err)
		}

		flags := byte(0)
		if end == len(data) {
			flags = lastChunkFlag
		}
		out.Write([]byte{byte(n), byte(n >> 8), byte(n >> 16), flags})
		out.Write(scratch[:n])
	}

	return out.Bytes()
}

// framedPayload writes a block table and bodies. levels are ordered smallest
// first, matching the on-disk order.
func framedPayload(magics []string, bodies [][]byte) []byte {
	var out bytes.Buffer
	for i, magic := range magics {
		out.WriteString(magic)
		_ = binary.Write(&out, binary.LittleEndian, int32(len(bodies[i])))
	}
	for _, body := range bodies {
		out.Write(body)
	}
	return out.Bytes()
}
