package dds

import (
	"encoding/binary"
	"image/color"
)

// tile holds the 16 decoded pixels of one 4x4 block in raster order.
type tile [16]color.NRGBA

// tileDecoder decodes one block of src into t.
type tileDecoder func(t *tile, src []byte, opts *Options)

// expand565 widens a packed RGB565 endpoint to 8 bits per channel by shifting.
// The low bits are left zero.
func expand565(v uint16) color.NRGBA {
	return color.NRGBA{
		R: uint8((v >> 11 & 0x1f) << 3),
		G: uint8((v >> 5 & 0x3f) << 2),
		B: uint8((v & 0x1f) << 3),
		A: 0xff,
	}
}

// blend3 returns the 2:1 mix of a and b, rounded.
func blend3(a, b color.NRGBA) color.NRGBA {
	return color.NRGBA{
		R: uint8((2*int(a.R) + int(b.R) + 1) / 3),
		G: uint8((2*int(a.G) + int(b.G) + 1) / 3),
		B: uint8((2*int(a.B) + int(b.B) + 1) / 3),
		A: 0xff,
	}
}

func blend2(a, b color.NRGBA) color.NRGBA {
	return color.NRGBA{
		R: uint8((int(a.R) + int(b.R)) / 2),
		G: uint8((int(a.G) + int(b.G)) / 2),
		B: uint8((int(a.B) + int(b.B)) / 2),
		A: 0xff,
	}
}

// colorPalette builds the four colors of a BC1 color block. With punchThrough
// set and c0 <= c1 the block uses three colors plus transparent black.
func colorPalette(c0, c1 uint16, punchThrough bool) [4]color.NRGBA {
	p0 := expand565(c0)
	p1 := expand565(c1)

	if punchThrough && c0 <= c1 {
		return [4]color.NRGBA{p0, p1, blend2(p0, p1), {}}
	}

	return [4]color.NRGBA{p0, p1, blend3(p0, p1), blend3(p1, p0)}
}

// alphaPalette builds the eight alpha levels of a BC3 alpha block.
func alphaPalette(a0, a1 uint8) [8]uint8 {
	var alpha [8]uint8
	alpha[0] = a0
	alpha[1] = a1

	x0, x1 := int(a0), int(a1)
	if a0 > a1 {
		for k := 2; k < 8; k++ {
			alpha[k] = uint8(((8-k)*x0 + (k-1)*x1 + 3) / 7)
		}
		return alpha
	}

	for k := 2; k < 6; k++ {
		alpha[k] = uint8(((6-k)*x0 + (k-1)*x1 + 2) / 5)
	}
	alpha[6] = 0
	alpha[7] = 0xff

	return alpha
}

// decodeColorBlock fills t from an 8-byte BC1 color block.
func decodeColorBlock(t *tile, src []byte, punchThrough bool) {
	c0 := binary.LittleEndian.Uint16(src[0:])
	c1 := binary.LittleEndian.Uint16(src[2:])
	indices := binary.LittleEndian.Uint32(src[4:])

	palette := colorPalette(c0, c1, punchThrough)
	for i := range t {
		t[i] = palette[(indices>>(2*i))&0x3]
	}
}

func decodeDXT1Tile(t *tile, src []byte, opts *Options) {
	decodeColorBlock(t, src[:8], opts.PunchThroughAlpha)
}

// decodeDXT3Tile reads 8 bytes of explicit 4-bit alpha, then the color block.
func decodeDXT3Tile(t *tile, src []byte, _ *Options) {
	bits := binary.LittleEndian.Uint64(src[0:8])
	decodeColorBlock(t, src[8:16], false)

	for i := range t {
		t[i].A = uint8((bits>>(4*i))&0xf) * 17
	}
}

// decodeDXT5Tile reads two alpha endpoints and 48 bits of 3-bit alpha
// indices, then the color block.
func decodeDXT5Tile(t *tile, src []byte, _ *Options) {
	alpha := alphaPalette(src[0], src[1])

	var bits uint64
	for i := 0; i < 6; i++ {
		bits |= uint64(src[2+i]) << (8 * i)
	}

	decodeColorBlock(t, src[8:16], false)

	for i := range t {
		t[i].A = alpha[(bits>>(3*i))&0x7]
	}
}
