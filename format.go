package dds

import "fmt"

// Format identifies the payload decoder for a surface.
type Format uint8

const (
	// FormatUnknown is never returned by Classify.
	FormatUnknown Format = iota
	// FormatDXT1 is BC1: 8-byte tiles, opaque 4-color palette.
	FormatDXT1
	// FormatDXT3 is BC2: explicit 4-bit alpha plus a BC1 color block.
	FormatDXT3
	// FormatDXT5 is BC3: interpolated 8-bit alpha plus a BC1 color block.
	FormatDXT5
	// FormatBGR is uncompressed 24-bit B,G,R.
	FormatBGR
	// FormatBGRA is uncompressed 32-bit B,G,R,A.
	FormatBGRA
)

var formatNames = [...]string{
	FormatUnknown: "unknown",
	FormatDXT1:    "DXT1",
	FormatDXT3:    "DXT3",
	FormatDXT5:    "DXT5",
	FormatBGR:     "BGR8",
	FormatBGRA:    "BGRA8",
}

func (f Format) String() string {
	if int(f) < len(formatNames) {
		return formatNames[f]
	}
	return fmt.Sprintf("Format(%d)", uint8(f))
}

// Compressed reports whether f is a 4x4 block format.
func (f Format) Compressed() bool {
	return f == FormatDXT1 || f == FormatDXT3 || f == FormatDXT5
}

// BlockSize returns bytes per 4x4 tile for block formats and bytes per pixel
// for uncompressed formats. It returns 0 for FormatUnknown.
func (f Format) BlockSize() int {
	switch f {
	case FormatDXT1:
		return 8
	case FormatDXT3, FormatDXT5:
		return 16
	case FormatBGR:
		return 3
	case FormatBGRA:
		return 4
	default:
		return 0
	}
}

// Classify picks the decoder for a pixel format. It never fails: fourCC codes
// other than DXT3 and DXT5 (DXT1, DXT2, DXT4 and anything unrecognized) fall
// back to DXT1, and uncompressed surfaces are BGRA when any alpha flag is set
// and BGR otherwise.
func Classify(pf PixelFormat) Format {
	if pf.Flags.IsFourCC() {
		switch pf.FourCC {
		case FourCCDXT5:
			return FormatDXT5
		case FourCCDXT3:
			return FormatDXT3
		default:
			return FormatDXT1
		}
	}

	if pf.Flags.HasAlphaPixels() || pf.Flags.HasAlpha() {
		return FormatBGRA
	}

	return FormatBGR
}

// ClassifyStrict is Classify without the fallbacks: it rejects fourCC codes
// other than DXT1, DXT3 and DXT5 and uncompressed layouts that are not 24 or
// 32 bits per pixel.
func ClassifyStrict(pf PixelFormat) (Format, error) {
	format := Classify(pf)

	if pf.Flags.IsFourCC() {
		switch pf.FourCC {
		case FourCCDXT1, FourCCDXT3, FourCCDXT5:
			return format, nil
		default:
			return FormatUnknown, fmt.Errorf("%w: fourCC %q", ErrUnsupportedFormat, pf.FourCC)
		}
	}

	if pf.RGBBitCount != uint32(format.BlockSize()*8) {
		return FormatUnknown, fmt.Errorf("%w: %s with %d bits per pixel", ErrUnsupportedFormat, format, pf.RGBBitCount)
	}

	return format, nil
}

// expectedDataLength returns the payload bytes needed for a w x h base level.
func expectedDataLength(format Format, width, height int) int {
	if format.Compressed() {
		blocksW := (width + 3) / 4
		blocksH := (height + 3) / 4
		return blocksW * blocksH * format.BlockSize()
	}

	if size := format.BlockSize(); size > 0 {
		return width * height * size
	}

	return -1
}
