package dds

import (
	"fmt"
	"image"

	"golang.org/x/sync/errgroup"
)

// decodeFunc turns a base-level payload into pixels. The int result is the
// number of trailing payload bytes that did not fit the image.
type decodeFunc func(payload []byte, width, height int, opts *Options) (*image.NRGBA, int, error)

// decoders is indexed by Format; FormatUnknown has no decoder.
var decoders = [...]decodeFunc{
	FormatUnknown: nil,
	FormatDXT1:    blockDecoder(FormatDXT1, decodeDXT1Tile),
	FormatDXT3:    blockDecoder(FormatDXT3, decodeDXT3Tile),
	FormatDXT5:    blockDecoder(FormatDXT5, decodeDXT5Tile),
	FormatBGR:     pixelDecoder(FormatBGR),
	FormatBGRA:    pixelDecoder(FormatBGRA),
}

// decodePixels dispatches payload to the decoder for format.
func decodePixels(format Format, payload []byte, width, height int, opts *Options) (*image.NRGBA, int, error) {
	if int(format) >= len(decoders) || decoders[format] == nil {
		return nil, 0, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	if width <= 0 || height <= 0 {
		return nil, 0, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if _, err := pixelBytes(width, height); err != nil {
		return nil, 0, err
	}

	return decoders[format](payload, width, height, opts)
}

// blockDecoder walks the 4x4 tile grid of a block format. Tiles on the right
// and bottom edges of images whose size is not a multiple of 4 are decoded
// whole and clipped on write.
func blockDecoder(format Format, kernel tileDecoder) decodeFunc {
	blockSize := format.BlockSize()

	return func(payload []byte, width, height int, opts *Options) (*image.NRGBA, int, error) {
		blocksW := (width + 3) / 4
		blocksH := (height + 3) / 4
		rowBytes := blocksW * blockSize

		if need := rowBytes * blocksH; len(payload) < need {
			return nil, 0, fmt.Errorf("%w: %s %dx%d needs %d bytes, have %d",
				ErrShortPayload, format, width, height, need, len(payload))
		}

		img := image.NewNRGBA(image.Rect(0, 0, width, height))
		decodeRow := func(by int) {
			var t tile
			row := payload[by*rowBytes : (by+1)*rowBytes]
			for bx := 0; bx < blocksW; bx++ {
				kernel(&t, row[bx*blockSize:(bx+1)*blockSize], opts)
				writeTile(img, &t, bx*4, by*4)
			}
		}

		if opts.Workers <= 1 || blocksH == 1 {
			for by := 0; by < blocksH; by++ {
				decodeRow(by)
			}
			return img, 0, nil
		}

		var g errgroup.Group
		g.SetLimit(opts.Workers)
		for by := 0; by < blocksH; by++ {
			g.Go(func() error {
				decodeRow(by)
				return nil
			})
		}
		_ = g.Wait()

		return img, 0, nil
	}
}

// writeTile copies t to img with its top-left corner at (x0, y0), skipping
// pixels outside the image.
func writeTile(img *image.NRGBA, t *tile, x0, y0 int) {
	w := img.Rect.Dx()
	h := img.Rect.Dy()

	for py := 0; py < 4; py++ {
		y := y0 + py
		if y >= h {
			return
		}
		for px := 0; px < 4; px++ {
			x := x0 + px
			if x >= w {
				break
			}

			c := t[py*4+px]
			off := img.PixOffset(x, y)
			img.Pix[off+0] = c.R
			img.Pix[off+1] = c.G
			img.Pix[off+2] = c.B
			img.Pix[off+3] = c.A
		}
	}
}

// pixelDecoder reads uncompressed B,G,R(,A) pixels in row-major order. Bytes
// past width*height pixels are not written and are reported as overflow.
func pixelDecoder(format Format) decodeFunc {
	stride := format.BlockSize()
	hasAlpha := stride == 4

	return func(payload []byte, width, height int, _ *Options) (*image.NRGBA, int, error) {
		need := width * height * stride
		if len(payload) < need {
			return nil, 0, fmt.Errorf("%w: %s %dx%d needs %d bytes, have %d",
				ErrShortPayload, format, width, height, need, len(payload))
		}

		img := image.NewNRGBA(image.Rect(0, 0, width, height))
		dst := img.Pix
		for i, j := 0, 0; i < need; i, j = i+stride, j+4 {
			dst[j+0] = payload[i+2]
			dst[j+1] = payload[i+1]
			dst[j+2] = payload[i+0]
			if hasAlpha {
				dst[j+3] = payload[i+3]
			} else {
				dst[j+3] = 0xff
			}
		}

		return img, len(payload) - need, nil
	}
}
