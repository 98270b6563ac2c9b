package dds

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"log/slog"
)

func init() {
	image.RegisterFormat("dds", Magic, Decode, DecodeConfig)
}

// Options configures decoding. A nil *Options means the zero value.
type Options struct {
	// Logger receives warnings about recovered anomalies. Nil uses slog.Default().
	Logger *slog.Logger
	// Workers decodes tile rows of block formats concurrently when > 1.
	Workers int
	// Origin selects the row order of the output buffer.
	Origin Origin
	// Strict rejects fourCC codes and bit depths that would otherwise fall
	// back to a nearby decoder, and turns payload overflow into an error.
	Strict bool
	// PunchThroughAlpha enables the DXT1 three-color mode: when c0 <= c1 the
	// fourth palette entry is transparent black. Off, DXT1 is always opaque.
	PunchThroughAlpha bool
}

func (o *Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

// Texture is a decoded DDS base level and the headers it came from.
type Texture struct {
	Header   *Header
	Extended *ExtendedHeader
	Format   Format
	Image    *image.NRGBA
	// Overflow counts trailing payload bytes of an uncompressed surface that
	// are neither base level nor declared mip levels. They are discarded.
	Overflow int
	// Framed is set when the payload was unwrapped from Enfusion blocks.
	Framed bool
}

// DecodeBytes parses a whole DDS file and decodes its base level.
func DecodeBytes(data []byte, opts *Options) (*Texture, error) {
	if opts == nil {
		opts = &Options{}
	}

	header, ext, payload, err := ParseHeader(data)
	if err != nil {
		return nil, err
	}

	format := Classify(header.PixelFormat)
	if opts.Strict {
		if format, err = ClassifyStrict(header.PixelFormat); err != nil {
			return nil, err
		}
	}

	width, err := intFromU32(header.Width)
	if err != nil {
		return nil, fmt.Errorf("%w: width %d", err, header.Width)
	}
	height, err := intFromU32(header.Height)
	if err != nil {
		return nil, fmt.Errorf("%w: height %d", err, header.Height)
	}

	tex := &Texture{Header: header, Extended: ext, Format: format}
	levels := mipLevels(header)

	if hasEnfusionMarker(header) || looksFramed(payload) {
		base, err := unwrapBaseLevel(payload, levels, format, width, height)
		switch {
		case err == nil:
			payload = base
			levels = 1
			tex.Framed = true
		case hasEnfusionMarker(header):
			return nil, fmt.Errorf("%w: %w", ErrUnwrapBlocks, err)
		default:
			opts.logger().Warn("payload starts with a block magic but is not block-framed, decoding as raw",
				"error", err)
		}
	}

	img, extra, err := decodePixels(format, payload, width, height, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodeImage, err)
	}

	if !format.Compressed() && extra > 0 {
		extra -= min(extra, mipTailLength(format, width, height, levels))
	}
	if extra > 0 {
		if opts.Strict {
			return nil, fmt.Errorf("%w: %d bytes past %dx%d %s", ErrBufferOverflow, extra, width, height, format)
		}
		opts.logger().Warn("payload exceeds declared image size, truncating",
			"format", format.String(), "width", width, "height", height, "extra_bytes", extra)
		tex.Overflow = extra
	}

	if opts.Origin == OriginBottomLeft {
		FlipVertical(img)
	}
	tex.Image = img

	return tex, nil
}

// Decode reads a DDS image from r. It is registered with the image package.
func Decode(r io.Reader) (image.Image, error) {
	return DecodeWithOptions(r, nil)
}

// DecodeWithOptions reads a DDS image from r with the given options.
func DecodeWithOptions(r io.Reader, opts *Options) (image.Image, error) {
	data, err := readAll(r)
	if err != nil {
		return nil, err
	}

	tex, err := DecodeBytes(data, opts)
	if err != nil {
		return nil, err
	}

	return tex.Image, nil
}

// DecodeConfig returns the dimensions of a DDS image without decoding pixels.
func DecodeConfig(r io.Reader) (image.Config, error) {
	header, _, err := ReadHeader(r)
	if err != nil {
		return image.Config{}, err
	}

	width, err := intFromU32(header.Width)
	if err != nil {
		return image.Config{}, err
	}
	height, err := intFromU32(header.Height)
	if err != nil {
		return image.Config{}, err
	}

	return image.Config{
		Width:      width,
		Height:     height,
		ColorModel: color.NRGBAModel,
	}, nil
}

func readAll(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadFile, err)
	}

	return data, nil
}
