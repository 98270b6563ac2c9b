// Command ddsconv decodes DDS textures into PNG, BMP or TIFF images.
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"log/slog"
	"os"

	"github.com/klauspost/compress/zstd"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/woozymasta/dds"
)

var (
	formatFlag  = flag.String("format", "png", "output format: png, bmp or tiff")
	outputFlag  = flag.String("o", "", "output path (default stdout)")
	flipFlag    = flag.Bool("flip", false, "reverse row order (bottom-left origin)")
	strictFlag  = flag.Bool("strict", false, "reject unsupported formats and oversized payloads")
	alphaFlag   = flag.Bool("dxt1-alpha", false, "decode DXT1 three-color blocks with transparent black")
	workersFlag = flag.Int("workers", 1, "tile rows decoded concurrently")
	infoFlag    = flag.Bool("info", false, "print header fields instead of decoding")
)

const usageStr = `ddsconv decodes DDS (DXT1/DXT3/DXT5/BGR/BGRA) textures.

Usage:

    ddsconv [flags] [path]

The path to the input DDS file is optional. If omitted, stdin is read.
Zstandard-compressed inputs are inflated transparently.

Flags:
`

// zstdMagic is the little-endian Zstandard frame magic 0xFD2FB528.
var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// errBadFormatFlag reports an unknown -format value.
var errBadFormatFlag = errors.New("main: bad -format flag")

func main() {
	if err := main1(); err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

func main1() error {
	flag.Usage = func() {
		_, _ = os.Stderr.WriteString(usageStr)
		flag.PrintDefaults()
	}
	flag.Parse()

	encode, err := encoderFor(*formatFlag)
	if err != nil {
		return err
	}

	var in io.Reader = os.Stdin
	switch flag.NArg() {
	case 0:
		// No-op.
	case 1:
		f, err := os.Open(flag.Arg(0))
		if err != nil {
			return err
		}
		defer func() { _ = f.Close() }()
		in = f
	default:
		return errors.New("too many filenames; the maximum is one")
	}

	data, err := readInput(in)
	if err != nil {
		return err
	}

	if *infoFlag {
		return printInfo(os.Stdout, data)
	}

	opts := &dds.Options{
		Logger:            slog.New(slog.NewTextHandler(os.Stderr, nil)),
		Workers:           *workersFlag,
		Strict:            *strictFlag,
		PunchThroughAlpha: *alphaFlag,
	}
	if *flipFlag {
		opts.Origin = dds.OriginBottomLeft
	}

	tex, err := dds.DecodeBytes(data, opts)
	if err != nil {
		return err
	}

	var out io.Writer = os.Stdout
	if *outputFlag != "" {
		f, err := os.Create(*outputFlag)
		if err != nil {
			return err
		}
		defer func() { _ = f.Close() }()
		out = f
	}

	return encode(out, tex.Image)
}

func encoderFor(name string) (func(io.Writer, image.Image) error, error) {
	switch name {
	case "", "png":
		return png.Encode, nil
	case "bmp":
		return bmp.Encode, nil
	case "tiff":
		return func(w io.Writer, m image.Image) error {
			return tiff.Encode(w, m, &tiff.Options{Compression: tiff.Deflate})
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", errBadFormatFlag, name)
	}
}

// readInput reads the whole input, inflating it when it is a zstd frame.
func readInput(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if !bytes.HasPrefix(data, zstdMagic) {
		return data, nil
	}

	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	return dec.DecodeAll(data, nil)
}

func printInfo(w io.Writer, data []byte) error {
	header, ext, payload, err := dds.ParseHeader(data)
	if err != nil {
		return err
	}

	pf := header.PixelFormat
	fmt.Fprintf(w, "Dimensions: %dx%d\n", header.Width, header.Height)
	fmt.Fprintf(w, "Mip levels: %d\n", header.MipMapCount)
	fmt.Fprintf(w, "Header flags: 0x%08x\n", uint32(header.Flags))
	fmt.Fprintf(w, "Pixel format flags: 0x%08x\n", uint32(pf.Flags))
	if pf.Flags.IsFourCC() {
		fmt.Fprintf(w, "FourCC: %s\n", pf.FourCC)
	} else {
		fmt.Fprintf(w, "Bits per pixel: %d (masks R=%08x G=%08x B=%08x A=%08x)\n",
			pf.RGBBitCount, pf.RBitMask, pf.GBitMask, pf.BBitMask, pf.ABitMask)
	}
	if ext != nil {
		fmt.Fprintf(w, "DXGI format: %d, dimension: %d, array size: %d\n",
			ext.DXGIFormat, ext.ResourceDimension, ext.ArraySize)
	}
	fmt.Fprintf(w, "Decoder: %s\n", dds.Classify(pf))
	fmt.Fprintf(w, "Payload: %d bytes\n", len(payload))

	return nil
}
