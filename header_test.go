package dds

import (
	"bytes"
	"errors"
	"io"
	"testing"
	"testing/iotest"

	"github.com/woozymasta/bcn"
)

func TestParseHeaderRoundTrip(t *testing.T) {
	t.Parallel()

	want := &Header{
		Size:              HeaderSize,
		Flags:             FlagCaps | FlagHeight | FlagWidth | FlagPixelFormat | FlagLinearSize | FlagMipMapCount,
		Height:            64,
		Width:             128,
		PitchOrLinearSize: 4096,
		Depth:             1,
		MipMapCount:       8,
		PixelFormat: PixelFormat{
			Size:        PixelFormatSize,
			Flags:       PFFourCC,
			FourCC:      FourCCDXT5,
			RGBBitCount: 0x11,
			RBitMask:    0x22,
			GBitMask:    0x33,
			BBitMask:    0x44,
			ABitMask:    0x55,
		},
		Caps:      CapsTexture | CapsMipmap | CapsComplex,
		Caps2:     0x200,
		Caps3:     3,
		Caps4:     4,
		Reserved2: 5,
	}
	for i := range want.Reserved1 {
		want.Reserved1[i] = uint32(0x1000 + i)
	}

	payload := []byte{1, 2, 3, 4, 5}
	data := append(encodeHeader(want, nil), payload...)

	got, ext, gotPayload, err := ParseHeader(data)
	if err != nil {
		t.Fatalf("ParseHeader: %v", err)
	}
	if ext != nil {
		t.Fatalf("unexpected extended header: %+v", ext)
	}
	if *got != *want {
		t.Fatalf("header mismatch:\n got %+v\nwant %+v", *got, *want)
	}
	if !bytes.Equal(gotPayload, payload) {
		t.Fatalf("payload = %v, want %v", gotPayload, payload)
	}
}

func TestParseHeaderExtended(t *testing.T) {
	t.Parallel()

	h := newHeader(16, 8, fourCCFormat(FourCCDX10))
	wantExt := &ExtendedHeader{
		DXGIFormat:        77,
		ResourceDimension: 3,
		MiscFlag:          4,
		ArraySize:         1,
		MiscFlags2:        9,
	}
	payload := bytes.Repeat([]byte{0xab}, 32)
	data := append(encodeHeader(h, wantExt), payload...)

	got, ext, gotPayload, err := ParseHeader(data)
	if err != nil {
		t.Fatalf("ParseHeader: %v", err)
	}
	if *got != *h {
		t.Fatalf("header mismatch:\n got %+v\nwant %+v", *got, *h)
	}
	if ext == nil || *ext != *wantExt {
		t.Fatalf("extended header = %+v, want %+v", ext, wantExt)
	}
	if len(gotPayload) != len(payload) {
		t.Fatalf("payload length = %d, want %d", len(gotPayload), len(payload))
	}
}

func TestParseHeaderDX10WithoutFourCCFlag(t *testing.T) {
	t.Parallel()

	// The DX10 code only counts when the fourCC flag is set.
	h := newHeader(4, 4, PixelFormat{Flags: PFRGB, FourCC: FourCCDX10, RGBBitCount: 24})
	data := append(encodeHeader(h, nil), make([]byte, 48)...)

	_, ext, payload, err := ParseHeader(data)
	if err != nil {
		t.Fatalf("ParseHeader: %v", err)
	}
	if ext != nil {
		t.Fatalf("extended header parsed without fourCC flag")
	}
	if len(payload) != 48 {
		t.Fatalf("payload length = %d, want 48", len(payload))
	}
}

func TestParseHeaderBadMagicAllLengths(t *testing.T) {
	t.Parallel()

	valid := buildFile(newHeader(4, 4, fourCCFormat(FourCCDXT1)), make([]byte, 8))
	corrupt := append([]byte("DDX "), valid[4:]...)

	for n := 0; n <= len(corrupt); n++ {
		_, _, _, err := ParseHeader(corrupt[:n])
		if !errors.Is(err, ErrFormat) {
			t.Fatalf("length %d: expected ErrFormat, got %v", n, err)
		}
	}

	// A valid magic cut short is still a format error below 4 bytes.
	for n := 0; n < 4; n++ {
		if _, _, _, err := ParseHeader(valid[:n]); !errors.Is(err, ErrFormat) {
			t.Fatalf("valid prefix length %d: expected ErrFormat, got %v", n, err)
		}
	}
}

func TestParseHeaderErrors(t *testing.T) {
	t.Parallel()

	dx10 := encodeHeader(newHeader(4, 4, fourCCFormat(FourCCDX10)), nil)

	smallHeader := newHeader(4, 4, fourCCFormat(FourCCDXT1))
	smallHeader.Size = 100

	smallPF := newHeader(4, 4, fourCCFormat(FourCCDXT1))
	smallPF.PixelFormat.Size = 16

	tests := []struct {
		name    string
		data    []byte
		wantErr error
	}{
		{name: "magic-only", data: []byte(Magic), wantErr: ErrHeaderTruncated},
		{name: "header-cut", data: encodeHeader(smallHeader, nil)[:100], wantErr: ErrHeaderTruncated},
		{name: "header-size-field", data: encodeHeader(smallHeader, nil), wantErr: ErrHeaderSize},
		{name: "pixel-format-size-field", data: encodeHeader(smallPF, nil), wantErr: ErrHeaderSize},
		{name: "dx10-missing", data: dx10, wantErr: ErrExtendedTruncated},
		{name: "dx10-cut", data: append(dx10, make([]byte, 19)...), wantErr: ErrExtendedTruncated},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			h, ext, payload, err := ParseHeader(tc.data)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
			if h != nil || ext != nil || payload != nil {
				t.Fatalf("partial result returned with error")
			}
		})
	}
}

func TestReadHeaderStream(t *testing.T) {
	t.Parallel()

	h := newHeader(32, 16, fourCCFormat(FourCCDX10))
	ext := &ExtendedHeader{DXGIFormat: 71, ResourceDimension: 3, ArraySize: 1}
	data := append(encodeHeader(h, ext), make([]byte, 256)...)

	r := bytes.NewReader(data)
	got, gotExt, err := ReadHeader(r)
	if err != nil {
		t.Fatalf("ReadHeader: %v", err)
	}
	if *got != *h || gotExt == nil || *gotExt != *ext {
		t.Fatalf("ReadHeader = %+v %+v", got, gotExt)
	}
	if r.Len() != 256 {
		t.Fatalf("ReadHeader consumed payload: %d bytes left, want 256", r.Len())
	}

	if _, _, err := ReadHeader(bytes.NewReader([]byte("PNG\x00"))); !errors.Is(err, ErrFormat) {
		t.Fatalf("expected ErrFormat, got %v", err)
	}
}

func TestReadHeaderStreamErrors(t *testing.T) {
	t.Parallel()

	boom := errors.New("disk gone")
	dx10 := encodeHeader(newHeader(4, 4, fourCCFormat(FourCCDX10)), nil)

	tests := []struct {
		name    string
		r       io.Reader
		wantErr error
		notErr  error
	}{
		{name: "empty", r: bytes.NewReader(nil), wantErr: ErrFormat},
		{name: "magic-cut", r: bytes.NewReader([]byte("DD")), wantErr: ErrFormat},
		{name: "magic-io-error", r: iotest.ErrReader(boom), wantErr: boom, notErr: ErrFormat},
		{name: "header-cut", r: bytes.NewReader(dx10[:64]), wantErr: ErrHeaderTruncated},
		{name: "header-io-error", r: io.MultiReader(bytes.NewReader(dx10[:64]), iotest.ErrReader(boom)), wantErr: boom, notErr: ErrHeaderTruncated},
		{name: "dx10-cut", r: bytes.NewReader(append(bytes.Clone(dx10), 1, 2, 3)), wantErr: ErrExtendedTruncated},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			h, ext, err := ReadHeader(tc.r)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
			if tc.notErr != nil && errors.Is(err, tc.notErr) {
				t.Fatalf("I/O failure reported as %v: %v", tc.notErr, err)
			}
			if tc.notErr != nil && !errors.Is(err, ErrReadFile) {
				t.Fatalf("expected ErrReadFile wrap, got %v", err)
			}
			if h != nil || ext != nil {
				t.Fatalf("partial result returned with error")
			}
		})
	}

	if _, err := DecodeConfig(iotest.ErrReader(boom)); !errors.Is(err, boom) {
		t.Fatalf("DecodeConfig lost the read error: %v", err)
	}
}

func TestParseHeaderFromBCNWriter(t *testing.T) {
	t.Parallel()

	hdr := &bcn.DDSHeader{
		Size:        bcn.DDSHeaderSize,
		Flags:       uint32(bcn.DDSFlagCaps | bcn.DDSFlagHeight | bcn.DDSFlagWidth | bcn.DDSFlagPixelFormat),
		Height:      12,
		Width:       20,
		Depth:       1,
		MipMapCount: 1,
		Caps:        uint32(bcn.DDSCapsTexture),
	}
	hdr.PixelFormat.Size = bcn.DDSPixelFormatSize
	hdr.PixelFormat.Flags = bcn.DDSPFFourCC
	hdr.PixelFormat.FourCC = uint32(FourCCDXT3)
	hdr.Reserved1[1] = 0xfeedface

	var buf bytes.Buffer
	if err := bcn.WriteDDSMagic(&buf); err != nil {
		t.Fatalf("WriteDDSMagic: %v", err)
	}
	if err := bcn.WriteDDSHeader(&buf, hdr); err != nil {
		t.Fatalf("WriteDDSHeader: %v", err)
	}
	if buf.Len() != 4+HeaderSize {
		t.Fatalf("bcn wrote %d bytes, want %d", buf.Len(), 4+HeaderSize)
	}

	got, _, payload, err := ParseHeader(buf.Bytes())
	if err != nil {
		t.Fatalf("ParseHeader: %v", err)
	}
	if got.Width != 20 || got.Height != 12 || got.Reserved1[1] != 0xfeedface {
		t.Fatalf("unexpected header: %+v", got)
	}
	if got.PixelFormat.FourCC != FourCCDXT3 || Classify(got.PixelFormat) != FormatDXT3 {
		t.Fatalf("fourCC = %s, format = %s", got.PixelFormat.FourCC, Classify(got.PixelFormat))
	}
	if len(payload) != 0 {
		t.Fatalf("payload length = %d, want 0", len(payload))
	}
}

func TestFourCCString(t *testing.T) {
	t.Parallel()

	if got := FourCCDXT5.String(); got != "DXT5" {
		t.Fatalf("FourCCDXT5 = %q", got)
	}
	if uint32(FourCCDXT1) != 0x31545844 {
		t.Fatalf("FourCCDXT1 = 0x%08x", uint32(FourCCDXT1))
	}
}
