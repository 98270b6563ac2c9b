package dds

// PixelFormatFlags is the DDS_PIXELFORMAT dwFlags bitset.
type PixelFormatFlags uint32

// Pixel format flag bits.
const (
	PFAlphaPixels PixelFormatFlags = 0x00000001
	PFAlpha       PixelFormatFlags = 0x00000002
	PFFourCC      PixelFormatFlags = 0x00000004
	PFRGB         PixelFormatFlags = 0x00000040
	PFYUV         PixelFormatFlags = 0x00000200
	PFLuminance   PixelFormatFlags = 0x00020000
)

// Has reports whether all bits of mask are set.
func (f PixelFormatFlags) Has(mask PixelFormatFlags) bool { return f&mask == mask }

// HasAlphaPixels reports whether the uncompressed data carries an alpha channel.
func (f PixelFormatFlags) HasAlphaPixels() bool { return f.Has(PFAlphaPixels) }

// HasAlpha reports whether the surface is alpha-only (DDPF_ALPHA).
func (f PixelFormatFlags) HasAlpha() bool { return f.Has(PFAlpha) }

// IsFourCC reports whether the FourCC field selects a compressed format.
func (f PixelFormatFlags) IsFourCC() bool { return f.Has(PFFourCC) }

// IsRGB reports whether the surface holds uncompressed RGB data.
func (f PixelFormatFlags) IsRGB() bool { return f.Has(PFRGB) }

// IsYUV reports whether the surface holds uncompressed YUV data.
func (f PixelFormatFlags) IsYUV() bool { return f.Has(PFYUV) }

// IsLuminance reports whether the surface holds single-channel luminance data.
func (f PixelFormatFlags) IsLuminance() bool { return f.Has(PFLuminance) }

// HeaderFlags is the DDS_HEADER dwFlags bitset.
type HeaderFlags uint32

// Header flag bits.
const (
	FlagCaps        HeaderFlags = 0x00000001
	FlagHeight      HeaderFlags = 0x00000002
	FlagWidth       HeaderFlags = 0x00000004
	FlagPitch       HeaderFlags = 0x00000008
	FlagPixelFormat HeaderFlags = 0x00001000
	FlagMipMapCount HeaderFlags = 0x00020000
	FlagLinearSize  HeaderFlags = 0x00080000
	FlagDepth       HeaderFlags = 0x00800000
)

// Has reports whether all bits of mask are set.
func (f HeaderFlags) Has(mask HeaderFlags) bool { return f&mask == mask }

// Capability bits of dwCaps.
const (
	CapsComplex = 0x00000008
	CapsTexture = 0x00001000
	CapsMipmap  = 0x00400000
)
