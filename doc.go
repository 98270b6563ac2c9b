/*
Package dds decodes DirectDraw Surface (DDS) textures into RGBA images.

A DDS file is the "DDS " magic, a 124-byte header with a nested pixel format
descriptor, an optional 20-byte DX10 extension and the pixel payload. The
package classifies the pixel format into one of DXT1 (BC1), DXT3 (BC2),
DXT5 (BC3), uncompressed BGR or uncompressed BGRA and decodes the base level
into an *image.NRGBA. Mipmaps beyond the base level are ignored.

Payloads framed as Enfusion blocks (COPY/LZ4 block table, as written by the
edds tooling) are unwrapped transparently.

Importing the package registers the "dds" format with the image package:

	import _ "github.com/woozymasta/dds"
*/
package dds
