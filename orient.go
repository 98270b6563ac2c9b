package dds

import "image"

// Origin selects which image row comes first in the decoded buffer.
type Origin uint8

const (
	// OriginTopLeft keeps the container's top-down row order.
	OriginTopLeft Origin = iota
	// OriginBottomLeft reverses rows for consumers that expect the first row
	// to be the bottom of the image (OpenGL-style texture upload).
	OriginBottomLeft
)

// FlipVertical reverses the row order of img in place. Applying it twice
// restores the original buffer.
func FlipVertical(img *image.NRGBA) {
	if img == nil {
		return
	}

	h := img.Rect.Dy()
	rowLen := img.Rect.Dx() * 4
	tmp := make([]byte, rowLen)

	for top, bottom := 0, h-1; top < bottom; top, bottom = top+1, bottom-1 {
		a := img.Pix[top*img.Stride : top*img.Stride+rowLen]
		b := img.Pix[bottom*img.Stride : bottom*img.Stride+rowLen]
		copy(tmp, a)
		copy(a, b)
		copy(b, tmp)
	}
}
