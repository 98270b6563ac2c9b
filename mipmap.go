package dds

// maxMipLevels bounds the declared level count; a 2^31 texel edge has 32.
const maxMipLevels = 32

// mipLevels returns the number of stored levels declared by the header.
func mipLevels(header *Header) int {
	if header.Caps&CapsMipmap == 0 || header.MipMapCount == 0 {
		return 1
	}
	if header.MipMapCount > maxMipLevels {
		return maxMipLevels
	}

	return int(header.MipMapCount)
}

// mipDimension calculates the dimension of a mipmap level.
func mipDimension(base, level int) int {
	result := base >> level
	if result < 1 {
		return 1
	}

	return result
}

// mipTailLength returns the payload bytes of levels 1..levels-1, the part of
// a mip chain that follows the base level.
func mipTailLength(format Format, width, height, levels int) int {
	total := 0
	for level := 1; level < levels; level++ {
		w := mipDimension(width, level)
		h := mipDimension(height, level)
		total += expectedDataLength(format, w, h)
		if w == 1 && h == 1 {
			break
		}
	}

	return total
}
