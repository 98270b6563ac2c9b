// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/dds

package dds

const (
	maxInt32 = int(^uint32(0) >> 1)
	maxInt   = int(^uint(0) >> 1)
)

// intFromU32 converts a header dimension to an int bounded by int32.
func intFromU32(n uint32) (int, error) {
	if uint64(n) > uint64(maxInt32) {
		return 0, ErrSizeOverflow
	}

	return int(n), nil
}

// pixelBytes returns width*height*4, the size of the RGBA buffer.
func pixelBytes(width, height int) (int, error) {
	if width < 0 || height < 0 {
		return 0, ErrSizeOverflow
	}
	if width != 0 && height > maxInt/4/width {
		return 0, ErrSizeOverflow
	}

	return width * height * 4, nil
}
