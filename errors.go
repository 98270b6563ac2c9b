package dds

import "errors"

var (
	// ErrFormat indicates the input does not start with the "DDS " magic.
	ErrFormat = errors.New("not a DDS file")
	// ErrUnsupportedFormat indicates a pixel format rejected by strict classification.
	ErrUnsupportedFormat = errors.New("unsupported pixel format")
	// ErrBufferOverflow indicates an uncompressed payload holds more pixels than declared.
	ErrBufferOverflow = errors.New("payload exceeds declared image size")
	// ErrHeaderTruncated indicates the fixed header is shorter than 124 bytes.
	ErrHeaderTruncated = errors.New("DDS header truncated")
	// ErrHeaderSize indicates a header or pixel format size field below its minimum.
	ErrHeaderSize = errors.New("invalid DDS header size")
	// ErrExtendedTruncated indicates the DX10 header is shorter than 20 bytes.
	ErrExtendedTruncated = errors.New("DX10 header truncated")
	// ErrInvalidDimensions indicates a zero width or height.
	ErrInvalidDimensions = errors.New("invalid image dimensions")
	// ErrSizeOverflow indicates a size or dimension exceeds supported limits.
	ErrSizeOverflow = errors.New("size overflow")
	// ErrShortPayload indicates the payload is smaller than the image requires.
	ErrShortPayload = errors.New("payload too short")
	// ErrOpenFile indicates DDS file open failed.
	ErrOpenFile = errors.New("open file failed")
	// ErrReadFile indicates reading the DDS file failed.
	ErrReadFile = errors.New("read file failed")
	// ErrDecodeImage indicates pixel decoding failed.
	ErrDecodeImage = errors.New("decode image failed")

	// ErrBlockTableMagicRead indicates block table magic read failed.
	ErrBlockTableMagicRead = errors.New("reading block table magic failed")
	// ErrBlockTableSizeRead indicates block table size read failed.
	ErrBlockTableSizeRead = errors.New("reading block table size failed")
	// ErrBlockTableUnknownMagic indicates unknown block magic in table.
	ErrBlockTableUnknownMagic = errors.New("unknown block magic in table")
	// ErrBlockTableInvalidSize indicates invalid size in block table.
	ErrBlockTableInvalidSize = errors.New("invalid block size in table")
	// ErrBlockBodyRead indicates block body read failed.
	ErrBlockBodyRead = errors.New("reading block body failed")
	// ErrUnwrapBlocks indicates the block-framed payload could not be unwrapped.
	ErrUnwrapBlocks = errors.New("unwrap block payload failed")
	// ErrCopySizeMismatch indicates COPY block data size mismatch.
	ErrCopySizeMismatch = errors.New("COPY block size mismatch")
	// ErrUnknownBlockMagic indicates an unknown block magic.
	ErrUnknownBlockMagic = errors.New("unknown block magic")
	// ErrInvalidTargetSize indicates invalid decoded target size.
	ErrInvalidTargetSize = errors.New("invalid target size")
	// ErrChunkStreamTruncated indicates LZ4 chunk stream is truncated.
	ErrChunkStreamTruncated = errors.New("LZ4 chunk-stream truncated")
	// ErrUnknownLZ4Flags indicates unknown LZ4 chunk flags.
	ErrUnknownLZ4Flags = errors.New("unknown LZ4 flags")
	// ErrInvalidChunkSize indicates invalid LZ4 chunk size.
	ErrInvalidChunkSize = errors.New("invalid compressed chunk size")
	// ErrLZ4Decode indicates LZ4 decode failed.
	ErrLZ4Decode = errors.New("LZ4 decode failed")
	// ErrDecodeOverrun indicates decoded data overruns target buffer.
	ErrDecodeOverrun = errors.New("decoded LZ4 overruns target buffer")
	// ErrDecodedSizeMismatch indicates decoded size mismatch.
	ErrDecodedSizeMismatch = errors.New("LZ4 decoded size mismatch")
	// ErrBlockLengthMismatch indicates leftover bytes after decode.
	ErrBlockLengthMismatch = errors.New("LZ4 block length mismatch")
)
