package dds

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/pierrec/lz4/v4"
)

const (
	// BlockMagicCOPY marks an uncompressed level body.
	BlockMagicCOPY = "COPY"
	// BlockMagicLZ4 marks an LZ4 chunk-stream level body.
	BlockMagicLZ4 = "LZ4 "

	// ChunkSize is the decoded size of every LZ4 chunk except the last.
	ChunkSize = 64 * 1024

	// lastChunkFlag marks the final chunk of an LZ4 chunk stream.
	lastChunkFlag = 0x80

	// maxLZ4Ratio bounds the decoded size of an LZ4 block per compressed byte.
	maxLZ4Ratio = 255
)

// enfusionMarker is "ENF1" as stored in Reserved1[1] by Enfusion tools.
var enfusionMarker = uint32(MakeFourCC('E', 'N', 'F', '1'))

// blockHeader is one block table entry.
type blockHeader struct {
	Magic string
	Size  int32
}

// hasEnfusionMarker reports whether the header was written by Enfusion tools.
func hasEnfusionMarker(header *Header) bool {
	return header.Reserved1[1] == enfusionMarker
}

// looksFramed reports whether payload starts with a block table entry.
func looksFramed(payload []byte) bool {
	if len(payload) < 8 {
		return false
	}
	magic := string(payload[:4])
	return magic == BlockMagicCOPY || magic == BlockMagicLZ4
}

// unwrapBaseLevel reads the block table at the start of payload and returns
// the inflated base level. Levels are stored smallest first, so the base
// level is the last body; earlier bodies are skipped.
func unwrapBaseLevel(payload []byte, levels int, format Format, width, height int) ([]byte, error) {
	r := bytes.NewReader(payload)

	table, err := readBlockTable(r, levels)
	if err != nil {
		return nil, err
	}

	for _, entry := range table[:len(table)-1] {
		if _, err := r.Seek(int64(entry.Size), io.SeekCurrent); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBlockBodyRead, err)
		}
	}

	base := table[len(table)-1]
	if r.Len() < int(base.Size) {
		return nil, fmt.Errorf("%w: %s: need %d bytes, have %d", ErrBlockBodyRead, base.Magic, base.Size, r.Len())
	}
	start := len(payload) - r.Len()
	body := payload[start : start+int(base.Size)]

	return inflateBlock(base.Magic, body, expectedDataLength(format, width, height))
}

func readBlockTable(r io.Reader, levels int) ([]blockHeader, error) {
	table := make([]blockHeader, 0, levels)
	var entry [8]byte

	for i := 0; i < levels; i++ {
		if _, err := io.ReadFull(r, entry[:4]); err != nil {
			return nil, fmt.Errorf("%w: %d: %v", ErrBlockTableMagicRead, i, err)
		}
		if _, err := io.ReadFull(r, entry[4:]); err != nil {
			return nil, fmt.Errorf("%w: %d: %v", ErrBlockTableSizeRead, i, err)
		}

		magic := string(entry[:4])
		if magic != BlockMagicCOPY && magic != BlockMagicLZ4 {
			return nil, fmt.Errorf("%w: %d: %q", ErrBlockTableUnknownMagic, i, magic)
		}

		size := int32(binary.LittleEndian.Uint32(entry[4:]))
		if size < 0 {
			return nil, fmt.Errorf("%w: %d: %d", ErrBlockTableInvalidSize, i, size)
		}

		table = append(table, blockHeader{Magic: magic, Size: size})
	}

	return table, nil
}

// inflateBlock returns the raw bytes of a level body.
func inflateBlock(magic string, body []byte, expected int) ([]byte, error) {
	switch magic {
	case BlockMagicCOPY:
		if len(body) != expected {
			return nil, fmt.Errorf("%w: expected %d, got %d", ErrCopySizeMismatch, expected, len(body))
		}
		return body, nil
	case BlockMagicLZ4:
		return inflateLZ4(body, expected)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBlockMagic, magic)
	}
}

// window keeps the most recent 64 KiB of decoded output, the dictionary
// every chunk may reference.
type window struct {
	buf [ChunkSize]byte
	n   int
}

func (w *window) bytes() []byte { return w.buf[:w.n] }

func (w *window) push(p []byte) {
	if len(p) >= len(w.buf) {
		w.n = copy(w.buf[:], p[len(p)-len(w.buf):])
		return
	}
	if keep := len(w.buf) - len(p); w.n > keep {
		copy(w.buf[:], w.buf[w.n-keep:w.n])
		w.n = keep
	}
	w.n += copy(w.buf[w.n:], p)
}

// inflateLZ4 decodes an LZ4 level body: an int32 decoded size followed by
// chunks of a 3-byte compressed size, a flag byte and an LZ4 block.
func inflateLZ4(body []byte, expected int) ([]byte, error) {
	if len(body) < 4 {
		return nil, fmt.Errorf("%w: need 4 bytes size prefix, have %d", ErrChunkStreamTruncated, len(body))
	}

	size := int(int32(binary.LittleEndian.Uint32(body)))
	if size <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidTargetSize, size)
	}
	if size != expected {
		return nil, fmt.Errorf("%w: expected %d, header says %d", ErrDecodedSizeMismatch, expected, size)
	}
	// an LZ4 block inflates at most 255 bytes per input byte
	if limit := (len(body) - 4) * maxLZ4Ratio; size > limit {
		return nil, fmt.Errorf("%w: %d compressed bytes cannot hold %d", ErrChunkStreamTruncated, len(body)-4, size)
	}

	out := make([]byte, size)
	written := 0
	stream := body[4:]
	dict := new(window)

	for {
		if len(stream) < 4 {
			return nil, fmt.Errorf("%w: need 4 bytes chunk header, have %d", ErrChunkStreamTruncated, len(stream))
		}

		chunkLen := int(stream[0]) | int(stream[1])<<8 | int(stream[2])<<16
		flags := stream[3]
		stream = stream[4:]

		if flags&^lastChunkFlag != 0 {
			return nil, fmt.Errorf("%w: 0x%02x", ErrUnknownLZ4Flags, flags)
		}
		if chunkLen <= 0 || chunkLen > len(stream) {
			return nil, fmt.Errorf("%w: %d (remaining %d)", ErrInvalidChunkSize, chunkLen, len(stream))
		}
		if written >= size {
			return nil, ErrDecodeOverrun
		}

		dst := out[written:min(written+ChunkSize, size)]
		n, err := lz4.UncompressBlockWithDict(stream[:chunkLen], dst, dict.bytes())
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLZ4Decode, err)
		}

		dict.push(dst[:n])
		written += n
		stream = stream[chunkLen:]

		if flags&lastChunkFlag != 0 {
			break
		}
	}

	if written != size {
		return nil, fmt.Errorf("%w: expected %d, got %d", ErrDecodedSizeMismatch, size, written)
	}
	if len(stream) != 0 {
		return nil, fmt.Errorf("%w: %d bytes left after decode", ErrBlockLengthMismatch, len(stream))
	}

	return out, nil
}
