package wavmeta

import (
	"encoding/binary"
	"math/big"
)

// DataChunk describes the sample data chunk. Samples are never read.
type DataChunk struct {
	ChunkHeader
	ByteCount uint64 `json:"byte_count"`
	// FrameCount is set once the fmt chunk block alignment is known.
	FrameCount *uint64 `json:"frame_count,omitempty"`
}

func decodeDataChunk(ch RawChunk, _ binary.ByteOrder) (Chunk, []SanityError, error) {
	return &DataChunk{ByteCount: ch.Size}, nil, nil
}

// FactChunk holds the sample count of compressed streams.
type FactChunk struct {
	ChunkHeader
	Samples uint32 `json:"samples"`
}

func decodeFactChunk(ch RawChunk, order binary.ByteOrder) (Chunk, []SanityError, error) {
	f := newFieldReader(ch.Data, order)
	fact := &FactChunk{Samples: f.u32()}

	if f.short {
		return fact, []SanityError{truncated(ch.ID, len(ch.Data), f.off)}, nil
	}

	return fact, nil, nil
}

// InstrumentChunk is the inst chunk.
type InstrumentChunk struct {
	ChunkHeader
	UnshiftedNote uint8 `json:"unshifted_note"`
	FineTuning    uint8 `json:"fine_tuning"`
	Gain          uint8 `json:"gain"`
	LowNote       uint8 `json:"low_note"`
	HighNote      uint8 `json:"high_note"`
	LowVelocity   uint8 `json:"low_velocity"`
	HighVelocity  uint8 `json:"high_velocity"`
}

func decodeInstChunk(ch RawChunk, order binary.ByteOrder) (Chunk, []SanityError, error) {
	f := newFieldReader(ch.Data, order)
	inst := &InstrumentChunk{
		UnshiftedNote: f.u8(),
		FineTuning:    f.u8(),
		Gain:          f.u8(),
		LowNote:       f.u8(),
		HighNote:      f.u8(),
		LowVelocity:   f.u8(),
		HighVelocity:  f.u8(),
	}

	if f.short {
		return inst, []SanityError{truncated(ch.ID, len(ch.Data), f.off)}, nil
	}

	return inst, nil, nil
}

// Clipboard formats of the DISP chunk.
const (
	CFText     = 1
	CFBitmap   = 2
	CFMetafile = 3
	CFDIB      = 8
	CFPalette  = 9
)

// DisplayTypeName names a DISP clipboard format.
func DisplayTypeName(cf uint32) string {
	switch cf {
	case CFText:
		return "CF_TEXT"
	case CFBitmap:
		return "CF_BITMAP"
	case CFMetafile:
		return "CF_METAFILE"
	case CFDIB:
		return "CF_DIB"
	case CFPalette:
		return "CF_PALETTE"
	default:
		return "UNKNOWN_TYPE"
	}
}

// DisplayChunk is the DISP chunk.
type DisplayChunk struct {
	ChunkHeader
	Type string `json:"type"`
	Data string `json:"data,omitempty"`
}

func decodeDisplayChunk(ch RawChunk, order binary.ByteOrder) (Chunk, []SanityError, error) {
	f := newFieldReader(ch.Data, order)
	disp := &DisplayChunk{Type: DisplayTypeName(f.u32())}
	disp.Data = decodeText(f.rest())

	if f.short {
		return disp, []SanityError{truncated(ch.ID, len(ch.Data), f.off)}, nil
	}

	return disp, nil, nil
}

// MD5Chunk holds the checksum of the sample data.
type MD5Chunk struct {
	ChunkHeader
	Checksum *big.Int `json:"checksum"`
}

func decodeMD5Chunk(ch RawChunk, order binary.ByteOrder) (Chunk, []SanityError, error) {
	f := newFieldReader(ch.Data, order)
	raw := f.take(16)

	// big.Int reads big-endian bytes; reverse them for little-endian streams.
	if order == binary.LittleEndian {
		for i, j := 0, len(raw)-1; i < j; i, j = i+1, j-1 {
			raw[i], raw[j] = raw[j], raw[i]
		}
	}

	md5 := &MD5Chunk{Checksum: new(big.Int).SetBytes(raw)}

	if f.short {
		return md5, []SanityError{truncated(ch.ID, len(ch.Data), f.off)}, nil
	}

	return md5, nil, nil
}
