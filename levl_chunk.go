package wavmeta

import (
	"encoding/binary"
)

const (
	levlTimestampOffset = 32
	levlReservedOffset  = 60
	levlDataOffset      = 120
)

// PeakEnvelopeChunk is the EBU Tech 3285 supplement 3 peak envelope chunk.
// The envelope points are kept as raw bytes.
type PeakEnvelopeChunk struct {
	ChunkHeader
	Version          uint32 `json:"version"`
	Format           uint32 `json:"format"`
	PointsPerValue   uint32 `json:"points_per_value"`
	BlockSize        uint32 `json:"block_size"`
	ChannelCount     uint32 `json:"channel_count"`
	FrameCount       uint32 `json:"frame_count"`
	Position         uint32 `json:"position"`
	Offset           uint32 `json:"offset"`
	Timestamp        string `json:"timestamp,omitempty"`
	Reserved         string `json:"reserved,omitempty"`
	PeakEnvelopeData []byte `json:"peak_envelope_data,omitempty"`
}

// decodePeakEnvelopeChunk ignores the stream byte order: levl is always
// little-endian.
func decodePeakEnvelopeChunk(ch RawChunk, _ binary.ByteOrder) (Chunk, []SanityError, error) {
	f := newFieldReader(ch.Data, binary.LittleEndian)
	levl := &PeakEnvelopeChunk{
		Version:        f.u32(),
		Format:         f.u32(),
		PointsPerValue: f.u32(),
		BlockSize:      f.u32(),
		ChannelCount:   f.u32(),
		FrameCount:     f.u32(),
		Position:       f.u32(),
		Offset:         f.u32(),
	}
	levl.Timestamp = f.text(levlReservedOffset - levlTimestampOffset)
	levl.Reserved = f.text(levlDataOffset - levlReservedOffset)

	if f.short {
		return levl, []SanityError{truncated(ch.ID, len(ch.Data), f.off)}, nil
	}

	levl.PeakEnvelopeData = f.rest()

	return levl, nil, nil
}
