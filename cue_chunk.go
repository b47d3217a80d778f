package wavmeta

import (
	"encoding/binary"
)

const cuePointSize = 24

// CuePoint is one marker of a cue chunk.
type CuePoint struct {
	ID           uint32 `json:"identifier"`
	Position     uint32 `json:"position"`
	DataChunkID  uint32 `json:"data_chunk_id"`
	ChunkStart   uint32 `json:"chunk_start"`
	BlockStart   uint32 `json:"block_start"`
	SampleOffset uint32 `json:"sample_offset"`
}

// CueChunk holds the cue points of a stream, in stored order.
type CueChunk struct {
	ChunkHeader
	Count  uint32     `json:"count"`
	Points []CuePoint `json:"points,omitempty"`
}

func decodeCueChunk(ch RawChunk, order binary.ByteOrder) (Chunk, []SanityError, error) {
	var sanity []SanityError

	f := newFieldReader(ch.Data, order)
	cue := &CueChunk{Count: f.u32()}

	n := cappedCount(cue.Count, f.remaining(), cuePointSize)
	if n < int(cue.Count) {
		sanity = append(sanity, truncated(ch.ID, len(ch.Data), f.off+int(cue.Count)*cuePointSize))
	}

	cue.Points = make([]CuePoint, 0, n)
	for i := 0; i < n; i++ {
		cue.Points = append(cue.Points, CuePoint{
			ID:           f.u32(),
			Position:     f.u32(),
			DataChunkID:  f.u32(),
			ChunkStart:   f.u32(),
			BlockStart:   f.u32(),
			SampleOffset: f.u32(),
		})
	}

	if f.short && len(sanity) == 0 {
		sanity = append(sanity, truncated(ch.ID, len(ch.Data), f.off))
	}

	return cue, sanity, nil
}

// cappedCount limits a stored record count to what the payload can hold.
func cappedCount(count uint32, available, recordSize int) int {
	fit := available / recordSize
	if uint64(count) > uint64(fit) {
		return fit
	}

	return int(count)
}
