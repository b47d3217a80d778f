package wavmeta

import (
	"encoding/binary"
)

// See https://adm.ebu.io/reference/excursions/chna_chunk.html
const audioIDSize = 40

// AudioID maps one track of the file to its ADM identifiers.
type AudioID struct {
	TrackIndex     uint16 `json:"track_index"`
	UID            string `json:"uid"`
	TrackReference string `json:"track_reference"`
	PackReference  string `json:"pack_reference"`
	// Padded reports whether the trailing pad byte was NUL.
	Padded bool `json:"padded"`
}

// ChnaChunk is the ADM channel assignment chunk.
type ChnaChunk struct {
	ChunkHeader
	TrackCount uint16    `json:"track_count"`
	UIDCount   uint16    `json:"uid_count"`
	TrackIDs   []AudioID `json:"track_ids,omitempty"`
}

func decodeChnaChunk(ch RawChunk, order binary.ByteOrder) (Chunk, []SanityError, error) {
	var sanity []SanityError

	f := newFieldReader(ch.Data, order)
	chna := &ChnaChunk{
		TrackCount: f.u16(),
		UIDCount:   f.u16(),
	}

	if f.short {
		return chna, []SanityError{truncated(ch.ID, len(ch.Data), f.off)}, nil
	}

	n := cappedCount(uint32(chna.UIDCount), f.remaining(), audioIDSize)
	if n < int(chna.UIDCount) {
		sanity = append(sanity, truncated(ch.ID, len(ch.Data), f.off+int(chna.UIDCount)*audioIDSize))
	}

	for i := 0; i < n; i++ {
		chna.TrackIDs = append(chna.TrackIDs, AudioID{
			TrackIndex:     f.u16(),
			UID:            f.text(12),
			TrackReference: f.text(14),
			PackReference:  f.text(11),
			Padded:         f.u8() == 0,
		})
	}

	return chna, sanity, nil
}
