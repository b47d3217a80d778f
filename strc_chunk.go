package wavmeta

import (
	"encoding/binary"
	"fmt"
)

// The strc layout is reverse engineered from files written by slicing
// software. Field names other than the slice count and sample positions are
// placeholders.

const (
	strcHeaderSize = 28
	strcSliceSize  = 32
)

// SliceBlock is one slice record of a strc chunk.
type SliceBlock struct {
	Data1           uint32 `json:"data1"`
	Data2           uint32 `json:"data2"`
	SamplePosition  uint64 `json:"sample_position"`
	SamplePosition2 uint64 `json:"sample_position2"`
	Data3           uint32 `json:"data3"`
	Data4           uint32 `json:"data4"`
}

// StrcChunk is the undocumented slice chunk.
type StrcChunk struct {
	ChunkHeader
	Unknown1    uint32       `json:"unknown1"`
	SliceCount  uint32       `json:"slice_count"`
	Unknown2    uint32       `json:"unknown2"`
	Unknown3    uint32       `json:"unknown3"`
	Unknown4    uint32       `json:"unknown4"`
	Unknown5    uint32       `json:"unknown5"`
	Unknown6    uint32       `json:"unknown6"`
	SliceBlocks []SliceBlock `json:"slice_blocks,omitempty"`
}

func decodeStrcChunk(ch RawChunk, order binary.ByteOrder) (Chunk, []SanityError, error) {
	var sanity []SanityError

	f := newFieldReader(ch.Data, order)
	strc := &StrcChunk{
		Unknown1:   f.u32(),
		SliceCount: f.u32(),
		Unknown2:   f.u32(),
		Unknown3:   f.u32(),
		Unknown4:   f.u32(),
		Unknown5:   f.u32(),
		Unknown6:   f.u32(),
	}

	if f.short {
		sanity = append(sanity, truncated(ch.ID, len(ch.Data), strcHeaderSize))
	}

	for i := uint32(0); i < strc.SliceCount; i++ {
		if f.off+strcSliceSize > len(ch.Data) {
			sanity = append(sanity, newSanityError(strcChunkLocation, fmt.Sprintf("SLICE %d", i),
				"NOT ENOUGH DATA TO UNPACK SLICE -- MISSING OR PADDED SLICE."))

			break
		}

		strc.SliceBlocks = append(strc.SliceBlocks, SliceBlock{
			Data1:           f.u32(),
			Data2:           f.u32(),
			SamplePosition:  f.u64(),
			SamplePosition2: f.u64(),
			Data3:           f.u32(),
			Data4:           f.u32(),
		})
	}

	if uint32(len(strc.SliceBlocks)) != strc.SliceCount {
		sanity = append(sanity, newSanityError(strcChunkLocation, "SLICE BLOCKS",
			fmt.Sprintf("EXPECTED %d SLICES -- GOT %d.", strc.SliceCount, len(strc.SliceBlocks))))
	}

	return strc, sanity, nil
}
