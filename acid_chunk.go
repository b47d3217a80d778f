package wavmeta

import (
	"encoding/binary"
)

// acid property flags.
const (
	acidOneShot   = 0x01
	acidRootNote  = 0x02
	acidStretch   = 0x04
	acidDiskBased = 0x08
	acidUnknown   = 0x10
)

// AcidChunk is the ACID loop information chunk.
type AcidChunk struct {
	ChunkHeader
	Properties       uint32  `json:"properties"`
	IsOneShot        bool    `json:"is_oneshot"`
	IsLoop           bool    `json:"is_loop"`
	IsRootNoteSet    bool    `json:"is_root_note"`
	IsStretched      bool    `json:"is_stretched"`
	IsDiskBased      bool    `json:"is_disk_based"`
	IsRAMBased       bool    `json:"is_ram_based"`
	IsUnknown        bool    `json:"is_unknown"`
	RootNote         uint16  `json:"root_note"`
	UnknownOne       uint16  `json:"unknown_one"`
	UnknownTwo       float32 `json:"unknown_two"`
	BeatCount        uint32  `json:"beat_count"`
	MeterDenominator uint16  `json:"meter_denominator"`
	MeterNumerator   uint16  `json:"meter_numerator"`
	Tempo            float32 `json:"tempo"`
}

func decodeAcidChunk(ch RawChunk, order binary.ByteOrder) (Chunk, []SanityError, error) {
	f := newFieldReader(ch.Data, order)
	acid := &AcidChunk{
		Properties:       f.u32(),
		RootNote:         f.u16(),
		UnknownOne:       f.u16(),
		UnknownTwo:       f.f32(),
		BeatCount:        f.u32(),
		MeterDenominator: f.u16(),
		MeterNumerator:   f.u16(),
		Tempo:            f.f32(),
	}

	acid.IsOneShot = acid.Properties&acidOneShot != 0
	acid.IsLoop = !acid.IsOneShot
	acid.IsRootNoteSet = acid.Properties&acidRootNote != 0
	acid.IsStretched = acid.Properties&acidStretch != 0
	acid.IsDiskBased = acid.Properties&acidDiskBased != 0
	acid.IsRAMBased = !acid.IsDiskBased
	acid.IsUnknown = acid.Properties&acidUnknown != 0

	if f.short {
		return acid, []SanityError{truncated(ch.ID, len(ch.Data), f.off)}, nil
	}

	return acid, nil, nil
}
