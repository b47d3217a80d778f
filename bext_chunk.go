package wavmeta

import (
	"encoding/binary"
)

const (
	bextDescriptionLen         = 256
	bextOriginatorLen          = 32
	bextOriginatorReferenceLen = 32
	bextOriginationDateLen     = 10
	bextOriginationTimeLen     = 8
	bextUMIDLen                = 63
	// bextCodingHistoryOffset is where the coding history starts, after the
	// reserved area.
	bextCodingHistoryOffset = 602
)

// BroadcastChunk is the EBU Tech 3285 broadcast extension chunk.
type BroadcastChunk struct {
	ChunkHeader
	Description          string `json:"description,omitempty"`
	Originator           string `json:"originator,omitempty"`
	OriginatorReference  string `json:"originator_reference,omitempty"`
	OriginationDate      string `json:"origin_date,omitempty"`
	OriginationTime      string `json:"origin_time,omitempty"`
	TimeReferenceLow     uint32 `json:"time_reference_low"`
	TimeReferenceHigh    uint32 `json:"time_reference_high"`
	Version              uint16 `json:"version"`
	UMID                 string `json:"smpte_umid,omitempty"`
	LoudnessValue        uint16 `json:"loudness_value"`
	LoudnessRange        uint16 `json:"loudness_range"`
	MaxTruePeakLevel     uint16 `json:"max_true_peak_level"`
	MaxMomentaryLoudness uint16 `json:"max_momentary_loudness"`
	MaxShortTermLoudness uint16 `json:"max_short_term_loudness"`
	CodingHistory        string `json:"coding_history,omitempty"`
}

// TimeReference returns the sample count since midnight as one value.
func (b *BroadcastChunk) TimeReference() uint64 {
	return combine(b.TimeReferenceLow, b.TimeReferenceHigh)
}

func decodeBroadcastChunk(ch RawChunk, order binary.ByteOrder) (Chunk, []SanityError, error) {
	f := newFieldReader(ch.Data, order)
	bext := &BroadcastChunk{
		Description:         f.text(bextDescriptionLen),
		Originator:          f.text(bextOriginatorLen),
		OriginatorReference: f.text(bextOriginatorReferenceLen),
		OriginationDate:     f.text(bextOriginationDateLen),
		OriginationTime:     f.text(bextOriginationTimeLen),
		TimeReferenceLow:    f.u32(),
		TimeReferenceHigh:   f.u32(),
		Version:             f.u16(),
		UMID:                f.text(bextUMIDLen),
	}
	bext.LoudnessValue = f.u16()
	bext.LoudnessRange = f.u16()
	bext.MaxTruePeakLevel = f.u16()
	bext.MaxMomentaryLoudness = f.u16()
	bext.MaxShortTermLoudness = f.u16()

	if f.short {
		return bext, []SanityError{truncated(ch.ID, len(ch.Data), f.off)}, nil
	}

	f.seek(bextCodingHistoryOffset)
	bext.CodingHistory = decodeText(f.rest())

	return bext, nil, nil
}
