package wavmeta

import (
	"encoding/binary"
	"fmt"
)

// smpl chunk is documented here:
// https://sites.google.com/site/musicgapi/technical-documents/wav-file-format#smpl

const sampleLoopSize = 24

// SMPTE is the decomposed SMPTE offset of a smpl chunk.
type SMPTE struct {
	Hours   uint8 `json:"hours"`
	Minutes uint8 `json:"minutes"`
	Seconds uint8 `json:"seconds"`
	Frames  uint8 `json:"frames"`
}

// ParseSMPTE splits a packed SMPTE offset into its four byte fields.
func ParseSMPTE(offset uint32) SMPTE {
	return SMPTE{
		Hours:   uint8(offset >> 24 & 0xFF),
		Minutes: uint8(offset >> 16 & 0xFF),
		Seconds: uint8(offset >> 8 & 0xFF),
		Frames:  uint8(offset & 0xFF),
	}
}

// Format renders the offset as HH:MM:SS:FF/<smpte format>.
func (s SMPTE) Format(smpteFormat int32) string {
	return fmt.Sprintf("%02d:%02d:%02d:%02d/%d", s.Hours, s.Minutes, s.Seconds, s.Frames, smpteFormat)
}

// SampleLoop is one loop of a smpl chunk.
type SampleLoop struct {
	ID        uint32 `json:"identifier"`
	Type      uint32 `json:"type"`
	Start     uint32 `json:"start"`
	End       uint32 `json:"end"`
	Fraction  uint32 `json:"fraction"`
	PlayCount uint32 `json:"play_count"`
}

// SampleChunk is the smpl chunk.
type SampleChunk struct {
	ChunkHeader
	Manufacturer      int32        `json:"manufacturer"`
	Product           int32        `json:"product"`
	SamplePeriod      int32        `json:"sample_period"`
	MIDIUnityNote     int32        `json:"midi_unity_note"`
	MIDIPitchFraction int32        `json:"midi_pitch_fraction"`
	SMPTEFormat       int32        `json:"smpte_format"`
	SMPTEOffset       string       `json:"smpte_offset"`
	SampleLoopCount   int32        `json:"sample_loops"`
	SamplerDataSize   int32        `json:"sampler_data_size"`
	Loops             []SampleLoop `json:"loops,omitempty"`
	SamplerData       []byte       `json:"sampler_data,omitempty"`
}

func decodeSamplerChunk(ch RawChunk, order binary.ByteOrder) (Chunk, []SanityError, error) {
	var sanity []SanityError

	f := newFieldReader(ch.Data, order)
	smpl := &SampleChunk{
		Manufacturer:      f.i32(),
		Product:           f.i32(),
		SamplePeriod:      f.i32(),
		MIDIUnityNote:     f.i32(),
		MIDIPitchFraction: f.i32(),
		SMPTEFormat:       f.i32(),
	}
	smpl.SMPTEOffset = ParseSMPTE(f.u32()).Format(smpl.SMPTEFormat)
	smpl.SampleLoopCount = f.i32()
	smpl.SamplerDataSize = f.i32()

	if f.short {
		return smpl, []SanityError{truncated(ch.ID, len(ch.Data), f.off)}, nil
	}

	loops := max(smpl.SampleLoopCount, 0)

	n := cappedCount(uint32(loops), f.remaining(), sampleLoopSize)
	if n < int(loops) {
		sanity = append(sanity, truncated(ch.ID, len(ch.Data), f.off+int(loops)*sampleLoopSize))
	}

	for i := 0; i < n; i++ {
		smpl.Loops = append(smpl.Loops, SampleLoop{
			ID:        f.u32(),
			Type:      f.u32(),
			Start:     f.u32(),
			End:       f.u32(),
			Fraction:  f.u32(),
			PlayCount: f.u32(),
		})
	}

	if smpl.SamplerDataSize > 0 {
		want := f.off + int(smpl.SamplerDataSize)
		if want > len(ch.Data) && len(sanity) == 0 {
			sanity = append(sanity, truncated(ch.ID, len(ch.Data), want))
		}

		end := min(want, len(ch.Data))
		smpl.SamplerData = append([]byte(nil), ch.Data[f.off:end]...)
	}

	return smpl, sanity, nil
}
