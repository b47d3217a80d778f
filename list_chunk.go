package wavmeta

import (
	"encoding/binary"
	"fmt"
)

var (
	// See http://bwfmetaedit.sourceforge.net/listinfo.html
	markerIARL    = FourCC{'I', 'A', 'R', 'L'}
	markerIART    = FourCC{'I', 'A', 'R', 'T'}
	markerICMS    = FourCC{'I', 'C', 'M', 'S'}
	markerICMT    = FourCC{'I', 'C', 'M', 'T'}
	markerICOP    = FourCC{'I', 'C', 'O', 'P'}
	markerICRD    = FourCC{'I', 'C', 'R', 'D'}
	markerICRP    = FourCC{'I', 'C', 'R', 'P'}
	markerIDIM    = FourCC{'I', 'D', 'I', 'M'}
	markerIDPI    = FourCC{'I', 'D', 'P', 'I'}
	markerIENG    = FourCC{'I', 'E', 'N', 'G'}
	markerIGNR    = FourCC{'I', 'G', 'N', 'R'}
	markerIKEY    = FourCC{'I', 'K', 'E', 'Y'}
	markerILGT    = FourCC{'I', 'L', 'G', 'T'}
	markerIMED    = FourCC{'I', 'M', 'E', 'D'}
	markerINAM    = FourCC{'I', 'N', 'A', 'M'}
	markerIPLT    = FourCC{'I', 'P', 'L', 'T'}
	markerIPRD    = FourCC{'I', 'P', 'R', 'D'}
	markerISBJ    = FourCC{'I', 'S', 'B', 'J'}
	markerISFT    = FourCC{'I', 'S', 'F', 'T'}
	markerISRC    = FourCC{'I', 'S', 'R', 'C'}
	markerISRF    = FourCC{'I', 'S', 'R', 'F'}
	markerITCH    = FourCC{'I', 'T', 'C', 'H'}
	markerITRK    = FourCC{'I', 'T', 'R', 'K'}
	markerITRKBug = FourCC{'i', 't', 'r', 'k'}

	markerLabl = FourCC{'l', 'a', 'b', 'l'}
	markerNote = FourCC{'n', 'o', 't', 'e'}
	markerLtxt = FourCC{'l', 't', 'x', 't'}
)

// InfoChunk holds the text entries of a LIST/INFO chunk.
type InfoChunk struct {
	ChunkHeader
	ArchivalLocation string `json:"archival_location,omitempty"`
	Artist           string `json:"artist,omitempty"`
	Commissioned     string `json:"commissioned,omitempty"`
	Comment          string `json:"comment,omitempty"`
	Copyright        string `json:"copyright,omitempty"`
	CreationDate     string `json:"creation_date,omitempty"`
	Cropped          string `json:"cropped,omitempty"`
	Dimensions       string `json:"dimensions,omitempty"`
	DotsPerInch      string `json:"dots_per_inch,omitempty"`
	Engineer         string `json:"engineer,omitempty"`
	Genre            string `json:"genre,omitempty"`
	Keywords         string `json:"keywords,omitempty"`
	Lightness        string `json:"lightness,omitempty"`
	Medium           string `json:"medium,omitempty"`
	Title            string `json:"title,omitempty"`
	Palette          string `json:"palette,omitempty"`
	Product          string `json:"product,omitempty"`
	// Album mirrors Product; IPRD is used for both.
	Album       string `json:"album,omitempty"`
	Subject     string `json:"subject,omitempty"`
	Software    string `json:"software,omitempty"`
	Source      string `json:"source,omitempty"`
	SourceForm  string `json:"source_form,omitempty"`
	Technician  string `json:"technician,omitempty"`
	TrackNumber string `json:"track_number,omitempty"`
}

func (info *InfoChunk) set(tag FourCC, value string) {
	switch tag {
	case markerIARL:
		info.ArchivalLocation = value
	case markerIART:
		info.Artist = value
	case markerICMS:
		info.Commissioned = value
	case markerICMT:
		info.Comment = value
	case markerICOP:
		info.Copyright = value
	case markerICRD:
		info.CreationDate = value
	case markerICRP:
		info.Cropped = value
	case markerIDIM:
		info.Dimensions = value
	case markerIDPI:
		info.DotsPerInch = value
	case markerIENG:
		info.Engineer = value
	case markerIGNR:
		info.Genre = value
	case markerIKEY:
		info.Keywords = value
	case markerILGT:
		info.Lightness = value
	case markerIMED:
		info.Medium = value
	case markerINAM:
		info.Title = value
	case markerIPLT:
		info.Palette = value
	case markerIPRD:
		info.Product = value
		info.Album = value
	case markerISBJ:
		info.Subject = value
	case markerISFT:
		info.Software = value
	case markerISRC:
		info.Source = value
	case markerISRF:
		info.SourceForm = value
	case markerITCH:
		info.Technician = value
	case markerITRK, markerITRKBug:
		info.TrackNumber = value
	}
}

// decodeInfoChunk reads (tag, size, text) entries until the payload runs
// out. A sub header cut short ends the list.
func decodeInfoChunk(ch RawChunk, order binary.ByteOrder) (Chunk, []SanityError, error) {
	info := &InfoChunk{}

	for off := 0; off+8 <= len(ch.Data); {
		var tag FourCC
		copy(tag[:], ch.Data[off:off+4])

		size := int(order.Uint32(ch.Data[off+4 : off+8]))
		if size%2 != 0 {
			size++
		}

		off += 8
		end := min(off+size, len(ch.Data))

		if size < 0 || end < off {
			break
		}

		info.set(tag, decodeText(ch.Data[off:end]))
		off = end
	}

	return info, nil, nil
}

// LabelNote is the labl or note sub chunk of an adtl list.
type LabelNote struct {
	CuePointID uint32 `json:"cue_point_id"`
	Data       string `json:"data,omitempty"`
}

// LabeledText is the ltxt sub chunk of an adtl list.
type LabeledText struct {
	CuePointID   uint32 `json:"cue_point_id"`
	SampleLength uint32 `json:"sample_length"`
	PurposeID    uint32 `json:"purpose_id"`
	Country      uint16 `json:"country"`
	Language     uint16 `json:"language"`
	Dialect      uint16 `json:"dialect"`
	CodePage     uint16 `json:"code_page"`
	Data         string `json:"data,omitempty"`
}

// ADTLChunk holds the first sub chunk of a LIST/adtl chunk. Exactly one of
// Label and Text is set for known sub chunk identifiers.
type ADTLChunk struct {
	ChunkHeader
	SubChunkID FourCC       `json:"sub_chunk_id"`
	Label      *LabelNote   `json:"label,omitempty"`
	Text       *LabeledText `json:"text,omitempty"`
}

func decodeAdtlChunk(ch RawChunk, order binary.ByteOrder) (Chunk, []SanityError, error) {
	var sanity []SanityError

	f := newFieldReader(ch.Data, order)
	adtl := &ADTLChunk{}
	copy(adtl.SubChunkID[:], f.take(4))
	_ = f.u32() // sub chunk size, the list size already bounds the text

	switch adtl.SubChunkID {
	case markerLabl, markerNote:
		adtl.Label = &LabelNote{CuePointID: f.u32()}
		f.seek(16)
		adtl.Label.Data = decodeText(f.rest())

	case markerLtxt:
		adtl.Text = &LabeledText{
			CuePointID:   f.u32(),
			SampleLength: f.u32(),
			PurposeID:    f.u32(),
			Country:      f.u16(),
			Language:     f.u16(),
			Dialect:      f.u16(),
			CodePage:     f.u16(),
		}
		f.seek(32)
		adtl.Text.Data = decodeText(f.rest())

	default:
		sanity = append(sanity, newSanityError(chunkLocation(CIDAdtl), "SUB CHUNK",
			fmt.Sprintf("unknown adtl sub chunk %q.", adtl.SubChunkID.String())))
	}

	if f.short {
		sanity = append(sanity, truncated(CIDAdtl, len(ch.Data), f.off))
	}

	return adtl, sanity, nil
}
