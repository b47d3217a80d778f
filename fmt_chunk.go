package wavmeta

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

const (
	wavFormatPCM        = 1
	wavFormatIEEEFloat  = 3
	wavFormatExtensible = 0xFFFE

	fmtSizePCM        = 16
	fmtSizeExtended   = 18
	fmtSizeExtensible = 40
	fmtSizePVOCEX     = 80
	pvocExtensionSize = 32
)

// KSDATAFORMAT sub-format GUIDs share this tail after the format code.
var ksSubFormatGUIDTail = [12]byte{0x00, 0x00, 0x10, 0x00, 0x80, 0x00, 0x00, 0xAA, 0x00, 0x38, 0x9B, 0x71}

// The PVOC-EX GUID shows up in both its canonical and byte swapped form.
var pvocExGUIDs = []uuid.UUID{
	uuid.MustParse("8312B9C2-2E6E-11d4-A824-DE5B96C3AB21"),
	uuid.MustParse("c2b91283-6e2e-d411-a824-de5b96c3ab21"),
}

// speakerPositions maps channel mask bits to speaker names, in bit order.
var speakerPositions = []struct {
	bit  uint32
	name string
}{
	{0x0001, "Front Left"},
	{0x0002, "Front Right"},
	{0x0004, "Front Center"},
	{0x0008, "Low Frequency"},
	{0x0010, "Back Left"},
	{0x0020, "Back Right"},
	{0x0040, "Front Left of Center"},
	{0x0080, "Front Right of Center"},
	{0x0100, "Back Center"},
	{0x0200, "Side Left"},
	{0x0400, "Side Right"},
	{0x0800, "Top Center"},
	{0x1000, "Top Front Left"},
	{0x2000, "Top Front Right"},
	{0x4000, "Top Back Left"},
	{0x8000, "Top Back Right"},
}

// FormatMode is the variant the fmt chunk resolved to.
type FormatMode int

const (
	// ModeUnknown means no fmt chunk was decoded.
	ModeUnknown FormatMode = iota
	ModePCM
	ModeExtended
	ModeExtensible
	ModePVOCEX
)

func (m FormatMode) String() string {
	switch m {
	case ModePCM:
		return "WAVE_FORMAT_PCM"
	case ModeExtended:
		return "WAVE_FORMAT_EXTENDED"
	case ModeExtensible:
		return "WAVE_FORMAT_EXTENSIBLE"
	case ModePVOCEX:
		return "WAVE_FORMAT_PVOC_EX"
	default:
		return "UNKNOWN"
	}
}

func (m FormatMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// Format is implemented by the four fmt chunk variants.
type Format interface {
	Chunk
	Mode() FormatMode
	Core() *FormatCore
}

// FormatCore holds the fields shared by every fmt chunk variant.
type FormatCore struct {
	ChunkHeader
	AudioFormat    uint16 `json:"audio_format"`
	NumChannels    uint16 `json:"num_channels"`
	SampleRate     uint32 `json:"sample_rate"`
	ByteRate       uint32 `json:"byte_rate"`
	BlockAlign     uint16 `json:"block_align"`
	BitsPerSample  uint16 `json:"bits_per_sample"`
	Bitrate        uint64 `json:"bitrate"`
	BitrateDisplay string `json:"bitrate_long"`
}

func (c *FormatCore) Core() *FormatCore { return c }

// PCMFormat is a 16 byte fmt chunk.
type PCMFormat struct {
	FormatCore
}

func (*PCMFormat) Mode() FormatMode { return ModePCM }

// ExtendedFormat is an 18 byte fmt chunk carrying an extension size.
type ExtendedFormat struct {
	FormatCore
	ExtensionSize uint16 `json:"extension_size"`
}

func (*ExtendedFormat) Mode() FormatMode { return ModeExtended }

// SubFormat is the sub-format block of WAVE_FORMAT_EXTENSIBLE.
type SubFormat struct {
	// AudioFormat is the true format code, the first two GUID bytes.
	AudioFormat uint16    `json:"audio_format"`
	GUID        uuid.UUID `json:"guid"`
}

// IsStandard reports whether the GUID is a KSDATAFORMAT_SUBTYPE GUID built
// from a plain format code.
func (s SubFormat) IsStandard() bool {
	return bytes.Equal(s.GUID[4:], ksSubFormatGUIDTail[:])
}

// ExtensibleFormat is a WAVE_FORMAT_EXTENSIBLE fmt chunk.
type ExtensibleFormat struct {
	FormatCore
	ExtensionSize      uint16    `json:"extension_size"`
	ValidBitsPerSample uint16    `json:"valid_bits_per_sample"`
	ChannelMask        uint32    `json:"channel_mask"`
	SpeakerLayout      []string  `json:"speaker_layout,omitempty"`
	SubFormat          SubFormat `json:"sfmt"`
}

func (*ExtensibleFormat) Mode() FormatMode { return ModeExtensible }

// PVOCEXFormat is an extensible fmt chunk carrying phase vocoder analysis
// parameters.
type PVOCEXFormat struct {
	ExtensibleFormat
	Version        uint32  `json:"version"`
	PVOCSize       uint32  `json:"pvoc_size"`
	WordFormat     uint16  `json:"word_format"`
	AnalysisFormat uint16  `json:"analysis_format"`
	SourceFormat   uint16  `json:"source_format"`
	WindowType     uint16  `json:"window_type"`
	BinCount       uint32  `json:"bin_count"`
	WindowLength   uint32  `json:"window_length"`
	Overlap        uint32  `json:"overlap"`
	FrameAlign     uint32  `json:"frame_align"`
	AnalysisRate   float32 `json:"analysis_rate"`
	WindowParam    float32 `json:"window_param"`
}

func (*PVOCEXFormat) Mode() FormatMode { return ModePVOCEX }

// ResolveFormatMode picks the fmt chunk variant from the format code, the
// declared chunk size and, for extensible chunks, the sub-format GUID.
func ResolveFormatMode(audioFormat uint16, size uint64, guid uuid.UUID) FormatMode {
	switch {
	case audioFormat != wavFormatPCM && size == fmtSizePCM:
		return ModePCM
	case audioFormat == wavFormatExtensible:
		if isPVOCEX(guid) && size == fmtSizePVOCEX {
			return ModePVOCEX
		}

		return ModeExtensible
	case size == fmtSizeExtended:
		return ModeExtended
	default:
		return ModePCM
	}
}

func isPVOCEX(guid uuid.UUID) bool {
	for _, g := range pvocExGUIDs {
		if g == guid {
			return true
		}
	}

	return false
}

// SpeakerLayout lists the speaker positions set in a channel mask.
func SpeakerLayout(mask uint32) []string {
	var out []string

	for _, sp := range speakerPositions {
		if mask&sp.bit != 0 {
			out = append(out, sp.name)
		}
	}

	return out
}

func bitrateDisplay(bitrate uint64) string {
	s := strconv.FormatFloat(float64(bitrate)/1000, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}

	return s + " kb/s"
}

func decodeFmtChunk(ch RawChunk, order binary.ByteOrder) (Chunk, []SanityError, error) {
	var sanity []SanityError

	f := newFieldReader(ch.Data, order)

	core := FormatCore{
		AudioFormat:   f.u16(),
		NumChannels:   f.u16(),
		SampleRate:    f.u32(),
		ByteRate:      f.u32(),
		BlockAlign:    f.u16(),
		BitsPerSample: f.u16(),
	}
	core.Bitrate = uint64(core.ByteRate) * 8
	core.BitrateDisplay = bitrateDisplay(core.Bitrate)

	var out Format

	mode := ResolveFormatMode(core.AudioFormat, ch.Size, peekSubFormat(ch.Data))

	switch mode {
	case ModeExtensible, ModePVOCEX:
		ext, extSanity := decodeExtensible(f, core, ch.Size, mode)
		sanity = append(sanity, extSanity...)
		out = ext

	case ModeExtended:
		out = &ExtendedFormat{FormatCore: core, ExtensionSize: f.u16()}

	default:
		switch {
		case core.AudioFormat != wavFormatPCM && ch.Size == fmtSizePCM:
			// Seen in the wild on IEEE float files; keep the core fields.
			sanity = append(sanity, newSanityError(formatChunkLocation, "AUDIO FORMAT / SIZE",
				"NON-PCM FORMATS MUST CONTAIN AN EXTENSION FIELD."))
		case ch.Size != fmtSizePCM:
			sanity = append(sanity, newSanityError(formatChunkLocation, "AUDIO FORMAT / SIZE",
				fmt.Sprintf("AUDIO FORMAT (PCM / 1 / 0x0001) MUST BE SIZE 16 NOT %d.", ch.Size)))
		}

		out = &PCMFormat{FormatCore: core}
	}

	if f.short {
		sanity = append(sanity, truncated(ch.ID, len(ch.Data), f.off))
	}

	return out, sanity, nil
}

// peekSubFormat reads the sub-format GUID of an extensible fmt payload
// without consuming it.
func peekSubFormat(data []byte) uuid.UUID {
	f := newFieldReader(data, binary.LittleEndian)
	f.seek(24)

	guid, _ := uuid.FromBytes(f.take(16))

	return guid
}

func decodeExtensible(f *fieldReader, core FormatCore, size uint64, mode FormatMode) (Format, []SanityError) {
	var sanity []SanityError

	ext := ExtensibleFormat{
		FormatCore:         core,
		ExtensionSize:      f.u16(),
		ValidBitsPerSample: f.u16(),
		ChannelMask:        f.u32(),
	}
	ext.SpeakerLayout = SpeakerLayout(ext.ChannelMask)

	raw := f.take(16)
	guid, _ := uuid.FromBytes(raw)
	ext.SubFormat = SubFormat{
		AudioFormat: f.order.Uint16(raw[:2]),
		GUID:        guid,
	}

	if mode != ModePVOCEX {
		switch {
		case isPVOCEX(ext.SubFormat.GUID):
			sanity = append(sanity, newSanityError(formatChunkLocation, "PVOC-EX SIZE",
				fmt.Sprintf("PVOC-EX FORMAT MUST BE SIZE 80 NOT %d.", size)))
		case size != fmtSizeExtensible:
			sanity = append(sanity, newSanityError(formatChunkLocation, "AUDIO FORMAT / SIZE",
				fmt.Sprintf("AUDIO FORMAT (EXTENSIBLE / 65534 / 0xFFFE) MUST BE SIZE 40 NOT %d", size)))
		}

		return &ext, sanity
	}

	f.seek(40)

	pvoc := &PVOCEXFormat{ExtensibleFormat: ext}
	pvoc.Version = f.u32()
	pvoc.PVOCSize = f.u32()

	f.seek(48)
	pvoc.WordFormat = f.u16()
	pvoc.AnalysisFormat = f.u16()
	pvoc.SourceFormat = f.u16()
	pvoc.WindowType = f.u16()
	pvoc.BinCount = f.u32()
	pvoc.WindowLength = f.u32()
	pvoc.Overlap = f.u32()
	pvoc.FrameAlign = f.u32()
	pvoc.AnalysisRate = f.f32()
	pvoc.WindowParam = f.f32()

	if pvoc.PVOCSize != pvocExtensionSize {
		sanity = append(sanity, newSanityError(formatChunkLocation, "PVOC-EX EXTENSION SIZE",
			fmt.Sprintf("PVOC-EX EXTENSION MUST BE SIZE 32 NOT %d.", pvoc.PVOCSize)))
	}

	return pvoc, sanity
}
