package wavmeta

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-audio/audio"
)

var (
	// ErrNoFormat is returned by accessors that need the fmt chunk when the
	// stream has none.
	ErrNoFormat = errors.New("no fmt chunk in stream")
	// ErrNotKaiser is returned by PVOCEXReader.Beta for windows other than
	// Kaiser.
	ErrNotKaiser = errors.New("beta is a parameter of the PVOC_KAISER window")
)

// FormatInfo exposes the audio parameters of the fmt chunk, whatever its
// variant.
type FormatInfo interface {
	AudioFormat() uint16
	NumChannels() uint16
	SampleRate() uint32
	ByteRate() uint32
	BlockAlign() uint16
	BitsPerSample() uint16
	BitDepth() uint16
	Encoding() string
}

type formatFields struct {
	core *FormatCore
}

func (f formatFields) AudioFormat() uint16   { return f.core.AudioFormat }
func (f formatFields) NumChannels() uint16   { return f.core.NumChannels }
func (f formatFields) SampleRate() uint32    { return f.core.SampleRate }
func (f formatFields) ByteRate() uint32      { return f.core.ByteRate }
func (f formatFields) BlockAlign() uint16    { return f.core.BlockAlign }
func (f formatFields) BitsPerSample() uint16 { return f.core.BitsPerSample }
func (f formatFields) BitDepth() uint16      { return f.core.BitsPerSample }
func (f formatFields) Encoding() string      { return EncodingName(f.core.AudioFormat) }

// PCMReader reads a plain 16 byte fmt chunk.
type PCMReader struct {
	formatFields
	Format *PCMFormat
}

// ExtendedReader reads an 18 byte fmt chunk.
type ExtendedReader struct {
	formatFields
	Format *ExtendedFormat
}

func (r ExtendedReader) ExtensionSize() uint16 { return r.Format.ExtensionSize }

// ExtensibleReader reads a WAVE_FORMAT_EXTENSIBLE fmt chunk. The audio
// format it reports is the one of the sub-format, not 0xFFFE.
type ExtensibleReader struct {
	formatFields
	Format *ExtensibleFormat
}

func (r ExtensibleReader) AudioFormat() uint16 { return r.Format.SubFormat.AudioFormat }
func (r ExtensibleReader) Encoding() string    { return EncodingName(r.AudioFormat()) }

func (r ExtensibleReader) ExtensionSize() uint16      { return r.Format.ExtensionSize }
func (r ExtensibleReader) ValidBitsPerSample() uint16 { return r.Format.ValidBitsPerSample }
func (r ExtensibleReader) ChannelMask() uint32        { return r.Format.ChannelMask }
func (r ExtensibleReader) SpeakerLayout() []string    { return r.Format.SpeakerLayout }
func (r ExtensibleReader) GUID() string               { return r.Format.SubFormat.GUID.String() }

// PVOCEXReader reads a phase vocoder fmt chunk.
type PVOCEXReader struct {
	ExtensibleReader
	PVOC *PVOCEXFormat
}

// WordFormatName names the analysis word format.
func (r PVOCEXReader) WordFormatName() string {
	switch r.PVOC.WordFormat {
	case 0:
		return "IEEE_FLOAT"
	case 1:
		return "IEEE_DOUBLE"
	default:
		return "UNKNOWN"
	}
}

// AnalysisFormatName names the analysis format.
func (r PVOCEXReader) AnalysisFormatName() string {
	switch r.PVOC.AnalysisFormat {
	case 0:
		return "PVOC_AMP_FREQ"
	case 1:
		return "PVOC_AMP_PHASE"
	default:
		return "UNKNOWN"
	}
}

// SourceFormatName names the format of the analysed source.
func (r PVOCEXReader) SourceFormatName() string {
	switch r.PVOC.SourceFormat {
	case 0:
		return "WAVE_FORMAT_PCM"
	case wavFormatIEEEFloat:
		return "WAVE_FORMAT_IEEE_FLOAT"
	default:
		return "UNKNOWN"
	}
}

// WindowTypeName names the analysis window.
func (r PVOCEXReader) WindowTypeName() string {
	switch r.PVOC.WindowType {
	case 0:
		return "PVOC_HAMMING"
	case 1:
		return "PVOC_HANNING"
	case 2:
		return "PVOC_KAISER"
	case 3:
		return "PVOC_RECT"
	default:
		return "PVOC_CUSTOM"
	}
}

// Beta returns the Kaiser window parameter, 6.8 when the stream leaves it
// at zero.
func (r PVOCEXReader) Beta() (float32, error) {
	if r.PVOC.WindowType != 2 {
		return 0, ErrNotKaiser
	}

	if r.PVOC.WindowParam == 0 {
		return 6.8, nil
	}

	return r.PVOC.WindowParam, nil
}

// NewFormatInfo wraps a decoded fmt chunk in the reader of its variant.
func NewFormatInfo(format Format) FormatInfo {
	switch f := format.(type) {
	case *PCMFormat:
		return PCMReader{formatFields{&f.FormatCore}, f}
	case *ExtendedFormat:
		return ExtendedReader{formatFields{&f.FormatCore}, f}
	case *ExtensibleFormat:
		return ExtensibleReader{formatFields{&f.FormatCore}, f}
	case *PVOCEXFormat:
		ext := ExtensibleReader{formatFields{&f.FormatCore}, &f.ExtensibleFormat}
		return PVOCEXReader{ext, f}
	default:
		return nil
	}
}

// Reader is the decoded view of one stream.
type Reader struct {
	identity Identity
	fileSize int64

	master   FourCC
	formType FourCC
	order    ByteOrder
	ds64     *Ds64
	ids      []FourCC

	raw     []RawChunk
	decoded *Decoded
	info    FormatInfo
}

// Read detects, walks and decodes r. When opts.FailOnSanity is set and
// sanity errors were found, the reader is returned along with an error
// wrapping ErrSanityCheckFailed.
func Read(r io.ReadSeeker, opts Options) (*Reader, error) {
	identity, err := Detect(r)
	if err != nil {
		return nil, err
	}

	size, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to measure the stream: %w", err)
	}

	walker := NewWalker(r, opts.Ignore)

	raw, err := walker.Walk()
	if err != nil {
		return nil, fmt.Errorf("failed to walk chunks: %w", err)
	}

	decoded, err := Decode(raw, walker.ByteOrder())
	if err != nil {
		return nil, err
	}

	rd := &Reader{
		identity: identity,
		fileSize: size,
		master:   walker.Master(),
		formType: walker.FormType(),
		order:    walker.ByteOrder(),
		ds64:     walker.Ds64(),
		ids:      walker.Identifiers(),
		raw:      raw,
		decoded:  decoded,
	}

	if format, ok := decoded.Chunks[CIDFmt].(Format); ok {
		rd.info = NewFormatInfo(format)
	}

	if opts.FailOnSanity && len(decoded.Sanity) > 0 {
		return rd, fmt.Errorf("%w: %d error(s), first: %v", ErrSanityCheckFailed, len(decoded.Sanity), decoded.Sanity[0])
	}

	return rd, nil
}

// ReadFile reads the file at path.
func ReadFile(path string, opts Options) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	return Read(f, opts)
}

// ReadBytes reads an in-memory stream.
func ReadBytes(b []byte, opts Options) (*Reader, error) {
	return Read(bytes.NewReader(b), opts)
}

// ChunkList returns every chunk identifier in stream order. LIST chunks
// appear as LIST.
func (r *Reader) ChunkList() []FourCC {
	return append([]FourCC(nil), r.ids...)
}

// Chunks returns the decoded chunks keyed by effective identifier.
func (r *Reader) Chunks() map[FourCC]Chunk {
	out := make(map[FourCC]Chunk, len(r.decoded.Chunks))
	for id, ch := range r.decoded.Chunks {
		out[id] = ch
	}

	return out
}

// Chunk returns the decoded chunk of an identifier such as "fmt " or
// "INFO".
func (r *Reader) Chunk(id string) (Chunk, bool) {
	ch, ok := r.decoded.Chunks[ParseFourCC(id)]
	return ch, ok
}

// RawChunks returns a copy of the undecoded chunks in stream order.
func (r *Reader) RawChunks() []RawChunk {
	out := make([]RawChunk, len(r.raw))
	for i, ch := range r.raw {
		out[i] = ch.Clone()
	}

	return out
}

// RawChunk returns the last undecoded chunk with the given identifier.
func (r *Reader) RawChunk(id string) (RawChunk, bool) {
	want := ParseFourCC(id)
	for i := len(r.raw) - 1; i >= 0; i-- {
		if r.raw[i].ID == want {
			return r.raw[i].Clone(), true
		}
	}

	return RawChunk{}, false
}

// HasChunk reports whether the identifier was seen in the stream.
func (r *Reader) HasChunk(id string) bool {
	want := ParseFourCC(id)
	for _, got := range r.ids {
		if got == want {
			return true
		}
	}

	return false
}

func (r *Reader) Master() FourCC       { return r.master }
func (r *Reader) FormType() FourCC     { return r.formType }
func (r *Reader) ByteOrder() ByteOrder { return r.order }
func (r *Reader) Identity() Identity   { return r.identity }
func (r *Reader) FileSize() int64      { return r.fileSize }
func (r *Reader) Mode() FormatMode     { return r.decoded.Mode }

// Ds64 returns the RF64 size overrides, nil for plain RIFF streams.
func (r *Reader) Ds64() *Ds64 {
	if r.ds64 == nil {
		return nil
	}

	d := *r.ds64

	return &d
}

// Sanity returns the sanity errors in the order they were found.
func (r *Reader) Sanity() []SanityError {
	return append([]SanityError(nil), r.decoded.Sanity...)
}

// FormatInfo returns the fmt chunk reader, nil without a fmt chunk.
func (r *Reader) FormatInfo() FormatInfo { return r.info }

// IsExtensible reports whether the fmt chunk is WAVE_FORMAT_EXTENSIBLE,
// PVOC-EX included.
func (r *Reader) IsExtensible() bool {
	switch r.info.(type) {
	case ExtensibleReader, PVOCEXReader:
		return true
	default:
		return false
	}
}

// Format returns the go-audio format of the stream, nil without a fmt chunk.
func (r *Reader) Format() *audio.Format {
	if r.info == nil {
		return nil
	}

	return &audio.Format{
		NumChannels: int(r.info.NumChannels()),
		SampleRate:  int(r.info.SampleRate()),
	}
}

// Duration returns the playing time derived from the data size and the
// byte rate.
func (r *Reader) Duration() (time.Duration, error) {
	if r.info == nil {
		return 0, ErrNoFormat
	}

	data, ok := r.decoded.Chunks[CIDData].(*DataChunk)
	if !ok || r.info.ByteRate() == 0 {
		return 0, nil
	}

	return time.Duration(float64(data.ByteCount) / float64(r.info.ByteRate()) * float64(time.Second)), nil
}

// FormatSummary is the format section of a Summary.
type FormatSummary struct {
	AudioFormat   uint16 `json:"audio_format"`
	NumChannels   uint16 `json:"num_channels"`
	SampleRate    uint32 `json:"sample_rate"`
	ByteRate      uint32 `json:"byte_rate"`
	BlockAlign    uint16 `json:"block_align"`
	BitsPerSample uint16 `json:"bits_per_sample"`
	BitDepth      uint16 `json:"bit_depth"`
	Encoding      string `json:"encoding"`
}

// DataSummary is the data section of a Summary.
type DataSummary struct {
	ByteCount  uint64  `json:"byte_count"`
	FrameCount *uint64 `json:"frame_count,omitempty"`
}

// FactSummary is the fact section of a Summary.
type FactSummary struct {
	Samples uint32 `json:"samples"`
}

// Summary condenses the format and sample data of a stream.
type Summary struct {
	FormatInfo FormatSummary `json:"format_info"`
	Data       *DataSummary  `json:"data,omitempty"`
	Fact       *FactSummary  `json:"fact,omitempty"`
}

// Summary returns the format parameters plus the data and fact sizes.
func (r *Reader) Summary() (Summary, error) {
	if r.info == nil {
		return Summary{}, ErrNoFormat
	}

	s := Summary{
		FormatInfo: FormatSummary{
			AudioFormat:   r.info.AudioFormat(),
			NumChannels:   r.info.NumChannels(),
			SampleRate:    r.info.SampleRate(),
			ByteRate:      r.info.ByteRate(),
			BlockAlign:    r.info.BlockAlign(),
			BitsPerSample: r.info.BitsPerSample(),
			BitDepth:      r.info.BitDepth(),
			Encoding:      r.info.Encoding(),
		},
	}

	if data, ok := r.decoded.Chunks[CIDData].(*DataChunk); ok {
		s.Data = &DataSummary{ByteCount: data.ByteCount, FrameCount: data.FrameCount}
	}

	if fact, ok := r.decoded.Chunks[CIDFact].(*FactChunk); ok {
		s.Fact = &FactSummary{Samples: fact.Samples}
	}

	return s, nil
}
