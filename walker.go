package wavmeta

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/go-audio/riff"
)

var (
	// CIDRiff is the master identifier of little-endian RIFF streams.
	CIDRiff = FourCC(riff.RiffID)
	// CIDRifx is the master identifier of big-endian RIFF streams.
	CIDRifx = FourCC{'R', 'I', 'F', 'X'}
	// CIDFirr is the byte reversed big-endian master identifier.
	CIDFirr = FourCC{'F', 'I', 'R', 'R'}
	// CIDRF64 is the master identifier of RF64 streams.
	CIDRF64 = FourCC{'R', 'F', '6', '4'}
	// CIDBW64 is the master identifier of BW64 (ITU-R BS.2088) streams.
	CIDBW64 = FourCC{'B', 'W', '6', '4'}
	// CIDWave is the WAVE form type.
	CIDWave = FourCC(riff.WavFormatID)
	// CIDDs64 is the chunk ID of the RF64 size override chunk.
	CIDDs64 = FourCC{'d', 's', '6', '4'}

	nullID = FourCC{}

	// ErrUnsupportedContainer is returned when the master identifier is not
	// one of the RIFF family identifiers.
	ErrUnsupportedContainer = fmt.Errorf("unsupported container: %w", riff.ErrFmtNotSupported)
	// ErrMissingDs64 is returned when an RF64 stream does not start with a
	// ds64 chunk.
	ErrMissingDs64 = errors.New("expected ds64 chunk after RF64 header")
	// ErrNilSource is returned when walking a nil reader.
	ErrNilSource = errors.New("nil byte source")
)

// rf64Sentinel is the outer size value that switches a stream to RF64 mode.
const rf64Sentinel = 0xFFFFFFFF

// ByteOrder is the endianness of every integer field in a stream.
type ByteOrder int

const (
	LittleEndian ByteOrder = iota
	BigEndian
)

func (o ByteOrder) String() string {
	if o == BigEndian {
		return "big"
	}

	return "little"
}

// MarshalText renders the byte order as "little" or "big".
func (o ByteOrder) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// Binary returns the encoding/binary implementation of the byte order.
func (o ByteOrder) Binary() binary.ByteOrder {
	if o == BigEndian {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// ResolveByteOrder maps a master identifier to the stream byte order.
func ResolveByteOrder(master FourCC) (ByteOrder, error) {
	switch master {
	case CIDRiff, CIDBW64, CIDRF64:
		return LittleEndian, nil
	case CIDRifx, CIDFirr:
		return BigEndian, nil
	default:
		return LittleEndian, fmt.Errorf("%q - %w", master.String(), ErrUnsupportedContainer)
	}
}

// Ds64 holds the 64-bit sizes of an RF64/BW64 stream.
type Ds64 struct {
	ChunkSize       uint32 `json:"chunk_size"`
	RiffLowSize     uint32 `json:"riff_low_size"`
	RiffHighSize    uint32 `json:"riff_high_size"`
	DataLowSize     uint32 `json:"data_low_size"`
	DataHighSize    uint32 `json:"data_high_size"`
	SampleLowCount  uint32 `json:"sample_low_count"`
	SampleHighCount uint32 `json:"sample_high_count"`
	TableEntryCount uint32 `json:"table_entry_count"`
}

func (d *Ds64) RiffSize() uint64 {
	return combine(d.RiffLowSize, d.RiffHighSize)
}

func (d *Ds64) DataSize() uint64 {
	return combine(d.DataLowSize, d.DataHighSize)
}

func (d *Ds64) SampleCount() uint64 {
	return combine(d.SampleLowCount, d.SampleHighCount)
}

func combine(low, high uint32) uint64 {
	return uint64(low) + uint64(high)<<32
}

// Walker segments a RIFF family stream into raw chunks.
// A Walker owns the cursor of its source for the duration of the walk and
// must not be shared between goroutines.
type Walker struct {
	r      io.ReadSeeker
	ignore map[FourCC]bool

	readHeader bool
	done       bool
	count      int

	master       FourCC
	formType     FourCC
	declaredSize uint32
	order        ByteOrder
	ds64         *Ds64
	ids          []FourCC
}

// NewWalker creates a walker over r. Payloads of chunks whose identifier is
// listed in ignore are not read; their size is still honored.
func NewWalker(r io.ReadSeeker, ignore []string) *Walker {
	w := &Walker{r: r, ignore: make(map[FourCC]bool, len(ignore))}
	for _, id := range ignore {
		w.ignore[ParseFourCC(id)] = true
	}

	return w
}

// ReadHeader reads the master identifier, the outer size, the form type and,
// in RF64 mode, the ds64 chunk. It is safe to call multiple times.
func (w *Walker) ReadHeader() error {
	if w == nil || w.r == nil {
		return ErrNilSource
	}

	if w.readHeader {
		return nil
	}

	_, err := w.r.Seek(0, io.SeekStart)
	if err != nil {
		return fmt.Errorf("failed to seek to the start of the stream: %w", err)
	}

	var head [12]byte

	n, err := io.ReadFull(w.r, head[:])
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to read the container header: %w", err)
	}

	copy(w.master[:], head[:min(n, 4)])

	w.order, err = ResolveByteOrder(w.master)
	if err != nil {
		return err
	}

	w.declaredSize = w.order.Binary().Uint32(head[4:8])
	copy(w.formType[:], head[8:12])
	w.readHeader = true

	if n < len(head) {
		w.done = true
		return nil
	}

	if w.declaredSize == rf64Sentinel {
		return w.readDs64()
	}

	return nil
}

func (w *Walker) readDs64() error {
	var id FourCC

	n, err := io.ReadFull(w.r, id[:])
	if n < 4 || id != CIDDs64 {
		if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
			return fmt.Errorf("failed to read ds64 identifier: %w", err)
		}

		return fmt.Errorf("%w: found %q", ErrMissingDs64, id.String())
	}

	buf := make([]byte, 32)

	n, err = io.ReadFull(w.r, buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("failed to read ds64 chunk: %w", err)
	}

	f := newFieldReader(buf[:n], w.order.Binary())
	w.ds64 = &Ds64{
		ChunkSize:       f.u32(),
		RiffLowSize:     f.u32(),
		RiffHighSize:    f.u32(),
		DataLowSize:     f.u32(),
		DataHighSize:    f.u32(),
		SampleLowCount:  f.u32(),
		SampleHighCount: f.u32(),
		TableEntryCount: f.u32(),
	}

	// ds64 table entries are skipped, not decoded.
	if skip := int64(w.ds64.TableEntryCount) * 12; skip > 0 {
		if _, err := w.r.Seek(skip, io.SeekCurrent); err != nil {
			return fmt.Errorf("failed to skip ds64 table: %w", err)
		}
	}

	return nil
}

// Next returns the next chunk of the stream, or io.EOF once the stream is
// exhausted. A stream that ends in the middle of a chunk header ends the
// walk without an error.
func (w *Walker) Next() (RawChunk, error) {
	if err := w.ReadHeader(); err != nil {
		return RawChunk{}, err
	}

	for !w.done {
		id, size, ok, err := w.nextHeader()
		if err != nil {
			return RawChunk{}, err
		}

		if !ok {
			w.done = true
			break
		}

		// bext is exempt: writers commonly emit odd sizes without padding.
		if size%2 == 1 && id != CIDBext {
			size++
		}

		var data []byte
		if !w.ignore[id] {
			data, err = w.readPayload(size)
			if err != nil {
				return RawChunk{}, err
			}
		}

		if err := w.skip(size - uint64(len(data))); err != nil {
			return RawChunk{}, err
		}

		if w.ds64 != nil && id == nullID {
			continue
		}

		w.ids = append(w.ids, id)
		chunk := RawChunk{ID: id, Size: size, Data: data, Order: w.count}
		w.count++

		return chunk, nil
	}

	return RawChunk{}, io.EOF
}

// nextHeader reads a chunk identifier and resolves its size.
func (w *Walker) nextHeader() (FourCC, uint64, bool, error) {
	var (
		id      FourCC
		sizeBuf [4]byte
	)

	if ok, err := w.readFull(id[:]); !ok || err != nil {
		return id, 0, false, err
	}

	if w.ds64 != nil && (id == CIDData || id == CIDFact) {
		// The stored size is a placeholder, the true one lives in ds64.
		if _, err := w.readFull(sizeBuf[:]); err != nil {
			return id, 0, false, err
		}

		if id == CIDData {
			return id, w.ds64.DataSize(), true, nil
		}

		return id, w.ds64.SampleCount(), true, nil
	}

	if ok, err := w.readFull(sizeBuf[:]); !ok || err != nil {
		return id, 0, false, err
	}

	return id, uint64(w.order.Binary().Uint32(sizeBuf[:])), true, nil
}

// readFull reports false when the stream ended before len(buf) bytes.
func (w *Walker) readFull(buf []byte) (bool, error) {
	_, err := io.ReadFull(w.r, buf)
	if err == nil {
		return true, nil
	}

	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return false, nil
	}

	return false, fmt.Errorf("failed to read chunk header: %w", err)
}

func (w *Walker) readPayload(size uint64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(w.r, clampInt64(size)))
	if err != nil {
		return nil, fmt.Errorf("failed to read chunk payload: %w", err)
	}

	return data, nil
}

func (w *Walker) skip(n uint64) error {
	if n == 0 {
		return nil
	}

	_, err := w.r.Seek(clampInt64(n), io.SeekCurrent)
	if err != nil {
		return fmt.Errorf("failed to seek to the next chunk: %w", err)
	}

	return nil
}

func clampInt64(n uint64) int64 {
	if n > math.MaxInt64 {
		return math.MaxInt64
	}

	return int64(n)
}

// Walk reads every remaining chunk of the stream.
func (w *Walker) Walk() ([]RawChunk, error) {
	var chunks []RawChunk

	for {
		chunk, err := w.Next()
		if errors.Is(err, io.EOF) {
			return chunks, nil
		}

		if err != nil {
			return chunks, err
		}

		chunks = append(chunks, chunk)
	}
}

// Master returns the outermost identifier (RIFF, RIFX, RF64, ...).
func (w *Walker) Master() FourCC { return w.master }

// FormType returns the form type following the outer size, usually WAVE.
func (w *Walker) FormType() FourCC { return w.formType }

// ByteOrder returns the byte order resolved from the master identifier.
func (w *Walker) ByteOrder() ByteOrder { return w.order }

// DeclaredSize returns the outer size field as stored.
func (w *Walker) DeclaredSize() uint32 { return w.declaredSize }

// Ds64 returns the RF64 size overrides, or nil for plain RIFF streams.
func (w *Walker) Ds64() *Ds64 { return w.ds64 }

// Identifiers returns every identifier yielded so far, in stream order.
func (w *Walker) Identifiers() []FourCC {
	return append([]FourCC(nil), w.ids...)
}
