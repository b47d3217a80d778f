package wavmeta

import (
	"encoding/binary"

	"github.com/go-audio/riff"
)

var (
	// CIDList is the chunk ID for a LIST chunk.
	CIDList = FourCC{'L', 'I', 'S', 'T'}
	// CIDFmt is the chunk ID for the format chunk.
	CIDFmt = FourCC(riff.FmtID)
	// CIDData is the chunk ID for the sample data chunk.
	CIDData = FourCC(riff.DataFormatID)
	// CIDFact is the chunk ID for the fact chunk.
	CIDFact = FourCC{'f', 'a', 'c', 't'}
	// CIDInfo is the LIST type of INFO metadata.
	CIDInfo = FourCC{'I', 'N', 'F', 'O'}
	// CIDAdtl is the LIST type of associated data (labels and notes).
	CIDAdtl = FourCC{'a', 'd', 't', 'l'}
	// CIDInst is the chunk ID for the instrument chunk.
	CIDInst = FourCC{'i', 'n', 's', 't'}
	// CIDCue is the chunk ID for the cue chunk.
	CIDCue = FourCC{'c', 'u', 'e', ' '}
	// CIDSmpl is the chunk ID for a smpl chunk.
	CIDSmpl = FourCC{'s', 'm', 'p', 'l'}
	// CIDAcid is the chunk ID for the ACID loop chunk.
	CIDAcid = FourCC{'a', 'c', 'i', 'd'}
	// CIDBext is the chunk ID for the broadcast extension chunk.
	CIDBext = FourCC{'b', 'e', 'x', 't'}
	// CIDCart is the chunk ID for the cart chunk.
	CIDCart = FourCC{'c', 'a', 'r', 't'}
	// CIDChna is the chunk ID for the ADM channel assignment chunk.
	CIDChna = FourCC{'c', 'h', 'n', 'a'}
	// CIDDisp is the chunk ID for the display chunk.
	CIDDisp = FourCC{'D', 'I', 'S', 'P'}
	// CIDLevl is the chunk ID for the peak envelope chunk.
	CIDLevl = FourCC{'l', 'e', 'v', 'l'}
	// CIDMD5 is the chunk ID for the MD5 checksum chunk.
	CIDMD5 = FourCC{'M', 'D', '5', ' '}
	// CIDStrc is the chunk ID for the undocumented slice chunk.
	CIDStrc = FourCC{'s', 't', 'r', 'c'}
	// CIDAXML is the chunk ID for the aXML chunk.
	CIDAXML = FourCC{'a', 'X', 'M', 'L'}
	// CIDIXML is the chunk ID for the iXML chunk.
	CIDIXML = FourCC{'i', 'X', 'M', 'L'}
	// CIDPMX is the chunk ID for the XMP (_PMX) chunk.
	CIDPMX = FourCC{'_', 'P', 'M', 'X'}
)

// listHeaderSize is subtracted from a LIST size when it is unwrapped: the
// chunk header plus the list type.
const listHeaderSize = 12

// DecodeFunc decodes one raw chunk. It returns the typed record and any
// sanity errors found along the way. A non-nil error means the chunk could
// not be decoded at all.
type DecodeFunc func(ch RawChunk, order binary.ByteOrder) (Chunk, []SanityError, error)

// ChunkRegistry maps chunk identifiers to decoders.
type ChunkRegistry struct {
	handlers map[FourCC]DecodeFunc
}

// NewChunkRegistry returns a registry holding every built-in decoder.
func NewChunkRegistry() *ChunkRegistry {
	return &ChunkRegistry{
		handlers: map[FourCC]DecodeFunc{
			CIDFmt:  decodeFmtChunk,
			CIDData: decodeDataChunk,
			CIDFact: decodeFactChunk,
			CIDInfo: decodeInfoChunk,
			CIDAdtl: decodeAdtlChunk,
			CIDInst: decodeInstChunk,
			CIDCue:  decodeCueChunk,
			CIDSmpl: decodeSamplerChunk,
			CIDAcid: decodeAcidChunk,
			CIDBext: decodeBroadcastChunk,
			CIDCart: decodeCartChunk,
			CIDChna: decodeChnaChunk,
			CIDDisp: decodeDisplayChunk,
			CIDLevl: decodePeakEnvelopeChunk,
			CIDMD5:  decodeMD5Chunk,
			CIDStrc: decodeStrcChunk,
			CIDAXML: decodeXMLChunk,
			CIDIXML: decodeXMLChunk,
			CIDPMX:  decodeXMLChunk,
		},
	}
}

// Register adds or replaces the decoder of an identifier.
func (r *ChunkRegistry) Register(id FourCC, fn DecodeFunc) {
	if r == nil || fn == nil {
		return
	}

	if r.handlers == nil {
		r.handlers = make(map[FourCC]DecodeFunc)
	}

	r.handlers[id] = fn
}

// Decode dispatches a chunk to its decoder. Identifiers without a decoder
// produce a GenericChunk holding the payload.
func (r *ChunkRegistry) Decode(ch RawChunk, order binary.ByteOrder) (Chunk, []SanityError, error) {
	if r != nil {
		if fn, ok := r.handlers[ch.ID]; ok {
			return fn(ch, order)
		}
	}

	return &GenericChunk{Data: append([]byte(nil), ch.Data...)}, nil, nil
}

// unwrapList replaces a LIST chunk by its list type: the identifier becomes
// the type, the payload starts after it. Other chunks are returned as is.
func unwrapList(ch RawChunk) RawChunk {
	if ch.ID != CIDList || len(ch.Data) < 4 {
		return ch
	}

	out := ch
	copy(out.ID[:], ch.Data[:4])
	out.Data = ch.Data[4:]

	if ch.Size >= listHeaderSize {
		out.Size = ch.Size - listHeaderSize
	} else {
		out.Size = 0
	}

	return out
}
