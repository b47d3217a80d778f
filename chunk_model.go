package wavmeta

import (
	"bytes"

	"github.com/go-audio/riff"
)

// FourCC is a four character chunk identifier such as "fmt " or "LIST".
type FourCC [4]byte

func (c FourCC) String() string {
	return string(c[:])
}

// MarshalText renders the identifier as its four characters.
func (c FourCC) MarshalText() ([]byte, error) {
	return []byte(decodeText(c[:])), nil
}

// ParseFourCC converts a tag such as "cue " into a FourCC. Short tags are
// padded with spaces, long ones truncated.
func ParseFourCC(s string) FourCC {
	id := FourCC{' ', ' ', ' ', ' '}
	copy(id[:], s)

	return id
}

// RawChunk is one chunk as segmented by the Walker, before decoding.
type RawChunk struct {
	ID FourCC
	// Size is the resolved chunk size, including the pad byte of odd sized
	// chunks and the ds64 override in RF64 streams.
	Size uint64
	// Data is empty when the identifier was on the ignore list.
	Data []byte
	// Order is the position of the chunk in the stream.
	Order int
}

func (c RawChunk) Clone() RawChunk {
	out := c
	out.Data = append([]byte(nil), c.Data...)

	return out
}

// RiffChunk exposes the payload as a go-audio riff chunk so it can be fed
// to code built around riff.Chunk readers.
func (c RawChunk) RiffChunk() *riff.Chunk {
	return &riff.Chunk{
		ID:   [4]byte(c.ID),
		Size: len(c.Data),
		R:    bytes.NewReader(c.Data),
	}
}

// ChunkHeader carries the identifier and size assigned by the decoder.
type ChunkHeader struct {
	ID   FourCC `json:"identifier"`
	Size uint64 `json:"size"`
}

func (h *ChunkHeader) Header() *ChunkHeader {
	return h
}

// Chunk is implemented by every decoded chunk record.
type Chunk interface {
	Header() *ChunkHeader
}

// GenericChunk holds the payload of a chunk without a dedicated decoder.
type GenericChunk struct {
	ChunkHeader
	Data []byte `json:"data,omitempty"`
}
