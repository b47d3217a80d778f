package wavmeta

import (
	"fmt"
)

// Decoded is the output of one decode pass over a raw chunk sequence.
type Decoded struct {
	// Chunks maps effective identifiers to their decoded records. A later
	// chunk with the same identifier replaces an earlier one.
	Chunks map[FourCC]Chunk
	// Mode is the variant the fmt chunk resolved to.
	Mode FormatMode
	// Sanity lists the non-fatal problems in emission order.
	Sanity []SanityError
}

// Decoder turns raw chunks into typed chunk records.
type Decoder struct {
	chunks *ChunkRegistry
}

// NewDecoder creates a decoder using the built-in chunk decoders.
func NewDecoder() *Decoder {
	return &Decoder{chunks: NewChunkRegistry()}
}

// NewDecoderWithRegistry creates a decoder dispatching through registry.
func NewDecoderWithRegistry(registry *ChunkRegistry) *Decoder {
	return &Decoder{chunks: registry}
}

// Decode decodes raw chunks with the built-in decoders.
func Decode(raw []RawChunk, order ByteOrder) (*Decoded, error) {
	return NewDecoder().Decode(raw, order)
}

// Decode decodes every raw chunk in order. LIST chunks are unwrapped to
// their list type first. Sanity errors never stop the pass; a chunk that
// cannot be decoded at all does.
func (d *Decoder) Decode(raw []RawChunk, order ByteOrder) (*Decoded, error) {
	if d.chunks == nil {
		d.chunks = NewChunkRegistry()
	}

	out := &Decoded{Chunks: make(map[FourCC]Chunk, len(raw))}
	bo := order.Binary()

	for _, ch := range raw {
		ch = unwrapList(ch)

		chunk, sanity, err := d.chunks.Decode(ch, bo)
		if err != nil {
			return out, fmt.Errorf("failed to decode %q chunk: %w", ch.ID.String(), err)
		}

		if chunk == nil {
			chunk = &GenericChunk{Data: append([]byte(nil), ch.Data...)}
		}

		hdr := chunk.Header()
		hdr.ID = ch.ID
		hdr.Size = ch.Size

		if f, ok := chunk.(Format); ok {
			out.Mode = f.Mode()
		}

		out.Chunks[ch.ID] = chunk
		out.Sanity = append(out.Sanity, sanity...)
	}

	resolveFrameCount(out.Chunks)

	return out, nil
}

// resolveFrameCount fills in the data chunk frame count once the fmt chunk
// is known.
func resolveFrameCount(chunks map[FourCC]Chunk) {
	data, ok := chunks[CIDData].(*DataChunk)
	if !ok {
		return
	}

	format, ok := chunks[CIDFmt].(Format)
	if !ok || format.Core().BlockAlign == 0 {
		return
	}

	frames := data.ByteCount / uint64(format.Core().BlockAlign)
	data.FrameCount = &frames
}
