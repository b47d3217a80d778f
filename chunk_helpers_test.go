package wavmeta

import (
	"bytes"
	"encoding/binary"
	"math"
)

type testChunk struct {
	id   string
	data []byte
	// size overrides the stored size field when set.
	size *uint32
	// noPad leaves odd sized payloads without their pad byte.
	noPad bool
}

func sizeOf(n uint32) *uint32 { return &n }

// writeChunks appends chunk headers and payloads in the given byte order.
func writeChunks(buf *bytes.Buffer, order binary.ByteOrder, chunks []testChunk) {
	for _, ch := range chunks {
		buf.WriteString(ParseFourCC(ch.id).String())

		size := uint32(len(ch.data))
		if ch.size != nil {
			size = *ch.size
		}

		_ = binary.Write(buf, order, size)
		buf.Write(ch.data)

		if len(ch.data)%2 == 1 && !ch.noPad {
			buf.WriteByte(0)
		}
	}
}

// buildStream writes a complete container with the given master identifier.
func buildStream(master string, order binary.ByteOrder, chunks ...testChunk) []byte {
	var body bytes.Buffer
	writeChunks(&body, order, chunks)

	var out bytes.Buffer
	out.WriteString(master)
	_ = binary.Write(&out, order, uint32(4+body.Len()))
	out.WriteString("WAVE")
	out.Write(body.Bytes())

	return out.Bytes()
}

func buildRIFF(chunks ...testChunk) []byte {
	return buildStream("RIFF", binary.LittleEndian, chunks...)
}

// buildRF64 writes an RF64 stream whose ds64 chunk carries the given sizes.
// data and fact chunks should use the 0xFFFFFFFF placeholder as size.
func buildRF64(ds64 Ds64, tableEntries []byte, chunks ...testChunk) []byte {
	var out bytes.Buffer
	out.WriteString("RF64")
	_ = binary.Write(&out, binary.LittleEndian, uint32(math.MaxUint32))
	out.WriteString("WAVE")
	out.WriteString("ds64")
	_ = binary.Write(&out, binary.LittleEndian, ds64)
	out.Write(tableEntries)
	writeChunks(&out, binary.LittleEndian, chunks)

	return out.Bytes()
}

// fmtPayload encodes the six core fmt fields.
func fmtPayload(order binary.ByteOrder, audioFormat, channels uint16, rate uint32, bits uint16) []byte {
	blockAlign := channels * bits / 8

	var buf bytes.Buffer
	_ = binary.Write(&buf, order, audioFormat)
	_ = binary.Write(&buf, order, channels)
	_ = binary.Write(&buf, order, rate)
	_ = binary.Write(&buf, order, rate*uint32(blockAlign))
	_ = binary.Write(&buf, order, blockAlign)
	_ = binary.Write(&buf, order, bits)

	return buf.Bytes()
}

func pcmFmtChunk() testChunk {
	return testChunk{id: "fmt ", data: fmtPayload(binary.LittleEndian, 1, 2, 44100, 16)}
}

// extensiblePayload builds a 40 byte WAVE_FORMAT_EXTENSIBLE fmt payload.
func extensiblePayload(channels uint16, rate uint32, bits uint16, mask uint32, guid [16]byte) []byte {
	var buf bytes.Buffer
	buf.Write(fmtPayload(binary.LittleEndian, wavFormatExtensible, channels, rate, bits))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(22))
	_ = binary.Write(&buf, binary.LittleEndian, bits)
	_ = binary.Write(&buf, binary.LittleEndian, mask)
	buf.Write(guid[:])

	return buf.Bytes()
}

// subFormatGUID returns the KSDATAFORMAT_SUBTYPE GUID bytes of a format code.
func subFormatGUID(code uint16) [16]byte {
	var g [16]byte
	binary.LittleEndian.PutUint16(g[:2], code)
	copy(g[4:], ksSubFormatGUIDTail[:])

	return g
}

func fixedText(s string, n int) []byte {
	out := make([]byte, n)
	copy(out, s)

	return out
}

func u16le(v uint16) []byte { return binary.LittleEndian.AppendUint16(nil, v) }

func u32le(v uint32) []byte { return binary.LittleEndian.AppendUint32(nil, v) }

func concat(parts ...[]byte) []byte {
	return bytes.Join(parts, nil)
}
