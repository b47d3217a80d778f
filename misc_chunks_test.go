package wavmeta

import (
	"encoding/binary"
	"math"
	"math/big"
	"reflect"
	"strings"
	"testing"
)

func TestDecodeFactChunk(t *testing.T) {
	chunk, sanity, err := decodeFactChunk(RawChunk{ID: CIDFact, Data: []byte{0, 0, 0x10, 0}}, binary.BigEndian)
	if err != nil || len(sanity) != 0 {
		t.Fatalf("decode fact: %v %v", err, sanity)
	}

	if got := chunk.(*FactChunk).Samples; got != 0x1000 {
		t.Fatalf("samples mismatch: got %d want %d", got, 0x1000)
	}

	_, sanity, _ = decodeFactChunk(RawChunk{ID: CIDFact, Data: []byte{1, 2}}, binary.LittleEndian)
	if len(sanity) != 1 {
		t.Fatalf("expected a truncation error, got %v", sanity)
	}
}

func TestDecodeInstChunk(t *testing.T) {
	chunk, sanity, err := decodeInstChunk(RawChunk{ID: CIDInst, Data: []byte{60, 2, 250, 0, 127, 1, 127}}, binary.LittleEndian)
	if err != nil || len(sanity) != 0 {
		t.Fatalf("decode inst: %v %v", err, sanity)
	}

	want := &InstrumentChunk{UnshiftedNote: 60, FineTuning: 2, Gain: 250, HighNote: 127, LowVelocity: 1, HighVelocity: 127}
	if got := chunk.(*InstrumentChunk); !reflect.DeepEqual(got, want) {
		t.Fatalf("inst mismatch: got %+v want %+v", got, want)
	}

	_, sanity, _ = decodeInstChunk(RawChunk{ID: CIDInst, Data: []byte{60, 2, 250}}, binary.LittleEndian)
	if len(sanity) != 1 || !strings.Contains(sanity[0].Message, "EXPECTED AT LEAST 7 BYTES, GOT 3") {
		t.Fatalf("expected a truncation error, got %v", sanity)
	}
}

func TestDecodeDisplayChunk(t *testing.T) {
	testCases := []struct {
		cf       uint32
		wantType string
	}{
		{CFText, "CF_TEXT"},
		{CFBitmap, "CF_BITMAP"},
		{CFMetafile, "CF_METAFILE"},
		{CFDIB, "CF_DIB"},
		{CFPalette, "CF_PALETTE"},
		{42, "UNKNOWN_TYPE"},
	}

	for _, tc := range testCases {
		t.Run(tc.wantType, func(t *testing.T) {
			payload := concat(u32le(tc.cf), []byte("hello\x00"))

			chunk, sanity, err := decodeDisplayChunk(RawChunk{ID: CIDDisp, Data: payload}, binary.LittleEndian)
			if err != nil || len(sanity) != 0 {
				t.Fatalf("decode DISP: %v %v", err, sanity)
			}

			disp := chunk.(*DisplayChunk)
			if disp.Type != tc.wantType || disp.Data != "hello" {
				t.Fatalf("DISP mismatch: %+v", disp)
			}
		})
	}
}

func TestDecodeMD5Chunk(t *testing.T) {
	testCases := []struct {
		name  string
		order binary.ByteOrder
		index int
	}{
		{"little-endian", binary.LittleEndian, 0},
		{"big-endian", binary.BigEndian, 15},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			payload := make([]byte, 16)
			payload[tc.index] = 0x2A

			chunk, sanity, err := decodeMD5Chunk(RawChunk{ID: CIDMD5, Data: payload}, tc.order)
			if err != nil || len(sanity) != 0 {
				t.Fatalf("decode MD5: %v %v", err, sanity)
			}

			if got := chunk.(*MD5Chunk).Checksum; got.Cmp(big.NewInt(0x2A)) != 0 {
				t.Fatalf("checksum mismatch: got %s want 42", got)
			}

			if payload[tc.index] != 0x2A {
				t.Fatal("decoding must not modify the payload")
			}
		})
	}
}

func TestDecodeAcidChunk(t *testing.T) {
	payload := concat(
		u32le(acidOneShot|acidRootNote|acidDiskBased),
		u16le(60), u16le(0x8000),
		u32le(0),
		u32le(8),
		u16le(4), u16le(3),
		u32le(math.Float32bits(120.5)),
	)

	chunk, sanity, err := decodeAcidChunk(RawChunk{ID: CIDAcid, Data: payload}, binary.LittleEndian)
	if err != nil || len(sanity) != 0 {
		t.Fatalf("decode acid: %v %v", err, sanity)
	}

	acid := chunk.(*AcidChunk)

	if !acid.IsOneShot || acid.IsLoop || !acid.IsRootNoteSet || acid.IsStretched || !acid.IsDiskBased || acid.IsRAMBased || acid.IsUnknown {
		t.Fatalf("acid flags mismatch: %+v", acid)
	}

	if acid.RootNote != 60 || acid.BeatCount != 8 || acid.MeterDenominator != 4 || acid.MeterNumerator != 3 || acid.Tempo != 120.5 {
		t.Fatalf("acid fields mismatch: %+v", acid)
	}
}

func audioIDRecord(index uint16, uid, track, pack string) []byte {
	return concat(u16le(index), fixedText(uid, 12), fixedText(track, 14), fixedText(pack, 11), []byte{0})
}

func TestDecodeChnaChunk(t *testing.T) {
	payload := concat(
		u16le(2), u16le(2),
		audioIDRecord(1, "ATU_00000001", "AT_00031001_01", "AP_00031001"),
		audioIDRecord(2, "ATU_00000002", "AT_00031002_01", "AP_00031001"),
	)

	chunk, sanity, err := decodeChnaChunk(RawChunk{ID: CIDChna, Data: payload}, binary.LittleEndian)
	if err != nil || len(sanity) != 0 {
		t.Fatalf("decode chna: %v %v", err, sanity)
	}

	chna := chunk.(*ChnaChunk)
	want := []AudioID{
		{TrackIndex: 1, UID: "ATU_00000001", TrackReference: "AT_00031001_01", PackReference: "AP_00031001", Padded: true},
		{TrackIndex: 2, UID: "ATU_00000002", TrackReference: "AT_00031002_01", PackReference: "AP_00031001", Padded: true},
	}

	if chna.TrackCount != 2 || chna.UIDCount != 2 || !reflect.DeepEqual(chna.TrackIDs, want) {
		t.Fatalf("chna mismatch: %+v", chna)
	}
}

func TestDecodeChnaChunkCountTooLarge(t *testing.T) {
	payload := concat(u16le(1), u16le(3), audioIDRecord(1, "ATU_00000001", "AT_00031001_01", "AP_00031001"))

	chunk, sanity, _ := decodeChnaChunk(RawChunk{ID: CIDChna, Data: payload}, binary.LittleEndian)

	if got := len(chunk.(*ChnaChunk).TrackIDs); got != 1 {
		t.Fatalf("records must be capped to the payload: got %d", got)
	}

	if len(sanity) != 1 || !strings.Contains(sanity[0].Message, "EXPECTED AT LEAST 124 BYTES, GOT 44") {
		t.Fatalf("unexpected sanity errors: %v", sanity)
	}
}

func TestDecodePeakEnvelopeChunk(t *testing.T) {
	payload := concat(
		u32le(1), u32le(1), u32le(2), u32le(256), u32le(2), u32le(100), u32le(0), u32le(120),
		fixedText("2026:10:17:12:00:00:000", levlReservedOffset-levlTimestampOffset),
		make([]byte, levlDataOffset-levlReservedOffset),
		[]byte{1, 2, 3, 4},
	)

	// levl is little-endian even inside RIFX streams.
	chunk, sanity, err := decodePeakEnvelopeChunk(RawChunk{ID: CIDLevl, Data: payload}, binary.BigEndian)
	if err != nil || len(sanity) != 0 {
		t.Fatalf("decode levl: %v %v", err, sanity)
	}

	levl := chunk.(*PeakEnvelopeChunk)

	if levl.Version != 1 || levl.PointsPerValue != 2 || levl.BlockSize != 256 || levl.ChannelCount != 2 || levl.FrameCount != 100 || levl.Offset != 120 {
		t.Fatalf("levl header mismatch: %+v", levl)
	}

	if levl.Timestamp != "2026:10:17:12:00:00:000" || levl.Reserved != "" {
		t.Fatalf("levl text mismatch: %q %q", levl.Timestamp, levl.Reserved)
	}

	if !reflect.DeepEqual(levl.PeakEnvelopeData, []byte{1, 2, 3, 4}) {
		t.Fatalf("envelope data mismatch: %v", levl.PeakEnvelopeData)
	}
}

func TestEncodingName(t *testing.T) {
	testCases := []struct {
		code uint16
		want string
	}{
		{0x0001, "Microsoft PCM (uncompressed)"},
		{0x0003, "Microsoft IEEE float"},
		{0x0055, "MP3"},
		{0xFFFE, "Extensible"},
		{0x1234, "Unknown (0x1234)"},
	}

	for _, tc := range testCases {
		if got := EncodingName(tc.code); got != tc.want {
			t.Fatalf("encoding name of 0x%04X: got %q want %q", tc.code, got, tc.want)
		}
	}
}
