package wavmeta

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"gopkg.in/yaml.v3"
)

func exportReader(t *testing.T) *Reader {
	t.Helper()

	md5 := make([]byte, 16)
	for i := range md5 {
		md5[i] = 0xFF
	}

	stream := buildRIFF(
		pcmFmtChunk(),
		infoList(infoEntry("IART", "artist")),
		testChunk{id: "MD5 ", data: md5},
		testChunk{id: "data", data: make([]byte, 8)},
	)

	rd, err := ReadBytes(stream, DefaultOptions())
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	return rd
}

func TestExportJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := exportReader(t).Export(&buf, ExportJSON); err != nil {
		t.Fatalf("export: %v", err)
	}

	var got struct {
		Master    string   `json:"master"`
		ByteOrder string   `json:"byteorder"`
		Mode      string   `json:"mode"`
		ChunkList []string `json:"chunk_list"`
		Chunks    map[string]struct {
			Identifier  string      `json:"identifier"`
			Size        uint64      `json:"size"`
			NumChannels uint16      `json:"num_channels"`
			Artist      string      `json:"artist"`
			Checksum    json.Number `json:"checksum"`
		} `json:"chunks"`
		Summary struct {
			Data struct {
				ByteCount  uint64 `json:"byte_count"`
				FrameCount uint64 `json:"frame_count"`
			} `json:"data"`
		} `json:"summary"`
	}

	dec := json.NewDecoder(&buf)
	dec.UseNumber()

	if err := dec.Decode(&got); err != nil {
		t.Fatalf("decode json: %v", err)
	}

	if got.Master != "RIFF" || got.ByteOrder != "little" || got.Mode != ModePCM.String() {
		t.Fatalf("container fields mismatch: %+v", got)
	}

	if !reflect.DeepEqual(got.ChunkList, []string{"fmt ", "LIST", "MD5 ", "data"}) {
		t.Fatalf("chunk list mismatch: %v", got.ChunkList)
	}

	if f := got.Chunks["fmt "]; f.Identifier != "fmt " || f.Size != 16 || f.NumChannels != 2 {
		t.Fatalf("fmt chunk mismatch: %+v", f)
	}

	if got.Chunks["INFO"].Artist != "artist" {
		t.Fatalf("INFO chunk mismatch: %+v", got.Chunks["INFO"])
	}

	if got.Chunks["MD5 "].Checksum.String() != "340282366920938463463374607431768211455" {
		t.Fatalf("checksum must be exported as a full width number: %s", got.Chunks["MD5 "].Checksum)
	}

	if got.Summary.Data.ByteCount != 8 || got.Summary.Data.FrameCount != 2 {
		t.Fatalf("summary mismatch: %+v", got.Summary)
	}
}

func TestExportYAML(t *testing.T) {
	var buf bytes.Buffer
	if err := exportReader(t).Export(&buf, ExportYAML); err != nil {
		t.Fatalf("export: %v", err)
	}

	if !strings.Contains(buf.String(), "file_size: ") || strings.Contains(buf.String(), `file_size: "`) {
		t.Fatalf("numbers must not be quoted:\n%s", buf.String())
	}

	var got map[string]any
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decode yaml: %v", err)
	}

	chunks, ok := got["chunks"].(map[string]any)
	if !ok {
		t.Fatalf("chunks missing: %v", got)
	}

	format := chunks["fmt "].(map[string]any)
	if format["sample_rate"] != 44100 || format["identifier"] != "fmt " {
		t.Fatalf("fmt chunk mismatch: %v", format)
	}

	if md5 := chunks["MD5 "].(map[string]any); md5["checksum"] != "340282366920938463463374607431768211455" {
		t.Fatalf("wide checksum must stay text: %v", md5["checksum"])
	}
}

func TestExportCBOR(t *testing.T) {
	var buf bytes.Buffer
	if err := exportReader(t).Export(&buf, ExportCBOR); err != nil {
		t.Fatalf("export: %v", err)
	}

	decMode, err := cbor.DecOptions{DefaultMapType: reflect.TypeOf(map[string]any{})}.DecMode()
	if err != nil {
		t.Fatalf("cbor dec mode: %v", err)
	}

	var got map[string]any
	if err := decMode.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decode cbor: %v", err)
	}

	if got["master"] != "RIFF" || got["byteorder"] != "little" {
		t.Fatalf("container fields mismatch: %v", got)
	}

	chunks := got["chunks"].(map[string]any)
	if info := chunks["INFO"].(map[string]any); info["artist"] != "artist" {
		t.Fatalf("INFO chunk mismatch: %v", info)
	}

	var again bytes.Buffer
	if err := exportReader(t).Export(&again, ExportCBOR); err != nil {
		t.Fatalf("export: %v", err)
	}

	if !bytes.Equal(buf.Bytes(), again.Bytes()) {
		t.Fatal("CBOR export must be deterministic")
	}
}

func TestExportUnknownFormat(t *testing.T) {
	if err := exportReader(t).Export(&bytes.Buffer{}, ExportFormat("xml")); err == nil {
		t.Fatal("expected an error for an unknown format")
	}
}
