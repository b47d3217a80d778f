package wavmeta

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"gopkg.in/yaml.v3"
)

// ExportFormat selects the encoding of an exported report.
type ExportFormat string

const (
	ExportJSON ExportFormat = "json"
	ExportYAML ExportFormat = "yaml"
	ExportCBOR ExportFormat = "cbor"
)

// cborEncMode uses core deterministic encoding: the same report always
// produces the same bytes. Identifiers and enums go out as text strings
// through MarshalText.
var cborEncMode cbor.EncMode

func init() {
	opts := cbor.CoreDetEncOptions()
	opts.TextMarshaler = cbor.TextMarshalerTextString

	var err error

	cborEncMode, err = opts.EncMode()
	if err != nil {
		panic("wavmeta: CBOR encoder initialization failed: " + err.Error())
	}
}

// Report is the serializable form of a decoded stream. Empty fields are
// omitted.
type Report struct {
	Identity  Identity         `json:"identity"`
	Master    FourCC           `json:"master"`
	FormType  FourCC           `json:"formtype"`
	ByteOrder ByteOrder        `json:"byteorder"`
	FileSize  int64            `json:"file_size"`
	Mode      FormatMode       `json:"mode"`
	Ds64      *Ds64            `json:"ds64,omitempty"`
	ChunkList []FourCC         `json:"chunk_list"`
	Chunks    map[string]Chunk `json:"chunks"`
	Summary   *Summary         `json:"summary,omitempty"`
	Sanity    []SanityError    `json:"sanity,omitempty"`
}

// Report builds the serializable form of the reader.
func (r *Reader) Report() Report {
	rep := Report{
		Identity:  r.identity,
		Master:    r.master,
		FormType:  r.formType,
		ByteOrder: r.order,
		FileSize:  r.fileSize,
		Mode:      r.decoded.Mode,
		Ds64:      r.Ds64(),
		ChunkList: r.ChunkList(),
		Chunks:    make(map[string]Chunk, len(r.decoded.Chunks)),
		Sanity:    r.Sanity(),
	}

	for id, ch := range r.decoded.Chunks {
		rep.Chunks[id.String()] = ch
	}

	if s, err := r.Summary(); err == nil {
		rep.Summary = &s
	}

	return rep
}

// Export writes the report of the reader to w.
func (r *Reader) Export(w io.Writer, format ExportFormat) error {
	return r.Report().Write(w, format)
}

// Write encodes the report to w.
func (rep Report) Write(w io.Writer, format ExportFormat) error {
	var (
		out []byte
		err error
	)

	switch format {
	case ExportJSON:
		out, err = json.MarshalIndent(rep, "", "  ")
		out = append(out, '\n')
	case ExportYAML:
		out, err = rep.yaml()
	case ExportCBOR:
		out, err = cborEncMode.Marshal(rep)
	default:
		return fmt.Errorf("unknown export format %q", format)
	}

	if err != nil {
		return fmt.Errorf("failed to encode %s report: %w", format, err)
	}

	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	return nil
}

// yaml goes through the JSON form so both outputs share field names and
// omission rules.
func (rep Report) yaml() ([]byte, error) {
	raw, err := json.Marshal(rep)
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var tree any
	if err := dec.Decode(&tree); err != nil {
		return nil, err
	}

	return yaml.Marshal(plainNumbers(tree))
}

// plainNumbers replaces json.Number values by Go integers or floats so
// the YAML encoder does not quote them. Numbers too wide for 64 bits stay
// strings.
func plainNumbers(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, val := range t {
			t[k] = plainNumbers(val)
		}

		return t
	case []any:
		for i, val := range t {
			t[i] = plainNumbers(val)
		}

		return t
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}

		if u, err := strconv.ParseUint(t.String(), 10, 64); err == nil {
			return u
		}

		if strings.ContainsAny(t.String(), ".eE") {
			if f, err := t.Float64(); err == nil {
				return f
			}
		}

		return t.String()
	default:
		return v
	}
}
