package wavmeta

import (
	"encoding/binary"
	"errors"
	"testing"
)

func TestNormalizeXML(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "attributes and empty elements",
			input: `<BWFXML version='1.5'><PROJECT></PROJECT><NOTE>a &amp; b</NOTE></BWFXML>`,
			want:  `<BWFXML version="1.5"><PROJECT /><NOTE>a &amp; b</NOTE></BWFXML>`,
		},
		{
			name:  "comments and instructions dropped",
			input: "<?xml version=\"1.0\"?>\n<!-- written by hand --><root><?pi data?><a/></root>\n",
			want:  `<root><a /></root>`,
		},
		{
			name:  "inner whitespace kept",
			input: "<root>\n  <a>1</a>\n</root>",
			want:  "<root>\n  <a>1</a>\n</root>",
		},
		{
			name:  "namespace prefixes kept",
			input: `<x:xmpmeta xmlns:x="adobe:ns:meta/"><rdf:RDF xmlns:rdf="r"/></x:xmpmeta>`,
			want:  `<x:xmpmeta xmlns:x="adobe:ns:meta/"><rdf:RDF xmlns:rdf="r" /></x:xmpmeta>`,
		},
		{
			name:  "attribute quotes escaped",
			input: `<a t='say "hi"'/>`,
			want:  `<a t="say &quot;hi&quot;" />`,
		},
		{
			name:  "trailing NUL padding",
			input: "<a>x</a>\x00\x00",
			want:  `<a>x</a>`,
		},
		{
			name:  "byte order mark before declaration",
			input: "\xef\xbb\xbf<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n<BWFXML><SCENE>12</SCENE></BWFXML>",
			want:  `<BWFXML><SCENE>12</SCENE></BWFXML>`,
		},
		{
			name:  "byte order mark without declaration",
			input: "\xef\xbb\xbf<a/>",
			want:  `<a />`,
		},
		{
			name:  "declared latin-1",
			input: "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?><a>caf\xe9</a>",
			want:  `<a>café</a>`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NormalizeXML([]byte(tc.input))
			if err != nil {
				t.Fatalf("normalize: %v", err)
			}

			if want := xmlDeclaration + tc.want; got != want {
				t.Fatalf("normalized document mismatch:\n got %q\nwant %q", got, want)
			}
		})
	}
}

func TestNormalizeXMLMalformed(t *testing.T) {
	testCases := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"mismatched end", "<a><b></a>"},
		{"unclosed", "<a><b></b>"},
		{"two roots", "<a/><b/>"},
		{"text outside root", "loose<a/>"},
		{"bad syntax", "<a <b>"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NormalizeXML([]byte(tc.input)); !errors.Is(err, ErrMalformedMarkup) {
				t.Fatalf("expected ErrMalformedMarkup, got %v", err)
			}
		})
	}
}

func TestDecodeXMLChunk(t *testing.T) {
	for _, id := range []FourCC{CIDAXML, CIDIXML, CIDPMX} {
		chunk, sanity, err := NewChunkRegistry().Decode(RawChunk{ID: id, Data: []byte("<a></a>")}, binary.LittleEndian)
		if err != nil || len(sanity) != 0 {
			t.Fatalf("decode %s: %v %v", id, err, sanity)
		}

		if got := chunk.(*XMLChunk).XML; got != xmlDeclaration+"<a />" {
			t.Fatalf("%s document mismatch: %q", id, got)
		}
	}
}

func TestReadXMLChunkWithByteOrderMark(t *testing.T) {
	doc := "\xef\xbb\xbf<?xml version=\"1.0\" encoding=\"UTF-8\"?><BWFXML><TAKE>3</TAKE></BWFXML>"
	stream := buildRIFF(
		pcmFmtChunk(),
		testChunk{id: "iXML", data: []byte(doc)},
		testChunk{id: "data", data: make([]byte, 4)},
	)

	rd, err := ReadBytes(stream, DefaultOptions())
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	ch, ok := rd.Chunk("iXML")
	if !ok {
		t.Fatal("iXML chunk missing")
	}

	if got := ch.(*XMLChunk).XML; got != xmlDeclaration+"<BWFXML><TAKE>3</TAKE></BWFXML>" {
		t.Fatalf("iXML document mismatch: %q", got)
	}
}
