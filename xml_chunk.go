package wavmeta

import (
	"bytes"
	"encoding/binary"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
)

const xmlDeclaration = "<?xml version='1.0' encoding='UTF-8'?>\n"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ErrMalformedMarkup is returned when an aXML, iXML or _PMX payload is not
// a well-formed XML document.
var ErrMalformedMarkup = errors.New("malformed markup")

// XMLChunk holds the normalized document of an aXML, iXML or _PMX chunk.
type XMLChunk struct {
	ChunkHeader
	XML string `json:"xml"`
}

func decodeXMLChunk(ch RawChunk, _ binary.ByteOrder) (Chunk, []SanityError, error) {
	doc, err := NormalizeXML(ch.Data)
	if err != nil {
		return nil, nil, err
	}

	return &XMLChunk{XML: doc}, nil, nil
}

// NormalizeXML parses a document and writes it back with a UTF-8
// declaration, double quoted attributes and self-closing empty elements.
// Comments, processing instructions and directives are dropped.
func NormalizeXML(payload []byte) (string, error) {
	payload = bytes.ReplaceAll(payload, []byte{0}, nil)
	payload = bytes.TrimPrefix(payload, utf8BOM)

	dec := xml.NewDecoder(bytes.NewReader(payload))
	dec.CharsetReader = charsetReader

	var (
		out     strings.Builder
		stack   []xml.Name
		pending bool // start tag written without its closing '>'
		roots   int
	)

	out.WriteString(xmlDeclaration)

	closePending := func() {
		if pending {
			out.WriteByte('>')
			pending = false
		}
	}

	for {
		tok, err := dec.RawToken()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrMalformedMarkup, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if len(stack) == 0 {
				roots++
				if roots > 1 {
					return "", fmt.Errorf("%w: junk after document element", ErrMalformedMarkup)
				}
			}

			closePending()
			out.WriteByte('<')
			out.WriteString(qualifiedName(t.Name))

			for _, attr := range t.Attr {
				out.WriteByte(' ')
				out.WriteString(qualifiedName(attr.Name))
				out.WriteString(`="`)
				out.WriteString(escapeAttr(attr.Value))
				out.WriteByte('"')
			}

			pending = true
			stack = append(stack, t.Name)

		case xml.EndElement:
			if len(stack) == 0 || stack[len(stack)-1] != t.Name {
				return "", fmt.Errorf("%w: unexpected end element </%s>", ErrMalformedMarkup, qualifiedName(t.Name))
			}

			stack = stack[:len(stack)-1]

			if pending {
				out.WriteString(" />")
				pending = false
			} else {
				out.WriteString("</")
				out.WriteString(qualifiedName(t.Name))
				out.WriteByte('>')
			}

		case xml.CharData:
			if len(stack) == 0 {
				if len(bytes.TrimSpace(t)) > 0 {
					return "", fmt.Errorf("%w: text outside the document element", ErrMalformedMarkup)
				}

				continue
			}

			closePending()
			escapeText(&out, t)
		}
	}

	if len(stack) > 0 {
		return "", fmt.Errorf("%w: unclosed element <%s>", ErrMalformedMarkup, qualifiedName(stack[len(stack)-1]))
	}

	if roots == 0 {
		return "", fmt.Errorf("%w: no document element", ErrMalformedMarkup)
	}

	return out.String(), nil
}

func charsetReader(label string, input io.Reader) (io.Reader, error) {
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("unsupported charset %q: %w", label, err)
	}

	return enc.NewDecoder().Reader(input), nil
}

func qualifiedName(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}

	return n.Space + ":" + n.Local
}

func escapeText(out *strings.Builder, text []byte) {
	for _, r := range string(text) {
		switch r {
		case '&':
			out.WriteString("&amp;")
		case '<':
			out.WriteString("&lt;")
		case '>':
			out.WriteString("&gt;")
		default:
			out.WriteRune(r)
		}
	}
}

var attrEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"\n", "&#10;",
	"\r", "&#13;",
	"\t", "&#09;",
)

func escapeAttr(s string) string {
	return attrEscaper.Replace(s)
}
