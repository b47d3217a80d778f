package wavmeta

import (
	"encoding/binary"
	"math"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// decodeText turns a fixed-width or trailing text field into a string.
// 7-bit clean input is taken as is, anything else is read as Latin-1.
// NUL bytes are removed wherever they appear.
func decodeText(b []byte) string {
	var s string

	if isASCII(b) {
		s = string(b)
	} else {
		out, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
		if err != nil {
			s = strings.ToValidUTF8(string(b), string(utf8.RuneError))
		} else {
			s = string(out)
		}
	}

	return strings.ReplaceAll(s, "\x00", "")
}

func isASCII(b []byte) bool {
	for _, c := range b {
		if c >= utf8.RuneSelf {
			return false
		}
	}

	return true
}

// fieldReader reads fixed-width fields out of a chunk payload.
// Reads past the end of the payload yield zero bytes and mark the reader
// as short so the caller can report the truncation.
type fieldReader struct {
	buf   []byte
	off   int
	order binary.ByteOrder
	short bool
}

func newFieldReader(buf []byte, order binary.ByteOrder) *fieldReader {
	return &fieldReader{buf: buf, order: order}
}

func (f *fieldReader) take(n int) []byte {
	out := make([]byte, n)
	if f.off < len(f.buf) {
		end := min(f.off+n, len(f.buf))
		copy(out, f.buf[f.off:end])

		if end-f.off < n {
			f.short = true
		}
	} else if n > 0 {
		f.short = true
	}

	f.off += n

	return out
}

func (f *fieldReader) seek(off int) {
	f.off = off
}

func (f *fieldReader) remaining() int {
	if f.off >= len(f.buf) {
		return 0
	}

	return len(f.buf) - f.off
}

// rest returns a copy of everything after the cursor.
func (f *fieldReader) rest() []byte {
	if f.off >= len(f.buf) {
		return nil
	}

	return append([]byte(nil), f.buf[f.off:]...)
}

func (f *fieldReader) u8() uint8 {
	return f.take(1)[0]
}

func (f *fieldReader) u16() uint16 {
	return f.order.Uint16(f.take(2))
}

func (f *fieldReader) u32() uint32 {
	return f.order.Uint32(f.take(4))
}

func (f *fieldReader) u64() uint64 {
	return f.order.Uint64(f.take(8))
}

func (f *fieldReader) i32() int32 {
	return int32(f.u32())
}

func (f *fieldReader) f32() float32 {
	return math.Float32frombits(f.u32())
}

func (f *fieldReader) text(n int) string {
	return decodeText(f.take(n))
}
