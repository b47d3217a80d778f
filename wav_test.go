package wavmeta

import (
	"encoding/binary"
	"testing"
)

func TestDecodeText(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want string
	}{
		{"with null", []byte{'h', 'e', 'l', 'l', 'o', 0, 0}, "hello"},
		{"embedded null", []byte{'h', 'e', 0, 'y'}, "hey"},
		{"no null", []byte("hello"), "hello"},
		{"empty", []byte{}, ""},
		{"only null", []byte{0}, ""},
		{"latin-1", []byte{'n', 0xE4, 'h', 0}, "näh"},
		{"latin-1 high range", []byte{0xA9, ' ', 0xFF}, "© ÿ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := decodeText(tt.in); got != tt.want {
				t.Fatalf("decodeText(%v)=%q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFieldReader(t *testing.T) {
	f := newFieldReader([]byte{1, 0, 2, 0, 0, 0, 'a', 'b', 0, 0}, binary.LittleEndian)

	if got := f.u16(); got != 1 {
		t.Fatalf("u16 mismatch: got %d", got)
	}

	if got := f.u32(); got != 2 {
		t.Fatalf("u32 mismatch: got %d", got)
	}

	if got := f.text(4); got != "ab" {
		t.Fatalf("text mismatch: got %q", got)
	}

	if f.short || f.remaining() != 0 {
		t.Fatalf("reader should be exhausted without being short: %+v", f)
	}

	if got := f.u32(); got != 0 || !f.short {
		t.Fatalf("reads past the end must yield zero and mark the reader short: %d %v", got, f.short)
	}

	if f.rest() != nil {
		t.Fatal("rest past the end must be empty")
	}
}

func TestFieldReaderPartialRead(t *testing.T) {
	f := newFieldReader([]byte{0xFF, 0xFF}, binary.BigEndian)

	if got := f.u32(); got != 0xFFFF0000 {
		t.Fatalf("partial read must zero fill: got %#x", got)
	}

	if !f.short || f.off != 4 {
		t.Fatalf("partial read state mismatch: short=%v off=%d", f.short, f.off)
	}
}

func TestFieldReaderSeekAndRest(t *testing.T) {
	buf := []byte("0123456789")
	f := newFieldReader(buf, binary.LittleEndian)

	f.seek(6)

	rest := f.rest()
	if string(rest) != "6789" || f.remaining() != 4 {
		t.Fatalf("rest mismatch: %q remaining %d", rest, f.remaining())
	}

	rest[0] = 'X'
	if buf[6] != '6' {
		t.Fatal("rest must return a copy")
	}

	if f.short {
		t.Fatal("seek and rest must not mark the reader short")
	}
}

func TestFieldReaderSigned(t *testing.T) {
	f := newFieldReader([]byte{0xFE, 0xFF, 0xFF, 0xFF, 0x00, 0x00, 0xC0, 0x3F}, binary.LittleEndian)

	if got := f.i32(); got != -2 {
		t.Fatalf("i32 mismatch: got %d", got)
	}

	if got := f.f32(); got != 1.5 {
		t.Fatalf("f32 mismatch: got %v", got)
	}
}
