package wavmeta

import (
	"errors"
	"fmt"
	"io"
)

// ErrUnsupportedOrCorrupt is returned when a stream does not carry any of
// the known RIFF family WAVE signatures.
var ErrUnsupportedOrCorrupt = errors.New("the provided stream is either corrupted, non-standard, or not WAVE")

// Identity is the classification of a stream made by Detect.
type Identity struct {
	Base        string    `json:"base"`
	Container   string    `json:"container"`
	Description string    `json:"description"`
	Endian      ByteOrder `json:"endian"`
}

type signature struct {
	master FourCC
	order  ByteOrder
}

// signatures are matched in order; each needs the WAVE form type at offset 8.
var signatures = []signature{
	{CIDRiff, LittleEndian},
	{CIDRF64, LittleEndian},
	{CIDBW64, LittleEndian},
	{CIDRifx, BigEndian},
	{CIDFirr, BigEndian},
}

// Detect classifies a stream from its master identifier and form type.
// The stream is left positioned at offset 0.
func Detect(r io.ReadSeeker) (Identity, error) {
	if r == nil {
		return Identity{}, ErrNilSource
	}

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return Identity{}, fmt.Errorf("failed to seek to the start of the stream: %w", err)
	}

	var head [12]byte

	n, err := io.ReadFull(r, head[:])
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return Identity{}, fmt.Errorf("failed to read the stream signature: %w", err)
	}

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return Identity{}, fmt.Errorf("failed to rewind the stream: %w", err)
	}

	if n < len(head) {
		return Identity{}, ErrUnsupportedOrCorrupt
	}

	var master, form FourCC
	copy(master[:], head[:4])
	copy(form[:], head[8:12])

	if form != CIDWave {
		return Identity{}, ErrUnsupportedOrCorrupt
	}

	for _, sig := range signatures {
		if sig.master == master {
			return Identity{
				Base:        form.String(),
				Container:   master.String(),
				Description: fmt.Sprintf("Type [%s] derived from [%s]", form, master),
				Endian:      sig.order,
			}, nil
		}
	}

	return Identity{}, ErrUnsupportedOrCorrupt
}
