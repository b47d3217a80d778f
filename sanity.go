package wavmeta

import (
	"fmt"
	"strings"
)

const (
	formatChunkLocation = "['fmt ' / FORMAT]"
	strcChunkLocation   = "['strc']"
)

// SanityError records a deviation from the RIFF/WAVE chunk layout that
// did not stop decoding. It is a value, never returned as a failure.
type SanityError struct {
	Location string `json:"location"`
	Message  string `json:"message"`
}

func newSanityError(location, sub, message string) SanityError {
	if sub != "" {
		location = location + " -- " + sub
	}

	return SanityError{Location: location, Message: strings.ToUpper(message)}
}

func chunkLocation(id FourCC) string {
	return fmt.Sprintf("['%s']", id)
}

// truncated reports a payload that ended before its fixed layout did.
func truncated(id FourCC, got, want int) SanityError {
	return newSanityError(chunkLocation(id), "PAYLOAD",
		fmt.Sprintf("payload truncated: expected at least %d bytes, got %d.", want, got))
}

func (e SanityError) Error() string {
	return fmt.Sprintf("PerverseError: [%s]  %s", strings.ToUpper(e.Location), strings.ToUpper(e.Message))
}
