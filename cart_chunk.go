package wavmeta

import (
	"encoding/binary"
)

const (
	cartVersionLen            = 4
	cartTitleLen              = 64
	cartArtistLen             = 64
	cartCutIDLen              = 64
	cartClientIDLen           = 64
	cartCategoryLen           = 64
	cartClassificationLen     = 64
	cartOutCueLen             = 64
	cartStartDateLen          = 10
	cartStartTimeLen          = 8
	cartEndDateLen            = 10
	cartEndTimeLen            = 8
	cartProducerAppIDLen      = 64
	cartProducerAppVersionLen = 64
	cartUserDefLen            = 64
	cartPostTimerCount        = 8
	cartReservedLen           = 276
	cartURLLen                = 1024
)

// PostTimer is one of the eight cart timers.
type PostTimer struct {
	UsageID string `json:"usage_id,omitempty"`
	Value   uint32 `json:"value"`
}

// CartChunk is the AES46 cart chunk.
type CartChunk struct {
	ChunkHeader
	Version            string      `json:"version,omitempty"`
	Title              string      `json:"title,omitempty"`
	Artist             string      `json:"artist,omitempty"`
	CutID              string      `json:"cut_id,omitempty"`
	ClientID           string      `json:"client_id,omitempty"`
	Category           string      `json:"category,omitempty"`
	Classification     string      `json:"classification,omitempty"`
	OutCue             string      `json:"out_cue,omitempty"`
	StartDate          string      `json:"start_date,omitempty"`
	StartTime          string      `json:"start_time,omitempty"`
	EndDate            string      `json:"end_date,omitempty"`
	EndTime            string      `json:"end_time,omitempty"`
	ProducerAppID      string      `json:"producer_app_id,omitempty"`
	ProducerAppVersion string      `json:"producer_app_version,omitempty"`
	UserDef            string      `json:"user_defined_text,omitempty"`
	LevelReference     int32       `json:"level_reference"`
	PostTimers         []PostTimer `json:"post_timers"`
	URL                string      `json:"url,omitempty"`
	TagText            string      `json:"tag_text,omitempty"`
}

func decodeCartChunk(ch RawChunk, order binary.ByteOrder) (Chunk, []SanityError, error) {
	f := newFieldReader(ch.Data, order)
	cart := &CartChunk{
		Version:            f.text(cartVersionLen),
		Title:              f.text(cartTitleLen),
		Artist:             f.text(cartArtistLen),
		CutID:              f.text(cartCutIDLen),
		ClientID:           f.text(cartClientIDLen),
		Category:           f.text(cartCategoryLen),
		Classification:     f.text(cartClassificationLen),
		OutCue:             f.text(cartOutCueLen),
		StartDate:          f.text(cartStartDateLen),
		StartTime:          f.text(cartStartTimeLen),
		EndDate:            f.text(cartEndDateLen),
		EndTime:            f.text(cartEndTimeLen),
		ProducerAppID:      f.text(cartProducerAppIDLen),
		ProducerAppVersion: f.text(cartProducerAppVersionLen),
		UserDef:            f.text(cartUserDefLen),
		LevelReference:     f.i32(),
	}

	// Timer values are little-endian whatever the stream order.
	cart.PostTimers = make([]PostTimer, cartPostTimerCount)
	for i := range cart.PostTimers {
		cart.PostTimers[i].UsageID = f.text(4)
		cart.PostTimers[i].Value = binary.LittleEndian.Uint32(f.take(4))
	}

	f.take(cartReservedLen)
	cart.URL = f.text(cartURLLen)

	if f.short {
		return cart, []SanityError{truncated(ch.ID, len(ch.Data), f.off)}, nil
	}

	cart.TagText = decodeText(f.rest())

	return cart, nil, nil
}
