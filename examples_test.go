package wavmeta

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"log"
)

func ExampleReadBytes() {
	stream := buildRIFF(pcmFmtChunk(), testChunk{id: "data", data: make([]byte, 44100)})

	rd, err := ReadBytes(stream, DefaultOptions())
	if err != nil {
		log.Fatal(err)
	}

	info := rd.FormatInfo()
	dur, _ := rd.Duration()

	fmt.Println(rd.Identity().Description)
	fmt.Printf("%d channels, %d Hz, %d bit, %s\n", info.NumChannels(), info.SampleRate(), info.BitDepth(), dur)
	// Output:
	// Type [WAVE] derived from [RIFF]
	// 2 channels, 44100 Hz, 16 bit, 250ms
}

func ExampleReader_ChunkList() {
	stream := buildRIFF(
		pcmFmtChunk(),
		infoList(infoEntry("INAM", "Take 3")),
		testChunk{id: "data", data: make([]byte, 4)},
	)

	rd, err := ReadBytes(stream, DefaultOptions())
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("%q\n", rd.ChunkList())

	if ch, ok := rd.Chunk("INFO"); ok {
		fmt.Println(ch.(*InfoChunk).Title)
	}
	// Output:
	// ["fmt " "LIST" "data"]
	// Take 3
}

func ExampleWalker() {
	stream := buildRIFF(pcmFmtChunk(), testChunk{id: "data", data: make([]byte, 4)})

	w := NewWalker(bytes.NewReader(stream), DefaultIgnore)

	raw, err := w.Walk()
	if err != nil {
		log.Fatal(err)
	}

	for _, ch := range raw {
		fmt.Printf("%s %d bytes, %d read\n", ch.ID, ch.Size, len(ch.Data))
	}
	// Output:
	// fmt  16 bytes, 16 read
	// data 4 bytes, 0 read
}

func ExampleSanityError() {
	stream := buildRIFF(testChunk{id: "fmt ", data: fmtPayload(binary.LittleEndian, 3, 1, 8000, 32)})

	rd, err := ReadBytes(stream, DefaultOptions())
	if err != nil {
		log.Fatal(err)
	}

	for _, s := range rd.Sanity() {
		fmt.Println(s.Location)
	}
	// Output: ['fmt ' / FORMAT] -- AUDIO FORMAT / SIZE
}
