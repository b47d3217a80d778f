// This tool prints the chunks and metadata of a RIFF family wav file.
package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/go-audio/aiff"

	"github.com/cwbudde/wavmeta"
)

const missingPathMessage = "You must pass the path of the file to decode"

func main() {
	err := run(os.Args[1:], os.Stdout)
	if err == nil {
		return
	}

	if errors.Is(err, errMissingPath) {
		fmt.Println(missingPathMessage)
		os.Exit(1)
	}

	log.Fatal(err)
}

var errMissingPath = errors.New("missing path argument")

type cli struct {
	Path     string   `arg:"" name:"path" help:"WAVE file to inspect" optional:""`
	Output   string   `short:"o" help:"Output format: text, json, yaml or cbor" enum:"text,json,yaml,cbor" default:"text"`
	Config   string   `short:"c" help:"YAML options file" type:"path"`
	Ignore   []string `help:"Chunk identifiers whose payload is skipped (replaces the default list)" sep:","`
	KeepData bool     `help:"Read the data chunk payload"`
	Strict   bool     `help:"Fail when the file has sanity errors"`
	Verbose  bool     `short:"v" help:"Debug logging on stderr"`
}

func run(args []string, out io.Writer) error {
	var (
		c      cli
		exited bool
	)

	parser, err := kong.New(&c,
		kong.Name("metadata"),
		kong.Description("Print the chunks and metadata of a WAVE file."),
		kong.Writers(out, out),
		kong.Exit(func(int) { exited = true }),
	)
	if err != nil {
		return err
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	if exited {
		return nil
	}

	if c.Path == "" {
		return errMissingPath
	}

	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	opts, err := c.options()
	if err != nil {
		return err
	}

	logger.Debug("reading file", "path", c.Path, "ignore", opts.Ignore, "strict", opts.FailOnSanity)

	file, err := os.Open(c.Path)
	if err != nil {
		return err
	}
	defer file.Close()

	rd, err := wavmeta.Read(file, opts)
	if errors.Is(err, wavmeta.ErrUnsupportedOrCorrupt) && isAIFF(file) {
		return fmt.Errorf("%s is an AIFF file, only RIFF family WAVE files are supported: %w", c.Path, err)
	}

	if rd == nil {
		return err
	}

	for _, s := range rd.Sanity() {
		logger.Warn("sanity check", "location", s.Location, "message", s.Message)
	}

	if c.Output != "text" {
		if werr := rd.Export(out, wavmeta.ExportFormat(c.Output)); werr != nil {
			return werr
		}

		return err
	}

	printText(out, rd)

	return err
}

func (c cli) options() (wavmeta.Options, error) {
	opts := wavmeta.DefaultOptions()

	if c.Config != "" {
		var err error

		opts, err = wavmeta.LoadOptions(c.Config)
		if err != nil {
			return opts, err
		}
	}

	if len(c.Ignore) > 0 {
		opts.Ignore = c.Ignore
	}

	if c.KeepData {
		opts.Ignore = slices.DeleteFunc(opts.Ignore, func(id string) bool {
			return id == "data"
		})
	}

	if c.Strict {
		opts.FailOnSanity = true
	}

	return opts, nil
}

func isAIFF(r io.ReadSeeker) bool {
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return false
	}

	return aiff.NewDecoder(r).IsValidFile()
}

func printText(out io.Writer, rd *wavmeta.Reader) {
	ids := make([]string, 0, len(rd.ChunkList()))
	for _, id := range rd.ChunkList() {
		ids = append(ids, fmt.Sprintf("%q", id.String()))
	}

	fmt.Fprintf(out, "Container: %s (%s-endian)\n", rd.Master(), rd.ByteOrder())
	fmt.Fprintf(out, "Form type: %s\n", rd.FormType())
	fmt.Fprintf(out, "File size: %d\n", rd.FileSize())
	fmt.Fprintf(out, "Chunks: %s\n", strings.Join(ids, ", "))

	if ds64 := rd.Ds64(); ds64 != nil {
		fmt.Fprintf(out, "ds64: riff=%d data=%d samples=%d\n", ds64.RiffSize(), ds64.DataSize(), ds64.SampleCount())
	}

	if summary, err := rd.Summary(); err == nil {
		f := summary.FormatInfo
		fmt.Fprintf(out, "Mode: %s\n", rd.Mode())
		fmt.Fprintf(out, "Encoding: %s\n", f.Encoding)
		fmt.Fprintf(out, "Channels: %d\n", f.NumChannels)
		fmt.Fprintf(out, "Sample rate: %d\n", f.SampleRate)
		fmt.Fprintf(out, "Bit depth: %d\n", f.BitDepth)

		if summary.Data != nil {
			fmt.Fprintf(out, "Data bytes: %d\n", summary.Data.ByteCount)

			if summary.Data.FrameCount != nil {
				fmt.Fprintf(out, "Frames: %d\n", *summary.Data.FrameCount)
			}
		}

		if dur, err := rd.Duration(); err == nil && dur > 0 {
			fmt.Fprintf(out, "Duration: %s\n", dur)
		}
	}

	ch, ok := rd.Chunk("INFO")
	info, isInfo := ch.(*wavmeta.InfoChunk)

	if !ok || !isInfo {
		fmt.Fprintln(out, "No INFO metadata present")
	} else {
		fmt.Fprintf(out, "Artist: %s\n", info.Artist)
		fmt.Fprintf(out, "Title: %s\n", info.Title)
		fmt.Fprintf(out, "Comments: %s\n", info.Comment)
		fmt.Fprintf(out, "Copyright: %s\n", info.Copyright)
		fmt.Fprintf(out, "CreationDate: %s\n", info.CreationDate)
		fmt.Fprintf(out, "Engineer: %s\n", info.Engineer)
		fmt.Fprintf(out, "Genre: %s\n", info.Genre)
		fmt.Fprintf(out, "Product: %s\n", info.Product)
		fmt.Fprintf(out, "Software: %s\n", info.Software)
		fmt.Fprintf(out, "TrackNbr: %s\n", info.TrackNumber)
	}

	if smpl, ok := rd.Chunk("smpl"); ok {
		if s, ok := smpl.(*wavmeta.SampleChunk); ok {
			fmt.Fprintf(out, "Sample Info: SMPTE %s, %d loop(s)\n", s.SMPTEOffset, len(s.Loops))

			for i, l := range s.Loops {
				fmt.Fprintf(out, "\tloop [%d]:\t%+v\n", i, l)
			}
		}
	}

	if cue, ok := rd.Chunk("cue "); ok {
		if c, ok := cue.(*wavmeta.CueChunk); ok {
			for i, p := range c.Points {
				fmt.Fprintf(out, "\tcue point [%d]:\t%+v\n", i, p)
			}
		}
	}

	for _, s := range rd.Sanity() {
		fmt.Fprintln(out, s.Error())
	}
}
