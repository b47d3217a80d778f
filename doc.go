// Package wavmeta decodes the chunks of RIFF family WAVE files (RIFF,
// RIFX, RF64 and BW64) into typed records.
//
// A Walker segments a stream into raw chunks, resolving the byte order from
// the master identifier and the 64-bit sizes of RF64 streams from their ds64
// chunk. Decode turns the raw chunks into records: the four fmt chunk
// variants, LIST/INFO, adtl, cue, smpl, inst, acid, bext, cart, chna, levl,
// DISP, MD5, strc and the XML chunks. Chunks without a decoder are kept as
// GenericChunk values.
//
// Problems that do not stop decoding are reported as SanityError values,
// never as errors. Sample data is never decoded.
//
// Most callers only need Read, ReadFile or ReadBytes:
//
//	rd, err := wavmeta.ReadFile("take.wav", wavmeta.DefaultOptions())
//	if err != nil {
//		return err
//	}
//	fmt.Println(rd.FormatInfo().SampleRate(), rd.ChunkList())
package wavmeta
