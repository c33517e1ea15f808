// Package bytestreamsplit provides a Go implementation of the Byte Stream Split
// encoding used by Parquet for fixed-width numeric columns.
//
// Byte Stream Split stores byte n of every value contiguously, for all values,
// before moving on to byte n+1. Each byte plane tends to have lower entropy than
// the interleaved values, which helps the compressor that runs afterwards.
//
// # Architecture Overview
//
//	bytestreamsplit/     Root package with the Native constraint and Memory interface
//	├── codec/           Decoder, range decoders and the companion encoder
//	├── errors/          Structured error types for diagnostics
//	└── cmd/bss/         Command line decoder with an interactive pager
//
// # Layout
//
// For S byte wide values and N values, the buffer holds S planes of N bytes:
//
//	plane 0: v0[0] v1[0] ... vN-1[0]
//	plane 1: v0[1] v1[1] ... vN-1[1]
//	...
//	plane S-1: v0[S-1] v1[S-1] ... vN-1[S-1]
//
// Byte n of value i lives at offset N*n + i. Values are little-endian.
//
// # Quick Start
//
//	dec, err := codec.NewDecoder[float32](buf, 4)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for v := range dec.Values() {
//	    fmt.Println(v)
//	}
//
// # Thread Safety
//
// A Decoder is NOT thread-safe. Distinct decoders, including the ones returned
// by Decoder.Range, may read the same source buffer concurrently as long as
// nothing writes to it.
package bytestreamsplit
