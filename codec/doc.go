// Package codec decodes and encodes the Byte Stream Split layout.
//
// # Decoding Flow
//
//  1. NewDecoder[T](buf, width) validates width and length → *Decoder[T]
//  2. Decoder.Next() → value, or io.EOF once every element was produced
//     or Decoder.Values() → iter.Seq[T]
//     or Decoder.Read(dst) → batch of values
//
// Construction fails with an out-of-spec error from the errors package when
// the width is not positive, differs from the width of T, or does not divide
// the buffer length. Once constructed, decoding cannot fail.
//
// # Memory
//
// The source buffer is borrowed. It is never copied or written, and the caller
// must not modify it while a Decoder reads from it. Next does not allocate: the
// bytes of one element are gathered into a fixed scratch array inside the
// Decoder.
//
// NewDecoderFromMemory borrows the buffer from WASM linear memory instead of
// the Go heap, so the view is valid only while that memory is not grown or
// written.
//
// # Parallel Decoding
//
// Decoder.Range returns a decoder restricted to an index window over the same
// planes. Disjoint windows can be decoded on separate goroutines.
//
// # Thread Safety
//
// Decoder maintains a cursor and is NOT thread-safe.
// Use separate instances per goroutine.
package codec
