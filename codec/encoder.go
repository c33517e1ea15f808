package codec

import (
	bss "github.com/wippyai/bytestreamsplit"
)

// Encode appends the Byte Stream Split layout of src to dst[:0] and returns
// the result. The capacity of dst is reused when large enough.
func Encode[T bss.Native](dst []byte, src []T) []byte {
	width := bss.SizeOf[T]()
	count := len(src)
	dst = resize(dst, width*count)

	var buf [bss.MaxWidth]byte
	for i, v := range src {
		bss.PutLE(buf[:width], v)
		for n := 0; n < width; n++ {
			dst[count*n+i] = buf[n]
		}
	}
	return dst
}

func resize(buf []byte, size int) []byte {
	if cap(buf) < size {
		return make([]byte, size)
	}
	return buf[:size]
}
