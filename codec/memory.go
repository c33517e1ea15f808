package codec

import (
	bss "github.com/wippyai/bytestreamsplit"
	"github.com/wippyai/bytestreamsplit/errors"
)

// NewDecoderFromMemory borrows length bytes at offset from mem and decodes them.
// The returned decoder reads linear memory directly; it is valid only while the
// region is neither written nor invalidated by memory growth.
func NewDecoderFromMemory[T bss.Native](mem bss.Memory, offset, length uint32, width int) (*Decoder[T], error) {
	if mem == nil {
		return nil, errors.InvalidInput(errors.PhaseLoad, "nil memory")
	}
	src, ok := mem.Read(offset, length)
	if !ok {
		return nil, errors.New(errors.PhaseLoad, errors.KindOutOfBounds).
			GoType(typeName[T]()).
			Value(offset).
			Detail("read %d bytes at offset %d out of range", length, offset).
			Build()
	}
	return NewDecoder[T](src, width)
}
