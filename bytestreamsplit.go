package bytestreamsplit

import (
	"encoding/binary"
	"unsafe"
)

// MaxWidth is the widest element supported by Native.
const MaxWidth = 8

// Native is the set of fixed-width numeric types that can be stored as byte planes.
type Native interface {
	~uint8 | ~int8 | ~uint16 | ~int16 | ~uint32 | ~int32 | ~uint64 | ~int64 | ~float32 | ~float64
}

// Memory is a read-only view over linear memory.
// It is satisfied by wazero's api.Memory.
type Memory interface {
	Read(offset, byteCount uint32) ([]byte, bool)
}

// SizeOf returns the in-memory byte width of T.
func SizeOf[T Native]() int {
	var v T
	return int(unsafe.Sizeof(v))
}

// FromLE reassembles a T from its little-endian bytes.
// b must hold at least SizeOf[T]() bytes.
func FromLE[T Native](b []byte) T {
	switch SizeOf[T]() {
	case 1:
		u := b[0]
		return *(*T)(unsafe.Pointer(&u))
	case 2:
		u := binary.LittleEndian.Uint16(b)
		return *(*T)(unsafe.Pointer(&u))
	case 4:
		u := binary.LittleEndian.Uint32(b)
		return *(*T)(unsafe.Pointer(&u))
	default:
		u := binary.LittleEndian.Uint64(b)
		return *(*T)(unsafe.Pointer(&u))
	}
}

// PutLE writes v into b as little-endian bytes.
// b must hold at least SizeOf[T]() bytes.
func PutLE[T Native](b []byte, v T) {
	switch SizeOf[T]() {
	case 1:
		b[0] = *(*uint8)(unsafe.Pointer(&v))
	case 2:
		binary.LittleEndian.PutUint16(b, *(*uint16)(unsafe.Pointer(&v)))
	case 4:
		binary.LittleEndian.PutUint32(b, *(*uint32)(unsafe.Pointer(&v)))
	default:
		binary.LittleEndian.PutUint64(b, *(*uint64)(unsafe.Pointer(&v)))
	}
}
