package main

import (
	"fmt"
	"strconv"
	"strings"

	"go.bytecodealliance.org/wit"

	bss "github.com/wippyai/bytestreamsplit"
	"github.com/wippyai/bytestreamsplit/codec"
	"github.com/wippyai/bytestreamsplit/errors"
)

var elementTypes = map[string]wit.Type{
	"bool":   wit.Bool{},
	"u8":     wit.U8{},
	"s8":     wit.S8{},
	"u16":    wit.U16{},
	"s16":    wit.S16{},
	"u32":    wit.U32{},
	"s32":    wit.S32{},
	"u64":    wit.U64{},
	"s64":    wit.S64{},
	"f32":    wit.F32{},
	"f64":    wit.F64{},
	"char":   wit.Char{},
	"string": wit.String{},
}

func parseElementType(name string) (wit.Type, error) {
	t, ok := elementTypes[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, errors.InvalidInput(errors.PhaseValidate, fmt.Sprintf("unknown element type %q", name))
	}
	if typeWidth(t) == 0 {
		return nil, errors.Unsupported(errors.PhaseValidate, fmt.Sprintf("%s is not a byte stream split type", witTypeStr(t)))
	}
	return t, nil
}

// typeWidth returns the element width of t, or 0 for types that cannot be split.
func typeWidth(t wit.Type) int {
	switch t.(type) {
	case wit.U8, wit.S8:
		return 1
	case wit.U16, wit.S16:
		return 2
	case wit.U32, wit.S32, wit.F32:
		return 4
	case wit.U64, wit.S64, wit.F64:
		return 8
	default:
		return 0
	}
}

// resolveWidth returns the declared width, or the width of t when none was given.
func resolveWidth(declared int, t wit.Type) int {
	if declared != 0 {
		return declared
	}
	return typeWidth(t)
}

func witTypeStr(t wit.Type) string {
	switch t.(type) {
	case wit.Bool:
		return "bool"
	case wit.U8:
		return "u8"
	case wit.S8:
		return "s8"
	case wit.U16:
		return "u16"
	case wit.S16:
		return "s16"
	case wit.U32:
		return "u32"
	case wit.S32:
		return "s32"
	case wit.U64:
		return "u64"
	case wit.S64:
		return "s64"
	case wit.F32:
		return "f32"
	case wit.F64:
		return "f64"
	case wit.Char:
		return "char"
	case wit.String:
		return "string"
	default:
		return fmt.Sprintf("%T", t)
	}
}

// decodeValues decodes buf as planes of t and formats one string per value.
func decodeValues(buf []byte, t wit.Type, width int) ([]string, error) {
	switch t.(type) {
	case wit.U8:
		return decodeAs[uint8](buf, width)
	case wit.S8:
		return decodeAs[int8](buf, width)
	case wit.U16:
		return decodeAs[uint16](buf, width)
	case wit.S16:
		return decodeAs[int16](buf, width)
	case wit.U32:
		return decodeAs[uint32](buf, width)
	case wit.S32:
		return decodeAs[int32](buf, width)
	case wit.U64:
		return decodeAs[uint64](buf, width)
	case wit.S64:
		return decodeAs[int64](buf, width)
	case wit.F32:
		return decodeAs[float32](buf, width)
	case wit.F64:
		return decodeAs[float64](buf, width)
	default:
		return nil, errors.Unsupported(errors.PhaseDecode, witTypeStr(t))
	}
}

func decodeAs[T bss.Native](buf []byte, width int) ([]string, error) {
	d, err := codec.NewDecoder[T](buf, width)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, d.Len())
	for v := range d.Values() {
		out = append(out, fmt.Sprint(v))
	}
	return out, nil
}

// encodeValues parses decimal fields as t and returns their plane layout.
func encodeValues(fields []string, t wit.Type) ([]byte, error) {
	switch t.(type) {
	case wit.U8:
		return encodeAs(fields, parseUint[uint8](8))
	case wit.S8:
		return encodeAs(fields, parseInt[int8](8))
	case wit.U16:
		return encodeAs(fields, parseUint[uint16](16))
	case wit.S16:
		return encodeAs(fields, parseInt[int16](16))
	case wit.U32:
		return encodeAs(fields, parseUint[uint32](32))
	case wit.S32:
		return encodeAs(fields, parseInt[int32](32))
	case wit.U64:
		return encodeAs(fields, parseUint[uint64](64))
	case wit.S64:
		return encodeAs(fields, parseInt[int64](64))
	case wit.F32:
		return encodeAs(fields, parseFloat[float32](32))
	case wit.F64:
		return encodeAs(fields, parseFloat[float64](64))
	default:
		return nil, errors.Unsupported(errors.PhaseEncode, witTypeStr(t))
	}
}

func encodeAs[T bss.Native](fields []string, parse func(string) (T, error)) ([]byte, error) {
	values := make([]T, len(fields))
	for i, f := range fields {
		v, err := parse(f)
		if err != nil {
			return nil, errors.Wrap(errors.PhaseEncode, errors.KindInvalidInput, err, fmt.Sprintf("value %d", i))
		}
		values[i] = v
	}
	return codec.Encode(nil, values), nil
}

func parseUint[T ~uint8 | ~uint16 | ~uint32 | ~uint64](bits int) func(string) (T, error) {
	return func(s string) (T, error) {
		v, err := strconv.ParseUint(s, 10, bits)
		return T(v), err
	}
}

func parseInt[T ~int8 | ~int16 | ~int32 | ~int64](bits int) func(string) (T, error) {
	return func(s string) (T, error) {
		v, err := strconv.ParseInt(s, 10, bits)
		return T(v), err
	}
}

func parseFloat[T ~float32 | ~float64](bits int) func(string) (T, error) {
	return func(s string) (T, error) {
		v, err := strconv.ParseFloat(s, bits)
		return T(v), err
	}
}
