package codec

import (
	"io"
	"iter"
	"reflect"

	"go.uber.org/zap"

	bss "github.com/wippyai/bytestreamsplit"
	"github.com/wippyai/bytestreamsplit/errors"
)

// Decoder yields the values stored in a Byte Stream Split buffer, in order.
// It is single pass: once exhausted, a new Decoder must be created.
type Decoder[T bss.Native] struct {
	src     []byte
	width   int
	count   int // elements per plane
	cursor  int
	end     int
	scratch [bss.MaxWidth]byte
}

// NewDecoder validates src against width and returns a decoder positioned at
// the first element. width must equal the byte width of T and divide len(src).
func NewDecoder[T bss.Native](src []byte, width int) (*Decoder[T], error) {
	size := bss.SizeOf[T]()
	if width <= 0 {
		return nil, errors.ZeroWidth(typeName[T](), width)
	}
	if width != size {
		return nil, errors.WidthMismatch(typeName[T](), size, width)
	}
	if len(src)%width != 0 {
		return nil, errors.LengthNotMultiple(typeName[T](), len(src), width)
	}

	count := len(src) / width
	Logger().Debug("decoder ready",
		zap.Int("width", width),
		zap.Int("elements", count),
	)

	return &Decoder[T]{
		src:   src,
		width: width,
		count: count,
		end:   count,
	}, nil
}

// DecodeAll decodes every value of src into a new slice.
func DecodeAll[T bss.Native](src []byte) ([]T, error) {
	d, err := NewDecoder[T](src, bss.SizeOf[T]())
	if err != nil {
		return nil, err
	}
	out := make([]T, d.Remaining())
	n, _ := d.Read(out)
	return out[:n], nil
}

// Next returns the next value, or io.EOF when the decoder is exhausted.
// io.EOF is returned on every call after that.
func (d *Decoder[T]) Next() (T, error) {
	if d.cursor >= d.end {
		var zero T
		return zero, io.EOF
	}

	for n := 0; n < d.width; n++ {
		d.scratch[n] = d.src[d.count*n+d.cursor]
	}
	v := bss.FromLE[T](d.scratch[:d.width])
	d.cursor++
	return v, nil
}

// Read decodes up to len(dst) values into dst and returns how many were
// written. It returns 0, io.EOF once the decoder is exhausted.
func (d *Decoder[T]) Read(dst []T) (int, error) {
	if d.cursor >= d.end {
		return 0, io.EOF
	}

	n := min(len(dst), d.end-d.cursor)

	// Plane windows for this batch.
	var planes [bss.MaxWidth][]byte
	for p := 0; p < d.width; p++ {
		off := d.count*p + d.cursor
		planes[p] = d.src[off : off+n]
	}

	for i := range dst[:n] {
		for p := 0; p < d.width; p++ {
			d.scratch[p] = planes[p][i]
		}
		dst[i] = bss.FromLE[T](d.scratch[:d.width])
	}
	d.cursor += n
	return n, nil
}

// Values returns an iterator over the remaining values.
// It shares the decoder's cursor: breaking out early leaves the rest for Next.
func (d *Decoder[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			v, err := d.Next()
			if err != nil {
				return
			}
			if !yield(v) {
				return
			}
		}
	}
}

// Range returns a decoder over elements [start, end) of the same buffer.
// The receiver's cursor is not affected.
func (d *Decoder[T]) Range(start, end int) (*Decoder[T], error) {
	if start < 0 || start > d.count {
		return nil, errors.OutOfBounds(errors.PhaseValidate, start, d.count)
	}
	if end < start || end > d.count {
		return nil, errors.New(errors.PhaseValidate, errors.KindOutOfBounds).
			GoType(typeName[T]()).
			Expect(d.count, end).
			Value(end).
			Detail("range end %d outside [%d, %d]", end, start, d.count).
			Build()
	}

	return &Decoder[T]{
		src:    d.src,
		width:  d.width,
		count:  d.count,
		cursor: start,
		end:    end,
	}, nil
}

// Remaining returns how many values are still to be produced.
func (d *Decoder[T]) Remaining() int {
	return d.end - d.cursor
}

// Len returns the number of values stored in the buffer.
func (d *Decoder[T]) Len() int {
	return d.count
}

// Width returns the element width in bytes, which is also the plane count.
func (d *Decoder[T]) Width() int {
	return d.width
}

func typeName[T bss.Native]() string {
	return reflect.TypeFor[T]().String()
}
