package codec

import (
	stderrors "errors"
	"io"
	"math"
	"slices"
	"testing"

	"golang.org/x/sync/errgroup"

	bss "github.com/wippyai/bytestreamsplit"
	"github.com/wippyai/bytestreamsplit/errors"
)

func drain[T bss.Native](t *testing.T, d *Decoder[T]) []T {
	t.Helper()
	var out []T
	for {
		v, err := d.Next()
		if err == io.EOF {
			return out
		}
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		out = append(out, v)
	}
}

func TestDecoder_PlaneGather(t *testing.T) {
	buf := []byte{
		0x01, 0x02, // plane 0
		0x03, 0x04, // plane 1
		0x05, 0x06, // plane 2
		0x07, 0x08, // plane 3
	}

	d, err := NewDecoder[uint32](buf, 4)
	if err != nil {
		t.Fatalf("NewDecoder: %v", err)
	}
	if d.Len() != 2 || d.Width() != 4 {
		t.Fatalf("Len=%d Width=%d, want 2 and 4", d.Len(), d.Width())
	}

	got := drain(t, d)
	want := []uint32{0x07050301, 0x08060402}
	if !slices.Equal(got, want) {
		t.Errorf("values = %#x, want %#x", got, want)
	}
}

func TestDecoder_RoundTrip(t *testing.T) {
	sizes := []int{0, 1, 2, 7, 64, 1000}

	for _, n := range sizes {
		t.Run("float32", func(t *testing.T) {
			in := make([]float32, n)
			for i := range in {
				in[i] = float32(i)*1.25 - 3
			}
			roundTrip(t, in)
		})
		t.Run("float64", func(t *testing.T) {
			in := make([]float64, n)
			for i := range in {
				in[i] = math.Sqrt(float64(i)) * -1e10
			}
			roundTrip(t, in)
		})
		t.Run("int8", func(t *testing.T) {
			in := make([]int8, n)
			for i := range in {
				in[i] = int8(i * 37)
			}
			roundTrip(t, in)
		})
		t.Run("uint16", func(t *testing.T) {
			in := make([]uint16, n)
			for i := range in {
				in[i] = uint16(i * 2654435761)
			}
			roundTrip(t, in)
		})
		t.Run("int32", func(t *testing.T) {
			in := make([]int32, n)
			for i := range in {
				in[i] = int32(-i * 100003)
			}
			roundTrip(t, in)
		})
		t.Run("uint64", func(t *testing.T) {
			in := make([]uint64, n)
			for i := range in {
				in[i] = uint64(i) * 0x9E3779B97F4A7C15
			}
			roundTrip(t, in)
		})
		t.Run("int64", func(t *testing.T) {
			in := make([]int64, n)
			for i := range in {
				in[i] = math.MinInt64 + int64(i)
			}
			roundTrip(t, in)
		})
	}
}

func roundTrip[T bss.Native](t *testing.T, in []T) {
	t.Helper()
	buf := Encode(nil, in)
	if len(buf) != len(in)*bss.SizeOf[T]() {
		t.Fatalf("encoded %d bytes, want %d", len(buf), len(in)*bss.SizeOf[T]())
	}

	d, err := NewDecoder[T](buf, bss.SizeOf[T]())
	if err != nil {
		t.Fatalf("NewDecoder: %v", err)
	}
	got := drain(t, d)
	if len(got) != len(in) {
		t.Fatalf("decoded %d values, want %d", len(got), len(in))
	}
	for i := range in {
		if got[i] != in[i] {
			t.Fatalf("value[%d] = %v, want %v", i, got[i], in[i])
		}
	}
}

func TestDecoder_NaNBitsPreserved(t *testing.T) {
	in := []float64{math.NaN(), math.Inf(1), math.Inf(-1), math.Copysign(0, -1)}
	got, err := DecodeAll[float64](Encode(nil, in))
	if err != nil {
		t.Fatalf("DecodeAll: %v", err)
	}
	for i := range in {
		if math.Float64bits(got[i]) != math.Float64bits(in[i]) {
			t.Errorf("value[%d] bits = %#x, want %#x", i, math.Float64bits(got[i]), math.Float64bits(in[i]))
		}
	}
}

func TestDecoder_ExactCount(t *testing.T) {
	d, err := NewDecoder[uint16](make([]byte, 20), 2)
	if err != nil {
		t.Fatalf("NewDecoder: %v", err)
	}

	for k := 0; k < 10; k++ {
		if got := d.Remaining(); got != 10-k {
			t.Fatalf("Remaining after %d = %d, want %d", k, got, 10-k)
		}
		if _, err := d.Next(); err != nil {
			t.Fatalf("Next %d: %v", k, err)
		}
	}

	for i := 0; i < 3; i++ {
		if _, err := d.Next(); err != io.EOF {
			t.Fatalf("Next after exhaustion = %v, want io.EOF", err)
		}
	}
	if d.Remaining() != 0 {
		t.Errorf("Remaining = %d, want 0", d.Remaining())
	}
	if d.Len() != 10 {
		t.Errorf("Len = %d, want 10", d.Len())
	}
}

func TestDecoder_Empty(t *testing.T) {
	for _, buf := range [][]byte{nil, {}} {
		d, err := NewDecoder[float64](buf, 8)
		if err != nil {
			t.Fatalf("NewDecoder: %v", err)
		}
		if d.Len() != 0 || d.Remaining() != 0 {
			t.Errorf("Len=%d Remaining=%d, want 0", d.Len(), d.Remaining())
		}
		if _, err := d.Next(); err != io.EOF {
			t.Errorf("Next = %v, want io.EOF", err)
		}
		if n, err := d.Read(make([]float64, 4)); n != 0 || err != io.EOF {
			t.Errorf("Read = %d, %v, want 0, io.EOF", n, err)
		}
	}
}

func TestNewDecoder_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		build func() error
		rule  errors.Rule
		want  int
		got   int
	}{
		{
			name: "zero width",
			build: func() error {
				_, err := NewDecoder[uint8](make([]byte, 4), 0)
				return err
			},
			rule: errors.RuleZeroWidth,
			got:  0,
		},
		{
			name: "negative width",
			build: func() error {
				_, err := NewDecoder[uint8](make([]byte, 4), -1)
				return err
			},
			rule: errors.RuleZeroWidth,
			got:  -1,
		},
		{
			name: "width larger than type",
			build: func() error {
				_, err := NewDecoder[float32](make([]byte, 16), 8)
				return err
			},
			rule: errors.RuleWidthMismatch,
			want: 4,
			got:  8,
		},
		{
			name: "width smaller than type",
			build: func() error {
				_, err := NewDecoder[int64](make([]byte, 16), 4)
				return err
			},
			rule: errors.RuleWidthMismatch,
			want: 8,
			got:  4,
		},
		{
			name: "width mismatch wins over misaligned length",
			build: func() error {
				_, err := NewDecoder[uint16](make([]byte, 7), 4)
				return err
			},
			rule: errors.RuleWidthMismatch,
			want: 2,
			got:  4,
		},
		{
			name: "misaligned length",
			build: func() error {
				_, err := NewDecoder[uint32](make([]byte, 10), 4)
				return err
			},
			rule: errors.RuleLengthMultiple,
			want: 4,
			got:  10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.build()
			if err == nil {
				t.Fatal("expected error")
			}
			if !stderrors.Is(err, errors.ErrOutOfSpec) {
				t.Errorf("error %v is not out of spec", err)
			}
			var e *errors.Error
			if !stderrors.As(err, &e) {
				t.Fatalf("error %T is not *errors.Error", err)
			}
			if e.Rule != tt.rule {
				t.Errorf("Rule = %v, want %v", e.Rule, tt.rule)
			}
			if e.Want != tt.want || e.Got != tt.got {
				t.Errorf("Want/Got = %d/%d, want %d/%d", e.Want, e.Got, tt.want, tt.got)
			}
		})
	}
}

func TestNewDecoder_RejectReturnsNoDecoder(t *testing.T) {
	d, err := NewDecoder[uint32](make([]byte, 3), 4)
	if err == nil || d != nil {
		t.Fatalf("NewDecoder = %v, %v, want nil decoder and error", d, err)
	}
}

func TestDecoder_SourceNotMutated(t *testing.T) {
	in := []int32{1, -2, 3, -4, 5}
	buf := Encode(nil, in)
	orig := slices.Clone(buf)

	d, err := NewDecoder[int32](buf, 4)
	if err != nil {
		t.Fatalf("NewDecoder: %v", err)
	}
	drain(t, d)

	if !slices.Equal(buf, orig) {
		t.Errorf("source changed: %x, want %x", buf, orig)
	}
}

func TestDecoder_Values(t *testing.T) {
	in := []uint64{10, 20, 30, 40, 50}
	d, err := NewDecoder[uint64](Encode(nil, in), 8)
	if err != nil {
		t.Fatalf("NewDecoder: %v", err)
	}

	var first []uint64
	for v := range d.Values() {
		first = append(first, v)
		if len(first) == 2 {
			break
		}
	}
	if !slices.Equal(first, in[:2]) {
		t.Errorf("first = %v, want %v", first, in[:2])
	}
	if d.Remaining() != 3 {
		t.Errorf("Remaining = %d, want 3", d.Remaining())
	}

	rest := slices.Collect(d.Values())
	if !slices.Equal(rest, in[2:]) {
		t.Errorf("rest = %v, want %v", rest, in[2:])
	}
	if got := slices.Collect(d.Values()); len(got) != 0 {
		t.Errorf("exhausted Values yielded %v", got)
	}
}

func TestDecoder_Read(t *testing.T) {
	in := make([]float32, 11)
	for i := range in {
		in[i] = float32(i) / 3
	}
	d, err := NewDecoder[float32](Encode(nil, in), 4)
	if err != nil {
		t.Fatalf("NewDecoder: %v", err)
	}

	var got []float32
	batch := make([]float32, 4)
	for {
		n, err := d.Read(batch)
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Read: %v", err)
		}
		got = append(got, batch[:n]...)
	}

	if !slices.Equal(got, in) {
		t.Errorf("values = %v, want %v", got, in)
	}
}

func TestDecoder_ReadThenNext(t *testing.T) {
	in := []int16{-1, 2, -3, 4, -5}
	d, err := NewDecoder[int16](Encode(nil, in), 2)
	if err != nil {
		t.Fatalf("NewDecoder: %v", err)
	}

	batch := make([]int16, 3)
	if n, err := d.Read(batch); n != 3 || err != nil {
		t.Fatalf("Read = %d, %v", n, err)
	}
	v, err := d.Next()
	if err != nil || v != 4 {
		t.Fatalf("Next = %d, %v, want 4", v, err)
	}
	if n, _ := d.Read(batch); n != 1 || batch[0] != -5 {
		t.Fatalf("Read = %d %v, want 1 [-5]", n, batch[:n])
	}
}

func TestDecoder_Range(t *testing.T) {
	in := []uint32{100, 200, 300, 400, 500, 600}
	d, err := NewDecoder[uint32](Encode(nil, in), 4)
	if err != nil {
		t.Fatalf("NewDecoder: %v", err)
	}

	t.Run("window", func(t *testing.T) {
		r, err := d.Range(2, 5)
		if err != nil {
			t.Fatalf("Range: %v", err)
		}
		if r.Remaining() != 3 || r.Len() != 6 {
			t.Errorf("Remaining=%d Len=%d, want 3 and 6", r.Remaining(), r.Len())
		}
		if got := drain(t, r); !slices.Equal(got, in[2:5]) {
			t.Errorf("values = %v, want %v", got, in[2:5])
		}
		if d.Remaining() != len(in) {
			t.Errorf("parent Remaining = %d, want %d", d.Remaining(), len(in))
		}
	})

	t.Run("empty window", func(t *testing.T) {
		r, err := d.Range(6, 6)
		if err != nil {
			t.Fatalf("Range: %v", err)
		}
		if _, err := r.Next(); err != io.EOF {
			t.Errorf("Next = %v, want io.EOF", err)
		}
	})

	t.Run("out of bounds", func(t *testing.T) {
		for _, bounds := range [][2]int{{-1, 2}, {7, 7}, {3, 2}, {0, 7}} {
			_, err := d.Range(bounds[0], bounds[1])
			if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseValidate, Kind: errors.KindOutOfBounds}) {
				t.Errorf("Range(%d, %d) = %v, want out of bounds", bounds[0], bounds[1], err)
			}
		}
	})
}

func TestDecoder_ParallelRanges(t *testing.T) {
	in := make([]float64, 10000)
	for i := range in {
		in[i] = float64(i) * math.E
	}
	d, err := NewDecoder[float64](Encode(nil, in), 8)
	if err != nil {
		t.Fatalf("NewDecoder: %v", err)
	}

	const parts = 8
	out := make([]float64, len(in))
	step := (len(in) + parts - 1) / parts

	var g errgroup.Group
	for start := 0; start < len(in); start += step {
		end := min(start+step, len(in))
		g.Go(func() error {
			r, err := d.Range(start, end)
			if err != nil {
				return err
			}
			_, err = r.Read(out[start:end])
			return err
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("parallel decode: %v", err)
	}

	if !slices.Equal(out, in) {
		t.Error("parallel decode differs from input")
	}
}

func TestDecodeAll(t *testing.T) {
	in := []int8{-128, -1, 0, 1, 127}
	got, err := DecodeAll[int8](Encode(nil, in))
	if err != nil {
		t.Fatalf("DecodeAll: %v", err)
	}
	if !slices.Equal(got, in) {
		t.Errorf("values = %v, want %v", got, in)
	}

	if _, err := DecodeAll[uint64](make([]byte, 12)); !stderrors.Is(err, errors.ErrOutOfSpec) {
		t.Errorf("DecodeAll misaligned = %v, want out of spec", err)
	}
}

func TestEncode_ReusesCapacity(t *testing.T) {
	dst := make([]byte, 0, 64)
	out := Encode(dst, []uint16{0x0102, 0x0304})
	if &out[0] != &dst[:1][0] {
		t.Error("Encode did not reuse dst capacity")
	}
	want := []byte{0x02, 0x04, 0x01, 0x03}
	if !slices.Equal(out, want) {
		t.Errorf("Encode = %x, want %x", out, want)
	}
}

func TestDecoder_NextDoesNotAllocate(t *testing.T) {
	in := make([]uint64, 4096)
	for i := range in {
		in[i] = uint64(i)
	}
	d, err := NewDecoder[uint64](Encode(nil, in), 8)
	if err != nil {
		t.Fatalf("NewDecoder: %v", err)
	}

	allocs := testing.AllocsPerRun(1000, func() {
		_, _ = d.Next()
	})
	if allocs != 0 {
		t.Errorf("Next allocated %.1f times per call, want 0", allocs)
	}
}
