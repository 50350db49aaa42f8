package raster

import (
	"errors"
	"testing"
)

func TestDataTypeSize(t *testing.T) {
	sizes := map[DataType]int{
		Byte: 1, Int8: 1,
		UInt16: 2, Int16: 2,
		UInt32: 4, Int32: 4, Float32: 4,
		Float64: 8,
		Unknown: 0,
	}
	for dt, want := range sizes {
		if got := dt.Size(); got != want {
			t.Errorf("%v.Size() = %d, want %d", dt, got, want)
		}
	}
}

func TestParseDataType(t *testing.T) {
	for dt := Byte; dt <= Float64; dt++ {
		got, err := ParseDataType(dt.String())
		if err != nil {
			t.Errorf("ParseDataType(%q) failed: %v", dt.String(), err)
		}
		if got != dt {
			t.Errorf("ParseDataType(%q) = %v, want %v", dt.String(), got, dt)
		}
	}
	if _, err := ParseDataType("Complex64"); err == nil {
		t.Error("expected error for unsupported type name")
	}
}

func TestMakeSlice(t *testing.T) {
	s, err := MakeSlice(Int16, 10)
	if err != nil {
		t.Fatalf("MakeSlice failed: %v", err)
	}
	vals, ok := s.([]int16)
	if !ok {
		t.Fatalf("MakeSlice returned %T, expected []int16", s)
	}
	if len(vals) != 10 {
		t.Errorf("length: got %d, want 10", len(vals))
	}

	if _, err := MakeSlice(Unknown, 4); !errors.Is(err, ErrInvalidBuffer) {
		t.Errorf("MakeSlice(Unknown): expected ErrInvalidBuffer, got %v", err)
	}
}

func TestBufferInfo(t *testing.T) {
	cases := []struct {
		buf interface{}
		dt  DataType
		n   int
	}{
		{make([]uint8, 3), Byte, 3},
		{make([]int8, 1), Int8, 1},
		{make([]uint16, 5), UInt16, 5},
		{make([]int16, 0), Int16, 0},
		{make([]uint32, 2), UInt32, 2},
		{make([]int32, 2), Int32, 2},
		{make([]float32, 7), Float32, 7},
		{make([]float64, 4), Float64, 4},
	}
	for _, tc := range cases {
		dt, n, err := bufferInfo(tc.buf)
		if err != nil {
			t.Errorf("bufferInfo(%T) failed: %v", tc.buf, err)
			continue
		}
		if dt != tc.dt || n != tc.n {
			t.Errorf("bufferInfo(%T) = (%v, %d), want (%v, %d)", tc.buf, dt, n, tc.dt, tc.n)
		}
	}

	if _, _, err := bufferInfo([]bool{true}); !errors.Is(err, ErrInvalidBuffer) {
		t.Errorf("bool slice: expected ErrInvalidBuffer, got %v", err)
	}
	if _, _, err := bufferInfo("pixels"); !errors.Is(err, ErrInvalidBuffer) {
		t.Errorf("string: expected ErrInvalidBuffer, got %v", err)
	}
}

func TestConvertRect(t *testing.T) {
	src := []int16{-5, 100, 300, -300}
	dst := make([]float64, 4)
	convertRect(src, 0, 1, 2, dst, 0, 1, 2, 2, 2)
	for i, want := range []float64{-5, 100, 300, -300} {
		if dst[i] != want {
			t.Errorf("dst[%d] = %g, want %g", i, dst[i], want)
		}
	}

	// Same-type copy with a strided destination.
	s := []uint8{1, 2, 3, 4}
	d := make([]uint8, 8)
	convertRect(s, 0, 1, 2, d, 0, 2, 4, 2, 2)
	want := []uint8{1, 0, 2, 0, 3, 0, 4, 0}
	for i := range want {
		if d[i] != want[i] {
			t.Errorf("d[%d] = %d, want %d", i, d[i], want[i])
		}
	}
}
