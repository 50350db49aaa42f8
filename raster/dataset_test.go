package raster

import (
	"errors"
	"strings"
	"testing"
)

// newTestDataset builds an n-band dataset where every pixel of band i
// (1-based) holds the value 10*i.
func newTestDataset(t *testing.T, w, h, nbands int) *Dataset {
	t.Helper()
	ds, err := NewMemDataset(w, h, nbands, Byte)
	if err != nil {
		t.Fatalf("NewMemDataset failed: %v", err)
	}
	for bn := 1; bn <= nbands; bn++ {
		band, err := ds.Band(bn)
		if err != nil {
			t.Fatalf("Band(%d) failed: %v", bn, err)
		}
		data := make([]uint8, w*h)
		for i := range data {
			data[i] = uint8(10 * bn)
		}
		if err := band.WriteAll(data, w, h); err != nil {
			t.Fatalf("WriteAll band %d failed: %v", bn, err)
		}
	}
	return ds
}

func TestDatasetBasics(t *testing.T) {
	ds := newTestDataset(t, 6, 4, 3)

	if w, h := ds.Size(); w != 6 || h != 4 {
		t.Errorf("Size: got %dx%d, want 6x4", w, h)
	}
	if n := ds.BandCount(); n != 3 {
		t.Errorf("BandCount: got %d, want 3", n)
	}
	if !strings.HasPrefix(ds.Description(), "mem:") {
		t.Errorf("Description: got %q, want mem: prefix", ds.Description())
	}
	if _, err := ds.Band(0); !errors.Is(err, ErrInvalidBand) {
		t.Errorf("Band(0): expected ErrInvalidBand, got %v", err)
	}
	if _, err := ds.Band(4); !errors.Is(err, ErrInvalidBand) {
		t.Errorf("Band(4): expected ErrInvalidBand, got %v", err)
	}
	if got := len(ds.Bands()); got != 3 {
		t.Errorf("Bands: got %d handles, want 3", got)
	}
}

func TestDatasetPlanarRead(t *testing.T) {
	ds := newTestDataset(t, 4, 4, 2)

	buf := make([]uint8, 2*4*4)
	if err := ds.ReadAll(buf, 4, 4); err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	for i := 0; i < 16; i++ {
		if buf[i] != 10 {
			t.Fatalf("plane 0 element %d: expected 10, got %d", i, buf[i])
		}
		if buf[16+i] != 20 {
			t.Fatalf("plane 1 element %d: expected 20, got %d", i, buf[16+i])
		}
	}
}

func TestDatasetBandSelection(t *testing.T) {
	ds := newTestDataset(t, 2, 2, 3)

	// Explicit selection with a duplicate: planes follow the
	// selection order, not the band numbering.
	buf := make([]uint8, 3*4)
	if err := ds.Read(0, 0, buf, 2, 2, Bands(3, 1, 3)); err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	wantPlanes := []uint8{30, 10, 30}
	for p, want := range wantPlanes {
		for i := 0; i < 4; i++ {
			if got := buf[p*4+i]; got != want {
				t.Fatalf("plane %d element %d: expected %d, got %d", p, i, want, got)
			}
		}
	}

	if err := ds.Read(0, 0, buf, 2, 2, Bands(0)); !errors.Is(err, ErrInvalidBand) {
		t.Errorf("Bands(0): expected ErrInvalidBand, got %v", err)
	}
	if err := ds.Read(0, 0, buf, 2, 2, Bands(4)); !errors.Is(err, ErrInvalidBand) {
		t.Errorf("Bands(4): expected ErrInvalidBand, got %v", err)
	}
}

func TestDatasetShapeMismatch(t *testing.T) {
	ds := newTestDataset(t, 4, 4, 2)

	// One plane short.
	buf := make([]uint8, 4*4)
	err := ds.ReadAll(buf, 4, 4)
	if !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("expected ErrShapeMismatch, got %v", err)
	}
}

func TestDatasetPixelInterleaved(t *testing.T) {
	ds := newTestDataset(t, 3, 2, 2)

	// BIP layout: band values adjacent per pixel.
	buf := make([]uint8, 2*3*2)
	err := ds.ReadAll(buf, 3, 2, PixelSpacing(2), LineSpacing(6), BandSpacing(1))
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	for i := 0; i < len(buf); i += 2 {
		if buf[i] != 10 || buf[i+1] != 20 {
			t.Fatalf("pixel %d: expected (10,20), got (%d,%d)", i/2, buf[i], buf[i+1])
		}
	}
}

func TestDatasetWrite(t *testing.T) {
	ds, err := NewMemDataset(4, 4, 2, UInt16)
	if err != nil {
		t.Fatalf("NewMemDataset failed: %v", err)
	}

	buf := make([]uint16, 2*4*4)
	for i := 0; i < 16; i++ {
		buf[i] = uint16(100 + i)
		buf[16+i] = uint16(200 + i)
	}
	if err := ds.WriteAll(buf, 4, 4); err != nil {
		t.Fatalf("WriteAll failed: %v", err)
	}

	for bn := 1; bn <= 2; bn++ {
		band, err := ds.Band(bn)
		if err != nil {
			t.Fatalf("Band(%d) failed: %v", bn, err)
		}
		got, err := band.ReadUint16(0, 0, 4, 4)
		if err != nil {
			t.Fatalf("ReadUint16 failed: %v", err)
		}
		for i, v := range got {
			if want := buf[(bn-1)*16+i]; v != want {
				t.Errorf("band %d element %d: expected %d, got %d", bn, i, want, v)
			}
		}
	}
}

func TestDatasetFetch(t *testing.T) {
	ds := newTestDataset(t, 4, 4, 2)

	got, err := ds.Fetch(1, 1, 2, 2)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	vals, ok := got.([]uint8)
	if !ok {
		t.Fatalf("Fetch returned %T, expected []uint8", got)
	}
	if len(vals) != 2*2*2 {
		t.Fatalf("Fetch length: got %d, want 8", len(vals))
	}
	for i := 0; i < 4; i++ {
		if vals[i] != 10 || vals[4+i] != 20 {
			t.Fatalf("fetch planes: got %v", vals)
		}
	}
}

func TestDatasetProgress(t *testing.T) {
	ds := newTestDataset(t, 8, 8, 2)

	buf := make([]uint8, 2*8*8)
	var reports []float64
	err := ds.ReadAll(buf, 8, 8, Progress(func(f float64) bool {
		reports = append(reports, f)
		return true
	}))
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if len(reports) < 2 {
		t.Fatalf("expected per-plane progress, got %v", reports)
	}
	for i := 1; i < len(reports); i++ {
		if reports[i] < reports[i-1] {
			t.Fatalf("progress not monotonic: %v", reports)
		}
	}
	if last := reports[len(reports)-1]; last != 1 {
		t.Errorf("final progress: expected 1, got %g", last)
	}
}

func TestNewDatasetMismatchedSizes(t *testing.T) {
	a, err := NewMemBand(4, 4, Byte)
	if err != nil {
		t.Fatalf("NewMemBand failed: %v", err)
	}
	b, err := NewMemBand(5, 4, Byte)
	if err != nil {
		t.Fatalf("NewMemBand failed: %v", err)
	}
	_, err = NewDataset("test", []Driver{a.drv, b.drv})
	if !errors.Is(err, ErrInvalidDataset) {
		t.Errorf("expected ErrInvalidDataset, got %v", err)
	}
	_, err = NewDataset("test", nil)
	if !errors.Is(err, ErrInvalidDataset) {
		t.Errorf("empty dataset: expected ErrInvalidDataset, got %v", err)
	}
}
