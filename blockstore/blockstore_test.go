package blockstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/geocodex/go-raster/raster"
)

func tempStorePath(t *testing.T) string {
	t.Helper()
	tmpDir, err := os.MkdirTemp("", "blockstore-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tmpDir) })
	return filepath.Join(tmpDir, "test.db")
}

func TestStoreRoundTrip(t *testing.T) {
	path := tempStorePath(t)

	store, err := Create(path, 100, 80, 1, raster.Byte, BlockSize(32, 32))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	band, err := store.Dataset().Band(1)
	if err != nil {
		t.Fatalf("Band failed: %v", err)
	}
	if bw, bh := band.BlockSize(); bw != 32 || bh != 32 {
		t.Errorf("BlockSize: got %dx%d, want 32x32", bw, bh)
	}

	data := make([]uint8, 100*80)
	for i := range data {
		data[i] = uint8(i % 256)
	}
	if err := band.WriteAll(data, 100, 80); err != nil {
		t.Fatalf("WriteAll failed: %v", err)
	}

	result := make([]uint8, 100*80)
	if err := band.ReadAll(result, 100, 80); err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	for i, v := range result {
		if v != data[i] {
			t.Fatalf("Element %d: expected %d, got %d", i, data[i], v)
		}
	}

	store.Close()

	// Reopen and verify the pixels survived.
	store2, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer store2.Close()

	ds := store2.Dataset()
	if w, h := ds.Size(); w != 100 || h != 80 {
		t.Errorf("Size after reopen: got %dx%d, want 100x80", w, h)
	}
	band2, err := ds.Band(1)
	if err != nil {
		t.Fatalf("Band failed: %v", err)
	}
	if dt := band2.DataType(); dt != raster.Byte {
		t.Errorf("DataType after reopen: got %v, want Byte", dt)
	}

	window, err := band2.ReadUint8(10, 10, 20, 20)
	if err != nil {
		t.Fatalf("ReadUint8 failed: %v", err)
	}
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			want := data[(y+10)*100+x+10]
			if got := window[y*20+x]; got != want {
				t.Fatalf("(%d,%d): expected %d, got %d", x, y, want, got)
			}
		}
	}
}

func TestStoreSparseReads(t *testing.T) {
	path := tempStorePath(t)

	store, err := Create(path, 64, 64, 1, raster.UInt16, BlockSize(16, 16))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	defer store.Close()

	band, err := store.Dataset().Band(1)
	if err != nil {
		t.Fatalf("Band failed: %v", err)
	}

	// Write only one block's worth of pixels.
	patch := make([]uint16, 16*16)
	for i := range patch {
		patch[i] = 7
	}
	if err := band.Write(16, 16, patch, 16, 16); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	// Never-written regions read back as zero.
	full, err := band.ReadUint16(0, 0, 64, 64)
	if err != nil {
		t.Fatalf("ReadUint16 failed: %v", err)
	}
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			var want uint16
			if x >= 16 && x < 32 && y >= 16 && y < 32 {
				want = 7
			}
			if got := full[y*64+x]; got != want {
				t.Fatalf("(%d,%d): expected %d, got %d", x, y, want, got)
			}
		}
	}
}

func TestStoreMultiBand(t *testing.T) {
	path := tempStorePath(t)

	store, err := Create(path, 32, 32, 3, raster.Float32, BlockSize(16, 16))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	defer store.Close()

	ds := store.Dataset()
	if n := ds.BandCount(); n != 3 {
		t.Fatalf("BandCount: got %d, want 3", n)
	}

	buf := make([]float32, 3*32*32)
	for p := 0; p < 3; p++ {
		for i := 0; i < 32*32; i++ {
			buf[p*32*32+i] = float32(p) + 0.5
		}
	}
	if err := ds.WriteAll(buf, 32, 32); err != nil {
		t.Fatalf("WriteAll failed: %v", err)
	}

	got := make([]float32, 3*32*32)
	if err := ds.ReadAll(got, 32, 32); err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	for i, v := range got {
		if v != buf[i] {
			t.Fatalf("Element %d: expected %g, got %g", i, buf[i], v)
		}
	}
}

func TestCreateValidation(t *testing.T) {
	path := tempStorePath(t)

	if _, err := Create(path, 0, 10, 1, raster.Byte); err == nil {
		t.Error("expected error for zero width")
	}
	if _, err := Create(path, 10, 10, 0, raster.Byte); err == nil {
		t.Error("expected error for zero bands")
	}
	if _, err := Create(path, 10, 10, 1, raster.Unknown); err == nil {
		t.Error("expected error for unknown data type")
	}
}

func TestOpenMissingMetadata(t *testing.T) {
	path := tempStorePath(t)

	// A store created out-of-band without metadata must not open.
	store, err := Create(path, 10, 10, 1, raster.Byte)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	store.Close()

	if _, err := Open(path + ".missing"); err == nil {
		t.Error("expected error opening file with no metadata")
	}
}

func TestStoreIdentifier(t *testing.T) {
	pathA := tempStorePath(t)
	pathB := tempStorePath(t)

	a, err := Create(pathA, 8, 8, 1, raster.Byte)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	defer a.Close()
	b, err := Create(pathB, 8, 8, 1, raster.Byte)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	defer b.Close()

	idA := a.Dataset().Description()
	idB := b.Dataset().Description()
	if idA == "" || idB == "" {
		t.Fatal("expected non-empty identifiers")
	}
	if idA == idB {
		t.Errorf("identifiers should be unique, both %q", idA)
	}

	// The identifier survives reopening.
	a.Close()
	a2, err := Open(pathA)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer a2.Close()
	if got := a2.Dataset().Description(); got != idA {
		t.Errorf("identifier after reopen: got %q, want %q", got, idA)
	}
}
