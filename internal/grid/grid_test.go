package grid

import "testing"

func TestRectIntersect(t *testing.T) {
	a := Rect{X: 10, Y: 10, W: 20, H: 20}
	b := Rect{X: 25, Y: 5, W: 20, H: 10}
	got := a.Intersect(b)
	want := Rect{X: 25, Y: 10, W: 5, H: 5}
	if got != want {
		t.Errorf("Intersect: got %+v, want %+v", got, want)
	}

	c := Rect{X: 100, Y: 100, W: 5, H: 5}
	if !a.Intersect(c).Empty() {
		t.Errorf("expected empty intersection, got %+v", a.Intersect(c))
	}
}

func TestGridGeometry(t *testing.T) {
	g := Grid{Width: 300, Height: 300, BlockW: 256, BlockH: 256}

	if nx := g.BlocksX(); nx != 2 {
		t.Errorf("BlocksX: got %d, want 2", nx)
	}
	if ny := g.BlocksY(); ny != 2 {
		t.Errorf("BlocksY: got %d, want 2", ny)
	}
	if !g.Contains(1, 1) {
		t.Error("Contains(1, 1) should be true")
	}
	if g.Contains(2, 0) {
		t.Error("Contains(2, 0) should be false")
	}
	if g.Contains(-1, 0) {
		t.Error("Contains(-1, 0) should be false")
	}

	// Edge blocks keep the nominal extent; only the valid rect clips.
	if got := g.BlockRect(1, 1); got != (Rect{X: 256, Y: 256, W: 256, H: 256}) {
		t.Errorf("BlockRect(1,1): got %+v", got)
	}
	if got := g.ValidRect(1, 1); got != (Rect{X: 256, Y: 256, W: 44, H: 44}) {
		t.Errorf("ValidRect(1,1): got %+v", got)
	}
	if got := g.ValidRect(0, 0); got != (Rect{X: 0, Y: 0, W: 256, H: 256}) {
		t.Errorf("ValidRect(0,0): got %+v", got)
	}
}

func TestGridCoverRange(t *testing.T) {
	g := Grid{Width: 1000, Height: 1000, BlockW: 256, BlockH: 256}

	bx0, by0, bx1, by1 := g.CoverRange(Rect{X: 200, Y: 0, W: 100, H: 300})
	if bx0 != 0 || by0 != 0 || bx1 != 1 || by1 != 1 {
		t.Errorf("CoverRange: got (%d,%d)-(%d,%d), want (0,0)-(1,1)", bx0, by0, bx1, by1)
	}

	bx0, by0, bx1, by1 = g.CoverRange(Rect{X: 256, Y: 512, W: 256, H: 1})
	if bx0 != 1 || by0 != 2 || bx1 != 1 || by1 != 2 {
		t.Errorf("CoverRange aligned: got (%d,%d)-(%d,%d), want (1,2)-(1,2)", bx0, by0, bx1, by1)
	}
}

func TestCopyRect(t *testing.T) {
	// 4x3 source of uint8-sized pixels, numbered row major.
	src := make([]byte, 12)
	for i := range src {
		src[i] = byte(i)
	}
	dst := make([]byte, 12)

	// Copy the 2x2 rectangle at (1,1) in src to (2,0) in dst.
	CopyRect(dst, src, 1, 4, 2, 0, 4, 1, 1, 2, 2)

	want := []byte{0, 0, 5, 6, 0, 0, 9, 10, 0, 0, 0, 0}
	for i := range want {
		if dst[i] != want[i] {
			t.Fatalf("dst[%d] = %d, want %d (dst %v)", i, dst[i], want[i], dst)
		}
	}
}

func TestCopyRectWideElements(t *testing.T) {
	// Same copy with 2-byte pixels.
	src := make([]byte, 24)
	for i := range src {
		src[i] = byte(i)
	}
	dst := make([]byte, 24)

	CopyRect(dst, src, 2, 4, 0, 0, 4, 1, 1, 2, 1)

	// Source row 1 pixels 1..2 occupy bytes 10..13.
	want := []byte{10, 11, 12, 13}
	for i := range want {
		if dst[i] != want[i] {
			t.Fatalf("dst[%d] = %d, want %d", i, dst[i], want[i])
		}
	}
}
