// Package grid provides block-grid geometry for tiled raster storage.
//
// A band's storage is divided into fixed-size blocks. Edge blocks keep
// their nominal size even when they extend past the raster edge; the
// cells beyond the edge are padding owned by the storage driver.
package grid

// Rect is a rectangle in band pixel coordinates.
type Rect struct {
	X, Y, W, H int
}

// Empty reports whether the rectangle covers no pixels.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Intersect returns the intersection of two rectangles. The result is
// empty when they do not overlap.
func (r Rect) Intersect(o Rect) Rect {
	x0 := max(r.X, o.X)
	y0 := max(r.Y, o.Y)
	x1 := min(r.X+r.W, o.X+o.W)
	y1 := min(r.Y+r.H, o.Y+o.H)
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Grid describes the block tiling of a raster band.
type Grid struct {
	Width, Height  int // raster size in pixels
	BlockW, BlockH int // nominal block size in pixels
}

// BlocksX returns the number of block columns.
func (g Grid) BlocksX() int {
	return (g.Width + g.BlockW - 1) / g.BlockW
}

// BlocksY returns the number of block rows.
func (g Grid) BlocksY() int {
	return (g.Height + g.BlockH - 1) / g.BlockH
}

// Contains reports whether (bx, by) is a valid block index.
func (g Grid) Contains(bx, by int) bool {
	return bx >= 0 && by >= 0 && bx < g.BlocksX() && by < g.BlocksY()
}

// BlockRect returns the full nominal extent of block (bx, by) in pixel
// coordinates. Edge blocks may extend past the raster edge.
func (g Grid) BlockRect(bx, by int) Rect {
	return Rect{X: bx * g.BlockW, Y: by * g.BlockH, W: g.BlockW, H: g.BlockH}
}

// ValidRect returns the extent of block (bx, by) clipped to the raster
// edge. This is the portion of the block holding real pixels.
func (g Grid) ValidRect(bx, by int) Rect {
	return g.BlockRect(bx, by).Intersect(Rect{W: g.Width, H: g.Height})
}

// CoverRange returns the inclusive block index range overlapping the
// given window. The window is assumed to lie within the raster.
func (g Grid) CoverRange(wnd Rect) (bx0, by0, bx1, by1 int) {
	bx0 = wnd.X / g.BlockW
	by0 = wnd.Y / g.BlockH
	bx1 = (wnd.X + wnd.W - 1) / g.BlockW
	by1 = (wnd.Y + wnd.H - 1) / g.BlockH
	return
}

// CopyRect copies a rectangle of elemSize-byte pixels between two packed
// row-major buffers. srcPitch and dstPitch are row pitches in pixels.
// (srcX, srcY) and (dstX, dstY) locate the rectangle's origin in each
// buffer, and w, h give its size in pixels.
func CopyRect(dst, src []byte, elemSize int, dstPitch, dstX, dstY, srcPitch, srcX, srcY, w, h int) {
	rowBytes := w * elemSize
	for row := 0; row < h; row++ {
		so := ((srcY+row)*srcPitch + srcX) * elemSize
		do := ((dstY+row)*dstPitch + dstX) * elemSize
		copy(dst[do:do+rowBytes], src[so:so+rowBytes])
	}
}
