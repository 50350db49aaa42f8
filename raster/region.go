package raster

import (
	"fmt"

	"github.com/geocodex/go-raster/internal/grid"
)

// Region is a rectangular window in band pixel coordinates.
type Region struct {
	X, Y int // offset of the top-left pixel
	W, H int // size in pixels
}

// FullRegion returns the region covering an entire w by h raster.
func FullRegion(w, h int) Region {
	return Region{W: w, H: h}
}

// RowRegion returns the region covering the inclusive row range
// [y0, y1] across the full raster width.
func RowRegion(y0, y1, width int) (Region, error) {
	if y1 < y0 {
		return Region{}, fmt.Errorf("%w: row range [%d, %d] is inverted", ErrInvalidWindow, y0, y1)
	}
	return Region{Y: y0, W: width, H: y1 - y0 + 1}, nil
}

// ColumnRegion returns the region covering the inclusive column range
// [x0, x1] across the full raster height.
func ColumnRegion(x0, x1, height int) (Region, error) {
	if x1 < x0 {
		return Region{}, fmt.Errorf("%w: column range [%d, %d] is inverted", ErrInvalidWindow, x0, x1)
	}
	return Region{X: x0, W: x1 - x0 + 1, H: height}, nil
}

// validate checks the region geometry invariant against a raster of the
// given size: at least one pixel, and fully inside the raster.
func (w Region) validate(rasterW, rasterH int) error {
	if w.W < 1 || w.H < 1 {
		return fmt.Errorf("%w: window %dx%d is empty", ErrInvalidWindow, w.W, w.H)
	}
	if w.X < 0 || w.Y < 0 || w.X+w.W > rasterW || w.Y+w.H > rasterH {
		return fmt.Errorf("%w: window (%d,%d %dx%d) exceeds raster %dx%d",
			ErrInvalidWindow, w.X, w.Y, w.W, w.H, rasterW, rasterH)
	}
	return nil
}

func (w Region) rect() grid.Rect {
	return grid.Rect{X: w.X, Y: w.Y, W: w.W, H: w.H}
}
