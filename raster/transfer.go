package raster

// Windowed transfer negotiation
//
// This file reconciles the three degrees of freedom of a windowed
// transfer: the source window geometry, the buffer geometry and
// strides, and the pixel element types on both sides.
//
// # Dispatch
//
// Buffers arrive as plain Go slices. bufferInfo maps the slice's
// dynamic type to a DataType tag at the API boundary; from there every
// copy runs through copyRectConv, a single generic function
// instantiated per (source, destination) element type pair. The
// runtime tag pair selects the instantiation through the two nested
// type switches in convertRect.
//
// # Transfer paths
//
// When the buffer shape equals the window shape, blocks overlapping
// the window are transferred one at a time and converted directly
// between block storage and the strided buffer. Partial-block writes
// read, patch and rewrite the block so driver padding is preserved.
//
// When the shapes differ, the window is staged as a packed native-type
// buffer, the resampling kernel runs over float64 planes, and the
// result is converted to the destination layout. float64 represents
// every supported element type exactly, so staging loses nothing.
// On the write side the staged window is produced from the buffer with
// the nearest kernel (the scatter dual) and then written blockwise.
//
// # Fast path
//
// Same-type transfers with packed rows reduce to per-row byte copies;
// drivers exposing the bulk TransferRegion primitive skip block
// assembly entirely.

import (
	"fmt"

	"github.com/geocodex/go-raster/internal/grid"
)

// planeLayout locates one band plane inside a buffer. All fields are
// in elements, not bytes; the byte strides of the public API are
// divided down at the boundary.
type planeLayout struct {
	w, h      int // buffer shape
	pix, line int // strides between pixels and rows
	off       int // offset of the plane's first element
}

// lastIndex returns the highest element index the layout touches.
func (l planeLayout) lastIndex() int {
	return l.off + (l.h-1)*l.line + (l.w-1)*l.pix
}

// transferBand runs one fully-negotiated single-plane transfer.
func transferBand(drv Driver, op IOOperation, wnd Region, buffer interface{}, lay planeLayout, alg ResamplingAlg, prog ProgressFn) error {
	if wnd.W == lay.w && wnd.H == lay.h {
		if op == IORead {
			return readWindow(drv, wnd, buffer, lay, prog)
		}
		return writeWindow(drv, wnd, buffer, lay, prog)
	}
	if op == IORead {
		return readResampled(drv, wnd, buffer, lay, alg, prog)
	}
	return writeResampled(drv, wnd, buffer, lay, prog)
}

// readWindow transfers wnd into the buffer without resampling.
func readWindow(drv Driver, wnd Region, buffer interface{}, lay planeLayout, prog ProgressFn) error {
	nt := drv.DataType()

	if wt, ok := drv.(RegionTransferer); ok {
		native := make([]byte, wnd.W*wnd.H*nt.Size())
		if err := wt.TransferRegion(IORead, wnd, native); err != nil {
			return fmt.Errorf("%w: read window (%d,%d %dx%d): %v", ErrIO, wnd.X, wnd.Y, wnd.W, wnd.H, err)
		}
		convertRect(nativeView(native, nt), 0, 1, wnd.W, buffer, lay.off, lay.pix, lay.line, wnd.W, wnd.H)
		return reportProgress(prog, 1)
	}

	g := driverGrid(drv)
	blk := make([]byte, g.BlockW*g.BlockH*nt.Size())
	src := nativeView(blk, nt)

	return eachBlock(g, wnd, prog, func(bx, by int, block, overlap grid.Rect) error {
		if err := drv.ReadBlock(bx, by, blk); err != nil {
			return fmt.Errorf("%w: read block (%d,%d): %v", ErrIO, bx, by, err)
		}
		sOff := (overlap.Y-block.Y)*g.BlockW + (overlap.X - block.X)
		dOff := lay.off + (overlap.Y-wnd.Y)*lay.line + (overlap.X-wnd.X)*lay.pix
		convertRect(src, sOff, 1, g.BlockW, buffer, dOff, lay.pix, lay.line, overlap.W, overlap.H)
		return nil
	})
}

// writeWindow transfers the buffer into wnd without resampling.
// Partial blocks are read, patched and rewritten.
func writeWindow(drv Driver, wnd Region, buffer interface{}, lay planeLayout, prog ProgressFn) error {
	nt := drv.DataType()

	if wt, ok := drv.(RegionTransferer); ok {
		native := make([]byte, wnd.W*wnd.H*nt.Size())
		convertRect(buffer, lay.off, lay.pix, lay.line, nativeView(native, nt), 0, 1, wnd.W, wnd.W, wnd.H)
		if err := wt.TransferRegion(IOWrite, wnd, native); err != nil {
			return fmt.Errorf("%w: write window (%d,%d %dx%d): %v", ErrIO, wnd.X, wnd.Y, wnd.W, wnd.H, err)
		}
		return reportProgress(prog, 1)
	}

	g := driverGrid(drv)
	blk := make([]byte, g.BlockW*g.BlockH*nt.Size())
	dst := nativeView(blk, nt)

	return eachBlock(g, wnd, prog, func(bx, by int, block, overlap grid.Rect) error {
		if overlap != block {
			if err := drv.ReadBlock(bx, by, blk); err != nil {
				return fmt.Errorf("%w: read block (%d,%d) for partial write: %v", ErrIO, bx, by, err)
			}
		}
		sOff := lay.off + (overlap.Y-wnd.Y)*lay.line + (overlap.X-wnd.X)*lay.pix
		dOff := (overlap.Y-block.Y)*g.BlockW + (overlap.X - block.X)
		convertRect(buffer, sOff, lay.pix, lay.line, dst, dOff, 1, g.BlockW, overlap.W, overlap.H)
		if err := drv.WriteBlock(bx, by, blk); err != nil {
			return fmt.Errorf("%w: write block (%d,%d): %v", ErrIO, bx, by, err)
		}
		return nil
	})
}

// readResampled reads wnd at native resolution, resamples it to the
// buffer shape and converts into the buffer layout.
func readResampled(drv Driver, wnd Region, buffer interface{}, lay planeLayout, alg ResamplingAlg, prog ProgressFn) error {
	nt := drv.DataType()
	native := make([]byte, wnd.W*wnd.H*nt.Size())
	stage := nativeView(native, nt)

	err := readWindow(drv, wnd, stage, planeLayout{w: wnd.W, h: wnd.H, pix: 1, line: wnd.W}, scaleProgress(prog, 0, 0.5))
	if err != nil {
		return err
	}

	src := make([]float64, wnd.W*wnd.H)
	convertRect(stage, 0, 1, wnd.W, src, 0, 1, wnd.W, wnd.W, wnd.H)
	dst := make([]float64, lay.w*lay.h)
	resamplePlane(src, wnd.W, wnd.H, dst, lay.w, lay.h, alg)
	convertRect(dst, 0, 1, lay.w, buffer, lay.off, lay.pix, lay.line, lay.w, lay.h)
	return reportProgress(prog, 1)
}

// writeResampled scatters the buffer into wnd. The write-side dual of
// decimation and replication always uses the nearest kernel; the
// interpolating kernels are read-side only.
func writeResampled(drv Driver, wnd Region, buffer interface{}, lay planeLayout, prog ProgressFn) error {
	nt := drv.DataType()

	src := make([]float64, lay.w*lay.h)
	convertRect(buffer, lay.off, lay.pix, lay.line, src, 0, 1, lay.w, lay.w, lay.h)
	dst := make([]float64, wnd.W*wnd.H)
	resamplePlane(src, lay.w, lay.h, dst, wnd.W, wnd.H, Nearest)

	native := make([]byte, wnd.W*wnd.H*nt.Size())
	stage := nativeView(native, nt)
	convertRect(dst, 0, 1, wnd.W, stage, 0, 1, wnd.W, wnd.W, wnd.H)

	return writeWindow(drv, wnd, stage, planeLayout{w: wnd.W, h: wnd.H, pix: 1, line: wnd.W}, scaleProgress(prog, 0.5, 1))
}

func driverGrid(drv Driver) grid.Grid {
	w, h := drv.RasterSize()
	bw, bh := drv.BlockSize()
	return grid.Grid{Width: w, Height: h, BlockW: bw, BlockH: bh}
}

// eachBlock visits every block overlapping wnd, reporting progress and
// honoring cancellation after each block.
func eachBlock(g grid.Grid, wnd Region, prog ProgressFn, fn func(bx, by int, block, overlap grid.Rect) error) error {
	bx0, by0, bx1, by1 := g.CoverRange(wnd.rect())
	total := (bx1 - bx0 + 1) * (by1 - by0 + 1)
	done := 0
	for by := by0; by <= by1; by++ {
		for bx := bx0; bx <= bx1; bx++ {
			block := g.BlockRect(bx, by)
			overlap := block.Intersect(wnd.rect())
			if overlap.Empty() {
				continue
			}
			if err := fn(bx, by, block, overlap); err != nil {
				return err
			}
			done++
			if err := reportProgress(prog, float64(done)/float64(total)); err != nil {
				return err
			}
		}
	}
	return nil
}

func reportProgress(prog ProgressFn, complete float64) error {
	if prog != nil && !prog(complete) {
		return fmt.Errorf("%w: progress callback requested termination", ErrCancelled)
	}
	return nil
}

// scaleProgress maps an inner transfer's [0,1] progress onto the
// [lo,hi] slice of the outer call's progress.
func scaleProgress(prog ProgressFn, lo, hi float64) ProgressFn {
	if prog == nil {
		return nil
	}
	return func(f float64) bool {
		return prog(lo + f*(hi-lo))
	}
}
