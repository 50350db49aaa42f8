package raster

import (
	"fmt"
	"math"
	"sync"
)

// ResamplingAlg selects the kernel used when the buffer shape differs
// from the window shape.
type ResamplingAlg int

const (
	// Nearest selects the source pixel whose center is closest. The
	// default, and the only kernel applied on the write side.
	Nearest ResamplingAlg = iota
	// Bilinear interpolates linearly from the four neighbours.
	Bilinear
	// Cubic applies a Catmull-Rom convolution.
	Cubic
	// CubicSpline applies a cubic B-spline convolution.
	CubicSpline
	// Lanczos applies a windowed-sinc convolution (a=3).
	Lanczos
	// Average takes the arithmetic mean of the source footprint.
	Average
	// Mode takes the most frequent value in the source footprint.
	Mode
)

func (a ResamplingAlg) String() string {
	switch a {
	case Nearest:
		return "nearest"
	case Bilinear:
		return "bilinear"
	case Cubic:
		return "cubic"
	case CubicSpline:
		return "cubicspline"
	case Lanczos:
		return "lanczos"
	case Average:
		return "average"
	case Mode:
		return "mode"
	default:
		return fmt.Sprintf("ResamplingAlg(%d)", int(a))
	}
}

func (a ResamplingAlg) valid() bool {
	return a >= Nearest && a <= Mode
}

var (
	defaultResamplingMu sync.RWMutex
	defaultResampling   = Nearest
)

// SetDefaultResampling overrides the process-wide resampling default
// used by calls that pass no Resampling option. Invalid values are
// ignored.
func SetDefaultResampling(alg ResamplingAlg) {
	if !alg.valid() {
		return
	}
	defaultResamplingMu.Lock()
	defaultResampling = alg
	defaultResamplingMu.Unlock()
}

// DefaultResampling returns the current process-wide default.
func DefaultResampling() ResamplingAlg {
	defaultResamplingMu.RLock()
	defer defaultResamplingMu.RUnlock()
	return defaultResampling
}

// nearestIndex maps destination index i of dn samples onto sn source
// samples using center-of-pixel mapping.
func nearestIndex(i, dn, sn int) int {
	s := int((float64(i) + 0.5) * float64(sn) / float64(dn))
	if s >= sn {
		s = sn - 1
	}
	return s
}

// resamplePlane scales a packed row-major float64 plane from (sw, sh)
// to (dw, dh) with the given kernel. Kernel math is carried in float64;
// conversion back to the buffer's element type happens in the caller.
func resamplePlane(src []float64, sw, sh int, dst []float64, dw, dh int, alg ResamplingAlg) {
	switch alg {
	case Nearest:
		for y := 0; y < dh; y++ {
			sy := nearestIndex(y, dh, sh)
			srow := src[sy*sw:]
			drow := dst[y*dw:]
			for x := 0; x < dw; x++ {
				drow[x] = srow[nearestIndex(x, dw, sw)]
			}
		}
	case Average:
		forEachFootprint(sw, sh, dw, dh, func(x, y, x0, x1, y0, y1 int) {
			sum := 0.0
			for sy := y0; sy < y1; sy++ {
				for sx := x0; sx < x1; sx++ {
					sum += src[sy*sw+sx]
				}
			}
			dst[y*dw+x] = sum / float64((x1-x0)*(y1-y0))
		})
	case Mode:
		counts := make(map[float64]int)
		forEachFootprint(sw, sh, dw, dh, func(x, y, x0, x1, y0, y1 int) {
			clear(counts)
			best, bestN := 0.0, 0
			for sy := y0; sy < y1; sy++ {
				for sx := x0; sx < x1; sx++ {
					v := src[sy*sw+sx]
					counts[v]++
					if counts[v] > bestN {
						best, bestN = v, counts[v]
					}
				}
			}
			dst[y*dw+x] = best
		})
	default:
		convolvePlane(src, sw, sh, dst, dw, dh, alg)
	}
}

// forEachFootprint visits every destination pixel together with its
// integer source footprint [x0,x1)x[y0,y1), never empty.
func forEachFootprint(sw, sh, dw, dh int, fn func(x, y, x0, x1, y0, y1 int)) {
	for y := 0; y < dh; y++ {
		y0 := y * sh / dh
		y1 := (y + 1) * sh / dh
		if y1 <= y0 {
			y1 = y0 + 1
		}
		for x := 0; x < dw; x++ {
			x0 := x * sw / dw
			x1 := (x + 1) * sw / dw
			if x1 <= x0 {
				x1 = x0 + 1
			}
			fn(x, y, x0, x1, y0, y1)
		}
	}
}

// kernelFor returns the convolution weight function and its radius in
// source pixels for the interpolating kernels.
func kernelFor(alg ResamplingAlg) (func(t float64) float64, float64) {
	switch alg {
	case Bilinear:
		return func(t float64) float64 {
			t = math.Abs(t)
			if t >= 1 {
				return 0
			}
			return 1 - t
		}, 1
	case Cubic:
		// Catmull-Rom, a = -0.5.
		return func(t float64) float64 {
			t = math.Abs(t)
			switch {
			case t < 1:
				return 1.5*t*t*t - 2.5*t*t + 1
			case t < 2:
				return -0.5*t*t*t + 2.5*t*t - 4*t + 2
			default:
				return 0
			}
		}, 2
	case CubicSpline:
		return func(t float64) float64 {
			t = math.Abs(t)
			switch {
			case t < 1:
				return 2.0/3.0 - t*t + t*t*t/2
			case t < 2:
				d := 2 - t
				return d * d * d / 6
			default:
				return 0
			}
		}, 2
	default: // Lanczos, a = 3
		return func(t float64) float64 {
			t = math.Abs(t)
			if t >= 3 {
				return 0
			}
			if t == 0 {
				return 1
			}
			pt := math.Pi * t
			return 3 * math.Sin(pt) * math.Sin(pt/3) / (pt * pt)
		}, 3
	}
}

// convolvePlane applies an interpolating kernel. When decimating, the
// kernel is widened by the scale ratio so the footprint still covers
// the contributing source pixels.
func convolvePlane(src []float64, sw, sh int, dst []float64, dw, dh int, alg ResamplingAlg) {
	kernel, radius := kernelFor(alg)

	xRatio := float64(sw) / float64(dw)
	yRatio := float64(sh) / float64(dh)
	xScale := math.Max(1, xRatio)
	yScale := math.Max(1, yRatio)
	xRad := radius * xScale
	yRad := radius * yScale

	for y := 0; y < dh; y++ {
		fy := (float64(y)+0.5)*yRatio - 0.5
		sy0 := int(math.Ceil(fy - yRad))
		sy1 := int(math.Floor(fy + yRad))
		for x := 0; x < dw; x++ {
			fx := (float64(x)+0.5)*xRatio - 0.5
			sx0 := int(math.Ceil(fx - xRad))
			sx1 := int(math.Floor(fx + xRad))

			sum, wsum := 0.0, 0.0
			for sy := sy0; sy <= sy1; sy++ {
				cy := clampInt(sy, 0, sh-1)
				wy := kernel((fy - float64(sy)) / yScale)
				if wy == 0 {
					continue
				}
				for sx := sx0; sx <= sx1; sx++ {
					cx := clampInt(sx, 0, sw-1)
					w := wy * kernel((fx-float64(sx))/xScale)
					if w == 0 {
						continue
					}
					sum += w * src[cy*sw+cx]
					wsum += w
				}
			}
			if wsum != 0 {
				dst[y*dw+x] = sum / wsum
			}
		}
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
