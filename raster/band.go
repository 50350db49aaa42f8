package raster

import "fmt"

// Band is a handle to one channel of raster pixel data. It never owns
// the underlying storage: the driver (and whatever owns it) must stay
// valid for the duration of every call made through the handle.
//
// The zero Band is invalid; calls through it fail with ErrInvalidBand.
type Band struct {
	drv Driver
}

// NewBand wraps a storage driver in a band handle.
func NewBand(drv Driver) Band {
	return Band{drv: drv}
}

// Size returns the band dimensions in pixels.
func (b Band) Size() (w, h int) {
	if b.drv == nil {
		return 0, 0
	}
	return b.drv.RasterSize()
}

// DataType returns the band's native pixel type.
func (b Band) DataType() DataType {
	if b.drv == nil {
		return Unknown
	}
	return b.drv.DataType()
}

// BlockSize returns the band's natural block size in pixels.
func (b Band) BlockSize() (w, h int) {
	if b.drv == nil {
		return 0, 0
	}
	return b.drv.BlockSize()
}

// BlockCount returns the number of block columns and rows in the
// band's block grid.
func (b Band) BlockCount() (nx, ny int) {
	if b.drv == nil {
		return 0, 0
	}
	g := driverGrid(b.drv)
	return g.BlocksX(), g.BlocksY()
}

func (b Band) validate() error {
	if b.drv == nil {
		return fmt.Errorf("%w: nil band handle", ErrInvalidBand)
	}
	return nil
}

// Read populates the supplied buffer with the pixels contained in the
// supplied window.
func (b Band) Read(srcX, srcY int, buffer interface{}, bufWidth, bufHeight int, opts ...BandIOOption) error {
	return b.IO(IORead, srcX, srcY, buffer, bufWidth, bufHeight, opts...)
}

// Write sets the band's pixels contained in the supplied window to the
// content of the supplied buffer.
func (b Band) Write(srcX, srcY int, buffer interface{}, bufWidth, bufHeight int, opts ...BandIOOption) error {
	return b.IO(IOWrite, srcX, srcY, buffer, bufWidth, bufHeight, opts...)
}

// IO reads or writes the pixels contained in the supplied window.
//
// The source window starts at (srcX, srcY) and has the buffer's shape
// unless a Window option sets a different size, in which case the
// transfer resamples between the two shapes. The buffer's element type
// is its Go slice type; values convert to and from the band's native
// type as needed. Strides default to a packed row-major buffer, see
// PixelSpacing and LineSpacing.
//
// Transfers aligned to the band's block grid with no resampling take
// the fastest path; this is a recommendation, not a precondition.
func (b Band) IO(op IOOperation, srcX, srcY int, buffer interface{}, bufWidth, bufHeight int, opts ...BandIOOption) error {
	if err := b.validate(); err != nil {
		return err
	}
	o := bandIOOpt{}
	for _, opt := range opts {
		opt.setBandIOOpt(&o)
	}

	bufType, n, err := bufferInfo(buffer)
	if err != nil {
		return err
	}
	if bufWidth < 1 || bufHeight < 1 {
		return fmt.Errorf("%w: buffer shape %dx%d", ErrInvalidBuffer, bufWidth, bufHeight)
	}

	esz := bufType.Size()
	o.resolve(esz, bufWidth, bufHeight)
	lay, err := o.planeLayout(esz, bufWidth, bufHeight, 0)
	if err != nil {
		return err
	}
	if lay.lastIndex() >= n {
		return fmt.Errorf("%w: buffer holds %d elements, layout requires %d", ErrInvalidBuffer, n, lay.lastIndex()+1)
	}
	if !o.resampling.valid() {
		return fmt.Errorf("unsupported resampling algorithm %d", int(o.resampling))
	}

	wnd := Region{X: srcX, Y: srcY, W: o.winW, H: o.winH}
	w, h := b.drv.RasterSize()
	if err := wnd.validate(w, h); err != nil {
		return err
	}

	return transferBand(b.drv, op, wnd, buffer, lay, o.resampling, o.progress)
}

// planeLayout converts the resolved byte strides to an element-unit
// layout, rejecting strides a typed slice cannot express.
func (o *bandIOOpt) planeLayout(esz, bufW, bufH, off int) (planeLayout, error) {
	if o.pixelSpacing <= 0 || o.pixelSpacing%esz != 0 {
		return planeLayout{}, fmt.Errorf("%w: pixel spacing %d is not a positive multiple of element size %d",
			ErrInvalidBuffer, o.pixelSpacing, esz)
	}
	if o.lineSpacing <= 0 || o.lineSpacing%esz != 0 {
		return planeLayout{}, fmt.Errorf("%w: line spacing %d is not a positive multiple of element size %d",
			ErrInvalidBuffer, o.lineSpacing, esz)
	}
	return planeLayout{w: bufW, h: bufH, pix: o.pixelSpacing / esz, line: o.lineSpacing / esz, off: off}, nil
}

// ReadAll reads the full band extent into the buffer, resampling if
// the buffer shape differs from the band size.
func (b Band) ReadAll(buffer interface{}, bufWidth, bufHeight int, opts ...BandIOOption) error {
	if err := b.validate(); err != nil {
		return err
	}
	w, h := b.drv.RasterSize()
	return b.IO(IORead, 0, 0, buffer, bufWidth, bufHeight, append(opts, Window(w, h))...)
}

// WriteAll writes the buffer over the full band extent.
func (b Band) WriteAll(buffer interface{}, bufWidth, bufHeight int, opts ...BandIOOption) error {
	if err := b.validate(); err != nil {
		return err
	}
	w, h := b.drv.RasterSize()
	return b.IO(IOWrite, 0, 0, buffer, bufWidth, bufHeight, append(opts, Window(w, h))...)
}

// ReadRows reads the inclusive row range [y0, y1] across the full band
// width into a packed buffer of shape width x (y1-y0+1).
func (b Band) ReadRows(y0, y1 int, buffer interface{}, opts ...BandIOOption) error {
	return b.rangeIO(IORead, y0, y1, true, buffer, opts)
}

// WriteRows writes a packed buffer over the inclusive row range
// [y0, y1] across the full band width.
func (b Band) WriteRows(y0, y1 int, buffer interface{}, opts ...BandIOOption) error {
	return b.rangeIO(IOWrite, y0, y1, true, buffer, opts)
}

// ReadColumns reads the inclusive column range [x0, x1] across the
// full band height into a packed buffer of shape (x1-x0+1) x height.
func (b Band) ReadColumns(x0, x1 int, buffer interface{}, opts ...BandIOOption) error {
	return b.rangeIO(IORead, x0, x1, false, buffer, opts)
}

// WriteColumns writes a packed buffer over the inclusive column range
// [x0, x1] across the full band height.
func (b Band) WriteColumns(x0, x1 int, buffer interface{}, opts ...BandIOOption) error {
	return b.rangeIO(IOWrite, x0, x1, false, buffer, opts)
}

func (b Band) rangeIO(op IOOperation, lo, hi int, rows bool, buffer interface{}, opts []BandIOOption) error {
	if err := b.validate(); err != nil {
		return err
	}
	w, h := b.drv.RasterSize()
	var wnd Region
	var err error
	if rows {
		wnd, err = RowRegion(lo, hi, w)
	} else {
		wnd, err = ColumnRegion(lo, hi, h)
	}
	if err != nil {
		return err
	}
	return b.IO(op, wnd.X, wnd.Y, buffer, wnd.W, wnd.H, opts...)
}

// Fetch reads the given window into a newly allocated packed buffer of
// the band's native type, returned as the corresponding Go slice.
func (b Band) Fetch(srcX, srcY, w, h int, opts ...BandIOOption) (interface{}, error) {
	if err := b.validate(); err != nil {
		return nil, err
	}
	buf, err := MakeSlice(b.drv.DataType(), w*h)
	if err != nil {
		return nil, err
	}
	if err := b.IO(IORead, srcX, srcY, buf, w, h, opts...); err != nil {
		return nil, err
	}
	return buf, nil
}

// FetchAll reads the full band extent into a newly allocated packed
// buffer of the band's native type.
func (b Band) FetchAll(opts ...BandIOOption) (interface{}, error) {
	if err := b.validate(); err != nil {
		return nil, err
	}
	w, h := b.drv.RasterSize()
	return b.Fetch(0, 0, w, h, opts...)
}

// Update writes a packed buffer of shape w x h over the given window.
func (b Band) Update(srcX, srcY, w, h int, buffer interface{}, opts ...BandIOOption) error {
	return b.IO(IOWrite, srcX, srcY, buffer, w, h, opts...)
}

// ReadFloat64 reads the given window as float64 values.
func (b Band) ReadFloat64(srcX, srcY, w, h int, opts ...BandIOOption) ([]float64, error) {
	result := make([]float64, w*h)
	err := b.IO(IORead, srcX, srcY, result, w, h, opts...)
	return result, err
}

// ReadFloat32 reads the given window as float32 values.
func (b Band) ReadFloat32(srcX, srcY, w, h int, opts ...BandIOOption) ([]float32, error) {
	result := make([]float32, w*h)
	err := b.IO(IORead, srcX, srcY, result, w, h, opts...)
	return result, err
}

// ReadInt32 reads the given window as int32 values.
func (b Band) ReadInt32(srcX, srcY, w, h int, opts ...BandIOOption) ([]int32, error) {
	result := make([]int32, w*h)
	err := b.IO(IORead, srcX, srcY, result, w, h, opts...)
	return result, err
}

// ReadInt16 reads the given window as int16 values.
func (b Band) ReadInt16(srcX, srcY, w, h int, opts ...BandIOOption) ([]int16, error) {
	result := make([]int16, w*h)
	err := b.IO(IORead, srcX, srcY, result, w, h, opts...)
	return result, err
}

// ReadUint16 reads the given window as uint16 values.
func (b Band) ReadUint16(srcX, srcY, w, h int, opts ...BandIOOption) ([]uint16, error) {
	result := make([]uint16, w*h)
	err := b.IO(IORead, srcX, srcY, result, w, h, opts...)
	return result, err
}

// ReadUint8 reads the given window as uint8 values.
func (b Band) ReadUint8(srcX, srcY, w, h int, opts ...BandIOOption) ([]uint8, error) {
	result := make([]uint8, w*h)
	err := b.IO(IORead, srcX, srcY, result, w, h, opts...)
	return result, err
}
