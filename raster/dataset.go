package raster

import "fmt"

// Dataset is a handle to a multi-band raster image. All bands share
// the same pixel dimensions; native types may differ per band.
//
// Like Band, a Dataset never owns storage; whatever created the
// drivers must keep them valid for the duration of every call.
type Dataset struct {
	desc   string
	width  int
	height int
	bands  []Band
}

// NewDataset assembles a dataset from per-band storage drivers. All
// drivers must report the same raster size.
func NewDataset(desc string, drivers []Driver) (*Dataset, error) {
	if len(drivers) == 0 {
		return nil, fmt.Errorf("%w: no bands", ErrInvalidDataset)
	}
	w, h := drivers[0].RasterSize()
	ds := &Dataset{desc: desc, width: w, height: h}
	for i, drv := range drivers {
		if drv == nil {
			return nil, fmt.Errorf("%w: nil driver for band %d", ErrInvalidDataset, i+1)
		}
		bw, bh := drv.RasterSize()
		if bw != w || bh != h {
			return nil, fmt.Errorf("%w: band %d is %dx%d, band 1 is %dx%d",
				ErrInvalidDataset, i+1, bw, bh, w, h)
		}
		ds.bands = append(ds.bands, NewBand(drv))
	}
	return ds, nil
}

// Description returns the dataset's identifying description string.
func (ds *Dataset) Description() string {
	return ds.desc
}

// Size returns the raster dimensions in pixels.
func (ds *Dataset) Size() (w, h int) {
	return ds.width, ds.height
}

// BandCount returns the number of bands.
func (ds *Dataset) BandCount() int {
	return len(ds.bands)
}

// Band returns the 1-based n'th band.
func (ds *Dataset) Band(n int) (Band, error) {
	if n < 1 || n > len(ds.bands) {
		return Band{}, fmt.Errorf("%w: band %d of %d", ErrInvalidBand, n, len(ds.bands))
	}
	return ds.bands[n-1], nil
}

// Bands returns all bands in dataset order.
func (ds *Dataset) Bands() []Band {
	return append([]Band(nil), ds.bands...)
}

func (ds *Dataset) validate() error {
	if ds == nil || len(ds.bands) == 0 {
		return fmt.Errorf("%w: nil or empty dataset handle", ErrInvalidDataset)
	}
	return nil
}

// Read populates the supplied buffer with the pixels contained in the
// supplied window, one plane per selected band.
func (ds *Dataset) Read(srcX, srcY int, buffer interface{}, bufWidth, bufHeight int, opts ...DatasetIOOption) error {
	return ds.IO(IORead, srcX, srcY, buffer, bufWidth, bufHeight, opts...)
}

// Write sets the pixels contained in the supplied window from the
// buffer, one plane per selected band.
func (ds *Dataset) Write(srcX, srcY int, buffer interface{}, bufWidth, bufHeight int, opts ...DatasetIOOption) error {
	return ds.IO(IOWrite, srcX, srcY, buffer, bufWidth, bufHeight, opts...)
}

// IO reads or writes one window across a set of bands sharing a
// single buffer.
//
// The buffer holds one plane per selected band, assigned in Bands
// option order (duplicates allowed) regardless of internal transfer
// order. Strides default to a planar band-sequential layout: pixel =
// element size, line = pixel*bufWidth, band = line*bufHeight. All
// planes share the same window, shape and resampling kernel; type
// conversion applies independently per band.
func (ds *Dataset) IO(op IOOperation, srcX, srcY int, buffer interface{}, bufWidth, bufHeight int, opts ...DatasetIOOption) error {
	if err := ds.validate(); err != nil {
		return err
	}
	o := datasetIOOpt{}
	for _, opt := range opts {
		opt.setDatasetIOOpt(&o)
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
	if o.bandSpacing == 0 {
		o.bandSpacing = o.lineSpacing * bufHeight
	}
	if o.bandSpacing <= 0 || o.bandSpacing%esz != 0 {
		return fmt.Errorf("%w: band spacing %d is not a positive multiple of element size %d",
			ErrInvalidBuffer, o.bandSpacing, esz)
	}
	if !o.resampling.valid() {
		return fmt.Errorf("unsupported resampling algorithm %d", int(o.resampling))
	}

	sel := o.bands
	if sel == nil {
		sel = make([]int, len(ds.bands))
		for i := range sel {
			sel[i] = i + 1
		}
	}
	for _, bn := range sel {
		if bn < 1 || bn > len(ds.bands) {
			return fmt.Errorf("%w: band %d of %d", ErrInvalidBand, bn, len(ds.bands))
		}
	}

	wnd := Region{X: srcX, Y: srcY, W: o.winW, H: o.winH}
	if err := wnd.validate(ds.width, ds.height); err != nil {
		return err
	}

	bandStride := o.bandSpacing / esz
	base, err := o.planeLayout(esz, bufWidth, bufHeight, 0)
	if err != nil {
		return err
	}
	last := base
	last.off = (len(sel) - 1) * bandStride
	if last.lastIndex() >= n {
		return fmt.Errorf("%w: buffer holds %d elements, %d planes of %dx%d require %d",
			ErrShapeMismatch, n, len(sel), bufWidth, bufHeight, last.lastIndex()+1)
	}

	for i, bn := range sel {
		lay := base
		lay.off = i * bandStride
		prog := planeProgress(o.progress, i, len(sel))
		if err := transferBand(ds.bands[bn-1].drv, op, wnd, buffer, lay, o.resampling, prog); err != nil {
			return fmt.Errorf("band %d: %w", bn, err)
		}
	}
	return nil
}

// planeProgress maps per-plane progress onto overall call progress.
func planeProgress(prog ProgressFn, plane, total int) ProgressFn {
	if prog == nil {
		return nil
	}
	return func(f float64) bool {
		return prog((float64(plane) + f) / float64(total))
	}
}

// ReadAll reads the full dataset extent into the buffer.
func (ds *Dataset) ReadAll(buffer interface{}, bufWidth, bufHeight int, opts ...DatasetIOOption) error {
	if err := ds.validate(); err != nil {
		return err
	}
	return ds.IO(IORead, 0, 0, buffer, bufWidth, bufHeight, append(opts, Window(ds.width, ds.height))...)
}

// WriteAll writes the buffer over the full dataset extent.
func (ds *Dataset) WriteAll(buffer interface{}, bufWidth, bufHeight int, opts ...DatasetIOOption) error {
	if err := ds.validate(); err != nil {
		return err
	}
	return ds.IO(IOWrite, 0, 0, buffer, bufWidth, bufHeight, append(opts, Window(ds.width, ds.height))...)
}

// Fetch reads the given window into a newly allocated packed planar
// buffer of the first selected band's native type, one plane per
// selected band.
func (ds *Dataset) Fetch(srcX, srcY, w, h int, opts ...DatasetIOOption) (interface{}, error) {
	if err := ds.validate(); err != nil {
		return nil, err
	}
	o := datasetIOOpt{}
	for _, opt := range opts {
		opt.setDatasetIOOpt(&o)
	}
	planes := len(ds.bands)
	first := 1
	if o.bands != nil {
		planes = len(o.bands)
		if planes == 0 {
			return nil, fmt.Errorf("%w: empty band selection", ErrInvalidBand)
		}
		first = o.bands[0]
	}
	band, err := ds.Band(first)
	if err != nil {
		return nil, err
	}
	buf, err := MakeSlice(band.DataType(), w*h*planes)
	if err != nil {
		return nil, err
	}
	if err := ds.IO(IORead, srcX, srcY, buf, w, h, opts...); err != nil {
		return nil, err
	}
	return buf, nil
}

// FetchAll reads the full dataset extent into a newly allocated packed
// planar buffer.
func (ds *Dataset) FetchAll(opts ...DatasetIOOption) (interface{}, error) {
	if err := ds.validate(); err != nil {
		return nil, err
	}
	return ds.Fetch(0, 0, ds.width, ds.height, opts...)
}

// Update writes a packed planar buffer of shape w x h over the given
// window.
func (ds *Dataset) Update(srcX, srcY, w, h int, buffer interface{}, opts ...DatasetIOOption) error {
	return ds.IO(IOWrite, srcX, srcY, buffer, w, h, opts...)
}
