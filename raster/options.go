package raster

type bandIOOpt struct {
	winW, winH   int
	pixelSpacing int
	lineSpacing  int
	resampling   ResamplingAlg
	resamplingOK bool
	progress     ProgressFn
}

type datasetIOOpt struct {
	bandIOOpt
	bands       []int
	bandSpacing int
}

// BandIOOption is an option to modify the default behavior of Band.IO.
//
// Available BandIOOptions are:
//
// • Window
//
// • PixelSpacing
//
// • LineSpacing
//
// • Resampling
//
// • Progress
type BandIOOption interface {
	setBandIOOpt(o *bandIOOpt)
}

// DatasetIOOption is an option to modify the default behavior of
// Dataset.IO.
//
// Available DatasetIOOptions are:
//
// • Window
//
// • Bands
//
// • PixelSpacing
//
// • LineSpacing
//
// • BandSpacing
//
// • Resampling
//
// • Progress
type DatasetIOOption interface {
	setDatasetIOOpt(o *datasetIOOpt)
}

type windowOpt struct {
	w, h int
}

// Window sets the size of the source region independently of the
// buffer shape. If not set, the source region has the buffer's shape
// and the transfer involves no resampling.
func Window(w, h int) interface {
	BandIOOption
	DatasetIOOption
} {
	return windowOpt{w, h}
}

func (wo windowOpt) setBandIOOpt(o *bandIOOpt)       { o.winW, o.winH = wo.w, wo.h }
func (wo windowOpt) setDatasetIOOpt(o *datasetIOOpt) { o.winW, o.winH = wo.w, wo.h }

type pixelSpacingOpt struct {
	stride int
}

// PixelSpacing sets the number of bytes from one pixel to the next
// pixel in the same row. If not set, defaults to the buffer element
// size. Must be a multiple of the element size.
func PixelSpacing(stride int) interface {
	BandIOOption
	DatasetIOOption
} {
	return pixelSpacingOpt{stride}
}

func (ps pixelSpacingOpt) setBandIOOpt(o *bandIOOpt)       { o.pixelSpacing = ps.stride }
func (ps pixelSpacingOpt) setDatasetIOOpt(o *datasetIOOpt) { o.pixelSpacing = ps.stride }

type lineSpacingOpt struct {
	stride int
}

// LineSpacing sets the number of bytes from one pixel to the pixel one
// row below. If not set, defaults to the pixel spacing times the buffer
// width. Must be a multiple of the element size.
func LineSpacing(stride int) interface {
	BandIOOption
	DatasetIOOption
} {
	return lineSpacingOpt{stride}
}

func (ls lineSpacingOpt) setBandIOOpt(o *bandIOOpt)       { o.lineSpacing = ls.stride }
func (ls lineSpacingOpt) setDatasetIOOpt(o *datasetIOOpt) { o.lineSpacing = ls.stride }

type bandSpacingOpt struct {
	stride int
}

// BandSpacing sets the number of bytes from one band plane to the
// next. If not set, defaults to the line spacing times the buffer
// height, i.e. a planar band-sequential buffer. Must be a multiple of
// the element size.
func BandSpacing(stride int) DatasetIOOption {
	return bandSpacingOpt{stride}
}

func (bs bandSpacingOpt) setDatasetIOOpt(o *datasetIOOpt) { o.bandSpacing = bs.stride }

type bandsOpt struct {
	bands []int
}

// Bands selects which bands of the dataset take part in the transfer
// and in which plane order, as 1-based band numbers. The same band may
// appear more than once. If not set, all bands are transferred in
// dataset order.
func Bands(bands ...int) DatasetIOOption {
	return bandsOpt{bands}
}

func (b bandsOpt) setDatasetIOOpt(o *datasetIOOpt) {
	o.bands = append([]int(nil), b.bands...)
}

type resamplingOpt struct {
	alg ResamplingAlg
}

// Resampling sets the kernel used when the buffer shape differs from
// the window shape. If not set, the process-wide default applies (see
// SetDefaultResampling), which starts as Nearest.
func Resampling(alg ResamplingAlg) interface {
	BandIOOption
	DatasetIOOption
} {
	return resamplingOpt{alg}
}

func (r resamplingOpt) setBandIOOpt(o *bandIOOpt) {
	o.resampling, o.resamplingOK = r.alg, true
}
func (r resamplingOpt) setDatasetIOOpt(o *datasetIOOpt) {
	o.resampling, o.resamplingOK = r.alg, true
}

type progressOpt struct {
	fn ProgressFn
}

// Progress installs a progress callback invoked during the transfer.
// The callback returning false cancels the call, which then fails with
// ErrCancelled.
func Progress(fn ProgressFn) interface {
	BandIOOption
	DatasetIOOption
} {
	return progressOpt{fn}
}

func (p progressOpt) setBandIOOpt(o *bandIOOpt)       { o.progress = p.fn }
func (p progressOpt) setDatasetIOOpt(o *datasetIOOpt) { o.progress = p.fn }

// resolve fills in the stride defaults for a buffer of the given
// element size and shape, in bytes:
// pixel = elemSize, line = pixel*bufWidth.
func (o *bandIOOpt) resolve(elemSize, bufW, bufH int) {
	if o.pixelSpacing == 0 {
		o.pixelSpacing = elemSize
	}
	if o.lineSpacing == 0 {
		o.lineSpacing = o.pixelSpacing * bufW
	}
	if o.winW == 0 {
		o.winW = bufW
	}
	if o.winH == 0 {
		o.winH = bufH
	}
	if !o.resamplingOK {
		o.resampling = DefaultResampling()
	}
}
