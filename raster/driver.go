package raster

// IOOperation selects the direction of a windowed transfer: IORead
// copies pixels from band storage into the buffer, IOWrite copies from
// the buffer into band storage.
type IOOperation int

const (
	// IORead reads pixels into the supplied buffer.
	IORead IOOperation = iota
	// IOWrite writes pixels from the supplied buffer.
	IOWrite
)

func (op IOOperation) String() string {
	if op == IOWrite {
		return "write"
	}
	return "read"
}

// Driver is the storage engine behind a band. It exposes block-granular
// transfer of native-type pixels; the engine builds windowed access,
// type conversion and resampling on top of it.
//
// Blocks transfer at their full nominal size. For edge blocks the cells
// past the raster edge are driver-defined padding: drivers must accept
// them on write and may return arbitrary values for them on read.
//
// Drivers are not required to be safe for concurrent use; that contract
// belongs to each implementation.
type Driver interface {
	// RasterSize returns the band size in pixels.
	RasterSize() (w, h int)
	// BlockSize returns the nominal block size in pixels.
	BlockSize() (w, h int)
	// DataType returns the native pixel type of the stored data.
	DataType() DataType
	// ReadBlock fills dst with the native bytes of block (bx, by).
	// dst holds exactly blockW*blockH elements.
	ReadBlock(bx, by int, dst []byte) error
	// WriteBlock stores src as the content of block (bx, by).
	WriteBlock(bx, by int, src []byte) error
}

// RegionTransferer is optionally implemented by drivers that provide a
// bulk windowed primitive. buf is a packed row-major native-type buffer
// of exactly wnd.W*wnd.H elements; no resampling or type conversion is
// involved at this boundary. The engine prefers this path over block
// assembly when present.
type RegionTransferer interface {
	TransferRegion(op IOOperation, wnd Region, buf []byte) error
}

// ProgressFn reports transfer progress in [0, 1]. Returning false
// cancels the call, which then fails with ErrCancelled.
type ProgressFn func(complete float64) bool
