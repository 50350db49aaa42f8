package raster

import (
	"fmt"

	"github.com/geocodex/go-raster/internal/grid"
	"github.com/google/uuid"
)

// MemOption configures in-memory band creation.
type MemOption func(*memOptions)

type memOptions struct {
	blockW, blockH int
}

// WithBlockSize sets the natural block size of an in-memory band.
// The default is one full-width scanline per block.
func WithBlockSize(w, h int) MemOption {
	return func(o *memOptions) {
		if w > 0 && h > 0 {
			o.blockW, o.blockH = w, h
		}
	}
}

// memDriver stores a band as one packed row-major allocation and
// serves the block protocol (and the bulk window primitive) from it.
// Padding cells of edge blocks read back as zero; writes to them are
// discarded.
type memDriver struct {
	g    grid.Grid
	dt   DataType
	data []byte
}

func newMemDriver(width, height int, dt DataType, opts []MemOption) (*memDriver, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("invalid raster size %dx%d", width, height)
	}
	if !dt.Valid() {
		return nil, fmt.Errorf("invalid data type %v", dt)
	}
	o := memOptions{blockW: width, blockH: 1}
	for _, opt := range opts {
		opt(&o)
	}
	return &memDriver{
		g:    grid.Grid{Width: width, Height: height, BlockW: o.blockW, BlockH: o.blockH},
		dt:   dt,
		data: make([]byte, width*height*dt.Size()),
	}, nil
}

func (m *memDriver) RasterSize() (int, int) { return m.g.Width, m.g.Height }
func (m *memDriver) BlockSize() (int, int)  { return m.g.BlockW, m.g.BlockH }
func (m *memDriver) DataType() DataType     { return m.dt }

func (m *memDriver) ReadBlock(bx, by int, dst []byte) error {
	if !m.g.Contains(bx, by) {
		return fmt.Errorf("block (%d,%d) outside grid", bx, by)
	}
	block := m.g.BlockRect(bx, by)
	valid := m.g.ValidRect(bx, by)
	if valid != block {
		clear(dst)
	}
	grid.CopyRect(dst, m.data, m.dt.Size(),
		m.g.BlockW, 0, 0,
		m.g.Width, valid.X, valid.Y,
		valid.W, valid.H)
	return nil
}

func (m *memDriver) WriteBlock(bx, by int, src []byte) error {
	if !m.g.Contains(bx, by) {
		return fmt.Errorf("block (%d,%d) outside grid", bx, by)
	}
	block := m.g.BlockRect(bx, by)
	valid := m.g.ValidRect(bx, by)
	grid.CopyRect(m.data, src, m.dt.Size(),
		m.g.Width, valid.X, valid.Y,
		m.g.BlockW, valid.X-block.X, valid.Y-block.Y,
		valid.W, valid.H)
	return nil
}

// TransferRegion serves the bulk windowed primitive straight from the
// backing allocation.
func (m *memDriver) TransferRegion(op IOOperation, wnd Region, buf []byte) error {
	if op == IORead {
		grid.CopyRect(buf, m.data, m.dt.Size(),
			wnd.W, 0, 0,
			m.g.Width, wnd.X, wnd.Y,
			wnd.W, wnd.H)
		return nil
	}
	grid.CopyRect(m.data, buf, m.dt.Size(),
		m.g.Width, wnd.X, wnd.Y,
		wnd.W, 0, 0,
		wnd.W, wnd.H)
	return nil
}

// NewMemBand creates a standalone in-memory band, initialized to zero.
func NewMemBand(width, height int, dt DataType, opts ...MemOption) (Band, error) {
	drv, err := newMemDriver(width, height, dt, opts)
	if err != nil {
		return Band{}, err
	}
	return NewBand(drv), nil
}

// NewMemDataset creates an in-memory dataset of nbands zero-filled
// bands sharing one native type. The dataset's description is a
// generated unique identifier.
func NewMemDataset(width, height, nbands int, dt DataType, opts ...MemOption) (*Dataset, error) {
	if nbands < 1 {
		return nil, fmt.Errorf("invalid band count %d", nbands)
	}
	drivers := make([]Driver, nbands)
	for i := range drivers {
		drv, err := newMemDriver(width, height, dt, opts)
		if err != nil {
			return nil, err
		}
		drivers[i] = drv
	}
	return NewDataset("mem:"+uuid.New().String(), drivers)
}
