package raster

import "fmt"

// ReadBlock reads the natural block (bx, by) into buffer. The buffer
// must be a slice of the band's native type holding exactly
// blockWidth*blockHeight elements; no conversion or resampling occurs.
//
// Edge blocks transfer at full nominal size; cells beyond the band's
// true edge are driver-defined padding.
func (b Band) ReadBlock(bx, by int, buffer interface{}) error {
	blk, err := b.blockBuffer(bx, by, buffer)
	if err != nil {
		return err
	}
	if err := b.drv.ReadBlock(bx, by, blk); err != nil {
		return fmt.Errorf("%w: read block (%d,%d): %v", ErrIO, bx, by, err)
	}
	return nil
}

// WriteBlock writes buffer as the content of the natural block
// (bx, by). The same buffer contract as ReadBlock applies; padding
// cells of edge blocks are accepted and ignored by the driver.
func (b Band) WriteBlock(bx, by int, buffer interface{}) error {
	blk, err := b.blockBuffer(bx, by, buffer)
	if err != nil {
		return err
	}
	if err := b.drv.WriteBlock(bx, by, blk); err != nil {
		return fmt.Errorf("%w: write block (%d,%d): %v", ErrIO, bx, by, err)
	}
	return nil
}

// blockBuffer validates a natural block access and returns the byte
// view of the caller's buffer.
func (b Band) blockBuffer(bx, by int, buffer interface{}) ([]byte, error) {
	if err := b.validate(); err != nil {
		return nil, err
	}
	g := driverGrid(b.drv)
	if !g.Contains(bx, by) {
		return nil, fmt.Errorf("%w: block (%d,%d) outside grid %dx%d",
			ErrInvalidBlockIndex, bx, by, g.BlocksX(), g.BlocksY())
	}

	bufType, n, err := bufferInfo(buffer)
	if err != nil {
		return nil, err
	}
	nt := b.drv.DataType()
	if bufType != nt {
		return nil, fmt.Errorf("%w: block buffer is %s, band native type is %s", ErrInvalidBuffer, bufType, nt)
	}
	if n != g.BlockW*g.BlockH {
		return nil, fmt.Errorf("%w: block buffer holds %d elements, block is %dx%d",
			ErrInvalidBuffer, n, g.BlockW, g.BlockH)
	}
	blk, _ := sliceBytes(buffer)
	return blk, nil
}
