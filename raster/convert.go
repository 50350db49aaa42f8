package raster

import "unsafe"

// pixelType constrains the supported pixel element types. Narrowing
// conversions between them follow Go conversion semantics of the
// target type; no range validation is performed.
type pixelType interface {
	~uint8 | ~int8 | ~uint16 | ~int16 | ~uint32 | ~int32 | ~float32 | ~float64
}

// viewAs reinterprets native block bytes as a typed slice. Go heap
// allocations are 8-byte aligned, which covers every supported type.
func viewAs[T pixelType](b []byte) []T {
	if len(b) == 0 {
		return nil
	}
	var zero T
	return unsafe.Slice((*T)(unsafe.Pointer(&b[0])), len(b)/int(unsafe.Sizeof(zero)))
}

// nativeView returns the typed slice corresponding to native bytes of
// the given data type.
func nativeView(b []byte, dt DataType) interface{} {
	switch dt {
	case Byte:
		return viewAs[uint8](b)
	case Int8:
		return viewAs[int8](b)
	case UInt16:
		return viewAs[uint16](b)
	case Int16:
		return viewAs[int16](b)
	case UInt32:
		return viewAs[uint32](b)
	case Int32:
		return viewAs[int32](b)
	case Float32:
		return viewAs[float32](b)
	default:
		return viewAs[float64](b)
	}
}

// sliceBytes returns the raw bytes backing a typed pixel slice.
func sliceBytes(buffer interface{}) ([]byte, int) {
	switch s := buffer.(type) {
	case []uint8:
		return s, 1
	case []int8:
		return bytesOf(s), 1
	case []uint16:
		return bytesOf(s), 2
	case []int16:
		return bytesOf(s), 2
	case []uint32:
		return bytesOf(s), 4
	case []int32:
		return bytesOf(s), 4
	case []float32:
		return bytesOf(s), 4
	case []float64:
		return bytesOf(s), 8
	default:
		return nil, 0
	}
}

func bytesOf[T pixelType](s []T) []byte {
	if len(s) == 0 {
		return nil
	}
	var zero T
	return unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*int(unsafe.Sizeof(zero)))
}

// copyRectConv copies a w by h rectangle of pixels between two typed
// arrays, converting element type. Each array is addressed by an
// origin offset and pixel/line strides, all in elements.
func copyRectConv[S, D pixelType](src []S, sOff, sPix, sLine int, dst []D, dOff, dPix, dLine, w, h int) {
	for y := 0; y < h; y++ {
		si := sOff + y*sLine
		di := dOff + y*dLine
		for x := 0; x < w; x++ {
			dst[di] = D(src[si])
			si += sPix
			di += dPix
		}
	}
}

// convertRect copies a w by h rectangle between two pixel slices of
// possibly different element types. src and dst are typed pixel
// slices; the dynamic type pair selects the generic instantiation.
//
// Same-type rectangles with packed rows fall back to per-row byte
// copies.
func convertRect(src interface{}, sOff, sPix, sLine int, dst interface{}, dOff, dPix, dLine, w, h int) {
	if sPix == 1 && dPix == 1 {
		sb, ses := sliceBytes(src)
		db, des := sliceBytes(dst)
		if ses == des && ses != 0 && sameElemType(src, dst) {
			rowBytes := w * ses
			for y := 0; y < h; y++ {
				so := (sOff + y*sLine) * ses
				do := (dOff + y*dLine) * des
				copy(db[do:do+rowBytes], sb[so:so+rowBytes])
			}
			return
		}
	}

	switch d := dst.(type) {
	case []uint8:
		convertRectTo(src, sOff, sPix, sLine, d, dOff, dPix, dLine, w, h)
	case []int8:
		convertRectTo(src, sOff, sPix, sLine, d, dOff, dPix, dLine, w, h)
	case []uint16:
		convertRectTo(src, sOff, sPix, sLine, d, dOff, dPix, dLine, w, h)
	case []int16:
		convertRectTo(src, sOff, sPix, sLine, d, dOff, dPix, dLine, w, h)
	case []uint32:
		convertRectTo(src, sOff, sPix, sLine, d, dOff, dPix, dLine, w, h)
	case []int32:
		convertRectTo(src, sOff, sPix, sLine, d, dOff, dPix, dLine, w, h)
	case []float32:
		convertRectTo(src, sOff, sPix, sLine, d, dOff, dPix, dLine, w, h)
	case []float64:
		convertRectTo(src, sOff, sPix, sLine, d, dOff, dPix, dLine, w, h)
	}
}

// convertRectTo resolves the source element type and dispatches to the
// generic copy.
func convertRectTo[D pixelType](src interface{}, sOff, sPix, sLine int, dst []D, dOff, dPix, dLine, w, h int) {
	switch s := src.(type) {
	case []uint8:
		copyRectConv(s, sOff, sPix, sLine, dst, dOff, dPix, dLine, w, h)
	case []int8:
		copyRectConv(s, sOff, sPix, sLine, dst, dOff, dPix, dLine, w, h)
	case []uint16:
		copyRectConv(s, sOff, sPix, sLine, dst, dOff, dPix, dLine, w, h)
	case []int16:
		copyRectConv(s, sOff, sPix, sLine, dst, dOff, dPix, dLine, w, h)
	case []uint32:
		copyRectConv(s, sOff, sPix, sLine, dst, dOff, dPix, dLine, w, h)
	case []int32:
		copyRectConv(s, sOff, sPix, sLine, dst, dOff, dPix, dLine, w, h)
	case []float32:
		copyRectConv(s, sOff, sPix, sLine, dst, dOff, dPix, dLine, w, h)
	case []float64:
		copyRectConv(s, sOff, sPix, sLine, dst, dOff, dPix, dLine, w, h)
	}
}

func sameElemType(a, b interface{}) bool {
	ta, _, errA := bufferInfo(a)
	tb, _, errB := bufferInfo(b)
	return errA == nil && errB == nil && ta == tb
}
