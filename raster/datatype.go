package raster

import "fmt"

// DataType identifies the element type of pixel data at runtime. Every
// band has a fixed native DataType; buffers declare theirs through the
// Go slice type they are passed as.
type DataType int

const (
	// Unknown is the zero DataType and never valid for storage.
	Unknown DataType = iota
	// Byte is an unsigned 8 bit integer.
	Byte
	// Int8 is a signed 8 bit integer.
	Int8
	// UInt16 is an unsigned 16 bit integer.
	UInt16
	// Int16 is a signed 16 bit integer.
	Int16
	// UInt32 is an unsigned 32 bit integer.
	UInt32
	// Int32 is a signed 32 bit integer.
	Int32
	// Float32 is a 32 bit floating point value.
	Float32
	// Float64 is a 64 bit floating point value.
	Float64
)

// Size returns the width of one element in bytes, or 0 for Unknown.
func (dt DataType) Size() int {
	switch dt {
	case Byte, Int8:
		return 1
	case UInt16, Int16:
		return 2
	case UInt32, Int32, Float32:
		return 4
	case Float64:
		return 8
	default:
		return 0
	}
}

// Valid reports whether dt is a supported storage type.
func (dt DataType) Valid() bool {
	return dt > Unknown && dt <= Float64
}

func (dt DataType) String() string {
	switch dt {
	case Byte:
		return "Byte"
	case Int8:
		return "Int8"
	case UInt16:
		return "UInt16"
	case Int16:
		return "Int16"
	case UInt32:
		return "UInt32"
	case Int32:
		return "Int32"
	case Float32:
		return "Float32"
	case Float64:
		return "Float64"
	default:
		return "Unknown"
	}
}

// ParseDataType returns the DataType named by s, as produced by String.
func ParseDataType(s string) (DataType, error) {
	for dt := Byte; dt <= Float64; dt++ {
		if dt.String() == s {
			return dt, nil
		}
	}
	return Unknown, fmt.Errorf("unknown data type %q", s)
}

// MakeSlice allocates a packed slice of n elements of dt, returned as
// the corresponding Go slice type.
func MakeSlice(dt DataType, n int) (interface{}, error) {
	switch dt {
	case Byte:
		return make([]uint8, n), nil
	case Int8:
		return make([]int8, n), nil
	case UInt16:
		return make([]uint16, n), nil
	case Int16:
		return make([]int16, n), nil
	case UInt32:
		return make([]uint32, n), nil
	case Int32:
		return make([]int32, n), nil
	case Float32:
		return make([]float32, n), nil
	case Float64:
		return make([]float64, n), nil
	default:
		return nil, fmt.Errorf("%w: cannot allocate %s", ErrInvalidBuffer, dt)
	}
}

// bufferInfo maps a caller-supplied pixel slice to its runtime type tag
// and element count. This is the runtime-to-static boundary: everything
// past it dispatches on DataType into the generic transfer code.
func bufferInfo(buffer interface{}) (DataType, int, error) {
	switch b := buffer.(type) {
	case []uint8:
		return Byte, len(b), nil
	case []int8:
		return Int8, len(b), nil
	case []uint16:
		return UInt16, len(b), nil
	case []int16:
		return Int16, len(b), nil
	case []uint32:
		return UInt32, len(b), nil
	case []int32:
		return Int32, len(b), nil
	case []float32:
		return Float32, len(b), nil
	case []float64:
		return Float64, len(b), nil
	case nil:
		return Unknown, 0, fmt.Errorf("%w: nil buffer", ErrInvalidBuffer)
	default:
		return Unknown, 0, fmt.Errorf("%w: unsupported buffer type %T", ErrInvalidBuffer, buffer)
	}
}
