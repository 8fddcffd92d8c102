package mathfunc

import (
	"fmt"
	"math"

	"github.com/x448/float16"
)

// The floating point formats a math function can be tested with.
type Precision uint8

const (
	Single Precision = iota
	Half
	Double
)

// Parameters of a binary floating point format.
type format struct {
	// Significand bits including the implicit one.
	mantDig int

	// Minimum exponent such that 2^(minExp-1) is normal.
	minExp int

	// The power of two just past the largest finite value. An infinite
	// test result is treated as this value when the reference is finite.
	overflow float64

	smallestNormal float64
}

// The largest finite half value.
const halfMax = 65504

var formats = map[Precision]format{
	Half:   {mantDig: 11, minExp: -13, overflow: 0x1p16, smallestNormal: 0x1p-14},
	Single: {mantDig: 24, minExp: -125, overflow: 0x1p128, smallestNormal: 0x1p-126},
	Double: {mantDig: 53, minExp: -1021, overflow: math.Inf(1), smallestNormal: 0x1p-1022},
}

// Get the opencl C type name for this precision.
func (p Precision) String() string {
	switch p {
	case Single:
		return "float"
	case Half:
		return "half"
	case Double:
		return "double"
	}
	return fmt.Sprintf("UNKNOWN(%d)", uint8(p))
}

// Parse a precision from its opencl C type name.
func ParsePrecision(name string) (Precision, error) {
	for _, p := range []Precision{Single, Half, Double} {
		if p.String() == name {
			return p, nil
		}
	}
	return 0, fmt.Errorf("mathfunc: unknown precision %q", name)
}

// Get the size in bytes of a value with this precision.
func (p Precision) Size() int {
	switch p {
	case Half:
		return 2
	case Double:
		return 8
	}
	return 4
}

// The opencl extension that must be enabled to use this precision.
func (p Precision) extension() string {
	switch p {
	case Half:
		return "cl_khr_fp16"
	case Double:
		return "cl_khr_fp64"
	}
	return ""
}

// Round v to the nearest value representable with this precision.
func (p Precision) Round(v float64) float64 {
	switch p {
	case Single:
		return float64(float32(v))
	case Half:
		return roundHalf(v)
	}
	return v
}

// Round to the nearest half value, ties to even. Converting through
// float32 first would round twice.
func roundHalf(v float64) float64 {
	if v == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}

	f := formats[Half]
	exp := math.Ilogb(v)
	if exp < f.minExp-1 {
		exp = f.minExp - 1
	}
	quantum := math.Ldexp(1, exp-(f.mantDig-1))
	r := math.RoundToEven(v/quantum) * quantum
	if math.Abs(r) > halfMax {
		return math.Copysign(math.Inf(1), v)
	}
	return r
}

// Report whether v is a subnormal value of this precision.
func (p Precision) IsSubnormal(v float64) bool {
	return v != 0 && math.Abs(v) < formats[p].smallestNormal
}

// Get the ulp error of test against the reference value.
func (p Precision) UlpError(test, ref float64) float64 {
	switch p {
	case Half:
		return UlpErrorHalf(float16.Fromfloat32(float32(test)), ref)
	case Double:
		return UlpErrorDouble(test, ref)
	}
	return UlpError(float32(test), ref)
}
