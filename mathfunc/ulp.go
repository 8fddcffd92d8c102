package mathfunc

import (
	"math"

	"github.com/x448/float16"
)

const doubleMantissaMask = 0x000fffffffffffff

// Get the error of a single precision result in units of the last place of
// the reference value.
func UlpError(test float32, ref float64) float64 {
	return ulpError(float64(test), ref, formats[Single])
}

// Get the error of a half precision result in units of the last place of
// the reference value.
func UlpErrorHalf(test float16.Float16, ref float64) float64 {
	return ulpError(float64(test.Float32()), ref, formats[Half])
}

// Get the error of a double precision result in units of the last place of
// the reference value. The reference is computed in double precision as
// well so the result is inflated by half an ulp to account for its own
// rounding error.
func UlpErrorDouble(test, ref float64) float64 {
	f := formats[Double]

	var ulpExp int64
	if frac, _ := math.Frexp(ref); frac != 0.5 {
		if math.IsInf(ref, 0) {
			if test == ref {
				return 0
			}
			return test - ref
		}
		if math.IsNaN(ref) && math.IsNaN(test) {
			return 0
		}
		ulpExp = int64(f.mantDig-1) - max(int64(math.Ilogb(ref)), int64(f.minExp-1))
	} else {
		ulpExp = int64(f.mantDig-1) - max(int64(math.Ilogb(ref))-1, int64(f.minExp-1))
	}

	res := math.Ldexp(test-ref, int(ulpExp))
	return res + math.Copysign(0.5, res)
}

func ulpError(test, ref float64, f format) float64 {
	if math.IsInf(ref, 0) {
		if test == ref {
			return 0
		}
		return test - ref
	}

	// Results may overflow as long as the reference is within range.
	if math.IsInf(test, 0) {
		test = math.Copysign(f.overflow, test)
	}

	// A non-zero mantissa means ref is neither zero nor a power of two.
	// NaNs fall into this branch as well.
	var ulpExp int64
	if math.Float64bits(ref)&doubleMantissaMask != 0 {
		if math.IsNaN(ref) && math.IsNaN(test) {
			return 0
		}
		ulpExp = int64(f.mantDig-1) - max(int64(math.Ilogb(ref)), int64(f.minExp-1))
	} else {
		ulpExp = int64(f.mantDig-1) - max(int64(math.Ilogb(ref))-1, int64(f.minExp-1))
	}

	return math.Ldexp(test-ref, int(ulpExp))
}
