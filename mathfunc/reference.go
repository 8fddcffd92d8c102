package mathfunc

import (
	"math"
)

// Largest value below one for each precision.
var belowOne = map[Precision]float64{
	Half:   0x1.ffcp-1,
	Single: 0x1.fffffep-1,
	Double: 0x1.fffffffffffffp-1,
}

// Get the fractional part of x, capped below one, and floor(x).
func refFract(x float64, p Precision) (float64, float64) {
	switch {
	case math.IsNaN(x):
		return math.NaN(), math.NaN()
	case math.IsInf(x, 0):
		return math.Copysign(0, x), x
	case x == 0:
		return x, x
	}

	fl := math.Floor(x)
	return math.Min(x-fl, belowOne[p]), fl
}

// Get the fractional and integral parts of x; both carry the sign of x.
func refModf(x float64) (float64, float64) {
	if math.IsInf(x, 0) {
		return math.Copysign(0, x), x
	}
	ip, frac := math.Modf(x)
	return frac, ip
}

// Split x into a fraction in [0.5, 1) and a power of two. The exponent is
// zero for zero, infinite and NaN values.
func refFrexp(x float64) (float64, float64) {
	frac, exp := math.Frexp(x)
	return frac, float64(exp)
}

// Get the remainder of x/y and the low seven bits of the integral quotient
// carrying the sign of x/y.
func refRemquo(x, y float64) (float64, float64) {
	rem := math.Remainder(x, y)
	if math.IsNaN(rem) || math.IsInf(x, 0) || y == 0 {
		return rem, 0
	}

	quo := math.RoundToEven((x - rem) / y)
	bits := float64(int64(math.Abs(quo)) & 0x7f)
	if math.Signbit(x) != math.Signbit(y) {
		bits = -bits
	}
	return rem, bits
}

// Build the quiet NaN produced by nan(code).
func refNan(code uint32) float64 {
	return float64(math.Float32frombits(code | 0x7fc00000))
}

// Get the next representable value after x in the direction of y.
func refNextafter(x, y float64, p Precision) float64 {
	if p == Single {
		return float64(math.Nextafter32(float32(x), float32(y)))
	}
	return math.Nextafter(x, y)
}
