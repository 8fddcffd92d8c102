package mathfunc

import (
	"math"
)

// The accepted error for the results of a math function.
type Tolerance struct {
	// Compare results in ulps if set; otherwise compare the absolute
	// difference against MaxDelta.
	UseULP bool

	ULP         float64
	EmbeddedULP float64

	// Max difference relative to max(1, |ref|).
	MaxDelta float64
}

// Get the ulp bound for a device profile.
func (t Tolerance) Bound(embedded bool) float64 {
	if embedded {
		return t.EmbeddedULP
	}
	return t.ULP
}

// Compare a device result to the reference value and return the measured
// error and whether it is within tolerance. Identical values, a pair of
// NaNs and, in ulp mode, a correctly rounded result always pass.
func (t Tolerance) Check(test, ref float64, p Precision, embedded bool) (float64, bool) {
	if test == ref || (math.IsNaN(test) && math.IsNaN(ref)) {
		return 0, true
	}

	if !t.UseULP {
		diff := math.Abs(test - ref)
		return diff, diff <= t.MaxDelta*math.Max(1, math.Abs(ref))
	}

	if test == p.Round(ref) {
		return 0, true
	}

	// NaN errors fail the comparison.
	err := p.UlpError(test, ref)
	return err, math.Abs(err) <= t.Bound(embedded)
}
