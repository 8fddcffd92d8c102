package mathfunc

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToleranceCheckULP(t *testing.T) {
	specs := []struct {
		descr    string
		tol      Tolerance
		test     float64
		ref      float64
		p        Precision
		embedded bool
		expOK    bool
	}{
		{"exact", Tolerance{UseULP: true}, 2, 2, Single, false, true},
		{"nan pair", Tolerance{UseULP: true}, math.NaN(), math.NaN(), Single, false, true},
		{"correctly rounded", Tolerance{UseULP: true}, float64(float32(0.1)), 0.1, Single, false, true},
		{"correctly rounded half", Tolerance{UseULP: true}, Half.Round(0.1), 0.1, Half, false, true},
		{"correctly rounded half above float midpoint", Tolerance{UseULP: true}, 1 + 0x1p-10, 1 + 0x1p-11 + 0x1p-40, Half, false, true},
		{"one ulp off", Tolerance{UseULP: true}, 1.5 + 0x1p-23, 1.5, Single, false, false},
		{"within bound", Tolerance{UseULP: true, ULP: 1}, 1.5 + 0x1p-23, 1.5, Single, false, true},
		{"embedded bound", Tolerance{UseULP: true, EmbeddedULP: 2}, 1.5 + 0x1p-23, 1.5, Single, true, true},
		{"full profile bound", Tolerance{UseULP: true, EmbeddedULP: 2}, 1.5 + 0x1p-23, 1.5, Single, false, false},
		{"unexpected nan", Tolerance{UseULP: true, ULP: 100}, math.NaN(), 1, Single, false, false},
		{"missing nan", Tolerance{UseULP: true, ULP: 100}, 1, math.NaN(), Single, false, false},
		{"double one ulp off", Tolerance{UseULP: true, ULP: 1}, 1.5 + 0x1p-52, 1.5, Double, false, false},
		{"double within bound", Tolerance{UseULP: true, ULP: 2}, 1.5 + 0x1p-52, 1.5, Double, false, true},
	}

	for specIndex, spec := range specs {
		_, ok := spec.tol.Check(spec.test, spec.ref, spec.p, spec.embedded)
		assert.Equal(t, spec.expOK, ok, "spec %d: %s", specIndex, spec.descr)
	}
}

func TestToleranceCheckDelta(t *testing.T) {
	tol := Tolerance{MaxDelta: 0.001}

	// Relative to the reference magnitude
	errVal, ok := tol.Check(1000.5, 1000, Single, false)
	assert.True(t, ok)
	assert.Equal(t, 0.5, errVal)

	_, ok = tol.Check(1002, 1000, Single, false)
	assert.False(t, ok)

	// Absolute below one
	_, ok = tol.Check(0.0005, 0, Single, false)
	assert.True(t, ok)
	_, ok = tol.Check(0.0015, 0, Single, false)
	assert.False(t, ok)

	_, ok = tol.Check(math.Inf(1), math.Inf(1), Single, false)
	assert.True(t, ok)
	_, ok = tol.Check(math.Inf(1), math.Inf(-1), Single, false)
	assert.False(t, ok)
}

func TestToleranceBound(t *testing.T) {
	tol := Tolerance{UseULP: true, ULP: 1, EmbeddedULP: 3}
	assert.Equal(t, 1.0, tol.Bound(false))
	assert.Equal(t, 3.0, tol.Bound(true))
}
