package mathfunc

import (
	"math"
)

// The type of the values passed to a function.
type InputKind uint8

const (
	FloatInput InputKind = iota
	UintInput
)

// The range and special values of a single function input.
type Input struct {
	Min, Max float64
	Special  []float64
}

// Computes the expected results of a function for a set of inputs.
type RefFunc func(p Precision, in []float64) []float64

// A math builtin under test.
type Func struct {
	Name string

	Kind   InputKind
	Inputs []Input

	// Number of results per work item; functions that return a second
	// value through a pointer argument have two.
	Outputs int

	Ref       RefFunc
	Tolerance Tolerance

	// The precisions the function is tested with; all of them if empty.
	Precisions []Precision

	// Kernel body statements; a format string receiving the opencl type
	// name as its only operand. If empty the body stores the result of
	// calling the function with every input.
	Body string
}

// Get the number of inputs.
func (f *Func) Arity() int {
	return len(f.Inputs)
}

// Check whether the function can be tested with the given precision.
func (f *Func) Supports(p Precision) bool {
	if len(f.Precisions) == 0 {
		return true
	}
	for _, fp := range f.Precisions {
		if fp == p {
			return true
		}
	}
	return false
}

var (
	defaultSpecial = []float64{0, math.Copysign(0, -1), 1, -1, 2, -2, math.Inf(1), math.Inf(-1), math.NaN()}
	remquoSpecial  = []float64{0, math.Copysign(0, -1), 1, -1, math.Inf(1), math.Inf(-1), math.NaN()}

	exactTolerance = Tolerance{UseULP: true, ULP: 0, EmbeddedULP: 0, MaxDelta: 0.001}
)

func unary(name string, ref func(float64) float64) *Func {
	return &Func{
		Name:      name,
		Inputs:    []Input{{Min: -1000, Max: 1000, Special: defaultSpecial}},
		Outputs:   1,
		Tolerance: exactTolerance,
		Ref: func(_ Precision, in []float64) []float64 {
			return []float64{ref(in[0])}
		},
	}
}

func binary(name string, tol Tolerance, ref func(x, y float64) float64) *Func {
	return &Func{
		Name: name,
		Inputs: []Input{
			{Min: -100, Max: 100, Special: defaultSpecial},
			{Min: -10, Max: 10, Special: defaultSpecial},
		},
		Outputs:   1,
		Tolerance: tol,
		Ref: func(_ Precision, in []float64) []float64 {
			return []float64{ref(in[0], in[1])}
		},
	}
}

// Functions returning a second result through a pointer argument store it
// in the .y component of a 2-vector.
func pointerResult(name, ptrType string, ref func(p Precision, x float64) (float64, float64)) *Func {
	return &Func{
		Name:      name,
		Inputs:    []Input{{Min: -1000, Max: 1000, Special: defaultSpecial}},
		Outputs:   2,
		Tolerance: Tolerance{UseULP: true},
		Ref: func(p Precision, in []float64) []float64 {
			res, ptr := ref(p, in[0])
			return []float64{res, ptr}
		},
		Body: `    %[1]s2 result;
    ` + ptrType + ` ptr;
    result.x = ` + name + `(input[gid], &ptr);
    result.y = ptr;
    output[gid] = result;
`,
	}
}

// Get the floating point builtins under test in execution order.
func Catalog() []*Func {
	return []*Func{
		unary("ceil", math.Ceil),
		unary("floor", math.Floor),
		unary("rint", math.RoundToEven),
		unary("round", math.Round),
		unary("trunc", math.Trunc),
		{
			Name:       "nan",
			Kind:       UintInput,
			Inputs:     []Input{{Min: 0, Max: 100, Special: []float64{0, 1}}},
			Outputs:    1,
			Tolerance:  exactTolerance,
			Precisions: []Precision{Single},
			Ref: func(_ Precision, in []float64) []float64 {
				return []float64{refNan(uint32(in[0]))}
			},
		},
		pointerResult("fract", "%[1]s", refFract),
		pointerResult("modf", "%[1]s", func(_ Precision, x float64) (float64, float64) {
			return refModf(x)
		}),
		pointerResult("frexp", "int", func(_ Precision, x float64) (float64, float64) {
			return refFrexp(x)
		}),
		binary("copysign", exactTolerance, math.Copysign),
		binary("fmod", exactTolerance, math.Mod),
		binary("remainder", Tolerance{UseULP: true, ULP: 0, EmbeddedULP: 0.001, MaxDelta: 0}, math.Remainder),
		{
			Name: "nextafter",
			Inputs: []Input{
				{Min: -1000, Max: 500, Special: defaultSpecial},
				{Min: 501, Max: 1000, Special: defaultSpecial},
			},
			Outputs:    1,
			Tolerance:  Tolerance{UseULP: true},
			Precisions: []Precision{Single, Double},
			Ref: func(p Precision, in []float64) []float64 {
				return []float64{refNextafter(in[0], in[1], p)}
			},
		},
		{
			Name: "remquo",
			Inputs: []Input{
				{Min: -1000, Max: 1000, Special: remquoSpecial},
				{Min: -1000, Max: 1000, Special: remquoSpecial},
			},
			Outputs:   2,
			Tolerance: Tolerance{UseULP: true},
			Ref: func(_ Precision, in []float64) []float64 {
				rem, quo := refRemquo(in[0], in[1])
				return []float64{rem, quo}
			},
			// Implementations may store more than the seven low bits of the
			// quotient.
			Body: `    %[1]s2 result;
    int quo = 0;
    int sign = 0;
    result.x = remquo(input1[gid], input2[gid], &quo);
    sign = (quo < 0) ? -1 : 1;
    quo = (quo < 0) ? -quo : quo;
    quo &= 0x0000007f;
    result.y = (sign < 0) ? -quo : quo;
    output[gid] = result;
`,
		},
		{
			Name: "fma",
			Inputs: []Input{
				{Min: -1000, Max: 1000, Special: defaultSpecial},
				{Min: -1000, Max: 1000, Special: defaultSpecial},
				{Min: -1000, Max: 1000, Special: defaultSpecial},
			},
			Outputs:   1,
			Tolerance: exactTolerance,
			Ref: func(_ Precision, in []float64) []float64 {
				return []float64{math.FMA(in[0], in[1], in[2])}
			},
		},
	}
}

// Look up a catalog function by name.
func Lookup(name string) (*Func, bool) {
	for _, f := range Catalog() {
		if f.Name == name {
			return f, true
		}
	}
	return nil, false
}
