package mathfunc

import (
	"context"
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Evaluates kernels on the host with the reference implementation and
// rounds the results to the kernel precision.
type hostExecutor struct {
	funcs map[string]*Func

	// Added to the first output of the work items with these indices.
	corrupt map[int]float64

	// Trims the returned values.
	short int

	err error

	kernels []Kernel
	inputs  [][][]float64
}

func newHostExecutor() *hostExecutor {
	e := &hostExecutor{
		funcs:   make(map[string]*Func),
		corrupt: make(map[int]float64),
	}
	for _, f := range Catalog() {
		e.funcs[KernelName(f)] = f
	}
	return e
}

func (e *hostExecutor) Execute(k Kernel, inputs [][]float64) ([]float64, error) {
	e.kernels = append(e.kernels, k)
	e.inputs = append(e.inputs, inputs)
	if e.err != nil {
		return nil, e.err
	}

	f := e.funcs[k.Name]
	count := len(inputs[0])
	out := make([]float64, 0, count*k.Outputs)
	args := make([]float64, len(inputs))
	for item := 0; item < count; item++ {
		for i := range inputs {
			args[i] = inputs[i][item]
		}
		for _, v := range f.Ref(k.Precision, args) {
			out = append(out, k.Precision.Round(v))
		}
	}

	for item, delta := range e.corrupt {
		out[item*k.Outputs] += delta
	}
	return out[:len(out)-e.short], nil
}

func TestRunnerConformant(t *testing.T) {
	exec := newHostExecutor()
	runner := NewRunner(exec, Options{Elements: 64, Iterations: 2, Seed: 7})

	for _, f := range Catalog() {
		for _, p := range []Precision{Single, Half, Double} {
			if !f.Supports(p) {
				continue
			}

			report, err := runner.Run(context.TODO(), f, p)
			require.NoError(t, err, "%s(%s)", f.Name, p)
			assert.Equal(t, 0, report.Failed, "%s(%s): %+v", f.Name, p, report.Failures)
			assert.Equal(t, 2*64*f.Outputs, report.Checked, "%s(%s)", f.Name, p)
			assert.Equal(t, 0.0, report.MaxError, "%s(%s)", f.Name, p)
		}
	}
}

func TestRunnerReportsFailures(t *testing.T) {
	exec := newHostExecutor()
	exec.corrupt[70] = 1

	runner := NewRunner(exec, Options{Elements: 100})
	report, err := runner.Run(context.TODO(), mustLookup(t, "ceil"), Single)
	require.NoError(t, err)

	assert.Equal(t, 100, report.Checked)
	assert.Equal(t, 1, report.Failed)
	require.Len(t, report.Failures, 1)

	failure := report.Failures[0]
	assert.Equal(t, 70, failure.Index)
	require.Len(t, failure.Inputs, 1)
	assert.Equal(t, math.Ceil(failure.Inputs[0]), failure.Expected[0])
	assert.Equal(t, failure.Expected[0]+1, failure.Result[0])
	assert.True(t, report.MaxError >= 1)
	assert.True(t, report.MeanError > 0)
}

func TestRunnerCapsReportedFailures(t *testing.T) {
	exec := newHostExecutor()
	for item := 20; item < 60; item++ {
		exec.corrupt[item] = 4000
	}

	report, err := NewRunner(exec, Options{Elements: 64}).Run(context.TODO(), mustLookup(t, "floor"), Single)
	require.NoError(t, err)
	assert.Equal(t, 40, report.Failed)
	assert.Len(t, report.Failures, maxReportedFailures)
	assert.Equal(t, 20, report.Failures[0].Index)
}

func TestRunnerSpecialCases(t *testing.T) {
	exec := newHostExecutor()
	runner := NewRunner(exec, Options{Elements: 16, Iterations: 2})

	_, err := runner.Run(context.TODO(), mustLookup(t, "ceil"), Single)
	require.NoError(t, err)
	require.Len(t, exec.inputs, 2)

	// Special cases lead the first execution only
	first := exec.inputs[0][0]
	assert.Equal(t, defaultSpecial[:8], first[:8])
	assert.True(t, math.IsNaN(first[8]))
	for _, v := range exec.inputs[1][0] {
		assert.True(t, v >= -1000 && v <= 1000, "value out of range: %v", v)
	}

	// Special values of binary functions are combined
	exec = newHostExecutor()
	_, err = NewRunner(exec, Options{Elements: 100}).Run(context.TODO(), mustLookup(t, "copysign"), Single)
	require.NoError(t, err)
	in1, in2 := exec.inputs[0][0], exec.inputs[0][1]
	assert.Equal(t, 0.0, in1[0])
	assert.Equal(t, 0.0, in2[0])
	assert.Equal(t, 0.0, in1[1])
	assert.Equal(t, 1.0, in2[2])
	assert.Equal(t, 1.0, in1[18])
}

func TestRunnerInputsMatchPrecision(t *testing.T) {
	exec := newHostExecutor()
	_, err := NewRunner(exec, Options{Elements: 256}).Run(context.TODO(), mustLookup(t, "trunc"), Half)
	require.NoError(t, err)

	for _, v := range exec.inputs[0][0] {
		if math.IsNaN(v) {
			continue
		}
		assert.Equal(t, Half.Round(v), v)
		assert.False(t, Half.IsSubnormal(v))
	}

	exec = newHostExecutor()
	_, err = NewRunner(exec, Options{Elements: 32}).Run(context.TODO(), mustLookup(t, "nan"), Single)
	require.NoError(t, err)
	for _, v := range exec.inputs[0][0] {
		assert.Equal(t, math.Trunc(v), v)
		assert.True(t, v >= 0 && v <= 100)
	}
}

func TestRunnerSeed(t *testing.T) {
	execA, execB := newHostExecutor(), newHostExecutor()
	f := mustLookup(t, "fmod")

	_, err := NewRunner(execA, Options{Elements: 128, Seed: 42}).Run(context.TODO(), f, Single)
	require.NoError(t, err)
	_, err = NewRunner(execB, Options{Elements: 128, Seed: 42}).Run(context.TODO(), f, Single)
	require.NoError(t, err)

	// Skip the special cases which include NaNs
	assert.Equal(t, execA.inputs[0][0][81:], execB.inputs[0][0][81:])
	assert.Equal(t, execA.inputs[0][1][81:], execB.inputs[0][1][81:])
}

func TestRunnerErrors(t *testing.T) {
	exec := newHostExecutor()
	exec.err = errors.New("out of resources")

	_, err := NewRunner(exec, Options{Elements: 8}).Run(context.TODO(), mustLookup(t, "ceil"), Single)
	require.Error(t, err)
	assert.Equal(t, exec.err, errors.Cause(err))

	exec = newHostExecutor()
	exec.short = 1
	_, err = NewRunner(exec, Options{Elements: 8}).Run(context.TODO(), mustLookup(t, "ceil"), Single)
	assert.Error(t, err)

	_, err = NewRunner(newHostExecutor(), Options{}).Run(context.TODO(), mustLookup(t, "nan"), Double)
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = NewRunner(newHostExecutor(), Options{Elements: 8}).Run(ctx, mustLookup(t, "ceil"), Single)
	assert.Equal(t, context.Canceled, err)
}
