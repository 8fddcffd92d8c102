package mathfunc

import (
	"context"
	"math"
	"math/rand/v2"

	"github.com/achilleasa/clconform/log"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

var logger = log.New("mathfunc")

const (
	DefaultElements   = 1 << 14
	DefaultIterations = 1

	// Only the first failures of a report are kept.
	maxReportedFailures = 16
)

// Runner options.
type Options struct {
	// Work items per kernel execution.
	Elements int

	// Kernel executions per function and precision. Special cases are
	// only placed in the inputs of the first execution.
	Iterations int

	// Seed for the input generator.
	Seed uint64

	// Select the ulp bounds for embedded profile devices.
	Embedded bool

	// Restrict suites to these precisions; all the device supports if empty.
	Precisions []Precision
}

// A result that fell outside the function tolerance.
type Failure struct {
	Index    int
	Inputs   []float64
	Result   []float64
	Expected []float64

	// Error of the first mismatched output.
	Error float64
}

// The outcome of testing a function with one precision.
type Report struct {
	Func      string
	Precision Precision

	// Number of compared output values.
	Checked int

	// Number of failed output values.
	Failed int

	// The first failures in work item order.
	Failures []Failure

	// Max and mean error over the compared values with finite error.
	MaxError  float64
	MeanError float64
}

// Evaluates math functions through an executor and checks the results
// against the host reference implementation.
type Runner struct {
	exec Executor
	opts Options
	rng  *rand.Rand
}

// Create a runner.
func NewRunner(exec Executor, opts Options) *Runner {
	if opts.Elements <= 0 {
		opts.Elements = DefaultElements
	}
	if opts.Iterations <= 0 {
		opts.Iterations = DefaultIterations
	}
	return &Runner{
		exec: exec,
		opts: opts,
		rng:  rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15)),
	}
}

// Test f with the given precision.
func (r *Runner) Run(ctx context.Context, f *Func, p Precision) (Report, error) {
	report := Report{Func: f.Name, Precision: p}
	if !f.Supports(p) {
		return report, errors.Errorf("mathfunc: %s does not support %s precision", f.Name, p)
	}

	kernel := GenerateKernel(f, p)

	specials := make([][]float64, f.Arity())
	for i, in := range f.Inputs {
		specials[i] = in.Special
	}
	specials = CombineSpecialCases(specials...)

	var errs []float64
	for iter := 0; iter < r.opts.Iterations; iter++ {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		inputs := make([][]float64, f.Arity())
		for i, in := range f.Inputs {
			var special []float64
			if iter == 0 {
				special = specials[i]
			}
			inputs[i] = r.generate(f.Kind, in, special, p)
		}

		results, err := r.exec.Execute(kernel, inputs)
		if err != nil {
			return report, errors.Wrapf(err, "mathfunc: executing %s", kernel.Name)
		}
		if len(results) != r.opts.Elements*f.Outputs {
			return report, errors.Errorf("mathfunc: %s returned %d values; expected %d", kernel.Name, len(results), r.opts.Elements*f.Outputs)
		}

		errs = r.verify(f, p, inputs, results, &report, errs)
	}

	if len(errs) != 0 {
		report.MaxError = floats.Max(errs)
		report.MeanError = stat.Mean(errs, nil)
	}

	if report.Failed != 0 {
		logger.Warningf("%s(%s): %d of %d value(s) out of tolerance; max error %g", f.Name, p, report.Failed, report.Checked, report.MaxError)
	} else {
		logger.Debugf("%s(%s): %d value(s) checked; max error %g", f.Name, p, report.Checked, report.MaxError)
	}
	return report, nil
}

// Check the results of one execution and append the absolute finite
// errors to errs.
func (r *Runner) verify(f *Func, p Precision, inputs [][]float64, results []float64, report *Report, errs []float64) []float64 {
	args := make([]float64, f.Arity())
	for item := 0; item < r.opts.Elements; item++ {
		for i := range args {
			args[i] = inputs[i][item]
		}
		expected := f.Ref(p, args)
		got := results[item*f.Outputs : (item+1)*f.Outputs]

		var (
			failed   bool
			firstErr float64
		)
		for out := 0; out < f.Outputs; out++ {
			report.Checked++
			errVal, ok := f.Tolerance.Check(got[out], expected[out], p, r.opts.Embedded)
			if !math.IsNaN(errVal) && !math.IsInf(errVal, 0) {
				errs = append(errs, math.Abs(errVal))
			}
			if ok {
				continue
			}

			report.Failed++
			if !failed {
				failed, firstErr = true, errVal
			}
		}

		if failed && len(report.Failures) < maxReportedFailures {
			failure := Failure{
				Index:    item,
				Inputs:   append([]float64(nil), args...),
				Result:   append([]float64(nil), got...),
				Expected: expected,
				Error:    firstErr,
			}
			report.Failures = append(report.Failures, failure)
			logger.Infof("%s(%s) item %d: inputs %v; result %v; expected %v; error %g", f.Name, p, item, failure.Inputs, failure.Result, failure.Expected, failure.Error)
		}
	}
	return errs
}

// Generate the values of one input. Floating point values are rounded to
// the tested precision and re-drawn while subnormal.
func (r *Runner) generate(kind InputKind, in Input, special []float64, p Precision) []float64 {
	if kind == UintInput {
		codes := make([]uint32, len(special))
		for i, v := range special {
			codes[i] = uint32(v)
		}
		codes = GenerateInput(r.rng, r.opts.Elements, uint32(in.Min), uint32(in.Max), codes)

		values := make([]float64, len(codes))
		for i, code := range codes {
			values[i] = float64(code)
		}
		return values
	}

	values := generate(r.rng, r.opts.Elements, in.Min, in.Max, special, func(v float64) bool {
		return p.IsSubnormal(p.Round(v))
	})
	for i, v := range values {
		values[i] = p.Round(v)
	}
	return values
}
