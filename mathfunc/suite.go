package mathfunc

import (
	"context"

	"github.com/achilleasa/clconform/harness"
	"github.com/achilleasa/clconform/opencl/device"
)

// Tests a single function with every precision the device supports.
type Suite struct {
	fn   *Func
	opts Options
}

// Create a suite for f. The Embedded option is ignored; it is derived
// from the device profile.
func NewSuite(f *Func, opts Options) *Suite {
	return &Suite{fn: f, opts: opts}
}

// Get the suite name.
func (s *Suite) Name() string {
	return "math/" + s.fn.Name
}

// Run the suite on an initialized device.
func (s *Suite) Run(ctx context.Context, dev *device.Device) harness.Result {
	res := harness.Result{Device: dev.Name, Suite: s.Name()}

	precisions := selectPrecisions(DevicePrecisions(dev), s.opts.Precisions)
	opts := s.opts
	opts.Embedded = dev.IsEmbedded()

	exec := NewDeviceExecutor(dev)
	defer exec.Close()

	reports, err := s.RunExecutor(ctx, exec, opts, precisions)
	for _, report := range reports {
		res.Checks += report.Checked
		res.Failures += report.Failed
	}
	res.Err = err

	if len(reports) == 0 && err == nil {
		res.Skipped = "no supported precision"
	}
	return res
}

// Test the suite function with each of the given precisions that it
// supports. Testing stops at the first execution error.
func (s *Suite) RunExecutor(ctx context.Context, exec Executor, opts Options, precisions []Precision) ([]Report, error) {
	runner := NewRunner(exec, opts)

	var reports []Report
	for _, p := range precisions {
		if !s.fn.Supports(p) {
			continue
		}

		report, err := runner.Run(ctx, s.fn, p)
		if err != nil {
			return reports, err
		}
		reports = append(reports, report)
	}
	return reports, nil
}

// Get the precisions supported by a device.
func DevicePrecisions(dev *device.Device) []Precision {
	precisions := []Precision{Single}
	if dev.SupportsHalf() {
		precisions = append(precisions, Half)
	}
	if dev.SupportsDouble() {
		precisions = append(precisions, Double)
	}
	return precisions
}

// Keep the supported precisions that are also wanted. All supported
// precisions are kept if wanted is empty.
func selectPrecisions(supported, wanted []Precision) []Precision {
	if len(wanted) == 0 {
		return supported
	}

	var selected []Precision
	for _, p := range supported {
		for _, w := range wanted {
			if p == w {
				selected = append(selected, p)
				break
			}
		}
	}
	return selected
}

// Get a suite for every catalog function, or for the named functions only
// if names is not empty. Unknown names are reported as an error.
func Suites(opts Options, names ...string) ([]harness.Suite, error) {
	var funcs []*Func
	if len(names) == 0 {
		funcs = Catalog()
	} else {
		for _, name := range names {
			f, exists := Lookup(name)
			if !exists {
				return nil, &UnknownFuncError{Name: name}
			}
			funcs = append(funcs, f)
		}
	}

	suites := make([]harness.Suite, len(funcs))
	for i, f := range funcs {
		suites[i] = NewSuite(f, opts)
	}
	return suites, nil
}

// Returned by Suites for a function that is not in the catalog.
type UnknownFuncError struct {
	Name string
}

func (e *UnknownFuncError) Error() string {
	return "mathfunc: unknown function " + e.Name
}
