package arginfo

import (
	"sort"
	"strings"

	"github.com/achilleasa/clconform/log"
	"github.com/achilleasa/clconform/opencl/device"
	"github.com/pkg/errors"
)

var logger = log.New("arginfo")

// Checks and failures accumulated by a verification run.
type Tally struct {
	Checks   int
	Failures int
}

// Add the counts of another tally.
func (t *Tally) Add(other Tally) {
	t.Checks += other.Checks
	t.Failures += other.Failures
}

// Builds programs and compares the reported argument metadata against the
// expected values of a Case.
type Verifier struct {
	builder Builder
	options string
}

// Create a verifier. Every program is built with buildOptions followed by
// the options of the case being verified.
func NewVerifier(builder Builder, buildOptions string) *Verifier {
	return &Verifier{
		builder: builder,
		options: buildOptions,
	}
}

func (v *Verifier) build(c Case) (Program, error) {
	opts := strings.TrimSpace(v.options + " " + c.Options)
	prog, err := v.builder.BuildProgram(c.Source, opts)
	if err != nil {
		logger.Debugf("program source for case %q:\n%s", c.Label, c.Source)
		return nil, errors.Wrapf(err, "arginfo: building %s", c.Label)
	}
	return prog, nil
}

// Build the case program and compare the kernel count, the kernel names and
// the metadata of every kernel argument. Each compared argument counts as a
// check. An error is returned if any opencl call fails.
func (v *Verifier) Verify(c Case) (Tally, error) {
	var tally Tally

	prog, err := v.build(c)
	if err != nil {
		return tally, err
	}
	defer prog.Release()

	numKernels, err := prog.NumKernels()
	if err != nil {
		return tally, errors.Wrapf(err, "arginfo: %s", c.Label)
	}
	tally.Checks++
	if numKernels != len(c.Kernels) {
		tally.Failures++
		logger.Errorf("[%s] PROGRAM_NUM_KERNELS: Expected: %d\t Actual: %d", c.Label, len(c.Kernels), numKernels)
	}

	names, err := prog.KernelNames()
	if err != nil {
		return tally, errors.Wrapf(err, "arginfo: %s", c.Label)
	}
	tally.Checks++
	if expNames := c.kernelNames(); !sameNames(expNames, names) {
		tally.Failures++
		logger.Errorf("[%s] PROGRAM_KERNEL_NAMES: Expected: %s\t Actual: %s", c.Label, strings.Join(expNames, ";"), strings.Join(names, ";"))
	}

	for _, kc := range c.Kernels {
		kTally, err := v.verifyKernel(prog, c.Label, kc)
		tally.Add(kTally)
		if err != nil {
			return tally, err
		}
	}

	return tally, nil
}

func (v *Verifier) verifyKernel(prog Program, label string, kc KernelCase) (Tally, error) {
	var tally Tally

	kernel, err := prog.Kernel(kc.Name)
	if err != nil {
		return tally, errors.Wrapf(err, "arginfo: %s", label)
	}
	defer kernel.Release()

	for argIndex, exp := range kc.Args {
		info, err := kernel.ArgInfo(argIndex)
		if err != nil {
			return tally, errors.Wrapf(err, "arginfo: %s", label)
		}

		tally.Checks++
		diffs := exp.Diff(FromInfo(info))
		if len(diffs) == 0 {
			continue
		}

		tally.Failures++
		logger.Errorf("[%s] kernel %s arg %d mismatch:\n%s", label, kc.Name, argIndex, strings.Join(diffs, "\n"))
		if exp.Source != "" {
			logger.Errorf("Argument in Kernel Source Reported as:\n%s", exp.Source)
		}
	}

	return tally, nil
}

// Check the size reported for the name of argument0 and verify that every
// argument info query succeeds when only the value size is requested.
func (v *Verifier) VerifyBoundary(c Case) (Tally, error) {
	var tally Tally

	prog, err := v.build(c)
	if err != nil {
		return tally, err
	}
	defer prog.Release()

	kernel, err := prog.Kernel(KernelName)
	if err != nil {
		return tally, errors.Wrapf(err, "arginfo: %s", c.Label)
	}
	defer kernel.Release()

	// The reported size includes the NUL terminator
	expSize := uint64(len(argNamePrefix+"0") + 1)
	tally.Checks++
	size, err := kernel.ArgInfoSize(0, device.KernelArgName)
	if err != nil {
		tally.Failures++
		logger.Errorf("[%s] arg name size query failed: %v", c.Label, err)
	} else if size != expSize {
		tally.Failures++
		logger.Errorf("[%s] arg name size: Expected: %d\t Actual: %d", c.Label, expSize, size)
	}

	tally.Checks++
	for _, param := range []uint32{
		device.KernelArgAddressQualifier,
		device.KernelArgAccessQualifier,
		device.KernelArgTypeQualifier,
		device.KernelArgTypeName,
		device.KernelArgName,
	} {
		if _, err = kernel.ArgInfoSize(0, param); err != nil {
			tally.Failures++
			logger.Errorf("[%s] size-only query with nil value failed: %v", c.Label, err)
			break
		}
	}

	return tally, nil
}

func (c Case) kernelNames() []string {
	names := make([]string, len(c.Kernels))
	for i, kc := range c.Kernels {
		names[i] = kc.Name
	}
	return names
}

// Compare two name lists ignoring order.
func sameNames(exp, actual []string) bool {
	if len(exp) != len(actual) {
		return false
	}
	a := append([]string(nil), exp...)
	b := append([]string(nil), actual...)
	sort.Strings(a)
	sort.Strings(b)
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
