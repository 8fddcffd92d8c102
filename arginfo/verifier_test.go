package arginfo

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyConformant(t *testing.T) {
	builder := newFakeBuilder()
	c := staticCases[1]
	prog := builder.addConformant(c)

	v := NewVerifier(builder, "-cl-kernel-arg-info")
	tally, err := v.Verify(c)
	require.NoError(t, err)

	// kernel count + kernel names + 2 args for each of the 2 kernels
	assert.Equal(t, Tally{Checks: 6, Failures: 0}, tally)
	assert.Equal(t, []string{"-cl-kernel-arg-info"}, builder.options)
	assert.Equal(t, 1, prog.released)
}

func TestVerifyMismatches(t *testing.T) {
	builder := newFakeBuilder()
	c := staticCases[2]
	prog := builder.addConformant(c)

	// Report a wrong type name for one arg and a wrong qualifier for another
	infos := prog.kernels["qualifiers"]
	infos[0].TypeName = "uint*"
	infos[3].TypeQualifier = 0

	tally, err := NewVerifier(builder, "").Verify(c)
	require.NoError(t, err)
	assert.Equal(t, Tally{Checks: 2 + 7, Failures: 2}, tally)
}

func TestVerifyKernelCountAndNames(t *testing.T) {
	builder := newFakeBuilder()
	c := staticCases[1]
	prog := builder.addConformant(c)
	prog.numKernels = 1
	prog.names = []string{"sample_test2", "sample_test3"}

	tally, err := NewVerifier(builder, "").Verify(c)
	require.NoError(t, err)
	assert.Equal(t, 2, tally.Failures)

	// Names may be reported in any order
	prog.numKernels = 2
	prog.names = []string{"sample_test2", "sample_test"}
	tally, err = NewVerifier(builder, "").Verify(c)
	require.NoError(t, err)
	assert.Equal(t, 0, tally.Failures)
}

func TestVerifyErrors(t *testing.T) {
	builder := newFakeBuilder()
	builder.buildErr = errors.New("BUILD_PROGRAM_FAILURE")

	_, err := NewVerifier(builder, "-cl-kernel-arg-info").Verify(BoundaryCase())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BUILD_PROGRAM_FAILURE")

	// Case options are appended to the base options
	builder.buildErr = nil
	c := staticCases[0]
	c.Options = "-cl-std=CL2.0"
	prog := builder.addConformant(c)
	delete(prog.kernels, "sample_test")

	_, err = NewVerifier(builder, "-cl-kernel-arg-info").Verify(c)
	assert.Error(t, err)
	assert.Equal(t, "-cl-kernel-arg-info -cl-std=CL2.0", builder.options[len(builder.options)-1])
}

func TestVerifyBoundary(t *testing.T) {
	type spec struct {
		nameSize    uint64
		sizeErr     error
		expFailures int
	}

	specs := []spec{
		{0, nil, 0},
		{9, nil, 1},
		{0, errors.New("INVALID_VALUE"), 2},
	}

	for specIndex, s := range specs {
		builder := newFakeBuilder()
		c := BoundaryCase()
		prog := builder.addConformant(c)
		prog.nameSize = s.nameSize
		prog.sizeErr = s.sizeErr

		tally, err := NewVerifier(builder, "").VerifyBoundary(c)
		require.NoError(t, err, "[spec %d]", specIndex)
		assert.Equal(t, 2, tally.Checks, "[spec %d]", specIndex)
		assert.Equal(t, s.expFailures, tally.Failures, "[spec %d]", specIndex)
	}
}

func TestTallyAdd(t *testing.T) {
	tally := Tally{Checks: 1}
	tally.Add(Tally{Checks: 3, Failures: 2})
	assert.Equal(t, Tally{Checks: 4, Failures: 2}, tally)
}
