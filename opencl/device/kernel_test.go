package device

import (
	"testing"

	"github.com/achilleasa/gopencl/v1.2/cl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKernelExec1D(t *testing.T) {
	dev := createCpuTestDevice(t)

	prog, err := dev.BuildProgram(squareSource, "")
	require.NoError(t, err)
	defer prog.Release()

	kernel, err := prog.Kernel("square")
	require.NoError(t, err)
	defer kernel.Release()
	assert.Equal(t, "square", kernel.Name())

	for _, localWorkSize := range []int{0, 1} {
		dataSize := 32
		dataIn := make([]int32, dataSize)
		dataOut := make([]int32, dataSize)
		for i := 0; i < dataSize; i++ {
			dataIn[i] = int32(i)
		}

		bufIn := dev.Buffer("in")
		defer bufIn.Release()
		require.NoError(t, bufIn.AllocateToFitData(dataIn, cl.MEM_READ_ONLY))
		require.NoError(t, bufIn.WriteData(dataIn, 0))

		bufOut := dev.Buffer("out")
		defer bufOut.Release()
		require.NoError(t, bufOut.AllocateToFitData(dataOut, cl.MEM_WRITE_ONLY))

		require.NoError(t, kernel.SetArgs(bufIn, bufOut, uint32(dataSize)))

		_, err = kernel.Exec1D(0, dataSize, localWorkSize)
		require.NoError(t, err)

		// Fetch and validate output
		require.NoError(t, bufOut.ReadData(0, 0, 0, dataOut))
		for i := 0; i < dataSize; i++ {
			expValue := dataIn[i] * dataIn[i]
			if dataOut[i] != expValue {
				t.Fatalf("[item %d] expected squared value of %d to be %d; got %d", i, dataIn[i], expValue, dataOut[i])
			}
		}
	}
}

func TestKernelSetArgsErrors(t *testing.T) {
	dev := createCpuTestDevice(t)

	prog, err := dev.BuildProgram(squareSource, "")
	require.NoError(t, err)
	defer prog.Release()

	kernel, err := prog.Kernel("scale")
	require.NoError(t, err)
	defer kernel.Release()

	err = kernel.SetArgs("foo")
	assert.Error(t, err)

	// Argument 2 expects a float; passing a double must trip INVALID_ARG_SIZE
	buf := dev.Buffer("buf")
	defer buf.Release()
	require.NoError(t, buf.Allocate(16, cl.MEM_READ_WRITE))
	err = kernel.SetArgs(buf, buf, float64(1))
	assert.Equal(t, "INVALID_ARG_SIZE", ErrorName(ErrorCode(err)))
}

func TestKernelArgInfo(t *testing.T) {
	dev := createCpuTestDevice(t)

	src := "kernel void info(global const int *argument0, local volatile float4 *argument1, constant uint *argument2, char argument3){}"
	prog, err := dev.BuildProgram(src, "-cl-kernel-arg-info")
	require.NoError(t, err)
	defer prog.Release()

	kernel, err := prog.Kernel("info")
	require.NoError(t, err)
	defer kernel.Release()

	expInfo := []ArgInfo{
		{Address: 0x119B, Access: 0x11A3, TypeQualifier: 1, TypeName: "int*", Name: "argument0"},
		{Address: 0x119C, Access: 0x11A3, TypeQualifier: 4, TypeName: "float4*", Name: "argument1"},
		{Address: 0x119D, Access: 0x11A3, TypeQualifier: 1, TypeName: "uint*", Name: "argument2"},
		{Address: 0x119E, Access: 0x11A3, TypeQualifier: 0, TypeName: "char", Name: "argument3"},
	}

	for argIndex, exp := range expInfo {
		info, err := kernel.ArgInfo(argIndex)
		require.NoError(t, err, "[arg %d]", argIndex)
		assert.Equal(t, exp, info, "[arg %d]", argIndex)
	}

	size, err := kernel.ArgInfoSize(0, KernelArgName)
	require.NoError(t, err)
	assert.Equal(t, uint64(len("argument0")+1), size)

	_, err = kernel.ArgInfo(len(expInfo))
	assert.Equal(t, "INVALID_ARG_INDEX", ErrorName(ErrorCode(err)))
}
