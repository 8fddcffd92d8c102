package device

import (
	"fmt"
	"testing"
	"unsafe"

	"github.com/achilleasa/gopencl/v1.2/cl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferAllocate(t *testing.T) {
	dev := createCpuTestDevice(t)

	buf := dev.Buffer("test")
	defer buf.Release()
	require.NoError(t, buf.Allocate(128, cl.MEM_READ_WRITE))
	assert.Equal(t, 128, buf.Size())
}

func TestBufferAllocateToFitData(t *testing.T) {
	dev := createCpuTestDevice(t)

	data := make([]float64, 128)

	buf := dev.Buffer("test")
	defer buf.Release()
	require.NoError(t, buf.AllocateToFitData(data, cl.MEM_READ_WRITE))

	expSize := len(data) * int(unsafe.Sizeof(data[0]))
	assert.Equal(t, expSize, buf.Size())
}

func TestBufferWriteFitData(t *testing.T) {
	dev := createCpuTestDevice(t)

	data := make([]uint16, 64)
	for i := range data {
		data[i] = uint16(i * 3)
	}

	buf := dev.Buffer("test")
	defer buf.Release()
	require.NoError(t, buf.AllocateToFitData(data, cl.MEM_READ_WRITE))
	require.NoError(t, buf.WriteData(data, 0))
	assert.Equal(t, 128, buf.Size())

	dataOut := make([]uint16, 64)
	require.NoError(t, buf.ReadData(0, 0, 0, dataOut))
	assert.Equal(t, data, dataOut)
}

func TestDataReadWrite(t *testing.T) {
	dev := createCpuTestDevice(t)

	type foo struct {
		x    float32
		name string
	}

	numFoos := 10
	data := make([]foo, numFoos)
	for i := 0; i < numFoos; i++ {
		data[i].x = float32(i)
		data[i].name = fmt.Sprintf("%d", i)
	}

	buf := dev.Buffer("test")
	defer buf.Release()
	require.NoError(t, buf.Allocate(len(data)*int(unsafe.Sizeof(data[0])), cl.MEM_READ_WRITE))
	require.NoError(t, buf.WriteData(data, 0))

	dataOut := make([]foo, numFoos)
	require.NoError(t, buf.ReadData(0, 0, 0, dataOut))
	assert.Equal(t, data, dataOut)
}

func TestDataReadWriteOffsets(t *testing.T) {
	dev := createCpuTestDevice(t)

	data := make([]byte, 128)
	for i := 0; i < 128; i++ {
		data[i] = byte(i)
	}

	buf := dev.Buffer("test")
	defer buf.Release()
	require.NoError(t, buf.Allocate(128, cl.MEM_READ_WRITE))
	require.NoError(t, buf.WriteData(data, 64))

	dataOut := make([]byte, 128)
	require.NoError(t, buf.ReadData(64, 0, 64, dataOut))
	assert.Equal(t, data[:64], dataOut[:64])
}

func TestWriteDataOverflow(t *testing.T) {
	dev := createCpuTestDevice(t)

	buf := dev.Buffer("small")
	defer buf.Release()
	require.NoError(t, buf.Allocate(16, cl.MEM_READ_WRITE))
	assert.Error(t, buf.WriteData(make([]byte, 32), 0))
}

func TestGetSliceData(t *testing.T) {
	data := make([]int32, 32)
	_, dataLen := getSliceData(data)
	assert.Equal(t, 4*32, dataLen)

	assert.Panics(t, func() { getSliceData(data[0]) })
	assert.Panics(t, func() { getSliceData([]int32{}) })
}
