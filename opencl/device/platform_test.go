package device

import (
	"strings"
	"testing"
	"unsafe"

	"github.com/achilleasa/gopencl/v1.2/cl"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Emulate a clGet*Info call that reports value.
func stringQuery(value string, calls *int) infoQuery {
	return func(size uint64, dst unsafe.Pointer, sizeRet *uint64) cl.ErrorCode {
		*calls++
		data := append([]byte(value), 0)
		if sizeRet != nil {
			*sizeRet = uint64(len(data))
		}
		if dst == nil {
			return cl.SUCCESS
		}
		if size < uint64(len(data)) {
			// CL_INVALID_VALUE
			return -30
		}
		copy(unsafe.Slice((*byte)(dst), size), data)
		return cl.SUCCESS
	}
}

func TestQueryStringLongValue(t *testing.T) {
	extensions := strings.Repeat("cl_khr_some_extension ", 200)

	var calls int
	value, err := queryString("-", "could not query PLATFORM_EXTENSIONS", stringQuery(extensions, &calls))
	require.NoError(t, err)
	assert.Equal(t, extensions, value)
	assert.Equal(t, 2, calls)
}

func TestQueryStringErrors(t *testing.T) {
	failing := func(uint64, unsafe.Pointer, *uint64) cl.ErrorCode { return -30 }
	_, err := queryString("-", "could not query PLATFORM_NAME", failing)
	require.Error(t, err)
	assert.Equal(t, cl.ErrorCode(-30), ErrorCode(err))

	empty := func(_ uint64, _ unsafe.Pointer, sizeRet *uint64) cl.ErrorCode {
		*sizeRet = 0
		return cl.SUCCESS
	}
	value, err := queryString("-", "could not query PLATFORM_NAME", empty)
	require.NoError(t, err)
	assert.Empty(t, value)
}

func TestDeviceIDs(t *testing.T) {
	ids := make([]cl.DeviceId, 4)

	found, err := deviceIDs(ids, func(count uint32, _ *cl.DeviceId, countRet *uint32) cl.ErrorCode {
		assert.Equal(t, uint32(4), count)
		*countRet = 2
		return cl.SUCCESS
	})
	require.NoError(t, err)
	assert.Len(t, found, 2)

	// More devices than entries
	found, err = deviceIDs(ids, func(_ uint32, _ *cl.DeviceId, countRet *uint32) cl.ErrorCode {
		*countRet = 9
		return cl.SUCCESS
	})
	require.NoError(t, err)
	assert.Len(t, found, 4)

	found, err = deviceIDs(ids, func(uint32, *cl.DeviceId, *uint32) cl.ErrorCode { return deviceNotFound })
	require.NoError(t, err)
	assert.Empty(t, found)

	_, err = deviceIDs(ids, func(uint32, *cl.DeviceId, *uint32) cl.ErrorCode { return -33 })
	assert.Error(t, err)
}

func TestProbeDevicesSkipsFailures(t *testing.T) {
	devices := append(newDevices(make([]cl.DeviceId, 2), CpuDevice), newDevices(make([]cl.DeviceId, 1), GpuDevice)...)
	names := []string{"cpu0", "bad", "gpu0"}

	var probed int
	kept := probeDevices(devices, func(dev *Device) error {
		dev.Name = names[probed]
		probed++
		if dev.Name == "bad" {
			_, err := ParseVersion("OpenCL garbage")
			return errors.Wrap(err, "parsing DEVICE_VERSION")
		}
		return nil
	})

	assert.Equal(t, 3, probed)
	require.Len(t, kept, 2)
	assert.Equal(t, "cpu0", kept[0].Name)
	assert.Equal(t, CpuDevice, kept[0].Type)
	assert.Equal(t, "gpu0", kept[1].Name)
	assert.Equal(t, GpuDevice, kept[1].Type)
}
