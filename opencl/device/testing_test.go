package device

import (
	"testing"
)

// Select and initialize the first CPU device. Tests are skipped on hosts
// without an opencl CPU runtime.
func createCpuTestDevice(t *testing.T) *Device {
	t.Helper()

	devList, err := SelectDevices(CpuDevice, "")
	if err != nil {
		t.Skipf("opencl platform enumeration failed: %v", err)
	}
	if len(devList) == 0 {
		t.Skip("no opencl CPU device available; check that openCL drivers are installed")
	}

	dev := devList[0]
	if err = dev.Init(); err != nil {
		t.Fatalf("error initializing device '%s': %v", dev.Name, err)
	}
	t.Cleanup(dev.Close)
	return dev
}

const squareSource = `
kernel void square(global int *in, global int *out, uint count) {
	uint gid = get_global_id(0);
	if (gid < count) {
		out[gid] = in[gid] * in[gid];
	}
}

kernel void scale(global float *in, global float *out, float factor) {
	uint gid = get_global_id(0);
	out[gid] = in[gid] * factor;
}
`
