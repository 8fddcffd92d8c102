package device

import (
	"fmt"
	"regexp"
	"strings"
	"unsafe"

	"github.com/achilleasa/gopencl/v1.2/cl"
)

type DeviceType uint8

// Supported device types.
const (
	CpuDevice DeviceType = 1 << iota
	GpuDevice
	OtherDevice
	AllDevices DeviceType = 0xFF
)

// Device info queries introduced after opencl 1.2; the bindings only
// export the 1.2 set.
const (
	deviceMaxPipeArgs           = 0x1055
	devicePipeMaxPacketSize     = 0x1057
	deviceMaxReadWriteImageArgs = 0x104C
)

var (
	indentRegex = regexp.MustCompile("(?m)^")
)

func (dt DeviceType) String() string {
	switch dt {
	case CpuDevice:
		return "CPU"
	case GpuDevice:
		return "GPU"
	case OtherDevice:
		return "Other"
	}
	panic("opencl: unsupported device type")
}

// Parse a device type mask from a string ("cpu", "gpu" or "all").
func ParseDeviceType(s string) (DeviceType, error) {
	switch strings.ToLower(s) {
	case "cpu":
		return CpuDevice, nil
	case "gpu":
		return GpuDevice, nil
	case "all", "":
		return AllDevices, nil
	}
	return 0, fmt.Errorf("opencl: unsupported device type %q", s)
}

// Wrapper around opencl-supported devices.
type Device struct {
	Name string
	Id   cl.DeviceId
	Type DeviceType

	compUnits  uint32
	clockSpeed uint32

	// Speed estimate in GFlops.
	Speed uint32

	// Cached device properties; populated by Init.
	version    Version
	profile    string
	extensions []string

	// Opencl handles; allocated when device is initialized.
	ctx      *cl.Context
	cmdQueue cl.CommandQueue
}

// Implements Stringer.
func (d Device) String() string {
	return fmt.Sprintf(
		"Name: %s\nType: %s\nSpecs: %d computation units, %d Mhz clock, %d GFlops approximate speed",
		d.Name,
		d.Type.String(),
		d.compUnits,
		d.clockSpeed,
		d.Speed,
	)
}

// Initialize device by allocating an opencl context and a command queue and
// caching the device properties that the test suites consult.
func (d *Device) Init() error {
	var errCode cl.ErrorCode

	// Already initialized
	if d.ctx != nil {
		return nil
	}

	// Create context
	d.ctx = cl.CreateContext(nil, 1, &d.Id, nil, nil, (*int32)(&errCode))
	if errCode != cl.SUCCESS {
		defer d.Close()
		return checkErr(d.Name, "could not create opencl context", errCode)
	}

	// Create command queue
	d.cmdQueue = cl.CreateCommandQueue(*d.ctx, d.Id, 0, (*int32)(&errCode))
	if errCode != cl.SUCCESS {
		defer d.Close()
		return checkErr(d.Name, "could not create opencl command queue", errCode)
	}

	if err := d.loadProperties(); err != nil {
		defer d.Close()
		return err
	}

	return nil
}

// Query and cache the device version, profile and extension list. These
// queries do not require an opencl context.
func (d *Device) loadProperties() error {
	if d.profile != "" {
		return nil
	}

	versionStr, err := d.infoString("DEVICE_VERSION", func(size uint64, value unsafe.Pointer, sizeRet *uint64) cl.ErrorCode {
		return cl.GetDeviceInfo(d.Id, cl.DEVICE_VERSION, size, value, sizeRet)
	})
	if err != nil {
		return err
	}
	if d.version, err = ParseVersion(versionStr); err != nil {
		return err
	}

	d.profile, err = d.infoString("DEVICE_PROFILE", func(size uint64, value unsafe.Pointer, sizeRet *uint64) cl.ErrorCode {
		return cl.GetDeviceInfo(d.Id, cl.DEVICE_PROFILE, size, value, sizeRet)
	})
	if err != nil {
		return err
	}

	extensions, err := d.infoString("DEVICE_EXTENSIONS", func(size uint64, value unsafe.Pointer, sizeRet *uint64) cl.ErrorCode {
		return cl.GetDeviceInfo(d.Id, cl.DEVICE_EXTENSIONS, size, value, sizeRet)
	})
	if err != nil {
		return err
	}
	d.extensions = strings.Fields(extensions)

	return nil
}

// Shut down the device.
func (d *Device) Close() {
	if d.cmdQueue != nil {
		cl.ReleaseCommandQueue(d.cmdQueue)
		d.cmdQueue = nil
	}

	if d.ctx != nil {
		cl.ReleaseContext(d.ctx)
		d.ctx = nil
	}
}

// Get the opencl version supported by the device.
func (d *Device) Version() Version {
	return d.version
}

// Get the device profile (FULL_PROFILE or EMBEDDED_PROFILE).
func (d *Device) Profile() string {
	return d.profile
}

// Return true if this is an embedded profile device.
func (d *Device) IsEmbedded() bool {
	return d.profile == "EMBEDDED_PROFILE"
}

// Get the list of extensions supported by the device.
func (d *Device) Extensions() []string {
	return d.extensions
}

// Check whether the device advertises the named extension.
func (d *Device) HasExtension(name string) bool {
	for _, ext := range d.extensions {
		if ext == name {
			return true
		}
	}
	return false
}

// Check for half precision support.
func (d *Device) SupportsHalf() bool {
	return d.HasExtension("cl_khr_fp16")
}

// Check for double precision support. Opencl 1.2+ devices may report double
// support through the fp config query without listing cl_khr_fp64.
func (d *Device) SupportsDouble() bool {
	if d.HasExtension("cl_khr_fp64") {
		return true
	}

	var fpConfig uint64
	errCode := cl.GetDeviceInfo(d.Id, cl.DEVICE_DOUBLE_FP_CONFIG, 8, unsafe.Pointer(&fpConfig), nil)
	return errCode == cl.SUCCESS && fpConfig != 0
}

// Check for 64-bit integer support. Embedded profile devices only support
// longs if they expose cles_khr_int64.
func (d *Device) SupportsLong() bool {
	if !d.IsEmbedded() {
		return true
	}
	return d.HasExtension("cles_khr_int64")
}

// Get the max size in bytes of the arguments that can be passed to a kernel.
func (d *Device) MaxParameterSize() (uint64, error) {
	var size uint64
	errCode := cl.GetDeviceInfo(d.Id, cl.DEVICE_MAX_PARAMETER_SIZE, 8, unsafe.Pointer(&size), nil)
	if err := checkErr(d.Name, "could not query MAX_PARAMETER_SIZE", errCode); err != nil {
		return 0, err
	}
	return size, nil
}

// Get the device address space size in bits.
func (d *Device) AddressBits() (uint32, error) {
	var bits uint32
	errCode := cl.GetDeviceInfo(d.Id, cl.DEVICE_ADDRESS_BITS, 4, unsafe.Pointer(&bits), nil)
	if err := checkErr(d.Name, "could not query ADDRESS_BITS", errCode); err != nil {
		return 0, err
	}
	return bits, nil
}

// Check for image support.
func (d *Device) ImageSupport() (bool, error) {
	var supported uint32
	errCode := cl.GetDeviceInfo(d.Id, cl.DEVICE_IMAGE_SUPPORT, 4, unsafe.Pointer(&supported), nil)
	if err := checkErr(d.Name, "could not query IMAGE_SUPPORT", errCode); err != nil {
		return false, err
	}
	return supported != 0, nil
}

// Check whether the device accepts read_write image kernel arguments. These
// require opencl 2.0 and are optional for 3.0 devices.
func (d *Device) ReadWriteImageSupport() (bool, error) {
	if !d.version.AtLeast(Version{2, 0}) {
		return false, nil
	}
	if !d.version.AtLeast(Version{3, 0}) {
		return true, nil
	}

	var maxArgs uint32
	errCode := cl.GetDeviceInfo(d.Id, deviceMaxReadWriteImageArgs, 4, unsafe.Pointer(&maxArgs), nil)
	if err := checkErr(d.Name, "could not query MAX_READ_WRITE_IMAGE_ARGS", errCode); err != nil {
		return false, err
	}
	return maxArgs != 0, nil
}

// Check for pipe support. Pipes were introduced in opencl 2.0 and became
// optional in 3.0 where a zero max packet size signals lack of support.
func (d *Device) PipeSupport() (bool, error) {
	if !d.version.AtLeast(Version{2, 0}) {
		return false, nil
	}

	var maxPacketSize uint32
	errCode := cl.GetDeviceInfo(d.Id, devicePipeMaxPacketSize, 4, unsafe.Pointer(&maxPacketSize), nil)
	if err := checkErr(d.Name, "could not query PIPE_MAX_PACKET_SIZE", errCode); err != nil {
		return false, err
	}

	if maxPacketSize == 0 && d.version.AtLeast(Version{3, 0}) {
		return false, nil
	}
	return true, nil
}

// Get the max number of pipe arguments that a kernel may declare.
func (d *Device) MaxPipeArgs() (uint32, error) {
	var maxArgs uint32
	errCode := cl.GetDeviceInfo(d.Id, deviceMaxPipeArgs, 4, unsafe.Pointer(&maxArgs), nil)
	if err := checkErr(d.Name, "could not query MAX_PIPE_ARGS", errCode); err != nil {
		return 0, err
	}
	return maxArgs, nil
}

// Create an empty buffer.
func (d *Device) Buffer(name string) *Buffer {
	return &Buffer{
		device: d,
		name:   name,
	}
}

// Query a string-valued device property.
func (d *Device) infoString(paramName string, query infoQuery) (string, error) {
	return queryString(d.Name, "could not query "+paramName, query)
}

// Detect device speed.
func (d *Device) detectSpeed() error {
	// Calculate theoretical device speed as: compute units * 2ops/cycle * clock speed
	errCode := cl.GetDeviceInfo(d.Id, cl.DEVICE_MAX_COMPUTE_UNITS, 4, unsafe.Pointer(&d.compUnits), nil)
	if err := checkErr(d.Name, "could not query MAX_COMPUTE_UNITS", errCode); err != nil {
		return err
	}
	errCode = cl.GetDeviceInfo(d.Id, cl.DEVICE_MAX_CLOCK_FREQUENCY, 4, unsafe.Pointer(&d.clockSpeed), nil)
	if err := checkErr(d.Name, "could not query MAX_CLOCK_FREQUENCY", errCode); err != nil {
		return err
	}
	d.Speed = d.compUnits * d.clockSpeed / 1000

	return nil
}
