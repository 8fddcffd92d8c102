package device

import (
	"strings"
	"unsafe"

	"github.com/achilleasa/gopencl/v1.2/cl"
)

// Program info queries introduced in opencl 1.2 that are not exported by
// the bindings.
const (
	programNumKernels  = 0x1167
	programKernelNames = 0x1168
)

// A compiled opencl program.
type Program struct {
	device        *Device
	programHandle cl.Program
}

// Compile the supplied source for this device. If the build fails the
// returned *Error carries the compiler build log in its Detail field.
func (d *Device) BuildProgram(source, options string) (*Program, error) {
	var errCode cl.ErrorCode

	if d.ctx == nil {
		return nil, ErrNotInitialized
	}

	progSrc := cl.Str(source + "\x00")
	handle := cl.CreateProgramWithSource(
		*d.ctx,
		1,
		&progSrc,
		nil,
		(*int32)(&errCode),
	)
	if errCode != cl.SUCCESS {
		return nil, checkErr(d.Name, "could not create program", errCode)
	}

	errCode = cl.BuildProgram(
		handle,
		1,
		&d.Id,
		cl.Str(options+"\x00"),
		nil,
		nil,
	)
	if errCode != cl.SUCCESS {
		buildLog, _ := queryString(d.Name, "could not query PROGRAM_BUILD_LOG", func(size uint64, value unsafe.Pointer, sizeRet *uint64) cl.ErrorCode {
			return cl.GetProgramBuildInfo(handle, d.Id, cl.PROGRAM_BUILD_LOG, size, value, sizeRet)
		})
		cl.ReleaseProgram(handle)
		return nil, &Error{
			Device: d.Name,
			Op:     "could not build program",
			Code:   errCode,
			Detail: buildLog,
		}
	}

	return &Program{
		device:        d,
		programHandle: handle,
	}, nil
}

// Get the number of kernels declared by the program.
func (p *Program) NumKernels() (int, error) {
	var numKernels uint64
	errCode := cl.GetProgramInfo(p.programHandle, programNumKernels, 8, unsafe.Pointer(&numKernels), nil)
	if err := checkErr(p.device.Name, "could not query PROGRAM_NUM_KERNELS", errCode); err != nil {
		return 0, err
	}
	return int(numKernels), nil
}

// Get the names of the kernels declared by the program.
func (p *Program) KernelNames() ([]string, error) {
	names, err := queryString(p.device.Name, "could not query PROGRAM_KERNEL_NAMES", func(size uint64, value unsafe.Pointer, sizeRet *uint64) cl.ErrorCode {
		return cl.GetProgramInfo(p.programHandle, programKernelNames, size, value, sizeRet)
	})
	if err != nil {
		return nil, err
	}
	if names == "" {
		return nil, nil
	}
	return strings.Split(names, ";"), nil
}

// Load kernel by name.
func (p *Program) Kernel(name string) (*Kernel, error) {
	var errCode cl.ErrorCode
	kernelHandle := cl.CreateKernel(
		p.programHandle,
		cl.Str(name+"\x00"),
		(*int32)(&errCode),
	)
	if errCode != cl.SUCCESS {
		return nil, checkErr(p.device.Name, "could not load kernel "+name, errCode)
	}

	return &Kernel{
		device:       p.device,
		kernelHandle: kernelHandle,
		name:         name,
	}, nil
}

// Free the program.
func (p *Program) Release() {
	if p.programHandle != nil {
		cl.ReleaseProgram(p.programHandle)
		p.programHandle = nil
	}
}
