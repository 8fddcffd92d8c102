package device

import (
	"fmt"
	"reflect"
	"time"
	"unsafe"

	"github.com/achilleasa/gopencl/v1.2/cl"
)

// Kernel argument info query names.
const (
	KernelArgAddressQualifier = 0x1196
	KernelArgAccessQualifier  = 0x1197
	KernelArgTypeName         = 0x1198
	KernelArgTypeQualifier    = 0x1199
	KernelArgName             = 0x119A
)

// Metadata reported by clGetKernelArgInfo for a single kernel argument.
type ArgInfo struct {
	Address       uint32
	Access        uint32
	TypeQualifier uint64
	TypeName      string
	Name          string
}

// A wrapper around opencl kernelHandles.
type Kernel struct {
	device       *Device
	kernelHandle cl.Kernel
	name         string

	// kernelHandle workgroup sizes and offsets
	offsets         [1]uint64
	globalWorkSizes [1]uint64
	localWorkSizes  [1]uint64
}

// Get the kernel name.
func (k *Kernel) Name() string {
	return k.name
}

// Free any allocated resources used by this kernel.
func (k *Kernel) Release() {
	if k.kernelHandle != nil {
		cl.ReleaseKernel(k.kernelHandle)
		k.kernelHandle = nil
	}
}

// Query the metadata of the argument at the given index. The program must
// have been built with -cl-kernel-arg-info.
func (k *Kernel) ArgInfo(index int) (ArgInfo, error) {
	var info ArgInfo
	argIndex := uint32(index)

	errCode := cl.GetKernelArgInfo(k.kernelHandle, argIndex, KernelArgAddressQualifier, 4, unsafe.Pointer(&info.Address), nil)
	if err := k.argErr(index, "ADDRESS_QUALIFIER", errCode); err != nil {
		return info, err
	}

	errCode = cl.GetKernelArgInfo(k.kernelHandle, argIndex, KernelArgAccessQualifier, 4, unsafe.Pointer(&info.Access), nil)
	if err := k.argErr(index, "ACCESS_QUALIFIER", errCode); err != nil {
		return info, err
	}

	errCode = cl.GetKernelArgInfo(k.kernelHandle, argIndex, KernelArgTypeQualifier, 8, unsafe.Pointer(&info.TypeQualifier), nil)
	if err := k.argErr(index, "TYPE_QUALIFIER", errCode); err != nil {
		return info, err
	}

	var err error
	info.TypeName, err = queryString(k.device.Name, fmt.Sprintf("could not query TYPE_NAME of arg %d for kernel %s", index, k.name), func(size uint64, value unsafe.Pointer, sizeRet *uint64) cl.ErrorCode {
		return cl.GetKernelArgInfo(k.kernelHandle, argIndex, KernelArgTypeName, size, value, sizeRet)
	})
	if err != nil {
		return info, err
	}

	info.Name, err = queryString(k.device.Name, fmt.Sprintf("could not query NAME of arg %d for kernel %s", index, k.name), func(size uint64, value unsafe.Pointer, sizeRet *uint64) cl.ErrorCode {
		return cl.GetKernelArgInfo(k.kernelHandle, argIndex, KernelArgName, size, value, sizeRet)
	})
	if err != nil {
		return info, err
	}

	return info, nil
}

// Run a size-only argument info query: the value pointer is nil and only
// the size of the value that would be returned is reported.
func (k *Kernel) ArgInfoSize(index int, param uint32) (uint64, error) {
	var (
		size     uint64
		errCode  cl.ErrorCode
		argIndex = uint32(index)
	)
	switch param {
	case KernelArgAddressQualifier:
		errCode = cl.GetKernelArgInfo(k.kernelHandle, argIndex, KernelArgAddressQualifier, 0, nil, &size)
	case KernelArgAccessQualifier:
		errCode = cl.GetKernelArgInfo(k.kernelHandle, argIndex, KernelArgAccessQualifier, 0, nil, &size)
	case KernelArgTypeName:
		errCode = cl.GetKernelArgInfo(k.kernelHandle, argIndex, KernelArgTypeName, 0, nil, &size)
	case KernelArgTypeQualifier:
		errCode = cl.GetKernelArgInfo(k.kernelHandle, argIndex, KernelArgTypeQualifier, 0, nil, &size)
	case KernelArgName:
		errCode = cl.GetKernelArgInfo(k.kernelHandle, argIndex, KernelArgName, 0, nil, &size)
	default:
		// CL_INVALID_VALUE
		errCode = -30
	}
	if err := k.argErr(index, fmt.Sprintf("0x%X", param), errCode); err != nil {
		return 0, err
	}
	return size, nil
}

func (k *Kernel) argErr(index int, param string, errCode cl.ErrorCode) error {
	return checkErr(k.device.Name, fmt.Sprintf("could not query %s of arg %d for kernel %s", param, index, k.name), errCode)
}

// Bind arguments to kernelHandle.
func (k *Kernel) SetArgs(args ...interface{}) error {
	var errCode cl.ErrorCode
	for argIndex, arg := range args {
		// We can't use the captured type from the switch
		// like switch t := arg.(type) as we get back an
		// interface and we need to obtain a pointer to the underlying data.
		switch arg.(type) {
		case *Buffer:
			bufHandle := arg.(*Buffer).Handle()
			errCode = cl.SetKernelArg(k.kernelHandle, uint32(argIndex), 8, unsafe.Pointer(&bufHandle))
		case int32:
			v := arg.(int32)
			errCode = cl.SetKernelArg(k.kernelHandle, uint32(argIndex), 4, unsafe.Pointer(&v))
		case uint32:
			v := arg.(uint32)
			errCode = cl.SetKernelArg(k.kernelHandle, uint32(argIndex), 4, unsafe.Pointer(&v))
		case uint16:
			v := arg.(uint16)
			errCode = cl.SetKernelArg(k.kernelHandle, uint32(argIndex), 2, unsafe.Pointer(&v))
		case float32:
			v := arg.(float32)
			errCode = cl.SetKernelArg(k.kernelHandle, uint32(argIndex), 4, unsafe.Pointer(&v))
		case float64:
			v := arg.(float64)
			errCode = cl.SetKernelArg(k.kernelHandle, uint32(argIndex), 8, unsafe.Pointer(&v))
		default:
			return fmt.Errorf(
				"opencl device (%s): could not set arg %d for kernel %s; unsupported arg type: %s",
				k.device.Name,
				argIndex,
				k.name,
				reflect.TypeOf(arg).String(),
			)
		}

		if err := checkErr(k.device.Name, fmt.Sprintf("could not set arg %d for kernel %s", argIndex, k.name), errCode); err != nil {
			return err
		}
	}

	return nil
}

// Execute 1D kernelHandle. If localWorSize is equal to 0 then the opencl implementation
// will pick the optimal worksize split for the underlying hardware.
func (k *Kernel) Exec1D(offset, globalWorkSize, localWorkSize int) (time.Duration, error) {
	var errCode cl.ErrorCode
	var offsetPtr *uint64 = nil
	var localSizePtr *uint64 = nil

	// Setup work params
	if offset > 0 {
		k.offsets[0] = uint64(offset)
		offsetPtr = (*uint64)(unsafe.Pointer(&k.offsets[0]))
	}
	k.globalWorkSizes[0] = uint64(globalWorkSize)
	if localWorkSize != 0 {
		k.localWorkSizes[0] = uint64(localWorkSize)

		localSizePtr = (*uint64)(unsafe.Pointer(&k.localWorkSizes[0]))
	}

	// Run kernelHandle
	tick := time.Now()
	errCode = cl.EnqueueNDRangeKernel(
		k.device.cmdQueue,
		k.kernelHandle,
		1,
		offsetPtr,
		(*uint64)(unsafe.Pointer(&k.globalWorkSizes[0])),
		localSizePtr,
		0,
		nil,
		nil,
	)
	if err := checkErr(k.device.Name, "unable to execute kernel "+k.name, errCode); err != nil {
		return time.Duration(0), err
	}

	// Wait for the kernelHandle to complete
	errCode = cl.Finish(k.device.cmdQueue)
	if err := checkErr(k.device.Name, fmt.Sprintf("kernel %s did not complete successfully", k.name), errCode); err != nil {
		return time.Duration(0), err
	}

	return time.Since(tick), nil
}
