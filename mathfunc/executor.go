package mathfunc

import (
	"strconv"

	"github.com/achilleasa/clconform/opencl/device"
	"github.com/achilleasa/gopencl/v1.2/cl"
	"github.com/pkg/errors"
	"github.com/x448/float16"
)

// Runs generated kernels. Inputs hold one slice per kernel input with one
// value per work item; the result holds Outputs values per work item.
type Executor interface {
	Execute(k Kernel, inputs [][]float64) ([]float64, error)
}

// An Executor that runs kernels on an opencl device. Input and output
// buffers are kept between executions and only grow.
type DeviceExecutor struct {
	dev      *device.Device
	programs map[string]*device.Program

	inputs []*device.Buffer
	output *device.Buffer
}

// Create an executor for an initialized device.
func NewDeviceExecutor(dev *device.Device) *DeviceExecutor {
	return &DeviceExecutor{
		dev:      dev,
		programs: make(map[string]*device.Program),
	}
}

// Release the programs and buffers allocated by the executor.
func (e *DeviceExecutor) Close() {
	for src, prog := range e.programs {
		prog.Release()
		delete(e.programs, src)
	}
	for _, buf := range e.inputs {
		buf.Release()
	}
	if e.output != nil {
		e.output.Release()
	}
}

// Compile the kernel source on first use and run it once per input value.
func (e *DeviceExecutor) Execute(k Kernel, inputs [][]float64) ([]float64, error) {
	if len(inputs) != k.Inputs || len(inputs) == 0 {
		return nil, errors.Errorf("mathfunc: kernel %s expects %d inputs; got %d", k.Name, k.Inputs, len(inputs))
	}
	count := len(inputs[0])

	prog, err := e.program(k.Source)
	if err != nil {
		return nil, err
	}

	kernel, err := prog.Kernel(k.Name)
	if err != nil {
		return nil, err
	}
	defer kernel.Release()

	args := make([]interface{}, 0, len(inputs)+1)
	for i, in := range inputs {
		buf, err := e.upload(i, encode(in, k.Precision, k.Kind), count*k.Precision.Size())
		if err != nil {
			return nil, errors.Wrapf(err, "mathfunc: uploading input %d of %s", i, k.Name)
		}
		args = append(args, buf)
	}

	outSize := count * k.Outputs * k.Precision.Size()
	if e.output == nil {
		e.output = e.dev.Buffer("output")
	}
	if e.output.Handle() == nil || e.output.Size() < outSize {
		if err = e.output.Allocate(outSize, cl.MEM_WRITE_ONLY); err != nil {
			return nil, err
		}
	}
	args = append(args, e.output)

	if err = kernel.SetArgs(args...); err != nil {
		return nil, err
	}

	if _, err = kernel.Exec1D(0, count, 0); err != nil {
		return nil, err
	}

	return readResults(e.output, count*k.Outputs, k.Precision)
}

// Copy data into the buffer of the input with the given index. The buffer
// is reallocated if it cannot hold size bytes.
func (e *DeviceExecutor) upload(index int, data interface{}, size int) (*device.Buffer, error) {
	for len(e.inputs) <= index {
		e.inputs = append(e.inputs, e.dev.Buffer("input"+strconv.Itoa(len(e.inputs)+1)))
	}

	buf := e.inputs[index]
	if buf.Handle() == nil || buf.Size() < size {
		if err := buf.AllocateToFitData(data, cl.MEM_READ_ONLY); err != nil {
			return nil, err
		}
	}
	if err := buf.WriteData(data, 0); err != nil {
		return nil, err
	}
	return buf, nil
}

func (e *DeviceExecutor) program(source string) (*device.Program, error) {
	if prog, exists := e.programs[source]; exists {
		return prog, nil
	}

	prog, err := e.dev.BuildProgram(source, "")
	if err != nil {
		return nil, err
	}
	e.programs[source] = prog
	return prog, nil
}

// Convert host values to a slice with the device representation of the
// given precision.
func encode(values []float64, p Precision, kind InputKind) interface{} {
	switch {
	case kind == UintInput && p == Half:
		out := make([]uint16, len(values))
		for i, v := range values {
			out[i] = uint16(v)
		}
		return out
	case kind == UintInput && p == Double:
		out := make([]uint64, len(values))
		for i, v := range values {
			out[i] = uint64(v)
		}
		return out
	case kind == UintInput:
		out := make([]uint32, len(values))
		for i, v := range values {
			out[i] = uint32(v)
		}
		return out
	case p == Half:
		out := make([]float16.Float16, len(values))
		for i, v := range values {
			out[i] = float16.Fromfloat32(float32(roundHalf(v)))
		}
		return out
	case p == Double:
		return values
	}

	out := make([]float32, len(values))
	for i, v := range values {
		out[i] = float32(v)
	}
	return out
}

func readResults(buf *device.Buffer, count int, p Precision) ([]float64, error) {
	out := make([]float64, count)
	switch p {
	case Half:
		raw := make([]float16.Float16, count)
		if err := buf.ReadData(0, 0, count*p.Size(), raw); err != nil {
			return nil, err
		}
		for i, v := range raw {
			out[i] = float64(v.Float32())
		}
	case Double:
		if err := buf.ReadData(0, 0, count*p.Size(), out); err != nil {
			return nil, err
		}
	default:
		raw := make([]float32, count)
		if err := buf.ReadData(0, 0, count*p.Size(), raw); err != nil {
			return nil, err
		}
		for i, v := range raw {
			out[i] = float64(v)
		}
	}
	return out, nil
}
