package arginfo

import (
	"github.com/achilleasa/clconform/opencl/device"
)

// A compiled program whose kernels can be introspected.
type Program interface {
	NumKernels() (int, error)
	KernelNames() ([]string, error)
	Kernel(name string) (Kernel, error)
	Release()
}

// A kernel whose argument metadata can be queried.
type Kernel interface {
	ArgInfo(index int) (device.ArgInfo, error)
	ArgInfoSize(index int, param uint32) (uint64, error)
	Release()
}

// Compiles opencl C sources.
type Builder interface {
	BuildProgram(source, options string) (Program, error)
}

type deviceBuilder struct {
	dev *device.Device
}

// Create a Builder that compiles programs on an initialized device.
func DeviceBuilder(dev *device.Device) Builder {
	return &deviceBuilder{dev: dev}
}

func (b *deviceBuilder) BuildProgram(source, options string) (Program, error) {
	prog, err := b.dev.BuildProgram(source, options)
	if err != nil {
		return nil, err
	}
	return &deviceProgram{prog}, nil
}

type deviceProgram struct {
	*device.Program
}

func (p *deviceProgram) Kernel(name string) (Kernel, error) {
	k, err := p.Program.Kernel(name)
	if err != nil {
		return nil, err
	}
	return k, nil
}
