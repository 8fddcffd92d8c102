package arginfo

import (
	"github.com/achilleasa/clconform/opencl/device"
	"github.com/pkg/errors"
)

// A Builder that emulates a runtime. Programs are looked up by source.
type fakeBuilder struct {
	programs map[string]*fakeProgram
	options  []string
	buildErr error
}

func newFakeBuilder() *fakeBuilder {
	return &fakeBuilder{programs: make(map[string]*fakeProgram)}
}

// Register a program that reports exactly the expected metadata of c.
func (b *fakeBuilder) addConformant(c Case) *fakeProgram {
	prog := &fakeProgram{kernels: make(map[string][]device.ArgInfo)}
	for _, kc := range c.Kernels {
		prog.names = append(prog.names, kc.Name)
		infos := make([]device.ArgInfo, len(kc.Args))
		for i, arg := range kc.Args {
			infos[i] = device.ArgInfo{
				Address:       uint32(arg.Address),
				Access:        uint32(arg.Access),
				TypeQualifier: uint64(arg.Qualifier),
				TypeName:      arg.TypeName,
				Name:          arg.Name,
			}
		}
		prog.kernels[kc.Name] = infos
	}
	prog.numKernels = len(prog.names)
	b.programs[c.Source] = prog
	return prog
}

func (b *fakeBuilder) BuildProgram(source, options string) (Program, error) {
	b.options = append(b.options, options)
	if b.buildErr != nil {
		return nil, b.buildErr
	}
	prog, ok := b.programs[source]
	if !ok {
		return nil, errors.New("fake: unknown program source")
	}
	return prog, nil
}

type fakeProgram struct {
	numKernels int
	names      []string
	kernels    map[string][]device.ArgInfo
	nameSize   uint64
	sizeErr    error
	released   int
}

func (p *fakeProgram) NumKernels() (int, error)       { return p.numKernels, nil }
func (p *fakeProgram) KernelNames() ([]string, error) { return p.names, nil }
func (p *fakeProgram) Release()                       { p.released++ }

func (p *fakeProgram) Kernel(name string) (Kernel, error) {
	infos, ok := p.kernels[name]
	if !ok {
		return nil, errors.Errorf("fake: unknown kernel %s", name)
	}
	return &fakeKernel{prog: p, infos: infos}, nil
}

type fakeKernel struct {
	prog  *fakeProgram
	infos []device.ArgInfo
}

func (k *fakeKernel) Release() {}

func (k *fakeKernel) ArgInfo(index int) (device.ArgInfo, error) {
	if index >= len(k.infos) {
		return device.ArgInfo{}, errors.New("fake: INVALID_ARG_INDEX")
	}
	return k.infos[index], nil
}

func (k *fakeKernel) ArgInfoSize(index int, param uint32) (uint64, error) {
	if k.prog.sizeErr != nil {
		return 0, k.prog.sizeErr
	}
	if param == device.KernelArgName {
		if k.prog.nameSize != 0 {
			return k.prog.nameSize, nil
		}
		return uint64(len(k.infos[index].Name) + 1), nil
	}
	return 4, nil
}

// A device environment with no optional features.
func baseEnv() Env {
	return Env{
		Version:      device.Version{Major: 1, Minor: 2},
		AddressBits:  64,
		MaxParamSize: 1024,
		MaxArgs:      DefaultMaxArgs,
	}
}
