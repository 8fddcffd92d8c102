package arginfo

import (
	"strings"

	"github.com/achilleasa/clconform/opencl/device"
)

// The max number of arguments packed into a generated kernel.
const DefaultMaxArgs = 128

var pipeVersion = device.Version{Major: 2, Minor: 0}

// The device properties that drive case generation.
type Env struct {
	Version      device.Version
	Caps         Capabilities
	AddressBits  uint32
	MaxParamSize uint64

	// Max arguments per generated kernel.
	MaxArgs int

	Images          bool
	ReadWriteImages bool
	Image3DWrites   bool

	Pipes       bool
	MaxPipeArgs int
}

// Query the properties of an initialized device.
func EnvFromDevice(dev *device.Device, maxArgs int) (Env, error) {
	var err error

	if maxArgs <= 0 {
		maxArgs = DefaultMaxArgs
	}

	env := Env{
		Version: dev.Version(),
		Caps: Capabilities{
			Long:   dev.SupportsLong(),
			Half:   dev.SupportsHalf(),
			Double: dev.SupportsDouble(),
		},
		MaxArgs:       maxArgs,
		Image3DWrites: dev.HasExtension("cl_khr_3d_image_writes"),
	}

	if env.AddressBits, err = dev.AddressBits(); err != nil {
		return env, err
	}
	if env.MaxParamSize, err = dev.MaxParameterSize(); err != nil {
		return env, err
	}
	if env.Images, err = dev.ImageSupport(); err != nil {
		return env, err
	}
	if env.Images {
		if env.ReadWriteImages, err = dev.ReadWriteImageSupport(); err != nil {
			return env, err
		}
	}
	if env.Pipes, err = dev.PipeSupport(); err != nil {
		return env, err
	}
	if env.Pipes {
		maxPipes, err := dev.MaxPipeArgs()
		if err != nil {
			return env, err
		}
		env.MaxPipeArgs = int(maxPipes)
	}

	return env, nil
}

// Get the options every program is built with. Devices that support pipes
// compile as opencl C 2.0 or 3.0 so that pipe arguments are accepted.
func (e Env) BuildOptions() string {
	opts := "-cl-kernel-arg-info"
	if e.Pipes && e.Version.AtLeast(pipeVersion) {
		if e.Version.AtLeast(device.Version{Major: 3, Minor: 0}) {
			opts += " -cl-std=CL3.0"
		} else {
			opts += " -cl-std=CL2.0"
		}
	}
	return opts
}

// Get the options required for kernels that use opencl C 2.0 features such
// as read_write images. Returns an empty string if the base options already
// select a language version.
func (e Env) CL20Options() string {
	if strings.Contains(e.BuildOptions(), "-cl-std=") {
		return ""
	}
	return "-cl-std=CL2.0"
}
