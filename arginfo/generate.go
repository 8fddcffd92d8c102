package arginfo

var imageTypes = []string{
	"image2d_t", "image3d_t", "image2d_array_t",
	"image1d_t", "image1d_buffer_t", "image1d_array_t",
}

// Generate kernels covering every address space, const/volatile/restrict
// combination and data type. Private arguments are passed by value and all
// other address spaces by pointer.
func ScalarVectorCases(env Env) []Case {
	var specs []argSpec

	typeArgs := TypeArguments(env.Caps)
	for _, address := range addressQualifiers {
		pointer := address != AddressPrivate

		for _, qualifier := range typeQualifiers {
			// restrict only applies to pointers
			if qualifier.Has(TypeRestrict) && !pointer {
				continue
			}

			for _, typeName := range typeArgs {
				if !pointer && typeName == "void" {
					continue
				}
				if pointer {
					typeName += "*"
				}

				specs = append(specs, argSpec{
					address:   address,
					access:    AccessNone,
					qualifier: qualifier,
					typeName:  typeName,
					pointer:   pointer,
					size:      ParamSize(typeName, env.AddressBits, false),
				})
			}
		}
	}

	return batchArgs(
		"scalar/vector",
		specs,
		batchLimits{maxParamSize: env.MaxParamSize, maxArgs: env.MaxArgs},
		KernelOptions{Half: env.Caps.Half},
	)
}

// Generate one kernel per image type and access qualifier. Writes to 3D
// images need cl_khr_3d_image_writes and read_write images need an opencl
// C 2.0 compiler.
func ImageCases(env Env) []Case {
	var cases []Case

	for _, access := range []AccessQualifier{AccessReadWrite, AccessReadOnly, AccessWriteOnly} {
		if access == AccessReadWrite && !env.ReadWriteImages {
			continue
		}

		isWrite := access == AccessWriteOnly || access == AccessReadWrite
		for _, imageType := range imageTypes {
			if imageType == "image3d_t" && isWrite && !env.Image3DWrites {
				continue
			}

			arg := NewArg(AddressGlobal, access, TypeNone, imageType, 0)
			c := Case{
				Label:       "image " + access.Keyword() + " " + imageType,
				Source:      GenerateKernel([]Arg{arg}, KernelOptions{Image3DWrites: env.Image3DWrites}),
				Kernels:     []KernelCase{{Name: KernelName, Args: []Arg{Expected(arg, false)}}},
				NeedsImages: true,
			}
			if access == AccessReadWrite {
				c.Options = env.CL20Options()
			}
			cases = append(cases, c)
		}
	}

	return cases
}

// Generate a kernel with a single sampler argument.
func SamplerCases(env Env) []Case {
	arg := NewArg(AddressPrivate, AccessNone, TypeNone, "sampler_t", 0)
	return []Case{
		{
			Label:       "sampler",
			Source:      GenerateKernel([]Arg{arg}, KernelOptions{}),
			Kernels:     []KernelCase{{Name: KernelName, Args: []Arg{Expected(arg, false)}}},
			NeedsImages: true,
		},
	}
}

// Generate kernels with pipe arguments of every data type. Kernels are
// limited to the max number of pipe arguments the device accepts.
func PipeCases(env Env) []Case {
	var specs []argSpec

	typeArgs := TypeArguments(env.Caps)
	for _, qualifier := range pipeQualifiers {
		for _, access := range []AccessQualifier{AccessReadOnly, AccessWriteOnly} {
			for _, typeName := range typeArgs {
				if typeName == "void" {
					continue
				}

				specs = append(specs, argSpec{
					address:   AddressPrivate,
					access:    access,
					qualifier: qualifier,
					typeName:  typeName,
					size:      ParamSize(typeName, env.AddressBits, true),
				})
			}
		}
	}

	return batchArgs(
		"pipe",
		specs,
		batchLimits{maxParamSize: env.MaxParamSize, maxArgs: env.MaxPipeArgs},
		KernelOptions{},
	)
}

// Generate the kernel used by the boundary checks: a single global int
// pointer named argument0.
func BoundaryCase() Case {
	arg := NewArg(AddressGlobal, AccessNone, TypeNone, "int*", 0)
	return Case{
		Label:   "boundary",
		Source:  GenerateKernel([]Arg{arg}, KernelOptions{}),
		Kernels: []KernelCase{{Name: KernelName, Args: []Arg{Expected(arg, true)}}},
	}
}
