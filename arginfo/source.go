package arginfo

import (
	"strings"
)

// The name of every generated kernel.
const KernelName = "get_kernel_arg_info"

// Extensions to enable in a generated kernel.
type KernelOptions struct {
	Image3DWrites bool
	Half          bool
}

// Render the declaration of a single argument.
func GenerateArgument(arg Arg) string {
	var address string
	if !arg.isOpaque() && !arg.IsPipe() {
		address = arg.Address.Keyword()
	}

	return address + " " +
		arg.Access.Keyword() + " " +
		arg.Qualifier.Prefix() + " " +
		arg.TypeName + " " +
		arg.Qualifier.Postfix() + " " +
		arg.Name
}

// Render a kernel named KernelName that declares the supplied arguments and
// has an empty body.
func GenerateKernel(args []Arg, opts KernelOptions) string {
	var src strings.Builder

	if opts.Image3DWrites {
		src.WriteString("#pragma OPENCL EXTENSION cl_khr_3d_image_writes: enable\n")
	}
	if opts.Half {
		src.WriteString("#pragma OPENCL EXTENSION cl_khr_fp16 : enable\n")
	}

	src.WriteString("kernel void " + KernelName + "(\n")
	for argIndex, arg := range args {
		src.WriteString(GenerateArgument(arg))
		if argIndex == len(args)-1 {
			src.WriteString("\n")
		} else {
			src.WriteString(",\n")
		}
	}
	src.WriteString("){}")

	return src.String()
}
