package mathfunc

import (
	"fmt"
	"strings"
)

// A kernel that evaluates a function over its inputs.
type Kernel struct {
	Name      string
	Source    string
	Precision Precision
	Kind      InputKind
	Inputs    int
	Outputs   int
}

// Get the name of the kernel that tests f.
func KernelName(f *Func) string {
	return "test_" + f.Name
}

// Get the names of the kernel input arguments.
func inputNames(arity int) []string {
	if arity == 1 {
		return []string{"input"}
	}
	names := make([]string, arity)
	for i := range names {
		names[i] = fmt.Sprintf("input%d", i+1)
	}
	return names
}

// Generate the opencl C source of the kernel that tests f with the given
// precision.
func GenerateKernel(f *Func, p Precision) Kernel {
	typeName := p.String()
	inType := typeName
	if f.Kind == UintInput {
		inType = uintType(p)
	}
	outType := typeName
	if f.Outputs > 1 {
		outType = fmt.Sprintf("%s%d", typeName, f.Outputs)
	}

	names := inputNames(f.Arity())

	var buf strings.Builder
	if ext := p.extension(); ext != "" {
		fmt.Fprintf(&buf, "#pragma OPENCL EXTENSION %s : enable\n", ext)
	}

	args := make([]string, 0, len(names)+1)
	for _, name := range names {
		args = append(args, fmt.Sprintf("global %s *%s", inType, name))
	}
	args = append(args, fmt.Sprintf("global %s *output", outType))
	fmt.Fprintf(&buf, "__kernel void %s(%s)\n{\n", KernelName(f), strings.Join(args, ", "))
	buf.WriteString("    size_t gid = get_global_id(0);\n")

	if f.Body != "" {
		fmt.Fprintf(&buf, f.Body, typeName)
	} else {
		calls := make([]string, len(names))
		for i, name := range names {
			calls[i] = name + "[gid]"
		}
		fmt.Fprintf(&buf, "    output[gid] = %s(%s);\n", f.Name, strings.Join(calls, ", "))
	}
	buf.WriteString("}\n")

	return Kernel{
		Name:      KernelName(f),
		Source:    buf.String(),
		Precision: p,
		Kind:      f.Kind,
		Inputs:    f.Arity(),
		Outputs:   f.Outputs,
	}
}

// Get the unsigned integer type with the same width as p.
func uintType(p Precision) string {
	switch p {
	case Half:
		return "ushort"
	case Double:
		return "ulong"
	}
	return "uint"
}
