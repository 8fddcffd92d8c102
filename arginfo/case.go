package arginfo

// The expected argument metadata of a kernel.
type KernelCase struct {
	Name string
	Args []Arg
}

// A program source and the expected metadata of every kernel it declares.
type Case struct {
	// A label used when reporting failures.
	Label string

	Source string

	// Build options appended to the base options.
	Options string

	Kernels []KernelCase

	// Set if the program declares image or sampler arguments.
	NeedsImages bool
}

// An argument awaiting a position in a generated kernel.
type argSpec struct {
	address   AddressQualifier
	access    AccessQualifier
	qualifier TypeQualifier
	typeName  string
	pointer   bool
	size      uint64
}

// Limits that trigger the emission of a generated kernel.
type batchLimits struct {
	// Max total parameter size in bytes.
	maxParamSize uint64

	// Max arguments per kernel.
	maxArgs int
}

// Pack argument specs into as few generated kernels as the limits allow.
// A kernel is emitted once adding the next argument would reach the max
// parameter size or the kernel already holds maxArgs arguments.
func batchArgs(label string, specs []argSpec, limits batchLimits, opts KernelOptions) []Case {
	var (
		cases     []Case
		args      []Arg
		expected  []Arg
		totalSize uint64
	)

	flush := func() {
		if len(args) == 0 {
			return
		}
		cases = append(cases, Case{
			Label:  label,
			Source: GenerateKernel(args, opts),
			Kernels: []KernelCase{
				{Name: KernelName, Args: expected},
			},
		})
		args, expected, totalSize = nil, nil, 0
	}

	for _, spec := range specs {
		if spec.size+totalSize >= limits.maxParamSize || (limits.maxArgs > 0 && len(args) == limits.maxArgs) {
			flush()
		}
		totalSize += spec.size

		arg := NewArg(spec.address, spec.access, spec.qualifier, spec.typeName, len(args))
		expected = append(expected, Expected(arg, spec.pointer))
		args = append(args, arg)
	}
	flush()

	return cases
}
