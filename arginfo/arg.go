package arginfo

import (
	"fmt"
	"strings"

	"github.com/achilleasa/clconform/opencl/device"
)

// Generated arguments are named argumentN where N is the argument position.
const argNamePrefix = "argument"

// The metadata of a single kernel argument.
type Arg struct {
	Address   AddressQualifier
	Access    AccessQualifier
	Qualifier TypeQualifier
	TypeName  string
	Name      string

	// The argument declaration as it appears in the kernel source. Only
	// populated for expected values and used when reporting mismatches.
	Source string
}

// Create an argument for the given kernel position.
func NewArg(address AddressQualifier, access AccessQualifier, qualifier TypeQualifier, typeName string, index int) Arg {
	return Arg{
		Address:   address,
		Access:    access,
		Qualifier: qualifier,
		TypeName:  typeName,
		Name:      fmt.Sprintf("%s%d", argNamePrefix, index),
	}
}

// Convert the values reported by the runtime into an Arg.
func FromInfo(info device.ArgInfo) Arg {
	return Arg{
		Address:   AddressQualifier(info.Address),
		Access:    AccessQualifier(info.Access),
		Qualifier: TypeQualifier(info.TypeQualifier),
		TypeName:  info.TypeName,
		Name:      info.Name,
	}
}

// Return true if the argument is a pointer.
func (a Arg) IsPointer() bool {
	return strings.HasSuffix(a.TypeName, "*")
}

// Return true if the argument is a pipe.
func (a Arg) IsPipe() bool {
	return a.Qualifier.Has(TypePipe)
}

// Image and sampler objects always live in the global address space and
// must be declared without an address qualifier.
func (a Arg) isOpaque() bool {
	return strings.Contains(a.TypeName, "image") || strings.Contains(a.TypeName, "sampler")
}

// Compare against another argument; returns a description for every field
// that differs.
func (a Arg) Diff(actual Arg) []string {
	var diffs []string
	if actual.Address != a.Address {
		diffs = append(diffs, fmt.Sprintf("Address Qualifier: Expected: %s\t Actual: %s", a.Address, actual.Address))
	}
	if actual.Access != a.Access {
		diffs = append(diffs, fmt.Sprintf("Access Qualifier: Expected: %s\t Actual: %s", a.Access, actual.Access))
	}
	if actual.Qualifier != a.Qualifier {
		diffs = append(diffs, fmt.Sprintf("Type Qualifier: Expected: %s\t Actual: %s", a.Qualifier, actual.Qualifier))
	}
	if actual.TypeName != a.TypeName {
		diffs = append(diffs, fmt.Sprintf("Arg Type: Expected: %s\t Actual: %s", a.TypeName, actual.TypeName))
	}
	if actual.Name != a.Name {
		diffs = append(diffs, fmt.Sprintf("Arg Name: Expected: %s\t Actual: %s", a.Name, actual.Name))
	}
	return diffs
}
