package arginfo

import (
	"fmt"
	"strings"
)

// The address space of a kernel argument as reported by
// CL_KERNEL_ARG_ADDRESS_QUALIFIER.
type AddressQualifier uint32

// Supported address qualifiers.
const (
	AddressGlobal   AddressQualifier = 0x119B
	AddressLocal    AddressQualifier = 0x119C
	AddressConstant AddressQualifier = 0x119D
	AddressPrivate  AddressQualifier = 0x119E
)

// Address qualifiers in the order they are exercised.
var addressQualifiers = []AddressQualifier{
	AddressGlobal,
	AddressLocal,
	AddressConstant,
	AddressPrivate,
}

// Get the opencl C keyword for this address space.
func (a AddressQualifier) Keyword() string {
	switch a {
	case AddressGlobal:
		return "global"
	case AddressLocal:
		return "local"
	case AddressConstant:
		return "constant"
	case AddressPrivate:
		return "private"
	}
	return ""
}

// Implements Stringer.
func (a AddressQualifier) String() string {
	switch a {
	case AddressGlobal:
		return "GLOBAL"
	case AddressLocal:
		return "LOCAL"
	case AddressConstant:
		return "CONSTANT"
	case AddressPrivate:
		return "PRIVATE"
	}
	return fmt.Sprintf("UNKNOWN(0x%X)", uint32(a))
}

// The access qualifier of an image or pipe argument as reported by
// CL_KERNEL_ARG_ACCESS_QUALIFIER.
type AccessQualifier uint32

// Supported access qualifiers.
const (
	AccessReadOnly  AccessQualifier = 0x11A0
	AccessWriteOnly AccessQualifier = 0x11A1
	AccessReadWrite AccessQualifier = 0x11A2
	AccessNone      AccessQualifier = 0x11A3
)

// Get the opencl C keyword for this access qualifier. AccessNone has no
// keyword.
func (a AccessQualifier) Keyword() string {
	switch a {
	case AccessReadOnly:
		return "read_only"
	case AccessWriteOnly:
		return "write_only"
	case AccessReadWrite:
		return "read_write"
	}
	return ""
}

// Implements Stringer.
func (a AccessQualifier) String() string {
	switch a {
	case AccessReadOnly:
		return "READ_ONLY"
	case AccessWriteOnly:
		return "WRITE_ONLY"
	case AccessReadWrite:
		return "READ_WRITE"
	case AccessNone:
		return "NONE"
	}
	return fmt.Sprintf("UNKNOWN(0x%X)", uint32(a))
}

// The type qualifier bit set reported by CL_KERNEL_ARG_TYPE_QUALIFIER.
type TypeQualifier uint64

// Type qualifier bits.
const (
	TypeNone     TypeQualifier = 0
	TypeConst    TypeQualifier = 1 << 0
	TypeRestrict TypeQualifier = 1 << 1
	TypeVolatile TypeQualifier = 1 << 2
	TypePipe     TypeQualifier = 1 << 3
)

// Every const/volatile/restrict combination.
var typeQualifiers = []TypeQualifier{
	TypeNone,
	TypeConst,
	TypeVolatile,
	TypeRestrict,
	TypeConst | TypeVolatile,
	TypeConst | TypeRestrict,
	TypeVolatile | TypeRestrict,
	TypeConst | TypeVolatile | TypeRestrict,
}

// Qualifier combinations that may be applied to pipe arguments.
var pipeQualifiers = []TypeQualifier{
	TypePipe,
	TypeConst | TypePipe,
	TypeVolatile | TypePipe,
	TypeConst | TypeVolatile | TypePipe,
}

// Check whether all bits in other are set.
func (q TypeQualifier) Has(other TypeQualifier) bool {
	return q&other == other
}

// Get the qualifier keywords that precede the argument type.
func (q TypeQualifier) Prefix() string {
	var prefix string
	if q.Has(TypeConst) {
		prefix += "const "
	}
	if q.Has(TypeVolatile) {
		prefix += "volatile "
	}
	if q.Has(TypePipe) {
		prefix += "pipe "
	}
	return prefix
}

// Get the qualifier keywords that follow the argument type.
func (q TypeQualifier) Postfix() string {
	if q.Has(TypeRestrict) {
		return "restrict"
	}
	return ""
}

// Implements Stringer.
func (q TypeQualifier) String() string {
	if q == TypeNone {
		return "NONE"
	}

	var names []string
	if q.Has(TypeConst) {
		names = append(names, "CONST")
	}
	if q.Has(TypeRestrict) {
		names = append(names, "RESTRICT")
	}
	if q.Has(TypeVolatile) {
		names = append(names, "VOLATILE")
	}
	if q.Has(TypePipe) {
		names = append(names, "PIPE")
	}
	if rest := q &^ (TypeConst | TypeRestrict | TypeVolatile | TypePipe); rest != 0 {
		names = append(names, fmt.Sprintf("0x%X", uint64(rest)))
	}
	return strings.Join(names, " ")
}
