package arginfo

import (
	"strconv"
	"strings"
)

// Optional data types supported by a device.
type Capabilities struct {
	Long   bool
	Half   bool
	Double bool
}

var (
	scalarTypes = []string{
		"char", "short", "int", "float",
		"void", "uchar", "unsigned char", "ushort",
		"unsigned short", "uint", "unsigned int", "char unsigned",
		"short unsigned", "int unsigned", "signed short", "signed int",
		"signed long", "short signed", "int signed", "signed",
		"unsigned",
	}

	longScalarTypes = []string{"long", "ulong", "unsigned long", "long unsigned", "long signed"}

	vectorBaseTypes = []string{"char", "uchar", "short", "ushort", "int", "uint", "float"}

	vectorWidths = []int{2, 3, 4, 8, 16}

	scalarSizes = map[string]uint64{
		"char":   1,
		"uchar":  1,
		"short":  2,
		"ushort": 2,
		"half":   2,
		"int":    4,
		"uint":   4,
		"float":  4,
		"long":   8,
		"ulong":  8,
		"double": 8,
	}
)

// List every scalar spelling and vector type that should be exercised on a
// device with the given capabilities.
func TypeArguments(caps Capabilities) []string {
	types := append([]string(nil), scalarTypes...)

	vectorTypes := append([]string(nil), vectorBaseTypes...)
	if caps.Long {
		types = append(types, longScalarTypes...)
		vectorTypes = append(vectorTypes, "long", "ulong")
	}
	if caps.Half {
		vectorTypes = append(vectorTypes, "half")
	}
	if caps.Double {
		vectorTypes = append(vectorTypes, "double")
	}

	for _, vectorType := range vectorTypes {
		for _, width := range vectorWidths {
			types = append(types, vectorType+strconv.Itoa(width))
		}
	}
	return types
}

// Calculate the number of bytes an argument of the given type occupies in
// the kernel parameter block. Pointers and pipes occupy a device pointer
// and 3-component vectors are padded to 4 components.
func ParamSize(typeName string, addressBits uint32, pipe bool) uint64 {
	if pipe || strings.HasSuffix(typeName, "*") {
		return uint64(addressBits / 8)
	}

	normalized := ExpectedTypeName(typeName, false)
	base := strings.TrimRight(normalized, "0123456789")
	width := uint64(1)
	if base != normalized {
		n, _ := strconv.ParseUint(normalized[len(base):], 10, 32)
		width = n
		if width == 3 {
			width = 4
		}
	}

	return scalarSizes[base] * width
}
