package arginfo

import (
	"strings"
)

// Derive the type name the runtime should report for a declared type.
// Spellings using signed/unsigned are normalized to their short form
// ("unsigned char" -> "uchar", "signed" -> "int") and pointer types gain a
// trailing '*'.
func ExpectedTypeName(typeName string, pointer bool) string {
	var (
		baseType string
		unsigned bool
	)

	switch typeName {
	case "signed", "signed*":
		baseType = "int"
	case "unsigned", "unsigned*":
		baseType = "int"
		unsigned = true
	default:
		for _, token := range strings.Split(typeName, " ") {
			if strings.Contains(token, "unsigned") {
				unsigned = true
			}
			if !strings.Contains(token, "signed") {
				baseType = token
			}
		}
	}

	if unsigned {
		baseType = "u" + baseType
	}
	if pointer && !strings.HasSuffix(baseType, "*") {
		baseType += "*"
	}
	return baseType
}

// Derive the metadata the runtime should report for a generated argument.
func Expected(arg Arg, pointer bool) Arg {
	exp := arg
	exp.Source = GenerateArgument(arg)

	// By-value vector types are reported verbatim
	if pointer || !endsWithDigit(arg.TypeName) {
		exp.TypeName = ExpectedTypeName(arg.TypeName, pointer)
	}

	// Qualifiers only apply to the pointee
	if !pointer {
		exp.Qualifier = TypeNone
	}

	if arg.Address == AddressConstant {
		exp.Qualifier |= TypeConst
	}

	// Pipes live in the global address space and only report the pipe
	// qualifier.
	if arg.IsPipe() {
		exp.Address = AddressGlobal
		exp.Qualifier = TypePipe
	}

	return exp
}

func endsWithDigit(s string) bool {
	return s != "" && s[len(s)-1] >= '0' && s[len(s)-1] <= '9'
}
