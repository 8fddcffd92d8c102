package arginfo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQualifierStrings(t *testing.T) {
	assert.Equal(t, "GLOBAL", AddressGlobal.String())
	assert.Equal(t, "constant", AddressConstant.Keyword())
	assert.Equal(t, "UNKNOWN(0x1)", AddressQualifier(1).String())

	assert.Equal(t, "NONE", AccessNone.String())
	assert.Equal(t, "", AccessNone.Keyword())
	assert.Equal(t, "read_write", AccessReadWrite.Keyword())
}

func TestTypeQualifier(t *testing.T) {
	type spec struct {
		q       TypeQualifier
		prefix  string
		postfix string
		str     string
	}

	specs := []spec{
		{TypeNone, "", "", "NONE"},
		{TypeConst, "const ", "", "CONST"},
		{TypeConst | TypeVolatile | TypeRestrict, "const volatile ", "restrict", "CONST RESTRICT VOLATILE"},
		{TypeVolatile | TypePipe, "volatile pipe ", "", "VOLATILE PIPE"},
		{TypeConst | 0x40, "const ", "", "CONST 0x40"},
	}

	for specIndex, s := range specs {
		assert.Equal(t, s.prefix, s.q.Prefix(), "[spec %d]", specIndex)
		assert.Equal(t, s.postfix, s.q.Postfix(), "[spec %d]", specIndex)
		assert.Equal(t, s.str, s.q.String(), "[spec %d]", specIndex)
	}
}
