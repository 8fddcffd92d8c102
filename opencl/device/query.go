package device

import (
	"strings"
	"unsafe"

	"github.com/achilleasa/gopencl/v1.2/cl"
)

// A clGet*Info call with the object and parameter name already bound.
type infoQuery func(size uint64, value unsafe.Pointer, sizeRet *uint64) cl.ErrorCode

// Run a two-step string query: fetch the value length and then the value.
// The trailing NUL terminator is stripped.
func queryString(devName, op string, query infoQuery) (string, error) {
	var dataLen uint64
	if err := checkErr(devName, op, query(0, nil, &dataLen)); err != nil {
		return "", err
	}
	if dataLen == 0 {
		return "", nil
	}

	data := make([]byte, dataLen)
	if err := checkErr(devName, op, query(dataLen, unsafe.Pointer(&data[0]), nil)); err != nil {
		return "", err
	}
	return strings.TrimRight(string(data), "\x00"), nil
}
