package mathfunc

import (
	"math/rand/v2"
	"unsafe"

	"golang.org/x/exp/constraints"
)

// Generate count values uniformly distributed in [min, max] with the
// special cases placed first. Floating point values are re-drawn while
// subnormal. The result is truncated to count values.
func GenerateInput[T constraints.Float | constraints.Integer](rng *rand.Rand, count int, min, max T, special []T) []T {
	var subnormal func(T) bool
	if isFloat[T]() {
		smallest := 0x1p-126
		if unsafe.Sizeof(min) == 8 {
			smallest = 0x1p-1022
		}
		subnormal = func(v T) bool {
			f := float64(v)
			return f != 0 && f > -smallest && f < smallest
		}
	}
	return generate(rng, count, min, max, special, subnormal)
}

func generate[T constraints.Float | constraints.Integer](rng *rand.Rand, count int, min, max T, special []T, subnormal func(T) bool) []T {
	input := make([]T, 0, count+len(special))
	input = append(input, special...)

	for len(input) < count {
		v := draw(rng, min, max)
		for subnormal != nil && subnormal(v) {
			v = draw(rng, min, max)
		}
		input = append(input, v)
	}

	return input[:count]
}

func draw[T constraints.Float | constraints.Integer](rng *rand.Rand, min, max T) T {
	if isFloat[T]() {
		lo, hi := float64(min), float64(max)
		return T(lo + rng.Float64()*(hi-lo))
	}
	return T(int64(min) + rng.Int64N(int64(max)-int64(min)+1))
}

func isFloat[T constraints.Float | constraints.Integer]() bool {
	var one T = 1
	return one/2 != 0
}

// Expand the special case lists of a function's inputs so every
// combination of special values is exercised. Empty lists are left empty.
func CombineSpecialCases(lists ...[]float64) [][]float64 {
	size := 0
	for _, list := range lists {
		if len(list) == 0 {
			continue
		}
		if size == 0 {
			size = 1
		}
		size *= len(list)
	}

	combined := make([][]float64, len(lists))
	if size == 0 {
		return combined
	}

	// The last non-empty list varies fastest.
	stride := size
	for i, list := range lists {
		if len(list) == 0 {
			continue
		}
		stride /= len(list)
		combined[i] = make([]float64, size)
		for idx := range combined[i] {
			combined[i][idx] = list[(idx/stride)%len(list)]
		}
	}
	return combined
}
