package giochart

import (
	"math"

	"golang.org/x/exp/constraints"
)

type number interface {
	constraints.Integer | constraints.Float
}

func ceil[T number](a T) T {
	return T(math.Ceil(float64(a)))
}

func floor[T number](a T) T {
	return T(math.Floor(float64(a)))
}

func clamp[T number](v, lo, hi T) T {
	return max(lo, min(v, hi))
}
