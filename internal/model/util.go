package model

import "math"

func angleOf(dx, dy float64) float64 {
	return math.Atan2(dy, dx)
}
