package axis

import "math"

// wrapPmPi wraps an angle to [-pi, pi).
func wrapPmPi(x float64) float64 {
	y := math.Mod(x+math.Pi, 2.0*math.Pi)
	if y < 0 {
		y += 2.0 * math.Pi
	}
	return y - math.Pi
}
