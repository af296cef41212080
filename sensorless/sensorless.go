// Package sensorless defines the contract for the sensorless position and
// velocity estimator used when no encoder feedback is available.
package sensorless

// An Estimator infers rotor state from phase currents alone.
type Estimator interface {

	// Update advances the estimate by one control cycle.
	Update() error

	// PLLPos returns the PLL-tracked position in electrical radians.
	PLLPos() float64

	// VelEstimate returns the estimated velocity in electrical rad/s.
	VelEstimate() float64

	// Phase returns the estimated electrical phase in radians.
	Phase() float64
}
