// Package motor defines the contract the axis core expects from a motor
// drive. The FOC math and gate-driver handling behind it are not part of
// this module.
package motor

import (
	"context"

	"github.com/axlemotion/axle/fault"
)

// A Motor is the per-axis motor drive.
type Motor interface {

	// Update commands the drive to realize a phase current magnitude (amps)
	// at an electrical phase angle (radians). Called once per control cycle.
	Update(current, phase float64) error

	// Arm enables the PWM output stage. Fails if the drive is faulted or
	// not calibrated.
	Arm() error

	// Disarm floats all phases immediately. Safe to call from any state.
	Disarm()

	// RunCalibration measures phase resistance and inductance. Blocking;
	// honors ctx cancellation.
	RunCalibration(ctx context.Context) error

	// IsCalibrated reports whether a valid calibration is present.
	IsCalibrated() bool

	// Armed reports whether the PWM output stage is enabled.
	Armed() bool

	// CheckFaults returns the drive's self-detected fault bits for this
	// cycle. The axis ORs them into its latched fault mask.
	CheckFaults() fault.Error
}
