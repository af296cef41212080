// Package encoder defines the contract the axis core expects from the
// position encoder. Counting, index handling, and offset calibration are
// implemented with the board support code, outside this module.
package encoder

import (
	"context"

	"github.com/axlemotion/axle/fault"
)

// An Encoder tracks rotor position for one axis.
type Encoder interface {

	// Update advances the position and velocity estimates by one control
	// cycle. Called from the control-loop update pass.
	Update() error

	// RunIndexSearch turns the motor until the encoder index pulse is seen.
	// Blocking; honors ctx cancellation.
	RunIndexSearch(ctx context.Context) error

	// RunOffsetCalibration measures the encoder-to-phase offset. Blocking;
	// honors ctx cancellation.
	RunOffsetCalibration(ctx context.Context) error

	// SetLinearCount redefines the current raw count, shifting the
	// position estimate with it. Used by homing to establish the datum.
	SetLinearCount(count int64)

	// IsReady reports whether the encoder is calibrated and usable for
	// closed-loop control.
	IsReady() bool

	// PosEstimate returns the estimated position in counts.
	PosEstimate() float64

	// VelEstimate returns the estimated velocity in counts/s.
	VelEstimate() float64

	// Phase returns the estimated electrical phase in radians.
	Phase() float64

	// ShadowCount returns the raw cumulative count, unaffected by
	// SetLinearCount.
	ShadowCount() int64

	// CPR returns counts per revolution.
	CPR() int

	// UsesIndex reports whether an index pulse is configured.
	UsesIndex() bool

	// CheckFaults returns the encoder's self-detected fault bits for this
	// cycle.
	CheckFaults() fault.Error
}
