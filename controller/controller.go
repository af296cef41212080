// Package controller defines the contract for the position/velocity/current
// regulator that sits between the axis run modes and the motor drive.
package controller

// ControlMode selects which regulator stage drives the current setpoint.
type ControlMode int

// Control modes, lowest to highest level. Order matters: anything at
// PositionControl or above requires a position estimate and is rejected
// while sensorless.
const (
	VoltageControl ControlMode = iota
	CurrentControl
	VelocityControl
	PositionControl
	TrajectoryControl
)

func (m ControlMode) String() string {
	switch m {
	case VoltageControl:
		return "voltage"
	case CurrentControl:
		return "current"
	case VelocityControl:
		return "velocity"
	case PositionControl:
		return "position"
	case TrajectoryControl:
		return "trajectory"
	default:
		return "unknown"
	}
}

// A Controller regulates one axis.
type Controller interface {

	// Update produces the phase-current setpoint for this cycle from the
	// supplied position and velocity estimates.
	Update(pos, vel float64) (float64, error)

	// ControlMode returns the active control mode.
	ControlMode() ControlMode

	// SetControlMode switches the active control mode.
	SetControlMode(mode ControlMode)

	// SetPosSetpoint sets the position setpoint with velocity and current
	// feed-forward terms.
	SetPosSetpoint(pos, velFF, currentFF float64)

	// SetVelSetpoint sets the velocity setpoint with a current feed-forward
	// term.
	SetVelSetpoint(vel, currentFF float64)

	// AdjustPosSetpoint nudges the position setpoint by delta counts. Used
	// by the step/direction input.
	AdjustPosSetpoint(delta float64)

	// ResetVelIntegrator zeroes the velocity integrator current.
	ResetVelIntegrator()

	// StartHoming switches the controller into velocity mode at the
	// configured homing speed, toward the min endstop.
	StartHoming() error

	// HomingSpeed returns the configured homing speed in counts/s.
	HomingSpeed() float64

	// SetTrajStartLoopCount records the control cycle at which the active
	// trajectory began.
	SetTrajStartLoopCount(n uint64)

	// AllocateCoggingMap provisions the anti-cogging map for the given
	// encoder CPR. Called once at axis construction; an error disables the
	// feature rather than failing the axis.
	AllocateCoggingMap(size int) error
}
