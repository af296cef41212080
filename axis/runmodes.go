package axis

import (
	"github.com/axlemotion/axle/controller"
	"github.com/axlemotion/axle/fault"
)

// sensorlessMode regulates off the sensorless estimator's position and
// velocity estimates. Position-mode control is impossible without a position
// reference and is rejected as a fault.
type sensorlessMode struct {
	a *Axis
}

func (m *sensorlessMode) name() string { return "sensorless_control" }

func (m *sensorlessMode) cycle() bool {
	a := m.a
	if a.controller.ControlMode() >= controller.PositionControl {
		a.setFault(fault.PosCtrlDuringSensorless)
		return false
	}

	// estimators were already updated in the loop prefix
	current, err := a.controller.Update(a.sensorless.PLLPos(), a.sensorless.VelEstimate())
	if err != nil {
		a.setFault(fault.ControllerFailed)
		a.logger.Warnw("controller update failed", "error", err)
		return false
	}
	if err := a.motor.Update(current, a.sensorless.Phase()); err != nil {
		a.setFault(fault.MotorFailed)
		a.logger.Warnw("motor update failed", "error", err)
		return false
	}
	return true
}

func (a *Axis) runSensorlessControl() bool {
	a.setStepDirEnabled(a.cfg.EnableStepDir)
	a.runControlLoop(&sensorlessMode{a: a})
	a.setStepDirEnabled(false)
	return !a.Faults().Any()
}

// idleMode keeps the loop paced while the motor is disarmed. It never stops
// on its own; only a new request ends idling.
type idleMode struct{}

func (m *idleMode) name() string { return "idle" }

func (m *idleMode) cycle() bool { return true }

// runIdle disarms the motor and parks the loop. Missed deadlines and
// accumulated faults are tolerated here; idle is the safe state.
func (a *Axis) runIdle() {
	a.motor.Disarm()
	a.runControlLoop(&idleMode{})
}
