package axis

import (
	"math"

	"github.com/axlemotion/axle/controller"
	"github.com/axlemotion/axle/fault"
)

// beginHoming primes the homing sub-machine: the controller drives toward
// the min endstop in velocity mode and the closed-loop state that follows in
// the chain performs the actual search.
func (a *Axis) beginHoming() bool {
	if err := a.controller.StartHoming(); err != nil {
		a.logger.Warnw("controller rejected homing", "error", err)
		return false
	}
	a.homing = homingState{
		phase:         HomingSearching,
		findingMin:    true,
		dwellDeadline: a.loopCount.Load() + a.minEndstop.MinHomingCycles(),
	}
	a.homingPhase.Store(int32(HomingSearching))
	return true
}

// closedLoopMode regulates off encoder feedback and hosts the homing
// sub-machine. Outside of homing, a pressed enabled endstop is fatal.
type closedLoopMode struct {
	a *Axis
}

func (m *closedLoopMode) name() string { return "closed_loop_control" }

func (m *closedLoopMode) cycle() bool {
	a := m.a

	// estimators were already updated in the loop prefix
	current, err := a.controller.Update(a.encoder.PosEstimate(), a.encoder.VelEstimate())
	if err != nil {
		a.setFault(fault.ControllerFailed)
		a.logger.Warnw("controller update failed", "error", err)
		return false
	}
	if err := a.motor.Update(current, a.encoder.Phase()); err != nil {
		a.setFault(fault.MotorFailed)
		a.logger.Warnw("motor update failed", "error", err)
		return false
	}

	switch a.homing.phase {
	case HomingSearching:
		m.searchEndstops()
	case HomingMoveToZero:
		m.moveToZero()
	default:
		// Plain closed-loop operation: endstop presses are faults.
		if a.minEndstop.Enabled() && a.minEndstop.State() {
			a.setFault(fault.MinEndstopPressed)
			return false
		}
		if a.maxEndstop.Enabled() && a.maxEndstop.State() {
			a.setFault(fault.MaxEndstopPressed)
			return false
		}
	}
	return true
}

// searchEndstops advances the homing search: min endstop first, then max if
// one is enabled. A physical endstop is found by its debounced press; a
// virtual one by a velocity stall after the minimum dwell.
func (m *closedLoopMode) searchEndstops() {
	a := m.a
	es := a.minEndstop
	if !a.homing.findingMin {
		es = a.maxEndstop
	}

	stalled := math.Abs(a.encoder.VelEstimate()) <= es.StallVelTolerance()
	dwellDone := a.loopCount.Load() >= a.homing.dwellDeadline
	foundEnd := !es.Physical() && stalled && dwellDone

	if !es.State() && !foundEnd {
		return
	}

	if a.homing.findingMin {
		a.homing.minHomeRef = a.encoder.ShadowCount()
		a.homing.findingMin = false
		a.homing.dwellDeadline = a.loopCount.Load() + a.maxEndstop.MinHomingCycles()

		if a.maxEndstop.Enabled() {
			// reverse toward the max endstop with a clean integrator
			a.controller.ResetVelIntegrator()
			a.controller.SetVelSetpoint(a.controller.HomingSpeed(), 0.0)
			return
		}

		// Single-endstop homing: the configured offset is the datum.
		offset := a.minEndstop.Config().Offset
		a.minEndstop.SetOffsetFromHome(offset)
		a.encoder.SetLinearCount(offset)
		a.commandMoveToZero()
		return
	}

	// Max endstop found: total travel is the raw-count delta between finds.
	totalTravel := a.encoder.ShadowCount() - a.homing.minHomeRef
	minCfg := a.minEndstop.Config()
	if minCfg.HomePercentage > 0 {
		minOffset := int64(-float64(totalTravel) * minCfg.HomePercentage / 100.0)
		a.minEndstop.SetOffsetFromHome(minOffset)
		a.maxEndstop.SetOffsetFromHome(totalTravel + minOffset)
		a.encoder.SetLinearCount(-minOffset)
	} else {
		a.minEndstop.SetOffsetFromHome(minCfg.Offset)
		a.maxEndstop.SetOffsetFromHome(totalTravel + minCfg.Offset)
		a.encoder.SetLinearCount(minCfg.Offset)
	}
	a.commandMoveToZero()
}

func (a *Axis) commandMoveToZero() {
	a.controller.SetPosSetpoint(0.0, 0.0, 0.0)
	a.homing.phase = HomingMoveToZero
	a.homingPhase.Store(int32(HomingMoveToZero))
}

// moveToZero replans a trapezoidal move to the zero datum every cycle the
// min endstop stays unpressed. Replanning is idempotent; once the endstop
// releases and the move completes the plan converges to a null trajectory.
func (m *closedLoopMode) moveToZero() {
	a := m.a
	if a.minEndstop.State() {
		return
	}
	speed := a.controller.HomingSpeed()
	err := a.planner.PlanTrapezoidal(
		0.0,
		a.encoder.PosEstimate(),
		a.encoder.VelEstimate(),
		speed,
		speed/4.0,
		speed/4.0,
	)
	if err != nil {
		a.logger.Warnw("homing trajectory plan failed", "error", err)
		return
	}
	a.controller.SetTrajStartLoopCount(a.loopCount.Load())
	a.controller.SetControlMode(controller.TrajectoryControl)
}

func (a *Axis) runClosedLoopControl() bool {
	a.setStepDirEnabled(a.cfg.EnableStepDir)
	a.runControlLoop(&closedLoopMode{a: a})
	a.setStepDirEnabled(false)
	return !a.Faults().Any()
}
