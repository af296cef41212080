package axis

import (
	"github.com/benbjohnson/clock"
	"go.uber.org/multierr"

	"github.com/axlemotion/axle/fault"
)

// runMode is one per-cycle control strategy. cycle advances one control
// cycle and reports whether the loop should continue.
type runMode interface {
	name() string
	cycle() bool
}

// runControlLoop iterates mode at the current-measurement rate until the
// mode stops, a fault latches, a new state is requested, or the axis shuts
// down. The cycle counter advances once per iteration regardless of outcome.
//
// A missed current-measurement deadline is fatal outside idle; idle has no
// real-time requirement and tolerates it. Accumulated faults likewise stop
// every run mode except idle, the safe state.
func (a *Axis) runControlLoop(mode runMode) {
	timer := a.clk.Timer(currentMeasTimeout)
	defer timer.Stop()

	for a.pendingRequest() == StateUndefined && a.cancelCtx.Err() == nil {
		idling := a.CurrentState() == StateIdle

		if !a.waitForCurrentMeas(timer) {
			if a.cancelCtx.Err() != nil {
				// shutdown, not a missed deadline
				return
			}
			a.loopCount.Add(1)
			if idling {
				continue
			}
			a.setFault(fault.CurrentMeasTimeout)
			a.logger.Warnw("current measurement deadline missed", "mode", mode.name())
			return
		}

		a.doUpdates()
		a.doChecks()
		if a.Faults().Any() {
			a.loopCount.Add(1)
			if idling {
				continue
			}
			return
		}

		cont := mode.cycle()
		a.loopCount.Add(1)
		if !cont {
			return
		}
	}
}

// waitForCurrentMeas blocks until the next current-measurement signal,
// bounded by currentMeasTimeout. Returns false on timeout or shutdown.
func (a *Axis) waitForCurrentMeas(timer *clock.Timer) bool {
	if !timer.Stop() {
		// drain a stale fire so Reset starts clean
		select {
		case <-timer.C:
		default:
		}
	}
	timer.Reset(currentMeasTimeout)
	select {
	case <-a.currentMeas:
		return true
	case <-timer.C:
		return false
	case <-a.cancelCtx.Done():
		return false
	}
}

// doUpdates runs the shared per-cycle estimator pass: encoder, sensorless
// estimator, and both endstop debounce filters. Update failures latch the
// corresponding fault bits.
func (a *Axis) doUpdates() {
	var errs error
	if err := a.encoder.Update(); err != nil {
		a.setFault(fault.EncoderFailed)
		errs = multierr.Combine(errs, err)
	}
	if err := a.sensorless.Update(); err != nil {
		a.setFault(fault.EstimatorFailed)
		errs = multierr.Combine(errs, err)
	}
	a.minEndstop.Update(a.cancelCtx)
	a.maxEndstop.Update(a.cancelCtx)
	if errs != nil {
		a.logger.Warnw("estimator update failed", "error", errs)
	}
}

// doChecks runs the per-cycle health checks: power stage, unexpected
// disarm, bus voltage, and subcomponent self-checks.
func (a *Axis) doChecks() {
	if !a.power.BrakeResistorArmed() {
		a.setFault(fault.BrakeResistorDisarmed)
	}
	if a.CurrentState() != StateIdle && !a.motor.Armed() {
		// motor got disarmed in something other than the idle loop
		a.setFault(fault.MotorDisarmed)
	}
	vbus := a.power.BusVoltage()
	if vbus < a.cfg.DCBusUndervoltageTripLevel {
		a.setFault(fault.DCBusUnderVoltage)
	}
	if vbus > a.cfg.DCBusOvervoltageTripLevel {
		a.setFault(fault.DCBusOverVoltage)
	}
	a.setFault(a.motor.CheckFaults())
	a.setFault(a.encoder.CheckFaults())
}
