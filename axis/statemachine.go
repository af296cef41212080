package axis

import (
	"context"
	"time"

	"go.viam.com/utils"

	"github.com/axlemotion/axle/fault"
)

// runStateMachine is the axis's forever loop: it consumes state requests,
// builds task chains, validates prerequisites, dispatches the head state,
// and falls back to idle on any failure. It exits only on shutdown.
func (a *Axis) runStateMachine(ctx context.Context) {
	if err := a.motor.Arm(); err != nil {
		a.logger.Warnw("initial motor arm failed", "error", err)
	}
	for ctx.Err() == nil {
		a.stateMachineIteration(ctx)
	}
	a.state.Store(int32(StateUndefined))
}

// stateMachineIteration runs one accept/validate/dispatch/advance pass.
func (a *Axis) stateMachineIteration(ctx context.Context) {
	if req := a.takeRequest(); req != StateUndefined {
		if err := a.buildTaskChain(req); err != nil {
			a.setFault(fault.ChainFull)
			a.logger.Errorw("state request rejected", "request", req.String(), "error", err)
		} else {
			// Auto-clear any invalid state error; other faults persist.
			a.clearFault(fault.InvalidState)
			a.homing = homingState{}
			a.homingPhase.Store(int32(HomingInactive))
		}
	}

	// Validate the head state before running it.
	head := a.chain.head()
	if head > StateMotorCalibration && !a.motor.IsCalibrated() {
		a.chain.setHead(StateUndefined)
		head = StateUndefined
	}
	if head > StateEncoderOffsetCalibration && !a.encoder.IsReady() {
		a.chain.setHead(StateUndefined)
		head = StateUndefined
	}
	a.state.Store(int32(head))

	var ok bool
	switch head {
	case StateMotorCalibration:
		ok = a.runPreemptible(ctx, "motor calibration", a.motor.RunCalibration)

	case StateEncoderIndexSearch:
		ok = a.runPreemptible(ctx, "encoder index search", a.encoder.RunIndexSearch)

	case StateEncoderOffsetCalibration:
		ok = a.runPreemptible(ctx, "encoder offset calibration", a.encoder.RunOffsetCalibration)

	case StateHoming:
		ok = a.beginHoming()

	case StateSensorlessControl:
		ok = a.runSensorlessSpinUp()
		if ok {
			ok = a.runSensorlessControl()
		}

	case StateClosedLoopControl:
		ok = a.runClosedLoopControl()

	case StateIdle:
		a.runIdle()
		// done with idling - try to arm the motor
		ok = !a.Faults().Any() && a.motor.Arm() == nil

	default:
		a.setFault(fault.InvalidState)
		ok = false
	}

	if !ok {
		// Abandon the rest of the chain and go to the safe state.
		a.chain.resetTo(StateIdle, StateUndefined)
	} else {
		a.chain.advance()
	}
}

// buildTaskChain expands a top-level request into a fresh chain. Composite
// requests compose sub-states from the startup flags; everything else runs
// directly, followed by idle. The chain always ends with the undefined
// sentinel. Overflow rejects the whole request and keeps the current chain.
func (a *Axis) buildTaskChain(req State) error {
	var tc taskChain
	var err error
	push := func(s State) {
		if err == nil {
			err = tc.push(s)
		}
	}

	switch req {
	case StateStartupSequence:
		if a.cfg.StartupMotorCalibration {
			push(StateMotorCalibration)
		}
		if a.cfg.StartupEncoderIndexSearch && a.encoder.UsesIndex() {
			push(StateEncoderIndexSearch)
		}
		if a.cfg.StartupEncoderOffsetCalibration {
			push(StateEncoderOffsetCalibration)
		}
		if a.cfg.StartupClosedLoopControl {
			if a.cfg.StartupHoming {
				push(StateHoming)
			}
			push(StateClosedLoopControl)
		} else if a.cfg.StartupSensorlessControl {
			push(StateSensorlessControl)
		}
		push(StateIdle)

	case StateFullCalibrationSequence:
		push(StateMotorCalibration)
		if a.encoder.UsesIndex() {
			push(StateEncoderIndexSearch)
		}
		push(StateEncoderOffsetCalibration)
		push(StateIdle)

	case StateHoming:
		push(StateHoming)
		push(StateClosedLoopControl)
		push(StateIdle)

	default:
		push(req)
		push(StateIdle)
	}
	push(StateUndefined)

	if err != nil {
		return err
	}
	a.chain = tc
	return nil
}

// requestPollInterval paces the watcher that preempts blocking state
// handlers when a new top-level request arrives.
const requestPollInterval = time.Millisecond

// runPreemptible dispatches a blocking state handler with a context that is
// canceled as soon as a new top-level state is requested. Control-loop
// states poll the pending request themselves; calibration-style handlers
// only see their context, so the preemption has to arrive through it.
func (a *Axis) runPreemptible(ctx context.Context, what string, run func(ctx context.Context) error) bool {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.activeBackgroundWorkers.Add(1)
	utils.ManagedGo(func() {
		for a.pendingRequest() == StateUndefined {
			if !utils.SelectContextOrWait(runCtx, requestPollInterval) {
				return
			}
		}
		cancel()
	}, a.activeBackgroundWorkers.Done)

	return a.runWithLog(what, run(runCtx))
}

// runWithLog maps a blocking state handler's error to success/failure.
func (a *Axis) runWithLog(what string, err error) bool {
	if err != nil {
		a.logger.Warnw(what+" failed", "error", err)
		return false
	}
	return true
}
