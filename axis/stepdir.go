package axis

import (
	"context"

	"go.viam.com/utils"

	"github.com/axlemotion/axle/hal"
)

// stepEventBuffer absorbs step-edge bursts between scheduler passes.
const stepEventBuffer = 32

// setStepDirEnabled turns the step/direction pulse input on or off. While
// enabled, each step edge nudges the controller position setpoint by
// counts_per_step in the direction the dir pin reads. Disabling is an
// unconditional run-mode exit action.
func (a *Axis) setStepDirEnabled(enable bool) {
	if enable == a.stepDirEnabled {
		return
	}

	if !enable {
		a.stepDirEnabled = false
		if a.stepDirCancel != nil {
			a.stepDirCancel()
			a.stepInterrupt.RemoveCallback(a.stepDirCh)
			a.stepDirCancel = nil
			a.stepDirCh = nil
		}
		return
	}

	if a.stepInterrupt == nil || a.dirPin == nil {
		a.logger.Debug("step/dir enabled in config but no step interrupt or dir pin wired")
		return
	}

	ch := make(chan hal.Tick, stepEventBuffer)
	a.stepInterrupt.AddCallback(ch)
	ctx, cancel := context.WithCancel(a.cancelCtx)
	a.stepDirCh = ch
	a.stepDirCancel = cancel
	a.stepDirEnabled = true

	a.activeBackgroundWorkers.Add(1)
	utils.ManagedGo(func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-ch:
			}

			high, err := a.dirPin.Get(ctx)
			if err != nil {
				a.logger.Debugw("dir pin read failed, dropping step", "error", err)
				continue
			}
			dir := -1.0
			if high {
				dir = 1.0
			}
			a.controller.AdjustPosSetpoint(dir * a.cfg.CountsPerStep)
		}
	}, a.activeBackgroundWorkers.Done)
}
