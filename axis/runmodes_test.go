package axis

import (
	"testing"

	"github.com/pkg/errors"
	"go.viam.com/test"

	"github.com/axlemotion/axle/controller"
	"github.com/axlemotion/axle/fault"
)

func TestSensorlessModeRegulatesOffEstimator(t *testing.T) {
	rig := newTestRig(t, DefaultConfig(), nil)
	rig.est.PLLPosFunc = func() float64 { return 12.5 }
	rig.est.VelEstimateFunc = func() float64 { return 400.0 }
	rig.est.PhaseFunc = func() float64 { return 1.5 }

	var gotPos, gotVel float64
	rig.ctrl.UpdateFunc = func(pos, vel float64) (float64, error) {
		gotPos, gotVel = pos, vel
		return 7.0, nil
	}
	var gotCurrent, gotPhase float64
	rig.motor.UpdateFunc = func(current, phase float64) error {
		gotCurrent, gotPhase = current, phase
		return nil
	}

	mode := &sensorlessMode{a: rig.axis}
	test.That(t, mode.cycle(), test.ShouldBeTrue)
	test.That(t, gotPos, test.ShouldEqual, 12.5)
	test.That(t, gotVel, test.ShouldEqual, 400.0)
	test.That(t, gotCurrent, test.ShouldEqual, 7.0)
	test.That(t, gotPhase, test.ShouldEqual, 1.5)
}

func TestSensorlessModeRejectsPositionControl(t *testing.T) {
	rig := newTestRig(t, DefaultConfig(), nil)
	rig.ctrl.ControlModeFunc = func() controller.ControlMode { return controller.PositionControl }

	mode := &sensorlessMode{a: rig.axis}
	test.That(t, mode.cycle(), test.ShouldBeFalse)
	test.That(t, rig.axis.Faults().Has(fault.PosCtrlDuringSensorless), test.ShouldBeTrue)
}

func TestSensorlessModeControllerFailure(t *testing.T) {
	rig := newTestRig(t, DefaultConfig(), nil)
	rig.ctrl.UpdateFunc = func(pos, vel float64) (float64, error) {
		return 0, errors.New("current limit")
	}

	mode := &sensorlessMode{a: rig.axis}
	test.That(t, mode.cycle(), test.ShouldBeFalse)
	test.That(t, rig.axis.Faults().Has(fault.ControllerFailed), test.ShouldBeTrue)
}

func TestRunIdleDisarms(t *testing.T) {
	rig := newTestRig(t, DefaultConfig(), nil)
	rig.axis.takeRequest()

	var disarmed bool
	rig.motor.DisarmFunc = func() { disarmed = true }

	// a pending request makes the idle loop return immediately
	test.That(t, rig.axis.RequestState(StateIdle), test.ShouldBeNil)
	rig.axis.runIdle()
	test.That(t, disarmed, test.ShouldBeTrue)
}
