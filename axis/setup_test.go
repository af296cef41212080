package axis

import (
	"context"
	"runtime"
	"testing"

	"github.com/benbjohnson/clock"
	"github.com/edaniels/golog"
	"go.viam.com/test"

	"github.com/axlemotion/axle/controller"
	"github.com/axlemotion/axle/testutils/inject"
)

// testRig bundles an axis with its injected collaborators. Defaults model a
// healthy, calibrated axis parked on a good power rail.
type testRig struct {
	axis    *Axis
	motor   *inject.Motor
	enc     *inject.Encoder
	est     *inject.Estimator
	ctrl    *inject.Controller
	planner *inject.Planner
	power   *inject.PowerMonitor
	minPin  *inject.GPIOPin
	maxPin  *inject.GPIOPin
}

func newTestRig(t *testing.T, cfg Config, clk clock.Clock) *testRig {
	t.Helper()

	rig := &testRig{
		motor: &inject.Motor{
			UpdateFunc:         func(current, phase float64) error { return nil },
			ArmFunc:            func() error { return nil },
			DisarmFunc:         func() {},
			RunCalibrationFunc: func(ctx context.Context) error { return nil },
			IsCalibratedFunc:   func() bool { return true },
			ArmedFunc:          func() bool { return true },
		},
		enc: &inject.Encoder{
			UpdateFunc:               func() error { return nil },
			RunIndexSearchFunc:       func(ctx context.Context) error { return nil },
			RunOffsetCalibrationFunc: func(ctx context.Context) error { return nil },
			SetLinearCountFunc:       func(count int64) {},
			IsReadyFunc:              func() bool { return true },
		},
		est: &inject.Estimator{
			UpdateFunc: func() error { return nil },
		},
		ctrl: &inject.Controller{
			UpdateFunc:                func(pos, vel float64) (float64, error) { return 0, nil },
			SetControlModeFunc:        func(mode controller.ControlMode) {},
			SetPosSetpointFunc:        func(pos, velFF, currentFF float64) {},
			SetVelSetpointFunc:        func(vel, currentFF float64) {},
			AdjustPosSetpointFunc:     func(delta float64) {},
			ResetVelIntegratorFunc:    func() {},
			StartHomingFunc:           func() error { return nil },
			SetTrajStartLoopCountFunc: func(n uint64) {},
		},
		planner: &inject.Planner{
			PlanTrapezoidalFunc: func(target, pos, vel, maxVel, accel, decel float64) error { return nil },
		},
		power: &inject.PowerMonitor{},
		minPin: &inject.GPIOPin{
			GetFunc: func(ctx context.Context) (bool, error) { return false, nil },
		},
		maxPin: &inject.GPIOPin{
			GetFunc: func(ctx context.Context) (bool, error) { return false, nil },
		},
	}

	a, err := New(cfg, Parts{
		Motor:         rig.motor,
		Encoder:       rig.enc,
		Sensorless:    rig.est,
		Controller:    rig.ctrl,
		Planner:       rig.planner,
		Power:         rig.power,
		MinEndstopPin: rig.minPin,
		MaxEndstopPin: rig.maxPin,
		Clock:         clk,
	}, golog.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)
	rig.axis = a
	return rig
}

// feedTicks keeps the current-measurement channel saturated so the control
// loop never observes a missed deadline. Returns a stop func.
func (rig *testRig) feedTicks() func() {
	done := make(chan struct{})
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		for {
			select {
			case <-done:
				return
			default:
			}
			rig.axis.SignalCurrentMeas()
			runtime.Gosched()
		}
	}()
	return func() {
		close(done)
		<-stopped
	}
}
