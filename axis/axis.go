// Package axis implements the per-axis state machine and closed-loop control
// pipeline: calibration and homing sequencing, sensorless spin-up, the
// fixed-rate control-loop driver paced by the current-measurement interrupt,
// and latched fault aggregation with fallback to the idle safe state.
package axis

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/edaniels/golog"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.viam.com/utils"

	"github.com/axlemotion/axle/controller"
	"github.com/axlemotion/axle/encoder"
	"github.com/axlemotion/axle/endstop"
	"github.com/axlemotion/axle/fault"
	"github.com/axlemotion/axle/hal"
	"github.com/axlemotion/axle/motor"
	"github.com/axlemotion/axle/sensorless"
	"github.com/axlemotion/axle/trajectory"
)

// Parts bundles the collaborator handles one axis runs against.
type Parts struct {
	Motor      motor.Motor
	Encoder    encoder.Encoder
	Sensorless sensorless.Estimator
	Controller controller.Controller
	Planner    trajectory.Planner
	Power      hal.PowerMonitor

	// MinEndstopPin and MaxEndstopPin are required only for physical
	// endstops.
	MinEndstopPin hal.GPIOPin
	MaxEndstopPin hal.GPIOPin

	// StepInterrupt and DirPin are required only when step/direction input
	// is enabled.
	StepInterrupt hal.DigitalInterrupt
	DirPin        hal.GPIOPin

	// Clock defaults to the wall clock; tests inject a mock.
	Clock clock.Clock
}

// An Axis owns one mechanical degree of freedom. All mutable control state
// is owned by the axis's state-machine goroutine; the atomics below are a
// lock-free snapshot surface for other goroutines.
type Axis struct {
	logger golog.Logger
	cfg    Config

	motor      motor.Motor
	encoder    encoder.Encoder
	sensorless sensorless.Estimator
	controller controller.Controller
	planner    trajectory.Planner
	power      hal.PowerMonitor
	minEndstop *endstop.Endstop
	maxEndstop *endstop.Endstop

	stepInterrupt hal.DigitalInterrupt
	dirPin        hal.GPIOPin

	clk            clock.Clock
	cyclePeriodSec float64

	// wake signal posted by the current-measurement interrupt handler
	currentMeas chan struct{}

	requested   atomic.Int32
	state       atomic.Int32
	errs        atomic.Uint32
	loopCount   atomic.Uint64
	homingPhase atomic.Int32

	// state-machine goroutine only
	chain        taskChain
	homing       homingState
	coggingMapOK bool

	stepDirEnabled bool
	stepDirCancel  context.CancelFunc
	stepDirCh      chan hal.Tick

	cancelCtx               context.Context
	cancelFunc              context.CancelFunc
	activeBackgroundWorkers sync.WaitGroup
	started                 bool
}

// homingState is the closed-loop homing sub-machine. It lives only for the
// duration of a HOMING/CLOSED_LOOP chain; building a new task chain resets it.
type homingState struct {
	phase      HomingPhase
	findingMin bool
	// dwellDeadline is the loop count after which a stall counts as having
	// found the endstop currently being sought.
	dwellDeadline uint64
	// minHomeRef holds the raw encoder count where the min endstop was
	// found, pending the max-endstop find.
	minHomeRef int64
}

// currentMeasTimeout bounds the wait for the next current-measurement
// signal. Missing it outside idle is fatal to the active run.
const currentMeasTimeout = 2 * time.Millisecond

// New constructs an axis. The anti-cogging map is provisioned here, sized
// from the encoder CPR; provisioning failure disables the feature rather
// than failing construction.
func New(cfg Config, parts Parts, logger golog.Logger) (*Axis, error) {
	if err := cfg.Validate("axis"); err != nil {
		return nil, err
	}
	if parts.Motor == nil || parts.Encoder == nil || parts.Sensorless == nil ||
		parts.Controller == nil || parts.Planner == nil || parts.Power == nil {
		return nil, errors.New("axis requires motor, encoder, sensorless, controller, planner, and power parts")
	}
	if parts.Clock == nil {
		parts.Clock = clock.New()
	}

	period := cfg.cyclePeriodSec()
	minES, err := endstop.New(cfg.MinEndstop, parts.MinEndstopPin, period, logger)
	if err != nil {
		return nil, errors.Wrap(err, "min endstop")
	}
	maxES, err := endstop.New(cfg.MaxEndstop, parts.MaxEndstopPin, period, logger)
	if err != nil {
		return nil, errors.Wrap(err, "max endstop")
	}

	cancelCtx, cancelFunc := context.WithCancel(context.Background())
	a := &Axis{
		logger:         logger,
		cfg:            cfg,
		motor:          parts.Motor,
		encoder:        parts.Encoder,
		sensorless:     parts.Sensorless,
		controller:     parts.Controller,
		planner:        parts.Planner,
		power:          parts.Power,
		minEndstop:     minES,
		maxEndstop:     maxES,
		stepInterrupt:  parts.StepInterrupt,
		dirPin:         parts.DirPin,
		clk:            parts.Clock,
		cyclePeriodSec: period,
		currentMeas:    make(chan struct{}, 1),
		cancelCtx:      cancelCtx,
		cancelFunc:     cancelFunc,
	}

	// Boot into the startup sequence; whether it amounts to anything beyond
	// dropping to idle is decided by the startup_* config flags.
	a.requested.Store(int32(StateStartupSequence))

	if err := a.controller.AllocateCoggingMap(a.encoder.CPR()); err != nil {
		a.logger.Warnw("anti-cogging map unavailable, feature disabled", "error", err)
	} else {
		a.coggingMapOK = true
	}

	return a, nil
}

// Start spawns the state-machine goroutine. The axis then runs until Close.
func (a *Axis) Start() error {
	if a.started {
		return errors.New("axis already started")
	}
	a.started = true
	a.activeBackgroundWorkers.Add(1)
	utils.ManagedGo(func() {
		a.runStateMachine(a.cancelCtx)
	}, a.activeBackgroundWorkers.Done)
	return nil
}

// SignalCurrentMeas unblocks the control loop for one cycle. Called from the
// current-measurement interrupt context; never blocks.
func (a *Axis) SignalCurrentMeas() {
	select {
	case a.currentMeas <- struct{}{}:
	default:
	}
}

// RequestState asks the state machine to preempt whatever is running and
// switch to the given top-level state. The request is observed at the next
// control-loop iteration boundary.
func (a *Axis) RequestState(s State) error {
	if s == StateUndefined {
		return errors.New("cannot request the undefined state")
	}
	a.requested.Store(int32(s))
	return nil
}

// CurrentState returns the published active state. Safe from any goroutine.
func (a *Axis) CurrentState() State {
	return State(a.state.Load())
}

// Faults returns the latched fault bitmask. Safe from any goroutine.
func (a *Axis) Faults() fault.Error {
	return fault.Error(a.errs.Load())
}

// LoopCount returns the monotonic control cycle counter.
func (a *Axis) LoopCount() uint64 {
	return a.loopCount.Load()
}

// Status is the lock-free monitoring snapshot of an axis. Individual fields
// are each atomically read; the struct as a whole is eventually consistent.
type Status struct {
	State       State
	Faults      fault.Error
	LoopCount   uint64
	HomingPhase HomingPhase
}

// Status returns the monitoring snapshot.
func (a *Axis) Status() Status {
	return Status{
		State:       State(a.state.Load()),
		Faults:      fault.Error(a.errs.Load()),
		LoopCount:   a.loopCount.Load(),
		HomingPhase: HomingPhase(a.homingPhase.Load()),
	}
}

// MinEndstop exposes the min endstop for monitoring and configuration.
func (a *Axis) MinEndstop() *endstop.Endstop {
	return a.minEndstop
}

// MaxEndstop exposes the max endstop for monitoring and configuration.
func (a *Axis) MaxEndstop() *endstop.Endstop {
	return a.maxEndstop
}

// Close stops the state machine, disarms the motor, and waits for all
// workers to exit.
func (a *Axis) Close(ctx context.Context) error {
	a.cancelFunc()
	// wake the loop so it observes cancellation without waiting out a cycle
	a.SignalCurrentMeas()
	a.activeBackgroundWorkers.Wait()
	var errs error
	if a.stepDirEnabled {
		errs = multierr.Combine(errs, errors.New("step/dir input still enabled at close"))
		a.setStepDirEnabled(false)
	}
	a.motor.Disarm()
	return errs
}

func (a *Axis) setFault(e fault.Error) {
	a.errs.Or(uint32(e))
}

func (a *Axis) clearFault(e fault.Error) {
	a.errs.And(^uint32(e))
}

func (a *Axis) pendingRequest() State {
	return State(a.requested.Load())
}

func (a *Axis) takeRequest() State {
	return State(a.requested.Swap(int32(StateUndefined)))
}
