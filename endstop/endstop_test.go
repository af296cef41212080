package endstop_test

import (
	"context"
	"testing"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"
	"go.viam.com/test"

	"github.com/axlemotion/axle/endstop"
	"github.com/axlemotion/axle/testutils/inject"
)

const cyclePeriod = 0.000125 // 8kHz

func physicalConfig() endstop.Config {
	cfg := endstop.DefaultConfig()
	cfg.Enabled = true
	cfg.PhysicalEndstop = true
	cfg.IsActiveHigh = true
	cfg.DebounceMs = 1.0
	return cfg
}

func TestConfigValidate(t *testing.T) {
	cfg := endstop.DefaultConfig()
	test.That(t, cfg.Validate("endstop"), test.ShouldBeNil)

	cfg.HomePercentage = 120
	test.That(t, cfg.Validate("endstop"), test.ShouldNotBeNil)

	cfg = endstop.DefaultConfig()
	cfg.DebounceMs = -1
	test.That(t, cfg.Validate("endstop"), test.ShouldNotBeNil)
}

func TestNew(t *testing.T) {
	logger := golog.NewTestLogger(t)

	cfg := physicalConfig()
	_, err := endstop.New(cfg, nil, cyclePeriod, logger)
	test.That(t, err, test.ShouldNotBeNil)

	_, err = endstop.New(cfg, &inject.GPIOPin{}, 0, logger)
	test.That(t, err, test.ShouldNotBeNil)

	es, err := endstop.New(cfg, &inject.GPIOPin{}, cyclePeriod, logger)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, es.State(), test.ShouldBeFalse)
}

func TestDebounce(t *testing.T) {
	ctx := context.Background()
	logger := golog.NewTestLogger(t)

	level := false
	pin := &inject.GPIOPin{GetFunc: func(ctx context.Context) (bool, error) {
		return level, nil
	}}

	es, err := endstop.New(physicalConfig(), pin, cyclePeriod, logger)
	test.That(t, err, test.ShouldBeNil)

	// 1ms debounce at 8kHz = 8 cycles of stable signal before commit
	level = true
	es.Update(ctx) // raw change resets the filter
	for i := 0; i < 7; i++ {
		es.Update(ctx)
		test.That(t, es.State(), test.ShouldBeFalse)
	}
	for i := 0; i < 3; i++ {
		es.Update(ctx)
	}
	test.That(t, es.State(), test.ShouldBeTrue)

	// a glitch resets the dwell without dropping the committed state
	level = false
	es.Update(ctx)
	level = true
	es.Update(ctx)
	test.That(t, es.State(), test.ShouldBeTrue)

	// a stable release eventually clears it
	level = false
	for i := 0; i < 12; i++ {
		es.Update(ctx)
	}
	test.That(t, es.State(), test.ShouldBeFalse)
}

func TestActiveLow(t *testing.T) {
	ctx := context.Background()
	logger := golog.NewTestLogger(t)

	cfg := physicalConfig()
	cfg.IsActiveHigh = false
	cfg.DebounceMs = 0

	level := false
	pin := &inject.GPIOPin{GetFunc: func(ctx context.Context) (bool, error) {
		return level, nil
	}}

	es, err := endstop.New(cfg, pin, cyclePeriod, logger)
	test.That(t, err, test.ShouldBeNil)

	es.Update(ctx)
	test.That(t, es.State(), test.ShouldBeTrue)

	level = true
	es.Update(ctx) // raw change, filter reset
	es.Update(ctx)
	test.That(t, es.State(), test.ShouldBeFalse)
}

func TestDisabledAndVirtual(t *testing.T) {
	ctx := context.Background()
	logger := golog.NewTestLogger(t)

	pin := &inject.GPIOPin{GetFunc: func(ctx context.Context) (bool, error) {
		return true, nil
	}}

	cfg := physicalConfig()
	cfg.Enabled = false
	es, err := endstop.New(cfg, pin, cyclePeriod, logger)
	test.That(t, err, test.ShouldBeNil)
	for i := 0; i < 20; i++ {
		es.Update(ctx)
	}
	test.That(t, es.State(), test.ShouldBeFalse)

	virtual := endstop.DefaultConfig()
	virtual.Enabled = true
	es, err = endstop.New(virtual, nil, cyclePeriod, logger)
	test.That(t, err, test.ShouldBeNil)
	for i := 0; i < 20; i++ {
		es.Update(ctx)
	}
	test.That(t, es.State(), test.ShouldBeFalse)
}

func TestSetConfig(t *testing.T) {
	ctx := context.Background()
	logger := golog.NewTestLogger(t)

	cfg := physicalConfig()
	cfg.DebounceMs = 0
	pin := &inject.GPIOPin{GetFunc: func(ctx context.Context) (bool, error) {
		return true, nil
	}}

	es, err := endstop.New(cfg, pin, cyclePeriod, logger)
	test.That(t, err, test.ShouldBeNil)
	es.SetOffsetFromHome(500)
	es.Update(ctx)
	es.Update(ctx)
	test.That(t, es.State(), test.ShouldBeTrue)

	// Reconfiguring resets the debounce filter but keeps the homed offset.
	cfg.IsActiveHigh = false
	cfg.DebounceMs = 1.0
	test.That(t, es.SetConfig(cfg), test.ShouldBeNil)
	test.That(t, es.State(), test.ShouldBeFalse)
	test.That(t, es.Config().DebounceMs, test.ShouldEqual, 1.0)
	test.That(t, es.OffsetFromHome(), test.ShouldEqual, int64(500))

	bad := cfg
	bad.HomePercentage = 150
	test.That(t, es.SetConfig(bad), test.ShouldNotBeNil)

	virtual := endstop.DefaultConfig()
	virtual.Enabled = true
	es, err = endstop.New(virtual, nil, cyclePeriod, logger)
	test.That(t, err, test.ShouldBeNil)
	physical := physicalConfig()
	test.That(t, es.SetConfig(physical), test.ShouldNotBeNil)
}

func TestPinReadFailure(t *testing.T) {
	ctx := context.Background()
	logger := golog.NewTestLogger(t)

	fail := false
	pin := &inject.GPIOPin{GetFunc: func(ctx context.Context) (bool, error) {
		if fail {
			return false, errors.New("i2c timeout")
		}
		return true, nil
	}}

	cfg := physicalConfig()
	cfg.DebounceMs = 0
	es, err := endstop.New(cfg, pin, cyclePeriod, logger)
	test.That(t, err, test.ShouldBeNil)

	es.Update(ctx) // raw change, filter reset
	es.Update(ctx)
	test.That(t, es.State(), test.ShouldBeTrue)

	// read failures hold the last raw state
	fail = true
	for i := 0; i < 5; i++ {
		es.Update(ctx)
	}
	test.That(t, es.State(), test.ShouldBeTrue)
}

func TestOffsetFromHome(t *testing.T) {
	logger := golog.NewTestLogger(t)

	es, err := endstop.New(endstop.DefaultConfig(), nil, cyclePeriod, logger)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, es.OffsetFromHome(), test.ShouldEqual, 0)

	es.SetOffsetFromHome(-4096)
	test.That(t, es.OffsetFromHome(), test.ShouldEqual, -4096)
}

func TestMinHomingCycles(t *testing.T) {
	logger := golog.NewTestLogger(t)

	cfg := endstop.DefaultConfig()
	cfg.MinMsHoming = 1000
	es, err := endstop.New(cfg, nil, 0.001, logger)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, es.MinHomingCycles(), test.ShouldEqual, 1000)
}
