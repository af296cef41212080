// Package endstop implements a debounced travel-limit sensor for one end of
// an axis. An endstop is either physical (backed by a GPIO pin) or virtual
// (found by stall detection during homing). The debounce filter runs once
// per control cycle from the axis update pass.
package endstop

import (
	"context"
	"sync/atomic"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"
	"go.viam.com/utils"

	"github.com/axlemotion/axle/hal"
)

// Config describes one endstop. Offsets are in encoder counts.
type Config struct {
	Enabled bool `json:"enabled"`
	// Offset is the configured datum applied to the encoder count when this
	// endstop is found during homing.
	Offset int64 `json:"offset"`
	IsActiveHigh bool `json:"is_active_high"`
	// DebounceMs is how long the raw pin state must hold before the
	// debounced state commits.
	DebounceMs float64 `json:"debounce_ms"`
	// HomePercentage distributes the zero point across the measured travel
	// range when both endstops are homed. 0 disables proportional homing.
	HomePercentage float64 `json:"home_percentage"`
	// PhysicalEndstop is true when a real switch backs this endstop; false
	// makes it a virtual endstop found by stall detection.
	PhysicalEndstop bool `json:"physical_endstop"`
	// MinMsHoming is the minimum dwell before a stall counts as having
	// found a virtual endstop.
	MinMsHoming int `json:"min_ms_homing"`
	// StallVelTolerance is the velocity magnitude (counts/s) below which
	// the axis is considered stalled during homing.
	StallVelTolerance float64 `json:"stall_vel_tolerance"`
}

// Validate ensures all parts of the config are valid.
func (cfg *Config) Validate(path string) error {
	if cfg.DebounceMs < 0 {
		return utils.NewConfigValidationError(path, errors.New("debounce_ms must be non-negative"))
	}
	if cfg.HomePercentage < 0 || cfg.HomePercentage > 100 {
		return utils.NewConfigValidationError(path, errors.New("home_percentage must be within [0, 100]"))
	}
	if cfg.MinMsHoming < 0 {
		return utils.NewConfigValidationError(path, errors.New("min_ms_homing must be non-negative"))
	}
	if cfg.StallVelTolerance < 0 {
		return utils.NewConfigValidationError(path, errors.New("stall_vel_tolerance must be non-negative"))
	}
	return nil
}

// DefaultConfig returns the stock endstop configuration, disabled.
func DefaultConfig() Config {
	return Config{
		DebounceMs:        100.0,
		MinMsHoming:       4000,
		StallVelTolerance: 1.0,
	}
}

// Endstop is the debounced runtime state for one travel limit.
type Endstop struct {
	cfg    Config
	pin    hal.GPIOPin
	logger golog.Logger

	// milliseconds of cycle time accumulated per Update call
	cyclePeriodMs float64

	pinState       bool
	debounceMs     float64
	readFailed     bool
	state          atomic.Bool
	offsetFromHome atomic.Int64
}

// New returns an endstop. pin may be nil only for a non-physical endstop.
// cyclePeriodSec is the control cycle period driving Update.
func New(cfg Config, pin hal.GPIOPin, cyclePeriodSec float64, logger golog.Logger) (*Endstop, error) {
	if cfg.PhysicalEndstop && pin == nil {
		return nil, errors.New("physical endstop requires a pin")
	}
	if cyclePeriodSec <= 0 {
		return nil, errors.Errorf("invalid cycle period %.9f", cyclePeriodSec)
	}
	return &Endstop{
		cfg:           cfg,
		pin:           pin,
		logger:        logger,
		cyclePeriodMs: cyclePeriodSec * 1000.0,
	}, nil
}

// Update runs one debounce step. Called every control cycle. A failed pin
// read keeps the previous raw state; the failure is logged once per episode.
func (e *Endstop) Update(ctx context.Context) {
	if !e.cfg.Enabled || !e.cfg.PhysicalEndstop {
		e.state.Store(false)
		e.debounceMs = 0
		return
	}

	raw, err := e.pin.Get(ctx)
	if err != nil {
		if !e.readFailed {
			e.logger.Warnw("endstop pin read failed, holding last state", "error", err)
			e.readFailed = true
		}
		raw = e.pinState
	} else {
		e.readFailed = false
	}

	if raw != e.pinState {
		e.pinState = raw
		e.debounceMs = 0
		return
	}
	if e.debounceMs < e.cfg.DebounceMs {
		e.debounceMs += e.cyclePeriodMs
		return
	}
	if e.cfg.IsActiveHigh {
		e.state.Store(e.pinState)
	} else {
		e.state.Store(!e.pinState)
	}
}

// State returns the debounced logical state: true means pressed. Safe to
// read from any goroutine.
func (e *Endstop) State() bool {
	return e.state.Load()
}

// SetEnabled enables or disables the endstop, resetting the debounce filter.
func (e *Endstop) SetEnabled(enable bool) {
	e.cfg.Enabled = enable
	e.debounceMs = 0
	e.state.Store(false)
}

// Enabled reports whether the endstop participates in homing and limit checks.
func (e *Endstop) Enabled() bool {
	return e.cfg.Enabled
}

// Config returns a copy of the endstop configuration.
func (e *Endstop) Config() Config {
	return e.cfg
}

// SetConfig replaces the endstop configuration, resetting the debounce
// filter. The homing offset is left untouched; rehome to re-establish it.
func (e *Endstop) SetConfig(cfg Config) error {
	if err := cfg.Validate("endstop"); err != nil {
		return err
	}
	if cfg.PhysicalEndstop && e.pin == nil {
		return errors.New("physical endstop requires a pin")
	}
	e.cfg = cfg
	e.pinState = false
	e.debounceMs = 0
	e.state.Store(false)
	return nil
}

// OffsetFromHome returns the positional offset established during homing.
// Safe to read from any goroutine.
func (e *Endstop) OffsetFromHome() int64 {
	return e.offsetFromHome.Load()
}

// SetOffsetFromHome records the homing-derived offset.
func (e *Endstop) SetOffsetFromHome(offset int64) {
	e.offsetFromHome.Store(offset)
}

// MinHomingCycles converts the configured minimum homing dwell into control
// cycles at the endstop's cycle period.
func (e *Endstop) MinHomingCycles() uint64 {
	return uint64(float64(e.cfg.MinMsHoming) / e.cyclePeriodMs)
}

// StallVelTolerance returns the stall threshold used for virtual endstops.
func (e *Endstop) StallVelTolerance() float64 {
	return e.cfg.StallVelTolerance
}

// Physical reports whether a real switch backs this endstop.
func (e *Endstop) Physical() bool {
	return e.cfg.PhysicalEndstop
}
