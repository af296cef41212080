package axis

import (
	"math"

	"github.com/pkg/errors"
	"go.viam.com/utils"

	"github.com/axlemotion/axle/endstop"
)

// Config describes one axis. Values come from the board configuration layer;
// this package only validates and consumes them.
type Config struct {
	// Startup flags select which sub-states a STARTUP_SEQUENCE request
	// expands into.
	StartupMotorCalibration         bool `json:"startup_motor_calibration"`
	StartupEncoderIndexSearch       bool `json:"startup_encoder_index_search"`
	StartupEncoderOffsetCalibration bool `json:"startup_encoder_offset_calibration"`
	StartupHoming                   bool `json:"startup_homing"`
	StartupClosedLoopControl        bool `json:"startup_closed_loop_control"`
	StartupSensorlessControl        bool `json:"startup_sensorless_control"`

	// EnableStepDir turns on the step/direction pulse input while a control
	// loop is running.
	EnableStepDir bool    `json:"enable_step_dir"`
	CountsPerStep float64 `json:"counts_per_step"`

	// Sensorless spin-up ramp. Distance and velocity are in electrical
	// radians; current in amps.
	RampUpTime         float64 `json:"ramp_up_time"`
	RampUpDistance     float64 `json:"ramp_up_distance"`
	SpinUpCurrent      float64 `json:"spin_up_current"`
	SpinUpAcceleration float64 `json:"spin_up_acceleration"`
	SpinUpTargetVel    float64 `json:"spin_up_target_vel"`

	// CurrentMeasHz is the current-measurement interrupt rate pacing the
	// control loop.
	CurrentMeasHz float64 `json:"current_meas_hz"`

	DCBusUndervoltageTripLevel float64 `json:"dc_bus_undervoltage_trip_level"`
	DCBusOvervoltageTripLevel  float64 `json:"dc_bus_overvoltage_trip_level"`

	MinEndstop endstop.Config `json:"min_endstop"`
	MaxEndstop endstop.Config `json:"max_endstop"`
}

// DefaultConfig returns the stock axis configuration.
func DefaultConfig() Config {
	return Config{
		CountsPerStep:              2.0,
		RampUpTime:                 0.4,
		RampUpDistance:             4.0 * math.Pi,
		SpinUpCurrent:              10.0,
		SpinUpAcceleration:         400.0,
		SpinUpTargetVel:            400.0,
		CurrentMeasHz:              8000.0,
		DCBusUndervoltageTripLevel: 8.0,
		DCBusOvervoltageTripLevel:  56.0,
		MinEndstop:                 endstop.DefaultConfig(),
		MaxEndstop:                 endstop.DefaultConfig(),
	}
}

// Validate ensures all parts of the config are valid.
func (cfg *Config) Validate(path string) error {
	if cfg.CurrentMeasHz <= 0 {
		return utils.NewConfigValidationFieldRequiredError(path, "current_meas_hz")
	}
	if cfg.DCBusUndervoltageTripLevel >= cfg.DCBusOvervoltageTripLevel {
		return utils.NewConfigValidationError(path,
			errors.New("dc_bus_undervoltage_trip_level must be below dc_bus_overvoltage_trip_level"))
	}
	if cfg.EnableStepDir && cfg.CountsPerStep <= 0 {
		return utils.NewConfigValidationFieldRequiredError(path, "counts_per_step")
	}
	// Sensorless control is requestable at runtime regardless of the startup
	// flags, so the spin-up ramp must always be well formed.
	if cfg.RampUpTime <= 0 {
		return utils.NewConfigValidationFieldRequiredError(path, "ramp_up_time")
	}
	if cfg.SpinUpAcceleration <= 0 {
		return utils.NewConfigValidationFieldRequiredError(path, "spin_up_acceleration")
	}
	if cfg.SpinUpTargetVel <= 0 {
		return utils.NewConfigValidationFieldRequiredError(path, "spin_up_target_vel")
	}
	if err := cfg.MinEndstop.Validate(path + ".min_endstop"); err != nil {
		return err
	}
	if err := cfg.MaxEndstop.Validate(path + ".max_endstop"); err != nil {
		return err
	}
	return nil
}

// cyclePeriodSec returns the control cycle period in seconds.
func (cfg *Config) cyclePeriodSec() float64 {
	return 1.0 / cfg.CurrentMeasHz
}
