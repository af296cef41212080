package axis

import (
	"testing"

	"go.viam.com/test"
)

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	test.That(t, cfg.Validate("axis"), test.ShouldBeNil)

	cfg = DefaultConfig()
	cfg.DCBusUndervoltageTripLevel = 60.0
	err := cfg.Validate("axis")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "trip_level")

	cfg = DefaultConfig()
	cfg.EnableStepDir = true
	cfg.CountsPerStep = 0
	err = cfg.Validate("axis")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "counts_per_step")

	cfg = DefaultConfig()
	cfg.MinEndstop.DebounceMs = -1
	test.That(t, cfg.Validate("axis"), test.ShouldNotBeNil)
}

func TestConfigValidateSpinUpAlwaysRequired(t *testing.T) {
	// Sensorless control can be requested at runtime with no startup flags
	// set, so a degenerate ramp must be rejected up front.
	for _, tc := range []struct {
		field string
		wreck func(cfg *Config)
	}{
		{"ramp_up_time", func(cfg *Config) { cfg.RampUpTime = 0 }},
		{"spin_up_acceleration", func(cfg *Config) { cfg.SpinUpAcceleration = 0 }},
		{"spin_up_target_vel", func(cfg *Config) { cfg.SpinUpTargetVel = 0 }},
	} {
		t.Run(tc.field, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.wreck(&cfg)
			err := cfg.Validate("axis")
			test.That(t, err, test.ShouldNotBeNil)
			test.That(t, err.Error(), test.ShouldContainSubstring, tc.field)
		})
	}
}
