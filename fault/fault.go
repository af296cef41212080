// Package fault defines the latched fault bitmask shared by the axis and its
// subcomponents. Bits are set as faults occur and stay set for the lifetime
// of the axis run loop; only the invalid-state bit is cleared, and only when
// a new top-level state request is accepted.
package fault

import "strings"

// Error is a bitmask of latched axis faults.
type Error uint32

// None means no fault bits are set.
const None Error = 0

const (
	// BrakeResistorDisarmed is set when the brake resistor is not armed.
	BrakeResistorDisarmed Error = 1 << iota
	// MotorDisarmed is set when the motor reports disarmed outside the idle state.
	MotorDisarmed
	// DCBusUnderVoltage is set when the bus voltage drops below the trip level.
	DCBusUnderVoltage
	// DCBusOverVoltage is set when the bus voltage exceeds the trip level.
	DCBusOverVoltage
	// MotorFailed is set when a per-cycle motor update fails.
	MotorFailed
	// ControllerFailed is set when a per-cycle controller update fails.
	ControllerFailed
	// PosCtrlDuringSensorless is set when position control is requested while sensorless.
	PosCtrlDuringSensorless
	// InvalidState is set when an unknown or unreachable state is dispatched.
	InvalidState
	// MinEndstopPressed is set when the min endstop triggers outside of homing.
	MinEndstopPressed
	// MaxEndstopPressed is set when the max endstop triggers outside of homing.
	MaxEndstopPressed
	// CurrentMeasTimeout is set when a current-measurement deadline is missed
	// while the axis is not idle.
	CurrentMeasTimeout
	// ChainFull is set when a state request would overflow the task chain.
	ChainFull
	// EncoderFailed is set when a per-cycle encoder update fails.
	EncoderFailed
	// EstimatorFailed is set when a per-cycle sensorless estimator update fails.
	EstimatorFailed
)

var names = []struct {
	bit  Error
	name string
}{
	{BrakeResistorDisarmed, "brake_resistor_disarmed"},
	{MotorDisarmed, "motor_disarmed"},
	{DCBusUnderVoltage, "dc_bus_under_voltage"},
	{DCBusOverVoltage, "dc_bus_over_voltage"},
	{MotorFailed, "motor_failed"},
	{ControllerFailed, "controller_failed"},
	{PosCtrlDuringSensorless, "pos_ctrl_during_sensorless"},
	{InvalidState, "invalid_state"},
	{MinEndstopPressed, "min_endstop_pressed"},
	{MaxEndstopPressed, "max_endstop_pressed"},
	{CurrentMeasTimeout, "current_meas_timeout"},
	{ChainFull, "chain_full"},
	{EncoderFailed, "encoder_failed"},
	{EstimatorFailed, "estimator_failed"},
}

// Has reports whether every bit in mask is set.
func (e Error) Has(mask Error) bool {
	return e&mask == mask
}

// Any reports whether any fault bit is set.
func (e Error) Any() bool {
	return e != None
}

// String returns the pipe-joined names of all set bits.
func (e Error) String() string {
	if e == None {
		return "none"
	}
	var set []string
	for _, n := range names {
		if e&n.bit != 0 {
			set = append(set, n.name)
		}
	}
	return strings.Join(set, "|")
}
