package axis

// State is one discrete top-level axis state. The numeric order matters:
// prerequisite validation compares against StateMotorCalibration and
// StateEncoderOffsetCalibration, so every state that needs a calibrated
// motor sorts after the former and every state that needs a ready encoder
// sorts after the latter.
type State int32

const (
	// StateUndefined is the chain sentinel; dispatching it is an invalid-state fault.
	StateUndefined State = iota
	// StateIdle disarms the motor and waits for a request.
	StateIdle
	// StateStartupSequence is a composite request expanded from the startup flags.
	StateStartupSequence
	// StateFullCalibrationSequence is a composite request running all calibrations.
	StateFullCalibrationSequence
	// StateMotorCalibration measures motor phase resistance and inductance.
	StateMotorCalibration
	// StateSensorlessControl spins up open loop, then runs the sensorless loop.
	StateSensorlessControl
	// StateEncoderIndexSearch turns the motor until the index pulse is found.
	StateEncoderIndexSearch
	// StateEncoderOffsetCalibration measures the encoder-to-phase offset.
	StateEncoderOffsetCalibration
	// StateClosedLoopControl runs the encoder-feedback control loop.
	StateClosedLoopControl
	// StateHoming primes the homing sub-machine ahead of closed-loop control.
	StateHoming
)

func (s State) String() string {
	switch s {
	case StateUndefined:
		return "undefined"
	case StateIdle:
		return "idle"
	case StateStartupSequence:
		return "startup_sequence"
	case StateFullCalibrationSequence:
		return "full_calibration_sequence"
	case StateMotorCalibration:
		return "motor_calibration"
	case StateSensorlessControl:
		return "sensorless_control"
	case StateEncoderIndexSearch:
		return "encoder_index_search"
	case StateEncoderOffsetCalibration:
		return "encoder_offset_calibration"
	case StateClosedLoopControl:
		return "closed_loop_control"
	case StateHoming:
		return "homing"
	default:
		return "unknown"
	}
}

// HomingPhase is the sub-state of closed-loop homing.
type HomingPhase int32

const (
	// HomingInactive means no homing is in progress; endstop presses are faults.
	HomingInactive HomingPhase = iota
	// HomingSearching means the axis is driving toward an endstop.
	HomingSearching
	// HomingMoveToZero means the datum is set and the axis is returning to zero.
	HomingMoveToZero
)

func (p HomingPhase) String() string {
	switch p {
	case HomingInactive:
		return "inactive"
	case HomingSearching:
		return "searching"
	case HomingMoveToZero:
		return "move_to_zero"
	default:
		return "unknown"
	}
}
