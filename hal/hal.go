// Package hal holds the hardware abstraction contracts the axis core needs
// from the board layer: digital pin reads, edge subscriptions for the
// step/direction interface, and power-rail health readings. Implementations
// live with the board support code, outside this module.
package hal

import "context"

// Tick represents a single edge event on a digital interrupt.
type Tick struct {
	High             bool
	TimestampNanosec uint64
}

// GPIOPin is a digital input pin.
type GPIOPin interface {
	// Get reads the current logical level of the pin.
	Get(ctx context.Context) (bool, error)
}

// DigitalInterrupt distributes edge events on a pin to subscribed channels.
type DigitalInterrupt interface {
	AddCallback(c chan Tick)
	RemoveCallback(c chan Tick)
}

// PowerMonitor reports the state of the shared power stage. The axis health
// checks consult it every control cycle.
type PowerMonitor interface {
	// BrakeResistorArmed reports whether the brake resistor is armed.
	BrakeResistorArmed() bool
	// BusVoltage returns the measured DC bus voltage in volts.
	BusVoltage() float64
}
