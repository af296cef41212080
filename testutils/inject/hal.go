package inject

import (
	"context"

	"github.com/axlemotion/axle/hal"
)

// GPIOPin is an injected digital input pin.
type GPIOPin struct {
	hal.GPIOPin
	GetFunc func(ctx context.Context) (bool, error)
}

// Get calls the injected Get or the real version.
func (p *GPIOPin) Get(ctx context.Context) (bool, error) {
	if p.GetFunc == nil {
		return p.GPIOPin.Get(ctx)
	}
	return p.GetFunc(ctx)
}

// DigitalInterrupt is an injected digital interrupt.
type DigitalInterrupt struct {
	hal.DigitalInterrupt
	AddCallbackFunc    func(c chan hal.Tick)
	RemoveCallbackFunc func(c chan hal.Tick)
}

// AddCallback calls the injected AddCallback or the real version.
func (d *DigitalInterrupt) AddCallback(c chan hal.Tick) {
	if d.AddCallbackFunc == nil {
		d.DigitalInterrupt.AddCallback(c)
		return
	}
	d.AddCallbackFunc(c)
}

// RemoveCallback calls the injected RemoveCallback or the real version.
func (d *DigitalInterrupt) RemoveCallback(c chan hal.Tick) {
	if d.RemoveCallbackFunc == nil {
		d.DigitalInterrupt.RemoveCallback(c)
		return
	}
	d.RemoveCallbackFunc(c)
}

// PowerMonitor is an injected power monitor.
type PowerMonitor struct {
	hal.PowerMonitor
	BrakeResistorArmedFunc func() bool
	BusVoltageFunc         func() float64
}

// BrakeResistorArmed calls the injected BrakeResistorArmed, defaulting to armed.
func (p *PowerMonitor) BrakeResistorArmed() bool {
	if p.BrakeResistorArmedFunc == nil {
		return true
	}
	return p.BrakeResistorArmedFunc()
}

// BusVoltage calls the injected BusVoltage, defaulting to 24V.
func (p *PowerMonitor) BusVoltage() float64 {
	if p.BusVoltageFunc == nil {
		return 24.0
	}
	return p.BusVoltageFunc()
}
