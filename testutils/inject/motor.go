package inject

import (
	"context"

	"github.com/axlemotion/axle/fault"
	"github.com/axlemotion/axle/motor"
)

// Motor is an injected motor drive.
type Motor struct {
	motor.Motor
	UpdateFunc         func(current, phase float64) error
	ArmFunc            func() error
	DisarmFunc         func()
	RunCalibrationFunc func(ctx context.Context) error
	IsCalibratedFunc   func() bool
	ArmedFunc          func() bool
	CheckFaultsFunc    func() fault.Error
}

// Update calls the injected Update or the real version.
func (m *Motor) Update(current, phase float64) error {
	if m.UpdateFunc == nil {
		return m.Motor.Update(current, phase)
	}
	return m.UpdateFunc(current, phase)
}

// Arm calls the injected Arm or the real version.
func (m *Motor) Arm() error {
	if m.ArmFunc == nil {
		return m.Motor.Arm()
	}
	return m.ArmFunc()
}

// Disarm calls the injected Disarm or the real version.
func (m *Motor) Disarm() {
	if m.DisarmFunc == nil {
		m.Motor.Disarm()
		return
	}
	m.DisarmFunc()
}

// RunCalibration calls the injected RunCalibration or the real version.
func (m *Motor) RunCalibration(ctx context.Context) error {
	if m.RunCalibrationFunc == nil {
		return m.Motor.RunCalibration(ctx)
	}
	return m.RunCalibrationFunc(ctx)
}

// IsCalibrated calls the injected IsCalibrated or the real version.
func (m *Motor) IsCalibrated() bool {
	if m.IsCalibratedFunc == nil {
		return m.Motor.IsCalibrated()
	}
	return m.IsCalibratedFunc()
}

// Armed calls the injected Armed or the real version.
func (m *Motor) Armed() bool {
	if m.ArmedFunc == nil {
		return m.Motor.Armed()
	}
	return m.ArmedFunc()
}

// CheckFaults calls the injected CheckFaults, defaulting to no faults.
func (m *Motor) CheckFaults() fault.Error {
	if m.CheckFaultsFunc == nil {
		return fault.None
	}
	return m.CheckFaultsFunc()
}
