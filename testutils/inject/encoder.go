package inject

import (
	"context"

	"github.com/axlemotion/axle/encoder"
	"github.com/axlemotion/axle/fault"
)

// Encoder is an injected encoder.
type Encoder struct {
	encoder.Encoder
	UpdateFunc               func() error
	RunIndexSearchFunc       func(ctx context.Context) error
	RunOffsetCalibrationFunc func(ctx context.Context) error
	SetLinearCountFunc       func(count int64)
	IsReadyFunc              func() bool
	PosEstimateFunc          func() float64
	VelEstimateFunc          func() float64
	PhaseFunc                func() float64
	ShadowCountFunc          func() int64
	CPRFunc                  func() int
	UsesIndexFunc            func() bool
	CheckFaultsFunc          func() fault.Error
}

// Update calls the injected Update or the real version.
func (e *Encoder) Update() error {
	if e.UpdateFunc == nil {
		return e.Encoder.Update()
	}
	return e.UpdateFunc()
}

// RunIndexSearch calls the injected RunIndexSearch or the real version.
func (e *Encoder) RunIndexSearch(ctx context.Context) error {
	if e.RunIndexSearchFunc == nil {
		return e.Encoder.RunIndexSearch(ctx)
	}
	return e.RunIndexSearchFunc(ctx)
}

// RunOffsetCalibration calls the injected RunOffsetCalibration or the real version.
func (e *Encoder) RunOffsetCalibration(ctx context.Context) error {
	if e.RunOffsetCalibrationFunc == nil {
		return e.Encoder.RunOffsetCalibration(ctx)
	}
	return e.RunOffsetCalibrationFunc(ctx)
}

// SetLinearCount calls the injected SetLinearCount or the real version.
func (e *Encoder) SetLinearCount(count int64) {
	if e.SetLinearCountFunc == nil {
		e.Encoder.SetLinearCount(count)
		return
	}
	e.SetLinearCountFunc(count)
}

// IsReady calls the injected IsReady or the real version.
func (e *Encoder) IsReady() bool {
	if e.IsReadyFunc == nil {
		return e.Encoder.IsReady()
	}
	return e.IsReadyFunc()
}

// PosEstimate calls the injected PosEstimate, defaulting to 0.
func (e *Encoder) PosEstimate() float64 {
	if e.PosEstimateFunc == nil {
		return 0
	}
	return e.PosEstimateFunc()
}

// VelEstimate calls the injected VelEstimate, defaulting to 0.
func (e *Encoder) VelEstimate() float64 {
	if e.VelEstimateFunc == nil {
		return 0
	}
	return e.VelEstimateFunc()
}

// Phase calls the injected Phase, defaulting to 0.
func (e *Encoder) Phase() float64 {
	if e.PhaseFunc == nil {
		return 0
	}
	return e.PhaseFunc()
}

// ShadowCount calls the injected ShadowCount, defaulting to 0.
func (e *Encoder) ShadowCount() int64 {
	if e.ShadowCountFunc == nil {
		return 0
	}
	return e.ShadowCountFunc()
}

// CPR calls the injected CPR, defaulting to 8192.
func (e *Encoder) CPR() int {
	if e.CPRFunc == nil {
		return 8192
	}
	return e.CPRFunc()
}

// UsesIndex calls the injected UsesIndex, defaulting to false.
func (e *Encoder) UsesIndex() bool {
	if e.UsesIndexFunc == nil {
		return false
	}
	return e.UsesIndexFunc()
}

// CheckFaults calls the injected CheckFaults, defaulting to no faults.
func (e *Encoder) CheckFaults() fault.Error {
	if e.CheckFaultsFunc == nil {
		return fault.None
	}
	return e.CheckFaultsFunc()
}
