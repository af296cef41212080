package inject

import "github.com/axlemotion/axle/sensorless"

// Estimator is an injected sensorless estimator.
type Estimator struct {
	sensorless.Estimator
	UpdateFunc      func() error
	PLLPosFunc      func() float64
	VelEstimateFunc func() float64
	PhaseFunc       func() float64
}

// Update calls the injected Update or the real version.
func (e *Estimator) Update() error {
	if e.UpdateFunc == nil {
		return e.Estimator.Update()
	}
	return e.UpdateFunc()
}

// PLLPos calls the injected PLLPos, defaulting to 0.
func (e *Estimator) PLLPos() float64 {
	if e.PLLPosFunc == nil {
		return 0
	}
	return e.PLLPosFunc()
}

// VelEstimate calls the injected VelEstimate, defaulting to 0.
func (e *Estimator) VelEstimate() float64 {
	if e.VelEstimateFunc == nil {
		return 0
	}
	return e.VelEstimateFunc()
}

// Phase calls the injected Phase, defaulting to 0.
func (e *Estimator) Phase() float64 {
	if e.PhaseFunc == nil {
		return 0
	}
	return e.PhaseFunc()
}
