package inject

import "github.com/axlemotion/axle/trajectory"

// Planner is an injected trajectory planner.
type Planner struct {
	trajectory.Planner
	PlanTrapezoidalFunc func(target, pos, vel, maxVel, accel, decel float64) error
}

// PlanTrapezoidal calls the injected PlanTrapezoidal or the real version.
func (p *Planner) PlanTrapezoidal(target, pos, vel, maxVel, accel, decel float64) error {
	if p.PlanTrapezoidalFunc == nil {
		return p.Planner.PlanTrapezoidal(target, pos, vel, maxVel, accel, decel)
	}
	return p.PlanTrapezoidalFunc(target, pos, vel, maxVel, accel, decel)
}
