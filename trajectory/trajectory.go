// Package trajectory provides positional trajectory planning for the axis.
// The axis core only depends on the Planner contract; Trapezoidal is the
// stock implementation used for homing moves and position control.
package trajectory

// A Planner produces a positional trajectory to a target point.
type Planner interface {
	// PlanTrapezoidal plans a move from (pos, vel) to target bounded by
	// maxVel, accel, and decel (all positive).
	PlanTrapezoidal(target, pos, vel, maxVel, accel, decel float64) error
}

// Step is one evaluated point of a planned trajectory.
type Step struct {
	Pos float64
	Vel float64
	Acc float64
}
