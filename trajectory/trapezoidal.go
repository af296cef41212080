package trajectory

import (
	"math"

	"github.com/pkg/errors"
)

// Trapezoidal plans asymmetric trapezoidal velocity profiles. When the move
// is too short to reach cruise velocity the profile degenerates to a
// triangle. A plan may start with a nonzero initial velocity, including one
// pointing away from the target.
type Trapezoidal struct {
	startPos float64
	startVel float64
	accLim   float64
	velLim   float64
	decLim   float64

	tAccel float64
	tVel   float64
	tDecel float64
	tTotal float64

	planned bool
}

// NewTrapezoidal returns an empty planner; call PlanTrapezoidal before Eval.
func NewTrapezoidal() *Trapezoidal {
	return &Trapezoidal{}
}

// PlanTrapezoidal plans a move from (pos, vel) to target bounded by maxVel,
// accel, and decel.
func (t *Trapezoidal) PlanTrapezoidal(target, pos, vel, maxVel, accel, decel float64) error {
	if maxVel <= 0 || accel <= 0 || decel <= 0 {
		return errors.Errorf("trapezoidal plan needs positive limits, have vel %.4f acc %.4f dec %.4f",
			maxVel, accel, decel)
	}
	if math.Abs(vel) > maxVel {
		return errors.Errorf("initial velocity %.4f exceeds velocity limit %.4f", vel, maxVel)
	}

	dX := target - pos
	stopDist := vel * vel / (2.0 * decel)
	dXstop := math.Copysign(stopDist, vel)
	s := sign(dX - dXstop)
	if s == 0 {
		// already stopped on target
		s = 1
	}

	accLim := s * accel
	velLim := s * maxVel
	decLim := -s * decel

	// If we start out above the cruise velocity, the first phase
	// decelerates toward it instead.
	if s*vel > s*velLim {
		accLim = -s * accel
	}

	tAccel := (velLim - vel) / accLim
	tDecel := -velLim / decLim

	minDist := 0.5*tAccel*(velLim+vel) + 0.5*tDecel*velLim
	var tVel float64
	if s*dX < s*minDist {
		// Too short for a cruise phase; solve the triangular peak velocity.
		num := decLim*vel*vel + 2.0*accLim*decLim*dX
		velLim = s * math.Sqrt(math.Max(num/(decLim-accLim), 0.0))
		tAccel = math.Max(0.0, (velLim-vel)/accLim)
		tDecel = math.Max(0.0, -velLim/decLim)
		tVel = 0.0
	} else {
		tVel = (dX - minDist) / velLim
	}

	t.startPos = pos
	t.startVel = vel
	t.accLim = accLim
	t.velLim = velLim
	t.decLim = decLim
	t.tAccel = tAccel
	t.tVel = tVel
	t.tDecel = tDecel
	t.tTotal = tAccel + tVel + tDecel
	t.planned = true
	return nil
}

// Duration returns the total plan time in seconds.
func (t *Trapezoidal) Duration() float64 {
	return t.tTotal
}

// Eval returns the trajectory step at time tt seconds after the plan start.
// Before the start it holds the initial state; past the end it holds the
// final position at zero velocity.
func (t *Trapezoidal) Eval(tt float64) Step {
	if !t.planned {
		return Step{}
	}
	var y Step
	switch {
	case tt < 0.0:
		y.Pos = t.startPos
		y.Vel = t.startVel
	case tt < t.tAccel:
		y.Pos = t.startPos + t.startVel*tt + 0.5*t.accLim*tt*tt
		y.Vel = t.startVel + t.accLim*tt
		y.Acc = t.accLim
	case tt < t.tAccel+t.tVel:
		dt := tt - t.tAccel
		y.Pos = t.posAtCruiseStart() + t.velLim*dt
		y.Vel = t.velLim
	case tt < t.tTotal:
		dt := tt - (t.tAccel + t.tVel)
		y.Pos = t.posAtDecelStart() + t.velLim*dt + 0.5*t.decLim*dt*dt
		y.Vel = t.velLim + t.decLim*dt
		y.Acc = t.decLim
	default:
		y.Pos = t.posAtDecelStart() + t.velLim*t.tDecel + 0.5*t.decLim*t.tDecel*t.tDecel
	}
	return y
}

func (t *Trapezoidal) posAtCruiseStart() float64 {
	return t.startPos + t.startVel*t.tAccel + 0.5*t.accLim*t.tAccel*t.tAccel
}

func (t *Trapezoidal) posAtDecelStart() float64 {
	return t.posAtCruiseStart() + t.velLim*t.tVel
}

func sign(x float64) float64 {
	if x == 0 {
		return 0
	}
	if math.Signbit(x) {
		return -1.0
	}
	return 1.0
}
