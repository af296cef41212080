package axis

import "github.com/axlemotion/axle/fault"

// spinUpEarly is phase 1 of the sensorless spin-up: current and phase ramp
// linearly with a normalized progress variable over the configured ramp time.
type spinUpEarly struct {
	a *Axis
	x float64
}

func (m *spinUpEarly) name() string { return "spin_up_early" }

func (m *spinUpEarly) cycle() bool {
	a := m.a
	phase := wrapPmPi(a.cfg.RampUpDistance * m.x)
	current := a.cfg.SpinUpCurrent * m.x
	m.x += a.cyclePeriodSec / a.cfg.RampUpTime
	if err := a.motor.Update(current, phase); err != nil {
		a.setFault(fault.MotorFailed)
		a.logger.Warnw("spin-up motor update failed", "error", err)
		return false
	}
	return m.x < 1.0
}

// spinUpLate is phase 2: velocity integrates the configured acceleration
// from the ramp endpoint until the target velocity is reached, holding the
// spin-up current.
type spinUpLate struct {
	a     *Axis
	vel   float64
	phase float64
}

func (m *spinUpLate) name() string { return "spin_up_late" }

func (m *spinUpLate) cycle() bool {
	a := m.a
	m.vel += a.cfg.SpinUpAcceleration * a.cyclePeriodSec
	m.phase = wrapPmPi(m.phase + m.vel*a.cyclePeriodSec)
	if err := a.motor.Update(a.cfg.SpinUpCurrent, m.phase); err != nil {
		a.setFault(fault.MotorFailed)
		a.logger.Warnw("spin-up motor update failed", "error", err)
		return false
	}
	return m.vel < a.cfg.SpinUpTargetVel
}

// runSensorlessSpinUp brings the motor up open loop until the estimator has
// enough velocity to track. On success the controller's velocity setpoint is
// primed with the spin-up target so the handoff into closed-loop sensorless
// control is smooth (arming the motor resets the setpoint to zero).
func (a *Axis) runSensorlessSpinUp() bool {
	a.runControlLoop(&spinUpEarly{a: a})
	if a.Faults().Any() {
		return false
	}

	a.runControlLoop(&spinUpLate{
		a:     a,
		vel:   a.cfg.RampUpDistance / a.cfg.RampUpTime,
		phase: wrapPmPi(a.cfg.RampUpDistance),
	})
	if a.Faults().Any() {
		return false
	}

	a.controller.SetVelSetpoint(a.cfg.SpinUpTargetVel, 0.0)
	return true
}
