package inject

import "github.com/axlemotion/axle/controller"

// Controller is an injected controller.
type Controller struct {
	controller.Controller
	UpdateFunc                func(pos, vel float64) (float64, error)
	ControlModeFunc           func() controller.ControlMode
	SetControlModeFunc        func(mode controller.ControlMode)
	SetPosSetpointFunc        func(pos, velFF, currentFF float64)
	SetVelSetpointFunc        func(vel, currentFF float64)
	AdjustPosSetpointFunc     func(delta float64)
	ResetVelIntegratorFunc    func()
	StartHomingFunc           func() error
	HomingSpeedFunc           func() float64
	SetTrajStartLoopCountFunc func(n uint64)
	AllocateCoggingMapFunc    func(size int) error
}

// Update calls the injected Update or the real version.
func (c *Controller) Update(pos, vel float64) (float64, error) {
	if c.UpdateFunc == nil {
		return c.Controller.Update(pos, vel)
	}
	return c.UpdateFunc(pos, vel)
}

// ControlMode calls the injected ControlMode, defaulting to velocity control.
func (c *Controller) ControlMode() controller.ControlMode {
	if c.ControlModeFunc == nil {
		return controller.VelocityControl
	}
	return c.ControlModeFunc()
}

// SetControlMode calls the injected SetControlMode or the real version.
func (c *Controller) SetControlMode(mode controller.ControlMode) {
	if c.SetControlModeFunc == nil {
		c.Controller.SetControlMode(mode)
		return
	}
	c.SetControlModeFunc(mode)
}

// SetPosSetpoint calls the injected SetPosSetpoint or the real version.
func (c *Controller) SetPosSetpoint(pos, velFF, currentFF float64) {
	if c.SetPosSetpointFunc == nil {
		c.Controller.SetPosSetpoint(pos, velFF, currentFF)
		return
	}
	c.SetPosSetpointFunc(pos, velFF, currentFF)
}

// SetVelSetpoint calls the injected SetVelSetpoint or the real version.
func (c *Controller) SetVelSetpoint(vel, currentFF float64) {
	if c.SetVelSetpointFunc == nil {
		c.Controller.SetVelSetpoint(vel, currentFF)
		return
	}
	c.SetVelSetpointFunc(vel, currentFF)
}

// AdjustPosSetpoint calls the injected AdjustPosSetpoint or the real version.
func (c *Controller) AdjustPosSetpoint(delta float64) {
	if c.AdjustPosSetpointFunc == nil {
		c.Controller.AdjustPosSetpoint(delta)
		return
	}
	c.AdjustPosSetpointFunc(delta)
}

// ResetVelIntegrator calls the injected ResetVelIntegrator or the real version.
func (c *Controller) ResetVelIntegrator() {
	if c.ResetVelIntegratorFunc == nil {
		c.Controller.ResetVelIntegrator()
		return
	}
	c.ResetVelIntegratorFunc()
}

// StartHoming calls the injected StartHoming or the real version.
func (c *Controller) StartHoming() error {
	if c.StartHomingFunc == nil {
		return c.Controller.StartHoming()
	}
	return c.StartHomingFunc()
}

// HomingSpeed calls the injected HomingSpeed, defaulting to 0.
func (c *Controller) HomingSpeed() float64 {
	if c.HomingSpeedFunc == nil {
		return 0
	}
	return c.HomingSpeedFunc()
}

// SetTrajStartLoopCount calls the injected SetTrajStartLoopCount or the real version.
func (c *Controller) SetTrajStartLoopCount(n uint64) {
	if c.SetTrajStartLoopCountFunc == nil {
		c.Controller.SetTrajStartLoopCount(n)
		return
	}
	c.SetTrajStartLoopCountFunc(n)
}

// AllocateCoggingMap calls the injected AllocateCoggingMap, defaulting to success.
func (c *Controller) AllocateCoggingMap(size int) error {
	if c.AllocateCoggingMapFunc == nil {
		return nil
	}
	return c.AllocateCoggingMapFunc(size)
}
