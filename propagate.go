package aeromath

import (
	"os"
	"time"

	"github.com/ChristopherRabotin/ode"
	kitlog "github.com/go-kit/kit/log"
)

// BodyRateFunc returns the body angular rate vector in rad/s at the given
// integration time in seconds past the propagation epoch.
type BodyRateFunc func(t float64) []float64

// ConstantBodyRate returns a BodyRateFunc for a constant angular rate.
func ConstantBodyRate(wRadps []float64) BodyRateFunc {
	return func(t float64) []float64 {
		return wRadps
	}
}

// AttitudePropagator is an ode.Integrable which propagates an attitude
// quaternion through the kinematic differential equation q̇ = 0.5·Ω(ω)·q
// under a caller-provided body rate profile. The integrated state is
// renormalized at each accepted step, so long propagations do not drift off
// the unit sphere.
type AttitudePropagator struct {
	Attitude Quaternion    // current attitude
	Rate     BodyRateFunc  // body rates driving the kinematics
	StartDT  time.Time     // epoch of the integration
	StopDT   time.Time     // end time of the integration
	dt       time.Time     // current time of the integration
	step     time.Duration // time step
	logger   kitlog.Logger // logger
}

// GetState gets the state.
func (p *AttitudePropagator) GetState() []float64 {
	return []float64{p.Attitude[0], p.Attitude[1], p.Attitude[2], p.Attitude[3]}
}

// SetState sets the next state at time t.
func (p *AttitudePropagator) SetState(t float64, s []float64) {
	p.Attitude = Quaternion{s[0], s[1], s[2], s[3]}
	p.Attitude.Normalize()
	// Increment the time.
	p.dt = p.dt.Add(p.step)
}

// Stop returns whether we should stop the integration.
func (p *AttitudePropagator) Stop(t float64) bool {
	return p.dt.After(p.StopDT)
}

// Func does the math: the quaternion kinematic differential equation for the
// body rate at time t. The raw integrator state may have drifted slightly off
// unit norm, so it is renormalized before differentiation.
func (p *AttitudePropagator) Func(t float64, f []float64) []float64 {
	q := Quaternion{f[0], f[1], f[2], f[3]}
	q.Normalize()
	return QuaternionDerivative(q, p.Rate(t))
}

// PropagateUntil propagates until the given time is reached.
func (p *AttitudePropagator) PropagateUntil(dt time.Time) {
	p.StopDT = dt
	startAttitude := p.Attitude
	ode.NewRK4(0, p.step.Seconds(), p).Solve() // Blocking.
	totalRotation := ErrorQuaternion(startAttitude, p.Attitude)
	p.logger.Log("level", "notice", "status", "finished",
		"duration", p.dt.Sub(p.StartDT).String(),
		"rotation(rad)", totalRotation.EigenAngle())
}

// NewAttitudePropagator returns a new attitude propagator for the given
// initial attitude and body rate profile, stepping at the provided interval.
func NewAttitudePropagator(n string, q0 Quaternion, rate BodyRateFunc, epoch time.Time, step time.Duration) *AttitudePropagator {
	klog := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stdout))
	klog = kitlog.With(klog, "propagator", n)
	// The step is added up front because the time advance happens in
	// SetState, which the integrator calls after the first step.
	return &AttitudePropagator{q0, rate, epoch, epoch, epoch.Add(step), step, klog}
}
