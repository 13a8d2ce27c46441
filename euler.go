package aeromath

import "fmt"

// Euler321 holds yaw, pitch, and roll angles in radians for a 3-2-1
// (yaw-pitch-roll) Euler rotation sequence. The angles carry no wrapping
// invariant and may be any real value.
type Euler321 struct {
	Yaw   float64 // rotation about the Z axis [rad]
	Pitch float64 // rotation about the intermediate Y axis [rad]
	Roll  float64 // rotation about the final X axis [rad]
}

// NewEuler321 returns the 3-2-1 Euler angle set for the given yaw, pitch and
// roll in radians.
func NewEuler321(yawRad, pitchRad, rollRad float64) Euler321 {
	return Euler321{Yaw: yawRad, Pitch: pitchRad, Roll: rollRad}
}

// String implements the Stringer interface, comma-separating the angles.
func (e Euler321) String() string {
	return fmt.Sprintf("%g,%g,%g", e.Yaw, e.Pitch, e.Roll)
}
