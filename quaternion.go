package aeromath

import (
	"fmt"
	"math"

	"github.com/gonum/floats"
)

const (
	// quatNormThreshold is sqrt(8 * 2^-54). For |1 - |q|^2| below this, the
	// first-order normalization 2/(1+|q|^2) is accurate to machine precision
	// and avoids the cancellation in the square root for near-unit inputs.
	quatNormThreshold = 2.1073424255447017e-8

	// minNormalFloat64 is the smallest normal (non-subnormal) float64.
	minNormalFloat64 = 2.2250738585072014e-308
)

// Quaternion is a scalar-first unit quaternion (s, x, y, z) following the
// Hamilton convention. It represents a rotation: s = cos(θ/2) and
// (x, y, z) = sin(θ/2)·axis for eigen angle θ about the eigen axis.
// Every quaternion returned by this package has unit norm.
type Quaternion [4]float64

// NewQuaternion returns the unit quaternion built by normalizing the provided
// components. It returns an error for a (numerically) zero-magnitude input,
// since a zero quaternion has no sensible normalized form.
func NewQuaternion(s, x, y, z float64) (Quaternion, error) {
	q := Quaternion{s, x, y, z}
	mag := math.Sqrt(s*s + x*x + y*y + z*z)
	if floats.EqualWithinAbs(mag, 0, 1e-12) {
		return Quaternion{}, fmt.Errorf("cannot normalize zero-magnitude quaternion (%g, %g, %g, %g)", s, x, y, z)
	}
	q.Normalize()
	return q, nil
}

// IdentityQuaternion returns the unity quaternion (1, 0, 0, 0), i.e. no rotation.
func IdentityQuaternion() Quaternion {
	return Quaternion{1, 0, 0, 0}
}

// S returns the scalar component.
func (q Quaternion) S() float64 { return q[0] }

// X returns the first vector component.
func (q Quaternion) X() float64 { return q[1] }

// Y returns the second vector component.
func (q Quaternion) Y() float64 { return q[2] }

// Z returns the third vector component.
func (q Quaternion) Z() float64 { return q[3] }

// At returns the component at the given index, (s, x, y, z) for indices 0-3.
// It panics for an out-of-range index. Direct indexing of the underlying
// array is available when the index is known to be in range.
func (q Quaternion) At(idx int) float64 {
	if idx < 0 || idx > 3 {
		panic(fmt.Errorf("quaternion index %d out of range [0, 3]", idx))
	}
	return q[idx]
}

// VectorPart returns the (x, y, z) components as a 3x1 vector.
func (q Quaternion) VectorPart() []float64 {
	return []float64{q[1], q[2], q[3]}
}

// Normalize scales the quaternion to unit norm in place. A near-unit input
// uses a first-order scale factor to avoid catastrophic cancellation in the
// square root. Panics on a zero-magnitude quaternion: that state is never
// produced by this package, so reaching it means the caller built an invalid
// value by hand.
func (q *Quaternion) Normalize() {
	magSq := q[0]*q[0] + q[1]*q[1] + q[2]*q[2] + q[3]*q[3]
	oneMinusMagSq := 1 - magSq

	var scale float64
	if oneMinusMagSq > -quatNormThreshold && oneMinusMagSq < quatNormThreshold {
		scale = 2 / (1 + magSq)
	} else {
		if floats.EqualWithinAbs(magSq, 0, 1e-24) {
			panic("cannot normalize zero-magnitude quaternion")
		}
		scale = 1 / math.Sqrt(magSq)
	}

	q[0] *= scale
	q[1] *= scale
	q[2] *= scale
	q[3] *= scale
}

// Conjugate returns (s, -x, -y, -z). For a unit quaternion this equals the
// multiplicative inverse.
func (q Quaternion) Conjugate() Quaternion {
	return Quaternion{q[0], -q[1], -q[2], -q[3]}
}

// ForcePositiveRotation negates all components if the scalar part is
// negative, mapping the rotation to its equivalent representation with the
// eigen angle in [0, π]. q and -q represent the same rotation. Idempotent.
func (q *Quaternion) ForcePositiveRotation() {
	if q[0] < 0 {
		q[0] *= -1
		q[1] *= -1
		q[2] *= -1
		q[3] *= -1
	}
}

// EigenAxisAngle returns the axis-angle form of the rotation, with the angle
// in [0, π]. For a (numerically) zero rotation angle the axis is ill-defined
// and the +X axis is returned with a zero angle.
func (q Quaternion) EigenAxisAngle() (angleRad float64, axis []float64) {
	quat := q
	quat.ForcePositiveRotation()

	vec := quat.VectorPart()
	sinHalfAngle := Norm(vec) // |vector part| is sin(θ/2)

	if sinHalfAngle < minNormalFloat64 {
		return 0, []float64{1, 0, 0}
	}

	axis = make([]float64, 3)
	for i, val := range vec {
		axis[i] = val / sinHalfAngle
	}

	// Use whichever inverse trig branch is better conditioned.
	if sinHalfAngle < quat[0] {
		angleRad = 2 * AsinSafe(sinHalfAngle)
	} else {
		angleRad = 2 * AcosSafe(quat[0])
	}
	return angleRad, axis
}

// EigenAxis returns the eigen axis of the rotation.
func (q Quaternion) EigenAxis() []float64 {
	_, axis := q.EigenAxisAngle()
	return axis
}

// EigenAngle returns the eigen angle of the rotation in [0, π] radians.
func (q Quaternion) EigenAngle() float64 {
	angle, _ := q.EigenAxisAngle()
	return angle
}

// Mul returns the Hamilton product q * q1, the composition which applies q1
// first and then q. From Schaub and Junkins, the scalar part is
// s1·s2 - v2·v1 and the vector part is s1·v2 + s2·v1 + v2×v1.
// Both operands being unit quaternions, the result is renormalized to absorb
// floating-point drift.
func (q Quaternion) Mul(q1 Quaternion) Quaternion {
	q2s, q1s := q[0], q1[0]
	q2v, q1v := q.VectorPart(), q1.VectorPart()

	scalar := q1s*q2s - Dot(q2v, q1v)
	crossTerm := Cross(q2v, q1v)

	out := Quaternion{
		scalar,
		q1s*q2v[0] + q2s*q1v[0] + crossTerm[0],
		q1s*q2v[1] + q2s*q1v[1] + crossTerm[1],
		q1s*q2v[2] + q2s*q1v[2] + crossTerm[2],
	}
	out.Normalize()
	return out
}

// ErrorQuaternion returns the rotation from the true attitude to the measured
// attitude, qTrue^-1 * qMeasured.
func ErrorQuaternion(qTrue, qMeasured Quaternion) Quaternion {
	return qTrue.Conjugate().Mul(qMeasured)
}

// String implements the Stringer interface, comma-separating the components.
func (q Quaternion) String() string {
	return fmt.Sprintf("%g,%g,%g,%g", q[0], q[1], q[2], q[3])
}
