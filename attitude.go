package aeromath

import (
	"math"

	"github.com/gonum/floats"
	"github.com/gonum/matrix/mat64"
)

// R1 rotation about the 1st axis.
func R1(x float64) *mat64.Dense {
	s, c := math.Sincos(x)
	return mat64.NewDense(3, 3, []float64{1, 0, 0, 0, c, s, 0, -s, c})
}

// R2 rotation about the 2nd axis.
func R2(x float64) *mat64.Dense {
	s, c := math.Sincos(x)
	return mat64.NewDense(3, 3, []float64{c, 0, -s, 0, 1, 0, s, 0, c})
}

// R3 rotation about the 3rd axis.
func R3(x float64) *mat64.Dense {
	s, c := math.Sincos(x)
	return mat64.NewDense(3, 3, []float64{c, s, 0, -s, c, 0, 0, 0, 1})
}

// MxV33 multiplies a matrix with a vector. Note that there is no dimension check!
func MxV33(m *mat64.Dense, v []float64) (o []float64) {
	vVec := mat64.NewVector(len(v), v)
	var rVec mat64.Vector
	rVec.MulVec(m, vVec)
	return []float64{rVec.At(0, 0), rVec.At(1, 0), rVec.At(2, 0)}
}

// Euler321ToDCM returns the direction cosine matrix for the given 3-2-1
// yaw-pitch-roll sequence, i.e. R1(roll)·R2(pitch)·R3(yaw). Closed form per
// Schaub and Junkins eq. 3.33. No singularities in this direction.
func Euler321ToDCM(e Euler321) *mat64.Dense {
	syaw, cyaw := math.Sincos(e.Yaw)
	spitch, cpitch := math.Sincos(e.Pitch)
	sroll, croll := math.Sincos(e.Roll)

	return mat64.NewDense(3, 3, []float64{
		cpitch * cyaw, cpitch * syaw, -spitch,
		sroll*spitch*cyaw - croll*syaw, sroll*spitch*syaw + croll*cyaw, sroll * cpitch,
		croll*spitch*cyaw + sroll*syaw, croll*spitch*syaw - sroll*cyaw, croll * cpitch,
	})
}

// DCMToEuler321 extracts the 3-2-1 yaw-pitch-roll angles from a direction
// cosine matrix. No gimbal-lock guard is applied: near ±90 deg pitch the
// yaw/roll split is ill-conditioned. The pitch term goes through AsinSafe
// since round-off can push dcm(0,2) slightly outside [-1, 1] for an
// orthonormal input.
func DCMToEuler321(dcm *mat64.Dense) Euler321 {
	return Euler321{
		Yaw:   math.Atan2(dcm.At(0, 1), dcm.At(0, 0)),
		Pitch: -AsinSafe(dcm.At(0, 2)),
		Roll:  math.Atan2(dcm.At(1, 2), dcm.At(2, 2)),
	}
}

// QuaternionToDCM returns the direction cosine matrix equivalent of the given
// unit quaternion, following the transformation-matrix convention
// I - 2s[v]ₓ + 2[v]ₓ² (coordinates of a fixed vector expressed in the rotated
// frame). QuaternionRotate, QuaternionDerivative and DCMToQuaternion all
// follow this same convention.
func QuaternionToDCM(q Quaternion) *mat64.Dense {
	q0, q1, q2, q3 := q[0], q[1], q[2], q[3]
	q00, q11, q22, q33 := q0*q0, q1*q1, q2*q2, q3*q3
	q01, q02, q03 := q0*q1, q0*q2, q0*q3
	q12, q13, q23 := q1*q2, q1*q3, q2*q3

	return mat64.NewDense(3, 3, []float64{
		q00 + q11 - q22 - q33, 2 * (q12 + q03), 2 * (q13 - q02),
		2 * (q12 - q03), q00 - q11 + q22 - q33, 2 * (q23 + q01),
		2 * (q13 + q02), 2 * (q23 - q01), q00 - q11 - q22 + q33,
	})
}

// DCMToQuaternion converts an orthonormal direction cosine matrix to a unit
// quaternion via the Shepperd/Stanley method: of the four squared-component
// candidates derived from the trace and diagonal, the largest is taken as the
// division pivot for numerical conditioning. Ties resolve to the first
// largest in (s, x, y, z) order. Feeding a non-orthonormal matrix is the
// caller's contract violation and yields an unspecified result.
func DCMToQuaternion(dcm *mat64.Dense) Quaternion {
	tr := mat64.Trace(dcm)

	qSquared := []float64{
		0.25 * (1 + tr),
		0.25 * (1 + 2*dcm.At(0, 0) - tr),
		0.25 * (1 + 2*dcm.At(1, 1) - tr),
		0.25 * (1 + 2*dcm.At(2, 2) - tr),
	}

	largest := floats.MaxIdx(qSquared)
	pivot := math.Sqrt(qSquared[largest])

	var q Quaternion
	switch largest {
	case 0:
		q = Quaternion{
			pivot,
			0.25 * (dcm.At(1, 2) - dcm.At(2, 1)) / pivot,
			0.25 * (dcm.At(2, 0) - dcm.At(0, 2)) / pivot,
			0.25 * (dcm.At(0, 1) - dcm.At(1, 0)) / pivot,
		}
	case 1:
		q = Quaternion{
			0.25 * (dcm.At(1, 2) - dcm.At(2, 1)) / pivot,
			pivot,
			0.25 * (dcm.At(0, 1) + dcm.At(1, 0)) / pivot,
			0.25 * (dcm.At(2, 0) + dcm.At(0, 2)) / pivot,
		}
	case 2:
		q = Quaternion{
			0.25 * (dcm.At(2, 0) - dcm.At(0, 2)) / pivot,
			0.25 * (dcm.At(0, 1) + dcm.At(1, 0)) / pivot,
			pivot,
			0.25 * (dcm.At(1, 2) + dcm.At(2, 1)) / pivot,
		}
	case 3:
		q = Quaternion{
			0.25 * (dcm.At(0, 1) - dcm.At(1, 0)) / pivot,
			0.25 * (dcm.At(2, 0) + dcm.At(0, 2)) / pivot,
			0.25 * (dcm.At(1, 2) + dcm.At(2, 1)) / pivot,
			pivot,
		}
	default:
		// MaxIdx over four candidates cannot land elsewhere.
		panic("DCM to quaternion conversion found no valid pivot")
	}

	q.Normalize()
	return q
}

// QuaternionToEuler321 converts a unit quaternion to 3-2-1 yaw-pitch-roll
// angles. Algebraically equivalent to QuaternionToDCM followed by
// DCMToEuler321. Same no-gimbal-lock-guard policy; the pitch term goes
// through AsinSafe since round-off can push 2(q0·q2 - q1·q3) slightly outside
// [-1, 1] for a unit quaternion.
func QuaternionToEuler321(q Quaternion) Euler321 {
	q0, q1, q2, q3 := q[0], q[1], q[2], q[3]
	q11, q22, q33 := q1*q1, q2*q2, q3*q3

	// Assumes ||q|| = 1, hence the 0.5 - ... denominators.
	return Euler321{
		Yaw:   math.Atan2(q1*q2+q0*q3, 0.5-q22-q33),
		Pitch: AsinSafe(2 * (q0*q2 - q1*q3)),
		Roll:  math.Atan2(q2*q3+q0*q1, 0.5-q22-q11),
	}
}

// Euler321ToQuaternion converts 3-2-1 yaw-pitch-roll angles to the equivalent
// unit quaternion with a positive scalar part.
func Euler321ToQuaternion(e Euler321) Quaternion {
	q := DCMToQuaternion(Euler321ToDCM(e))
	q.ForcePositiveRotation()
	return q
}

// QuaternionRotate transforms the vector vB expressed in frame B into frame A
// coordinates using qAB, without building the full DCM. Expanded form per
// Schaub and Junkins eq. 3.99; identical to MxV33(QuaternionToDCM(qAB), vB)
// within floating tolerance.
func QuaternionRotate(qAB Quaternion, vB []float64) []float64 {
	q0, q1, q2, q3 := qAB[0], qAB[1], qAB[2], qAB[3]
	q00, q11, q22, q33 := q0*q0, q1*q1, q2*q2, q3*q3
	q01, q02, q03 := q0*q1, q0*q2, q0*q3
	q12, q13, q23 := q1*q2, q1*q3, q2*q3

	return []float64{
		(q00+q11-q22-q33)*vB[0] + 2*(q12+q03)*vB[1] + 2*(q13-q02)*vB[2],
		2*(q12-q03)*vB[0] + (q00-q11+q22-q33)*vB[1] + 2*(q23+q01)*vB[2],
		2*(q13+q02)*vB[0] + 2*(q23-q01)*vB[1] + (q00-q11-q22+q33)*vB[2],
	}
}

// QuaternionDerivative returns the quaternion kinematic differential equation
// q̇ = 0.5·Ω(ω)·q for the body angular rate ω in rad/s, expanded per Schaub
// and Junkins eq. 3.103. The result is a plain 4x1 vector, not a unit
// quaternion; integrators renormalize the integrated state themselves.
func QuaternionDerivative(q Quaternion, wRadps []float64) []float64 {
	return []float64{
		-0.5 * (wRadps[0]*q[1] + wRadps[1]*q[2] + wRadps[2]*q[3]),
		0.5 * (wRadps[0]*q[0] + wRadps[2]*q[2] - wRadps[1]*q[3]),
		0.5 * (wRadps[1]*q[0] - wRadps[2]*q[1] + wRadps[0]*q[3]),
		0.5 * (wRadps[2]*q[0] + wRadps[1]*q[1] - wRadps[0]*q[2]),
	}
}
