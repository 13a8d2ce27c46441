package aeromath

import (
	"math"
	"math/rand"
	"testing"

	"github.com/gonum/floats"
	"github.com/gonum/matrix/mat64"
	"github.com/gonum/stat/distmv"
)

// randomQuaternions samples n unit quaternions uniformly over SO(3) by
// normalizing draws from a 4D standard normal.
func randomQuaternions(t *testing.T, n int) []Quaternion {
	seed := rand.New(rand.NewSource(42))
	normal, ok := distmv.NewNormal([]float64{0, 0, 0, 0},
		mat64.NewSymDense(4, []float64{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}), seed)
	if !ok {
		t.Fatal("could not create 4D normal distribution")
	}
	quats := make([]Quaternion, n)
	for i := range quats {
		s := normal.Rand(nil)
		q, err := NewQuaternion(s[0], s[1], s[2], s[3])
		if err != nil {
			t.Fatalf("could not sample quaternion: %s", err)
		}
		quats[i] = q
	}
	return quats
}

func matricesEqual(a, b *mat64.Dense, tol float64) bool {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if !floats.EqualWithinAbs(a.At(i, j), b.At(i, j), tol) {
				return false
			}
		}
	}
	return true
}

func identity3() *mat64.Dense {
	return mat64.NewDense(3, 3, []float64{1, 0, 0, 0, 1, 0, 0, 0, 1})
}

func TestEuler321ToDCMSchaubExample(t *testing.T) {
	// Schaub and Junkins Example 3.2: yaw 30 deg, pitch -45 deg, roll 60 deg.
	dcm := Euler321ToDCM(NewEuler321(30*deg2rad, -45*deg2rad, 60*deg2rad))
	expected := mat64.NewDense(3, 3, []float64{
		0.612372, 0.353553, 0.707107,
		-0.78033, 0.126826, 0.612372,
		0.126826, -0.926777, 0.353553,
	})
	if !matricesEqual(dcm, expected, 1e-5) {
		t.Fatalf("Schaub Example 3.2 mismatch:\n%+v", mat64.Formatted(dcm))
	}
}

func TestEuler321ToDCMMatchesElementaryRotations(t *testing.T) {
	e := NewEuler321(math.Pi/15, math.Pi/16, math.Pi/17)
	var r1r2, product mat64.Dense
	r1r2.Mul(R1(e.Roll), R2(e.Pitch))
	product.Mul(&r1r2, R3(e.Yaw))
	if !matricesEqual(Euler321ToDCM(e), &product, 1e-14) {
		t.Fatal("closed form disagrees with R1(roll)·R2(pitch)·R3(yaw)")
	}
}

func TestDCMOrthonormality(t *testing.T) {
	var ddt mat64.Dense
	for _, e := range []Euler321{
		NewEuler321(0, 0, 0),
		NewEuler321(30*deg2rad, -45*deg2rad, 60*deg2rad),
		NewEuler321(-2.9, 1.2, 3.1),
	} {
		dcm := Euler321ToDCM(e)
		ddt.Mul(dcm, dcm.T())
		if !matricesEqual(&ddt, identity3(), 1e-10) {
			t.Fatalf("Euler321ToDCM(%s) is not orthonormal", e)
		}
	}
	for _, q := range randomQuaternions(t, 25) {
		dcm := QuaternionToDCM(q)
		ddt.Mul(dcm, dcm.T())
		if !matricesEqual(&ddt, identity3(), 1e-10) {
			t.Fatalf("QuaternionToDCM(%s) is not orthonormal", q)
		}
	}
}

func TestDCMToEuler321RoundTrip(t *testing.T) {
	for _, e := range []Euler321{
		NewEuler321(0.5, 0.3, -0.7),
		NewEuler321(-2.5, 1.0, 3.0),
		NewEuler321(30*deg2rad, -45*deg2rad, 60*deg2rad),
	} {
		back := DCMToEuler321(Euler321ToDCM(e))
		if !floats.EqualWithinAbs(back.Yaw, e.Yaw, 1e-12) ||
			!floats.EqualWithinAbs(back.Pitch, e.Pitch, 1e-12) ||
			!floats.EqualWithinAbs(back.Roll, e.Roll, 1e-12) {
			t.Fatalf("round trip fail: %s != %s", back, e)
		}
	}
}

func TestDCMToQuaternionIdentity(t *testing.T) {
	q := DCMToQuaternion(identity3())
	if q != (Quaternion{1, 0, 0, 0}) {
		t.Fatalf("identity DCM should give the unity quaternion, got %s", q)
	}
}

func TestDCMQuaternionRoundTrip(t *testing.T) {
	// Near-180 deg rotations about each axis exercise every Shepperd pivot.
	s, c := math.Sincos(179 * deg2rad / 2)
	pivots := []Quaternion{
		{c, s, 0, 0},
		{c, 0, s, 0},
		{c, 0, 0, s},
		{math.Cos(0.005), math.Sin(0.005), 0, 0},
	}
	for _, q := range append(pivots, randomQuaternions(t, 25)...) {
		dcm := QuaternionToDCM(q)
		back := DCMToQuaternion(dcm)
		// q and -q represent the same rotation.
		q.ForcePositiveRotation()
		back.ForcePositiveRotation()
		for i := 0; i < 4; i++ {
			if !floats.EqualWithinAbs(back[i], q[i], 1e-8) {
				t.Fatalf("quaternion round trip fail: %s != %s", back, q)
			}
		}
		if !matricesEqual(QuaternionToDCM(back), dcm, 1e-8) {
			t.Fatal("DCM round trip fail")
		}
	}
}

func TestMulMatchesDCMComposition(t *testing.T) {
	// With the transformation-matrix convention, composing q1 then q2 as
	// q2*q1 corresponds to C(q1)·C(q2) acting on coordinates.
	quats := randomQuaternions(t, 10)
	var product mat64.Dense
	for i := 0; i+1 < len(quats); i += 2 {
		q1, q2 := quats[i], quats[i+1]
		product.Mul(QuaternionToDCM(q1), QuaternionToDCM(q2))
		if !matricesEqual(QuaternionToDCM(q2.Mul(q1)), &product, 1e-10) {
			t.Fatal("Hamilton product disagrees with DCM composition")
		}
	}
}

func TestQuaternionToEuler321MatchesDCMPath(t *testing.T) {
	for _, q := range randomQuaternions(t, 25) {
		direct := QuaternionToEuler321(q)
		viaDCM := DCMToEuler321(QuaternionToDCM(q))
		if !floats.EqualWithinAbs(direct.Yaw, viaDCM.Yaw, 1e-10) ||
			!floats.EqualWithinAbs(direct.Pitch, viaDCM.Pitch, 1e-10) ||
			!floats.EqualWithinAbs(direct.Roll, viaDCM.Roll, 1e-10) {
			t.Fatalf("closed form disagrees with DCM path: %s != %s", direct, viaDCM)
		}
	}
}

func TestEuler321QuaternionRoundTrip(t *testing.T) {
	for _, q := range randomQuaternions(t, 25) {
		// Away from gimbal lock, quaternion -> Euler -> quaternion recovers
		// the rotation up to sign.
		e := QuaternionToEuler321(q)
		if math.Abs(e.Pitch) > 85*deg2rad {
			continue
		}
		back := Euler321ToQuaternion(e)
		q.ForcePositiveRotation()
		for i := 0; i < 4; i++ {
			if !floats.EqualWithinAbs(back[i], q[i], 1e-10) {
				t.Fatalf("Euler round trip fail: %s != %s", back, q)
			}
		}
	}
}

func TestQuaternionRotateMatchesDCM(t *testing.T) {
	vectors := [][]float64{
		{1, 0, 0},
		{0, -2, 5},
		{1223.3, -93.0, 528.2},
	}
	for _, q := range randomQuaternions(t, 25) {
		dcm := QuaternionToDCM(q)
		for _, v := range vectors {
			direct := QuaternionRotate(q, v)
			viaDCM := MxV33(dcm, v)
			for i := 0; i < 3; i++ {
				if !floats.EqualWithinAbs(direct[i], viaDCM[i], 1e-10) {
					t.Fatalf("rotate mismatch for %s: %+v != %+v", q, direct, viaDCM)
				}
			}
		}
	}
}

func TestQuaternionRotatePreservesNorm(t *testing.T) {
	v := []float64{3, -4, 12}
	for _, q := range randomQuaternions(t, 10) {
		if !floats.EqualWithinAbs(Norm(QuaternionRotate(q, v)), Norm(v), 1e-9) {
			t.Fatal("rotation should preserve the vector norm")
		}
	}
}

func TestQuaternionDerivative(t *testing.T) {
	w := []float64{0.02, -0.01, 0.03}
	// q̇ = 0.5·Ω(ω)·q with the 4x4 skew matrix of Schaub eq. 3.103.
	omega := mat64.NewDense(4, 4, []float64{
		0, -w[0], -w[1], -w[2],
		w[0], 0, w[2], -w[1],
		w[1], -w[2], 0, w[0],
		w[2], w[1], -w[0], 0,
	})
	for _, q := range randomQuaternions(t, 10) {
		var qDotVec mat64.Vector
		qDotVec.MulVec(omega, mat64.NewVector(4, []float64{q[0], q[1], q[2], q[3]}))
		qDot := QuaternionDerivative(q, w)
		for i := 0; i < 4; i++ {
			if !floats.EqualWithinAbs(qDot[i], 0.5*qDotVec.At(i, 0), 1e-15) {
				t.Fatalf("derivative mismatch at %d: %g != %g", i, qDot[i], 0.5*qDotVec.At(i, 0))
			}
		}
	}
}

func TestQuaternionDerivativeZeroRate(t *testing.T) {
	qDot := QuaternionDerivative(IdentityQuaternion(), []float64{0, 0, 0})
	if !vectorsEqual(qDot[:3], []float64{0, 0, 0}) || qDot[3] != 0 {
		t.Fatal("zero rate should give a zero derivative")
	}
}
