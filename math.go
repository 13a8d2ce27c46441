package aeromath

import (
	"math"

	"github.com/gonum/floats"
	"github.com/gonum/matrix/mat64"
)

const (
	deg2rad = math.Pi / 180
	rad2deg = 180 / math.Pi
)

// Norm returns the norm of a given vector which is supposed to be 3x1.
func Norm(v []float64) float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}

// Unit returns the unit vector of a given vector.
func Unit(a []float64) (b []float64) {
	n := Norm(a)
	if floats.EqualWithinAbs(n, 0, 1e-12) {
		return []float64{0, 0, 0}
	}
	b = make([]float64, len(a))
	for i, val := range a {
		b[i] = val / n
	}
	return
}

// Sign returns the sign of a given number.
func Sign(v float64) float64 {
	if floats.EqualWithinAbs(v, 0, 1e-12) {
		return 1
	}
	return v / math.Abs(v)
}

// Dot performs the inner product via mat64/BLAS.
func Dot(a, b []float64) float64 {
	return mat64.Dot(mat64.NewVector(len(a), a), mat64.NewVector(len(b), b))
}

// Cross performs the cross product.
func Cross(a, b []float64) []float64 {
	return []float64{a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0]} // Cross product a x b.
}

// AsinSafe is math.Asin with its argument clamped to [-1, 1]. Floating
// round-off on a mathematically valid input can push the argument slightly
// outside the domain; this returns ±π/2 instead of NaN.
func AsinSafe(val float64) float64 {
	if val >= 1.0 {
		return math.Pi / 2
	} else if val <= -1.0 {
		return -math.Pi / 2
	}
	return math.Asin(val)
}

// AcosSafe is math.Acos with its argument clamped to [-1, 1].
func AcosSafe(val float64) float64 {
	if val >= 1.0 {
		return 0
	} else if val <= -1.0 {
		return math.Pi
	}
	return math.Acos(val)
}

// WrapPi wraps an angle in radians to [-π, π).
func WrapPi(angleRad float64) float64 {
	angleRad = math.Mod(angleRad+math.Pi, 2*math.Pi)
	if angleRad < 0 {
		angleRad += 2 * math.Pi
	}
	return angleRad - math.Pi
}

// Wrap2Pi wraps an angle in radians to [0, 2π).
func Wrap2Pi(angleRad float64) float64 {
	angleRad = math.Mod(angleRad, 2*math.Pi)
	if angleRad < 0 {
		angleRad += 2 * math.Pi
	}
	return angleRad
}

// Deg2rad converts degrees to radians, and enforced only positive numbers.
func Deg2rad(a float64) float64 {
	if a < 0 {
		a += 360
	}
	return math.Mod(a*deg2rad, 2*math.Pi)
}

// Rad2deg converts radians to degrees, and enforced only positive numbers.
func Rad2deg(a float64) float64 {
	if a < 0 {
		a += 2 * math.Pi
	}
	return math.Mod(a*rad2deg, 360)
}

// vectorsEqual returns whether both vectors are equal within a tight tolerance.
func vectorsEqual(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !floats.EqualWithinAbs(a[i], b[i], 1e-12) {
			return false
		}
	}
	return true
}
