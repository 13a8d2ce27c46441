package aeromath

import (
	"fmt"
	"math"
	"strings"

	"github.com/soniakeys/meeus/globe"
)

// Ellipsoid defines a reference ellipsoid for a celestial body. It is a plain
// parameter struct: ellipsoid parameters never change at runtime, so there is
// no dynamic dispatch seam.
type Ellipsoid struct {
	Name          string
	SemiMajorAxis float64 // equatorial radius a [m]
	Flattening    float64 // flattening f
	GravParam     float64 // gravitational parameter μ [m^3/s^2]
}

// Ecc2 returns the eccentricity squared, e² = 2f - f².
func (e Ellipsoid) Ecc2() float64 {
	return 2*e.Flattening - e.Flattening*e.Flattening
}

// Ecc returns the first eccentricity.
func (e Ellipsoid) Ecc() float64 {
	return math.Sqrt(e.Ecc2())
}

// SemiMinorAxis returns the polar radius b = a(1 - f) [m].
func (e Ellipsoid) SemiMinorAxis() float64 {
	return e.SemiMajorAxis * (1 - e.Flattening)
}

// PrimeVerticalRadius returns the prime-vertical radius of curvature
// N(lat) = a / sqrt(1 - e²·sin²(lat)) for a geodetic latitude in radians.
func (e Ellipsoid) PrimeVerticalRadius(latRad float64) float64 {
	sinLat := math.Sin(latRad)
	return e.SemiMajorAxis / math.Sqrt(1-e.Ecc2()*sinLat*sinLat)
}

// Equals returns whether the provided ellipsoid has the same parameters.
func (e Ellipsoid) Equals(b Ellipsoid) bool {
	return e.Name == b.Name && e.SemiMajorAxis == b.SemiMajorAxis &&
		e.Flattening == b.Flattening && e.GravParam == b.GravParam
}

// String implements the Stringer interface.
func (e Ellipsoid) String() string {
	return e.Name + " ellipsoid"
}

// EllipsoidFromGlobe returns an Ellipsoid built from a meeus globe ellipsoid,
// whose equatorial radius is in kilometers.
func EllipsoidFromGlobe(name string, g globe.Ellipsoid, gravParam float64) Ellipsoid {
	return Ellipsoid{Name: name, SemiMajorAxis: g.Er * 1e3, Flattening: g.Fl, GravParam: gravParam}
}

// EllipsoidFromString returns the ellipsoid from its name.
func EllipsoidFromString(name string) (Ellipsoid, error) {
	switch strings.ToLower(name) {
	case "wgs84":
		return WGS84, nil
	case "egm2008":
		return EGM2008, nil
	case "mars":
		return Mars, nil
	case "moon":
		return Moon, nil
	default:
		return Ellipsoid{}, fmt.Errorf("undefined ellipsoid '%s'", name)
	}
}

/* Definitions */

// WGS84 is the World Geodetic System 1984 Earth ellipsoid.
var WGS84 = Ellipsoid{"WGS84", 6378137.0, 1 / 298.257223563, 3.986004418e14}

// EGM2008 is the Earth Gravitational Model 2008 ellipsoid.
var EGM2008 = Ellipsoid{"EGM2008", 6378136.3, 3.3528106647475e-3, 3.986004415e14}

// Mars is the IAU 2000 Mars reference ellipsoid.
var Mars = Ellipsoid{"Mars", 3396190.0, 1 / 169.894447223612, 4.282837e13}

// Moon is the IAU lunar reference ellipsoid. The Moon is nearly spherical.
var Moon = Ellipsoid{"Moon", 1737400.0, 0.0012, 4.9028001e12}
