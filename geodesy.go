package aeromath

import (
	"math"
	"os"

	kitlog "github.com/go-kit/kit/log"
)

var geodesyLogger kitlog.Logger = kitlog.With(
	kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stderr)), "subsys", "geodesy")

// SetGeodesyLogger replaces the logger used for geodetic conversion
// diagnostics, e.g. the iteration-cap warning of ECEF2Geodetic.
func SetGeodesyLogger(l kitlog.Logger) {
	geodesyLogger = l
}

// LLA2ECEF converts a geodetic coordinate to the ECEF position vector in
// meters on the default ellipsoid (WGS84 unless configured otherwise).
// Closed form per Vallado eq. 3.14; exact, no iteration, no singularities for
// valid latitudes.
func LLA2ECEF(lla GeoCoord) []float64 {
	return LLA2ECEFEllipsoid(lla, DefaultEllipsoid())
}

// LLA2ECEFEllipsoid converts a geodetic coordinate to the ECEF position
// vector in meters on the provided ellipsoid.
func LLA2ECEFEllipsoid(lla GeoCoord, ellipsoid Ellipsoid) []float64 {
	sinLat, cosLat := math.Sincos(lla.Lat)
	sinLon, cosLon := math.Sincos(lla.Lon)

	// prime-vertical radius of curvature and its polar counterpart
	cTerm := ellipsoid.SemiMajorAxis / math.Sqrt(1-ellipsoid.Ecc2()*sinLat*sinLat)
	sTerm := cTerm * (1 - ellipsoid.Ecc2())

	return []float64{
		(cTerm + lla.Alt) * cosLat * cosLon,
		(cTerm + lla.Alt) * cosLat * sinLon,
		(sTerm + lla.Alt) * sinLat,
	}
}

// WGS84 constants precomputed for the closed-form ECEF2LLA inversion.
var (
	ecef2llaA1 = WGS84.SemiMajorAxis * WGS84.Ecc2()
	ecef2llaA2 = ecef2llaA1 * ecef2llaA1
	ecef2llaA3 = 0.5 * ecef2llaA1 * WGS84.Ecc2()
	ecef2llaA4 = 2.5 * ecef2llaA2
	ecef2llaA5 = ecef2llaA1 + ecef2llaA3
	ecef2llaA6 = 1 - WGS84.Ecc2()
)

// ECEF2LLA converts an ECEF position in meters to a geodetic coordinate on
// the WGS84 ellipsoid. Closed form (non-iterative) per Borkowski: the
// dominant trig term is refined through sin(lat) for positions away from the
// equatorial plane (c² > 0.3) and through cos(lat) otherwise, keeping the
// refinement away from its poorly conditioned branch. Longitude is
// atan2(y, x) regardless of branch; the latitude sign follows z.
func ECEF2LLA(posECEFm []float64) GeoCoord {
	x, y, z := posECEFm[0], posECEFm[1], posECEFm[2]

	lonRad := math.Atan2(y, x) // final longitude [rad]

	zp := math.Abs(z)
	w2 := x*x + y*y
	w := math.Sqrt(w2)
	r2 := w2 + z*z
	r := math.Sqrt(r2)

	s2 := z * z / r2
	c2 := w2 / r2

	u := ecef2llaA2 / r
	v := ecef2llaA3 - ecef2llaA4/r

	var s, ss, c, latRad float64
	if c2 > 0.3 {
		s = (zp / r) * (1 + c2*(ecef2llaA1+u+s2*v)/r)
		latRad = math.Asin(s)
		ss = s * s
		c = math.Sqrt(1 - ss)
	} else {
		c = (w / r) * (1 - s2*(ecef2llaA5-u-c2*v)/r)
		latRad = math.Acos(c)
		ss = 1 - c*c
		s = math.Sqrt(ss)
	}

	g := 1 - WGS84.Ecc2()*ss
	rg := WGS84.SemiMajorAxis / math.Sqrt(g)
	rf := ecef2llaA6 * rg

	u = w - rg*c
	v = zp - rf*s

	f := c*u + s*v
	m := c*v - s*u
	p := m / (rf/g + f)

	latRad += p
	altM := f + m*p*0.5 // final altitude [m]

	if z < 0 {
		latRad *= -1 // final latitude
	}

	return GeoCoord{Lat: latRad, Lon: lonRad, Alt: altM, Type: Geodetic}
}

// rDeltaSingularityThreshold is the equatorial projection below which an
// ECEF position is treated as polar, in meters.
const rDeltaSingularityThreshold = 1e-8

// ECEF2Geodetic converts an ECEF position in meters to a geodetic coordinate
// on the provided ellipsoid via the fixed-point latitude iteration of Vallado
// Algorithm 12. The iteration stops once successive latitudes agree within
// the configured tolerance or after the configured iteration cap; hitting the
// cap returns the last iterate unchanged and logs a warning with the
// residual. Near the poles the longitude denominator and the altitude
// equation both switch to pole-safe branches.
func ECEF2Geodetic(posECEFm []float64, ellipsoid Ellipsoid) GeoCoord {
	x, y, z := posECEFm[0], posECEFm[1], posECEFm[2]
	r := Norm(posECEFm)

	ecc2 := ellipsoid.Ecc2()
	cPlanet := func(lat float64) float64 {
		sinLat := math.Sin(lat)
		return ellipsoid.SemiMajorAxis / math.Sqrt(1-ecc2*sinLat*sinLat)
	}
	sPlanet := func(lat float64) float64 {
		return cPlanet(lat) * (1 - ecc2)
	}

	// equatorial projection of the position
	rDelta := math.Sqrt(x*x + y*y)

	// A small rDelta corresponds to a near ±90 deg latitude and a
	// divide-by-zero in atan2 and the iteration below.
	var rightAscension float64
	if rDelta <= rDeltaSingularityThreshold {
		rightAscension = Sign(z) * math.Pi / 2
	} else {
		rightAscension = math.Atan2(y, x)
	}
	lonRad := WrapPi(rightAscension)

	tolerance, maxIterations := geodesyIterationConfig()

	// start off with latitude = declination
	latRad := AsinSafe(z / r)

	prevLat := latRad + 10 // anything far enough to enter the loop
	var iterations uint16
	for math.Abs(latRad-prevLat) >= tolerance && iterations < maxIterations {
		prevLat = latRad
		latRad = math.Atan((z + cPlanet(latRad)*ecc2*math.Sin(latRad)) / rDelta)
		iterations++
	}
	if iterations == maxIterations && math.Abs(latRad-prevLat) >= tolerance {
		geodesyLogger.Log("level", "warning", "func", "ECEF2Geodetic",
			"status", "iteration cap reached", "iterations", iterations,
			"residual(rad)", math.Abs(latRad-prevLat))
	}

	// Within ~1 deg of either pole, cos(lat) is too small for the standard
	// altitude equation.
	const nearPoleThreshold = 1 * deg2rad
	var altM float64
	if math.Pi/2-math.Abs(latRad) < nearPoleThreshold {
		altM = z/math.Sin(latRad) - sPlanet(latRad)
	} else {
		altM = rDelta/math.Cos(latRad) - cPlanet(latRad)
	}

	return GeoCoord{Lat: latRad, Lon: lonRad, Alt: altM, Type: Geodetic}
}

// Geodetic2Geocentric converts a geodetic latitude [rad] and ellipsoidal
// altitude [m] to the geocentric latitude [rad] and geocentric radius [m] on
// the WGS84 ellipsoid. Closed form, no iteration.
func Geodetic2Geocentric(latGdRad, altM float64) (latGcRad, radiusM float64) {
	sinLat, cosLat := math.Sincos(latGdRad)

	n := WGS84.SemiMajorAxis / math.Sqrt(1-WGS84.Ecc2()*sinLat*sinLat)

	// distance from the polar axis
	rho := (n + altM) * cosLat
	// distance from the equatorial plane
	z := (altM + n*(1-WGS84.Ecc2())) * sinLat

	return math.Atan2(z, rho), math.Sqrt(z*z + rho*rho)
}

// Geodetic2GeocentricCoord is the GeoCoord form of Geodetic2Geocentric.
func Geodetic2GeocentricCoord(lla GeoCoord) (latGcRad, radiusM float64) {
	return Geodetic2Geocentric(lla.Lat, lla.Alt)
}

// ECEF2Geocentric converts an ECEF position in meters to a geocentric-tagged
// coordinate on the provided ellipsoid. Longitude and altitude come from the
// geodetic conversion; the latitude is computed directly as
// asin(z / |pos|) rather than converting the geodetic latitude.
func ECEF2Geocentric(posECEFm []float64, ellipsoid Ellipsoid) GeoCoord {
	geodetic := ECEF2Geodetic(posECEFm, ellipsoid)

	latGcRad := AsinSafe(posECEFm[2] / Norm(posECEFm))

	return GeoCoord{Lat: latGcRad, Lon: geodetic.Lon, Alt: geodetic.Alt, Type: Geocentric}
}
