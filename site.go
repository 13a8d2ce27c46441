package aeromath

import (
	"fmt"
	"math"
)

// Predefined deep-space network ground sites.
var (
	DSS34Canberra  = NewSite("DSS34Canberra", -35.398333, 148.981944, 691.75)
	DSS65Madrid    = NewSite("DSS65Madrid", 40.427222, 4.250556, 834.939)
	DSS13Goldstone = NewSite("DSS13Goldstone", 35.247164, 243.205, 1071.14904)
)

// Site defines a ground site fixed to the default ellipsoid.
type Site struct {
	Name   string
	Coord  GeoCoord  // geodetic coordinate of the site
	R      []float64 // ECEF position [m]
	Planet Ellipsoid
}

// RangeElAz returns the slant range vector (in the SEZ frame) and the range
// [m], elevation and azimuth (in degrees) of a given position vector in ECEF
// meters as seen from this site.
func (s Site) RangeElAz(rECEF []float64) (rhoECEF []float64, rho, el, az float64) {
	rhoECEF = make([]float64, 3)
	for i := 0; i < 3; i++ {
		rhoECEF[i] = rECEF[i] - s.R[i]
	}
	rho = Norm(rhoECEF)
	rSEZ := MxV33(R3(s.Coord.Lon), rhoECEF)
	rSEZ = MxV33(R2(math.Pi/2-s.Coord.Lat), rSEZ)
	el = AsinSafe(rSEZ[2]/rho) * rad2deg
	az = Wrap2Pi(math.Atan2(rSEZ[1], -rSEZ[0])) * rad2deg
	return
}

func (s Site) String() string {
	return fmt.Sprintf("%s (%f,%f); alt = %f m", s.Name, s.Coord.Lat*rad2deg, s.Coord.Lon*rad2deg, s.Coord.Alt)
}

// NewSite returns a new ground site on the default ellipsoid. Angles are in
// degrees, altitude in meters.
func NewSite(name string, latDeg, lonDeg, altM float64) Site {
	coord := NewGeoCoord(latDeg*deg2rad, WrapPi(lonDeg*deg2rad), altM)
	return Site{Name: name, Coord: coord, R: LLA2ECEF(coord), Planet: DefaultEllipsoid()}
}
