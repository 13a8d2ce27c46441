package aeromath

import "fmt"

// GeoType discriminates which latitude convention a GeoCoord holds.
type GeoType uint8

const (
	// Geodetic latitude is the angle between the equatorial plane and the
	// ellipsoid surface normal.
	Geodetic GeoType = iota
	// Geocentric latitude is the angle between the equatorial plane and the
	// line to the center of the ellipsoid.
	Geocentric
)

func (t GeoType) String() string {
	switch t {
	case Geodetic:
		return "geodetic"
	case Geocentric:
		return "geocentric"
	default:
		panic(fmt.Errorf("unknown GeoType %d", t))
	}
}

// GeoCoord is a latitude/longitude/altitude coordinate relative to a
// reference ellipsoid. Latitude is in radians (±π/2), longitude in radians
// (±π), and altitude in meters above the ellipsoid. Type records whether the
// latitude is geodetic or geocentric, preventing the two conventions from
// being silently mixed.
type GeoCoord struct {
	Lat  float64 // latitude [rad]
	Lon  float64 // longitude [rad]
	Alt  float64 // ellipsoidal altitude [m]
	Type GeoType
}

// NewGeoCoord returns a geodetic coordinate from latitude [rad], longitude
// [rad], and altitude [m].
func NewGeoCoord(latRad, lonRad, altM float64) GeoCoord {
	return GeoCoord{Lat: latRad, Lon: lonRad, Alt: altM, Type: Geodetic}
}

// String implements the Stringer interface, comma-separating the components.
func (c GeoCoord) String() string {
	return fmt.Sprintf("%g,%g,%g (%s)", c.Lat, c.Lon, c.Alt, c.Type)
}
