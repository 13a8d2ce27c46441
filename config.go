package aeromath

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

var (
	cfgLoaded = false
	config    = _aeromathconfig{}
)

// _aeromathconfig is a "hidden" struct, just use `aeromathConfig`
type _aeromathconfig struct {
	defaultEllipsoid Ellipsoid
	geodesyTolRad    float64
	geodesyMaxIter   uint16
}

// aeromathConfig returns the library configuration. Unlike a simulation tool,
// this library must work with zero setup, so a missing AEROMATH_CONFIG simply
// yields the WGS84 defaults instead of failing.
func aeromathConfig() _aeromathconfig {
	if cfgLoaded {
		return config
	}

	conf := _aeromathconfig{
		defaultEllipsoid: WGS84,
		geodesyTolRad:    1e-9 * deg2rad,
		geodesyMaxIter:   15,
	}

	confPath := os.Getenv("AEROMATH_CONFIG")
	if confPath == "" {
		cfgLoaded = true
		config = conf
		return conf
	}

	viper.SetConfigName("conf")
	viper.AddConfigPath(confPath)
	if err := viper.ReadInConfig(); err != nil {
		panic(fmt.Errorf("%s/conf.toml not found", confPath))
	}

	if name := viper.GetString("ellipsoid.name"); name != "" {
		if viper.IsSet("ellipsoid.semimajor_axis") {
			conf.defaultEllipsoid = Ellipsoid{
				Name:          name,
				SemiMajorAxis: viper.GetFloat64("ellipsoid.semimajor_axis"),
				Flattening:    viper.GetFloat64("ellipsoid.flattening"),
				GravParam:     viper.GetFloat64("ellipsoid.grav_param"),
			}
		} else {
			ell, err := EllipsoidFromString(name)
			if err != nil {
				panic(err)
			}
			conf.defaultEllipsoid = ell
		}
	}

	if viper.IsSet("geodesy.tolerance_deg") {
		conf.geodesyTolRad = viper.GetFloat64("geodesy.tolerance_deg") * deg2rad
	}
	if viper.IsSet("geodesy.max_iterations") {
		conf.geodesyMaxIter = uint16(viper.GetInt("geodesy.max_iterations"))
	}

	cfgLoaded = true
	config = conf
	return conf
}

// DefaultEllipsoid returns the ellipsoid used by the convenience conversion
// functions: WGS84 unless overridden through the configuration file.
func DefaultEllipsoid() Ellipsoid {
	return aeromathConfig().defaultEllipsoid
}

// geodesyIterationConfig returns the latitude iteration tolerance in radians
// and the iteration cap for ECEF2Geodetic.
func geodesyIterationConfig() (tolRad float64, maxIter uint16) {
	c := aeromathConfig()
	return c.geodesyTolRad, c.geodesyMaxIter
}
