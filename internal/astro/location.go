package astro

import (
	"errors"
	"fmt"
)

// Location represents a ground-based observer.
type Location struct {
	Latitude  float64 `yaml:"latitude" json:"latitude"`   // degrees, north positive
	Longitude float64 `yaml:"longitude" json:"longitude"` // degrees, east positive (west negative)
	Elevation float64 `yaml:"elevation" json:"elevation"` // meters above sea level, may be negative
	Name      string  `yaml:"name,omitempty" json:"name,omitempty"`
}

// Atmosphere holds the local conditions used by the refraction correction.
type Atmosphere struct {
	Pressure    float64 `yaml:"pressure" json:"pressure"`       // millibars
	Temperature float64 `yaml:"temperature" json:"temperature"` // degrees Celsius
}

// Surface describes a tilted collector for incidence angle calculations.
type Surface struct {
	Slope           float64 `yaml:"slope" json:"slope"`                       // degrees from horizontal
	AzimuthRotation float64 `yaml:"azimuth_rotation" json:"azimuth_rotation"` // degrees from south, east negative
}

// Standard atmosphere used when the caller supplies none.
const (
	StandardPressure    = 1013.25
	StandardTemperature = 12.0
)

// Errors returned by the Validate methods.
var (
	ErrLatitudeRange    = errors.New("latitude out of range [-90, 90]")
	ErrLongitudeRange   = errors.New("longitude out of range [-180, 180]")
	ErrPressureRange    = errors.New("pressure out of range (0, 5000] mbar")
	ErrTemperatureRange = errors.New("temperature out of range (-273, 6000) C")
	ErrSlopeRange       = errors.New("surface slope out of range [-360, 360]")
	ErrRotationRange    = errors.New("surface azimuth rotation out of range [-360, 360]")
)

// StandardAtmosphere returns 1013.25 mbar and 12 C.
func StandardAtmosphere() Atmosphere {
	return Atmosphere{Pressure: StandardPressure, Temperature: StandardTemperature}
}

// OrStandard returns a unless it is the zero value, in which case the
// standard atmosphere is returned.
func (a Atmosphere) OrStandard() Atmosphere {
	if a == (Atmosphere{}) {
		return StandardAtmosphere()
	}
	return a
}

// Validate checks the location against the supported coordinate ranges.
// NaN coordinates are rejected.
func (l Location) Validate() error {
	if !(l.Latitude >= -90 && l.Latitude <= 90) {
		return fmt.Errorf("%w: %v", ErrLatitudeRange, l.Latitude)
	}
	if !(l.Longitude >= -180 && l.Longitude <= 180) {
		return fmt.Errorf("%w: %v", ErrLongitudeRange, l.Longitude)
	}
	return nil
}

// Validate checks that the atmosphere is physically plausible.
func (a Atmosphere) Validate() error {
	if !(a.Pressure > 0 && a.Pressure <= 5000) {
		return fmt.Errorf("%w: %v", ErrPressureRange, a.Pressure)
	}
	if !(a.Temperature > -273 && a.Temperature < 6000) {
		return fmt.Errorf("%w: %v", ErrTemperatureRange, a.Temperature)
	}
	return nil
}

// Validate checks the surface orientation ranges.
func (s Surface) Validate() error {
	if !(s.Slope >= -360 && s.Slope <= 360) {
		return fmt.Errorf("%w: %v", ErrSlopeRange, s.Slope)
	}
	if !(s.AzimuthRotation >= -360 && s.AzimuthRotation <= 360) {
		return fmt.Errorf("%w: %v", ErrRotationRange, s.AzimuthRotation)
	}
	return nil
}

// String returns the site name, or formatted coordinates when unnamed.
func (l Location) String() string {
	if l.Name != "" {
		return l.Name
	}
	ns, ew := "N", "E"
	lat, lon := l.Latitude, l.Longitude
	if lat < 0 {
		ns, lat = "S", -lat
	}
	if lon < 0 {
		ew, lon = "W", -lon
	}
	return fmt.Sprintf("%.4f°%s %.4f°%s", lat, ns, lon, ew)
}
