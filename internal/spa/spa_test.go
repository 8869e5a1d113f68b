package spa

import (
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/litescript/ls-solar/internal/astro"
)

// nrelExample is the worked example published with the NREL SPA report:
// 2003-10-17 12:30:30 local (UTC-7) at Golden, Colorado.
var nrelExample = struct {
	time  time.Time
	input Input
}{
	time: time.Date(2003, 10, 17, 19, 30, 30, 0, time.UTC),
	input: Input{
		Location:   astro.Location{Latitude: 39.742476, Longitude: -105.1786, Elevation: 1830.14},
		Atmosphere: astro.Atmosphere{Pressure: 820, Temperature: 11},
		Surface:    astro.Surface{Slope: 30, AzimuthRotation: -10},
		DeltaT:     67,
	},
}

func TestCalculate_NRELExample(t *testing.T) {
	p, err := Calculate(nrelExample.time, nrelExample.input)
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}

	tests := []struct {
		name string
		got  float64
		want float64
		tol  float64
	}{
		{"JD", p.Moment.JD, 2452930.312847, 1e-6},
		{"L", p.HeliocentricLongitude, 24.0182616917, 1e-6},
		{"B", p.HeliocentricLatitude, -0.0001011219, 1e-8},
		{"R", p.RadiusVector, 0.9965422974, 1e-8},
		{"Θ", p.GeocentricLongitude, 204.0182616917, 1e-6},
		{"β", p.GeocentricLatitude, 0.0001011219, 1e-8},
		{"Δψ", p.Nutation.Longitude, -0.00399840, 1e-7},
		{"Δε", p.Nutation.Obliquity, 0.00166657, 1e-7},
		{"ε", p.Obliquity, 23.440465, 1e-6},
		{"λ", p.ApparentLongitude, 204.0085519281, 1e-6},
		{"α", p.RightAscension, 202.22741, 1e-4},
		{"δ", p.Declination, -9.31434, 1e-4},
		{"H", p.HourAngle, 11.105902, 1e-4},
		{"α'", p.TopocentricRightAscension, 202.22704, 1e-4},
		{"δ'", p.TopocentricDeclination, -9.316179, 1e-4},
		{"H'", p.TopocentricHourAngle, 11.10629, 1e-4},
		{"e0", p.TrueElevation, 39.872046, 1e-4},
		{"Δe", p.Refraction, 0.016332, 1e-5},
		{"e", p.Elevation, 39.888378, 1e-4},
		{"zenith", p.Zenith, 50.11162, 1e-4},
		{"Γ", p.AstronomersAzimuth, 14.340241, 1e-4},
		{"azimuth", p.Azimuth, 194.340241, 1e-4},
		{"incidence", p.Incidence, 25.18700, 1e-4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if math.Abs(tt.got-tt.want) > tt.tol {
				t.Errorf("%s = %.10f, want %.10f (±%v)", tt.name, tt.got, tt.want, tt.tol)
			}
		})
	}
}

func TestCalculate_Validation(t *testing.T) {
	valid := nrelExample.input

	tests := []struct {
		name    string
		time    time.Time
		mutate  func(*Input)
		wantErr error
	}{
		{"latitude", nrelExample.time, func(in *Input) { in.Location.Latitude = 91 }, ErrInvalidLocation},
		{"longitude", nrelExample.time, func(in *Input) { in.Location.Longitude = -181 }, ErrInvalidLocation},
		{"pressure", nrelExample.time, func(in *Input) { in.Atmosphere.Pressure = -5 }, ErrInvalidAtmosphere},
		{"slope", nrelExample.time, func(in *Input) { in.Surface.Slope = 361 }, ErrInvalidSurface},
		{"delta-t", nrelExample.time, func(in *Input) { in.DeltaT = 9000 }, ErrInvalidDeltaT},
		{"delta-t NaN", nrelExample.time, func(in *Input) { in.DeltaT = math.NaN() }, ErrInvalidDeltaT},
		{"year", time.Date(6001, 1, 1, 0, 0, 0, 0, time.UTC), func(*Input) {}, ErrTimeOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)
			_, err := Calculate(tt.time, in)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Calculate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCalculate_WrapsLocationCause(t *testing.T) {
	in := nrelExample.input
	in.Location.Latitude = -95
	_, err := Calculate(nrelExample.time, in)
	if !errors.Is(err, astro.ErrLatitudeRange) {
		t.Errorf("error %v does not wrap astro.ErrLatitudeRange", err)
	}
}

func TestCalculate_DefaultAtmosphere(t *testing.T) {
	in := nrelExample.input
	in.Atmosphere = astro.Atmosphere{}
	p, err := Calculate(nrelExample.time, in)
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}
	want := RefractionCorrection(astro.StandardPressure, astro.StandardTemperature, p.TrueElevation)
	if math.Abs(p.Refraction-want) > 1e-12 {
		t.Errorf("refraction = %v, want standard-atmosphere %v", p.Refraction, want)
	}
}

func TestCalculate_NormalizedAngles(t *testing.T) {
	locations := []astro.Location{
		{Latitude: 42.364908, Longitude: -71.112828},
		{Latitude: -33.86, Longitude: 151.21, Elevation: 58},
		{Latitude: 78.22, Longitude: 15.65},
		{Latitude: 0, Longitude: 179.9},
	}
	start := time.Date(1990, 3, 1, 0, 0, 0, 0, time.UTC)

	for _, loc := range locations {
		for i := 0; i < 200; i++ {
			ts := start.Add(time.Duration(i) * 53 * time.Hour)
			p, err := Calculate(ts, Input{Location: loc, DeltaT: 64})
			if err != nil {
				t.Fatalf("Calculate() error = %v", err)
			}
			for name, v := range map[string]float64{
				"heliocentric longitude": p.HeliocentricLongitude,
				"geocentric longitude":   p.GeocentricLongitude,
				"right ascension":        p.RightAscension,
				"hour angle":             p.HourAngle,
				"azimuth":                p.Azimuth,
			} {
				if v < 0 || v >= 360 {
					t.Fatalf("%s = %v at %s for %v, want [0, 360)", name, v, ts, loc)
				}
			}
			if p.Elevation < -90 || p.Elevation > 90 {
				t.Fatalf("elevation = %v out of range", p.Elevation)
			}
		}
	}
}

func TestCalculate_Pole(t *testing.T) {
	in := Input{Location: astro.Location{Latitude: 90}, DeltaT: 69}
	p, err := Calculate(time.Date(2024, 6, 21, 12, 0, 0, 0, time.UTC), in)
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}
	// At the pole the elevation equals the declination.
	if math.Abs(p.TrueElevation-p.TopocentricDeclination) > 1e-6 {
		t.Errorf("e0 = %v, δ' = %v", p.TrueElevation, p.TopocentricDeclination)
	}
	if math.IsNaN(p.Azimuth) {
		t.Error("azimuth is NaN at the pole")
	}
}

func TestCalculate_Concurrent(t *testing.T) {
	want, err := Calculate(nrelExample.time, nrelExample.input)
	if err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	results := make([]Position, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = Calculate(nrelExample.time, nrelExample.input)
		}(i)
	}
	wg.Wait()

	for i, got := range results {
		if got != want {
			t.Errorf("result %d differs from serial calculation", i)
		}
	}
}

func TestPositionAboveHorizon(t *testing.T) {
	if !(Position{Elevation: 0.1}).AboveHorizon() {
		t.Error("0.1° should be above the horizon")
	}
	if (Position{Elevation: -0.1}).AboveHorizon() {
		t.Error("-0.1° should be below the horizon")
	}
}
