package simple

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/litescript/ls-solar/internal/astro"
	"github.com/litescript/ls-solar/internal/spa"
)

// Cambridge, Massachusetts.
const (
	testLat = 42.364908
	testLon = -71.112828
)

func TestReferenceValues(t *testing.T) {
	alt := Altitude(testLat, testLon, time.Date(2007, 2, 18, 20, 13, 1, 130320000, time.UTC))
	if math.Abs(alt-19) > 1 {
		t.Errorf("Altitude = %v, want ≈19", alt)
	}
	if math.Abs(alt-19.294270) > 1e-5 {
		t.Errorf("Altitude = %.6f, want 19.294270", alt)
	}

	az := Azimuth(testLat, testLon, time.Date(2007, 2, 18, 20, 18, 0, 0, time.UTC))
	if math.Abs(az-(-50)) > 3 {
		t.Errorf("Azimuth = %v, want ≈-50", az)
	}
	if math.Abs(az-(-51.803135)) > 1e-5 {
		t.Errorf("Azimuth = %.6f, want -51.803135", az)
	}
}

func TestDeclination(t *testing.T) {
	tests := []struct {
		day  int
		want float64
		tol  float64
	}{
		{81, 0, 1e-12},
		{172, 23.45, 1e-3},
		{355, -23.45, 0.05},
	}
	for _, tt := range tests {
		if got := Declination(tt.day); math.Abs(got-tt.want) > tt.tol {
			t.Errorf("Declination(%d) = %v, want %v", tt.day, got, tt.want)
		}
	}
	for day := 0; day < 366; day++ {
		if d := Declination(day); math.Abs(d) > 23.45 {
			t.Fatalf("Declination(%d) = %v exceeds 23.45°", day, d)
		}
	}
}

func TestEquationOfTime(t *testing.T) {
	tests := []struct {
		day  int
		want float64
	}{
		{81, -7.53},
		{48, -14.497195},
		{300, 16.388018},
	}
	for _, tt := range tests {
		if got := EquationOfTime(tt.day); math.Abs(got-tt.want) > 1e-5 {
			t.Errorf("EquationOfTime(%d) = %v, want %v", tt.day, got, tt.want)
		}
	}
}

func TestSolarTime(t *testing.T) {
	ts := time.Date(2007, 2, 18, 20, 13, 1, 130320000, time.UTC)
	if got := SolarTime(testLon, ts); math.Abs(got-15.234506) > 1e-5 {
		t.Errorf("SolarTime = %v, want 15.234506", got)
	}
	if got := HourAngle(ts, testLon); math.Abs(got-(-48.517583)) > 1e-4 {
		t.Errorf("HourAngle = %v, want -48.517583", got)
	}

	// Seconds advance solar time.
	a := SolarTime(0, time.Date(2020, 5, 1, 12, 0, 0, 0, time.UTC))
	b := SolarTime(0, time.Date(2020, 5, 1, 12, 0, 30, 0, time.UTC))
	if math.Abs((b-a)*3600-30) > 1e-9 {
		t.Errorf("30 s advanced solar time by %v s", (b-a)*3600)
	}

	// Offset clocks are read in UTC.
	est := time.FixedZone("EST", -5*3600)
	if SolarTime(testLon, ts.In(est)) != SolarTime(testLon, ts) {
		t.Error("SolarTime depends on the time zone of t")
	}
}

func TestAzimuthQuadrants(t *testing.T) {
	morning := Azimuth(testLat, testLon, time.Date(2007, 6, 21, 13, 0, 0, 0, time.UTC))
	if math.Abs(morning-86.419502) > 1e-4 {
		t.Errorf("morning Azimuth = %v, want 86.419502 (east of south)", morning)
	}

	// The quadrant test reflects the night-time sun about 180°.
	night := Azimuth(testLat, testLon, time.Date(2007, 2, 18, 3, 0, 0, 0, time.UTC))
	if math.Abs(night-229.762015) > 1e-4 {
		t.Errorf("night Azimuth = %v, want 229.762015", night)
	}
}

func TestAirMassRatio(t *testing.T) {
	tests := []struct {
		alt  float64
		want float64
	}{
		{90, 1},
		{30, 2},
		{0, math.Inf(1)},
		{-10, math.Inf(1)},
	}
	for _, tt := range tests {
		got := AirMassRatio(tt.alt)
		if math.IsInf(tt.want, 1) {
			if !math.IsInf(got, 1) {
				t.Errorf("AirMassRatio(%v) = %v, want +Inf", tt.alt, got)
			}
			continue
		}
		if math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("AirMassRatio(%v) = %v, want %v", tt.alt, got, tt.want)
		}
	}
}

func TestFluxAndDepth(t *testing.T) {
	if got := ApparentExtraterrestrialFlux(48); math.Abs(got-1211.996092) > 1e-5 {
		t.Errorf("ApparentExtraterrestrialFlux(48) = %v, want 1211.996092", got)
	}
	if got := OpticalDepth(48); math.Abs(got-0.146690) > 1e-6 {
		t.Errorf("OpticalDepth(48) = %v, want 0.146690", got)
	}
	for day := 0; day < 366; day++ {
		if f := ApparentExtraterrestrialFlux(day); f < 1085 || f > 1235 {
			t.Fatalf("flux(%d) = %v out of [1085, 1235]", day, f)
		}
		if d := OpticalDepth(day); d < 0.139 || d > 0.209 {
			t.Fatalf("depth(%d) = %v out of [0.139, 0.209]", day, d)
		}
	}
}

func TestRadiationDirect(t *testing.T) {
	ts := time.Date(2007, 2, 18, 12, 0, 0, 0, time.UTC)

	if got := RadiationDirect(ts, 30); math.Abs(got-903.833039) > 1e-4 {
		t.Errorf("RadiationDirect(30°) = %v, want 903.833039", got)
	}
	for _, alt := range []float64{0, -0.001, -45, -90} {
		if got := RadiationDirect(ts, alt); got != 0 {
			t.Errorf("RadiationDirect(%v°) = %v, want 0", alt, got)
		}
	}

	prev := 0.0
	for alt := 0.5; alt <= 90; alt += 0.5 {
		got := RadiationDirect(ts, alt)
		if got <= 0 {
			t.Fatalf("RadiationDirect(%v°) = %v, want > 0", alt, got)
		}
		if got <= prev {
			t.Fatalf("RadiationDirect not increasing with altitude at %v°", alt)
		}
		prev = got
	}
}

func TestRadiationDecreasesWithOpticalDepth(t *testing.T) {
	// Days with equal flux but different optical depth: the deeper day
	// must deliver less.
	flux := ApparentExtraterrestrialFlux(0)
	for alt := 5.0; alt <= 90; alt += 5 {
		thin := flux * math.Exp(-0.15*AirMassRatio(alt))
		thick := flux * math.Exp(-0.20*AirMassRatio(alt))
		if thick >= thin {
			t.Fatalf("alt %v°: depth 0.20 gives %v ≥ depth 0.15 %v", alt, thick, thin)
		}
	}

	// Across the year, radiation over flux tracks exp(-depth).
	for day := 0; day < 365; day += 7 {
		ts := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, day)
		got := RadiationDirect(ts, 45) / ApparentExtraterrestrialFlux(day)
		want := math.Exp(-OpticalDepth(day) * math.Sqrt2)
		if math.Abs(got-want) > 1e-12 {
			t.Fatalf("day %d: attenuation %v, want %v", day, got, want)
		}
	}
}

func TestCalculate(t *testing.T) {
	ts := time.Date(2007, 2, 18, 20, 13, 1, 130320000, time.UTC)
	p, err := Calculate(testLat, testLon, ts)
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}
	if p.Day != 48 {
		t.Errorf("Day = %d, want 48", p.Day)
	}
	if p.Altitude != Altitude(testLat, testLon, ts) {
		t.Errorf("Altitude = %v, want %v", p.Altitude, Altitude(testLat, testLon, ts))
	}
	if math.Abs(p.Azimuth-Azimuth(testLat, testLon, ts)) > 1e-12 {
		t.Errorf("Azimuth = %v, want %v", p.Azimuth, Azimuth(testLat, testLon, ts))
	}
	if p.Radiation != RadiationDirect(ts, p.Altitude) {
		t.Errorf("Radiation = %v", p.Radiation)
	}
	if !p.Daylight() || p.AirMass <= 1 {
		t.Errorf("Daylight = %v, AirMass = %v", p.Daylight(), p.AirMass)
	}

	night, err := Calculate(testLat, testLon, time.Date(2007, 2, 18, 3, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}
	if night.Daylight() || night.AirMass != 0 || night.Radiation != 0 {
		t.Errorf("night position = %+v", night)
	}
}

func TestCalculate_DomainErrors(t *testing.T) {
	ts := time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		lat  float64
		want Singularity
	}{
		{"equator", 0, Equator},
		{"north pole", 90, Pole},
		{"south pole", -90, Pole},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Calculate(tt.lat, 10, ts)
			if !errors.Is(err, ErrDomain) {
				t.Fatalf("error = %v, want ErrDomain", err)
			}
			var de *DomainError
			if !errors.As(err, &de) {
				t.Fatalf("error %T is not *DomainError", err)
			}
			if de.Singularity != tt.want {
				t.Errorf("Singularity = %v, want %v", de.Singularity, tt.want)
			}
		})
	}

	_, err := Calculate(91, 0, ts)
	if !errors.Is(err, ErrInvalidLocation) || !errors.Is(err, astro.ErrLatitudeRange) {
		t.Errorf("error = %v, want ErrInvalidLocation wrapping ErrLatitudeRange", err)
	}
	if errors.Is(err, ErrDomain) {
		t.Error("range error should not match ErrDomain")
	}
}

func TestRawFunctionsPropagateNaN(t *testing.T) {
	ts := time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)
	// tan(0) in the quadrant test: the division yields ±Inf or NaN, never a panic.
	az := Azimuth(0, 10, ts)
	if math.IsInf(az, 0) {
		t.Errorf("Azimuth at the equator = %v", az)
	}
	if got := Altitude(math.NaN(), 0, ts); !math.IsNaN(got) {
		t.Errorf("Altitude(NaN) = %v, want NaN", got)
	}
}

func TestDomainErrorMessage(t *testing.T) {
	err := &DomainError{Singularity: Zenith, Latitude: 23.45, Time: time.Date(2024, 6, 20, 16, 0, 0, 0, time.UTC)}
	want := "azimuth undefined at zenith (latitude 23.450000, 2024-06-20T16:00:00Z)"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if got := Singularity(7).String(); got != "Singularity(7)" {
		t.Errorf("String() = %q", got)
	}
}

func TestAgreesWithSPA(t *testing.T) {
	loc := astro.Location{Latitude: testLat, Longitude: testLon}
	start := time.Date(2010, 1, 3, 17, 0, 0, 0, time.UTC)

	for i := 0; i < 365; i += 5 {
		ts := start.AddDate(0, 0, i)
		p, err := spa.Calculate(ts, spa.Input{Location: loc, DeltaT: 66})
		if err != nil {
			t.Fatalf("spa.Calculate() error = %v", err)
		}
		s, err := Calculate(loc.Latitude, loc.Longitude, ts)
		if err != nil {
			t.Fatalf("Calculate() error = %v", err)
		}
		if d := math.Abs(p.TopocentricDeclination - s.Declination); d > 3 {
			t.Errorf("%s: declination spa %v, simple %v", ts.Format(time.DateOnly), p.TopocentricDeclination, s.Declination)
		}
		if d := math.Abs(p.Elevation - s.Altitude); d > 4 {
			t.Errorf("%s: altitude spa %v, simple %v", ts.Format(time.DateOnly), p.Elevation, s.Altitude)
		}
	}
}
