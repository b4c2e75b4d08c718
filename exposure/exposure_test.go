package exposure

import (
	"math"
	"testing"
)

type settings struct {
	aperture, shutter, sensitivity float32
}

func (s settings) Aperture() float32     { return s.aperture }
func (s settings) ShutterSpeed() float32 { return s.shutter }
func (s settings) Sensitivity() float32  { return s.sensitivity }

func TestEV100(t *testing.T) {
	cases := []struct {
		name                           string
		aperture, shutter, sensitivity float32
		want                           float64
	}{
		// Sunny 16 at ISO 100: EV ~= 15.
		{"sunny_16", 16, 1.0 / 125.0, 100, math.Log2(16 * 16 * 125)},
		{"wide_open", 1.4, 1.0 / 60.0, 100, math.Log2(1.4 * 1.4 * 60)},
		// Doubling the ISO drops the normalized EV by one stop.
		{"iso_200", 16, 1.0 / 125.0, 200, math.Log2(16*16*125) - 1},
		{"unity", 1, 1, 100, 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := float64(EV100(c.aperture, c.shutter, c.sensitivity))
			if math.Abs(got-c.want) > 1e-5 {
				t.Fatalf("EV100(%v, %v, %v) = %v, want %v", c.aperture, c.shutter, c.sensitivity, got, c.want)
			}
		})
	}
}

func TestFromSettings(t *testing.T) {
	s := settings{16, 1.0 / 125.0, 100}
	if FromSettings(s) != EV100(16, 1.0/125.0, 100) {
		t.Fatalf("FromSettings should delegate to EV100")
	}
}

func TestEV100FromMeters(t *testing.T) {
	// Reflected-light meter: L = 12.5 cd/m^2 reads EV log2(100) ~= 6.64.
	if got := EV100FromLuminance(12.5); math.Abs(float64(got)-math.Log2(100)) > 1e-5 {
		t.Fatalf("EV100FromLuminance(12.5) = %v", got)
	}
	// Incident-light meter: E = 2.5 lux reads EV 0.
	if got := EV100FromIlluminance(2.5); math.Abs(float64(got)) > 1e-5 {
		t.Fatalf("EV100FromIlluminance(2.5) = %v", got)
	}
}
