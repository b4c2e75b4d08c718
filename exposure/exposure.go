// Package exposure implements photographic exposure value math. Everything
// is normalized to ISO 100 (EV100), the metric the renderer's physically
// based exposure pipeline works in.
package exposure

import "math"

// Settings is the slice of a camera's state that exposure depends on.
type Settings interface {
	// Aperture in f-stops.
	Aperture() float32
	// ShutterSpeed in seconds.
	ShutterSpeed() float32
	// Sensitivity in ISO.
	Sensitivity() float32
}

// EV100 computes the exposure value at ISO 100 for the given aperture
// (f-stops), shutter speed (seconds) and sensitivity (ISO):
//
//	EV100 = log2(N^2 / t * 100 / S)
func EV100(aperture, shutterSpeed, sensitivity float32) float32 {
	n := float64(aperture)
	t := float64(shutterSpeed)
	s := float64(sensitivity)
	return float32(math.Log2((n * n / t) * (100.0 / s)))
}

// FromSettings computes EV100 from a camera's exposure settings.
func FromSettings(s Settings) float32 {
	return EV100(s.Aperture(), s.ShutterSpeed(), s.Sensitivity())
}

// EV100FromLuminance computes the exposure value a reflected-light meter
// calibrated to K = 12.5 would report for an average scene luminance in
// cd/m^2.
func EV100FromLuminance(luminance float32) float32 {
	return float32(math.Log2(float64(luminance) * (100.0 / 12.5)))
}

// EV100FromIlluminance computes the exposure value an incident-light meter
// calibrated to C = 250 would report for an illuminance in lux.
func EV100FromIlluminance(illuminance float32) float32 {
	return float32(math.Log2(float64(illuminance) * (100.0 / 250.0)))
}
