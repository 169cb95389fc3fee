package viewer

import "math"

// ZoomConfig bounds the zoom factor the viewer will request from the
// rendering surface.
type ZoomConfig struct {
	Min  float64
	Max  float64
	Step float64
}

// DefaultZoomConfig mirrors the viewer's stock zoom range.
func DefaultZoomConfig() ZoomConfig {
	return ZoomConfig{Min: 0.6, Max: 2.0, Step: 0.2}
}

// In returns the next zoom step up from current, clamped and rounded to two
// decimals.
func (c ZoomConfig) In(current float64) float64 {
	return round2(math.Min(c.Max, current+c.Step))
}

// Out returns the next zoom step down from current, clamped and rounded to
// two decimals.
func (c ZoomConfig) Out(current float64) float64 {
	return round2(math.Max(c.Min, current-c.Step))
}

// Clamp forces an arbitrary factor into the configured range.
func (c ZoomConfig) Clamp(factor float64) float64 {
	return round2(math.Max(c.Min, math.Min(c.Max, factor)))
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
