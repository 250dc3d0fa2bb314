package geometry

import "github.com/raykavin/chartkit/pkg/core"

// RGB is a resolved color emitted with heatmap cells. It is the one
// place the engine produces concrete color values, because heatmap
// color is data, not styling.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// ColorScale maps a normalized value in [0,1] to a color
type ColorScale func(t float64) RGB

// viridis and plasma anchor stops, sampled from the matplotlib
// reference palettes at t = 0, 0.25, 0.5, 0.75, 1.
var (
	viridisStops = []RGB{
		{68, 1, 84},
		{59, 82, 139},
		{33, 145, 140},
		{94, 201, 98},
		{253, 231, 37},
	}
	plasmaStops = []RGB{
		{13, 8, 135},
		{126, 3, 168},
		{204, 71, 120},
		{248, 149, 64},
		{240, 249, 33},
	}
)

// Viridis is the default perceptually uniform color scale
func Viridis(t float64) RGB {
	return interpolateStops(viridisStops, t)
}

// Plasma is an alternative high-contrast color scale
func Plasma(t float64) RGB {
	return interpolateStops(plasmaStops, t)
}

// Grayscale maps values linearly to gray levels
func Grayscale(t float64) RGB {
	v := uint8(core.Clamp(t, 0, 1) * 255)
	return RGB{v, v, v}
}

func interpolateStops(stops []RGB, t float64) RGB {
	t = core.Clamp(t, 0, 1)

	segments := float64(len(stops) - 1)
	pos := t * segments
	i := int(pos)
	if i >= len(stops)-1 {
		return stops[len(stops)-1]
	}

	frac := pos - float64(i)
	a, b := stops[i], stops[i+1]

	return RGB{
		R: lerpByte(a.R, b.R, frac),
		G: lerpByte(a.G, b.G, frac),
		B: lerpByte(a.B, b.B, frac),
	}
}

func lerpByte(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t)
}
