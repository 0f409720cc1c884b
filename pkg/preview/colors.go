package preview

import "image/color"

// KiCad Classic theme colors for the layers a fan-out preview shows
var layerColors = map[string]color.NRGBA{
	"F.Cu":      {R: 200, G: 52, B: 52, A: 255},  // Front copper (red)
	"B.Cu":      {R: 77, G: 127, B: 196, A: 255}, // Back copper (blue)
	"In1.Cu":    {R: 127, G: 200, B: 127, A: 255},
	"In2.Cu":    {R: 206, G: 125, B: 44, A: 255},
	"In3.Cu":    {R: 79, G: 203, B: 203, A: 255},
	"In4.Cu":    {R: 219, G: 98, B: 139, A: 255},
	"Edge.Cuts": {R: 208, G: 210, B: 205, A: 255},
}

// Special colors
var (
	ColorPad        = color.NRGBA{R: 227, G: 183, B: 46, A: 255}  // Pad (gold)
	ColorPadFree    = color.NRGBA{R: 120, G: 100, B: 40, A: 255}  // Pad without a net
	ColorDrill      = color.NRGBA{R: 0, G: 16, B: 35, A: 255}     // Drill hole
	ColorVia        = color.NRGBA{R: 236, G: 236, B: 236, A: 255} // Via (light gray)
	ColorPlanned    = color.NRGBA{R: 255, G: 255, B: 255, A: 255} // Planned via ring
	ColorRay        = color.NRGBA{R: 120, G: 200, B: 255, A: 255} // Style preview ray
	ColorBackground = color.NRGBA{R: 0, G: 16, B: 35, A: 255}     // Background (dark blue)
)

// LayerColor returns the color for a layer name, gray when unknown.
func LayerColor(layer string) color.NRGBA {
	if c, ok := layerColors[layer]; ok {
		return c
	}
	return color.NRGBA{R: 128, G: 128, B: 128, A: 255}
}
