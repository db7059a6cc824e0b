package ui

import (
	"image"
	"image/color"
	"math"

	"github.com/user/pinggy-tunnel/internal/tunnel"
)

const iconSize = 32

// Pre-generated icons, one per state.
var icons = map[tunnel.State][]byte{
	tunnel.StateInactive:   encodeIcon(drawTunnelIcon(color.NRGBA{160, 160, 160, 255})), // Gray
	tunnel.StateConnecting: encodeIcon(drawTunnelIcon(color.NRGBA{240, 190, 30, 255})),  // Amber
	tunnel.StateActive:     encodeIcon(drawTunnelIcon(color.NRGBA{30, 200, 90, 255})),   // Green
	tunnel.StateFailed:     encodeIcon(drawTunnelIcon(color.NRGBA{220, 55, 55, 255})),   // Red
}

// GetIcon returns the icon data for the given state
func GetIcon(state tunnel.State) []byte {
	if icon, ok := icons[state]; ok {
		return icon
	}
	return icons[tunnel.StateInactive]
}

// drawTunnelIcon renders a tunnel portal: an arch in the state color with a
// dark opening, on a transparent background.
func drawTunnelIcon(fill color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, iconSize, iconSize))
	dark := color.NRGBA{fill.R / 3, fill.G / 3, fill.B / 3, 255}

	const (
		cx      = 15.5
		archY   = 14.0 // center of the arch curve
		outerR  = 14.0
		innerR  = 8.0
		groundY = 29
	)

	for y := 0; y < iconSize; y++ {
		for x := 0; x < iconSize; x++ {
			fx, fy := float64(x)+0.5, float64(y)+0.5
			if y > groundY {
				continue
			}
			dx := fx - cx
			var outer, inner bool
			if fy <= archY {
				d := math.Hypot(dx, fy-archY)
				outer = d <= outerR
				inner = d <= innerR
			} else {
				outer = math.Abs(dx) <= outerR
				inner = math.Abs(dx) <= innerR
			}
			switch {
			case inner:
				img.SetNRGBA(x, y, dark)
			case outer:
				img.SetNRGBA(x, y, fill)
			}
		}
	}
	return img
}
