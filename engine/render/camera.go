package render

import (
	"math"

	"github.com/frgonzalezb/Udemy-Battle-City/engine/core"
)

// Camera maps field pixels onto the window. The field never scrolls, so
// the camera only scales and offsets.
type Camera struct {
	Zoom    float64
	MinZoom float64
	MaxZoom float64
	OffsetX float64 // screen position of world origin
	OffsetY float64
}

// NewCamera creates a camera at 1:1
func NewCamera() *Camera {
	return &Camera{Zoom: 1, MinZoom: 0.25, MaxZoom: 4}
}

// SetZoom sets zoom level with clamping
func (c *Camera) SetZoom(z float64) {
	c.Zoom = math.Max(c.MinZoom, math.Min(c.MaxZoom, z))
}

// Fit scales a world of worldW x worldH to fill screenW x screenH and
// centres it, keeping the aspect ratio
func (c *Camera) Fit(worldW, worldH, screenW, screenH int) {
	if worldW <= 0 || worldH <= 0 {
		return
	}
	z := math.Min(float64(screenW)/float64(worldW), float64(screenH)/float64(worldH))
	c.SetZoom(z)
	c.OffsetX = (float64(screenW) - float64(worldW)*c.Zoom) / 2
	c.OffsetY = (float64(screenH) - float64(worldH)*c.Zoom) / 2
}

// WorldToScreen converts a world rect to screen x, y, w, h
func (c *Camera) WorldToScreen(r core.Rect) (x, y, w, h float64) {
	return float64(r.X)*c.Zoom + c.OffsetX,
		float64(r.Y)*c.Zoom + c.OffsetY,
		float64(r.W) * c.Zoom,
		float64(r.H) * c.Zoom
}

// ScreenToWorld converts a screen pixel to world pixel coords
func (c *Camera) ScreenToWorld(sx, sy int) (int, int) {
	return int(math.Floor((float64(sx) - c.OffsetX) / c.Zoom)),
		int(math.Floor((float64(sy) - c.OffsetY) / c.Zoom))
}
