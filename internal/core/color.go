package core

// Color is a linear RGBA color with channels in [0, 1].
type Color struct {
	R, G, B, A float32
}

// RGB builds an opaque color from 8-bit channels.
func RGB(r, g, b uint8) Color {
	return Color{
		R: float32(r) / 255,
		G: float32(g) / 255,
		B: float32(b) / 255,
		A: 1,
	}
}

// Predefined colors used by the renderers.
var (
	ColorBlack  = RGB(0x00, 0x00, 0x00)
	ColorWhite  = RGB(0xFF, 0xFF, 0xFF)
	ColorGrey   = RGB(0xCC, 0xCC, 0xCC)
	ColorYellow = RGB(0xFF, 0xFF, 0x00)
)

// Pixel is one cell of the pixel buffer. Field order matches the in-memory
// byte order expected by the blit: blue, green, red, alpha.
type Pixel struct {
	B, G, R, A uint8
}

// PixelOf converts a color to an 8-bit pixel, clamping out-of-range channels.
func PixelOf(c Color) Pixel {
	return Pixel{
		B: channel(c.B),
		G: channel(c.G),
		R: channel(c.R),
		A: channel(c.A),
	}
}

func channel(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 0xFF
	}
	return uint8(v*255 + 0.5)
}

// Packed returns the pixel as alpha<<24 | red<<16 | green<<8 | blue.
func (p Pixel) Packed() uint32 {
	return uint32(p.A)<<24 | uint32(p.R)<<16 | uint32(p.G)<<8 | uint32(p.B)
}

// Color converts the pixel back to a float color.
func (p Pixel) Color() Color {
	return Color{
		R: float32(p.R) / 255,
		G: float32(p.G) / 255,
		B: float32(p.B) / 255,
		A: float32(p.A) / 255,
	}
}
