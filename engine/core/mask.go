package core

// Mask is a per-pixel opacity map used for precise collision tests
type Mask struct {
	W, H int
	bits []bool
}

// NewMask returns a fully transparent mask
func NewMask(w, h int) *Mask {
	return &Mask{W: w, H: h, bits: make([]bool, w*h)}
}

// MaskFromPattern samples an ASCII pattern ('#' is opaque) onto a w*h mask
// using nearest-neighbour scaling.
func MaskFromPattern(rows []string, w, h int) *Mask {
	m := NewMask(w, h)
	if len(rows) == 0 {
		return m
	}
	ph, pw := len(rows), len(rows[0])
	for y := 0; y < h; y++ {
		row := rows[y*ph/h]
		for x := 0; x < w; x++ {
			px := x * pw / w
			if px < len(row) && row[px] == '#' {
				m.Set(x, y, true)
			}
		}
	}
	return m
}

func (m *Mask) Set(x, y int, v bool) {
	if x < 0 || y < 0 || x >= m.W || y >= m.H {
		return
	}
	m.bits[y*m.W+x] = v
}

// At reports whether (x, y) is opaque. Out-of-range points are transparent.
func (m *Mask) At(x, y int) bool {
	if x < 0 || y < 0 || x >= m.W || y >= m.H {
		return false
	}
	return m.bits[y*m.W+x]
}

// Rotate returns a copy of an up-facing square mask turned to face d
func (m *Mask) Rotate(d Direction) *Mask {
	out := NewMask(m.W, m.H)
	n := m.W - 1
	for y := 0; y < m.H; y++ {
		for x := 0; x < m.W; x++ {
			var v bool
			switch d {
			case Up:
				v = m.At(x, y)
			case Down:
				v = m.At(x, m.H-1-y)
			case Left:
				v = m.At(n-y, x)
			case Right:
				v = m.At(y, n-x)
			}
			out.Set(x, y, v)
		}
	}
	return out
}

// MasksOverlap tests two masks placed at ar and br for a shared opaque pixel.
// A nil mask is treated as fully opaque over its rect.
func MasksOverlap(a *Mask, ar Rect, b *Mask, br Rect) bool {
	in := ar.Intersect(br)
	if in.Empty() {
		return false
	}
	for y := in.Y; y < in.Bottom(); y++ {
		for x := in.X; x < in.Right(); x++ {
			if (a == nil || a.At(x-ar.X, y-ar.Y)) && (b == nil || b.At(x-br.X, y-br.Y)) {
				return true
			}
		}
	}
	return false
}

var tankPattern = []string{
	".......##.......",
	".......##.......",
	".......##.......",
	".......##.......",
	".##############.",
	".##############.",
	".##############.",
	".##############.",
	".##############.",
	".##############.",
	".##############.",
	".##############.",
	".##############.",
	".##############.",
	".##############.",
	".##############.",
}

var bulletPattern = []string{
	".##.",
	"####",
	"####",
	".##.",
}

// MaskSet holds the per-direction masks for tanks and bullets
type MaskSet struct {
	Tank   [numDirections]*Mask
	Bullet [numDirections]*Mask
}

// NewMaskSet builds direction masks at the given pixel sizes
func NewMaskSet(tankSize, bulletSize int) *MaskSet {
	ms := &MaskSet{}
	tank := MaskFromPattern(tankPattern, tankSize, tankSize)
	bullet := MaskFromPattern(bulletPattern, bulletSize, bulletSize)
	for _, d := range Directions {
		ms.Tank[d] = tank.Rotate(d)
		ms.Bullet[d] = bullet.Rotate(d)
	}
	return ms
}
