package priority

import (
	"fmt"
	"math"
	"math/rand"
	"strconv"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// NeutralGray is the colour of unset priorities.
const NeutralGray = "#808080"

type rgb struct{ r, g, b int }

var (
	neonRed    = rgb{255, 7, 58}
	neonYellow = rgb{255, 240, 31}
	neonGreen  = rgb{57, 255, 20}
	neonCyan   = rgb{0, 255, 255}
)

// pulseFactor scales the brightness wave added to every channel.
const pulseFactor = 0.2

// Color is the display colour of a priority. Channels may be negative for
// the lowest urgencies; only the upper bound is clamped.
type Color struct {
	R, G, B int
	Neutral bool
}

// String returns "rgb(r, g, b)", or NeutralGray for unset priorities.
func (c Color) String() string {
	if c.Neutral {
		return NeutralGray
	}
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

// Hex returns a "#rrggbb" form with channels clamped to [0,255], usable by
// terminal styling.
func (c Color) Hex() string {
	if c.Neutral {
		return NeutralGray
	}
	cc := colorful.Color{
		R: float64(clampByte(c.R)) / 255,
		G: float64(clampByte(c.G)) / 255,
		B: float64(clampByte(c.B)) / 255,
	}
	return cc.Hex()
}

// Palette maps priorities to colours. The upper half of the gradient ends
// in green or cyan at random, so the same priority may render differently
// on each call.
type Palette struct {
	rnd func() float64
}

// NewPalette returns a Palette drawing from rnd. A nil rnd uses math/rand.
func NewPalette(rnd func() float64) *Palette {
	if rnd == nil {
		rnd = rand.Float64
	}
	return &Palette{rnd: rnd}
}

var defaultPalette = NewPalette(nil)

// ColorFor returns the colour of p using the package palette.
func ColorFor(p Priority) Color {
	return defaultPalette.ColorFor(p)
}

// ColorFor returns the colour of p.
func (pl *Palette) ColorFor(p Priority) Color {
	if p.IsUnset() {
		return Color{Neutral: true}
	}
	n, err := strconv.Atoi(string(p))
	if err != nil {
		return Color{Neutral: true}
	}

	urgency := max(Min, min(Max, n))
	t := float64(9-urgency) / 9
	wave := math.Sin(t * math.Pi)

	var from, to rgb
	var blend float64
	if t < 0.5 {
		from, to = neonRed, neonYellow
		blend = t * 2
	} else {
		from = neonYellow
		if pl.rnd() > 0.5 {
			to = neonGreen
		} else {
			to = neonCyan
		}
		blend = (t - 0.5) * 2
	}

	pulse := roundHalfUp(wave * 255 * pulseFactor)
	return Color{
		R: min(lerp(from.r, to.r, blend)+pulse, 255),
		G: min(lerp(from.g, to.g, blend)+pulse, 255),
		B: min(lerp(from.b, to.b, blend)+pulse, 255),
	}
}

func lerp(from, to int, t float64) int {
	return roundHalfUp(float64(from) + t*float64(to-from))
}

// roundHalfUp rounds .5 towards positive infinity, unlike math.Round.
func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

func clampByte(v int) int {
	return max(0, min(255, v))
}
