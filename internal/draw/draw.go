// Package draw rasterises the simulation onto a terminal: a half-block
// canvas with per-pixel ink, a projector that turns render items into
// canvas strokes, and the ANSI helpers the hosts write through.
package draw

// Point is a 2D coordinate in canvas logical space.
type Point struct {
	X, Y float64
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockEmpty     = ' '
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// Ink is a canvas pixel color. The zero Ink is an unset pixel.
type Ink uint8

// Inks map to the bright ANSI colors.
const (
	InkNone Ink = iota
	InkWhite
	InkMagenta
	InkCyan
	InkBlue
	InkYellow
	InkGreen
	InkRed
	inkCount
)

// ANSI color sequences.
const (
	ColorReset         = "\033[0m"
	ColorBrightWhite   = "\033[97m"
	ColorBrightMagenta = "\033[95m"
	ColorBrightCyan    = "\033[96m"
	ColorBrightBlue    = "\033[94m"
	ColorBrightYellow  = "\033[93m"
	ColorBrightGreen   = "\033[92m"
	ColorBrightRed     = "\033[91m"
)

// Foreground codes indexed by Ink; background is foreground + 10.
var inkCodes = [inkCount]int{
	InkNone:    39,
	InkWhite:   97,
	InkMagenta: 95,
	InkCyan:    96,
	InkBlue:    94,
	InkYellow:  93,
	InkGreen:   92,
	InkRed:     91,
}

// inkRGB is used to find the nearest ink for an arbitrary color.
var inkRGB = [inkCount][3]float32{
	InkWhite:   {1, 1, 1},
	InkMagenta: {1, 0, 1},
	InkCyan:    {0, 1, 1},
	InkBlue:    {0, 0, 1},
	InkYellow:  {1, 1, 0},
	InkGreen:   {0, 1, 0},
	InkRed:     {1, 0, 0},
}

// NearestInk returns the ink closest to an RGB color. Fully transparent
// colors give InkNone.
func NearestInk(rgba [4]float32) Ink {
	if rgba[3] <= 0 {
		return InkNone
	}
	best, bestDist := InkWhite, float32(-1)
	for ink := InkWhite; ink < inkCount; ink++ {
		c := inkRGB[ink]
		dr, dg, db := rgba[0]-c[0], rgba[1]-c[1], rgba[2]-c[2]
		d := dr*dr + dg*dg + db*db
		if bestDist < 0 || d < bestDist {
			best, bestDist = ink, d
		}
	}
	return best
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
