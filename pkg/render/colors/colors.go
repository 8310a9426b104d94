// Package colors parses the color specifications accepted by waterfall
// palettes and styles.
//
// Accepted forms:
//   - CSS/X11 color names ("seagreen", "salmon", "grey")
//   - matplotlib single-letter shorthands ("b", "g", "r", "c", "m", "y", "k", "w")
//   - hex triplets ("#2e8b57", "#2e8b57cc", "#abc")
//   - "none" or "transparent" for no paint
package colors

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"

	"github.com/matzehuels/waterfall/pkg/errors"
)

// shorthand holds matplotlib's base color codes.
var shorthand = map[string]color.RGBA{
	"b": {R: 0x00, G: 0x00, B: 0xff, A: 0xff},
	"g": {R: 0x00, G: 0x80, B: 0x00, A: 0xff},
	"r": {R: 0xff, G: 0x00, B: 0x00, A: 0xff},
	"c": {R: 0x00, G: 0xbf, B: 0xbf, A: 0xff},
	"m": {R: 0xbf, G: 0x00, B: 0xbf, A: 0xff},
	"y": {R: 0xbf, G: 0xbf, B: 0x00, A: 0xff},
	"k": {R: 0x00, G: 0x00, B: 0x00, A: 0xff},
	"w": {R: 0xff, G: 0xff, B: 0xff, A: 0xff},
}

// Parse converts a color specification to RGBA.
func Parse(spec string) (color.RGBA, error) {
	s := strings.ToLower(strings.TrimSpace(spec))
	if s == "" {
		return color.RGBA{}, errors.New(errors.ErrCodeInvalidColor, "color cannot be empty")
	}
	if s == "none" || s == "transparent" {
		return color.RGBA{}, nil
	}
	if c, ok := shorthand[s]; ok {
		return c, nil
	}
	if c, ok := colornames.Map[s]; ok {
		return c, nil
	}
	if strings.HasPrefix(s, "#") {
		return parseHex(s)
	}
	return color.RGBA{}, errors.New(errors.ErrCodeInvalidColor,
		"unknown color %q (use a CSS color name, a matplotlib shorthand, or #rrggbb)", spec)
}

func parseHex(s string) (color.RGBA, error) {
	alpha := uint8(0xff)
	if len(s) == 9 {
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return color.RGBA{}, errors.Wrap(errors.ErrCodeInvalidColor, err, "invalid alpha in %q", s)
		}
		alpha = uint8(a)
		s = s[:7]
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, errors.Wrap(errors.ErrCodeInvalidColor, err, "invalid hex color %q", s)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: alpha}, nil
}

// MustParse is like Parse but panics on error. It is intended for constants.
func MustParse(spec string) color.RGBA {
	c, err := Parse(spec)
	if err != nil {
		panic(err)
	}
	return c
}

// Valid reports whether spec parses.
func Valid(spec string) bool {
	_, err := Parse(spec)
	return err == nil
}

// Hex returns the "#rrggbb" form of c, ignoring alpha.
func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Opacity returns the alpha channel of c in [0, 1].
func Opacity(c color.RGBA) float64 {
	return float64(c.A) / 0xff
}
