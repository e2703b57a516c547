// Package chart renders the weekday bar chart and text placeholders as PNG.
package chart

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

const (
	minWidth  = 320
	minHeight = 200
)

var (
	// SkyBlue is the default bar colour.
	SkyBlue = color.RGBA{R: 0x87, G: 0xce, B: 0xeb, A: 0xff}

	white     = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	black     = color.RGBA{A: 0xff}
	gridColor = color.RGBA{R: 0xe5, G: 0xe5, B: 0xe5, A: 0xff}
)

// Bar is one labelled value.
type Bar struct {
	Label string
	Value float64
}

// Options configures chart geometry and colours.
type Options struct {
	Width    int
	Height   int
	BarColor color.RGBA
}

// Renderer draws charts. It holds no mutable state and is safe for concurrent use.
type Renderer struct {
	width    int
	height   int
	barColor color.RGBA
	face     font.Face
}

// New creates a renderer, defaulting to 800x400 with sky-blue bars.
func New(opts Options) *Renderer {
	r := &Renderer{
		width:    opts.Width,
		height:   opts.Height,
		barColor: opts.BarColor,
		face:     basicfont.Face7x13,
	}
	if r.width <= 0 {
		r.width = 800
	}
	if r.height <= 0 {
		r.height = 400
	}
	r.width = max(r.width, minWidth)
	r.height = max(r.height, minHeight)
	if r.barColor.A == 0 {
		r.barColor = SkyBlue
	}
	return r
}

// Size returns the image dimensions in pixels.
func (r *Renderer) Size() (int, int) {
	return r.width, r.height
}

// ParseHexColor parses "#rrggbb" or "#rgb".
func ParseHexColor(s string) (color.RGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid hex colour %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid hex colour %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

func encode(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode chart: %w", err)
	}
	return buf.Bytes(), nil
}

// valueRange returns the plotted y range, always including zero, with
// headroom for value labels.
func valueRange(bars []Bar) (float64, float64) {
	lo, hi := 0.0, 0.0
	for _, b := range bars {
		lo = math.Min(lo, b.Value)
		hi = math.Max(hi, b.Value)
	}
	if hi == lo {
		return lo, lo + 1
	}
	pad := (hi - lo) * 0.1
	if hi > 0 {
		hi += pad
	}
	if lo < 0 {
		lo -= pad
	}
	return lo, hi
}
