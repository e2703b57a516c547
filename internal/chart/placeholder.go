package chart

import (
	"image"
	"image/color"
	"strings"
	"unicode/utf8"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Placeholder renders message centred on a blank canvas with no axes.
func (r *Renderer) Placeholder(message string) ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, r.width, r.height))
	draw.Draw(img, img.Bounds(), image.NewUniform(white), image.Point{}, draw.Src)

	lines := wrap(message, max(1, (r.width-40)/r.textWidth("M")))
	lineHeight := r.face.Metrics().Height.Ceil()
	y := r.height/2 - (len(lines)*lineHeight)/2 + r.face.Metrics().Ascent.Ceil()
	for _, line := range lines {
		r.drawCentered(img, line, r.width/2, y, black)
		y += lineHeight
	}

	return encode(img)
}

func (r *Renderer) textWidth(s string) int {
	return font.MeasureString(r.face, s).Ceil()
}

// drawCentered draws s horizontally centred on cx with baseline y.
func (r *Renderer) drawCentered(dst draw.Image, s string, cx, y int, c color.Color) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: r.face,
		Dot:  fixed.P(cx-r.textWidth(s)/2, y),
	}
	d.DrawString(s)
}

// wrap splits s into lines of at most width runes, breaking on spaces.
func wrap(s string, width int) []string {
	var lines []string
	for _, para := range strings.Split(s, "\n") {
		line := ""
		for _, word := range strings.Fields(para) {
			for utf8.RuneCountInString(word) > width {
				if line != "" {
					lines = append(lines, line)
					line = ""
				}
				r := []rune(word)
				lines = append(lines, string(r[:width]))
				word = string(r[width:])
			}
			switch {
			case line == "":
				line = word
			case utf8.RuneCountInString(line)+1+utf8.RuneCountInString(word) <= width:
				line += " " + word
			default:
				lines = append(lines, line)
				line = word
			}
		}
		lines = append(lines, line)
	}
	return lines
}
