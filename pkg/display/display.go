package display

import (
	"fmt"

	"github.com/gibzwein/RCE-reader/pkg/tier"
	"github.com/sirupsen/logrus"
)

const (
	Width      = 128
	Height     = 64
	GlyphWidth = 8
	LineHeight = 8
)

// Display is a monochrome pixel display with an 8x8 text font.
type Display interface {
	Clear()
	DrawText(x, y int, s string)
	DrawFilledRect(x, y, w, h int, color int)
	Flush() error
}

// Screen draws status and price screens on a Display.
type Screen struct {
	d Display
}

func NewScreen(d Display) *Screen {
	return &Screen{d: d}
}

// Status replaces the whole screen with a single line.
func (s *Screen) Status(msg string) {
	s.d.Clear()
	s.d.DrawText(0, 0, msg)
	s.flush()
}

// Price redraws the top line with the price and the tier letter in the right corner.
func (s *Screen) Price(p float64, t tier.Tier) {
	s.d.DrawFilledRect(0, 0, Width, LineHeight, 0)
	s.d.DrawText(0, 0, fmt.Sprintf("RCEg: %s", formatPrice(p)))
	s.d.DrawText(Width-GlyphWidth-1, 0, t.Letter())
	s.flush()
}

func (s *Screen) flush() {
	if err := s.d.Flush(); err != nil {
		logrus.Errorf("error flushing display: %s", err)
	}
}

func formatPrice(p float64) string {
	return fmt.Sprintf("%.2f", p)
}
