package display

import (
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

const (
	columns = Width / GlyphWidth
	rows    = Height / LineHeight
)

// Console is a text framebuffer with the geometry of a 128x64 panel. Flush logs the
// visible lines when they changed since the last flush.
type Console struct {
	cells [rows][columns]rune
	last  string
	mutex sync.Mutex
}

func NewConsole() *Console {
	c := &Console{}
	c.Clear()
	return c
}

func (c *Console) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.fill(0, 0, columns, rows, ' ')
}

func (c *Console) DrawText(x, y int, s string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	row := y / LineHeight
	if row < 0 || row >= rows {
		return
	}
	col := x / GlyphWidth
	for _, r := range s {
		if col >= columns {
			break
		}
		if col >= 0 {
			c.cells[row][col] = r
		}
		col++
	}
}

func (c *Console) DrawFilledRect(x, y, w, h int, color int) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	r := ' '
	if color != 0 {
		r = '#'
	}
	c.fill(x/GlyphWidth, y/LineHeight, (x+w+GlyphWidth-1)/GlyphWidth, (y+h+LineHeight-1)/LineHeight, r)
}

func (c *Console) fill(x0, y0, x1, y1 int, r rune) {
	for row := max(y0, 0); row < min(y1, rows); row++ {
		for col := max(x0, 0); col < min(x1, columns); col++ {
			c.cells[row][col] = r
		}
	}
}

// Lines returns the framebuffer rows without trailing blanks.
func (c *Console) Lines() []string {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.lines()
}

func (c *Console) lines() []string {
	out := make([]string, 0, rows)
	for _, row := range c.cells {
		out = append(out, strings.TrimRight(string(row[:]), " "))
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return out
}

func (c *Console) Flush() error {
	c.mutex.Lock()
	frame := strings.Join(c.lines(), " | ")
	changed := frame != c.last
	c.last = frame
	c.mutex.Unlock()

	if changed {
		logrus.WithField("display", frame).Info("display updated")
	}
	return nil
}
