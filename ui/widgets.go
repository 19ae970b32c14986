package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Renderer handles all UI drawing with consistent styling.
type Renderer struct {
	Theme Theme
}

// NewRenderer creates a renderer with the default theme.
func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme()}
}

// DrawPanel draws a panel background with border.
func (r *Renderer) DrawPanel(rect rl.Rectangle) {
	x, y, w, h := int32(rect.X), int32(rect.Y), int32(rect.Width), int32(rect.Height)
	rl.DrawRectangle(x, y, w, h, r.Theme.PanelBg)
	rl.DrawRectangleLines(x, y, w, h, r.Theme.PanelBorder)
}

// DrawLines draws text lines top to bottom and returns the next free y.
func (r *Renderer) DrawLines(x, y int32, lines []string) int32 {
	for _, line := range lines {
		rl.DrawText(line, x, y, r.Theme.FontSize, r.Theme.ValueColor)
		y += r.Theme.LineHeight
	}
	return y
}

// layout places widgets in a single column. With measure set it only
// advances the cursor and every widget returns its input unchanged.
type layout struct {
	theme   Theme
	measure bool
	x, y, w float32
}

func (l *layout) advance(h int32) {
	l.y += float32(h)
}

func (l *layout) header(title string) {
	if !l.measure {
		rl.DrawText(title, int32(l.x), int32(l.y), l.theme.HeaderFontSize, l.theme.SectionHeader)
	}
	l.advance(l.theme.LineHeight + 2)
}

func (l *layout) text(s string) {
	if !l.measure {
		rl.DrawText(s, int32(l.x), int32(l.y), l.theme.FontSize, l.theme.LabelColor)
	}
	l.advance(l.theme.LineHeight)
}

// slider draws a labelled slider with its current value printed to the right.
func (l *layout) slider(label, format string, v, lo, hi float32) float32 {
	l.text(label)
	if !l.measure {
		bounds := rl.Rectangle{X: l.x, Y: l.y, Width: l.w - float32(l.theme.ValueWidth), Height: float32(l.theme.WidgetHeight)}
		v = gui.SliderBar(bounds, "", "", v, lo, hi)
		rl.DrawText(fmt.Sprintf(format, v), int32(bounds.X+bounds.Width)+6, int32(l.y)+3, l.theme.FontSize, l.theme.ValueColor)
	}
	l.advance(l.theme.WidgetHeight + l.theme.Gap)
	return v
}

// buttons draws a row of equally wide buttons and returns the index of the
// one pressed, or -1.
func (l *layout) buttons(labels ...string) int {
	pressed := -1
	if !l.measure && len(labels) > 0 {
		const spacing = 6
		n := float32(len(labels))
		bw := (l.w - spacing*(n-1)) / n
		for i, label := range labels {
			bounds := rl.Rectangle{X: l.x + float32(i)*(bw+spacing), Y: l.y, Width: bw, Height: float32(l.theme.WidgetHeight) + 4}
			if gui.Button(bounds, label) {
				pressed = i
			}
		}
	}
	l.advance(l.theme.WidgetHeight + 4 + l.theme.Gap)
	return pressed
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}
