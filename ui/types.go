// Package ui draws the raygui side panels and the on-screen display.
// Every panel is laid out twice per frame: once to measure it, once to draw
// it on top of its background. The measuring pass never touches raylib.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// Theme holds UI styling constants.
type Theme struct {
	PanelBg       rl.Color
	PanelBorder   rl.Color
	SectionHeader rl.Color
	LabelColor    rl.Color
	ValueColor    rl.Color
	ActiveColor   rl.Color
	HelpColor     rl.Color

	Padding        int32
	LineHeight     int32
	FontSize       int32
	HeaderFontSize int32
	WidgetHeight   int32 // sliders and buttons
	ValueWidth     int32 // room right of a slider for its value
	Gap            int32 // vertical space after a widget
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:        rl.Color{R: 20, G: 25, B: 30, A: 230},
		PanelBorder:    rl.Color{R: 60, G: 70, B: 80, A: 255},
		SectionHeader:  rl.Yellow,
		LabelColor:     rl.LightGray,
		ValueColor:     rl.White,
		ActiveColor:    rl.Color{R: 100, G: 200, B: 100, A: 255},
		HelpColor:      rl.Gray,
		Padding:        10,
		LineHeight:     16,
		FontSize:       12,
		HeaderFontSize: 14,
		WidgetHeight:   18,
		ValueWidth:     60,
		Gap:            6,
	}
}
