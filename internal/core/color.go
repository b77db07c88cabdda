package core

import "fmt"

// Color is a terminal foreground or background color. It is either an
// ANSI 256-color code ("1", "208") or a true-color hex value ("#EA5546").
// The empty Color means the terminal default.
type Color string

// Named colors for HUD and chrome.
const (
	ColorDefault     Color = ""
	ColorRed         Color = "1"
	ColorGreen       Color = "2"
	ColorYellow      Color = "3"
	ColorBlue        Color = "4"
	ColorMagenta     Color = "5"
	ColorCyan        Color = "6"
	ColorWhite       Color = "7"
	ColorBrightRed   Color = "9"
	ColorBrightWhite Color = "15"
	ColorOrange      Color = "208"
	ColorGray        Color = "245"
	ColorDarkGray    Color = "238"
)

// RGB builds a true-color value.
func RGB(r, g, b uint8) Color {
	return Color(fmt.Sprintf("#%02X%02X%02X", r, g, b))
}
