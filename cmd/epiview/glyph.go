package main

import (
	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/epidemic/components"
)

// severity orders stages for cells holding several entities; the highest wins.
var severity = [components.NumStages]int{
	components.Healthy:    0,
	components.Recovering: 1,
	components.Infected:   2,
	components.Sick:       3,
}

// stageGlyph returns the rune and style used to draw an entity in stage s.
func stageGlyph(s components.Stage) (rune, tcell.Style) {
	switch s {
	case components.Healthy:
		return '●', tcell.StyleDefault.Foreground(tcell.ColorGreen)
	case components.Infected:
		return '◉', tcell.StyleDefault.Foreground(tcell.ColorYellow)
	case components.Sick:
		return '✚', tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	case components.Recovering:
		return '○', tcell.StyleDefault.Foreground(tcell.ColorBlue)
	default:
		return '?', tcell.StyleDefault.Foreground(tcell.ColorPurple)
	}
}

// worse reports whether a should be drawn over b.
func worse(a, b components.Stage) bool {
	return severity[a] > severity[b]
}
