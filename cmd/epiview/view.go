package main

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/epidemic/components"
	"github.com/pthm-cable/epidemic/sim"
)

// viewer replays a finished run one snapshot per frame.
type viewer struct {
	screen  tcell.Screen
	history sim.History
	cells   int

	frame  int
	paused bool
	delay  time.Duration
}

func newViewer(screen tcell.Screen, history sim.History, cells int, delay time.Duration) *viewer {
	return &viewer{
		screen:  screen,
		history: history,
		cells:   cells,
		delay:   delay,
	}
}

// scale returns how many board cells share one screen cell along each axis.
// The last screen row is kept for the status line.
func (v *viewer) scale() (sx, sy int) {
	w, h := v.screen.Size()
	h--
	sx = max(1, (v.cells+w-1)/max(w, 1))
	sy = max(1, (v.cells+h-1)/max(h, 1))
	return sx, sy
}

func (v *viewer) draw() {
	v.screen.Clear()

	pop := v.history[v.frame]
	sx, sy := v.scale()

	// Most severe stage per screen cell
	occupied := make(map[[2]int]components.Stage)
	for i := 0; i < pop.Len(); i++ {
		e := pop.At(i)
		key := [2]int{e.Position.X / sx, e.Position.Y / sy}
		if s, ok := occupied[key]; !ok || worse(e.Health.Stage, s) {
			occupied[key] = e.Health.Stage
		}
	}
	for key, s := range occupied {
		r, style := stageGlyph(s)
		v.screen.SetContent(key[0], key[1], r, nil, style)
	}

	v.drawStatus(pop)
	v.screen.Show()
}

func (v *viewer) drawStatus(pop *sim.Population) {
	_, h := v.screen.Size()
	census := pop.Census()

	state := "playing"
	if v.paused {
		state = "paused"
	}
	line := fmt.Sprintf(" turn %d/%d  pop %d  healthy %d  infected %d  sick %d  recovering %d  [%s]  space:pause ←/→:step q:quit",
		pop.Turn(), len(v.history)-1, pop.Len(),
		census[components.Healthy], census[components.Infected], census[components.Sick], census[components.Recovering],
		state)

	style := tcell.StyleDefault.Reverse(true)
	for x, r := range []rune(line) {
		v.screen.SetContent(x, h-1, r, nil, style)
	}
}

// step moves the replay by delta frames, staying within the history.
func (v *viewer) step(delta int) {
	v.frame = min(max(v.frame+delta, 0), len(v.history)-1)
}

// handleInput applies one event. It returns false when the viewer should exit.
func (v *viewer) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyLeft:
			v.paused = true
			v.step(-1)
		case tcell.KeyRight:
			v.paused = true
			v.step(1)
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case ' ':
				v.paused = !v.paused
			}
		}
		v.draw()

	case *tcell.EventResize:
		v.screen.Sync()
		v.draw()
	}

	return true
}

func (v *viewer) run() {
	ticker := time.NewTicker(v.delay)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	v.draw()
	for {
		select {
		case ev := <-eventChan:
			if !v.handleInput(ev) {
				return
			}

		case <-ticker.C:
			if !v.paused && v.frame < len(v.history)-1 {
				v.step(1)
				v.draw()
			}
		}
	}
}
