package board

import (
	"fmt"
	"image"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/zucenko/roadmemo/model"
)

const popSeconds = 0.3

// Restart is the end-of-round panel with a tip and a retry button.
type Restart struct {
	Tip    string
	Panel  image.Rectangle
	Button image.Rectangle
	scale  float64
}

// NewRestart centres the panel on a width x height screen and pops it in.
func NewRestart(tip string, width, height int, s *Scheduler) *Restart {
	pw, ph := width*4/5, height/2
	panel := image.Rect(0, 0, pw, ph).Add(image.Pt((width-pw)/2, (height-ph)/2))
	bw, bh := pw/2, ph/4
	button := image.Rect(0, 0, bw, bh).Add(image.Pt(panel.Min.X+(pw-bw)/2, panel.Max.Y-bh-ph/8))
	r := &Restart{Tip: tip, Panel: panel, Button: button}
	s.Run(gween.New(0, 1, popSeconds, ease.OutQuad), &Action{OnChange: func(v float32) {
		r.scale = float64(v)
	}})
	return r
}

func (r *Restart) Scale() float64 {
	return r.scale
}

// Hit reports whether a tap at x, y presses the retry button.
func (r *Restart) Hit(x, y int) bool {
	return image.Pt(x, y).In(r.Button)
}

func TipFor(step model.Step) string {
	switch step.Outcome {
	case model.Failed:
		return fmt.Sprintf("That was a wall. %d steps taken.", step.Steps)
	case model.Arrived:
		return fmt.Sprintf("You made it in %d steps!", step.Steps)
	default:
		return "Round over."
	}
}
