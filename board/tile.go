package board

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/zucenko/roadmemo/model"
)

const FadeSeconds = 1.0

// Tile mirrors one map block on screen.
type Tile struct {
	Pos  model.Pos
	X, Y int
	Type model.BlockType

	visible      bool
	alpha        float64
	shownForever bool
	fade         *gween.Tween
	scheduler    *Scheduler
}

func newTile(block *model.Block, x, y int, s *Scheduler) *Tile {
	return &Tile{
		Pos:       block.Pos,
		X:         x,
		Y:         y,
		Type:      block.Type,
		visible:   true,
		alpha:     1,
		scheduler: s,
	}
}

func (t *Tile) Visible() bool {
	return t.visible
}

func (t *Tile) Alpha() float64 {
	return t.alpha
}

func (t *Tile) ShownForever() bool {
	return t.shownForever
}

func (t *Tile) SetShownForever(forever bool) {
	t.shownForever = forever
}

func (t *Tile) Fading() bool {
	return t.fade != nil && t.scheduler.Running(t.fade)
}

// Show brings the tile back to full opacity and stops a running fade.
func (t *Tile) Show(forever bool) {
	if t.fade != nil {
		t.scheduler.Cancel(t.fade)
		t.fade = nil
	}
	t.visible = true
	t.alpha = 1
	if forever {
		t.shownForever = true
	}
}

// HideByFadeOut fades the tile out. Tiles shown forever stay as they are.
func (t *Tile) HideByFadeOut() {
	if t.shownForever || t.fade != nil {
		return
	}
	fade := gween.New(float32(t.alpha), 0, FadeSeconds, ease.Linear)
	action := &Action{OnChange: func(v float32) {
		t.alpha = float64(v)
	}}
	action.AddOnFinish(func() {
		t.fade = nil
		if t.shownForever {
			t.visible = true
			t.alpha = 1
			return
		}
		t.visible = false
	})
	t.fade = fade
	t.scheduler.Run(fade, action)
}
