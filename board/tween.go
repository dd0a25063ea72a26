package board

import "github.com/tanema/gween"

// Action is what happens while a tween runs and after it finishes.
type Action struct {
	OnChange func(float32)
	onFinish []func()
	nexts    []func(s *Scheduler)
}

func (a *Action) AddOnFinish(f func()) {
	if a.onFinish == nil {
		a.onFinish = make([]func(), 0)
	}
	a.onFinish = append(a.onFinish, f)
}

// Next queues t to start once this action's tween finishes.
func (a *Action) Next(t *gween.Tween) *Action {
	action := &Action{}
	if a.nexts == nil {
		a.nexts = make([]func(s *Scheduler), 0)
	}
	a.nexts = append(a.nexts,
		func(s *Scheduler) {
			s.tweens[t] = action
		})
	return action
}

// Scheduler steps running tweens from the game update loop.
type Scheduler struct {
	tweens map[*gween.Tween]*Action
}

func NewScheduler() *Scheduler {
	return &Scheduler{tweens: make(map[*gween.Tween]*Action)}
}

func (s *Scheduler) Run(t *gween.Tween, a *Action) {
	if a == nil {
		a = &Action{}
	}
	s.tweens[t] = a
}

// Cancel drops t without running its finish callbacks.
func (s *Scheduler) Cancel(t *gween.Tween) {
	delete(s.tweens, t)
}

func (s *Scheduler) Running(t *gween.Tween) bool {
	_, ok := s.tweens[t]
	return ok
}

func (s *Scheduler) Len() int {
	return len(s.tweens)
}

func (s *Scheduler) Update(dt float32) {
	for t, a := range s.tweens {
		curr, finished := t.Update(dt)
		if a.OnChange != nil {
			a.OnChange(curr)
		}
		if finished {
			delete(s.tweens, t)
			for _, onFinish := range a.onFinish {
				onFinish()
			}
			for _, next := range a.nexts {
				next(s)
			}
		}
	}
}
