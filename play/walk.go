package play

import "github.com/zucenko/roadmemo/model"

// Walk tracks the player across a map for one round.
type Walk struct {
	Map     *model.Map
	Pos     model.Pos
	Steps   int
	Outcome model.Outcome
	Visited map[model.Pos]struct{}
}

func NewWalk(m *model.Map) *Walk {
	return &Walk{
		Map:     m,
		Pos:     m.Begin,
		Visited: map[model.Pos]struct{}{m.Begin: {}},
	}
}

func (w *Walk) Done() bool {
	return w.Outcome.Final()
}

// Step moves the player to a neighbouring block. Steps after the round is
// over change nothing.
func (w *Walk) Step(to model.Pos) model.Step {
	step := model.Step{From: w.Pos, To: to, Steps: w.Steps}
	if w.Done() {
		step.Outcome = model.Over
		return step
	}
	block := w.Map.Block(to)
	if block == nil || !w.Pos.Adjacent(to) {
		step.Outcome = model.Blocked
		return step
	}

	w.Steps++
	step.Steps = w.Steps
	switch {
	case block.Type != model.BlockRoad:
		step.Outcome = model.Failed
	case to == w.Map.End:
		step.Outcome = model.Arrived
	default:
		step.Outcome = model.Moved
	}
	if step.Outcome != model.Failed {
		w.Pos = to
		w.Visited[to] = struct{}{}
	}
	if step.Outcome.Final() {
		w.Outcome = step.Outcome
	}
	return step
}
