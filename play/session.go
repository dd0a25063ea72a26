package play

import (
	"time"

	"github.com/zucenko/roadmemo/model"
)

// Session referees consecutive rounds for one player.
type Session struct {
	Walk    *Walk
	Started time.Time
	Rounds  int

	rnd   model.Rand
	roads []model.Road
}

// NewSession starts the first round. Nil roads means the built-in ones.
func NewSession(rnd model.Rand, roads []model.Road) (*Session, error) {
	s := &Session{rnd: rnd, roads: roads}
	if err := s.restart(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) restart() error {
	var m *model.Map
	if s.roads == nil {
		m = model.NewMap(s.rnd)
	} else {
		var err error
		m, err = model.NewMapWithRoads(s.roads, s.rnd)
		if err != nil {
			return err
		}
	}
	s.Walk = NewWalk(m)
	s.Started = time.Now()
	s.Rounds++
	return nil
}

func (s *Session) Map() *model.Map {
	return s.Walk.Map
}

// Setup describes the current round, every block included.
func (s *Session) Setup() model.ServerMessage {
	m := s.Walk.Map
	visibles := make([]model.Visibilize, 0, m.Rows*m.Cols)
	for _, row := range m.Matrix {
		for _, block := range row {
			visibles = append(visibles, model.Visibilize{Pos: block.Pos, Type: block.Type})
		}
	}
	return model.ServerMessage{
		Setup: []model.Setup{{
			Rows:      m.Rows,
			Cols:      m.Cols,
			Begin:     m.Begin,
			End:       m.End,
			RoadIndex: m.RoadIndex,
		}},
		Visibles: visibles,
	}
}

// Turn applies one client message and returns the reply.
func (s *Session) Turn(cm model.ClientMessage) (model.ServerMessage, error) {
	if cm.Restart {
		if err := s.restart(); err != nil {
			return model.ServerMessage{}, err
		}
		return s.Setup(), nil
	}
	step := s.Walk.Step(cm.Step)
	reply := model.ServerMessage{Steps: []model.Step{step}}
	if step.Outcome == model.Moved || step.Outcome == model.Arrived || step.Outcome == model.Failed {
		block := s.Walk.Map.Block(step.To)
		reply.Visibles = []model.Visibilize{{Pos: block.Pos, Type: block.Type}}
	}
	return reply, nil
}
