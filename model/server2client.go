package model

import "fmt"

type ServerMessage struct {
	Setup    []Setup
	Steps    []Step
	Visibles []Visibilize
}

type Setup struct {
	Rows, Cols int
	Begin, End Pos
	RoadIndex  int
}

type Outcome int

const (
	Moved Outcome = iota + 1
	Blocked
	Failed
	Arrived
	Over
)

func (o Outcome) Name() string {
	switch o {
	case Moved:
		return "MOVED"
	case Blocked:
		return "BLOCKED"
	case Failed:
		return "FAILED"
	case Arrived:
		return "ARRIVED"
	case Over:
		return "OVER"
	default:
		return fmt.Sprintf("N/A(%d)", o)
	}
}

// Final is true for outcomes that end the round.
func (o Outcome) Final() bool {
	return o == Failed || o == Arrived || o == Over
}

type Step struct {
	Outcome  Outcome
	From, To Pos
	Steps    int
}

type Visibilize struct {
	Pos  Pos
	Type BlockType
}
