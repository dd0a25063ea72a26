package model

type ClientMessage struct {
	Step    Pos
	Restart bool
}
