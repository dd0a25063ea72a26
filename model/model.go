package model

import "fmt"

const (
	MaxRows     = 10
	MaxCols     = 10
	RoadPercent = 25
)

type BlockType int

const (
	BlockNull BlockType = iota
	BlockRoad
	BlockWall
)

func (t BlockType) Name() string {
	switch t {
	case BlockNull:
		return "NULL"
	case BlockRoad:
		return "ROAD"
	case BlockWall:
		return "WALL"
	default:
		return fmt.Sprintf("N/A(%d)", t)
	}
}

// Pos indexes a block by row and column. Row 0 is the bottom row.
type Pos struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (p Pos) Adjacent(o Pos) bool {
	dr, dc := p.Row-o.Row, p.Col-o.Col
	return dr*dr+dc*dc == 1
}

func (p Pos) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

type Block struct {
	Pos  Pos       `json:"pos"`
	Type BlockType `json:"type"`
}

// Road is an ordered walkable route, first entry is the start.
type Road []Pos

// Rand is the part of *rand.Rand the generator needs.
type Rand interface {
	Intn(n int) int
}

type Map struct {
	Rows      int        `json:"rows"`
	Cols      int        `json:"cols"`
	Matrix    [][]*Block `json:"matrix"`
	Road      Road       `json:"road"`
	RoadIndex int        `json:"roadIndex"`
	Begin     Pos        `json:"begin"`
	End       Pos        `json:"end"`
}
