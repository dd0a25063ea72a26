package model

import (
	"errors"
	"fmt"
)

var (
	ErrNoRoads    = errors.New("no roads")
	ErrEmptyRoad  = errors.New("empty road")
	ErrOutOfRange = errors.New("position out of range")
)

// NewMap generates a map from one of the built-in roads.
func NewMap(rnd Rand) *Map {
	return newMap(Roads[:], rnd)
}

// NewMapWithRoads generates a map from one of the given roads. Every road
// must be non-empty and lie within the grid.
func NewMapWithRoads(roads []Road, rnd Rand) (*Map, error) {
	if len(roads) == 0 {
		return nil, ErrNoRoads
	}
	for i, road := range roads {
		if err := road.Validate(MaxRows, MaxCols); err != nil {
			return nil, fmt.Errorf("road %d: %w", i, err)
		}
	}
	return newMap(roads, rnd), nil
}

func newMap(roads []Road, rnd Rand) *Map {
	m := &Map{Rows: MaxRows, Cols: MaxCols}
	// create
	for r := 0; r < m.Rows; r++ {
		row := make([]*Block, 0, m.Cols)
		for c := 0; c < m.Cols; c++ {
			row = append(row, &Block{Pos: Pos{Row: r, Col: c}, Type: BlockWall})
		}
		m.Matrix = append(m.Matrix, row)
	}
	m.generateRoad(roads, rnd)
	m.randomRoad(rnd)
	return m
}

func (m *Map) generateRoad(roads []Road, rnd Rand) {
	m.RoadIndex = rnd.Intn(len(roads))
	m.Road = roads[m.RoadIndex]
	for _, p := range m.Road {
		m.Block(p).Type = BlockRoad
	}
	m.Begin = m.Road[0]
	m.End = m.Road[len(m.Road)-1]
}

func (m *Map) randomRoad(rnd Rand) {
	for r := 0; r < m.Rows; r++ {
		for c := 0; c < m.Cols; c++ {
			block := m.Matrix[r][c]
			if block.Type == BlockRoad {
				continue
			}
			if rnd.Intn(100)+1 <= RoadPercent {
				block.Type = BlockRoad
			}
		}
	}
}

// Block returns nil when p is outside the grid.
func (m *Map) Block(p Pos) *Block {
	if p.Col >= m.Cols || p.Col < 0 {
		return nil
	}
	if p.Row >= m.Rows || p.Row < 0 {
		return nil
	}
	return m.Matrix[p.Row][p.Col]
}

func (m *Map) IsRoad(p Pos) bool {
	block := m.Block(p)
	return block != nil && block.Type == BlockRoad
}

// OnRoad reports whether p belongs to the chosen road, not just any road block.
func (m *Map) OnRoad(p Pos) bool {
	for _, rp := range m.Road {
		if rp == p {
			return true
		}
	}
	return false
}

func (r Road) Validate(rows, cols int) error {
	if len(r) == 0 {
		return ErrEmptyRoad
	}
	for _, p := range r {
		if p.Row < 0 || p.Row >= rows || p.Col < 0 || p.Col >= cols {
			return fmt.Errorf("%v: %w", p, ErrOutOfRange)
		}
	}
	return nil
}

// Connected reports whether every step of the road moves to a neighbour.
func (r Road) Connected() bool {
	for i := 1; i < len(r); i++ {
		if !r[i-1].Adjacent(r[i]) {
			return false
		}
	}
	return true
}

// NewMapFromVisibles rebuilds a map from a setup message. Blocks the
// message does not mention stay BlockNull.
func NewMapFromVisibles(s Setup, visibles []Visibilize) *Map {
	m := &Map{Rows: s.Rows, Cols: s.Cols, Begin: s.Begin, End: s.End, RoadIndex: s.RoadIndex}
	for r := 0; r < m.Rows; r++ {
		row := make([]*Block, 0, m.Cols)
		for c := 0; c < m.Cols; c++ {
			row = append(row, &Block{Pos: Pos{Row: r, Col: c}, Type: BlockNull})
		}
		m.Matrix = append(m.Matrix, row)
	}
	for _, v := range visibles {
		if block := m.Block(v.Pos); block != nil {
			block.Type = v.Type
		}
	}
	return m
}
