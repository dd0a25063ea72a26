package board

import "github.com/zucenko/roadmemo/model"

// Layer holds one tile per map block and keeps them in sync with show and
// hide requests.
type Layer struct {
	Map       *model.Map
	BlockSize int
	Tiles     [][]*Tile
	Scheduler *Scheduler
}

func NewLayer(m *model.Map, blockSize int) *Layer {
	l := &Layer{
		Map:       m,
		BlockSize: blockSize,
		Scheduler: NewScheduler(),
	}
	for r := 0; r < m.Rows; r++ {
		row := make([]*Tile, 0, m.Cols)
		for c := 0; c < m.Cols; c++ {
			block := m.Matrix[r][c]
			// row 0 is drawn at the bottom
			row = append(row, newTile(block, c*blockSize, (m.Rows-r-1)*blockSize, l.Scheduler))
		}
		l.Tiles = append(l.Tiles, row)
	}
	return l
}

func (l *Layer) Width() int {
	return l.Map.Cols * l.BlockSize
}

func (l *Layer) Height() int {
	return l.Map.Rows * l.BlockSize
}

// Tile returns nil outside the grid.
func (l *Layer) Tile(p model.Pos) *Tile {
	if l.Map.Block(p) == nil {
		return nil
	}
	return l.Tiles[p.Row][p.Col]
}

func (l *Layer) IsRoad(p model.Pos) bool {
	return l.Map.IsRoad(p)
}

func (l *Layer) ShowBlock(p model.Pos, forever bool) {
	tile := l.Tile(p)
	if tile == nil {
		return
	}
	tile.Show(forever)
}

// SetType updates a block learned after the layer was built.
func (l *Layer) SetType(p model.Pos, t model.BlockType) {
	tile := l.Tile(p)
	if tile == nil {
		return
	}
	l.Map.Block(p).Type = t
	tile.Type = t
}

func (l *Layer) HideAll() {
	l.Each(func(tile *Tile) {
		if !tile.ShownForever() {
			tile.HideByFadeOut()
		}
	})
}

// ShowAll reveals every tile without touching the shown-forever flags.
func (l *Layer) ShowAll() {
	l.Each(func(tile *Tile) {
		tile.Show(false)
	})
}

func (l *Layer) Each(f func(*Tile)) {
	for _, row := range l.Tiles {
		for _, tile := range row {
			f(tile)
		}
	}
}

// PosAt maps a screen point to the block under it.
func (l *Layer) PosAt(x, y int) (model.Pos, bool) {
	if x < 0 || y < 0 || l.BlockSize <= 0 {
		return model.Pos{}, false
	}
	p := model.Pos{Col: x / l.BlockSize, Row: l.Map.Rows - 1 - y/l.BlockSize}
	if l.Map.Block(p) == nil {
		return model.Pos{}, false
	}
	return p, true
}

func (l *Layer) Update(dt float32) {
	l.Scheduler.Update(dt)
}
