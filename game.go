package main

import (
	"context"
	"fmt"
	"image/color"
	"math"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten"
	"github.com/hajimehoshi/ebiten/ebitenutil"
	"github.com/hajimehoshi/ebiten/inpututil"
	"github.com/hajimehoshi/ebiten/text"
	log "github.com/sirupsen/logrus"
	"github.com/zucenko/roadmemo/board"
	"github.com/zucenko/roadmemo/model"
	"golang.org/x/image/font"
)

const (
	size    = 50
	frameDt = float32(1.0 / 60)
)

func HexToF32(u uint32) GameColor {
	b := float64(0xff&u) / 255
	g := float64(0xff&(u>>8)) / 255
	r := float64(0xff&(u>>16)) / 255
	return GameColor{r, g, b}
}

type GameColor struct {
	r, g, b float64
}

var screenWidth = model.MaxCols * size
var screenHeight = model.MaxRows * size

var (
	COLOR_ROAD   = HexToF32(0xedbc1e)
	COLOR_WALL   = HexToF32(0x444444)
	COLOR_BEGIN  = HexToF32(0x0abd38)
	COLOR_END    = HexToF32(0x34fbf6)
	COLOR_PLAYER = HexToF32(0xfa3636)
	COLOR_PANEL  = HexToF32(0x321ecc)
	COLOR_BUTTON = HexToF32(0xcb18dd)
)

// StrokeSource represents a input device to provide strokes.
type StrokeSource interface {
	Position() (int, int)
	IsJustReleased() bool
}

// MouseStrokeSource is a StrokeSource implementation of mouse.
type MouseStrokeSource struct{}

func (m *MouseStrokeSource) Position() (int, int) {
	return ebiten.CursorPosition()
}

func (m *MouseStrokeSource) IsJustReleased() bool {
	return inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)
}

// TouchStrokeSource is a StrokeSource implementation of touch.
type TouchStrokeSource struct {
	ID int
}

func (t *TouchStrokeSource) Position() (int, int) {
	return ebiten.TouchPosition(t.ID)
}

func (t *TouchStrokeSource) IsJustReleased() bool {
	return inpututil.IsTouchJustReleased(t.ID)
}

// Stroke manages the current drag state by mouse.
type Stroke struct {
	source StrokeSource

	// initX and initY represents the position when dragging starts.
	initX int
	initY int

	// currentX and currentY represents the current position
	currentX int
	currentY int

	released bool
	dragged  bool
}

func NewStroke(source StrokeSource) *Stroke {
	cx, cy := source.Position()
	return &Stroke{
		source:   source,
		initX:    cx,
		initY:    cy,
		currentX: cx,
		currentY: cy,
	}
}

func (s *Stroke) Update() {
	if s.released {
		return
	}
	if s.source.IsJustReleased() {
		s.released = true
		return
	}
	x, y := s.source.Position()
	s.currentX = x
	s.currentY = y
	dx, dy := s.PositionDiff()
	if math.Abs(float64(dx)) > size/2 || math.Abs(float64(dy)) > size/2 {
		s.dragged = true
	}
}

func (s *Stroke) IsReleased() bool {
	return s.released
}

// IsTap is true for a released stroke that stayed near where it started.
func (s *Stroke) IsTap() bool {
	return s.released && !s.dragged
}

func (s *Stroke) PositionDiff() (int, int) {
	dx := s.currentX - s.initX
	dy := s.currentY - s.initY
	return dx, dy
}

type GameState int

const (
	LOADING GameState = iota + 1
	MEMORIZE
	PLAYING
	GAME_OVER
)

func (s GameState) Name() string {
	switch s {
	case LOADING:
		return "LOADING"
	case MEMORIZE:
		return "MEMORIZE"
	case PLAYING:
		return "PLAYING"
	case GAME_OVER:
		return "GAME_OVER"
	default:
		return fmt.Sprintf("N/A(%d)", s)
	}
}

type reply struct {
	mes model.ServerMessage
	err error
}

type Game struct {
	State    GameState
	Referee  Referee
	Layer    *board.Layer
	Tweens   *board.Scheduler
	Restart  *board.Restart
	Panel    *Nine
	Button   *Nine
	Font     font.Face
	strokes  map[*Stroke]struct{}
	replies  chan reply
	pending  bool
	player   model.Pos
	steps    int
	memorize time.Duration
	left     time.Duration
	tile     *ebiten.Image
}

func NewGame(ref Referee, memorize time.Duration, face font.Face) (*Game, error) {
	tile, err := ebiten.NewImage(size, size, ebiten.FilterDefault)
	if err != nil {
		return nil, err
	}
	if err := tile.Fill(color.White); err != nil {
		return nil, err
	}
	round, err := newRoundImage()
	if err != nil {
		return nil, err
	}
	g := &Game{
		State:    LOADING,
		Referee:  ref,
		Tweens:   board.NewScheduler(),
		Panel:    NewNine(round, COLOR_PANEL.r, COLOR_PANEL.g, COLOR_PANEL.b),
		Button:   NewNine(round, COLOR_BUTTON.r, COLOR_BUTTON.g, COLOR_BUTTON.b),
		Font:     face,
		strokes:  map[*Stroke]struct{}{},
		replies:  make(chan reply, 1),
		memorize: memorize,
		tile:     tile,
	}
	g.request(func(ctx context.Context) (model.ServerMessage, error) {
		return ref.Open(ctx)
	})
	return g, nil
}

// request runs one referee call off the update loop. Only one call is in
// flight at a time.
func (g *Game) request(call func(ctx context.Context) (model.ServerMessage, error)) {
	if g.pending {
		return
	}
	g.pending = true
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		mes, err := call(ctx)
		g.replies <- reply{mes: mes, err: err}
	}()
}

func (g *Game) send(cm model.ClientMessage) {
	g.request(func(ctx context.Context) (model.ServerMessage, error) {
		return g.Referee.Send(ctx, cm)
	})
}

func (g *Game) poll() {
	select {
	case r := <-g.replies:
		g.pending = false
		if r.err != nil {
			log.WithError(r.err).Error("referee")
			g.over(fmt.Sprintf("Lost the referee: %v", r.err))
			return
		}
		g.apply(r.mes)
	default:
	}
}

func (g *Game) apply(mes model.ServerMessage) {
	if len(mes.Setup) > 0 {
		g.newRound(mes.Setup[0], mes.Visibles)
		return
	}
	for _, v := range mes.Visibles {
		g.Layer.SetType(v.Pos, v.Type)
	}
	for _, step := range mes.Steps {
		log.WithFields(log.Fields{"outcome": step.Outcome.Name(), "to": step.To, "steps": step.Steps}).Debug("step")
		switch step.Outcome {
		case model.Moved:
			g.Layer.ShowBlock(step.To, true)
			g.player = step.To
			g.steps = step.Steps
		case model.Failed, model.Arrived:
			g.Layer.ShowBlock(step.To, true)
			if step.Outcome == model.Arrived {
				g.player = step.To
			}
			g.steps = step.Steps
			g.over(board.TipFor(step))
		case model.Over:
			g.over(board.TipFor(step))
		}
	}
}

func (g *Game) newRound(setup model.Setup, visibles []model.Visibilize) {
	g.Layer = board.NewLayer(model.NewMapFromVisibles(setup, visibles), size)
	g.Restart = nil
	g.player = setup.Begin
	g.steps = 0
	g.left = g.memorize
	g.State = MEMORIZE
	log.WithFields(log.Fields{"road": setup.RoadIndex, "begin": setup.Begin, "end": setup.End}).Info("new round")
}

// over reveals the whole map and offers a retry.
func (g *Game) over(tip string) {
	g.State = GAME_OVER
	if g.Layer != nil {
		g.Layer.ShowAll()
	}
	g.Restart = board.NewRestart(tip, screenWidth, screenHeight, g.Tweens)
}

func (g *Game) tap(x, y int) {
	switch g.State {
	case PLAYING:
		if p, ok := g.Layer.PosAt(x, y); ok {
			g.send(model.ClientMessage{Step: p})
		}
	case GAME_OVER:
		if g.Restart != nil && g.Restart.Hit(x, y) {
			g.send(model.ClientMessage{Restart: true})
		}
	}
}

func (g *Game) updateStrokes() {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.strokes[NewStroke(&MouseStrokeSource{})] = struct{}{}
	}
	for _, id := range inpututil.JustPressedTouchIDs() {
		g.strokes[NewStroke(&TouchStrokeSource{id})] = struct{}{}
	}
	for s := range g.strokes {
		s.Update()
		if !s.IsReleased() {
			continue
		}
		if s.IsTap() {
			g.tap(s.initX, s.initY)
		}
		delete(g.strokes, s)
	}
}

func (g *Game) update(screen *ebiten.Image) error {
	g.poll()
	g.Tweens.Update(frameDt)
	if g.Layer != nil {
		g.Layer.Update(frameDt)
	}

	if g.State == MEMORIZE {
		g.left -= time.Duration(float64(frameDt) * float64(time.Second))
		if g.left <= 0 {
			g.Layer.HideAll()
			g.Layer.ShowBlock(g.Layer.Map.Begin, true)
			g.Layer.ShowBlock(g.Layer.Map.End, true)
			g.State = PLAYING
		}
	}
	g.updateStrokes()
	if g.State == GAME_OVER && inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.send(model.ClientMessage{Restart: true})
	}

	if ebiten.IsDrawingSkipped() {
		return nil
	}
	return g.draw(screen)
}

func (g *Game) draw(screen *ebiten.Image) error {
	if err := screen.Fill(color.RGBA{70, 70, 70, 255}); err != nil {
		return err
	}
	if g.Layer != nil {
		g.Layer.Each(func(t *board.Tile) {
			if !t.Visible() {
				return
			}
			g.drawTile(screen, t.X, t.Y, .92, g.tileColor(t), t.Alpha())
		})
		if g.State != MEMORIZE {
			tile := g.Layer.Tile(g.player)
			g.drawTile(screen, tile.X, tile.Y, .5, COLOR_PLAYER, 1)
		}
	}
	if g.Restart != nil {
		g.drawRestart(screen)
	}
	msg := fmt.Sprintf("%s steps:%d", g.State.Name(), g.steps)
	if g.State == MEMORIZE {
		msg = fmt.Sprintf("%s %.1fs", g.State.Name(), g.left.Seconds())
	}
	ebitenutil.DebugPrintAt(screen, msg, 4, 0)
	return nil
}

func (g *Game) tileColor(t *board.Tile) GameColor {
	switch {
	case t.Pos == g.Layer.Map.Begin:
		return COLOR_BEGIN
	case t.Pos == g.Layer.Map.End:
		return COLOR_END
	case t.Type == model.BlockRoad:
		return COLOR_ROAD
	default:
		return COLOR_WALL
	}
}

// drawTile draws the tile image scaled around the centre of its cell.
func (g *Game) drawTile(screen *ebiten.Image, x, y int, scale float64, c GameColor, alpha float64) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	margin := float64(size) * (1 - scale) / 2
	op.GeoM.Translate(float64(x)+margin, float64(y)+margin)
	op.ColorM.Scale(c.r, c.g, c.b, alpha)
	screen.DrawImage(g.tile, op)
}

func (g *Game) drawRestart(screen *ebiten.Image) {
	r := g.Restart
	s := r.Scale()
	panel := r.Panel
	w, h := int(float64(panel.Dx())*s), int(float64(panel.Dy())*s)
	cx, cy := panel.Min.X+panel.Dx()/2, panel.Min.Y+panel.Dy()/2
	g.Panel.x, g.Panel.y = cx-w/2, cy-h/2
	g.Panel.SetSize(w, h)
	g.Panel.Draw(screen)
	if s < 1 {
		return
	}
	g.Button.SetRect(r.Button)
	g.Button.Draw(screen)
	text.Draw(screen, r.Tip, g.Font, panel.Min.X+20, panel.Min.Y+50, color.White)
	text.Draw(screen, "Retry", g.Font, r.Button.Min.X+20, r.Button.Max.Y-r.Button.Dy()/3, color.White)
}

func run(ctx context.Context, cfg Config) error {
	ref, err := newReferee(ctx, cfg)
	if err != nil {
		return err
	}
	defer ref.Close()

	face, err := loadFont(24)
	if err != nil {
		return err
	}
	g, err := NewGame(ref, cfg.Memorize, face)
	if err != nil {
		return err
	}
	return ebiten.Run(g.update, screenWidth, screenHeight, 1, "Road Memo")
}

func main() {
	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
