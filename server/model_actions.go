package server

import (
	"context"
	"encoding/gob"
	"math/rand"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
	"github.com/zucenko/roadmemo/model"
	"github.com/zucenko/roadmemo/play"
)

const (
	recordTimeout  = 2 * time.Second
	readWait       = 60 * time.Second
	maxMessageSize = 512
)

// NewGameServer builds a server dealing maps from roads, or from the
// built-in roads when roads is nil.
func NewGameServer(roads []model.Road, recorder Recorder, seed int64) *GameServer {
	if recorder == nil {
		recorder = LogRecorder{}
	}
	return &GameServer{
		GameSessions:   make(map[int32]*GameSession),
		GameRequests:   make(chan GameRequest),
		Ended:          make(chan int32),
		Upgrader:       &websocket.Upgrader{},
		Recorder:       recorder,
		Roads:          roads,
		Timeout:        200 * time.Millisecond,
		ReadWait:       readWait,
		MaxMessageSize: maxMessageSize,
		rnd:            rand.New(rand.NewSource(seed)),
	}
}

func (s *GameServer) HandleHttpCall() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Info("HandleHttpCall - connection received")

		gcas := make(chan GameContextAwaiting, 1)
		select {
		case s.GameRequests <- GameRequest{GameContextAwaiting: gcas}:
		case <-time.After(s.Timeout):
			log.Warn("GameRequests TIMEOUTED")
			w.WriteHeader(http.StatusRequestTimeout)
			return
		}

		var gca GameContextAwaiting
		select {
		case gca = <-gcas:
			log.Debugf("HandleHttpCall GameContextAwaiting <- code:%d", gca.ResponseCode)
		case <-time.After(s.Timeout):
			log.Warn("HandleHttpCall GameContextAwaiting <- TIMEOUTED")
			w.WriteHeader(http.StatusRequestTimeout)
			return
		}
		if gca.ResponseCode != GAME_READY {
			w.WriteHeader(gca.ResponseCode.ToHttp())
			return
		}
		gs := gca.GameSession

		// upgrade writes its own error response
		con, err := s.Upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.WithError(err).Warn("HandleHttpCall websocket upgrade")
			gs.fail(0)
			return
		}
		defer con.Close()

		gameOver := make(chan struct{})
		select {
		case gs.PlayerConnectRequests <- PlayerConnectRequest{Con: con, GameOver: gameOver}:
		case <-time.After(s.Timeout):
			log.Warn("PlayerConnectRequests TIMEOUTED")
			gs.fail(0)
			return
		}

		log.WithField("session", gs.Id).Info("HandleHttpCall waiting for game over")
		<-gameOver
	}
}

// Loop owns the session table. It returns when ctx is done.
func (s *GameServer) Loop(ctx context.Context) {
	log.Info("GameServer.Loop starting")
	for {
		select {
		case <-ctx.Done():
			log.Info("GameServer.Loop stopped")
			return
		case gameReq := <-s.GameRequests:
			p, err := play.NewSession(rand.New(rand.NewSource(s.rnd.Int63())), s.Roads)
			if err != nil {
				log.WithError(err).Error("create play session")
				gameReq.GameContextAwaiting <- GameContextAwaiting{ResponseCode: GAME_INVALIDE}
				continue
			}
			s.nextId++
			gs := &GameSession{
				Id:                    s.nextId,
				State:                 GS_NEW,
				Play:                  p,
				Errors:                make(chan int32),
				Events:                make(chan PlayerEvent),
				PlayerConnectRequests: make(chan PlayerConnectRequest),
				Done:                  make(chan struct{}),
				server:                s,
			}
			s.GameSessions[gs.Id] = gs
			log.WithFields(log.Fields{"session": gs.Id, "road": p.Map().RoadIndex}).Info("create GameSession")
			go gs.Loop(ctx)

			gameReq.GameContextAwaiting <- GameContextAwaiting{
				ResponseCode: GAME_READY,
				GameSession:  gs,
			}
		case id := <-s.Ended:
			delete(s.GameSessions, id)
			log.WithFields(log.Fields{"session": id, "open": len(s.GameSessions)}).Info("GameSession ended")
		}
	}
}

func (gs *GameSession) Loop(ctx context.Context) {
	defer gs.end(ctx)
	for {
		select {
		case <-ctx.Done():
			gs.State = GS_OVER
			return
		case pcr := <-gs.PlayerConnectRequests:
			gs.addPlayer(pcr.Con, pcr.GameOver)
			gs.State = GS_PLAY
			gs.Player.State = PS_PLAY
			gs.send(gs.Play.Setup())
		case errPlayer := <-gs.Errors:
			// leaving after the round ended is not an error
			if gs.State == GS_OVER {
				return
			}
			log.WithFields(log.Fields{"session": gs.Id, "player": errPlayer}).Warn("killing GS")
			gs.State = GS_ERR
			if gs.Player != nil {
				gs.Player.State = PS_ERR
			}
			return
		case pe := <-gs.Events:
			reply, err := gs.Play.Turn(pe.Message)
			if err != nil {
				log.WithError(err).Error("GameSession.Loop turn")
				gs.State = GS_ERR
				return
			}
			gs.send(reply)
			if len(reply.Setup) > 0 {
				gs.State = GS_PLAY
				gs.Player.State = PS_PLAY
			}
			for _, step := range reply.Steps {
				if step.Outcome == model.Failed || step.Outcome == model.Arrived {
					gs.State = GS_OVER
					gs.Player.State = PS_OVER
					gs.record(ctx, step)
				}
			}
		}
	}
}

func (gs *GameSession) end(ctx context.Context) {
	close(gs.Done)
	fields := log.Fields{"session": gs.Id, "state": gs.State.Name(), "rounds": gs.Play.Rounds}
	if ps := gs.Player; ps != nil {
		close(ps.GameOver)
		fields["player"] = ps.State.Name()
		fields["in"] = ps.DebugInMessages.Load()
		fields["out"] = ps.DebugOutMessages.Load()
		fields["pings"] = ps.DebugPings.Load()
		if last := ps.DebugLastMessage.Load(); last > 0 {
			fields["idle"] = time.Since(time.Unix(0, last))
		}
		if last := ps.DebugLastPing.Load(); last > 0 {
			fields["sincePing"] = time.Since(time.Unix(0, last))
		}
	}
	log.WithFields(fields).Info("GameSession.end")
	select {
	case gs.server.Ended <- gs.Id:
	case <-ctx.Done():
	}
}

// fail reports a broken player unless the session already ended.
func (gs *GameSession) fail(player int32) {
	select {
	case gs.Errors <- player:
	case <-gs.Done:
	}
}

func (gs *GameSession) send(mes model.ServerMessage) {
	select {
	case gs.Player.MessagesToSend <- mes:
	default:
		log.WithField("session", gs.Id).Warn("dropping message, MessagesToSend FULL")
	}
}

func (gs *GameSession) record(ctx context.Context, step model.Step) {
	res := Result{
		Session:   gs.Id,
		Round:     gs.Play.Rounds,
		RoadIndex: gs.Play.Map().RoadIndex,
		Outcome:   step.Outcome,
		Steps:     step.Steps,
		Duration:  time.Since(gs.Play.Started),
		At:        time.Now(),
	}
	ctx, cancel := context.WithTimeout(ctx, recordTimeout)
	defer cancel()
	if err := gs.server.Recorder.Record(ctx, res); err != nil {
		log.WithError(err).Warn("record result")
	}
}

func (gs *GameSession) addPlayer(conn *websocket.Conn, gameOver chan struct{}) {
	ps := &PlayerSession{
		State:          PS_NEW,
		Id:             gs.Id,
		GameSession:    gs,
		Conn:           conn,
		GameOver:       gameOver,
		MessagesToSend: make(chan model.ServerMessage, 10),
	}
	readWait := gs.server.ReadWait
	conn.SetReadLimit(gs.server.MaxMessageSize)
	conn.SetReadDeadline(time.Now().Add(readWait))
	conn.SetPingHandler(
		func(message string) error {
			conn.SetReadDeadline(time.Now().Add(readWait))
			err := conn.WriteControl(websocket.PongMessage, []byte(message), time.Now().Add(time.Second))
			ps.DebugLastPing.Store(time.Now().UnixNano())
			ps.DebugPings.Add(1)
			if err == websocket.ErrCloseSent {
				return nil
			} else if e, ok := err.(net.Error); ok && e.Timeout() {
				return nil
			}
			return err
		})
	go ps.LoopChannelRead()
	go ps.LoopChannelWrite()
	gs.Player = ps
}

func (ps *PlayerSession) LoopChannelRead() {
	gs := ps.GameSession
	for {
		_, r, err := ps.Conn.NextReader()
		if err != nil {
			log.WithError(err).Debug("LoopChannelRead reading from Conn")
			gs.fail(ps.Id)
			return
		}
		cm := model.ClientMessage{}
		if err := gob.NewDecoder(r).Decode(&cm); err != nil {
			log.WithError(err).Warn("LoopChannelRead cant decode")
			gs.fail(ps.Id)
			return
		}
		ps.Conn.SetReadDeadline(time.Now().Add(gs.server.ReadWait))
		ps.DebugLastMessage.Store(time.Now().UnixNano())
		ps.DebugInMessages.Add(1)

		select {
		case gs.Events <- PlayerEvent{Player: ps.Id, Message: cm}:
		case <-gs.Done:
			return
		}
	}
}

// LoopChannelWrite only consumes, a full buffer never blocks the session.
func (ps *PlayerSession) LoopChannelWrite() {
	gs := ps.GameSession
	for {
		select {
		case <-gs.Done:
			return
		case mes := <-ps.MessagesToSend:
			if err := ps.write(mes); err != nil {
				log.WithError(err).Warn("PlayerSession.LoopChannelWrite")
				gs.fail(ps.Id)
				return
			}
			ps.DebugOutMessages.Add(1)
		}
	}
}

func (ps *PlayerSession) write(mes model.ServerMessage) error {
	w, err := ps.Conn.NextWriter(websocket.BinaryMessage)
	if err != nil {
		return err
	}
	if err := gob.NewEncoder(w).Encode(mes); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}
