package server

import (
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/zucenko/roadmemo/model"
	"github.com/zucenko/roadmemo/play"
)

type GameServer struct {
	GameSessions map[int32]*GameSession
	GameRequests chan GameRequest
	Ended        chan int32
	Upgrader     *websocket.Upgrader
	Recorder     Recorder
	Roads        []model.Road
	Timeout      time.Duration
	// ReadWait is how long a player may stay silent, pings included.
	ReadWait       time.Duration
	MaxMessageSize int64

	rnd    *rand.Rand
	nextId int32
}

type GameSessionState int

const (
	GS_NEW GameSessionState = iota
	GS_PLAY
	GS_ERR
	GS_OVER
)

type GameSession struct {
	Id                    int32
	State                 GameSessionState
	Play                  *play.Session
	Player                *PlayerSession
	Errors                chan int32
	Events                chan PlayerEvent
	PlayerConnectRequests chan PlayerConnectRequest
	Done                  chan struct{}

	server *GameServer
}

type PlayerSessionState int

const (
	PS_NEW PlayerSessionState = iota + 1
	PS_PLAY
	PS_OVER
	PS_ERR
)

type PlayerSession struct {
	State       PlayerSessionState
	Id          int32
	GameSession *GameSession
	Conn        *websocket.Conn
	GameOver    chan struct{}

	MessagesToSend chan model.ServerMessage

	// written by the read and write loops, read when the session ends
	DebugInMessages  atomic.Int64
	DebugOutMessages atomic.Int64
	DebugLastMessage atomic.Int64
	DebugLastPing    atomic.Int64
	DebugPings       atomic.Int64
}
