package main

import (
	"github.com/matryer/way"
)

const (
	URI_WS    = "/play"
	URI_ROADS = "/roads"
	URI_MAP   = "/map/:seed"
)

func (s *Server) routes() {
	s.router = way.NewRouter()
	s.router.HandleFunc("GET", URI_WS, s.GameServer.HandleHttpCall())
	s.router.HandleFunc("GET", URI_ROADS, s.GameServer.HandleRoads())
	s.router.HandleFunc("GET", URI_MAP, s.GameServer.HandleMap())
}
