package server

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"strconv"

	"github.com/matryer/way"
	log "github.com/sirupsen/logrus"
	"github.com/zucenko/roadmemo/model"
)

func (s *GameServer) roads() []model.Road {
	if s.Roads != nil {
		return s.Roads
	}
	return model.Roads[:]
}

// HandleRoads lists the road tables maps are dealt from.
func (s *GameServer) HandleRoads() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respond(w, http.StatusOK, s.roads())
	}
}

// HandleMap generates the map a seed yields. Expects a :seed path param.
func (s *GameServer) HandleMap() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		seed, err := strconv.ParseInt(way.Param(r.Context(), "seed"), 10, 64)
		if err != nil {
			respond(w, http.StatusBadRequest, map[string]string{"error": "seed must be an integer"})
			return
		}
		m, err := model.NewMapWithRoads(s.roads(), rand.New(rand.NewSource(seed)))
		if err != nil {
			respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		respond(w, http.StatusOK, m)
	}
}

func respond(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Warn("encode response")
	}
}
