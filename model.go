package main

import (
	"context"

	"github.com/zucenko/roadmemo/model"
	"github.com/zucenko/roadmemo/play"
)

// Referee decides what every step leads to.
type Referee interface {
	Open(ctx context.Context) (model.ServerMessage, error)
	Send(ctx context.Context, cm model.ClientMessage) (model.ServerMessage, error)
	Close() error
}

// localReferee plays without a server.
type localReferee struct {
	session *play.Session
}

func (l *localReferee) Open(context.Context) (model.ServerMessage, error) {
	return l.session.Setup(), nil
}

func (l *localReferee) Send(_ context.Context, cm model.ClientMessage) (model.ServerMessage, error) {
	return l.session.Turn(cm)
}

func (l *localReferee) Close() error {
	return nil
}
