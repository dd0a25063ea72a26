package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/matryer/way"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"
	"github.com/zucenko/roadmemo/model"
	"github.com/zucenko/roadmemo/server"
)

type Server struct {
	router     *way.Router
	GameServer *server.GameServer
}

func main() {
	cmd := &cli.Command{
		Name:  "roadmemo-server",
		Usage: "referee road memory rounds over websockets",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "port", Value: "8080", Usage: "HTTP port", Sources: cli.EnvVars("PORT")},
			&cli.StringFlag{Name: "roads", Usage: "roads file, built-in roads when empty"},
			&cli.StringFlag{Name: "dsn", Usage: "PostgreSQL DSN for round results", Sources: cli.EnvVars("DATABASE_URL")},
			&cli.IntFlag{Name: "seed", Usage: "map seed, time based when 0"},
			&cli.BoolFlag{Name: "debug", Usage: "debug logging"},
		},
		Action: run,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	if cmd.Bool("debug") {
		log.SetLevel(log.DebugLevel)
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var roads []model.Road
	if path := cmd.String("roads"); path != "" {
		var err error
		if roads, err = server.LoadRoads(path); err != nil {
			return err
		}
		log.WithFields(log.Fields{"file": path, "roads": len(roads)}).Info("loaded roads")
	}

	var recorder server.Recorder = server.LogRecorder{}
	if dsn := cmd.String("dsn"); dsn != "" {
		rec, err := server.OpenSQLRecorder(ctx, dsn)
		if err != nil {
			return err
		}
		defer rec.Close()
		recorder = rec
	}

	seed := cmd.Int("seed")
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	s := Server{GameServer: server.NewGameServer(roads, recorder, seed)}
	go s.GameServer.Loop(ctx)
	s.routes()

	httpServer := &http.Server{Addr: ":" + cmd.String("port"), Handler: s.router}
	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		httpServer.Shutdown(shutdown)
	}()
	log.WithField("port", cmd.String("port")).Info("listening")
	if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}
