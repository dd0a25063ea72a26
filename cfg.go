package main

import (
	"context"
	"math/rand"
	"os"
	"time"

	"github.com/golang/freetype/truetype"
	"github.com/hajimehoshi/ebiten/ebitenutil"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"
	"github.com/zucenko/roadmemo/model"
	"github.com/zucenko/roadmemo/play"
	"github.com/zucenko/roadmemo/remote"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

const pingPeriod = 20 * time.Second

type Config struct {
	Remote   string
	Roads    string
	Memorize time.Duration
	Seed     int64
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:  "roadmemo",
		Usage: "remember the road, then walk it",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "remote", Usage: "game server websocket URL, local play when empty", Sources: cli.EnvVars("ROADMEMO_REMOTE")},
			&cli.StringFlag{Name: "roads", Usage: "roads file for local play"},
			&cli.DurationFlag{Name: "memorize", Value: 3 * time.Second, Usage: "how long the whole map stays visible"},
			&cli.IntFlag{Name: "seed", Usage: "map seed for local play, time based when 0"},
			&cli.BoolFlag{Name: "debug", Usage: "debug logging"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Bool("debug") {
				log.SetLevel(log.DebugLevel)
			}
			return run(ctx, Config{
				Remote:   cmd.String("remote"),
				Roads:    cmd.String("roads"),
				Memorize: cmd.Duration("memorize"),
				Seed:     cmd.Int("seed"),
			})
		},
	}
}

func newReferee(ctx context.Context, cfg Config) (Referee, error) {
	if cfg.Remote != "" {
		client, err := remote.Dial(ctx, cfg.Remote)
		if err != nil {
			return nil, err
		}
		client.KeepAlive(pingPeriod)
		return client, nil
	}
	roads, err := loadRoads(cfg.Roads)
	if err != nil {
		return nil, err
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	session, err := play.NewSession(rand.New(rand.NewSource(seed)), roads)
	if err != nil {
		return nil, err
	}
	return &localReferee{session: session}, nil
}

// loadRoads returns nil, meaning the built-in roads, when path is empty or
// missing.
func loadRoads(path string) ([]model.Road, error) {
	if path == "" {
		return nil, nil
	}
	file, err := ebitenutil.OpenFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.WithField("file", path).Warn("roads file missing, using built-in roads")
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()
	return model.ReadRoads(file)
}

func loadFont(size float64) (font.Face, error) {
	tt, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, err
	}
	const dpi = 72
	return truetype.NewFace(tt, &truetype.Options{
		Size:       size,
		DPI:        dpi,
		SubPixelsX: 100,
		Hinting:    font.HintingFull,
	}), nil
}
