// cmd/game/main.go
package main

import (
	"flag"
	"net/http"
	_ "net/http/pprof"
	"os"
	"time"

	"shooterx/internal/app"
	"shooterx/internal/config"
	"shooterx/internal/defs"
	"shooterx/internal/logger"
	"shooterx/internal/state"
	"shooterx/internal/telemetry"

	"github.com/hajimehoshi/ebiten/v2"
)

const startFromGame = false // true skips the title screen

type AppGame struct {
	stateMachine   *state.StateMachine
	lastUpdateTime time.Time
}

func (a *AppGame) Update() error {
	now := time.Now()
	deltaTime := now.Sub(a.lastUpdateTime).Seconds()
	if deltaTime > config.MaxDeltaTime {
		deltaTime = config.MaxDeltaTime
	}
	a.lastUpdateTime = now
	a.stateMachine.Update(deltaTime)
	return nil
}

func (a *AppGame) Draw(screen *ebiten.Image) {
	a.stateMachine.Draw(screen)
}

func (a *AppGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.ScreenWidth, config.ScreenHeight
}

func main() {
	configPath := flag.String("config", "", "path to a TOML tuning file")
	enemiesPath := flag.String("enemies", "", "path to a JSON enemy catalog")
	seed := flag.Int64("seed", 0, "random seed (0 picks one from the clock)")
	pprofAddr := flag.String("pprof", "localhost:6060", "pprof listen address, empty to disable")
	flag.Parse()

	log := logger.With("main")

	tuning := config.DefaultTuning()
	if *configPath != "" {
		t, err := config.Load(*configPath)
		if err != nil {
			log.Error("load tuning", "path", *configPath, "err", err)
			os.Exit(1)
		}
		tuning = t
	}
	if *seed != 0 {
		tuning.Seed = *seed
	}

	catalog := defs.DefaultCatalog()
	if *enemiesPath != "" {
		c, err := defs.LoadEnemyDefinitions(*enemiesPath)
		if err != nil {
			log.Error("load enemy catalog", "path", *enemiesPath, "err", err)
			os.Exit(1)
		}
		catalog = c
	}

	if *pprofAddr != "" {
		go func() {
			log.Info("pprof listening", "addr", *pprofAddr)
			if err := http.ListenAndServe(*pprofAddr, nil); err != nil {
				log.Warn("pprof stopped", "err", err)
			}
		}()
	}

	sink := telemetry.NewSink()
	defer sink.Close()

	newGame := func() *app.Game {
		g := app.NewGame(tuning, catalog.Clone())
		g.AttachTelemetry(sink)
		return g
	}

	sm := state.NewStateMachine()
	if startFromGame {
		sm.SetState(state.NewGameState(sm, newGame()))
	} else {
		sm.SetState(state.NewMenuState(sm, newGame))
	}
	game := &AppGame{
		stateMachine:   sm,
		lastUpdateTime: time.Now(),
	}
	ebiten.SetWindowSize(config.ScreenWidth, config.ScreenHeight)
	ebiten.SetWindowTitle("ShooterX")
	if err := ebiten.RunGame(game); err != nil {
		log.Error("game loop", "err", err)
		sink.Close()
		os.Exit(1)
	}
}
