package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/frgonzalezb/Udemy-Battle-City/engine/audio"
	"github.com/frgonzalezb/Udemy-Battle-City/engine/config"
	"github.com/frgonzalezb/Udemy-Battle-City/engine/logging"
	"github.com/frgonzalezb/Udemy-Battle-City/engine/render"
	"github.com/frgonzalezb/Udemy-Battle-City/engine/scoreboard"
	"github.com/frgonzalezb/Udemy-Battle-City/engine/telemetry"
)

func main() {
	cfgPath := flag.String("config", "", "config file (optional)")
	players := flag.Int("players", 0, "number of players, 0 uses the config")
	stage := flag.Int("stage", 0, "starting stage, 0 uses the config")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *players > 0 {
		cfg.Players = *players
	}
	if *stage > 0 {
		cfg.StartStage = *stage
	}
	title := *players == 0 && *stage == 0
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	var logFile io.Writer
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer f.Close()
		logFile = f
	}
	log := logging.Setup(cfg.LogLevel, os.Stderr, logFile)

	var am *audio.AudioManager
	if cfg.Audio.Enabled {
		am = audio.NewAudioManager()
		am.SetVolume(cfg.Audio.Volume)
		if err := am.Initialize(); err != nil {
			log.Warn().Err(err).Msg("No audio device, playing silently")
			am = nil
		} else {
			defer am.Cleanup()
		}
	}

	var board *scoreboard.Board
	if cfg.ScoreDB != "" {
		board, err = scoreboard.Open(cfg.ScoreDB)
		if err != nil {
			log.Warn().Err(err).Str("path", cfg.ScoreDB).Msg("Scoreboard unavailable")
		} else {
			defer board.Close()
		}
	}

	metrics, err := telemetry.New(nil)
	if err != nil {
		log.Warn().Err(err).Msg("Telemetry disabled")
	}

	game, err := NewGame(cfg, log, title, render.LoadDefaultSheet(4), am, board, metrics)
	if err != nil {
		log.Error().Err(err).Msg("Failed to start")
		os.Exit(1)
	}

	ww, wh := worldSize(cfg.Rules)
	ebiten.SetWindowSize(ww*cfg.Window.Scale, wh*cfg.Window.Scale)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetVsyncEnabled(true)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Error().Err(err).Msg("Game stopped")
		os.Exit(1)
	}
}
