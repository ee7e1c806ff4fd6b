package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/frgonzalezb/Udemy-Battle-City/engine/audio"
	"github.com/frgonzalezb/Udemy-Battle-City/engine/config"
	"github.com/frgonzalezb/Udemy-Battle-City/engine/core"
	"github.com/frgonzalezb/Udemy-Battle-City/engine/input"
	"github.com/frgonzalezb/Udemy-Battle-City/engine/logging"
	"github.com/frgonzalezb/Udemy-Battle-City/engine/render"
	"github.com/frgonzalezb/Udemy-Battle-City/engine/scoreboard"
	"github.com/frgonzalezb/Udemy-Battle-City/engine/session"
)

// pad turns terminal key presses into held keys for one player. Terminals
// only report presses and auto-repeats, so movement is held for a while
// after each one and fire for a couple of ticks.
type pad struct {
	move input.Latch
	fire input.Latch
	ctrl input.Controller
}

func newPad(fps int) *pad {
	return &pad{
		move: input.Latch{Hold: uint64(max(fps/2, 1))},
		fire: input.Latch{Hold: 2},
	}
}

const directions = input.KeyUp | input.KeyDown | input.KeyLeft | input.KeyRight

func (p *pad) press(k input.Keys, now uint64) {
	if k&directions != 0 {
		p.move.Release(directions)
		p.move.Press(k&directions, now)
	}
	if k.Has(input.KeyFire) {
		p.fire.Press(input.KeyFire, now)
	}
}

func (p *pad) intent(now uint64) core.Intent {
	return p.ctrl.Intent(p.move.Keys(now) | p.fire.Keys(now))
}

func (p *pad) reset() {
	p.move.Release(directions)
	p.fire.Release(input.KeyFire)
	p.ctrl.Reset()
}

var runeKeys = map[rune]input.Keys{
	'w': input.KeyUp, 'W': input.KeyUp,
	's': input.KeyDown, 'S': input.KeyDown,
	'a': input.KeyLeft, 'A': input.KeyLeft,
	'd': input.KeyRight, 'D': input.KeyRight,
	' ': input.KeyFire,
}

var specialKeys = map[tcell.Key]input.Keys{
	tcell.KeyUp:    input.KeyUp,
	tcell.KeyDown:  input.KeyDown,
	tcell.KeyLeft:  input.KeyLeft,
	tcell.KeyRight: input.KeyRight,
	tcell.KeyEnter: input.KeyFire,
}

// keyFor maps a key event to a player slot and button: letters and space
// for player one, arrows and Enter for player two
func keyFor(ev *tcell.EventKey) (int, input.Keys, bool) {
	if ev.Key() == tcell.KeyRune {
		k, ok := runeKeys[ev.Rune()]
		return 0, k, ok
	}
	k, ok := specialKeys[ev.Key()]
	return 1, k, ok
}

type termGame struct {
	cfg     config.Config
	log     zerolog.Logger
	screen  tcell.Screen
	canvas  *render.TermCanvas
	session *session.Session
	pads    []*pad
	audio   *audio.AudioManager
	board   *scoreboard.Board

	paused  bool
	over    bool
	summary string
}

func newTermGame(cfg config.Config, log zerolog.Logger, screen tcell.Screen, am *audio.AudioManager, board *scoreboard.Board) (*termGame, error) {
	g := &termGame{
		cfg:    cfg,
		log:    log,
		screen: screen,
		canvas: render.NewTermCanvas(screen, cfg.Rules),
		audio:  am,
		board:  board,
	}
	for i := 0; i < cfg.Players; i++ {
		g.pads = append(g.pads, newPad(cfg.Rules.FPS))
	}
	return g, g.restart()
}

func (g *termGame) restart() error {
	opts, err := g.cfg.SessionOptions(&g.log)
	if err != nil {
		return err
	}
	s, err := session.New(opts)
	if err != nil {
		return err
	}
	if g.audio != nil {
		g.audio.Attach(s.World.Bus)
	}
	if err := s.LoadStage(g.cfg.StartStage); err != nil {
		return err
	}
	g.session = s
	g.over = false
	g.summary = ""
	for _, p := range g.pads {
		p.reset()
	}
	return nil
}

// handleKey returns false when the player asked to quit
func (g *termGame) handleKey(ev *tcell.EventKey) bool {
	switch {
	case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC:
		return false
	case ev.Key() == tcell.KeyRune && (ev.Rune() == 'p' || ev.Rune() == 'P'):
		g.paused = !g.paused
		return true
	case ev.Key() == tcell.KeyRune && (ev.Rune() == 'r' || ev.Rune() == 'R') && g.over:
		if err := g.restart(); err != nil {
			g.log.Error().Err(err).Msg("Restart failed")
			return false
		}
		return true
	}
	if slot, k, ok := keyFor(ev); ok && slot < len(g.pads) {
		g.pads[slot].press(k, g.session.World.TickCount)
	}
	return true
}

func (g *termGame) tick() {
	if g.paused || g.over {
		return
	}
	now := g.session.World.TickCount
	intents := make([]core.Intent, len(g.pads))
	for i, p := range g.pads {
		intents[i] = p.intent(now)
	}
	g.session.Step(intents)
	if !g.session.Over() {
		return
	}

	res := g.session.Result()
	g.summary = render.Summary(res)
	if g.board != nil {
		if _, err := g.board.Record(res, nil); err != nil {
			g.log.Error().Err(err).Msg("Failed to record scores")
		}
	}
	if g.session.GameOver() {
		g.over = true
		return
	}
	if err := g.session.NextStage(); err != nil {
		g.log.Error().Err(err).Msg("Failed to load next stage")
		g.over = true
		return
	}
	for _, p := range g.pads {
		p.reset()
	}
}

func (g *termGame) draw() {
	g.screen.Clear()
	g.session.Draw(g.canvas)

	fw, fh := g.canvas.Size()
	hud := render.HUDLines(g.session.World)
	if g.paused {
		hud = append(hud, "PAUSE")
	}
	g.canvas.DrawText(hud, g.canvas.OriginX+fw+2, g.canvas.OriginY)
	g.canvas.DrawText([]string{"WASD+Space / arrows+Enter  P pause  Esc quit"}, g.canvas.OriginX, g.canvas.OriginY+fh+1)
	if g.over {
		lines := strings.Split(strings.TrimRight(g.summary, "\n"), "\n")
		g.canvas.DrawText(append(lines, "", "R restart"), g.canvas.OriginX+4, g.canvas.OriginY+2)
	}
	g.screen.Show()
}

func (g *termGame) run() {
	ticker := time.NewTicker(time.Second / time.Duration(g.cfg.Rules.FPS))
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := g.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !g.handleKey(ev) {
					return
				}
			case *tcell.EventResize:
				g.screen.Sync()
			}
		case <-ticker.C:
			g.tick()
			g.draw()
		}
	}
}

func main() {
	cfgPath := flag.String("config", "", "config file (optional)")
	players := flag.Int("players", 0, "number of players, 0 uses the config")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *players > 0 {
		cfg.Players = *players
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// the terminal owns stdout, so logs only go to the file
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
	log := logging.Setup(cfg.LogLevel, io.Discard, logFile)

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
		if board, err = scoreboard.Open(cfg.ScoreDB); err != nil {
			log.Warn().Err(err).Msg("Scoreboard unavailable")
			board = nil
		} else {
			defer board.Close()
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer screen.Fini()

	g, err := newTermGame(cfg, log, screen, am, board)
	if err != nil {
		screen.Fini()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	g.run()
}
