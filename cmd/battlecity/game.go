package main

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/rs/zerolog"

	"github.com/frgonzalezb/Udemy-Battle-City/engine/audio"
	"github.com/frgonzalezb/Udemy-Battle-City/engine/config"
	"github.com/frgonzalezb/Udemy-Battle-City/engine/core"
	"github.com/frgonzalezb/Udemy-Battle-City/engine/input"
	"github.com/frgonzalezb/Udemy-Battle-City/engine/maplib"
	"github.com/frgonzalezb/Udemy-Battle-City/engine/render"
	"github.com/frgonzalezb/Udemy-Battle-City/engine/scoreboard"
	"github.com/frgonzalezb/Udemy-Battle-City/engine/session"
	"github.com/frgonzalezb/Udemy-Battle-City/engine/telemetry"
	"github.com/frgonzalezb/Udemy-Battle-City/engine/ui"
)

// sidebar is the width in world pixels of the HUD column right of the field
const sidebar = 160

var (
	surround = color.RGBA{99, 99, 99, 255}
	ground   = color.RGBA{0, 0, 0, 255}
)

// worldSize is the area the camera fits into the window
func worldSize(r core.Rules) (int, int) {
	return r.Field.Right() + sidebar, r.Field.Bottom() + r.Field.Y
}

// Game implements ebiten.Game
type Game struct {
	cfg     config.Config
	log     zerolog.Logger
	session *session.Session
	loop    *core.GameLoop
	input   *input.InputState
	canvas  *render.EbitenCanvas
	audio   *audio.AudioManager
	board   *scoreboard.Board
	metrics *telemetry.Metrics
	menu    *ui.TitleMenu

	summary   string
	highScore int
	status    string
}

// NewGame starts a run at the configured stage, behind the title screen
// when title is set. sheet, am, board and metrics may all be nil.
func NewGame(cfg config.Config, log zerolog.Logger, title bool, sheet *render.SpriteSheet, am *audio.AudioManager, board *scoreboard.Board, metrics *telemetry.Metrics) (*Game, error) {
	g := &Game{
		cfg:     cfg,
		log:     log,
		input:   input.NewInputState(cfg.Players),
		canvas:  render.NewEbitenCanvas(sheet, nil),
		audio:   am,
		board:   board,
		metrics: metrics,
	}
	g.loop = core.NewGameLoop(float64(cfg.Rules.FPS), g.step)
	if err := g.restart(); err != nil {
		return nil, err
	}
	if title {
		g.menu = ui.NewTitleMenu(cfg.StartStage, g.session.Stages().Len())
		g.loop.Pause()
	}
	return g, nil
}

// choose starts the run picked on the title screen
func (g *Game) choose(c ui.Choice) error {
	switch c {
	case ui.ChoiceQuit:
		return ebiten.Termination
	case ui.ChoiceOnePlayer, ui.ChoiceTwoPlayers:
		g.cfg.Players = 1
		if c == ui.ChoiceTwoPlayers {
			g.cfg.Players = 2
		}
		g.cfg.StartStage = g.menu.Stage
		g.input = input.NewInputState(g.cfg.Players)
		g.menu.Open = false
		g.log.Info().Int("players", g.cfg.Players).Int("stage", g.cfg.StartStage).Msg("Starting")
		return g.restart()
	}
	return nil
}

// restart throws the current run away and begins a new one
func (g *Game) restart() error {
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
	if g.metrics != nil {
		g.metrics.Attach(s.World.Bus)
	}
	if err := s.LoadStage(g.cfg.StartStage); err != nil {
		return err
	}
	g.session = s
	g.summary = ""
	for _, c := range g.input.Controllers {
		c.Reset()
	}
	if g.board != nil {
		if best, err := g.board.HighScore(); err == nil {
			g.highScore = best
		}
	}
	g.loop.Play()
	return nil
}

// step advances the simulation by one tick
func (g *Game) step() {
	g.session.Step(g.input.Intents())
	if g.session.Over() {
		g.finishStage()
	}
}

func (g *Game) finishStage() {
	res := g.session.Result()
	g.summary = render.Summary(res)
	if g.board != nil {
		if _, err := g.board.Record(res, nil); err != nil {
			g.log.Error().Err(err).Msg("Failed to record scores")
		}
		if best, err := g.board.HighScore(); err == nil {
			g.highScore = best
		}
	}
	if g.session.GameOver() {
		g.log.Info().Int("stage", res.Stage).Msg("Game over")
		g.loop.State = core.StateGameOver
		return
	}
	if err := g.session.NextStage(); err != nil {
		g.log.Error().Err(err).Msg("Failed to load next stage")
		g.loop.State = core.StateGameOver
		return
	}
	for _, c := range g.input.Controllers {
		c.Reset()
	}
}

func (g *Game) Update() error {
	if g.menu != nil && g.menu.Open {
		if g.input.IsKeyJustPressed(ebiten.KeyEscape) {
			return ebiten.Termination
		}
		return g.choose(g.menu.Update())
	}
	g.input.Update()

	switch {
	case g.input.IsKeyJustPressed(ebiten.KeyEscape):
		return ebiten.Termination
	case g.input.IsKeyJustPressed(ebiten.KeyT) && g.menu != nil && g.loop.State == core.StateGameOver:
		g.menu.Open = true
	case g.input.IsKeyJustPressed(ebiten.KeyP) && g.loop.State != core.StateGameOver:
		if g.loop.State == core.StatePaused {
			g.loop.Play()
		} else {
			g.loop.Pause()
		}
	case g.input.IsKeyJustPressed(ebiten.KeyM) && g.audio != nil:
		g.audio.Muted = !g.audio.Muted
	case g.input.IsKeyJustPressed(ebiten.KeyF9):
		g.copyStage()
	case g.input.IsKeyJustPressed(ebiten.KeyR) && g.loop.State == core.StateGameOver:
		if err := g.restart(); err != nil {
			return err
		}
	}

	g.loop.Update()
	return nil
}

// copyStage puts the live terrain and the stage tally on the clipboard
func (g *Game) copyStage() {
	text, err := stageReport(g.session)
	if err == nil {
		err = clipboard.WriteAll(text)
	}
	if err != nil {
		g.status = "COPY FAILED"
		g.log.Warn().Err(err).Msg("Could not copy stage")
		return
	}
	g.status = "STAGE COPIED"
}

// stageReport renders the current terrain as a stage file followed by the
// running tally
func stageReport(s *session.Session) (string, error) {
	w := s.World
	tm := maplib.Encode(w, fmt.Sprintf("stage %d @%d", w.Stage.Number, w.TickCount))
	data, err := tm.JSON()
	if err != nil {
		return "", err
	}
	return string(data) + "\n\n" + render.Summary(s.Result()), nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.menu != nil && g.menu.Open {
		g.menu.Draw(screen)
		return
	}
	rules := g.cfg.Rules
	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	ww, wh := worldSize(rules)
	cam := g.canvas.Camera
	cam.Fit(ww, wh, sw, sh)

	screen.Fill(ground)
	x, y, w, h := cam.WorldToScreen(core.Rect{W: ww, H: wh})
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), surround, false)
	x, y, w, h = cam.WorldToScreen(rules.Field)
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), ground, false)

	g.canvas.Screen = screen
	g.session.Draw(g.canvas)

	hx, hy, _, _ := cam.WorldToScreen(core.Rect{X: rules.Field.Right() + 16, Y: rules.Field.Y + 16})
	render.DrawText(screen, g.hudLines(), int(hx), int(hy))

	if g.summary != "" && g.loop.State == core.StateGameOver {
		fx, fy, _, _ := cam.WorldToScreen(core.Rect{X: rules.Field.X + 64, Y: rules.Field.Y + 64})
		lines := strings.Split(strings.TrimRight(g.summary, "\n"), "\n")
		render.DrawText(screen, append(lines, "", g.restartHint()), int(fx), int(fy))
	}
}

func (g *Game) restartHint() string {
	if g.menu != nil {
		return "R restart  T title  ESC quit"
	}
	return "R restart  ESC quit"
}

func (g *Game) hudLines() []string {
	lines := render.HUDLines(g.session.World)
	lines = append(lines, "", fmt.Sprintf("HI %6d", g.highScore))
	if g.loop.State == core.StatePaused {
		lines = append(lines, "PAUSE")
	}
	if g.audio != nil && g.audio.Muted {
		lines = append(lines, "MUTE")
	}
	if g.status != "" {
		lines = append(lines, g.status)
	}
	return lines
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}
