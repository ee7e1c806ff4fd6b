package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/rs/zerolog"

	"github.com/frgonzalezb/Udemy-Battle-City/engine/config"
	"github.com/frgonzalezb/Udemy-Battle-City/engine/core"
	"github.com/frgonzalezb/Udemy-Battle-City/engine/input"
	"github.com/frgonzalezb/Udemy-Battle-City/engine/logging"
	"github.com/frgonzalezb/Udemy-Battle-City/engine/render"
	"github.com/frgonzalezb/Udemy-Battle-City/engine/replay"
	"github.com/frgonzalezb/Udemy-Battle-City/engine/session"
	"github.com/frgonzalezb/Udemy-Battle-City/engine/telemetry"
)

type runStats struct {
	runIndex int
	seed     int64
	ticks    uint64

	stages   []core.StageResult
	final    core.StageResult
	gameOver bool
	totals   telemetry.Totals

	verified bool
	mismatch string
}

type runOptions struct {
	ticks     int
	verify    bool
	replayDir string
	log       zerolog.Logger
}

func main() {
	var (
		cfgPath   string
		runs      int
		ticks     int
		seedBase  int64
		seedStep  int64
		players   int
		stage     int
		verify    bool
		replayDir string
		copyOut   bool
		logLevel  string
	)
	flag.StringVar(&cfgPath, "config", "", "config file (optional)")
	flag.IntVar(&runs, "runs", 5, "number of headless runs")
	flag.IntVar(&ticks, "ticks", 18000, "tick budget per run")
	flag.Int64Var(&seedBase, "seed-base", 42, "RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.IntVar(&players, "players", 1, "autopiloted players, 0..2")
	flag.IntVar(&stage, "stage", 0, "starting stage, 0 uses the config")
	flag.BoolVar(&verify, "replay-verify", false, "replay each run from its recording and compare")
	flag.StringVar(&replayDir, "replay-dir", "", "write each run's replay into this directory")
	flag.BoolVar(&copyOut, "copy", false, "copy the report to the clipboard")
	flag.StringVar(&logLevel, "log-level", "warn", "log level")
	flag.Parse()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Println("error:", err)
		os.Exit(1)
	}
	cfg.Players = players
	if stage > 0 {
		cfg.StartStage = stage
	}
	if err := cfg.Validate(); err != nil {
		fmt.Println("error:", err)
		os.Exit(1)
	}
	if runs <= 0 || ticks <= 0 {
		fmt.Println("error: -runs and -ticks must be > 0")
		os.Exit(1)
	}
	if replayDir != "" {
		if err := os.MkdirAll(replayDir, 0o755); err != nil {
			fmt.Println("error:", err)
			os.Exit(1)
		}
	}

	opts := runOptions{
		ticks:     ticks,
		verify:    verify,
		replayDir: replayDir,
		log:       logging.Setup(logLevel, os.Stderr, nil),
	}

	var report strings.Builder
	fmt.Fprintf(&report, "=== Headless Battle City Report ===\n")
	fmt.Fprintf(&report, "runs=%d ticks=%d players=%d stage=%d seed_base=%d seed_step=%d\n\n",
		runs, ticks, cfg.Players, cfg.StartStage, seedBase, seedStep)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		cfg.Seed = seedBase + int64(i)*seedStep
		rs, err := runOnce(cfg, i+1, opts)
		if err != nil {
			fmt.Printf("error: run %d: %v\n", i+1, err)
			os.Exit(1)
		}
		all = append(all, rs)
		writeRun(&report, rs, verify)
	}
	writeAggregate(&report, aggregate(all))

	fmt.Print(report.String())
	if copyOut {
		if err := clipboard.WriteAll(report.String()); err != nil {
			opts.log.Warn().Err(err).Msg("Clipboard unavailable")
		}
	}
}

// pilot turns the session's autopilot intents into key snapshots
func pilot(s *session.Session) replay.KeySource {
	return func(uint64) []input.Keys {
		intents := s.Autopilot()
		keys := make([]input.Keys, len(intents))
		for i, in := range intents {
			keys[i] = input.KeysFor(in)
		}
		return keys
	}
}

func newSession(cfg config.Config, log *zerolog.Logger) (*session.Session, error) {
	sopts, err := cfg.SessionOptions(log)
	if err != nil {
		return nil, err
	}
	s, err := session.New(sopts)
	if err != nil {
		return nil, err
	}
	if err := s.LoadStage(cfg.StartStage); err != nil {
		return nil, err
	}
	return s, nil
}

func runOnce(cfg config.Config, runIndex int, opts runOptions) (runStats, error) {
	rs := runStats{runIndex: runIndex, seed: cfg.Seed}
	s, err := newSession(cfg, &opts.log)
	if err != nil {
		return rs, err
	}
	metrics, err := telemetry.New(nil)
	if err != nil {
		return rs, err
	}
	metrics.Attach(s.World.Bus)

	h := replay.Header{Seed: cfg.Seed, Stage: int32(cfg.StartStage), Players: uint8(cfg.Players)}
	var (
		buf  bytes.Buffer
		rec  *replay.Recorder
		path string
	)
	switch {
	case opts.replayDir != "":
		path = filepath.Join(opts.replayDir, fmt.Sprintf("run%03d-seed%d.bcr", runIndex, cfg.Seed))
		rec, err = replay.NewFileRecorder(path, h)
	case opts.verify:
		rec, err = replay.NewRecorder(&buf, h)
	}
	if err != nil {
		return rs, err
	}

	rs.stages, err = replay.Run(s, opts.ticks, pilot(s), rec)
	if err != nil {
		return rs, err
	}
	if rec != nil {
		if err := rec.Close(); err != nil {
			return rs, err
		}
	}
	rs.ticks = s.World.TickCount
	rs.final = s.Result()
	rs.gameOver = s.GameOver()
	rs.totals = metrics.Totals()

	if !opts.verify {
		return rs, nil
	}
	var src io.Reader = &buf
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return rs, err
		}
		defer f.Close()
		src = f
	}
	rep, err := replay.Load(src)
	if err != nil {
		return rs, err
	}
	again, err := newSession(cfg, &opts.log)
	if err != nil {
		return rs, err
	}
	stages, err := replay.Run(again, opts.ticks, replay.NewPlayer(rep).Keys, nil)
	if err != nil {
		return rs, err
	}
	rs.mismatch = compareRuns(rs.stages, stages, rs.final, again.Result())
	rs.verified = rs.mismatch == ""
	return rs, nil
}

// compareRuns describes the first difference between two runs, or ""
func compareRuns(a, b []core.StageResult, finalA, finalB core.StageResult) string {
	if len(a) != len(b) {
		return fmt.Sprintf("finished %d stages, replay finished %d", len(a), len(b))
	}
	for i := range a {
		if !reflect.DeepEqual(a[i], b[i]) {
			return fmt.Sprintf("stage %d result differs", a[i].Stage)
		}
	}
	if !reflect.DeepEqual(finalA, finalB) {
		return fmt.Sprintf("final stage %d differs", finalA.Stage)
	}
	return ""
}

func writeRun(w io.Writer, rs runStats, verify bool) {
	fmt.Fprintf(w, "--- run %d seed=%d ticks=%d ---\n", rs.runIndex, rs.seed, rs.ticks)
	for _, res := range rs.stages {
		fmt.Fprint(w, render.Summary(res))
	}
	if !rs.gameOver {
		fmt.Fprintf(w, "(unfinished)\n%s", render.Summary(rs.final))
	}
	t := rs.totals
	fmt.Fprintf(w, "kills=%d shots=%d powerups=%d bricks=%d cleared=%d game_over=%t\n",
		t.TanksDestroyed, t.BulletsFired, t.PowerUpsCollected, t.TilesDestroyed, t.StagesCompleted, rs.gameOver)
	if verify {
		if rs.verified {
			fmt.Fprintln(w, "replay: ok")
		} else {
			fmt.Fprintf(w, "replay: MISMATCH (%s)\n", rs.mismatch)
		}
	}
	fmt.Fprintln(w)
}

type aggregateStats struct {
	runs         int
	stagesClear  int
	gameOvers    int
	bestStage    int
	bestScore    int
	meanScore    float64
	meanKills    float64
	replayFailed int
}

func aggregate(all []runStats) aggregateStats {
	a := aggregateStats{runs: len(all)}
	if len(all) == 0 {
		return a
	}
	scores, kills := 0, 0
	for _, rs := range all {
		for _, res := range rs.stages {
			if res.Phase == core.PhaseComplete {
				a.stagesClear++
			}
		}
		if rs.gameOver {
			a.gameOvers++
		}
		if rs.final.Stage > a.bestStage {
			a.bestStage = rs.final.Stage
		}
		for _, p := range rs.final.Players {
			scores += p.Score
			a.bestScore = max(a.bestScore, p.Score)
		}
		kills += int(rs.totals.TanksDestroyed)
		if rs.mismatch != "" {
			a.replayFailed++
		}
	}
	a.meanScore = float64(scores) / float64(len(all))
	a.meanKills = float64(kills) / float64(len(all))
	return a
}

func writeAggregate(w io.Writer, a aggregateStats) {
	fmt.Fprintf(w, "=== Aggregate (%d runs) ===\n", a.runs)
	fmt.Fprintf(w, "stages cleared: %d\n", a.stagesClear)
	fmt.Fprintf(w, "game overs:     %d\n", a.gameOvers)
	fmt.Fprintf(w, "furthest stage: %d\n", a.bestStage)
	fmt.Fprintf(w, "best score:     %d\n", a.bestScore)
	fmt.Fprintf(w, "mean score:     %.1f\n", a.meanScore)
	fmt.Fprintf(w, "mean kills:     %.1f\n", a.meanKills)
	if a.replayFailed > 0 {
		fmt.Fprintf(w, "replay mismatches: %d\n", a.replayFailed)
	}
}
