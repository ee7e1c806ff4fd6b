// Package config loads game settings from an optional file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/frgonzalezb/Udemy-Battle-City/engine/core"
	"github.com/frgonzalezb/Udemy-Battle-City/engine/maplib"
	"github.com/frgonzalezb/Udemy-Battle-City/engine/session"
)

// EnvPrefix is prepended to every environment override, e.g.
// BATTLECITY_RULES_FPS or BATTLECITY_AUDIO_VOLUME
const EnvPrefix = "BATTLECITY"

var ErrInvalid = errors.New("invalid config")

// Window holds the desktop frontend settings
type Window struct {
	Scale int
	Title string
}

// Audio holds sound settings
type Audio struct {
	Enabled bool
	Volume  float64
}

// Config is everything a frontend needs to start a game
type Config struct {
	Rules      core.Rules
	Players    int
	StartStage int
	Seed       int64
	StagesDir  string // empty uses the built-in stages
	LogLevel   string
	LogFile    string
	ScoreDB    string
	Window     Window
	Audio      Audio
}

// durationKeys lists the rule timers set as durations and stored as ticks
var durationKeys = []struct {
	key   string
	field func(*core.Rules) *int
}{
	{"spawn", func(r *core.Rules) *int { return &r.SpawnTicks }},
	{"spawnFrame", func(r *core.Rules) *int { return &r.SpawnFrameTicks }},
	{"friendlyParalysis", func(r *core.Rules) *int { return &r.FriendlyParalysisTicks }},
	{"freeze", func(r *core.Rules) *int { return &r.FreezeTicks }},
	{"startShield", func(r *core.Rules) *int { return &r.StartShieldTicks }},
	{"shield", func(r *core.Rules) *int { return &r.ShieldTicks }},
	{"respawn", func(r *core.Rules) *int { return &r.RespawnTicks }},
	{"enemySpawn", func(r *core.Rules) *int { return &r.EnemySpawnTicks }},
	{"aiThink", func(r *core.Rules) *int { return &r.AIThinkTicks }},
	{"aiShotMin", func(r *core.Rules) *int { return &r.AIShotMinTicks }},
	{"aiShotMax", func(r *core.Rules) *int { return &r.AIShotMaxTicks }},
	{"powerUp", func(r *core.Rules) *int { return &r.PowerUpTicks }},
	{"fortify", func(r *core.Rules) *int { return &r.FortifyTicks }},
	{"stageTransition", func(r *core.Rules) *int { return &r.StageTransitionTicks }},
	{"gameOver", func(r *core.Rules) *int { return &r.GameOverTicks }},
	{"explosionFrame", func(r *core.Rules) *int { return &r.ExplosionFrameTicks }},
	{"banner", func(r *core.Rules) *int { return &r.BannerTicks }},
}

var intKeys = []struct {
	key   string
	field func(*core.Rules) *int
}{
	{"tankSpeed", func(r *core.Rules) *int { return &r.BaseTankSpeed }},
	{"bulletSpeed", func(r *core.Rules) *int { return &r.BaseBulletSpeed }},
	{"powerUpBonus", func(r *core.Rules) *int { return &r.PowerUpBonus }},
	{"powerStep", func(r *core.Rules) *int { return &r.PowerStep }},
	{"powerThreshold", func(r *core.Rules) *int { return &r.PowerThreshold }},
	{"steelBreakPower", func(r *core.Rules) *int { return &r.SteelBreakPower }},
	{"enemyCountMin", func(r *core.Rules) *int { return &r.EnemyCountMin }},
	{"enemyCountMax", func(r *core.Rules) *int { return &r.EnemyCountMax }},
	{"maxActiveEnemies", func(r *core.Rules) *int { return &r.MaxActiveEnemies }},
	{"startLives", func(r *core.Rules) *int { return &r.StartLives }},
}

func setDefaults(v *viper.Viper) {
	def := core.DefaultRules()

	v.SetDefault("players", 1)
	v.SetDefault("startStage", 1)
	v.SetDefault("seed", 0)
	v.SetDefault("stagesDir", "")
	v.SetDefault("logLevel", "info")
	v.SetDefault("logFile", "battlecity.log")
	v.SetDefault("scoreDB", "battlecity.db")

	v.SetDefault("window.scale", 1)
	v.SetDefault("window.title", "Battle City")

	v.SetDefault("audio.enabled", true)
	v.SetDefault("audio.volume", 0.8)

	v.SetDefault("rules.fps", def.FPS)
	v.SetDefault("rules.specialChance", def.SpecialChance)
	for _, k := range intKeys {
		v.SetDefault("rules."+k.key, *k.field(&def))
	}
	for _, k := range durationKeys {
		v.SetDefault("rules."+k.key, ticksToDuration(*k.field(&def), def.FPS).String())
	}
}

// Load reads path when set, then applies BATTLECITY_* environment
// overrides on top of the defaults
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}
	return fromViper(v)
}

func fromViper(v *viper.Viper) (Config, error) {
	cfg := Config{
		Players:    v.GetInt("players"),
		StartStage: v.GetInt("startStage"),
		Seed:       v.GetInt64("seed"),
		StagesDir:  v.GetString("stagesDir"),
		LogLevel:   v.GetString("logLevel"),
		LogFile:    v.GetString("logFile"),
		ScoreDB:    v.GetString("scoreDB"),
		Window: Window{
			Scale: v.GetInt("window.scale"),
			Title: v.GetString("window.title"),
		},
		Audio: Audio{
			Enabled: v.GetBool("audio.enabled"),
			Volume:  v.GetFloat64("audio.volume"),
		},
	}

	r := core.DefaultRules()
	r.FPS = v.GetInt("rules.fps")
	if r.FPS <= 0 {
		return Config{}, fmt.Errorf("%w: rules.fps must be positive, got %d", ErrInvalid, r.FPS)
	}
	r.SpecialChance = v.GetFloat64("rules.specialChance")
	for _, k := range intKeys {
		*k.field(&r) = v.GetInt("rules." + k.key)
	}
	for _, k := range durationKeys {
		d, err := time.ParseDuration(v.GetString("rules." + k.key))
		if err != nil {
			return Config{}, fmt.Errorf("%w: rules.%s: %v", ErrInvalid, k.key, err)
		}
		*k.field(&r) = core.Ticks(d, r.FPS)
	}
	cfg.Rules = r

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the game cannot start with
func (c Config) Validate() error {
	r := c.Rules
	switch {
	case c.Players < 0 || c.Players > 2:
		return fmt.Errorf("%w: players must be 0..2, got %d", ErrInvalid, c.Players)
	case c.StartStage < 1:
		return fmt.Errorf("%w: startStage must be at least 1, got %d", ErrInvalid, c.StartStage)
	case c.Window.Scale < 1:
		return fmt.Errorf("%w: window.scale must be at least 1, got %d", ErrInvalid, c.Window.Scale)
	case c.Audio.Volume < 0 || c.Audio.Volume > 1:
		return fmt.Errorf("%w: audio.volume must be within 0..1, got %v", ErrInvalid, c.Audio.Volume)
	case r.BaseTankSpeed <= 0 || r.BaseBulletSpeed <= 0:
		return fmt.Errorf("%w: speeds must be positive", ErrInvalid)
	case r.EnemyCountMin < 0 || r.EnemyCountMin > r.EnemyCountMax:
		return fmt.Errorf("%w: enemy count range %d..%d", ErrInvalid, r.EnemyCountMin, r.EnemyCountMax)
	case r.SpecialChance < 0 || r.SpecialChance > 1:
		return fmt.Errorf("%w: rules.specialChance must be within 0..1, got %v", ErrInvalid, r.SpecialChance)
	case r.AIShotMinTicks > r.AIShotMaxTicks:
		return fmt.Errorf("%w: aiShotMin exceeds aiShotMax", ErrInvalid)
	case r.StartLives < 1:
		return fmt.Errorf("%w: rules.startLives must be at least 1, got %d", ErrInvalid, r.StartLives)
	}
	return nil
}

// Catalogue loads the stages from StagesDir, or the built-in ones
func (c Config) Catalogue() (*maplib.Catalogue, error) {
	if c.StagesDir == "" {
		return maplib.DefaultCatalogue()
	}
	return maplib.LoadDir(c.StagesDir)
}

// SessionOptions builds the options for a new game
func (c Config) SessionOptions(log *zerolog.Logger) (session.Options, error) {
	stages, err := c.Catalogue()
	if err != nil {
		return session.Options{}, fmt.Errorf("load stages: %w", err)
	}
	return session.Options{
		Rules:   c.Rules,
		Players: c.Players,
		Seed:    c.Seed,
		Stages:  stages,
		Logger:  log,
	}, nil
}

func ticksToDuration(ticks, fps int) time.Duration {
	return time.Duration(ticks) * time.Second / time.Duration(fps)
}
