package scoreboard

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/frgonzalezb/Udemy-Battle-City/engine/core"
)

// Entry is one player's finished stage
type Entry struct {
	ID           uint `gorm:"primarykey"`
	CreatedAt    time.Time
	Name         string `gorm:"size:32;index"`
	Slot         int
	Stage        int
	Outcome      string `gorm:"size:24"`
	Kills        int
	KillsByClass datatypes.JSON
	Bonus        int
	StagePoints  int
	Score        int `gorm:"index"`
	Ticks        uint64
}

func (Entry) TableName() string {
	return "scores"
}

// Board persists stage results
type Board struct {
	db *gorm.DB
}

// Open connects to the score database at path, creating it if needed. An
// empty path keeps the board in memory.
func Open(path string) (*Board, error) {
	dsn := path
	if dsn == "" {
		dsn = "file::memory:"
	}
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open score db: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// one connection, so an in-memory board is a single database
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, fmt.Errorf("migrate scores: %w", err)
	}
	return &Board{db: db}, nil
}

// Record stores one entry per player of res. names[slot] labels the
// entry; missing names default to "1P", "2P".
func (b *Board) Record(res core.StageResult, names []string) ([]Entry, error) {
	entries := make([]Entry, 0, len(res.Players))
	for _, p := range res.Players {
		name := fmt.Sprintf("%dP", p.Slot+1)
		if p.Slot < len(names) && names[p.Slot] != "" {
			name = names[p.Slot]
		}
		kills, err := json.Marshal(p.KillsByClass)
		if err != nil {
			return nil, err
		}
		entries = append(entries, Entry{
			Name:         name,
			Slot:         p.Slot,
			Stage:        res.Stage,
			Outcome:      res.Phase.String(),
			Kills:        p.TotalKills,
			KillsByClass: datatypes.JSON(kills),
			Bonus:        p.Bonus,
			StagePoints:  p.StagePoints,
			Score:        p.Score,
			Ticks:        res.Ticks,
		})
	}
	if len(entries) == 0 {
		return nil, nil
	}
	if err := b.db.Create(&entries).Error; err != nil {
		return nil, fmt.Errorf("record stage %d: %w", res.Stage, err)
	}
	return entries, nil
}

// HighScore returns the best score on record, 0 for an empty board
func (b *Board) HighScore() (int, error) {
	var best int
	row := b.db.Model(&Entry{}).Select("COALESCE(MAX(score), 0)").Row()
	if err := row.Scan(&best); err != nil {
		return 0, err
	}
	return best, nil
}

// Top returns the n best entries, highest score first
func (b *Board) Top(n int) ([]Entry, error) {
	var out []Entry
	err := b.db.Order("score DESC").Order("id ASC").Limit(n).Find(&out).Error
	return out, err
}

// KillCounts decodes an entry's per-class kill counts
func (e Entry) KillCounts() ([core.NumEnemyClasses]int, error) {
	var k [core.NumEnemyClasses]int
	err := json.Unmarshal(e.KillsByClass, &k)
	return k, err
}

// Close releases the database
func (b *Board) Close() error {
	sqlDB, err := b.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
