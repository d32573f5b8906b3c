package database

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Crossing is one classified flight of one run.
type Crossing struct {
	ID           uint   `gorm:"primaryKey"`
	RunID        string `gorm:"size:36;index"`
	FIR          string `gorm:"size:16;index"`
	FlightID     string `gorm:"size:64"`
	FlightNumber string `gorm:"size:16"`
	Airline      string `gorm:"size:16;index"`
	ChargeFactor int
	Crosses      bool
	Crossings    int
	Domestic     bool
	Flythrough   bool
	CreatedAt    time.Time
}

func (Crossing) TableName() string {
	return "fir_crossings"
}

// batchSize bounds the number of rows per INSERT statement.
const batchSize = 200

type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) SaveCrossings(ctx context.Context, rows []Crossing) error {
	if len(rows) == 0 {
		return nil
	}
	if err := s.db.WithContext(ctx).CreateInBatches(rows, batchSize).Error; err != nil {
		return fmt.Errorf("saving %d crossings: %w", len(rows), err)
	}
	log.Debug(fmt.Sprintf("Saved %d crossings for run %s", len(rows), rows[0].RunID))
	return nil
}
