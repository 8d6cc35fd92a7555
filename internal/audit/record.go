// Package audit persists the match-event trail to Postgres, independent
// of the order book's own key/value store, keyed by ksuid so records
// sort chronologically by ID alone.
package audit

import (
	"fmt"
	"strings"

	"github.com/segmentio/ksuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/abdoElHodaky/orderbook-engine/internal/orderbook"
)

// MatchRecord is one row of the match_records table: a single matched
// pair's attribute, independent of how many transfers it produced.
type MatchRecord struct {
	ID        string `gorm:"primaryKey"`
	BidID     string `gorm:"index"`
	AskID     string `gorm:"index"`
	CreatedAt int64  `gorm:"index"`
}

func (MatchRecord) TableName() string { return "match_records" }

// Store wraps a *gorm.DB bound to the match_records table.
type Store struct {
	db *gorm.DB
}

// Open connects to Postgres at dsn and migrates the audit schema.
func Open(dsn string) (*Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("audit: open: %w", err)
	}
	if err := db.AutoMigrate(&MatchRecord{}); err != nil {
		return nil, fmt.Errorf("audit: migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// RecordSweep persists one row per orderbook.match attribute in result,
// parsing the "bid:<id>,ask:<id>" value the engine emits.
func (s *Store) RecordSweep(result orderbook.MatchResult, now int64) error {
	if len(result.Attributes) == 0 {
		return nil
	}

	records := make([]MatchRecord, 0, len(result.Attributes))
	for _, attr := range result.Attributes {
		if attr.Key != "orderbook.match" {
			continue
		}
		bidID, askID, err := parseMatchAttribute(attr.Value)
		if err != nil {
			return fmt.Errorf("audit: %w", err)
		}
		records = append(records, MatchRecord{
			ID:        ksuid.New().String(),
			BidID:     bidID,
			AskID:     askID,
			CreatedAt: now,
		})
	}
	if len(records) == 0 {
		return nil
	}
	return s.db.Create(&records).Error
}

func parseMatchAttribute(value string) (bidID, askID string, err error) {
	rest, ok := strings.CutPrefix(value, "bid:")
	if !ok {
		return "", "", fmt.Errorf("malformed match attribute %q", value)
	}
	bidID, askPart, ok := strings.Cut(rest, ",ask:")
	if !ok {
		return "", "", fmt.Errorf("malformed match attribute %q", value)
	}
	return bidID, askPart, nil
}
