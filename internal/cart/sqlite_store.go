package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/karibu-retail/storefront-gateway/pkg/logger"
)

type cartRow struct {
	ClientID  string `gorm:"primaryKey;size:64"`
	Payload   []byte
	UpdatedAt time.Time
}

func (cartRow) TableName() string { return "carts" }

// SQLiteStore keeps carts in a local sqlite file, one row per client session.
// It backs deployments that run without redis.
type SQLiteStore struct {
	db   *gorm.DB
	logg *logger.Logger
}

// NewSQLiteStore opens (and migrates) the sqlite-backed cart store.
func NewSQLiteStore(path string, logg *logger.Logger) (*SQLiteStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open cart db: %w", err)
	}
	if err := db.AutoMigrate(&cartRow{}); err != nil {
		return nil, fmt.Errorf("migrate cart db: %w", err)
	}
	return &SQLiteStore{db: db, logg: logg}, nil
}

func (s *SQLiteStore) Load(ctx context.Context, clientID string) (Cart, error) {
	var row cartRow
	err := s.db.WithContext(ctx).First(&row, "client_id = ?", clientID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Cart{}, nil
		}
		return Cart{}, err
	}
	return decodeCart(ctx, s.logg, row.Payload), nil
}

func (s *SQLiteStore) Save(ctx context.Context, clientID string, c Cart) error {
	payload, err := json.Marshal(c)
	if err != nil {
		return err
	}
	row := cartRow{ClientID: clientID, Payload: payload, UpdatedAt: time.Now().UTC()}
	return s.db.WithContext(ctx).Save(&row).Error
}

func (s *SQLiteStore) Clear(ctx context.Context, clientID string) error {
	return s.db.WithContext(ctx).Delete(&cartRow{}, "client_id = ?", clientID).Error
}
