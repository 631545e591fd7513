package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/Ahmad-Alshomaree/kulshy-backend/pkg/config"
	"github.com/Ahmad-Alshomaree/kulshy-backend/pkg/logger"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

// AggregateRecord is the row shape backing the gorm store: one JSON payload
// holding the full collection per owner key.
type AggregateRecord struct {
	OwnerKey  string          `gorm:"column:owner_key;primaryKey"`
	Payload   json.RawMessage `gorm:"column:payload;type:json;not null"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName pins the table used by the store.
func (AggregateRecord) TableName() string {
	return "aggregate_records"
}

// GormStore persists collections through a relational database.
type GormStore struct {
	conn *gorm.DB
}

// NewGormStore boots a gorm-backed store using the provided configuration
// and migrates its table.
func NewGormStore(ctx context.Context, cfg config.DBConfig, logg *logger.Logger) (*GormStore, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("database DSN is required")
	}

	var dialector gorm.Dialector
	if cfg.IsSQLite() {
		dialector = sqlite.Open(cfg.DSN)
	} else {
		dialector = postgres.New(postgres.Config{
			DSN:                  cfg.DSN,
			PreferSimpleProtocol: true,
		})
	}

	gormLogger := gormlogger.New(
		log.New(io.Discard, "", log.LstdFlags),
		gormlogger.Config{LogLevel: gormlogger.Silent},
	)

	conn, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening db connection: %w", err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return nil, fmt.Errorf("getting sql db handle: %w", err)
	}
	applyPoolSettings(sqlDB, cfg)

	if err := conn.WithContext(ctx).AutoMigrate(&AggregateRecord{}); err != nil {
		return nil, fmt.Errorf("migrating aggregate_records: %w", err)
	}

	if logg != nil {
		logg.Info(ctx, "database store connected")
	}

	return &GormStore{conn: conn}, nil
}

// NewGormStoreFromConn wraps an existing gorm connection, migrating the
// backing table. Used by tests and callers that manage their own pool.
func NewGormStoreFromConn(conn *gorm.DB) (*GormStore, error) {
	if conn == nil {
		return nil, fmt.Errorf("gorm connection required")
	}
	if err := conn.AutoMigrate(&AggregateRecord{}); err != nil {
		return nil, fmt.Errorf("migrating aggregate_records: %w", err)
	}
	return &GormStore{conn: conn}, nil
}

func applyPoolSettings(sqlDB *sql.DB, cfg config.DBConfig) {
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	if cfg.ConnMaxIdleTime > 0 {
		sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	}
}

// Load returns the collection stored under key, or empty when absent.
func (s *GormStore) Load(ctx context.Context, key string) ([]Record, error) {
	var row AggregateRecord
	err := s.conn.WithContext(ctx).First(&row, "owner_key = ?", key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []Record{}, nil
		}
		return nil, err
	}
	var records []Record
	if err := json.Unmarshal(row.Payload, &records); err != nil {
		return nil, fmt.Errorf("decoding collection %q: %w", key, err)
	}
	return records, nil
}

// Save replaces the collection stored under key.
func (s *GormStore) Save(ctx context.Context, key string, records []Record) error {
	if records == nil {
		records = []Record{}
	}
	payload, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encoding collection %q: %w", key, err)
	}
	row := AggregateRecord{OwnerKey: key, Payload: payload}
	return s.conn.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "owner_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
		}).
		Create(&row).Error
}

// Ping verifies the datasource is reachable.
func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close shuts down the pooled connections.
func (s *GormStore) Close() error {
	sqlDB, err := s.conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
