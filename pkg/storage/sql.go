package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/raykavin/chartkit/pkg/core"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

// datasetRecord is the SQL row shape; the point payload is stored as a
// JSON blob so the schema stays independent of chart archetypes
type datasetRecord struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"uniqueIndex"`
	Payload   []byte
	UpdatedAt time.Time
}

// SQLStorage implements core.DatasetStorage on a SQL database via GORM
type SQLStorage struct {
	db *gorm.DB
}

// FromSQL creates a new SQL storage instance
func FromSQL(dialect gorm.Dialector, opts ...gorm.Option) (core.DatasetStorage, error) {
	db, err := gorm.Open(dialect, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.AutoMigrate(&datasetRecord{}); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLStorage{db: db}, nil
}

// SaveDataset stores or replaces a dataset snapshot under its name
func (s *SQLStorage) SaveDataset(set *core.Dataset) error {
	set.UpdatedAt = time.Now()

	payload, err := json.Marshal(set)
	if err != nil {
		return fmt.Errorf("failed to marshal dataset: %w", err)
	}

	record := datasetRecord{Name: set.Name, Payload: payload, UpdatedAt: set.UpdatedAt}

	var existing datasetRecord
	result := s.db.Where("name = ?", set.Name).First(&existing)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		if err := s.db.Create(&record).Error; err != nil {
			return fmt.Errorf("failed to create dataset: %w", err)
		}
		return nil
	}
	if result.Error != nil {
		return fmt.Errorf("failed to query dataset: %w", result.Error)
	}

	record.ID = existing.ID
	if err := s.db.Save(&record).Error; err != nil {
		return fmt.Errorf("failed to update dataset: %w", err)
	}

	return nil
}

// Dataset fetches one dataset snapshot by name
func (s *SQLStorage) Dataset(name string) (*core.Dataset, error) {
	var record datasetRecord
	if err := s.db.Where("name = ?", name).First(&record).Error; err != nil {
		return nil, fmt.Errorf("dataset %q not found: %w", name, err)
	}

	return decodeRecord(record)
}

// Datasets lists all stored snapshots ordered by last update
func (s *SQLStorage) Datasets() ([]*core.Dataset, error) {
	var records []datasetRecord
	if err := s.db.Order("updated_at asc").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list datasets: %w", err)
	}

	sets := lo.FilterMap(records, func(record datasetRecord, _ int) (*core.Dataset, bool) {
		set, err := decodeRecord(record)
		return set, err == nil
	})

	return sets, nil
}

// DeleteDataset removes a snapshot by name
func (s *SQLStorage) DeleteDataset(name string) error {
	return s.db.Where("name = ?", name).Delete(&datasetRecord{}).Error
}

func decodeRecord(record datasetRecord) (*core.Dataset, error) {
	var set core.Dataset
	if err := json.Unmarshal(record.Payload, &set); err != nil {
		return nil, fmt.Errorf("failed to decode dataset %q: %w", record.Name, err)
	}
	return &set, nil
}
