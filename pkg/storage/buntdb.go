package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/raykavin/chartkit/pkg/core"
	"github.com/tidwall/buntdb"
)

// BuntStorage implements core.DatasetStorage on BuntDB, keyed by
// dataset name with a JSON payload per entry
type BuntStorage struct {
	db *buntdb.DB
}

// FromMemory creates an in-memory storage
func FromMemory() (core.DatasetStorage, error) {
	return NewBuntStorage(":memory:")
}

// FromFile creates a file-based storage
func FromFile(file string) (core.DatasetStorage, error) {
	return NewBuntStorage(file)
}

// NewBuntStorage creates a new BuntDB storage instance
func NewBuntStorage(sourceFile string) (core.DatasetStorage, error) {
	db, err := buntdb.Open(sourceFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open buntdb: %w", err)
	}

	err = db.CreateIndex("updated_index", "*", buntdb.IndexJSON("updated_at"))
	if err != nil {
		return nil, fmt.Errorf("failed to create index: %w", err)
	}

	return &BuntStorage{db: db}, nil
}

// SaveDataset stores or replaces a dataset snapshot under its name
func (b *BuntStorage) SaveDataset(set *core.Dataset) error {
	return b.db.Update(func(tx *buntdb.Tx) error {
		set.UpdatedAt = time.Now()

		content, err := json.Marshal(set)
		if err != nil {
			return fmt.Errorf("failed to marshal dataset: %w", err)
		}

		if _, _, err := tx.Set(set.Name, string(content), nil); err != nil {
			return fmt.Errorf("failed to store dataset: %w", err)
		}

		return nil
	})
}

// Dataset fetches one dataset snapshot by name
func (b *BuntStorage) Dataset(name string) (*core.Dataset, error) {
	var set core.Dataset

	err := b.db.View(func(tx *buntdb.Tx) error {
		content, err := tx.Get(name)
		if err != nil {
			if errors.Is(err, buntdb.ErrNotFound) {
				return fmt.Errorf("dataset %q not found: %w", name, err)
			}
			return err
		}

		return json.Unmarshal([]byte(content), &set)
	})
	if err != nil {
		return nil, err
	}

	return &set, nil
}

// Datasets lists all stored snapshots ordered by last update
func (b *BuntStorage) Datasets() ([]*core.Dataset, error) {
	sets := make([]*core.Dataset, 0)

	err := b.db.View(func(tx *buntdb.Tx) error {
		return tx.Ascend("updated_index", func(key, value string) bool {
			var set core.Dataset
			if err := json.Unmarshal([]byte(value), &set); err != nil {
				return true
			}
			sets = append(sets, &set)
			return true
		})
	})
	if err != nil {
		return nil, err
	}

	return sets, nil
}

// DeleteDataset removes a snapshot by name; deleting an unknown name
// is a no-op
func (b *BuntStorage) DeleteDataset(name string) error {
	return b.db.Update(func(tx *buntdb.Tx) error {
		_, err := tx.Delete(name)
		if errors.Is(err, buntdb.ErrNotFound) {
			return nil
		}
		return err
	})
}
