package core

import (
	"fmt"
	"time"
)

// Dataset is a named, immutable snapshot of a point collection.
// Replacement datasets are swapped in whole; renderers never observe a
// collection mutated underneath them.
type Dataset struct {
	Name      string    `json:"name"`
	Points    []Point   `json:"points,omitempty"`
	Candles   []Candle  `json:"candles,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewDataset creates a validated point dataset
func NewDataset(name string, points []Point) (*Dataset, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: empty dataset name", ErrInvalidData)
	}
	if err := ValidatePoints(points); err != nil {
		return nil, err
	}

	return &Dataset{
		Name:      name,
		Points:    points,
		UpdatedAt: time.Now(),
	}, nil
}

// DatasetStorage persists named dataset snapshots for later replay
type DatasetStorage interface {
	SaveDataset(set *Dataset) error
	Dataset(name string) (*Dataset, error)
	Datasets() ([]*Dataset, error)
	DeleteDataset(name string) error
}
