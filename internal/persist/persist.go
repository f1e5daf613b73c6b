// Package persist holds the snapshot persistence collaborators. The record
// store treats them as a key-value store: every collection is read and
// written wholesale, never row by row.
package persist

import (
	"context"

	"milk-ledger/internal/models"
)

// Snapshot is the full persisted state: the four record collections plus
// login accounts.
type Snapshot struct {
	Products  []models.Product  `json:"products"`
	Customers []models.Customer `json:"customers"`
	Orders    []models.Order    `json:"orders"`
	Payments  []models.Payment  `json:"payments"`
	Users     []models.User     `json:"users"`
}

// Persister loads and saves the whole snapshot. Load on a backend that has
// never been written returns an empty snapshot, not an error.
type Persister interface {
	Load(ctx context.Context) (*Snapshot, error)
	Save(ctx context.Context, snap *Snapshot) error
	Close() error
}
