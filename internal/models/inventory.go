package models

import (
	"time"

	"github.com/diewo77/costopro/internal/market"
	"github.com/diewo77/costopro/internal/pricing"
)

// InventoryRecord is a saved calculation. Records are frozen snapshots:
// created and removed, never edited.
type InventoryRecord struct {
	// ID is the creation time in Unix milliseconds, bumped when needed so
	// ids stay unique and increasing.
	ID         int64              `json:"id"`
	CreatedAt  time.Time          `json:"created_at"`
	AuthorName string             `json:"author_name"`
	Input      pricing.Input      `json:"input"`
	Result     pricing.Result     `json:"result"`
	Assessment *market.Assessment `json:"assessment,omitempty"`
}

// IsCompetitive reports whether the record was priced inside its zone band.
func (r *InventoryRecord) IsCompetitive() bool {
	return r.Assessment != nil && r.Assessment.Status == market.StatusCompetitive
}
