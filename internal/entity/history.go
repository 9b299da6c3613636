package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// HistoryEntry is one persisted search result. Entries are keyed by the
// (businessName, city) pair the analyst searched for; repeating a search
// replaces the stored profile instead of adding a row.
type HistoryEntry struct {
	ID           uuid.UUID       `json:"id"`
	BusinessName string          `json:"businessName"`
	City         string          `json:"city"`
	Profile      json.RawMessage `json:"profile"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}
