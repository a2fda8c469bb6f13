package domain

import (
	"encoding/json"
	"math"
	"strconv"
	"time"
)

// AttributionAction is the direction of a ledger entry
type AttributionAction string

const (
	ActionAttribution AttributionAction = "ATTRIBUTION" // depot -> technician
	ActionReprise     AttributionAction = "REPRISE"     // technician -> depot
)

// EntryStatus marks whether an entry still counts toward aggregates
type EntryStatus string

const (
	StatusCommitted EntryStatus = "COMMITTED"
	StatusCanceled  EntryStatus = "CANCELED"
)

// Quantity is a float64 whose JSON decoding tolerates the malformed
// quantity fields observed upstream (numeric strings, garbage scalars).
// Garbage decodes to NaN so a single bad entry cannot fail a whole
// payload; aggregation skips it via Valid.
type Quantity float64

// UnmarshalJSON accepts a JSON number or a numeric string. Anything else
// yields NaN rather than an error.
func (q *Quantity) UnmarshalJSON(data []byte) error {
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*q = Quantity(f)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			*q = Quantity(f)
			return nil
		}
	}

	*q = Quantity(math.NaN())
	return nil
}

// Valid reports whether q can be counted toward an aggregate
func (q Quantity) Valid() bool {
	return ValidQuantity(float64(q))
}

// ValidQuantity reports whether f is a positive finite number
func ValidQuantity(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0) && f > 0
}

// AttributionEntry is one record of the append-only attribution ledger.
// Entries are never mutated after creation except the cancel transition,
// which flips Status to CANCELED and touches nothing else.
type AttributionEntry struct {
	ID           uint              `json:"id" gorm:"primaryKey"`
	ResourceType ResourceType      `json:"resource_type" gorm:"not null;index:idx_ledger_resource"`
	ResourceID   uint              `json:"resource_id" gorm:"not null;index:idx_ledger_resource"`
	Action       AttributionAction `json:"action" gorm:"not null"`
	Quantity     Quantity          `json:"quantity" gorm:"type:numeric;not null"`
	ToUserID     *uint             `json:"to_user" gorm:"index"`
	FromDepotID  *uint             `json:"from_depot"`
	Author       string            `json:"author" gorm:"not null"`
	Note         string            `json:"note"`
	Status       EntryStatus       `json:"status" gorm:"not null;default:'COMMITTED'"`
	CreatedAt    time.Time         `json:"created_at" gorm:"index"`
}

// TableName specifies the table name
func (AttributionEntry) TableName() string {
	return "attribution_ledger"
}

// Canceled reports whether the entry is excluded from aggregates
func (e *AttributionEntry) Canceled() bool {
	return e.Status == StatusCanceled
}

// AssignedByTechnician folds a ledger into net holdings per technician:
// ATTRIBUTION adds, REPRISE subtracts. Canceled entries, entries without
// a technician and entries with a non-finite or non-positive quantity are
// skipped. The fold must run over the full ledger, never a display page.
func AssignedByTechnician(entries []AttributionEntry) map[uint]float64 {
	totals := make(map[uint]float64)
	for i := range entries {
		e := &entries[i]
		if e.Canceled() || e.ToUserID == nil || !e.Quantity.Valid() {
			continue
		}
		switch e.Action {
		case ActionAttribution:
			totals[*e.ToUserID] += float64(e.Quantity)
		case ActionReprise:
			totals[*e.ToUserID] -= float64(e.Quantity)
		}
	}
	return totals
}

// AssignedTo returns one technician's net holding from a full ledger
func AssignedTo(entries []AttributionEntry, technicianID uint) float64 {
	return AssignedByTechnician(entries)[technicianID]
}

// LedgerPage is one page of ledger history, most recent first
type LedgerPage struct {
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
	Items []AttributionEntry `json:"items"`
}

// LedgerRepository defines the contract for attribution ledger access.
// Append-only: no method updates an entry's business fields; MarkCanceled
// flips status only.
type LedgerRepository interface {
	Append(entry *AttributionEntry) error
	FindByID(id uint) (*AttributionEntry, error)
	PageByResource(resourceType ResourceType, resourceID uint, page, limit int) (*LedgerPage, error)
	ListByResource(resourceType ResourceType, resourceID uint) ([]AttributionEntry, error)
	MarkCanceled(id uint) error
}
