package domain

import "time"

// InventoryPeriod records the value of unsold stock for a business as of a
// period end date. At most one record exists per (business, period_end)
// pair. Snapshots are sparse: users record them only at the period
// boundaries they care about.
type InventoryPeriod struct {
	InventoryPeriodID string    `json:"inventoryPeriodID"`
	BusinessID        string    `json:"businessID"`
	PeriodEnd         time.Time `json:"periodEnd"`
	ClosingValue      Money     `json:"closingValue"` // Non-negative
	Notes             string    `json:"notes"`
	AuditFields
}
