package dto

import (
	"github.com/dallyhq/dally_backend/internal/core/domain"
)

// UpsertInventoryPeriodRequest records (or corrects) the closing stock value
// for a period end date. ClosingValue is a non-negative major-unit decimal
// string.
type UpsertInventoryPeriodRequest struct {
	PeriodEnd    string `json:"periodEnd" binding:"required,datetime=2006-01-02"`
	ClosingValue string `json:"closingValue" binding:"required"`
	Notes        string `json:"notes"`
}

// InventoryPeriodResponse renders an inventory snapshot, value in naira.
type InventoryPeriodResponse struct {
	InventoryPeriodID string `json:"inventoryPeriodID"`
	BusinessID        string `json:"businessID"`
	PeriodEnd         string `json:"periodEnd"`
	ClosingValue      string `json:"closingValue"`
	Notes             string `json:"notes,omitempty"`
}

// ToInventoryPeriodResponse converts a domain inventory period to its
// response form.
func ToInventoryPeriodResponse(p domain.InventoryPeriod) InventoryPeriodResponse {
	return InventoryPeriodResponse{
		InventoryPeriodID: p.InventoryPeriodID,
		BusinessID:        p.BusinessID,
		PeriodEnd:         p.PeriodEnd.Format("2006-01-02"),
		ClosingValue:      p.ClosingValue.String(),
		Notes:             p.Notes,
	}
}
