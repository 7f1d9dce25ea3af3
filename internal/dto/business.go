package dto

import (
	"github.com/dallyhq/dally_backend/internal/core/domain"
)

// CreateBusinessRequest registers a trading entity for the calling owner.
type CreateBusinessRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	Description string `json:"description"`
}

// BusinessResponse renders a business.
type BusinessResponse struct {
	BusinessID  string `json:"businessID"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// ToBusinessResponse converts a domain business to its response form.
func ToBusinessResponse(b domain.Business) BusinessResponse {
	return BusinessResponse{
		BusinessID:  b.BusinessID,
		Name:        b.Name,
		Description: b.Description,
	}
}
