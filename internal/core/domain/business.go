package domain

// Business is a user's registered trading entity. A user typically has one;
// transactions and inventory periods may reference it.
type Business struct {
	BusinessID  string `json:"businessID"` // Primary key (UUID)
	OwnerID     string `json:"ownerID"`
	Name        string `json:"name"`
	Description string `json:"description"`
	AuditFields
}
