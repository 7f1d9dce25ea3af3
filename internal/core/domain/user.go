package domain

// User represents an application user. The engine treats the owner identity
// as opaque; it exists here only so the auth glue has something to issue
// tokens for.
type User struct {
	UserID       string `json:"userID"` // Primary key (UUID)
	Email        string `json:"email"`
	Name         string `json:"name"`
	PasswordHash string `json:"-"`
	IsPro        bool   `json:"isPro"`
	AuditFields
}
