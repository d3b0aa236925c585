package models

// AdminUser is the credentialed account for the admin backend.
// It is deliberately separate from the Professor content record.
type AdminUser struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Name         string `json:"name"`
}
