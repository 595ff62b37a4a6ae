package auth

import "time"

// AdminUser is an operator account for the admin HTTP surface (SPEC_FULL.md
// §4.9) — distinct from any job-domain concept, it exists only to gate
// introspection/ops endpoints behind a bearer token.
type AdminUser struct {
	ID           uint64    `gorm:"primaryKey"`
	Email        string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	CreatedAt    time.Time `gorm:"not null"`
}
