package model

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Admin represents a staff principal. Admins are never removed by partner
// operations.
type Admin struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	Username     string     `json:"username" gorm:"type:varchar(80);uniqueIndex;not null"`
	Email        string     `json:"email" gorm:"type:varchar(120);uniqueIndex;not null"`
	PasswordHash string     `json:"-" gorm:"type:varchar(255);not null"`
	IsActive     bool       `json:"is_active" gorm:"default:true;not null"`
	CreatedAt    time.Time  `json:"created_at"`
	LastLogin    *time.Time `json:"last_login"`
}

// SetPassword derives and stores a bcrypt hash, replacing any prior one.
func (a *Admin) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	a.PasswordHash = string(hash)
	return nil
}

// CheckPassword verifies a plaintext password against the stored hash.
func (a *Admin) CheckPassword(password string) bool {
	if a.PasswordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)) == nil
}
