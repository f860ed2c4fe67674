package model

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// PartnerStatus is the lifecycle state of a partner application.
type PartnerStatus string

const (
	StatusPending   PartnerStatus = "pending"
	StatusApproved  PartnerStatus = "approved"
	StatusRejected  PartnerStatus = "rejected"
	StatusSuspended PartnerStatus = "suspended"
)

// LoginMessage maps a non-approved status to the message returned on a login
// attempt. Approved partners pass the status gate and never see one.
func (s PartnerStatus) LoginMessage() string {
	switch s {
	case StatusPending:
		return "Your application is still pending approval"
	case StatusRejected:
		return "Your application has been rejected"
	case StatusSuspended:
		return "Your account has been suspended"
	case StatusApproved:
		return ""
	}
	return "Account not active"
}

// BusinessTypes lists the accepted business_type values for registration.
var BusinessTypes = []string{
	"Import/Export Company",
	"Manufacturing",
	"Agriculture",
	"Electronics",
	"Fashion/Textiles",
	"Technology Services",
	"Logistics/Shipping",
	"Financial Services",
	"Other",
}

// ValidBusinessType reports whether t is one of the accepted categories.
func ValidBusinessType(t string) bool {
	for _, bt := range BusinessTypes {
		if bt == t {
			return true
		}
	}
	return false
}

// Partner represents a prospective or active business partner.
type Partner struct {
	ID uint `json:"id" gorm:"primaryKey"`

	// Company information
	CompanyName string `json:"company_name" gorm:"type:varchar(200);not null"`
	ContactName string `json:"contact_name" gorm:"type:varchar(100);not null"`
	Email       string `json:"email" gorm:"type:varchar(120);uniqueIndex;not null"`
	Phone       string `json:"phone" gorm:"type:varchar(20);not null"`
	Country     string `json:"country" gorm:"type:varchar(100);not null"`

	// Business details
	BusinessType  string `json:"business_type" gorm:"type:varchar(50);not null"`
	AnnualRevenue string `json:"annual_revenue" gorm:"type:varchar(50);not null"`
	Experience    string `json:"experience" gorm:"type:varchar(50);not null"`
	Interests     string `json:"interests" gorm:"type:text"`
	Message       string `json:"message,omitempty" gorm:"type:text"`

	// Authentication
	PasswordHash string `json:"-" gorm:"type:varchar(255)"`

	// Status and metadata
	Status     PartnerStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
	ApprovedAt *time.Time    `json:"approved_at"`
	ApprovedBy *uint         `json:"approved_by,omitempty"`

	// Activity tracking
	LastLogin  *time.Time `json:"last_login"`
	LoginCount int        `json:"login_count" gorm:"default:0"`

	// Relations - removed with the partner
	Messages  []Message  `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Documents []Document `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

// SetPassword derives and stores a bcrypt hash, replacing any prior one.
func (p *Partner) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	p.PasswordHash = string(hash)
	return nil
}

// CheckPassword verifies a plaintext password against the stored hash.
// Returns false when no hash is set or the password does not match.
func (p *Partner) CheckPassword(password string) bool {
	if p.PasswordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(password)) == nil
}
