package model

import "time"

// Sender kinds for messages and documents.
const (
	SenderPartner = "partner"
	SenderAdmin   = "admin"
)

// Message is a directed note between a partner and staff. Records are
// append-only; only the read flag ever changes after creation.
type Message struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	PartnerID  uint      `json:"partner_id" gorm:"index;not null"`
	AdminID    *uint     `json:"admin_id"`
	SenderType string    `json:"sender_type" gorm:"type:varchar(20);not null"`
	Subject    string    `json:"subject" gorm:"type:varchar(200)"`
	Content    string    `json:"content" gorm:"type:text;not null"`
	IsRead     bool      `json:"is_read" gorm:"default:false;not null"`
	CreatedAt  time.Time `json:"created_at"`
}
