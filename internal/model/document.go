package model

import "time"

// Document is the metadata record for a file associated with a partner
// and/or an admin. File content handling is out of scope; only the metadata
// contract matters here.
type Document struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	PartnerID        *uint     `json:"partner_id" gorm:"index"`
	AdminID          *uint     `json:"admin_id"`
	Filename         string    `json:"filename" gorm:"type:varchar(255);not null"`
	OriginalFilename string    `json:"original_filename" gorm:"type:varchar(255);not null"`
	FilePath         string    `json:"-" gorm:"type:varchar(500);not null"`
	FileSize         int64     `json:"file_size" gorm:"not null"`
	MimeType         string    `json:"mime_type" gorm:"type:varchar(100);not null"`
	Description      string    `json:"description" gorm:"type:text"`
	IsShared         bool      `json:"is_shared" gorm:"default:false;not null"`
	UploadedByType   string    `json:"uploaded_by_type" gorm:"type:varchar(20);not null"`
	CreatedAt        time.Time `json:"created_at"`
}
