package model

import "time"

// MarketInsight is a content record served to partners and admins. Besides
// the is_active visibility toggle it carries no business invariants.
type MarketInsight struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	Category        string    `json:"category" gorm:"type:varchar(50);not null;index"`
	Title           string    `json:"title" gorm:"type:varchar(200);not null"`
	Content         string    `json:"content" gorm:"type:text;not null"`
	ConfidenceLevel string    `json:"confidence_level" gorm:"type:varchar(20);not null"`
	DataSource      string    `json:"data_source" gorm:"type:varchar(100)"`
	CreatedAt       time.Time `json:"created_at"`
	IsActive        bool      `json:"is_active" gorm:"default:true;not null"`
}

// NewsArticle is a content record with an is_featured visibility toggle.
type NewsArticle struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"type:varchar(300);not null"`
	Summary     string    `json:"summary" gorm:"type:text"`
	Content     string    `json:"content" gorm:"type:text"`
	Category    string    `json:"category" gorm:"type:varchar(50);not null;index"`
	SourceURL   string    `json:"source_url" gorm:"type:varchar(500)"`
	ImageURL    string    `json:"image_url" gorm:"type:varchar(500)"`
	PublishedAt time.Time `json:"published_at" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at"`
	IsFeatured  bool      `json:"is_featured" gorm:"default:false;not null"`
}
