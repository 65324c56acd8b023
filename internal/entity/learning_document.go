package entity

import (
	"time"

	"gorm.io/gorm"
)

// LearningDocument - module content searched by the semantic search endpoint
type LearningDocument struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	DocumentID string         `gorm:"uniqueIndex;size:100;not null" json:"document_id"` // e.g. "ml-101"
	Title      string         `gorm:"size:200;not null" json:"title"`
	Content    string         `gorm:"type:text;not null" json:"content"`
	Metadata   string         `gorm:"type:text" json:"metadata"` // JSON object
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (LearningDocument) TableName() string {
	return "learning_documents"
}
