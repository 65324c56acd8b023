package repository

import (
	"github.com/evandrarf/microlearn-be/internal/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	DocumentRepository interface {
		Upsert(db *gorm.DB, doc *entity.LearningDocument) error
		FindAll(db *gorm.DB) ([]entity.LearningDocument, error)
		FindByDocumentID(db *gorm.DB, documentID string) (*entity.LearningDocument, error)
		Count(db *gorm.DB) (int64, error)
	}

	documentRepository struct {
		db *gorm.DB
	}
)

func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{db: db}
}

// Upsert replaces title, content and metadata when the document id already exists
func (r *documentRepository) Upsert(db *gorm.DB, doc *entity.LearningDocument) error {
	if db == nil {
		db = r.db
	}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "document_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"title", "content", "metadata", "updated_at"}),
	}).Create(doc).Error
}

func (r *documentRepository) FindAll(db *gorm.DB) ([]entity.LearningDocument, error) {
	if db == nil {
		db = r.db
	}
	var docs []entity.LearningDocument
	err := db.Order("id ASC").Find(&docs).Error
	return docs, err
}

func (r *documentRepository) FindByDocumentID(db *gorm.DB, documentID string) (*entity.LearningDocument, error) {
	if db == nil {
		db = r.db
	}
	var doc entity.LearningDocument
	err := db.Where("document_id = ?", documentID).First(&doc).Error
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *documentRepository) Count(db *gorm.DB) (int64, error) {
	if db == nil {
		db = r.db
	}
	var count int64
	err := db.Model(&entity.LearningDocument{}).Count(&count).Error
	return count, err
}
