package repositories

import (
	"context"

	"lexcase/internal/adapters/persistence/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DocumentRepository handles case document persistence
type DocumentRepository struct {
	db *gorm.DB
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(db *gorm.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

// Create creates a new document record
func (r *DocumentRepository) Create(ctx context.Context, doc *models.CaseDocument) error {
	return r.db.WithContext(ctx).Create(doc).Error
}

// GetByID gets a document by id
func (r *DocumentRepository) GetByID(ctx context.Context, id uint) (*models.CaseDocument, error) {
	var doc models.CaseDocument
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&doc).Error
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// Delete deletes a document record
func (r *DocumentRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.CaseDocument{}, id).Error
}

// ListByCase lists documents of a case, newest first
func (r *DocumentRepository) ListByCase(ctx context.Context, caseID uuid.UUID) ([]*models.CaseDocument, error) {
	var docs []*models.CaseDocument
	err := r.db.WithContext(ctx).
		Where("case_id = ?", caseID).
		Order("uploaded_at DESC").
		Find(&docs).Error
	return docs, err
}
