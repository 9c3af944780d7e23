package repositories

import (
	"context"

	"lexcase/internal/adapters/persistence/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CaseRepository handles case data persistence
type CaseRepository struct {
	db *gorm.DB
}

// NewCaseRepository creates a new case repository
func NewCaseRepository(db *gorm.DB) *CaseRepository {
	return &CaseRepository{db: db}
}

// Create creates a new case
func (r *CaseRepository) Create(ctx context.Context, c *models.Case) error {
	return r.db.WithContext(ctx).Create(c).Error
}

// CreateTx creates a case inside a transaction
func (r *CaseRepository) CreateTx(ctx context.Context, tx *gorm.DB, c *models.Case) error {
	return tx.WithContext(ctx).Create(c).Error
}

// GetByID gets a case by id
func (r *CaseRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Case, error) {
	var c models.Case
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetByIDForUpdate gets a case by id with a row lock inside tx
func (r *CaseRepository) GetByIDForUpdate(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*models.Case, error) {
	var c models.Case
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Update updates a case
func (r *CaseRepository) Update(ctx context.Context, c *models.Case) error {
	return r.db.WithContext(ctx).Save(c).Error
}

// UpdateTx updates a case inside a transaction
func (r *CaseRepository) UpdateTx(ctx context.Context, tx *gorm.DB, c *models.Case) error {
	return tx.WithContext(ctx).Save(c).Error
}

// List lists cases with optional status and type filters, newest first
func (r *CaseRepository) List(ctx context.Context, status, caseType string, offset, limit int) ([]*models.Case, int64, error) {
	var cases []*models.Case
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Case{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if caseType != "" {
		query = query.Where("case_type = ?", caseType)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&cases).Error
	return cases, total, err
}

// ListByClient lists cases filed by a client, newest first
func (r *CaseRepository) ListByClient(ctx context.Context, clientID uint) ([]*models.Case, error) {
	var cases []*models.Case
	err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("created_at DESC").
		Find(&cases).Error
	return cases, err
}

// ListByLawyer lists cases assigned to a lawyer, newest first
func (r *CaseRepository) ListByLawyer(ctx context.Context, lawyerID uint) ([]*models.Case, error) {
	var cases []*models.Case
	err := r.db.WithContext(ctx).
		Where("lawyer_id = ?", lawyerID).
		Order("created_at DESC").
		Find(&cases).Error
	return cases, err
}

// CountOpenByLawyer counts a lawyer's pending and active cases.
// When tx is non nil the count runs inside that transaction so the
// workload check and the assignment commit see the same rows.
func (r *CaseRepository) CountOpenByLawyer(ctx context.Context, tx *gorm.DB, lawyerID uint) (int64, error) {
	db := r.db
	if tx != nil {
		db = tx
	}
	var count int64
	err := db.WithContext(ctx).Model(&models.Case{}).
		Where("lawyer_id = ? AND status IN ?", lawyerID, []models.CaseStatus{models.CasePending, models.CaseActive}).
		Count(&count).Error
	return count, err
}

// CountByStatus counts cases per status
func (r *CaseRepository) CountByStatus(ctx context.Context, status models.CaseStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Case{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

// CountAll counts every case
func (r *CaseRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Case{}).Count(&count).Error
	return count, err
}

// Transaction runs fn inside a database transaction
func (r *CaseRepository) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}
