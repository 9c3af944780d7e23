package repositories

import (
	"context"
	"time"

	"lexcase/internal/adapters/persistence/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HearingRepository handles hearing data persistence
type HearingRepository struct {
	db *gorm.DB
}

// NewHearingRepository creates a new hearing repository
func NewHearingRepository(db *gorm.DB) *HearingRepository {
	return &HearingRepository{db: db}
}

// Create creates a new hearing
func (r *HearingRepository) Create(ctx context.Context, hearing *models.Hearing) error {
	return r.db.WithContext(ctx).Create(hearing).Error
}

// CreateTx creates a hearing inside a transaction
func (r *HearingRepository) CreateTx(ctx context.Context, tx *gorm.DB, hearing *models.Hearing) error {
	return tx.WithContext(ctx).Create(hearing).Error
}

// GetByID gets a hearing by id
func (r *HearingRepository) GetByID(ctx context.Context, id uint) (*models.Hearing, error) {
	var hearing models.Hearing
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&hearing).Error
	if err != nil {
		return nil, err
	}
	return &hearing, nil
}

// Update updates a hearing
func (r *HearingRepository) Update(ctx context.Context, hearing *models.Hearing) error {
	return r.db.WithContext(ctx).Save(hearing).Error
}

// UpdateTx updates a hearing inside a transaction
func (r *HearingRepository) UpdateTx(ctx context.Context, tx *gorm.DB, hearing *models.Hearing) error {
	return tx.WithContext(ctx).Save(hearing).Error
}

// Delete deletes a hearing
func (r *HearingRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Hearing{}, id).Error
}

// ListByCase lists hearings of a case ordered by date
func (r *HearingRepository) ListByCase(ctx context.Context, caseID uuid.UUID) ([]*models.Hearing, error) {
	var hearings []*models.Hearing
	err := r.db.WithContext(ctx).
		Where("case_id = ?", caseID).
		Order("hearing_date ASC").
		Find(&hearings).Error
	return hearings, err
}

// CountByCase counts hearings scheduled for a case. When tx is non nil
// the count runs inside that transaction.
func (r *HearingRepository) CountByCase(ctx context.Context, tx *gorm.DB, caseID uuid.UUID) (int64, error) {
	db := r.db
	if tx != nil {
		db = tx
	}
	var count int64
	err := db.WithContext(ctx).Model(&models.Hearing{}).
		Where("case_id = ?", caseID).
		Count(&count).Error
	return count, err
}

// CountConflicts counts hearings at the exact same date and time that
// involve the same lawyer or the same client through any of their
// cases. excludeHearingID skips the hearing being edited. When tx is
// non nil the query runs inside that transaction so the conflict check
// and the write see the same rows.
func (r *HearingRepository) CountConflicts(ctx context.Context, tx *gorm.DB, lawyerID, clientID uint, slot time.Time, excludeHearingID uint) (int64, error) {
	db := r.db
	if tx != nil {
		db = tx
	}
	var count int64
	query := db.WithContext(ctx).Model(&models.Hearing{}).
		Joins("JOIN cases ON cases.id = hearings.case_id").
		Where("cases.lawyer_id = ? OR cases.client_id = ?", lawyerID, clientID).
		Where("hearings.hearing_date = ?", slot)
	if excludeHearingID != 0 {
		query = query.Where("hearings.id <> ?", excludeHearingID)
	}
	err := query.Count(&count).Error
	return count, err
}

// ListUpcomingUnreminded lists hearings within the window that have not
// had a reminder sent yet, with their cases preloaded
func (r *HearingRepository) ListUpcomingUnreminded(ctx context.Context, from, to time.Time) ([]*models.Hearing, error) {
	var hearings []*models.Hearing
	err := r.db.WithContext(ctx).
		Preload("Case").
		Where("reminder_sent = ?", false).
		Where("hearing_date >= ? AND hearing_date < ?", from, to).
		Find(&hearings).Error
	return hearings, err
}

// MarkReminderSent flags a hearing's reminder as delivered
func (r *HearingRepository) MarkReminderSent(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&models.Hearing{}).
		Where("id = ?", id).
		Update("reminder_sent", true).Error
}
