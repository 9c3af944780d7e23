package repositories

import (
	"context"
	"time"

	"lexcase/internal/adapters/persistence/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PaymentRepository handles payment data persistence. Payment rows are
// append only, there are no update or delete methods.
type PaymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// CreateTx records a payment inside a transaction
func (r *PaymentRepository) CreateTx(ctx context.Context, tx *gorm.DB, payment *models.Payment) error {
	return tx.WithContext(ctx).Create(payment).Error
}

// GetByTransactionID gets a payment by its gateway transaction id
func (r *PaymentRepository) GetByTransactionID(ctx context.Context, transactionID string) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.WithContext(ctx).Where("transaction_id = ?", transactionID).First(&payment).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// ExistsByTransactionID checks whether a transaction id was already
// recorded. When tx is non nil the check runs inside that transaction.
func (r *PaymentRepository) ExistsByTransactionID(ctx context.Context, tx *gorm.DB, transactionID string) (bool, error) {
	db := r.db
	if tx != nil {
		db = tx
	}
	var count int64
	err := db.WithContext(ctx).Model(&models.Payment{}).
		Where("transaction_id = ?", transactionID).
		Count(&count).Error
	return count > 0, err
}

// ListByCase lists payments of a case, newest first
func (r *PaymentRepository) ListByCase(ctx context.Context, caseID uuid.UUID) ([]*models.Payment, error) {
	var payments []*models.Payment
	err := r.db.WithContext(ctx).
		Where("case_id = ?", caseID).
		Order("payment_date DESC").
		Find(&payments).Error
	return payments, err
}

// ListAll lists payments with their cases preloaded, newest first
func (r *PaymentRepository) ListAll(ctx context.Context, offset, limit int) ([]*models.Payment, int64, error) {
	var payments []*models.Payment
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Payment{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.db.WithContext(ctx).
		Preload("Case").
		Order("payment_date DESC").
		Offset(offset).Limit(limit).
		Find(&payments).Error
	return payments, total, err
}

// ListByLawyer lists payments of cases assigned to a lawyer, newest first
func (r *PaymentRepository) ListByLawyer(ctx context.Context, lawyerID uint) ([]*models.Payment, error) {
	var payments []*models.Payment
	err := r.db.WithContext(ctx).
		Preload("Case").
		Joins("JOIN cases ON cases.id = payments.case_id").
		Where("cases.lawyer_id = ?", lawyerID).
		Order("payments.payment_date DESC").
		Find(&payments).Error
	return payments, err
}

// ListByClient lists payments of cases filed by a client, newest first
func (r *PaymentRepository) ListByClient(ctx context.Context, clientID uint) ([]*models.Payment, error) {
	var payments []*models.Payment
	err := r.db.WithContext(ctx).
		Preload("Case").
		Joins("JOIN cases ON cases.id = payments.case_id").
		Where("cases.client_id = ?", clientID).
		Order("payments.payment_date DESC").
		Find(&payments).Error
	return payments, err
}

// ListBetween lists payments collected in a date range, oldest first.
// A nonzero lawyerID restricts the result to that lawyer's cases.
func (r *PaymentRepository) ListBetween(ctx context.Context, from, to time.Time, lawyerID uint) ([]*models.Payment, error) {
	var payments []*models.Payment
	q := r.db.WithContext(ctx).
		Preload("Case").
		Joins("JOIN cases ON cases.id = payments.case_id").
		Where("payments.payment_date >= ? AND payments.payment_date < ?", from, to)
	if lawyerID != 0 {
		q = q.Where("cases.lawyer_id = ?", lawyerID)
	}
	err := q.Order("payments.payment_date ASC").Find(&payments).Error
	return payments, err
}

// RevenueTotals sums collected amounts and the admin and lawyer shares
func (r *PaymentRepository) RevenueTotals(ctx context.Context) (total, adminShare, lawyerShare float64, err error) {
	row := struct {
		Total       float64
		AdminShare  float64
		LawyerShare float64
	}{}
	err = r.db.WithContext(ctx).Model(&models.Payment{}).
		Select("COALESCE(SUM(amount),0) AS total, COALESCE(SUM(admin_share),0) AS admin_share, COALESCE(SUM(lawyer_share),0) AS lawyer_share").
		Scan(&row).Error
	return row.Total, row.AdminShare, row.LawyerShare, err
}

// LawyerEarnings sums the lawyer shares of a lawyer's cases
func (r *PaymentRepository) LawyerEarnings(ctx context.Context, lawyerID uint) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).Model(&models.Payment{}).
		Joins("JOIN cases ON cases.id = payments.case_id").
		Where("cases.lawyer_id = ?", lawyerID).
		Select("COALESCE(SUM(payments.lawyer_share),0)").
		Scan(&total).Error
	return total, err
}

// ClientSpending sums the amounts paid on a client's cases
func (r *PaymentRepository) ClientSpending(ctx context.Context, clientID uint) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).Model(&models.Payment{}).
		Joins("JOIN cases ON cases.id = payments.case_id").
		Where("cases.client_id = ?", clientID).
		Select("COALESCE(SUM(payments.amount),0)").
		Scan(&total).Error
	return total, err
}
