package repositories

import (
	"context"
	"time"

	"lexcase/internal/adapters/persistence/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
	ListByRole(ctx context.Context, role string) ([]*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ListAdminIDs(ctx context.Context) ([]uint, error)
}

// ProfileRepository defines user profile repository interface.
// LockByUserID takes a FOR UPDATE lock on the profile row inside tx,
// services use it to serialize per-person checks such as workload
// counts and hearing conflict scans.
type ProfileRepository interface {
	Create(ctx context.Context, profile *models.UserProfile) error
	GetByUserID(ctx context.Context, userID uint) (*models.UserProfile, error)
	LockByUserID(ctx context.Context, tx *gorm.DB, userID uint) (*models.UserProfile, error)
	Update(ctx context.Context, profile *models.UserProfile) error
	DeleteByUserID(ctx context.Context, userID uint) error
	List(ctx context.Context) ([]*models.UserProfile, error)
	ListByRole(ctx context.Context, role string) ([]*models.UserProfile, error)
}

// PendingUserRepository defines pending registration repository interface
type PendingUserRepository interface {
	Create(ctx context.Context, pending *models.PendingUser) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.PendingUser, error)
	Update(ctx context.Context, pending *models.PendingUser) error
	DeleteByEmail(ctx context.Context, email string) error
	ListUnprocessed(ctx context.Context) ([]*models.PendingUser, error)
	ExistsUnprocessedByEmail(ctx context.Context, email string) (bool, error)
}

// PasswordResetRepository defines password reset token repository interface
type PasswordResetRepository interface {
	Create(ctx context.Context, reset *models.PasswordReset) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.PasswordReset, error)
	MarkUsed(ctx context.Context, id uint) error
	DeleteExpired(ctx context.Context) error
}

// CaseStore is the case persistence surface the case, hearing,
// document and payment services depend on. CaseRepository implements
// it, tx parameters carry an open transaction when the call must see
// the same rows as the surrounding writes.
type CaseStore interface {
	CreateTx(ctx context.Context, tx *gorm.DB, c *models.Case) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Case, error)
	GetByIDForUpdate(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*models.Case, error)
	Update(ctx context.Context, c *models.Case) error
	UpdateTx(ctx context.Context, tx *gorm.DB, c *models.Case) error
	List(ctx context.Context, status, caseType string, offset, limit int) ([]*models.Case, int64, error)
	ListByClient(ctx context.Context, clientID uint) ([]*models.Case, error)
	ListByLawyer(ctx context.Context, lawyerID uint) ([]*models.Case, error)
	CountOpenByLawyer(ctx context.Context, tx *gorm.DB, lawyerID uint) (int64, error)
	Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// HearingStore is the hearing persistence surface of the services.
// HearingRepository implements it.
type HearingStore interface {
	CreateTx(ctx context.Context, tx *gorm.DB, hearing *models.Hearing) error
	GetByID(ctx context.Context, id uint) (*models.Hearing, error)
	UpdateTx(ctx context.Context, tx *gorm.DB, hearing *models.Hearing) error
	Delete(ctx context.Context, id uint) error
	ListByCase(ctx context.Context, caseID uuid.UUID) ([]*models.Hearing, error)
	CountByCase(ctx context.Context, tx *gorm.DB, caseID uuid.UUID) (int64, error)
	CountConflicts(ctx context.Context, tx *gorm.DB, lawyerID, clientID uint, slot time.Time, excludeHearingID uint) (int64, error)
}

// PaymentStore is the payment persistence surface of the payment
// service. PaymentRepository implements it.
type PaymentStore interface {
	CreateTx(ctx context.Context, tx *gorm.DB, payment *models.Payment) error
	GetByTransactionID(ctx context.Context, transactionID string) (*models.Payment, error)
	ExistsByTransactionID(ctx context.Context, tx *gorm.DB, transactionID string) (bool, error)
	ListByCase(ctx context.Context, caseID uuid.UUID) ([]*models.Payment, error)
	ListAll(ctx context.Context, offset, limit int) ([]*models.Payment, int64, error)
	ListByLawyer(ctx context.Context, lawyerID uint) ([]*models.Payment, error)
	ListByClient(ctx context.Context, clientID uint) ([]*models.Payment, error)
}

// DocumentStore is the document persistence surface of the document
// service. DocumentRepository implements it.
type DocumentStore interface {
	Create(ctx context.Context, doc *models.CaseDocument) error
	GetByID(ctx context.Context, id uint) (*models.CaseDocument, error)
	Delete(ctx context.Context, id uint) error
	ListByCase(ctx context.Context, caseID uuid.UUID) ([]*models.CaseDocument, error)
}

// NotificationStore is the notification persistence surface of the
// notification service. NotificationRepository implements it.
type NotificationStore interface {
	Create(ctx context.Context, n *models.NotificationItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.NotificationItem, error)
	ListForUser(ctx context.Context, userID uint, includeBroadcast bool, limit int) ([]*models.NotificationItem, error)
	CountUnread(ctx context.Context, userID uint, includeBroadcast bool) (int64, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uint, includeBroadcast bool) error
}
