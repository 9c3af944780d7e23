package repositories

import (
	"context"
	"time"

	"lexcase/internal/adapters/persistence/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// userRepository implements UserRepository interface
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create creates a new user
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// GetByID gets a user by ID
func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail gets a user by email
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Update updates a user
func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

// Delete soft deletes a user
func (r *userRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.User{}, id).Error
}

// ListByRole lists users with a given role
func (r *userRepository) ListByRole(ctx context.Context, role string) ([]*models.User, error) {
	var users []*models.User
	err := r.db.WithContext(ctx).Where("role = ?", role).Order("email ASC").Find(&users).Error
	return users, err
}

// ExistsByEmail checks if a user with the email exists
func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

// ListAdminIDs returns ids of all active admin accounts
func (r *userRepository) ListAdminIDs(ctx context.Context) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Where("role = ? AND is_active = ?", models.RoleAdmin, true).
		Pluck("id", &ids).Error
	return ids, err
}

// profileRepository implements ProfileRepository interface
type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

// Create creates a new profile
func (r *profileRepository) Create(ctx context.Context, profile *models.UserProfile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

// GetByUserID gets a profile by account id
func (r *profileRepository) GetByUserID(ctx context.Context, userID uint) (*models.UserProfile, error) {
	var profile models.UserProfile
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// LockByUserID gets a profile by account id with a FOR UPDATE row
// lock inside tx
func (r *profileRepository) LockByUserID(ctx context.Context, tx *gorm.DB, userID uint) (*models.UserProfile, error) {
	var profile models.UserProfile
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// Update updates a profile
func (r *profileRepository) Update(ctx context.Context, profile *models.UserProfile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}

// DeleteByUserID deletes a profile by account id
func (r *profileRepository) DeleteByUserID(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.UserProfile{}).Error
}

// List lists all profiles
func (r *profileRepository) List(ctx context.Context) ([]*models.UserProfile, error) {
	var profiles []*models.UserProfile
	err := r.db.WithContext(ctx).Preload("User").Order("created_at DESC").Find(&profiles).Error
	return profiles, err
}

// ListByRole lists profiles with a given role
func (r *profileRepository) ListByRole(ctx context.Context, role string) ([]*models.UserProfile, error) {
	var profiles []*models.UserProfile
	err := r.db.WithContext(ctx).Where("role = ?", role).Order("full_name ASC").Find(&profiles).Error
	return profiles, err
}

// pendingUserRepository implements PendingUserRepository interface
type pendingUserRepository struct {
	db *gorm.DB
}

// NewPendingUserRepository creates a new pending user repository
func NewPendingUserRepository(db *gorm.DB) PendingUserRepository {
	return &pendingUserRepository{db: db}
}

// Create creates a new pending registration request
func (r *pendingUserRepository) Create(ctx context.Context, pending *models.PendingUser) error {
	return r.db.WithContext(ctx).Create(pending).Error
}

// GetByID gets a pending request by id
func (r *pendingUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.PendingUser, error) {
	var pending models.PendingUser
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&pending).Error
	if err != nil {
		return nil, err
	}
	return &pending, nil
}

// Update updates a pending request
func (r *pendingUserRepository) Update(ctx context.Context, pending *models.PendingUser) error {
	return r.db.WithContext(ctx).Save(pending).Error
}

// DeleteByEmail removes pending requests for an email (used on account removal)
func (r *pendingUserRepository) DeleteByEmail(ctx context.Context, email string) error {
	return r.db.WithContext(ctx).Where("email = ?", email).Delete(&models.PendingUser{}).Error
}

// ListUnprocessed lists requests awaiting a decision, newest first
func (r *pendingUserRepository) ListUnprocessed(ctx context.Context) ([]*models.PendingUser, error) {
	var pending []*models.PendingUser
	err := r.db.WithContext(ctx).
		Where("is_processed = ?", false).
		Order("requested_at DESC").
		Find(&pending).Error
	return pending, err
}

// ExistsUnprocessedByEmail checks for an open request with the email
func (r *pendingUserRepository) ExistsUnprocessedByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.PendingUser{}).
		Where("email = ? AND is_processed = ?", email, false).
		Count(&count).Error
	return count > 0, err
}

// passwordResetRepository implements PasswordResetRepository interface
type passwordResetRepository struct {
	db *gorm.DB
}

// NewPasswordResetRepository creates a new password reset repository
func NewPasswordResetRepository(db *gorm.DB) PasswordResetRepository {
	return &passwordResetRepository{db: db}
}

// Create creates a new reset token record
func (r *passwordResetRepository) Create(ctx context.Context, reset *models.PasswordReset) error {
	return r.db.WithContext(ctx).Create(reset).Error
}

// GetByTokenHash gets an unused reset record by token hash
func (r *passwordResetRepository) GetByTokenHash(ctx context.Context, tokenHash string) (*models.PasswordReset, error) {
	var reset models.PasswordReset
	err := r.db.WithContext(ctx).
		Where("token_hash = ? AND used_at IS NULL", tokenHash).
		First(&reset).Error
	if err != nil {
		return nil, err
	}
	return &reset, nil
}

// MarkUsed marks a reset record as consumed
func (r *passwordResetRepository) MarkUsed(ctx context.Context, id uint) error {
	now := time.Now()
	return r.db.WithContext(ctx).Model(&models.PasswordReset{}).
		Where("id = ?", id).
		Update("used_at", now).Error
}

// DeleteExpired removes expired reset records
func (r *passwordResetRepository) DeleteExpired(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Where("expires_at < ?", time.Now()).
		Delete(&models.PasswordReset{}).Error
}
