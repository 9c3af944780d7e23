package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ============================================================
// Auth & Profile Tables
// ============================================================

// Role constants used across users, profiles and pending requests
const (
	RoleAdmin  = "Admin"
	RoleLawyer = "Lawyer"
	RoleClient = "Client"
)

// User represents users table (login accounts)
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Email     string         `gorm:"uniqueIndex;size:250;not null" json:"email"`
	Password  string         `gorm:"size:255;not null" json:"-"`
	Role      string         `gorm:"size:20;not null" json:"role"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO
type UserResponse struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	FullName  string    `json:"full_name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

// UserProfile extends a login account with display and contact info.
// Specialization and DateOfJoining are only set for lawyers.
type UserProfile struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	UserID         uint       `gorm:"uniqueIndex;not null" json:"user_id"`
	FullName       string     `gorm:"size:250;not null" json:"full_name"`
	Phone          string     `gorm:"size:50" json:"phone"`
	Address        string     `gorm:"type:text" json:"address"`
	AdditionalInfo string     `gorm:"type:text" json:"additional_info"`
	Role           string     `gorm:"size:20;not null" json:"role"`
	Specialization string     `gorm:"size:100" json:"specialization,omitempty"`
	DateOfJoining  *time.Time `json:"date_of_joining,omitempty"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (UserProfile) TableName() string {
	return "user_profiles"
}

// PendingUser is a registration request awaiting an admin decision.
// Terminal once IsProcessed is set.
type PendingUser struct {
	ID             uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	FullName       string    `gorm:"size:250;not null" json:"full_name"`
	Email          string    `gorm:"size:250;not null;index" json:"email"`
	Phone          string    `gorm:"size:50" json:"phone"`
	Address        string    `gorm:"type:text" json:"address"`
	AdditionalInfo string    `gorm:"type:text" json:"additional_info"`
	Role           string    `gorm:"size:20;not null" json:"role"`
	Specialization string    `gorm:"size:100" json:"specialization,omitempty"`
	RequestedAt    time.Time `gorm:"autoCreateTime" json:"requested_at"`
	IsProcessed    bool      `gorm:"default:false;index" json:"is_processed"`
	AdminNote      string    `gorm:"size:250" json:"admin_note"`
}

func (PendingUser) TableName() string {
	return "pending_users"
}

func (p *PendingUser) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// PasswordReset stores a hashed single-use reset token.
type PasswordReset struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	TokenHash string    `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	UsedAt    *time.Time `json:"used_at"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (PasswordReset) TableName() string {
	return "password_resets"
}

func (pr *PasswordReset) IsExpired() bool {
	return time.Now().After(pr.ExpiresAt)
}

// ============================================================
// Case Tables
// ============================================================

// CaseStatus is the case lifecycle state
type CaseStatus string

const (
	CasePending  CaseStatus = "Pending"
	CaseActive   CaseStatus = "Active"
	CaseRejected CaseStatus = "Rejected"
	CaseClosed   CaseStatus = "Closed"
)

// Payment status values on a case
const (
	PaymentUnpaid      = "Unpaid"
	PaymentAdvancePaid = "AdvancePaid"
	PaymentFullyPaid   = "FullyPaid"
)

// Valid reports whether s is a known lifecycle state
func (s CaseStatus) Valid() bool {
	switch s {
	case CasePending, CaseActive, CaseRejected, CaseClosed:
		return true
	}
	return false
}

// Case represents cases table
type Case struct {
	ID                   uuid.UUID  `gorm:"type:char(36);primaryKey" json:"id"`
	CaseTitle            string     `gorm:"size:250;not null" json:"case_title"`
	CaseType             string     `gorm:"size:50;not null" json:"case_type"`
	Description          string     `gorm:"type:text" json:"description"`
	Status               CaseStatus `gorm:"size:20;default:'Pending';index" json:"status"`
	StartDate            time.Time  `gorm:"not null" json:"start_date"`
	EndDate              *time.Time `json:"end_date"`
	TotalFee             float64    `gorm:"type:decimal(18,2);not null" json:"total_fee"`
	PaymentStatus        string     `gorm:"size:20;default:'Unpaid'" json:"payment_status"`
	AdminSharePercentage float64    `gorm:"type:decimal(5,2);default:10" json:"admin_share_percentage"`
	ClientID             uint       `gorm:"index;not null" json:"client_id"`
	LawyerID             uint       `gorm:"index;not null" json:"lawyer_id"`
	CreatedAt            time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	Client User `gorm:"foreignKey:ClientID" json:"-"`
	Lawyer User `gorm:"foreignKey:LawyerID" json:"-"`
}

func (Case) TableName() string {
	return "cases"
}

func (c *Case) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// CaseResponse DTO
type CaseResponse struct {
	ID                   uuid.UUID  `json:"id"`
	CaseTitle            string     `json:"case_title"`
	CaseType             string     `json:"case_type"`
	Description          string     `json:"description"`
	Status               CaseStatus `json:"status"`
	StartDate            time.Time  `json:"start_date"`
	EndDate              *time.Time `json:"end_date"`
	TotalFee             float64    `json:"total_fee"`
	PaymentStatus        string     `json:"payment_status"`
	AdminSharePercentage float64    `json:"admin_share_percentage"`
	ClientID             uint       `json:"client_id"`
	LawyerID             uint       `json:"lawyer_id"`
}

func (c *Case) ToResponse() *CaseResponse {
	return &CaseResponse{
		ID:                   c.ID,
		CaseTitle:            c.CaseTitle,
		CaseType:             c.CaseType,
		Description:          c.Description,
		Status:               c.Status,
		StartDate:            c.StartDate,
		EndDate:              c.EndDate,
		TotalFee:             c.TotalFee,
		PaymentStatus:        c.PaymentStatus,
		AdminSharePercentage: c.AdminSharePercentage,
		ClientID:             c.ClientID,
		LawyerID:             c.LawyerID,
	}
}

// Hearing represents hearings table
type Hearing struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CaseID       uuid.UUID `gorm:"type:char(36);index;not null" json:"case_id"`
	HearingDate  time.Time `gorm:"not null;index" json:"hearing_date"`
	CourtName    string    `gorm:"size:150;not null" json:"court_name"`
	Notes        string    `gorm:"type:text" json:"notes"`
	ReminderSent bool      `gorm:"default:false" json:"reminder_sent"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`

	Case Case `gorm:"foreignKey:CaseID" json:"-"`
}

func (Hearing) TableName() string {
	return "hearings"
}

// CaseDocument represents case_documents table
type CaseDocument struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CaseID     uuid.UUID `gorm:"type:char(36);index;not null" json:"case_id"`
	FileName   string    `gorm:"size:250;not null" json:"file_name"`
	FilePath   string    `gorm:"size:500;not null" json:"file_path"`
	UploadedBy string    `gorm:"size:250" json:"uploaded_by"`
	UploadedAt time.Time `gorm:"autoCreateTime" json:"uploaded_at"`

	Case Case `gorm:"foreignKey:CaseID" json:"-"`
}

func (CaseDocument) TableName() string {
	return "case_documents"
}

// ============================================================
// Payment Tables
// ============================================================

// Payment represents payments table. Rows are append-only: each settled
// stage adds a new record, prior records are never updated.
type Payment struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	CaseID        uuid.UUID `gorm:"type:char(36);index;not null" json:"case_id"`
	TransactionID string    `gorm:"size:64;uniqueIndex;not null" json:"transaction_id"`
	Amount        float64   `gorm:"type:decimal(18,2);not null" json:"amount"`
	AdminShare    float64   `gorm:"type:decimal(18,2);not null" json:"admin_share"`
	LawyerShare   float64   `gorm:"type:decimal(18,2);not null" json:"lawyer_share"`
	PaymentMethod string    `gorm:"size:50" json:"payment_method"`
	PaymentType   string    `gorm:"size:20;not null" json:"payment_type"`
	PaymentDate   time.Time `gorm:"autoCreateTime" json:"payment_date"`

	Case Case `gorm:"foreignKey:CaseID" json:"-"`
}

func (Payment) TableName() string {
	return "payments"
}

// ============================================================
// Notification Tables
// ============================================================

// NotificationItem represents notifications table.
// ForUserID nil means a broadcast to all admins.
type NotificationItem struct {
	ID        uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	Title     string    `gorm:"size:250;not null" json:"title"`
	Message   string    `gorm:"type:text" json:"message"`
	ForUserID *uint     `gorm:"index" json:"for_user_id"`
	IsRead    bool      `gorm:"default:false" json:"is_read"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (NotificationItem) TableName() string {
	return "notifications"
}

func (n *NotificationItem) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}

// AutoMigrate creates/updates all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&UserProfile{},
		&PendingUser{},
		&PasswordReset{},
		&Case{},
		&Hearing{},
		&CaseDocument{},
		&Payment{},
		&NotificationItem{},
	)
}
