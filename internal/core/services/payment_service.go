package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"lexcase/internal/adapters/persistence/models"
	"lexcase/internal/adapters/persistence/repositories"
	"lexcase/internal/config"
	"lexcase/internal/core/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PaymentService computes payable installments, opens gateway
// sessions and reconciles gateway callbacks into payment records
type PaymentService struct {
	paymentRepo     repositories.PaymentStore
	caseRepo        repositories.CaseStore
	profileRepo     repositories.ProfileRepository
	userRepo        repositories.UserRepository
	notificationSvc Notifier
	gatewaySvc      *GatewayService
	pending         *pendingCache
	policy          config.PolicyConfig
	baseURL         string
}

// NewPaymentService creates a new payment service
func NewPaymentService(
	paymentRepo repositories.PaymentStore,
	caseRepo repositories.CaseStore,
	profileRepo repositories.ProfileRepository,
	userRepo repositories.UserRepository,
	notificationSvc Notifier,
	gatewaySvc *GatewayService,
	policy config.PolicyConfig,
	baseURL string,
) *PaymentService {
	return &PaymentService{
		paymentRepo:     paymentRepo,
		caseRepo:        caseRepo,
		profileRepo:     profileRepo,
		userRepo:        userRepo,
		notificationSvc: notificationSvc,
		gatewaySvc:      gatewaySvc,
		pending:         newPendingCache(30 * time.Minute),
		policy:          policy,
		baseURL:         strings.TrimRight(baseURL, "/"),
	}
}

// NextPayable resolves which stage is due on a case and how much. A
// fully paid case has nothing payable.
func NextPayable(paymentStatus string, requestFull bool, totalFee, advancePercent float64) (string, float64, error) {
	switch paymentStatus {
	case models.PaymentUnpaid:
		if requestFull {
			return domain.StageFull, domain.PayableAmount(totalFee, advancePercent, domain.StageFull), nil
		}
		return domain.StageAdvance, domain.PayableAmount(totalFee, advancePercent, domain.StageAdvance), nil
	case models.PaymentAdvancePaid:
		return domain.StageFinal, domain.PayableAmount(totalFee, advancePercent, domain.StageFinal), nil
	case models.PaymentFullyPaid:
		return "", 0, domain.RuleErrorf("the case fee is fully settled, no further payment is due")
	default:
		return "", 0, fmt.Errorf("%w: unknown payment status %q", domain.ErrInvalidInput, paymentStatus)
	}
}

// PayableQuote is what the client sees before being redirected
type PayableQuote struct {
	CaseID        uuid.UUID `json:"case_id"`
	CaseTitle     string    `json:"case_title"`
	TotalFee      float64   `json:"total_fee"`
	PaymentStatus string    `json:"payment_status"`
	Stage         string    `json:"stage"`
	Amount        float64   `json:"amount"`
}

// GetPayable quotes the installment due on a case for its client
func (s *PaymentService) GetPayable(ctx context.Context, caseID uuid.UUID, requestFull bool, actorID uint, role string) (*PayableQuote, error) {
	c, err := s.caseRepo.GetByID(ctx, caseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if err := authorizeCaseAccess(c, actorID, role); err != nil {
		return nil, err
	}

	stage, amount, err := NextPayable(c.PaymentStatus, requestFull, c.TotalFee, s.policy.AdvancePercent)
	if err != nil {
		return nil, err
	}
	return &PayableQuote{
		CaseID:        c.ID,
		CaseTitle:     c.CaseTitle,
		TotalFee:      c.TotalFee,
		PaymentStatus: c.PaymentStatus,
		Stage:         stage,
		Amount:        amount,
	}, nil
}

// Initiate opens a gateway checkout session for the installment due
// and returns the redirect URL. Only the case's client may pay.
func (s *PaymentService) Initiate(ctx context.Context, caseID uuid.UUID, requestFull bool, clientID uint) (string, error) {
	c, err := s.caseRepo.GetByID(ctx, caseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", domain.ErrNotFound
		}
		return "", err
	}
	if c.ClientID != clientID {
		return "", domain.ErrAccessDenied
	}

	stage, amount, err := NextPayable(c.PaymentStatus, requestFull, c.TotalFee, s.policy.AdvancePercent)
	if err != nil {
		return "", err
	}
	if amount <= 0 {
		return "", domain.RuleErrorf("the case has no fee to collect")
	}

	client, err := s.userRepo.GetByID(ctx, clientID)
	if err != nil {
		return "", err
	}
	customerName := client.Email
	customerPhone := "N/A"
	if profile, err := s.profileRepo.GetByUserID(ctx, clientID); err == nil {
		customerName = profile.FullName
		if profile.Phone != "" {
			customerPhone = profile.Phone
		}
	}

	transactionID := "LEX-" + strings.ToUpper(uuid.New().String()[:12])
	redirectURL, err := s.gatewaySvc.Initiate(ctx, GatewayRequest{
		Amount:        amount,
		TransactionID: transactionID,
		SuccessURL:    s.baseURL + "/api/v1/payments/callback/success",
		FailURL:       s.baseURL + "/api/v1/payments/callback/fail",
		CancelURL:     s.baseURL + "/api/v1/payments/callback/cancel",
		CustomerName:  customerName,
		CustomerEmail: client.Email,
		CustomerPhone: customerPhone,
		ProductName:   "Legal fee: " + c.CaseTitle,
		CaseID:        c.ID.String(),
		Stage:         stage,
	})
	if err != nil {
		return "", err
	}

	// Keep the initiation context so the callback can recover the
	// case and stage even when the gateway drops the pass-through
	// fields
	s.pending.Put(transactionID, c.ID.String(), stage)

	zap.S().Infow("payment initiated",
		"case_id", c.ID,
		"tran_id", transactionID,
		"stage", stage,
		"amount", amount,
	)
	return redirectURL, nil
}

// CallbackInput is what the gateway posts back after checkout
type CallbackInput struct {
	TransactionID string  // tran_id
	Amount        float64 // amount as collected by the gateway
	CaseID        string  // value_a pass-through, may be empty
	Stage         string  // value_b pass-through, may be empty
	CardType      string  // payment method descriptor
}

// HandleSuccess reconciles a successful gateway callback into a
// payment record. The whole reconciliation runs in one transaction
// against a locked case row and is idempotent per transaction id, a
// replayed callback returns the already posted record and writes
// nothing.
func (s *PaymentService) HandleSuccess(ctx context.Context, cb CallbackInput) (*models.Payment, error) {
	if cb.TransactionID == "" {
		return nil, fmt.Errorf("%w: missing transaction id", domain.ErrInvalidInput)
	}

	caseIDStr, stage := cb.CaseID, cb.Stage
	if caseIDStr == "" || stage == "" {
		cachedCase, cachedStage, ok := s.pending.Get(cb.TransactionID)
		if !ok {
			return nil, fmt.Errorf("%w: callback carries no case context and no pending session matches", domain.ErrInvalidInput)
		}
		caseIDStr, stage = cachedCase, cachedStage
	}

	caseID, err := uuid.Parse(caseIDStr)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed case id in callback", domain.ErrInvalidInput)
	}

	var payment *models.Payment
	var c *models.Case
	err = s.caseRepo.Transaction(ctx, func(tx *gorm.DB) error {
		var err error
		c, err = s.caseRepo.GetByIDForUpdate(ctx, tx, caseID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}

		exists, err := s.paymentRepo.ExistsByTransactionID(ctx, tx, cb.TransactionID)
		if err != nil {
			return err
		}
		if exists {
			return nil
		}

		// The callback must settle the installment the case is
		// actually waiting for, a stage out of order, say Final on an
		// unpaid case, never posts
		dueStage, dueAmount, err := NextPayable(c.PaymentStatus, stage == domain.StageFull, c.TotalFee, s.policy.AdvancePercent)
		if err != nil {
			return err
		}
		if stage != dueStage {
			return domain.RuleErrorf("the callback settles the %s stage but the %s installment is due", stage, dueStage)
		}

		// The gateway is authoritative for the collected figure,
		// everything else is recomputed from case state
		paid := cb.Amount
		if paid <= 0 {
			paid = dueAmount
		}

		adminShare, lawyerShare := domain.SplitInstallment(paid, c.TotalFee, c.AdminSharePercentage, stage)

		payment = &models.Payment{
			CaseID:        c.ID,
			TransactionID: cb.TransactionID,
			Amount:        paid,
			AdminShare:    adminShare,
			LawyerShare:   lawyerShare,
			PaymentMethod: cb.CardType,
			PaymentType:   stage,
		}
		if err := s.paymentRepo.CreateTx(ctx, tx, payment); err != nil {
			return err
		}

		if stage == domain.StageAdvance {
			c.PaymentStatus = models.PaymentAdvancePaid
		} else {
			c.PaymentStatus = models.PaymentFullyPaid
		}
		return s.caseRepo.UpdateTx(ctx, tx, c)
	})
	if err != nil {
		return nil, err
	}

	s.pending.Delete(cb.TransactionID)

	if payment == nil {
		// Replayed callback, return the record posted the first time
		zap.S().Infow("duplicate payment callback ignored", "tran_id", cb.TransactionID)
		return s.paymentRepo.GetByTransactionID(ctx, cb.TransactionID)
	}

	zap.S().Infow("payment reconciled",
		"case_id", c.ID,
		"tran_id", payment.TransactionID,
		"stage", payment.PaymentType,
		"amount", payment.Amount,
		"admin_share", payment.AdminShare,
		"lawyer_share", payment.LawyerShare,
	)

	s.notificationSvc.NotifyAdmins(ctx, "Payment Received",
		fmt.Sprintf("%.2f was received on the case %q (%s stage).", payment.Amount, c.CaseTitle, payment.PaymentType))
	if c.LawyerID != 0 {
		s.notificationSvc.NotifyUser(ctx, c.LawyerID, "Payment Received",
			fmt.Sprintf("The client paid %.2f on the case %q. Your share is %.2f.", payment.Amount, c.CaseTitle, payment.LawyerShare))
	}

	return payment, nil
}

// HandleFailure records a failed or cancelled checkout. Nothing is
// mutated, the pending session is dropped so the transaction id cannot
// be replayed against the cache.
func (s *PaymentService) HandleFailure(transactionID, reason string) error {
	s.pending.Delete(transactionID)
	zap.S().Infow("payment attempt did not complete", "tran_id", transactionID, "reason", reason)
	return domain.RuleErrorf("the payment was not completed: %s", reason)
}

// ListPayments returns payments visible to the acting user
func (s *PaymentService) ListPayments(ctx context.Context, actorID uint, role string, offset, limit int) ([]*models.Payment, int64, error) {
	switch role {
	case models.RoleAdmin:
		return s.paymentRepo.ListAll(ctx, offset, limit)
	case models.RoleLawyer:
		payments, err := s.paymentRepo.ListByLawyer(ctx, actorID)
		return payments, int64(len(payments)), err
	default:
		payments, err := s.paymentRepo.ListByClient(ctx, actorID)
		return payments, int64(len(payments)), err
	}
}

// ListByCase returns a case's payments after an access check
func (s *PaymentService) ListByCase(ctx context.Context, caseID uuid.UUID, actorID uint, role string) ([]*models.Payment, error) {
	c, err := s.caseRepo.GetByID(ctx, caseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if err := authorizeCaseAccess(c, actorID, role); err != nil {
		return nil, err
	}
	return s.paymentRepo.ListByCase(ctx, caseID)
}
