package services

import (
	"bytes"
	"context"
	"errors"
	"html/template"
	"time"

	"lexcase/internal/adapters/persistence/models"
	"lexcase/internal/adapters/persistence/repositories"
	"lexcase/internal/core/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InvoiceService renders a payment statement for a case. What the
// statement shows depends on the viewer's role, clients see only what
// they paid, lawyers additionally see their share, admins see the full
// split.
type InvoiceService struct {
	caseRepo    *repositories.CaseRepository
	paymentRepo *repositories.PaymentRepository
	profileRepo repositories.ProfileRepository
	tmpl        *template.Template
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(
	caseRepo *repositories.CaseRepository,
	paymentRepo *repositories.PaymentRepository,
	profileRepo repositories.ProfileRepository,
) *InvoiceService {
	return &InvoiceService{
		caseRepo:    caseRepo,
		paymentRepo: paymentRepo,
		profileRepo: profileRepo,
		tmpl:        template.Must(template.New("invoice").Parse(invoiceTemplate)),
	}
}

type invoiceLine struct {
	Date        string
	Type        string
	Method      string
	Amount      float64
	AdminShare  float64
	LawyerShare float64
}

type invoiceView struct {
	CaseTitle     string
	CaseType      string
	ClientName    string
	LawyerName    string
	Status        models.CaseStatus
	PaymentStatus string
	TotalFee      float64
	TotalPaid     float64
	Outstanding   float64
	GeneratedAt   string
	ShowShares    bool
	ShowAdminCut  bool
	Lines         []invoiceLine
}

// Render builds the HTML statement for a case as seen by the actor
func (s *InvoiceService) Render(ctx context.Context, caseID uuid.UUID, actorID uint, role string) ([]byte, error) {
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

	payments, err := s.paymentRepo.ListByCase(ctx, caseID)
	if err != nil {
		return nil, err
	}

	view := invoiceView{
		CaseTitle:     c.CaseTitle,
		CaseType:      c.CaseType,
		Status:        c.Status,
		PaymentStatus: c.PaymentStatus,
		TotalFee:      c.TotalFee,
		GeneratedAt:   time.Now().Format("02 Jan 2006 15:04"),
		ShowShares:    role == models.RoleAdmin || role == models.RoleLawyer,
		ShowAdminCut:  role == models.RoleAdmin,
	}
	if profile, err := s.profileRepo.GetByUserID(ctx, c.ClientID); err == nil {
		view.ClientName = profile.FullName
	}
	if profile, err := s.profileRepo.GetByUserID(ctx, c.LawyerID); err == nil {
		view.LawyerName = profile.FullName
	}

	for _, p := range payments {
		view.TotalPaid += p.Amount
		view.Lines = append(view.Lines, invoiceLine{
			Date:        p.PaymentDate.Format("02 Jan 2006"),
			Type:        p.PaymentType,
			Method:      p.PaymentMethod,
			Amount:      p.Amount,
			AdminShare:  p.AdminShare,
			LawyerShare: p.LawyerShare,
		})
	}
	view.Outstanding = view.TotalFee - view.TotalPaid
	if view.Outstanding < 0 {
		view.Outstanding = 0
	}

	var buf bytes.Buffer
	if err := s.tmpl.Execute(&buf, view); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

const invoiceTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Payment Statement - {{.CaseTitle}}</title>
<style>
body { font-family: Arial, sans-serif; margin: 40px; color: #222; }
h1 { font-size: 20px; border-bottom: 2px solid #222; padding-bottom: 8px; }
table { border-collapse: collapse; width: 100%; margin-top: 16px; }
th, td { border: 1px solid #999; padding: 6px 10px; text-align: left; }
th { background: #eee; }
.meta td { border: none; padding: 2px 10px 2px 0; }
.totals { margin-top: 16px; font-size: 14px; }
</style>
</head>
<body>
<h1>LexCase Chambers - Payment Statement</h1>
<table class="meta">
<tr><td>Case</td><td>{{.CaseTitle}} ({{.CaseType}})</td></tr>
<tr><td>Client</td><td>{{.ClientName}}</td></tr>
<tr><td>Lawyer</td><td>{{.LawyerName}}</td></tr>
<tr><td>Case status</td><td>{{.Status}}</td></tr>
<tr><td>Payment status</td><td>{{.PaymentStatus}}</td></tr>
<tr><td>Generated</td><td>{{.GeneratedAt}}</td></tr>
</table>
<table>
<tr>
<th>Date</th><th>Stage</th><th>Method</th><th>Amount</th>
{{if .ShowShares}}<th>Lawyer Share</th>{{end}}
{{if .ShowAdminCut}}<th>Firm Share</th>{{end}}
</tr>
{{range .Lines}}
<tr>
<td>{{.Date}}</td><td>{{.Type}}</td><td>{{.Method}}</td><td>{{printf "%.2f" .Amount}}</td>
{{if $.ShowShares}}<td>{{printf "%.2f" .LawyerShare}}</td>{{end}}
{{if $.ShowAdminCut}}<td>{{printf "%.2f" .AdminShare}}</td>{{end}}
</tr>
{{end}}
</table>
<div class="totals">
<p>Total fee: {{printf "%.2f" .TotalFee}}</p>
<p>Total paid: {{printf "%.2f" .TotalPaid}}</p>
<p>Outstanding: {{printf "%.2f" .Outstanding}}</p>
</div>
</body>
</html>`
