package services

import (
	"bytes"
	"context"
	"html/template"
	"time"

	"lexcase/internal/adapters/persistence/models"
	"lexcase/internal/adapters/persistence/repositories"
	"lexcase/internal/core/domain"
)

// ReportService builds the role specific dashboard summaries
type ReportService struct {
	caseRepo    *repositories.CaseRepository
	paymentRepo *repositories.PaymentRepository
	pendingRepo repositories.PendingUserRepository
	userRepo    repositories.UserRepository
}

// NewReportService creates a new report service
func NewReportService(
	caseRepo *repositories.CaseRepository,
	paymentRepo *repositories.PaymentRepository,
	pendingRepo repositories.PendingUserRepository,
	userRepo repositories.UserRepository,
) *ReportService {
	return &ReportService{
		caseRepo:    caseRepo,
		paymentRepo: paymentRepo,
		pendingRepo: pendingRepo,
		userRepo:    userRepo,
	}
}

// CaseCounts is a per status case tally
type CaseCounts struct {
	Total    int64 `json:"total"`
	Pending  int64 `json:"pending"`
	Active   int64 `json:"active"`
	Closed   int64 `json:"closed"`
	Rejected int64 `json:"rejected"`
}

// AdminDashboard is the firm wide overview
type AdminDashboard struct {
	Cases                CaseCounts `json:"cases"`
	TotalCollected       float64    `json:"total_collected"`
	FirmRevenue          float64    `json:"firm_revenue"`
	LawyerPayouts        float64    `json:"lawyer_payouts"`
	PendingRegistrations int        `json:"pending_registrations"`
	TotalLawyers         int        `json:"total_lawyers"`
	TotalClients         int        `json:"total_clients"`
}

// AdminDashboard builds the firm wide overview
func (s *ReportService) AdminDashboard(ctx context.Context) (*AdminDashboard, error) {
	var d AdminDashboard
	var err error

	if d.Cases.Total, err = s.caseRepo.CountAll(ctx); err != nil {
		return nil, err
	}
	statuses := []struct {
		status models.CaseStatus
		dest   *int64
	}{
		{models.CasePending, &d.Cases.Pending},
		{models.CaseActive, &d.Cases.Active},
		{models.CaseClosed, &d.Cases.Closed},
		{models.CaseRejected, &d.Cases.Rejected},
	}
	for _, s2 := range statuses {
		if *s2.dest, err = s.caseRepo.CountByStatus(ctx, s2.status); err != nil {
			return nil, err
		}
	}

	if d.TotalCollected, d.FirmRevenue, d.LawyerPayouts, err = s.paymentRepo.RevenueTotals(ctx); err != nil {
		return nil, err
	}

	pending, err := s.pendingRepo.ListUnprocessed(ctx)
	if err != nil {
		return nil, err
	}
	d.PendingRegistrations = len(pending)

	lawyers, err := s.userRepo.ListByRole(ctx, models.RoleLawyer)
	if err != nil {
		return nil, err
	}
	d.TotalLawyers = len(lawyers)

	clients, err := s.userRepo.ListByRole(ctx, models.RoleClient)
	if err != nil {
		return nil, err
	}
	d.TotalClients = len(clients)

	return &d, nil
}

// LawyerDashboard is a lawyer's personal overview
type LawyerDashboard struct {
	Cases         CaseCounts `json:"cases"`
	TotalEarnings float64    `json:"total_earnings"`
}

// LawyerDashboard builds a lawyer's overview
func (s *ReportService) LawyerDashboard(ctx context.Context, lawyerID uint) (*LawyerDashboard, error) {
	cases, err := s.caseRepo.ListByLawyer(ctx, lawyerID)
	if err != nil {
		return nil, err
	}

	var d LawyerDashboard
	d.Cases = tallyCases(cases)
	if d.TotalEarnings, err = s.paymentRepo.LawyerEarnings(ctx, lawyerID); err != nil {
		return nil, err
	}
	return &d, nil
}

// ClientDashboard is a client's personal overview
type ClientDashboard struct {
	Cases      CaseCounts `json:"cases"`
	TotalSpent float64    `json:"total_spent"`
}

// ClientDashboard builds a client's overview
func (s *ReportService) ClientDashboard(ctx context.Context, clientID uint) (*ClientDashboard, error) {
	cases, err := s.caseRepo.ListByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}

	var d ClientDashboard
	d.Cases = tallyCases(cases)
	if d.TotalSpent, err = s.paymentRepo.ClientSpending(ctx, clientID); err != nil {
		return nil, err
	}
	return &d, nil
}

type reportLine struct {
	Date        string
	CaseTitle   string
	Stage       string
	Amount      float64
	AdminShare  float64
	LawyerShare float64
}

type reportView struct {
	From         string
	To           string
	GeneratedAt  string
	ShowAdminCut bool
	Lines        []reportLine
	TotalAmount  float64
	TotalAdmin   float64
	TotalLawyer  float64
}

// FinancialReport renders the collections of a date range as an HTML
// document. Admins see the whole firm with the firm cut, lawyers see
// only their own cases and shares.
func (s *ReportService) FinancialReport(ctx context.Context, from, to time.Time, actorID uint, role string) ([]byte, error) {
	if !to.After(from) {
		return nil, domain.RuleErrorf("the report range end must be after its start")
	}

	lawyerID := uint(0)
	if role == models.RoleLawyer {
		lawyerID = actorID
	}
	payments, err := s.paymentRepo.ListBetween(ctx, from, to, lawyerID)
	if err != nil {
		return nil, err
	}

	view := reportView{
		From:         from.Format("02 Jan 2006"),
		To:           to.Format("02 Jan 2006"),
		GeneratedAt:  time.Now().Format("02 Jan 2006 15:04"),
		ShowAdminCut: role == models.RoleAdmin,
	}
	for _, p := range payments {
		view.TotalAmount += p.Amount
		view.TotalAdmin += p.AdminShare
		view.TotalLawyer += p.LawyerShare
		view.Lines = append(view.Lines, reportLine{
			Date:        p.PaymentDate.Format("02 Jan 2006"),
			CaseTitle:   p.Case.CaseTitle,
			Stage:       p.PaymentType,
			Amount:      p.Amount,
			AdminShare:  p.AdminShare,
			LawyerShare: p.LawyerShare,
		})
	}

	var buf bytes.Buffer
	if err := reportTmpl.Execute(&buf, view); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

var reportTmpl = template.Must(template.New("report").Parse(reportTemplate))

const reportTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Financial Report {{.From}} to {{.To}}</title>
<style>
body { font-family: Arial, sans-serif; margin: 40px; color: #222; }
h1 { font-size: 20px; border-bottom: 2px solid #222; padding-bottom: 8px; }
table { border-collapse: collapse; width: 100%; margin-top: 16px; }
th, td { border: 1px solid #999; padding: 6px 10px; text-align: left; }
th { background: #eee; }
.totals { margin-top: 16px; font-size: 14px; }
</style>
</head>
<body>
<h1>LexCase Chambers - Financial Report</h1>
<p>Period: {{.From}} to {{.To}}. Generated {{.GeneratedAt}}.</p>
<table>
<tr>
<th>Date</th><th>Case</th><th>Stage</th><th>Amount</th>
<th>Lawyer Share</th>
{{if .ShowAdminCut}}<th>Firm Share</th>{{end}}
</tr>
{{range .Lines}}
<tr>
<td>{{.Date}}</td><td>{{.CaseTitle}}</td><td>{{.Stage}}</td><td>{{printf "%.2f" .Amount}}</td>
<td>{{printf "%.2f" .LawyerShare}}</td>
{{if $.ShowAdminCut}}<td>{{printf "%.2f" .AdminShare}}</td>{{end}}
</tr>
{{end}}
</table>
<div class="totals">
<p>Total collected: {{printf "%.2f" .TotalAmount}}</p>
<p>Total lawyer shares: {{printf "%.2f" .TotalLawyer}}</p>
{{if .ShowAdminCut}}<p>Total firm share: {{printf "%.2f" .TotalAdmin}}</p>{{end}}
</div>
</body>
</html>`

func tallyCases(cases []*models.Case) CaseCounts {
	counts := CaseCounts{Total: int64(len(cases))}
	for _, c := range cases {
		switch c.Status {
		case models.CasePending:
			counts.Pending++
		case models.CaseActive:
			counts.Active++
		case models.CaseClosed:
			counts.Closed++
		case models.CaseRejected:
			counts.Rejected++
		}
	}
	return counts
}
