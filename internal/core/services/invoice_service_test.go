package services

import (
	"bytes"
	"html/template"
	"testing"

	"lexcase/internal/adapters/persistence/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderInvoice(t *testing.T, view invoiceView) string {
	t.Helper()
	tmpl := template.Must(template.New("invoice").Parse(invoiceTemplate))
	var buf bytes.Buffer
	require.NoError(t, tmpl.Execute(&buf, view))
	return buf.String()
}

func TestInvoiceTemplate(t *testing.T) {
	view := invoiceView{
		CaseTitle:     "Ahmed vs Rahman",
		CaseType:      "Civil",
		ClientName:    "Karim Ahmed",
		LawyerName:    "Adv. Rahim Uddin",
		Status:        models.CaseActive,
		PaymentStatus: models.PaymentAdvancePaid,
		TotalFee:      50000,
		TotalPaid:     25000,
		Outstanding:   25000,
		GeneratedAt:   "31 Aug 2026 10:00",
		Lines: []invoiceLine{
			{Date: "15 Aug 2026", Type: "Advance", Method: "VISA", Amount: 25000, AdminShare: 0, LawyerShare: 25000},
		},
	}

	t.Run("admin sees both shares", func(t *testing.T) {
		view.ShowShares = true
		view.ShowAdminCut = true
		html := renderInvoice(t, view)
		assert.Contains(t, html, "Ahmed vs Rahman")
		assert.Contains(t, html, "Lawyer Share")
		assert.Contains(t, html, "Firm Share")
		assert.Contains(t, html, "25000.00")
	})

	t.Run("lawyer sees own share only", func(t *testing.T) {
		view.ShowShares = true
		view.ShowAdminCut = false
		html := renderInvoice(t, view)
		assert.Contains(t, html, "Lawyer Share")
		assert.NotContains(t, html, "Firm Share")
	})

	t.Run("client sees amounts only", func(t *testing.T) {
		view.ShowShares = false
		view.ShowAdminCut = false
		html := renderInvoice(t, view)
		assert.NotContains(t, html, "Lawyer Share")
		assert.NotContains(t, html, "Firm Share")
		assert.Contains(t, html, "Outstanding: 25000.00")
	})
}
