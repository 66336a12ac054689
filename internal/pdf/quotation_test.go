package pdf_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/ferromax/backoffice-api/internal/domain"
	"github.com/ferromax/backoffice-api/internal/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuotationRenderer_Render(t *testing.T) {
	renderer := pdf.NewQuotationRenderer("Ferromax Trading Corp.", "Warehouse 3, MacArthur Highway")

	q := &domain.Quotation{
		QuotationNumber: "QTN-2026-0001",
		Status:          domain.QuotationStatusDraft,
		IssueDate:       time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		Items: []domain.QuotationItem{
			{Description: "Deformed rebar 12mm x 6m", Quantity: 200, Unit: "pc", UnitPrice: 185.50, LineTotal: 37100},
			{Description: "Portland cement 40kg", Quantity: 50, Unit: "bag", UnitPrice: 260, LineTotal: 13000},
		},
		Subtotal:  50100,
		TaxRate:   12,
		TaxAmount: 6012,
		Total:     56112,
	}
	customer := &domain.QuotationCustomerView{
		Name:          "Acme Builders",
		ContactPerson: "Jo Reyes",
		Email:         "jo@acme.example",
	}

	var buf bytes.Buffer
	err := renderer.Render(q, customer, &buf)
	require.NoError(t, err)

	out := buf.Bytes()
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "output should be a PDF document")
	assert.Greater(t, len(out), 1000)
}

func TestQuotationRenderer_EmptyItems(t *testing.T) {
	renderer := pdf.NewQuotationRenderer("Ferromax Trading Corp.", "")

	q := &domain.Quotation{
		QuotationNumber: "QTN-2026-0002",
		IssueDate:       time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	}

	var buf bytes.Buffer
	err := renderer.Render(q, &domain.QuotationCustomerView{Name: "Acme"}, &buf)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}
