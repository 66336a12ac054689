package mapper_test

import (
	"testing"

	"github.com/ferromax/backoffice-api/internal/domain"
	"github.com/ferromax/backoffice-api/internal/mapper"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuotationCustomerView_ClientWins(t *testing.T) {
	clientID := uuid.New()
	leadID := uuid.New()
	q := &domain.Quotation{
		ClientID: &clientID,
		Client: &domain.Client{
			Name:           "Acme Builders",
			ContactPerson:  "Jo Reyes",
			Email:          "jo@acme.example",
			Phone:          "0917-555-0001",
			BillingAddress: "12 Quarry Road",
		},
		LeadID: &leadID,
		Lead: &domain.Lead{
			ContactPerson: "Someone Else",
		},
	}

	view, ok := mapper.QuotationCustomerView(q)
	require.True(t, ok)
	assert.Equal(t, "Acme Builders", view.Name)
	assert.Equal(t, "Jo Reyes", view.ContactPerson)
	assert.Equal(t, "jo@acme.example", view.Email)
	assert.Equal(t, "12 Quarry Road", view.Address)
}

func TestQuotationCustomerView_LeadFallback(t *testing.T) {
	leadID := uuid.New()
	q := &domain.Quotation{
		LeadID: &leadID,
		Lead: &domain.Lead{
			ContactPerson: "Mar Santos",
			Email:         "mar@example.com",
			Phone:         "0917-555-0002",
			Company:       &domain.Company{Name: "Santos Hardware"},
		},
	}

	view, ok := mapper.QuotationCustomerView(q)
	require.True(t, ok)
	assert.Equal(t, "Santos Hardware", view.Name)
	assert.Equal(t, "Mar Santos", view.ContactPerson)
}

func TestQuotationCustomerView_LeadWithoutCompany(t *testing.T) {
	leadID := uuid.New()
	q := &domain.Quotation{
		LeadID: &leadID,
		Lead:   &domain.Lead{ContactPerson: "Mar Santos"},
	}

	view, ok := mapper.QuotationCustomerView(q)
	require.True(t, ok)
	assert.Equal(t, "Mar Santos", view.Name)
}

func TestQuotationCustomerView_NoReference(t *testing.T) {
	view, ok := mapper.QuotationCustomerView(&domain.Quotation{})
	assert.False(t, ok)
	assert.Nil(t, view)
}

func TestQuotationCustomerView_DanglingReference(t *testing.T) {
	clientID := uuid.New()
	view, ok := mapper.QuotationCustomerView(&domain.Quotation{ClientID: &clientID})
	assert.False(t, ok)
	assert.Nil(t, view)
}
