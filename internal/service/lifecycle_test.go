package service_test

import (
	"testing"

	"github.com/ferromax/backoffice-api/internal/domain"
	"github.com/ferromax/backoffice-api/internal/service"
	"github.com/stretchr/testify/assert"
)

func TestNextLeadStatus(t *testing.T) {
	tests := []struct {
		name     string
		inquiry  domain.InquiryStatus
		current  domain.LeadStatus
		expected domain.LeadStatus
	}{
		{
			name:     "quoted promotes new lead to proposal",
			inquiry:  domain.InquiryStatusQuoted,
			current:  domain.LeadStatusNew,
			expected: domain.LeadStatusProposal,
		},
		{
			name:     "quoted promotes contacted lead to proposal",
			inquiry:  domain.InquiryStatusQuoted,
			current:  domain.LeadStatusContacted,
			expected: domain.LeadStatusProposal,
		},
		{
			name:     "quoted never demotes a negotiating lead",
			inquiry:  domain.InquiryStatusQuoted,
			current:  domain.LeadStatusNegotiation,
			expected: domain.LeadStatusNegotiation,
		},
		{
			name:     "approved lands on negotiation",
			inquiry:  domain.InquiryStatusApproved,
			current:  domain.LeadStatusProposal,
			expected: domain.LeadStatusNegotiation,
		},
		{
			name:     "scheduled moves to negotiation",
			inquiry:  domain.InquiryStatusScheduled,
			current:  domain.LeadStatusProposal,
			expected: domain.LeadStatusNegotiation,
		},
		{
			name:     "scheduled keeps negotiation",
			inquiry:  domain.InquiryStatusScheduled,
			current:  domain.LeadStatusNegotiation,
			expected: domain.LeadStatusNegotiation,
		},
		{
			name:     "fulfilled converts the lead",
			inquiry:  domain.InquiryStatusFulfilled,
			current:  domain.LeadStatusNegotiation,
			expected: domain.LeadStatusConverted,
		},
		{
			name:     "cancelled leaves the lead untouched",
			inquiry:  domain.InquiryStatusCancelled,
			current:  domain.LeadStatusQualified,
			expected: domain.LeadStatusQualified,
		},
		{
			name:     "new leaves the lead untouched",
			inquiry:  domain.InquiryStatusNew,
			current:  domain.LeadStatusContacted,
			expected: domain.LeadStatusContacted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := service.NextLeadStatus(tt.inquiry, tt.current)
			assert.Equal(t, tt.expected, got)
		})
	}
}
