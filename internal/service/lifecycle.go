package service

import "github.com/ferromax/backoffice-api/internal/domain"

// NextLeadStatus computes the lead pipeline stage implied by an inquiry
// transition. Pure function; callers persist the result only when it
// differs from the current stage.
//
// The mapping never moves a lead backwards:
//   - Quoted promotes only early-stage leads (New, Contacted) to Proposal
//   - Approved always lands on Negotiation
//   - Scheduled moves to Negotiation unless already there
//   - Fulfilled always lands on Converted
//
// Any other inquiry status leaves the lead untouched.
func NextLeadStatus(inquiryStatus domain.InquiryStatus, current domain.LeadStatus) domain.LeadStatus {
	switch inquiryStatus {
	case domain.InquiryStatusQuoted:
		if current == domain.LeadStatusNew || current == domain.LeadStatusContacted {
			return domain.LeadStatusProposal
		}
		return current
	case domain.InquiryStatusApproved:
		return domain.LeadStatusNegotiation
	case domain.InquiryStatusScheduled:
		if current != domain.LeadStatusNegotiation {
			return domain.LeadStatusNegotiation
		}
		return current
	case domain.InquiryStatusFulfilled:
		return domain.LeadStatusConverted
	default:
		return current
	}
}
