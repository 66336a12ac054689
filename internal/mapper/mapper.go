package mapper

import (
	"github.com/ferromax/backoffice-api/internal/domain"
)

// ToAttendanceDTO converts Attendance to AttendanceDTO with computed
// break time
func ToAttendanceDTO(record *domain.Attendance) domain.AttendanceDTO {
	var breakHours float64
	for _, b := range record.Breaks {
		breakHours += b.Duration().Hours()
	}

	dto := domain.AttendanceDTO{
		ID:         record.ID,
		UserID:     record.UserID,
		Date:       record.Date.Format("2006-01-02"),
		ClockIn:    record.ClockIn,
		ClockOut:   record.ClockOut,
		Status:     record.Status,
		TotalHours: record.TotalHours,
		BreakHours: breakHours,
		Breaks:     record.Breaks,
	}
	if record.User != nil {
		dto.UserName = record.User.FullName()
	}
	return dto
}

// QuotationCustomerView derives the recipient block for a quotation.
// The linked client wins over the lead. The second return value is
// false when neither reference resolves.
func QuotationCustomerView(q *domain.Quotation) (*domain.QuotationCustomerView, bool) {
	switch {
	case q.ClientID != nil && q.Client != nil:
		return &domain.QuotationCustomerView{
			Name:          q.Client.Name,
			ContactPerson: q.Client.ContactPerson,
			Email:         q.Client.Email,
			Phone:         q.Client.Phone,
			Address:       q.Client.BillingAddress,
		}, true
	case q.LeadID != nil && q.Lead != nil:
		name := q.Lead.ContactPerson
		if q.Lead.Company != nil {
			name = q.Lead.Company.Name
		}
		return &domain.QuotationCustomerView{
			Name:          name,
			ContactPerson: q.Lead.ContactPerson,
			Email:         q.Lead.Email,
			Phone:         q.Lead.Phone,
		}, true
	default:
		return nil, false
	}
}
