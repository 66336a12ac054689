package service_test

import (
	"context"
	"testing"

	"github.com/ferromax/backoffice-api/internal/domain"
	"github.com/ferromax/backoffice-api/internal/repository"
	"github.com/ferromax/backoffice-api/internal/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func newInquiryService(db *gorm.DB) *service.InquiryService {
	return service.NewInquiryService(
		db,
		repository.NewInquiryRepository(db),
		repository.NewLeadRepository(db),
		repository.NewCompanyRepository(db),
		zap.NewNop(),
	)
}

func createTestInquiry(t *testing.T, db *gorm.DB, leadID *uuid.UUID) *domain.Inquiry {
	t.Helper()
	inquiry := &domain.Inquiry{
		CustomerName:  "Dela Cruz Construction",
		ProductType:   "Deformed rebar 16mm",
		Quantity:      500,
		Status:        domain.InquiryStatusNew,
		RelatedLeadID: leadID,
	}
	if err := db.Omit(clause.Associations).Create(inquiry).Error; err != nil {
		t.Fatalf("create test inquiry: %v", err)
	}
	return inquiry
}

func TestInquiryCreate_LinksMatchingLeadWithoutMovingIt(t *testing.T) {
	db := setupTestDB(t)
	svc := newInquiryService(db)
	ctx := context.Background()

	company := createTestCompany(t, db, "Villanueva Steel Trading")
	lead := &domain.Lead{
		CompanyID:     company.ID,
		ContactPerson: "Marites Villanueva",
		Email:         "marites@villanuevasteel.ph",
		Status:        domain.LeadStatusContacted,
		Source:        "Walk-in",
	}
	require.NoError(t, db.Omit(clause.Associations).Create(lead).Error)

	inquiry, err := svc.Create(ctx, &domain.CreateInquiryRequest{
		CustomerName: "Marites Villanueva",
		Email:        "marites@villanuevasteel.ph",
		ProductType:  "GI sheets 0.4mm",
		Quantity:     200,
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, domain.InquiryStatusNew, inquiry.Status)
	require.NotNil(t, inquiry.RelatedLeadID)
	assert.Equal(t, lead.ID, *inquiry.RelatedLeadID)

	// Intake links the lead but never moves its pipeline stage
	var reloaded domain.Lead
	require.NoError(t, db.First(&reloaded, "id = ?", lead.ID).Error)
	assert.Equal(t, domain.LeadStatusContacted, reloaded.Status)

	var historyCount int64
	require.NoError(t, db.Model(&domain.ContactHistory{}).Where("lead_id = ?", lead.ID).Count(&historyCount).Error)
	assert.Equal(t, int64(1), historyCount)

	var activityCount int64
	require.NoError(t, db.Model(&domain.ActivityLog{}).Where("lead_id = ?", lead.ID).Count(&activityCount).Error)
	assert.Equal(t, int64(0), activityCount)
}

func TestInquiryQuote_PromotesLinkedLead(t *testing.T) {
	db := setupTestDB(t)
	svc := newInquiryService(db)
	ctx := context.Background()

	company := createTestCompany(t, db, "Dela Cruz Construction")
	lead := createTestLead(t, db, company.ID, domain.LeadStatusContacted)
	inquiry := createTestInquiry(t, db, &lead.ID)

	quoted, err := svc.Quote(ctx, inquiry.ID, 92500, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.InquiryStatusQuoted, quoted.Status)
	require.NotNil(t, quoted.QuotedPrice)
	assert.InDelta(t, 92500, *quoted.QuotedPrice, 0.001)

	var reloaded domain.Lead
	require.NoError(t, db.First(&reloaded, "id = ?", lead.ID).Error)
	assert.Equal(t, domain.LeadStatusProposal, reloaded.Status)
	assert.InDelta(t, 92500, reloaded.EstimatedValue, 0.001)
	assert.NotNil(t, reloaded.LastContactDate)

	var activityCount int64
	require.NoError(t, db.Model(&domain.ActivityLog{}).Where("lead_id = ?", lead.ID).Count(&activityCount).Error)
	assert.Equal(t, int64(1), activityCount)

	var historyCount int64
	require.NoError(t, db.Model(&domain.ContactHistory{}).Where("lead_id = ?", lead.ID).Count(&historyCount).Error)
	assert.Equal(t, int64(1), historyCount)
}

func TestInquiryQuote_NeverDemotesLead(t *testing.T) {
	db := setupTestDB(t)
	svc := newInquiryService(db)
	ctx := context.Background()

	company := createTestCompany(t, db, "Santos Hardware")
	lead := createTestLead(t, db, company.ID, domain.LeadStatusNegotiation)
	inquiry := createTestInquiry(t, db, &lead.ID)

	_, err := svc.Quote(ctx, inquiry.ID, 5000, nil)
	require.NoError(t, err)

	var reloaded domain.Lead
	require.NoError(t, db.First(&reloaded, "id = ?", lead.ID).Error)
	assert.Equal(t, domain.LeadStatusNegotiation, reloaded.Status)

	// No status change, no activity entry
	var activityCount int64
	require.NoError(t, db.Model(&domain.ActivityLog{}).Where("lead_id = ?", lead.ID).Count(&activityCount).Error)
	assert.Equal(t, int64(0), activityCount)
}

func TestInquiryFulfill_ConvertsLead(t *testing.T) {
	db := setupTestDB(t)
	svc := newInquiryService(db)
	ctx := context.Background()

	company := createTestCompany(t, db, "Reyes Builders")
	lead := createTestLead(t, db, company.ID, domain.LeadStatusNegotiation)
	inquiry := createTestInquiry(t, db, &lead.ID)

	_, err := svc.Fulfill(ctx, inquiry.ID, nil)
	require.NoError(t, err)

	var reloaded domain.Lead
	require.NoError(t, db.First(&reloaded, "id = ?", lead.ID).Error)
	assert.Equal(t, domain.LeadStatusConverted, reloaded.Status)
}

func TestInquiryConvertToLead(t *testing.T) {
	db := setupTestDB(t)
	svc := newInquiryService(db)
	ctx := context.Background()

	inquiry := createTestInquiry(t, db, nil)

	resp, err := svc.ConvertToLead(ctx, inquiry.ID, nil)
	require.NoError(t, err)
	require.NotNil(t, resp.Lead)
	require.NotNil(t, resp.Company)
	assert.Equal(t, "Dela Cruz Construction's Company", resp.Company.Name)
	assert.Equal(t, domain.LeadStatusNew, resp.Lead.Status)

	var reloaded domain.Inquiry
	require.NoError(t, db.First(&reloaded, "id = ?", inquiry.ID).Error)
	require.NotNil(t, reloaded.RelatedLeadID)
	assert.Equal(t, resp.Lead.ID, *reloaded.RelatedLeadID)

	// Converting again must conflict
	_, err = svc.ConvertToLead(ctx, inquiry.ID, nil)
	assert.ErrorIs(t, err, service.ErrAlreadyLinked)
}
