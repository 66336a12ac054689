package service_test

import (
	"fmt"
	"os"
	"testing"

	"github.com/ferromax/backoffice-api/internal/database"
	"github.com/ferromax/backoffice-api/internal/domain"
	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// setupTestDB connects to the test postgres instance, or skips the test
// when none is reachable. Schema comes from AutoMigrate so the tests do
// not depend on the migration files.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	host := envOrDefault("DATABASE_HOST", "localhost")
	port := envOrDefault("DATABASE_PORT", "5432")
	user := envOrDefault("DATABASE_USER", "backoffice_user")
	password := envOrDefault("DATABASE_PASSWORD", "backoffice_password")
	dbname := envOrDefault("DATABASE_NAME", "backoffice_test")

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
		host, port, user, password, dbname)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Skipf("test database unavailable: %v", err)
	}
	if sqlDB, err := db.DB(); err != nil || sqlDB.Ping() != nil {
		t.Skipf("test database unreachable")
	}

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("auto-migrate failed: %v", err)
	}

	t.Cleanup(func() { cleanupTestData(t, db) })
	return db
}

func cleanupTestData(t *testing.T, db *gorm.DB) {
	t.Helper()
	// Delete in dependency order
	tables := []string{
		"break_logs",
		"attendances",
		"sales_order_items",
		"sales_orders",
		"quotation_items",
		"quotations",
		"stock_movements",
		"products",
		"contact_histories",
		"activity_logs",
		"inquiries",
		"leads",
		"clients",
		"companies",
		"documents",
		"document_categories",
		"marketing_insights",
		"sequences",
		"users",
		"work_schedules",
	}
	for _, table := range tables {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			t.Logf("could not clean table %s: %v", table, err)
		}
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func createTestCompany(t *testing.T, db *gorm.DB, name string) *domain.Company {
	t.Helper()
	company := &domain.Company{Name: name, IsActive: true}
	if err := db.Omit(clause.Associations).Create(company).Error; err != nil {
		t.Fatalf("create test company: %v", err)
	}
	return company
}

func createTestLead(t *testing.T, db *gorm.DB, companyID uuid.UUID, status domain.LeadStatus) *domain.Lead {
	t.Helper()
	lead := &domain.Lead{
		CompanyID:     companyID,
		ContactPerson: "Test Contact",
		Status:        status,
	}
	if err := db.Omit(clause.Associations).Create(lead).Error; err != nil {
		t.Fatalf("create test lead: %v", err)
	}
	return lead
}
