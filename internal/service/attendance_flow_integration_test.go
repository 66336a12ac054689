package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/ferromax/backoffice-api/internal/domain"
	"github.com/ferromax/backoffice-api/internal/repository"
	"github.com/ferromax/backoffice-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func newAttendanceService(db *gorm.DB) *service.AttendanceService {
	return service.NewAttendanceService(
		repository.NewAttendanceRepository(db),
		repository.NewWorkScheduleRepository(db),
		repository.NewUserRepository(db),
		zap.NewNop(),
	)
}

func createTestUser(t *testing.T, db *gorm.DB) *domain.User {
	t.Helper()
	user := &domain.User{
		Email:        fmt.Sprintf("worker-%d@example.com", time.Now().UnixNano()),
		PasswordHash: "x",
		FirstName:    "Test",
		LastName:     "Worker",
		IsActive:     true,
	}
	if err := db.Omit(clause.Associations).Create(user).Error; err != nil {
		t.Fatalf("create test user: %v", err)
	}
	return user
}

func TestAttendance_DailyFlow(t *testing.T) {
	db := setupTestDB(t)
	svc := newAttendanceService(db)
	ctx := context.Background()
	user := createTestUser(t, db)

	record, err := svc.ClockIn(ctx, user.ID, "192.168.1.10")
	require.NoError(t, err)
	assert.Equal(t, "192.168.1.10", record.ClockInIP)
	assert.Contains(t, []domain.AttendanceStatus{domain.AttendancePresent, domain.AttendanceLate}, record.Status)

	// Second clock-in the same day conflicts
	_, err = svc.ClockIn(ctx, user.ID, "192.168.1.10")
	assert.ErrorIs(t, err, service.ErrAlreadyClockedIn)

	_, err = svc.StartBreak(ctx, user.ID)
	require.NoError(t, err)

	// Only one break can be open
	_, err = svc.StartBreak(ctx, user.ID)
	assert.ErrorIs(t, err, service.ErrBreakOpen)

	_, err = svc.EndBreak(ctx, user.ID)
	require.NoError(t, err)

	_, err = svc.EndBreak(ctx, user.ID)
	assert.ErrorIs(t, err, service.ErrNoBreakOpen)

	closed, err := svc.ClockOut(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.AttendanceLoggedOut, closed.Status)
	require.NotNil(t, closed.ClockOut)
	assert.GreaterOrEqual(t, closed.TotalHours, 0.0)

	// Clocking out twice fails
	_, err = svc.ClockOut(ctx, user.ID)
	assert.ErrorIs(t, err, service.ErrNotClockedIn)
}

func TestAttendance_BreakRequiresOpenRecord(t *testing.T) {
	db := setupTestDB(t)
	svc := newAttendanceService(db)
	user := createTestUser(t, db)

	_, err := svc.StartBreak(context.Background(), user.ID)
	assert.ErrorIs(t, err, service.ErrNotClockedIn)
}
