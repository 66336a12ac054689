package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/ferromax/backoffice-api/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AttendanceRepository handles database operations for attendance records
type AttendanceRepository struct {
	db *gorm.DB
}

// NewAttendanceRepository creates a new AttendanceRepository
func NewAttendanceRepository(db *gorm.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// Create inserts a new attendance record
func (r *AttendanceRepository) Create(ctx context.Context, record *domain.Attendance) error {
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("failed to create attendance record: %w", err)
	}
	return nil
}

// GetByID retrieves an attendance record with its breaks
func (r *AttendanceRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Attendance, error) {
	var record domain.Attendance
	err := r.db.WithContext(ctx).
		Preload("Breaks").
		First(&record, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// GetByUserAndDate retrieves the record for a user on a calendar date
func (r *AttendanceRepository) GetByUserAndDate(ctx context.Context, userID uuid.UUID, date time.Time) (*domain.Attendance, error) {
	var record domain.Attendance
	err := r.db.WithContext(ctx).
		Preload("Breaks").
		Where("user_id = ? AND date = ?", userID, date.Format("2006-01-02")).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// ListByUser returns records for a user in a date range, newest first
func (r *AttendanceRepository) ListByUser(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.Attendance, error) {
	var records []domain.Attendance
	err := r.db.WithContext(ctx).
		Preload("Breaks").
		Preload("User").
		Where("user_id = ? AND date >= ? AND date <= ?", userID, from.Format("2006-01-02"), to.Format("2006-01-02")).
		Order("date DESC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}
	return records, nil
}

// ListByDate returns all records for a calendar date
func (r *AttendanceRepository) ListByDate(ctx context.Context, date time.Time) ([]domain.Attendance, error) {
	var records []domain.Attendance
	err := r.db.WithContext(ctx).
		Preload("Breaks").
		Preload("User").
		Where("date = ?", date.Format("2006-01-02")).
		Order("clock_in ASC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}
	return records, nil
}

// Update saves attendance changes (breaks are not touched)
func (r *AttendanceRepository) Update(ctx context.Context, record *domain.Attendance) error {
	if err := r.db.WithContext(ctx).Omit("Breaks").Save(record).Error; err != nil {
		return fmt.Errorf("failed to update attendance record: %w", err)
	}
	return nil
}

// CreateBreak inserts a break row
func (r *AttendanceRepository) CreateBreak(ctx context.Context, brk *domain.BreakLog) error {
	if err := r.db.WithContext(ctx).Create(brk).Error; err != nil {
		return fmt.Errorf("failed to create break: %w", err)
	}
	return nil
}

// UpdateBreak saves break changes
func (r *AttendanceRepository) UpdateBreak(ctx context.Context, brk *domain.BreakLog) error {
	if err := r.db.WithContext(ctx).Save(brk).Error; err != nil {
		return fmt.Errorf("failed to update break: %w", err)
	}
	return nil
}

// OpenBreak returns the open break on a record, or gorm.ErrRecordNotFound
func (r *AttendanceRepository) OpenBreak(ctx context.Context, attendanceID uuid.UUID) (*domain.BreakLog, error) {
	var brk domain.BreakLog
	err := r.db.WithContext(ctx).
		Where("attendance_id = ? AND end_time IS NULL", attendanceID).
		First(&brk).Error
	if err != nil {
		return nil, err
	}
	return &brk, nil
}

// CountPresentToday returns the number of records for today that are not logged out
func (r *AttendanceRepository) CountPresentToday(ctx context.Context, today time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Attendance{}).
		Where("date = ? AND status <> ?", today.Format("2006-01-02"), domain.AttendanceLoggedOut).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count present users: %w", err)
	}
	return count, nil
}
