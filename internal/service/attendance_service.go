package service

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/ferromax/backoffice-api/internal/domain"
	"github.com/ferromax/backoffice-api/internal/mapper"
	"github.com/ferromax/backoffice-api/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AttendanceService implements the daily time record: clock in/out,
// breaks and the attendance policy.
type AttendanceService struct {
	attendanceRepo *repository.AttendanceRepository
	scheduleRepo   *repository.WorkScheduleRepository
	userRepo       *repository.UserRepository
	logger         *zap.Logger
	now            func() time.Time
}

// NewAttendanceService creates a new AttendanceService
func NewAttendanceService(
	attendanceRepo *repository.AttendanceRepository,
	scheduleRepo *repository.WorkScheduleRepository,
	userRepo *repository.UserRepository,
	logger *zap.Logger,
) *AttendanceService {
	return &AttendanceService{
		attendanceRepo: attendanceRepo,
		scheduleRepo:   scheduleRepo,
		userRepo:       userRepo,
		logger:         logger,
		now:            time.Now,
	}
}

// ClockInStatus decides PRESENT vs LATE. A clock-in is late once it is
// more than lateThresholdMin minutes past workStart ("HH:MM") on the
// same day.
func ClockInStatus(clockIn time.Time, workStart string, lateThresholdMin int) domain.AttendanceStatus {
	start, err := time.ParseInLocation("15:04", workStart, clockIn.Location())
	if err != nil {
		return domain.AttendancePresent
	}
	deadline := time.Date(clockIn.Year(), clockIn.Month(), clockIn.Day(),
		start.Hour(), start.Minute(), 0, 0, clockIn.Location()).
		Add(time.Duration(lateThresholdMin) * time.Minute)
	if clockIn.After(deadline) {
		return domain.AttendanceLate
	}
	return domain.AttendancePresent
}

// WorkedHours computes payable hours for a finished day: the span from
// clock-in to clock-out minus all break time, floored at zero.
func WorkedHours(clockIn, clockOut time.Time, breaks []domain.BreakLog) float64 {
	gross := clockOut.Sub(clockIn)
	var onBreak time.Duration
	for _, b := range breaks {
		onBreak += b.Duration()
	}
	hours := (gross - onBreak).Hours()
	if hours < 0 {
		return 0
	}
	return hours
}

// IPAllowed reports whether remoteIP is inside the comma-separated
// allowlist. Entries may be plain addresses or CIDR blocks. An empty
// allowlist denies everything.
func IPAllowed(remoteIP string, allowlist string) bool {
	ip := net.ParseIP(remoteIP)
	if ip == nil {
		return false
	}
	for _, entry := range strings.Split(allowlist, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if strings.Contains(entry, "/") {
			_, cidr, err := net.ParseCIDR(entry)
			if err == nil && cidr.Contains(ip) {
				return true
			}
			continue
		}
		if allowed := net.ParseIP(entry); allowed != nil && allowed.Equal(ip) {
			return true
		}
	}
	return false
}

// ClockIn opens the daily time record for a user. A user can clock in
// once per calendar day. OJT accounts are pinned to their IP allowlist
// unless the schedule allows remote logins.
func (s *AttendanceService) ClockIn(ctx context.Context, userID uuid.UUID, remoteIP string) (*domain.Attendance, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user", ErrNotFound)
		}
		return nil, err
	}

	schedule, err := s.scheduleRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	if user.IsOJT && !schedule.AllowRemoteLogin {
		if !IPAllowed(remoteIP, user.AllowedIPs) {
			s.logger.Warn("clock-in rejected by IP allowlist",
				zap.String("user_id", userID.String()),
				zap.String("remote_ip", remoteIP),
			)
			return nil, ErrIPNotAllowed
		}
	}

	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	if _, err := s.attendanceRepo.GetByUserAndDate(ctx, userID, today); err == nil {
		return nil, ErrAlreadyClockedIn
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	record := &domain.Attendance{
		UserID:    userID,
		Date:      today,
		ClockIn:   now,
		Status:    ClockInStatus(now, schedule.WorkStart, schedule.LateThresholdMin),
		ClockInIP: remoteIP,
	}
	if err := s.attendanceRepo.Create(ctx, record); err != nil {
		return nil, err
	}

	s.logger.Info("user clocked in",
		zap.String("user_id", userID.String()),
		zap.String("status", string(record.Status)),
	)

	return record, nil
}

// StartBreak opens a break on today's record. Only one break can be
// open at a time.
func (s *AttendanceService) StartBreak(ctx context.Context, userID uuid.UUID) (*domain.Attendance, error) {
	record, err := s.todaysOpenRecord(ctx, userID)
	if err != nil {
		return nil, err
	}

	if _, err := s.attendanceRepo.OpenBreak(ctx, record.ID); err == nil {
		return nil, ErrBreakOpen
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	brk := &domain.BreakLog{
		AttendanceID: record.ID,
		StartTime:    s.now(),
	}
	if err := s.attendanceRepo.CreateBreak(ctx, brk); err != nil {
		return nil, err
	}

	record.Status = domain.AttendanceOnBreak
	if err := s.attendanceRepo.Update(ctx, record); err != nil {
		return nil, err
	}

	return s.attendanceRepo.GetByID(ctx, record.ID)
}

// EndBreak closes the open break on today's record
func (s *AttendanceService) EndBreak(ctx context.Context, userID uuid.UUID) (*domain.Attendance, error) {
	record, err := s.todaysOpenRecord(ctx, userID)
	if err != nil {
		return nil, err
	}

	brk, err := s.attendanceRepo.OpenBreak(ctx, record.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoBreakOpen
		}
		return nil, err
	}

	end := s.now()
	brk.EndTime = &end
	if err := s.attendanceRepo.UpdateBreak(ctx, brk); err != nil {
		return nil, err
	}

	// Restore the morning's lateness verdict rather than plain PRESENT
	schedule, err := s.scheduleRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	record.Status = ClockInStatus(record.ClockIn, schedule.WorkStart, schedule.LateThresholdMin)
	if err := s.attendanceRepo.Update(ctx, record); err != nil {
		return nil, err
	}

	return s.attendanceRepo.GetByID(ctx, record.ID)
}

// ClockOut closes the daily record. An open break is finalized at the
// clock-out instant, and total hours are computed net of breaks.
func (s *AttendanceService) ClockOut(ctx context.Context, userID uuid.UUID) (*domain.Attendance, error) {
	record, err := s.todaysOpenRecord(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()

	if brk, err := s.attendanceRepo.OpenBreak(ctx, record.ID); err == nil {
		brk.EndTime = &now
		if err := s.attendanceRepo.UpdateBreak(ctx, brk); err != nil {
			return nil, err
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// Re-read so the just-closed break counts toward the total
	record, err = s.attendanceRepo.GetByID(ctx, record.ID)
	if err != nil {
		return nil, err
	}

	record.ClockOut = &now
	record.TotalHours = WorkedHours(record.ClockIn, now, record.Breaks)
	record.Status = domain.AttendanceLoggedOut
	if err := s.attendanceRepo.Update(ctx, record); err != nil {
		return nil, err
	}

	s.logger.Info("user clocked out",
		zap.String("user_id", userID.String()),
		zap.Float64("total_hours", record.TotalHours),
	)

	return record, nil
}

// Today returns the user's record for today, or ErrNotClockedIn
func (s *AttendanceService) Today(ctx context.Context, userID uuid.UUID) (*domain.Attendance, error) {
	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	record, err := s.attendanceRepo.GetByUserAndDate(ctx, userID, today)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotClockedIn
		}
		return nil, err
	}
	return record, nil
}

// DTR returns a user's daily time records for a date range
func (s *AttendanceService) DTR(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.AttendanceDTO, error) {
	records, err := s.attendanceRepo.ListByUser(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	dtos := make([]domain.AttendanceDTO, 0, len(records))
	for i := range records {
		dtos = append(dtos, mapper.ToAttendanceDTO(&records[i]))
	}
	return dtos, nil
}

// DailyOverview returns every record for a calendar date
func (s *AttendanceService) DailyOverview(ctx context.Context, date time.Time) ([]domain.AttendanceDTO, error) {
	records, err := s.attendanceRepo.ListByDate(ctx, date)
	if err != nil {
		return nil, err
	}

	dtos := make([]domain.AttendanceDTO, 0, len(records))
	for i := range records {
		dtos = append(dtos, mapper.ToAttendanceDTO(&records[i]))
	}
	return dtos, nil
}

// Schedule returns the attendance policy
func (s *AttendanceService) Schedule(ctx context.Context) (*domain.WorkSchedule, error) {
	return s.scheduleRepo.Get(ctx)
}

// UpdateSchedule applies partial changes to the attendance policy
func (s *AttendanceService) UpdateSchedule(ctx context.Context, req *domain.UpdateWorkScheduleRequest) (*domain.WorkSchedule, error) {
	schedule, err := s.scheduleRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	if req.WorkStart != nil {
		if _, err := time.Parse("15:04", *req.WorkStart); err != nil {
			return nil, fmt.Errorf("%w: workStart must be HH:MM", ErrInvalidInput)
		}
		schedule.WorkStart = *req.WorkStart
	}
	if req.LateThresholdMin != nil {
		schedule.LateThresholdMin = *req.LateThresholdMin
	}
	if req.AllowRemoteLogin != nil {
		schedule.AllowRemoteLogin = *req.AllowRemoteLogin
	}

	if err := s.scheduleRepo.Update(ctx, schedule); err != nil {
		return nil, err
	}
	return schedule, nil
}

func (s *AttendanceService) todaysOpenRecord(ctx context.Context, userID uuid.UUID) (*domain.Attendance, error) {
	record, err := s.Today(ctx, userID)
	if err != nil {
		return nil, err
	}
	if record.Status == domain.AttendanceLoggedOut {
		return nil, ErrNotClockedIn
	}
	return record, nil
}
