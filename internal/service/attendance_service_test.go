package service_test

import (
	"testing"
	"time"

	"github.com/ferromax/backoffice-api/internal/domain"
	"github.com/ferromax/backoffice-api/internal/service"
	"github.com/stretchr/testify/assert"
)

func TestClockInStatus(t *testing.T) {
	day := func(hour, min int) time.Time {
		return time.Date(2026, 3, 2, hour, min, 0, 0, time.UTC)
	}

	tests := []struct {
		name      string
		clockIn   time.Time
		workStart string
		threshold int
		expected  domain.AttendanceStatus
	}{
		{
			name:      "before work start is present",
			clockIn:   day(7, 45),
			workStart: "08:00",
			threshold: 15,
			expected:  domain.AttendancePresent,
		},
		{
			name:      "within grace period is present",
			clockIn:   day(8, 14),
			workStart: "08:00",
			threshold: 15,
			expected:  domain.AttendancePresent,
		},
		{
			name:      "exactly on the deadline is present",
			clockIn:   day(8, 15),
			workStart: "08:00",
			threshold: 15,
			expected:  domain.AttendancePresent,
		},
		{
			name:      "past the grace period is late",
			clockIn:   day(8, 16),
			workStart: "08:00",
			threshold: 15,
			expected:  domain.AttendanceLate,
		},
		{
			name:      "zero threshold flags any delay",
			clockIn:   day(9, 1),
			workStart: "09:00",
			threshold: 0,
			expected:  domain.AttendanceLate,
		},
		{
			name:      "unparseable schedule defaults to present",
			clockIn:   day(12, 0),
			workStart: "not-a-time",
			threshold: 15,
			expected:  domain.AttendancePresent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := service.ClockInStatus(tt.clockIn, tt.workStart, tt.threshold)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestWorkedHours(t *testing.T) {
	clockIn := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	clockOut := time.Date(2026, 3, 2, 17, 0, 0, 0, time.UTC)

	at := func(hour, min int) time.Time {
		return time.Date(2026, 3, 2, hour, min, 0, 0, time.UTC)
	}
	end := func(hour, min int) *time.Time {
		ts := at(hour, min)
		return &ts
	}

	t.Run("no breaks", func(t *testing.T) {
		assert.InDelta(t, 9.0, service.WorkedHours(clockIn, clockOut, nil), 0.001)
	})

	t.Run("lunch break is deducted", func(t *testing.T) {
		breaks := []domain.BreakLog{
			{StartTime: at(12, 0), EndTime: end(13, 0)},
		}
		assert.InDelta(t, 8.0, service.WorkedHours(clockIn, clockOut, breaks), 0.001)
	})

	t.Run("multiple breaks accumulate", func(t *testing.T) {
		breaks := []domain.BreakLog{
			{StartTime: at(10, 0), EndTime: end(10, 15)},
			{StartTime: at(12, 0), EndTime: end(13, 0)},
		}
		assert.InDelta(t, 7.75, service.WorkedHours(clockIn, clockOut, breaks), 0.001)
	})

	t.Run("open break counts nothing", func(t *testing.T) {
		breaks := []domain.BreakLog{
			{StartTime: at(12, 0)},
		}
		assert.InDelta(t, 9.0, service.WorkedHours(clockIn, clockOut, breaks), 0.001)
	})

	t.Run("never negative", func(t *testing.T) {
		breaks := []domain.BreakLog{
			{StartTime: at(8, 0), EndTime: end(17, 30)},
		}
		assert.Equal(t, 0.0, service.WorkedHours(clockIn, clockOut, breaks))
	})
}

func TestIPAllowed(t *testing.T) {
	tests := []struct {
		name      string
		remoteIP  string
		allowlist string
		expected  bool
	}{
		{
			name:      "exact match",
			remoteIP:  "203.0.113.10",
			allowlist: "203.0.113.10",
			expected:  true,
		},
		{
			name:      "match in list with spaces",
			remoteIP:  "203.0.113.10",
			allowlist: "198.51.100.1, 203.0.113.10",
			expected:  true,
		},
		{
			name:      "cidr block match",
			remoteIP:  "192.168.1.42",
			allowlist: "192.168.1.0/24",
			expected:  true,
		},
		{
			name:      "outside cidr block",
			remoteIP:  "192.168.2.42",
			allowlist: "192.168.1.0/24",
			expected:  false,
		},
		{
			name:      "empty allowlist denies",
			remoteIP:  "203.0.113.10",
			allowlist: "",
			expected:  false,
		},
		{
			name:      "garbage remote address denies",
			remoteIP:  "not-an-ip",
			allowlist: "203.0.113.10",
			expected:  false,
		},
		{
			name:      "garbage allowlist entry is skipped",
			remoteIP:  "203.0.113.10",
			allowlist: "bogus, 203.0.113.10",
			expected:  true,
		},
		{
			name:      "ipv6 exact match",
			remoteIP:  "2001:db8::1",
			allowlist: "2001:db8::1",
			expected:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, service.IPAllowed(tt.remoteIP, tt.allowlist))
		})
	}
}
