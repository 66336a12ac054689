package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ferromax/backoffice-api/internal/auth"
	"github.com/ferromax/backoffice-api/internal/domain"
	"github.com/ferromax/backoffice-api/internal/http/middleware"
	"github.com/ferromax/backoffice-api/internal/service"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// AttendanceHandler handles HTTP requests for time tracking
type AttendanceHandler struct {
	attendanceService *service.AttendanceService
	logger            *zap.Logger
}

// NewAttendanceHandler creates a new AttendanceHandler
func NewAttendanceHandler(attendanceService *service.AttendanceService, logger *zap.Logger) *AttendanceHandler {
	return &AttendanceHandler{
		attendanceService: attendanceService,
		logger:            logger,
	}
}

// ClockIn godoc
// @Summary Clock in
// @Description Opens today's attendance record. OJT accounts without remote login clearance must clock in from an allowed IP.
// @Tags Attendance
// @Produce json
// @Success 201 {object} domain.Attendance
// @Failure 403 {object} domain.APIError "Clock-in not allowed from this address"
// @Failure 400 {object} domain.APIError "Already clocked in today"
// @Security BearerAuth
// @Router /attendance/clock-in [post]
func (h *AttendanceHandler) ClockIn(w http.ResponseWriter, r *http.Request) {
	userCtx := auth.MustFromContext(r.Context())

	record, err := h.attendanceService.ClockIn(r.Context(), userCtx.UserID, middleware.ClientIP(r))
	if err != nil {
		respondServiceError(w, err, "Failed to clock in")
		return
	}

	respondJSON(w, http.StatusCreated, record)
}

// StartBreak godoc
// @Summary Start break
// @Tags Attendance
// @Produce json
// @Success 200 {object} domain.Attendance
// @Failure 400 {object} domain.APIError "Not clocked in or a break is already open"
// @Security BearerAuth
// @Router /attendance/break/start [post]
func (h *AttendanceHandler) StartBreak(w http.ResponseWriter, r *http.Request) {
	userCtx := auth.MustFromContext(r.Context())

	record, err := h.attendanceService.StartBreak(r.Context(), userCtx.UserID)
	if err != nil {
		respondServiceError(w, err, "Failed to start break")
		return
	}

	respondJSON(w, http.StatusOK, record)
}

// EndBreak godoc
// @Summary End break
// @Tags Attendance
// @Produce json
// @Success 200 {object} domain.Attendance
// @Failure 400 {object} domain.APIError "No break in progress"
// @Security BearerAuth
// @Router /attendance/break/end [post]
func (h *AttendanceHandler) EndBreak(w http.ResponseWriter, r *http.Request) {
	userCtx := auth.MustFromContext(r.Context())

	record, err := h.attendanceService.EndBreak(r.Context(), userCtx.UserID)
	if err != nil {
		respondServiceError(w, err, "Failed to end break")
		return
	}

	respondJSON(w, http.StatusOK, record)
}

// ClockOut godoc
// @Summary Clock out
// @Description Closes today's attendance record and totals the hours worked
// @Tags Attendance
// @Produce json
// @Success 200 {object} domain.Attendance
// @Failure 400 {object} domain.APIError "Not clocked in"
// @Security BearerAuth
// @Router /attendance/clock-out [post]
func (h *AttendanceHandler) ClockOut(w http.ResponseWriter, r *http.Request) {
	userCtx := auth.MustFromContext(r.Context())

	record, err := h.attendanceService.ClockOut(r.Context(), userCtx.UserID)
	if err != nil {
		respondServiceError(w, err, "Failed to clock out")
		return
	}

	respondJSON(w, http.StatusOK, record)
}

// Today godoc
// @Summary Get today's attendance
// @Tags Attendance
// @Produce json
// @Success 200 {object} domain.Attendance
// @Failure 400 {object} domain.APIError "Not clocked in today"
// @Security BearerAuth
// @Router /attendance/today [get]
func (h *AttendanceHandler) Today(w http.ResponseWriter, r *http.Request) {
	userCtx := auth.MustFromContext(r.Context())

	record, err := h.attendanceService.Today(r.Context(), userCtx.UserID)
	if err != nil {
		respondServiceError(w, err, "Failed to get today's attendance")
		return
	}

	respondJSON(w, http.StatusOK, record)
}

// DTR godoc
// @Summary Daily time record
// @Description Returns the caller's attendance records for a date range. Defaults to the current month.
// @Tags Attendance
// @Produce json
// @Param from query string false "Range start (YYYY-MM-DD)"
// @Param to query string false "Range end (YYYY-MM-DD)"
// @Success 200 {array} domain.AttendanceDTO
// @Failure 400 {object} domain.APIError "Invalid date"
// @Security BearerAuth
// @Router /attendance/dtr [get]
func (h *AttendanceHandler) DTR(w http.ResponseWriter, r *http.Request) {
	userCtx := auth.MustFromContext(r.Context())

	now := time.Now()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	to := now

	var err error
	if f := r.URL.Query().Get("from"); f != "" {
		if from, err = time.ParseInLocation(dateLayout, f, now.Location()); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid from date: expected YYYY-MM-DD")
			return
		}
	}
	if t := r.URL.Query().Get("to"); t != "" {
		if to, err = time.ParseInLocation(dateLayout, t, now.Location()); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid to date: expected YYYY-MM-DD")
			return
		}
	}

	records, err := h.attendanceService.DTR(r.Context(), userCtx.UserID, from, to)
	if err != nil {
		h.logger.Error("failed to build DTR", zap.Error(err), zap.String("user_id", userCtx.UserID.String()))
		respondWithError(w, http.StatusInternalServerError, "Failed to build daily time record")
		return
	}

	respondJSON(w, http.StatusOK, records)
}

// DailyOverview godoc
// @Summary Attendance overview for a day
// @Description Returns all staff attendance for the given date. Defaults to today.
// @Tags Attendance
// @Produce json
// @Param date query string false "Date (YYYY-MM-DD)"
// @Success 200 {array} domain.AttendanceDTO
// @Failure 400 {object} domain.APIError "Invalid date"
// @Security BearerAuth
// @Router /attendance/overview [get]
func (h *AttendanceHandler) DailyOverview(w http.ResponseWriter, r *http.Request) {
	date := time.Now()

	var err error
	if d := r.URL.Query().Get("date"); d != "" {
		if date, err = time.ParseInLocation(dateLayout, d, time.Now().Location()); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid date: expected YYYY-MM-DD")
			return
		}
	}

	records, err := h.attendanceService.DailyOverview(r.Context(), date)
	if err != nil {
		h.logger.Error("failed to build attendance overview", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to build attendance overview")
		return
	}

	respondJSON(w, http.StatusOK, records)
}

// GetSchedule godoc
// @Summary Get work schedule
// @Tags Attendance
// @Produce json
// @Success 200 {object} domain.WorkSchedule
// @Security BearerAuth
// @Router /attendance/schedule [get]
func (h *AttendanceHandler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	schedule, err := h.attendanceService.Schedule(r.Context())
	if err != nil {
		respondServiceError(w, err, "Failed to get work schedule")
		return
	}

	respondJSON(w, http.StatusOK, schedule)
}

// UpdateSchedule godoc
// @Summary Update work schedule
// @Description Updates work start, late threshold and the OJT remote login flag
// @Tags Attendance
// @Accept json
// @Produce json
// @Param request body domain.UpdateWorkScheduleRequest true "Fields to update"
// @Success 200 {object} domain.WorkSchedule
// @Failure 400 {object} domain.APIError "Invalid work start time"
// @Security BearerAuth
// @Router /attendance/schedule [put]
func (h *AttendanceHandler) UpdateSchedule(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateWorkScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	schedule, err := h.attendanceService.UpdateSchedule(r.Context(), &req)
	if err != nil {
		h.logger.Error("failed to update work schedule", zap.Error(err))
		respondServiceError(w, err, "Failed to update work schedule")
		return
	}

	respondJSON(w, http.StatusOK, schedule)
}
