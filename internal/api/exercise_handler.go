package api

import (
	"alcyxob/exercise-tracker/internal/domain"
	"alcyxob/exercise-tracker/internal/service"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Date layouts used on the API surface. Input dates arrive as plain
// calendar dates; output dates render as a weekday-month-day-year
// string, e.g. "Fri Jan 01 2021".
const (
	dateInputLayout    = "2006-01-02"
	calendarDateLayout = "Mon Jan 02 2006"
)

// ExerciseHandler holds the tracker service dependency.
type ExerciseHandler struct {
	trackerService service.TrackerService
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(trackerService service.TrackerService) *ExerciseHandler {
	return &ExerciseHandler{trackerService: trackerService}
}

// --- DTOs for API (Data Transfer Objects) ---

// AddExerciseRequest defines the expected form fields for logging an exercise.
// Description and duration are pointers so that a present zero value
// ("duration=0", an empty description) is distinguishable from an absent
// field; "required" then only rejects absence.
type AddExerciseRequest struct {
	Description *string `form:"description" binding:"required"`
	Duration    *int    `form:"duration" binding:"required"`
	Date        string  `form:"date"` // optional, "2006-01-02"
}

// AddExerciseResponse echoes the owning user's id and username alongside
// the stored exercise fields.
type AddExerciseResponse struct {
	ID          string `json:"_id"`
	Username    string `json:"username"`
	Date        string `json:"date"`
	Description string `json:"description"`
	Duration    int    `json:"duration"`
}

// LogEntryResponse is a single rendered entry of a user's exercise log.
// The exercise's own id passes through alongside its fields; only the
// date changes representation.
type LogEntryResponse struct {
	ID          string `json:"_id"`
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Date        string `json:"date"`
}

// LogResponse is the DTO for the filtered, limited view of a user's exercises.
type LogResponse struct {
	Username string             `json:"username"`
	Count    int                `json:"count"`
	ID       string             `json:"_id"`
	Log      []LogEntryResponse `json:"log"`
}

// MapExercisesToLogEntries converts domain exercises to rendered log entries.
func MapExercisesToLogEntries(exercises []domain.Exercise) []LogEntryResponse {
	entries := make([]LogEntryResponse, len(exercises))
	for i, ex := range exercises {
		entries[i] = LogEntryResponse{
			ID:          ex.ID.Hex(),
			Description: ex.Description,
			Duration:    ex.Duration,
			Date:        ex.Date.Format(calendarDateLayout),
		}
	}
	return entries
}

// --- Handler Methods ---

// AddExercise handles POST /api/users/:_id/exercises.
// Accepts form fields description, duration and an optional date; the
// date defaults to the current moment when omitted.
func (h *ExerciseHandler) AddExercise(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.Param("_id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid user ID format.")
		return
	}

	var req AddExerciseRequest
	if err := c.ShouldBind(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	date := time.Now().UTC()
	if req.Date != "" {
		date, err = time.Parse(dateInputLayout, req.Date)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD.")
			return
		}
	}

	user, exercise, err := h.trackerService.AddExercise(c.Request.Context(), userID, *req.Description, *req.Duration, date)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			abortWithError(c, http.StatusNotFound, "User not found.")
		} else {
			abortWithError(c, http.StatusInternalServerError, "Internal Server Error")
		}
		return
	}

	c.JSON(http.StatusOK, AddExerciseResponse{
		ID:          user.ID.Hex(),
		Username:    user.Username,
		Date:        exercise.Date.Format(calendarDateLayout),
		Description: exercise.Description,
		Duration:    exercise.Duration,
	})
}

// GetLogs handles GET /api/users/:_id/logs.
// Optional query params: from, to (YYYY-MM-DD, inclusive bounds) and
// limit (caps the number of included entries; 0 yields an empty log).
func (h *ExerciseHandler) GetLogs(c *gin.Context) {
	userIDParam := c.Param("_id")
	userID, err := primitive.ObjectIDFromHex(userIDParam)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid user ID format.")
		return
	}

	var from, to *time.Time
	if fromStr := c.Query("from"); fromStr != "" {
		t, err := time.Parse(dateInputLayout, fromStr)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid 'from' date, expected YYYY-MM-DD.")
			return
		}
		from = &t
	}
	if toStr := c.Query("to"); toStr != "" {
		t, err := time.Parse(dateInputLayout, toStr)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid 'to' date, expected YYYY-MM-DD.")
			return
		}
		to = &t
	}

	var limit *int
	if limitStr := c.Query("limit"); limitStr != "" {
		n, err := strconv.Atoi(limitStr)
		if err != nil || n < 0 {
			abortWithError(c, http.StatusBadRequest, "Invalid 'limit', expected a non-negative integer.")
			return
		}
		limit = &n
	}

	user, entries, err := h.trackerService.GetLogs(c.Request.Context(), userID, from, to, limit)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			abortWithError(c, http.StatusNotFound, "User not found.")
		} else {
			abortWithError(c, http.StatusInternalServerError, "Internal Server Error")
		}
		return
	}

	logEntries := MapExercisesToLogEntries(entries)

	c.JSON(http.StatusOK, LogResponse{
		Username: user.Username,
		Count:    len(logEntries),
		// Echo the path parameter as given rather than the canonical hex.
		ID:  userIDParam,
		Log: logEntries,
	})
}
