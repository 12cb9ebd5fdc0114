package api

import (
	"alcyxob/workout-scheduler/internal/domain"
	"alcyxob/workout-scheduler/internal/service"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ScheduleHandler exposes the calendar: reading it, copying parts of it
// around, deleting entries and exporting ranges.
type ScheduleHandler struct {
	schedulerService service.SchedulerService
}

// NewScheduleHandler creates a new ScheduleHandler.
func NewScheduleHandler(schedulerService service.SchedulerService) *ScheduleHandler {
	return &ScheduleHandler{schedulerService: schedulerService}
}

// --- DTOs ---

// CopyRequest carries a copy selection: the kind discriminant, exactly one
// source field matching it, and the matching target.
type CopyRequest struct {
	Kind            string `json:"kind" binding:"required,oneof=workout day week"`
	WorkoutID       string `json:"workoutId"`
	SourceDate      string `json:"sourceDate" binding:"omitempty,datetime=2006-01-02"`
	SourceWeekStart string `json:"sourceWeekStart" binding:"omitempty,datetime=2006-01-02"`
	TargetDate      string `json:"targetDate" binding:"omitempty,datetime=2006-01-02"`
	TargetWeekStart string `json:"targetWeekStart" binding:"omitempty,datetime=2006-01-02"`
}

// CopyResponse reports the instances created by a copy operation. Count can
// be zero: copying an empty day or a deleted workout is a no-op, not an error.
type CopyResponse struct {
	InstanceIDs []string `json:"instanceIds"`
	Count       int      `json:"count"`
}

// InstanceResponse is the DTO for returning a scheduled workout.
type InstanceResponse struct {
	ID                string                        `json:"id"`
	TemplateID        *string                       `json:"templateId,omitempty"`
	PatternID         *string                       `json:"patternId,omitempty"`
	Name              string                        `json:"name"`
	WorkoutType       domain.WorkoutType            `json:"workoutType"`
	EstimatedDuration int                           `json:"estimatedDuration,omitempty"`
	ScheduledDate     string                        `json:"scheduledDate"`
	Exercises         []domain.ExercisePrescription `json:"exercises"`
	ScheduledAt       time.Time                     `json:"scheduledAt"`
	CompletedAt       *time.Time                    `json:"completedAt,omitempty"`
}

// ExportResponse carries the presigned download URL of a schedule export.
type ExportResponse struct {
	URL string `json:"url"`
}

// MapInstanceToResponse converts a domain.WorkoutInstance to InstanceResponse DTO.
func MapInstanceToResponse(in *domain.WorkoutInstance) InstanceResponse {
	if in == nil {
		return InstanceResponse{}
	}
	resp := InstanceResponse{
		ID:                in.ID.Hex(),
		Name:              in.Name,
		WorkoutType:       in.WorkoutType,
		EstimatedDuration: in.EstimatedDuration,
		ScheduledDate:     in.ScheduledDate.Format(dateLayout),
		Exercises:         in.Exercises,
		ScheduledAt:       in.ScheduledAt,
		CompletedAt:       in.CompletedAt,
	}
	if in.TemplateID != nil {
		hex := in.TemplateID.Hex()
		resp.TemplateID = &hex
	}
	if in.PatternID != nil {
		hex := in.PatternID.Hex()
		resp.PatternID = &hex
	}
	return resp
}

func (r *CopyRequest) toSelection() (domain.CopySelection, error) {
	sel := domain.CopySelection{Kind: domain.CopyKind(r.Kind)}

	parseDate := func(value, field string) (time.Time, error) {
		if value == "" {
			return time.Time{}, errors.New(field + " is required for this copy kind")
		}
		return time.ParseInLocation(dateLayout, value, time.UTC)
	}

	var err error
	switch sel.Kind {
	case domain.CopyWorkout:
		if r.WorkoutID == "" {
			return sel, errors.New("workoutId is required for a workout copy")
		}
		sel.WorkoutID, err = primitive.ObjectIDFromHex(r.WorkoutID)
		if err != nil {
			return sel, err
		}
		sel.TargetDate, err = parseDate(r.TargetDate, "targetDate")

	case domain.CopyDay:
		sel.SourceDate, err = parseDate(r.SourceDate, "sourceDate")
		if err != nil {
			return sel, err
		}
		sel.TargetDate, err = parseDate(r.TargetDate, "targetDate")

	case domain.CopyWeek:
		sel.SourceWeekStart, err = parseDate(r.SourceWeekStart, "sourceWeekStart")
		if err != nil {
			return sel, err
		}
		sel.TargetWeekStart, err = parseDate(r.TargetWeekStart, "targetWeekStart")
	}
	return sel, err
}

// --- Handler Methods ---

// CopySchedule clones a workout, a day or a week onto a new target date.
func (h *ScheduleHandler) CopySchedule(c *gin.Context) {
	var req CopyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	sel, err := req.toSelection()
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid copy payload: "+err.Error())
		return
	}

	instanceIDs, err := h.schedulerService.CopySchedule(c.Request.Context(), userID, sel)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Copy operation failed.")
		return
	}

	ids := make([]string, len(instanceIDs))
	for i, id := range instanceIDs {
		ids[i] = id.Hex()
	}
	c.JSON(http.StatusCreated, CopyResponse{InstanceIDs: ids, Count: len(ids)})
}

// GetSchedule returns the calendar between the from and to query dates.
func (h *ScheduleHandler) GetSchedule(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	from, to, err := parseRangeQuery(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	instances, err := h.schedulerService.GetSchedule(c.Request.Context(), userID, from, to)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to fetch schedule.")
		return
	}

	responses := make([]InstanceResponse, len(instances))
	for i := range instances {
		responses[i] = MapInstanceToResponse(&instances[i])
	}
	c.JSON(http.StatusOK, responses)
}

// ExportSchedule writes the requested range to the archive and returns a
// presigned download URL.
func (h *ScheduleHandler) ExportSchedule(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	from, to, err := parseRangeQuery(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	url, err := h.schedulerService.ExportSchedule(c.Request.Context(), userID, from, to)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to export schedule.")
		return
	}
	c.JSON(http.StatusOK, ExportResponse{URL: url})
}

// DeleteInstance removes one scheduled workout.
func (h *ScheduleHandler) DeleteInstance(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}
	instanceID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid instance ID format.")
		return
	}

	if err := h.schedulerService.DeleteInstance(c.Request.Context(), userID, instanceID); err != nil {
		if errors.Is(err, service.ErrInstanceNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to delete instance.")
		}
		return
	}
	c.Status(http.StatusNoContent)
}

func parseRangeQuery(c *gin.Context) (time.Time, time.Time, error) {
	fromStr := c.Query("from")
	toStr := c.Query("to")
	if fromStr == "" || toStr == "" {
		return time.Time{}, time.Time{}, errors.New("from and to query parameters are required (YYYY-MM-DD)")
	}
	from, err := time.ParseInLocation(dateLayout, fromStr, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("invalid from date: " + err.Error())
	}
	to, err := time.ParseInLocation(dateLayout, toStr, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("invalid to date: " + err.Error())
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, errors.New("to date must not precede from date")
	}
	return from, to, nil
}
