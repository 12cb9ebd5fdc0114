package api

import (
	"alcyxob/workout-scheduler/internal/domain"
	"alcyxob/workout-scheduler/internal/schedule"
	"alcyxob/workout-scheduler/internal/service"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Calendar dates travel as plain YYYY-MM-DD strings; there is no time
// component anywhere on the scheduling wire surface.
const dateLayout = "2006-01-02"

// PatternHandler holds the scheduler service dependency.
type PatternHandler struct {
	schedulerService service.SchedulerService
}

// NewPatternHandler creates a new PatternHandler.
func NewPatternHandler(schedulerService service.SchedulerService) *PatternHandler {
	return &PatternHandler{schedulerService: schedulerService}
}

// --- DTOs ---

// PatternRequest defines the expected JSON for creating or previewing a
// recurring pattern. TemplateID is required for creation; preview is a pure
// date computation and ignores it.
type PatternRequest struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	TemplateID    string `json:"templateId"`
	Frequency     string `json:"frequency" binding:"required,oneof=daily weekly custom"`
	DaysOfWeek    []int  `json:"daysOfWeek" binding:"omitempty,dive,min=0,max=6"`
	TimesPerWeek  int    `json:"timesPerWeek" binding:"omitempty,min=1"`
	StartDate     string `json:"startDate" binding:"required,datetime=2006-01-02"`
	DurationWeeks int    `json:"durationWeeks" binding:"required,min=1,max=52"`
}

// PatternResponse is the DTO for returning pattern details.
type PatternResponse struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Description   string           `json:"description,omitempty"`
	TemplateID    string           `json:"templateId"`
	Frequency     domain.Frequency `json:"frequency"`
	DaysOfWeek    []int            `json:"daysOfWeek,omitempty"`
	TimesPerWeek  int              `json:"timesPerWeek,omitempty"`
	StartDate     string           `json:"startDate"`
	DurationWeeks int              `json:"durationWeeks"`
	Active        bool             `json:"active"`
	CreatedAt     time.Time        `json:"createdAt"`
}

// MaterializeResponse reports a created pattern and the instances it produced.
type MaterializeResponse struct {
	Pattern     PatternResponse `json:"pattern"`
	InstanceIDs []string        `json:"instanceIds"`
}

// PreviewResponse lists the dates a pattern would generate over the preview window.
type PreviewResponse struct {
	Dates []string `json:"dates"`
	Count int      `json:"count"`
}

// MapPatternToResponse converts a domain.RecurringPattern to PatternResponse DTO.
func MapPatternToResponse(p *domain.RecurringPattern) PatternResponse {
	if p == nil {
		return PatternResponse{}
	}
	return PatternResponse{
		ID:            p.ID.Hex(),
		Name:          p.Name,
		Description:   p.Description,
		TemplateID:    p.TemplateID.Hex(),
		Frequency:     p.Frequency,
		DaysOfWeek:    p.DaysOfWeek,
		TimesPerWeek:  p.TimesPerWeek,
		StartDate:     p.StartDate.Format(dateLayout),
		DurationWeeks: p.DurationWeeks,
		Active:        p.Active,
		CreatedAt:     p.CreatedAt,
	}
}

func (r *PatternRequest) toInput() (service.PatternInput, error) {
	startDate, err := time.ParseInLocation(dateLayout, r.StartDate, time.UTC)
	if err != nil {
		return service.PatternInput{}, err
	}

	input := service.PatternInput{
		Name:          r.Name,
		Description:   r.Description,
		Frequency:     domain.Frequency(r.Frequency),
		DaysOfWeek:    r.DaysOfWeek,
		TimesPerWeek:  r.TimesPerWeek,
		StartDate:     startDate,
		DurationWeeks: r.DurationWeeks,
	}
	if r.TemplateID != "" {
		templateID, err := primitive.ObjectIDFromHex(r.TemplateID)
		if err != nil {
			return service.PatternInput{}, err
		}
		input.TemplateID = templateID
	}
	return input, nil
}

// --- Handler Methods ---

// CreatePattern validates, expands and materializes a recurring pattern into
// concrete workout instances.
func (h *PatternHandler) CreatePattern(c *gin.Context) {
	var req PatternRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	if req.Name == "" {
		abortWithError(c, http.StatusBadRequest, "Pattern name is required.")
		return
	}
	if req.TemplateID == "" {
		abortWithError(c, http.StatusBadRequest, "Template ID is required.")
		return
	}

	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	input, err := req.toInput()
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid pattern payload: "+err.Error())
		return
	}

	result, err := h.schedulerService.CreatePattern(c.Request.Context(), userID, input)
	if err != nil {
		respondPatternError(c, err)
		return
	}

	ids := make([]string, len(result.InstanceIDs))
	for i, id := range result.InstanceIDs {
		ids[i] = id.Hex()
	}
	c.JSON(http.StatusCreated, MaterializeResponse{
		Pattern:     MapPatternToResponse(result.Pattern),
		InstanceIDs: ids,
	})
}

// PreviewPattern expands a pattern over the preview window without persisting
// anything. The UI calls this on every edit of the pattern form.
func (h *PatternHandler) PreviewPattern(c *gin.Context) {
	var req PatternRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	input, err := req.toInput()
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid pattern payload: "+err.Error())
		return
	}

	dates, err := h.schedulerService.PreviewPattern(c.Request.Context(), input)
	if err != nil {
		respondPatternError(c, err)
		return
	}

	formatted := make([]string, len(dates))
	for i, d := range dates {
		formatted[i] = d.Format(dateLayout)
	}
	c.JSON(http.StatusOK, PreviewResponse{Dates: formatted, Count: len(formatted)})
}

// GetPatterns lists the authenticated user's patterns.
func (h *PatternHandler) GetPatterns(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	patterns, err := h.schedulerService.GetPatterns(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to fetch patterns.")
		return
	}

	responses := make([]PatternResponse, len(patterns))
	for i := range patterns {
		responses[i] = MapPatternToResponse(&patterns[i])
	}
	c.JSON(http.StatusOK, responses)
}

// DeactivatePattern turns a pattern off without touching its instances.
func (h *PatternHandler) DeactivatePattern(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}
	patternID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid pattern ID format.")
		return
	}

	if err := h.schedulerService.DeactivatePattern(c.Request.Context(), userID, patternID); err != nil {
		if errors.Is(err, service.ErrPatternNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to deactivate pattern.")
		}
		return
	}
	c.Status(http.StatusNoContent)
}

func respondPatternError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidPattern):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, schedule.ErrPatternTooLarge):
		abortWithError(c, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, service.ErrTemplateNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrTemplateAccessDenied):
		abortWithError(c, http.StatusForbidden, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "Pattern operation failed.")
	}
}
