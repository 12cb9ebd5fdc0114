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

// TemplateHandler holds the template service dependency.
type TemplateHandler struct {
	templateService service.TemplateService
}

// NewTemplateHandler creates a new TemplateHandler.
func NewTemplateHandler(templateService service.TemplateService) *TemplateHandler {
	return &TemplateHandler{templateService: templateService}
}

// --- DTOs for API (Data Transfer Objects) ---

// PrescriptionRequest is one exercise entry in a template payload.
type PrescriptionRequest struct {
	ExerciseID      string   `json:"exerciseId" binding:"required"`
	OrderIndex      int      `json:"orderIndex"`
	Sets            *int     `json:"sets" binding:"omitempty,min=1"`
	Reps            *int     `json:"reps" binding:"omitempty,min=1"`
	Weight          *float64 `json:"weight" binding:"omitempty,min=0"`
	Duration        *int     `json:"duration" binding:"omitempty,min=1"`
	Distance        *float64 `json:"distance" binding:"omitempty,min=0"`
	RestBetweenSets *int     `json:"restBetweenSets" binding:"omitempty,min=0"`
}

// CreateTemplateRequest defines the expected JSON for creating a template.
type CreateTemplateRequest struct {
	Name              string                `json:"name" binding:"required"`
	WorkoutType       string                `json:"workoutType" binding:"required,oneof=strength cardio flexibility mixed"`
	EstimatedDuration int                   `json:"estimatedDuration" binding:"omitempty,min=1"`
	Exercises         []PrescriptionRequest `json:"exercises"`
}

// TemplateResponse is the DTO for returning template details.
type TemplateResponse struct {
	ID                string                        `json:"id"`
	Name              string                        `json:"name"`
	WorkoutType       domain.WorkoutType            `json:"workoutType"`
	EstimatedDuration int                           `json:"estimatedDuration,omitempty"`
	Exercises         []domain.ExercisePrescription `json:"exercises"`
	CreatedAt         time.Time                     `json:"createdAt"`
	UpdatedAt         time.Time                     `json:"updatedAt"`
}

// MapTemplateToResponse converts a domain.WorkoutTemplate to TemplateResponse DTO.
func MapTemplateToResponse(tpl *domain.WorkoutTemplate) TemplateResponse {
	if tpl == nil {
		return TemplateResponse{}
	}
	return TemplateResponse{
		ID:                tpl.ID.Hex(),
		Name:              tpl.Name,
		WorkoutType:       tpl.WorkoutType,
		EstimatedDuration: tpl.EstimatedDuration,
		Exercises:         tpl.Exercises,
		CreatedAt:         tpl.CreatedAt,
		UpdatedAt:         tpl.UpdatedAt,
	}
}

func mapPrescriptions(reqs []PrescriptionRequest) []domain.ExercisePrescription {
	out := make([]domain.ExercisePrescription, len(reqs))
	for i, r := range reqs {
		out[i] = domain.ExercisePrescription{
			ExerciseID:      r.ExerciseID,
			OrderIndex:      r.OrderIndex,
			Sets:            r.Sets,
			Reps:            r.Reps,
			Weight:          r.Weight,
			Duration:        r.Duration,
			Distance:        r.Distance,
			RestBetweenSets: r.RestBetweenSets,
		}
	}
	return out
}

// --- Handler Methods ---

// CreateTemplate creates a new workout template for the authenticated user.
func (h *TemplateHandler) CreateTemplate(c *gin.Context) {
	var req CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	tpl, err := h.templateService.CreateTemplate(
		c.Request.Context(),
		userID,
		req.Name,
		domain.WorkoutType(req.WorkoutType),
		req.EstimatedDuration,
		mapPrescriptions(req.Exercises),
	)
	if err != nil {
		if errors.Is(err, service.ErrValidationFailed) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to create template.")
		}
		return
	}

	c.JSON(http.StatusCreated, MapTemplateToResponse(tpl))
}

// GetTemplates lists the authenticated user's templates.
func (h *TemplateHandler) GetTemplates(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	templates, err := h.templateService.GetTemplatesByUser(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to fetch templates.")
		return
	}

	responses := make([]TemplateResponse, len(templates))
	for i := range templates {
		responses[i] = MapTemplateToResponse(&templates[i])
	}
	c.JSON(http.StatusOK, responses)
}

// GetTemplateByID returns one template owned by the authenticated user.
func (h *TemplateHandler) GetTemplateByID(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}
	templateID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid template ID format.")
		return
	}

	tpl, err := h.templateService.GetTemplateByID(c.Request.Context(), userID, templateID)
	if err != nil {
		respondTemplateError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapTemplateToResponse(tpl))
}

// UpdateTemplate replaces the mutable fields of a template.
func (h *TemplateHandler) UpdateTemplate(c *gin.Context) {
	var req CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}
	templateID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid template ID format.")
		return
	}

	tpl, err := h.templateService.UpdateTemplate(
		c.Request.Context(),
		userID,
		templateID,
		req.Name,
		domain.WorkoutType(req.WorkoutType),
		req.EstimatedDuration,
		mapPrescriptions(req.Exercises),
	)
	if err != nil {
		if errors.Is(err, service.ErrValidationFailed) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			respondTemplateError(c, err)
		}
		return
	}
	c.JSON(http.StatusOK, MapTemplateToResponse(tpl))
}

// DeleteTemplate removes a template owned by the authenticated user.
func (h *TemplateHandler) DeleteTemplate(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}
	templateID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid template ID format.")
		return
	}

	if err := h.templateService.DeleteTemplate(c.Request.Context(), userID, templateID); err != nil {
		respondTemplateError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func respondTemplateError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTemplateNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrTemplateAccessDenied):
		abortWithError(c, http.StatusForbidden, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "Template operation failed.")
	}
}
