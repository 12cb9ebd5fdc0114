package api

import (
	"alcyxob/workout-scheduler/internal/domain"
	"alcyxob/workout-scheduler/internal/schedule"
	"alcyxob/workout-scheduler/internal/service"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// stubSchedulerService lets each test pin the behavior of the one method a
// handler should call.
type stubSchedulerService struct {
	createPattern func(ctx context.Context, userID primitive.ObjectID, input service.PatternInput) (*service.MaterializedPattern, error)
	preview       func(ctx context.Context, input service.PatternInput) ([]time.Time, error)
	deactivate    func(ctx context.Context, userID, patternID primitive.ObjectID) error
}

func (s *stubSchedulerService) CreatePattern(ctx context.Context, userID primitive.ObjectID, input service.PatternInput) (*service.MaterializedPattern, error) {
	return s.createPattern(ctx, userID, input)
}

func (s *stubSchedulerService) PreviewPattern(ctx context.Context, input service.PatternInput) ([]time.Time, error) {
	return s.preview(ctx, input)
}

func (s *stubSchedulerService) GetPatterns(ctx context.Context, userID primitive.ObjectID) ([]domain.RecurringPattern, error) {
	return nil, nil
}

func (s *stubSchedulerService) DeactivatePattern(ctx context.Context, userID, patternID primitive.ObjectID) error {
	return s.deactivate(ctx, userID, patternID)
}

func (s *stubSchedulerService) CopySchedule(ctx context.Context, userID primitive.ObjectID, sel domain.CopySelection) ([]primitive.ObjectID, error) {
	return nil, nil
}

func (s *stubSchedulerService) GetSchedule(ctx context.Context, userID primitive.ObjectID, from, to time.Time) ([]domain.WorkoutInstance, error) {
	return nil, nil
}

func (s *stubSchedulerService) DeleteInstance(ctx context.Context, userID, instanceID primitive.ObjectID) error {
	return nil
}

func (s *stubSchedulerService) ExportSchedule(ctx context.Context, userID primitive.ObjectID, from, to time.Time) (string, error) {
	return "", nil
}

// newPatternRouter wires the handler behind a middleware stand-in that injects
// the user ID the same way AuthMiddleware does.
func newPatternRouter(svc service.SchedulerService, userID primitive.ObjectID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewPatternHandler(svc)

	group := router.Group("/api/v1/patterns")
	group.Use(func(c *gin.Context) {
		c.Set(ContextUserIDKey, userID.Hex())
		c.Next()
	})
	group.POST("", handler.CreatePattern)
	group.POST("/preview", handler.PreviewPattern)
	group.DELETE("/:id", handler.DeactivatePattern)
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func validPatternBody(templateID primitive.ObjectID) map[string]interface{} {
	return map[string]interface{}{
		"name":          "Mon/Wed/Fri strength",
		"templateId":    templateID.Hex(),
		"frequency":     "weekly",
		"daysOfWeek":    []int{1, 3, 5},
		"startDate":     "2024-01-01",
		"durationWeeks": 2,
	}
}

func TestPatternHandler_CreatePattern_Success(t *testing.T) {
	userID := primitive.NewObjectID()
	templateID := primitive.NewObjectID()
	instanceID := primitive.NewObjectID()

	svc := &stubSchedulerService{
		createPattern: func(ctx context.Context, gotUser primitive.ObjectID, input service.PatternInput) (*service.MaterializedPattern, error) {
			assert.Equal(t, userID, gotUser)
			assert.Equal(t, templateID, input.TemplateID)
			assert.Equal(t, domain.FrequencyWeekly, input.Frequency)
			assert.Equal(t, []int{1, 3, 5}, input.DaysOfWeek)
			return &service.MaterializedPattern{
				Pattern: &domain.RecurringPattern{
					ID:            primitive.NewObjectID(),
					UserID:        gotUser,
					TemplateID:    templateID,
					Name:          input.Name,
					Frequency:     input.Frequency,
					DaysOfWeek:    input.DaysOfWeek,
					StartDate:     input.StartDate,
					DurationWeeks: input.DurationWeeks,
					Active:        true,
				},
				InstanceIDs: []primitive.ObjectID{instanceID},
			}, nil
		},
	}
	router := newPatternRouter(svc, userID)

	rec := postJSON(t, router, "/api/v1/patterns", validPatternBody(templateID))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp MaterializeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Mon/Wed/Fri strength", resp.Pattern.Name)
	assert.Equal(t, "2024-01-01", resp.Pattern.StartDate)
	assert.True(t, resp.Pattern.Active)
	assert.Equal(t, []string{instanceID.Hex()}, resp.InstanceIDs)
}

func TestPatternHandler_CreatePattern_MissingName(t *testing.T) {
	router := newPatternRouter(&stubSchedulerService{}, primitive.NewObjectID())

	body := validPatternBody(primitive.NewObjectID())
	delete(body, "name")

	rec := postJSON(t, router, "/api/v1/patterns", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPatternHandler_CreatePattern_BadDateFormat(t *testing.T) {
	router := newPatternRouter(&stubSchedulerService{}, primitive.NewObjectID())

	body := validPatternBody(primitive.NewObjectID())
	body["startDate"] = "01/01/2024"

	rec := postJSON(t, router, "/api/v1/patterns", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPatternHandler_CreatePattern_ErrorMapping(t *testing.T) {
	cases := map[string]struct {
		err  error
		code int
	}{
		"invalid pattern":  {domain.ErrInvalidPattern, http.StatusBadRequest},
		"too large":        {schedule.ErrPatternTooLarge, http.StatusUnprocessableEntity},
		"missing template": {service.ErrTemplateNotFound, http.StatusNotFound},
		"foreign template": {service.ErrTemplateAccessDenied, http.StatusForbidden},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			svc := &stubSchedulerService{
				createPattern: func(ctx context.Context, userID primitive.ObjectID, input service.PatternInput) (*service.MaterializedPattern, error) {
					return nil, tc.err
				},
			}
			router := newPatternRouter(svc, primitive.NewObjectID())

			rec := postJSON(t, router, "/api/v1/patterns", validPatternBody(primitive.NewObjectID()))
			assert.Equal(t, tc.code, rec.Code)
		})
	}
}

func TestPatternHandler_PreviewPattern(t *testing.T) {
	svc := &stubSchedulerService{
		preview: func(ctx context.Context, input service.PatternInput) ([]time.Time, error) {
			return []time.Time{
				time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
				time.Date(2024, time.January, 3, 0, 0, 0, 0, time.UTC),
			}, nil
		},
	}
	router := newPatternRouter(svc, primitive.NewObjectID())

	// Preview does not require a template or a name.
	body := map[string]interface{}{
		"frequency":     "weekly",
		"daysOfWeek":    []int{1, 3},
		"startDate":     "2024-01-01",
		"durationWeeks": 4,
	}
	rec := postJSON(t, router, "/api/v1/patterns/preview", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp PreviewResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []string{"2024-01-01", "2024-01-03"}, resp.Dates)
	assert.Equal(t, 2, resp.Count)
}

func TestPatternHandler_DeactivatePattern_NotFound(t *testing.T) {
	svc := &stubSchedulerService{
		deactivate: func(ctx context.Context, userID, patternID primitive.ObjectID) error {
			return service.ErrPatternNotFound
		},
	}
	router := newPatternRouter(svc, primitive.NewObjectID())

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/patterns/"+primitive.NewObjectID().Hex(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
