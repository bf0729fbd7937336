package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"surveyapi/internal/config"
	"surveyapi/internal/errs"
	"surveyapi/internal/http/middleware"
	"surveyapi/internal/model"
	serviceMocks "surveyapi/internal/service/mocks"
	"surveyapi/internal/storage"
)

func newApp() *fiber.App {
	return fiber.New(fiber.Config{ErrorHandler: ErrorHandler(zerolog.Nop())})
}

func decodeError(t *testing.T, resp *http.Response) errorPayload {
	t.Helper()
	var body errorPayload
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func jsonRequest(method, target string, body any) *http.Request {
	b, _ := json.Marshal(body)
	req := httptest.NewRequest(method, target, bytes.NewReader(b))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return req
}

func TestHealthCheck(t *testing.T) {
	db, dbMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	app := fiber.New()
	app.Get("/health", HealthCheck(db))

	t.Run("healthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(nil)

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "healthy", body["status"])
	})

	t.Run("unhealthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(errors.New("db error"))

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
		assert.Equal(t, "SERVICE_UNAVAILABLE", decodeError(t, resp).Error.Code)
	})
}

func TestLivenessProbe(t *testing.T) {
	app := fiber.New()
	app.Get("/healthz", LivenessProbe())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{
			name:       "request error",
			err:        errs.BadRequest("Missing single use id", map[string]any{"surveyId": "s1"}),
			wantStatus: http.StatusBadRequest,
			wantCode:   "BAD_REQUEST",
			wantMsg:    "Missing single use id",
		},
		{
			name:       "resource not found",
			err:        errs.NewResourceNotFound("Survey", "s1"),
			wantStatus: http.StatusNotFound,
			wantCode:   "NOT_FOUND",
			wantMsg:    "Survey with ID s1 not found",
		},
		{
			name:       "invalid input",
			err:        errs.NewInvalidInput("Invalid image file in question 1"),
			wantStatus: http.StatusBadRequest,
			wantCode:   "BAD_REQUEST",
			wantMsg:    "Invalid image file in question 1",
		},
		{
			name:       "validation",
			err:        &validationError{fields: map[string]string{"surveyId": "is required"}},
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_FAILED",
			wantMsg:    "validation failed",
		},
		{
			name:       "database error does not leak",
			err:        &errs.DatabaseError{Message: "relation \"surveys\" does not exist", Err: &pgconn.PgError{}},
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL_ERROR",
			wantMsg:    "internal server error",
		},
		{
			name:       "wrapped not found",
			err:        fmt.Errorf("copy: %w", errs.NewResourceNotFound("Environment", "e1")),
			wantStatus: http.StatusNotFound,
			wantCode:   "NOT_FOUND",
			wantMsg:    "Environment with ID e1 not found",
		},
		{
			name:       "fiber error",
			err:        fiber.ErrRequestEntityTooLarge,
			wantStatus: http.StatusRequestEntityTooLarge,
			wantCode:   "REQUEST_TOO_LARGE",
			wantMsg:    "request entity too large",
		},
		{
			name:       "unknown error",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL_ERROR",
			wantMsg:    "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newApp()
			app.Use(middleware.RequestID())
			app.Get("/", func(c *fiber.Ctx) error { return tt.err })

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set(middleware.RequestIDHeader, "rid-1")
			resp, err := app.Test(req)
			require.NoError(t, err)

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			body := decodeError(t, resp)
			assert.Equal(t, "rid-1", body.RequestID)
			assert.Equal(t, tt.wantCode, body.Error.Code)
			assert.Equal(t, tt.wantMsg, body.Error.Message)
		})
	}
}

func TestListSurveys(t *testing.T) {
	envID := uuid.New().String()
	mockSvc := new(serviceMocks.MockSurveyService)
	app := newApp()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(middleware.UserIDLocalKey, "user-1")
		return c.Next()
	})
	app.Get("/environments/:environmentId/surveys", ListSurveys(mockSvc))

	t.Run("success with filters", func(t *testing.T) {
		mockSvc.On("List", mock.Anything, envID, 24, 12, mock.MatchedBy(func(f *model.SurveyFilterCriteria) bool {
			return f.Name == "nps" &&
				assert.ObjectsAreEqual([]model.SurveyStatus{model.SurveyStatusInProgress, model.SurveyStatusPaused}, f.Status) &&
				f.CreatedBy != nil && f.CreatedBy.UserID == "user-1" &&
				f.SortBy == model.SortByRelevance
		})).Return([]model.SurveySummary{{ID: "s1"}}, nil).Once()

		req := httptest.NewRequest(http.MethodGet,
			"/environments/"+envID+"/surveys?limit=24&offset=12&name=nps&status=inProgress,paused&createdBy=you&sortBy=relevance", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var result struct {
			Data []model.SurveySummary `json:"data"`
		}
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Len(t, result.Data, 1)
		mockSvc.AssertExpectations(t)
	})

	t.Run("defaults", func(t *testing.T) {
		mockSvc.On("List", mock.Anything, envID, 12, 0, &model.SurveyFilterCriteria{SortBy: model.SortByUpdatedAt}).
			Return([]model.SurveySummary{}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/environments/"+envID+"/surveys", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid limit", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/environments/"+envID+"/surveys?limit=abc", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_LIMIT", decodeError(t, resp).Error.Code)
	})

	t.Run("invalid environment id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/environments/nope/surveys", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_ID", decodeError(t, resp).Error.Code)
	})

	t.Run("invalid filter", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/environments/"+envID+"/surveys?status=archived", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		body := decodeError(t, resp)
		assert.Equal(t, "VALIDATION_FAILED", body.Error.Code)
		fields, ok := body.Error.Details["fields"].(map[string]any)
		require.True(t, ok)
		assert.Contains(t, fields, "status[0]")
	})

	t.Run("service error", func(t *testing.T) {
		mockSvc.On("List", mock.Anything, envID, 12, 0, mock.Anything).Return(nil, errors.New("service error")).Once()

		req := httptest.NewRequest(http.MethodGet, "/environments/"+envID+"/surveys", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestCountSurveys(t *testing.T) {
	mockSvc := new(serviceMocks.MockSurveyService)
	app := newApp()
	app.Get("/environments/:environmentId/surveys/count", CountSurveys(mockSvc))

	envID := uuid.New().String()
	mockSvc.On("Count", mock.Anything, envID).Return(7, nil).Once()
	mockSvc.On("Count", mock.Anything, "bad").Return(0, errs.NewInvalidInput("invalid environment id %q", "bad")).Once()

	resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/environments/"+envID+"/surveys/count", nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var result map[string]int
	json.NewDecoder(resp.Body).Decode(&result)
	assert.Equal(t, 7, result["count"])

	resp, _ = app.Test(httptest.NewRequest(http.MethodGet, "/environments/bad/surveys/count", nil))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	mockSvc.AssertExpectations(t)
}

func TestGetSurvey(t *testing.T) {
	mockSvc := new(serviceMocks.MockSurveyService)
	app := newApp()
	app.Get("/surveys/:surveyId", GetSurvey(mockSvc))

	t.Run("success", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Get", mock.Anything, id).Return(&model.SurveySummary{ID: id, ResponseCount: 4}, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/surveys/"+id, nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var result model.SurveySummary
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, id, result.ID)
		assert.Equal(t, 4, result.ResponseCount)
		mockSvc.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Get", mock.Anything, id).Return(nil, errs.NewResourceNotFound("Survey", id)).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/surveys/"+id, nil))

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		body := decodeError(t, resp)
		assert.Equal(t, "NOT_FOUND", body.Error.Code)
		assert.Equal(t, "Survey", body.Error.Details["resource_type"])
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid id", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/surveys/invalid-uuid", nil))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_ID", decodeError(t, resp).Error.Code)
	})
}

func TestDeleteSurvey(t *testing.T) {
	mockSvc := new(serviceMocks.MockSurveyService)
	app := newApp()
	app.Delete("/surveys/:surveyId", DeleteSurvey(mockSvc))

	t.Run("success", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Delete", mock.Anything, id).Return(nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodDelete, "/surveys/"+id, nil))

		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Delete", mock.Anything, id).Return(errs.NewResourceNotFound("Survey", id)).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodDelete, "/surveys/"+id, nil))

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "NOT_FOUND", decodeError(t, resp).Error.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("service error", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Delete", mock.Anything, id).Return(errors.New("delete error")).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodDelete, "/surveys/"+id, nil))

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestCopySurvey(t *testing.T) {
	mockSvc := new(serviceMocks.MockSurveyService)
	app := newApp()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(middleware.UserIDLocalKey, "user-1")
		return c.Next()
	})
	app.Post("/surveys/:surveyId/copy", CopySurvey(mockSvc))

	surveyID := uuid.New().String()
	envID := uuid.New().String()
	targetID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		mockSvc.On("CopyToOtherEnvironment", mock.Anything, envID, surveyID, targetID, "user-1").
			Return(&model.CopiedSurvey{ID: "new-id", EnvironmentID: targetID}, nil).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPost, "/surveys/"+surveyID+"/copy", map[string]string{
			"environmentId":       envID,
			"targetEnvironmentId": targetID,
		}))

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		var result model.CopiedSurvey
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, "new-id", result.ID)
		mockSvc.AssertExpectations(t)
	})

	t.Run("missing target", func(t *testing.T) {
		resp, _ := app.Test(jsonRequest(http.MethodPost, "/surveys/"+surveyID+"/copy", map[string]string{
			"environmentId": envID,
		}))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		body := decodeError(t, resp)
		assert.Equal(t, "VALIDATION_FAILED", body.Error.Code)
		fields := body.Error.Details["fields"].(map[string]any)
		assert.Equal(t, "is required", fields["targetEnvironmentId"])
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/surveys/"+surveyID+"/copy", strings.NewReader("{"))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "BAD_REQUEST", decodeError(t, resp).Error.Code)
	})

	t.Run("invalid images", func(t *testing.T) {
		mockSvc.On("CopyToOtherEnvironment", mock.Anything, envID, surveyID, targetID, "user-1").
			Return(nil, errs.NewInvalidInput("Invalid image file in question 2")).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPost, "/surveys/"+surveyID+"/copy", map[string]string{
			"environmentId":       envID,
			"targetEnvironmentId": targetID,
		}))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Invalid image file in question 2", decodeError(t, resp).Error.Message)
	})
}

func TestGenerateSingleUseLinks(t *testing.T) {
	mockSvc := new(serviceMocks.MockSurveyService)
	app := newApp()
	app.Get("/surveys/:surveyId/single-use-links", GenerateSingleUseLinks(mockSvc))
	id := uuid.New().String()

	mockSvc.On("GenerateSingleUseLinks", mock.Anything, id, 2).Return([]string{"a", "b"}, nil).Once()
	resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/surveys/"+id+"/single-use-links?count=2", nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var result map[string][]string
	json.NewDecoder(resp.Body).Decode(&result)
	assert.Equal(t, []string{"a", "b"}, result["data"])

	resp, _ = app.Test(httptest.NewRequest(http.MethodGet, "/surveys/"+id+"/single-use-links?count=many", nil))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_COUNT", decodeError(t, resp).Error.Code)
	mockSvc.AssertExpectations(t)
}

func TestSegments(t *testing.T) {
	mockSvc := new(serviceMocks.MockSegmentService)
	app := newApp()
	app.Get("/environments/:environmentId/segments", ListSegments(mockSvc))
	app.Put("/surveys/:surveyId/segment", LoadSegment(mockSvc))

	envID := uuid.New().String()
	surveyID := uuid.New().String()
	segmentID := uuid.New().String()
	foreignSegmentID := uuid.New().String()

	t.Run("list", func(t *testing.T) {
		mockSvc.On("ListLoadable", mock.Anything, envID).Return([]model.Segment{{ID: segmentID, Title: "Power users"}}, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/environments/"+envID+"/segments", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var result struct {
			Data []model.Segment `json:"data"`
		}
		json.NewDecoder(resp.Body).Decode(&result)
		require.Len(t, result.Data, 1)
		assert.Equal(t, "Power users", result.Data[0].Title)
	})

	t.Run("load", func(t *testing.T) {
		mockSvc.On("Load", mock.Anything, surveyID, segmentID).
			Return(&model.SurveySegment{SurveyID: surveyID, Segment: &model.Segment{ID: segmentID}}, nil).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPut, "/surveys/"+surveyID+"/segment", map[string]string{"segmentId": segmentID}))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var result model.SurveySegment
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, surveyID, result.SurveyID)
		assert.Equal(t, segmentID, result.Segment.ID)
	})

	t.Run("load from another environment", func(t *testing.T) {
		mockSvc.On("Load", mock.Anything, surveyID, foreignSegmentID).
			Return(nil, errs.NewInvalidInput("segment does not belong to the survey's environment")).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPut, "/surveys/"+surveyID+"/segment", map[string]string{"segmentId": foreignSegmentID}))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("load without segment id", func(t *testing.T) {
		resp, _ := app.Test(jsonRequest(http.MethodPut, "/surveys/"+surveyID+"/segment", map[string]string{}))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "VALIDATION_FAILED", decodeError(t, resp).Error.Code)
	})

	t.Run("load with malformed segment id", func(t *testing.T) {
		resp, _ := app.Test(jsonRequest(http.MethodPut, "/surveys/"+surveyID+"/segment", map[string]string{"segmentId": "not-a-uuid"}))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		body := decodeError(t, resp)
		assert.Equal(t, "VALIDATION_FAILED", body.Error.Code)
		assert.Contains(t, body.Error.Details["fields"], "segmentId")
	})

	mockSvc.AssertExpectations(t)
}

func TestCreateResponse(t *testing.T) {
	mockSvc := new(serviceMocks.MockResponseService)
	app := newApp()
	app.Post("/client/:environmentId/responses", CreateResponse(mockSvc))

	surveyID := uuid.New().String()
	rejectedID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		mockSvc.On("Create", mock.Anything, "env-1", mock.MatchedBy(func(in *model.ResponseInput) bool {
			return in.SurveyID == surveyID && in.Finished && in.Meta.URL == "https://example.com/s/x?suId=abc"
		})).Return(&model.Response{ID: "r1", SurveyID: surveyID}, nil).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPost, "/client/env-1/responses", map[string]any{
			"surveyId": surveyID,
			"finished": true,
			"data":     map[string]any{"q1": "yes"},
			"meta":     map[string]any{"url": "https://example.com/s/x?suId=abc"},
		}))

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		var result map[string]any
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, map[string]any{"id": "r1"}, result)
	})

	t.Run("rejected submission", func(t *testing.T) {
		mockSvc.On("Create", mock.Anything, "env-1", mock.Anything).
			Return(nil, errs.BadRequest("Missing single use id", map[string]any{"surveyId": rejectedID})).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPost, "/client/env-1/responses", map[string]any{"surveyId": rejectedID}))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		body := decodeError(t, resp)
		assert.Equal(t, "BAD_REQUEST", body.Error.Code)
		assert.Equal(t, "Missing single use id", body.Error.Message)
		assert.Equal(t, rejectedID, body.Error.Details["surveyId"])
	})

	t.Run("missing survey id", func(t *testing.T) {
		resp, _ := app.Test(jsonRequest(http.MethodPost, "/client/env-1/responses", map[string]any{"finished": true}))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		body := decodeError(t, resp)
		assert.Equal(t, "VALIDATION_FAILED", body.Error.Code)
		assert.Contains(t, body.Error.Details["fields"], "surveyId")
	})

	malformed := []struct {
		name  string
		body  map[string]any
		field string
	}{
		{name: "malformed survey id", body: map[string]any{"surveyId": "not-a-uuid"}, field: "surveyId"},
		{name: "malformed display id", body: map[string]any{"surveyId": surveyID, "displayId": "d1"}, field: "displayId"},
	}
	for _, tt := range malformed {
		t.Run(tt.name, func(t *testing.T) {
			resp, _ := app.Test(jsonRequest(http.MethodPost, "/client/env-1/responses", tt.body))

			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			body := decodeError(t, resp)
			assert.Equal(t, "VALIDATION_FAILED", body.Error.Code)
			assert.Contains(t, body.Error.Details["fields"], tt.field)
		})
	}

	mockSvc.AssertExpectations(t)
}

func multipartUpload(t *testing.T, surveyID string, withFile bool) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if surveyID != "" {
		require.NoError(t, writer.WriteField("surveyId", surveyID))
	}
	if withFile {
		part, err := writer.CreateFormFile("file", "photo.png")
		require.NoError(t, err)
		part.Write([]byte("hello"))
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/client/env-1/storage", body)
	req.Header.Set(fiber.HeaderContentType, writer.FormDataContentType())
	return req
}

func TestUploadFile(t *testing.T) {
	mockSvc := new(serviceMocks.MockUploadService)
	app := newApp()
	app.Post("/client/:environmentId/storage", UploadFile(mockSvc))
	surveyID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		mockSvc.On("Upload", mock.Anything, "env-1", surveyID, mock.Anything, "photo.png", mock.Anything, int64(5)).
			Return(&model.UploadedFile{Key: "environments/env-1/" + surveyID + "/x.png", URL: "https://files/x"}, nil).Once()

		resp, _ := app.Test(multipartUpload(t, surveyID, true))

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		var result model.UploadedFile
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, "https://files/x", result.URL)
		mockSvc.AssertExpectations(t)
	})

	t.Run("no file", func(t *testing.T) {
		resp, _ := app.Test(multipartUpload(t, surveyID, false))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "FILE_REQUIRED", decodeError(t, resp).Error.Code)
	})

	t.Run("no survey id", func(t *testing.T) {
		resp, _ := app.Test(multipartUpload(t, "", true))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "VALIDATION_FAILED", decodeError(t, resp).Error.Code)
	})

	t.Run("too large", func(t *testing.T) {
		mockSvc.On("Upload", mock.Anything, "env-1", surveyID, mock.Anything, "photo.png", mock.Anything, int64(5)).
			Return(nil, errs.NewInvalidInput("file exceeds the maximum size of %d bytes", 1)).Once()

		resp, _ := app.Test(multipartUpload(t, surveyID, true))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestDownloadFile(t *testing.T) {
	mockSvc := new(serviceMocks.MockUploadService)
	app := newApp()
	app.Get("/client/:environmentId/storage/:surveyId/:fileName", DownloadFile(mockSvc))

	surveyID := uuid.New().String()
	base := "/client/env-1/storage/" + surveyID + "/"

	mockSvc.On("Download", mock.Anything, "env-1", surveyID, "x.png").
		Return(io.NopCloser(strings.NewReader("hello")), storage.ObjectInfo{Size: 5, ContentType: "image/png"}, nil).Once()
	mockSvc.On("Download", mock.Anything, "env-1", surveyID, "gone.png").
		Return(nil, storage.ObjectInfo{}, errs.NewResourceNotFound("File", "gone.png")).Once()

	resp, _ := app.Test(httptest.NewRequest(http.MethodGet, base+"x.png", nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get(fiber.HeaderContentType))
	data, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "hello", string(data))

	resp, _ = app.Test(httptest.NewRequest(http.MethodGet, base+"gone.png", nil))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = app.Test(httptest.NewRequest(http.MethodGet, "/client/env-1/storage/not-a-uuid/x.png", nil))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_ID", decodeError(t, resp).Error.Code)

	mockSvc.AssertExpectations(t)
}

func TestRouting(t *testing.T) {
	app := newApp()
	RegisterRoutes(app, nil, Services{
		Surveys:   new(serviceMocks.MockSurveyService),
		Responses: new(serviceMocks.MockResponseService),
		Segments:  new(serviceMocks.MockSegmentService),
		Uploads:   new(serviceMocks.MockUploadService),
	}, RouteOptions{
		Auth:        config.AuthConfig{JWTSecret: "s3cret"},
		RateLimiter: middleware.NewRateLimiter(config.RateLimitConfig{RequestsPerSecond: 100, Burst: 100}),
		Metrics:     prometheus.NewRegistry(),
	})

	t.Run("not found route", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/non-existent", nil))

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "NOT_FOUND", decodeError(t, resp).Error.Code)
	})

	t.Run("method not allowed", func(t *testing.T) {
		// Health endpoint only allows GET
		resp, _ := app.Test(httptest.NewRequest(http.MethodPost, "/health", nil))

		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
		assert.Equal(t, "METHOD_NOT_ALLOWED", decodeError(t, resp).Error.Code)
	})

	t.Run("management requires a token", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/management/surveys/"+uuid.New().String(), nil))

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "UNAUTHORIZED", decodeError(t, resp).Error.Code)
	})

	t.Run("client api answers preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/v2/client/env-1/responses", nil)
		req.Header.Set(fiber.HeaderOrigin, "https://shop.example.com")
		req.Header.Set(fiber.HeaderAccessControlRequestMethod, http.MethodPost)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
		assert.Equal(t, "*", resp.Header.Get(fiber.HeaderAccessControlAllowOrigin))
	})

	t.Run("metrics", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}
