package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"surveyapi/internal/errs"
	"surveyapi/internal/model"
	"surveyapi/internal/repository"
)

// ResponseService accepts survey responses from the client API.
type ResponseService interface {
	// Create validates the submission against its survey and stores it.
	// Rejections are returned as *errs.RequestError.
	Create(ctx context.Context, environmentID string, input *model.ResponseInput) (*model.Response, error)
}

// SurveyValidityChecker is implemented by ResponseValidator.
type SurveyValidityChecker interface {
	CheckSurveyValidity(ctx context.Context, survey *model.Survey, environmentID string, input *model.ResponseInput) *errs.RequestError
}

type responseService struct {
	surveys   repository.SurveyRepository
	responses repository.ResponseRepository
	validity  SurveyValidityChecker
	log       zerolog.Logger
	now       func() time.Time
}

// NewResponseService constructs a new ResponseService.
func NewResponseService(
	surveys repository.SurveyRepository,
	responses repository.ResponseRepository,
	validity SurveyValidityChecker,
	log zerolog.Logger,
) ResponseService {
	return &responseService{
		surveys:   surveys,
		responses: responses,
		validity:  validity,
		log:       log,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *responseService) Create(ctx context.Context, environmentID string, input *model.ResponseInput) (*model.Response, error) {
	survey, err := s.surveys.FindByID(ctx, input.SurveyID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || errs.IsInvalidTextRepresentation(err) {
			return nil, errs.NotFound("Survey", &input.SurveyID)
		}
		return nil, dbError(s.log, err, "Error getting survey")
	}

	if reqErr := s.validity.CheckSurveyValidity(ctx, survey, environmentID, input); reqErr != nil {
		return nil, reqErr
	}

	resp := &model.Response{
		ID:          uuid.New().String(),
		CreatedAt:   s.now(),
		SurveyID:    survey.ID,
		Finished:    input.Finished,
		Data:        input.Data,
		Meta:        input.Meta,
		TTC:         input.TTC,
		Variables:   input.Variables,
		SingleUseID: optional(input.SingleUseID),
		Language:    optional(input.Language),
		DisplayID:   optional(input.DisplayID),
		EndingID:    optional(input.EndingID),
	}

	stored, err := s.responses.Create(ctx, resp)
	if err != nil {
		if errs.IsUniqueViolation(err) {
			return nil, errs.BadRequest("Response already submitted for this single use id", map[string]any{
				"surveyId":    survey.ID,
				"singleUseId": input.SingleUseID,
			})
		}
		return nil, dbError(s.log, err, "Error creating response")
	}
	return stored, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
