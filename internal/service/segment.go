package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rs/zerolog"

	"surveyapi/internal/errs"
	"surveyapi/internal/model"
	"surveyapi/internal/repository"
)

// SegmentService backs the segment picker of the survey editor.
type SegmentService interface {
	// ListLoadable returns the public segments of an environment, most recently updated first.
	ListLoadable(ctx context.Context, environmentID string) ([]model.Segment, error)

	// Load attaches a segment to a survey. A private segment the survey used before is removed.
	Load(ctx context.Context, surveyID, segmentID string) (*model.SurveySegment, error)
}

type segmentService struct {
	surveys  repository.SurveyRepository
	segments repository.SegmentRepository
	log      zerolog.Logger
}

// NewSegmentService constructs a new SegmentService.
func NewSegmentService(surveys repository.SurveyRepository, segments repository.SegmentRepository, log zerolog.Logger) SegmentService {
	return &segmentService{surveys: surveys, segments: segments, log: log}
}

func (s *segmentService) ListLoadable(ctx context.Context, environmentID string) ([]model.Segment, error) {
	segments, err := s.segments.ListPublic(ctx, environmentID)
	if err != nil {
		return nil, dbError(s.log, err, "Error getting segments")
	}
	return segments, nil
}

func (s *segmentService) Load(ctx context.Context, surveyID, segmentID string) (*model.SurveySegment, error) {
	const msg = "Error loading segment"

	survey, err := s.surveys.FindByID(ctx, surveyID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.NewResourceNotFound("Survey", surveyID)
		}
		return nil, dbError(s.log, err, msg)
	}

	segment, err := s.segments.FindByID(ctx, segmentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.NewResourceNotFound("Segment", segmentID)
		}
		return nil, dbError(s.log, err, msg)
	}

	if segment.EnvironmentID != survey.EnvironmentID {
		return nil, errs.NewInvalidInput("segment %s does not belong to the survey's environment", segmentID)
	}

	result := &model.SurveySegment{SurveyID: survey.ID, Segment: segment}
	if survey.SegmentID != nil && *survey.SegmentID == segment.ID {
		return result, nil
	}

	var previous *model.Segment
	if survey.SegmentID != nil {
		previous, err = s.segments.FindByID(ctx, *survey.SegmentID)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return nil, dbError(s.log, err, msg)
		}
	}

	if err := s.surveys.UpdateSegment(ctx, survey.ID, segment.ID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.NewResourceNotFound("Survey", surveyID)
		}
		return nil, dbError(s.log, err, msg)
	}

	if previous != nil && previous.IsPrivate {
		if err := s.segments.Delete(ctx, previous.ID); err != nil {
			return nil, dbError(s.log, err, msg)
		}
		s.log.Debug().Str("segment_id", previous.ID).Str("survey_id", survey.ID).Msg("private segment removed")
	}

	return result, nil
}
