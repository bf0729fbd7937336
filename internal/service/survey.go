package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"surveyapi/internal/crypto"
	"surveyapi/internal/errs"
	"surveyapi/internal/model"
	"surveyapi/internal/repository"
)

// MaxSingleUseLinks caps how many links one request may generate.
const MaxSingleUseLinks = 5000

// SurveyService defines the survey management use cases.
type SurveyService interface {
	// List returns surveys of an environment. A limit of zero means no limit.
	List(ctx context.Context, environmentID string, limit, offset int, filter *model.SurveyFilterCriteria) ([]model.SurveySummary, error)

	// Get returns a single survey list row.
	Get(ctx context.Context, surveyID string) (*model.SurveySummary, error)

	// Delete removes a survey and, for app surveys, its private segment.
	Delete(ctx context.Context, surveyID string) error

	// Count returns how many surveys an environment has.
	Count(ctx context.Context, environmentID string) (int, error)

	// CopyToOtherEnvironment duplicates a survey as a draft in the target environment.
	CopyToOtherEnvironment(ctx context.Context, environmentID, surveyID, targetEnvironmentID, userID string) (*model.CopiedSurvey, error)

	// GenerateSingleUseLinks returns count fresh single-use survey links.
	GenerateSingleUseLinks(ctx context.Context, surveyID string, count int) ([]string, error)
}

// SurveyOptions carries the settings surveyService needs besides its repositories.
type SurveyOptions struct {
	PublicURL     string
	EncryptionKey string
}

type surveyService struct {
	surveys      repository.SurveyRepository
	segments     repository.SegmentRepository
	environments repository.EnvironmentRepository
	opts         SurveyOptions
	log          zerolog.Logger
}

// NewSurveyService constructs a new SurveyService.
func NewSurveyService(
	surveys repository.SurveyRepository,
	segments repository.SegmentRepository,
	environments repository.EnvironmentRepository,
	opts SurveyOptions,
	log zerolog.Logger,
) SurveyService {
	return &surveyService{
		surveys:      surveys,
		segments:     segments,
		environments: environments,
		opts:         opts,
		log:          log,
	}
}

func (s *surveyService) List(ctx context.Context, environmentID string, limit, offset int, filter *model.SurveyFilterCriteria) ([]model.SurveySummary, error) {
	if limit < 0 {
		limit = 0
	}
	if offset < 0 {
		offset = 0
	}

	if filter != nil && filter.SortBy == model.SortByRelevance {
		return s.listByRelevance(ctx, environmentID, limit, offset, filter)
	}

	var sortBy model.SortBy
	if filter != nil {
		sortBy = filter.SortBy
	}
	items, err := s.surveys.List(ctx, repository.SurveyListQuery{
		EnvironmentID: environmentID,
		Filter:        filter,
		OrderBy:       sortBy,
		Page:          repository.PageQuery{Limit: limit, Offset: offset},
	})
	if err != nil {
		return nil, dbError(s.log, err, "Error getting surveys")
	}
	return items, nil
}

// listByRelevance pages through in-progress surveys first and continues with the rest.
func (s *surveyService) listByRelevance(ctx context.Context, environmentID string, limit, offset int, filter *model.SurveyFilterCriteria) ([]model.SurveySummary, error) {
	const msg = "Error getting surveys sorted by relevance"

	inProgressCount, err := s.surveys.Count(ctx, repository.SurveyListQuery{
		EnvironmentID: environmentID,
		Filter:        filter,
		Scope:         repository.ScopeInProgress,
	})
	if err != nil {
		return nil, dbError(s.log, err, msg)
	}

	surveys := make([]model.SurveySummary, 0)
	if offset <= inProgressCount {
		inProgress, err := s.surveys.List(ctx, repository.SurveyListQuery{
			EnvironmentID: environmentID,
			Filter:        filter,
			Scope:         repository.ScopeInProgress,
			OrderBy:       model.SortByUpdatedAt,
			Page:          repository.PageQuery{Limit: limit, Offset: offset},
		})
		if err != nil {
			return nil, dbError(s.log, err, msg)
		}
		surveys = append(surveys, inProgress...)
	}

	if limit > 0 && len(surveys) < limit {
		rest, err := s.surveys.List(ctx, repository.SurveyListQuery{
			EnvironmentID: environmentID,
			Filter:        filter,
			Scope:         repository.ScopeNotInProgress,
			OrderBy:       model.SortByUpdatedAt,
			Page: repository.PageQuery{
				Limit:  limit - len(surveys),
				Offset: max(0, offset-inProgressCount),
			},
		})
		if err != nil {
			return nil, dbError(s.log, err, msg)
		}
		surveys = append(surveys, rest...)
	}

	return surveys, nil
}

func (s *surveyService) Get(ctx context.Context, surveyID string) (*model.SurveySummary, error) {
	survey, err := s.surveys.FindSummaryByID(ctx, surveyID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.NewResourceNotFound("Survey", surveyID)
		}
		return nil, dbError(s.log, err, "Error getting survey")
	}
	return survey, nil
}

func (s *surveyService) Delete(ctx context.Context, surveyID string) error {
	const msg = "Error deleting survey"

	deleted, err := s.surveys.Delete(ctx, surveyID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return errs.NewResourceNotFound("Survey", surveyID)
		}
		return dbError(s.log, err, msg)
	}

	if deleted.Type == model.SurveyTypeApp && deleted.Segment != nil && deleted.Segment.IsPrivate {
		if err := s.segments.Delete(ctx, deleted.Segment.ID); err != nil {
			return dbError(s.log, err, msg)
		}
	}
	return nil
}

func (s *surveyService) Count(ctx context.Context, environmentID string) (int, error) {
	if _, err := uuid.Parse(environmentID); err != nil {
		return 0, errs.NewInvalidInput("invalid environment id %q", environmentID)
	}
	n, err := s.surveys.Count(ctx, repository.SurveyListQuery{EnvironmentID: environmentID})
	if err != nil {
		return 0, dbError(s.log, err, "Error getting survey count")
	}
	return n, nil
}

func (s *surveyService) CopyToOtherEnvironment(ctx context.Context, environmentID, surveyID, targetEnvironmentID, userID string) (*model.CopiedSurvey, error) {
	const msg = "Error copying survey to other environment"
	isSameEnvironment := environmentID == targetEnvironmentID

	var (
		envExists bool
		project   *model.ProjectWithLanguages
		source    *model.SurveyCopySource
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		envExists, err = s.environments.Exists(gctx, environmentID)
		return err
	})
	g.Go(func() (err error) {
		project, err = s.environments.FindProjectWithLanguages(gctx, environmentID)
		if errors.Is(err, sql.ErrNoRows) {
			project, err = nil, nil
		}
		return err
	})
	g.Go(func() (err error) {
		source, err = s.surveys.FindCopySource(gctx, surveyID)
		if errors.Is(err, sql.ErrNoRows) {
			source, err = nil, nil
		}
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, dbError(s.log, err, msg)
	}

	if !envExists {
		return nil, errs.NewResourceNotFound("Environment", environmentID)
	}
	if project == nil {
		return nil, errs.NewResourceNotFound("Project", environmentID)
	}
	if source == nil {
		return nil, errs.NewResourceNotFound("Survey", surveyID)
	}

	targetProject := project
	var targetActionClasses []model.ActionClass
	if !isSameEnvironment {
		var (
			targetExists bool
			tp           *model.ProjectWithLanguages
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() (err error) {
			targetExists, err = s.environments.Exists(gctx, targetEnvironmentID)
			return err
		})
		g.Go(func() (err error) {
			tp, err = s.environments.FindProjectWithLanguages(gctx, targetEnvironmentID)
			if errors.Is(err, sql.ErrNoRows) {
				tp, err = nil, nil
			}
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, dbError(s.log, err, msg)
		}
		if !targetExists {
			return nil, errs.NewResourceNotFound("Environment", targetEnvironmentID)
		}
		if tp == nil {
			return nil, errs.NewResourceNotFound("Project", targetEnvironmentID)
		}
		targetProject = tp

		acs, err := s.environments.ListActionClasses(ctx, targetEnvironmentID)
		if err != nil {
			return nil, dbError(s.log, err, msg)
		}
		targetActionClasses = acs
	}

	segmentTitleTaken := false
	if seg := source.Segment; seg != nil && !seg.IsPrivate && !isSameEnvironment {
		taken, err := s.segments.PublicTitleExists(ctx, targetEnvironmentID, seg.Title)
		if err != nil {
			return nil, dbError(s.log, err, msg)
		}
		segmentTitleTaken = taken
	}

	plan, err := buildCopyPlan(copyInput{
		source:              source,
		newSurveyID:         uuid.New().String(),
		newSegmentID:        uuid.New().String(),
		targetEnvironmentID: targetEnvironmentID,
		targetProject:       targetProject,
		sameEnvironment:     isSameEnvironment,
		targetActionClasses: targetActionClasses,
		segmentTitleTaken:   segmentTitleTaken,
		userID:              userID,
		now:                 nowFunc(),
	})
	if err != nil {
		return nil, err
	}

	copied, err := s.surveys.CreateCopy(ctx, plan)
	if err != nil {
		return nil, dbError(s.log, err, msg)
	}
	return copied, nil
}

func (s *surveyService) GenerateSingleUseLinks(ctx context.Context, surveyID string, count int) ([]string, error) {
	if count < 1 || count > MaxSingleUseLinks {
		return nil, errs.NewInvalidInput("count must be between 1 and %d", MaxSingleUseLinks)
	}

	survey, err := s.surveys.FindByID(ctx, surveyID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.NewResourceNotFound("Survey", surveyID)
		}
		return nil, dbError(s.log, err, "Error getting survey")
	}
	if survey.SingleUse == nil || !survey.SingleUse.Enabled {
		return nil, errs.NewInvalidInput("single use links are not enabled for survey %s", surveyID)
	}

	base := strings.TrimRight(s.opts.PublicURL, "/") + "/s/" + url.PathEscape(survey.ID) + "?suId="
	links := make([]string, 0, count)
	for i := 0; i < count; i++ {
		id := uuid.New().String()
		if survey.SingleUse.IsEncrypted {
			id, err = crypto.SymmetricEncrypt(id, s.opts.EncryptionKey)
			if err != nil {
				return nil, fmt.Errorf("encrypt single use id: %w", err)
			}
		}
		links = append(links, base+url.QueryEscape(id))
	}
	return links, nil
}
