package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"surveyapi/internal/errs"
	"surveyapi/internal/model"
	"surveyapi/internal/repository"
	"surveyapi/internal/storage"
)

var ErrReaderNil = errors.New("reader is nil")

// UploadOptions bounds client uploads.
type UploadOptions struct {
	MaxSizeBytes int64
	URLExpiry    time.Duration
}

// UploadService stores files respondents attach to file-upload questions.
type UploadService interface {
	// Upload streams the content to object storage under the survey's prefix and returns a
	// presigned download URL. The stored name is a UUID plus the original extension.
	Upload(ctx context.Context, environmentID, surveyID string, r io.Reader, originalFilename, contentType string, size int64) (*model.UploadedFile, error)

	// Download opens a stored file. The caller closes the reader.
	Download(ctx context.Context, environmentID, surveyID, fileName string) (io.ReadCloser, storage.ObjectInfo, error)
}

type uploadService struct {
	store   storage.Storage
	surveys repository.SurveyRepository
	opts    UploadOptions
	log     zerolog.Logger
}

// NewUploadService constructs a new UploadService.
func NewUploadService(store storage.Storage, surveys repository.SurveyRepository, opts UploadOptions, log zerolog.Logger) UploadService {
	return &uploadService{store: store, surveys: surveys, opts: opts, log: log}
}

func objectKey(environmentID, surveyID, fileName string) string {
	return path.Join("environments", environmentID, surveyID, fileName)
}

// checkSurvey makes sure the survey exists in the environment. A survey of another
// environment is reported as missing.
func (s *uploadService) checkSurvey(ctx context.Context, environmentID, surveyID string) error {
	survey, err := s.surveys.FindByID(ctx, surveyID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return errs.NewResourceNotFound("Survey", surveyID)
		}
		return dbError(s.log, err, "Error getting survey")
	}
	if survey.EnvironmentID != environmentID {
		return errs.NewResourceNotFound("Survey", surveyID)
	}
	return nil
}

func (s *uploadService) Upload(ctx context.Context, environmentID, surveyID string, r io.Reader, originalFilename, contentType string, size int64) (*model.UploadedFile, error) {
	if r == nil {
		return nil, ErrReaderNil
	}
	if s.opts.MaxSizeBytes > 0 && size > s.opts.MaxSizeBytes {
		return nil, errs.NewInvalidInput("file exceeds the maximum size of %d bytes", s.opts.MaxSizeBytes)
	}
	if err := s.checkSurvey(ctx, environmentID, surveyID); err != nil {
		return nil, err
	}

	genName := uuid.New().String() + strings.ToLower(filepath.Ext(originalFilename))
	key := objectKey(environmentID, surveyID, genName)

	objInfo, err := s.store.Put(ctx, key, r, storage.PutObjectOptions{
		Size:        size,
		ContentType: contentType,
		Metadata: map[string]string{
			"original-filename": originalFilename,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	u, err := s.store.PresignGet(ctx, key, s.opts.URLExpiry)
	if err != nil {
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("presign failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("presign failed: %w", err)
	}

	s.log.Info().
		Str("environment_id", environmentID).
		Str("survey_id", surveyID).
		Str("key", objInfo.Key).
		Int64("size", objInfo.Size).
		Msg("file uploaded")

	return &model.UploadedFile{
		Key:              objInfo.Key,
		FileName:         genName,
		OriginalFileName: originalFilename,
		Size:             objInfo.Size,
		ContentType:      objInfo.ContentType,
		URL:              u,
	}, nil
}

func (s *uploadService) Download(ctx context.Context, environmentID, surveyID, fileName string) (io.ReadCloser, storage.ObjectInfo, error) {
	if fileName == "" || path.Base(fileName) != fileName || fileName == "." || fileName == ".." {
		return nil, storage.ObjectInfo{}, errs.NewInvalidInput("invalid file name %q", fileName)
	}
	if err := s.checkSurvey(ctx, environmentID, surveyID); err != nil {
		return nil, storage.ObjectInfo{}, err
	}

	rc, info, err := s.store.Get(ctx, objectKey(environmentID, surveyID, fileName))
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, storage.ObjectInfo{}, errs.NewResourceNotFound("File", fileName)
		}
		return nil, storage.ObjectInfo{}, fmt.Errorf("download from storage: %w", err)
	}
	return rc, info, nil
}
