package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"surveyapi/internal/model"
	"surveyapi/internal/storage"
)

type MockUploadService struct {
	mock.Mock
}

func (m *MockUploadService) Upload(ctx context.Context, environmentID, surveyID string, r io.Reader, originalFilename, contentType string, size int64) (*model.UploadedFile, error) {
	args := m.Called(ctx, environmentID, surveyID, r, originalFilename, contentType, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UploadedFile), args.Error(1)
}

func (m *MockUploadService) Download(ctx context.Context, environmentID, surveyID, fileName string) (io.ReadCloser, storage.ObjectInfo, error) {
	args := m.Called(ctx, environmentID, surveyID, fileName)
	if args.Get(0) == nil {
		return nil, args.Get(1).(storage.ObjectInfo), args.Error(2)
	}
	return args.Get(0).(io.ReadCloser), args.Get(1).(storage.ObjectInfo), args.Error(2)
}
