package storage

import (
	"errors"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"surveyapi/internal/config"
)

func TestTranslateError(t *testing.T) {
	missing := minio.ErrorResponse{Code: "NoSuchKey", Message: "The specified key does not exist."}
	assert.ErrorIs(t, translateError(missing), ErrObjectNotFound)

	denied := minio.ErrorResponse{Code: "AccessDenied"}
	assert.NotErrorIs(t, translateError(denied), ErrObjectNotFound)

	plain := errors.New("connection reset")
	assert.Equal(t, plain, translateError(plain))
}

func TestNewMinIO_Validation(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.MinIOConfig
		wantMsg string
	}{
		{name: "endpoint", cfg: config.MinIOConfig{}, wantMsg: "minio endpoint is required"},
		{name: "credentials", cfg: config.MinIOConfig{Endpoint: "localhost:9000"}, wantMsg: "minio credentials are required"},
		{name: "bucket", cfg: config.MinIOConfig{Endpoint: "localhost:9000", AccessKey: "a", SecretKey: "b"}, wantMsg: "minio bucket is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewMinIO(tt.cfg, zerolog.Nop())
			assert.Nil(t, s)
			assert.EqualError(t, err, tt.wantMsg)
		})
	}
}
