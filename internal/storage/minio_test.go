package storage

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/integrationhub/ideaportal/internal/config"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/require"
)

func TestTranslateNoSuchKey(t *testing.T) {
	err := minio.ErrorResponse{Code: "NoSuchKey", Message: "missing"}
	require.ErrorIs(t, translate(err), ErrObjectNotFound)

	other := errors.New("connection refused")
	require.Equal(t, other, translate(other))
}

func TestNewMinIOStorageRequiresEndpoint(t *testing.T) {
	_, err := NewMinIOStorage(context.Background(), config.MinIOConfig{})
	require.Error(t, err)
}

// Runs against a real server only when MINIO_ENDPOINT is set.
func TestMinIOStoragePutGet(t *testing.T) {
	endpoint := os.Getenv("MINIO_ENDPOINT")
	if endpoint == "" {
		t.Skip("MINIO_ENDPOINT not set")
	}
	ctx := context.Background()
	s, err := NewMinIOStorage(ctx, config.MinIOConfig{
		Endpoint:  endpoint,
		AccessKey: os.Getenv("MINIO_ACCESS_KEY"),
		SecretKey: os.Getenv("MINIO_SECRET_KEY"),
		Bucket:    "ideaportal-test",
	})
	require.NoError(t, err)
	require.NoError(t, s.Ping(ctx))

	_, err = s.GetObject(ctx, "does-not-exist.json")
	require.ErrorIs(t, err, ErrObjectNotFound)

	require.NoError(t, s.PutObject(ctx, "probe.json", []byte(`[]`), "application/json"))
	b, err := s.GetObject(ctx, "probe.json")
	require.NoError(t, err)
	require.Equal(t, "[]", string(b))
}
