package storage

import (
	"context"
	"errors"
	"testing"

	"consignado-backend/internal/domain/setting"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memSettings struct {
	vals map[string]string
	err  error
}

func (m *memSettings) Get(_ context.Context, key string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return m.vals[key], nil
}

func newTestFactory(vals map[string]string) (*Factory, *memSettings) {
	ms := &memSettings{vals: vals}
	return NewFactory(ms, S3Options{Bucket: "default-docs", Region: "sa-east-1"}, 0, zap.NewNop()), ms
}

func TestFactory_DefaultsToBuiltinS3(t *testing.T) {
	f, _ := newTestFactory(map[string]string{})
	store, err := f.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ProviderS3, store.Provider())
	assert.Equal(t, Status{Provider: ProviderS3, Configured: true, Details: "default S3 (built-in)"}, f.Status(context.Background()))
}

func TestFactory_SettingsOutageDegradesToDefault(t *testing.T) {
	f, ms := newTestFactory(map[string]string{setting.KeyStorageProvider: "google_drive"})
	ms.err = errors.New("db down")

	assert.Equal(t, ProviderS3, f.Provider(context.Background()))
	store, err := f.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ProviderS3, store.Provider())
}

func TestFactory_GoogleDriveMissingRefreshToken(t *testing.T) {
	f, _ := newTestFactory(map[string]string{
		setting.KeyStorageProvider:    "google_drive",
		setting.KeyGDriveClientID:     "cid",
		setting.KeyGDriveClientSecret: "secret",
	})
	ctx := context.Background()

	assert.Equal(t, Status{Provider: ProviderGoogleDrive, Configured: false, Details: "Google Drive not configured"}, f.Status(ctx))
	_, err := f.Resolve(ctx)
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestFactory_GoogleDriveConfigured(t *testing.T) {
	fd := newFakeDrive(t)
	f, _ := newTestFactory(map[string]string{
		setting.KeyStorageProvider:    "google_drive",
		setting.KeyGDriveClientID:     "cid",
		setting.KeyGDriveClientSecret: "secret",
		setting.KeyGDriveRefreshToken: "rt",
		setting.KeyGDriveFolderID:     "root-9",
	})
	f.driveTokenURL = fd.srv.URL + "/token"
	f.driveEndpoint = fd.srv.URL + "/drive/v3/"
	ctx := context.Background()

	assert.True(t, f.Status(ctx).Configured)
	store, err := f.Resolve(ctx)
	require.NoError(t, err)
	require.Equal(t, ProviderGoogleDrive, store.Provider())

	_, err = store.CreateFolder(ctx, "Ana", "12345678909")
	require.NoError(t, err)
	assert.Equal(t, []any{"root-9"}, fd.lastFolder["parents"])
	// Resolve itself made no network call
	assert.EqualValues(t, 1, fd.tokenCalls.Load())
}

func TestFactory_CustomS3(t *testing.T) {
	f, ms := newTestFactory(map[string]string{
		setting.KeyStorageProvider: "s3_custom",
		setting.KeyS3Bucket:        "partner-docs",
	})
	ctx := context.Background()

	st := f.Status(ctx)
	assert.Equal(t, ProviderS3Custom, st.Provider)
	assert.False(t, st.Configured)
	_, err := f.Resolve(ctx)
	assert.ErrorIs(t, err, ErrNotConfigured)

	ms.vals[setting.KeyS3AccessKeyID] = "AKIA"
	ms.vals[setting.KeyS3SecretAccessKey] = "shh"
	ms.vals[setting.KeyS3Endpoint] = "https://minio.local"
	assert.True(t, f.Status(ctx).Configured)
	store, err := f.Resolve(ctx)
	require.NoError(t, err)
	custom, ok := store.(*CustomS3Store)
	require.True(t, ok)
	assert.Equal(t, "partner-docs", custom.bucket)
	assert.Equal(t, "https://minio.local", custom.endpoint)
}
