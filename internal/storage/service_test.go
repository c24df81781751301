package storage

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"consignado-backend/internal/domain/setting"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(t *testing.T, vals map[string]string) (*Service, *fakeObjectAPI) {
	t.Helper()
	f, _ := newTestFactory(vals)
	fake := &fakeObjectAPI{}
	f.defaultS3.api = fake
	s := NewService(f, zap.NewNop())
	s.newName = func(n string) string { return UniqueFileName(n, "fixed123") }
	return s, fake
}

func TestService_UploadDocument_DefaultS3(t *testing.T) {
	s, fake := newTestService(t, map[string]string{})
	ctx := context.Background()

	folder, err := s.CreateClientFolder(ctx, "Ana Souza", "12345678909")
	require.NoError(t, err)

	res, err := s.UploadDocument(ctx, "selfie.jpeg", []byte("img"), "image/jpeg", folder.ID)
	require.NoError(t, err)
	assert.Equal(t, ProviderS3, res.Provider)
	assert.Equal(t, "selfie_fixed123.jpeg", res.FileName)
	assert.Equal(t, "https://default-docs.s3.sa-east-1.amazonaws.com/documents/ANA_SOUZA_123456789-09/selfie_fixed123.jpeg", res.URL)
	require.Len(t, fake.puts, 1)
}

func TestService_UploadBase64Document_StripsDataURL(t *testing.T) {
	s, fake := newTestService(t, map[string]string{})
	payload := "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("png-bytes"))

	_, err := s.UploadBase64Document(context.Background(), "front-id.png", payload, "image/png", "")
	require.NoError(t, err)
	require.Len(t, fake.bodies, 1)
	assert.Equal(t, []byte("png-bytes"), fake.bodies[0])
	assert.Equal(t, "documents/front-id_fixed123.png", *fake.puts[0].Key)
}

func TestService_UploadBase64Document_InvalidPayload(t *testing.T) {
	s, fake := newTestService(t, map[string]string{})
	_, err := s.UploadBase64Document(context.Background(), "a.png", "data:image/png;base64,***", "image/png", "")
	assert.ErrorIs(t, err, ErrInvalidPayload)
	assert.Empty(t, fake.puts)
}

func TestService_GoogleDriveNotConfigured_NoNetwork(t *testing.T) {
	fd := newFakeDrive(t)
	s, _ := newTestService(t, map[string]string{
		setting.KeyStorageProvider:    "google_drive",
		setting.KeyGDriveClientID:     "cid",
		setting.KeyGDriveClientSecret: "secret",
	})
	s.factory.driveTokenURL = fd.srv.URL + "/token"
	ctx := context.Background()

	st := s.Status(ctx)
	assert.Equal(t, ProviderGoogleDrive, st.Provider)
	assert.False(t, st.Configured)

	_, err := s.UploadDocument(ctx, "selfie.jpg", []byte("x"), "image/jpeg", "")
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.EqualValues(t, 0, fd.tokenCalls.Load())
}

func TestService_TestConnection(t *testing.T) {
	s, fake := newTestService(t, map[string]string{})
	require.NoError(t, s.TestConnection(context.Background()))

	fake.headErr = errors.New("forbidden")
	var perr *ProviderError
	assert.ErrorAs(t, s.TestConnection(context.Background()), &perr)
}

func TestDecodeBase64Payload(t *testing.T) {
	want := []byte("hello")
	for _, in := range []string{
		base64.StdEncoding.EncodeToString(want),
		base64.RawStdEncoding.EncodeToString(want),
		"data:application/pdf;base64," + base64.StdEncoding.EncodeToString(want),
	} {
		got, err := DecodeBase64Payload(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := DecodeBase64Payload("")
	assert.ErrorIs(t, err, ErrInvalidPayload)
}
