package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveProvider(t *testing.T) {
	cases := map[string]Provider{
		"":             ProviderS3,
		"s3":           ProviderS3,
		"google_drive": ProviderGoogleDrive,
		" s3_custom ":  ProviderS3Custom,
		"dropbox":      ProviderS3,
		"GOOGLE_DRIVE": ProviderS3,
	}
	for raw, want := range cases {
		assert.Equal(t, want, ResolveProvider(raw), "raw=%q", raw)
	}
}

func TestFormatNationalID(t *testing.T) {
	assert.Equal(t, "123.456.789-09", FormatNationalID("12345678909"))
	assert.Equal(t, "123.456.789-09", FormatNationalID("123.456.789-09"))
	assert.Equal(t, "1234", FormatNationalID(" 1234 "))
}

func TestFolderNameAndToken(t *testing.T) {
	name := FolderName("  José da Conceição ", "12345678909")
	assert.Equal(t, "JOSÉ DA CONCEIÇÃO 123.456.789-09", name)
	assert.Equal(t, "JOSE_DA_CONCEICAO_123456789-09", FolderToken(name))

	assert.Equal(t, "A_B-C", FolderToken("A  B-C!@#"))
}

func TestUniqueFileName(t *testing.T) {
	assert.Equal(t, "selfie_abcd1234.jpeg", UniqueFileName("selfie.jpeg", "abcd1234"))
	assert.Equal(t, "archive.tar_abcd1234.gz", UniqueFileName("archive.tar.gz", "abcd1234"))
	assert.Equal(t, "scan_abcd1234.bin", UniqueFileName("scan", "abcd1234"))
	assert.Equal(t, "document_abcd1234.pdf", UniqueFileName(".pdf", "abcd1234"))

	got := newUniqueFileName("front-id.png")
	assert.Regexp(t, `^front-id_[a-f0-9]{8}\.png$`, got)
	assert.NotEqual(t, got, newUniqueFileName("front-id.png"))
}

func TestObjectKey(t *testing.T) {
	assert.Equal(t, "documents/JOSE_12345678909/selfie_x.jpg", ObjectKey("JOSE_12345678909", "selfie_x.jpg"))
	assert.Equal(t, "documents/selfie_x.jpg", ObjectKey("", "selfie_x.jpg"))
	assert.Equal(t, "documents/a/b.jpg", ObjectKey("/a/", "b.jpg"))
}
