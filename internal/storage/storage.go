// Package storage persists uploaded identity documents on the configured
// provider: the built-in S3 bucket, an admin-supplied S3-compatible bucket,
// or Google Drive.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

type Provider string

const (
	ProviderS3          Provider = "s3"
	ProviderGoogleDrive Provider = "google_drive"
	ProviderS3Custom    Provider = "s3_custom"
)

// ResolveProvider maps the raw storage_provider setting onto a Provider.
// Anything unset or unknown is the built-in bucket.
func ResolveProvider(raw string) Provider {
	switch p := Provider(strings.TrimSpace(raw)); p {
	case ProviderGoogleDrive, ProviderS3Custom:
		return p
	}
	return ProviderS3
}

var (
	ErrNotConfigured  = errors.New("storage provider not configured")
	ErrInvalidPayload = errors.New("invalid base64 document payload")
)

// ProviderError is an upstream failure (token exchange, Drive API, bucket write).
// Message carries the provider's own explanation when one was returned.
type ProviderError struct {
	Provider Provider
	Op       string
	Message  string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Provider, e.Op, e.Message)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// Folder identifies where a client's documents go. For Drive it is a real
// folder; for S3 the ID is a key prefix and URL is empty.
type Folder struct {
	ID  string `json:"folder_id"`
	URL string `json:"folder_url,omitempty"`
}

type Result struct {
	Provider Provider `json:"provider"`
	FileName string   `json:"file_name"`
	URL      string   `json:"url"`
}

type Status struct {
	Provider   Provider `json:"provider"`
	Configured bool     `json:"configured"`
	Details    string   `json:"details,omitempty"`
}

// DocumentStore is one concrete backend.
type DocumentStore interface {
	Provider() Provider
	CreateFolder(ctx context.Context, clientName, nationalID string) (Folder, error)
	// Upload stores content under fileName (already unique) and returns a retrievable URL.
	Upload(ctx context.Context, fileName string, content []byte, mimeType, folder string) (string, error)
	// Ping verifies credentials and reachability without writing anything.
	Ping(ctx context.Context) error
}
