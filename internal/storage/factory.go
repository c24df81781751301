package storage

import (
	"context"
	"fmt"
	"time"

	"consignado-backend/internal/domain/setting"

	"go.uber.org/zap"
)

// SettingsReader returns "" for unset keys.
type SettingsReader interface {
	Get(ctx context.Context, key string) (string, error)
}

// Factory builds the DocumentStore for whatever provider the settings name
// at call time, so an admin switch takes effect on the next request.
type Factory struct {
	settings  SettingsReader
	defaultS3 *S3Store
	timeout   time.Duration
	log       *zap.Logger

	// Drive endpoint overrides, empty in production
	driveTokenURL string
	driveEndpoint string
}

func NewFactory(settings SettingsReader, defaultS3 S3Options, timeout time.Duration, log *zap.Logger) *Factory {
	if log == nil {
		log = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	defaultS3.Timeout = timeout
	return &Factory{
		settings:  settings,
		defaultS3: NewS3Store(defaultS3, log),
		timeout:   timeout,
		log:       log,
	}
}

// Provider reads storage_provider. A failing settings store resolves to the default.
func (f *Factory) Provider(ctx context.Context) Provider {
	raw, err := f.settings.Get(ctx, setting.KeyStorageProvider)
	if err != nil {
		f.log.Warn("read storage provider setting", zap.Error(err))
		return ProviderS3
	}
	return ResolveProvider(raw)
}

// Resolve returns the active store. Missing credentials fail with
// ErrNotConfigured before any network call.
func (f *Factory) Resolve(ctx context.Context) (DocumentStore, error) {
	p := f.Provider(ctx)
	switch p {
	case ProviderGoogleDrive:
		opts, err := f.driveOptions(ctx)
		if err != nil {
			return nil, err
		}
		return NewGoogleDriveStore(ctx, opts, f.log)
	case ProviderS3Custom:
		opts, err := f.customS3Options(ctx)
		if err != nil {
			return nil, err
		}
		return NewCustomS3Store(opts, f.log)
	default:
		return f.defaultS3, nil
	}
}

// Status reports whether the active provider has what it needs. It never fails.
func (f *Factory) Status(ctx context.Context) Status {
	p := f.Provider(ctx)
	switch p {
	case ProviderGoogleDrive:
		opts, err := f.driveOptions(ctx)
		if err != nil || !opts.complete() {
			return Status{Provider: p, Configured: false, Details: "Google Drive not configured"}
		}
		return Status{Provider: p, Configured: true, Details: "Google Drive configured"}
	case ProviderS3Custom:
		opts, err := f.customS3Options(ctx)
		if err != nil || opts.AccessKeyID == "" || opts.Bucket == "" {
			return Status{Provider: p, Configured: false, Details: "custom S3 not configured"}
		}
		return Status{Provider: p, Configured: true, Details: "custom S3 configured"}
	default:
		return Status{Provider: ProviderS3, Configured: true, Details: "default S3 (built-in)"}
	}
}

func (f *Factory) driveOptions(ctx context.Context) (DriveOptions, error) {
	vals, err := f.read(ctx,
		setting.KeyGDriveClientID,
		setting.KeyGDriveClientSecret,
		setting.KeyGDriveRefreshToken,
		setting.KeyGDriveFolderID,
	)
	if err != nil {
		return DriveOptions{}, err
	}
	return DriveOptions{
		ClientID:     vals[0],
		ClientSecret: vals[1],
		RefreshToken: vals[2],
		RootFolderID: vals[3],
		Timeout:      f.timeout,
		TokenURL:     f.driveTokenURL,
		APIEndpoint:  f.driveEndpoint,
	}, nil
}

func (f *Factory) customS3Options(ctx context.Context) (S3Options, error) {
	vals, err := f.read(ctx,
		setting.KeyS3AccessKeyID,
		setting.KeyS3SecretAccessKey,
		setting.KeyS3Bucket,
		setting.KeyS3Region,
		setting.KeyS3Endpoint,
	)
	if err != nil {
		return S3Options{}, err
	}
	return S3Options{
		AccessKeyID:     vals[0],
		SecretAccessKey: vals[1],
		Bucket:          vals[2],
		Region:          vals[3],
		Endpoint:        vals[4],
		Timeout:         f.timeout,
	}, nil
}

func (f *Factory) read(ctx context.Context, keys ...string) ([]string, error) {
	out := make([]string, len(keys))
	for i, k := range keys {
		v, err := f.settings.Get(ctx, k)
		if err != nil {
			return nil, fmt.Errorf("read setting %s: %w", k, err)
		}
		out[i] = v
	}
	return out, nil
}
