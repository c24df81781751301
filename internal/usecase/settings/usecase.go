package settings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	domain "consignado-backend/internal/domain/setting"
	"consignado-backend/internal/storage"

	"go.uber.org/zap"
)

var (
	ErrInvalidKey   = errors.New("invalid setting key")
	ErrInvalidValue = errors.New("invalid setting value")
)

// StorageService is the part of storage.Service the admin screens need.
type StorageService interface {
	ResolveProvider(ctx context.Context) storage.Provider
	Status(ctx context.Context) storage.Status
	TestConnection(ctx context.Context) error
}

// secretKeys are never returned in clear text.
var secretKeys = map[string]bool{
	domain.KeyGDriveClientSecret: true,
	domain.KeyGDriveRefreshToken: true,
	domain.KeyS3SecretAccessKey:  true,
}

type Usecase struct {
	repo    domain.Repository
	storage StorageService
	log     *zap.Logger
}

func NewUsecase(r domain.Repository, st StorageService, log *zap.Logger) *Usecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &Usecase{repo: r, storage: st, log: log.Named("settings")}
}

func (u *Usecase) Get(ctx context.Context, key string) (*SettingDTO, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, ErrInvalidKey
	}
	v, err := u.repo.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	dto := &SettingDTO{Key: key, Value: v}
	maskInPlace(dto)
	return dto, nil
}

// Set stores a value. storage_provider only accepts known providers; other
// keys are free-form.
func (u *Usecase) Set(ctx context.Context, key string, in SetInput) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return ErrInvalidKey
	}
	value := strings.TrimSpace(in.Value)
	if key == domain.KeyStorageProvider {
		switch storage.Provider(value) {
		case storage.ProviderS3, storage.ProviderGoogleDrive, storage.ProviderS3Custom:
		default:
			return fmt.Errorf("%w: unknown storage provider %q", ErrInvalidValue, value)
		}
	}
	if err := u.repo.Upsert(ctx, key, value, in.Description); err != nil {
		return err
	}
	fields := []zap.Field{zap.String("key", key)}
	if !secretKeys[key] {
		fields = append(fields, zap.String("value", value))
	}
	u.log.Info("setting updated", fields...)
	return nil
}

func (u *Usecase) List(ctx context.Context) ([]SettingDTO, error) {
	rows, err := u.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]SettingDTO, 0, len(rows))
	for _, s := range rows {
		dto := SettingDTO{Key: s.Key, Value: s.Value, Description: s.Description, UpdatedAt: s.UpdatedAt}
		maskInPlace(&dto)
		out = append(out, dto)
	}
	return out, nil
}

func (u *Usecase) StorageStatus(ctx context.Context) storage.Status {
	return u.storage.Status(ctx)
}

// TestStorage pings the active provider. Provider failures are reported in
// the result, not as an error.
func (u *Usecase) TestStorage(ctx context.Context) TestResult {
	p := u.storage.ResolveProvider(ctx)
	err := u.storage.TestConnection(ctx)
	if err == nil {
		return TestResult{Provider: p, Success: true, Message: "connection OK"}
	}
	u.log.Warn("storage connection test failed", zap.String("provider", string(p)), zap.Error(err))

	msg := err.Error()
	var pe *storage.ProviderError
	switch {
	case errors.Is(err, storage.ErrNotConfigured):
		msg = "provider not configured"
	case errors.As(err, &pe):
		msg = pe.Message
	}
	return TestResult{Provider: p, Success: false, Message: msg}
}

func maskInPlace(s *SettingDTO) {
	if !secretKeys[s.Key] || s.Value == "" {
		return
	}
	s.Value = Mask(s.Value)
	s.Masked = true
}

// Mask keeps the last four characters of long values.
func Mask(v string) string {
	if len(v) <= 8 {
		return "********"
	}
	return "********" + v[len(v)-4:]
}
