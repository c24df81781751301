package storage

import (
	"context"
	"encoding/base64"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

var dataURLPrefix = regexp.MustCompile(`^data:[^;]+;base64,`)

type Service struct {
	factory *Factory
	log     *zap.Logger
	newName func(string) string
}

func NewService(factory *Factory, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{factory: factory, log: log, newName: newUniqueFileName}
}

func (s *Service) ResolveProvider(ctx context.Context) Provider {
	return s.factory.Provider(ctx)
}

// Open resolves the active provider once; every call on the returned Session
// goes to the same backend even if the setting changes meanwhile.
func (s *Service) Open(ctx context.Context) (*Session, error) {
	store, err := s.factory.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	return &Session{store: store, newName: s.newName, log: s.log}, nil
}

func (s *Service) CreateClientFolder(ctx context.Context, clientName, nationalID string) (Folder, error) {
	sess, err := s.Open(ctx)
	if err != nil {
		return Folder{}, err
	}
	return sess.CreateClientFolder(ctx, clientName, nationalID)
}

func (s *Service) UploadDocument(ctx context.Context, fileName string, content []byte, mimeType, folder string) (Result, error) {
	sess, err := s.Open(ctx)
	if err != nil {
		return Result{}, err
	}
	return sess.UploadDocument(ctx, fileName, content, mimeType, folder)
}

func (s *Service) UploadBase64Document(ctx context.Context, fileName, payload, mimeType, folder string) (Result, error) {
	content, err := DecodeBase64Payload(payload)
	if err != nil {
		return Result{}, err
	}
	return s.UploadDocument(ctx, fileName, content, mimeType, folder)
}

func (s *Service) Status(ctx context.Context) Status {
	return s.factory.Status(ctx)
}

// TestConnection pings the active provider with its current credentials.
func (s *Service) TestConnection(ctx context.Context) error {
	sess, err := s.Open(ctx)
	if err != nil {
		return err
	}
	return sess.store.Ping(ctx)
}

type Session struct {
	store   DocumentStore
	newName func(string) string
	log     *zap.Logger
}

// NewSession binds an already resolved store.
func NewSession(store DocumentStore, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	return &Session{store: store, newName: newUniqueFileName, log: log}
}

func (s *Session) Provider() Provider { return s.store.Provider() }

func (s *Session) CreateClientFolder(ctx context.Context, clientName, nationalID string) (Folder, error) {
	return s.store.CreateFolder(ctx, clientName, nationalID)
}

func (s *Session) UploadDocument(ctx context.Context, fileName string, content []byte, mimeType, folder string) (Result, error) {
	name := s.newName(fileName)
	url, err := s.store.Upload(ctx, name, content, mimeType, folder)
	if err != nil {
		s.log.Warn("document upload failed",
			zap.String("provider", string(s.store.Provider())), zap.String("file", name), zap.Error(err))
		return Result{}, err
	}
	return Result{Provider: s.store.Provider(), FileName: name, URL: url}, nil
}

func (s *Session) UploadBase64Document(ctx context.Context, fileName, payload, mimeType, folder string) (Result, error) {
	content, err := DecodeBase64Payload(payload)
	if err != nil {
		return Result{}, err
	}
	return s.UploadDocument(ctx, fileName, content, mimeType, folder)
}

// DecodeBase64Payload accepts raw base64 or a data URL.
func DecodeBase64Payload(payload string) ([]byte, error) {
	raw := dataURLPrefix.ReplaceAllString(strings.TrimSpace(payload), "")
	raw = strings.TrimRight(raw, "=")
	if raw == "" {
		return nil, ErrInvalidPayload
	}
	b, err := base64.RawStdEncoding.DecodeString(raw)
	if err != nil {
		return nil, ErrInvalidPayload
	}
	return b, nil
}
