package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const (
	googleTokenURL    = "https://oauth2.googleapis.com/token"
	driveFolderMime   = "application/vnd.google-apps.folder"
	driveFileViewURL  = "https://drive.google.com/file/d/%s/view"
	permissionRetries = 1
)

type DriveOptions struct {
	ClientID     string
	ClientSecret string
	RefreshToken string
	// RootFolderID parents new client folders; empty means Drive root.
	RootFolderID string
	Timeout      time.Duration

	// overrides for non-Google endpoints
	TokenURL    string
	APIEndpoint string
}

func (o DriveOptions) complete() bool {
	return strings.TrimSpace(o.ClientID) != "" &&
		strings.TrimSpace(o.ClientSecret) != "" &&
		strings.TrimSpace(o.RefreshToken) != ""
}

type GoogleDriveStore struct {
	svc  *drive.Service
	root string
	log  *zap.Logger
}

// NewGoogleDriveStore builds an authenticated Drive client. No network call is
// made until the first operation, which exchanges the refresh token.
func NewGoogleDriveStore(ctx context.Context, opts DriveOptions, log *zap.Logger) (*GoogleDriveStore, error) {
	if !opts.complete() {
		return nil, fmt.Errorf("%w: gdrive_client_id, gdrive_client_secret and gdrive_refresh_token are required", ErrNotConfigured)
	}
	if log == nil {
		log = zap.NewNop()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	tokenURL := opts.TokenURL
	if tokenURL == "" {
		tokenURL = googleTokenURL
	}

	conf := &oauth2.Config{
		ClientID:     opts.ClientID,
		ClientSecret: opts.ClientSecret,
		Endpoint:     oauth2.Endpoint{TokenURL: tokenURL, AuthStyle: oauth2.AuthStyleInParams},
	}
	// token exchange gets its own bounded client, detached from the request ctx
	tokenCtx := context.WithValue(context.Background(), oauth2.HTTPClient, &http.Client{Timeout: opts.Timeout})
	src := &retryingTokenSource{
		base: conf.TokenSource(tokenCtx, &oauth2.Token{RefreshToken: opts.RefreshToken}),
		log:  log,
	}
	httpClient := oauth2.NewClient(tokenCtx, oauth2.ReuseTokenSource(nil, src))
	httpClient.Timeout = opts.Timeout

	svcOpts := []option.ClientOption{option.WithHTTPClient(httpClient)}
	if opts.APIEndpoint != "" {
		svcOpts = append(svcOpts, option.WithEndpoint(opts.APIEndpoint))
	}
	svc, err := drive.NewService(ctx, svcOpts...)
	if err != nil {
		return nil, &ProviderError{Provider: ProviderGoogleDrive, Op: "client", Message: err.Error(), Err: err}
	}
	return &GoogleDriveStore{
		svc:  svc,
		root: strings.TrimSpace(opts.RootFolderID),
		log:  log.With(zap.String("provider", string(ProviderGoogleDrive))),
	}, nil
}

func (g *GoogleDriveStore) Provider() Provider { return ProviderGoogleDrive }

func (g *GoogleDriveStore) CreateFolder(ctx context.Context, clientName, nationalID string) (Folder, error) {
	meta := &drive.File{Name: FolderName(clientName, nationalID), MimeType: driveFolderMime}
	if g.root != "" {
		meta.Parents = []string{g.root}
	}
	f, err := g.svc.Files.Create(meta).Fields("id", "webViewLink").Context(ctx).Do()
	if err != nil {
		return Folder{}, g.fail("create folder", err)
	}
	g.log.Info("drive folder created", zap.String("folder_id", f.Id))
	return Folder{ID: f.Id, URL: f.WebViewLink}, nil
}

// Upload stores the file and makes it readable by anyone with the link.
// A file that could not be made public is reported as a failed upload.
func (g *GoogleDriveStore) Upload(ctx context.Context, fileName string, content []byte, mimeType, folder string) (string, error) {
	meta := &drive.File{Name: fileName, MimeType: mimeType}
	if parent := firstNonEmpty(folder, g.root); parent != "" {
		meta.Parents = []string{parent}
	}
	f, err := g.svc.Files.Create(meta).
		Media(bytes.NewReader(content), googleapi.ContentType(mimeType)).
		Fields("id").
		Context(ctx).
		Do()
	if err != nil {
		return "", g.fail("upload", err)
	}

	perm := &drive.Permission{Role: "reader", Type: "anyone"}
	for attempt := 0; ; attempt++ {
		_, err = g.svc.Permissions.Create(f.Id, perm).Context(ctx).Do()
		if err == nil {
			break
		}
		if attempt >= permissionRetries || ctx.Err() != nil {
			g.log.Error("drive permission grant failed", zap.String("file_id", f.Id), zap.Error(err))
			return "", g.fail("grant permission", err)
		}
		g.log.Warn("drive permission grant failed, retrying", zap.String("file_id", f.Id), zap.Error(err))
	}

	g.log.Info("drive file stored", zap.String("file_id", f.Id), zap.Int("bytes", len(content)))
	return fmt.Sprintf(driveFileViewURL, f.Id), nil
}

func (g *GoogleDriveStore) Ping(ctx context.Context) error {
	if _, err := g.svc.Files.List().PageSize(1).Fields("files(id)").Context(ctx).Do(); err != nil {
		return g.fail("ping", err)
	}
	return nil
}

func (g *GoogleDriveStore) fail(op string, err error) error {
	return &ProviderError{Provider: ProviderGoogleDrive, Op: op, Message: driveMessage(err), Err: err}
}

func driveMessage(err error) string {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) && gerr.Message != "" {
		return gerr.Message
	}
	var rerr *oauth2.RetrieveError
	if errors.As(err, &rerr) {
		if rerr.ErrorDescription != "" {
			return "token exchange: " + rerr.ErrorDescription
		}
		if rerr.ErrorCode != "" {
			return "token exchange: " + rerr.ErrorCode
		}
		return "token exchange: " + strings.TrimSpace(string(rerr.Body))
	}
	return err.Error()
}

// retryingTokenSource retries the refresh once when the token endpoint
// could not be reached. A rejected grant is returned as is.
type retryingTokenSource struct {
	base oauth2.TokenSource
	log  *zap.Logger
}

func (s *retryingTokenSource) Token() (*oauth2.Token, error) {
	tok, err := s.base.Token()
	if err == nil {
		return tok, nil
	}
	var rerr *oauth2.RetrieveError
	if errors.As(err, &rerr) {
		return nil, err
	}
	s.log.Warn("drive token exchange failed, retrying", zap.Error(err))
	return s.base.Token()
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
