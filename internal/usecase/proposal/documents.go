package proposal

import (
	"context"
	"errors"
	"strings"

	domain "consignado-backend/internal/domain/proposal"
	"consignado-backend/internal/domain/uow"
	"consignado-backend/internal/storage"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const maxParallelUploads = 4

// UploadDocument stores one identity document and records its URL on the
// proposal. File and folder names come from the proposal, never the client.
func (u *Usecase) UploadDocument(ctx context.Context, proposalID uint64, in UploadInput) (*UploadResult, error) {
	content, err := decodeUpload(in)
	if err != nil {
		return nil, err
	}
	sess, folder, err := u.openFolder(ctx, proposalID)
	if err != nil {
		return nil, err
	}
	return u.store(ctx, sess, proposalID, folder, in, content)
}

// UploadDocuments uploads independent documents concurrently over one
// storage session. One failing document does not stop the others; each
// result carries its own error.
func (u *Usecase) UploadDocuments(ctx context.Context, proposalID uint64, docs []UploadInput) []UploadResult {
	out := make([]UploadResult, len(docs))
	contents := make([][]byte, len(docs))
	pending := make([]int, 0, len(docs))
	for i, d := range docs {
		c, err := decodeUpload(d)
		if err != nil {
			out[i] = UploadResult{DocumentType: d.DocumentType, Error: err.Error()}
			continue
		}
		contents[i] = c
		pending = append(pending, i)
	}
	if len(pending) == 0 {
		return out
	}

	sess, folder, err := u.openFolder(ctx, proposalID)
	if err != nil {
		for _, i := range pending {
			out[i] = UploadResult{DocumentType: docs[i].DocumentType, Error: err.Error()}
		}
		return out
	}

	var g errgroup.Group
	g.SetLimit(maxParallelUploads)
	for _, i := range pending {
		g.Go(func() error {
			res, err := u.store(ctx, sess, proposalID, folder, docs[i], contents[i])
			if err != nil {
				out[i] = UploadResult{DocumentType: docs[i].DocumentType, Error: err.Error()}
				return nil
			}
			out[i] = *res
			return nil
		})
	}
	_ = g.Wait()
	return out
}

func decodeUpload(in UploadInput) ([]byte, error) {
	if _, err := in.DocumentType.Column(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.MimeType) == "" {
		return nil, errors.New("mime_type is required")
	}
	return storage.DecodeBase64Payload(in.Base64Content)
}

// openFolder resolves the active store once and the client folder on it.
func (u *Usecase) openFolder(ctx context.Context, proposalID uint64) (*storage.Session, string, error) {
	sess, err := u.storage.Open(ctx)
	if err != nil {
		return nil, "", err
	}
	folder, err := u.clientFolder(ctx, sess, proposalID)
	if err != nil {
		return nil, "", err
	}
	return sess, folder, nil
}

func (u *Usecase) store(ctx context.Context, sess *storage.Session, proposalID uint64, folder string, in UploadInput, content []byte) (*UploadResult, error) {
	res, err := sess.UploadDocument(ctx, documentFileName(in.DocumentType, in.MimeType), content, in.MimeType, folder)
	if err != nil {
		return nil, err
	}
	if err := u.repo.UpdateDocuments(ctx, proposalID, documentsFor(in.DocumentType, res.URL)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	u.log.Info("document uploaded",
		zap.Uint64("proposal_id", proposalID),
		zap.String("document_type", string(in.DocumentType)),
		zap.String("provider", string(res.Provider)))
	return &UploadResult{DocumentType: in.DocumentType, URL: res.URL}, nil
}

// clientFolder returns the folder hint for uploads. Drive folders are real
// and created once per proposal under the row lock; S3 prefixes are derived.
func (u *Usecase) clientFolder(ctx context.Context, sess *storage.Session, proposalID uint64) (string, error) {
	if sess.Provider() != storage.ProviderGoogleDrive {
		p, err := u.Get(ctx, proposalID)
		if err != nil {
			return "", err
		}
		f, err := sess.CreateClientFolder(ctx, p.FullName, p.NationalID)
		return f.ID, err
	}

	var folderID string
	err := u.uow.WithinProposalTx(ctx, proposalID, func(r uow.Repos, p *domain.Proposal) error {
		if p.FolderID != nil && *p.FolderID != "" {
			folderID = *p.FolderID
			return nil
		}
		f, err := sess.CreateClientFolder(ctx, p.FullName, p.NationalID)
		if err != nil {
			return err
		}
		folderID = f.ID
		return r.Proposals.UpdateDocuments(ctx, p.ID, domain.Documents{FolderID: &f.ID, FolderURL: &f.URL})
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", domain.ErrNotFound
	}
	return folderID, err
}

var mimeExtensions = map[string]string{
	"jpeg":    "jpg",
	"pjpeg":   "jpg",
	"svg+xml": "svg",
	"x-png":   "png",
	"tiff":    "tif",
}

// documentFileName is "<type>.<ext>", e.g. "selfie.jpg". The extension comes
// from the MIME subtype, reduced to [a-z0-9]; jpg when nothing usable is left.
func documentFileName(t domain.DocumentType, mimeType string) string {
	ext := ""
	if _, sub, ok := strings.Cut(mimeType, "/"); ok {
		sub, _, _ = strings.Cut(sub, ";")
		sub = strings.ToLower(strings.TrimSpace(sub))
		if mapped, known := mimeExtensions[sub]; known {
			sub = mapped
		}
		sub, _, _ = strings.Cut(sub, "+")
		ext = strings.Map(func(r rune) rune {
			if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
				return r
			}
			return -1
		}, sub)
	}
	if ext == "" {
		ext = "jpg"
	}
	return string(t) + "." + ext
}

func documentsFor(t domain.DocumentType, url string) domain.Documents {
	var d domain.Documents
	switch t {
	case domain.DocFrontID:
		d.FrontIDURL = &url
	case domain.DocBackID:
		d.BackIDURL = &url
	case domain.DocProofOfResidence:
		d.ProofOfResidenceURL = &url
	case domain.DocSelfie:
		d.SelfieURL = &url
	}
	return d
}
