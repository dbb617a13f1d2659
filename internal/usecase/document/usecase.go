package document

import (
	"context"
	"errors"
	"net/http"

	domain "contract-approval/internal/domain/document"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type UploadInput struct {
	Name        string
	ContentType string
	Data        []byte
}

type UploadDTO struct {
	IPFSHash string `json:"ipfsHash"`
	Size     int64  `json:"size"`
}

type Usecase struct {
	repo     domain.Repository
	maxBytes int64
	logger   *zap.Logger
}

func NewUsecase(repo domain.Repository, maxBytes int64, logger *zap.Logger) *Usecase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Usecase{repo: repo, maxBytes: maxBytes, logger: logger}
}

func (u *Usecase) MaxBytes() int64 { return u.maxBytes }

// Upload stores the bytes under their content id. Uploading the same bytes twice returns the same id.
func (u *Usecase) Upload(ctx context.Context, in UploadInput) (*UploadDTO, error) {
	if len(in.Data) == 0 {
		return nil, domain.ErrEmpty
	}
	if u.maxBytes > 0 && int64(len(in.Data)) > u.maxBytes {
		return nil, domain.ErrTooLarge
	}
	c, err := domain.ComputeCID(in.Data)
	if err != nil {
		return nil, err
	}
	ct := in.ContentType
	if ct == "" {
		ct = http.DetectContentType(in.Data)
	}
	doc := &domain.Document{
		CID:         c.String(),
		Name:        in.Name,
		ContentType: ct,
		Size:        int64(len(in.Data)),
		Content:     in.Data,
	}
	if err := u.repo.Create(ctx, doc); err != nil {
		return nil, err
	}
	u.logger.Info("document stored", zap.String("cid", doc.CID), zap.Int64("size", doc.Size))
	return &UploadDTO{IPFSHash: doc.CID, Size: doc.Size}, nil
}

func (u *Usecase) Get(ctx context.Context, raw string) (*domain.Document, error) {
	c, err := domain.ParseCID(raw)
	if err != nil {
		return nil, err
	}
	doc, err := u.repo.GetByCID(ctx, c.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return doc, nil
}
