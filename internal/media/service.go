package media

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/Developer-Chandan-Dev/fund-raising/pkg/config"
	pkgerrors "github.com/Developer-Chandan-Dev/fund-raising/pkg/errors"
)

// allowedImageTypes maps accepted upload content types to file extensions.
var allowedImageTypes = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// UploadInput describes one multipart file forwarded to object storage.
type UploadInput struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// UploadResult is the stored object key plus its public URL.
type UploadResult struct {
	ObjectKey string `json:"object_key"`
	URL       string `json:"url"`
}

// Service stores and removes campaign images.
type Service interface {
	Upload(ctx context.Context, input UploadInput) (*UploadResult, error)
	Delete(ctx context.Context, objectKey string) error
	DeleteAll(ctx context.Context, objectKeys ...string) error
}

type objectStore interface {
	UploadObject(ctx context.Context, bucket, object, contentType string, body io.Reader) (string, error)
	DeleteObject(ctx context.Context, bucket, object string) error
	PublicURL(bucket, object string) string
}

type service struct {
	store    objectStore
	maxBytes int64
}

// ServiceParams bundles the dependencies required to build a media service.
type ServiceParams struct {
	Store objectStore
	Media config.MediaConfig
}

// NewService constructs a media service with the provided object store.
func NewService(params ServiceParams) (Service, error) {
	if params.Store == nil {
		return nil, fmt.Errorf("object store is required")
	}
	maxMB := params.Media.MaxUploadMB
	if maxMB <= 0 {
		maxMB = 10
	}
	return &service{store: params.Store, maxBytes: int64(maxMB) << 20}, nil
}

// Upload streams the file through to object storage. The file body is never
// buffered on disk.
func (s *service) Upload(ctx context.Context, input UploadInput) (*UploadResult, error) {
	contentType := strings.ToLower(strings.TrimSpace(input.ContentType))
	ext, ok := allowedImageTypes[contentType]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unsupported image type").
			WithDetails(map[string]any{"content_type": input.ContentType})
	}
	if input.Size > s.maxBytes {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "image exceeds the upload size limit")
	}
	if input.Body == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "empty upload body")
	}

	objectKey := path.Join("campaigns", uuid.New().String()+ext)

	// LimitReader backstops clients that lie about Content-Length.
	body := io.LimitReader(input.Body, s.maxBytes+1)
	stored, err := s.store.UploadObject(ctx, "", objectKey, contentType, body)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upload image")
	}

	return &UploadResult{
		ObjectKey: stored,
		URL:       s.store.PublicURL("", stored),
	}, nil
}

func (s *service) Delete(ctx context.Context, objectKey string) error {
	if strings.TrimSpace(objectKey) == "" {
		return nil
	}
	if err := s.store.DeleteObject(ctx, "", objectKey); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete image")
	}
	return nil
}

// DeleteAll removes every listed object, collecting failures instead of
// stopping at the first one.
func (s *service) DeleteAll(ctx context.Context, objectKeys ...string) error {
	var err error
	for _, key := range objectKeys {
		err = multierr.Append(err, s.Delete(ctx, key))
	}
	return err
}
