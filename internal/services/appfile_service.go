package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"panditconnect/internal/common"
	"panditconnect/internal/models"
	"panditconnect/internal/repositories"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	inlinePrefix = "data:"
	inlineMarker = ";base64,"

	// SignedURLExpiry is the validity window of derived retrieval URLs.
	SignedURLExpiry = 24 * time.Hour
)

// EncodeForUpload wraps raw bytes in the self-describing data-URI form that
// travels inline with a business record until the bytes reach object storage.
func EncodeForUpload(raw []byte, mimeType string) string {
	return inlinePrefix + mimeType + inlineMarker + base64.StdEncoding.EncodeToString(raw)
}

// DecodeInline reverses EncodeForUpload, returning the payload and its MIME
// type. Failures wrap common.ErrDecode.
func DecodeInline(encoded string) ([]byte, string, error) {
	if !strings.HasPrefix(encoded, inlinePrefix) {
		return nil, "", fmt.Errorf("%w: missing data prefix", common.ErrDecode)
	}
	marker := strings.Index(encoded, inlineMarker)
	if marker < 0 {
		return nil, "", fmt.Errorf("%w: missing base64 marker", common.ErrDecode)
	}
	mimeType := encoded[len(inlinePrefix):marker]
	raw, err := base64.StdEncoding.DecodeString(encoded[marker+len(inlineMarker):])
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", common.ErrDecode, err)
	}
	return raw, mimeType, nil
}

// InlineSize reports the decoded byte size of an inline payload without
// materializing it, so the HTTP boundary can enforce its cap cheaply.
func InlineSize(encoded string) (int64, error) {
	marker := strings.Index(encoded, inlineMarker)
	if !strings.HasPrefix(encoded, inlinePrefix) || marker < 0 {
		return 0, fmt.Errorf("%w: missing base64 marker", common.ErrDecode)
	}
	payload := encoded[marker+len(inlineMarker):]
	if len(payload)%4 != 0 {
		return 0, fmt.Errorf("%w: payload length not a multiple of four", common.ErrDecode)
	}
	size := int64(len(payload)) / 4 * 3
	if strings.HasSuffix(payload, "==") {
		size -= 2
	} else if strings.HasSuffix(payload, "=") {
		size--
	}
	return size, nil
}

// AppFileService owns the two-step app-file write (metadata row, then object
// bytes) and the two-step read (metadata row, then signed URL).
type AppFileService interface {
	Persist(ctx context.Context, businessID uuid.UUID, ref *models.AppFileRef) (*models.AppFile, error)
	LatestRef(ctx context.Context, businessID uuid.UUID) (*models.AppFileRef, error)
}

type appFileService struct {
	appFileRepo repositories.AppFileRepository
	minioSvc    MinioService
	bucket      string
	logger      *zap.Logger
}

func NewAppFileService(appFileRepo repositories.AppFileRepository, minioSvc MinioService, bucket string, logger *zap.Logger) AppFileService {
	return &appFileService{
		appFileRepo: appFileRepo,
		minioSvc:    minioSvc,
		bucket:      bucket,
		logger:      logger,
	}
}

// Persist decodes the inline payload, inserts a metadata row scoped to the
// business, and uploads the bytes to <businessID>/<fileID>. The two steps are
// not transactional: a failed upload leaves the metadata row behind, and the
// next upload simply wins under a fresh id.
func (s *appFileService) Persist(ctx context.Context, businessID uuid.UUID, ref *models.AppFileRef) (*models.AppFile, error) {
	raw, mimeType, err := DecodeInline(ref.Data)
	if err != nil {
		return nil, err
	}

	fileType := ref.Type
	if fileType == "" {
		fileType = mimeType
	}
	file := &models.AppFile{
		BusinessID: businessID,
		FileName:   ref.Name,
		FileType:   fileType,
		FileSize:   int64(len(raw)),
	}
	if err := s.appFileRepo.Create(ctx, file); err != nil {
		return nil, fmt.Errorf("%w: insert metadata: %v", common.ErrAssetPersist, err)
	}

	objectName := objectPath(businessID, file.ID)
	if err := s.minioSvc.UploadObject(ctx, s.bucket, objectName, bytes.NewReader(raw), file.FileSize, fileType); err != nil {
		return nil, fmt.Errorf("%w: upload bytes: %v", common.ErrAssetPersist, err)
	}

	s.logger.Info("app file persisted",
		zap.String("business_id", businessID.String()),
		zap.String("file_id", file.ID.String()),
		zap.Int64("size", file.FileSize),
	)
	return file, nil
}

// LatestRef returns the current package as a signed-URL reference, or nil when
// no upload exists. A metadata row whose URL cannot be derived also reads as
// nil: a broken asset is "no asset", never fatal.
func (s *appFileService) LatestRef(ctx context.Context, businessID uuid.UUID) (*models.AppFileRef, error) {
	file, err := s.appFileRepo.GetLatestByBusinessID(ctx, businessID)
	if err != nil {
		return nil, err
	}
	if file == nil {
		return nil, nil
	}

	url, err := s.minioSvc.GetPresignedURL(ctx, s.bucket, objectPath(businessID, file.ID), SignedURLExpiry)
	if err != nil {
		s.logger.Warn("could not sign app file URL",
			zap.String("file_id", file.ID.String()),
			zap.Error(err),
		)
		return nil, nil
	}

	return &models.AppFileRef{
		Name: file.FileName,
		Type: file.FileType,
		Size: file.FileSize,
		URL:  url,
	}, nil
}

func objectPath(businessID, fileID uuid.UUID) string {
	return fmt.Sprintf("%s/%s", businessID, fileID)
}
