package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/totegamma/plura/internal/domain"
)

// UploadInput is a single file submitted to an upload target.
type UploadInput struct {
	Target      string
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

type UploadResult struct {
	URL        string `json:"url"`
	UploadedBy string `json:"uploadedBy"`
}

type UploadUsecase struct {
	storage ObjectStorage
}

func NewUploadUsecase(storage ObjectStorage) *UploadUsecase {
	return &UploadUsecase{storage: storage}
}

// Upload stores one image for the caller. ok is false for unauthenticated
// callers.
func (uc *UploadUsecase) Upload(ctx context.Context, input UploadInput) (UploadResult, bool, error) {
	ctx, span := tracer.Start(ctx, "Upload.Usecase.Upload")
	defer span.End()

	caller, ok := domain.CallerFromContext(ctx)
	if !ok {
		return UploadResult{}, false, nil
	}

	if !domain.IsUploadTarget(input.Target) {
		return UploadResult{}, true, domain.ValidationError{Field: "target", Reason: "unknown upload target"}
	}
	if !strings.HasPrefix(input.ContentType, "image/") {
		return UploadResult{}, true, domain.ValidationError{Field: "file", Reason: "only images are accepted"}
	}
	if input.Size <= 0 {
		return UploadResult{}, true, domain.ValidationError{Field: "file", Reason: "empty file"}
	}
	if input.Size > domain.MaxUploadSize {
		return UploadResult{}, true, domain.ValidationError{Field: "file", Reason: "larger than 4MB"}
	}

	object := fmt.Sprintf("%s/%s%s", input.Target, uuid.NewString(), strings.ToLower(path.Ext(input.Filename)))
	body := io.LimitReader(input.Body, domain.MaxUploadSize)
	url, err := uc.storage.Put(ctx, object, input.ContentType, body)
	if err != nil {
		span.RecordError(err)
		return UploadResult{}, true, err
	}

	slog.InfoContext(
		ctx, "upload complete",
		slog.String("target", input.Target),
		slog.String("user", caller.ID),
		slog.String("url", url),
		slog.String("module", "upload"),
	)

	return UploadResult{URL: url, UploadedBy: caller.ID}, true, nil
}
