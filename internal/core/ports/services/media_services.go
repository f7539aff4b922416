package services

import (
	"context"
	"mime/multipart"
)

// MediaUploaderSvc streams an uploaded file to external object storage and
// returns the resulting public URL.
type MediaUploaderSvc interface {
	UploadFile(ctx context.Context, fileHeader *multipart.FileHeader) (string, error)
}
