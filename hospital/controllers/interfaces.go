// hospital/controllers/interfaces.go
package controllers

import (
	"context"
	"io"

	"hospital/hospital/sources/mail"
)

// ImageStore keeps consultation images; storage.MinIOClient implements it.
type ImageStore interface {
	UploadImage(ctx context.Context, filename, contentType string, r io.Reader, size int64) (string, error)
	ImageURL(ctx context.Context, key string) (string, error)
	DeleteImage(ctx context.Context, key string) error
}

// StatusNotifier tells a patient about a decision on their consultation.
type StatusNotifier interface {
	ConsultationStatusChanged(ctx context.Context, notice mail.StatusNotice) error
}
