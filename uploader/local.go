package uploader

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"os"
	"path/filepath"
	"strings"

	"whisp/apperrors"
	"whisp/logger"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/google/uuid"
)

// Local writes uploads to a directory served under /uploads. It
// validates that the payload really decodes as an image before
// anything touches disk.
type Local struct {
	dir      string
	maxBytes int64
	log      *logger.Logger
}

var _ Uploader = (*Local)(nil)

func NewLocal(dir string, maxBytes int64, log *logger.Logger) *Local {
	return &Local{dir: dir, maxBytes: maxBytes, log: log}
}

var extByMIME = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
}

func (l *Local) Upload(_ context.Context, dataURL string) (string, error) {
	mime, payload, ok := splitDataURL(dataURL)
	if !ok {
		return "", apperrors.InvalidArg("Invalid image format")
	}

	ext, ok := extByMIME[mime]
	if !ok {
		return "", apperrors.InvalidArg("Invalid image format")
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", apperrors.InvalidArg("Invalid image format")
	}

	if l.maxBytes > 0 && int64(len(data)) > l.maxBytes {
		return "", apperrors.InvalidArg("File too large")
	}

	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		return "", apperrors.InvalidArg("Invalid image format")
	}

	filename := uuid.NewString() + ext
	if err := os.WriteFile(filepath.Join(l.dir, filename), data, 0o644); err != nil {
		l.log.WithError(err).Error("saving upload failed")
		return "", apperrors.UploadFailed("Image upload failed", err)
	}

	return "/uploads/" + filename, nil
}

// splitDataURL takes "data:image/png;base64,AAAA..." apart.
func splitDataURL(s string) (mime, payload string, ok bool) {
	rest, found := strings.CutPrefix(s, "data:")
	if !found {
		return "", "", false
	}
	mime, payload, found = strings.Cut(rest, ";base64,")
	if !found || mime == "" || payload == "" {
		return "", "", false
	}
	return mime, payload, true
}
