package uploader

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"whisp/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 1x1 transparent PNG.
const tinyPNG = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mP8z8BQDwAEhQGAhKmMIQAAAABJRU5ErkJggg=="

func newLocal(t *testing.T) *Local {
	t.Helper()
	return NewLocal(t.TempDir(), 5*1024*1024, logger.New("uploader-test", "error", "text"))
}

func TestUpload_ValidPNG(t *testing.T) {
	l := newLocal(t)

	url, err := l.Upload(context.Background(), "data:image/png;base64,"+tinyPNG)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/uploads/"))
	assert.True(t, strings.HasSuffix(url, ".png"))

	// The file really landed in the directory.
	_, err = os.Stat(filepath.Join(l.dir, strings.TrimPrefix(url, "/uploads/")))
	assert.NoError(t, err)
}

func TestUpload_Rejections(t *testing.T) {
	l := newLocal(t)

	cases := map[string]string{
		"empty":          "",
		"no data prefix": "image/png;base64," + tinyPNG,
		"bad base64":     "data:image/png;base64,@@@@",
		"unknown mime":   "data:application/pdf;base64," + tinyPNG,
		"not an image":   "data:image/png;base64,aGVsbG8gd29ybGQ=",
	}

	for name, input := range cases {
		_, err := l.Upload(context.Background(), input)
		assert.Error(t, err, name)
	}
}

func TestUpload_TooLarge(t *testing.T) {
	l := NewLocal(t.TempDir(), 10, logger.New("uploader-test", "error", "text"))

	_, err := l.Upload(context.Background(), "data:image/png;base64,"+tinyPNG)
	assert.Error(t, err)
}
