package editor

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"
)

// MaxImageSize is the largest accepted upload, 2 MiB.
const MaxImageSize int64 = 2 << 20

var (
	ErrImageTooLarge    = errors.New("image exceeds 2 MiB")
	ErrEmptyImage       = errors.New("image is empty")
	ErrUnsupportedImage = errors.New("file is not an image")
)

// IngestImage turns an uploaded file into a self-contained data URI.
// The reported size is checked before anything is read, so an oversized file
// is rejected without touching r.
func IngestImage(name string, size int64, r io.Reader) (string, error) {
	if size > MaxImageSize {
		return "", fmt.Errorf("%w: %s is %d bytes", ErrImageTooLarge, name, size)
	}

	data, err := io.ReadAll(io.LimitReader(r, MaxImageSize+1))
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}
	if int64(len(data)) > MaxImageSize {
		return "", fmt.Errorf("%w: %s", ErrImageTooLarge, name)
	}
	if len(data) == 0 {
		return "", ErrEmptyImage
	}

	mimeType := imageMIME(name, data)
	if mimeType == "" {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedImage, name)
	}
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

func imageMIME(name string, data []byte) string {
	if sniffed := http.DetectContentType(data); strings.HasPrefix(sniffed, "image/") {
		return sniffed
	}
	byExt := mime.TypeByExtension(strings.ToLower(filepath.Ext(name)))
	if byExt, _, _ = strings.Cut(byExt, ";"); strings.HasPrefix(byExt, "image/") {
		return byExt
	}
	return ""
}
