package imagesource

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/sandeepkv93/stickynotes/internal/model"
)

const DefaultMaxBytes = 5 << 20

var (
	ErrNotImage = errors.New("imagesource: file is not an image")
	ErrTooLarge = errors.New("imagesource: image exceeds size limit")
	ErrNoPath   = errors.New("imagesource: image path is required")
)

// Picker produces the image a user chose. A nil image with a nil error
// means the user cancelled.
type Picker interface {
	Pick(ctx context.Context) (*model.Image, error)
}

// FilePicker loads an image from a path on disk.
type FilePicker struct {
	Path     string
	MaxBytes int64
}

func (p FilePicker) Pick(ctx context.Context) (*model.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := strings.TrimSpace(p.Path)
	if path == "" {
		return nil, ErrNoPath
	}
	if rest, ok := strings.CutPrefix(path, "~/"); ok {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, rest)
		}
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("imagesource: %w", err)
	}
	defer f.Close()
	return Read(f, filepath.Base(path), p.MaxBytes)
}

// Read loads at most maxBytes from r and sniffs its content type.
func Read(r io.Reader, name string, maxBytes int64) (*model.Image, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("imagesource: read %s: %w", name, err)
	}
	if int64(len(data)) > maxBytes {
		return nil, fmt.Errorf("%w: %s is over %d bytes", ErrTooLarge, name, maxBytes)
	}
	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		return nil, fmt.Errorf("%w: %s is %s", ErrNotImage, name, contentType)
	}
	return &model.Image{Name: name, ContentType: contentType, Data: data}, nil
}

// Cancelled is the picker for a dismissed chooser.
type Cancelled struct{}

func (Cancelled) Pick(context.Context) (*model.Image, error) { return nil, nil }
