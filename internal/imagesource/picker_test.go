package imagesource

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

func TestFilePickerLoadsImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cat.png")
	if err := os.WriteFile(path, pngHeader, 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	img, err := FilePicker{Path: path}.Pick(context.Background())
	if err != nil {
		t.Fatalf("pick: %v", err)
	}
	if img.Name != "cat.png" || img.ContentType != "image/png" || !bytes.Equal(img.Data, pngHeader) {
		t.Fatalf("unexpected image: %s %s %d bytes", img.Name, img.ContentType, len(img.Data))
	}
}

func TestFilePickerErrors(t *testing.T) {
	dir := t.TempDir()
	text := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(text, []byte("just some text"), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	big := filepath.Join(dir, "big.png")
	if err := os.WriteFile(big, append(pngHeader, make([]byte, 64)...), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	tests := []struct {
		name   string
		picker FilePicker
		want   error
	}{
		{name: "no path", picker: FilePicker{}, want: ErrNoPath},
		{name: "missing file", picker: FilePicker{Path: filepath.Join(dir, "nope.png")}, want: os.ErrNotExist},
		{name: "not an image", picker: FilePicker{Path: text}, want: ErrNotImage},
		{name: "too large", picker: FilePicker{Path: big, MaxBytes: 32}, want: ErrTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.picker.Pick(context.Background())
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestCancelledPickerReturnsNothing(t *testing.T) {
	img, err := Cancelled{}.Pick(context.Background())
	if img != nil || err != nil {
		t.Fatalf("expected nil image and error, got %v %v", img, err)
	}
}
