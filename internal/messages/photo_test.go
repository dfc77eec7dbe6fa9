package messages

import (
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	onairerrors "github.com/tessro/onair/internal/errors"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestPhotoDataURI(t *testing.T) {
	path := writeFile(t, "me.png", pngHeader)

	uri, err := PhotoDataURI(path)
	if err != nil {
		t.Fatalf("PhotoDataURI() error = %v", err)
	}

	prefix := "data:image/png;base64,"
	if !strings.HasPrefix(uri, prefix) {
		t.Fatalf("PhotoDataURI() = %q, want prefix %q", uri, prefix)
	}
	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, prefix))
	if err != nil {
		t.Fatalf("payload is not base64: %v", err)
	}
	if string(decoded) != string(pngHeader) {
		t.Error("decoded payload differs from file")
	}
}

func TestPhotoDataURIRejects(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
	}{
		{"missing", func(t *testing.T) string { return filepath.Join(t.TempDir(), "none.png") }},
		{"directory", func(t *testing.T) string { return t.TempDir() }},
		{"not an image", func(t *testing.T) string { return writeFile(t, "notes.txt", []byte("hello there")) }},
		{"too large", func(t *testing.T) string {
			data := append(append([]byte{}, pngHeader...), make([]byte, MaxPhotoSize)...)
			return writeFile(t, "big.png", data)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := PhotoDataURI(tt.path(t))
			if !errors.Is(err, onairerrors.ErrPhotoUnreadable) {
				t.Errorf("PhotoDataURI() error = %v, want ErrPhotoUnreadable", err)
			}
		})
	}
}
