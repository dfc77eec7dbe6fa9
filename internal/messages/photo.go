package messages

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"strings"

	onairerrors "github.com/tessro/onair/internal/errors"
)

// MaxPhotoSize is the largest photo accepted, in bytes.
const MaxPhotoSize = 2 << 20

// PhotoDataURI reads an image file and encodes it as a data URI.
func PhotoDataURI(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", onairerrors.ErrPhotoUnreadable, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w: %s is a directory", onairerrors.ErrPhotoUnreadable, path)
	}
	if info.Size() > MaxPhotoSize {
		return "", fmt.Errorf("%w: %s is larger than %d bytes", onairerrors.ErrPhotoUnreadable, path, MaxPhotoSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", onairerrors.ErrPhotoUnreadable, err)
	}

	mime := http.DetectContentType(data)
	if !strings.HasPrefix(mime, "image/") {
		return "", fmt.Errorf("%w: %s is not an image (%s)", onairerrors.ErrPhotoUnreadable, path, mime)
	}

	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}
