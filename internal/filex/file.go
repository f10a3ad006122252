// Package filex contains helpers for reading local media files.
package filex

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotRegular is returned when the path points at a directory or a device.
var ErrNotRegular = errors.New("not a regular file")

// sniffLen is how many bytes http.DetectContentType looks at.
const sniffLen = 512

// mediaTypes covers the extensions the feed accepts; the system mime table
// does not always know about video.
var mediaTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".mp4":  "video/mp4",
}

// OpenRegular opens path for reading and returns the handle together with
// its size. The caller owns the handle.
func OpenRegular(path string) (*os.File, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open %s: %w", path, err)
	}

	fi, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, 0, fmt.Errorf("stat %s: %w", path, err)
	}
	if !fi.Mode().IsRegular() {
		_ = f.Close()
		return nil, 0, fmt.Errorf("%s: %w", path, ErrNotRegular)
	}

	return f, fi.Size(), nil
}

// DetectContentType resolves the MIME type of f, first by the extension of
// name and then by sniffing the leading bytes. f is rewound before return.
func DetectContentType(name string, f io.ReadSeeker) (string, error) {
	ext := strings.ToLower(filepath.Ext(name))
	if ct, ok := mediaTypes[ext]; ok {
		return ct, nil
	}
	if ct := mime.TypeByExtension(ext); ct != "" {
		return ct, nil
	}

	buf := make([]byte, sniffLen)
	n, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return "", fmt.Errorf("sniff %s: %w", name, err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("rewind %s: %w", name, err)
	}
	return http.DetectContentType(buf[:n]), nil
}
