// Package thumbnail renders JPEG previews of local images.
package thumbnail

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/disintegration/imaging"
)

// Quality is the JPEG quality of rendered thumbnails.
const Quality = 85

// ErrInvalidSize is returned for a non-positive maxSide.
var ErrInvalidSize = errors.New("thumbnail size must be positive")

// Render decodes r and scales it to fit a maxSide x maxSide box, keeping the
// aspect ratio. Images already inside the box are re-encoded unscaled.
func Render(r io.Reader, maxSide int) ([]byte, error) {
	if maxSide <= 0 {
		return nil, ErrInvalidSize
	}

	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	thumb := imaging.Fit(img, maxSide, maxSide, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.JPEG, imaging.JPEGQuality(Quality)); err != nil {
		return nil, fmt.Errorf("failed to encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}
