package encoder

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"

	"github.com/AnyUserName/jpegcore-cli/internal/quant"
)

// ReferenceJPEGSize encodes img with Go's standard library baseline JPEG
// encoder at the same clamped quality and returns the encoded size in
// bytes. Reports print it next to the token counts as a real-codec yardstick.
func ReferenceJPEGSize(img image.Image, quality int) (int, error) {
	var buf bytes.Buffer
	buf.Grow(64 * 1024) // typical small/medium image, avoids repeated grow

	err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quant.ClampQuality(quality)})
	if err != nil {
		return 0, fmt.Errorf("reference jpeg: %w", err)
	}
	return buf.Len(), nil
}
