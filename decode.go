package vitalscan

import (
	"bytes"
	"fmt"
	"image"

	// Codecs registered for image.Decode. The x/image set covers the
	// containers phone cameras and medical apps actually upload.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/healthtrack/vitalscan/format"
	"github.com/healthtrack/vitalscan/measure"
)

// decodeImage decodes encoded image bytes. Failures wrap
// measure.ErrDecode and name the sniffed container when one is
// recognizable, so "a TIFF that would not decode" and "not an image at
// all" read differently in logs.
func decodeImage(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, decodeError(data, err)
	}
	return img, nil
}

func decodeError(data []byte, cause error) error {
	base := &measure.Error{Err: measure.ErrDecode}
	if f := format.DetectFromMagic(data); f != format.Unknown {
		return fmt.Errorf("%s image: %w", f, base)
	}
	return fmt.Errorf("%v: %w", cause, base)
}
