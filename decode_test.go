package vitalscan

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"strings"
	"testing"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/healthtrack/vitalscan/measure"
)

func TestDecodeImage(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 40, 20))
	for y := 0; y < 20; y++ {
		for x := 0; x < 40; x++ {
			src.SetRGBA(x, y, color.RGBA{R: uint8(x * 6), G: uint8(y * 12), B: 90, A: 255})
		}
	}

	tests := []struct {
		name   string
		encode func(w io.Writer, img image.Image) error
	}{
		{"png", png.Encode},
		{"jpeg", func(w io.Writer, img image.Image) error { return jpeg.Encode(w, img, nil) }},
		{"gif", func(w io.Writer, img image.Image) error { return gif.Encode(w, img, nil) }},
		{"bmp", bmp.Encode},
		{"tiff", func(w io.Writer, img image.Image) error { return tiff.Encode(w, img, nil) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := tt.encode(&buf, src); err != nil {
				t.Fatalf("encode: %v", err)
			}

			got, err := decodeImage(buf.Bytes())
			if err != nil {
				t.Fatalf("decodeImage() error: %v", err)
			}
			if b := got.Bounds(); b.Dx() != 40 || b.Dy() != 20 {
				t.Errorf("decoded size = %dx%d, want 40x20", b.Dx(), b.Dy())
			}
		})
	}
}

func TestDecodeImage_Failures(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		// wantNamed is the container the error message should mention,
		// empty when the bytes match no known magic.
		wantNamed string
	}{
		{"corrupt png", append([]byte("\x89PNG\r\n\x1a\n"), "garbage"...), "PNG"},
		{"corrupt jpeg", []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00}, "JPEG"},
		{"not an image", []byte("meter says 120/80"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeImage(tt.data)
			if err == nil {
				t.Fatal("decodeImage() error = nil, want non-nil")
			}
			if !errors.Is(err, measure.ErrDecode) {
				t.Errorf("decodeImage() error = %v, want a decode failure", err)
			}
			var mErr *measure.Error
			if !errors.As(err, &mErr) {
				t.Errorf("decodeImage() error = %v, want *measure.Error in the chain", err)
			}
			if tt.wantNamed != "" && !strings.Contains(err.Error(), tt.wantNamed) {
				t.Errorf("decodeImage() error = %q, want the %s container named", err, tt.wantNamed)
			}
		})
	}
}
