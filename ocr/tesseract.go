//go:build ocr

package ocr

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"strconv"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// Client recognizes text with Tesseract. Every Recognize call runs on a
// fresh gosseract client, so one Client is safe for concurrent use and
// there is nothing to close.
type Client struct {
	cfg     Config
	factory func() *gosseract.Client
}

var _ Recognizer = (*Client)(nil)

// New creates a Client with DefaultConfig.
func New() (*Client, error) {
	return NewWithConfig(DefaultConfig())
}

// NewWithConfig creates a Client with the given settings. Unset fields
// fall back to their defaults.
func NewWithConfig(cfg Config) (*Client, error) {
	return &Client{cfg: cfg.withDefaults(), factory: gosseract.NewClient}, nil
}

// Recognize runs Tesseract on img and returns the recognized text with
// surrounding whitespace trimmed. With MinWordConfidence set it requests
// hOCR instead, drops words below the cutoff and joins the survivors.
func (c *Client) Recognize(ctx context.Context, img image.Image) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("encode image: %w", err)
	}

	tc := c.factory()
	defer tc.Close()

	if err := c.configure(tc); err != nil {
		return "", err
	}
	if err := tc.SetImageFromBytes(buf.Bytes()); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}

	if c.cfg.MinWordConfidence > 0 {
		hocr, err := tc.HOCRText()
		if err != nil {
			return "", fmt.Errorf("recognize hocr: %w", err)
		}
		words, err := ParseHOCR([]byte(hocr))
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(JoinWords(FilterWords(words, c.cfg.MinWordConfidence))), nil
	}

	text, err := tc.Text()
	if err != nil {
		return "", fmt.Errorf("recognize text: %w", err)
	}
	return strings.TrimSpace(text), nil
}

func (c *Client) configure(tc *gosseract.Client) error {
	if err := tc.SetLanguage(c.cfg.Languages...); err != nil {
		return fmt.Errorf("set languages: %w", err)
	}
	if c.cfg.TessdataPrefix != "" {
		if err := tc.SetTessdataPrefix(c.cfg.TessdataPrefix); err != nil {
			return fmt.Errorf("set tessdata prefix: %w", err)
		}
	}
	if err := tc.SetPageSegMode(gosseract.PageSegMode(c.cfg.PageSegMode)); err != nil {
		return fmt.Errorf("set page segmentation mode: %w", err)
	}
	if c.cfg.Whitelist != "" {
		if err := tc.SetVariable(gosseract.SettableVariable("tessedit_char_whitelist"), c.cfg.Whitelist); err != nil {
			return fmt.Errorf("set whitelist: %w", err)
		}
	}
	if c.cfg.DPI > 0 {
		if err := tc.SetVariable(gosseract.SettableVariable("user_defined_dpi"), strconv.Itoa(c.cfg.DPI)); err != nil {
			return fmt.Errorf("set dpi: %w", err)
		}
	}
	return nil
}
