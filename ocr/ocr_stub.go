//go:build !ocr

package ocr

import (
	"context"
	"image"
)

// Client is the stub recognizer compiled without the ocr build tag. Every
// operation fails with ErrNotEnabled.
type Client struct{}

var _ Recognizer = (*Client)(nil)

// New fails with ErrNotEnabled. Rebuild with -tags ocr to enable
// recognition.
func New() (*Client, error) {
	return nil, ErrNotEnabled
}

// NewWithConfig fails with ErrNotEnabled.
func NewWithConfig(cfg Config) (*Client, error) {
	return nil, ErrNotEnabled
}

// Recognize fails with ErrNotEnabled. It is safe to call on a nil client.
func (c *Client) Recognize(ctx context.Context, img image.Image) (string, error) {
	return "", ErrNotEnabled
}
