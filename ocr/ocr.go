//go:build ocr

package ocr

import (
	"fmt"

	"github.com/otiai10/gosseract/v2"

	"github.com/thierryx96/cellar-ai/model"
)

// Client wraps Tesseract for token extraction.
type Client struct {
	client *gosseract.Client
}

// New creates a new OCR client.
// The client should be closed when no longer needed to release resources.
func New() (*Client, error) {
	client := gosseract.NewClient()
	return &Client{client: client}, nil
}

// Close releases OCR resources.
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	err := c.client.Close()
	c.client = nil
	return err
}

// SetLanguage sets the language(s) for recognition, e.g. "eng" or "eng+fra".
func (c *Client) SetLanguage(lang string) error {
	return c.client.SetLanguage(lang)
}

// SetPageSegMode sets how Tesseract analyzes the page layout.
func (c *Client) SetPageSegMode(mode PageSegMode) error {
	return c.client.SetPageSegMode(gosseract.PageSegMode(mode))
}

// ExtractTokens recognizes the words of a menu photo and returns them as
// untagged tokens in pixel coordinates.
func (c *Client) ExtractTokens(imageData []byte) ([]model.Token, error) {
	prepared, _, err := PrepareImage(imageData)
	if err != nil {
		return nil, err
	}

	if err := c.client.SetImageFromBytes(prepared); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	boxes, err := c.client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return nil, fmt.Errorf("OCR failed: %w", err)
	}

	words := make([]WordBox, len(boxes))
	for i, b := range boxes {
		words[i] = WordBox{Text: b.Word, Box: b.Box, Confidence: b.Confidence}
	}
	return ToTokens(words), nil
}
