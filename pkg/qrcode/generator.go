package qrcode

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	skipqrcode "github.com/skip2/go-qrcode"
)

// ErrEmptyContent is returned when the content is empty or whitespace only
var ErrEmptyContent = errors.New("content cannot be empty")

// defaultSize is the image edge in pixels when size is not positive
const defaultSize = 256

// Generate renders content as a PNG QR code at the given size
func Generate(content string, size int) ([]byte, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}
	if size <= 0 {
		size = defaultSize
	}
	png, err := skipqrcode.Encode(content, skipqrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code: %w", err)
	}
	return png, nil
}

// GenerateBase64Image creates a data URI holding a PNG QR code for the given
// content, suitable for direct use as an <img> source.
func GenerateBase64Image(content string, size int) (string, error) {
	png, err := Generate(content, size)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
