package service

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/ayumi/capgen/internal/domain"

	_ "golang.org/x/image/webp"
)

// EncodeImage converts raw upload bytes into the base64 payload the model
// wire format expects. The image header is decoded first, both to reject
// sources that are not readable images and to derive the media type from
// the actual content instead of trusting the upload's filename.
// Parameters:
//   - data: raw image bytes (jpeg, png, gif, or webp).
//
// Returns:
//   - *domain.EncodedMedia: base64 payload plus MIME type.
//   - error: wraps ErrImageEncoding when the source is not a decodable image.
func EncodeImage(data []byte) (*domain.EncodedMedia, error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageEncoding, err)
	}

	return &domain.EncodedMedia{
		Data:     base64.StdEncoding.EncodeToString(data),
		MIMEType: mimeTypeForFormat(format),
	}, nil
}

func mimeTypeForFormat(format string) string {
	switch format {
	case "jpg", "jpeg":
		return "image/jpeg"
	case "png":
		return "image/png"
	case "gif":
		return "image/gif"
	case "webp":
		return "image/webp"
	default:
		return "image/jpeg"
	}
}
