package intake

import (
	"bytes"
	"fmt"
	"image"
	"net/http"

	// Register decoders for the formats we verify by decoding.
	_ "image/jpeg"
	_ "image/png"
)

// MaxImageBytes is the upper bound on accepted uploads. Vendor vision APIs
// reject payloads in this range anyway, so larger files can only fail later
// and slower.
const MaxImageBytes = 10 << 20 // 10 MiB

// UploadedImage is a validated upload: the raw bytes exactly as received plus
// the detected MIME type. Bytes are never re-encoded, so the vision model
// sees full fidelity.
type UploadedImage struct {
	Data     []byte
	MimeType string
}

// InvalidImageError reports an upload that is not a usable image: empty,
// oversized, an unsupported format, or bytes that fail to decode.
type InvalidImageError struct {
	Reason string
}

func (e *InvalidImageError) Error() string {
	return "invalid image: " + e.Reason
}

// Validate checks that data is a supported raster image and returns it as an
// UploadedImage. JPEG and PNG are verified decodable; WebP is accepted on its
// RIFF container signature since the stdlib carries no WebP decoder and the
// bytes are forwarded to the vendor untouched.
func Validate(data []byte) (*UploadedImage, error) {
	if len(data) == 0 {
		return nil, &InvalidImageError{Reason: "empty upload"}
	}
	if len(data) > MaxImageBytes {
		return nil, &InvalidImageError{Reason: fmt.Sprintf("upload exceeds %d bytes", MaxImageBytes)}
	}

	if isWebP(data) {
		return &UploadedImage{Data: data, MimeType: "image/webp"}, nil
	}

	mime := http.DetectContentType(data)
	switch mime {
	case "image/jpeg", "image/png":
	default:
		return nil, &InvalidImageError{Reason: fmt.Sprintf("unsupported format %s", mime)}
	}

	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		return nil, &InvalidImageError{Reason: "corrupt image data"}
	}

	return &UploadedImage{Data: data, MimeType: mime}, nil
}

// isWebP reports whether data is a WebP image (RIFF container with "WEBP" at
// offset 8). The WHATWG sniff spec behind http.DetectContentType has no WebP
// signature, so it is checked separately.
func isWebP(data []byte) bool {
	return len(data) >= 12 &&
		string(data[0:4]) == "RIFF" &&
		string(data[8:12]) == "WEBP"
}
