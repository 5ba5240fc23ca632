// Package imaging prepares uploaded banner images for submission to
// the upstream API. Files over the transcode threshold are resized to
// a maximum width and re-encoded as JPEG at a fixed quality; smaller
// files pass through untouched.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"

	_ "image/gif"
	_ "image/png"

	"golang.org/x/image/draw"
)

// TranscodeThreshold is the file size above which an image is
// transcoded before upload.
const TranscodeThreshold = 500 * 1024

// Defaults used when the corresponding config values are unset.
const (
	DefaultMaxWidth    = 1280
	DefaultJPEGQuality = 80
)

// Result is a prepared upload attachment.
type Result struct {
	Data        []byte
	ContentType string
	Transcoded  bool
}

// PrepareUpload returns the bytes to attach to a multipart submission.
// Images at or under the threshold are attached as-is; larger ones are
// transcoded. A transcode failure is returned to the caller so it can
// be surfaced as a field error on the image input without discarding
// the rest of the form.
func PrepareUpload(data []byte, contentType string, maxWidth, quality int) (Result, error) {
	if len(data) <= TranscodeThreshold {
		return Result{Data: data, ContentType: contentType}, nil
	}
	out, err := Transcode(data, maxWidth, quality)
	if err != nil {
		return Result{}, err
	}
	return Result{Data: out, ContentType: "image/jpeg", Transcoded: true}, nil
}

// Transcode decodes an image (JPEG, PNG, or GIF), scales it down to
// maxWidth when wider, and re-encodes it as JPEG at the given quality.
func Transcode(data []byte, maxWidth, quality int) ([]byte, error) {
	if maxWidth <= 0 {
		maxWidth = DefaultMaxWidth
	}
	if quality <= 0 || quality > 100 {
		quality = DefaultJPEGQuality
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	b := src.Bounds()
	if b.Dx() > maxWidth {
		h := b.Dy() * maxWidth / b.Dx()
		if h < 1 {
			h = 1
		}
		dst := image.NewRGBA(image.Rect(0, 0, maxWidth, h))
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
		src = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, src, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}
