package ioutils

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"

	"golang.org/x/image/draw"
)

// ErrImageDecode is returned when an image file cannot be read or decoded.
var ErrImageDecode = errors.New("image decode failed")

// ImageService provides image processing operations for jackets.
//
// ImageService is used to:
//   - Load a jacket and scale it to the square video frame
//   - Resize images to fit maximum dimensions (for embedding in MP3 tags)
//   - Convert images to JPEG format (for better tag compatibility)
//
// Example usage:
//
//	svc := NewImageService()
//
//	frame, err := svc.LoadSquare(ctx, "/songs/1234_song/jk_1234_5_b.png", 1080)
//	if err != nil {
//	    return err
//	}
//	err = svc.WritePNG(ctx, "/tmp/frame.png", frame)
type ImageService struct{}

// NewImageService creates a new ImageService.
func NewImageService() *ImageService {
	return &ImageService{}
}

// LoadSquare decodes the image at path and scales it to size×size pixels.
//
// The aspect ratio is not preserved: jackets are square already and the
// video frame must be exactly size×size. Errors wrap ErrImageDecode.
func (s *ImageService) LoadSquare(ctx context.Context, path string, size int) (*image.RGBA, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageDecode, err)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrImageDecode, path, err)
	}

	return scale(img, size, size), nil
}

// WritePNG encodes img as PNG and writes it to path.
func (s *ImageService) WritePNG(ctx context.Context, path string, img image.Image) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return err
	}
	return WriteFile(ctx, path, buf.Bytes())
}

// ResizeImage resizes an image to fit within the specified maximum dimensions.
//
// The aspect ratio is preserved. If the image is already smaller than the
// maximum dimensions, it will still be processed (re-encoded as JPEG).
//
// Returns the resized image as JPEG-encoded bytes.
//
// Example:
//
//	// Resize to fit within 500x500, maintaining aspect ratio
//	resized, err := svc.ResizeImage(ctx, jacketData, 500, 500)
//	// A 1500x1000 image becomes 500x333
func (s *ImageService) ResizeImage(ctx context.Context, data []byte, maxWidth, maxHeight int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageDecode, err)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	if width > maxWidth || height > maxHeight {
		ratio := float64(width) / float64(height)
		if float64(maxWidth)/float64(maxHeight) > ratio {
			// Height is the limiting factor
			width = int(float64(maxHeight) * ratio)
			height = maxHeight
		} else {
			width = maxWidth
			height = int(float64(maxWidth) / ratio)
		}
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, scale(img, width, height), &jpeg.Options{Quality: 90}); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// ConvertToJPEG converts an image to JPEG format with 90% quality.
//
// ID3 front covers are written as JPEG for compatibility with older players.
func (s *ImageService) ConvertToJPEG(ctx context.Context, data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageDecode, err)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// scale draws src into a new width×height RGBA image using Catmull-Rom.
func scale(src image.Image, width, height int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst
}
