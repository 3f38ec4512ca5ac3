package utils

import (
	"bytes"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"

	"github.com/nfnt/resize"
)

// ImageProcessor downscales uploads and re-encodes them as JPEG
type ImageProcessor struct {
	MaxEdge     uint // longest side after processing
	JpegQuality int  // 1-100
}

// ImageProcessResult processed image
type ImageProcessResult struct {
	Data           *bytes.Buffer
	Width          int
	Height         int
	OriginalWidth  int
	OriginalHeight int
	SourceFormat   string
	Size           int64
	Resized        bool
}

// NewImageProcessor creates an ImageProcessor
func NewImageProcessor(maxEdge uint, jpegQuality int) *ImageProcessor {
	if jpegQuality < 1 || jpegQuality > 100 {
		jpegQuality = 85
	}
	if maxEdge == 0 {
		maxEdge = 1280
	}
	return &ImageProcessor{MaxEdge: maxEdge, JpegQuality: jpegQuality}
}

// Process decodes r, shrinks it to fit MaxEdge keeping the aspect ratio and encodes JPEG
func (p *ImageProcessor) Process(r io.Reader) (*ImageProcessResult, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, ErrUnsupportedMediaType
	}

	bounds := img.Bounds()
	result := &ImageProcessResult{
		OriginalWidth:  bounds.Dx(),
		OriginalHeight: bounds.Dy(),
		SourceFormat:   format,
	}

	processed := img
	if uint(bounds.Dx()) > p.MaxEdge || uint(bounds.Dy()) > p.MaxEdge {
		processed = resize.Thumbnail(p.MaxEdge, p.MaxEdge, img, resize.Lanczos3)
		result.Resized = true
	}

	out := processed.Bounds()
	result.Width = out.Dx()
	result.Height = out.Dy()

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, processed, &jpeg.Options{Quality: p.JpegQuality}); err != nil {
		return nil, WrapError(err, "encode jpeg")
	}
	result.Data = buf
	result.Size = int64(buf.Len())
	return result, nil
}
