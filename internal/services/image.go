package services

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"strings"

	"imagelab/internal/models"

	"github.com/vincent-petithory/dataurl"
	"gocv.io/x/gocv"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ImageDecoder turns raw image bytes into something the views can display.
type ImageDecoder struct {
	// MaxDimension bounds the decoded image; larger images are downscaled.
	MaxDimension int
}

// NewImageDecoder creates a decoder that keeps previews within maxDimension
// pixels on the longest side. Zero keeps the original size.
func NewImageDecoder(maxDimension int) *ImageDecoder {
	return &ImageDecoder{MaxDimension: maxDimension}
}

// Decode builds a Preview carrying a data URI of the exact bytes and, when
// they are a readable image, the decoded pixels. A non-image still yields a
// data URI together with the decode error.
func (d *ImageDecoder) Decode(data []byte) (models.Preview, error) {
	if len(data) == 0 {
		return models.Preview{}, fmt.Errorf("no image data")
	}

	mediaType, _, _ := strings.Cut(http.DetectContentType(data), ";")
	preview := models.Preview{
		DataURI:  dataurl.New(data, mediaType).String(),
		ByteSize: int64(len(data)),
		Format:   mediaType,
	}

	img, err := d.decodeWithOpenCV(data)
	if err != nil {
		img, _, err = image.Decode(bytes.NewReader(data))
		if err != nil {
			return preview, fmt.Errorf("failed to decode image: %w", err)
		}
	}

	bounds := img.Bounds()
	preview.Image = img
	preview.Width = bounds.Dx()
	preview.Height = bounds.Dy()
	return preview, nil
}

func (d *ImageDecoder) decodeWithOpenCV(data []byte) (image.Image, error) {
	mat, err := gocv.IMDecode(data, gocv.IMReadUnchanged)
	if err != nil {
		return nil, fmt.Errorf("opencv decode: %w", err)
	}
	defer mat.Close()

	if mat.Empty() {
		return nil, fmt.Errorf("opencv decode: empty result")
	}

	if d.MaxDimension > 0 && (mat.Cols() > d.MaxDimension || mat.Rows() > d.MaxDimension) {
		scale := float64(d.MaxDimension) / float64(max(mat.Cols(), mat.Rows()))
		width := max(1, int(float64(mat.Cols())*scale))
		height := max(1, int(float64(mat.Rows())*scale))

		resized := gocv.NewMat()
		defer resized.Close()
		gocv.Resize(mat, &resized, image.Pt(width, height), 0, 0, gocv.InterpolationArea)
		return resized.ToImage()
	}

	return mat.ToImage()
}
