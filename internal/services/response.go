package services

import (
	"errors"
	"fmt"

	"imagelab/internal/models"

	"github.com/bytedance/sonic"
	"github.com/vincent-petithory/dataurl"
)

// ErrMalformedResponse marks a reply that could not be decoded into a result.
var ErrMalformedResponse = errors.New("malformed service response")

type compressResponse struct {
	Error                 string            `json:"error"`
	CompressedImage       string            `json:"compressed_image"`
	OriginalSize          float64           `json:"original_size"`
	CompressedSize        float64           `json:"compressed_size"`
	CompressionPercentage models.Percentage `json:"compression_percentage"`
}

type filterResponse struct {
	Error         string `json:"error"`
	FilteredImage string `json:"filtered_image"`
}

func decodeCompressResponse(body []byte) models.Result {
	var payload compressResponse
	if err := sonic.Unmarshal(body, &payload); err != nil {
		return malformed(err)
	}
	if payload.Error != "" {
		return models.Failure{Message: payload.Error}
	}

	success, err := successFromDataURI(payload.CompressedImage)
	if err != nil {
		return malformed(err)
	}
	success.Metrics = &models.CompressionMetrics{
		OriginalBytes:   payload.OriginalSize,
		CompressedBytes: payload.CompressedSize,
		Percentage:      payload.CompressionPercentage,
	}
	return success
}

func decodeFilterResponse(body []byte) models.Result {
	var payload filterResponse
	if err := sonic.Unmarshal(body, &payload); err != nil {
		return malformed(err)
	}
	if payload.Error != "" {
		return models.Failure{Message: payload.Error}
	}

	success, err := successFromDataURI(payload.FilteredImage)
	if err != nil {
		return malformed(err)
	}
	return success
}

func successFromDataURI(uri string) (models.Success, error) {
	if uri == "" {
		return models.Success{}, errors.New("response carries no image")
	}
	parsed, err := dataurl.DecodeString(uri)
	if err != nil {
		return models.Success{}, fmt.Errorf("invalid image data URI: %w", err)
	}
	return models.Success{
		DataURI:   uri,
		ImageData: parsed.Data,
		MediaType: parsed.ContentType(),
	}, nil
}

func malformed(err error) models.TransportError {
	return models.TransportError{Err: fmt.Errorf("%w: %v", ErrMalformedResponse, err)}
}
