package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"imagelab/internal/logger"
	"imagelab/internal/models"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

const componentClient = "ImageServiceClient"

// RequestIDHeader carries the per-request identifier to the service.
const RequestIDHeader = "X-Request-ID"

// ClientConfig locates the two endpoints of the image service.
type ClientConfig struct {
	BaseURL      string
	CompressPath string
	FilterPath   string
}

// ImageServiceClient submits images to the external /compress and /filter
// endpoints and decodes their replies into models.Result values.
type ImageServiceClient struct {
	http   *resty.Client
	config ClientConfig
	logger logger.Logger
}

// NewImageServiceClient creates a client. Timeouts are left to the caller's
// context.
func NewImageServiceClient(cfg ClientConfig, log logger.Logger) *ImageServiceClient {
	if log == nil {
		log = logger.NoOpLogger{}
	}
	if cfg.CompressPath == "" {
		cfg.CompressPath = "/compress"
	}
	if cfg.FilterPath == "" {
		cfg.FilterPath = "/filter"
	}

	httpClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetHeader("Accept", "application/json").
		SetRetryCount(0)

	return &ImageServiceClient{
		http:   httpClient,
		config: cfg,
		logger: log,
	}
}

// Compress sends the file with its quality to the compression endpoint.
func (c *ImageServiceClient) Compress(ctx context.Context, file models.SelectedFile, params models.CompressionParams) models.Result {
	body, err := c.post(ctx, c.config.CompressPath, file, params)
	if err != nil {
		return models.TransportError{Err: err}
	}
	return decodeCompressResponse(body)
}

// Filter sends the file with its filter settings to the filter endpoint.
func (c *ImageServiceClient) Filter(ctx context.Context, file models.SelectedFile, params models.FilterParams) models.Result {
	body, err := c.post(ctx, c.config.FilterPath, file, params)
	if err != nil {
		return models.TransportError{Err: err}
	}
	return decodeFilterResponse(body)
}

// post issues one multipart request and returns the raw body whatever the
// HTTP status; the service reports its own errors as JSON with 4xx/5xx codes.
func (c *ImageServiceClient) post(ctx context.Context, path string, file models.SelectedFile, params models.Parameters) ([]byte, error) {
	requestID := uuid.NewString()
	fields := params.FormFields()
	start := time.Now()

	name := file.Name
	if name == "" {
		name = "upload"
	}

	c.logger.Debug(componentClient, "sending request", map[string]interface{}{
		"request_id": requestID,
		"path":       path,
		"file":       name,
		"bytes":      file.Size(),
		"fields":     fields,
	})

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader(RequestIDHeader, requestID).
		SetFileReader("file", name, bytes.NewReader(file.Data)).
		SetFormData(fields).
		Post(path)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			c.logger.Debug(componentClient, "request cancelled", map[string]interface{}{
				"request_id": requestID,
			})
		} else {
			c.logger.Error(componentClient, err, map[string]interface{}{
				"request_id": requestID,
				"path":       path,
			})
		}
		return nil, fmt.Errorf("POST %s: %w", path, err)
	}

	c.logger.Info(componentClient, "response received", map[string]interface{}{
		"request_id":  requestID,
		"path":        path,
		"status":      resp.StatusCode(),
		"duration_ms": time.Since(start).Milliseconds(),
		"bytes":       len(resp.Body()),
	})

	return resp.Body(), nil
}

// Shutdown releases pooled connections.
func (c *ImageServiceClient) Shutdown() {
	c.http.GetClient().CloseIdleConnections()
}
