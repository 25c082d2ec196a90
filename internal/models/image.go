package models

import (
	"errors"
	"fmt"
	"image"
	"strconv"
	"strings"
	"time"
)

// SelectedFile is the image a workflow currently holds for upload.
type SelectedFile struct {
	Name       string
	Data       []byte
	SelectedAt time.Time
}

// Empty reports whether nothing usable was chosen.
func (f SelectedFile) Empty() bool {
	return len(f.Data) == 0
}

// Size returns the file length in bytes.
func (f SelectedFile) Size() int64 {
	return int64(len(f.Data))
}

// Preview is a displayable rendition of image bytes.
type Preview struct {
	DataURI  string
	Image    image.Image
	Width    int
	Height   int
	Format   string
	ByteSize int64
}

// HasImage reports whether the bytes decoded into pixels.
func (p Preview) HasImage() bool {
	return p.Image != nil
}

// Percentage is the compression percentage as display text. Strings are kept
// verbatim; numbers use their shortest decimal form, so 75.0 reads "75".
type Percentage string

func (p *Percentage) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		*p = ""
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		s, err := strconv.Unquote(raw)
		if err != nil {
			return fmt.Errorf("invalid percentage %s: %w", raw, err)
		}
		*p = Percentage(s)
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("invalid percentage %s: %w", raw, err)
	}
	*p = Percentage(strconv.FormatFloat(f, 'f', -1, 64))
	return nil
}

// CompressionMetrics are the size figures reported for a compression run.
type CompressionMetrics struct {
	OriginalBytes   float64
	CompressedBytes float64
	Percentage      Percentage
}

// FormatKB renders a byte count in kilobytes with two decimals.
func FormatKB(bytes float64) string {
	return fmt.Sprintf("%.2f KB", bytes/1024)
}

func (m CompressionMetrics) OriginalSize() string {
	return FormatKB(m.OriginalBytes)
}

func (m CompressionMetrics) CompressedSize() string {
	return FormatKB(m.CompressedBytes)
}

// Saved renders the percentage unmodified with a trailing percent sign.
func (m CompressionMetrics) Saved() string {
	return string(m.Percentage) + "%"
}

// Result is the decoded outcome of one service request: Success, Failure or
// TransportError.
type Result interface {
	isResult()
}

// Success carries the processed image and, for compression, its metrics.
type Success struct {
	DataURI   string
	ImageData []byte
	MediaType string
	Metrics   *CompressionMetrics
	Output    Preview
}

// Failure is an error the service reported in its response body.
type Failure struct {
	Message string
}

// TransportError means the request could not complete or its response could
// not be decoded.
type TransportError struct {
	Err error
}

func (Success) isResult()        {}
func (Failure) isResult()        {}
func (TransportError) isResult() {}

func (e TransportError) Error() string {
	if e.Err == nil {
		return "transport failure"
	}
	return fmt.Sprintf("transport failure: %v", e.Err)
}

func (e TransportError) Unwrap() error {
	return e.Err
}

// IsTransport reports whether err is, or wraps, a TransportError.
func IsTransport(err error) bool {
	var te TransportError
	return errors.As(err, &te)
}
