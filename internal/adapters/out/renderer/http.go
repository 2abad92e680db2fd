// Package renderer holds the InvoiceRenderer adapters: a client for a remote
// rendering service and an in-process PDF writer.
package renderer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"storefront/internal/core/domain/model/invoice"
)

// MaxDocumentSize caps the response body read from the rendering service.
const MaxDocumentSize = 20 << 20

var ErrUnexpectedResponse = errors.New("renderer returned an unexpected response")

// HTTPRenderer posts the invoice payload as JSON and expects PDF bytes back.
type HTTPRenderer struct {
	url        string
	httpClient *http.Client
}

func NewHTTPRenderer(url string, timeout time.Duration) (*HTTPRenderer, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, errors.New("renderer url is required")
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPRenderer{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

func (r *HTTPRenderer) Render(ctx context.Context, payload invoice.Payload) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode invoice payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", invoice.ContentType)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: status %d: %s", ErrUnexpectedResponse, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}
	if mediaType, _, err := mime.ParseMediaType(resp.Header.Get("Content-Type")); err != nil || mediaType != invoice.ContentType {
		return nil, fmt.Errorf("%w: content type %q", ErrUnexpectedResponse, resp.Header.Get("Content-Type"))
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxDocumentSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > MaxDocumentSize {
		return nil, fmt.Errorf("%w: document exceeds %d bytes", ErrUnexpectedResponse, MaxDocumentSize)
	}
	return data, nil
}
