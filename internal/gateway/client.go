// Package gateway talks to the remote classification, history, statistics
// and environmental-reference services over HTTP.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/Veraticus/sortbin/internal/common"
	"github.com/Veraticus/sortbin/internal/model"
	"github.com/Veraticus/sortbin/internal/service"
	"github.com/google/uuid"
)

// maxErrorBody bounds how much of a failed response is kept for messages.
const maxErrorBody = 4 << 10

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// Client is a single-attempt HTTP client for the remote services.
type Client struct {
	httpClient *http.Client
	baseURL    *url.URL
	prefix     string
	userAgent  string
}

// Ensure we implement the interface.
var _ service.Gateway = (*Client)(nil)

// NewClient creates a gateway client from cfg.
func NewClient(cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	prefix := cfg.APIPrefix
	if prefix != "" && !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    base,
		prefix:     strings.TrimRight(prefix, "/"),
		userAgent:  cfg.UserAgent,
	}, nil
}

// Classify uploads an image and returns the predicted class with all scores.
func (c *Client) Classify(ctx context.Context, image model.Image) (model.ClassificationResult, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename="%s"`, quoteEscaper.Replace(path.Base(image.Name))))
	contentType := image.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	if err != nil {
		return model.ClassificationResult{}, fmt.Errorf("failed to create multipart part: %w", err)
	}
	if _, err := part.Write(image.Data); err != nil {
		return model.ClassificationResult{}, fmt.Errorf("failed to write image data: %w", err)
	}
	if err := writer.Close(); err != nil {
		return model.ClassificationResult{}, fmt.Errorf("failed to finish multipart body: %w", err)
	}

	var result model.ClassificationResult
	err = c.do(ctx, request{
		op:          "classify",
		method:      http.MethodPost,
		path:        c.endpoint("predict"),
		body:        &body,
		contentType: writer.FormDataContentType(),
	}, &result)
	if err != nil {
		return model.ClassificationResult{}, err
	}

	return result, nil
}

// ListHistory returns past classifications in the order the service sends them.
func (c *Client) ListHistory(ctx context.Context) ([]model.HistoryEntry, error) {
	var entries []model.HistoryEntry
	if err := c.do(ctx, request{op: "list history", method: http.MethodGet, path: c.endpoint("history")}, &entries); err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []model.HistoryEntry{}
	}
	return entries, nil
}

// DeleteHistoryEntry removes a single history entry.
func (c *Client) DeleteHistoryEntry(ctx context.Context, id model.EntryID) error {
	if id == "" {
		return common.NewValidationError("id", common.ErrNotFound, "history entry id is required")
	}
	return c.do(ctx, request{
		op:     "delete history entry",
		method: http.MethodDelete,
		path:   c.endpoint("history", id.String()),
	}, nil)
}

// ClearHistory removes every history entry.
func (c *Client) ClearHistory(ctx context.Context) error {
	return c.do(ctx, request{op: "clear history", method: http.MethodDelete, path: c.endpoint("history", "clear")}, nil)
}

// FetchStatistics returns aggregates for the given window.
func (c *Client) FetchStatistics(ctx context.Context, timeframe model.Timeframe) (model.StatisticsSnapshot, error) {
	if timeframe == "" {
		timeframe = model.DefaultTimeframe
	}

	query := url.Values{}
	query.Set("timeframe", string(timeframe))

	var snapshot model.StatisticsSnapshot
	err := c.do(ctx, request{
		op:     "fetch statistics",
		method: http.MethodGet,
		path:   c.endpoint("statistics", "timeframe"),
		query:  query,
	}, &snapshot)
	if err != nil {
		return model.StatisticsSnapshot{}, err
	}

	if snapshot.Timeframe == "" {
		snapshot.Timeframe = timeframe
	}
	return snapshot, nil
}

// FetchReferenceCatalog returns every environmental-impact entry.
func (c *Client) FetchReferenceCatalog(ctx context.Context) ([]model.ReferenceMaterial, error) {
	var materials []model.ReferenceMaterial
	if err := c.do(ctx, request{op: "fetch reference catalog", method: http.MethodGet, path: c.endpoint("environmental")}, &materials); err != nil {
		return nil, err
	}
	if materials == nil {
		materials = []model.ReferenceMaterial{}
	}
	return materials, nil
}

// FetchReferenceMaterial returns the catalog entry for one material.
func (c *Client) FetchReferenceMaterial(ctx context.Context, material string) (model.ReferenceMaterial, error) {
	material = strings.TrimSpace(material)
	if material == "" {
		return model.ReferenceMaterial{}, common.NewValidationError("material", nil, "material name is required")
	}

	var entry model.ReferenceMaterial
	err := c.do(ctx, request{
		op:     "fetch reference material",
		method: http.MethodGet,
		path:   c.endpoint("environmental", strings.ToLower(material)),
	}, &entry)
	if err != nil {
		return model.ReferenceMaterial{}, err
	}
	return entry, nil
}

// Health checks that the backend is up.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, request{op: "health", method: http.MethodGet, path: c.endpoint("health")}, nil)
}

type request struct {
	body        io.Reader
	query       url.Values
	op          string
	method      string
	path        string
	contentType string
}

// endpoint joins the API prefix and escaped path segments.
func (c *Client) endpoint(segments ...string) string {
	escaped := make([]string, 0, len(segments))
	for _, s := range segments {
		escaped = append(escaped, url.PathEscape(s))
	}
	return c.prefix + "/" + strings.Join(escaped, "/")
}

func (c *Client) do(ctx context.Context, r request, out any) error {
	u := *c.baseURL
	rawPath := strings.TrimRight(c.baseURL.EscapedPath(), "/") + r.path
	decoded, err := url.PathUnescape(rawPath)
	if err != nil {
		return fmt.Errorf("failed to build %s path: %w", r.op, err)
	}
	u.Path = decoded
	u.RawPath = rawPath
	if len(r.query) > 0 {
		u.RawQuery = r.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, r.method, u.String(), r.body)
	if err != nil {
		return fmt.Errorf("failed to create %s request: %w", r.op, err)
	}

	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)
	req.Header.Set("Accept", "application/json")
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		common.LogDebug("Gateway request failed", common.Fields{
			"op":         r.op,
			"method":     r.method,
			"path":       u.Path,
			"request_id": requestID,
			"error":      err,
		})
		return &common.TransportError{Op: r.op, Err: err}
	}
	defer func() {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		if closeErr := resp.Body.Close(); closeErr != nil {
			common.LogDebug("Failed to close response body", common.Fields{"op": r.op, "error": closeErr})
		}
	}()

	common.LogDebug("Gateway request", common.Fields{
		"op":         r.op,
		"method":     r.method,
		"path":       u.Path,
		"status":     resp.StatusCode,
		"duration":   time.Since(start),
		"request_id": requestID,
	})

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &common.ServiceError{
			Op:         r.op,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &common.ServiceError{
			Op:         r.op,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("failed to decode response: %w", err),
		}
	}

	return nil
}
