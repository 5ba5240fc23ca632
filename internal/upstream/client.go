// Package upstream is the HTTP client for the Caristo platform API,
// the source of truth for all marketplace data shown in the dashboard.
// It owns the wire details the rest of the app should never see:
// query-parameter encoding for list requests, the {data, pagination}
// response envelope, the error-body shapes, and the normalization of
// the API's inconsistent entity identifier fields.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/caristo/adminhub/internal/app/system/listkit"
)

// Client talks to the platform API. Safe for concurrent use.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *zap.Logger
}

// New builds a client for the given base URL. token, when non-empty,
// is sent as a bearer credential on every request.
func New(baseURL, token string, logger *zap.Logger) *Client {
	return &Client{
		baseURL:    normalizeBase(baseURL),
		token:      token,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger.With(zap.String("component", "upstream_client")),
	}
}

func normalizeBase(u string) string {
	for len(u) > 0 && u[len(u)-1] == '/' {
		u = u[:len(u)-1]
	}
	return u
}

// BaseURL returns the configured API base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// envelope is the standard list/detail response wrapper.
type envelope struct {
	Data       json.RawMessage `json:"data"`
	Pagination *listkit.Meta   `json:"pagination"`
	Message    string          `json:"message"`
}

// ListParams encodes a list query as the API's query parameters. Extra
// holds entity-specific filters appended verbatim.
func ListParams(q listkit.Query, extra url.Values) url.Values {
	q = q.Normalize()
	v := url.Values{}
	v.Set("page", strconv.Itoa(q.Page))
	v.Set("limit", strconv.Itoa(q.Limit))
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.Status != "" {
		v.Set("status", q.Status)
	}
	if q.SortBy != "" {
		v.Set("sortBy", q.SortBy)
	}
	if q.DateRange != nil {
		v.Set("from", q.DateRange.From.UTC().Format(time.RFC3339))
		v.Set("to", q.DateRange.To.UTC().Format(time.RFC3339))
	}
	for k, vals := range extra {
		for _, val := range vals {
			v.Add(k, val)
		}
	}
	return v
}

// List fetches one page of rows from a list endpoint and decodes the
// {data, pagination} envelope. Pagination metadata is reconciled so
// totalPages always equals ceil(total/limit) even when the upstream
// response omits or miscomputes it.
func List[T any](ctx context.Context, c *Client, path string, q listkit.Query) ([]T, listkit.Meta, error) {
	body, err := c.do(ctx, http.MethodGet, path+"?"+ListParams(q, nil).Encode(), nil, "")
	if err != nil {
		return nil, listkit.Meta{}, err
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, listkit.Meta{}, fmt.Errorf("decode list envelope: %w", err)
	}

	var items []T
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &items); err != nil {
			return nil, listkit.Meta{}, fmt.Errorf("decode list rows: %w", err)
		}
	}

	meta := listkit.ComputeMeta(q.Page, q.Limit, int64(len(items)))
	if env.Pagination != nil {
		meta = env.Pagination.Reconcile()
	}
	return items, meta, nil
}

// Get fetches a single entity. Endpoints that wrap the record in a
// {data: {...}} envelope and endpoints that return it bare both work.
func Get[T any](ctx context.Context, c *Client, path string) (T, error) {
	var out T
	body, err := c.do(ctx, http.MethodGet, path, nil, "")
	if err != nil {
		return out, err
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err == nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &out); err != nil {
			return out, fmt.Errorf("decode entity: %w", err)
		}
		return out, nil
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return out, fmt.Errorf("decode entity: %w", err)
	}
	return out, nil
}

// Post sends a JSON create request.
func (c *Client) Post(ctx context.Context, path string, payload any) error {
	return c.sendJSON(ctx, http.MethodPost, path, payload)
}

// Put sends a JSON replace request.
func (c *Client) Put(ctx context.Context, path string, payload any) error {
	return c.sendJSON(ctx, http.MethodPut, path, payload)
}

// Patch sends a JSON partial-update request.
func (c *Client) Patch(ctx context.Context, path string, payload any) error {
	return c.sendJSON(ctx, http.MethodPatch, path, payload)
}

// Delete sends a delete request.
func (c *Client) Delete(ctx context.Context, path string) error {
	_, err := c.do(ctx, http.MethodDelete, path, nil, "")
	return err
}

func (c *Client) sendJSON(ctx context.Context, method, path string, payload any) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(raw)
	}
	_, err := c.do(ctx, method, path, body, "application/json")
	return err
}

// FileAttachment is an uploaded file to include in a multipart
// submission.
type FileAttachment struct {
	Field       string
	Filename    string
	ContentType string
	Data        []byte
}

// PostMultipart sends fields plus an optional file as a multipart
// form. Image-bearing mutations (banners) use this path.
func (c *Client) PostMultipart(ctx context.Context, path string, fields map[string]string, file *FileAttachment) error {
	return c.sendMultipart(ctx, http.MethodPost, path, fields, file)
}

// PutMultipart is PostMultipart with PUT semantics (edit with image).
func (c *Client) PutMultipart(ctx context.Context, path string, fields map[string]string, file *FileAttachment) error {
	return c.sendMultipart(ctx, http.MethodPut, path, fields, file)
}

func (c *Client) sendMultipart(ctx context.Context, method, path string, fields map[string]string, file *FileAttachment) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return fmt.Errorf("write form field %q: %w", k, err)
		}
	}
	if file != nil {
		fw, err := w.CreateFormFile(file.Field, file.Filename)
		if err != nil {
			return fmt.Errorf("create form file: %w", err)
		}
		if _, err := fw.Write(file.Data); err != nil {
			return fmt.Errorf("write form file: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finalize multipart body: %w", err)
	}
	_, err := c.do(ctx, method, path, &buf, w.FormDataContentType())
	return err
}

// do issues one request and returns the response body, or an
// *APIError for non-2xx statuses.
func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("X-Request-ID", uuid.NewString())
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response for %s %s: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := parseAPIError(resp.StatusCode, raw)
		c.logger.Warn("upstream request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("message", apiErr.Message),
		)
		return nil, apiErr
	}
	return raw, nil
}

// Ping verifies the API is reachable. Used by the health endpoint.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodGet, "/health", nil, "")
	return err
}
