// Package client talks to a remote recruiting API exposing the same
// resources as the handler package.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/stevemurr/recruit-store/recruit"
)

const defaultTimeout = 10 * time.Second

// APIError is returned for any non-2xx response.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: status %d", e.StatusCode)
	}
	return fmt.Sprintf("api error: status %d: %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether err is an APIError with status 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// Client holds one typed resource per entity kind.
type Client struct {
	Candidates *Resource[recruit.Candidate]
	Interviews *Resource[recruit.Interview]
	Feedback   *Resource[recruit.Feedback]
	Offers     *Resource[recruit.Offer]
}

// Option configures a Client.
type Option func(*transport)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(t *transport) { t.httpClient = hc }
}

// WithToken sends a bearer token with every request.
func WithToken(token string) Option {
	return func(t *transport) { t.token = token }
}

// New creates a Client for the API rooted at baseURL, e.g. http://host:8080/api/v1.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported base url scheme %q", u.Scheme)
	}
	t := &transport{base: u.String(), httpClient: &http.Client{Timeout: defaultTimeout}}
	for _, opt := range opts {
		opt(t)
	}
	return &Client{
		Candidates: &Resource[recruit.Candidate]{t: t, kind: recruit.KindCandidate},
		Interviews: &Resource[recruit.Interview]{t: t, kind: recruit.KindInterview},
		Feedback:   &Resource[recruit.Feedback]{t: t, kind: recruit.KindFeedback},
		Offers:     &Resource[recruit.Offer]{t: t, kind: recruit.KindOffer},
	}, nil
}

// Resource is the remote collection of one entity kind.
type Resource[T any] struct {
	t    *transport
	kind recruit.Kind
}

// List returns the records matching filter, which may be nil.
func (r *Resource[T]) List(ctx context.Context, filter url.Values) ([]T, error) {
	path := "/" + string(r.kind)
	if len(filter) > 0 {
		path += "?" + filter.Encode()
	}
	var items []T
	if err := r.t.do(ctx, http.MethodGet, path, nil, &items); err != nil {
		return nil, fmt.Errorf("list %s: %w", r.kind, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// Get fetches one record. A 404 is reported as ok == false.
func (r *Resource[T]) Get(ctx context.Context, id string) (T, bool, error) {
	var item T
	err := r.t.do(ctx, http.MethodGet, r.itemPath(id), nil, &item)
	if IsNotFound(err) {
		return item, false, nil
	}
	if err != nil {
		return item, false, fmt.Errorf("get %s %s: %w", r.kind, id, err)
	}
	return item, true, nil
}

// Create posts a record and returns the stored version.
func (r *Resource[T]) Create(ctx context.Context, item T) (T, error) {
	var created T
	if err := r.t.do(ctx, http.MethodPost, "/"+string(r.kind), item, &created); err != nil {
		return created, fmt.Errorf("create %s: %w", r.kind, err)
	}
	return created, nil
}

// Update sends a partial record (PATCH) and returns the merged result.
// A 404 is reported as ok == false.
func (r *Resource[T]) Update(ctx context.Context, id string, partial map[string]any) (T, bool, error) {
	var updated T
	err := r.t.do(ctx, http.MethodPatch, r.itemPath(id), partial, &updated)
	if IsNotFound(err) {
		return updated, false, nil
	}
	if err != nil {
		return updated, false, fmt.Errorf("update %s %s: %w", r.kind, id, err)
	}
	return updated, true, nil
}

// Replace stores item in place of the record id (PUT). Fields missing from
// item are cleared. A 404 is reported as ok == false.
func (r *Resource[T]) Replace(ctx context.Context, id string, item T) (T, bool, error) {
	var replaced T
	err := r.t.do(ctx, http.MethodPut, r.itemPath(id), item, &replaced)
	if IsNotFound(err) {
		return replaced, false, nil
	}
	if err != nil {
		return replaced, false, fmt.Errorf("replace %s %s: %w", r.kind, id, err)
	}
	return replaced, true, nil
}

// Delete removes a record and reports whether it existed.
func (r *Resource[T]) Delete(ctx context.Context, id string) (bool, error) {
	err := r.t.do(ctx, http.MethodDelete, r.itemPath(id), nil, nil)
	if IsNotFound(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("delete %s %s: %w", r.kind, id, err)
	}
	return true, nil
}

func (r *Resource[T]) itemPath(id string) string {
	return "/" + string(r.kind) + "/" + url.PathEscape(id)
}

type transport struct {
	base       string
	token      string
	httpClient *http.Client
}

func (t *transport) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, t.base+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if t.token != "" {
		req.Header.Set("Authorization", "Bearer "+t.token)
	}

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	apiErr := &APIError{StatusCode: resp.StatusCode}
	var body struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(data, &body) == nil && body.Error != "" {
		apiErr.Message = body.Error
	} else {
		apiErr.Message = strings.TrimSpace(string(data))
	}
	return apiErr
}
