// Package eventstore is the HTTP client for the remote event service.
package eventstore

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Veraticus/show-me-the-data/internal/model"
)

// Store is the set of event service operations the controller depends on.
type Store interface {
	ListEvents(ctx context.Context, category model.Category) ([]model.EventRecord, error)
	CreateEvent(ctx context.Context, category model.Category, sourceText string, ownerID *string) (CreateResult, error)
	DeleteEvent(ctx context.Context, id string) error
}

// CreateResult is the outcome of a successful analyze-and-register call.
type CreateResult struct {
	AnalysisSummary string
	Record          model.EventRecord
	TokensUsed      int
}

// Config configures a Client.
type Config struct {
	HTTPClient *http.Client
	// RootCAs, when set, replaces the system pool for HTTPS.
	RootCAs *x509.CertPool
	BaseURL string
	Timeout time.Duration
}

// Client talks to the event service over HTTP.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

var _ Store = (*Client)(nil)

// New creates a client for the service rooted at cfg.BaseURL.
func New(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, fmt.Errorf("event service base URL is required")
	}
	if _, err := url.ParseRequestURI(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid event service base URL: %w", err)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
				TLSClientConfig: &tls.Config{
					RootCAs:    cfg.RootCAs,
					MinVersion: tls.VersionTLS12,
				},
			},
		}
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
	}, nil
}

type listResponse struct {
	Events []model.EventRecord `json:"events"`
	Total  int                 `json:"total"`
}

type createRequest struct {
	UserID *string        `json:"user_id"`
	Text   string         `json:"text"`
	Mode   model.Category `json:"mode"`
}

type createResponse struct {
	Event      *model.EventRecord `json:"event"`
	Analysis   string             `json:"analysis"`
	TokensUsed int                `json:"tokens_used"`
}

// ListEvents fetches every event in category. On failure it returns an empty
// slice together with the error.
func (c *Client) ListEvents(ctx context.Context, category model.Category) ([]model.EventRecord, error) {
	const op = "list events"

	query := url.Values{"event_type": {string(category)}}
	body, err := c.do(ctx, op, http.MethodGet, "/events?"+query.Encode(), nil)
	if err != nil {
		return []model.EventRecord{}, err
	}

	var resp listResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return []model.EventRecord{}, decodeErr(op, err)
	}
	if resp.Events == nil {
		resp.Events = []model.EventRecord{}
	}

	return resp.Events, nil
}

// CreateEvent submits raw text for extraction and persistence.
func (c *Client) CreateEvent(ctx context.Context, category model.Category, sourceText string, ownerID *string) (CreateResult, error) {
	const op = "create event"

	payload, err := json.Marshal(createRequest{
		Text:   sourceText,
		Mode:   category,
		UserID: ownerID,
	})
	if err != nil {
		return CreateResult{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	body, err := c.do(ctx, op, http.MethodPost, "/events", payload)
	if err != nil {
		return CreateResult{}, err
	}

	var resp createResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return CreateResult{}, decodeErr(op, err)
	}
	if resp.Event == nil {
		return CreateResult{}, decodeErr(op, errors.New("response has no event"))
	}

	return CreateResult{
		Record:          *resp.Event,
		AnalysisSummary: resp.Analysis,
		TokensUsed:      resp.TokensUsed,
	}, nil
}

// DeleteEvent asks the service to delete an event. Any HTTP response counts as
// success; only transport errors are returned.
func (c *Client) DeleteEvent(ctx context.Context, id string) error {
	const op = "delete event"

	req, err := c.newRequest(ctx, http.MethodDelete, "/events/"+url.PathEscape(id), nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return transportErr(op, 0, err)
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)

	return nil
}

// GetEvent fetches a single event by id.
func (c *Client) GetEvent(ctx context.Context, id string) (model.EventRecord, error) {
	const op = "get event"

	body, err := c.do(ctx, op, http.MethodGet, "/events/"+url.PathEscape(id), nil)
	if err != nil {
		return model.EventRecord{}, err
	}

	var rec model.EventRecord
	if err := json.Unmarshal(body, &rec); err != nil {
		return model.EventRecord{}, decodeErr(op, err)
	}
	return rec, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, payload []byte) (*http.Request, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// do performs a request and returns the body of a 2xx response.
func (c *Client) do(ctx context.Context, op, method, path string, payload []byte) ([]byte, error) {
	req, err := c.newRequest(ctx, method, path, payload)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, transportErr(op, 0, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, transportErr(op, resp.StatusCode, fmt.Errorf("failed to read response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, transportErr(op, resp.StatusCode, fmt.Errorf("event service error: %s", strings.TrimSpace(string(body))))
	}

	return body, nil
}
