package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	appcontext "github.com/cradoe/profilegate/internal/context"
	"github.com/cradoe/profilegate/internal/metrics"
	"github.com/google/uuid"
)

const (
	DefaultTimeout       = 30 * time.Second
	DefaultUploadTimeout = 60 * time.Second

	maxResponseBytes = 10 << 20
)

// Client talks to the remote backend REST API, the source of truth for all profile
// and financial data. Every call is authenticated with the caller's Bearer token.
type Client struct {
	baseURL       string
	httpClient    *http.Client
	timeout       time.Duration
	uploadTimeout time.Duration
	logger        *slog.Logger
}

type Options struct {
	BaseURL       string
	Timeout       time.Duration
	UploadTimeout time.Duration
	Logger        *slog.Logger
	HTTPClient    *http.Client
}

func New(opts Options) *Client {
	if opts.Timeout == 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.UploadTimeout == 0 {
		opts.UploadTimeout = DefaultUploadTimeout
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		// uploads carry their own, longer deadline through the request context
		httpClient = &http.Client{}
	}

	return &Client{
		baseURL:       strings.TrimRight(opts.BaseURL, "/"),
		httpClient:    httpClient,
		uploadTimeout: opts.UploadTimeout,
		logger:        opts.Logger,
		timeout:       opts.Timeout,
	}
}

type request struct {
	method      string
	path        string
	endpoint    string
	token       string
	body        io.Reader
	contentType string
}

func jsonRequest(method, path, endpoint, token string, payload any) (*request, error) {
	req := &request{method: method, path: path, endpoint: endpoint, token: token}
	if payload != nil {
		js, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		req.body = bytes.NewReader(js)
		req.contentType = "application/json"
	}
	return req, nil
}

// do sends the request and returns the raw body of a 2xx answer.
// Non-2xx answers become KindRejected errors, transport failures KindNetwork.
func (c *Client) do(ctx context.Context, req *request) ([]byte, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, c.baseURL+req.path, req.body)
	if err != nil {
		return nil, err
	}

	httpReq.Header.Set("Accept", "application/json")
	if req.contentType != "" {
		httpReq.Header.Set("Content-Type", req.contentType)
	}
	if req.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.token)
	}

	requestID := appcontext.RequestID(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	httpReq.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	metrics.BackendRequestDuration.WithLabelValues(req.endpoint).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.BackendRequests.WithLabelValues(req.endpoint, "error").Inc()
		c.logger.Warn("backend request failed", "endpoint", req.endpoint, "request_id", requestID, "error", err)
		return nil, networkError(err)
	}
	defer resp.Body.Close()

	metrics.BackendRequests.WithLabelValues(req.endpoint, strconv.Itoa(resp.StatusCode)).Inc()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, networkError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		rejected := rejectedError(resp.StatusCode, body)
		c.logger.Info("backend rejected request",
			"endpoint", req.endpoint,
			"request_id", requestID,
			"status", resp.StatusCode,
			"message", rejected.Message,
		)
		return nil, rejected
	}

	return body, nil
}
