package leagueapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/youth-league/internal/platform/logging"
	"github.com/riskibarqy/youth-league/internal/platform/resilience"
)

const maxResponseBytes = 16 << 20

type Config struct {
	HTTPClient     *http.Client
	BaseURL        string
	Token          string
	Timeout        time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client talks to the league service. The bearer token is passed in
// explicitly; the client never reads ambient credentials.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	token          string
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
}

func New(cfg Config) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, validationf("base url is required")
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, crerr.Wrapf(ErrValidation, "base url %q: %v", baseURL, err)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	// Copy so a shared caller client keeps its own timeout.
	httpClient := &http.Client{}
	if cfg.HTTPClient != nil {
		clientCopy := *cfg.HTTPClient
		httpClient = &clientCopy
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = cfg.Timeout
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 30 * time.Second
	}

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		token:          strings.TrimSpace(cfg.Token),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(cfg.CircuitBreaker, resilience.WithFailurePredicate(isCircuitFailure)),
		circuitEnabled: cfg.CircuitBreaker.Enabled,
	}, nil
}

// WithToken returns a client sharing transport and breaker but sending token.
func (c *Client) WithToken(token string) *Client {
	clone := *c
	clone.token = strings.TrimSpace(token)
	return &clone
}

type request struct {
	method      string
	path        string
	query       url.Values
	body        io.Reader
	contentType string
	accept      string
}

type envelope struct {
	Data json.RawMessage `json:"data"`
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, target any) error {
	return c.doJSON(ctx, request{method: http.MethodGet, path: path, query: query}, target)
}

func (c *Client) sendJSON(ctx context.Context, method, path string, payload, target any) error {
	encoded, err := sonic.Marshal(payload)
	if err != nil {
		return crerr.Wrap(err, "encode request body")
	}
	return c.doJSON(ctx, request{
		method:      method,
		path:        path,
		body:        bytes.NewReader(encoded),
		contentType: "application/json",
	}, target)
}

func (c *Client) doJSON(ctx context.Context, req request, target any) error {
	req.accept = "application/json"
	raw, _, err := c.do(ctx, req)
	if err != nil {
		return err
	}
	if target == nil {
		return nil
	}

	var env envelope
	if err := sonic.Unmarshal(raw, &env); err != nil {
		return crerr.Wrapf(err, "decode %s %s response", req.method, req.path)
	}
	if len(env.Data) == 0 {
		return nil
	}
	if err := sonic.Unmarshal(env.Data, target); err != nil {
		return crerr.Wrapf(err, "decode %s %s data", req.method, req.path)
	}
	return nil
}

// File is a downloaded attachment.
type File struct {
	Name        string
	ContentType string
	Body        []byte
}

func (c *Client) download(ctx context.Context, path string, query url.Values) (File, error) {
	raw, header, err := c.do(ctx, request{method: http.MethodGet, path: path, query: query, accept: "*/*"})
	if err != nil {
		return File{}, err
	}
	return File{
		Name:        attachmentName(header.Get("Content-Disposition")),
		ContentType: header.Get("Content-Type"),
		Body:        raw,
	}, nil
}

func (c *Client) upload(ctx context.Context, path, filename, content string, fields map[string]string, target any) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			return crerr.Wrapf(err, "write form field %s", k)
		}
	}
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return crerr.Wrap(err, "create form file")
	}
	if _, err := io.WriteString(part, content); err != nil {
		return crerr.Wrap(err, "write form file")
	}
	if err := mw.Close(); err != nil {
		return crerr.Wrap(err, "close multipart body")
	}

	return c.doJSON(ctx, request{
		method:      http.MethodPost,
		path:        path,
		body:        &buf,
		contentType: mw.FormDataContentType(),
	}, target)
}

func (c *Client) do(ctx context.Context, req request) ([]byte, http.Header, error) {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "league api circuit breaker rejected request", "state", c.breaker.State(), "path", req.path)
			return nil, nil, crerr.WithStack(ErrUnavailable)
		}
	}

	raw, header, err := c.execute(ctx, req)
	if c.circuitEnabled {
		if isCircuitFailure(err) {
			c.breaker.RecordFailure()
		} else {
			c.breaker.RecordSuccess()
		}
	}
	return raw, header, err
}

func (c *Client) execute(ctx context.Context, req request) ([]byte, http.Header, error) {
	fullURL := c.baseURL + req.path
	if encoded := req.query.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, fullURL, req.body)
	if err != nil {
		return nil, nil, crerr.Wrap(err, "build request")
	}
	httpReq.Header.Set("Accept", req.accept)
	if req.contentType != "" {
		httpReq.Header.Set("Content-Type", req.contentType)
	}
	if c.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.WarnContext(ctx, "league api request failed", "method", req.method, "path", req.path, "error", err)
		return nil, nil, &APIError{Err: crerr.Wrapf(err, "%s %s", req.method, req.path)}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, nil, &APIError{StatusCode: resp.StatusCode, Err: crerr.Wrap(err, "read response body")}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var body map[string]any
		if sonic.Unmarshal(raw, &body) == nil {
			apiErr.Message, apiErr.Status, apiErr.Reason = errorMessage(body)
		}
		c.logger.DebugContext(ctx, "league api non-2xx",
			"method", req.method,
			"path", req.path,
			"status_code", resp.StatusCode,
			"reason", apiErr.Reason,
		)
		return nil, nil, apiErr
	}

	return raw, resp.Header, nil
}

// isCircuitFailure counts transport failures and 5xx responses; a 4xx means
// the service is up and answering.
func isCircuitFailure(err error) bool {
	if err == nil {
		return false
	}
	var apiErr *APIError
	if !crerr.As(err, &apiErr) {
		return false
	}
	return apiErr.StatusCode == 0 || apiErr.StatusCode >= http.StatusInternalServerError
}

func attachmentName(disposition string) string {
	if strings.TrimSpace(disposition) == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(disposition)
	if err != nil {
		return ""
	}
	return params["filename"]
}

func escape(segment string) string {
	return url.PathEscape(strings.TrimSpace(segment))
}

func pathf(format string, segments ...string) string {
	args := make([]any, 0, len(segments))
	for _, s := range segments {
		args = append(args, escape(s))
	}
	return fmt.Sprintf(format, args...)
}
