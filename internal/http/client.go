// Package http implements the MAS transport: one HTTP exchange per call,
// with failures classified into mas.Fault kinds.
package http

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/fivetwenty-io/mas-client/internal/constants"
	"github.com/fivetwenty-io/mas-client/pkg/mas"
)

const (
	tracerName       = "github.com/fivetwenty-io/mas-client/internal/http"
	defaultUserAgent = "mas-client/1.0"
	contentTypeJSON  = "application/json;charset=utf-8"
)

// Client performs MAS exchanges.
type Client struct {
	httpClient   *retryablehttp.Client
	logger       mas.Logger
	debug        bool
	userAgent    string
	interceptors *mas.InterceptorChain
}

// Response represents a received HTTP response.
type Response struct {
	StatusCode int
	Body       []byte
	Headers    http.Header
}

// Option configures the HTTP client.
type Option func(*Client)

// WithLogger sets the logger.
func WithLogger(logger mas.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithDebug logs every request and response at debug level.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		if userAgent != "" {
			c.userAgent = userAgent
		}
	}
}

// WithHTTPClient sets the underlying http.Client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient.HTTPClient = httpClient
		}
	}
}

// WithTimeout sets the timeout of one exchange.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.HTTPClient.Timeout = timeout
		}
	}
}

// WithInterceptors runs chain around every exchange.
func WithInterceptors(chain *mas.InterceptorChain) Option {
	return func(c *Client) {
		c.interceptors = chain
	}
}

// NewClient creates a new HTTP client. Exchanges are never retried.
func NewClient(opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 0
	retryClient.CheckRetry = neverRetry
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	retryClient.Logger = nil
	retryClient.HTTPClient = &http.Client{Timeout: constants.DefaultHTTPTimeout}

	client := &Client{
		httpClient: retryClient,
		logger:     mas.NopLogger(),
		userAgent:  defaultUserAgent,
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.debug {
		retryClient.RequestLogHook = client.logRequest
		retryClient.ResponseLogHook = client.logResponse
	}

	return client
}

func neverRetry(_ context.Context, _ *http.Response, _ error) (bool, error) {
	return false, nil
}

func (c *Client) logRequest(_ retryablehttp.Logger, req *http.Request, _ int) {
	c.logger.Debug("HTTP Request", map[string]interface{}{
		"method": req.Method,
		"url":    req.URL.String(),
	})
}

func (c *Client) logResponse(_ retryablehttp.Logger, resp *http.Response) {
	c.logger.Debug("HTTP Response", map[string]interface{}{
		"status": resp.StatusCode,
		"url":    resp.Request.URL.String(),
	})
}

// Do performs one exchange of call against server. A nil server fails with
// FaultNoServer before any network I/O. When a response was received it is
// returned even if err is non-nil.
func (c *Client) Do(ctx context.Context, server *mas.Server, call *mas.Call) (*Response, error) {
	if server == nil {
		return nil, mas.NewFault(mas.FaultNoServer, nil)
	}

	if len(call.Body) > 0 && !call.Method.BodyAllowed() {
		return nil, mas.NewFault(mas.FaultError, fmt.Errorf("%w: %s", mas.ErrBodyNotAllowed, call.Method))
	}

	ctx, span := otel.Tracer(tracerName).Start(ctx, "mas.exchange",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", call.Method.String()),
			attribute.String("mas.path", call.Path),
			attribute.String("server.address", server.Host),
		))
	defer span.End()

	resp, err := c.do(ctx, server, call)
	if resp != nil {
		span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	return resp, err
}

func (c *Client) do(ctx context.Context, server *mas.Server, call *mas.Call) (*Response, error) {
	target := server.URL(call.Path)
	if encoded := call.Query.Encode(); encoded != "" {
		target += "?" + encoded
	}

	var body interface{}
	if len(call.Body) > 0 {
		body = call.Body
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, call.Method.String(), target, body)
	if err != nil {
		return nil, mas.NewFault(mas.FaultError, fmt.Errorf("creating request: %w", err))
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	if body != nil {
		req.Header.Set("Content-Type", contentTypeJSON)
	}

	req.SetBasicAuth(server.Username, server.Password)

	intercepted := &mas.InterceptedRequest{
		Method:   call.Method.String(),
		Endpoint: endpointOf(call.Path),
		Path:     call.Path,
		Headers:  req.Header,
		Body:     call.Body,
	}

	if err := c.interceptors.ExecuteRequestInterceptors(ctx, intercepted); err != nil {
		return nil, mas.NewFault(mas.FaultError, err)
	}

	resp, respBody, err := c.exchange(req)

	result := &mas.InterceptedResponse{Body: respBody, Error: err}
	if resp != nil {
		result.StatusCode = resp.StatusCode
		result.Headers = resp.Header
	}

	if err == nil && !isSuccess(result.StatusCode) {
		err = mas.FaultForStatus(result.StatusCode)
		result.Error = err
	}

	if ierr := c.interceptors.ExecuteResponseInterceptors(ctx, intercepted, result); ierr != nil && err == nil {
		err = mas.NewFault(mas.FaultError, ierr)
	}

	if resp == nil {
		return nil, err
	}

	return &Response{StatusCode: resp.StatusCode, Body: respBody, Headers: resp.Header}, err
}

func (c *Client) exchange(req *retryablehttp.Request) (*http.Response, []byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, ClassifyError(err)
	}

	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.logger.Warn("failed to close response body", map[string]interface{}{"error": cerr.Error()})
		}
	}()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return resp, nil, ClassifyError(fmt.Errorf("reading response body: %w", err))
	}

	return resp, buf.Bytes(), nil
}

// Send performs one exchange and returns the response body.
func (c *Client) Send(ctx context.Context, server *mas.Server, call *mas.Call) ([]byte, error) {
	resp, err := c.Do(ctx, server, call)
	if err != nil {
		return nil, err
	}

	return resp.Body, nil
}

func isSuccess(statusCode int) bool {
	return statusCode >= http.StatusOK && statusCode < http.StatusMultipleChoices
}

func endpointOf(path string) string {
	endpoint, _, _ := strings.Cut(strings.TrimLeft(path, "/"), "/")

	return endpoint
}
