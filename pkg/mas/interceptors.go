package mas

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"
)

// InterceptedRequest is the outgoing side of one exchange as seen by
// interceptors. Headers may be modified before the request is sent.
type InterceptedRequest struct {
	Method   string
	Endpoint string
	Path     string
	Headers  http.Header
	Body     []byte
	Metadata map[string]interface{}
}

// InterceptedResponse is the result of one exchange. Error is set when no
// usable response was received or the response was classified as a Fault.
type InterceptedResponse struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	Error      error
}

// RequestInterceptor is called before a request is sent.
type RequestInterceptor func(ctx context.Context, req *InterceptedRequest) error

// ResponseInterceptor is called after a response is received.
type ResponseInterceptor func(ctx context.Context, req *InterceptedRequest, resp *InterceptedResponse) error

// InterceptorChain manages a chain of interceptors. A chain is configured
// before use and then shared read-only by concurrent exchanges.
type InterceptorChain struct {
	requestInterceptors  []RequestInterceptor
	responseInterceptors []ResponseInterceptor
}

// NewInterceptorChain creates a new interceptor chain.
func NewInterceptorChain() *InterceptorChain {
	return &InterceptorChain{
		requestInterceptors:  make([]RequestInterceptor, 0),
		responseInterceptors: make([]ResponseInterceptor, 0),
	}
}

// AddRequestInterceptor adds a request interceptor to the chain.
func (c *InterceptorChain) AddRequestInterceptor(interceptor RequestInterceptor) *InterceptorChain {
	c.requestInterceptors = append(c.requestInterceptors, interceptor)

	return c
}

// AddResponseInterceptor adds a response interceptor to the chain.
func (c *InterceptorChain) AddResponseInterceptor(interceptor ResponseInterceptor) *InterceptorChain {
	c.responseInterceptors = append(c.responseInterceptors, interceptor)

	return c
}

// ExecuteRequestInterceptors runs all request interceptors in order.
func (c *InterceptorChain) ExecuteRequestInterceptors(ctx context.Context, req *InterceptedRequest) error {
	if c == nil {
		return nil
	}

	for _, interceptor := range c.requestInterceptors {
		if err := interceptor(ctx, req); err != nil {
			return fmt.Errorf("request interceptor failed: %w", err)
		}
	}

	return nil
}

// ExecuteResponseInterceptors runs all response interceptors in order.
func (c *InterceptorChain) ExecuteResponseInterceptors(ctx context.Context, req *InterceptedRequest, resp *InterceptedResponse) error {
	if c == nil {
		return nil
	}

	for _, interceptor := range c.responseInterceptors {
		if err := interceptor(ctx, req, resp); err != nil {
			return fmt.Errorf("response interceptor failed: %w", err)
		}
	}

	return nil
}

// LoggingInterceptor logs outgoing requests at debug level.
func LoggingInterceptor(logger Logger) RequestInterceptor {
	return func(_ context.Context, req *InterceptedRequest) error {
		logger.Debug("MAS request", map[string]interface{}{
			"method": req.Method,
			"path":   req.Path,
		})

		return nil
	}
}

// LoggingResponseInterceptor logs responses, failures at error level.
func LoggingResponseInterceptor(logger Logger) ResponseInterceptor {
	return func(_ context.Context, req *InterceptedRequest, resp *InterceptedResponse) error {
		fields := map[string]interface{}{
			"method":      req.Method,
			"path":        req.Path,
			"status_code": resp.StatusCode,
			"bytes":       len(resp.Body),
		}

		if resp.Error != nil {
			fields["error"] = resp.Error.Error()
			logger.Error("MAS response error", fields)
		} else {
			logger.Debug("MAS response", fields)
		}

		return nil
	}
}

// HeaderInterceptor sets fixed headers on every request.
func HeaderInterceptor(headers map[string]string) RequestInterceptor {
	return func(_ context.Context, req *InterceptedRequest) error {
		if req.Headers == nil {
			req.Headers = make(http.Header)
		}

		for key, value := range headers {
			req.Headers.Set(key, value)
		}

		return nil
	}
}

// Metrics aggregates exchanges for one method and endpoint.
type Metrics struct {
	TotalRequests   int64
	TotalErrors     int64
	TotalLatency    time.Duration
	AverageLatency  time.Duration
	LastRequestTime time.Time
}

// MetricsCollector collects per-endpoint exchange metrics. It is safe for
// the concurrent exchanges of a multi-page list.
type MetricsCollector struct {
	mu       sync.Mutex
	metrics  map[string]*Metrics
	onChange func(key string, metrics Metrics)
}

// NewMetricsCollector creates a new metrics collector.
func NewMetricsCollector() *MetricsCollector {
	return &MetricsCollector{
		metrics: make(map[string]*Metrics),
	}
}

// SetOnChange sets a callback invoked with a snapshot after every update.
func (m *MetricsCollector) SetOnChange(fn func(key string, metrics Metrics)) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.onChange = fn
}

// GetMetrics returns a snapshot for key ("GET form"), or false if none.
func (m *MetricsCollector) GetMetrics(key string) (Metrics, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	metrics, ok := m.metrics[key]
	if !ok {
		return Metrics{}, false
	}

	return *metrics, true
}

// Install registers the collector's interceptors on chain.
func (m *MetricsCollector) Install(chain *InterceptorChain) {
	chain.AddRequestInterceptor(MetricsRequestInterceptor(m))
	chain.AddResponseInterceptor(MetricsResponseInterceptor(m))
}

// MetricsRequestInterceptor records the request start time.
func MetricsRequestInterceptor(_ *MetricsCollector) RequestInterceptor {
	return func(_ context.Context, req *InterceptedRequest) error {
		if req.Metadata == nil {
			req.Metadata = make(map[string]interface{})
		}

		req.Metadata["start_time"] = time.Now()

		return nil
	}
}

// MetricsResponseInterceptor records response metrics.
func MetricsResponseInterceptor(collector *MetricsCollector) ResponseInterceptor {
	return func(_ context.Context, req *InterceptedRequest, resp *InterceptedResponse) error {
		key := req.Method + " " + req.Endpoint

		collector.mu.Lock()

		metrics, ok := collector.metrics[key]
		if !ok {
			metrics = &Metrics{}
			collector.metrics[key] = metrics
		}

		metrics.TotalRequests++
		metrics.LastRequestTime = time.Now()

		if startTime, ok := req.Metadata["start_time"].(time.Time); ok {
			metrics.TotalLatency += time.Since(startTime)
			metrics.AverageLatency = metrics.TotalLatency / time.Duration(metrics.TotalRequests)
		}

		if resp.Error != nil || resp.StatusCode >= http.StatusBadRequest {
			metrics.TotalErrors++
		}

		snapshot := *metrics
		onChange := collector.onChange

		collector.mu.Unlock()

		if onChange != nil {
			onChange(key, snapshot)
		}

		return nil
	}
}
