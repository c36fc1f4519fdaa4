package mas

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/fivetwenty-io/mas-client/internal/constants"
)

const tracerName = "github.com/fivetwenty-io/mas-client/pkg/mas"

// Sender performs exactly one HTTP exchange for a Call and returns the raw
// response body. Failures are returned as *Fault.
type Sender interface {
	Send(ctx context.Context, call *Call) ([]byte, error)
}

// ListOptionProvider is implemented by senders that supply default list
// options, such as a logger or a fan-out limit.
type ListOptionProvider interface {
	ListOptions() []ListOption
}

type listOptions struct {
	concurrency int
	logger      Logger
}

// ListOption configures List.
type ListOption func(*listOptions)

// WithConcurrency bounds how many pages after the first are fetched at once.
// Values below 1 are ignored.
func WithConcurrency(n int) ListOption {
	return func(o *listOptions) {
		if n > 0 {
			o.concurrency = n
		}
	}
}

// WithListLogger sets the logger used to report list results.
func WithListLogger(logger Logger) ListOption {
	return func(o *listOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func resolveListOptions(s Sender, opts []ListOption) *listOptions {
	options := &listOptions{
		concurrency: constants.DefaultPageFetchConcurrency,
		logger:      NopLogger(),
	}

	if provider, ok := s.(ListOptionProvider); ok {
		for _, opt := range provider.ListOptions() {
			opt(options)
		}
	}

	for _, opt := range opts {
		opt(options)
	}

	return options
}

// FetchPage fetches and decodes a single page of req.
func FetchPage[T any, ID Identifier](ctx context.Context, s Sender, req *Request[ID], page uint) (*Envelope[T], error) {
	if page == 0 {
		return nil, NewFault(FaultError, ErrInvalidPageNumber)
	}

	return fetch[T](ctx, s, req.WithPage(page))
}

func fetch[T any, ID Identifier](ctx context.Context, s Sender, req *Request[ID]) (*Envelope[T], error) {
	body, err := s.Send(ctx, req.Call(PageSizeFor[T]()))
	if err != nil {
		return nil, AsFault(err)
	}

	env, err := DecodeEnvelope[T](body)
	if err != nil {
		return nil, NewFault(FaultError, err)
	}

	return env, nil
}

// List fetches every page of a GET request and returns all records in page
// order. Page 1 is fetched first to learn the page count; the remaining
// pages are fetched concurrently, bounded by the configured concurrency. If
// any page fails, List returns that page's Fault and no records. The
// remaining fetches are cancelled through ctx and List returns once they
// have stopped, so a Sender must honour ctx for a failure to surface promptly.
func List[T any, ID Identifier](ctx context.Context, s Sender, req *Request[ID], opts ...ListOption) ([]T, error) {
	if req.Method() != MethodGet {
		return nil, NewFault(FaultError, fmt.Errorf("%w: got %s", ErrListRequiresGet, req.Method()))
	}

	options := resolveListOptions(s, opts)

	ctx, span := otel.Tracer(tracerName).Start(ctx, "mas.List",
		trace.WithAttributes(
			attribute.String("mas.endpoint", req.Resource().Endpoint()),
			attribute.String("mas.path", req.Path()),
		))
	defer span.End()

	records, pageCount, err := list[T](ctx, s, req, options.concurrency)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		return nil, err
	}

	span.SetAttributes(
		attribute.Int("mas.page_count", int(pageCount)),
		attribute.Int("mas.entries", len(records)),
	)

	options.logger.Debug("entries in response", map[string]interface{}{
		"path":       req.Path(),
		"entries":    len(records),
		"page_count": pageCount,
	})

	return records, nil
}

func list[T any, ID Identifier](ctx context.Context, s Sender, req *Request[ID], concurrency int) ([]T, uint, error) {
	first, err := fetch[T](ctx, s, req.WithPage(1))
	if err != nil {
		return nil, 0, err
	}

	if first.PageCount < 2 {
		return first.Contents, 1, nil
	}

	// pages[i] holds page i+1; each task writes only its own slot.
	pages := make([][]T, first.PageCount)
	pages[0] = first.Contents

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for page := uint(2); page <= first.PageCount; page++ {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return NewFault(FaultError, err)
			}

			env, err := fetch[T](gctx, s, req.WithPage(page))
			if err != nil {
				return err
			}

			pages[page-1] = env.Contents

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, 0, AsFault(err)
	}

	total := 0
	for _, contents := range pages {
		total += len(contents)
	}

	records := make([]T, 0, total)
	for _, contents := range pages {
		records = append(records, contents...)
	}

	return records, first.PageCount, nil
}
