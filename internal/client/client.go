package client

import (
	"context"
	"sync/atomic"

	"github.com/fivetwenty-io/mas-client/internal/constants"
	"github.com/fivetwenty-io/mas-client/internal/http"
	"github.com/fivetwenty-io/mas-client/pkg/mas"
)

// Client implements the mas.Client interface. It owns the current server
// and sends every call through one transport.
type Client struct {
	httpClient      *http.Client
	server          atomic.Pointer[mas.Server]
	logger          mas.Logger
	pageConcurrency int

	// Resource clients
	forms       mas.FormsClient
	prototypes  mas.PrototypesClient
	processes   mas.ProcessesClient
	namespaces  mas.NamespacesClient
	invocations mas.InvocationsClient
	credentials mas.CredentialsClient
	users       mas.UsersClient
	types       mas.TypesClient
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *mas.Config) []http.Option {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(config.Logger))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.HTTPClient != nil {
		httpOpts = append(httpOpts, http.WithHTTPClient(config.HTTPClient))
	}

	if config.HTTPTimeout > 0 {
		httpOpts = append(httpOpts, http.WithTimeout(config.HTTPTimeout))
	}

	if config.Interceptors != nil {
		httpOpts = append(httpOpts, http.WithInterceptors(config.Interceptors))
	}

	return httpOpts
}

// New creates a new MAS client. config.Server may be nil.
func New(config *mas.Config) (*Client, error) {
	if config == nil {
		return nil, mas.ErrConfigRequired
	}

	logger := config.Logger
	if logger == nil {
		logger = mas.NopLogger()
	}

	concurrency := config.PageConcurrency
	if concurrency <= 0 {
		concurrency = constants.DefaultPageFetchConcurrency
	}

	client := &Client{
		httpClient:      http.NewClient(createHTTPClientOptions(config)...),
		logger:          logger,
		pageConcurrency: min(concurrency, constants.MaxPageFetchConcurrency),
	}

	if config.Server != nil {
		if err := config.Server.Validate(); err != nil {
			return nil, err
		}

		client.SetServer(config.Server)
	}

	client.initializeResourceClients()

	return client, nil
}

func (c *Client) initializeResourceClients() {
	c.forms = NewFormsClient(c)
	c.prototypes = NewPrototypesClient(c)
	c.processes = NewProcessesClient(c)
	c.namespaces = NewNamespacesClient(c)
	c.invocations = NewInvocationsClient(c)
	c.credentials = NewCredentialsClient(c)
	c.users = NewUsersClient(c)
	c.types = NewTypesClient(c)
}

// Send implements mas.Sender against the current server.
func (c *Client) Send(ctx context.Context, call *mas.Call) ([]byte, error) {
	return c.httpClient.Send(ctx, c.server.Load(), call)
}

// ListOptions implements mas.ListOptionProvider.
func (c *Client) ListOptions() []mas.ListOption {
	return []mas.ListOption{
		mas.WithConcurrency(c.pageConcurrency),
		mas.WithListLogger(c.logger),
	}
}

// Server implements mas.Client.Server.
func (c *Client) Server() *mas.Server {
	server := c.server.Load()
	if server == nil {
		return nil
	}

	clone := *server

	return &clone
}

// SetServer implements mas.Client.SetServer. The server is copied so later
// changes by the caller do not affect calls in flight.
func (c *Client) SetServer(server *mas.Server) {
	if server == nil {
		c.server.Store(nil)

		return
	}

	clone := *server
	clone.ApplyDefaults()
	c.server.Store(&clone)
}

// Compile implements mas.Client.Compile.
func (c *Client) Compile(ctx context.Context) error {
	req, err := mas.NewBodyRequest(mas.MethodPost, mas.Compilations, nil, mas.Compilation{})
	if err != nil {
		return mas.NewFault(mas.FaultError, err)
	}

	return mas.Exec(ctx, c, req)
}

// Ping implements mas.Client.Ping.
func (c *Client) Ping(ctx context.Context) error {
	_, err := mas.FetchPage[mas.Namespace](ctx, c, mas.Get[mas.FullyQualifiedName](mas.Namespaces, nil), 1)

	return err
}

// Forms implements mas.Client.Forms.
func (c *Client) Forms() mas.FormsClient { return c.forms }

// Prototypes implements mas.Client.Prototypes.
func (c *Client) Prototypes() mas.PrototypesClient { return c.prototypes }

// Processes implements mas.Client.Processes.
func (c *Client) Processes() mas.ProcessesClient { return c.processes }

// Namespaces implements mas.Client.Namespaces.
func (c *Client) Namespaces() mas.NamespacesClient { return c.namespaces }

// Invocations implements mas.Client.Invocations.
func (c *Client) Invocations() mas.InvocationsClient { return c.invocations }

// Credentials implements mas.Client.Credentials.
func (c *Client) Credentials() mas.CredentialsClient { return c.credentials }

// Users implements mas.Client.Users.
func (c *Client) Users() mas.UsersClient { return c.users }

// Types implements mas.Client.Types.
func (c *Client) Types() mas.TypesClient { return c.types }
