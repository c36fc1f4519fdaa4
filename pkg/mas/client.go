package mas

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// FormsClient defines operations on forms.
type FormsClient interface {
	List(ctx context.Context, ids ...uuid.UUID) ([]ListedForm, error)
	Get(ctx context.Context, id uuid.UUID) (*Form, error)
	Create(ctx context.Context, body *PostForm) (*ListedForm, error)
	Update(ctx context.Context, body *PatchForm) (*Form, error)
	Delete(ctx context.Context, ids ...uuid.UUID) error
}

// PrototypesClient defines operations on form prototypes.
type PrototypesClient interface {
	// List returns prototypes; a nil version lists every version.
	List(ctx context.Context, version *int, ids ...uuid.UUID) ([]ListedPrototype, error)
}

// ProcessesClient defines operations on processes.
type ProcessesClient interface {
	List(ctx context.Context, names ...FullyQualifiedName) ([]ListedProcess, error)
	Get(ctx context.Context, name FullyQualifiedName) (*Process, error)
}

// NamespacesClient defines operations on namespaces.
type NamespacesClient interface {
	List(ctx context.Context, names ...FullyQualifiedName) ([]Namespace, error)
	Create(ctx context.Context, body *NamespaceBody) (*Namespace, error)
	Replace(ctx context.Context, body *NamespaceBody) (*Namespace, error)
}

// InvocationsClient defines operations on process invocations.
type InvocationsClient interface {
	// List returns invocations from the period days starting at dateInvoked.
	List(ctx context.Context, dateInvoked time.Time, period int, ids ...uuid.UUID) ([]Invocation, error)
	// ListRecent returns invocations of the last period days.
	ListRecent(ctx context.Context, period int, ids ...uuid.UUID) ([]Invocation, error)
	Get(ctx context.Context, id uuid.UUID) (*Invocation, error)
	Outputs(ctx context.Context, id uuid.UUID) ([]InvocationOutput, error)
	Schedule(ctx context.Context, body *ScheduledInvocation) (*Invocation, error)
}

// CredentialsClient defines operations on stored credentials.
type CredentialsClient interface {
	List(ctx context.Context, ids ...uuid.UUID) ([]Credential, error)
	Create(ctx context.Context, body *PostCredential) (*Credential, error)
	Update(ctx context.Context, body *PatchCredential) (*Credential, error)
	Delete(ctx context.Context, ids ...uuid.UUID) error
}

// UsersClient defines operations on MAS users.
type UsersClient interface {
	List(ctx context.Context, usernames ...Username) ([]User, error)
}

// TypesClient defines operations on data types.
type TypesClient interface {
	List(ctx context.Context) ([]DataType, error)
}

// ResourceClients provides access to all resource-specific clients.
type ResourceClients interface {
	Forms() FormsClient
	Prototypes() PrototypesClient
	Processes() ProcessesClient
	Namespaces() NamespacesClient
	Invocations() InvocationsClient
	Credentials() CredentialsClient
	Users() UsersClient
	Types() TypesClient
}

// Client is the MAS API client. It is safe for concurrent use; the server
// may be swapped between calls.
type Client interface {
	Sender
	ResourceClients

	// Server returns the current server, or nil.
	Server() *Server
	// SetServer replaces the server used by subsequent calls. nil makes
	// every call fail with FaultNoServer.
	SetServer(server *Server)
	// Compile asks the server to recompile its process catalogue.
	Compile(ctx context.Context) error
	// Ping fetches the first page of namespaces to test connectivity and credentials.
	Ping(ctx context.Context) error
}

// Config holds client configuration.
type Config struct {
	// Server may be nil; calls then fail with FaultNoServer until SetServer.
	Server *Server

	HTTPClient  *http.Client
	HTTPTimeout time.Duration
	UserAgent   string

	// PageConcurrency bounds concurrent page fetches of a list.
	PageConcurrency int

	Interceptors *InterceptorChain
	Logger       Logger
	Debug        bool

	// PingOnInit makes construction fail unless the server answers a ping.
	PingOnInit bool
}
