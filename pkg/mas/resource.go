package mas

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Identifier is the key type of an addressable resource. The canonical
// string form is what appears in request paths.
type Identifier interface {
	comparable
	String() string
}

// FullyQualifiedName identifies processes and namespaces, e.g. "ops.backup".
type FullyQualifiedName string

func (n FullyQualifiedName) String() string { return string(n) }

// Username identifies MAS users.
type Username string

func (u Username) String() string { return string(u) }

// TypeName identifies data types.
type TypeName string

func (n TypeName) String() string { return string(n) }

// NoID is the identifier type of resources that are never addressed by key.
type NoID struct{}

func (NoID) String() string { return "" }

// Resource describes an addressable server-side collection: the endpoint
// segment and, through ID, the type of its identifiers.
type Resource[ID Identifier] struct {
	endpoint string
}

// NewResource validates endpoint and returns a Resource for it. The
// endpoint must be a single non-empty path segment.
func NewResource[ID Identifier](endpoint string) (Resource[ID], error) {
	if endpoint == "" || strings.ContainsAny(endpoint, "/?#") || strings.TrimSpace(endpoint) != endpoint {
		return Resource[ID]{}, fmt.Errorf("%w: %q", ErrInvalidEndpoint, endpoint)
	}

	return Resource[ID]{endpoint: endpoint}, nil
}

// MustResource is like NewResource but panics on an invalid endpoint. It is
// meant for package-level declarations.
func MustResource[ID Identifier](endpoint string) Resource[ID] {
	r, err := NewResource[ID](endpoint)
	if err != nil {
		panic(err)
	}

	return r
}

// Endpoint returns the resource's path segment.
func (r Resource[ID]) Endpoint() string {
	return r.endpoint
}

// IsZero reports whether r was never initialised.
func (r Resource[ID]) IsZero() bool {
	return r.endpoint == ""
}

// MAS resources.
var (
	Forms        = MustResource[uuid.UUID]("form")
	Prototypes   = MustResource[uuid.UUID]("prototype")
	Processes    = MustResource[FullyQualifiedName]("process")
	Namespaces   = MustResource[FullyQualifiedName]("namespace")
	Invocations  = MustResource[uuid.UUID]("invocation")
	Credentials  = MustResource[uuid.UUID]("credential")
	Users        = MustResource[Username]("user")
	Types        = MustResource[TypeName]("type")
	Compilations = MustResource[NoID]("compile")
)
