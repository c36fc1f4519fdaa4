package mas

import (
	"encoding/json"
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"
)

// Call is a fully resolved exchange handed to a Sender: verb, path relative
// to the server root, query and optional JSON body.
type Call struct {
	Method Method
	Path   string
	Query  url.Values
	Body   []byte
}

// Request binds a verb, a resource, a set of identifiers, query parameters
// and an optional action into one addressable call. Requests are immutable.
type Request[ID Identifier] struct {
	method      Method
	resource    Resource[ID]
	identifiers []ID
	query       url.Values
	action      string
	body        []byte
}

type requestOptions struct {
	query  url.Values
	action string
}

// RequestOption configures optional parts of a Request.
type RequestOption func(*requestOptions)

// WithQuery adds a query parameter. The value is rendered with fmt unless it
// is a string, integer or bool.
func WithQuery(key string, value any) RequestOption {
	return func(o *requestOptions) {
		o.query.Set(key, formatQueryValue(value))
	}
}

// WithQueryValues merges all of values into the query.
func WithQueryValues(values url.Values) RequestOption {
	return func(o *requestOptions) {
		for key, vals := range values {
			o.query[key] = append([]string(nil), vals...)
		}
	}
}

// WithAction appends an action segment after the identifiers. It has no
// effect on a request without identifiers.
func WithAction(action string) RequestOption {
	return func(o *requestOptions) {
		o.action = strings.Trim(action, "/")
	}
}

// NewRequest builds a request whose verb carries no body.
func NewRequest[ID Identifier](method Method, resource Resource[ID], identifiers []ID, opts ...RequestOption) (*Request[ID], error) {
	if method.BodyAllowed() {
		return nil, fmt.Errorf("%w: %s", ErrBodyRequired, method)
	}

	return newRequest(method, resource, identifiers, nil, opts)
}

// NewBodyRequest builds a request that carries body encoded as JSON. Only
// verbs that allow a body are accepted.
func NewBodyRequest[ID Identifier](method Method, resource Resource[ID], identifiers []ID, body any, opts ...RequestOption) (*Request[ID], error) {
	if !method.BodyAllowed() {
		return nil, fmt.Errorf("%w: %s", ErrBodyNotAllowed, method)
	}

	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encoding %s body: %w", method, err)
	}

	return newRequest(method, resource, identifiers, encoded, opts)
}

// Get builds a GET request. It panics if resource is the zero Resource.
func Get[ID Identifier](resource Resource[ID], identifiers []ID, opts ...RequestOption) *Request[ID] {
	return mustRequest(NewRequest(MethodGet, resource, identifiers, opts...))
}

// Del builds a DELETE request. It panics if resource is the zero Resource.
func Del[ID Identifier](resource Resource[ID], identifiers []ID, opts ...RequestOption) *Request[ID] {
	return mustRequest(NewRequest(MethodDelete, resource, identifiers, opts...))
}

func mustRequest[ID Identifier](req *Request[ID], err error) *Request[ID] {
	if err != nil {
		panic(err)
	}

	return req
}

func newRequest[ID Identifier](method Method, resource Resource[ID], identifiers []ID, body []byte, opts []RequestOption) (*Request[ID], error) {
	if method.IsZero() {
		return nil, ErrInvalidMethod
	}

	if resource.IsZero() {
		return nil, ErrInvalidResource
	}

	options := &requestOptions{query: url.Values{}}
	for _, opt := range opts {
		opt(options)
	}

	return &Request[ID]{
		method:      method,
		resource:    resource,
		identifiers: canonicalIdentifiers(identifiers),
		query:       options.query,
		action:      options.action,
		body:        body,
	}, nil
}

// canonicalIdentifiers removes duplicates and sorts by string form so that
// the rendered path does not depend on the caller's ordering.
func canonicalIdentifiers[ID Identifier](identifiers []ID) []ID {
	seen := make(map[ID]struct{}, len(identifiers))
	out := make([]ID, 0, len(identifiers))

	for _, id := range identifiers {
		if _, ok := seen[id]; ok {
			continue
		}

		seen[id] = struct{}{}
		out = append(out, id)
	}

	slices.SortFunc(out, func(a, b ID) int {
		return strings.Compare(a.String(), b.String())
	})

	return out
}

// Method returns the request verb.
func (r *Request[ID]) Method() Method {
	return r.method
}

// Resource returns the target resource.
func (r *Request[ID]) Resource() Resource[ID] {
	return r.resource
}

// Identifiers returns the identifiers in path order.
func (r *Request[ID]) Identifiers() []ID {
	return slices.Clone(r.identifiers)
}

// Query returns a copy of the query parameters.
func (r *Request[ID]) Query() url.Values {
	return cloneValues(r.query)
}

// Action returns the action suffix as supplied, even when the path omits it.
func (r *Request[ID]) Action() string {
	return r.action
}

// Body returns the encoded JSON body, or nil for verbs without one.
func (r *Request[ID]) Body() []byte {
	return slices.Clone(r.body)
}

// Path renders endpoint[/id1,id2[/action]].
func (r *Request[ID]) Path() string {
	if len(r.identifiers) == 0 {
		return r.resource.endpoint
	}

	ids := make([]string, len(r.identifiers))
	for i, id := range r.identifiers {
		ids[i] = id.String()
	}

	path := r.resource.endpoint + "/" + strings.Join(ids, ",")
	if r.action != "" {
		path += "/" + r.action
	}

	return path
}

// WithPage returns a copy of r that asks for the given page.
func (r *Request[ID]) WithPage(page uint) *Request[ID] {
	clone := *r
	clone.query = cloneValues(r.query)
	clone.query.Set("page", strconv.FormatUint(uint64(page), 10))

	return &clone
}

// Call resolves r into a Call. pageSize is attached as page_size only for
// GET requests.
func (r *Request[ID]) Call(pageSize uint) *Call {
	query := cloneValues(r.query)
	if r.method == MethodGet && pageSize > 0 {
		query.Set("page_size", strconv.FormatUint(uint64(pageSize), 10))
	}

	return &Call{
		Method: r.method,
		Path:   r.Path(),
		Query:  query,
		Body:   slices.Clone(r.body),
	}
}

func cloneValues(values url.Values) url.Values {
	out := make(url.Values, len(values))
	for key, vals := range values {
		out[key] = append([]string(nil), vals...)
	}

	return out
}

func formatQueryValue(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint:
		return strconv.FormatUint(uint64(v), 10)
	case bool:
		return strconv.FormatBool(v)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
