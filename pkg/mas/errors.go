package mas

import (
	"errors"
	"fmt"
	"net/http"
)

// FaultKind is the closed set of failure categories a caller can act on.
type FaultKind int

const (
	// FaultError covers every failure that is not one of the other kinds.
	FaultError FaultKind = iota
	// FaultNoServer means no server was configured when the call was made.
	FaultNoServer
	// FaultNotConnected means the client has no network path.
	FaultNotConnected
	// FaultNotFound means the server answered 404 or a singular fetch found nothing.
	FaultNotFound
	// FaultUnauthorized means the server rejected the credentials.
	FaultUnauthorized
	// FaultUnreachable means the host could not be resolved or reached.
	FaultUnreachable
)

var faultKindNames = map[FaultKind]string{
	FaultError:        "error",
	FaultNoServer:     "no server",
	FaultNotConnected: "not connected",
	FaultNotFound:     "not found",
	FaultUnauthorized: "unauthorized",
	FaultUnreachable:  "unreachable",
}

func (k FaultKind) String() string {
	if name, ok := faultKindNames[k]; ok {
		return name
	}

	return fmt.Sprintf("FaultKind(%d)", int(k))
}

// Fault is the only error type returned by MAS calls. Err holds the
// underlying cause, if any. StatusCode is set when an HTTP response was
// received.
type Fault struct {
	Kind       FaultKind
	StatusCode int
	Err        error
}

// Error implements the error interface.
func (f *Fault) Error() string {
	msg := "mas: " + f.Kind.String()
	if f.StatusCode != 0 {
		msg = fmt.Sprintf("%s (HTTP %d)", msg, f.StatusCode)
	}

	if f.Err != nil {
		msg += ": " + f.Err.Error()
	}

	return msg
}

// Unwrap returns the underlying cause.
func (f *Fault) Unwrap() error {
	return f.Err
}

// Is matches any *Fault of the same kind, so errors.Is(err, ErrNotFound)
// works regardless of status code or cause.
func (f *Fault) Is(target error) bool {
	var other *Fault
	if !errors.As(target, &other) {
		return false
	}

	return other.Kind == f.Kind
}

// Fault sentinels for use with errors.Is.
var (
	ErrNoServer     = &Fault{Kind: FaultNoServer}
	ErrNotConnected = &Fault{Kind: FaultNotConnected}
	ErrNotFound     = &Fault{Kind: FaultNotFound}
	ErrUnauthorized = &Fault{Kind: FaultUnauthorized}
	ErrUnreachable  = &Fault{Kind: FaultUnreachable}
	ErrFault        = &Fault{Kind: FaultError}
)

// Static errors for err113 compliance.
var (
	ErrInvalidEndpoint   = errors.New("endpoint must be a single non-empty path segment")
	ErrInvalidMethod     = errors.New("invalid HTTP method")
	ErrInvalidResource   = errors.New("request has no resource")
	ErrBodyNotAllowed    = errors.New("method does not allow a request body")
	ErrBodyRequired      = errors.New("method requires a request body")
	ErrMethodMismatch    = errors.New("request method does not match the call")
	ErrListRequiresGet   = errors.New("list requires a GET request")
	ErrNoIdentifiers     = errors.New("at least one identifier is required")
	ErrNoContents        = errors.New("response contained no records")
	ErrDecodeEnvelope    = errors.New("decoding envelope")
	ErrRecordFieldType   = errors.New("record_field is not a string")
	ErrPageOutOfRange    = errors.New("page number out of range")
	ErrUnexpectedStatus  = errors.New("unexpected HTTP status")
	ErrInvalidServerURL  = errors.New("invalid server URL")
	ErrNoHostInURL       = errors.New("no host specified in URL")
	ErrConfigRequired    = errors.New("config is required")
	ErrInvalidPageNumber = errors.New("page numbers start at 1")
)

// NewFault returns a Fault of the given kind wrapping err.
func NewFault(kind FaultKind, err error) *Fault {
	return &Fault{Kind: kind, Err: err}
}

// FaultForStatus maps a non-success HTTP status code onto the fault taxonomy.
func FaultForStatus(statusCode int) *Fault {
	kind := FaultError

	switch statusCode {
	case http.StatusUnauthorized:
		kind = FaultUnauthorized
	case http.StatusNotFound:
		kind = FaultNotFound
	}

	return &Fault{
		Kind:       kind,
		StatusCode: statusCode,
		Err:        fmt.Errorf("%w: %d %s", ErrUnexpectedStatus, statusCode, http.StatusText(statusCode)),
	}
}

// AsFault returns err as a *Fault, collapsing anything unclassified into
// FaultError. It returns nil for a nil error.
func AsFault(err error) *Fault {
	if err == nil {
		return nil
	}

	var fault *Fault
	if errors.As(err, &fault) {
		return fault
	}

	return &Fault{Kind: FaultError, Err: err}
}

// FaultKindOf returns the kind of err. Errors that are not Faults, and nil,
// report FaultError.
func FaultKindOf(err error) FaultKind {
	if err == nil {
		return FaultError
	}

	return AsFault(err).Kind
}

func isKind(err error, kind FaultKind) bool {
	var fault *Fault

	return errors.As(err, &fault) && fault.Kind == kind
}

// IsNoServer checks if the error reports a missing server.
func IsNoServer(err error) bool {
	return isKind(err, FaultNoServer)
}

// IsNotConnected checks if the error reports a missing network path.
func IsNotConnected(err error) bool {
	return isKind(err, FaultNotConnected)
}

// IsNotFound checks if the error is a not found error.
func IsNotFound(err error) bool {
	return isKind(err, FaultNotFound)
}

// IsUnauthorized checks if the error is an authentication failure.
func IsUnauthorized(err error) bool {
	return isKind(err, FaultUnauthorized)
}

// IsUnreachable checks if the error reports an unreachable host.
func IsUnreachable(err error) bool {
	return isKind(err, FaultUnreachable)
}
