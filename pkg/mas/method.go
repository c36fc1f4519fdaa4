package mas

import "net/http"

// Method is one of the closed set of HTTP verbs the MAS API accepts. Each
// verb records whether a request using it may carry a body.
type Method struct {
	name        string
	bodyAllowed bool
}

// Supported HTTP methods.
var (
	MethodGet    = Method{name: http.MethodGet}
	MethodDelete = Method{name: http.MethodDelete}
	MethodPost   = Method{name: http.MethodPost, bodyAllowed: true}
	MethodPatch  = Method{name: http.MethodPatch, bodyAllowed: true}
	MethodPut    = Method{name: http.MethodPut, bodyAllowed: true}
)

// String returns the HTTP verb.
func (m Method) String() string {
	return m.name
}

// BodyAllowed reports whether requests with this method carry a JSON body.
func (m Method) BodyAllowed() bool {
	return m.bodyAllowed
}

// IsZero reports whether m is the zero Method, which is never valid.
func (m Method) IsZero() bool {
	return m.name == ""
}
