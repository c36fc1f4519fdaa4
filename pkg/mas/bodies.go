package mas

import (
	"github.com/google/uuid"

	"github.com/fivetwenty-io/mas-client/internal/constants"
)

// PostForm creates a form from a prototype.
type PostForm struct {
	Prototype uuid.UUID   `json:"prototype"`
	Name      string      `json:"name"`
	Values    interface{} `json:"values"`
}

// PatchForm updates a form's name or values.
type PatchForm struct {
	UUID   uuid.UUID   `json:"uuid"`
	Name   *string     `json:"name,omitempty"`
	Values interface{} `json:"values"`
}

// PostCredential creates a credential. The password is sent as user_key.
type PostCredential struct {
	Protocol string `json:"protocol"`
	User     string `json:"user"`
	Password string `json:"user_key"` //nolint:gosec
	Address  string `json:"address"`
	Port     int    `json:"port"`
}

// NewPostCredential returns a PostCredential with protocol ssh and port 22.
func NewPostCredential(user, password, address string) PostCredential {
	return PostCredential{
		Protocol: constants.DefaultCredentialProtocol,
		User:     user,
		Password: password,
		Address:  address,
		Port:     constants.DefaultCredentialPort,
	}
}

// PatchCredential updates the set fields of a credential. The UUID
// addresses the credential and is not part of the body.
type PatchCredential struct {
	UUID     uuid.UUID `json:"-"`
	Protocol *string   `json:"protocol,omitempty"`
	User     *string   `json:"user,omitempty"`
	Password *string   `json:"user_key,omitempty"` //nolint:gosec
	Address  *string   `json:"address,omitempty"`
	Port     *int      `json:"port,omitempty"`
}

// ScheduledInvocation schedules a process run. A nil Date runs it now.
type ScheduledInvocation struct {
	Process    FullyQualifiedName     `json:"name"`
	Parameters map[string]interface{} `json:"parameters"`
	Date       *Timestamp             `json:"date,omitempty"`
}

// NamespaceBody creates (POST) or replaces (PUT) a namespace.
type NamespaceBody struct {
	Name        FullyQualifiedName  `json:"name"`
	Aliased     *FullyQualifiedName `json:"aliased,omitempty"`
	Description string              `json:"description"`
}

// Compilation asks the server to recompile its process catalogue.
type Compilation struct{}

// Ignored decodes any record and keeps nothing.
type Ignored struct{}

// UnmarshalJSON discards data.
func (*Ignored) UnmarshalJSON([]byte) error { return nil }
