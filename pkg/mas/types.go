package mas

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/fivetwenty-io/mas-client/internal/constants"
)

// ListedForm is the summary of a form returned by form listings.
type ListedForm struct {
	UUID        uuid.UUID `json:"uuid"         yaml:"uuid"`
	Name        string    `json:"name"         yaml:"name"`
	Prototype   uuid.UUID `json:"template"     yaml:"template"`
	Version     int       `json:"version"      yaml:"version"`
	IsCompleted bool      `json:"is_completed" yaml:"is_completed"`
}

// Form is a single form with its field values.
type Form struct {
	UUID   uuid.UUID `json:"uuid"   yaml:"uuid"`
	Name   string    `json:"name"   yaml:"name"`
	Values []Field   `json:"values" yaml:"values"`
}

// Field returns the field called name.
func (f *Form) Field(name string) (Field, bool) {
	for _, field := range f.Values {
		if field.Name == name {
			return field, true
		}
	}

	return Field{}, false
}

// Field is one value of a form.
type Field struct {
	Name         string      `json:"name"                 yaml:"name"`
	DataType     string      `json:"data_type"            yaml:"data_type"`
	Position     int         `json:"position"             yaml:"position"`
	GroupLast    *int        `json:"group_last,omitempty" yaml:"group_last,omitempty"`
	IsRequired   bool        `json:"is_required"          yaml:"is_required"`
	IsRepeatable bool        `json:"is_repeatable"        yaml:"is_repeatable"`
	Value        interface{} `json:"value"                yaml:"value"`
}

// ListedPrototype is a form prototype (template).
type ListedPrototype struct {
	UUID    uuid.UUID `json:"uuid"    yaml:"uuid"`
	Name    string    `json:"name"    yaml:"name"`
	Version int       `json:"version" yaml:"version"`
}

// ListedProcess is the summary of a process returned by process listings.
type ListedProcess struct {
	Name         FullyQualifiedName `json:"name"          yaml:"name"`
	Description  string             `json:"description"   yaml:"description"`
	IsExecutable bool               `json:"is_executable" yaml:"is_executable"`
}

// PageSize implements Paged.
func (ListedProcess) PageSize() uint { return constants.ProcessPageSize }

// Process is a single process with its parameters.
type Process struct {
	Name         FullyQualifiedName `json:"name"          yaml:"name"`
	Description  string             `json:"description"   yaml:"description"`
	IsExecutable bool               `json:"is_executable" yaml:"is_executable"`
	Parameters   []Parameter        `json:"parameters"    yaml:"parameters"`
}

// UnmarshalJSON defaults a missing parameter list to empty.
func (p *Process) UnmarshalJSON(data []byte) error {
	type process Process

	var decoded process
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err //nolint:wrapcheck
	}

	if decoded.Parameters == nil {
		decoded.Parameters = []Parameter{}
	}

	*p = Process(decoded)

	return nil
}

// Parameter is one input of a process.
type Parameter struct {
	Name        string  `json:"name"        yaml:"name"`
	Default     *string `json:"deflt"       yaml:"default,omitempty"`
	DataType    string  `json:"data_type"   yaml:"data_type"`
	Description string  `json:"description" yaml:"description"`
}

// Namespace groups processes.
type Namespace struct {
	Name        FullyQualifiedName  `json:"name"              yaml:"name"`
	Aliased     *FullyQualifiedName `json:"aliased,omitempty" yaml:"aliased,omitempty"`
	Description string              `json:"description"       yaml:"description"`
	IsSystem    bool                `json:"is_system"         yaml:"is_system"`
}

// PageSize implements Paged.
func (Namespace) PageSize() uint { return constants.NamespacePageSize }

// InvocationStatus is the lifecycle state of an invocation. Unknown values
// are kept as sent by the server.
type InvocationStatus string

// Known invocation states.
const (
	InvocationAborted   InvocationStatus = "ABORTED"
	InvocationExecuting InvocationStatus = "EXECUTING"
	InvocationFailed    InvocationStatus = "FAILED"
	InvocationScheduled InvocationStatus = "SCHEDULED"
	InvocationSucceeded InvocationStatus = "SUCCEEDED"
)

// Finished reports whether the invocation can no longer change state.
func (s InvocationStatus) Finished() bool {
	return s == InvocationAborted || s == InvocationFailed || s == InvocationSucceeded
}

// Invocation is one scheduled or executed run of a process.
type Invocation struct {
	UUID        uuid.UUID              `json:"uuid"        yaml:"uuid"`
	Status      InvocationStatus       `json:"status"      yaml:"status"`
	Aborted     bool                   `json:"aborted"     yaml:"aborted"`
	Process     FullyQualifiedName     `json:"process"     yaml:"process"`
	Started     bool                   `json:"started"     yaml:"started"`
	DateInvoked Timestamp              `json:"date_invoke" yaml:"date_invoke"`
	Parameters  map[string]interface{} `json:"parameters"  yaml:"parameters"`
}

// ErrOutputWithoutData is returned when an invocation output carries
// neither progress nor text.
var ErrOutputWithoutData = errors.New("invocation output has neither progress nor text")

// InvocationOutput is one line of an invocation's display output: either a
// progress value or a piece of text.
type InvocationOutput struct {
	Status   InvocationStatus `json:"status"             yaml:"status"`
	Progress *float64         `json:"progress,omitempty" yaml:"progress,omitempty"`
	Text     *string          `json:"text,omitempty"     yaml:"text,omitempty"`
}

// UnmarshalJSON reads {"status": ..., "data": {"progress": n} | {"text": s}}.
func (o *InvocationOutput) UnmarshalJSON(data []byte) error {
	var wire struct {
		Status InvocationStatus `json:"status"`
		Data   struct {
			Progress *float64 `json:"progress"`
			Text     *string  `json:"text"`
		} `json:"data"`
	}

	if err := json.Unmarshal(data, &wire); err != nil {
		return fmt.Errorf("invocation output: %w", err)
	}

	*o = InvocationOutput{Status: wire.Status}

	switch {
	case wire.Data.Progress != nil:
		o.Progress = wire.Data.Progress
	case wire.Data.Text != nil:
		o.Text = wire.Data.Text
	default:
		return ErrOutputWithoutData
	}

	return nil
}

// Credential is a stored login for a target host.
type Credential struct {
	UUID     uuid.UUID `json:"uuid"     yaml:"uuid"`
	Protocol string    `json:"protocol" yaml:"protocol"`
	User     string    `json:"user"     yaml:"user"`
	Address  string    `json:"address"  yaml:"address"`
	Port     int       `json:"port"     yaml:"port"`
}

// User is a MAS account and its privileges.
type User struct {
	Username     Username `json:"username"   yaml:"username"`
	IsAuthorized bool     `json:"mas_user"   yaml:"mas_user"`
	IsAdmin      bool     `json:"mas_admin"  yaml:"mas_admin"`
	CanSelect    bool     `json:"mas_select" yaml:"mas_select"`
}

// PageSize implements Paged.
func (User) PageSize() uint { return constants.UserPageSize }

// DataType describes a value type usable by form fields and parameters.
type DataType struct {
	Name         string        `json:"name"                   yaml:"name"`
	Abbreviation *string       `json:"abbreviation,omitempty" yaml:"abbreviation,omitempty"`
	Minimum      *int64        `json:"minimum,omitempty"      yaml:"minimum,omitempty"`
	Maximum      *int64        `json:"maximum,omitempty"      yaml:"maximum,omitempty"`
	IsSystem     bool          `json:"isSystem"               yaml:"is_system"`
	Enumerations []Enumeration `json:"enumerations"           yaml:"enumerations"`
}

// UnmarshalJSON sorts enumerations by weight.
func (t *DataType) UnmarshalJSON(data []byte) error {
	type dataType DataType

	var decoded dataType
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err //nolint:wrapcheck
	}

	if decoded.Enumerations == nil {
		decoded.Enumerations = []Enumeration{}
	}

	slices.SortStableFunc(decoded.Enumerations, func(a, b Enumeration) int {
		return a.Weight - b.Weight
	})

	*t = DataType(decoded)

	return nil
}

// Enumeration is one allowed value of an enumerated type.
type Enumeration struct {
	Label  string `json:"label"  yaml:"label"`
	Weight int    `json:"weight" yaml:"weight"`
}
