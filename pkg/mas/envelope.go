package mas

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/fivetwenty-io/mas-client/internal/constants"
)

// DefaultPageSize is the page size used for content types that do not
// implement Paged. At roughly 300 bytes per record a page stays under 1 MiB.
const DefaultPageSize uint = constants.DefaultPageSize

// Paged is implemented by content types that prefer a page size other than
// DefaultPageSize. The method is called on the zero value.
type Paged interface {
	PageSize() uint
}

// PageSizeFor returns the page size requested when listing T.
func PageSizeFor[T any]() uint {
	var zero T

	if p, ok := any(zero).(Paged); ok && p.PageSize() > 0 {
		return p.PageSize()
	}

	if p, ok := any(&zero).(Paged); ok && p.PageSize() > 0 {
		return p.PageSize()
	}

	return DefaultPageSize
}

// Envelope is one decoded page of a MAS collection response.
type Envelope[T any] struct {
	Contents  []T  `json:"contents"   yaml:"contents"`
	Page      uint `json:"page"       yaml:"page"`
	PageCount uint `json:"page_count" yaml:"page_count"`
}

// HasMore reports whether pages after this one exist.
func (e *Envelope[T]) HasMore() bool {
	return e.PageCount >= 2 && e.Page < e.PageCount
}

// DecodeEnvelope parses a MAS response body. The data object names the key
// of its record array in record_field:
//
//	{"data": {"record_field": "forms", "forms": [...], "page": 1, "page_count": 3}}
//
// A null or missing data object, a missing record_field and a missing record
// array all decode to an empty page 1 of 1. Any malformed record, and a page
// or page count above constants.MaxPageCount, is an error.
func DecodeEnvelope[T any](body []byte) (*Envelope[T], error) {
	env := &Envelope[T]{Contents: []T{}, Page: 1, PageCount: 1}

	var top struct {
		Data json.RawMessage `json:"data"`
	}

	if err := json.Unmarshal(body, &top); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodeEnvelope, err)
	}

	if isNull(top.Data) {
		return env, nil
	}

	var data map[string]json.RawMessage
	if err := json.Unmarshal(top.Data, &data); err != nil {
		return nil, fmt.Errorf("%w: data: %w", ErrDecodeEnvelope, err)
	}

	var err error

	if env.Page, err = decodePageNumber(data, "page"); err != nil {
		return nil, err
	}

	if env.PageCount, err = decodePageNumber(data, "page_count"); err != nil {
		return nil, err
	}

	raw, ok := data["record_field"]
	if !ok || isNull(raw) {
		return env, nil
	}

	var recordField string
	if err := json.Unmarshal(raw, &recordField); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRecordFieldType, err)
	}

	records, ok := data[recordField]
	if recordField == "" || !ok || isNull(records) {
		return env, nil
	}

	if err := json.Unmarshal(records, &env.Contents); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDecodeEnvelope, recordField, err)
	}

	return env, nil
}

func decodePageNumber(data map[string]json.RawMessage, key string) (uint, error) {
	raw, ok := data[key]
	if !ok || isNull(raw) {
		return 1, nil
	}

	var n uint
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrDecodeEnvelope, key, err)
	}

	if n > constants.MaxPageCount {
		return 0, fmt.Errorf("%w: %w: %s %d exceeds %d", ErrDecodeEnvelope, ErrPageOutOfRange, key, n, constants.MaxPageCount)
	}

	return max(n, 1), nil
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)

	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
