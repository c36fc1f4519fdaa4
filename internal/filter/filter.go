// Package filter evaluates user-supplied expressions against listed MAS
// records. Record fields are addressed by their wire names, e.g.
//
//	is_executable && hasPrefix(name, "ops.")
//
// hasPrefix, hasSuffix and icontains ignore case. The expr operators
// startsWith, endsWith and contains are case-sensitive.
package filter

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/fivetwenty-io/mas-client/internal/constants"
)

// ErrEmptyExpression is returned when compiling a blank expression.
var ErrEmptyExpression = errors.New("empty filter expression")

// Filter is a compiled filter expression.
type Filter struct {
	program *vm.Program
	expr    string
}

func helpers() map[string]interface{} {
	return map[string]interface{}{
		"icontains": func(str, substr string) bool {
			return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
		},
		"hasPrefix": func(str, prefix string) bool {
			return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
		},
		"hasSuffix": func(str, suffix string) bool {
			return strings.HasSuffix(strings.ToLower(str), strings.ToLower(suffix))
		},
		"lower": strings.ToLower,
		"upper": strings.ToUpper,
		"daysAgo": func(days int) string {
			return time.Now().UTC().AddDate(0, 0, -days).Format(time.RFC3339)
		},
	}
}

// Compile compiles expression. Unknown identifiers evaluate to nil so one
// expression can be applied to records that lack some fields.
func Compile(expression string) (*Filter, error) {
	if strings.TrimSpace(expression) == "" {
		return nil, ErrEmptyExpression
	}

	program, err := expr.Compile(expression,
		expr.Env(helpers()),
		expr.AllowUndefinedVariables(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to compile filter expression: %w", err)
	}

	return &Filter{program: program, expr: expression}, nil
}

// String returns the source expression.
func (f *Filter) String() string {
	return f.expr
}

// Match evaluates the filter against one record.
func (f *Filter) Match(record interface{}) (bool, error) {
	env, err := recordEnv(record)
	if err != nil {
		return false, err
	}

	out, err := expr.Run(f.program, env)
	if err != nil {
		return false, fmt.Errorf("evaluating %q: %w", f.expr, err)
	}

	matched, ok := out.(bool)
	if !ok {
		return false, constants.ErrFilterNotBoolean
	}

	return matched, nil
}

// Apply returns the records f matches, in their original order. A nil
// filter matches everything.
func Apply[T any](f *Filter, records []T) ([]T, error) {
	if f == nil {
		return records, nil
	}

	out := make([]T, 0, len(records))

	for _, record := range records {
		matched, err := f.Match(record)
		if err != nil {
			return nil, err
		}

		if matched {
			out = append(out, record)
		}
	}

	return out, nil
}

// recordEnv exposes the record's JSON fields at the top level next to the
// helper functions.
func recordEnv(record interface{}) (map[string]interface{}, error) {
	raw, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("encoding record for filter: %w", err)
	}

	fields := map[string]interface{}{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("filter records must be objects: %w", err)
	}

	env := helpers()
	maps.Copy(env, fields)
	env["record"] = fields

	return env, nil
}
