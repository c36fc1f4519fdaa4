package mas_test

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"go.uber.org/goleak"

	"github.com/fivetwenty-io/mas-client/pkg/mas"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeSender answers calls from respond and records every call it sees.
type fakeSender struct {
	mu      sync.Mutex
	calls   []*mas.Call
	respond func(call *mas.Call) ([]byte, error)
}

func (s *fakeSender) Send(_ context.Context, call *mas.Call) ([]byte, error) {
	s.mu.Lock()
	s.calls = append(s.calls, call)
	s.mu.Unlock()

	return s.respond(call)
}

func (s *fakeSender) Calls() []*mas.Call {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]*mas.Call(nil), s.calls...)
}

type record struct {
	Name string `json:"name"`
}

func envelope(field string, page, pageCount int, records interface{}) []byte {
	data := map[string]interface{}{
		"record_field": field,
		"page":         page,
		"page_count":   pageCount,
		field:          records,
	}

	body, err := json.Marshal(map[string]interface{}{"data": data})
	if err != nil {
		panic(err)
	}

	return body
}

type recordingLogger struct {
	mu       sync.Mutex
	messages []string
	fields   []map[string]interface{}
}

func (l *recordingLogger) record(msg string, fields map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.messages = append(l.messages, msg)
	l.fields = append(l.fields, fields)
}

func (l *recordingLogger) Debug(msg string, fields map[string]interface{}) { l.record(msg, fields) }
func (l *recordingLogger) Info(msg string, fields map[string]interface{})  { l.record(msg, fields) }
func (l *recordingLogger) Warn(msg string, fields map[string]interface{})  { l.record(msg, fields) }
func (l *recordingLogger) Error(msg string, fields map[string]interface{}) { l.record(msg, fields) }
