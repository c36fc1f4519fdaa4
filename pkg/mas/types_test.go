package mas_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/mas-client/pkg/mas"
)

func TestTimestamp(t *testing.T) {
	t.Parallel()

	var ts mas.Timestamp
	require.NoError(t, json.Unmarshal([]byte(`"2024-03-05T14:30:00"`), &ts))
	assert.Equal(t, time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC), ts.Time)
	assert.Equal(t, "2024-03-05T14:30:00", ts.String())

	require.NoError(t, json.Unmarshal([]byte(`"2024-03-05T16:30:00+02:00"`), &ts))
	assert.Equal(t, time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC), ts.Time)

	encoded, err := json.Marshal(ts)
	require.NoError(t, err)
	assert.JSONEq(t, `"2024-03-05T14:30:00Z"`, string(encoded))

	out, err := yaml.Marshal(map[string]mas.Timestamp{"at": ts})
	require.NoError(t, err)
	assert.Contains(t, string(out), "2024-03-05T14:30:00")
	assert.NotContains(t, string(out), "Z")

	require.Error(t, json.Unmarshal([]byte(`"yesterday"`), &ts))
	require.Error(t, json.Unmarshal([]byte(`12`), &ts))
}

func TestInvocation_Decode(t *testing.T) {
	t.Parallel()

	raw := `{"uuid":"6ba7b810-9dad-11d1-80b4-00c04fd430c8","status":"SUCCEEDED","aborted":false,
		"process":"ops.backup","started":true,"date_invoke":"2024-01-02T03:04:05",
		"parameters":{"target":"db1"}}`

	var inv mas.Invocation
	require.NoError(t, json.Unmarshal([]byte(raw), &inv))
	assert.Equal(t, mas.InvocationSucceeded, inv.Status)
	assert.True(t, inv.Status.Finished())
	assert.False(t, mas.InvocationScheduled.Finished())
	assert.Equal(t, mas.FullyQualifiedName("ops.backup"), inv.Process)
	assert.Equal(t, 2024, inv.DateInvoked.Year())
	assert.Equal(t, "db1", inv.Parameters["target"])
}

func TestInvocationOutput_Decode(t *testing.T) {
	t.Parallel()

	var progress mas.InvocationOutput
	require.NoError(t, json.Unmarshal([]byte(`{"status":"EXECUTING","data":{"progress":0.5}}`), &progress))
	require.NotNil(t, progress.Progress)
	assert.InDelta(t, 0.5, *progress.Progress, 1e-9)
	assert.Nil(t, progress.Text)

	var text mas.InvocationOutput
	require.NoError(t, json.Unmarshal([]byte(`{"status":"SUCCEEDED","data":{"text":"done"}}`), &text))
	require.NotNil(t, text.Text)
	assert.Equal(t, "done", *text.Text)

	var empty mas.InvocationOutput
	require.ErrorIs(t, json.Unmarshal([]byte(`{"status":"FAILED","data":{}}`), &empty), mas.ErrOutputWithoutData)
}

func TestDataType_EnumerationsSortedByWeight(t *testing.T) {
	t.Parallel()

	raw := `{"name":"colour","isSystem":true,"enumerations":[
		{"label":"blue","weight":3},{"label":"red","weight":1},{"label":"green","weight":2}]}`

	var dt mas.DataType
	require.NoError(t, json.Unmarshal([]byte(raw), &dt))
	assert.True(t, dt.IsSystem)
	assert.Equal(t, []mas.Enumeration{
		{Label: "red", Weight: 1},
		{Label: "green", Weight: 2},
		{Label: "blue", Weight: 3},
	}, dt.Enumerations)

	var bare mas.DataType
	require.NoError(t, json.Unmarshal([]byte(`{"name":"text"}`), &bare))
	assert.Empty(t, bare.Enumerations)
	assert.NotNil(t, bare.Enumerations)
}

func TestProcess_MissingParameters(t *testing.T) {
	t.Parallel()

	var p mas.Process
	require.NoError(t, json.Unmarshal([]byte(`{"name":"ops.backup","is_executable":true}`), &p))
	assert.NotNil(t, p.Parameters)
	assert.Empty(t, p.Parameters)

	require.NoError(t, json.Unmarshal([]byte(`{"name":"ops.backup","parameters":[{"name":"target","deflt":"db1"}]}`), &p))
	require.Len(t, p.Parameters, 1)
	require.NotNil(t, p.Parameters[0].Default)
	assert.Equal(t, "db1", *p.Parameters[0].Default)
}

func TestForm_Field(t *testing.T) {
	t.Parallel()

	form := mas.Form{Values: []mas.Field{{Name: "host", Value: "db1"}, {Name: "port", Value: 5432.0}}}

	field, ok := form.Field("port")
	require.True(t, ok)
	assert.InDelta(t, 5432.0, field.Value, 1e-9)

	_, ok = form.Field("missing")
	assert.False(t, ok)
}

func TestBodies_Encoding(t *testing.T) {
	t.Parallel()

	cred, err := json.Marshal(mas.NewPostCredential("root", "pw", "db1"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"protocol":"ssh","user":"root","user_key":"pw","address":"db1","port":22}`, string(cred))

	user := "admin"
	patch, err := json.Marshal(mas.PatchCredential{User: &user})
	require.NoError(t, err)
	assert.JSONEq(t, `{"user":"admin"}`, string(patch))

	var ignored []mas.Ignored
	require.NoError(t, json.Unmarshal([]byte(`[{"a":1},2,"x"]`), &ignored))
	assert.Len(t, ignored, 3)
}
