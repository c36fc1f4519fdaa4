package client_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/mas-client/internal/client"
	"github.com/fivetwenty-io/mas-client/pkg/mas"
)

func TestFormsClient(t *testing.T) {
	t.Parallel()

	formID := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	prototypeID := uuid.MustParse("6ba7b811-9dad-11d1-80b4-00c04fd430c8")

	t.Run("get", func(t *testing.T) {
		t.Parallel()

		fake := newFakeMAS(t, respondWith("forms", []mas.Form{{
			UUID:   formID,
			Name:   "backup",
			Values: []mas.Field{{Name: "host", DataType: "string", Value: "db1"}},
		}}))

		form, err := fake.client(t).Forms().Get(context.Background(), formID)
		require.NoError(t, err)
		assert.Equal(t, "backup", form.Name)

		field, ok := form.Field("host")
		require.True(t, ok)
		assert.Equal(t, "db1", field.Value)
		assert.Equal(t, "form/"+formID.String(), fake.requests()[0].Path)
	})

	t.Run("get missing", func(t *testing.T) {
		t.Parallel()

		fake := newFakeMAS(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})

		_, err := fake.client(t).Forms().Get(context.Background(), formID)
		assert.True(t, mas.IsNotFound(err))
	})

	t.Run("get empty", func(t *testing.T) {
		t.Parallel()

		fake := newFakeMAS(t, respondWith("forms", []mas.Form{}))

		_, err := fake.client(t).Forms().Get(context.Background(), formID)
		assert.True(t, mas.IsNotFound(err))
	})

	t.Run("create", func(t *testing.T) {
		t.Parallel()

		fake := newFakeMAS(t, respondWith("forms", []mas.ListedForm{{UUID: formID, Name: "new", Prototype: prototypeID}}))

		form, err := fake.client(t).Forms().Create(context.Background(), &mas.PostForm{Prototype: prototypeID, Name: "new"})
		require.NoError(t, err)
		assert.Equal(t, formID, form.UUID)
		assert.Equal(t, prototypeID, form.Prototype)

		req := fake.requests()[0]
		assert.Equal(t, http.MethodPost, req.Method)
		assert.Equal(t, "form", req.Path)
		assert.Equal(t, prototypeID.String(), req.Body["prototype"])
		assert.Equal(t, []interface{}{}, req.Body["values"])
	})

	t.Run("update", func(t *testing.T) {
		t.Parallel()

		fake := newFakeMAS(t, respondWith("forms", []mas.Form{{UUID: formID, Name: "renamed"}}))

		name := "renamed"
		form, err := fake.client(t).Forms().Update(context.Background(), &mas.PatchForm{UUID: formID, Name: &name})
		require.NoError(t, err)
		assert.Equal(t, "renamed", form.Name)

		req := fake.requests()[0]
		assert.Equal(t, http.MethodPatch, req.Method)
		assert.Equal(t, "form", req.Path)
		assert.Equal(t, formID.String(), req.Body["uuid"])
		assert.Equal(t, "renamed", req.Body["name"])
	})

	t.Run("delete", func(t *testing.T) {
		t.Parallel()

		fake := newFakeMAS(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"data":null}`))
		})
		c := fake.client(t)

		require.NoError(t, c.Forms().Delete(context.Background(), prototypeID, formID))
		require.ErrorIs(t, c.Forms().Delete(context.Background()), mas.ErrNoIdentifiers)

		requests := fake.requests()
		require.Len(t, requests, 1)
		assert.Equal(t, http.MethodDelete, requests[0].Method)
		assert.Equal(t, "form/"+formID.String()+","+prototypeID.String(), requests[0].Path)
	})
}

func TestPrototypesClient_Version(t *testing.T) {
	t.Parallel()

	fake := newFakeMAS(t, respondWith("prototypes", []mas.ListedPrototype{{Name: "backup", Version: 2}}))
	c := fake.client(t)

	version := 2
	prototypes, err := c.Prototypes().List(context.Background(), &version)
	require.NoError(t, err)
	require.Len(t, prototypes, 1)

	_, err = c.Prototypes().List(context.Background(), nil)
	require.NoError(t, err)

	requests := fake.requests()
	assert.Equal(t, "2", requests[0].Query["version"])
	assert.NotContains(t, requests[1].Query, "version")
}

func TestProcessesClient(t *testing.T) {
	t.Parallel()

	fake := newFakeMAS(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/mas/process" {
			writeEnvelope(w, "processes", 1, 1, []mas.ListedProcess{{Name: "ops.backup", IsExecutable: true}})

			return
		}

		_, _ = w.Write([]byte(`{"data":{"record_field":"processes","processes":[{"name":"ops.backup"}]}}`))
	})
	c := fake.client(t)

	processes, err := c.Processes().List(context.Background())
	require.NoError(t, err)
	require.Len(t, processes, 1)
	assert.True(t, processes[0].IsExecutable)

	process, err := c.Processes().Get(context.Background(), "ops.backup")
	require.NoError(t, err)
	assert.Equal(t, mas.FullyQualifiedName("ops.backup"), process.Name)
	assert.Empty(t, process.Parameters)

	requests := fake.requests()
	assert.Equal(t, "2800", requests[0].Query["page_size"])
	assert.Equal(t, "process/ops.backup", requests[1].Path)
}

func TestNamespacesClient(t *testing.T) {
	t.Parallel()

	fake := newFakeMAS(t, respondWith("namespaces", []mas.Namespace{{Name: "ops", Description: "Operations"}}))
	c := fake.client(t)

	body := &mas.NamespaceBody{Name: "ops", Description: "Operations"}

	created, err := c.Namespaces().Create(context.Background(), body)
	require.NoError(t, err)
	assert.Equal(t, "Operations", created.Description)

	_, err = c.Namespaces().Replace(context.Background(), body)
	require.NoError(t, err)

	namespaces, err := c.Namespaces().List(context.Background(), "ops")
	require.NoError(t, err)
	assert.Len(t, namespaces, 1)

	requests := fake.requests()
	require.Len(t, requests, 3)
	assert.Equal(t, http.MethodPost, requests[0].Method)
	assert.Equal(t, "namespace", requests[0].Path)
	assert.Equal(t, "ops", requests[0].Body["name"])
	assert.Equal(t, http.MethodPut, requests[1].Method)
	assert.Equal(t, "namespace", requests[1].Path)
	assert.Equal(t, "namespace/ops", requests[2].Path)
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestInvocationsClient(t *testing.T) {
	t.Parallel()

	invocationID := uuid.MustParse("6ba7b812-9dad-11d1-80b4-00c04fd430c8")
	invocation := map[string]interface{}{
		"uuid":        invocationID.String(),
		"status":      "SCHEDULED",
		"process":     "ops.backup",
		"date_invoke": "2024-01-02T03:04:05",
		"parameters":  map[string]interface{}{},
	}

	t.Run("list", func(t *testing.T) {
		t.Parallel()

		fake := newFakeMAS(t, respondWith("invocations", []interface{}{invocation}))

		day := time.Date(2024, 1, 2, 23, 30, 0, 0, time.FixedZone("UTC-2", -2*60*60))
		invocations, err := fake.client(t).Invocations().List(context.Background(), day, 3)
		require.NoError(t, err)
		require.Len(t, invocations, 1)
		assert.Equal(t, mas.InvocationScheduled, invocations[0].Status)

		req := fake.requests()[0]
		assert.Equal(t, "invocation", req.Path)
		assert.Equal(t, "2024-01-03", req.Query["date_invoke"])
		assert.Equal(t, "3", req.Query["period"])
	})

	t.Run("list recent", func(t *testing.T) {
		t.Parallel()

		fake := newFakeMAS(t, respondWith("invocations", []interface{}{invocation}))

		invocations := client.NewInvocationsClient(fake.client(t))
		client.SetClock(invocations, func() time.Time {
			return time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
		})

		_, err := invocations.ListRecent(context.Background(), 7, invocationID)
		require.NoError(t, err)

		req := fake.requests()[0]
		assert.Equal(t, "invocation/"+invocationID.String(), req.Path)
		assert.Equal(t, "2024-03-03", req.Query["date_invoke"])
		assert.Equal(t, "7", req.Query["period"])
	})

	t.Run("outputs", func(t *testing.T) {
		t.Parallel()

		fake := newFakeMAS(t, respondWith("outputs", []interface{}{
			map[string]interface{}{"status": "EXECUTING", "data": map[string]interface{}{"progress": 0.25}},
			map[string]interface{}{"status": "EXECUTING", "data": map[string]interface{}{"text": "copying"}},
		}))

		outputs, err := fake.client(t).Invocations().Outputs(context.Background(), invocationID)
		require.NoError(t, err)
		require.Len(t, outputs, 2)
		require.NotNil(t, outputs[0].Progress)
		require.NotNil(t, outputs[1].Text)
		assert.Equal(t, "copying", *outputs[1].Text)
		assert.Equal(t, "invocation/"+invocationID.String()+"/display", fake.requests()[0].Path)
	})

	t.Run("schedule", func(t *testing.T) {
		t.Parallel()

		fake := newFakeMAS(t, respondWith("invocations", []interface{}{invocation}))

		at := mas.NewTimestamp(time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC))
		scheduled, err := fake.client(t).Invocations().Schedule(context.Background(), &mas.ScheduledInvocation{
			Process: "ops.backup",
			Date:    &at,
		})
		require.NoError(t, err)
		assert.Equal(t, invocationID, scheduled.UUID)

		req := fake.requests()[0]
		assert.Equal(t, http.MethodPost, req.Method)
		assert.Equal(t, "invocation", req.Path)
		assert.Equal(t, "ops.backup", req.Body["name"])
		assert.Equal(t, map[string]interface{}{}, req.Body["parameters"])
		assert.Equal(t, "2024-05-01T08:00:00Z", req.Body["date"])
	})
}

func TestCredentialsClient(t *testing.T) {
	t.Parallel()

	credentialID := uuid.MustParse("6ba7b813-9dad-11d1-80b4-00c04fd430c8")

	fake := newFakeMAS(t, respondWith("credentials", []mas.Credential{{
		UUID: credentialID, Protocol: "ssh", User: "root", Address: "db1", Port: 22,
	}}))
	c := fake.client(t)

	body := mas.NewPostCredential("root", "pw", "db1")
	created, err := c.Credentials().Create(context.Background(), &body)
	require.NoError(t, err)
	assert.Equal(t, credentialID, created.UUID)

	port := 2222
	_, err = c.Credentials().Update(context.Background(), &mas.PatchCredential{UUID: credentialID, Port: &port})
	require.NoError(t, err)

	requests := fake.requests()
	require.Len(t, requests, 2)

	assert.Equal(t, "credential", requests[0].Path)
	assert.Equal(t, "pw", requests[0].Body["user_key"])
	assert.InDelta(t, 22, requests[0].Body["port"], 0)

	assert.Equal(t, http.MethodPatch, requests[1].Method)
	assert.Equal(t, "credential/"+credentialID.String(), requests[1].Path)
	assert.Equal(t, map[string]interface{}{"port": float64(2222)}, requests[1].Body)
}

func TestTypesClient(t *testing.T) {
	t.Parallel()

	fake := newFakeMAS(t, respondWith("types", []interface{}{
		map[string]interface{}{
			"name":     "level",
			"isSystem": true,
			"enumerations": []interface{}{
				map[string]interface{}{"label": "high", "weight": 2},
				map[string]interface{}{"label": "low", "weight": 1},
			},
		},
	}))

	types, err := fake.client(t).Types().List(context.Background())
	require.NoError(t, err)
	require.Len(t, types, 1)
	assert.True(t, types[0].IsSystem)
	assert.Equal(t, "low", types[0].Enumerations[0].Label)
	assert.Equal(t, "type", fake.requests()[0].Path)
}
