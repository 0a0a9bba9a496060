package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lessensdelharmonie/harmonie/internal/api/dto/v1/contact"
)

const validPayload = `{"name":"Alice Martin","email":"alice@example.com","phone":"06 75 44 55 82","service":"reiki-adulte","message":"I would like to book a session please."}`

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestValidateCommand_Accepted(t *testing.T) {
	file := filepath.Join(t.TempDir(), "payload.json")
	require.NoError(t, os.WriteFile(file, []byte(validPayload), 0o600))

	out, err := run(t, "", "validate", file)
	require.NoError(t, err)

	var submission contact.Submission
	require.NoError(t, json.Unmarshal([]byte(out), &submission))
	assert.Equal(t, "Alice Martin", submission.Name)
	assert.Equal(t, "+33675445582", submission.PhoneE164)
	assert.NotEmpty(t, submission.ID)
}

func TestValidateCommand_Rejected(t *testing.T) {
	out, err := run(t, `{"name":"A","email":"alice@example.com","service":"reiki-adulte","message":"Bonjour, je voudrais un rendez-vous."}`, "validate", "--locale", "fr")
	assert.ErrorIs(t, err, ErrRejected)

	var result contact.SubmissionResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.False(t, result.Success)
	assert.Equal(t, "Validation error", result.Message)
	assert.Equal(t, []string{"Le nom doit contenir au moins 2 caractères"}, result.Errors["name"])
}

func TestValidateCommand_Malformed(t *testing.T) {
	out, err := run(t, `not json`, "validate")
	assert.ErrorIs(t, err, ErrRejected)
	assert.Contains(t, out, "Invalid request body")
}

func TestSchemaCommand(t *testing.T) {
	out, err := run(t, "", "schema", "--locale", "fr-FR")
	require.NoError(t, err)

	var schema contact.Schema
	require.NoError(t, json.Unmarshal([]byte(out), &schema))
	assert.Equal(t, "fr", schema.Locale)
	assert.Len(t, schema.Fields, 5)
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "dev")
}

func TestSubmitCommand(t *testing.T) {
	var gotUA, gotLang string
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/contact", r.URL.Path)
		gotUA = r.Header.Get("User-Agent")
		gotLang = r.Header.Get("Accept-Language")
		gotBody, _ = io.ReadAll(r.Body)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"message":"Contact form submitted successfully"}`))
	}))
	defer srv.Close()

	out, err := run(t, validPayload, "submit", "--url", srv.URL+"/", "--locale", "fr")
	require.NoError(t, err)

	assert.Contains(t, out, "Contact form submitted successfully")
	assert.True(t, strings.HasPrefix(gotUA, "harmonie-cli/"))
	assert.Equal(t, "fr", gotLang)
	assert.JSONEq(t, validPayload, string(gotBody))
}

func TestSubmitCommand_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"success":false,"message":"Validation error","errors":{"name":["Name must be at least 2 characters"]}}`))
	}))
	defer srv.Close()

	out, err := run(t, `{"name":"A"}`, "submit", "--url", srv.URL)
	assert.ErrorIs(t, err, ErrRejected)
	assert.Contains(t, err.Error(), "status 400")
	assert.Contains(t, out, "Name must be at least 2 characters")
}

func TestClient_UnexpectedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer srv.Close()

	_, status, err := NewClient(srv.URL, time.Second).Submit(testContext(t), []byte(validPayload), "")
	require.Error(t, err)
	assert.Equal(t, http.StatusBadGateway, status)
}

// testContext returns a context canceled when the test finishes
// (equivalent of testing.T.Context, which requires Go 1.24).
func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return ctx
}
