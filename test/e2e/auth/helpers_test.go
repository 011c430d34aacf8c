package auth_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	httpapi "github.com/soloauth/soloauth/internal/auth/http"
	"github.com/soloauth/soloauth/internal/auth/service"
	"github.com/soloauth/soloauth/internal/auth/store/drivers/sqlite"
	"github.com/soloauth/soloauth/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

/*
 * End-to-end tests for the auth service. The full router is served in-process
 * with httptest over a :memory: database, so every request exercises the real
 * middleware chain, handlers, services and store.
 */

const (
	testUsername = "alice"
	testPassword = "pw1"
)

type testServer struct {
	URL     string
	Secrets *jwtx.SigningSecret
	Codec   *jwtx.Codec
}

// setupAuthServer boots the full HTTP surface against a fresh database and
// returns the base URL plus handles for manipulating the signing secret.
func setupAuthServer(t *testing.T) *testServer {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	secrets := jwtx.NewSigningSecret()
	codec := &jwtx.Codec{
		Secrets: secrets,
		Issuer:  "soloauth-test",
		TTL:     30 * time.Minute,
	}

	router := httpapi.NewRouter(codec, "test", st, slog.Default())
	router.SessionService = &service.SessionService{Store: st, Codec: codec}
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return &testServer{URL: srv.URL, Secrets: secrets, Codec: codec}
}

func postJSON(t *testing.T, url string, body any, bearer string) (*http.Response, map[string]any) {
	t.Helper()
	return doJSON(t, http.MethodPost, url, body, bearer)
}

func getJSON(t *testing.T, url string, bearer string) (*http.Response, map[string]any) {
	t.Helper()
	return doJSON(t, http.MethodGet, url, nil, bearer)
}

func doJSON(t *testing.T, method, url string, body any, bearer string) (*http.Response, map[string]any) {
	t.Helper()

	var buf io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		buf = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, url, buf)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	var decoded map[string]any
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}

	return resp, decoded
}

func register(t *testing.T, ts *testServer, username, password string) {
	t.Helper()

	resp, _ := postJSON(t, ts.URL+"/v1/register",
		map[string]string{"username": username, "password": password}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
}

func login(t *testing.T, ts *testServer, username, password string) string {
	t.Helper()

	resp, body := postJSON(t, ts.URL+"/v1/login",
		map[string]string{"username": username, "password": password}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "bearer", body["token_type"])

	token, ok := body["access_token"].(string)
	require.True(t, ok)
	require.NotEmpty(t, token)
	return token
}
