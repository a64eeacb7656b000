package billing_test

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/medledger/medledger-go/billing"
)

func TestFileStoreWriteThrough(t *testing.T) {
	path := filepath.Join(t.TempDir(), "medledger", "token")
	store := billing.FileStore{Path: path}

	token, err := store.Get()
	require.NoError(t, err)
	require.Empty(t, token)

	require.NoError(t, store.Set("tok-abc"))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "tok-abc\n", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	token, err = store.Get()
	require.NoError(t, err)
	require.Equal(t, "tok-abc", token)

	require.NoError(t, store.Clear())
	_, err = os.Stat(path)
	require.True(t, os.IsNotExist(err))
	require.NoError(t, store.Clear())
}

func TestSessionReadsPersistedTokenLazily(t *testing.T) {
	store := &billing.MemStore{}
	require.NoError(t, store.Set("persisted"))

	session := billing.NewSession(store)
	require.Equal(t, billing.StateAnonymous, session.State())
	require.Equal(t, "persisted", session.Token())
}

func TestRestoreWithoutTokenStaysAnonymous(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		t.Error("restore without a token must not call the API")
	}))

	ok, err := client.Restore(context.Background())
	require.NoError(t, err)
	require.False(t, ok)
	require.Equal(t, billing.StateAnonymous, client.Session().State())
}

func TestRestoreSucceeds(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/auth/profile", func(w http.ResponseWriter, req *http.Request) {
		require.Equal(t, "Bearer tok-persisted", req.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"u7","email":"doc@hospital.test","role":"doctor","is_active":true}`))
	})

	store := &billing.MemStore{}
	require.NoError(t, store.Set("tok-persisted"))
	client := newTestClient(t, r, billing.WithTokenStore(store))

	ok, err := client.Restore(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, billing.StateAuthenticated, client.Session().State())
	require.Equal(t, billing.RoleDoctor, client.Session().Identity().Role)
}

func TestRestoreRejectedTokenIsSilentlyDiscarded(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/auth/profile", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"invalid session"}`))
	})

	store := &billing.MemStore{}
	require.NoError(t, store.Set("tok-stale"))
	client := newTestClient(t, r, billing.WithTokenStore(store))

	ok, err := client.Restore(context.Background())
	require.NoError(t, err)
	require.False(t, ok)
	require.Equal(t, billing.StateAnonymous, client.Session().State())

	persisted, err := store.Get()
	require.NoError(t, err)
	require.Empty(t, persisted)
}

func TestRestoreTransportFailureDiscardsToken(t *testing.T) {
	store := &billing.MemStore{}
	require.NoError(t, store.Set("tok-unreachable"))
	client, err := billing.New("http://127.0.0.1:1/api", billing.WithTokenStore(store))
	require.NoError(t, err)

	ok, err := client.Restore(context.Background())
	require.Error(t, err)
	require.False(t, ok)

	persisted, err := store.Get()
	require.NoError(t, err)
	require.Empty(t, persisted)
}

func TestStateString(t *testing.T) {
	require.Equal(t, "anonymous", billing.StateAnonymous.String())
	require.Equal(t, "restoring", billing.StateRestoring.String())
	require.Equal(t, "authenticated", billing.StateAuthenticated.String())
}
