package billing_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/medledger/medledger-go/billing"
)

func newTestClient(t *testing.T, handler http.Handler, opts ...billing.Option) *billing.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client, err := billing.New(srv.URL+"/api", opts...)
	require.NoError(t, err)
	return client
}

func TestNewRejectsBadBaseURL(t *testing.T) {
	_, err := billing.New("")
	require.Error(t, err)
	_, err = billing.New("/api")
	require.Error(t, err)
}

func TestBearerHeaderAttachedAfterSetToken(t *testing.T) {
	var sawAuth, sawRequestID string
	r := chi.NewRouter()
	r.Get("/api/patients", func(w http.ResponseWriter, req *http.Request) {
		sawAuth = req.Header.Get("Authorization")
		sawRequestID = req.Header.Get("X-Request-ID")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	})

	client := newTestClient(t, r)
	require.NoError(t, client.Session().SetToken("tok-123", nil))

	_, err := client.Patients.List(context.Background(), billing.PatientListOptions{})
	require.NoError(t, err)
	require.Equal(t, "Bearer tok-123", sawAuth)
	require.NotEmpty(t, sawRequestID)

	require.NoError(t, client.Auth.Logout())
	_, err = client.Patients.List(context.Background(), billing.PatientListOptions{})
	require.NoError(t, err)
	require.Empty(t, sawAuth)

	// With the token cleared a restore attempt finds nothing to restore.
	ok, err := client.Restore(context.Background())
	require.NoError(t, err)
	require.False(t, ok)
}

func TestLoginPersistsTokenWriteThrough(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/api/auth/login", func(w http.ResponseWriter, req *http.Request) {
		var body billing.LoginRequest
		require.NoError(t, json.NewDecoder(req.Body).Decode(&body))
		require.Equal(t, "clerk@hospital.test", body.Email)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"token":"tok-login","user":{"id":"u1","email":"clerk@hospital.test","role":"billing_clerk","is_active":true}}`))
	})

	store := &billing.MemStore{}
	client := newTestClient(t, r, billing.WithTokenStore(store))

	resp, err := client.Auth.Login(context.Background(), "clerk@hospital.test", "s3cr3tpass")
	require.NoError(t, err)
	require.Equal(t, billing.RoleBillingClerk, resp.User.Role)

	persisted, err := store.Get()
	require.NoError(t, err)
	require.Equal(t, "tok-login", persisted)
	require.Equal(t, billing.StateAuthenticated, client.Session().State())
	require.Equal(t, "clerk@hospital.test", client.Session().Identity().Email)
}

func TestLoginFailureLeavesSessionAnonymous(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/api/auth/login", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"code":"INVALID_CREDENTIALS","message":"invalid email or password"}}`))
	})

	client := newTestClient(t, r)
	_, err := client.Auth.Login(context.Background(), "clerk@hospital.test", "wrongpass")
	require.Error(t, err)
	require.True(t, billing.IsUnauthorized(err))
	require.Contains(t, err.Error(), "invalid email or password")
	require.Equal(t, billing.StateAnonymous, client.Session().State())
}

func TestErrorBodyShapes(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{"structured envelope", 403, `{"error":{"code":"FORBIDDEN","message":"role not allowed"}}`, "role not allowed"},
		{"flat error string", 400, `{"error":"discount exceeds cap"}`, "discount exceeds cap"},
		{"bare message", 409, `{"message":"invoice already finalized"}`, "invoice already finalized"},
		{"unparseable body", 503, `<html>upstream down</html>`, "request failed with status 503"},
		{"empty body", 500, ``, "request failed with status 500"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := chi.NewRouter()
			r.Get("/api/invoices/{id}", func(w http.ResponseWriter, req *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			})
			client := newTestClient(t, r)
			_, err := client.Invoices.Get(context.Background(), "inv-1")
			require.Error(t, err)
			var apiErr *billing.APIError
			require.ErrorAs(t, err, &apiErr)
			require.Equal(t, tc.status, apiErr.StatusCode)
			require.Equal(t, tc.message, apiErr.Message)
		})
	}
}

func TestUnauthorizedResponseClearsSession(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/patients", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"session expired"}`))
	})

	store := &billing.MemStore{}
	require.NoError(t, store.Set("stale-token"))
	client := newTestClient(t, r, billing.WithTokenStore(store))

	_, err := client.Patients.List(context.Background(), billing.PatientListOptions{})
	require.True(t, billing.IsUnauthorized(err))

	persisted, err := store.Get()
	require.NoError(t, err)
	require.Empty(t, persisted)
	require.Equal(t, billing.StateAnonymous, client.Session().State())
}

func TestValidationRunsBeforeAnyCall(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		t.Error("no request should be issued for an invalid body")
	}))

	_, err := client.Auth.Login(context.Background(), "not-an-email", "pw")
	require.Error(t, err)

	_, err = client.Invoices.Create(context.Background(), billing.CreateInvoiceRequest{})
	require.Error(t, err)
}

func TestTransportFailureSurfacesWrapped(t *testing.T) {
	client, err := billing.New("http://127.0.0.1:1/api")
	require.NoError(t, err)
	_, err = client.Patients.List(context.Background(), billing.PatientListOptions{})
	require.Error(t, err)
	var apiErr *billing.APIError
	require.False(t, billing.IsUnauthorized(err))
	require.NotErrorAs(t, err, &apiErr)
}
