package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	pkgerrors "github.com/carlosnavea/assethub-backend/pkg/errors"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(Options{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client, server
}

func TestNewClientRequiresBaseURL(t *testing.T) {
	if _, err := NewClient(Options{}); err == nil {
		t.Fatal("expected error for missing base url")
	}
}

func TestListAssetsSendsBearerToken(t *testing.T) {
	var gotAuth string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode([]Asset{{ID: uuid.New(), Name: "Laptop"}})
	}))
	client.SetToken("tok-123")

	rows, err := client.ListAssets(context.Background())
	if err != nil {
		t.Fatalf("list assets: %v", err)
	}
	if len(rows) != 1 || rows[0].Name != "Laptop" {
		t.Fatalf("unexpected rows: %+v", rows)
	}
	if gotAuth != "Bearer tok-123" {
		t.Fatalf("expected bearer header, got %q", gotAuth)
	}
}

func TestErrorBodyTextPreservedVerbatim(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "Name is required"})
	}))

	_, err := client.CreateCategory(context.Background(), CreateCategoryParams{})
	if err == nil {
		t.Fatal("expected error")
	}
	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected coded error, got %v", err)
	}
	if typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %s", typed.Code())
	}
	if typed.Message() != "Name is required" {
		t.Fatalf("expected backend text verbatim, got %q", typed.Message())
	}
}

func TestErrorWithoutBodyFallsBackToStatusText(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))

	_, err := client.ListUsers(context.Background())
	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected coded error, got %v", err)
	}
	if typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency code, got %s", typed.Code())
	}
	if typed.Message() != http.StatusText(http.StatusBadGateway) {
		t.Fatalf("unexpected fallback message %q", typed.Message())
	}
}

func TestCodeForStatus(t *testing.T) {
	tests := []struct {
		status int
		code   pkgerrors.Code
	}{
		{http.StatusBadRequest, pkgerrors.CodeValidation},
		{http.StatusUnauthorized, pkgerrors.CodeUnauthorized},
		{http.StatusForbidden, pkgerrors.CodeForbidden},
		{http.StatusNotFound, pkgerrors.CodeNotFound},
		{http.StatusConflict, pkgerrors.CodeConflict},
		{http.StatusUnprocessableEntity, pkgerrors.CodeValidation},
		{http.StatusInternalServerError, pkgerrors.CodeDependency},
	}
	for _, tt := range tests {
		if got := codeForStatus(tt.status); got != tt.code {
			t.Fatalf("status %d expected %s got %s", tt.status, tt.code, got)
		}
	}
}

func TestCountAssetsForwardsFilter(t *testing.T) {
	categoryID := uuid.New()
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("category_id"); got != categoryID.String() {
			t.Errorf("expected category filter, got %q", got)
		}
		json.NewEncoder(w).Encode(map[string]int64{"count": 7})
	}))

	count, err := client.CountAssets(context.Background(), AssetCountFilter{CategoryID: &categoryID})
	if err != nil {
		t.Fatalf("count assets: %v", err)
	}
	if count != 7 {
		t.Fatalf("expected 7, got %d", count)
	}
}

func TestCreateUserUnwrapsEnvelope(t *testing.T) {
	userID := uuid.New()
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{
			"user": map[string]any{"id": userID, "email": "new@example.com"},
		})
	}))

	user, err := client.CreateUser(context.Background(), CreateUserParams{
		Email:    "new@example.com",
		Password: "long-enough-pw",
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if user == nil || user.ID != userID {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestSigninAdoptsMintedToken(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(Session{AccessToken: "minted", RefreshToken: "refresh"})
	}))

	session, err := client.Signin(context.Background(), SigninParams{Email: "a@example.com", Password: "pw"})
	if err != nil {
		t.Fatalf("signin: %v", err)
	}
	if session.AccessToken != "minted" {
		t.Fatalf("unexpected session: %+v", session)
	}
	if client.Token() != "minted" {
		t.Fatalf("expected client to adopt token, got %q", client.Token())
	}
}

func TestSignoutDropsToken(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]bool{"success": true})
	}))
	client.SetToken("stale")

	if err := client.Signout(context.Background()); err != nil {
		t.Fatalf("signout: %v", err)
	}
	if client.Token() != "" {
		t.Fatalf("expected token cleared, got %q", client.Token())
	}
}
