package admin

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	model "github.com/adityanegi/portfolio/backend/internal/model/portfolio"
	portfolioservice "github.com/adityanegi/portfolio/backend/internal/service/portfolio"
	"github.com/adityanegi/portfolio/backend/internal/store"
)

func setupRouter() (*chi.Mux, *portfolioservice.Service) {
	svc := portfolioservice.NewService(store.NewMemory(), model.MustSeed(), "admin123")
	handler := New(svc)

	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r, svc
}

func login(t *testing.T, r *chi.Mux, password string) (string, int) {
	t.Helper()

	payload, _ := json.Marshal(map[string]string{"password": password})
	req := httptest.NewRequest(http.MethodPost, "/admin/login", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	var body struct {
		Success bool   `json:"success"`
		Token   string `json:"token"`
	}
	_ = json.Unmarshal(resp.Body.Bytes(), &body)
	return body.Token, resp.Code
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	r, _ := setupRouter()

	token, code := login(t, r, "nope")
	if code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
	if token != "" {
		t.Fatal("no token must be issued on rejection")
	}
}

func TestLoginIssuesToken(t *testing.T) {
	r, _ := setupRouter()

	token, code := login(t, r, "admin123")
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if token == "" {
		t.Fatal("expected an issued token")
	}
}

func TestMutationsRequireToken(t *testing.T) {
	r, _ := setupRouter()

	payload, _ := json.Marshal(map[string]string{"title": "sneaky"})
	req := httptest.NewRequest(http.MethodPost, "/projects", bytes.NewReader(payload))
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/projects", bytes.NewReader(payload))
	req.Header.Set("Authorization", "Bearer made-up-token")
	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for unknown token, got %d", resp.Code)
	}
}

func TestCreateUpdateDeleteWithToken(t *testing.T) {
	r, svc := setupRouter()
	token, _ := login(t, r, "admin123")

	// create
	payload, _ := json.Marshal(model.ProjectDraft{Title: "Admin Panel", Date: "Aug 2026"})
	req := httptest.NewRequest(http.MethodPost, "/projects", bytes.NewReader(payload))
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("create: expected 200, got %d", resp.Code)
	}
	var created struct {
		Success bool          `json:"success"`
		Project model.Project `json:"project"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &created); err != nil {
		t.Fatalf("invalid create body: %v", err)
	}
	if created.Project.ID == "" {
		t.Fatal("create: expected an assigned identifier")
	}

	// update
	payload, _ = json.Marshal(map[string]string{"title": "Admin Panel v2"})
	req = httptest.NewRequest(http.MethodPut, "/projects/"+created.Project.ID, bytes.NewReader(payload))
	req.Header.Set("Authorization", "Bearer "+token)
	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("update: expected 200, got %d", resp.Code)
	}

	// delete
	req = httptest.NewRequest(http.MethodDelete, "/projects/"+created.Project.ID, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", resp.Code)
	}

	projects, err := svc.Projects(context.Background())
	if err != nil {
		t.Fatalf("Projects err: %v", err)
	}
	for _, p := range projects {
		if p.ID == created.Project.ID {
			t.Fatal("deleted project still present")
		}
	}
}

func TestUpdateMissingProjectIs404(t *testing.T) {
	r, _ := setupRouter()
	token, _ := login(t, r, "admin123")

	payload, _ := json.Marshal(map[string]string{"title": "ghost"})
	req := httptest.NewRequest(http.MethodPut, "/projects/does-not-exist", bytes.NewReader(payload))
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}
