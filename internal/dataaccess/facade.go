// Package dataaccess is the site's read/write surface. Every operation
// attempts the remote API exactly once and, when the attempt fails, applies
// the same operation against the local fallback store and answers from
// there. Each call re-attempts the remote first, so a client can flip
// between paths call by call; the two stores are never reconciled.
package dataaccess

import (
	"context"
	"log"
	"net/http"
	"sync"

	model "github.com/adityanegi/portfolio/backend/internal/model/portfolio"
	"github.com/adityanegi/portfolio/backend/internal/remote"
	portfolioservice "github.com/adityanegi/portfolio/backend/internal/service/portfolio"
)

// ContactResult is the acknowledgment returned for a contact submission.
type ContactResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// fallbackContactMessage is what the caller sees when the form was never
// delivered anywhere. Degraded mode fabricates success on purpose: the
// visitor cannot tell "delivered" from "accepted but undeliverable".
const fallbackContactMessage = "Message sent (simulated)! Backend not detected."

type countResponse struct {
	Count int `json:"count"`
}

type loginResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
}

type projectResponse struct {
	Success bool          `json:"success"`
	Project model.Project `json:"project"`
}

type successResponse struct {
	Success bool `json:"success"`
}

// Facade mediates between the remote API and the local fallback service.
type Facade struct {
	remote *remote.Client
	local  *portfolioservice.Service

	mu    sync.Mutex
	token string
}

// New builds a facade over a remote client and a local fallback service.
func New(client *remote.Client, local *portfolioservice.Service) *Facade {
	return &Facade{remote: client, local: local}
}

// FetchProjects returns the project collection, remote first. The remote
// read is bounded by the first-load deadline; on failure the fallback
// store answers, seeding itself from the static profile when empty.
func (f *Facade) FetchProjects(ctx context.Context) ([]model.Project, error) {
	var projects []model.Project
	err := f.remote.Do(ctx, http.MethodGet, "/projects", nil, &projects, remote.FirstLoadTimeout)
	if err == nil {
		return projects, nil
	}
	return f.local.Projects(ctx)
}

// FetchExperience returns the work history. The static profile answers
// directly on failure; experience is read-only and never cached locally.
func (f *Facade) FetchExperience(ctx context.Context) ([]model.Experience, error) {
	var experience []model.Experience
	err := f.remote.Do(ctx, http.MethodGet, "/experience", nil, &experience, 0)
	if err == nil {
		return experience, nil
	}
	return f.local.Experience(), nil
}

// FetchSkills returns the skill categories, static profile on failure.
func (f *Facade) FetchSkills(ctx context.Context) ([]model.SkillCategory, error) {
	var skills []model.SkillCategory
	err := f.remote.Do(ctx, http.MethodGet, "/skills", nil, &skills, 0)
	if err == nil {
		return skills, nil
	}
	return f.local.Skills(), nil
}

// FetchVisitorCount reads the counter with the short polling deadline.
func (f *Facade) FetchVisitorCount(ctx context.Context) (int, error) {
	var resp countResponse
	err := f.remote.Do(ctx, http.MethodGet, "/visitors", nil, &resp, remote.PollTimeout)
	if err == nil {
		return resp.Count, nil
	}
	return f.local.VisitorCount(ctx)
}

// IncrementVisitorCount bumps the counter on whichever path succeeds and
// always returns the post-increment value of that path.
func (f *Facade) IncrementVisitorCount(ctx context.Context) (int, error) {
	var resp countResponse
	err := f.remote.Do(ctx, http.MethodPost, "/visitors", nil, &resp, 0)
	if err == nil {
		return resp.Count, nil
	}
	return f.local.IncrementVisitors(ctx)
}

// SubmitContactForm delivers the form remotely. When the backend is
// unreachable nothing is sent and a fabricated acknowledgment is returned.
func (f *Facade) SubmitContactForm(ctx context.Context, name, email, message string) (ContactResult, error) {
	payload := map[string]string{"name": name, "email": email, "message": message}
	var result ContactResult
	err := f.remote.Do(ctx, http.MethodPost, "/contact", payload, &result, 0)
	if err == nil {
		return result, nil
	}
	log.Printf("[dataaccess] backend unreachable for contact form, simulating success: %v", err)
	return ContactResult{Success: true, Message: fallbackContactMessage}, nil
}

// LoginAdmin authenticates against the remote API, keeping the issued
// token for later mutating calls. On failure the password is compared
// against the locally configured secret; no token exists on that path, and
// a true result is still sufficient authorization for the caller.
func (f *Facade) LoginAdmin(ctx context.Context, password string) bool {
	var resp loginResponse
	err := f.remote.Do(ctx, http.MethodPost, "/admin/login", map[string]string{"password": password}, &resp, 0)
	if err == nil && resp.Success {
		f.mu.Lock()
		f.token = resp.Token
		f.mu.Unlock()
		return true
	}
	if err == nil {
		return false
	}
	return f.local.CheckAdminSecret(password)
}

// CreateProject creates a record remotely, or synthesizes one locally with
// a timestamp identifier prepended to the stored collection.
func (f *Facade) CreateProject(ctx context.Context, draft model.ProjectDraft) (model.Project, error) {
	var resp projectResponse
	err := f.authed(ctx, http.MethodPost, "/projects", draft, &resp)
	if err == nil {
		return resp.Project, nil
	}
	return f.local.CreateProject(ctx, draft)
}

// UpdateProject merges patch into the identified record. On the fallback
// path a missing identifier reports portfolio.ErrProjectNotFound.
func (f *Facade) UpdateProject(ctx context.Context, id string, patch model.ProjectPatch) (model.Project, error) {
	var resp projectResponse
	err := f.authed(ctx, http.MethodPut, "/projects/"+id, patch, &resp)
	if err == nil {
		return resp.Project, nil
	}
	return f.local.UpdateProject(ctx, id, patch)
}

// DeleteProject removes the identified record. Both paths succeed even
// when nothing matched.
func (f *Facade) DeleteProject(ctx context.Context, id string) (bool, error) {
	var resp successResponse
	err := f.authed(ctx, http.MethodDelete, "/projects/"+id, nil, &resp)
	if err == nil {
		return true, nil
	}
	if err := f.local.DeleteProject(ctx, id); err != nil {
		return false, err
	}
	return true, nil
}

// authed issues a mutating call carrying the bearer token from the last
// successful remote login, when one exists.
func (f *Facade) authed(ctx context.Context, method, path string, body, out any) error {
	f.mu.Lock()
	token := f.token
	f.mu.Unlock()
	if token != "" {
		ctx = remote.WithBearerToken(ctx, token)
	}
	return f.remote.Do(ctx, method, path, body, out, 0)
}
