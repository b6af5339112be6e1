// Package portfolio applies the site's data operations against a local
// keyed store. The HTTP handlers run it over the server database; the data
// access facade runs a second instance over the client's fallback store,
// so degraded mode behaves exactly like the real backend.
package portfolio

import (
	"context"
	"crypto/subtle"
	"errors"
	"strconv"
	"sync"
	"time"

	model "github.com/adityanegi/portfolio/backend/internal/model/portfolio"
	"github.com/adityanegi/portfolio/backend/internal/store"
)

var ErrProjectNotFound = errors.New("project not found")

// Service owns the mutable portfolio state kept in a store.Store plus the
// static read-only profile data that seeds it.
type Service struct {
	store   store.Store
	profile model.ProfileData
	secret  string

	mu     sync.Mutex
	lastID int64
}

// NewService wires a service over the given store. secret gates the admin
// capability; it is compared in constant time.
func NewService(st store.Store, profile model.ProfileData, secret string) *Service {
	return &Service{store: st, profile: profile, secret: secret}
}

// Profile returns the static reference dataset.
func (s *Service) Profile() model.ProfileData {
	return s.profile
}

// Experience returns the static work history. It is never cached in the
// store; the profile is the single source.
func (s *Service) Experience() []model.Experience {
	return append([]model.Experience(nil), s.profile.Experience...)
}

// Skills returns the static skill categories.
func (s *Service) Skills() []model.SkillCategory {
	return append([]model.SkillCategory(nil), s.profile.Skills...)
}

// Projects returns the stored project collection, seeding it from the
// profile on first access.
func (s *Service) Projects(_ context.Context) ([]model.Project, error) {
	var projects []model.Project
	if err := s.store.Get(store.KeyProjects, s.profile.Projects, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// CreateProject assigns an identifier, prepends the record to the
// collection and persists it.
func (s *Service) CreateProject(ctx context.Context, draft model.ProjectDraft) (model.Project, error) {
	projects, err := s.Projects(ctx)
	if err != nil {
		return model.Project{}, err
	}

	created := model.Project{
		ID:          s.nextID(),
		Title:       draft.Title,
		Description: draft.Description,
		Tags:        draft.Tags,
		Date:        draft.Date,
		Link:        draft.Link,
	}

	updated := append([]model.Project{created}, projects...)
	if err := s.store.Set(store.KeyProjects, updated); err != nil {
		return model.Project{}, err
	}
	return created, nil
}

// UpdateProject merges patch over the record with the given identifier and
// persists the collection. ErrProjectNotFound is returned when no record
// matches; the stored collection is left untouched.
func (s *Service) UpdateProject(ctx context.Context, id string, patch model.ProjectPatch) (model.Project, error) {
	projects, err := s.Projects(ctx)
	if err != nil {
		return model.Project{}, err
	}

	for i, project := range projects {
		if project.ID != id {
			continue
		}
		merged := patch.Apply(project)
		projects[i] = merged
		if err := s.store.Set(store.KeyProjects, projects); err != nil {
			return model.Project{}, err
		}
		return merged, nil
	}
	return model.Project{}, ErrProjectNotFound
}

// DeleteProject removes any record with the given identifier. Deleting an
// absent record is not an error; the operation is idempotent.
func (s *Service) DeleteProject(ctx context.Context, id string) error {
	projects, err := s.Projects(ctx)
	if err != nil {
		return err
	}

	filtered := projects[:0]
	for _, project := range projects {
		if project.ID != id {
			filtered = append(filtered, project)
		}
	}
	return s.store.Set(store.KeyProjects, filtered)
}

// VisitorCount returns the persisted counter, seeding the baseline on
// first access.
func (s *Service) VisitorCount(_ context.Context) (int, error) {
	var count int
	if err := s.store.Get(store.KeyVisitors, model.VisitorBaseline, &count); err != nil {
		return 0, err
	}
	return count, nil
}

// IncrementVisitors bumps the counter by exactly one and returns the
// post-increment value.
func (s *Service) IncrementVisitors(ctx context.Context) (int, error) {
	count, err := s.VisitorCount(ctx)
	if err != nil {
		return 0, err
	}
	count++
	if err := s.store.Set(store.KeyVisitors, count); err != nil {
		return 0, err
	}
	return count, nil
}

// CheckAdminSecret reports whether password matches the configured admin
// secret, comparing in constant time.
func (s *Service) CheckAdminSecret(password string) bool {
	return subtle.ConstantTimeCompare([]byte(password), []byte(s.secret)) == 1
}

// nextID produces a millisecond-timestamp identifier, nudged forward when
// two creations land in the same millisecond.
func (s *Service) nextID() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := time.Now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return strconv.FormatInt(id, 10)
}
