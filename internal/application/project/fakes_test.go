package project

import (
	"context"
	"sync"

	"github.com/sidequesthq/sidequest/internal/domain"
)

type memProjectRepo struct {
	mu       sync.Mutex
	projects map[domain.ProjectID]*domain.Project
}

func newMemProjectRepo() *memProjectRepo {
	return &memProjectRepo{projects: map[domain.ProjectID]*domain.Project{}}
}

func (r *memProjectRepo) Create(_ context.Context, p *domain.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.projects[p.ID] = &cp
	return nil
}

func (r *memProjectRepo) GetByID(_ context.Context, owner domain.UserID, id domain.ProjectID) (*domain.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.projects[id]
	if !ok || p.UserID != owner {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memProjectRepo) List(_ context.Context, owner domain.UserID, status *domain.ProjectStatus) ([]*domain.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Project
	for _, p := range r.projects {
		if p.UserID != owner {
			continue
		}
		if status != nil && p.Status != *status {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memProjectRepo) Update(_ context.Context, p *domain.Project) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.projects[p.ID]
	if !ok || existing.UserID != p.UserID {
		return false, nil
	}
	cp := *p
	r.projects[p.ID] = &cp
	return true, nil
}

func (r *memProjectRepo) Delete(_ context.Context, owner domain.UserID, id domain.ProjectID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.projects[id]
	if !ok || p.UserID != owner {
		return false, nil
	}
	delete(r.projects, id)
	return true, nil
}

type recordingEnqueuer struct {
	refreshes [][2]string // projectID, repoURL
}

func (e *recordingEnqueuer) EnqueueRepoRefresh(_ context.Context, projectID, repoURL string) error {
	e.refreshes = append(e.refreshes, [2]string{projectID, repoURL})
	return nil
}
