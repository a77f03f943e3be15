package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sidequesthq/sidequest/internal/application/ports"
	"github.com/sidequesthq/sidequest/internal/domain"
	"github.com/sidequesthq/sidequest/internal/infrastructure/persistence/db"
)

const (
	createProjectSQL = `
		INSERT INTO projects (id, user_id, title, status, reason, repo_url, started_at, ended_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	getProjectSQL = `
		SELECT id, user_id, title, status, reason, repo_url, started_at, ended_at, created_at, updated_at
		FROM projects WHERE id = $1 AND user_id = $2`
	listProjectsSQL = `
		SELECT id, user_id, title, status, reason, repo_url, started_at, ended_at, created_at, updated_at
		FROM projects WHERE user_id = $1 ORDER BY started_at DESC`
	listProjectsByStatusSQL = `
		SELECT id, user_id, title, status, reason, repo_url, started_at, ended_at, created_at, updated_at
		FROM projects WHERE user_id = $1 AND status = $2 ORDER BY started_at DESC`
	updateProjectSQL = `
		UPDATE projects
		SET title = $3, status = $4, reason = $5, repo_url = $6, ended_at = $7, updated_at = $8
		WHERE id = $1 AND user_id = $2`
	deleteProjectSQL = `
		DELETE FROM projects WHERE id = $1 AND user_id = $2`
)

// ProjectRepository persists projects. Every statement carries the
// `user_id = $owner` predicate, so a wrong-owner id behaves exactly like a
// missing row and ownership can never be bypassed by a handler bug.
type ProjectRepository struct {
	pool *pgxpool.Pool
}

func NewProjectRepository(pool *pgxpool.Pool) *ProjectRepository {
	return &ProjectRepository{pool: pool}
}

func (r *ProjectRepository) Create(ctx context.Context, project *domain.Project) error {
	_, err := r.pool.Exec(ctx, createProjectSQL,
		project.ID.UUID, project.UserID.UUID, project.Title, string(project.Status),
		nullable(project.Reason), nullable(project.RepoURL),
		project.StartedAt, project.EndedAt, project.CreatedAt, project.UpdatedAt)
	return err
}

func (r *ProjectRepository) GetByID(ctx context.Context, owner domain.UserID, id domain.ProjectID) (*domain.Project, error) {
	row := r.pool.QueryRow(ctx, getProjectSQL, id.UUID, owner.UUID)
	p, err := scanProject(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}

func (r *ProjectRepository) List(ctx context.Context, owner domain.UserID, status *domain.ProjectStatus) ([]*domain.Project, error) {
	var rows pgx.Rows
	var err error
	if status != nil {
		rows, err = r.pool.Query(ctx, listProjectsByStatusSQL, owner.UUID, string(*status))
	} else {
		rows, err = r.pool.Query(ctx, listProjectsSQL, owner.UUID)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []*domain.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func (r *ProjectRepository) Update(ctx context.Context, project *domain.Project) (bool, error) {
	tag, err := r.pool.Exec(ctx, updateProjectSQL,
		project.ID.UUID, project.UserID.UUID, project.Title, string(project.Status),
		nullable(project.Reason), nullable(project.RepoURL),
		project.EndedAt, project.UpdatedAt)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *ProjectRepository) Delete(ctx context.Context, owner domain.UserID, id domain.ProjectID) (bool, error) {
	tag, err := r.pool.Exec(ctx, deleteProjectSQL, id.UUID, owner.UUID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func scanProject(row pgx.Row) (*domain.Project, error) {
	var p db.Project
	err := row.Scan(&p.ID, &p.UserID, &p.Title, &p.Status, &p.Reason, &p.RepoURL,
		&p.StartedAt, &p.EndedAt, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return dbProjectToDomain(p), nil
}

func dbProjectToDomain(p db.Project) *domain.Project {
	out := &domain.Project{
		ID:        domain.NewProjectID(p.ID),
		UserID:    domain.NewUserID(p.UserID),
		Title:     p.Title,
		Status:    domain.ProjectStatus(p.Status),
		StartedAt: p.StartedAt,
		EndedAt:   p.EndedAt,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	if p.Reason != nil {
		out.Reason = *p.Reason
	}
	if p.RepoURL != nil {
		out.RepoURL = *p.RepoURL
	}
	return out
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Ensure ProjectRepository implements ports.ProjectRepository.
var _ ports.ProjectRepository = (*ProjectRepository)(nil)
