package db

import (
	"time"

	"github.com/google/uuid"
)

// Row structs shared by the postgres repositories. Columns mirror the
// migrations under persistence/migrations.

type User struct {
	ID           uuid.UUID
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Project struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Title     string
	Status    string
	Reason    *string
	RepoURL   *string
	StartedAt time.Time
	EndedAt   *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}
