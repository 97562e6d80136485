package repository

//go:generate mockgen -source=admin_repository.go -destination=mocks/admin_repository_mock.go -package=mocks

import (
	"context"

	"github.com/oksasatya/urex-bootcamp/internal/domain/entity"
)

// AdminRepository defines the interface for admin account operations.
type AdminRepository interface {
	GetByUsername(ctx context.Context, username string) (*entity.Admin, error)
	GetByID(ctx context.Context, id string) (*entity.Admin, error)
	// Upsert creates the admin or replaces its password hash.
	Upsert(ctx context.Context, a *entity.Admin) error
	InsertAudit(ctx context.Context, e entity.AuditEntry) error
}
