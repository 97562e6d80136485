package repository

//go:generate mockgen -source=registration_repository.go -destination=mocks/registration_repository_mock.go -package=mocks

import (
	"context"

	"github.com/oksasatya/urex-bootcamp/internal/domain/entity"
)

// RegistrationRepository is the record store for registrations.
// There is intentionally no update or delete.
type RegistrationRepository interface {
	Create(ctx context.Context, r *entity.Registration) error
	// List returns every registration, newest first.
	List(ctx context.Context) ([]entity.Registration, error)
	// Page returns at most limit registrations after skipping offset, newest first.
	Page(ctx context.Context, limit, offset int) ([]entity.Registration, error)
	Count(ctx context.Context) (int, error)
}
