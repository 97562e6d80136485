package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/urex-bootcamp/internal/domain/entity"
	"github.com/oksasatya/urex-bootcamp/internal/domain/repository"
)

const registrationColumns = `id, full_name, last_name, to_char(date_of_birth, 'YYYY-MM-DD'), major, department,
		campus, programming_knowledge, programming_goals, created_at`

type RegistrationRepository struct {
	pool *pgxpool.Pool
}

func NewRegistrationRepository(pool *pgxpool.Pool) *RegistrationRepository {
	return &RegistrationRepository{pool: pool}
}

func (r *RegistrationRepository) Create(ctx context.Context, reg *entity.Registration) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO registrations (full_name, last_name, date_of_birth, major, department, campus,
			programming_knowledge, programming_goals)
		VALUES ($1, $2, $3::date, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`, reg.FullName, reg.LastName, reg.DateOfBirth, reg.Major, reg.Department, reg.Campus,
		reg.ProgrammingKnowledge, reg.ProgrammingGoals)

	return row.Scan(&reg.ID, &reg.CreatedAt)
}

func (r *RegistrationRepository) List(ctx context.Context) ([]entity.Registration, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+registrationColumns+`
		FROM registrations
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	return collectRegistrations(rows)
}

func (r *RegistrationRepository) Page(ctx context.Context, limit, offset int) ([]entity.Registration, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+registrationColumns+`
		FROM registrations
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	return collectRegistrations(rows)
}

func (r *RegistrationRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM registrations`).Scan(&n)
	return n, err
}

func collectRegistrations(rows pgx.Rows) ([]entity.Registration, error) {
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.Registration, error) {
		var reg entity.Registration
		err := row.Scan(&reg.ID, &reg.FullName, &reg.LastName, &reg.DateOfBirth, &reg.Major, &reg.Department,
			&reg.Campus, &reg.ProgrammingKnowledge, &reg.ProgrammingGoals, &reg.CreatedAt)
		return reg, err
	})
}

var _ repository.RegistrationRepository = (*RegistrationRepository)(nil)
