package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/urex-bootcamp/internal/domain/entity"
	"github.com/oksasatya/urex-bootcamp/internal/domain/repository"
)

type AdminRepository struct {
	pool *pgxpool.Pool
}

func NewAdminRepository(pool *pgxpool.Pool) *AdminRepository {
	return &AdminRepository{pool: pool}
}

// GetByUsername matches the username exactly (case-sensitive).
func (r *AdminRepository) GetByUsername(ctx context.Context, username string) (*entity.Admin, error) {
	return r.getOne(ctx, `
		SELECT id, username, password_hash, created_at, updated_at
		FROM admins
		WHERE username = $1
	`, username)
}

func (r *AdminRepository) GetByID(ctx context.Context, id string) (*entity.Admin, error) {
	return r.getOne(ctx, `
		SELECT id, username, password_hash, created_at, updated_at
		FROM admins
		WHERE id = $1
	`, id)
}

func (r *AdminRepository) getOne(ctx context.Context, q string, arg any) (*entity.Admin, error) {
	a := &entity.Admin{}
	if err := r.pool.QueryRow(ctx, q, arg).Scan(&a.ID, &a.Username, &a.PasswordHash, &a.CreatedAt, &a.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

func (r *AdminRepository) Upsert(ctx context.Context, a *entity.Admin) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO admins (username, password_hash)
		VALUES ($1, $2)
		ON CONFLICT (username) DO UPDATE SET password_hash = EXCLUDED.password_hash, updated_at = now()
		RETURNING id, created_at, updated_at
	`, a.Username, a.PasswordHash)

	return row.Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
}

func (r *AdminRepository) InsertAudit(ctx context.Context, e entity.AuditEntry) error {
	md, err := json.Marshal(e.Metadata)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO auth_audit_logs (admin_id, username, action, ip, user_agent, metadata)
		VALUES (NULLIF($1, '')::uuid, NULLIF($2, ''), $3, NULLIF($4, ''), NULLIF($5, ''), $6)
	`, e.AdminID, e.Username, e.Action, e.IP, e.UserAgent, md)
	return err
}

var _ repository.AdminRepository = (*AdminRepository)(nil)
