package repository

import (
	"context"

	"github.com/groupsix/gymbook/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PGAdminRepository struct {
	db *pgxpool.Pool
}

func NewAdminRepository(db *pgxpool.Pool) AdminRepository {
	return &PGAdminRepository{db: db}
}

func (r *PGAdminRepository) Verify(ctx context.Context, username, password string) (bool, error) {
	var ok bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM admins WHERE username=$1 AND password=$2)`, username, password).Scan(&ok)
	if err != nil {
		return false, domain.WrapStorage("verify admin", err)
	}
	return ok, nil
}

func (r *PGAdminRepository) Create(ctx context.Context, username, password string) error {
	_, err := r.db.Exec(ctx, `INSERT INTO admins (username, password) VALUES ($1, $2)`, username, password)
	return domain.WrapStorage("insert admin", err)
}

func (r *PGAdminRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM admins`).Scan(&n); err != nil {
		return 0, domain.WrapStorage("count admins", err)
	}
	return n, nil
}

var _ AdminRepository = (*PGAdminRepository)(nil)
