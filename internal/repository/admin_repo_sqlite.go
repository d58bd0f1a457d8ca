package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/groupsix/gymbook/internal/domain"
)

type SQLiteAdminRepository struct {
	db *sql.DB
}

func NewSQLiteAdminRepository(db *sql.DB) AdminRepository {
	return &SQLiteAdminRepository{db: db}
}

func (r *SQLiteAdminRepository) Verify(ctx context.Context, username, password string) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM admins WHERE username=? AND password=?`, username, password).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, domain.WrapStorage("verify admin", err)
	}
	return true, nil
}

func (r *SQLiteAdminRepository) Create(ctx context.Context, username, password string) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO admins (username, password) VALUES (?, ?)`, username, password)
	return domain.WrapStorage("insert admin", err)
}

func (r *SQLiteAdminRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM admins`).Scan(&n); err != nil {
		return 0, domain.WrapStorage("count admins", err)
	}
	return n, nil
}

var _ AdminRepository = (*SQLiteAdminRepository)(nil)
