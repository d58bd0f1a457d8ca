package repository

import (
	"context"
	"errors"

	"github.com/groupsix/gymbook/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PGScheduleRepository struct {
	db *pgxpool.Pool
}

func NewScheduleRepository(db *pgxpool.Pool) ScheduleRepository {
	return &PGScheduleRepository{db: db}
}

func (r *PGScheduleRepository) Create(ctx context.Context, s *domain.Session) error {
	err := r.db.QueryRow(ctx, `INSERT INTO sessions (name, date, time, capacity, booked_count)
		VALUES ($1, $2, $3, $4, 0)
		RETURNING id, booked_count, created_at`, s.Name, s.Date, s.Time, s.Capacity).
		Scan(&s.ID, &s.BookedCount, &s.CreatedAt)
	return domain.WrapStorage("insert session", err)
}

func (r *PGScheduleRepository) GetByID(ctx context.Context, id int64) (*domain.Session, error) {
	row := r.db.QueryRow(ctx, `SELECT id, name, date, time, capacity, booked_count, created_at FROM sessions WHERE id=$1`, id)
	var s domain.Session
	if err := row.Scan(&s.ID, &s.Name, &s.Date, &s.Time, &s.Capacity, &s.BookedCount, &s.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, domain.WrapStorage("get session", err)
	}
	return &s, nil
}

func (r *PGScheduleRepository) List(ctx context.Context) ([]domain.Session, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, date, time, capacity, booked_count, created_at FROM sessions ORDER BY date, time`)
	if err != nil {
		return nil, domain.WrapStorage("list sessions", err)
	}
	defer rows.Close()
	return scanSessions(rows)
}

func (r *PGScheduleRepository) ListByDateRange(ctx context.Context, start, end string) ([]domain.Session, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, date, time, capacity, booked_count, created_at FROM sessions
		WHERE date >= $1 AND date <= $2
		ORDER BY date, time`, start, end)
	if err != nil {
		return nil, domain.WrapStorage("list sessions by date", err)
	}
	defer rows.Close()
	return scanSessions(rows)
}

// Update shares the guard shape with Book: a conditional UPDATE whose
// affected-row count tells full/missing apart, so a shrink can never
// race a concurrent booking past booked_count.
func (r *PGScheduleRepository) Update(ctx context.Context, s *domain.Session) error {
	res, err := r.db.Exec(ctx, `UPDATE sessions SET name=$1, date=$2, time=$3, capacity=$4
		WHERE id=$5 AND booked_count <= $4`, s.Name, s.Date, s.Time, s.Capacity, s.ID)
	if err != nil {
		return domain.WrapStorage("update session", err)
	}
	if res.RowsAffected() == 0 {
		var exists bool
		if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM sessions WHERE id=$1)`, s.ID).Scan(&exists); err != nil {
			return domain.WrapStorage("update session", err)
		}
		if !exists {
			return domain.ErrSessionNotFound
		}
		return domain.ErrCapacityTooLow
	}
	return nil
}

func (r *PGScheduleRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return domain.WrapStorage("delete session", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM bookings WHERE session_id=$1`, id); err != nil {
		return domain.WrapStorage("delete session bookings", err)
	}
	res, err := tx.Exec(ctx, `DELETE FROM sessions WHERE id=$1`, id)
	if err != nil {
		return domain.WrapStorage("delete session", err)
	}
	if res.RowsAffected() == 0 {
		return domain.ErrSessionNotFound
	}
	return domain.WrapStorage("delete session", tx.Commit(ctx))
}

func (r *PGScheduleRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM sessions`).Scan(&n); err != nil {
		return 0, domain.WrapStorage("count sessions", err)
	}
	return n, nil
}

func scanSessions(rows pgx.Rows) ([]domain.Session, error) {
	sessions := make([]domain.Session, 0)
	for rows.Next() {
		var s domain.Session
		if err := rows.Scan(&s.ID, &s.Name, &s.Date, &s.Time, &s.Capacity, &s.BookedCount, &s.CreatedAt); err != nil {
			return nil, domain.WrapStorage("scan session", err)
		}
		sessions = append(sessions, s)
	}
	return sessions, domain.WrapStorage("scan sessions", rows.Err())
}

var _ ScheduleRepository = (*PGScheduleRepository)(nil)
