package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/groupsix/gymbook/internal/domain"
)

// SQLiteScheduleRepository is the embedded-store counterpart of
// PGScheduleRepository. Timestamps are assigned in Go because SQLite
// has no timezone-aware now().
type SQLiteScheduleRepository struct {
	db *sql.DB
}

func NewSQLiteScheduleRepository(db *sql.DB) ScheduleRepository {
	return &SQLiteScheduleRepository{db: db}
}

func (r *SQLiteScheduleRepository) Create(ctx context.Context, s *domain.Session) error {
	s.BookedCount = 0
	s.CreatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `INSERT INTO sessions (name, date, time, capacity, booked_count, created_at)
		VALUES (?, ?, ?, ?, 0, ?)`, s.Name, s.Date, s.Time, s.Capacity, s.CreatedAt)
	if err != nil {
		return domain.WrapStorage("insert session", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.WrapStorage("insert session", err)
	}
	s.ID = id
	return nil
}

func (r *SQLiteScheduleRepository) GetByID(ctx context.Context, id int64) (*domain.Session, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, date, time, capacity, booked_count, created_at FROM sessions WHERE id=?`, id)
	var s domain.Session
	if err := row.Scan(&s.ID, &s.Name, &s.Date, &s.Time, &s.Capacity, &s.BookedCount, &s.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, domain.WrapStorage("get session", err)
	}
	return &s, nil
}

func (r *SQLiteScheduleRepository) List(ctx context.Context) ([]domain.Session, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, date, time, capacity, booked_count, created_at FROM sessions ORDER BY date, time`)
	if err != nil {
		return nil, domain.WrapStorage("list sessions", err)
	}
	defer rows.Close()
	return scanSQLSessions(rows)
}

func (r *SQLiteScheduleRepository) ListByDateRange(ctx context.Context, start, end string) ([]domain.Session, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, date, time, capacity, booked_count, created_at FROM sessions
		WHERE date >= ? AND date <= ?
		ORDER BY date, time`, start, end)
	if err != nil {
		return nil, domain.WrapStorage("list sessions by date", err)
	}
	defer rows.Close()
	return scanSQLSessions(rows)
}

func (r *SQLiteScheduleRepository) Update(ctx context.Context, s *domain.Session) error {
	res, err := r.db.ExecContext(ctx, `UPDATE sessions SET name=?, date=?, time=?, capacity=?
		WHERE id=? AND booked_count <= ?`, s.Name, s.Date, s.Time, s.Capacity, s.ID, s.Capacity)
	if err != nil {
		return domain.WrapStorage("update session", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return domain.WrapStorage("update session", err)
	}
	if n == 0 {
		var one int
		err := r.db.QueryRowContext(ctx, `SELECT 1 FROM sessions WHERE id=?`, s.ID).Scan(&one)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrSessionNotFound
		}
		if err != nil {
			return domain.WrapStorage("update session", err)
		}
		return domain.ErrCapacityTooLow
	}
	return nil
}

func (r *SQLiteScheduleRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.WrapStorage("delete session", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM bookings WHERE session_id=?`, id); err != nil {
		return domain.WrapStorage("delete session bookings", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM sessions WHERE id=?`, id)
	if err != nil {
		return domain.WrapStorage("delete session", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return domain.WrapStorage("delete session", err)
	}
	if n == 0 {
		return domain.ErrSessionNotFound
	}
	return domain.WrapStorage("delete session", tx.Commit())
}

func (r *SQLiteScheduleRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sessions`).Scan(&n); err != nil {
		return 0, domain.WrapStorage("count sessions", err)
	}
	return n, nil
}

func scanSQLSessions(rows *sql.Rows) ([]domain.Session, error) {
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

var _ ScheduleRepository = (*SQLiteScheduleRepository)(nil)
