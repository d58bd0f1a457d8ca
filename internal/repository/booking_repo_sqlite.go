package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/groupsix/gymbook/internal/domain"
)

type SQLiteBookingRepository struct {
	db *sql.DB
}

func NewSQLiteBookingRepository(db *sql.DB) BookingRepository {
	return &SQLiteBookingRepository{db: db}
}

// Book mirrors the Postgres implementation: the conditional UPDATE is
// the capacity check, and SQLite's single-writer transaction keeps it
// atomic with the insert.
func (r *SQLiteBookingRepository) Book(ctx context.Context, b *domain.Booking) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.WrapStorage("begin booking", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `UPDATE sessions SET booked_count = booked_count + 1
		WHERE id=? AND booked_count < capacity`, b.SessionID)
	if err != nil {
		return domain.WrapStorage("reserve seat", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return domain.WrapStorage("reserve seat", err)
	}
	if n == 0 {
		var one int
		err := tx.QueryRowContext(ctx, `SELECT 1 FROM sessions WHERE id=?`, b.SessionID).Scan(&one)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrSessionNotFound
		}
		if err != nil {
			return domain.WrapStorage("reserve seat", err)
		}
		return domain.ErrSessionFull
	}

	b.BookingTime = time.Now().UTC()
	ins, err := tx.ExecContext(ctx, `INSERT INTO bookings (session_id, reference, customer_name, customer_email, booking_time)
		VALUES (?, ?, ?, ?, ?)`, b.SessionID, b.Reference, b.CustomerName, b.CustomerEmail, b.BookingTime)
	if err != nil {
		return domain.WrapStorage("insert booking", err)
	}
	id, err := ins.LastInsertId()
	if err != nil {
		return domain.WrapStorage("insert booking", err)
	}
	b.ID = id

	return domain.WrapStorage("commit booking", tx.Commit())
}

func (r *SQLiteBookingRepository) ListBySession(ctx context.Context, sessionID int64) ([]domain.Booking, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, session_id, reference, customer_name, customer_email, booking_time
		FROM bookings WHERE session_id=?
		ORDER BY booking_time DESC, id DESC`, sessionID)
	if err != nil {
		return nil, domain.WrapStorage("list bookings", err)
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		var b domain.Booking
		if err := rows.Scan(&b.ID, &b.SessionID, &b.Reference, &b.CustomerName, &b.CustomerEmail, &b.BookingTime); err != nil {
			return nil, domain.WrapStorage("scan booking", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, domain.WrapStorage("scan bookings", rows.Err())
}

var _ BookingRepository = (*SQLiteBookingRepository)(nil)
