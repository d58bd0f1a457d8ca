package repository

import (
	"context"

	"github.com/groupsix/gymbook/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

// Book runs the capacity check and the insert in one transaction. The
// conditional UPDATE re-reads booked_count under row lock, so two
// concurrent callers can never both pass the check on the last seat.
func (r *PGBookingRepository) Book(ctx context.Context, b *domain.Booking) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return domain.WrapStorage("begin booking", err)
	}
	defer tx.Rollback(ctx)

	res, err := tx.Exec(ctx, `UPDATE sessions SET booked_count = booked_count + 1
		WHERE id=$1 AND booked_count < capacity`, b.SessionID)
	if err != nil {
		return domain.WrapStorage("reserve seat", err)
	}
	if res.RowsAffected() == 0 {
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM sessions WHERE id=$1)`, b.SessionID).Scan(&exists); err != nil {
			return domain.WrapStorage("reserve seat", err)
		}
		if !exists {
			return domain.ErrSessionNotFound
		}
		return domain.ErrSessionFull
	}

	if err := tx.QueryRow(ctx, `INSERT INTO bookings (session_id, reference, customer_name, customer_email)
		VALUES ($1, $2, $3, $4)
		RETURNING id, booking_time`, b.SessionID, b.Reference, b.CustomerName, b.CustomerEmail).
		Scan(&b.ID, &b.BookingTime); err != nil {
		return domain.WrapStorage("insert booking", err)
	}

	return domain.WrapStorage("commit booking", tx.Commit(ctx))
}

func (r *PGBookingRepository) ListBySession(ctx context.Context, sessionID int64) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT id, session_id, reference, customer_name, customer_email, booking_time
		FROM bookings WHERE session_id=$1
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

var _ BookingRepository = (*PGBookingRepository)(nil)
