package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/iliyamo/campsite-reservation/internal/model"
)

// mysqlDuplicateEntry is the server error raised when an insert violates a
// unique key.  The reservations table keys start_date and end_date uniquely,
// so a duplicate entry means another stay already claims one of the
// boundary days.
const mysqlDuplicateEntry = 1062

// ReservationRepo provides CRUD access to the reservations table.  It is
// the durable store of confirmed stays and the last line of defense
// against overlapping bookings: every write runs inside a transaction
// that locks the overlapping date range with SELECT ... FOR UPDATE before
// inserting, and the unique keys on the date columns back that lock up.
// All timestamps are stored in UTC.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// overlapWhere matches rows whose closed range [start_date, end_date]
// intersects the candidate range: neither stay lies entirely before the
// other.  Sharing a single boundary day counts, and a stay fully contained
// inside a longer one is caught from either side.  The placeholders bind
// the candidate's end and start, in that order.  Mirrors the availability
// query so the store and the read path agree on what "overlap" means.
const overlapWhere = `(start_date <= ? AND end_date >= ?)`

// FindByID loads a single reservation by uid.  Returns ErrNotFound when no
// row exists.
func (r *ReservationRepo) FindByID(ctx context.Context, uid string) (*model.Reservation, error) {
	const q = `SELECT uid, start_date, end_date, booking_date, email, full_name
               FROM reservations WHERE uid = ?`
	var res model.Reservation
	err := r.db.QueryRowContext(ctx, q, uid).Scan(
		&res.UID, &res.StartDate, &res.EndDate, &res.BookingDate, &res.Email, &res.FullName,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// FindOverlapping returns every reservation whose date range overlaps the
// closed interval [start, end].  When excludeUID is non-empty that
// reservation is left out, so a record under update is not reported as
// conflicting with itself.  The result carries no ordering guarantee.
func (r *ReservationRepo) FindOverlapping(ctx context.Context, start, end time.Time, excludeUID string) ([]model.Reservation, error) {
	q := `SELECT uid, start_date, end_date, booking_date, email, full_name
          FROM reservations WHERE (` + overlapWhere + `)`
	args := []interface{}{fmtDate(end), fmtDate(start)}
	if excludeUID != "" {
		q += ` AND uid <> ?`
		args = append(args, excludeUID)
	}
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Reservation
	for rows.Next() {
		var res model.Reservation
		if err := rows.Scan(&res.UID, &res.StartDate, &res.EndDate, &res.BookingDate, &res.Email, &res.FullName); err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Create persists a new reservation.  The overlap check and the insert run
// in one transaction: the range query locks any overlapping rows (and the
// index gap when there are none), so two concurrent creates for the same
// window serialize here and exactly one of them commits.  Returns
// ErrConflict when the range is already taken.
func (r *ReservationRepo) Create(ctx context.Context, res *model.Reservation) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if err := lockOverlapping(ctx, tx, res.StartDate, res.EndDate, ""); err != nil {
		return err
	}
	const ins = `INSERT INTO reservations (uid, start_date, end_date, booking_date, email, full_name)
                 VALUES (?, ?, ?, ?, ?, ?)`
	if _, err := tx.ExecContext(ctx, ins,
		res.UID, fmtDate(res.StartDate), fmtDate(res.EndDate), fmtDate(res.BookingDate),
		res.Email, res.FullName,
	); err != nil {
		return translateDuplicate(err)
	}
	if err := tx.Commit(); err != nil {
		return translateDuplicate(err)
	}
	committed = true
	return nil
}

// Update replaces every mutable column of an existing reservation.  The
// record under update is excluded from its own overlap check.  Returns
// ErrNotFound when the uid does not exist and ErrConflict when the new
// range collides with another reservation.
func (r *ReservationRepo) Update(ctx context.Context, res *model.Reservation) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if err := lockOverlapping(ctx, tx, res.StartDate, res.EndDate, res.UID); err != nil {
		return err
	}
	const upd = `UPDATE reservations
                 SET start_date = ?, end_date = ?, email = ?, full_name = ?
                 WHERE uid = ?`
	result, err := tx.ExecContext(ctx, upd,
		fmtDate(res.StartDate), fmtDate(res.EndDate), res.Email, res.FullName, res.UID,
	)
	if err != nil {
		return translateDuplicate(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		// Distinguish a missing row from an update that changed nothing.
		var one int
		if err := tx.QueryRowContext(ctx, `SELECT 1 FROM reservations WHERE uid = ?`, res.UID).Scan(&one); errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		} else if err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return translateDuplicate(err)
	}
	committed = true
	return nil
}

// Delete removes the reservation with the given uid.  Returns ErrNotFound
// when no row was deleted.
func (r *ReservationRepo) Delete(ctx context.Context, uid string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM reservations WHERE uid = ?`, uid)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// lockOverlapping counts reservations overlapping [start, end] under a
// FOR UPDATE lock within the given transaction.  A non-zero count aborts
// the write with ErrConflict before any row is touched.
func lockOverlapping(ctx context.Context, tx *sql.Tx, start, end time.Time, excludeUID string) error {
	q := `SELECT COUNT(*) FROM reservations WHERE (` + overlapWhere + `)`
	args := []interface{}{fmtDate(end), fmtDate(start)}
	if excludeUID != "" {
		q += ` AND uid <> ?`
		args = append(args, excludeUID)
	}
	q += ` FOR UPDATE`
	var count int64
	if err := tx.QueryRowContext(ctx, q, args...).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return ErrConflict
	}
	return nil
}

// translateDuplicate maps a unique-key violation on the date columns to
// ErrConflict and passes every other error through untouched.
func translateDuplicate(err error) error {
	var me *mysql.MySQLError
	if errors.As(err, &me) && me.Number == mysqlDuplicateEntry {
		return ErrConflict
	}
	return err
}

// fmtDate renders a timestamp in the DATETIME format the schema expects.
func fmtDate(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04:05")
}
