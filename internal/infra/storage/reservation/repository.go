package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/pixel-crew/twinscissors-booking/internal/domain"
	"github.com/pixel-crew/twinscissors-booking/pkg/psqlbuilder"
	"github.com/pixel-crew/twinscissors-booking/pkg/txmanager"
)

// unique_violation: the partial index over active (date, slot) fired
const pqUniqueViolation = "23505"

var reservationColumns = []string{
	"id",
	"service_name",
	"service_price",
	"booking_date",
	"slot",
	"name",
	"phone",
	"email",
	"status",
	"reference",
	"(receipt IS NOT NULL) AS has_receipt",
	"created_at",
	"updated_at",
}

// Repository persists reservations in Postgres
type Repository struct {
	db DBExecutor
}

// NewRepository creates a reservation repository
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create inserts a reservation. When the context carries a serializable
// transaction the insert joins it; the partial unique index over active
// (booking_date, slot) pairs is the final arbiter against concurrent
// commits either way.
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reservations").
		Columns(
			"service_name",
			"service_price",
			"booking_date",
			"slot",
			"name",
			"phone",
			"email",
			"status",
			"reference",
		).
		Values(
			res.ServiceName,
			res.ServicePrice,
			res.Date,
			res.Slot,
			res.Name,
			res.Phone,
			res.Email,
			res.Status,
			res.Reference,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&res.ID, &createdAt, &updatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time
	return res, nil
}

// GetByID fetches one reservation
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	res, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}
	return res, nil
}

// ListAll returns every reservation in insertion order
func (r *Repository) ListAll(ctx context.Context) ([]*domain.Reservation, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListAll - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListAll - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	var result []*domain.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListAll - scan reservation: %v", ErrScanRow, err)
		}
		result = append(result, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListAll - iterate rows: %v", ErrExecQuery, err)
	}
	return result, nil
}

// BookedSlots returns the slot labels held by active reservations on the
// date, in insertion order
func (r *Repository) BookedSlots(ctx context.Context, date string) ([]string, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("slot").
		From("reservations").
		Where(squirrel.Eq{"booking_date": date}).
		Where(squirrel.Eq{"status": domain.ActiveStatuses}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: BookedSlots - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: BookedSlots - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := []string{}
	for rows.Next() {
		var slot string
		if err := rows.Scan(&slot); err != nil {
			return nil, fmt.Errorf("%w: BookedSlots - scan slot: %v", ErrScanRow, err)
		}
		slots = append(slots, slot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: BookedSlots - iterate rows: %v", ErrExecQuery, err)
	}
	return slots, nil
}

// UpdateStatus sets the reservation's status
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("status", status).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "UpdateStatus")
}

// AttachReceipt stores the receipt artifact bytes for the reservation
func (r *Repository) AttachReceipt(ctx context.Context, id int64, artifact []byte, filename string) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("receipt", artifact).
		Set("receipt_filename", filename).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: AttachReceipt - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "AttachReceipt")
}

// Delete removes one reservation
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("reservations").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "Delete")
}

// DeleteAll removes every reservation
func (r *Repository) DeleteAll(ctx context.Context) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("reservations").ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteAll - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: DeleteAll - execute delete: %v", ErrExecQuery, err)
	}
	return nil
}

func (r *Repository) execExpectingRow(ctx context.Context, executor DBExecutor, query string, args []interface{}, op string) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute: %v", ErrExecQuery, op, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - rows affected: %v", ErrExecQuery, op, err)
	}
	if affected == 0 {
		return ErrReservationNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var res domain.Reservation
	var bookingDate time.Time
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&res.ID,
		&res.ServiceName,
		&res.ServicePrice,
		&bookingDate,
		&res.Slot,
		&res.Name,
		&res.Phone,
		&res.Email,
		&res.Status,
		&res.Reference,
		&res.HasReceipt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	res.Date = bookingDate.Format(domain.DateFormat)
	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time
	return &res, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == pqUniqueViolation
}
