package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SCB-BookingService/internal/domain"
	"github.com/m04kA/SCB-BookingService/pkg/dbmetrics"
	"github.com/m04kA/SCB-BookingService/pkg/psqlbuilder"
)

// pgUniqueViolation код ошибки Postgres при нарушении уникального индекса
const pgUniqueViolation = "23505"

var bookingColumns = []string{
	"id",
	"user_id",
	"facility_id",
	"court_id",
	"booking_date",
	"start_time",
	"end_time",
	"amount",
	"status",
	"payment_id",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreateBatch создает набор бронирований (по одному на каждый час запроса)
// Должен вызываться внутри транзакции: либо все записи вставляются, либо ни одной.
// Инвариант "не больше одного активного бронирования на (court_id, booking_date,
// start_time)" обеспечивает частичный уникальный индекс uq_bookings_active_slot;
// его нарушение конвертируется в ErrSlotTaken
func (r *Repository) CreateBatch(ctx context.Context, bookings []*domain.Booking) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	for _, b := range bookings {
		query, args, err := psqlbuilder.Insert("bookings").
			Columns(
				"user_id",
				"facility_id",
				"court_id",
				"booking_date",
				"start_time",
				"end_time",
				"amount",
				"status",
			).
			Values(
				b.UserID,
				b.FacilityID,
				b.CourtID,
				b.BookingDate,
				b.StartTime,
				b.EndTime,
				b.Amount,
				b.Status,
			).
			Suffix("RETURNING id, created_at, updated_at").
			ToSql()

		if err != nil {
			return nil, fmt.Errorf("%w: CreateBatch - build insert query: %v", ErrBuildQuery, err)
		}

		var createdAt, updatedAt sql.NullTime
		err = executor.QueryRowContext(ctx, query, args...).Scan(
			&b.ID,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			if isUniqueViolation(err) {
				return nil, fmt.Errorf("%w: court=%d date=%s start=%s",
					ErrSlotTaken, b.CourtID, b.BookingDate.Format(domain.DateFormat), b.StartTime)
			}
			return nil, fmt.Errorf("%w: CreateBatch - execute insert: %v", ErrExecQuery, err)
		}

		b.CreatedAt = createdAt.Time
		b.UpdatedAt = updatedAt.Time
	}

	return bookings, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	booking, err := scanBooking(row)
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetByIDs получает бронирования по списку ID
// Внутри транзакции блокирует строки (FOR UPDATE) для атомарного перехода статуса
func (r *Repository) GetByIDs(ctx context.Context, ids []int64) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": ids}).
		OrderBy("id ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetActiveByCourtAndDate получает активные (pending/confirmed) бронирования
// корта на дату, отсортированные по времени начала.
// Внутри транзакции добавляет FOR UPDATE - используется usecase'ом создания
// бронирования для повторной проверки конфликтов под блокировкой
func (r *Repository) GetActiveByCourtAndDate(ctx context.Context, courtID int64, date time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	activeStatuses := make([]string, len(domain.ActiveStatuses))
	for i, s := range domain.ActiveStatuses {
		activeStatuses[i] = string(s)
	}

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"court_id": courtID}).
		Where(squirrel.Eq{"booking_date": date}).
		Where(squirrel.Eq{"status": activeStatuses}).
		OrderBy("start_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByCourtAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByCourtAndDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetByUserID получает список бронирований пользователя
// Опционально фильтрует по статусу
func (r *Repository) GetByUserID(ctx context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("booking_date DESC, start_time DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// ConfirmByIDs переводит бронирования pending -> confirmed и проставляет payment_id
// Обновляются только строки запрашивающего пользователя в статусе pending;
// возвращает количество обновленных строк. Вызывающий сравнивает его с len(ids)
// и откатывает транзакцию при частичном совпадении (all-or-nothing)
func (r *Repository) ConfirmByIDs(ctx context.Context, ids []int64, userID int64, paymentID string) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusConfirmed).
		Set("payment_id", paymentID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": ids}).
		Where(squirrel.Eq{"user_id": userID}).
		Where(squirrel.Eq{"status": domain.StatusPending}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: ConfirmByIDs - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: ConfirmByIDs - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: ConfirmByIDs - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

// CancelPendingByIDs переводит pending-бронирования в cancelled (soft-cancel)
// Уже отмененные и подтвержденные записи не трогает, поэтому повторный вызов
// на тех же ID - no-op. Используется при откате оплаты
func (r *Repository) CancelPendingByIDs(ctx context.Context, ids []int64, reason string) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": ids}).
		Where(squirrel.Eq{"status": domain.StatusPending}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CancelPendingByIDs - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: CancelPendingByIDs - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: CancelPendingByIDs - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

// CancelIfStatus переводит бронирование в cancelled по схеме compare-and-swap:
// строка обновляется только если текущий статус равен expected.
// Защищает пользовательскую отмену от гонки с одновременным подтверждением оплаты
func (r *Repository) CancelIfStatus(ctx context.Context, id int64, expected domain.BookingStatus, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": expected}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: CancelIfStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: CancelIfStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: CancelIfStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrStatusConflict
	}

	return nil
}

// ExpireStalePending отменяет pending-бронирования, созданные раньше cutoff
// Используется фоновой зачисткой брошенных оплат
func (r *Repository) ExpireStalePending(ctx context.Context, cutoff time.Time, reason string) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"status": domain.StatusPending}).
		Where(squirrel.Lt{"created_at": cutoff}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: ExpireStalePending - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: ExpireStalePending - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: ExpireStalePending - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

// isUniqueViolation проверяет, что ошибка - нарушение уникального индекса
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pgUniqueViolation
	}
	return false
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanBooking сканирует одну строку в модель бронирования
func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.UserID,
		&booking.FacilityID,
		&booking.CourtID,
		&booking.BookingDate,
		&booking.StartTime,
		&booking.EndTime,
		&booking.Amount,
		&booking.Status,
		&booking.PaymentID,
		&booking.CancellationReason,
		&booking.CancelledAt,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, err
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
