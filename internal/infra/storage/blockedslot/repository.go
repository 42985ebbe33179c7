package blockedslot

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SCB-BookingService/internal/domain"
	"github.com/m04kA/SCB-BookingService/pkg/dbmetrics"
	"github.com/m04kA/SCB-BookingService/pkg/psqlbuilder"
)

var blockedSlotColumns = []string{
	"id",
	"court_id",
	"facility_id",
	"block_date",
	"start_time",
	"end_time",
	"reason",
	"created_at",
}

// Repository репозиторий для работы с блокировками слотов
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория блокировок
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает блокировку слота
func (r *Repository) Create(ctx context.Context, slot *domain.BlockedSlot) (*domain.BlockedSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("blocked_slots").
		Columns(
			"court_id",
			"facility_id",
			"block_date",
			"start_time",
			"end_time",
			"reason",
		).
		Values(
			slot.CourtID,
			slot.FacilityID,
			slot.BlockDate,
			slot.StartTime,
			slot.EndTime,
			slot.Reason,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&slot.ID,
		&createdAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	slot.CreatedAt = createdAt.Time

	return slot, nil
}

// GetByID получает блокировку по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.BlockedSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(blockedSlotColumns...).
		From("blocked_slots").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var slot domain.BlockedSlot
	var createdAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&slot.ID,
		&slot.CourtID,
		&slot.FacilityID,
		&slot.BlockDate,
		&slot.StartTime,
		&slot.EndTime,
		&slot.Reason,
		&createdAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrBlockedSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan blocked slot: %v", ErrScanRow, err)
	}

	slot.CreatedAt = createdAt.Time

	return &slot, nil
}

// GetByCourtAndDate получает блокировки корта на дату, по возрастанию времени
func (r *Repository) GetByCourtAndDate(ctx context.Context, courtID int64, date time.Time) ([]*domain.BlockedSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(blockedSlotColumns...).
		From("blocked_slots").
		Where(squirrel.Eq{"court_id": courtID}).
		Where(squirrel.Eq{"block_date": date}).
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByCourtAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCourtAndDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]*domain.BlockedSlot, 0)
	for rows.Next() {
		var slot domain.BlockedSlot
		var createdAt sql.NullTime

		err := rows.Scan(
			&slot.ID,
			&slot.CourtID,
			&slot.FacilityID,
			&slot.BlockDate,
			&slot.StartTime,
			&slot.EndTime,
			&slot.Reason,
			&createdAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: GetByCourtAndDate - scan row: %v", ErrScanRow, err)
		}

		slot.CreatedAt = createdAt.Time
		slots = append(slots, &slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByCourtAndDate - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}

// Delete удаляет блокировку слота
// Блокировки - не бронирования: у них нет жизненного цикла со статусами,
// владелец создает и удаляет их физически
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("blocked_slots").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBlockedSlotNotFound
	}

	return nil
}
