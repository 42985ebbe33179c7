package paymentorder

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SCB-BookingService/internal/domain"
	"github.com/m04kA/SCB-BookingService/pkg/dbmetrics"
	"github.com/m04kA/SCB-BookingService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с платежными заказами
// Хранит связку заказа провайдера с набором бронирований до верификации
// callback'а и после - для аудита
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория платежных заказов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет созданный у провайдера заказ
func (r *Repository) Create(ctx context.Context, order *domain.PaymentOrder) (*domain.PaymentOrder, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("payment_orders").
		Columns(
			"provider_order_id",
			"receipt",
			"amount",
			"currency",
			"status",
			"booking_ids",
		).
		Values(
			order.ProviderOrderID,
			order.Receipt,
			order.Amount,
			order.Currency,
			order.Status,
			pq.Array(order.BookingIDs),
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&order.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	order.CreatedAt = createdAt.Time
	order.UpdatedAt = updatedAt.Time

	return order, nil
}

// GetByProviderOrderID получает заказ по идентификатору заказа у провайдера
func (r *Repository) GetByProviderOrderID(ctx context.Context, providerOrderID string) (*domain.PaymentOrder, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"provider_order_id",
		"receipt",
		"amount",
		"currency",
		"status",
		"booking_ids",
		"created_at",
		"updated_at",
	).
		From("payment_orders").
		Where(squirrel.Eq{"provider_order_id": providerOrderID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByProviderOrderID - build select query: %v", ErrBuildQuery, err)
	}

	var order domain.PaymentOrder
	var createdAt, updatedAt sql.NullTime
	var bookingIDs pq.Int64Array

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&order.ID,
		&order.ProviderOrderID,
		&order.Receipt,
		&order.Amount,
		&order.Currency,
		&order.Status,
		&bookingIDs,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByProviderOrderID - scan order: %v", ErrScanRow, err)
	}

	order.BookingIDs = bookingIDs
	order.CreatedAt = createdAt.Time
	order.UpdatedAt = updatedAt.Time

	return &order, nil
}

// UpdateStatus обновляет статус платежного заказа
func (r *Repository) UpdateStatus(ctx context.Context, providerOrderID string, status domain.PaymentOrderStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("payment_orders").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"provider_order_id": providerOrderID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrOrderNotFound
	}

	return nil
}
