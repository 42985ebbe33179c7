package confirm_payment

import "context"

type BookingService interface {
	ConfirmBookings(ctx context.Context, bookingIDs []int64, userID int64, paymentID string) error
	RollbackBookings(ctx context.Context, bookingIDs []int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
