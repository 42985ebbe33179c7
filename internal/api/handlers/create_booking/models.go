package create_booking

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/m04kA/SCB-BookingService/internal/domain"
	createBooking "github.com/m04kA/SCB-BookingService/internal/usecase/create_booking"
)

// SlotSelection один выбранный слот
// Принимает оба клиентских представления: строку с часом ("09", "09:00")
// или объект {"startTime": "09:00", "endTime": "10:00"}
type SlotSelection struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime,omitempty"`
}

// UnmarshalJSON принимает строку или объект
func (s *SlotSelection) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err == nil {
		s.StartTime = raw
		s.EndTime = ""
		return nil
	}

	type plain SlotSelection
	var obj plain
	if err := json.Unmarshal(data, &obj); err != nil {
		return errors.New("slot must be a string or an object with startTime/endTime")
	}

	*s = SlotSelection(obj)
	return nil
}

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	FacilityID  int64           `json:"facilityId"`
	CourtID     int64           `json:"courtId"`
	BookingDate string          `json:"bookingDate"` // "2026-09-01"
	Slots       []SlotSelection `json:"slots"`
	TotalAmount int64           `json:"totalAmount"` // минимальные единицы валюты
}

// BookingItem одно созданное бронирование в HTTP ответе
type BookingItem struct {
	ID          int64  `json:"id"`
	UserID      int64  `json:"userId"`
	FacilityID  int64  `json:"facilityId"`
	CourtID     int64  `json:"courtId"`
	BookingDate string `json:"bookingDate"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	Amount      int64  `json:"amount"`
	Status      string `json:"status"`
	CreatedAt   string `json:"createdAt"`
}

// CreateBookingResponse HTTP response model
type CreateBookingResponse struct {
	Bookings    []BookingItem `json:"bookings"`
	TotalAmount int64         `json:"totalAmount"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) (*createBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, err
	}

	slots := make([]createBooking.SlotInput, 0, len(r.Slots))
	for _, s := range r.Slots {
		slots = append(slots, createBooking.SlotInput{
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
		})
	}

	return &createBooking.Request{
		UserID:      userID,
		FacilityID:  r.FacilityID,
		CourtID:     r.CourtID,
		Date:        date,
		Slots:       slots,
		TotalAmount: r.TotalAmount,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *CreateBookingResponse {
	bookings := make([]BookingItem, 0, len(resp.Bookings))
	for _, b := range resp.Bookings {
		bookings = append(bookings, BookingItem{
			ID:          b.ID,
			UserID:      b.UserID,
			FacilityID:  b.FacilityID,
			CourtID:     b.CourtID,
			BookingDate: b.BookingDate.Format(domain.DateFormat),
			StartTime:   b.StartTime.String(),
			EndTime:     b.EndTime.String(),
			Amount:      b.Amount,
			Status:      string(b.Status),
			CreatedAt:   b.CreatedAt.Format(time.RFC3339),
		})
	}

	return &CreateBookingResponse{
		Bookings:    bookings,
		TotalAmount: resp.TotalAmount,
	}
}
