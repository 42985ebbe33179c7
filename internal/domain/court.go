package domain

import "time"

// Court represents a bookable sports court inside a facility
type Court struct {
	ID         int64
	FacilityID int64
	Name       string

	// HourlyPrice цена часа в минимальных единицах валюты
	HourlyPrice int64

	// Операционное окно корта в целых часах (например, 6..22)
	OpenHour  int
	CloseHour int

	IsActive bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// BelongsTo returns true if the court belongs to the given facility
func (c *Court) BelongsTo(facilityID int64) bool {
	return c.FacilityID == facilityID
}
