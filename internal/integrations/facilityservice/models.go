package facilityservice

// Facility площадка во внешнем сервисе площадок
// Движку бронирования нужны только идентификация и владелец
type Facility struct {
	ID      int64  `json:"id"`
	OwnerID int64  `json:"ownerId"`
	Name    string `json:"name"`
	Status  string `json:"status"` // approved / pending / rejected
}

// IsApproved returns true if the facility passed the approval workflow
func (f *Facility) IsApproved() bool {
	return f.Status == "approved"
}
