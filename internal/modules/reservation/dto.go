package reservation

type ReserveRequest struct {
	UserID int64 `json:"user_id" binding:"required"`
	SlotID int64 `json:"slot_id" binding:"required"`
}

type PayRequest struct {
	BookingID     int64  `json:"booking_id" binding:"required"`
	PaymentMethod string `json:"payment_method" binding:"required"`
}

type CancelRequest struct {
	BookingID int64 `json:"booking_id" binding:"required"`
}

type DeleteBookingRequest struct {
	BookingID int64 `json:"booking_id" binding:"required"`
}
