package domain

import "time"

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "PENDING"
	PaymentPaid     PaymentStatus = "PAID"
	PaymentCanceled PaymentStatus = "CANCELED"
)

// Booking links a user to a slot and carries the payment lifecycle.
// A booking is active while its payment status is PENDING or PAID; a
// BOOKED slot has exactly one active booking.
type Booking struct {
	ID            int64         `json:"booking_id" gorm:"primaryKey"`
	UserID        int64         `json:"user_id" gorm:"index"`
	SlotID        int64         `json:"slot_id" gorm:"index"`
	PaymentStatus PaymentStatus `json:"payment_status" gorm:"type:varchar(16);not null;default:'PENDING'"`
	PaymentMethod string        `json:"payment_method,omitempty" gorm:"size:32"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Slot *Slot `json:"slot,omitempty" gorm:"foreignKey:SlotID"`
}

// Active reports whether the booking still holds its slot.
func (b *Booking) Active() bool {
	return b.PaymentStatus == PaymentPending || b.PaymentStatus == PaymentPaid
}
