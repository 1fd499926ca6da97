package domain

import "time"

// SlotStatus is the stored slot state. The numeric values are part of the
// persisted format and must not be reordered.
type SlotStatus int

const (
	SlotAvailable SlotStatus = 0
	SlotLocked    SlotStatus = 1
	SlotBooked    SlotStatus = 2
)

func (s SlotStatus) String() string {
	switch s {
	case SlotAvailable:
		return "AVAILABLE"
	case SlotLocked:
		return "LOCKED"
	case SlotBooked:
		return "BOOKED"
	default:
		return "UNKNOWN"
	}
}

// Slot is one bookable (stall, date, price) instance. Its status is only
// ever mutated by the reservation engine inside a transaction.
type Slot struct {
	ID        int64      `json:"slot_id" gorm:"primaryKey"`
	StallID   int64      `json:"stall_id" gorm:"index"`
	Date      time.Time  `json:"date"`
	Price     float64    `json:"price"`
	Status    SlotStatus `json:"status" gorm:"not null;default:0"`
	CreatedAt time.Time  `json:"created_at"`

	Stall *Stall `json:"stall,omitempty" gorm:"foreignKey:StallID"`
}
