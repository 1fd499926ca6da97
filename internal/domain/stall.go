package domain

import "time"

// Stall is a physical market location. Slots reference a stall but the
// store does not cascade: deleting a stall leaves its slots dangling.
type Stall struct {
	ID           int64     `json:"stall_id" gorm:"primaryKey"`
	LocationName string    `json:"location_name"`
	Facilities   string    `json:"facilities" gorm:"type:text"`
	CreatedAt    time.Time `json:"created_at"`
}
