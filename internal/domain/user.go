package domain

import "time"

// User is a registered market user identified by their LINE account.
type User struct {
	ID        int64     `json:"user_id" gorm:"primaryKey"`
	LineUID   string    `json:"line_uid" gorm:"uniqueIndex;size:64"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
