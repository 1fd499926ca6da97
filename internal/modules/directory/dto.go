package directory

type CreateUserRequest struct {
	LineUID string `json:"line_uid" binding:"required"`
	Name    string `json:"name" binding:"required"`
}

type DeleteUserRequest struct {
	UserID int64 `json:"user_id" binding:"required"`
}

type CreateStallRequest struct {
	LocationName string `json:"location_name" binding:"required"`
	Facilities   string `json:"facilities"`
}

type DeleteStallRequest struct {
	StallID int64 `json:"stall_id" binding:"required"`
}

type CreateAvailabilityRequest struct {
	StallID int64   `json:"stall_id" binding:"required"`
	Date    string  `json:"date" binding:"required"` // YYYY-MM-DD
	Price   float64 `json:"price" binding:"required"`
}

type DeleteAvailabilityRequest struct {
	SlotID int64 `json:"slot_id" binding:"required"`
}
