package query

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"marketconnect/internal/domain"
	"marketconnect/internal/pkg/response"
	"marketconnect/internal/pkg/texttable"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/get_users", h.GetUsers)
	rg.GET("/get_users/table", h.GetUsersTable)
	rg.GET("/get_stalls", h.GetStalls)
	rg.GET("/get_stalls/table", h.GetStallsTable)
	rg.GET("/get_slots", h.GetSlots)
	rg.GET("/get_bookings", h.GetBookings)
	rg.GET("/get_bookings/table", h.GetBookingsTable)
	rg.GET("/available_slots", h.GetAvailableSlots)
}

func (h *Handler) GetUsers(c *gin.Context) {
	users, err := h.service.ListUsers(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Error fetching users")
		return
	}
	response.Data(c, http.StatusOK, users)
}

// GetUsersTable renders users as a psql-style text table, best viewed in a
// browser or terminal.
func (h *Handler) GetUsersTable(c *gin.Context) {
	users, err := h.service.ListUsers(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Error fetching users")
		return
	}
	if len(users) == 0 {
		c.String(http.StatusOK, "No users found.")
		return
	}

	rows := make([][]string, 0, len(users))
	for _, u := range users {
		rows = append(rows, []string{
			strconv.FormatInt(u.ID, 10),
			u.LineUID,
			u.Name,
		})
	}
	c.String(http.StatusOK, texttable.Render([]string{"user_id", "line_uid", "name"}, rows))
}

func (h *Handler) GetStalls(c *gin.Context) {
	stalls, err := h.service.ListStalls(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Error fetching stalls")
		return
	}
	response.Data(c, http.StatusOK, stalls)
}

func (h *Handler) GetStallsTable(c *gin.Context) {
	stalls, err := h.service.ListStalls(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Error fetching stalls")
		return
	}
	if len(stalls) == 0 {
		c.String(http.StatusOK, "No stalls found.")
		return
	}

	rows := make([][]string, 0, len(stalls))
	for _, s := range stalls {
		rows = append(rows, []string{
			strconv.FormatInt(s.ID, 10),
			s.LocationName,
			s.Facilities,
		})
	}
	c.String(http.StatusOK, texttable.Render([]string{"stall_id", "location_name", "facilities"}, rows))
}

func (h *Handler) GetSlots(c *gin.Context) {
	slots, err := h.service.ListSlots(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Error fetching slots")
		return
	}
	response.Data(c, http.StatusOK, slots)
}

func (h *Handler) GetBookings(c *gin.Context) {
	bookings, err := h.service.ListBookings(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Error fetching bookings")
		return
	}
	response.Data(c, http.StatusOK, bookings)
}

func (h *Handler) GetBookingsTable(c *gin.Context) {
	bookings, err := h.service.ListBookings(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Error fetching bookings")
		return
	}
	if len(bookings) == 0 {
		c.String(http.StatusOK, "No bookings found.")
		return
	}

	rows := make([][]string, 0, len(bookings))
	for _, b := range bookings {
		rows = append(rows, []string{
			strconv.FormatInt(b.ID, 10),
			strconv.FormatInt(b.UserID, 10),
			strconv.FormatInt(b.SlotID, 10),
			string(b.PaymentStatus),
			b.PaymentMethod,
		})
	}
	c.String(http.StatusOK, texttable.Render(
		[]string{"booking_id", "user_id", "slot_id", "payment_status", "payment_method"}, rows))
}

func (h *Handler) GetAvailableSlots(c *gin.Context) {
	slots, err := h.service.ListAvailableSlots(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Error fetching available slots")
		return
	}

	out := make([]gin.H, 0, len(slots))
	for _, s := range slots {
		out = append(out, gin.H{
			"slot_id":       s.SlotID,
			"stall_id":      s.StallID,
			"location_name": s.LocationName,
			"date":          s.Date.Format("2006-01-02"),
			"price":         s.Price,
			"status":        domain.SlotAvailable.String(),
		})
	}
	response.Data(c, http.StatusOK, out)
}
