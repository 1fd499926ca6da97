package directory

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"marketconnect/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/create_user", h.CreateUser)
	rg.DELETE("/delete_user", h.DeleteUser)
	rg.POST("/create_stall", h.CreateStall)
	rg.DELETE("/delete_stall", h.DeleteStall)
	rg.POST("/create_availability", h.CreateAvailability)
	rg.DELETE("/delete_availability", h.DeleteAvailability)
}

func (h *Handler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "line_uid and name are required")
		return
	}

	u, err := h.service.CreateUser(c.Request.Context(), req.LineUID, req.Name)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create user")
		return
	}

	response.Success(c, http.StatusOK, "User created successfully!", gin.H{
		"user_id":   u.ID,
		"user_name": u.Name,
	})
}

func (h *Handler) DeleteUser(c *gin.Context) {
	var req DeleteUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "user_id is required")
		return
	}

	if err := h.service.DeleteUser(c.Request.Context(), req.UserID); err != nil {
		switch err {
		case ErrUserNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "User not found")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete user")
		}
		return
	}

	response.Success(c, http.StatusOK, "User deleted successfully!", nil)
}

func (h *Handler) CreateStall(c *gin.Context) {
	var req CreateStallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "location_name is required")
		return
	}

	st, err := h.service.CreateStall(c.Request.Context(), req.LocationName, req.Facilities)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create stall")
		return
	}

	response.Success(c, http.StatusOK, "Stall created successfully!", gin.H{
		"stall_id":      st.ID,
		"location_name": st.LocationName,
		"facilities":    st.Facilities,
	})
}

func (h *Handler) DeleteStall(c *gin.Context) {
	var req DeleteStallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "stall_id is required")
		return
	}

	if err := h.service.DeleteStall(c.Request.Context(), req.StallID); err != nil {
		switch err {
		case ErrStallNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Stall not found")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete stall")
		}
		return
	}

	response.Success(c, http.StatusOK, "Stall deleted successfully!", nil)
}

func (h *Handler) CreateAvailability(c *gin.Context) {
	var req CreateAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "stall_id, date and price are required")
		return
	}

	slot, err := h.service.CreateAvailability(c.Request.Context(), req.StallID, req.Date, req.Price)
	if err != nil {
		switch err {
		case ErrValidation:
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "date must be YYYY-MM-DD and price non-negative")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create slot")
		}
		return
	}

	response.Success(c, http.StatusOK, "Slot created successfully!", gin.H{
		"slot_id":  slot.ID,
		"stall_id": slot.StallID,
		"date":     slot.Date.Format("2006-01-02"),
		"price":    slot.Price,
		"status":   slot.Status.String(),
	})
}

func (h *Handler) DeleteAvailability(c *gin.Context) {
	var req DeleteAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "slot_id is required")
		return
	}

	if err := h.service.DeleteAvailability(c.Request.Context(), req.SlotID); err != nil {
		switch err {
		case ErrSlotNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Slot not found")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete slot")
		}
		return
	}

	response.Success(c, http.StatusOK, "Slot deleted successfully!", nil)
}
