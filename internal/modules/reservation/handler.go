package reservation

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
	rg.POST("/book", h.Book)
	rg.PUT("/pay", h.Pay)
	rg.PUT("/cancel_booking", h.CancelBooking)
	rg.POST("/delete_booking", h.DeleteBooking)
}

func (h *Handler) Book(c *gin.Context) {
	var req ReserveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "user_id and slot_id are required")
		return
	}

	b, err := h.service.Reserve(c.Request.Context(), req.UserID, req.SlotID)
	if err != nil {
		switch err {
		case ErrUserNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "User not found")
		case ErrSlotNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Slot not found")
		case ErrSlotUnavailable:
			response.Error(c, http.StatusConflict, "SLOT_CONFLICT", "Too slow! This slot is already booked.")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create booking")
		}
		return
	}

	response.Success(c, http.StatusOK, "Booking confirmed!", gin.H{
		"booking_id": b.ID,
	})
}

func (h *Handler) Pay(c *gin.Context) {
	var req PayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "booking_id and payment_method are required")
		return
	}

	_, err := h.service.Pay(c.Request.Context(), req.BookingID, req.PaymentMethod)
	if err != nil {
		switch err {
		case ErrBookingNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
		case ErrBookingNotPending:
			response.Error(c, http.StatusBadRequest, "PAYMENT_REJECTED", "Booking is not awaiting payment")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to process payment")
		}
		return
	}

	response.Success(c, http.StatusOK, "Payment processed successfully!", nil)
}

func (h *Handler) CancelBooking(c *gin.Context) {
	var req CancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "booking_id is required")
		return
	}

	_, err := h.service.Cancel(c.Request.Context(), req.BookingID)
	if err != nil {
		switch err {
		case ErrBookingNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
		case ErrBookingPaid:
			response.Error(c, http.StatusBadRequest, "BOOKING_PAID", "Cannot cancel a paid booking")
		case ErrBookingNotPending:
			response.Error(c, http.StatusBadRequest, "PAYMENT_REJECTED", "Booking is already cancelled")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to cancel booking")
		}
		return
	}

	response.Success(c, http.StatusOK, "Booking cancelled and slot freed successfully!", nil)
}

func (h *Handler) DeleteBooking(c *gin.Context) {
	var req DeleteBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "booking_id is required")
		return
	}

	if err := h.service.DeleteBooking(c.Request.Context(), req.BookingID); err != nil {
		switch err {
		case ErrBookingNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete booking")
		}
		return
	}

	response.Success(c, http.StatusOK, "Booking deleted successfully!", nil)
}
