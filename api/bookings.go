package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/groupsix/gymbook/internal/domain"
	"github.com/groupsix/gymbook/internal/service/booking"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

type bookingResponse struct {
	ID            int64  `json:"id"`
	Reference     string `json:"reference"`
	SessionID     int64  `json:"session_id"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	BookingTime   string `json:"booking_time"`
}

func toBookingResponse(b *domain.Booking) bookingResponse {
	return bookingResponse{
		ID:            b.ID,
		Reference:     b.Reference,
		SessionID:     b.SessionID,
		CustomerName:  b.CustomerName,
		CustomerEmail: b.CustomerEmail,
		BookingTime:   b.BookingTime.Format(time.RFC3339),
	}
}

// RegisterCustomer mounts the booking endpoint.
func (h *BookingHandler) RegisterCustomer(router *gin.RouterGroup) {
	router.POST("/api/book", h.create)
}

// RegisterAdmin mounts the per-session booking list.
func (h *BookingHandler) RegisterAdmin(router *gin.RouterGroup) {
	router.GET("/schedules/:id/bookings", h.listBySession)
}

func (h *BookingHandler) create(c *gin.Context) {
	var req booking.BookSessionInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.service.Book(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toBookingResponse(created))
}

func (h *BookingHandler) listBySession(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	bookings, err := h.service.ListBySession(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]bookingResponse, 0, len(bookings))
	for i := range bookings {
		out = append(out, toBookingResponse(&bookings[i]))
	}
	c.JSON(http.StatusOK, out)
}
