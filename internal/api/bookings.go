package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Freeeeeet/rental_booking/internal/model"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// форматы даты бронирования, которые принимает API
var bookingDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

type createBookingRequest struct {
	ClientID    int64   `json:"client_id" binding:"required"`
	ServiceName string  `json:"service_name" binding:"required"`
	BookingDate string  `json:"booking_date" binding:"required"`
	Address     *string `json:"address"`
}

type updateBookingRequest struct {
	ClientID    *int64  `json:"client_id"`
	ServiceName string  `json:"service_name" binding:"required"`
	BookingDate string  `json:"booking_date" binding:"required"`
	Address     *string `json:"address"`
}

// parseBookingDate дата без зоны считается в часовом поясе сервиса
func parseBookingDate(value string, loc *time.Location) (time.Time, error) {
	for _, layout := range bookingDateLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid booking_date %q", value)
}

// CreateBooking POST /bookings
func (h *Handler) CreateBooking(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid booking request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Отсутствуют обязательные поля: client_id, service_name, booking_date"})
		return
	}

	date, err := parseBookingDate(req.BookingDate, h.bookings.Location())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	address := req.Address
	if address != nil && *address == "" {
		address = nil
	}

	booking := &model.Booking{
		ClientID:    req.ClientID,
		ServiceName: req.ServiceName,
		BookingDate: date,
		Address:     address,
	}

	err = h.bookings.Create(c.Request.Context(), booking)
	if errors.Is(err, model.ErrClientNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Клиент не найден"})
		return
	}
	if err != nil {
		h.logger.Error("Failed to create booking", zap.Int64("client_id", req.ClientID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Внутренняя ошибка сервера", "message": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, booking)
}

// ListBookings GET /bookings?serviceName=
func (h *Handler) ListBookings(c *gin.Context) {
	bookings, err := h.bookings.List(c.Request.Context(), c.Query("serviceName"))
	if err != nil {
		h.internalError(c, "Failed to list bookings", err)
		return
	}
	if bookings == nil {
		bookings = []*model.BookingDetails{}
	}
	c.JSON(http.StatusOK, bookings)
}

// GetBooking GET /bookings/:id
func (h *Handler) GetBooking(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	booking, err := h.bookings.Get(c.Request.Context(), id)
	if errors.Is(err, model.ErrBookingNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		return
	}
	if err != nil {
		h.internalError(c, "Failed to get booking", err)
		return
	}

	c.JSON(http.StatusOK, booking)
}

// UpdateBooking PUT /bookings/:id
func (h *Handler) UpdateBooking(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req updateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields: service_name, booking_date"})
		return
	}

	date, err := parseBookingDate(req.BookingDate, h.bookings.Location())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	booking, err := h.bookings.Update(c.Request.Context(), id, model.BookingUpdate{
		ServiceName: req.ServiceName,
		BookingDate: date,
		ClientID:    req.ClientID,
		Address:     req.Address,
	})
	switch {
	case errors.Is(err, model.ErrClientNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "New client_id not found."})
	case errors.Is(err, model.ErrBookingNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
	case err != nil:
		h.internalError(c, "Failed to update booking", err)
	default:
		c.JSON(http.StatusOK, booking)
	}
}

// DeleteBooking DELETE /bookings/:id
func (h *Handler) DeleteBooking(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	err := h.bookings.Delete(c.Request.Context(), id)
	if errors.Is(err, model.ErrBookingNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		return
	}
	if err != nil {
		h.internalError(c, "Failed to delete booking", err)
		return
	}

	c.Status(http.StatusNoContent)
}
