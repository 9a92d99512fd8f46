package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const queryDateLayout = "2006-01-02"

// AllBookingsByService GET /all-bookings-by-service
func (h *Handler) AllBookingsByService(c *gin.Context) {
	counts, err := h.bookings.AllByServiceDate(c.Request.Context())
	if err != nil {
		h.internalError(c, "Failed to count bookings by service", err)
		return
	}
	c.JSON(http.StatusOK, counts)
}

// AvailabilityByDate GET /availability-by-date?date=YYYY-MM-DD
func (h *Handler) AvailabilityByDate(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Date parameter is required"})
		return
	}

	day, err := time.ParseInLocation(queryDateLayout, date, h.bookings.Location())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Date must be in YYYY-MM-DD format"})
		return
	}

	availability, err := h.bookings.AvailabilityByDate(c.Request.Context(), day)
	if err != nil {
		h.internalError(c, "Failed to check availability by date", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":         date,
		"availability": availability,
	})
}

// CheckAvailability GET /check-availability?service_id=&date=
func (h *Handler) CheckAvailability(c *gin.Context) {
	serviceName := c.Query("service_id")
	date := c.Query("date")
	if serviceName == "" || date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "service_id and date are required"})
		return
	}

	day, err := time.ParseInLocation(queryDateLayout, date, h.bookings.Location())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Date must be in YYYY-MM-DD format"})
		return
	}

	availability, err := h.bookings.CheckAvailability(c.Request.Context(), serviceName, day)
	if err != nil {
		h.internalError(c, "Failed to check availability", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"available": availability.Available,
		"current":   availability.Current,
		"limit":     availability.Limit,
		"date":      date,
	})
}
