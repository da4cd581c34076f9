// File: concierge/handlers/bookings.go
package handlers

import (
	"net/http"

	bookingRepo "concierge/database/repository/bookings"
	"concierge/models"
	"concierge/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingQueryHandler serves read-only booking lookups.
type BookingQueryHandler struct {
	Repo bookingRepo.BookingRepository
}

func NewBookingQueryHandler(repo bookingRepo.BookingRepository) *BookingQueryHandler {
	return &BookingQueryHandler{Repo: repo}
}

// ListUserBookingsHandler handles GET /api/bookings/:userID.
func (h *BookingQueryHandler) ListUserBookingsHandler(c *gin.Context) {
	userID := c.Param("userID")

	bookings, err := h.Repo.ListByUser(c.Request.Context(), userID)
	if err != nil {
		utils.GetLogger().Error("Failed to list bookings", zap.String("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve bookings"})
		return
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}

	c.JSON(http.StatusOK, gin.H{
		"user_id":  userID,
		"bookings": bookings,
		"count":    len(bookings),
	})
}

// GetBookingHandler handles GET /api/booking/:bookingID.
func (h *BookingQueryHandler) GetBookingHandler(c *gin.Context) {
	bookingID := c.Param("bookingID")

	booking, err := h.Repo.GetByID(c.Request.Context(), bookingID)
	if err != nil {
		utils.GetLogger().Error("Failed to fetch booking", zap.String("booking_id", bookingID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve booking"})
		return
	}
	if booking == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		return
	}
	c.JSON(http.StatusOK, booking)
}
