// File: concierge/handlers/handlerBundle.go
package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Instagram webhook endpoints
	VerifyWebhookHandler gin.HandlerFunc
	HandleWebhookHandler gin.HandlerFunc

	// Direct chat endpoint (testing and non-Instagram clients)
	ChatHandler gin.HandlerFunc

	// Booking lookup endpoints
	ListUserBookingsHandler gin.HandlerFunc
	GetBookingHandler       gin.HandlerFunc

	// Hotel info endpoint
	HotelInfoHandler gin.HandlerFunc

	// Service status endpoints
	RootHandler   gin.HandlerFunc
	HealthHandler gin.HandlerFunc
}
