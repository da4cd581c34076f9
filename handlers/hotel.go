// File: concierge/handlers/hotel.go
package handlers

import (
	"net/http"

	"concierge/models"

	"github.com/gin-gonic/gin"
)

// HotelHandler serves the loaded hotel catalog.
type HotelHandler struct {
	Catalog *models.HotelCatalog
}

func NewHotelHandler(catalog *models.HotelCatalog) *HotelHandler {
	return &HotelHandler{Catalog: catalog}
}

// HotelInfoHandler handles GET /hotel-info.
func (h *HotelHandler) HotelInfoHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.Catalog)
}
