package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"skyfare/database"
)

// DownloadHandler streams a booking's stored confirmation PDF.
func DownloadHandler(c *gin.Context) {
	id := c.Param("id")

	if !database.Ready() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Booking storage unavailable"})
		return
	}

	booking, err := database.GetBooking(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		return
	}

	if len(booking.PDFData) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No document available for this booking"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="skyfare-confirmation-`+booking.ID+`.pdf"`)
	c.Data(http.StatusOK, "application/pdf", booking.PDFData)
}
