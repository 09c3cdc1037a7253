package handlers

import (
	"net/http"

	"github.com/bricker/vivial-sub000/middleware"
	"github.com/bricker/vivial-sub000/services/booking"

	"github.com/gin-gonic/gin"
)

// BookingHandler exposes read and cancel endpoints for confirmed bookings.
type BookingHandler struct {
	Checkout booking.CheckoutService
}

func NewBookingHandler(checkout booking.CheckoutService) *BookingHandler {
	return &BookingHandler{Checkout: checkout}
}

// GetBookingHandler returns one of the caller's bookings with its cost lines.
func (h *BookingHandler) GetBookingHandler(c *gin.Context) {
	logger := getLogger(c)

	auth, ok := middleware.GetAuthContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization", "redirect": "/logout"})
		return
	}

	bkg, err := h.Checkout.GetBooking(c.Request.Context(), auth, c.Param("bookingID"))
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"booking":   bkg,
		"costItems": booking.DeriveCostItems(bkg.Itinerary),
		"totalCost": booking.FormatTotalCost(bkg.Itinerary.CostBreakdown),
	})
}

// ListBookingsHandler returns all of the caller's bookings, newest first.
func (h *BookingHandler) ListBookingsHandler(c *gin.Context) {
	logger := getLogger(c)

	auth, ok := middleware.GetAuthContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization", "redirect": "/logout"})
		return
	}

	bookings, err := h.Checkout.ListBookings(c.Request.Context(), auth)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// CancelBookingHandler cancels a confirmed booking.
func (h *BookingHandler) CancelBookingHandler(c *gin.Context) {
	logger := getLogger(c)

	auth, ok := middleware.GetAuthContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization", "redirect": "/logout"})
		return
	}

	bkg, err := h.Checkout.CancelBooking(c.Request.Context(), auth, c.Param("bookingID"))
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": bkg})
}
