package handlers

import (
	"net/http"

	"github.com/bricker/vivial-sub000/middleware"
	"github.com/bricker/vivial-sub000/models"
	"github.com/bricker/vivial-sub000/services/booking"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CheckoutHandler exposes the checkout flow: initiation, reserver details
// and the submit step chain.
type CheckoutHandler struct {
	Checkout booking.CheckoutService
	Reserver booking.ReserverDetailsService
}

func NewCheckoutHandler(checkout booking.CheckoutService, reserver booking.ReserverDetailsService) *CheckoutHandler {
	return &CheckoutHandler{Checkout: checkout, Reserver: reserver}
}

// InitiateCheckoutHandler primes a checkout for an outing and returns the
// session secrets, the booking and its derived cost lines.
func (h *CheckoutHandler) InitiateCheckoutHandler(c *gin.Context) {
	logger := getLogger(c)

	auth, ok := middleware.GetAuthContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization", "redirect": "/logout"})
		return
	}

	session, bkg, err := h.Checkout.Initiate(c.Request.Context(), auth, c.Param("outingID"))
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"session":   session,
		"booking":   bkg,
		"costItems": booking.DeriveCostItems(bkg.Itinerary),
		"totalCost": booking.FormatTotalCost(bkg.Itinerary.CostBreakdown),
	})
}

// SubmitCheckoutHandler runs the checkout step chain for a booking. The
// result is always 200 with an explicit state; step failures are data,
// not transport errors.
func (h *CheckoutHandler) SubmitCheckoutHandler(c *gin.Context) {
	logger := getLogger(c)

	auth, ok := middleware.GetAuthContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization", "redirect": "/logout"})
		return
	}

	var req struct {
		Reserver models.ReserverDetailsInput `json:"reserverDetails"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid checkout submit request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	result := h.Checkout.Submit(c.Request.Context(), booking.CheckoutRequest{
		Auth:      auth,
		BookingID: c.Param("bookingID"),
		Reserver:  req.Reserver,
	})

	status := http.StatusOK
	if result.Failure == booking.FailureUnauthenticated {
		status = http.StatusUnauthorized
	}
	c.JSON(status, result)
}

// GetReserverDetailsHandler returns the caller's saved reserver details, or
// empty details when none exist yet.
func (h *CheckoutHandler) GetReserverDetailsHandler(c *gin.Context) {
	logger := getLogger(c)

	auth, ok := middleware.GetAuthContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization", "redirect": "/logout"})
		return
	}

	details, err := h.Reserver.GetForAccount(c.Request.Context(), auth)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reserverDetails": details})
}
