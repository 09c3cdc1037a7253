package handlers

import (
	accountRepoPkg "github.com/bricker/vivial-sub000/database/repository/account"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	AccountRepo accountRepoPkg.AccountRepository

	// Account endpoints
	SignUpHandler  gin.HandlerFunc
	SignInHandler  gin.HandlerFunc
	SignOutHandler gin.HandlerFunc
	ViewerHandler  gin.HandlerFunc

	// Outing endpoints
	PlanOutingHandler   gin.HandlerFunc
	RerollOutingHandler gin.HandlerFunc
	GetOutingHandler    gin.HandlerFunc

	// Checkout endpoints
	InitiateCheckoutHandler   gin.HandlerFunc
	SubmitCheckoutHandler     gin.HandlerFunc
	GetReserverDetailsHandler gin.HandlerFunc

	// Booking endpoints
	GetBookingHandler    gin.HandlerFunc
	ListBookingsHandler  gin.HandlerFunc
	CancelBookingHandler gin.HandlerFunc
}
