package handlers

import (
	"net/http"

	"github.com/bricker/vivial-sub000/middleware"
	"github.com/bricker/vivial-sub000/services/account"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AccountHandler exposes signup, signin and viewer endpoints.
type AccountHandler struct {
	Service account.AccountService
}

func NewAccountHandler(svc account.AccountService) *AccountHandler {
	return &AccountHandler{Service: svc}
}

type credentialsRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	DeviceID   string `json:"deviceId"`
	DeviceName string `json:"deviceName"`
}

// SignUpHandler creates an account and returns it with a session token.
func (h *AccountHandler) SignUpHandler(c *gin.Context) {
	logger := getLogger(c)

	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid signup request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	resp, err := h.Service.SignUp(c.Request.Context(), req.Email, req.Password, req.DeviceID, req.DeviceName)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// SignInHandler authenticates credentials and returns a session token.
func (h *AccountHandler) SignInHandler(c *gin.Context) {
	logger := getLogger(c)

	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid signin request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	resp, err := h.Service.SignIn(c.Request.Context(), req.Email, req.Password, req.DeviceID, req.DeviceName)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SignOutHandler revokes the caller's session for this device.
func (h *AccountHandler) SignOutHandler(c *gin.Context) {
	logger := getLogger(c)

	auth, ok := middleware.GetAuthContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization", "redirect": "/logout"})
		return
	}

	if err := h.Service.SignOut(c.Request.Context(), auth); err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "signed out"})
}

// ViewerHandler returns the authenticated account.
func (h *AccountHandler) ViewerHandler(c *gin.Context) {
	logger := getLogger(c)

	auth, ok := middleware.GetAuthContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization", "redirect": "/logout"})
		return
	}

	acct, err := h.Service.GetByID(c.Request.Context(), auth.AccountID)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"account": acct})
}
