package handlers

import (
	"net/http"

	"github.com/bricker/vivial-sub000/middleware"
	"github.com/bricker/vivial-sub000/models"
	"github.com/bricker/vivial-sub000/services/outing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// OutingHandler exposes outing planning and reroll endpoints. Planning is
// open to anonymous visitors; rerolls for them are capped.
type OutingHandler struct {
	Service outing.OutingService
}

func NewOutingHandler(svc outing.OutingService) *OutingHandler {
	return &OutingHandler{Service: svc}
}

// PlanOutingHandler proposes an itinerary for the submitted survey.
func (h *OutingHandler) PlanOutingHandler(c *gin.Context) {
	logger := getLogger(c)

	var survey models.OutingSurvey
	if err := c.ShouldBindJSON(&survey); err != nil {
		logger.Error("Invalid outing survey", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	auth, _ := middleware.GetAuthContext(c)
	out, err := h.Service.Plan(c.Request.Context(), auth.AccountID, middleware.GetVisitorID(c), survey)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"outing": out})
}

// RerollOutingHandler re-randomizes an existing outing's itinerary.
func (h *OutingHandler) RerollOutingHandler(c *gin.Context) {
	logger := getLogger(c)

	auth, _ := middleware.GetAuthContext(c)
	out, err := h.Service.Reroll(c.Request.Context(), auth.AccountID, middleware.GetVisitorID(c), c.Param("outingID"))
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"outing": out})
}

// GetOutingHandler returns an outing by ID.
func (h *OutingHandler) GetOutingHandler(c *gin.Context) {
	logger := getLogger(c)

	out, err := h.Service.GetByID(c.Request.Context(), c.Param("outingID"))
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"outing": out})
}
