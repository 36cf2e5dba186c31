package handler

import (
	"net/http"

	"paygo/internal/middleware"
	"paygo/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type AgentHandler struct {
	commissionRepo *repository.CommissionRepository
}

func NewAgentHandler(commissionRepo *repository.CommissionRepository) *AgentHandler {
	return &AgentHandler{commissionRepo: commissionRepo}
}

// MyCommissions lists the authenticated agent's earned commissions with a
// running total.
func (h *AgentHandler) MyCommissions(c *gin.Context) {
	agentID := middleware.GetUserID(c)
	list, err := h.commissionRepo.ListByAgent(agentID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}
	total := decimal.Zero
	for _, cm := range list {
		total = total.Add(cm.Amount)
	}
	c.JSON(http.StatusOK, gin.H{
		"commissions": list,
		"total":       total,
	})
}
