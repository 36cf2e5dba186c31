package handler

import (
	"errors"
	"net/http"
	"strconv"

	"paygo/internal/domain"
	"paygo/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type AdminHandler struct {
	userRepo    *repository.UserRepository
	settingRepo *repository.SettingRepository
}

func NewAdminHandler(userRepo *repository.UserRepository, settingRepo *repository.SettingRepository) *AdminHandler {
	return &AdminHandler{userRepo: userRepo, settingRepo: settingRepo}
}

type commissionRateRequest struct {
	CommissionRate decimal.Decimal `json:"commission_rate" binding:"required"`
}

// SetCommissionRate sets the individual rate override for an agent or
// super-agent. Zero clears the override back to the platform default.
func (h *AdminHandler) SetCommissionRate(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid agent id"})
		return
	}
	var req commissionRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.CommissionRate.IsNegative() || req.CommissionRate.GreaterThan(decimal.NewFromInt(100)) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "commission rate must be between 0 and 100"})
		return
	}
	if err := h.userRepo.SetCommissionRate(uint(id), req.CommissionRate.String()); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "agent not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "commission rate updated"})
}

func (h *AdminHandler) GetSettings(c *gin.Context) {
	settings, err := h.settingRepo.GetAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

type updateSettingRequest struct {
	Key   string `json:"key" binding:"required"`
	Value string `json:"value" binding:"required"`
}

func (h *AdminHandler) UpdateSetting(c *gin.Context) {
	var req updateSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.settingRepo.Set(req.Key, req.Value); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "setting updated"})
}
