package handler

import (
	"errors"
	"log"
	"net/http"

	"paygo/internal/domain"
	"paygo/internal/models"
	"paygo/internal/repository"
	"paygo/internal/service"
	"paygo/pkg/gateway"

	"github.com/gin-gonic/gin"
)

// PaystackWebhook is the charge event payload delivered by the gateway.
type PaystackWebhook struct {
	Event string `json:"event"`
	Data  struct {
		Reference string `json:"reference"`
		Amount    int64  `json:"amount"`
		Currency  string `json:"currency"`
		Status    string `json:"status"`
		Metadata  struct {
			UserID uint `json:"user_id"`
		} `json:"metadata"`
	} `json:"data"`
}

type WebhookHandler struct {
	paymentRepo   *repository.PaymentRepository
	settlementSvc *service.SettlementService
	paystack      *gateway.PaystackClient
}

func NewWebhookHandler(
	paymentRepo *repository.PaymentRepository,
	settlementSvc *service.SettlementService,
	paystack *gateway.PaystackClient,
) *WebhookHandler {
	return &WebhookHandler{
		paymentRepo:   paymentRepo,
		settlementSvc: settlementSvc,
		paystack:      paystack,
	}
}

// Paystack processes the gateway callback. Deliveries are retried by the
// gateway, so duplicates are acknowledged with 200 and no side effects.
func (h *WebhookHandler) Paystack(c *gin.Context) {
	var payload PaystackWebhook
	if err := c.ShouldBindJSON(&payload); err != nil {
		log.Printf("[webhook] invalid paystack payload: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if payload.Event != "charge.success" {
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}
	reference := payload.Data.Reference
	if reference == "" || payload.Data.Metadata.UserID == 0 {
		log.Printf("[webhook] paystack event missing reference or user, acknowledging")
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	// Never trust the webhook body alone; re-verify with the gateway.
	result, err := h.paystack.Verify(c.Request.Context(), reference)
	if err != nil {
		log.Printf("[webhook] paystack verify %s: %v", reference, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "verification unavailable"})
		return
	}
	if !result.Success {
		log.Printf("[webhook] paystack reference %s did not verify, acknowledging", reference)
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	payment, err := h.paymentRepo.GetByTransactionID(result.Reference)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}
	if payment == nil {
		payment = &models.Payment{
			UserID:        payload.Data.Metadata.UserID,
			Amount:        result.Amount,
			Currency:      result.Currency,
			PaymentMethod: "paystack",
			TransactionID: &result.Reference,
			Status:        domain.PaymentStatusCompleted,
		}
		if err := h.paymentRepo.Create(payment); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record payment"})
			return
		}
	}

	if _, err := h.settlementSvc.Settle(c.Request.Context(), payment); err != nil {
		if errors.Is(err, domain.ErrAlreadySettled) {
			c.JSON(http.StatusOK, gin.H{"received": true})
			return
		}
		log.Printf("[webhook] settlement of payment %d failed: %v", payment.ID, err)
		// Non-2xx so the gateway redelivers; the idempotency guard makes
		// the retry safe.
		c.JSON(http.StatusInternalServerError, gin.H{"error": "settlement failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"received": true})
}
