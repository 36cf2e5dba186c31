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
	"github.com/shopspring/decimal"
)

type PaymentHandler struct {
	paymentRepo   *repository.PaymentRepository
	loanRepo      *repository.LoanRepository
	userRepo      *repository.UserRepository
	settlementSvc *service.SettlementService
	paystack      *gateway.PaystackClient
}

func NewPaymentHandler(
	paymentRepo *repository.PaymentRepository,
	loanRepo *repository.LoanRepository,
	userRepo *repository.UserRepository,
	settlementSvc *service.SettlementService,
	paystack *gateway.PaystackClient,
) *PaymentHandler {
	return &PaymentHandler{
		paymentRepo:   paymentRepo,
		loanRepo:      loanRepo,
		userRepo:      userRepo,
		settlementSvc: settlementSvc,
		paystack:      paystack,
	}
}

type manualPaymentRequest struct {
	UserID        uint            `json:"user_id" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	Currency      string          `json:"currency"`
	PaymentMethod string          `json:"payment_method"`
	TransactionID string          `json:"transaction_id"`
	LoanID        uint            `json:"loan_id" binding:"required"`
}

// ManualPayment records an admin-entered payment against a specific loan and
// settles it. The amount must cover at least one billing cycle.
func (h *PaymentHandler) ManualPayment(c *gin.Context) {
	var req manualPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	loan, err := h.loanRepo.GetByID(req.LoanID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "loan not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}
	if req.Amount.LessThan(loan.PaymentCycleAmount) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "payment amount must be at least the payment cycle amount of " + loan.PaymentCycleAmount.StringFixed(2),
		})
		return
	}
	if _, err := h.userRepo.GetCustomer(req.UserID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "customer not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}

	currency := req.Currency
	if currency == "" {
		currency = "NGN"
	}
	method := req.PaymentMethod
	if method == "" {
		method = "manual"
	}
	payment := &models.Payment{
		UserID:        req.UserID,
		Amount:        req.Amount,
		Currency:      currency,
		PaymentMethod: method,
		Status:        domain.PaymentStatusCompleted,
		LoanID:        &req.LoanID,
	}
	if req.TransactionID != "" {
		payment.TransactionID = &req.TransactionID
	}
	if err := h.paymentRepo.Create(payment); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record payment"})
		return
	}

	token, err := h.settlementSvc.Settle(c.Request.Context(), payment)
	if err != nil {
		h.settlementError(c, payment, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"msg":     "manual payment recorded successfully",
		"payment": payment,
		"token":   token,
	})
}

type paystackVerifyRequest struct {
	Reference string `json:"reference" binding:"required"`
	UserID    uint   `json:"user_id" binding:"required"`
}

// PaystackVerify confirms a gateway reference, records the payment, and
// settles it.
func (h *PaymentHandler) PaystackVerify(c *gin.Context) {
	var req paystackVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.paystack.Verify(c.Request.Context(), req.Reference)
	if err != nil {
		log.Printf("[payments] paystack verify %s: %v", req.Reference, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "payment verification unavailable"})
		return
	}
	if !result.Success {
		c.JSON(http.StatusBadRequest, gin.H{"error": "paystack payment verification failed"})
		return
	}

	// A reference already recorded means this is a duplicate confirmation.
	if existing, err := h.paymentRepo.GetByTransactionID(result.Reference); err == nil && existing != nil {
		c.JSON(http.StatusOK, gin.H{"msg": "payment already recorded", "payment": existing})
		return
	}

	payment := &models.Payment{
		UserID:        req.UserID,
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

	token, err := h.settlementSvc.Settle(c.Request.Context(), payment)
	if err != nil {
		h.settlementError(c, payment, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"msg":     "paystack payment verified and recorded",
		"payment": payment,
		"token":   token,
	})
}

func (h *PaymentHandler) settlementError(c *gin.Context, payment *models.Payment, err error) {
	switch {
	case errors.Is(err, domain.ErrAlreadySettled):
		c.JSON(http.StatusOK, gin.H{"msg": "payment already settled", "payment": payment})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrConfiguration):
		log.Printf("[payments] settlement blocked by configuration: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "platform misconfiguration, contact an administrator"})
	default:
		log.Printf("[payments] settlement of payment %d failed: %v", payment.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "settlement failed, payment recorded for reconciliation"})
	}
}
