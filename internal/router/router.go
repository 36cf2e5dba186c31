package router

import (
	"log"
	"time"

	"paygo/config"
	"paygo/internal/domain"
	"paygo/internal/handler"
	"paygo/internal/middleware"
	"paygo/internal/repository"
	"paygo/internal/service"
	"paygo/pkg/activation"
	"paygo/pkg/gateway"
	"paygo/pkg/sms"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Setup(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RateLimit(middleware.NewInMemoryRateLimiter(100, 60*time.Second)))

	// Repositories
	userRepo := repository.NewUserRepository(db)
	loanRepo := repository.NewLoanRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	settingRepo := repository.NewSettingRepository(db)
	commissionRepo := repository.NewCommissionRepository(db)

	// External collaborators
	var provider service.CodeProvider
	if cfg.Activation.ClientKey != "" && cfg.Activation.PrivateKeyPEM != "" {
		client, err := activation.NewClient(
			cfg.Activation.BaseURL,
			cfg.Activation.ClientKey,
			cfg.Activation.PublicKey,
			[]byte(cfg.Activation.PrivateKeyPEM),
			cfg.Activation.Timeout,
		)
		if err != nil {
			log.Printf("[activation] client disabled, using local codes only: %v", err)
		} else {
			provider = client
		}
	} else {
		log.Printf("[activation] no credentials configured, using local codes only")
	}
	paystack := gateway.NewPaystackClient(cfg.Paystack.BaseURL, cfg.Paystack.SecretKey)
	smsClient := sms.NewClient(cfg.SMS.BaseURL, cfg.SMS.Username, cfg.SMS.APIKey, cfg.SMS.SenderID)

	// Services
	authSvc := service.NewAuthService(cfg, userRepo)
	issuer := service.NewTokenIssuer(provider, cfg.Activation.Timeout)
	settlementSvc := service.NewSettlementService(service.NewGormTxRunner(db), issuer, smsClient)

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc)
	paymentHandler := handler.NewPaymentHandler(paymentRepo, loanRepo, userRepo, settlementSvc, paystack)
	webhookHandler := handler.NewWebhookHandler(paymentRepo, settlementSvc, paystack)
	adminHandler := handler.NewAdminHandler(userRepo, settingRepo)
	agentHandler := handler.NewAgentHandler(commissionRepo)

	api := r.Group("/api/v1")
	{
		api.POST("/auth/login", authHandler.Login)
		api.POST("/webhooks/paystack", webhookHandler.Paystack)

		authed := api.Group("", middleware.AuthRequired(&cfg.JWT))
		{
			payments := authed.Group("/payments")
			{
				payments.POST("/manual", middleware.RequireRole(domain.RoleAdmin), paymentHandler.ManualPayment)
				payments.POST("/paystack/verify", middleware.RequireRole(domain.RoleCustomer, domain.RoleAdmin), paymentHandler.PaystackVerify)
			}

			authed.GET("/agents/commissions",
				middleware.RequireRole(domain.RoleAgent, domain.RoleSuperAgent),
				agentHandler.MyCommissions)

			admin := authed.Group("/admin", middleware.RequireRole(domain.RoleAdmin))
			{
				admin.PUT("/agents/:id/commission-rate", adminHandler.SetCommissionRate)
				admin.GET("/settings", adminHandler.GetSettings)
				admin.PUT("/settings", adminHandler.UpdateSetting)
			}
		}
	}
	return r
}
