package main

import (
	"errors"

	"partner-portal/internal/handler"
	"partner-portal/internal/middleware"
	"partner-portal/internal/model"
	"partner-portal/pkg/config"
	"partner-portal/pkg/database"
	"partner-portal/pkg/jwtutil"
	"partner-portal/pkg/logger"
	"partner-portal/prometheus"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	// Load configuration from .env file and environment variables
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger with config
	logger.InitLogger(cfg)
	log := logger.GetLogger()
	log.Info("Starting partner portal service...", zap.String("environment", cfg.Server.Env))

	// Initialize database
	if err := database.InitDB(cfg); err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	// Initialize JWT utility
	jwtutil.Initialize(&cfg.JWT)
	log.Info("JWT utility initialized")

	// Initialize Prometheus metrics
	prometheus.InitMetrics(cfg)
	log.Info("Prometheus metrics initialized")

	// Credential policy for login and approval flows
	handler.SetAuthPolicy(cfg.Auth)

	// Make sure at least one admin account exists
	if err := seedAdmin(database.GetDB(), cfg, log); err != nil {
		log.Fatal("Failed to seed admin account", zap.Error(err))
	}

	// Initialize Echo framework
	e := echo.New()

	// Apply global middleware - order matters
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(middleware.RequestIDMiddleware)
	e.Use(logger.Middleware(log))
	e.Use(prometheus.MetricsMiddleware())

	// Public routes - no authentication required
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", handler.MetricsHandler)

	api := e.Group("/api")

	// Public content and contact routes
	api.POST("/contact", handler.SubmitContactForm)
	api.GET("/news", handler.GetPublicNews)
	api.GET("/news/:id", handler.GetNewsArticle)
	api.GET("/market-insights/public", handler.GetPublicMarketInsights)
	api.GET("/company-stats", handler.GetCompanyStats)
	api.GET("/products", handler.GetProducts)

	// Authentication routes
	auth := api.Group("/auth")
	auth.POST("/partner/register", handler.Register)
	auth.POST("/partner/login", handler.PartnerLogin)
	auth.POST("/admin/login", handler.AdminLogin)
	auth.POST("/verify-token", handler.VerifyToken, middleware.RequireAuth)
	auth.POST("/change-password", handler.ChangePassword, middleware.RequireAuth)
	auth.GET("/partner/profile", handler.GetPartnerProfile, middleware.RequireAuth, middleware.RequirePartner)
	auth.PUT("/partner/profile", handler.UpdatePartnerProfile, middleware.RequireAuth, middleware.RequirePartner)

	// Partner routes - approved partners only
	partner := api.Group("/partner", middleware.RequireAuth, middleware.RequirePartner)
	partner.GET("/dashboard/stats", handler.GetPartnerDashboardStats)
	partner.GET("/market-insights", handler.GetPartnerMarketInsights)
	partner.GET("/documents", handler.GetPartnerDocuments)
	partner.GET("/notifications", handler.GetPartnerNotifications)
	partner.GET("/news", handler.GetPartnerNews)
	partner.GET("/activity-log", handler.GetPartnerActivityLog)
	partner.GET("/messages", handler.GetPartnerMessages)
	partner.POST("/messages", handler.SendPartnerMessage)

	// Admin routes
	admin := api.Group("/admin", middleware.RequireAuth, middleware.RequireAdmin)
	admin.GET("/dashboard/stats", handler.GetDashboardStats)
	admin.GET("/partners/applications", handler.GetPartnerApplications)
	admin.GET("/partners/active", handler.GetActivePartners)
	admin.GET("/partners/:id", handler.GetPartnerDetails)
	admin.POST("/partners/:id/approve", handler.ApprovePartner)
	admin.POST("/partners/:id/reject", handler.RejectPartner)
	admin.POST("/partners/:id/suspend", handler.SuspendPartner)
	admin.GET("/messages", handler.GetAdminMessages)
	admin.POST("/messages", handler.SendAdminMessage)
	admin.GET("/market-insights", handler.GetMarketInsights)
	admin.POST("/market-insights", handler.CreateMarketInsight)
	admin.GET("/analytics/customer-activity", handler.GetCustomerActivity)
	admin.GET("/analytics/trade-volume", handler.GetTradeVolumeAnalytics)

	// AI content generation routes - staff only
	ai := api.Group("/ai", middleware.RequireAuth, middleware.RequireAdmin)
	ai.POST("/generate-insights", handler.GenerateInsights)
	ai.POST("/generate-news", handler.GenerateNews)
	ai.POST("/auto-generate-content", handler.AutoGenerateContent)
	ai.POST("/analyze-customer-activity", handler.AnalyzeCustomerActivity)
	ai.GET("/market-predictions", handler.GetMarketPredictions)
	ai.POST("/sentiment-analysis", handler.AnalyzeMarketSentiment)

	// Get server port from configuration
	port := cfg.Server.Port

	// Start server
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Failed to start server", zap.Error(err))
	}
}

// seedAdmin creates the initial admin account on first boot. Existing
// accounts are never touched.
func seedAdmin(db *gorm.DB, cfg *config.Config, log *zap.Logger) error {
	var admin model.Admin
	err := db.Where("username = ?", cfg.Auth.SeedAdminUsername).First(&admin).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	admin = model.Admin{
		Username: cfg.Auth.SeedAdminUsername,
		Email:    cfg.Auth.SeedAdminEmail,
		IsActive: true,
	}
	if err := admin.SetPassword(cfg.Auth.SeedAdminPassword); err != nil {
		return err
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	log.Info("Seeded initial admin account", zap.String("username", admin.Username))
	return nil
}
