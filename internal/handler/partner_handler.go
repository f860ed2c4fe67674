package handler

import (
	"net/http"
	"time"

	"partner-portal/internal/middleware"
	"partner-portal/internal/model"
	"partner-portal/pkg/database"
	"partner-portal/pkg/logger"
	"partner-portal/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// GetPartnerDashboardStats returns dashboard figures for the authenticated
// partner. Trade statistics are demo placeholders.
func GetPartnerDashboardStats(c echo.Context) error {
	log := logger.FromContext(c)

	partnerID := c.Get(middleware.UserIDKey).(uint)

	defer prometheus.TrackDBOperation("query")(time.Now())
	var partner model.Partner
	if result := database.GetDB().First(&partner, partnerID); result.Error != nil {
		log.Warn("Partner not found", zap.Uint("partner_id", partnerID))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Partner not found"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"stats": echo.Map{
			"trade_volume": "$2.4M",
			"trade_growth": "+12.5%",
			"active_deals": 24,
			"deals_growth": "+8.2%",
			"global_reach": 15,
			"success_rate": "98.5%",
		},
		"trade_volume_data": []echo.Map{
			{"month": "Jan", "volume": 2400},
			{"month": "Feb", "volume": 1398},
			{"month": "Mar", "volume": 9800},
			{"month": "Apr", "volume": 3908},
			{"month": "May", "volume": 4800},
			{"month": "Jun", "volume": 3800},
		},
		"category_distribution": []echo.Map{
			{"name": "Agriculture", "value": 35, "color": "#10B981"},
			{"name": "Electronics", "value": 45, "color": "#3B82F6"},
			{"name": "Fashion", "value": 20, "color": "#8B5CF6"},
		},
		"recent_activities": []echo.Map{
			{"id": 1, "type": "trade", "message": "New trade opportunity in Electronics sector", "time": "2 hours ago"},
			{"id": 2, "type": "message", "message": "Admin response to your inquiry", "time": "4 hours ago"},
			{"id": 3, "type": "document", "message": "Market report Q4 2025 available", "time": "1 day ago"},
			{"id": 4, "type": "alert", "message": "Price alert: Wheat futures up 5%", "time": "2 days ago"},
		},
	})
}

// GetPartnerMarketInsights returns stored insights plus trend and forecast
// payloads for the partner dashboard.
func GetPartnerMarketInsights(c echo.Context) error {
	log := logger.FromContext(c)

	defer prometheus.TrackDBOperation("query")(time.Now())
	var insights []model.MarketInsight
	if err := database.GetDB().Where("is_active = ?", true).
		Order("created_at DESC").Limit(10).Find(&insights).Error; err != nil {
		log.Error("Failed to load insights", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load insights"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"insights": insights,
		"market_trends_data": []echo.Map{
			{"month": "Jan", "agriculture": 4000, "electronics": 2400, "fashion": 2400},
			{"month": "Feb", "agriculture": 3000, "electronics": 1398, "fashion": 2210},
			{"month": "Mar", "agriculture": 2000, "electronics": 9800, "fashion": 2290},
			{"month": "Apr", "agriculture": 2780, "electronics": 3908, "fashion": 2000},
			{"month": "May", "agriculture": 1890, "electronics": 4800, "fashion": 2181},
			{"month": "Jun", "agriculture": 2390, "electronics": 3800, "fashion": 2500},
		},
		"ai_forecasts": echo.Map{
			"agriculture": echo.Map{
				"title":       "Agriculture Forecast",
				"confidence":  "High Confidence",
				"description": "AI predicts 15% growth in agriculture exports to Asia-Pacific region over next quarter.",
				"metrics": []echo.Map{
					{"name": "Wheat", "change": "+18%"},
					{"name": "Beef", "change": "+12%"},
					{"name": "Dairy", "change": "+8%"},
				},
			},
			"electronics": echo.Map{
				"title":       "Electronics Trends",
				"confidence":  "Medium Confidence",
				"description": "Component prices stabilizing after recent volatility. Supply chain improvements expected.",
				"metrics": []echo.Map{
					{"name": "Semiconductors", "change": "Stable"},
					{"name": "Consumer Electronics", "change": "+5%"},
					{"name": "Components", "change": "-3%"},
				},
			},
			"fashion": echo.Map{
				"title":       "Fashion Outlook",
				"confidence":  "High Confidence",
				"description": "Sustainable fashion showing strong growth. Premium materials in high demand.",
				"metrics": []echo.Map{
					{"name": "Organic Cotton", "change": "+22%"},
					{"name": "Wool Products", "change": "+15%"},
					{"name": "Synthetic", "change": "-8%"},
				},
			},
		},
	})
}

// GetPartnerDocuments returns the partner's own documents plus anything
// shared with all partners.
func GetPartnerDocuments(c echo.Context) error {
	log := logger.FromContext(c)

	partnerID := c.Get(middleware.UserIDKey).(uint)

	defer prometheus.TrackDBOperation("query")(time.Now())
	var documents []model.Document
	if err := database.GetDB().
		Where("partner_id = ? OR is_shared = ?", partnerID, true).
		Order("created_at DESC").Find(&documents).Error; err != nil {
		log.Error("Failed to load documents", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load documents"})
	}

	return c.JSON(http.StatusOK, echo.Map{"documents": documents})
}

// GetPartnerNotifications returns demo notifications for the partner portal.
func GetPartnerNotifications(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"notifications": []echo.Map{
			{"id": 1, "title": "New Market Opportunity", "message": "Electronics demand surge in European markets", "priority": "high", "time": "1 hour ago", "is_read": false},
			{"id": 2, "title": "Document Update", "message": "Q4 market report has been updated", "priority": "medium", "time": "3 hours ago", "is_read": false},
			{"id": 3, "title": "Price Alert", "message": "Agriculture commodity prices showing upward trend", "priority": "low", "time": "6 hours ago", "is_read": true},
		},
	})
}

// GetPartnerNews returns news articles for partners, newest first, with an
// optional category filter.
func GetPartnerNews(c echo.Context) error {
	log := logger.FromContext(c)

	page, perPage := pageParams(c, 10)

	query := database.GetDB().Model(&model.NewsArticle{})
	if category := c.QueryParam("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	var total int64
	if err := query.Count(&total).Error; err != nil {
		log.Error("Failed to count news", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load news"})
	}

	var articles []model.NewsArticle
	if err := query.Order("published_at DESC").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&articles).Error; err != nil {
		log.Error("Failed to load news", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load news"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"news":         articles,
		"total":        total,
		"pages":        pageCount(total, perPage),
		"current_page": page,
		"per_page":     perPage,
	})
}

// GetPartnerActivityLog returns a demo activity log alongside the partner's
// real login tracking fields.
func GetPartnerActivityLog(c echo.Context) error {
	log := logger.FromContext(c)

	partnerID := c.Get(middleware.UserIDKey).(uint)

	defer prometheus.TrackDBOperation("query")(time.Now())
	var partner model.Partner
	if result := database.GetDB().First(&partner, partnerID); result.Error != nil {
		log.Warn("Partner not found", zap.Uint("partner_id", partnerID))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Partner not found"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"activity_log": []echo.Map{
			{"id": 1, "action": "Login", "description": "Successful login to partner portal", "timestamp": time.Now().UTC().Format(time.RFC3339), "ip_address": "192.168.1.1"},
			{"id": 2, "action": "Message Sent", "description": "Sent message to admin team", "timestamp": time.Now().UTC().Format(time.RFC3339), "ip_address": "192.168.1.1"},
			{"id": 3, "action": "Document Downloaded", "description": "Downloaded Q4 2025 Market Report", "timestamp": time.Now().UTC().Format(time.RFC3339), "ip_address": "192.168.1.1"},
		},
		"partner_info": echo.Map{
			"login_count":  partner.LoginCount,
			"last_login":   partner.LastLogin,
			"member_since": partner.CreatedAt,
		},
	})
}
