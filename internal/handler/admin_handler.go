package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"partner-portal/internal/lifecycle"
	"partner-portal/internal/middleware"
	"partner-portal/internal/model"
	"partner-portal/pkg/database"
	"partner-portal/pkg/logger"
	"partner-portal/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// GetDashboardStats returns admin dashboard statistics. Partner counts are
// real; growth and trade figures are demo placeholders.
func GetDashboardStats(c echo.Context) error {
	log := logger.FromContext(c)

	defer prometheus.TrackDBOperation("query")(time.Now())
	var totalPartners, pendingApplications int64
	if err := database.GetDB().Model(&model.Partner{}).
		Where("status = ?", model.StatusApproved).Count(&totalPartners).Error; err != nil {
		log.Error("Failed to count partners", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load stats"})
	}
	if err := database.GetDB().Model(&model.Partner{}).
		Where("status = ?", model.StatusPending).Count(&pendingApplications).Error; err != nil {
		log.Error("Failed to count applications", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load stats"})
	}
	prometheus.UpdatePendingApplications(pendingApplications)

	return c.JSON(http.StatusOK, echo.Map{
		"stats": echo.Map{
			"total_partners":       totalPartners,
			"partner_growth":       "+12",
			"pending_applications": pendingApplications,
			"application_growth":   "+3",
			"trade_volume":         "$17M",
			"volume_growth":        "+15%",
			"active_countries":     25,
			"country_growth":       "+2",
		},
	})
}

// GetPartnerApplications lists partner applications, newest first, with
// optional status filter and search over company, contact and email.
func GetPartnerApplications(c echo.Context) error {
	log := logger.FromContext(c)

	page, perPage := pageParams(c, 10)

	query := database.GetDB().Model(&model.Partner{})

	if status := c.QueryParam("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if search := c.QueryParam("search"); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("company_name LIKE ? OR contact_name LIKE ? OR email LIKE ?",
			pattern, pattern, pattern)
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	var total int64
	if err := query.Count(&total).Error; err != nil {
		log.Error("Failed to count applications", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load applications"})
	}

	var partners []model.Partner
	if err := query.Order("created_at DESC").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&partners).Error; err != nil {
		log.Error("Failed to load applications", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load applications"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"applications": partners,
		"total":        total,
		"pages":        pageCount(total, perPage),
		"current_page": page,
		"per_page":     perPage,
	})
}

// GetActivePartners lists approved partners ordered by most recent login.
func GetActivePartners(c echo.Context) error {
	log := logger.FromContext(c)

	page, perPage := pageParams(c, 10)

	query := database.GetDB().Model(&model.Partner{}).Where("status = ?", model.StatusApproved)
	if search := c.QueryParam("search"); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("company_name LIKE ? OR contact_name LIKE ? OR email LIKE ?",
			pattern, pattern, pattern)
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	var total int64
	if err := query.Count(&total).Error; err != nil {
		log.Error("Failed to count partners", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load partners"})
	}

	var partners []model.Partner
	if err := query.Order("last_login DESC").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&partners).Error; err != nil {
		log.Error("Failed to load partners", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load partners"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"partners":     partners,
		"total":        total,
		"pages":        pageCount(total, perPage),
		"current_page": page,
		"per_page":     perPage,
	})
}

// GetPartnerDetails returns a partner with its recent messages and documents.
func GetPartnerDetails(c echo.Context) error {
	log := logger.FromContext(c)

	partnerID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid partner ID"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	var partner model.Partner
	if result := database.GetDB().First(&partner, partnerID); result.Error != nil {
		log.Warn("Partner not found", zap.Uint64("partner_id", partnerID))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Partner not found"})
	}

	var messages []model.Message
	database.GetDB().Where("partner_id = ?", partnerID).
		Order("created_at DESC").Limit(10).Find(&messages)

	var documents []model.Document
	database.GetDB().Where("partner_id = ?", partnerID).
		Order("created_at DESC").Limit(10).Find(&documents)

	return c.JSON(http.StatusOK, echo.Map{
		"partner":          partner,
		"recent_messages":  messages,
		"recent_documents": documents,
	})
}

// ApprovePartner triggers the PENDING -> APPROVED transition.
func ApprovePartner(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordTransition("approve")

	partnerID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid partner ID"})
	}
	adminID := c.Get(middleware.UserIDKey).(uint)

	defer prometheus.TrackDBOperation("update")(time.Now())
	partner, err := lifecycle.Approve(database.GetDB(), uint(partnerID), adminID, lifecycle.Config{
		AllowDefaultCredential: authPolicy.AllowDefaultCredential,
		DefaultPassword:        authPolicy.DefaultPassword,
	})
	if err != nil {
		return transitionError(c, log, err, "Partner application is not pending")
	}

	log.Info("Partner approved",
		zap.Uint("partner_id", partner.ID),
		zap.Uint("admin_id", adminID))

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Partner approved successfully",
		"partner": partner,
	})
}

// RejectPartner triggers the PENDING -> REJECTED transition.
func RejectPartner(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordTransition("reject")

	partnerID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid partner ID"})
	}
	adminID := c.Get(middleware.UserIDKey).(uint)

	var req struct {
		Reason string `json:"reason"`
	}
	// Body is optional; a missing reason falls back to the stock phrasing
	_ = c.Bind(&req)
	if req.Reason == "" {
		req.Reason = "Application does not meet our requirements"
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	partner, err := lifecycle.Reject(database.GetDB(), uint(partnerID), adminID, req.Reason)
	if err != nil {
		return transitionError(c, log, err, "Partner application is not pending")
	}

	log.Info("Partner application rejected",
		zap.Uint("partner_id", partner.ID),
		zap.Uint("admin_id", adminID),
		zap.String("reason", req.Reason))

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Partner application rejected",
		"partner": partner,
	})
}

// SuspendPartner triggers the transition to SUSPENDED from any non-terminal
// status.
func SuspendPartner(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordTransition("suspend")

	partnerID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid partner ID"})
	}
	adminID := c.Get(middleware.UserIDKey).(uint)

	var req struct {
		Reason string `json:"reason"`
	}
	_ = c.Bind(&req)
	if req.Reason == "" {
		req.Reason = "Account suspended by admin"
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	partner, err := lifecycle.Suspend(database.GetDB(), uint(partnerID), adminID, req.Reason)
	if err != nil {
		return transitionError(c, log, err, "Partner account cannot be suspended")
	}

	log.Info("Partner account suspended",
		zap.Uint("partner_id", partner.ID),
		zap.Uint("admin_id", adminID),
		zap.String("reason", req.Reason))

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Partner account suspended",
		"partner": partner,
	})
}

// transitionError maps lifecycle errors onto HTTP responses.
func transitionError(c echo.Context, log *zap.Logger, err error, conflictMsg string) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Partner not found"})
	case errors.Is(err, lifecycle.ErrInvalidTransition):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": conflictMsg})
	default:
		log.Error("Lifecycle transition failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "operation failed"})
	}
}
