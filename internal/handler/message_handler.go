package handler

import (
	"net/http"
	"strconv"
	"time"

	"partner-portal/internal/middleware"
	"partner-portal/internal/model"
	"partner-portal/pkg/database"
	"partner-portal/pkg/logger"
	"partner-portal/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// GetPartnerMessages returns the authenticated partner's messages, newest
// first. Fetching marks all of the partner's messages read - the read flag
// is keyed to the partner having seen their inbox, regardless of sender.
func GetPartnerMessages(c echo.Context) error {
	log := logger.FromContext(c)

	partnerID := c.Get(middleware.UserIDKey).(uint)
	page, perPage := pageParams(c, 20)

	defer prometheus.TrackDBOperation("query")(time.Now())
	var total int64
	if err := database.GetDB().Model(&model.Message{}).
		Where("partner_id = ?", partnerID).Count(&total).Error; err != nil {
		log.Error("Failed to count messages", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load messages"})
	}

	var messages []model.Message
	if err := database.GetDB().Where("partner_id = ?", partnerID).
		Order("created_at DESC").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&messages).Error; err != nil {
		log.Error("Failed to load messages", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load messages"})
	}

	// Mark everything read now that the partner has fetched their inbox
	defer prometheus.TrackDBOperation("update")(time.Now())
	if err := database.GetDB().Model(&model.Message{}).
		Where("partner_id = ? AND is_read = ?", partnerID, false).
		Update("is_read", true).Error; err != nil {
		log.Error("Failed to mark messages read", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load messages"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"messages":     messages,
		"total":        total,
		"pages":        pageCount(total, perPage),
		"current_page": page,
		"per_page":     perPage,
	})
}

// SendPartnerMessage appends a partner-origin message to the ledger.
func SendPartnerMessage(c echo.Context) error {
	log := logger.FromContext(c)

	partnerID := c.Get(middleware.UserIDKey).(uint)

	var req struct {
		Subject string `json:"subject"`
		Content string `json:"content"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	if req.Content == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Message content is required"})
	}

	message := model.Message{
		PartnerID:  partnerID,
		SenderType: model.SenderPartner,
		Subject:    req.Subject,
		Content:    req.Content,
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if result := database.GetDB().Create(&message); result.Error != nil {
		log.Error("Failed to create message", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to send message"})
	}
	prometheus.RecordMessageSent(model.SenderPartner)

	log.Info("Partner message sent",
		zap.Uint("partner_id", partnerID),
		zap.Uint("message_id", message.ID))

	return c.JSON(http.StatusCreated, echo.Map{
		"message":      "Message sent successfully",
		"message_data": message,
	})
}

// adminMessage is a ledger entry enriched with the owning partner's identity
// for the admin inbox view.
type adminMessage struct {
	model.Message
	PartnerName  string `json:"partner_name,omitempty"`
	PartnerEmail string `json:"partner_email,omitempty"`
}

// GetAdminMessages returns ledger messages for staff, newest first, with an
// optional partner filter. No read-marking happens on this path.
func GetAdminMessages(c echo.Context) error {
	log := logger.FromContext(c)

	page, perPage := pageParams(c, 20)

	query := database.GetDB().Model(&model.Message{})
	if partnerParam := c.QueryParam("partner_id"); partnerParam != "" {
		partnerID, err := strconv.ParseUint(partnerParam, 10, 32)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid partner ID"})
		}
		query = query.Where("partner_id = ?", partnerID)
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	var total int64
	if err := query.Count(&total).Error; err != nil {
		log.Error("Failed to count messages", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load messages"})
	}

	var messages []model.Message
	if err := query.Order("created_at DESC").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&messages).Error; err != nil {
		log.Error("Failed to load messages", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load messages"})
	}

	// Attach partner identity to each message
	enriched := make([]adminMessage, 0, len(messages))
	for _, msg := range messages {
		entry := adminMessage{Message: msg}
		var partner model.Partner
		if result := database.GetDB().Select("company_name", "email").First(&partner, msg.PartnerID); result.Error == nil {
			entry.PartnerName = partner.CompanyName
			entry.PartnerEmail = partner.Email
		}
		enriched = append(enriched, entry)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"messages":     enriched,
		"total":        total,
		"pages":        pageCount(total, perPage),
		"current_page": page,
		"per_page":     perPage,
	})
}

// SendAdminMessage appends an admin-origin message addressed to a partner.
func SendAdminMessage(c echo.Context) error {
	log := logger.FromContext(c)

	adminID := c.Get(middleware.UserIDKey).(uint)

	var req struct {
		PartnerID uint   `json:"partner_id"`
		Subject   string `json:"subject"`
		Content   string `json:"content"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	if req.PartnerID == 0 || req.Content == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Partner ID and content are required"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	var partner model.Partner
	if result := database.GetDB().First(&partner, req.PartnerID); result.Error != nil {
		log.Warn("Partner not found", zap.Uint("partner_id", req.PartnerID))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Partner not found"})
	}

	message := model.Message{
		PartnerID:  req.PartnerID,
		AdminID:    &adminID,
		SenderType: model.SenderAdmin,
		Subject:    req.Subject,
		Content:    req.Content,
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if result := database.GetDB().Create(&message); result.Error != nil {
		log.Error("Failed to create message", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to send message"})
	}
	prometheus.RecordMessageSent(model.SenderAdmin)

	log.Info("Admin message sent",
		zap.Uint("admin_id", adminID),
		zap.Uint("partner_id", req.PartnerID),
		zap.Uint("message_id", message.ID))

	return c.JSON(http.StatusCreated, echo.Map{
		"message":      "Message sent successfully",
		"message_data": message,
	})
}
