package handler

import (
	"net/http"
	"time"

	"partner-portal/internal/middleware"
	"partner-portal/internal/model"
	"partner-portal/pkg/config"
	"partner-portal/pkg/database"
	"partner-portal/pkg/jwtutil"
	"partner-portal/pkg/logger"
	"partner-portal/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// authPolicy is the credential-provisioning policy, set once at startup.
var authPolicy config.AuthConfig

// SetAuthPolicy wires the auth policy from configuration.
func SetAuthPolicy(cfg config.AuthConfig) {
	authPolicy = cfg
}

// Register creates a new PENDING partner application.
func Register(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RegisterCounter.Inc()

	var req struct {
		CompanyName   string `json:"company_name"`
		ContactName   string `json:"contact_name"`
		Email         string `json:"email"`
		Phone         string `json:"phone"`
		Country       string `json:"country"`
		BusinessType  string `json:"business_type"`
		AnnualRevenue string `json:"annual_revenue"`
		Experience    string `json:"experience"`
		Interests     string `json:"interests"`
		Message       string `json:"message"`
	}

	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse registration request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	// Validate required fields
	required := map[string]string{
		"company_name":   req.CompanyName,
		"contact_name":   req.ContactName,
		"email":          req.Email,
		"phone":          req.Phone,
		"country":        req.Country,
		"business_type":  req.BusinessType,
		"annual_revenue": req.AnnualRevenue,
		"experience":     req.Experience,
	}
	for _, field := range []string{"company_name", "contact_name", "email", "phone",
		"country", "business_type", "annual_revenue", "experience"} {
		if required[field] == "" {
			prometheus.RecordAuthError("incomplete_registration")
			return c.JSON(http.StatusBadRequest, echo.Map{"error": field + " is required"})
		}
	}

	if !model.ValidBusinessType(req.BusinessType) {
		prometheus.RecordAuthError("invalid_business_type")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "business_type is not a recognized category"})
	}

	// Check if email already exists
	defer prometheus.TrackDBOperation("query")(time.Now())
	var existing model.Partner
	if result := database.GetDB().Where("email = ?", req.Email).First(&existing); result.Error == nil {
		log.Warn("Email already registered", zap.String("email", req.Email))
		prometheus.RecordAuthError("email_already_exists")
		return c.JSON(http.StatusConflict, echo.Map{"error": "Email already registered"})
	}

	partner := model.Partner{
		CompanyName:   req.CompanyName,
		ContactName:   req.ContactName,
		Email:         req.Email,
		Phone:         req.Phone,
		Country:       req.Country,
		BusinessType:  req.BusinessType,
		AnnualRevenue: req.AnnualRevenue,
		Experience:    req.Experience,
		Interests:     req.Interests,
		Message:       req.Message,
		Status:        model.StatusPending,
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if result := database.GetDB().Create(&partner); result.Error != nil {
		log.Error("Failed to create partner", zap.Error(result.Error))
		prometheus.RecordAuthError("partner_creation_failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "registration failed"})
	}

	log.Info("Partner application submitted",
		zap.Uint("partner_id", partner.ID),
		zap.String("email", partner.Email),
		zap.String("company", partner.CompanyName))

	return c.JSON(http.StatusCreated, echo.Map{
		"message":    "Partnership application submitted successfully",
		"partner_id": partner.ID,
	})
}

// PartnerLogin authenticates an approved partner by email and password.
func PartnerLogin(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordLogin(model.SenderPartner)

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := c.Bind(&req); err != nil {
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	if req.Email == "" || req.Password == "" {
		prometheus.RecordAuthError("incomplete_login")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Email and password are required"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	var partner model.Partner
	if result := database.GetDB().Where("email = ?", req.Email).First(&partner); result.Error != nil {
		// Never reveal whether the email exists
		log.Warn("Partner not found", zap.String("email", req.Email))
		prometheus.RecordAuthError("login_failure")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid credentials"})
	}

	// Only approved partners may authenticate
	if partner.Status != model.StatusApproved {
		log.Warn("Login attempt by non-approved partner",
			zap.String("email", req.Email),
			zap.String("status", string(partner.Status)))
		prometheus.RecordAuthError("partner_not_approved")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": partner.Status.LoginMessage()})
	}

	// Provision the default credential if enabled and none is set
	if partner.PasswordHash == "" && authPolicy.AllowDefaultCredential {
		if err := partner.SetPassword(authPolicy.DefaultPassword); err != nil {
			log.Error("Failed to provision default credential", zap.Error(err))
			prometheus.RecordAuthError("password_hash_failed")
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "login failed"})
		}
		if err := database.GetDB().Model(&partner).Update("password_hash", partner.PasswordHash).Error; err != nil {
			log.Error("Failed to store default credential", zap.Error(err))
			prometheus.RecordAuthError("db_error")
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "login failed"})
		}
		log.Info("Provisioned default credential", zap.Uint("partner_id", partner.ID))
	}

	if !partner.CheckPassword(req.Password) {
		log.Warn("Invalid password", zap.String("email", req.Email))
		prometheus.RecordAuthError("login_failure")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid credentials"})
	}

	// Update login tracking
	now := time.Now()
	partner.LastLogin = &now
	partner.LoginCount++
	defer prometheus.TrackDBOperation("update")(time.Now())
	if err := database.GetDB().Model(&partner).Updates(map[string]interface{}{
		"last_login":  partner.LastLogin,
		"login_count": partner.LoginCount,
	}).Error; err != nil {
		log.Error("Failed to update login tracking", zap.Error(err))
		prometheus.RecordAuthError("db_error")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "login failed"})
	}

	token, err := jwtutil.GenerateToken(partner.ID, model.SenderPartner, partner.Email)
	if err != nil {
		log.Error("Failed to generate token", zap.Error(err))
		prometheus.RecordAuthError("token_generation_failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token error"})
	}
	prometheus.IncreaseActiveTokens()

	log.Info("Partner logged in",
		zap.Uint("partner_id", partner.ID),
		zap.String("email", partner.Email),
		zap.Int("login_count", partner.LoginCount))

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Login successful",
		"token":   token,
		"partner": partner,
	})
}

// AdminLogin authenticates an active admin by username or email.
func AdminLogin(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordLogin(model.SenderAdmin)

	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if err := c.Bind(&req); err != nil {
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	if req.Username == "" || req.Password == "" {
		prometheus.RecordAuthError("incomplete_login")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Username and password are required"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	var admin model.Admin
	result := database.GetDB().
		Where("username = ? OR email = ?", req.Username, req.Username).
		First(&admin)
	if result.Error != nil || !admin.CheckPassword(req.Password) {
		log.Warn("Invalid admin credentials", zap.String("username", req.Username))
		prometheus.RecordAuthError("login_failure")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid credentials"})
	}

	if !admin.IsActive {
		log.Warn("Deactivated admin login attempt", zap.Uint("admin_id", admin.ID))
		prometheus.RecordAuthError("admin_deactivated")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Account is deactivated"})
	}

	now := time.Now()
	defer prometheus.TrackDBOperation("update")(time.Now())
	if err := database.GetDB().Model(&admin).Update("last_login", now).Error; err != nil {
		log.Error("Failed to update last login", zap.Error(err))
		prometheus.RecordAuthError("db_error")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "login failed"})
	}
	admin.LastLogin = &now

	token, err := jwtutil.GenerateToken(admin.ID, model.SenderAdmin, admin.Email)
	if err != nil {
		log.Error("Failed to generate token", zap.Error(err))
		prometheus.RecordAuthError("token_generation_failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token error"})
	}
	prometheus.IncreaseActiveTokens()

	log.Info("Admin logged in", zap.Uint("admin_id", admin.ID), zap.String("username", admin.Username))

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Login successful",
		"token":   token,
		"admin":   admin,
	})
}

// VerifyToken re-validates the bearer token and re-resolves the principal
// from the store, so a deleted or deactivated principal invalidates an
// otherwise-valid token.
func VerifyToken(c echo.Context) error {
	log := logger.FromContext(c)

	userID := c.Get(middleware.UserIDKey).(uint)
	userType := c.Get(middleware.UserTypeKey).(string)

	defer prometheus.TrackDBOperation("query")(time.Now())
	switch userType {
	case model.SenderPartner:
		var partner model.Partner
		if result := database.GetDB().First(&partner, userID); result.Error != nil || partner.Status != model.StatusApproved {
			log.Warn("Partner not found or not approved", zap.Uint("partner_id", userID))
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Partner not found or not approved"})
		}
		return c.JSON(http.StatusOK, echo.Map{
			"valid":     true,
			"user_type": model.SenderPartner,
			"user":      partner,
		})
	case model.SenderAdmin:
		var admin model.Admin
		if result := database.GetDB().First(&admin, userID); result.Error != nil || !admin.IsActive {
			log.Warn("Admin not found or inactive", zap.Uint("admin_id", userID))
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Admin not found or inactive"})
		}
		return c.JSON(http.StatusOK, echo.Map{
			"valid":     true,
			"user_type": model.SenderAdmin,
			"user":      admin,
		})
	}

	return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid user type"})
}

// GetPartnerProfile returns the authenticated partner's profile.
func GetPartnerProfile(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordAuthOperation("profile_access")

	partnerID := c.Get(middleware.UserIDKey).(uint)

	defer prometheus.TrackDBOperation("query")(time.Now())
	var partner model.Partner
	if result := database.GetDB().First(&partner, partnerID); result.Error != nil {
		log.Warn("Partner not found", zap.Uint("partner_id", partnerID))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Partner not found"})
	}

	return c.JSON(http.StatusOK, echo.Map{"partner": partner})
}

// UpdatePartnerProfile updates the restricted allowlist of profile fields:
// contact_name, phone and interests. Everything else is immutable here.
func UpdatePartnerProfile(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordAuthOperation("profile_update")

	partnerID := c.Get(middleware.UserIDKey).(uint)

	defer prometheus.TrackDBOperation("query")(time.Now())
	var partner model.Partner
	if result := database.GetDB().First(&partner, partnerID); result.Error != nil {
		log.Warn("Partner not found", zap.Uint("partner_id", partnerID))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Partner not found"})
	}

	var req map[string]interface{}
	if err := c.Bind(&req); err != nil {
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	updates := map[string]interface{}{}
	for _, field := range []string{"contact_name", "phone", "interests"} {
		if value, ok := req[field]; ok {
			updates[field] = value
		}
	}

	if len(updates) > 0 {
		defer prometheus.TrackDBOperation("update")(time.Now())
		if err := database.GetDB().Model(&partner).Updates(updates).Error; err != nil {
			log.Error("Failed to update profile", zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "profile update failed"})
		}
	}

	// Reload so the response reflects what was stored
	if result := database.GetDB().First(&partner, partnerID); result.Error != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "profile update failed"})
	}

	log.Info("Partner profile updated", zap.Uint("partner_id", partnerID))

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Profile updated successfully",
		"partner": partner,
	})
}

// ChangePassword verifies the current credential and stores a new one.
// New passwords below six characters are rejected.
func ChangePassword(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordAuthOperation("password_change")

	var req struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}

	if err := c.Bind(&req); err != nil {
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	if req.CurrentPassword == "" || req.NewPassword == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Current and new passwords are required"})
	}

	if len(req.NewPassword) < 6 {
		prometheus.RecordAuthError("weak_password")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "New password must be at least 6 characters long"})
	}

	userID := c.Get(middleware.UserIDKey).(uint)
	userType := c.Get(middleware.UserTypeKey).(string)

	defer prometheus.TrackDBOperation("update")(time.Now())
	switch userType {
	case model.SenderPartner:
		var partner model.Partner
		if result := database.GetDB().First(&partner, userID); result.Error != nil {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "User not found"})
		}
		if !partner.CheckPassword(req.CurrentPassword) {
			prometheus.RecordAuthError("password_mismatch")
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Current password is incorrect"})
		}
		if err := partner.SetPassword(req.NewPassword); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "password change failed"})
		}
		if err := database.GetDB().Model(&partner).Update("password_hash", partner.PasswordHash).Error; err != nil {
			log.Error("Failed to store new password", zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "password change failed"})
		}
	case model.SenderAdmin:
		var admin model.Admin
		if result := database.GetDB().First(&admin, userID); result.Error != nil {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "User not found"})
		}
		if !admin.CheckPassword(req.CurrentPassword) {
			prometheus.RecordAuthError("password_mismatch")
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Current password is incorrect"})
		}
		if err := admin.SetPassword(req.NewPassword); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "password change failed"})
		}
		if err := database.GetDB().Model(&admin).Update("password_hash", admin.PasswordHash).Error; err != nil {
			log.Error("Failed to store new password", zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "password change failed"})
		}
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid user type"})
	}

	log.Info("Password changed", zap.Uint("user_id", userID), zap.String("user_type", userType))

	return c.JSON(http.StatusOK, echo.Map{"message": "Password changed successfully"})
}
