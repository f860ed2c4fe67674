package handler

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"partner-portal/internal/middleware"
	"partner-portal/internal/model"
	"partner-portal/pkg/config"
	"partner-portal/pkg/database"
	"partner-portal/pkg/jwtutil"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var testDBSeq int

// setupTest points the global DB at a fresh in-memory database and wires the
// auth policy and JWT config the handlers expect.
func setupTest(t *testing.T) *gorm.DB {
	t.Helper()

	testDBSeq++
	dsn := fmt.Sprintf("file:handler_test_%d?mode=memory&cache=shared", testDBSeq)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	prev := database.DB
	database.DB = db
	t.Cleanup(func() { database.DB = prev })

	jwtutil.Initialize(&config.JWTConfig{SigningKey: "handler-test-key", ExpirationDays: 7})
	SetAuthPolicy(config.AuthConfig{
		AllowDefaultCredential: true,
		DefaultPassword:        "demo123",
	})

	return db
}

// newJSONContext builds an echo context carrying a JSON body.
func newJSONContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// asPrincipal sets the context keys RequireAuth would have populated.
func asPrincipal(c echo.Context, userID uint, userType, email string) {
	c.Set(middleware.UserIDKey, userID)
	c.Set(middleware.UserTypeKey, userType)
	c.Set(middleware.EmailKey, email)
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func seedPartner(t *testing.T, db *gorm.DB, status model.PartnerStatus, password string) *model.Partner {
	t.Helper()
	testDBSeq++
	partner := &model.Partner{
		CompanyName:   "Acme Trading Co",
		ContactName:   "Jane Smith",
		Email:         fmt.Sprintf("partner%d@acme.example", testDBSeq),
		Phone:         "+61 2 5550 1234",
		Country:       "Australia",
		BusinessType:  "Agriculture",
		AnnualRevenue: "$1M - $5M",
		Experience:    "5-10 years",
		Status:        status,
	}
	if password != "" {
		require.NoError(t, partner.SetPassword(password))
	}
	require.NoError(t, db.Create(partner).Error)
	return partner
}

func seedAdmin(t *testing.T, db *gorm.DB, active bool) *model.Admin {
	t.Helper()
	testDBSeq++
	admin := &model.Admin{
		Username: fmt.Sprintf("admin%d", testDBSeq),
		Email:    fmt.Sprintf("admin%d@bztradewave.au", testDBSeq),
		IsActive: true,
	}
	require.NoError(t, admin.SetPassword("admin123"))
	require.NoError(t, db.Create(admin).Error)
	if !active {
		// Update instead of create: gorm fills a zero-valued bool from the
		// column default on insert.
		require.NoError(t, db.Model(admin).Update("is_active", false).Error)
		admin.IsActive = false
	}
	return admin
}
