package handler

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"partner-portal/internal/model"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func transitionContext(t *testing.T, adminID, partnerID uint, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	c, rec := newJSONContext(t, http.MethodPost, "/", body)
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprint(partnerID))
	asPrincipal(c, adminID, model.SenderAdmin, "admin@bztradewave.au")
	return c, rec
}

func TestApprovePartnerEndpoint(t *testing.T) {
	db := setupTest(t)
	admin := seedAdmin(t, db, true)
	partner := seedPartner(t, db, model.StatusPending, "")

	c, rec := transitionContext(t, admin.ID, partner.ID, "")
	require.NoError(t, ApprovePartner(c))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Partner approved successfully", decodeBody(t, rec)["message"])

	var reloaded model.Partner
	require.NoError(t, db.First(&reloaded, partner.ID).Error)
	assert.Equal(t, model.StatusApproved, reloaded.Status)
	require.NotNil(t, reloaded.ApprovedBy)
	assert.Equal(t, admin.ID, *reloaded.ApprovedBy)
	// Default credential provisioned under the test policy
	assert.True(t, reloaded.CheckPassword("demo123"))
}

func TestApprovePartnerAlreadyApproved(t *testing.T) {
	db := setupTest(t)
	admin := seedAdmin(t, db, true)
	partner := seedPartner(t, db, model.StatusApproved, "")

	c, rec := transitionContext(t, admin.ID, partner.ID, "")
	require.NoError(t, ApprovePartner(c))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Partner application is not pending", decodeBody(t, rec)["error"])
}

func TestApprovePartnerNotFound(t *testing.T) {
	db := setupTest(t)
	admin := seedAdmin(t, db, true)

	c, rec := transitionContext(t, admin.ID, 9999, "")
	require.NoError(t, ApprovePartner(c))

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Partner not found", decodeBody(t, rec)["error"])
}

func TestRejectPartnerWithReason(t *testing.T) {
	db := setupTest(t)
	admin := seedAdmin(t, db, true)
	partner := seedPartner(t, db, model.StatusPending, "")

	c, rec := transitionContext(t, admin.ID, partner.ID, `{"reason": "insufficient revenue"}`)
	require.NoError(t, RejectPartner(c))

	require.Equal(t, http.StatusOK, rec.Code)

	var message model.Message
	require.NoError(t, db.Where("partner_id = ?", partner.ID).First(&message).Error)
	assert.Contains(t, message.Content, "Reason: insufficient revenue")
}

func TestRejectPartnerDefaultReason(t *testing.T) {
	db := setupTest(t)
	admin := seedAdmin(t, db, true)
	partner := seedPartner(t, db, model.StatusPending, "")

	c, rec := transitionContext(t, admin.ID, partner.ID, "")
	require.NoError(t, RejectPartner(c))

	require.Equal(t, http.StatusOK, rec.Code)

	var message model.Message
	require.NoError(t, db.Where("partner_id = ?", partner.ID).First(&message).Error)
	assert.Contains(t, message.Content, "Reason: Application does not meet our requirements")
}

func TestSuspendPartnerEndpoint(t *testing.T) {
	db := setupTest(t)
	admin := seedAdmin(t, db, true)
	partner := seedPartner(t, db, model.StatusApproved, "secret-pass")

	c, rec := transitionContext(t, admin.ID, partner.ID, `{"reason": "terms violation"}`)
	require.NoError(t, SuspendPartner(c))

	require.Equal(t, http.StatusOK, rec.Code)

	var reloaded model.Partner
	require.NoError(t, db.First(&reloaded, partner.ID).Error)
	assert.Equal(t, model.StatusSuspended, reloaded.Status)
}

func TestSuspendRejectedPartner(t *testing.T) {
	db := setupTest(t)
	admin := seedAdmin(t, db, true)
	partner := seedPartner(t, db, model.StatusRejected, "")

	c, rec := transitionContext(t, admin.ID, partner.ID, "")
	require.NoError(t, SuspendPartner(c))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Partner account cannot be suspended", decodeBody(t, rec)["error"])
}

func TestTransitionInvalidID(t *testing.T) {
	db := setupTest(t)
	admin := seedAdmin(t, db, true)

	c, rec := newJSONContext(t, http.MethodPost, "/", "")
	c.SetParamNames("id")
	c.SetParamValues("not-a-number")
	asPrincipal(c, admin.ID, model.SenderAdmin, admin.Email)
	require.NoError(t, ApprovePartner(c))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid partner ID", decodeBody(t, rec)["error"])
}

func TestApproveThenFirstLogin(t *testing.T) {
	db := setupTest(t)
	admin := seedAdmin(t, db, true)
	partner := seedPartner(t, db, model.StatusPending, "")

	c, rec := transitionContext(t, admin.ID, partner.ID, "")
	require.NoError(t, ApprovePartner(c))
	require.Equal(t, http.StatusOK, rec.Code)

	// Approval dropped a welcome message into the inbox
	var welcome model.Message
	require.NoError(t, db.Where("partner_id = ?", partner.ID).First(&welcome).Error)
	assert.Equal(t, "Welcome to bzTradewave.au", welcome.Subject)

	// First login with the provisioned default credential
	body := fmt.Sprintf(`{"email": %q, "password": "demo123"}`, partner.Email)
	c, rec = newJSONContext(t, http.MethodPost, "/api/auth/partner/login", body)
	require.NoError(t, PartnerLogin(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var reloaded model.Partner
	require.NoError(t, db.First(&reloaded, partner.ID).Error)
	assert.Equal(t, 1, reloaded.LoginCount)
}

func TestGetPartnerApplicationsFilters(t *testing.T) {
	db := setupTest(t)
	admin := seedAdmin(t, db, true)
	seedPartner(t, db, model.StatusPending, "")
	seedPartner(t, db, model.StatusPending, "")
	seedPartner(t, db, model.StatusApproved, "")

	c, rec := newJSONContext(t, http.MethodGet, "/api/admin/partners/applications?status=pending", "")
	asPrincipal(c, admin.ID, model.SenderAdmin, admin.Email)
	require.NoError(t, GetPartnerApplications(c))

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody(t, rec)
	assert.EqualValues(t, 2, resp["total"])
	assert.EqualValues(t, 1, resp["current_page"])
}

func TestGetActivePartners(t *testing.T) {
	db := setupTest(t)
	admin := seedAdmin(t, db, true)
	seedPartner(t, db, model.StatusApproved, "")
	seedPartner(t, db, model.StatusPending, "")
	seedPartner(t, db, model.StatusSuspended, "")

	c, rec := newJSONContext(t, http.MethodGet, "/api/admin/partners/active", "")
	asPrincipal(c, admin.ID, model.SenderAdmin, admin.Email)
	require.NoError(t, GetActivePartners(c))

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody(t, rec)
	assert.EqualValues(t, 1, resp["total"])
}
