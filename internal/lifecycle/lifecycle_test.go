package lifecycle

import (
	"fmt"
	"testing"

	"partner-portal/internal/model"
	"partner-portal/pkg/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared&_fk=1"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		db.Exec("DELETE FROM messages")
		db.Exec("DELETE FROM partners")
		db.Exec("DELETE FROM admins")
	})
	return db
}

var partnerSeq int

func createPartner(t *testing.T, db *gorm.DB, status model.PartnerStatus) *model.Partner {
	t.Helper()
	partnerSeq++
	partner := &model.Partner{
		CompanyName:   "Acme Trading Co",
		ContactName:   "Jane Smith",
		Email:         fmt.Sprintf("jane+%d@acme.example", partnerSeq),
		Phone:         "+61 2 5550 1234",
		Country:       "Australia",
		BusinessType:  "Agriculture",
		AnnualRevenue: "$1M - $5M",
		Experience:    "5-10 years",
		Status:        status,
	}
	require.NoError(t, db.Create(partner).Error)
	return partner
}

func partnerMessages(t *testing.T, db *gorm.DB, partnerID uint) []model.Message {
	t.Helper()
	var messages []model.Message
	require.NoError(t, db.Where("partner_id = ?", partnerID).Find(&messages).Error)
	return messages
}

func TestApprovePendingPartner(t *testing.T) {
	db := newTestDB(t)
	partner := createPartner(t, db, model.StatusPending)

	approved, err := Approve(db, partner.ID, 7, Config{
		AllowDefaultCredential: true,
		DefaultPassword:        "demo123",
	})
	require.NoError(t, err)

	assert.Equal(t, model.StatusApproved, approved.Status)
	require.NotNil(t, approved.ApprovedAt)
	require.NotNil(t, approved.ApprovedBy)
	assert.Equal(t, uint(7), *approved.ApprovedBy)

	// Default credential was provisioned for a partner without one.
	assert.True(t, approved.CheckPassword("demo123"))

	messages := partnerMessages(t, db, partner.ID)
	require.Len(t, messages, 1)
	assert.Equal(t, "Welcome to bzTradewave.au", messages[0].Subject)
	assert.Equal(t, model.SenderAdmin, messages[0].SenderType)
	require.NotNil(t, messages[0].AdminID)
	assert.Equal(t, uint(7), *messages[0].AdminID)
}

func TestApproveKeepsExistingCredential(t *testing.T) {
	db := newTestDB(t)
	partner := createPartner(t, db, model.StatusPending)
	require.NoError(t, partner.SetPassword("chosen-by-partner"))
	require.NoError(t, db.Save(partner).Error)

	approved, err := Approve(db, partner.ID, 1, Config{
		AllowDefaultCredential: true,
		DefaultPassword:        "demo123",
	})
	require.NoError(t, err)

	assert.True(t, approved.CheckPassword("chosen-by-partner"))
	assert.False(t, approved.CheckPassword("demo123"))
}

func TestApproveWithoutDefaultCredentialPolicy(t *testing.T) {
	db := newTestDB(t)
	partner := createPartner(t, db, model.StatusPending)

	approved, err := Approve(db, partner.ID, 1, Config{AllowDefaultCredential: false})
	require.NoError(t, err)

	assert.Equal(t, model.StatusApproved, approved.Status)
	assert.Empty(t, approved.PasswordHash)
}

func TestRejectPendingPartner(t *testing.T) {
	db := newTestDB(t)
	partner := createPartner(t, db, model.StatusPending)

	rejected, err := Reject(db, partner.ID, 3, "insufficient revenue")
	require.NoError(t, err)
	assert.Equal(t, model.StatusRejected, rejected.Status)
	assert.Nil(t, rejected.ApprovedAt)

	messages := partnerMessages(t, db, partner.ID)
	require.Len(t, messages, 1)
	assert.Equal(t, "Partnership Application Update", messages[0].Subject)
	assert.Contains(t, messages[0].Content, "Reason: insufficient revenue")
}

func TestSuspendApprovedPartner(t *testing.T) {
	db := newTestDB(t)
	partner := createPartner(t, db, model.StatusApproved)

	suspended, err := Suspend(db, partner.ID, 2, "terms violation")
	require.NoError(t, err)
	assert.Equal(t, model.StatusSuspended, suspended.Status)

	messages := partnerMessages(t, db, partner.ID)
	require.Len(t, messages, 1)
	assert.Equal(t, "Account Suspended", messages[0].Subject)
	assert.Contains(t, messages[0].Content, "Reason: terms violation")
	assert.Contains(t, messages[0].Content, "contact support")
}

func TestSuspendPendingPartner(t *testing.T) {
	db := newTestDB(t)
	partner := createPartner(t, db, model.StatusPending)

	suspended, err := Suspend(db, partner.ID, 2, "fraud review")
	require.NoError(t, err)
	assert.Equal(t, model.StatusSuspended, suspended.Status)
}

func TestInvalidTransitionsLeaveStateUntouched(t *testing.T) {
	db := newTestDB(t)

	cases := []struct {
		name string
		from model.PartnerStatus
		call func(id uint) error
	}{
		{"approve approved", model.StatusApproved, func(id uint) error {
			_, err := Approve(db, id, 1, Config{})
			return err
		}},
		{"approve rejected", model.StatusRejected, func(id uint) error {
			_, err := Approve(db, id, 1, Config{})
			return err
		}},
		{"reject rejected", model.StatusRejected, func(id uint) error {
			_, err := Reject(db, id, 1, "again")
			return err
		}},
		{"reject approved", model.StatusApproved, func(id uint) error {
			_, err := Reject(db, id, 1, "late")
			return err
		}},
		{"reject suspended", model.StatusSuspended, func(id uint) error {
			_, err := Reject(db, id, 1, "late")
			return err
		}},
		{"suspend rejected", model.StatusRejected, func(id uint) error {
			_, err := Suspend(db, id, 1, "n/a")
			return err
		}},
		{"suspend suspended", model.StatusSuspended, func(id uint) error {
			_, err := Suspend(db, id, 1, "n/a")
			return err
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			partner := createPartner(t, db, tc.from)

			err := tc.call(partner.ID)
			assert.ErrorIs(t, err, ErrInvalidTransition)

			var reloaded model.Partner
			require.NoError(t, db.First(&reloaded, partner.ID).Error)
			assert.Equal(t, tc.from, reloaded.Status)
			assert.Empty(t, partnerMessages(t, db, partner.ID))
		})
	}
}

func TestTransitionUnknownPartner(t *testing.T) {
	db := newTestDB(t)

	_, err := Approve(db, 9999, 1, Config{})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = Reject(db, 9999, 1, "missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = Suspend(db, 9999, 1, "missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
