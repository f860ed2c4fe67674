// Package lifecycle implements the partner application state machine.
//
// Transitions are admin-only operations. Each one runs in a single database
// transaction covering the status change, the audit fields and the
// notification message, so a failure part-way leaves no partial state.
package lifecycle

import (
	"errors"
	"fmt"

	"partner-portal/internal/model"

	"gorm.io/gorm"
)

// ErrInvalidTransition is returned when the partner's current status does
// not permit the requested transition. Nothing is mutated in that case.
var ErrInvalidTransition = errors.New("invalid state transition")

// Config carries the credential-provisioning policy applied on approval.
type Config struct {
	// AllowDefaultCredential provisions DefaultPassword for partners
	// approved without a credential. Demo convenience, intentionally
	// insecure; see AuthConfig in pkg/config.
	AllowDefaultCredential bool
	DefaultPassword        string
}

const (
	welcomeSubject = "Welcome to bzTradewave.au"
	welcomeContent = "Welcome to the partner portal! We're excited to work with you. " +
		"Please don't hesitate to reach out if you have any questions or need assistance."

	rejectionSubject  = "Partnership Application Update"
	rejectionTemplate = "Thank you for your interest in partnering with bzTradewave.au. " +
		"Unfortunately, we are unable to approve your application at this time. Reason: %s"

	suspensionSubject  = "Account Suspended"
	suspensionTemplate = "Your account has been suspended. Reason: %s. " +
		"Please contact support for more information."
)

// Approve moves a PENDING partner to APPROVED. It stamps approved_at and
// approved_by, provisions a default credential if the partner has none and
// the policy allows it, and appends a welcome message from the acting admin.
func Approve(db *gorm.DB, partnerID, adminID uint, cfg Config) (*model.Partner, error) {
	var partner model.Partner
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&partner, partnerID).Error; err != nil {
			return err
		}

		if partner.Status != model.StatusPending {
			return ErrInvalidTransition
		}

		now := tx.NowFunc()
		partner.Status = model.StatusApproved
		partner.ApprovedAt = &now
		partner.ApprovedBy = &adminID

		if partner.PasswordHash == "" && cfg.AllowDefaultCredential {
			if err := partner.SetPassword(cfg.DefaultPassword); err != nil {
				return err
			}
		}

		if err := tx.Save(&partner).Error; err != nil {
			return err
		}

		return appendNotice(tx, partner.ID, adminID, welcomeSubject, welcomeContent)
	})
	if err != nil {
		return nil, err
	}
	return &partner, nil
}

// Reject moves a PENDING partner to REJECTED and appends a rejection message
// with the reason interpolated into a fixed template.
func Reject(db *gorm.DB, partnerID, adminID uint, reason string) (*model.Partner, error) {
	var partner model.Partner
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&partner, partnerID).Error; err != nil {
			return err
		}

		if partner.Status != model.StatusPending {
			return ErrInvalidTransition
		}

		partner.Status = model.StatusRejected
		if err := tx.Save(&partner).Error; err != nil {
			return err
		}

		content := fmt.Sprintf(rejectionTemplate, reason)
		return appendNotice(tx, partner.ID, adminID, rejectionSubject, content)
	})
	if err != nil {
		return nil, err
	}
	return &partner, nil
}

// Suspend moves a PENDING or APPROVED partner to SUSPENDED and appends a
// suspension message. Rejected and already-suspended partners are terminal.
func Suspend(db *gorm.DB, partnerID, adminID uint, reason string) (*model.Partner, error) {
	var partner model.Partner
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&partner, partnerID).Error; err != nil {
			return err
		}

		if partner.Status != model.StatusPending && partner.Status != model.StatusApproved {
			return ErrInvalidTransition
		}

		partner.Status = model.StatusSuspended
		if err := tx.Save(&partner).Error; err != nil {
			return err
		}

		content := fmt.Sprintf(suspensionTemplate, reason)
		return appendNotice(tx, partner.ID, adminID, suspensionSubject, content)
	})
	if err != nil {
		return nil, err
	}
	return &partner, nil
}

func appendNotice(tx *gorm.DB, partnerID, adminID uint, subject, content string) error {
	notice := model.Message{
		PartnerID:  partnerID,
		AdminID:    &adminID,
		SenderType: model.SenderAdmin,
		Subject:    subject,
		Content:    content,
	}
	return tx.Create(&notice).Error
}
