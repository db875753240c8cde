// hospital/controllers/consultation.go
package controllers

import (
	"context"
	"errors"

	"hospital/hospital/sources/mail"
	"hospital/hospital/sources/psql/dao"
	"hospital/hospital/sources/psql/models"
	"hospital/hospital/utils/logging"
	"hospital/hospital/utils/types"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ConsultationController struct {
	db              *gorm.DB
	consultationDAO *dao.ConsultationDAO
	slotDAO         *dao.SlotDAO
	notifier        StatusNotifier
}

func NewConsultationController(db *gorm.DB, consultationDAO *dao.ConsultationDAO, slotDAO *dao.SlotDAO, notifier StatusNotifier) *ConsultationController {
	return &ConsultationController{
		db:              db,
		consultationDAO: consultationDAO,
		slotDAO:         slotDAO,
		notifier:        notifier,
	}
}

// UpdateStatus applies a doctor's decision. Allowed moves are
// Pending -> Accepted|Rejected and Accepted -> Completed. A rejection gives the
// slot back to the doctor. The patient is emailed after the change commits.
func (c *ConsultationController) UpdateStatus(ctx context.Context, p types.Principal, consultationID uint, status string) (*models.Consultation, error) {
	defer logging.LogDuration(ctx, "UpdateConsultationStatus")()
	target, ok := models.ParseTargetStatus(status)
	if !ok {
		return nil, validationError("Invalid status value")
	}

	consultation, err := c.consultationDAO.GetConsultationByID(ctx, consultationID)
	if err != nil {
		return nil, storageError("get consultation", err)
	}
	if consultation == nil {
		return nil, notFound("consultation")
	}
	if !p.IsDoctor() || consultation.DoctorID != p.UserID {
		return nil, forbidden("only the consultation's doctor can change its status")
	}
	from := consultation.Status
	if !from.CanTransition(target) {
		return nil, conflict("cannot move consultation from " + string(from) + " to " + string(target))
	}

	err = c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		moved, err := c.consultationDAO.WithTx(tx).UpdateStatus(ctx, consultationID, from, target)
		if err != nil {
			return storageError("update status", err)
		}
		if !moved {
			return conflict("consultation status changed concurrently")
		}
		if target == models.StatusRejected {
			if err := c.slotDAO.WithTx(tx).AddSlots(ctx, consultation.DoctorID, []string{consultation.Slot}); err != nil {
				return storageError("release slot", err)
			}
		}
		return nil
	})
	if err != nil {
		var kerr *Error
		if errors.As(err, &kerr) {
			return nil, err
		}
		return nil, storageError("update status", err)
	}
	consultation.Status = target

	logging.AppLogger.Info("consultation status changed",
		zap.Uint("consultation_id", consultationID),
		zap.String("from", string(from)),
		zap.String("to", string(target)),
	)
	c.notify(ctx, consultation)
	return consultation, nil
}

func (c *ConsultationController) notify(ctx context.Context, consultation *models.Consultation) {
	if c.notifier == nil || consultation.Patient == nil {
		return
	}
	notice := mail.StatusNotice{
		PatientEmail: consultation.Patient.Email,
		PatientName:  consultation.Patient.Name,
		Slot:         consultation.Slot,
		Status:       string(consultation.Status),
	}
	if consultation.Doctor != nil {
		notice.DoctorName = consultation.Doctor.Name
	}
	if err := c.notifier.ConsultationStatusChanged(ctx, notice); err != nil {
		logging.ErrorLogger.Error("status email failed",
			zap.Uint("consultation_id", consultation.ID),
			zap.String("status", notice.Status),
			zap.Error(err),
		)
	}
}
