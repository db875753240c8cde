// hospital/controllers/patient.go
package controllers

import (
	"context"
	"errors"
	"strings"

	"hospital/hospital/sources/psql/dao"
	"hospital/hospital/sources/psql/models"
	"hospital/hospital/utils/logging"
	"hospital/hospital/utils/types"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type PatientController struct {
	db              *gorm.DB
	doctorDAO       *dao.DoctorDAO
	slotDAO         *dao.SlotDAO
	consultationDAO *dao.ConsultationDAO
	images          ImageStore
	maxImageBytes   int64
	maxImages       int
}

func NewPatientController(db *gorm.DB, doctorDAO *dao.DoctorDAO, slotDAO *dao.SlotDAO, consultationDAO *dao.ConsultationDAO, images ImageStore, maxImageBytes int64, maxImages int) *PatientController {
	return &PatientController{
		db:              db,
		doctorDAO:       doctorDAO,
		slotDAO:         slotDAO,
		consultationDAO: consultationDAO,
		images:          images,
		maxImageBytes:   maxImageBytes,
		maxImages:       maxImages,
	}
}

func (c *PatientController) validateBooking(req types.NewConsultation, images []types.UploadedImage) error {
	if req.DoctorID == 0 {
		return validationError("doctorId is required")
	}
	if strings.TrimSpace(req.Slot) == "" {
		return validationError("slot is required")
	}
	if strings.TrimSpace(req.Reason) == "" {
		return validationError("reason is required")
	}
	if len(images) > c.maxImages {
		return validationError("at most %d images are allowed", c.maxImages)
	}
	for _, img := range images {
		if !strings.HasPrefix(img.ContentType, "image/") {
			return validationError("%s is not an image", img.Filename)
		}
		if img.Size > c.maxImageBytes {
			return validationError("%s exceeds %d bytes", img.Filename, c.maxImageBytes)
		}
	}
	return nil
}

// BookConsultation stores the images, then creates a Pending consultation and
// consumes the slot in one transaction. Images are removed again if that fails.
func (c *PatientController) BookConsultation(ctx context.Context, patientID uint, req types.NewConsultation, images []types.UploadedImage) (*models.Consultation, error) {
	defer logging.LogDuration(ctx, "BookConsultation")()
	if err := c.validateBooking(req, images); err != nil {
		return nil, err
	}
	slot := req.Slot

	doctor, err := c.doctorDAO.GetDoctorByID(ctx, req.DoctorID)
	if err != nil {
		return nil, storageError("get doctor", err)
	}
	if doctor == nil {
		return nil, notFound("doctor")
	}
	available := false
	for _, s := range doctor.Slots {
		if s.Slot == slot {
			available = true
			break
		}
	}
	if !available {
		return nil, conflict("slot is not available")
	}

	stored, err := c.uploadImages(ctx, images)
	if err != nil {
		return nil, err
	}

	consultation := &models.Consultation{
		DoctorID:    req.DoctorID,
		PatientID:   patientID,
		Slot:        slot,
		Reason:      strings.TrimSpace(req.Reason),
		Description: strings.TrimSpace(req.Description),
		Status:      models.StatusPending,
		Images:      stored,
	}
	err = c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ok, err := c.slotDAO.WithTx(tx).ConsumeSlot(ctx, req.DoctorID, slot)
		if err != nil {
			return storageError("consume slot", err)
		}
		if !ok {
			return conflict("slot is not available")
		}
		if err := c.consultationDAO.WithTx(tx).CreateConsultation(ctx, consultation); err != nil {
			return storageError("create consultation", err)
		}
		return nil
	})
	if err != nil {
		c.discardImages(stored)
		var kerr *Error
		if errors.As(err, &kerr) {
			return nil, err
		}
		return nil, storageError("book consultation", err)
	}

	logging.AppLogger.Info("consultation booked",
		zap.Uint("consultation_id", consultation.ID),
		zap.Uint("doctor_id", consultation.DoctorID),
		zap.Uint("patient_id", patientID),
		zap.Int("images", len(stored)),
	)
	attachImageURLs(ctx, c.images, consultation)
	return consultation, nil
}

func (c *PatientController) uploadImages(ctx context.Context, images []types.UploadedImage) ([]models.ConsultationImage, error) {
	if len(images) == 0 {
		return nil, nil
	}
	if c.images == nil {
		return nil, storageError("upload image", errors.New("image store not configured"))
	}
	stored := make([]models.ConsultationImage, 0, len(images))
	for _, img := range images {
		key, err := c.uploadOne(ctx, img)
		if err != nil {
			c.discardImages(stored)
			return nil, storageError("upload image", err)
		}
		stored = append(stored, models.ConsultationImage{ObjectKey: key, ContentType: img.ContentType})
	}
	return stored, nil
}

func (c *PatientController) uploadOne(ctx context.Context, img types.UploadedImage) (string, error) {
	f, err := img.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()
	return c.images.UploadImage(ctx, img.Filename, img.ContentType, f, img.Size)
}

// discardImages runs detached from the request so a cancelled request still cleans up.
func (c *PatientController) discardImages(images []models.ConsultationImage) {
	ctx := context.Background()
	for _, img := range images {
		if err := c.images.DeleteImage(ctx, img.ObjectKey); err != nil {
			logging.ErrorLogger.Error("discard image", zap.String("key", img.ObjectKey), zap.Error(err))
		}
	}
}

func (c *PatientController) ListConsultations(ctx context.Context, patientID uint) ([]models.Consultation, error) {
	list, err := c.consultationDAO.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, storageError("list consultations", err)
	}
	if list == nil {
		list = []models.Consultation{}
	}
	return list, nil
}

// GetConsultation returns one of the patient's consultations with image URLs.
func (c *PatientController) GetConsultation(ctx context.Context, patientID, consultationID uint) (*models.Consultation, error) {
	consultation, err := c.consultationDAO.GetConsultationByID(ctx, consultationID)
	if err != nil {
		return nil, storageError("get consultation", err)
	}
	if consultation == nil || consultation.PatientID != patientID {
		return nil, notFound("consultation")
	}
	attachImageURLs(ctx, c.images, consultation)
	return consultation, nil
}
