// hospital/controllers/doctor.go
package controllers

import (
	"context"
	"errors"
	"sort"
	"strings"

	"hospital/hospital/sources/psql/dao"
	"hospital/hospital/sources/psql/models"
	"hospital/hospital/utils/logging"
	"hospital/hospital/utils/types"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DoctorView is the public shape of a doctor with availability.
type DoctorView struct {
	ID             uint     `json:"id"`
	Name           string   `json:"name"`
	Email          string   `json:"email"`
	Specialization string   `json:"specialization"`
	WorkExperience string   `json:"workExperience"`
	About          string   `json:"about"`
	AvailableSlots []string `json:"availableSlots"`
}

func newDoctorView(d models.Doctor) DoctorView {
	return DoctorView{
		ID:             d.ID,
		Name:           d.Name,
		Email:          d.Email,
		Specialization: d.Specialization,
		WorkExperience: d.WorkExperience,
		About:          d.About,
		AvailableSlots: d.SlotValues(),
	}
}

type DoctorConsultations struct {
	DoctorName    string                `json:"doctorName"`
	Consultations []models.Consultation `json:"consultations"`
}

type DoctorController struct {
	db              *gorm.DB
	doctorDAO       *dao.DoctorDAO
	slotDAO         *dao.SlotDAO
	consultationDAO *dao.ConsultationDAO
	images          ImageStore
}

func NewDoctorController(db *gorm.DB, doctorDAO *dao.DoctorDAO, slotDAO *dao.SlotDAO, consultationDAO *dao.ConsultationDAO, images ImageStore) *DoctorController {
	return &DoctorController{
		db:              db,
		doctorDAO:       doctorDAO,
		slotDAO:         slotDAO,
		consultationDAO: consultationDAO,
		images:          images,
	}
}

// cleanSlots drops duplicates while keeping order. Values are kept exactly as
// sent. Blank entries are an error; an empty list is an error unless allowEmpty.
func cleanSlots(slots []string, allowEmpty bool) ([]string, error) {
	if len(slots) == 0 && !allowEmpty {
		return nil, validationError("slot list must not be empty")
	}
	seen := make(map[string]bool, len(slots))
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		if strings.TrimSpace(s) == "" {
			return nil, validationError("slots must not be blank")
		}
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out, nil
}

func (c *DoctorController) ListDoctors(ctx context.Context) ([]DoctorView, error) {
	doctors, err := c.doctorDAO.ListDoctors(ctx)
	if err != nil {
		return nil, storageError("list doctors", err)
	}
	views := make([]DoctorView, 0, len(doctors))
	for _, d := range doctors {
		views = append(views, newDoctorView(d))
	}
	return views, nil
}

func (c *DoctorController) GetDoctor(ctx context.Context, doctorID uint) (*DoctorView, error) {
	doctor, err := c.doctorDAO.GetDoctorByID(ctx, doctorID)
	if err != nil {
		return nil, storageError("get doctor", err)
	}
	if doctor == nil {
		return nil, notFound("doctor")
	}
	view := newDoctorView(*doctor)
	return &view, nil
}

// UpdateProfile changes only the fields present in req.
func (c *DoctorController) UpdateProfile(ctx context.Context, doctorID uint, req types.UpdateProfileRequest) (*DoctorView, error) {
	doctor, err := c.doctorDAO.GetDoctorByID(ctx, doctorID)
	if err != nil {
		return nil, storageError("get doctor", err)
	}
	if doctor == nil {
		return nil, notFound("doctor")
	}
	updates := map[string]interface{}{}
	if req.WorkExperience != nil {
		updates["work_experience"] = strings.TrimSpace(*req.WorkExperience)
	}
	if req.About != nil {
		updates["about"] = strings.TrimSpace(*req.About)
	}
	if len(updates) > 0 {
		if err := c.doctorDAO.UpdateDoctor(ctx, doctorID, updates); err != nil {
			return nil, storageError("update doctor", err)
		}
	}
	return c.GetDoctor(ctx, doctorID)
}

// AddSlots merges newSlots into the doctor's availability and returns the
// resulting list in ascending order.
func (c *DoctorController) AddSlots(ctx context.Context, doctorID uint, newSlots []string) ([]string, error) {
	defer logging.LogDuration(ctx, "AddSlots")()
	slots, err := cleanSlots(newSlots, false)
	if err != nil {
		return nil, err
	}
	return c.changeSlots(ctx, doctorID, func(tx *dao.SlotDAO) error {
		return tx.AddSlots(ctx, doctorID, slots)
	})
}

// RemoveSlots drops the given slots; ones the doctor does not have are ignored.
func (c *DoctorController) RemoveSlots(ctx context.Context, doctorID uint, removedSlots []string) ([]string, error) {
	defer logging.LogDuration(ctx, "RemoveSlots")()
	slots, err := cleanSlots(removedSlots, true)
	if err != nil {
		return nil, err
	}
	return c.changeSlots(ctx, doctorID, func(tx *dao.SlotDAO) error {
		return tx.RemoveSlots(ctx, doctorID, slots)
	})
}

func (c *DoctorController) changeSlots(ctx context.Context, doctorID uint, change func(*dao.SlotDAO) error) ([]string, error) {
	var result []string
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		doctor, err := c.doctorDAO.WithTx(tx).GetDoctorByID(ctx, doctorID)
		if err != nil {
			return storageError("get doctor", err)
		}
		if doctor == nil {
			return notFound("doctor")
		}
		slots := c.slotDAO.WithTx(tx)
		if err := change(slots); err != nil {
			return storageError("update slots", err)
		}
		result, err = slots.ListSlots(ctx, doctorID)
		if err != nil {
			return storageError("list slots", err)
		}
		return nil
	})
	if err != nil {
		var kerr *Error
		if errors.As(err, &kerr) {
			return nil, err
		}
		return nil, storageError("update slots", err)
	}
	// collation order in postgres need not match byte order
	sort.Strings(result)
	return result, nil
}

func (c *DoctorController) ListConsultations(ctx context.Context, doctorID uint) (*DoctorConsultations, error) {
	doctor, err := c.doctorDAO.GetDoctorByID(ctx, doctorID)
	if err != nil {
		return nil, storageError("get doctor", err)
	}
	if doctor == nil {
		return nil, notFound("doctor")
	}
	list, err := c.consultationDAO.ListByDoctor(ctx, doctorID)
	if err != nil {
		return nil, storageError("list consultations", err)
	}
	if list == nil {
		list = []models.Consultation{}
	}
	return &DoctorConsultations{DoctorName: doctor.Name, Consultations: list}, nil
}

// GetConsultation returns one of the doctor's consultations with image URLs.
func (c *DoctorController) GetConsultation(ctx context.Context, doctorID, consultationID uint) (*models.Consultation, error) {
	consultation, err := c.consultationDAO.GetConsultationByID(ctx, consultationID)
	if err != nil {
		return nil, storageError("get consultation", err)
	}
	if consultation == nil || consultation.DoctorID != doctorID {
		return nil, notFound("consultation")
	}
	attachImageURLs(ctx, c.images, consultation)
	return consultation, nil
}

// attachImageURLs presigns every image; a failure leaves that URL empty.
func attachImageURLs(ctx context.Context, images ImageStore, c *models.Consultation) {
	if images == nil {
		return
	}
	for i := range c.Images {
		u, err := images.ImageURL(ctx, c.Images[i].ObjectKey)
		if err != nil {
			logging.ErrorLogger.Error("presign image url",
				zap.Uint("consultation_id", c.ID),
				zap.String("key", c.Images[i].ObjectKey),
				zap.Error(err),
			)
			continue
		}
		c.Images[i].URL = u
	}
}
