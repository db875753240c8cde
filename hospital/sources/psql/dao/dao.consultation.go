// hospital/sources/psql/dao/dao.consultation.go
package dao

import (
	"context"
	"errors"

	"hospital/hospital/sources/psql/models"

	"gorm.io/gorm"
)

type ConsultationDAO struct {
	DB *gorm.DB
}

func NewConsultationDAO(db *gorm.DB) *ConsultationDAO {
	return &ConsultationDAO{DB: db}
}

func (dao *ConsultationDAO) WithTx(tx *gorm.DB) *ConsultationDAO {
	return &ConsultationDAO{DB: tx}
}

// CreateConsultation inserts the consultation and its Images rows.
func (dao *ConsultationDAO) CreateConsultation(ctx context.Context, c *models.Consultation) error {
	return dao.DB.WithContext(ctx).Create(c).Error
}

// GetConsultationByID loads the consultation with doctor, patient and images.
func (dao *ConsultationDAO) GetConsultationByID(ctx context.Context, id uint) (*models.Consultation, error) {
	var c models.Consultation
	err := dao.DB.WithContext(ctx).
		Preload("Doctor").
		Preload("Patient").
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("id asc") }).
		First(&c, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (dao *ConsultationDAO) ListByPatient(ctx context.Context, patientID uint) ([]models.Consultation, error) {
	var list []models.Consultation
	err := dao.DB.WithContext(ctx).
		Preload("Doctor").
		Where("patient_id = ?", patientID).
		Order("created_at desc, id desc").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (dao *ConsultationDAO) ListByDoctor(ctx context.Context, doctorID uint) ([]models.Consultation, error) {
	var list []models.Consultation
	err := dao.DB.WithContext(ctx).
		Preload("Patient").
		Where("doctor_id = ?", doctorID).
		Order("created_at desc, id desc").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// UpdateStatus moves the consultation from one status to another and reports
// false when the row no longer had the expected status.
func (dao *ConsultationDAO) UpdateStatus(ctx context.Context, id uint, from, to models.ConsultationStatus) (bool, error) {
	res := dao.DB.WithContext(ctx).
		Model(&models.Consultation{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
