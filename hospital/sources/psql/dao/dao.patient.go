// hospital/sources/psql/dao/dao.patient.go
package dao

import (
	"context"
	"errors"

	"hospital/hospital/sources/psql/models"

	"gorm.io/gorm"
)

type PatientDAO struct {
	DB *gorm.DB
}

func NewPatientDAO(db *gorm.DB) *PatientDAO {
	return &PatientDAO{DB: db}
}

func (dao *PatientDAO) CreatePatient(ctx context.Context, patient *models.Patient) error {
	return dao.DB.WithContext(ctx).Create(patient).Error
}

func (dao *PatientDAO) GetPatientByID(ctx context.Context, id uint) (*models.Patient, error) {
	var patient models.Patient
	err := dao.DB.WithContext(ctx).First(&patient, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &patient, nil
}

func (dao *PatientDAO) GetPatientByEmail(ctx context.Context, email string) (*models.Patient, error) {
	var patient models.Patient
	err := dao.DB.WithContext(ctx).Where("email = ?", email).First(&patient).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &patient, nil
}
