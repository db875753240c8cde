// hospital/sources/psql/dao/dao.doctor.go
package dao

import (
	"context"
	"errors"

	"hospital/hospital/sources/psql/models"

	"gorm.io/gorm"
)

type DoctorDAO struct {
	DB *gorm.DB
}

func NewDoctorDAO(db *gorm.DB) *DoctorDAO {
	return &DoctorDAO{DB: db}
}

func (dao *DoctorDAO) WithTx(tx *gorm.DB) *DoctorDAO {
	return &DoctorDAO{DB: tx}
}

// CreateDoctor inserts the doctor together with any Slots set on it.
func (dao *DoctorDAO) CreateDoctor(ctx context.Context, doctor *models.Doctor) error {
	return dao.DB.WithContext(ctx).Create(doctor).Error
}

func preloadSlots(db *gorm.DB) *gorm.DB {
	return db.Order("slot asc")
}

func (dao *DoctorDAO) GetDoctorByID(ctx context.Context, id uint) (*models.Doctor, error) {
	var doctor models.Doctor
	err := dao.DB.WithContext(ctx).Preload("Slots", preloadSlots).First(&doctor, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doctor, nil
}

func (dao *DoctorDAO) GetDoctorByEmail(ctx context.Context, email string) (*models.Doctor, error) {
	var doctor models.Doctor
	err := dao.DB.WithContext(ctx).Where("email = ?", email).First(&doctor).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doctor, nil
}

func (dao *DoctorDAO) ListDoctors(ctx context.Context) ([]models.Doctor, error) {
	var doctors []models.Doctor
	err := dao.DB.WithContext(ctx).Preload("Slots", preloadSlots).Order("name asc, id asc").Find(&doctors).Error
	if err != nil {
		return nil, err
	}
	return doctors, nil
}

func (dao *DoctorDAO) UpdateDoctor(ctx context.Context, id uint, updates map[string]interface{}) error {
	return dao.DB.WithContext(ctx).Model(&models.Doctor{}).Where("id = ?", id).Updates(updates).Error
}
