// hospital/sources/psql/dao/dao.slot.go
package dao

import (
	"context"

	"hospital/hospital/sources/psql/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SlotDAO struct {
	DB *gorm.DB
}

func NewSlotDAO(db *gorm.DB) *SlotDAO {
	return &SlotDAO{DB: db}
}

func (dao *SlotDAO) WithTx(tx *gorm.DB) *SlotDAO {
	return &SlotDAO{DB: tx}
}

// ListSlots returns the doctor's slots in ascending order.
func (dao *SlotDAO) ListSlots(ctx context.Context, doctorID uint) ([]string, error) {
	slots := []string{}
	err := dao.DB.WithContext(ctx).
		Model(&models.DoctorSlot{}).
		Where("doctor_id = ?", doctorID).
		Order("slot asc").
		Pluck("slot", &slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}

// AddSlots inserts the slots, skipping ones the doctor already has.
func (dao *SlotDAO) AddSlots(ctx context.Context, doctorID uint, slots []string) error {
	if len(slots) == 0 {
		return nil
	}
	rows := make([]models.DoctorSlot, 0, len(slots))
	for _, s := range slots {
		rows = append(rows, models.DoctorSlot{DoctorID: doctorID, Slot: s})
	}
	return dao.DB.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&rows).Error
}

func (dao *SlotDAO) RemoveSlots(ctx context.Context, doctorID uint, slots []string) error {
	if len(slots) == 0 {
		return nil
	}
	return dao.DB.WithContext(ctx).
		Where("doctor_id = ? AND slot IN ?", doctorID, slots).
		Delete(&models.DoctorSlot{}).Error
}

// ConsumeSlot deletes one slot and reports whether it was there.
func (dao *SlotDAO) ConsumeSlot(ctx context.Context, doctorID uint, slot string) (bool, error) {
	res := dao.DB.WithContext(ctx).
		Where("doctor_id = ? AND slot = ?", doctorID, slot).
		Delete(&models.DoctorSlot{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (dao *SlotDAO) ListAllSlots(ctx context.Context) ([]models.DoctorSlot, error) {
	var slots []models.DoctorSlot
	err := dao.DB.WithContext(ctx).Order("id asc").Find(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}

func (dao *SlotDAO) DeleteSlotsByID(ctx context.Context, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := dao.DB.WithContext(ctx).Where("id IN ?", ids).Delete(&models.DoctorSlot{})
	return res.RowsAffected, res.Error
}
