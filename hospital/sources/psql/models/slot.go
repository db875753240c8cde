// hospital/sources/psql/models/slot.go
package models

import "time"

// DoctorSlot is one opaque date-time string a doctor is available at.
type DoctorSlot struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	DoctorID  uint      `json:"doctorId" gorm:"not null;uniqueIndex:idx_doctor_slot"`
	Slot      string    `json:"slot" gorm:"type:varchar(64);not null;uniqueIndex:idx_doctor_slot"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
}

func (DoctorSlot) TableName() string {
	return "doctor_slots"
}
