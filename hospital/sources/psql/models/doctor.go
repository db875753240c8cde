// hospital/sources/psql/models/doctor.go
package models

import "time"

type Doctor struct {
	ID             uint         `json:"id" gorm:"primaryKey;autoIncrement"`
	Name           string       `json:"name" gorm:"type:varchar(255);not null"`
	Email          string       `json:"email" gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHash   string       `json:"-" gorm:"type:varchar(255);not null;default:''"`
	Specialization string       `json:"specialization" gorm:"type:varchar(255);not null"`
	WorkExperience string       `json:"workExperience" gorm:"type:text;not null;default:''"`
	About          string       `json:"about" gorm:"type:text;not null;default:''"`
	Slots          []DoctorSlot `json:"-" gorm:"foreignKey:DoctorID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time    `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt      time.Time    `json:"updatedAt" gorm:"autoUpdateTime"`
}

func (Doctor) TableName() string {
	return "doctors"
}

// SlotValues flattens the preloaded slot rows.
func (d Doctor) SlotValues() []string {
	out := make([]string, 0, len(d.Slots))
	for _, s := range d.Slots {
		out = append(out, s.Slot)
	}
	return out
}
