// hospital/sources/psql/models/image.go
package models

import "time"

type ConsultationImage struct {
	ID             uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	ConsultationID uint      `json:"consultationId" gorm:"not null;index"`
	ObjectKey      string    `json:"-" gorm:"type:varchar(512);not null"`
	ContentType    string    `json:"contentType" gorm:"type:varchar(128);not null"`
	URL            string    `json:"url,omitempty" gorm:"-"`
	CreatedAt      time.Time `json:"createdAt" gorm:"autoCreateTime"`
}

func (ConsultationImage) TableName() string {
	return "consultation_images"
}
