// hospital/sources/psql/models/consultation.go
package models

import "time"

type ConsultationStatus string

const (
	StatusPending   ConsultationStatus = "Pending"
	StatusAccepted  ConsultationStatus = "Accepted"
	StatusRejected  ConsultationStatus = "Rejected"
	StatusCompleted ConsultationStatus = "Completed"
)

// transitions lists every status a consultation may move to from a given one.
var transitions = map[ConsultationStatus][]ConsultationStatus{
	StatusPending:  {StatusAccepted, StatusRejected},
	StatusAccepted: {StatusCompleted},
}

// ParseTargetStatus accepts only statuses a doctor can set.
func ParseTargetStatus(s string) (ConsultationStatus, bool) {
	switch st := ConsultationStatus(s); st {
	case StatusAccepted, StatusRejected, StatusCompleted:
		return st, true
	}
	return "", false
}

func (s ConsultationStatus) CanTransition(to ConsultationStatus) bool {
	for _, next := range transitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

type Consultation struct {
	ID          uint                `json:"id" gorm:"primaryKey;autoIncrement"`
	DoctorID    uint                `json:"doctorId" gorm:"not null;index"`
	Doctor      *Doctor             `json:"doctor,omitempty" gorm:"foreignKey:DoctorID"`
	PatientID   uint                `json:"patientId" gorm:"not null;index"`
	Patient     *Patient            `json:"patient,omitempty" gorm:"foreignKey:PatientID"`
	Slot        string              `json:"slot" gorm:"type:varchar(64);not null"`
	Reason      string              `json:"reason" gorm:"type:text;not null"`
	Description string              `json:"description" gorm:"type:text;not null;default:''"`
	Status      ConsultationStatus  `json:"status" gorm:"type:varchar(16);not null;default:'Pending'"`
	Images      []ConsultationImage `json:"images" gorm:"foreignKey:ConsultationID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time           `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt   time.Time           `json:"updatedAt" gorm:"autoUpdateTime"`
}

func (Consultation) TableName() string {
	return "consultations"
}
