// hospital/sources/psql/models/chat.go
package models

import "time"

// Chat is the message thread of exactly one consultation.
type Chat struct {
	ID             uint          `json:"id" gorm:"primaryKey;autoIncrement"`
	ConsultationID uint          `json:"consultationId" gorm:"not null;uniqueIndex"`
	Consultation   *Consultation `json:"-" gorm:"foreignKey:ConsultationID;constraint:OnDelete:CASCADE"`
	DoctorID       uint          `json:"doctorId" gorm:"not null"`
	PatientID      uint          `json:"patientId" gorm:"not null"`
	Messages       []Message     `json:"messages" gorm:"foreignKey:ChatID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time     `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt      time.Time     `json:"updatedAt" gorm:"autoUpdateTime"`
}

func (Chat) TableName() string {
	return "chats"
}

// HasParticipant reports whether the user with role is the chat's doctor or patient.
func (c Chat) HasParticipant(role string, userID uint) bool {
	switch role {
	case "doctor":
		return c.DoctorID == userID
	case "patient":
		return c.PatientID == userID
	}
	return false
}

// RoomName is the real-time room that carries this chat's messages.
func RoomName(chatID uint) string {
	return "chat:" + uintToString(chatID)
}
