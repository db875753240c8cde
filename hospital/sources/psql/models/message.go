// hospital/sources/psql/models/message.go
package models

import (
	"strconv"
	"time"
)

// Message is immutable once stored.
type Message struct {
	ID         uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	ChatID     uint      `json:"chatId" gorm:"not null;index:idx_messages_chat_created,priority:1"`
	SenderID   uint      `json:"senderId" gorm:"not null"`
	SenderRole string    `json:"senderRole" gorm:"type:varchar(16);not null"`
	Message    string    `json:"message" gorm:"type:text;not null"`
	CreatedAt  time.Time `json:"createdAt" gorm:"not null;index:idx_messages_chat_created,priority:2"`
}

func (Message) TableName() string {
	return "messages"
}

func uintToString(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}
