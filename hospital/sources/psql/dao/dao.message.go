// hospital/sources/psql/dao/dao.message.go
package dao

import (
	"context"

	"hospital/hospital/sources/psql/models"

	"gorm.io/gorm"
)

type MessageDAO struct {
	DB *gorm.DB
}

func NewMessageDAO(db *gorm.DB) *MessageDAO {
	return &MessageDAO{DB: db}
}

func (dao *MessageDAO) SaveMessage(ctx context.Context, msg *models.Message) error {
	return dao.DB.WithContext(ctx).Create(msg).Error
}

// ListByChat returns every message of the chat, oldest first.
func (dao *MessageDAO) ListByChat(ctx context.Context, chatID uint) ([]models.Message, error) {
	messages := []models.Message{}
	err := dao.DB.WithContext(ctx).
		Where("chat_id = ?", chatID).
		Order("created_at asc, id asc").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}
