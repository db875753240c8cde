// hospital/sources/psql/dao/dao.chat.go
package dao

import (
	"context"
	"errors"

	"hospital/hospital/sources/psql/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ChatDAO struct {
	DB *gorm.DB
}

func NewChatDAO(db *gorm.DB) *ChatDAO {
	return &ChatDAO{DB: db}
}

func (dao *ChatDAO) GetChatByID(ctx context.Context, id uint) (*models.Chat, error) {
	var chat models.Chat
	err := dao.DB.WithContext(ctx).First(&chat, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &chat, nil
}

func (dao *ChatDAO) GetChatByConsultationID(ctx context.Context, consultationID uint) (*models.Chat, error) {
	var chat models.Chat
	err := dao.DB.WithContext(ctx).Where("consultation_id = ?", consultationID).First(&chat).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &chat, nil
}

// CreateOrGetChat inserts the chat unless one exists for the consultation and
// returns whichever row is stored. Concurrent callers end up with the same row.
func (dao *ChatDAO) CreateOrGetChat(ctx context.Context, chat *models.Chat) (*models.Chat, error) {
	err := dao.DB.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "consultation_id"}}, DoNothing: true}).
		Omit("Consultation", "Messages").
		Create(chat).Error
	if err != nil {
		return nil, err
	}
	stored, err := dao.GetChatByConsultationID(ctx, chat.ConsultationID)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return stored, nil
}
