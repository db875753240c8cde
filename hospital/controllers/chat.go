// hospital/controllers/chat.go
package controllers

import (
	"context"
	"strings"
	"time"

	"hospital/hospital/sources/psql/dao"
	"hospital/hospital/sources/psql/models"
	"hospital/hospital/utils/logging"
	"hospital/hospital/utils/types"

	"go.uber.org/zap"
)

type ChatController struct {
	chatDAO         *dao.ChatDAO
	messageDAO      *dao.MessageDAO
	consultationDAO *dao.ConsultationDAO
	now             func() time.Time
}

func NewChatController(chatDAO *dao.ChatDAO, messageDAO *dao.MessageDAO, consultationDAO *dao.ConsultationDAO) *ChatController {
	return &ChatController{
		chatDAO:         chatDAO,
		messageDAO:      messageDAO,
		consultationDAO: consultationDAO,
		now:             func() time.Time { return time.Now().UTC() },
	}
}

// GetOrCreateSession returns the consultation's chat, creating it on first use.
// Zero doctor or patient ids are taken from the consultation.
func (c *ChatController) GetOrCreateSession(ctx context.Context, p types.Principal, consultationID, doctorID, patientID uint) (*models.Chat, error) {
	if consultationID == 0 {
		return nil, validationError("consultationId is required")
	}
	consultation, err := c.consultationDAO.GetConsultationByID(ctx, consultationID)
	if err != nil {
		return nil, storageError("get consultation", err)
	}
	if consultation == nil {
		return nil, notFound("consultation")
	}
	if (doctorID != 0 && doctorID != consultation.DoctorID) || (patientID != 0 && patientID != consultation.PatientID) {
		return nil, validationError("doctorId and patientId must match the consultation")
	}

	chat := &models.Chat{
		ConsultationID: consultationID,
		DoctorID:       consultation.DoctorID,
		PatientID:      consultation.PatientID,
	}
	if !chat.HasParticipant(p.Role, p.UserID) {
		return nil, forbidden("not a participant of this consultation")
	}

	existing, err := c.chatDAO.GetChatByConsultationID(ctx, consultationID)
	if err != nil {
		return nil, storageError("get chat", err)
	}
	if existing != nil {
		return existing, nil
	}
	stored, err := c.chatDAO.CreateOrGetChat(ctx, chat)
	if err != nil {
		return nil, storageError("create chat", err)
	}
	logging.AppLogger.Info("chat created", zap.Uint("chat_id", stored.ID), zap.Uint("consultation_id", consultationID))
	return stored, nil
}

// AuthorizeChat loads the chat and checks the caller takes part in it.
func (c *ChatController) AuthorizeChat(ctx context.Context, p types.Principal, chatID uint) (*models.Chat, error) {
	if chatID == 0 {
		return nil, validationError("chatId is required")
	}
	chat, err := c.chatDAO.GetChatByID(ctx, chatID)
	if err != nil {
		return nil, storageError("get chat", err)
	}
	if chat == nil {
		return nil, notFound("chat")
	}
	if !chat.HasParticipant(p.Role, p.UserID) {
		return nil, forbidden("not a participant of this chat")
	}
	return chat, nil
}

// SendMessage stores a message from the caller. senderID may be zero; if set it
// must be the caller. The chat is resolved before the body is looked at.
func (c *ChatController) SendMessage(ctx context.Context, p types.Principal, chatID, senderID uint, body string) (*models.Message, error) {
	chat, err := c.AuthorizeChat(ctx, p, chatID)
	if err != nil {
		return nil, err
	}
	if senderID != 0 && senderID != p.UserID {
		return nil, forbidden("senderId does not match the authenticated user")
	}
	if strings.TrimSpace(body) == "" {
		return nil, validationError("message must not be empty")
	}

	msg := &models.Message{
		ChatID:     chat.ID,
		SenderID:   p.UserID,
		SenderRole: p.Role,
		Message:    body,
		CreatedAt:  c.now(),
	}
	if err := c.messageDAO.SaveMessage(ctx, msg); err != nil {
		return nil, storageError("save message", err)
	}
	return msg, nil
}

func (c *ChatController) ListMessages(ctx context.Context, chatID uint) ([]models.Message, error) {
	messages, err := c.messageDAO.ListByChat(ctx, chatID)
	if err != nil {
		return nil, storageError("list messages", err)
	}
	return messages, nil
}

// GetChat returns the chat with its messages, oldest first.
func (c *ChatController) GetChat(ctx context.Context, p types.Principal, chatID uint) (*models.Chat, error) {
	chat, err := c.AuthorizeChat(ctx, p, chatID)
	if err != nil {
		return nil, err
	}
	return c.withMessages(ctx, chat)
}

func (c *ChatController) GetChatByConsultation(ctx context.Context, p types.Principal, consultationID uint) (*models.Chat, error) {
	chat, err := c.chatDAO.GetChatByConsultationID(ctx, consultationID)
	if err != nil {
		return nil, storageError("get chat", err)
	}
	if chat == nil {
		return nil, notFound("chat")
	}
	if !chat.HasParticipant(p.Role, p.UserID) {
		return nil, forbidden("not a participant of this chat")
	}
	return c.withMessages(ctx, chat)
}

func (c *ChatController) withMessages(ctx context.Context, chat *models.Chat) (*models.Chat, error) {
	messages, err := c.ListMessages(ctx, chat.ID)
	if err != nil {
		return nil, err
	}
	chat.Messages = messages
	return chat, nil
}
