package repository

import (
	"context"

	"github.com/expomeet/expomeet-server/internal/model"
	"gorm.io/gorm"
)

type ChatRepository interface {
	CreateConversation(ctx context.Context, c *model.ChatConversation) error
	FindConversation(ctx context.Context, id, userID uint64) (*model.ChatConversation, error)
	ListConversations(ctx context.Context, userID uint64, limit int) ([]model.ChatConversation, error)
	DeleteConversation(ctx context.Context, id, userID uint64) (int64, error)
	TouchConversation(ctx context.Context, id uint64) error

	CreateMessage(ctx context.Context, m *model.ChatMessage) error
	ListMessages(ctx context.Context, conversationID uint64) ([]model.ChatMessage, error)
	SetFeedback(ctx context.Context, messageID, userID uint64, feedback string) (int64, error)
}

type chatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) ChatRepository {
	return &chatRepository{db: db}
}

func (r *chatRepository) CreateConversation(ctx context.Context, c *model.ChatConversation) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *chatRepository) FindConversation(ctx context.Context, id, userID uint64) (*model.ChatConversation, error) {
	var c model.ChatConversation
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *chatRepository) ListConversations(ctx context.Context, userID uint64, limit int) ([]model.ChatConversation, error) {
	var list []model.ChatConversation
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Limit(limit).
		Find(&list).Error
	return list, err
}

func (r *chatRepository) DeleteConversation(ctx context.Context, id, userID uint64) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.ChatConversation{})
	if res.Error != nil || res.RowsAffected == 0 {
		return res.RowsAffected, res.Error
	}
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", id).
		Delete(&model.ChatMessage{}).Error
	return res.RowsAffected, err
}

func (r *chatRepository) TouchConversation(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Model(&model.ChatConversation{}).
		Where("id = ?", id).
		Update("updated_at", gorm.Expr("NOW()")).Error
}

func (r *chatRepository) CreateMessage(ctx context.Context, m *model.ChatMessage) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *chatRepository) ListMessages(ctx context.Context, conversationID uint64) ([]model.ChatMessage, error) {
	var list []model.ChatMessage
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at").
		Find(&list).Error
	return list, err
}

func (r *chatRepository) SetFeedback(ctx context.Context, messageID, userID uint64, feedback string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.ChatMessage{}).
		Where("chat_messages.id = ? AND conversation_id IN (?)",
			messageID,
			r.db.Model(&model.ChatConversation{}).Select("id").Where("user_id = ?", userID)).
		Update("feedback", feedback)
	return res.RowsAffected, res.Error
}
