package model

import (
	"time"

	"gorm.io/datatypes"
)

type ChatConversation struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint64    `gorm:"column:user_id;index;not null" json:"user_id"`
	Title     string    `gorm:"size:80" json:"title"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;index" json:"updated_at"`

	Messages []ChatMessage `gorm:"foreignKey:ConversationID" json:"messages,omitempty"`
}

func (ChatConversation) TableName() string {
	return "chat_conversations"
}

type ChatMessage struct {
	ID             uint64         `gorm:"primaryKey;autoIncrement" json:"id"`
	ConversationID uint64         `gorm:"column:conversation_id;index;not null" json:"conversation_id"`
	Sender         string         `gorm:"size:20;not null" json:"sender"` // user | assistant
	Content        string         `gorm:"type:text;not null" json:"content"`
	Meta           datatypes.JSON `gorm:"type:jsonb" json:"meta"`
	Feedback       string         `gorm:"size:20" json:"feedback"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
