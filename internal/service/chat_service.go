package service

import (
	"context"
	"errors"
	"log"
	"unicode/utf8"

	"github.com/expomeet/expomeet-server/internal/ai"
	"github.com/expomeet/expomeet-server/internal/model"
	"github.com/expomeet/expomeet-server/internal/repository"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	conversationTitleLen = 50
	maxConversationList  = 100
)

var validFeedback = map[string]bool{
	"helpful":       true,
	"not_helpful":   true,
	"inappropriate": true,
}

type ChatReply struct {
	ConversationID uint64 `json:"conversation_id"`
	MessageID      uint64 `json:"message_id"`
	Reply          string `json:"reply"`
	Degraded       bool   `json:"degraded"`
}

type ChatService interface {
	SendMessage(ctx context.Context, userID uint64, role model.Role, conversationID *uint64, message string) (*ChatReply, error)
	Conversations(ctx context.Context, userID uint64, limit int) ([]model.ChatConversation, error)
	Conversation(ctx context.Context, userID, id uint64) (*model.ChatConversation, []model.ChatMessage, error)
	Delete(ctx context.Context, userID, id uint64) error
	Feedback(ctx context.Context, userID, messageID uint64, feedback string) error
	Health(ctx context.Context) map[string]interface{}
}

type chatService struct {
	repo     repository.ChatRepository
	provider ai.Provider
	tools    *ai.Registry
	ollama   *ai.OllamaClient // nil when not the configured provider
}

func NewChatService(repo repository.ChatRepository, provider ai.Provider, tools *ai.Registry, ollama *ai.OllamaClient) ChatService {
	return &chatService{repo: repo, provider: provider, tools: tools, ollama: ollama}
}

func (s *chatService) SendMessage(ctx context.Context, userID uint64, role model.Role, conversationID *uint64, message string) (*ChatReply, error) {
	if message == "" {
		return nil, errors.New("empty message")
	}

	var conv *model.ChatConversation
	if conversationID != nil {
		found, err := s.repo.FindConversation(ctx, *conversationID, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		conv = found
	} else {
		title := truncateTitle(message, conversationTitleLen)
		conv = &model.ChatConversation{UserID: userID, Title: title}
		if err := s.repo.CreateConversation(ctx, conv); err != nil {
			return nil, err
		}
	}

	if err := s.repo.CreateMessage(ctx, &model.ChatMessage{
		ConversationID: conv.ID,
		Sender:         "user",
		Content:        message,
	}); err != nil {
		return nil, err
	}

	toolContext := s.tools.GatherContext(ctx, string(role), userID, message)
	system := ai.BuildSystemPrompt(string(role))
	prompt := ai.BuildUserPrompt(message, toolContext)

	degraded := false
	reply, err := s.provider.Generate(ctx, system, prompt)
	if err != nil || reply == "" {
		log.Printf("[chat] stage=degraded user=%d err=%v", userID, err)
		reply = ai.DegradedReply
		degraded = true
	}

	meta := datatypes.JSON([]byte(`{"provider":"` + s.provider.Name() + `"}`))
	if degraded {
		meta = datatypes.JSON([]byte(`{"degraded":true}`))
	}
	assistant := &model.ChatMessage{
		ConversationID: conv.ID,
		Sender:         "assistant",
		Content:        reply,
		Meta:           meta,
	}
	if err := s.repo.CreateMessage(ctx, assistant); err != nil {
		return nil, err
	}
	if err := s.repo.TouchConversation(ctx, conv.ID); err != nil {
		log.Printf("[chat] stage=touch_fail conversation=%d err=%v", conv.ID, err)
	}

	return &ChatReply{
		ConversationID: conv.ID,
		MessageID:      assistant.ID,
		Reply:          reply,
		Degraded:       degraded,
	}, nil
}

func (s *chatService) Conversations(ctx context.Context, userID uint64, limit int) ([]model.ChatConversation, error) {
	if limit <= 0 || limit > maxConversationList {
		limit = maxConversationList
	}
	return s.repo.ListConversations(ctx, userID, limit)
}

func (s *chatService) Conversation(ctx context.Context, userID, id uint64) (*model.ChatConversation, []model.ChatMessage, error) {
	conv, err := s.repo.FindConversation(ctx, id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}
	msgs, err := s.repo.ListMessages(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return conv, msgs, nil
}

func (s *chatService) Delete(ctx context.Context, userID, id uint64) error {
	affected, err := s.repo.DeleteConversation(ctx, id, userID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *chatService) Feedback(ctx context.Context, userID, messageID uint64, feedback string) error {
	if !validFeedback[feedback] {
		return ErrValidation
	}
	affected, err := s.repo.SetFeedback(ctx, messageID, userID, feedback)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *chatService) Health(ctx context.Context) map[string]interface{} {
	out := map[string]interface{}{
		"provider": s.provider.Name(),
	}
	if s.ollama != nil {
		out["ollama_available"] = s.ollama.Available(ctx)
	}
	return out
}

// truncateTitle cuts s to at most max bytes without splitting a rune.
func truncateTitle(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
