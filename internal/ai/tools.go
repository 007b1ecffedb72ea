package ai

import (
	"context"
	"log"
	"strings"
)

// Tool contributes a block of context to the assistant prompt when the
// user's message mentions one of its keywords.
type Tool struct {
	Name     string
	Roles    []string
	Keywords []string
	Run      func(ctx context.Context, userID uint64, message string) (string, error)
}

func (t Tool) allowsRole(role string) bool {
	if len(t.Roles) == 0 {
		return true
	}
	for _, r := range t.Roles {
		if strings.EqualFold(r, role) {
			return true
		}
	}
	return false
}

func (t Tool) matches(message string) bool {
	for _, kw := range t.Keywords {
		if strings.Contains(message, kw) {
			return true
		}
	}
	return false
}

type Registry struct {
	tools []Tool
}

func NewRegistry() *Registry {
	return &Registry{}
}

func (r *Registry) Register(t Tool) {
	r.tools = append(r.tools, t)
}

// Match returns the tools whose keywords appear in the message and whose
// role gate admits the user.
func (r *Registry) Match(role, message string) []Tool {
	low := strings.ToLower(message)
	var out []Tool
	for _, t := range r.tools {
		if t.allowsRole(role) && t.matches(low) {
			out = append(out, t)
		}
	}
	return out
}

// GatherContext runs every matched tool and joins their output. A failing
// tool is logged and skipped; context gathering never fails the chat.
func (r *Registry) GatherContext(ctx context.Context, role string, userID uint64, message string) string {
	var blocks []string
	for _, t := range r.Match(role, message) {
		text, err := t.Run(ctx, userID, message)
		if err != nil {
			log.Printf("[chat] tool=%s stage=fail err=%v", t.Name, err)
			continue
		}
		if text != "" {
			blocks = append(blocks, "["+t.Name+"]\n"+text)
		}
	}
	return strings.Join(blocks, "\n\n")
}
