package ai

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestRegistryMatch(t *testing.T) {
	reg := NewRegistry()
	reg.Register(Tool{Name: "meetings", Keywords: []string{"meeting", "quota"}})
	reg.Register(Tool{Name: "stalls", Roles: []string{"seller"}, Keywords: []string{"stall"}})

	tests := []struct {
		name    string
		role    string
		message string
		want    []string
	}{
		{"keyword hit", "buyer", "how many meetings do I have left?", []string{"meetings"}},
		{"case insensitive", "buyer", "MY QUOTA please", []string{"meetings"}},
		{"role gated out", "buyer", "where is my stall", nil},
		{"role gated in", "seller", "where is my stall", []string{"stalls"}},
		{"multiple hits", "seller", "stall meeting schedule", []string{"meetings", "stalls"}},
		{"no hit", "buyer", "what time is lunch", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := reg.Match(tt.role, tt.message)
			if len(got) != len(tt.want) {
				t.Fatalf("len=%d want=%d (%+v)", len(got), len(tt.want), got)
			}
			for i, tool := range got {
				if tool.Name != tt.want[i] {
					t.Fatalf("tool[%d]=%s want=%s", i, tool.Name, tt.want[i])
				}
			}
		})
	}
}

func TestGatherContext(t *testing.T) {
	reg := NewRegistry()
	reg.Register(Tool{
		Name:     "ok",
		Keywords: []string{"meeting"},
		Run: func(context.Context, uint64, string) (string, error) {
			return "3 meetings accepted", nil
		},
	})
	reg.Register(Tool{
		Name:     "broken",
		Keywords: []string{"meeting"},
		Run: func(context.Context, uint64, string) (string, error) {
			return "", errors.New("db down")
		},
	})
	reg.Register(Tool{
		Name:     "silent",
		Keywords: []string{"meeting"},
		Run: func(context.Context, uint64, string) (string, error) {
			return "", nil
		},
	})

	got := reg.GatherContext(context.Background(), "buyer", 1, "meeting status")
	if !strings.Contains(got, "[ok]") || !strings.Contains(got, "3 meetings accepted") {
		t.Fatalf("missing tool block: %q", got)
	}
	if strings.Contains(got, "broken") || strings.Contains(got, "silent") {
		t.Fatalf("failed or empty tools leaked into context: %q", got)
	}
}
