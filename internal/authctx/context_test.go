package authctx

import (
	"context"
	"testing"

	"github.com/expomeet/expomeet-server/internal/model"
)

func TestWithUserRoundTrip(t *testing.T) {
	ctx := WithUser(context.Background(), 42, model.RoleSeller)
	if got := UserID(ctx); got != 42 {
		t.Fatalf("UserID=%d want 42", got)
	}
	if got := Role(ctx); got != model.RoleSeller {
		t.Fatalf("Role=%q want seller", got)
	}
}

func TestEmptyContextZeroValues(t *testing.T) {
	ctx := context.Background()
	if got := UserID(ctx); got != 0 {
		t.Fatalf("UserID=%d want 0", got)
	}
	if got := Role(ctx); got.Valid() {
		t.Fatalf("Role=%q want invalid", got)
	}
}
