package bank

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestValidateIFSC(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantErr bool
	}{
		{"valid", "HDFC0001234", false},
		{"valid lowercase", "hdfc0001234", false},
		{"valid with spaces", " HDFC0001234 ", false},
		{"alphanumeric branch", "SBIN0RRVCBL", false},
		{"too short", "HDFC000123", true},
		{"too long", "HDFC00012345", true},
		{"digit in bank code", "HDF40001234", true},
		{"fifth char not zero", "HDFC1001234", true},
		{"symbol in branch code", "HDFC00012#4", true},
		{"empty", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateIFSC(tt.code)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err=%v wantErr=%v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidIFSC) {
				t.Fatalf("err=%v want ErrInvalidIFSC", err)
			}
		})
	}
}

func TestLookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/HDFC0001234":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"IFSC":"HDFC0001234","BANK":"HDFC Bank","BRANCH":"MG Road","CITY":"Bengaluru","STATE":"Karnataka"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL)

	t.Run("known code", func(t *testing.T) {
		info, err := c.Lookup(context.Background(), "HDFC0001234")
		if err != nil {
			t.Fatalf("lookup: %v", err)
		}
		if info.Bank != "HDFC Bank" || info.City != "Bengaluru" {
			t.Fatalf("unexpected payload: %+v", info)
		}
	})

	t.Run("unknown code maps to invalid", func(t *testing.T) {
		_, err := c.Lookup(context.Background(), "HDFC0009999")
		if !errors.Is(err, ErrInvalidIFSC) {
			t.Fatalf("err=%v want ErrInvalidIFSC", err)
		}
	})

	t.Run("malformed code skips the network", func(t *testing.T) {
		_, err := c.Lookup(context.Background(), "nope")
		if !errors.Is(err, ErrInvalidIFSC) {
			t.Fatalf("err=%v want ErrInvalidIFSC", err)
		}
	})
}
