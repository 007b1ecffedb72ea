package pincode

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantErr bool
	}{
		{"valid", "560001", false},
		{"valid with spaces", " 560001 ", false},
		{"too short", "56001", true},
		{"too long", "5600011", true},
		{"letters", "56OOO1", true},
		{"empty", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := Validate(tt.code); (err != nil) != tt.wantErr {
				t.Fatalf("err=%v wantErr=%v", err, tt.wantErr)
			}
		})
	}
}

func TestLookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/pincode/560001":
			_, _ = w.Write([]byte(`[{"Status":"Success","PostOffice":[{"Name":"Bangalore GPO","District":"Bengaluru","State":"Karnataka","Country":"India"}]}]`))
		default:
			_, _ = w.Write([]byte(`[{"Status":"Error","PostOffice":null}]`))
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL)

	t.Run("known pincode", func(t *testing.T) {
		areas, err := c.Lookup(context.Background(), "560001")
		if err != nil {
			t.Fatalf("lookup: %v", err)
		}
		if len(areas) != 1 || areas[0].Name != "Bangalore GPO" {
			t.Fatalf("unexpected areas: %+v", areas)
		}
	})

	t.Run("unknown pincode", func(t *testing.T) {
		_, err := c.Lookup(context.Background(), "999999")
		if !errors.Is(err, ErrInvalidPincode) {
			t.Fatalf("err=%v want ErrInvalidPincode", err)
		}
	})

	t.Run("malformed pincode skips the network", func(t *testing.T) {
		_, err := c.Lookup(context.Background(), "abc")
		if !errors.Is(err, ErrInvalidPincode) {
			t.Fatalf("err=%v want ErrInvalidPincode", err)
		}
	})
}
