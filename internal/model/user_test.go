package model

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Role
		wantErr bool
	}{
		{"buyer", "buyer", RoleBuyer, false},
		{"seller", "seller", RoleSeller, false},
		{"admin", "admin", RoleAdmin, false},
		{"mixed case", "Buyer", RoleBuyer, false},
		{"unknown", "vendor", "", true},
		{"empty", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRole(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err=%v wantErr=%v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Fatalf("got=%q want=%q", got, tt.want)
			}
		})
	}
}

func TestUserJSONNeverExposesPasswordHash(t *testing.T) {
	u := User{ID: 1, Username: "asha", Email: "asha@example.com", PasswordHash: "secret-hash", Role: RoleBuyer}
	raw, err := json.Marshal(u)
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if strings.Contains(string(raw), "secret-hash") || strings.Contains(string(raw), "password") {
		t.Fatalf("password material in %s", raw)
	}
	if !strings.Contains(string(raw), `"username":"asha"`) {
		t.Fatalf("missing snake_case keys in %s", raw)
	}
}
