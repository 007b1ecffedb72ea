package service

import (
	"testing"

	"github.com/expomeet/expomeet-server/internal/model"
)

func TestParseAccessSlug(t *testing.T) {
	tests := []struct {
		name    string
		slug    string
		want    AccessSlug
		wantErr bool
	}{
		{"buyer badge", "B42", AccessSlug{Kind: model.ScanTypeBuyer, UserID: 42}, false},
		{"seller badge", "S7", AccessSlug{Kind: model.ScanTypeSeller, UserID: 7}, false},
		{"attendee badge", "S12SA3", AccessSlug{Kind: model.ScanTypeSellerAttendee, SellerProfileID: 12, AttendeeNumber: 3}, false},
		{"attendee max widths", "S999SA99", AccessSlug{Kind: model.ScanTypeSellerAttendee, SellerProfileID: 999, AttendeeNumber: 99}, false},
		{"bare numeric", "1001", AccessSlug{UserID: 1001, Bare: true}, false},
		{"attendee with oversized seller id", "S1234SA1", AccessSlug{}, true},
		{"prefix without digits", "B", AccessSlug{}, true},
		{"prefix with junk", "Babc", AccessSlug{}, true},
		{"empty", "", AccessSlug{}, true},
		{"unknown prefix", "X12", AccessSlug{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAccessSlug(tt.slug)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err=%v wantErr=%v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Fatalf("got=%+v want=%+v", got, tt.want)
			}
		})
	}
}
