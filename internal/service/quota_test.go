package service

import (
	"testing"

	"github.com/expomeet/expomeet-server/internal/model"
)

func intPtr(v int) *int { return &v }

func TestBuyerAllowedQuota(t *testing.T) {
	tests := []struct {
		name     string
		category *model.BuyerCategory
		def      int
		want     int
	}{
		{"category ceiling", &model.BuyerCategory{MaxMeetings: intPtr(15)}, 30, 15},
		{"zero ceiling honored", &model.BuyerCategory{MaxMeetings: intPtr(0)}, 30, 0},
		{"null ceiling falls back", &model.BuyerCategory{}, 30, 30},
		{"negative ceiling falls back", &model.BuyerCategory{MaxMeetings: intPtr(-1)}, 30, 30},
		{"nil category falls back", nil, 25, 25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BuyerAllowedQuota(tt.category, tt.def); got != tt.want {
				t.Fatalf("got=%d want=%d", got, tt.want)
			}
		})
	}
}

func TestComputeBuyerQuota(t *testing.T) {
	tests := []struct {
		name                       string
		allowed, accepted, pending int
		want                       BuyerQuota
	}{
		{
			name: "partially used", allowed: 5, accepted: 3, pending: 2,
			want: BuyerQuota{
				RequestQuota:          10,
				QuotaExceeded:         false,
				CurrentRequestCount:   5,
				RemainingRequestCount: 2,
				AcceptedCount:         3,
				AllowedQuota:          5,
				RemainingAcceptCount:  2,
				CanAccept:             true,
				PendingCount:          2,
			},
		},
		{
			name: "fully used", allowed: 5, accepted: 5, pending: 0,
			want: BuyerQuota{
				RequestQuota:          10,
				QuotaExceeded:         true,
				CurrentRequestCount:   5,
				RemainingRequestCount: 0,
				AcceptedCount:         5,
				AllowedQuota:          5,
				RemainingAcceptCount:  0,
				CanAccept:             false,
				PendingCount:          0,
			},
		},
		{
			name: "overshoot never goes negative", allowed: 2, accepted: 3, pending: 4,
			want: BuyerQuota{
				RequestQuota:          4,
				QuotaExceeded:         true,
				CurrentRequestCount:   7,
				RemainingRequestCount: 0,
				AcceptedCount:         3,
				AllowedQuota:          2,
				RemainingAcceptCount:  0,
				CanAccept:             false,
				PendingCount:          4,
			},
		},
		{
			name: "zero ceiling blocks everything", allowed: 0, accepted: 0, pending: 0,
			want: BuyerQuota{
				RequestQuota:          0,
				QuotaExceeded:         true,
				CurrentRequestCount:   0,
				RemainingRequestCount: 0,
				AcceptedCount:         0,
				AllowedQuota:          0,
				RemainingAcceptCount:  0,
				CanAccept:             false,
				PendingCount:          0,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeBuyerQuota(tt.allowed, tt.accepted, tt.pending)
			if got != tt.want {
				t.Fatalf("got=%+v want=%+v", got, tt.want)
			}
		})
	}
}

func TestSellerPerDayQuota(t *testing.T) {
	typed := func(attendees int, perAttendee *int) model.Stall {
		return model.Stall{StallType: &model.StallType{Attendees: attendees, MaxMeetingsPerAttendee: perAttendee}}
	}
	tests := []struct {
		name   string
		stalls []model.Stall
		def    int
		want   int
	}{
		{"single stall", []model.Stall{typed(2, intPtr(10))}, 8, 20},
		{"multiple stalls sum", []model.Stall{typed(2, intPtr(10)), typed(1, intPtr(5))}, 8, 25},
		{"default per attendee", []model.Stall{typed(3, nil)}, 8, 24},
		{"zero attendees counts as one", []model.Stall{typed(0, intPtr(6))}, 8, 6},
		{"untyped stall skipped", []model.Stall{{}, typed(1, intPtr(4))}, 8, 4},
		{"no capacity floors at one", nil, 8, 1},
		{"all zero floors at one", []model.Stall{typed(1, intPtr(0))}, 8, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SellerPerDayQuota(tt.stalls, tt.def); got != tt.want {
				t.Fatalf("got=%d want=%d", got, tt.want)
			}
		})
	}
}

func TestComputeSellerQuota(t *testing.T) {
	tests := []struct {
		name                                string
		perDay, eventDays, accepted, pending int
		want                                SellerQuota
	}{
		{
			name: "scales by event days", perDay: 10, eventDays: 3, accepted: 5, pending: 2,
			want: SellerQuota{
				RequestQuota:          60,
				QuotaExceeded:         false,
				CurrentRequestCount:   7,
				RemainingRequestCount: 108,
				AcceptedCount:         5,
				AllowedQuota:          30,
				RemainingAcceptCount:  25,
				CanAccept:             true,
				PendingCount:          2,
			},
		},
		{
			name: "zero event days treated as one", perDay: 4, eventDays: 0, accepted: 0, pending: 0,
			want: SellerQuota{
				RequestQuota:          8,
				QuotaExceeded:         false,
				CurrentRequestCount:   0,
				RemainingRequestCount: 16,
				AcceptedCount:         0,
				AllowedQuota:          4,
				RemainingAcceptCount:  4,
				CanAccept:             true,
				PendingCount:          0,
			},
		},
		{
			name: "exceeded at doubled headroom", perDay: 1, eventDays: 1, accepted: 2, pending: 0,
			want: SellerQuota{
				RequestQuota:          2,
				QuotaExceeded:         true,
				CurrentRequestCount:   2,
				RemainingRequestCount: 0,
				AcceptedCount:         2,
				AllowedQuota:          1,
				RemainingAcceptCount:  0,
				CanAccept:             false,
				PendingCount:          0,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeSellerQuota(tt.perDay, tt.eventDays, tt.accepted, tt.pending)
			if got != tt.want {
				t.Fatalf("got=%+v want=%+v", got, tt.want)
			}
		})
	}
}
