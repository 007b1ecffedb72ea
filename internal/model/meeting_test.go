package model

import "testing"

func TestBlocksNewRequest(t *testing.T) {
	tests := []struct {
		status MeetingStatus
		want   bool
	}{
		{MeetingStatusPending, true},
		{MeetingStatusAccepted, true},
		{MeetingStatusRejected, true},
		{MeetingStatusCompleted, true},
		{MeetingStatusUnscheduled, true},
		{MeetingStatusCancelled, false},
		{MeetingStatusExpired, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if got := tt.status.BlocksNewRequest(); got != tt.want {
				t.Fatalf("BlocksNewRequest(%s)=%v want %v", tt.status, got, tt.want)
			}
		})
	}
}
