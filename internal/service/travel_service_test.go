package service

import (
	"testing"
	"time"
)

func TestParseTravelDatetime(t *testing.T) {
	def := time.Date(2026, 11, 12, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		raw  string
		want time.Time
	}{
		{"full datetime", "2026-11-12T09:30:00", time.Date(2026, 11, 12, 9, 30, 0, 0, time.UTC)},
		{"minutes only", "2026-11-12T09:30", time.Date(2026, 11, 12, 9, 30, 0, 0, time.UTC)},
		{"rfc3339", "2026-11-12T09:30:00Z", time.Date(2026, 11, 12, 9, 30, 0, 0, time.UTC)},
		{"empty uses default", "", def},
		{"unset time artifact uses default", "2026-11-12T:00", def},
		{"garbage uses default", "next tuesday", def},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseTravelDatetime(tt.raw, def)
			if got == nil || !got.Equal(tt.want) {
				t.Fatalf("got=%v want=%v", got, tt.want)
			}
		})
	}
}

func TestParseTravelDate(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    *time.Time
		wantNil bool
	}{
		{"valid", "2026-11-13", timePtr(time.Date(2026, 11, 13, 0, 0, 0, 0, time.UTC)), false},
		{"empty", "", nil, true},
		{"malformed", "13/11/2026", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseTravelDate(tt.raw)
			if tt.wantNil {
				if got != nil {
					t.Fatalf("got=%v want nil", got)
				}
				return
			}
			if got == nil || !got.Equal(*tt.want) {
				t.Fatalf("got=%v want=%v", got, tt.want)
			}
		})
	}
}

func timePtr(t time.Time) *time.Time { return &t }
