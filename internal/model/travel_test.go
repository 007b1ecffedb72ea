package model

import "testing"

func TestHostPropertyCapacity(t *testing.T) {
	tests := []struct {
		name       string
		shared     int
		single     int
		wantRooms  int
		wantGuests int
	}{
		{"mixed", 20, 10, 20, 40},
		{"only shared", 10, 0, 5, 10},
		{"only single", 0, 8, 8, 16},
		{"odd shared rounds down", 5, 0, 2, 5},
		{"empty property", 0, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := HostProperty{TotalSharedRooms: tt.shared, TotalSingleRooms: tt.single}
			rooms, guests := p.Capacity()
			if rooms != tt.wantRooms || guests != tt.wantGuests {
				t.Fatalf("rooms=%d guests=%d want rooms=%d guests=%d", rooms, guests, tt.wantRooms, tt.wantGuests)
			}
		})
	}
}
