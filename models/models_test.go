package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestUser_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantID   string
		wantRole string
	}{
		{name: "mongo id", input: `{"_id":"u1","name":"An","email":"an@x.io","role":"admin"}`, wantID: "u1", wantRole: "admin"},
		{name: "plain id", input: `{"id":"u2","name":"Binh","email":"b@x.io"}`, wantID: "u2", wantRole: "user"},
		{name: "role is lowercased", input: `{"id":"u3","role":" Admin "}`, wantID: "u3", wantRole: "admin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var u User
			if err := json.Unmarshal([]byte(tt.input), &u); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if u.ID != tt.wantID || u.Role != tt.wantRole {
				t.Fatalf("expected %s/%s, got %s/%s", tt.wantID, tt.wantRole, u.ID, u.Role)
			}
		})
	}
}

func TestRef_UnmarshalJSON(t *testing.T) {
	var b Booking
	input := `{"_id":"b1","user":"u1","hotel":{"_id":"h1","name":"Raynott Grand"},"room":{"id":"r1","title":"Deluxe"}}`
	if err := json.Unmarshal([]byte(input), &b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.User.ID != "u1" || b.User.Label != "" {
		t.Fatalf("expected bare user ref, got %+v", b.User)
	}
	if b.Hotel.ID != "h1" || b.Hotel.Label != "Raynott Grand" {
		t.Fatalf("expected populated hotel ref, got %+v", b.Hotel)
	}
	if b.Room.ID != "r1" || b.Room.Label != "Deluxe" {
		t.Fatalf("expected populated room ref, got %+v", b.Room)
	}

	out, err := json.Marshal(b.Hotel)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != `"h1"` {
		t.Fatalf("expected ref to marshal as id, got %s", out)
	}
}

func TestRoom_MaxGuests(t *testing.T) {
	if got := (Room{}).MaxGuests(); got != 2 {
		t.Fatalf("expected default capacity 2, got %d", got)
	}
	if got := (Room{Capacity: 4}).MaxGuests(); got != 4 {
		t.Fatalf("expected 4, got %d", got)
	}
}

func TestBooking_Dates(t *testing.T) {
	now := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name     string
		booking  Booking
		nights   int
		upcoming bool
		past     bool
	}{
		{name: "upcoming plain dates", booking: Booking{StartDate: "2024-06-20", EndDate: "2024-06-23", Status: "pending"}, nights: 3, upcoming: true},
		{name: "past iso dates", booking: Booking{StartDate: "2024-05-01T00:00:00.000Z", EndDate: "2024-05-02T00:00:00.000Z", Status: "confirmed"}, nights: 1, past: true},
		{name: "cancelled is neither", booking: Booking{StartDate: "2024-06-20", EndDate: "2024-06-21", Status: "cancelled"}, nights: 1},
		{name: "garbage dates", booking: Booking{StartDate: "soon", EndDate: "later"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.booking.Nights(); got != tt.nights {
				t.Fatalf("expected %d nights, got %d", tt.nights, got)
			}
			if got := tt.booking.IsUpcoming(now); got != tt.upcoming {
				t.Fatalf("expected upcoming=%v, got %v", tt.upcoming, got)
			}
			if got := tt.booking.IsPast(now); got != tt.past {
				t.Fatalf("expected past=%v, got %v", tt.past, got)
			}
		})
	}
}

func TestTransition(t *testing.T) {
	tests := []struct {
		from, to string
		wantErr  bool
	}{
		{"pending", "confirmed", false},
		{"pending", "cancelled", false},
		{"pending", "pending", false},
		{"confirmed", "cancelled", false},
		{"confirmed", "confirmed", true},
		{"confirmed", "pending", true},
		{"cancelled", "confirmed", true},
		{"cancelled", "cancelled", true},
		{"pending", "archived", true},
	}

	for _, tt := range tests {
		t.Run(tt.from+"->"+tt.to, func(t *testing.T) {
			err := Transition(tt.from, tt.to)
			if (err != nil) != tt.wantErr {
				t.Fatalf("expected error=%v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestCanCancel(t *testing.T) {
	now := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	upcoming := Booking{StartDate: "2024-06-20", EndDate: "2024-06-22", Status: "confirmed"}
	past := Booking{StartDate: "2024-06-01", EndDate: "2024-06-02", Status: "confirmed"}
	cancelled := Booking{StartDate: "2024-06-20", EndDate: "2024-06-22", Status: "cancelled"}

	if !CanCancel(upcoming, now, false) {
		t.Fatal("expected customer to cancel an upcoming booking")
	}
	if CanCancel(past, now, false) {
		t.Fatal("expected customer not to cancel a past booking")
	}
	if !CanCancel(past, now, true) {
		t.Fatal("expected admin to cancel a past booking")
	}
	if CanCancel(cancelled, now, true) {
		t.Fatal("cancelled booking cannot be cancelled again")
	}
}
