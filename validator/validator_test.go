package validator

import (
	"fmt"
	"testing"
	"time"

	"raynott/dto"
	"raynott/errors"
)

var today = time.Date(2024, 5, 20, 15, 30, 0, 0, time.Local)

func TestValidateDateRange(t *testing.T) {
	tests := []struct {
		name       string
		in, out    string
		wantReason string
		wantNights int
	}{
		{name: "missing checkin", in: "", out: "2024-06-04", wantReason: ReasonMissingDates},
		{name: "missing checkout", in: "2024-06-01", out: "", wantReason: ReasonMissingDates},
		{name: "garbage", in: "06/01/2024", out: "2024-06-04", wantReason: ReasonInvalidDate},
		{name: "checkin yesterday", in: "2024-05-19", out: "2024-05-22", wantReason: ReasonCheckInPast},
		{name: "checkin today is allowed", in: "2024-05-20", out: "2024-05-21", wantNights: 1},
		{name: "same day", in: "2024-06-01", out: "2024-06-01", wantReason: ReasonCheckoutBefore},
		{name: "reversed", in: "2024-06-04", out: "2024-06-01", wantReason: ReasonCheckoutBefore},
		{name: "31 nights", in: "2024-06-01", out: "2024-07-02", wantReason: ReasonTooLong},
		{name: "30 nights", in: "2024-06-01", out: "2024-07-01", wantNights: 30},
		{name: "three nights", in: "2024-06-01", out: "2024-06-04", wantNights: 3},
		{name: "past wins over reversed", in: "2024-05-01", out: "2024-04-01", wantReason: ReasonCheckInPast},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateDateRange(tt.in, tt.out, today)
			if got.Reason != tt.wantReason {
				t.Fatalf("expected reason %q, got %q", tt.wantReason, got.Reason)
			}
			if got.Valid() && got.Nights != tt.wantNights {
				t.Fatalf("expected %d nights, got %d", tt.wantNights, got.Nights)
			}
		})
	}
}

func TestValidateDateRangeNightsAcrossRange(t *testing.T) {
	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	for n := 1; n <= 30; n++ {
		out := start.AddDate(0, 0, n).Format("2006-01-02")
		got := ValidateDateRange("2024-06-01", out, today)
		if !got.Valid() || got.Nights != n {
			t.Fatalf("expected valid %d nights, got %+v", n, got)
		}
	}
}

func TestValidateGuests(t *testing.T) {
	tests := []struct {
		name     string
		n, cap   int
		wantFail bool
	}{
		{name: "zero guests", n: 0, cap: 2, wantFail: true},
		{name: "at capacity", n: 2, cap: 2},
		{name: "over capacity", n: 3, cap: 2, wantFail: true},
		{name: "default capacity", n: 2, cap: 0},
		{name: "over default capacity", n: 3, cap: 0, wantFail: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateGuests(tt.n, tt.cap)
			if (err != nil) != tt.wantFail {
				t.Fatalf("expected failure=%v, got %v", tt.wantFail, err)
			}
			if err != nil && errors.CodeOf(err) != errors.ErrCodeValidation {
				t.Fatalf("expected validation code, got %s", errors.CodeOf(err))
			}
		})
	}
}

func TestPasswordStrength(t *testing.T) {
	cases := map[string]int{
		"":            0,
		"abc":         1,
		"abcdefgh":    2,
		"Abcdefgh":    3,
		"Abcdefg1":    4,
		"Abcdefg1!":   5,
		"12345678":    2,
		"PASSWORD12":  3,
	}
	for pw, want := range cases {
		if got := PasswordStrength(pw); got != want {
			t.Errorf("PasswordStrength(%q) = %d, want %d", pw, got, want)
		}
	}
}

func TestValidateRegister(t *testing.T) {
	valid := dto.RegisterInput{Name: "An", Email: "an@example.com", Password: "Secret12", ConfirmPassword: "Secret12"}

	tests := []struct {
		name     string
		mutate   func(*dto.RegisterInput)
		wantCode errors.ErrorCode
	}{
		{name: "valid", mutate: func(*dto.RegisterInput) {}},
		{name: "missing name", mutate: func(in *dto.RegisterInput) { in.Name = " " }, wantCode: errors.ErrCodeRequiredField},
		{name: "bad email", mutate: func(in *dto.RegisterInput) { in.Email = "an@" }, wantCode: errors.ErrCodeInvalidEmail},
		{name: "mismatch", mutate: func(in *dto.RegisterInput) { in.ConfirmPassword = "other" }, wantCode: errors.ErrCodePasswordMismatch},
		{name: "weak", mutate: func(in *dto.RegisterInput) { in.Password, in.ConfirmPassword = "abc", "abc" }, wantCode: errors.ErrCodeInvalidPassword},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)
			err := ValidateRegister(in)
			if errors.CodeOf(err) != tt.wantCode {
				t.Fatalf("expected code %q, got %v", tt.wantCode, err)
			}
		})
	}
}

func TestValidateHotelAndRoom(t *testing.T) {
	hotel := &dto.HotelRequest{Name: "Sea View", Address: "1 Beach Rd", City: "Goa", Stars: 4, PricePerNight: 2000, Images: []string{"", " http://img/1.jpg "}}
	if err := ValidateHotel(hotel); err != nil {
		t.Fatalf("expected valid hotel, got %v", err)
	}
	if len(hotel.Images) != 1 || hotel.Images[0] != "http://img/1.jpg" {
		t.Fatalf("expected empty images dropped, got %v", hotel.Images)
	}

	bad := &dto.HotelRequest{Name: "X", Address: "a", City: "b", Stars: 6, PricePerNight: 10}
	if err := ValidateHotel(bad); errors.CodeOf(err) != errors.ErrCodeValidation {
		t.Fatalf("expected validation error for stars=6, got %v", err)
	}

	room := &dto.RoomRequest{Hotel: "h1", Title: "Deluxe", Price: 0, Capacity: 2}
	if err := ValidateRoom(room); err == nil {
		t.Fatal("expected error for zero price")
	}
	room.Price = 1500
	room.Capacity = 0
	if err := ValidateRoom(room); err == nil {
		t.Fatal("expected error for zero capacity")
	}
	room.Capacity = 3
	if err := ValidateRoom(room); err != nil {
		t.Fatalf("expected valid room, got %v", err)
	}
}

func TestValidateStatus(t *testing.T) {
	for _, s := range []string{"pending", "confirmed", "cancelled"} {
		if err := ValidateStatus(s); err != nil {
			t.Fatalf("expected %q valid, got %v", s, err)
		}
	}
	if err := ValidateStatus("refunded"); err == nil {
		t.Fatal("expected error for unknown status")
	}
}

func TestFirstFieldError(t *testing.T) {
	raw := forms().Struct(&dto.RoomRequest{Hotel: "h1", Title: "Deluxe", Price: 1500, Capacity: 0})
	if raw == nil {
		t.Fatal("expected capacity=0 to fail struct validation")
	}

	tests := []struct {
		name    string
		err     error
		wantTag string
		wantOK  bool
	}{
		{name: "direct", err: raw, wantTag: "min", wantOK: true},
		{name: "wrapped", err: fmt.Errorf("room form: %w", raw), wantTag: "min", wantOK: true},
		{name: "unrelated", err: fmt.Errorf("boom"), wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fe, ok := firstFieldError(tt.err)
			if ok != tt.wantOK {
				t.Fatalf("expected ok=%v, got %v", tt.wantOK, ok)
			}
			if ok && fe.Tag() != tt.wantTag {
				t.Fatalf("expected tag %q, got %q", tt.wantTag, fe.Tag())
			}
		})
	}
}
