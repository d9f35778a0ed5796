package models

import (
	"time"

	"raynott/constants"
)

type Booking struct {
	ID         string  `json:"_id"`
	User       Ref     `json:"user"`
	Hotel      Ref     `json:"hotel"`
	Room       Ref     `json:"room"`
	StartDate  string  `json:"startDate"`
	EndDate    string  `json:"endDate"`
	Guests     int     `json:"guests"`
	Status     string  `json:"status"`
	TotalPrice float64 `json:"totalPrice"`
	CreatedAt  string  `json:"createdAt,omitempty"`
}

// Start trả về ngày nhận phòng, zero time nếu không parse được
func (b Booking) Start() time.Time {
	return parseBookingDate(b.StartDate)
}

// End trả về ngày trả phòng, zero time nếu không parse được
func (b Booking) End() time.Time {
	return parseBookingDate(b.EndDate)
}

// Nights là số đêm của booking
func (b Booking) Nights() int {
	start, end := b.Start(), b.End()
	if start.IsZero() || end.IsZero() || !end.After(start) {
		return 0
	}
	return int(end.Sub(start).Hours()+23) / 24
}

// IsCancelled kiểm tra booking đã huỷ
func (b Booking) IsCancelled() bool {
	return b.Status == constants.BookingStatusCancelled
}

// IsUpcoming: ngày nhận phòng sau thời điểm now và chưa huỷ
func (b Booking) IsUpcoming(now time.Time) bool {
	start := b.Start()
	return !start.IsZero() && start.After(now) && !b.IsCancelled()
}

// IsPast: ngày trả phòng trước thời điểm now và chưa huỷ
func (b Booking) IsPast(now time.Time) bool {
	end := b.End()
	return !end.IsZero() && end.Before(now) && !b.IsCancelled()
}

// parseBookingDate accepts both plain dates and the ISO timestamps the backend stores.
func parseBookingDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC()
	}
	if t, err := time.Parse(constants.DateLayout, s); err == nil {
		return t
	}
	return time.Time{}
}
