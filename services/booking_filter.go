package services

import (
	"strings"
	"time"

	"raynott/dto"
	"raynott/models"
)

// FilterBookings lọc theo nhóm (all/upcoming/past/cancelled hoặc một trạng thái)
// và theo từ khoá trên tên user, tên khách sạn, tên phòng, mã booking.
func FilterBookings(bookings []models.Booking, filter dto.BookingFilter, term string, now time.Time) []models.Booking {
	term = strings.ToLower(strings.TrimSpace(term))
	var out []models.Booking
	for _, b := range bookings {
		if !matchesFilter(b, filter, now) {
			continue
		}
		if term != "" && !matchesTerm(b, term) {
			continue
		}
		out = append(out, b)
	}
	return out
}

func matchesFilter(b models.Booking, filter dto.BookingFilter, now time.Time) bool {
	switch filter {
	case "", dto.BookingFilterAll:
		return true
	case dto.BookingFilterUpcoming:
		return b.IsUpcoming(now)
	case dto.BookingFilterPast:
		return b.IsPast(now)
	case dto.BookingFilterCancelled:
		return b.IsCancelled()
	default:
		return b.Status == string(filter)
	}
}

func matchesTerm(b models.Booking, term string) bool {
	for _, field := range []string{b.User.Label, b.Hotel.Label, b.Room.Label, b.ID} {
		if field != "" && strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

// BookingCounts đếm số booking theo nhóm để hiển thị cạnh bộ lọc
func BookingCounts(bookings []models.Booking, now time.Time) map[dto.BookingFilter]int {
	counts := map[dto.BookingFilter]int{dto.BookingFilterAll: len(bookings)}
	for _, b := range bookings {
		if b.IsUpcoming(now) {
			counts[dto.BookingFilterUpcoming]++
		}
		if b.IsPast(now) {
			counts[dto.BookingFilterPast]++
		}
		if b.IsCancelled() {
			counts[dto.BookingFilterCancelled]++
		}
	}
	return counts
}
