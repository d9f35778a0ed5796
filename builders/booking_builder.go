package builders

import (
	"fmt"
	"strings"

	"raynott/dto"
)

// BookingBuilder giúp tạo payload POST /bookings theo từng bước
type BookingBuilder struct {
	req dto.CreateBookingRequest
}

// NewBookingBuilder tạo instance mới của BookingBuilder
func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{req: dto.CreateBookingRequest{Guests: 1}}
}

// WithHotel thêm khách sạn
func (b *BookingBuilder) WithHotel(hotelID string) *BookingBuilder {
	b.req.HotelID = hotelID
	return b
}

// WithRoom thêm phòng
func (b *BookingBuilder) WithRoom(roomID string) *BookingBuilder {
	b.req.RoomID = roomID
	return b
}

// WithDates thêm ngày nhận và trả phòng (YYYY-MM-DD)
func (b *BookingBuilder) WithDates(checkIn, checkOut string) *BookingBuilder {
	b.req.StartDate = checkIn
	b.req.EndDate = checkOut
	return b
}

// WithGuests thêm số khách
func (b *BookingBuilder) WithGuests(guests int) *BookingBuilder {
	b.req.Guests = guests
	return b
}

// Build trả về payload hoàn chỉnh, lỗi nếu thiếu trường bắt buộc
func (b *BookingBuilder) Build() (dto.CreateBookingRequest, error) {
	var missing []string
	if b.req.HotelID == "" {
		missing = append(missing, "hotelId")
	}
	if b.req.RoomID == "" {
		missing = append(missing, "roomId")
	}
	if b.req.StartDate == "" {
		missing = append(missing, "startDate")
	}
	if b.req.EndDate == "" {
		missing = append(missing, "endDate")
	}
	if len(missing) > 0 {
		return dto.CreateBookingRequest{}, fmt.Errorf("booking payload missing %s", strings.Join(missing, ", "))
	}
	if b.req.Guests < 1 {
		return dto.CreateBookingRequest{}, fmt.Errorf("booking payload needs at least one guest")
	}
	return b.req, nil
}
