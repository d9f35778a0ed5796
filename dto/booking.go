package dto

// CreateBookingRequest là payload của POST /bookings
type CreateBookingRequest struct {
	HotelID   string `json:"hotelId" binding:"required"`
	RoomID    string `json:"roomId" binding:"required"`
	StartDate string `json:"startDate" binding:"required"`
	EndDate   string `json:"endDate" binding:"required"`
	Guests    int    `json:"guests" binding:"min=1"`
}

// UpdateBookingStatusRequest là DTO cho request cập nhật trạng thái booking
type UpdateBookingStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending confirmed cancelled"`
}

// BookingFilter lọc danh sách booking phía client
type BookingFilter string

const (
	BookingFilterAll       BookingFilter = "all"
	BookingFilterUpcoming  BookingFilter = "upcoming"
	BookingFilterPast      BookingFilter = "past"
	BookingFilterCancelled BookingFilter = "cancelled"
)
