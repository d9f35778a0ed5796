package dto

// MessageResponse là body lỗi / ack của backend ({"message": "..."})
type MessageResponse struct {
	Message string `json:"message"`
}

// DashboardStats là số liệu tổng hợp cho trang quản trị
type DashboardStats struct {
	TotalBookings     int     `json:"totalBookings"`
	PendingBookings   int     `json:"pendingBookings"`
	ConfirmedBookings int     `json:"confirmedBookings"`
	CancelledBookings int     `json:"cancelledBookings"`
	TotalUsers        int     `json:"totalUsers"`
	TotalHotels       int     `json:"totalHotels"`
	TotalRevenue      float64 `json:"totalRevenue"`
}
