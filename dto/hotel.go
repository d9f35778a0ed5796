package dto

import "raynott/models"

// HotelRequest là payload tạo/cập nhật khách sạn
type HotelRequest struct {
	Name          string   `json:"name" binding:"required"`
	Description   string   `json:"description"`
	Address       string   `json:"address" binding:"required"`
	City          string   `json:"city" binding:"required"`
	Country       string   `json:"country"`
	Stars         int      `json:"stars" binding:"min=1,max=5"`
	PricePerNight float64  `json:"pricePerNight" binding:"gt=0"`
	Amenities     []string `json:"amenities"`
	Images        []string `json:"images"`
}

// SearchFilters là bộ lọc tìm kiếm khách sạn, được nhớ lại giữa các lần tìm
type SearchFilters struct {
	Name      string   `json:"name,omitempty"`
	City      string   `json:"city,omitempty"`
	Country   string   `json:"country,omitempty"`
	MinStars  *int     `json:"minStars,omitempty"`
	PriceMin  *float64 `json:"priceMin,omitempty"`
	PriceMax  *float64 `json:"priceMax,omitempty"`
	Amenities []string `json:"amenities,omitempty"`
}

// ScoredHotel là kết quả tìm kiếm kèm điểm phù hợp
type ScoredHotel struct {
	Hotel models.Hotel `json:"hotel"`
	Score int          `json:"score"`
}
