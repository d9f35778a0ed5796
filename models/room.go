package models

import (
	"fmt"

	"raynott/constants"
)

// Room là phòng thuộc một khách sạn, client không bao giờ sửa cục bộ
type Room struct {
	ID          string   `json:"_id"`
	Hotel       Ref      `json:"hotel"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Capacity    int      `json:"capacity"`
	BedType     string   `json:"bedType,omitempty"`
	Amenities   []string `json:"amenities"`
	Images      []string `json:"images"`
}

// HotelID trả về id khách sạn chứa phòng
func (r Room) HotelID() string {
	return r.Hotel.ID
}

// MaxGuests trả về sức chứa, mặc định 2 khi backend không khai báo
func (r Room) MaxGuests() int {
	if r.Capacity <= 0 {
		return constants.DefaultCapacity
	}
	return r.Capacity
}

// HasAmenity kiểm tra tiện nghi của phòng
func (r Room) HasAmenity(name string) bool {
	for _, a := range r.Amenities {
		if a == name {
			return true
		}
	}
	return false
}

func (r Room) ValidatePrice() error {
	if r.Price < 0 {
		return fmt.Errorf("invalid price: %.2f, must not be negative", r.Price)
	}
	return nil
}
