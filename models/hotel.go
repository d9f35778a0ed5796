package models

// Hotel là khách sạn do backend quản lý, client chỉ đọc
type Hotel struct {
	ID            string   `json:"_id"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Address       string   `json:"address"`
	City          string   `json:"city"`
	Country       string   `json:"country"`
	Stars         int      `json:"stars"`
	PricePerNight float64  `json:"pricePerNight"`
	Amenities     []string `json:"amenities"`
	Images        []string `json:"images"`
	Rooms         []Room   `json:"rooms,omitempty"`
}

// HasAmenity kiểm tra tiện nghi của khách sạn
func (h Hotel) HasAmenity(name string) bool {
	for _, a := range h.Amenities {
		if a == name {
			return true
		}
	}
	return false
}
