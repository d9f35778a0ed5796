package dto

type RoomRequest struct {
	Hotel       string   `json:"hotel" binding:"required"`
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	Price       float64  `json:"price" binding:"gt=0"`
	Capacity    int      `json:"capacity" binding:"min=1"`
	BedType     string   `json:"bedType,omitempty"`
	Amenities   []string `json:"amenities"`
	Images      []string `json:"images"`
}

// AvailabilityResponse là response của GET /rooms/:id/availability
type AvailabilityResponse struct {
	Available bool `json:"available"`
}
